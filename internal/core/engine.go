package core

import (
	"context"
	"log"
	"sync"
	"time"
)

// defaultDetectTimeout bounds one full detection session: three sequential
// probes behind a 30s HTTP client plus the usage-window fan-out.
const defaultDetectTimeout = 2 * time.Minute

// Engine owns the refresh schedule and the last known record per account.
// Detection itself lives in Detector; the engine fans out across accounts,
// caches results, and notifies the display layer.
type Engine struct {
	mu       sync.RWMutex
	detector *Detector
	accounts []Account
	records  map[string]UsageRecord // keyed by account ID
	interval time.Duration
	timeout  time.Duration

	onUpdate func(map[string]UsageRecord)
}

func NewEngine(detector *Detector, interval time.Duration) *Engine {
	return &Engine{
		detector: detector,
		records:  make(map[string]UsageRecord),
		interval: interval,
		timeout:  defaultDetectTimeout,
	}
}

func (e *Engine) SetAccounts(accounts []Account) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.accounts = accounts
}

func (e *Engine) OnUpdate(fn func(map[string]UsageRecord)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUpdate = fn
}

func (e *Engine) Records() map[string]UsageRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]UsageRecord, len(e.records))
	for k, v := range e.records {
		out[k] = v
	}
	return out
}

// RefreshAll re-detects every account and replaces its cached record.
// Accounts refresh concurrently with each other; the probes within one
// account's session stay sequential inside the detector.
func (e *Engine) RefreshAll(ctx context.Context) {
	e.mu.RLock()
	accounts := make([]Account, len(e.accounts))
	copy(accounts, e.accounts)
	e.mu.RUnlock()

	var wg sync.WaitGroup
	results := make(chan UsageRecord, len(accounts))

	for _, acct := range accounts {
		wg.Add(1)
		go func(a Account) {
			defer wg.Done()

			detectCtx, cancel := context.WithTimeout(ctx, e.timeout)
			defer cancel()

			results <- e.detector.Detect(detectCtx, a)
		}(acct)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	for rec := range results {
		e.mu.Lock()
		e.records[rec.AccountID] = rec
		e.mu.Unlock()
	}

	// Drop cached records for accounts that are no longer configured.
	keep := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		keep[a.ID] = true
	}
	e.mu.Lock()
	for id := range e.records {
		if !keep[id] {
			delete(e.records, id)
		}
	}
	e.mu.Unlock()

	e.mu.RLock()
	fn := e.onUpdate
	records := make(map[string]UsageRecord, len(e.records))
	for k, v := range e.records {
		records[k] = v
	}
	e.mu.RUnlock()

	if fn != nil {
		fn(records)
	}
}

// Run refreshes immediately and then on every interval tick until the
// context is cancelled.
func (e *Engine) Run(ctx context.Context) {
	e.RefreshAll(ctx)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("engine: context cancelled, stopping refresh loop")
			return
		case <-ticker.C:
			e.RefreshAll(ctx)
		}
	}
}
