package core

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// DetectPhase names the stages of one detection session.
type DetectPhase string

const (
	PhaseNotStarted DetectPhase = "not_started"
	PhaseProbing    DetectPhase = "probing"
	PhaseResolved   DetectPhase = "resolved"
	PhaseExhausted  DetectPhase = "exhausted"
)

// DetectState is one observed state of a detection session. Backend is set
// only for probing and resolved states.
type DetectState struct {
	AccountID string
	Phase     DetectPhase
	Backend   BackendType
}

// Attempt records one probe's outcome inside a session. Err is nil only
// for the attempt that resolved the session.
type Attempt struct {
	Backend BackendType
	Err     error
}

// Detection is the full result of one session: the canonical record plus
// the ordered probe attempts that produced it.
type Detection struct {
	Record   UsageRecord
	Attempts []Attempt
}

// Detector runs the ordered probes against one account at a time. Probes
// are tried strictly sequentially in the order given to NewDetector; the
// first probe that returns a clean record wins and the rest are skipped.
// The detector keeps no state between sessions, so concurrent sessions for
// different accounts are safe.
type Detector struct {
	probes   []Probe
	observer func(DetectState)
}

func NewDetector(probes []Probe) *Detector {
	return &Detector{probes: probes}
}

// OnTransition registers an observer for the state changes of subsequent
// sessions. Sessions running concurrently interleave their states; the
// AccountID field tells them apart. The observer must not block. Register
// before the first session; this is not synchronized against Detect.
func (d *Detector) OnTransition(fn func(DetectState)) {
	d.observer = fn
}

// Detect runs one detection session and returns the canonical record. It
// never returns an error: every failure path resolves to a record with
// Error set and Backend "unknown".
func (d *Detector) Detect(ctx context.Context, acct Account) UsageRecord {
	return d.DetectDetailed(ctx, acct).Record
}

// DetectDetailed runs one session and additionally reports the per-probe
// attempt trace.
func (d *Detector) DetectDetailed(ctx context.Context, acct Account) Detection {
	d.transition(DetectState{AccountID: acct.ID, Phase: PhaseNotStarted})

	if strings.TrimSpace(acct.ResolveAPIKey()) == "" || strings.TrimSpace(acct.Endpoint) == "" {
		d.transition(DetectState{AccountID: acct.ID, Phase: PhaseExhausted})
		return Detection{Record: UsageRecord{
			AccountID: acct.ID,
			Timestamp: time.Now(),
			Backend:   BackendUnknown,
			Error:     MsgNotConfigured,
		}}
	}

	var attempts []Attempt
	for _, p := range d.probes {
		d.transition(DetectState{AccountID: acct.ID, Phase: PhaseProbing, Backend: p.Backend()})

		rec, err := p.Fetch(ctx, acct)
		if err == nil && rec.Error != "" {
			err = fmt.Errorf("%s probe returned a record with error %q", p.Backend(), rec.Error)
		}
		attempts = append(attempts, Attempt{Backend: p.Backend(), Err: err})
		if err != nil {
			log.Printf("detector: %s rejected account %q: %v", p.Backend(), acct.ID, err)
			continue
		}

		rec.AccountID = acct.ID
		rec.Backend = p.Backend()
		if rec.Timestamp.IsZero() {
			rec.Timestamp = time.Now()
		}
		d.transition(DetectState{AccountID: acct.ID, Phase: PhaseResolved, Backend: p.Backend()})
		return Detection{Record: rec, Attempts: attempts}
	}

	d.transition(DetectState{AccountID: acct.ID, Phase: PhaseExhausted})
	return Detection{
		Record: UsageRecord{
			AccountID: acct.ID,
			Timestamp: time.Now(),
			Backend:   BackendUnknown,
			Error:     MsgBackendUnknown,
		},
		Attempts: attempts,
	}
}

func (d *Detector) transition(s DetectState) {
	if d.observer != nil {
		d.observer(s)
	}
}
