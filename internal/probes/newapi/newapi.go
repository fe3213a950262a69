// Package newapi probes gateways that expose the OpenAI-dashboard-compatible
// billing surface used by new-api and its forks.
package newapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/probes/probebase"
	"github.com/AG66666678/lookcc/internal/probes/shared"
)

const (
	subscriptionPath = "/v1/dashboard/billing/subscription"
	usagePath        = "/v1/dashboard/billing/usage"

	dateLayout = "2006-01-02"

	// Hard limits at or above a million dollars are "no limit" markers,
	// not real quotas.
	unlimitedThreshold = 1_000_000
)

type subscriptionResponse struct {
	HardLimitUSD *float64 `json:"hard_limit_usd"`
}

type usageResponse struct {
	TotalUsage *float64 `json:"total_usage"` // unit: 0.01 dollar
}

type Probe struct {
	probebase.Base

	now func() time.Time
}

func New() *Probe {
	return &Probe{
		Base: probebase.New(core.ProbeSpec{
			Backend: core.BackendNewAPI,
			Info: core.ProbeInfo{
				Name:        "NewAPI",
				Description: "OpenAI-dashboard-compatible billing (new-api and forks)",
				DocURL:      "https://github.com/QuantumNous/new-api",
			},
		}),
		now: time.Now,
	}
}

// Fetch reads the hard spending limit and the three usage rollups. The
// subscription call goes first; the usage windows fan out concurrently and
// the whole probe fails if any of them does.
func (p *Probe) Fetch(ctx context.Context, acct core.Account) (core.UsageRecord, error) {
	apiKey := acct.ResolveAPIKey()

	sub, err := p.fetchSubscription(ctx, acct.Endpoint, apiKey)
	if err != nil {
		return core.UsageRecord{}, err
	}

	windows := usageWindows(p.now())
	used := make([]float64, len(windows))
	errs := make([]error, len(windows))

	var wg sync.WaitGroup
	for i, w := range windows {
		wg.Add(1)
		go func(i int, w usageWindow) {
			defer wg.Done()
			used[i], errs[i] = p.fetchWindowUsage(ctx, acct.Endpoint, apiKey, w)
		}(i, w)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return core.UsageRecord{}, err
		}
	}

	rec := core.UsageRecord{
		Timestamp: p.now(),
		Backend:   core.BackendNewAPI,
		TodayUsed: used[0],
		MonthUsed: used[1],
		TotalUsed: used[2],
	}
	if *sub.HardLimitUSD >= unlimitedThreshold {
		return rec, nil
	}
	rec.Total = *sub.HardLimitUSD
	rec.Remaining = *sub.HardLimitUSD - rec.TotalUsed
	return rec, nil
}

type usageWindow struct {
	start, end time.Time
}

// usageWindows returns the three rollups: today, first of the month
// through today, first of the year through today.
func usageWindows(now time.Time) []usageWindow {
	return []usageWindow{
		{start: now, end: now},
		{start: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), end: now},
		{start: time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), end: now},
	}
}

func (p *Probe) fetchSubscription(ctx context.Context, endpoint, apiKey string) (subscriptionResponse, error) {
	var sub subscriptionResponse

	body, err := shared.Get(ctx, shared.JoinURL(endpoint, subscriptionPath), apiKey, nil)
	if err != nil {
		return sub, core.NewProbeError(core.BackendNewAPI, core.FailureTransport, err)
	}
	if err := json.Unmarshal(body, &sub); err != nil {
		return sub, core.NewProbeError(core.BackendNewAPI, core.FailureSchema, fmt.Errorf("parsing subscription: %w", err))
	}
	if sub.HardLimitUSD == nil {
		return sub, core.NewProbeError(core.BackendNewAPI, core.FailureSchema, errors.New("subscription response missing hard_limit_usd"))
	}
	return sub, nil
}

func (p *Probe) fetchWindowUsage(ctx context.Context, endpoint, apiKey string, w usageWindow) (float64, error) {
	params := url.Values{}
	params.Set("start_date", w.start.Format(dateLayout))
	params.Set("end_date", w.end.Format(dateLayout))

	body, err := shared.Get(ctx, shared.JoinURL(endpoint, usagePath), apiKey, params)
	if err != nil {
		return 0, core.NewProbeError(core.BackendNewAPI, core.FailureTransport, err)
	}
	var usage usageResponse
	if err := json.Unmarshal(body, &usage); err != nil {
		return 0, core.NewProbeError(core.BackendNewAPI, core.FailureSchema, fmt.Errorf("parsing usage: %w", err))
	}
	if usage.TotalUsage == nil {
		return 0, core.NewProbeError(core.BackendNewAPI, core.FailureSchema, errors.New("usage response missing total_usage"))
	}
	return *usage.TotalUsage / 100, nil
}
