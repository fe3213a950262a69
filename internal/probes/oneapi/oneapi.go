// Package oneapi probes gateways that expose the one-api user self
// endpoint.
package oneapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/probes/probebase"
	"github.com/AG66666678/lookcc/internal/probes/shared"
)

const selfPath = "/api/user/self"

// quotaPerDollar converts raw quota units to dollars (1 unit = $0.000002).
const quotaPerDollar = 500_000

type selfResponse struct {
	Data *selfData `json:"data"`
}

type selfData struct {
	Quota     float64 `json:"quota"`
	UsedQuota float64 `json:"used_quota"`
}

type Probe struct {
	probebase.Base
}

func New() *Probe {
	return &Probe{
		Base: probebase.New(core.ProbeSpec{
			Backend: core.BackendOneAPI,
			Info: core.ProbeInfo{
				Name:        "OneAPI",
				Description: "one-api style gateways reporting quota via /api/user/self",
				DocURL:      "https://github.com/songquanpeng/one-api",
			},
		}),
	}
}

// Fetch reads the account's quota balance. The backend reports no daily or
// monthly rollups, so TodayUsed and MonthUsed are always zero.
func (p *Probe) Fetch(ctx context.Context, acct core.Account) (core.UsageRecord, error) {
	body, err := shared.Get(ctx, shared.JoinURL(acct.Endpoint, selfPath), acct.ResolveAPIKey(), nil)
	if err != nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOneAPI, core.FailureTransport, err)
	}

	var resp selfResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOneAPI, core.FailureSchema, fmt.Errorf("parsing self response: %w", err))
	}
	if resp.Data == nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOneAPI, core.FailureSchema, errors.New("self response missing data object"))
	}

	remaining := resp.Data.Quota / quotaPerDollar
	used := resp.Data.UsedQuota / quotaPerDollar

	return core.UsageRecord{
		Timestamp: time.Now(),
		Backend:   core.BackendOneAPI,
		TotalUsed: used,
		Total:     remaining + used,
		Remaining: remaining,
	}, nil
}
