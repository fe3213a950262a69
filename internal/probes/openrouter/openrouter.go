// Package openrouter probes OpenRouter accounts via the key status
// endpoint. Unlike the gateway probes, the API lives at one well-known
// host, so the configured endpoint only gates whether the probe applies.
package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/probes/probebase"
	"github.com/AG66666678/lookcc/internal/probes/shared"
)

const (
	defaultKeyURL = "https://openrouter.ai/api/v1/auth/key"
	hostMarker    = "openrouter.ai"
)

type keyResponse struct {
	Data *keyData `json:"data"`
}

type keyData struct {
	Usage float64 `json:"usage"` // dollars spent on the key
	Limit float64 `json:"limit"` // credit limit in dollars; 0 means unlimited
}

type Probe struct {
	probebase.Base

	keyURL string
}

func New() *Probe {
	return &Probe{
		Base: probebase.New(core.ProbeSpec{
			Backend: core.BackendOpenRouter,
			Info: core.ProbeInfo{
				Name:        "OpenRouter",
				Description: "openrouter.ai key usage and credit limit",
				DocURL:      "https://openrouter.ai/docs/api-reference/limits",
			},
		}),
		keyURL: defaultKeyURL,
	}
}

// Fetch reads the key's usage and limit. Accounts whose endpoint does not
// mention openrouter.ai are rejected before any request goes out.
func (p *Probe) Fetch(ctx context.Context, acct core.Account) (core.UsageRecord, error) {
	if !strings.Contains(acct.Endpoint, hostMarker) {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOpenRouter, core.FailureNotApplicable,
			fmt.Errorf("endpoint %q is not an %s host", acct.Endpoint, hostMarker))
	}

	body, err := shared.Get(ctx, p.keyURL, acct.ResolveAPIKey(), nil)
	if err != nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOpenRouter, core.FailureTransport, err)
	}

	var resp keyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOpenRouter, core.FailureSchema, fmt.Errorf("parsing key status: %w", err))
	}
	if resp.Data == nil {
		return core.UsageRecord{}, core.NewProbeError(core.BackendOpenRouter, core.FailureSchema, errors.New("key status missing data object"))
	}

	rec := core.UsageRecord{
		Timestamp: time.Now(),
		Backend:   core.BackendOpenRouter,
		TotalUsed: resp.Data.Usage,
		Total:     resp.Data.Limit,
	}
	if resp.Data.Limit > 0 {
		rec.Remaining = resp.Data.Limit - resp.Data.Usage
	}
	return rec, nil
}
