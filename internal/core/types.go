package core

import "time"

// BackendType identifies which gateway schema a probe matched.
type BackendType string

const (
	BackendNewAPI     BackendType = "NewAPI"
	BackendOneAPI     BackendType = "OneAPI"
	BackendOpenRouter BackendType = "OpenRouter"
	BackendUnknown    BackendType = "unknown"
)

// Fixed user-facing failure messages. The display layer shows these
// verbatim, so the exact wording is part of the contract.
const (
	MsgNotConfigured  = "API Key or Endpoint not configured."
	MsgBackendUnknown = "Unable to detect API type."
)

// UsageRecord is the canonical usage/quota shape every probe converges to.
// All amounts are dollars. Total == 0 means unlimited or unknown, and
// Remaining is 0 whenever Total is 0. A record may legitimately be all
// zeros with an empty Error when the backend reports zero usage.
type UsageRecord struct {
	AccountID string      `json:"account_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Backend   BackendType `json:"backend_type"`
	TodayUsed float64     `json:"today_used"`
	MonthUsed float64     `json:"month_used"`
	TotalUsed float64     `json:"total_used"`
	Total     float64     `json:"total"`
	Remaining float64     `json:"remaining"`
	Error     string      `json:"error,omitempty"`
}

// OK reports whether the record carries a trusted reading.
func (r UsageRecord) OK() bool {
	return r.Error == ""
}

// Unlimited reports whether the backend imposes no spending limit we know
// of.
func (r UsageRecord) Unlimited() bool {
	return r.Error == "" && r.Total == 0
}

// RemainingFraction returns Remaining/Total clamped to [0, 1], or -1 when
// the quota is unlimited or unknown. Gauge coloring keys off this.
func (r UsageRecord) RemainingFraction() float64 {
	if r.Error != "" || r.Total <= 0 {
		return -1
	}
	f := r.Remaining / r.Total
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
