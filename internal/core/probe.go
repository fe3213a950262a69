package core

import "context"

// ProbeInfo describes a probe for display and docs.
type ProbeInfo struct {
	Name        string
	Description string
	DocURL      string
}

// ProbeSpec is the canonical probe definition packages register with.
type ProbeSpec struct {
	Backend BackendType
	Info    ProbeInfo
}

// Probe attempts to read usage from one specific gateway schema.
//
// Fetch returns a non-nil error when the account's backend does not speak
// this probe's schema; the record is meaningful only for a nil error, and
// probes never populate the record's Error field themselves.
// Implementations must be safe for concurrent use and keep no state
// between calls.
type Probe interface {
	Backend() BackendType
	Describe() ProbeInfo
	Fetch(ctx context.Context, acct Account) (UsageRecord, error)
}
