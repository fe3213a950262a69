package core

import "fmt"

// FailureKind classifies why a probe rejected an account.
type FailureKind string

const (
	// FailureTransport covers request construction, network errors,
	// timeouts, and non-2xx statuses.
	FailureTransport FailureKind = "transport"
	// FailureSchema covers bodies that fetched fine but did not carry the
	// fields the probe's schema requires.
	FailureSchema FailureKind = "schema"
	// FailureNotApplicable means the probe gated itself off before issuing
	// any request.
	FailureNotApplicable FailureKind = "not_applicable"
)

// ProbeError reports a single probe's rejection. The detector treats every
// rejection the same way (move on to the next probe); Kind exists for logs
// and tests.
type ProbeError struct {
	Backend BackendType
	Kind    FailureKind
	Err     error
}

func NewProbeError(backend BackendType, kind FailureKind, err error) *ProbeError {
	return &ProbeError{Backend: backend, Kind: kind, Err: err}
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("%s probe: %s: %v", e.Backend, e.Kind, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
