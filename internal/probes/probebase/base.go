// Package probebase centralizes probe metadata. Probe packages embed Base
// and implement only Fetch.
package probebase

import "github.com/AG66666678/lookcc/internal/core"

type Base struct {
	spec core.ProbeSpec
}

func New(spec core.ProbeSpec) Base {
	normalized := spec
	if normalized.Backend == "" {
		normalized.Backend = core.BackendUnknown
	}
	if normalized.Info.Name == "" {
		normalized.Info.Name = string(normalized.Backend)
	}
	return Base{spec: normalized}
}

func (b Base) Backend() core.BackendType {
	return b.spec.Backend
}

func (b Base) Describe() core.ProbeInfo {
	return b.spec.Info
}

func (b Base) Spec() core.ProbeSpec {
	return b.spec
}
