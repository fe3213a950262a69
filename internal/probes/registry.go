// Package probes wires the built-in gateway probes together.
package probes

import (
	"github.com/AG66666678/lookcc/internal/core"
	"github.com/AG66666678/lookcc/internal/probes/newapi"
	"github.com/AG66666678/lookcc/internal/probes/oneapi"
	"github.com/AG66666678/lookcc/internal/probes/openrouter"
)

// Ordered returns the built-in probes in detection priority order:
// NewAPI, then OneAPI, then OpenRouter. The detector tries them in this
// order and the first match wins, so changing it changes which backend an
// ambiguous gateway resolves to.
func Ordered() []core.Probe {
	return []core.Probe{
		newapi.New(),
		oneapi.New(),
		openrouter.New(),
	}
}
