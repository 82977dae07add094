// Package plot holds plotter adapters. Rendering itself lives outside
// the engine; the Noop adapter satisfies the port when no renderer is
// wired.
package plot

import (
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
)

// Noop discards every plot call.
type Noop struct{}

// NewNoop creates the no-op plotter.
func NewNoop() *Noop {
	return &Noop{}
}

func (Noop) PDF(core.BenchmarkID, *stats.Data, *stats.LabeledSample) error {
	return nil
}

func (Noop) Regression(core.BenchmarkID, *stats.Data, stats.Slope, stats.Slope, stats.Slope) error {
	return nil
}

func (Noop) AbsDistributions(core.BenchmarkID, estimate.Distributions, estimate.Estimates) error {
	return nil
}

func (Noop) Summarize(core.BenchmarkID) error {
	return nil
}
