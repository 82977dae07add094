package ports

import (
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
)

// Plotter renders images for a benchmark's artifacts. Rendering is an
// external collaborator: the pipeline only decides when to call it,
// and skips every call when plotting is disabled.
type Plotter interface {
	// PDF plots the estimated probability density of the sample with
	// its outlier bands.
	PDF(id core.BenchmarkID, d *stats.Data, ls *stats.LabeledSample) error
	// Regression plots the fitted slope with its confidence band.
	Regression(id core.BenchmarkID, d *stats.Data, point, lb, ub stats.Slope) error
	// AbsDistributions plots the bootstrap distribution of each
	// absolute statistic.
	AbsDistributions(id core.BenchmarkID, dists estimate.Distributions, ests estimate.Estimates) error
	// Summarize renders the cross-benchmark summary for a group.
	Summarize(id core.BenchmarkID) error
}
