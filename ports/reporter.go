package ports

import (
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
)

// Reporter renders diagnostic text for the user. It is strictly
// write-only and decides no policy; every verdict it prints was made
// upstream.
type Reporter interface {
	// Benchmarking announces that a benchmark is starting.
	Benchmarking(id core.BenchmarkID)
	// Stage announces a pipeline stage ("Performing linear
	// regression", ...).
	Stage(msg string)
	// Describe prints a one-line descriptive summary of the collected
	// per-iteration times.
	Describe(avgTimes []float64)

	// Abs prints time-formatted interval lines for absolute estimates.
	Abs(e estimate.Estimates)
	// Rel prints percent-formatted interval lines for relative
	// estimates.
	Rel(e estimate.Estimates)

	// Outliers prints the non-empty Tukey bands with count and
	// percentage.
	Outliers(ls *stats.LabeledSample)

	// Regression prints the slope interval and the R^2 values at both
	// interval endpoints.
	Regression(d *stats.Data, lb, ub stats.Slope)

	// TTest prints the two-sample t statistic, its bootstrap p-value
	// and whether it clears the significance level.
	TTest(t, p, significance float64, different bool)

	// ChangeVerdict prints the noise-threshold classification of one
	// relative estimate.
	ChangeVerdict(statistic estimate.Statistic, e estimate.Estimate, verdict estimate.ChangeVerdict)
}
