package estimate

import (
	"benchlab/domain/stats"
)

// ConfidenceInterval bounds an estimate at a given confidence level.
type ConfidenceInterval struct {
	ConfidenceLevel float64 `json:"confidence_level"`
	LowerBound      float64 `json:"lower_bound"`
	UpperBound      float64 `json:"upper_bound"`
}

// Estimate is a point estimate with its bootstrap-derived interval and
// standard error. The point estimate comes from the original sample;
// the interval from the bootstrap percentile method. For skewed
// bootstrap distributions the point can fall outside the interval;
// that behavior is preserved deliberately (no bias correction).
type Estimate struct {
	ConfidenceInterval ConfidenceInterval `json:"confidence_interval"`
	PointEstimate      float64            `json:"point_estimate"`
	StandardError      float64            `json:"standard_error"`
}

// Estimates maps each produced Statistic to its Estimate. After the
// estimator runs, all five keys are present.
type Estimates map[Statistic]Estimate

// Distributions maps each produced Statistic to its bootstrap
// distribution.
type Distributions map[Statistic]*stats.Distribution

// New assembles one Estimate per distribution: the supplied point
// estimate, the percentile interval at confidence level cl, and the
// distribution's standard deviation as standard error.
func New(dists Distributions, points map[Statistic]float64, cl float64) Estimates {
	estimates := make(Estimates, len(dists))
	for statistic, dist := range dists {
		lb, ub := dist.ConfidenceInterval(cl)
		estimates[statistic] = Estimate{
			ConfidenceInterval: ConfidenceInterval{
				ConfidenceLevel: cl,
				LowerBound:      lb,
				UpperBound:      ub,
			},
			PointEstimate: points[statistic],
			StandardError: dist.StdDev(nil),
		}
	}
	return estimates
}
