// Package stats holds the numeric core of the analysis pipeline:
// univariate samples and their summary statistics, bootstrap
// distributions, Tukey outlier labeling, and bivariate regression.
package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"benchlab/internal/errors"
)

// Sample is an immutable view over a non-empty ordered sequence of
// finite float64 observations.
//
// Dispersion statistics (StdDev, MedianAbsDev) assume len >= 2; the
// analysis driver enforces that once at entry so the per-resample hot
// path does not re-check.
type Sample struct {
	xs []float64
}

// NewSample validates xs and wraps it without copying. The caller must
// not mutate xs afterwards.
func NewSample(xs []float64) (*Sample, error) {
	if len(xs) == 0 {
		return nil, errors.InvalidInput("sample cannot be empty")
	}
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, errors.InvalidInput("sample contains a non-finite observation")
		}
	}
	return &Sample{xs: xs}, nil
}

// Len returns the number of observations.
func (s *Sample) Len() int {
	return len(s.xs)
}

// Values returns the underlying observations. The slice is shared, not
// copied; treat it as read-only.
func (s *Sample) Values() []float64 {
	return s.xs
}

// Mean returns the arithmetic mean.
func (s *Sample) Mean() float64 {
	return stat.Mean(s.xs, nil)
}

// StdDev returns the Bessel-corrected standard deviation (divisor n-1).
// A precomputed mean may be passed to avoid a second pass; the caller
// guarantees its consistency.
func (s *Sample) StdDev(mean *float64) float64 {
	if mean == nil {
		return stat.StdDev(s.xs, nil)
	}
	return stdDevAbout(s.xs, *mean)
}

// Median returns the 50th percentile.
func (s *Sample) Median() float64 {
	return s.Percentiles().Median()
}

// MedianAbsDev returns the median absolute deviation,
// median(|x - median(x)|), unscaled. A precomputed median may be passed
// to avoid resorting the sample.
func (s *Sample) MedianAbsDev(median *float64) float64 {
	m := 0.0
	if median == nil {
		m = s.Median()
	} else {
		m = *median
	}
	devs := make([]float64, len(s.xs))
	for i, x := range s.xs {
		devs[i] = math.Abs(x - m)
	}
	sort.Float64s(devs)
	return interpSorted(devs, 50)
}

// Percentiles sorts a copy of the sample and returns the quantile view.
func (s *Sample) Percentiles() *Percentiles {
	sorted := make([]float64, len(s.xs))
	copy(sorted, s.xs)
	sort.Float64s(sorted)
	return &Percentiles{sorted: sorted}
}

// stdDevAbout is the Bessel-corrected standard deviation around a
// supplied mean, accumulated left to right so results are reproducible
// on a given platform.
func stdDevAbout(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)-1))
}

// Quartet computes the four univariate statistics of the estimator in
// one call: mean, median, median absolute deviation and standard
// deviation. scratch must have the same length as xs; it is clobbered.
// Evaluating all four on the same view is what lets a bootstrap share
// index draws across the statistics.
func Quartet(xs, scratch []float64) (mean, median, mad, stdDev float64) {
	mean = stat.Mean(xs, nil)
	stdDev = stdDevAbout(xs, mean)

	copy(scratch, xs)
	sort.Float64s(scratch)
	median = interpSorted(scratch, 50)

	for i, x := range xs {
		scratch[i] = math.Abs(x - median)
	}
	sort.Float64s(scratch)
	mad = interpSorted(scratch, 50)
	return mean, median, mad, stdDev
}
