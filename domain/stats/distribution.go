package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Distribution is a bootstrap-produced collection of realizations of a
// scalar statistic. Downstream consumers treat it as an
// order-insensitive multiset; percentile lookups sort internally.
type Distribution struct {
	values []float64
}

// NewDistribution wraps values without copying.
func NewDistribution(values []float64) *Distribution {
	return &Distribution{values: values}
}

// Len returns the number of realizations.
func (d *Distribution) Len() int {
	return len(d.values)
}

// Values returns the underlying realizations; treat as read-only.
func (d *Distribution) Values() []float64 {
	return d.values
}

// Mean returns the mean of the realizations.
func (d *Distribution) Mean() float64 {
	return stat.Mean(d.values, nil)
}

// StdDev returns the Bessel-corrected standard deviation of the
// realizations, optionally around a precomputed mean.
func (d *Distribution) StdDev(mean *float64) float64 {
	if mean == nil {
		return stat.StdDev(d.values, nil)
	}
	return stdDevAbout(d.values, *mean)
}

// ConfidenceInterval returns the percentile-method interval at
// confidence level cl in (0, 1): the (1-cl)/2 and 1-(1-cl)/2
// percentiles of the distribution.
func (d *Distribution) ConfidenceInterval(cl float64) (lb, ub float64) {
	sorted := make([]float64, len(d.values))
	copy(sorted, d.values)
	sort.Float64s(sorted)

	tail := 50 * (1 - cl)
	return interpSorted(sorted, tail), interpSorted(sorted, 100-tail)
}

// PValue returns the two-sided bootstrap p-value for an observed
// point: the fraction of realizations whose magnitude exceeds the
// observed magnitude.
func (d *Distribution) PValue(point float64) float64 {
	abs := math.Abs(point)
	beyond := 0
	for _, v := range d.values {
		if math.Abs(v) > abs {
			beyond++
		}
	}
	return float64(beyond) / float64(len(d.values))
}
