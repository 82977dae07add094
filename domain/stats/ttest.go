package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// TStatistic computes the two-sample t statistic with unpooled
// variances, t = (mean(a) - mean(b)) / sqrt(var(a)/na + var(b)/nb).
// The comparator evaluates it against a bootstrap null distribution
// rather than a t table, so no degrees-of-freedom correction is
// applied here.
func TStatistic(a, b []float64) float64 {
	na := float64(len(a))
	nb := float64(len(b))

	meanA := stat.Mean(a, nil)
	meanB := stat.Mean(b, nil)
	varA := variance(a, meanA)
	varB := variance(b, meanB)

	return (meanA - meanB) / math.Sqrt(varA/na+varB/nb)
}

// WelchDF returns the Welch-Satterthwaite degrees of freedom for the
// two samples. Used only for the analytic p-value diagnostic.
func WelchDF(a, b []float64) float64 {
	na := float64(len(a))
	nb := float64(len(b))
	va := variance(a, stat.Mean(a, nil)) / na
	vb := variance(b, stat.Mean(b, nil)) / nb

	return (va + vb) * (va + vb) / (va*va/(na-1) + vb*vb/(nb-1))
}

func variance(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	sumSq := 0.0
	for _, x := range xs {
		d := x - mean
		sumSq += d * d
	}
	return sumSq / float64(len(xs)-1)
}
