package stats

import (
	"gonum.org/v1/gonum/stat"
)

// Slope is the coefficient of the no-intercept model y = slope * x.
type Slope float64

// FitSlope fits y = slope * x by ordinary least squares through the
// origin: slope = sum(x*y) / sum(x^2).
func FitSlope(d *Data) Slope {
	_, beta := stat.LinearRegression(d.x, d.y, nil, true)
	return Slope(beta)
}

// FitSlopeRaw fits the through-origin slope over raw vectors of equal
// length, skipping Data construction. Bootstrap resamples use this.
func FitSlopeRaw(x, y []float64) float64 {
	_, beta := stat.LinearRegression(x, y, nil, true)
	return beta
}

// RSquared is the coefficient of determination for the no-intercept
// model: 1 - sum((y - slope*x)^2) / sum(y^2). The denominator is
// uncentered, which matches a through-origin fit but differs from the
// centered R^2 of a model with intercept.
func (s Slope) RSquared(d *Data) float64 {
	ssRes := 0.0
	ssTot := 0.0
	for i, x := range d.x {
		y := d.y[i]
		r := y - float64(s)*x
		ssRes += r * r
		ssTot += y * y
	}
	return 1 - ssRes/ssTot
}
