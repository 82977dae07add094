package estimate

import (
	"testing"
)

func ci(lb, ub float64) Estimate {
	return Estimate{
		ConfidenceInterval: ConfidenceInterval{ConfidenceLevel: 0.95, LowerBound: lb, UpperBound: ub},
		PointEstimate:      (lb + ub) / 2,
	}
}

func TestClassifyChange(t *testing.T) {
	const threshold = 0.02

	cases := []struct {
		name string
		est  Estimate
		want ChangeVerdict
	}{
		{"inside band", ci(-0.01, 0.015), VerdictWithinNoise},
		{"exactly on band", ci(-0.02, 0.02), VerdictWithinNoise},
		{"entirely above", ci(0.05, 0.2), VerdictRegressed},
		{"entirely below", ci(-0.2, -0.05), VerdictImproved},
		{"straddles band", ci(-0.1, 0.1), VerdictInconclusive},
		{"overlaps upper edge", ci(0.01, 0.05), VerdictInconclusive},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := ClassifyChange(c.est, threshold); got != c.want {
				t.Fatalf("ClassifyChange(%+v) = %q, want %q", c.est.ConfidenceInterval, got, c.want)
			}
		})
	}
}

func TestClassifyChangeZeroThreshold(t *testing.T) {
	if got := ClassifyChange(ci(0.001, 0.002), 0); got != VerdictRegressed {
		t.Fatalf("verdict = %q, want regressed", got)
	}
	if got := ClassifyChange(ci(-0.002, -0.001), 0); got != VerdictImproved {
		t.Fatalf("verdict = %q, want improved", got)
	}
}
