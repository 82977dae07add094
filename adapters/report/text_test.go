package report

import (
	"bytes"
	"strings"
	"testing"

	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
)

func est(point, lb, ub float64) estimate.Estimate {
	return estimate.Estimate{
		ConfidenceInterval: estimate.ConfidenceInterval{ConfidenceLevel: 0.95, LowerBound: lb, UpperBound: ub},
		PointEstimate:      point,
	}
}

func TestAbsLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	r.Benchmarking(core.BenchmarkID("sort/small"))
	r.Abs(estimate.Estimates{
		estimate.Mean:  est(100, 95, 105),
		estimate.Slope: est(100, 99, 101),
	})

	out := buf.String()
	if !strings.Contains(out, "Benchmarking sort/small") {
		t.Fatalf("missing header: %q", out)
	}
	if !strings.Contains(out, "mean [95.000 ns 105.00 ns]") {
		t.Fatalf("missing mean line: %q", out)
	}
	if !strings.Contains(out, "slope [99.000 ns 101.00 ns]") {
		t.Fatalf("missing slope line: %q", out)
	}
}

func TestRelLines(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	r.Rel(estimate.Estimates{
		estimate.Mean: est(0.10, 0.08, 0.12),
	})
	if !strings.Contains(buf.String(), "mean [+8.0000% +12.0000%]") {
		t.Fatalf("unexpected rel output: %q", buf.String())
	}
}

func TestOutlierReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	s, err := stats.NewSample([]float64{10, 10, 10, 10, 10, 10, 10, 10, 10, 1000})
	if err != nil {
		t.Fatal(err)
	}
	r.Outliers(stats.ClassifyOutliers(s))

	out := buf.String()
	if !strings.Contains(out, "Found 1 outliers among 10 measurements (10.00%)") {
		t.Fatalf("missing summary: %q", out)
	}
	if !strings.Contains(out, "1 (10.00%) high severe") {
		t.Fatalf("missing band line: %q", out)
	}
	if strings.Contains(out, "low mild") {
		t.Fatalf("empty band printed: %q", out)
	}
}

func TestOutlierReportSilentWhenClean(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	s, err := stats.NewSample([]float64{1, 2, 3, 4, 5})
	if err != nil {
		t.Fatal(err)
	}
	r.Outliers(stats.ClassifyOutliers(s))
	if buf.Len() != 0 {
		t.Fatalf("expected no output for a clean sample, got %q", buf.String())
	}
}

func TestRegressionReportsBothR2(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	d, err := stats.NewData([]float64{1, 2, 3}, []float64{2, 4, 6})
	if err != nil {
		t.Fatal(err)
	}
	r.Regression(d, stats.Slope(1.9), stats.Slope(2.1))

	out := buf.String()
	if !strings.Contains(out, "slope") || !strings.Contains(out, "R^2") {
		t.Fatalf("incomplete regression report: %q", out)
	}
}

func TestTTestVerdicts(t *testing.T) {
	var buf bytes.Buffer
	r := NewText(&buf)

	r.TTest(5.5, 0.001, 0.05, true)
	if !strings.Contains(buf.String(), "Performance has changed") {
		t.Fatalf("missing changed verdict: %q", buf.String())
	}

	buf.Reset()
	r.TTest(0.3, 0.78, 0.05, false)
	if !strings.Contains(buf.String(), "No change in performance detected") {
		t.Fatalf("missing no-change verdict: %q", buf.String())
	}
}
