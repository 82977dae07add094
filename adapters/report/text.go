// Package report renders the engine's human-readable stdout summary.
package report

import (
	"fmt"
	"io"
	"os"

	mstats "github.com/montanaflynn/stats"

	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
	"benchlab/internal/format"
)

// Text writes line-oriented diagnostics. Output is for humans, not
// machines; nothing downstream parses it.
type Text struct {
	w io.Writer
}

// NewText creates a reporter writing to w.
func NewText(w io.Writer) *Text {
	return &Text{w: w}
}

// NewStdout creates a reporter writing to standard output.
func NewStdout() *Text {
	return NewText(os.Stdout)
}

// Benchmarking announces the start of a benchmark. The descriptive
// summary of its sample is printed separately by Describe.
func (t *Text) Benchmarking(id core.BenchmarkID) {
	fmt.Fprintf(t.w, "Benchmarking %s\n", id)
}

// Stage announces a pipeline stage.
func (t *Text) Stage(msg string) {
	fmt.Fprintf(t.w, "> %s\n", msg)
}

// Abs prints one time-formatted interval line per absolute estimate.
func (t *Text) Abs(e estimate.Estimates) {
	for _, statistic := range estimate.All() {
		est, ok := e[statistic]
		if !ok {
			continue
		}
		ci := est.ConfidenceInterval
		fmt.Fprintf(t.w, "  > %14s [%s %s]\n",
			statistic, format.Time(ci.LowerBound), format.Time(ci.UpperBound))
	}
}

// Rel prints one percent-formatted interval line per relative
// estimate.
func (t *Text) Rel(e estimate.Estimates) {
	for _, statistic := range estimate.All() {
		est, ok := e[statistic]
		if !ok {
			continue
		}
		ci := est.ConfidenceInterval
		fmt.Fprintf(t.w, "  > %14s [%s %s]\n",
			statistic,
			format.Change(ci.LowerBound, true), format.Change(ci.UpperBound, true))
	}
}

// Outliers names each non-empty band with count and percentage.
func (t *Text) Outliers(ls *stats.LabeledSample) {
	lowSevere, lowMild, _, highMild, highSevere := ls.Count()
	total := lowSevere + lowMild + highMild + highSevere
	if total == 0 {
		return
	}

	size := ls.Sample().Len()
	percent := func(n int) float64 { return 100 * float64(n) / float64(size) }

	fmt.Fprintf(t.w, "> Found %d outliers among %d measurements (%.2f%%)\n",
		total, size, percent(total))

	band := func(n int, label string) {
		if n != 0 {
			fmt.Fprintf(t.w, "  > %d (%.2f%%) %s\n", n, percent(n), label)
		}
	}
	band(lowSevere, "low severe")
	band(lowMild, "low mild")
	band(highMild, "high mild")
	band(highSevere, "high severe")
}

// Regression prints the slope interval and the R^2 at both interval
// endpoints. The R^2 uses the uncentered through-origin formula, so it
// can read higher than a centered R^2 would.
func (t *Text) Regression(d *stats.Data, lb, ub stats.Slope) {
	fmt.Fprintf(t.w, "  > %14s [%s %s]\n",
		"slope", format.Time(float64(lb)), format.Time(float64(ub)))
	fmt.Fprintf(t.w, "  > %14s  %0.7f %0.7f\n",
		"R^2", lb.RSquared(d), ub.RSquared(d))
}

// TTest prints the two-sample t statistic, its bootstrap p-value and
// the verdict against the significance level.
func (t *Text) TTest(tStat, p, significance float64, different bool) {
	fmt.Fprintf(t.w, "> Performing a two-sample t-test\n")
	verdict := "No change in performance detected"
	if different {
		verdict = "Performance has changed"
	}
	fmt.Fprintf(t.w, "  > t = %.4f, p = %.4f (significance level %.2f)\n", tStat, p, significance)
	fmt.Fprintf(t.w, "  > %s\n", verdict)
}

// ChangeVerdict prints the noise-threshold classification of one
// relative estimate.
func (t *Text) ChangeVerdict(statistic estimate.Statistic, e estimate.Estimate, verdict estimate.ChangeVerdict) {
	fmt.Fprintf(t.w, "  > %14s %s (%s)\n",
		statistic, format.Change(e.PointEstimate, true), verdict)
}

// Describe prints a one-line descriptive summary of the per-iteration
// times: min, mean and max.
func (t *Text) Describe(avgTimes []float64) {
	min, err := mstats.Min(avgTimes)
	if err != nil {
		return
	}
	mean, _ := mstats.Mean(avgTimes)
	max, _ := mstats.Max(avgTimes)
	fmt.Fprintf(t.w, "> Collected %d samples: min %s, mean %s, max %s\n",
		len(avgTimes), format.Time(min), format.Time(mean), format.Time(max))
}
