package analysis

import (
	"context"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
	"benchlab/internal/errors"
	"benchlab/internal/logging"
	"benchlab/ports"
)

// compare runs the base-vs-new change detection: a bootstrap t-test on
// the two per-iteration samples, relative estimates of the univariate
// statistics and the slope, and the noise-threshold classification.
//
// A missing or degenerate base sample aborts the comparison without
// failing the run; the caller downgrades the error to a warning.
func (p *Pipeline) compare(ctx context.Context, id core.BenchmarkID, data *stats.Data, avgTimes *stats.Sample) error {
	baseM, err := p.store.LoadBaseMeasurement(id)
	if err != nil {
		return errors.Wrap(err, "base sample unreadable")
	}
	if baseM.Len() < 2 {
		return errors.InvalidInput("base sample is too short to compare")
	}
	baseAvg, err := stats.NewSample(baseM.AvgTimes())
	if err != nil {
		return errors.Wrap(err, "base sample is degenerate")
	}

	if err := p.tTest(ctx, baseAvg, avgTimes); err != nil {
		return err
	}

	rel, err := p.relativeEstimates(ctx, baseAvg, avgTimes, baseM.Data(), data)
	if err != nil {
		return err
	}

	p.rep.Rel(rel)
	for _, statistic := range estimate.All() {
		est, ok := rel[statistic]
		if !ok {
			continue
		}
		verdict := estimate.ClassifyChange(est, p.cfg.Analysis.NoiseThreshold)
		p.rep.ChangeVerdict(statistic, est, verdict)
	}

	return p.store.SaveEstimates(id, ports.EstimatesChange, rel)
}

// tTest evaluates the observed two-sample t statistic against its
// bootstrap null distribution. The analytic Welch p-value is logged as
// a cross-check but plays no part in the verdict.
func (p *Pipeline) tTest(ctx context.Context, base, current *stats.Sample) error {
	observed := stats.TStatistic(base.Values(), current.Values())

	dists, err := logging.Elapsed2(p.log, "bootstrapping the t distribution", func() ([]*stats.Distribution, error) {
		return p.engine.TwoSample(ctx, base, current, p.cfg.Analysis.NResamples, 1,
			func(a, b, out []float64) {
				out[0] = stats.TStatistic(a, b)
			})
	})
	if err != nil {
		return err
	}

	pValue := dists[0].PValue(observed)
	different := pValue < p.cfg.Analysis.SignificanceLevel
	p.rep.TTest(observed, pValue, p.cfg.Analysis.SignificanceLevel, different)

	if df := stats.WelchDF(base.Values(), current.Values()); df > 0 && !math.IsNaN(observed) {
		tDist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
		analytic := 2 * tDist.CDF(-math.Abs(observed))
		p.log.Debug().
			Float64("t", observed).
			Float64("bootstrap_p", pValue).
			Float64("welch_p", analytic).
			Float64("df", df).
			Msg("two-sample t-test")
	}
	return nil
}

// relativeEstimates bootstraps (new - base) / base for the four
// univariate statistics with shared draws, plus the relative slope
// from the two bivariate datasets.
func (p *Pipeline) relativeEstimates(ctx context.Context, baseAvg, newAvg *stats.Sample, baseData, newData *stats.Data) (estimate.Estimates, error) {
	cl := p.cfg.Analysis.ConfidenceLevel
	nres := p.cfg.Analysis.NResamples
	statistics := estimate.Univariate()

	points := make(map[estimate.Statistic]float64, len(statistics)+1)
	baseQ := pointQuartet(baseAvg)
	newQ := pointQuartet(newAvg)
	for i, statistic := range statistics {
		points[statistic] = (newQ[i] - baseQ[i]) / baseQ[i]
	}

	nBase, nNew := baseAvg.Len(), newAvg.Len()
	raw, err := logging.Elapsed2(p.log, "bootstrapping the relative statistics", func() ([]*stats.Distribution, error) {
		return p.engine.TwoSample(ctx, baseAvg, newAvg, nres, 4,
			func(a, b, out []float64) {
				scratchA := make([]float64, nBase)
				scratchB := make([]float64, nNew)
				am, amed, amad, asd := stats.Quartet(a, scratchA)
				bm, bmed, bmad, bsd := stats.Quartet(b, scratchB)
				out[0] = (bm - am) / am
				out[1] = (bmed - amed) / amed
				out[2] = (bmad - amad) / amad
				out[3] = (bsd - asd) / asd
			})
	})
	if err != nil {
		return nil, err
	}

	dists := make(estimate.Distributions, len(statistics)+1)
	for i, statistic := range statistics {
		dists[statistic] = raw[i]
	}

	baseSlope := float64(stats.FitSlope(baseData))
	newSlope := float64(stats.FitSlope(newData))
	points[estimate.Slope] = (newSlope - baseSlope) / baseSlope

	slopeDists, err := logging.Elapsed2(p.log, "bootstrapping the relative slope", func() ([]*stats.Distribution, error) {
		return p.engine.TwoSampleBivariate(ctx, baseData, newData, nres, 1,
			func(ax, ay, bx, by, out []float64) {
				sa := stats.FitSlopeRaw(ax, ay)
				sb := stats.FitSlopeRaw(bx, by)
				out[0] = (sb - sa) / sa
			})
	})
	if err != nil {
		return nil, err
	}
	dists[estimate.Slope] = slopeDists[0]

	rel := estimate.New(dists, points, cl)

	// A zero base statistic (a perfectly constant sample has zero
	// std dev and MAD) makes its relative change undefined. Such
	// entries are dropped rather than persisted as non-finite values.
	for statistic, est := range rel {
		if !finiteEstimate(est) {
			p.log.Debug().Str("statistic", statistic.String()).Msg("dropping undefined relative estimate")
			delete(rel, statistic)
		}
	}
	return rel, nil
}

func finiteEstimate(e estimate.Estimate) bool {
	for _, v := range []float64{
		e.PointEstimate,
		e.StandardError,
		e.ConfidenceInterval.LowerBound,
		e.ConfidenceInterval.UpperBound,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// pointQuartet evaluates the four statistics on the original sample,
// in estimator order.
func pointQuartet(s *stats.Sample) [4]float64 {
	scratch := make([]float64, s.Len())
	mean, median, mad, sd := stats.Quartet(s.Values(), scratch)
	return [4]float64{mean, median, mad, sd}
}
