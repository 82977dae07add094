// Package analysis is the pipeline that turns one raw measurement into
// labeled statistical estimates: outlier classification, through-origin
// regression with a bootstrap interval, bootstrap estimates of the
// univariate statistics, artifact persistence, and the base-vs-new
// comparison when a base run exists.
package analysis

import (
	"context"

	"github.com/rs/zerolog"

	"benchlab/adapters/bootstrap"
	"benchlab/domain/bench"
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/run"
	"benchlab/domain/stats"
	"benchlab/internal/config"
	"benchlab/internal/errors"
	"benchlab/internal/logging"
	"benchlab/ports"
)

// Pipeline wires the analysis stages to their collaborators.
type Pipeline struct {
	cfg     *config.Config
	store   ports.ArtifactStore
	rep     ports.Reporter
	plotter ports.Plotter
	engine  *bootstrap.Engine
	log     zerolog.Logger
}

// New creates a pipeline. plotter may be nil when plotting is
// disabled.
func New(cfg *config.Config, store ports.ArtifactStore, rep ports.Reporter, plotter ports.Plotter, engine *bootstrap.Engine, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:     cfg,
		store:   store,
		rep:     rep,
		plotter: plotter,
		engine:  engine,
		log:     log,
	}
}

// Run measures one benchmark and analyzes the result. It returns the
// percentile view of the per-iteration times so callers can summarize
// groups.
//
// The previous run is promoted to base before any new artifact is
// written, so a subsequent run always sees this one as base/.
func (p *Pipeline) Run(ctx context.Context, id core.BenchmarkID, routine ports.Routine) (*stats.Percentiles, error) {
	p.rep.Benchmarking(id)

	iters, times, err := routine.Sample(ctx, p.cfg.Plan())
	if err != nil {
		return nil, errors.Wrap(err, "sampling failed")
	}
	m, err := bench.NewMeasurement(iters, times)
	if err != nil {
		return nil, err
	}

	if err := p.store.PromoteNewToBase(id); err != nil {
		return nil, err
	}

	manifest := run.NewManifest(id, p.cfg.Analysis.Seed)
	manifest.ConfidenceLevel = p.cfg.Analysis.ConfidenceLevel
	manifest.NResamples = p.cfg.Analysis.NResamples
	manifest.NoiseThreshold = p.cfg.Analysis.NoiseThreshold
	manifest.SignificanceLevel = p.cfg.Analysis.SignificanceLevel
	manifest.SampleCount = m.Len()

	avgTimes, err := stats.NewSample(m.AvgTimes())
	if err != nil {
		return nil, err
	}
	p.rep.Describe(avgTimes.Values())

	data := m.Data()
	labeled := p.outliers(id, avgTimes)

	if p.plotting() {
		if err := p.plotter.PDF(id, data, labeled); err != nil {
			p.log.Warn().Err(err).Str("benchmark", id.String()).Msg("pdf plot failed")
		}
	}

	slopeDist, slopeEst, err := p.regression(ctx, id, data)
	if err != nil {
		return nil, err
	}

	dists, ests, err := p.estimates(ctx, avgTimes)
	if err != nil {
		return nil, err
	}
	ests[estimate.Slope] = slopeEst
	dists[estimate.Slope] = slopeDist

	if p.plotting() {
		if err := p.plotter.AbsDistributions(id, dists, ests); err != nil {
			p.log.Warn().Err(err).Str("benchmark", id.String()).Msg("distribution plot failed")
		}
	}

	if err := p.store.SaveMeasurement(id, m); err != nil {
		return nil, err
	}
	if err := p.store.SaveEstimates(id, ports.EstimatesNew, ests); err != nil {
		return nil, err
	}
	manifest.Finish()
	if err := p.store.SaveManifest(id, manifest); err != nil {
		return nil, err
	}

	if p.store.HasBase(id) {
		if err := p.compare(ctx, id, data, avgTimes); err != nil {
			// A broken base run must not fail the current one.
			p.log.Warn().Err(err).Str("benchmark", id.String()).Msg("comparison skipped")
		}
	}

	return avgTimes.Percentiles(), nil
}

// outliers classifies the sample against its Tukey fences, reports the
// bands, and persists the fence values.
func (p *Pipeline) outliers(id core.BenchmarkID, avgTimes *stats.Sample) *stats.LabeledSample {
	labeled := stats.ClassifyOutliers(avgTimes)
	p.rep.Outliers(labeled)
	if err := p.store.SaveFences(id, labeled.Fences()); err != nil {
		p.log.Warn().Err(err).Str("benchmark", id.String()).Msg("failed to persist fences")
	}
	return labeled
}

// regression fits the through-origin slope on the unresampled data and
// bootstraps its confidence interval over paired resamples.
func (p *Pipeline) regression(ctx context.Context, id core.BenchmarkID, data *stats.Data) (*stats.Distribution, estimate.Estimate, error) {
	cl := p.cfg.Analysis.ConfidenceLevel
	p.rep.Stage("Performing linear regression")

	dists, err := logging.Elapsed2(p.log, "bootstrapped linear regression", func() ([]*stats.Distribution, error) {
		return p.engine.Bivariate(ctx, data, p.cfg.Analysis.NResamples, 1,
			func(x, y, out []float64) {
				out[0] = stats.FitSlopeRaw(x, y)
			})
	})
	if err != nil {
		return nil, estimate.Estimate{}, err
	}
	dist := dists[0]

	point := stats.FitSlope(data)
	lb, ub := dist.ConfidenceInterval(cl)
	p.rep.Regression(data, stats.Slope(lb), stats.Slope(ub))

	if p.plotting() {
		if err := p.plotter.Regression(id, data, point, stats.Slope(lb), stats.Slope(ub)); err != nil {
			p.log.Warn().Err(err).Str("benchmark", id.String()).Msg("regression plot failed")
		}
	}

	est := estimate.Estimate{
		ConfidenceInterval: estimate.ConfidenceInterval{
			ConfidenceLevel: cl,
			LowerBound:      lb,
			UpperBound:      ub,
		},
		PointEstimate: float64(point),
		StandardError: dist.StdDev(nil),
	}
	return dist, est, nil
}

// estimates bootstraps the four univariate statistics with shared
// index draws and assembles their point + interval estimates.
func (p *Pipeline) estimates(ctx context.Context, avgTimes *stats.Sample) (estimate.Distributions, estimate.Estimates, error) {
	p.rep.Stage("Estimating the statistics of the sample")

	statistics := estimate.Univariate()
	points := make(map[estimate.Statistic]float64, len(statistics))
	mean := avgTimes.Mean()
	median := avgTimes.Median()
	points[estimate.Mean] = mean
	points[estimate.Median] = median
	points[estimate.MedianAbsDev] = avgTimes.MedianAbsDev(&median)
	points[estimate.StdDev] = avgTimes.StdDev(&mean)

	n := avgTimes.Len()
	raw, err := logging.Elapsed2(p.log, "bootstrapping the absolute statistics", func() ([]*stats.Distribution, error) {
		return p.engine.Univariate(ctx, avgTimes, p.cfg.Analysis.NResamples, 4,
			func(xs, out []float64) {
				scratch := make([]float64, n)
				out[0], out[1], out[2], out[3] = stats.Quartet(xs, scratch)
			})
	})
	if err != nil {
		return nil, nil, err
	}

	dists := make(estimate.Distributions, len(statistics)+1)
	for i, statistic := range statistics {
		dists[statistic] = raw[i]
	}

	ests := estimate.New(dists, points, p.cfg.Analysis.ConfidenceLevel)
	p.rep.Abs(ests)
	return dists, ests, nil
}

func (p *Pipeline) plotting() bool {
	return p.cfg.Output.Plotting && p.plotter != nil
}
