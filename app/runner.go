// Package app orchestrates benchmark suites over the analysis
// pipeline.
package app

import (
	"context"
	"os/exec"

	"github.com/rs/zerolog"

	"benchlab/adapters/bootstrap"
	"benchlab/adapters/fsstore"
	"benchlab/adapters/plot"
	"benchlab/adapters/report"
	"benchlab/adapters/rng"
	"benchlab/adapters/routine"
	"benchlab/domain/core"
	"benchlab/internal/analysis"
	"benchlab/internal/config"
	"benchlab/ports"
)

// Benchmark pairs an id with the routine that produces its
// measurements.
type Benchmark struct {
	ID      core.BenchmarkID
	Routine ports.Routine
}

// Runner drives a set of benchmarks through the pipeline
// sequentially. A failing benchmark is reported and skipped; its
// siblings still run.
type Runner struct {
	cfg      *config.Config
	pipeline *analysis.Pipeline
	plotter  ports.Plotter
	log      zerolog.Logger

	benchmarks []Benchmark
	failed     int
}

// NewRunner wires the default adapters: filesystem store, stdout
// reporter, no-op plotter, and a bootstrap engine seeded per
// configuration.
func NewRunner(cfg *config.Config, log zerolog.Logger) *Runner {
	var seeds ports.SeedSource
	if cfg.Analysis.Seed != nil {
		seeds = rng.NewFixedSource(*cfg.Analysis.Seed)
	} else {
		seeds = rng.NewEntropySource()
	}
	engine := bootstrap.NewEngine(cfg.Analysis.Workers, seeds)
	store := fsstore.New(cfg.Output.Dir)
	plotter := plot.NewNoop()
	pipeline := analysis.New(cfg, store, report.NewStdout(), plotter, engine, log)

	return &Runner{cfg: cfg, pipeline: pipeline, plotter: plotter, log: log}
}

// NewRunnerWith wires explicit collaborators; tests use it.
func NewRunnerWith(cfg *config.Config, pipeline *analysis.Pipeline, plotter ports.Plotter, log zerolog.Logger) *Runner {
	return &Runner{cfg: cfg, pipeline: pipeline, plotter: plotter, log: log}
}

// Bench registers an in-process function benchmark.
func (r *Runner) Bench(id string, f func(b *routine.Bencher)) *Runner {
	r.add(id, routine.NewFunction(r.log, f))
	return r
}

// BenchGroup registers one function benchmark per named variant under
// a common group id.
func (r *Runner) BenchGroup(group string, variants map[string]func(b *routine.Bencher)) *Runner {
	for name, f := range variants {
		r.add(string(core.GroupID(group, name)), routine.NewFunction(r.log, f))
	}
	return r
}

// BenchProgram registers an external-process benchmark.
func (r *Runner) BenchProgram(id string, cmd func() *exec.Cmd) *Runner {
	r.add(id, routine.NewProcess(r.log, cmd))
	return r
}

func (r *Runner) add(id string, rt ports.Routine) {
	parsed, err := core.ParseBenchmarkID(id)
	if err != nil {
		r.log.Error().Err(err).Str("benchmark", id).Msg("rejecting benchmark id")
		r.failed++
		return
	}
	r.benchmarks = append(r.benchmarks, Benchmark{ID: parsed, Routine: rt})
}

// Run executes every registered benchmark and returns the number of
// failures. Group summaries are plotted when plotting is enabled.
func (r *Runner) Run(ctx context.Context) int {
	groups := map[string]bool{}

	for _, b := range r.benchmarks {
		if _, err := r.pipeline.Run(ctx, b.ID, b.Routine); err != nil {
			r.log.Error().Err(err).Str("benchmark", b.ID.String()).Msg("benchmark failed")
			r.failed++
			continue
		}
		if g := b.ID.Group(); g != "" {
			groups[g] = true
		}
	}

	if r.cfg.Output.Plotting {
		for g := range groups {
			if err := r.plotter.Summarize(core.BenchmarkID(g)); err != nil {
				r.log.Warn().Err(err).Str("group", g).Msg("group summary failed")
			}
		}
	}
	return r.failed
}
