package app

import (
	"context"
	"io"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchlab/adapters/bootstrap"
	"benchlab/adapters/plot"
	"benchlab/adapters/report"
	"benchlab/adapters/rng"
	"benchlab/adapters/routine"
	"benchlab/domain/core"
	"benchlab/internal/analysis"
	"benchlab/internal/config"
	"benchlab/internal/logging"
	"benchlab/internal/testkit"
	"benchlab/ports"
)

func fastConfig() *config.Config {
	cfg := config.Default()
	cfg.Analysis.NResamples = 500
	cfg.Analysis.Workers = 2
	seed := int64(7)
	cfg.Analysis.Seed = &seed
	cfg.Sampling.SampleSize = 5
	cfg.Sampling.WarmUpTime = 5 * time.Millisecond
	cfg.Sampling.MeasurementTime = 20 * time.Millisecond
	return cfg
}

func newTestRunner(cfg *config.Config) (*Runner, *testkit.MemStore) {
	store := testkit.NewMemStore()
	engine := bootstrap.NewEngine(cfg.Analysis.Workers, rng.NewFixedSource(*cfg.Analysis.Seed))
	pipeline := analysis.New(cfg, store, report.NewText(io.Discard), plot.NewNoop(), engine, logging.Nop())
	return NewRunnerWith(cfg, pipeline, plot.NewNoop(), logging.Nop()), store
}

func TestRunnerExecutesFunctionBenchmark(t *testing.T) {
	cfg := fastConfig()
	r, store := newTestRunner(cfg)

	r.Bench("spin", func(b *routine.Bencher) {
		b.Iter(func() {
			// A short busy loop keeps per-iteration cost measurable.
			for i := 0; i < 50; i++ {
				_ = i * i
			}
		})
	})

	failed := r.Run(context.Background())
	assert.Zero(t, failed)

	ests, err := store.LoadEstimates(core.BenchmarkID("spin"), ports.EstimatesNew)
	require.NoError(t, err)
	assert.Len(t, ests, 5)
}

func TestRunnerIsolatesFailures(t *testing.T) {
	cfg := fastConfig()
	r, store := newTestRunner(cfg)

	// A program that does not exist fails at sampling time; the
	// sibling benchmark must still run.
	r.BenchProgram("doomed", func() *exec.Cmd {
		return exec.Command("/nonexistent/benchlab-helper")
	})
	r.Bench("survivor", func(b *routine.Bencher) {
		b.Iter(func() {})
	})

	failed := r.Run(context.Background())
	assert.Equal(t, 1, failed)

	_, err := store.LoadEstimates(core.BenchmarkID("survivor"), ports.EstimatesNew)
	assert.NoError(t, err)
}

func TestRunnerRejectsUnsafeIDs(t *testing.T) {
	cfg := fastConfig()
	r, _ := newTestRunner(cfg)

	r.Bench("../escape", func(b *routine.Bencher) {
		b.Iter(func() {})
	})

	failed := r.Run(context.Background())
	assert.Equal(t, 1, failed)
}

func TestRunnerGroupIDs(t *testing.T) {
	cfg := fastConfig()
	r, store := newTestRunner(cfg)

	r.BenchGroup("ops", map[string]func(b *routine.Bencher){
		"noop": func(b *routine.Bencher) { b.Iter(func() {}) },
	})

	failed := r.Run(context.Background())
	assert.Zero(t, failed)

	ids, err := store.List()
	require.NoError(t, err)
	assert.Contains(t, ids, core.BenchmarkID("ops/noop"))
}
