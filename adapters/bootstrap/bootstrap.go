// Package bootstrap drives resampling with replacement: it produces
// empirical distributions of arbitrary statistics by re-evaluating
// them over resampled views of the input.
package bootstrap

import (
	"context"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"benchlab/domain/stats"
	"benchlab/internal/errors"
	"benchlab/ports"
)

// StatFunc evaluates a tuple of statistics over one univariate
// resample, writing one scalar per tuple component into out.
type StatFunc func(xs []float64, out []float64)

// BivariateStatFunc evaluates a tuple of statistics over one paired
// resample of bivariate data.
type BivariateStatFunc func(x, y []float64, out []float64)

// TwoSampleStatFunc evaluates a tuple of statistics over one resample
// of each of two samples.
type TwoSampleStatFunc func(a, b []float64, out []float64)

// Engine partitions bootstrap iterations across workers. Each
// invocation owns its RNG, seeded from the configured source; within
// an invocation, partition i runs an independent stream seeded seed+i,
// so the produced distributions are deterministic for a given
// (seed, workers) pair.
type Engine struct {
	workers int
	seeds   ports.SeedSource
}

// NewEngine creates an engine with the given partition count; workers
// <= 0 means GOMAXPROCS.
func NewEngine(workers int, seeds ports.SeedSource) *Engine {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{workers: workers, seeds: seeds}
}

// Univariate draws nresamples resamples of s (each of len(s) indices,
// uniformly with replacement) and applies stat to each, returning one
// Distribution per tuple component.
func (e *Engine) Univariate(ctx context.Context, s *stats.Sample, nresamples, width int, stat StatFunc) ([]*stats.Distribution, error) {
	if err := checkResamples(nresamples); err != nil {
		return nil, err
	}

	xs := s.Values()
	results := newResults(width, nresamples)

	err := e.run(ctx, nresamples, func(rng *rand.Rand, lo, hi int) {
		resampled := make([]float64, len(xs))
		out := make([]float64, width)
		for i := lo; i < hi; i++ {
			for j := range resampled {
				resampled[j] = xs[rng.Intn(len(xs))]
			}
			stat(resampled, out)
			for w := 0; w < width; w++ {
				results[w][i] = out[w]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toDistributions(results), nil
}

// Bivariate resamples (x, y) pairs: both vectors are indexed by the
// same drawn index vector, preserving the pairing.
func (e *Engine) Bivariate(ctx context.Context, d *stats.Data, nresamples, width int, stat BivariateStatFunc) ([]*stats.Distribution, error) {
	if err := checkResamples(nresamples); err != nil {
		return nil, err
	}

	x, y := d.X(), d.Y()
	results := newResults(width, nresamples)

	err := e.run(ctx, nresamples, func(rng *rand.Rand, lo, hi int) {
		rx := make([]float64, len(x))
		ry := make([]float64, len(y))
		out := make([]float64, width)
		for i := lo; i < hi; i++ {
			for j := range rx {
				k := rng.Intn(len(x))
				rx[j] = x[k]
				ry[j] = y[k]
			}
			stat(rx, ry, out)
			for w := 0; w < width; w++ {
				results[w][i] = out[w]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toDistributions(results), nil
}

// TwoSample resamples a and b independently within each iteration
// (each with its own length) and applies stat to the pair. The tuple
// components share the same draws, so comparative statistics stay
// consistent across components.
func (e *Engine) TwoSample(ctx context.Context, a, b *stats.Sample, nresamples, width int, stat TwoSampleStatFunc) ([]*stats.Distribution, error) {
	if err := checkResamples(nresamples); err != nil {
		return nil, err
	}

	as, bs := a.Values(), b.Values()
	results := newResults(width, nresamples)

	err := e.run(ctx, nresamples, func(rng *rand.Rand, lo, hi int) {
		ra := make([]float64, len(as))
		rb := make([]float64, len(bs))
		out := make([]float64, width)
		for i := lo; i < hi; i++ {
			for j := range ra {
				ra[j] = as[rng.Intn(len(as))]
			}
			for j := range rb {
				rb[j] = bs[rng.Intn(len(bs))]
			}
			stat(ra, rb, out)
			for w := 0; w < width; w++ {
				results[w][i] = out[w]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toDistributions(results), nil
}

// TwoSampleBivariate resamples two bivariate datasets pairwise within
// each iteration. The comparator uses it for the relative slope.
func (e *Engine) TwoSampleBivariate(ctx context.Context, a, b *stats.Data, nresamples, width int, stat func(ax, ay, bx, by []float64, out []float64)) ([]*stats.Distribution, error) {
	if err := checkResamples(nresamples); err != nil {
		return nil, err
	}

	results := newResults(width, nresamples)

	err := e.run(ctx, nresamples, func(rng *rand.Rand, lo, hi int) {
		rax := make([]float64, a.Len())
		ray := make([]float64, a.Len())
		rbx := make([]float64, b.Len())
		rby := make([]float64, b.Len())
		out := make([]float64, width)
		for i := lo; i < hi; i++ {
			for j := range rax {
				k := rng.Intn(a.Len())
				rax[j] = a.X()[k]
				ray[j] = a.Y()[k]
			}
			for j := range rbx {
				k := rng.Intn(b.Len())
				rbx[j] = b.X()[k]
				rby[j] = b.Y()[k]
			}
			stat(rax, ray, rbx, rby, out)
			for w := 0; w < width; w++ {
				results[w][i] = out[w]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return toDistributions(results), nil
}

// run splits [0, nresamples) into contiguous partitions and executes
// fill on each with its own seeded RNG.
func (e *Engine) run(ctx context.Context, nresamples int, fill func(rng *rand.Rand, lo, hi int)) error {
	parts := e.workers
	if parts > nresamples {
		parts = nresamples
	}
	seed := e.seeds.Seed()

	g, ctx := errgroup.WithContext(ctx)
	chunk := nresamples / parts
	rem := nresamples % parts

	lo := 0
	for p := 0; p < parts; p++ {
		hi := lo + chunk
		if p < rem {
			hi++
		}
		p, start, end := p, lo, hi
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fill(rand.New(rand.NewSource(seed+int64(p))), start, end)
			return nil
		})
		lo = hi
	}
	return g.Wait()
}

func checkResamples(nresamples int) error {
	if nresamples <= 0 {
		return errors.InvalidInput("nresamples must be positive")
	}
	return nil
}

func newResults(width, nresamples int) [][]float64 {
	results := make([][]float64, width)
	for w := range results {
		results[w] = make([]float64, nresamples)
	}
	return results
}

func toDistributions(results [][]float64) []*stats.Distribution {
	dists := make([]*stats.Distribution, len(results))
	for w, values := range results {
		dists[w] = stats.NewDistribution(values)
	}
	return dists
}
