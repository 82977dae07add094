// Package testkit provides seeded synthetic routines and an in-memory
// artifact store for pipeline tests.
package testkit

import (
	"context"
	"fmt"
	"math/rand"

	mstats "github.com/montanaflynn/stats"

	"benchlab/ports"
)

// LinearRoutine yields times that grow linearly with the iteration
// count: times[i] = PerIterNs * iters[i] + jitter. With Jitter zero it
// reproduces the constant-time fixture exactly.
type LinearRoutine struct {
	// PerIterNs is the per-iteration cost in nanoseconds.
	PerIterNs float64
	// Jitter bounds the uniform noise added to each rung, in
	// nanoseconds. Zero disables noise.
	Jitter float64
	// Seed makes the jitter reproducible.
	Seed int64
	// Iters overrides the iteration ladder; nil derives 1..SampleSize
	// from the plan.
	Iters []uint64
}

// Sample produces the synthetic measurement.
func (r *LinearRoutine) Sample(_ context.Context, plan ports.SamplingPlan) ([]uint64, []float64, error) {
	iters := r.Iters
	if iters == nil {
		iters = make([]uint64, plan.SampleSize)
		for i := range iters {
			iters[i] = uint64(i + 1)
		}
	}

	rng := rand.New(rand.NewSource(r.Seed))
	times := make([]float64, len(iters))
	for i, n := range iters {
		times[i] = r.PerIterNs * float64(n)
		if r.Jitter > 0 {
			times[i] += (2*rng.Float64() - 1) * r.Jitter
			if times[i] < 0 {
				times[i] = 0
			}
		}
	}

	if err := checkSynthetic(times, r.PerIterNs, r.Jitter, iters); err != nil {
		return nil, nil, err
	}
	return iters, times, nil
}

// FixedRoutine replays a canned measurement verbatim.
type FixedRoutine struct {
	ItersVec []uint64
	TimesVec []float64
}

// Sample returns the canned vectors.
func (r *FixedRoutine) Sample(context.Context, ports.SamplingPlan) ([]uint64, []float64, error) {
	return r.ItersVec, r.TimesVec, nil
}

// GeometricIters builds the 1, 2, 4, ... doubling ladder fixtures use.
func GeometricIters(n int) []uint64 {
	iters := make([]uint64, n)
	for i := range iters {
		iters[i] = 1 << uint(i)
	}
	return iters
}

// checkSynthetic sanity-checks the generated data so a broken fixture
// fails loudly instead of producing a confusing assertion downstream.
func checkSynthetic(times []float64, perIter, jitter float64, iters []uint64) error {
	if len(times) == 0 {
		return fmt.Errorf("synthetic routine produced no samples")
	}
	avg := make([]float64, len(times))
	for i, t := range times {
		avg[i] = t / float64(iters[i])
	}
	mean, err := mstats.Mean(avg)
	if err != nil {
		return fmt.Errorf("synthetic routine produced invalid data: %w", err)
	}
	slack := jitter + 1
	if mean < perIter-slack || mean > perIter+slack {
		return fmt.Errorf("synthetic mean %f strayed from configured cost %f", mean, perIter)
	}
	return nil
}
