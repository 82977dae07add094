package routine

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"
	"github.com/streadway/quantile"

	"benchlab/internal/errors"
	"benchlab/internal/format"
	"benchlab/ports"
)

// Function measures an in-process callable. The callable receives a
// Bencher and must route the code under test through Bencher.Iter.
type Function struct {
	f   func(b *Bencher)
	log zerolog.Logger
}

// NewFunction wraps f as a Routine.
func NewFunction(log zerolog.Logger, f func(b *Bencher)) *Function {
	return &Function{f: f, log: log}
}

// Sample warms the routine up, estimates its per-iteration cost, and
// measures a linear iteration ladder d, 2d, ..., n*d scaled so the
// whole pass fits the measurement budget.
func (r *Function) Sample(ctx context.Context, plan ports.SamplingPlan) ([]uint64, []float64, error) {
	perIter, err := r.warmUp(ctx, plan.WarmUpTime)
	if err != nil {
		return nil, nil, err
	}

	iters := ladder(plan, perIter)
	times := make([]float64, len(iters))

	b := &Bencher{}
	for i, n := range iters {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.RoutineError("measurement interrupted", err)
		}
		b.iters = n
		r.f(b)
		times[i] = float64(b.elapsed.Nanoseconds())
	}
	return iters, times, nil
}

// warmUp runs doubling batches until the budget is spent and returns
// the estimated cost of one iteration in nanoseconds. A streaming
// quantile over the batch means feeds the debug log, giving a jitter
// signal before measurement starts.
func (r *Function) warmUp(ctx context.Context, budget time.Duration) (float64, error) {
	est := quantile.New(quantile.Known(0.50, 0.005))

	b := &Bencher{}
	var totalIters uint64
	var total time.Duration
	batch := uint64(1)

	for total < budget {
		if err := ctx.Err(); err != nil {
			return 0, errors.RoutineError("warm-up interrupted", err)
		}
		b.iters = batch
		r.f(b)

		total += b.elapsed
		totalIters += batch
		est.Add(float64(b.elapsed.Nanoseconds()) / float64(batch))

		if batch < 1<<30 {
			batch *= 2
		}
	}

	if totalIters == 0 {
		return 0, errors.RoutineError("warm-up performed no iterations", nil)
	}

	perIter := float64(total.Nanoseconds()) / float64(totalIters)
	if perIter <= 0 {
		perIter = 1
	}
	r.log.Debug().
		Str("mean", format.Time(perIter)).
		Str("median", format.Time(est.Get(0.50))).
		Uint64("iters", totalIters).
		Msg("warm-up complete")
	return perIter, nil
}

// ladder builds the iteration counts d, 2d, ..., n*d with d chosen so
// the expected total run time approximates the measurement budget.
func ladder(plan ports.SamplingPlan, perIterNs float64) []uint64 {
	n := plan.SampleSize
	// Total iterations across the ladder are d * n(n+1)/2.
	sum := float64(n) * float64(n+1) / 2
	d := math.Ceil(float64(plan.MeasurementTime.Nanoseconds()) / (perIterNs * sum))
	if d < 1 {
		d = 1
	}

	iters := make([]uint64, n)
	for i := range iters {
		iters[i] = uint64(d) * uint64(i+1)
	}
	return iters
}
