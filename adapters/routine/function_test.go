package routine

import (
	"context"
	"testing"
	"time"

	"benchlab/internal/logging"
	"benchlab/ports"
)

func fastPlan() ports.SamplingPlan {
	return ports.SamplingPlan{
		SampleSize:      8,
		WarmUpTime:      5 * time.Millisecond,
		MeasurementTime: 20 * time.Millisecond,
	}
}

func TestFunctionSampleShape(t *testing.T) {
	r := NewFunction(logging.Nop(), func(b *Bencher) {
		b.Iter(func() {
			for i := 0; i < 100; i++ {
				_ = i * i
			}
		})
	})

	iters, times, err := r.Sample(context.Background(), fastPlan())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(iters) != 8 || len(times) != 8 {
		t.Fatalf("lengths = (%d, %d), want (8, 8)", len(iters), len(times))
	}

	// A linear ladder: iters[i] = d * (i+1).
	d := iters[0]
	if d == 0 {
		t.Fatal("first rung has zero iterations")
	}
	for i, n := range iters {
		if n != d*uint64(i+1) {
			t.Fatalf("iters[%d] = %d, want %d", i, n, d*uint64(i+1))
		}
	}
	for i, elapsed := range times {
		if elapsed < 0 {
			t.Fatalf("times[%d] = %v, want non-negative", i, elapsed)
		}
	}
}

func TestFunctionSampleHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewFunction(logging.Nop(), func(b *Bencher) {
		b.Iter(func() {})
	})
	if _, _, err := r.Sample(ctx, fastPlan()); err == nil {
		t.Fatal("expected error from cancelled context")
	}
}

func TestBencherCountsIterations(t *testing.T) {
	b := &Bencher{iters: 1000}
	count := 0
	b.Iter(func() { count++ })
	if count != 1000 {
		t.Fatalf("closure ran %d times, want 1000", count)
	}
	if b.elapsed < 0 {
		t.Fatal("elapsed time is negative")
	}
}

func TestLadderScalesToBudget(t *testing.T) {
	plan := ports.SamplingPlan{SampleSize: 4, MeasurementTime: time.Millisecond}
	// 100ns per iteration, 10 total ladder units: d = ceil(1e6 / 1000).
	iters := ladder(plan, 100)
	if iters[0] != 1000 {
		t.Fatalf("d = %d, want 1000", iters[0])
	}
	if iters[3] != 4000 {
		t.Fatalf("last rung = %d, want 4000", iters[3])
	}
}

func TestLadderNeverBelowOne(t *testing.T) {
	plan := ports.SamplingPlan{SampleSize: 100, MeasurementTime: time.Microsecond}
	iters := ladder(plan, 1e6) // absurdly expensive routine
	if iters[0] != 1 {
		t.Fatalf("d = %d, want 1", iters[0])
	}
}
