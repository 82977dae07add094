package routine

import (
	"context"
	"os/exec"
	"testing"

	"benchlab/internal/logging"
)

func shPath(t *testing.T) string {
	t.Helper()
	path, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return path
}

func TestProcessSample(t *testing.T) {
	sh := shPath(t)

	// Reports 100ns per requested iteration.
	r := NewProcess(logging.Nop(), func() *exec.Cmd {
		return exec.Command(sh, "-c", `read n; echo $((n * 100))`)
	})

	iters, times, err := r.Sample(context.Background(), fastPlan())
	if err != nil {
		t.Fatalf("Sample: %v", err)
	}
	if len(iters) != len(times) || len(iters) != 8 {
		t.Fatalf("lengths = (%d, %d), want (8, 8)", len(iters), len(times))
	}
	for i, n := range iters {
		if want := float64(n) * 100; times[i] != want {
			t.Fatalf("times[%d] = %v, want %v", i, times[i], want)
		}
	}
}

func TestProcessRejectsGarbageOutput(t *testing.T) {
	sh := shPath(t)

	r := NewProcess(logging.Nop(), func() *exec.Cmd {
		return exec.Command(sh, "-c", `read n; echo not-a-number`)
	})
	if _, _, err := r.Sample(context.Background(), fastPlan()); err == nil {
		t.Fatal("expected error for non-numeric output")
	}
}

func TestProcessSpawnFailure(t *testing.T) {
	r := NewProcess(logging.Nop(), func() *exec.Cmd {
		return exec.Command("/nonexistent/benchlab-helper")
	})
	if _, _, err := r.Sample(context.Background(), fastPlan()); err == nil {
		t.Fatal("expected error for missing binary")
	}
}
