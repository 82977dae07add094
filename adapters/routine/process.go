package routine

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"benchlab/internal/errors"
	"benchlab/ports"
)

// Process measures an external program. For every sample rung the
// program is spawned once, receives the iteration count as a decimal
// line on stdin, and must print the elapsed nanoseconds for that many
// iterations as a decimal line on stdout.
type Process struct {
	cmd func() *exec.Cmd
	log zerolog.Logger
}

// NewProcess wraps a command builder as a Routine. The builder is
// invoked once per spawn so the Cmd can be single-use.
func NewProcess(log zerolog.Logger, cmd func() *exec.Cmd) *Process {
	return &Process{cmd: cmd, log: log}
}

// Sample probes the program once to estimate per-iteration cost, then
// measures the same linear ladder a function routine uses.
func (r *Process) Sample(ctx context.Context, plan ports.SamplingPlan) ([]uint64, []float64, error) {
	probe, err := r.runOnce(ctx, 1)
	if err != nil {
		return nil, nil, err
	}
	perIter := probe
	if perIter <= 0 {
		perIter = 1
	}
	r.log.Debug().Float64("per_iter_ns", perIter).Msg("process probe complete")

	iters := ladder(plan, perIter)
	times := make([]float64, len(iters))
	for i, n := range iters {
		elapsed, err := r.runOnce(ctx, n)
		if err != nil {
			return nil, nil, err
		}
		times[i] = elapsed
	}
	return iters, times, nil
}

// runOnce spawns the program for a single rung and parses its answer.
func (r *Process) runOnce(ctx context.Context, iters uint64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.RoutineError("measurement interrupted", err)
	}

	cmd := r.cmd()
	cmd.Stdin = strings.NewReader(fmt.Sprintf("%d\n", iters))
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return 0, errors.RoutineError("failed to open benchmark process stdout", err)
	}
	if err := cmd.Start(); err != nil {
		return 0, errors.RoutineError("failed to spawn benchmark process", err)
	}

	line, readErr := bufio.NewReader(stdout).ReadString('\n')
	waitErr := cmd.Wait()
	if readErr != nil && line == "" {
		return 0, errors.RoutineError("benchmark process produced no output", readErr)
	}
	if waitErr != nil {
		return 0, errors.RoutineError("benchmark process failed", waitErr)
	}

	elapsed, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return 0, errors.RoutineError("benchmark process output is not a number", err)
	}
	if elapsed < 0 {
		return 0, errors.RoutineError("benchmark process reported negative elapsed time", nil)
	}
	return elapsed, nil
}
