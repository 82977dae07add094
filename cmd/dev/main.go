// Command dev is a development harness: it registers a few demo
// benchmarks against the library and runs the full pipeline, which is
// the quickest way to exercise measurement, analysis and comparison
// end to end.
package main

import (
	"context"
	"os"
	"os/exec"
	"sort"

	"benchlab/adapters/routine"
	"benchlab/app"
	"benchlab/internal/config"
	"benchlab/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrapLog := logging.New(logging.Options{})
		bootstrapLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logging.New(logging.Options{Level: cfg.Logging.Level, File: cfg.Logging.File})

	runner := app.NewRunner(cfg, log)

	runner.Bench("fib-20", func(b *routine.Bencher) {
		b.Iter(func() {
			fib(20)
		})
	})

	runner.BenchGroup("sort", map[string]func(b *routine.Bencher){
		"small": sortBench(64),
		"large": sortBench(4096),
	})

	if shell, err := exec.LookPath("sh"); err == nil {
		// A trivial external routine: reads the iteration count and
		// reports a fake elapsed time of 100ns per iteration.
		runner.BenchProgram("extern/echo-timer", func() *exec.Cmd {
			return exec.Command(shell, "-c", `read n; echo $((n * 100))`)
		})
	}

	if failed := runner.Run(context.Background()); failed > 0 {
		os.Exit(1)
	}
}

func fib(n int) int {
	if n < 2 {
		return n
	}
	return fib(n-1) + fib(n-2)
}

func sortBench(size int) func(b *routine.Bencher) {
	src := make([]int, size)
	for i := range src {
		src[i] = (i * 2654435761) % size
	}
	buf := make([]int, size)
	return func(b *routine.Bencher) {
		b.Iter(func() {
			copy(buf, src)
			sort.Ints(buf)
		})
	}
}
