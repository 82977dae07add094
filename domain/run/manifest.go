// Package run carries per-run metadata persisted alongside the
// analysis artifacts.
package run

import (
	"benchlab/domain/core"
)

// Manifest records how one benchmark run was produced: identity, RNG
// seed, sample count and the analysis settings in effect. It is
// diagnostic only; the comparator never reads it.
type Manifest struct {
	RunID             core.RunID       `json:"run_id"`
	Benchmark         core.BenchmarkID `json:"benchmark"`
	Seed              *int64           `json:"seed,omitempty"`
	SampleCount       int              `json:"sample_count"`
	ConfidenceLevel   float64          `json:"confidence_level"`
	NResamples        int              `json:"nresamples"`
	NoiseThreshold    float64          `json:"noise_threshold"`
	SignificanceLevel float64          `json:"significance_level"`
	StartedAt         core.Timestamp   `json:"started_at"`
	FinishedAt        core.Timestamp   `json:"finished_at"`
}

// NewManifest stamps a fresh run id and start time for a benchmark.
// seed is the configured base seed, nil when bootstraps draw entropy.
func NewManifest(id core.BenchmarkID, seed *int64) *Manifest {
	return &Manifest{
		RunID:     core.RunID(core.NewID()),
		Benchmark: id,
		Seed:      seed,
		StartedAt: core.Now(),
	}
}

// Finish stamps the completion time.
func (m *Manifest) Finish() {
	m.FinishedAt = core.Now()
}

// Validate checks the manifest is complete enough to persist.
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("manifest", "run_id cannot be empty")
	}
	if m.Benchmark == "" {
		return core.NewValidationError("manifest", "benchmark cannot be empty")
	}
	if m.SampleCount < 2 {
		return core.NewValidationError("manifest", "sample_count must be at least 2")
	}
	return nil
}
