package ports

import (
	"benchlab/domain/bench"
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/run"
	"benchlab/domain/stats"
)

// EstimateKind selects which estimates file of a benchmark directory
// an operation targets.
type EstimateKind string

const (
	EstimatesNew    EstimateKind = "new"
	EstimatesBase   EstimateKind = "base"
	EstimatesChange EstimateKind = "change"
)

// ArtifactStore persists per-benchmark analysis artifacts under
// <root>/<id>/ and manages the new/base promotion lifecycle.
type ArtifactStore interface {
	// PromoteNewToBase removes base/ if present and renames new/ to
	// base/ if present. A benchmark with neither directory is left
	// unchanged; an existing base/ is removed even without a new/.
	PromoteNewToBase(id core.BenchmarkID) error

	// SaveMeasurement writes new/sample.json.
	SaveMeasurement(id core.BenchmarkID, m *bench.Measurement) error
	// LoadBaseMeasurement reads base/sample.json.
	LoadBaseMeasurement(id core.BenchmarkID) (*bench.Measurement, error)

	// SaveEstimates writes the estimates file selected by kind
	// (new/estimates.json, base/estimates.json or
	// new/change/estimates.json).
	SaveEstimates(id core.BenchmarkID, kind EstimateKind, e estimate.Estimates) error
	// LoadEstimates reads the estimates file selected by kind.
	LoadEstimates(id core.BenchmarkID, kind EstimateKind) (estimate.Estimates, error)

	// SaveFences writes new/tukey.json as the [LS, LM, HM, HS] array.
	SaveFences(id core.BenchmarkID, f stats.Fences) error
	// LoadFences reads a tukey.json.
	LoadFences(id core.BenchmarkID) (stats.Fences, error)

	// SaveManifest writes new/manifest.json.
	SaveManifest(id core.BenchmarkID, m *run.Manifest) error

	// HasBase reports whether base/sample.json exists for id.
	HasBase(id core.BenchmarkID) bool

	// List enumerates the benchmark ids present under the root.
	List() ([]core.BenchmarkID, error)
}
