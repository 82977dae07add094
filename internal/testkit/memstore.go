package testkit

import (
	"sort"
	"sync"

	"benchlab/domain/bench"
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/run"
	"benchlab/domain/stats"
	"benchlab/internal/errors"
	"benchlab/ports"
)

// MemStore is an in-memory ArtifactStore mirroring the filesystem
// store's promotion semantics. Tests that only care about pipeline
// behavior use it instead of a temp directory.
type MemStore struct {
	mu    sync.Mutex
	bench map[core.BenchmarkID]*memBench
}

type memRun struct {
	measurement *bench.Measurement
	estimates   estimate.Estimates
	change      estimate.Estimates
	fences      *stats.Fences
	manifest    *run.Manifest
}

type memBench struct {
	newRun  *memRun
	baseRun *memRun
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{bench: make(map[core.BenchmarkID]*memBench)}
}

func (s *MemStore) get(id core.BenchmarkID) *memBench {
	b, ok := s.bench[id]
	if !ok {
		b = &memBench{}
		s.bench[id] = b
	}
	return b
}

func (s *MemStore) newRun(id core.BenchmarkID) *memRun {
	b := s.get(id)
	if b.newRun == nil {
		b.newRun = &memRun{}
	}
	return b.newRun
}

// PromoteNewToBase mirrors the filesystem promotion: drop base, move
// new into its place.
func (s *MemStore) PromoteNewToBase(id core.BenchmarkID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(id)
	b.baseRun = b.newRun
	b.newRun = nil
	return nil
}

func (s *MemStore) SaveMeasurement(id core.BenchmarkID, m *bench.Measurement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newRun(id).measurement = m
	return nil
}

func (s *MemStore) LoadBaseMeasurement(id core.BenchmarkID) (*bench.Measurement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(id)
	if b.baseRun == nil || b.baseRun.measurement == nil {
		return nil, errors.IOError("no base measurement", core.ErrBaseRunNotFound)
	}
	return b.baseRun.measurement, nil
}

func (s *MemStore) SaveEstimates(id core.BenchmarkID, kind ports.EstimateKind, e estimate.Estimates) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch kind {
	case ports.EstimatesNew:
		s.newRun(id).estimates = e
	case ports.EstimatesChange:
		s.newRun(id).change = e
	case ports.EstimatesBase:
		b := s.get(id)
		if b.baseRun == nil {
			b.baseRun = &memRun{}
		}
		b.baseRun.estimates = e
	default:
		return errors.InvalidInput("unknown estimates kind " + string(kind))
	}
	return nil
}

func (s *MemStore) LoadEstimates(id core.BenchmarkID, kind ports.EstimateKind) (estimate.Estimates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(id)
	var e estimate.Estimates
	switch kind {
	case ports.EstimatesNew:
		if b.newRun != nil {
			e = b.newRun.estimates
		}
	case ports.EstimatesChange:
		if b.newRun != nil {
			e = b.newRun.change
		}
	case ports.EstimatesBase:
		if b.baseRun != nil {
			e = b.baseRun.estimates
		}
	default:
		return nil, errors.InvalidInput("unknown estimates kind " + string(kind))
	}
	if e == nil {
		return nil, errors.IOError("no estimates", core.ErrNotFound)
	}
	return e, nil
}

func (s *MemStore) SaveFences(id core.BenchmarkID, f stats.Fences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newRun(id).fences = &f
	return nil
}

func (s *MemStore) LoadFences(id core.BenchmarkID) (stats.Fences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(id)
	if b.newRun == nil || b.newRun.fences == nil {
		return stats.Fences{}, errors.IOError("no fences", core.ErrNotFound)
	}
	return *b.newRun.fences, nil
}

func (s *MemStore) SaveManifest(id core.BenchmarkID, m *run.Manifest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newRun(id).manifest = m
	return nil
}

// Manifest returns the current run's manifest for assertions.
func (s *MemStore) Manifest(id core.BenchmarkID) *run.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := s.get(id)
	if b.newRun == nil {
		return nil
	}
	return b.newRun.manifest
}

func (s *MemStore) HasBase(id core.BenchmarkID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bench[id]
	return ok && b.baseRun != nil && b.baseRun.measurement != nil
}

func (s *MemStore) List() ([]core.BenchmarkID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]core.BenchmarkID, 0, len(s.bench))
	for id := range s.bench {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
