// Package fsstore persists analysis artifacts as JSON files under
// <root>/<benchmark id>/, and manages the new/base promotion between
// runs.
package fsstore

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"benchlab/domain/bench"
	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/run"
	"benchlab/domain/stats"
	"benchlab/internal/errors"
	"benchlab/ports"
)

const (
	sampleFile    = "sample.json"
	estimatesFile = "estimates.json"
	tukeyFile     = "tukey.json"
	manifestFile  = "manifest.json"
	changeDir     = "change"
)

// Store is the filesystem ArtifactStore.
type Store struct {
	root string
}

// New creates a store rooted at root. The directory is created lazily.
func New(root string) *Store {
	return &Store{root: root}
}

// Root returns the artifact root.
func (s *Store) Root() string {
	return s.root
}

func (s *Store) benchDir(id core.BenchmarkID) string {
	return filepath.Join(s.root, filepath.FromSlash(string(id)))
}

func (s *Store) newDir(id core.BenchmarkID) string {
	return filepath.Join(s.benchDir(id), "new")
}

func (s *Store) baseDir(id core.BenchmarkID) string {
	return filepath.Join(s.benchDir(id), "base")
}

// MkdirAll creates a directory tree; existing directories are fine.
func (s *Store) MkdirAll(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.StoreError("failed to create directory", err)
	}
	return nil
}

// RemoveTree deletes a directory tree; a missing tree is fine.
func (s *Store) RemoveTree(path string) error {
	if err := os.RemoveAll(path); err != nil {
		return errors.StoreError("failed to remove directory tree", err)
	}
	return nil
}

// MoveDir renames a directory; dst must not exist.
func (s *Store) MoveDir(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return errors.StoreError("failed to move directory", err)
	}
	return nil
}

// PromoteNewToBase removes base/ if present and renames new/ to base/
// if present. A first run (neither directory exists) is a no-op; an
// existing base/ is removed even when there is no new/ to replace it.
func (s *Store) PromoteNewToBase(id core.BenchmarkID) error {
	baseDir := s.baseDir(id)
	newDir := s.newDir(id)

	if dirExists(baseDir) {
		if err := s.RemoveTree(baseDir); err != nil {
			return errors.Wrap(err, "failed to remove previous base run")
		}
	}
	if dirExists(newDir) {
		if err := s.MoveDir(newDir, baseDir); err != nil {
			return errors.Wrap(err, "failed to promote new run to base")
		}
	}
	return nil
}

// SaveMeasurement writes new/sample.json.
func (s *Store) SaveMeasurement(id core.BenchmarkID, m *bench.Measurement) error {
	return s.save(filepath.Join(s.newDir(id), sampleFile), m)
}

// LoadBaseMeasurement reads base/sample.json.
func (s *Store) LoadBaseMeasurement(id core.BenchmarkID) (*bench.Measurement, error) {
	m := new(bench.Measurement)
	if err := s.load(filepath.Join(s.baseDir(id), sampleFile), m); err != nil {
		return nil, err
	}
	return m, nil
}

// SaveEstimates writes the estimates file selected by kind.
func (s *Store) SaveEstimates(id core.BenchmarkID, kind ports.EstimateKind, e estimate.Estimates) error {
	path, err := s.estimatesPath(id, kind)
	if err != nil {
		return err
	}
	return s.save(path, e)
}

// LoadEstimates reads the estimates file selected by kind.
func (s *Store) LoadEstimates(id core.BenchmarkID, kind ports.EstimateKind) (estimate.Estimates, error) {
	path, err := s.estimatesPath(id, kind)
	if err != nil {
		return nil, err
	}
	var e estimate.Estimates
	if err := s.load(path, &e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Store) estimatesPath(id core.BenchmarkID, kind ports.EstimateKind) (string, error) {
	switch kind {
	case ports.EstimatesNew:
		return filepath.Join(s.newDir(id), estimatesFile), nil
	case ports.EstimatesBase:
		return filepath.Join(s.baseDir(id), estimatesFile), nil
	case ports.EstimatesChange:
		return filepath.Join(s.newDir(id), changeDir, estimatesFile), nil
	}
	return "", errors.InvalidInput("unknown estimates kind " + string(kind))
}

// SaveFences writes new/tukey.json as the [LS, LM, HM, HS] array.
func (s *Store) SaveFences(id core.BenchmarkID, f stats.Fences) error {
	return s.save(filepath.Join(s.newDir(id), tukeyFile), f.Slice())
}

// LoadFences reads new/tukey.json.
func (s *Store) LoadFences(id core.BenchmarkID) (stats.Fences, error) {
	var arr [4]float64
	if err := s.load(filepath.Join(s.newDir(id), tukeyFile), &arr); err != nil {
		return stats.Fences{}, err
	}
	return stats.Fences{
		LowSevere:  arr[0],
		LowMild:    arr[1],
		HighMild:   arr[2],
		HighSevere: arr[3],
	}, nil
}

// SaveManifest writes new/manifest.json.
func (s *Store) SaveManifest(id core.BenchmarkID, m *run.Manifest) error {
	if err := m.Validate(); err != nil {
		return errors.WithCode(errors.CodeInvalidInput, err)
	}
	return s.save(filepath.Join(s.newDir(id), manifestFile), m)
}

// HasBase reports whether base/sample.json exists.
func (s *Store) HasBase(id core.BenchmarkID) bool {
	_, err := os.Stat(filepath.Join(s.baseDir(id), sampleFile))
	return err == nil
}

// List walks the root and returns the ids of benchmarks that have a
// new/ or base/ run directory, sorted.
func (s *Store) List() ([]core.BenchmarkID, error) {
	var ids []core.BenchmarkID
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) && path == s.root {
				return filepath.SkipAll
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if name != "new" && name != "base" {
			return nil
		}
		rel, err := filepath.Rel(s.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			// A top-level new/ or base/ dir is a benchmark named like
			// a run dir, not a run dir of the root itself.
			return nil
		}
		id := core.BenchmarkID(filepath.ToSlash(rel))
		if len(ids) == 0 || ids[len(ids)-1] != id {
			ids = append(ids, id)
		}
		return filepath.SkipDir
	})
	if err != nil {
		return nil, errors.StoreError("failed to list benchmarks", err)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return dedupe(ids), nil
}

// save serializes v to JSON via a temp file in the target directory,
// then renames it into place.
func (s *Store) save(path string, v interface{}) error {
	dir := filepath.Dir(path)
	if err := s.MkdirAll(dir); err != nil {
		return err
	}

	data, err := json.Marshal(v)
	if err != nil {
		return errors.StoreError("failed to encode artifact", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return errors.StoreError("failed to create temp file", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.StoreError("failed to write artifact", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.StoreError("failed to flush artifact", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.StoreError("failed to move artifact into place", err)
	}
	return nil
}

func (s *Store) load(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.IOError("failed to read "+filepath.Base(path), err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.IOError("failed to decode "+filepath.Base(path), err)
	}
	return nil
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func dedupe(ids []core.BenchmarkID) []core.BenchmarkID {
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || ids[i-1] != id {
			out = append(out, id)
		}
	}
	return out
}
