// Package rng provides the seed sources bootstrap invocations draw
// from.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"sync/atomic"
)

// EntropySource draws a fresh seed from the operating system entropy
// pool for every bootstrap invocation.
type EntropySource struct{}

// NewEntropySource creates the default seed source.
func NewEntropySource() *EntropySource {
	return &EntropySource{}
}

// Seed returns a fresh entropy-derived seed.
func (s *EntropySource) Seed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		// crypto/rand failing is effectively unrecoverable; a constant
		// keeps the pipeline running with a deterministic stream.
		return 0x5eed
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}

// FixedSource hands out deterministic seeds: base, base+1, ... one per
// bootstrap invocation. Tests use it to make pipelines reproducible.
type FixedSource struct {
	next atomic.Int64
}

// NewFixedSource creates a deterministic source starting at base.
func NewFixedSource(base int64) *FixedSource {
	s := &FixedSource{}
	s.next.Store(base)
	return s
}

// Seed returns the next seed in the sequence.
func (s *FixedSource) Seed() int64 {
	return s.next.Add(1) - 1
}
