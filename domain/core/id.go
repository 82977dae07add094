package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	// Use UUID v7 for time-ordered, sortable IDs
	// Falls back to v4 if v7 is not available (for compatibility)
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// RunID identifies a single execution of the analysis pipeline
type RunID ID

// String returns the string representation
func (id RunID) String() string { return ID(id).String() }

// BenchmarkID names a benchmark. It doubles as the benchmark's relative
// directory under the artifact root, so it must stay path-safe. Group
// benchmarks use "group/name" form; the '/' separates the group segment
// in both reporting and storage layout.
type BenchmarkID string

// String returns the string representation
func (id BenchmarkID) String() string { return string(id) }

// Group returns the group segment of a "group/name" id, or "" for
// ungrouped benchmarks.
func (id BenchmarkID) Group() string {
	if i := strings.LastIndex(string(id), "/"); i >= 0 {
		return string(id)[:i]
	}
	return ""
}

// Name returns the name segment of the id.
func (id BenchmarkID) Name() string {
	if i := strings.LastIndex(string(id), "/"); i >= 0 {
		return string(id)[i+1:]
	}
	return string(id)
}

// GroupID joins a group and a name into a BenchmarkID.
func GroupID(group, name string) BenchmarkID {
	return BenchmarkID(group + "/" + name)
}

// ParseBenchmarkID validates a string as a path-safe benchmark id.
func ParseBenchmarkID(s string) (BenchmarkID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("benchmark id cannot be empty")
	}
	if strings.HasPrefix(s, "/") || strings.HasSuffix(s, "/") {
		return "", fmt.Errorf("benchmark id %q cannot start or end with '/'", s)
	}
	for _, seg := range strings.Split(s, "/") {
		if seg == "" {
			return "", fmt.Errorf("benchmark id %q contains an empty path segment", s)
		}
		if seg == "." || seg == ".." {
			return "", fmt.Errorf("benchmark id %q contains a relative path segment", s)
		}
		for _, r := range seg {
			if !isPathSafe(r) {
				return "", fmt.Errorf("benchmark id %q contains unsafe character %q", s, r)
			}
		}
	}
	return BenchmarkID(s), nil
}

func isPathSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '.' || r == ' ':
		return true
	}
	return false
}
