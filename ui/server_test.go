package ui

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/domain/stats"
	"benchlab/internal/logging"
	"benchlab/internal/testkit"
	"benchlab/ports"
)

func seedStore(t *testing.T) *testkit.MemStore {
	t.Helper()
	store := testkit.NewMemStore()

	ests := estimate.Estimates{
		estimate.Mean: {
			ConfidenceInterval: estimate.ConfidenceInterval{ConfidenceLevel: 0.95, LowerBound: 95, UpperBound: 105},
			PointEstimate:      100,
			StandardError:      2.5,
		},
	}
	id := core.BenchmarkID("sort/small")
	require.NoError(t, store.SaveEstimates(id, ports.EstimatesNew, ests))
	require.NoError(t, store.SaveFences(id, stats.Fences{LowSevere: 90, LowMild: 95, HighMild: 105, HighSevere: 110}))
	return store
}

func TestIndexListsBenchmarks(t *testing.T) {
	srv := NewServer(seedStore(t), logging.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rec.Body.String(), "sort/small")
}

func TestBenchmarkPageRendersEstimates(t *testing.T) {
	srv := NewServer(seedStore(t), logging.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/benchmarks/sort/small", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "mean")
	assert.Contains(t, body, "100.00 ns")
	assert.Contains(t, body, "Tukey fences")
}

func TestBenchmarkPageUnknownIDIs404(t *testing.T) {
	srv := NewServer(seedStore(t), logging.Nop())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/benchmarks/missing", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBenchmarkPageRejectsUnsafeID(t *testing.T) {
	srv := NewServer(seedStore(t), logging.Nop())

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/benchmarks/bad%3Bid", nil)
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
