// Package ui serves a read-only local view over the artifact tree.
package ui

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/rs/zerolog"

	"benchlab/domain/core"
	"benchlab/domain/estimate"
	"benchlab/internal/format"
	"benchlab/ports"
)

// Server renders benchmark summaries from the artifact store as HTML.
// It decides no policy; everything it shows was computed by the
// pipeline.
type Server struct {
	store  ports.ArtifactStore
	router chi.Router
	log    zerolog.Logger
}

// NewServer creates the report server.
func NewServer(store ports.ArtifactStore, log zerolog.Logger) *Server {
	s := &Server{store: store, log: log}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleIndex)
	r.Get("/benchmarks/*", s.handleBenchmark)
	s.router = r
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.log.Info().Str("addr", addr).Msg("report server listening")
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list benchmarks")
		http.Error(w, "failed to list benchmarks", http.StatusInternalServerError)
		return
	}

	var md strings.Builder
	md.WriteString("# Benchmarks\n\n")
	if len(ids) == 0 {
		md.WriteString("No benchmark runs found.\n")
	}
	for _, id := range ids {
		fmt.Fprintf(&md, "- [%s](/benchmarks/%s)\n", id, id)
	}
	s.renderMarkdown(w, md.String())
}

func (s *Server) handleBenchmark(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "*")
	id, err := core.ParseBenchmarkID(raw)
	if err != nil {
		http.Error(w, "invalid benchmark id", http.StatusBadRequest)
		return
	}

	newEst, err := s.store.LoadEstimates(id, ports.EstimatesNew)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", id)

	md.WriteString("## Current run\n\n")
	writeEstimatesTable(&md, newEst, timeCell)

	if fences, err := s.store.LoadFences(id); err == nil {
		md.WriteString("\n## Tukey fences\n\n")
		fmt.Fprintf(&md, "| low severe | low mild | high mild | high severe |\n")
		fmt.Fprintf(&md, "|---|---|---|---|\n")
		fmt.Fprintf(&md, "| %s | %s | %s | %s |\n",
			format.Time(fences.LowSevere), format.Time(fences.LowMild),
			format.Time(fences.HighMild), format.Time(fences.HighSevere))
	}

	if baseEst, err := s.store.LoadEstimates(id, ports.EstimatesBase); err == nil {
		md.WriteString("\n## Base run\n\n")
		writeEstimatesTable(&md, baseEst, timeCell)
	}

	if changeEst, err := s.store.LoadEstimates(id, ports.EstimatesChange); err == nil {
		md.WriteString("\n## Change vs base\n\n")
		writeEstimatesTable(&md, changeEst, changeCell)
	}

	s.renderMarkdown(w, md.String())
}

func (s *Server) renderMarkdown(w http.ResponseWriter, md string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := markdown.ToHTML([]byte(md), nil, nil)
	fmt.Fprintf(w, "<!doctype html><html><body>%s</body></html>", html)
}

func timeCell(v float64) string {
	return format.Time(v)
}

func changeCell(v float64) string {
	return format.Change(v, true)
}

func writeEstimatesTable(md *strings.Builder, ests estimate.Estimates, cell func(float64) string) {
	fmt.Fprintf(md, "| statistic | point estimate | lower bound | upper bound | std error |\n")
	fmt.Fprintf(md, "|---|---|---|---|---|\n")
	for _, statistic := range estimate.All() {
		est, ok := ests[statistic]
		if !ok {
			continue
		}
		ci := est.ConfidenceInterval
		fmt.Fprintf(md, "| %s | %s | %s | %s | %s |\n",
			statistic, cell(est.PointEstimate), cell(ci.LowerBound), cell(ci.UpperBound), cell(est.StandardError))
	}
}
