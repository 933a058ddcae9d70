// Package httpserver exposes the dashboard pages, the JSON chart/statistics
// APIs, CSV exports, and the health/readiness/metrics endpoints.
package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/pollution-trends-service/internal/dataset"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
	"github.com/couchcryptid/pollution-trends-service/internal/observability"
	"github.com/couchcryptid/pollution-trends-service/internal/report"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotProvider serves the loaded dataset snapshot.
type SnapshotProvider interface {
	Snapshot() *dataset.Snapshot
}

// Server serves the dashboard and its APIs.
type Server struct {
	httpServer *http.Server
	store      SnapshotProvider
	ready      ReadinessChecker
	renderer   *report.Renderer
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer wires all routes onto a stdlib mux.
func NewServer(addr string, store SnapshotProvider, ready ReadinessChecker, renderer *report.Renderer, logger *slog.Logger, metrics *observability.Metrics) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		store:    store,
		ready:    ready,
		renderer: renderer,
		logger:   logger,
		metrics:  metrics,
	}

	mux.HandleFunc("GET /{$}", s.handleDashboard)

	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("GET /api/statistics", s.handleStatistics)
	mux.HandleFunc("GET /api/trends", s.handleTrends)
	mux.HandleFunc("GET /api/inflections", s.handleInflections)
	mux.HandleFunc("GET /api/yearly", s.handleYearly)
	mux.HandleFunc("GET /api/charts/{name}", s.handleChartConfig)

	mux.HandleFunc("GET /charts/trend.png", s.handleTrendPNG)
	mux.HandleFunc("GET /charts/composition.png", s.handleCompositionPNG)

	mux.HandleFunc("GET /export/raw.csv", s.handleExportRaw)
	mux.HandleFunc("GET /export/yearly.csv", s.handleExportYearly)
	mux.HandleFunc("GET /export/inflections.csv", s.handleExportInflections)

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("dashboard").Inc()

	view := buildView(s.store.Snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := dashboardTemplate.Execute(w, view); err != nil {
		s.logger.Error("dashboard render failed", "error", err)
	}
}

func (s *Server) handleOverview(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("overview").Inc()
	snap := s.store.Snapshot()

	writeJSON(w, http.StatusOK, map[string]any{
		"observations":     len(snap.Observations),
		"years":            len(snap.Yearly),
		"locations":        snap.Locations,
		"inflection_years": len(snap.Inflections),
		"loaded_at":        snap.LoadedAt,
		"diagnostics":      snap.Diagnostics,
		"summaries":        trendSummaries(snap),
	})
}

func (s *Server) handleStatistics(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("statistics").Inc()
	snap := s.store.Snapshot()

	writeJSON(w, http.StatusOK, map[string]any{
		"statistics":   snap.Statistics,
		"correlations": correlationAPIView(snap.Correlations),
	})
}

func (s *Server) handleTrends(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("trends").Inc()
	writeJSON(w, http.StatusOK, trendAPIViews(s.store.Snapshot()))
}

func (s *Server) handleInflections(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("inflections").Inc()
	writeJSON(w, http.StatusOK, inflectionRows(s.store.Snapshot()))
}

func (s *Server) handleYearly(w http.ResponseWriter, _ *http.Request) {
	s.metrics.PageRequests.WithLabelValues("yearly").Inc()
	writeJSON(w, http.StatusOK, s.store.Snapshot().Yearly)
}

func (s *Server) handleChartConfig(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	s.metrics.PageRequests.WithLabelValues("chart:" + name).Inc()
	snap := s.store.Snapshot()

	var cfg *report.ChartConfig
	switch name {
	case "trend":
		cfg = report.YearlyTrendChart(snap.Yearly)
	case "composition":
		cfg = report.StackedAreaChart(snap.Yearly)
	case "heatmap":
		cfg = report.CorrelationHeatmap(snap.Correlations)
	case "box":
		cfg = report.BoxChart(snap.Observations)
	case "inflections":
		cfg = report.InflectionTimelineChart(snap.Yearly, snap.Inflections)
	case "bod5-by-location":
		cfg = report.LocationChart(snap.YearlyByLocation, domain.BOD5)
	case "nh3n-by-location":
		cfg = report.LocationChart(snap.YearlyByLocation, domain.NH3N)
	case "ss-by-location":
		cfg = report.LocationChart(snap.YearlyByLocation, domain.SS)
	default:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "unknown chart " + name})
		return
	}

	if cfg == nil {
		// Empty dataset: serve an empty config rather than failing the render.
		writeJSON(w, http.StatusOK, report.ChartConfig{Title: "No data available"})
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleTrendPNG(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	png, err := s.renderer.YearlyTrendPNG(snap.Yearly, snap.Fingerprint)
	s.servePNG(w, png, err)
}

func (s *Server) handleCompositionPNG(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	png, err := s.renderer.CompositionPNG(snap.Yearly, snap.Fingerprint)
	s.servePNG(w, png, err)
}

func (s *Server) servePNG(w http.ResponseWriter, png []byte, err error) {
	if err != nil {
		s.logger.Warn("chart render unavailable", "error", err)
		http.Error(w, "chart unavailable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png) //nolint:errcheck // best-effort image response
}

func (s *Server) handleExportRaw(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ExportRequests.WithLabelValues("raw").Inc()
	snap := s.store.Snapshot()

	serveCSVHeader(w, "pollution_data.csv")
	if err := dataset.WriteObservationsCSV(w, snap.Observations); err != nil {
		s.logger.Error("raw csv export failed", "error", err)
	}
}

func (s *Server) handleExportYearly(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ExportRequests.WithLabelValues("yearly").Inc()
	snap := s.store.Snapshot()

	serveCSVHeader(w, "yearly_averages.csv")
	if err := dataset.WriteYearlyCSV(w, snap.Yearly); err != nil {
		s.logger.Error("yearly csv export failed", "error", err)
	}
}

func (s *Server) handleExportInflections(w http.ResponseWriter, _ *http.Request) {
	s.metrics.ExportRequests.WithLabelValues("inflections").Inc()
	snap := s.store.Snapshot()

	serveCSVHeader(w, "inflection_years.csv")
	if err := dataset.WriteInflectionsCSV(w, snap.Inflections); err != nil {
		s.logger.Error("inflections csv export failed", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.ready.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func serveCSVHeader(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
}

// writeJSON marshals before touching the response so an encoding failure
// surfaces as a 500 instead of a 200 with a truncated body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, "response encoding failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data) //nolint:errcheck // best-effort response
}
