package dataset

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
	"github.com/couchcryptid/pollution-trends-service/internal/observability"
)

// Snapshot is the observation set plus every artifact derived from it. All
// fields are computed in one pass at load time and never mutated afterwards,
// so a Snapshot is safe to share across requests without locking.
type Snapshot struct {
	Observations     []domain.Observation
	Yearly           []domain.YearlyRow
	YearlyByLocation map[string][]domain.YearlyRow
	Locations        []string

	Statistics   map[domain.Pollutant]analysis.Descriptive
	Correlations analysis.CorrelationMatrix
	Trends       map[domain.Pollutant]analysis.TrendResult
	Inflections  []analysis.InflectionYear

	// Diagnostics carries load problems surfaced to the user when the
	// dashboard degrades to an empty view.
	Diagnostics []string

	// Threshold is the inflection percent-change cutoff the snapshot was
	// computed with.
	Threshold float64

	LoadedAt    time.Time
	Fingerprint string
}

// Empty reports whether the snapshot holds no observations.
func (s *Snapshot) Empty() bool {
	return len(s.Observations) == 0
}

// Trend looks up a fitted trend. The second return is false when no fit
// exists (e.g. fewer than two years); callers render a fallback message.
func (s *Snapshot) Trend(p domain.Pollutant) (analysis.TrendResult, bool) {
	tr, ok := s.Trends[p]
	return tr, ok
}

// Store loads the observation set once per process and serves the derived
// snapshot to every request. There is no invalidation: the source table is
// static and recomputation only happens on restart.
type Store struct {
	source    Source
	path      string
	threshold float64
	logger    *slog.Logger
	metrics   *observability.Metrics

	once     sync.Once
	snapshot atomic.Pointer[Snapshot]
}

// NewStore creates a Store for the given source. The threshold is the
// inflection percent-change cutoff; zero or negative falls back to the
// default.
func NewStore(source Source, path string, threshold float64, logger *slog.Logger, metrics *observability.Metrics) *Store {
	if threshold <= 0 {
		threshold = analysis.DefaultInflectionThreshold
	}
	return &Store{
		source:    source,
		path:      path,
		threshold: threshold,
		logger:    logger,
		metrics:   metrics,
	}
}

// Snapshot returns the loaded snapshot, loading on first call. A failed load
// degrades to an empty snapshot carrying diagnostics; it never panics or
// returns nil.
func (s *Store) Snapshot() *Snapshot {
	s.once.Do(s.load)
	return s.snapshot.Load()
}

// CheckReadiness reports nil once the dataset has been loaded with at least
// one observation. It never triggers a load itself.
func (s *Store) CheckReadiness(_ context.Context) error {
	snap := s.snapshot.Load()
	if snap == nil {
		return errors.New("dataset not loaded yet")
	}
	if snap.Empty() {
		return errors.New("dataset loaded empty")
	}
	return nil
}

func (s *Store) load() {
	start := clock.Now()

	observations, err := Load(s.source, s.path)
	snap := &Snapshot{LoadedAt: start, Threshold: s.threshold}
	if err != nil {
		s.logger.Error("dataset load failed, serving empty dashboard",
			"source", string(s.source), "path", s.path, "error", err)
		s.metrics.DatasetLoadErrors.Inc()
		snap.Diagnostics = append(snap.Diagnostics,
			fmt.Sprintf("data could not be loaded (%v); showing an empty dashboard", err))
	}

	snap.Observations = observations
	snap.Yearly = domain.AggregateYearly(observations)
	snap.YearlyByLocation = domain.AggregateYearlyByLocation(observations)
	snap.Locations = domain.Locations(observations)
	snap.Statistics = analysis.DescribeAll(observations)
	snap.Correlations = analysis.Correlations(observations)
	snap.Trends = analysis.FitAllTrends(snap.Yearly)
	snap.Inflections = analysis.DetectInflections(snap.Yearly, s.threshold)
	snap.Fingerprint = fingerprint(snap)

	s.metrics.ObservationsLoaded.Set(float64(len(observations)))
	s.metrics.AnalysisDuration.Observe(clock.Since(start).Seconds())
	if !snap.Empty() {
		s.metrics.StoreReady.Set(1)
	}

	s.logger.Info("dataset loaded",
		"source", string(s.source),
		"observations", len(observations),
		"years", len(snap.Yearly),
		"locations", len(snap.Locations),
		"inflection_years", len(snap.Inflections),
	)

	s.snapshot.Store(snap)
}

// fingerprint derives a short stable key for the snapshot, used to key the
// chart render cache.
func fingerprint(s *Snapshot) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%d", len(s.Observations), len(s.Yearly), s.LoadedAt.UnixNano())
	for _, r := range s.Yearly {
		fmt.Fprintf(h, "|%d:%.4f:%.4f:%.4f", r.Year, r.BOD5, r.NH3N, r.SS)
	}
	return hex.EncodeToString(h.Sum(nil)[:8])
}
