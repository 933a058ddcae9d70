package httpserver_test

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pollution-trends-service/internal/adapter/httpserver"
	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/dataset"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
	"github.com/couchcryptid/pollution-trends-service/internal/observability"
	"github.com/couchcryptid/pollution-trends-service/internal/report"
)

func newTestServer(t *testing.T, source dataset.Source, path string) *httpserver.Server {
	t.Helper()
	metrics := observability.NewMetricsForTesting()
	store := dataset.NewStore(source, path, 15, slog.Default(), metrics)
	renderer := report.NewRenderer(4, metrics)
	return httpserver.NewServer(":0", store, store, renderer, slog.Default(), metrics)
}

func get(t *testing.T, srv *httpserver.Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestServer_Health(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/healthz")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestServer_Readiness(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	// Not ready before the dataset loads.
	rec := get(t, srv, "/readyz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	// Any data-serving request triggers the load.
	get(t, srv, "/api/yearly")

	rec = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_Dashboard(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Pollution Proportion Trends Analysis")
	assert.Contains(t, body, "Critical Inflection Points")
	assert.Contains(t, body, "BOD5")
}

func TestServer_Dashboard_EmptyDataset(t *testing.T) {
	srv := newTestServer(t, dataset.SourceCSV, "/does/not/exist.csv")

	rec := get(t, srv, "/")

	// Load failure degrades to an empty dashboard with a diagnostic banner.
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "data could not be loaded")
}

func TestServer_APITrends(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/api/trends")

	require.Equal(t, http.StatusOK, rec.Code)

	var trends map[domain.Pollutant]analysis.TrendResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trends))
	require.Len(t, trends, 3)
	assert.NotEmpty(t, trends[domain.BOD5].Direction)
}

func TestServer_APIYearly(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/api/yearly")

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []domain.YearlyRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	assert.Len(t, rows, 22)
}

func TestServer_ChartConfigs(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	for _, name := range []string{"trend", "composition", "heatmap", "box", "inflections", "bod5-by-location"} {
		rec := get(t, srv, "/api/charts/"+name)
		require.Equal(t, http.StatusOK, rec.Code, "chart %s", name)

		var cfg report.ChartConfig
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg), "chart %s", name)
		assert.NotEmpty(t, cfg.Series, "chart %s", name)
	}

	rec := get(t, srv, "/api/charts/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ExportYearlyCSV(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/export/yearly.csv")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "yearly_averages.csv")

	// Header plus one row per distinct year.
	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	assert.Len(t, lines, 23)
	assert.Equal(t, "Year,BOD5,NH3N,SS", lines[0])
}

func TestServer_ExportRoundTrip(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/export/yearly.csv")
	require.Equal(t, http.StatusOK, rec.Code)

	rows, err := dataset.ReadYearlyCSV(rec.Body)
	require.NoError(t, err)
	require.Len(t, rows, 22)

	observations, err := dataset.LoadEmbedded()
	require.NoError(t, err)
	want := domain.AggregateYearly(observations)
	for i := range want {
		assert.Equal(t, want[i].Year, rows[i].Year)
		assert.InDelta(t, want[i].BOD5, rows[i].BOD5, 1e-9)
	}
}

// newZeroStartServer serves a dataset whose BOD5 series starts at zero (so
// its percent change is undefined) and whose SS column never varies (so its
// correlations are undefined).
func newZeroStartServer(t *testing.T) *httpserver.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	data := "YEAR,Proportion bod5,Proportion nh3n,Proportion SS\n" +
		"2000-01-01,0,10,5\n" +
		"2001-01-01,2.5,12,5\n" +
		"2002-01-01,3,15,5\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
	return newTestServer(t, dataset.SourceCSV, path)
}

func TestServer_APITrends_ZeroStartYear(t *testing.T) {
	srv := newZeroStartServer(t)

	rec := get(t, srv, "/api/trends")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.Bytes())

	var trends map[string]struct {
		Direction string   `json:"direction"`
		PctChange *float64 `json:"pct_change"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trends))
	require.Len(t, trends, 3)

	// The undefined change is omitted, not marshaled as a non-finite float.
	assert.Nil(t, trends["bod5"].PctChange)
	assert.NotEmpty(t, trends["bod5"].Direction)

	require.NotNil(t, trends["nh3n"].PctChange)
	assert.InDelta(t, 50.0, *trends["nh3n"].PctChange, 1e-9)
}

func TestServer_APIStatistics_ConstantColumn(t *testing.T) {
	srv := newZeroStartServer(t)

	rec := get(t, srv, "/api/statistics")

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotEmpty(t, rec.Body.Bytes())

	var resp struct {
		Correlations map[string]map[string]*float64 `json:"correlations"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// SS never varies, so its correlation with the others is null.
	assert.Nil(t, resp.Correlations["ss"]["bod5"])
	require.NotNil(t, resp.Correlations["ss"]["ss"])
	assert.Equal(t, 1.0, *resp.Correlations["ss"]["ss"])
	require.NotNil(t, resp.Correlations["bod5"]["nh3n"])
}

func TestServer_ChartHeatmap_ConstantColumn(t *testing.T) {
	srv := newZeroStartServer(t)

	rec := get(t, srv, "/api/charts/heatmap")

	require.Equal(t, http.StatusOK, rec.Code)

	var cfg report.ChartConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cfg))
	for _, series := range cfg.Series {
		for _, pt := range series.Data {
			assert.False(t, math.IsNaN(pt.Value), "%s/%s", series.Name, pt.Label)
		}
	}
}

func TestServer_TrendPNG(t *testing.T) {
	srv := newTestServer(t, dataset.SourceEmbedded, "")

	rec := get(t, srv, "/charts/trend.png")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestServer_TrendPNG_EmptyDataset(t *testing.T) {
	srv := newTestServer(t, dataset.SourceCSV, "/does/not/exist.csv")

	rec := get(t, srv, "/charts/trend.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
