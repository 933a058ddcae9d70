package report

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/pollution-trends-service/internal/domain"
	"github.com/couchcryptid/pollution-trends-service/internal/observability"
)

// Renderer produces PNG charts, caching rendered bytes per (chart, dataset
// fingerprint). The dataset never changes within a process, so cached
// renders stay valid for the process lifetime; the LRU bound just caps
// memory if many variants are requested.
type Renderer struct {
	cache   *lruCache
	metrics *observability.Metrics
}

// NewRenderer creates a Renderer with an LRU cache of maxEntries renders.
func NewRenderer(maxEntries int, metrics *observability.Metrics) *Renderer {
	return &Renderer{
		cache:   newLRUCache(maxEntries),
		metrics: metrics,
	}
}

// YearlyTrendPNG renders the headline trend line chart.
func (r *Renderer) YearlyTrendPNG(rows []domain.YearlyRow, fingerprint string) ([]byte, error) {
	return r.cached("trend", fingerprint, func() ([]byte, error) {
		return renderTrendLines(rows)
	})
}

// CompositionPNG renders the per-year stacked composition chart.
func (r *Renderer) CompositionPNG(rows []domain.YearlyRow, fingerprint string) ([]byte, error) {
	return r.cached("composition", fingerprint, func() ([]byte, error) {
		return renderComposition(rows)
	})
}

func (r *Renderer) cached(name, fingerprint string, render func() ([]byte, error)) ([]byte, error) {
	png, hit, err := r.cache.getOrPut(name+"|"+fingerprint, render)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", name, err)
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	r.metrics.ChartRenders.WithLabelValues(name, result).Inc()
	return png, nil
}

func renderTrendLines(rows []domain.YearlyRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no yearly data")
	}

	xs := make([]float64, len(rows))
	for i, row := range rows {
		xs[i] = float64(row.Year)
	}

	series := make([]chart.Series, 0, 3)
	for _, p := range domain.Pollutants() {
		series = append(series, chart.ContinuousSeries{
			Name:    p.DisplayName(),
			XValues: xs,
			YValues: domain.Column(rows, p),
			Style:   lineStyle(pollutantColors[p]),
		})
	}

	ch := chart.Chart{
		Title:  "Yearly Pollution Proportion Trends",
		Width:  900,
		Height: 500,
		XAxis:  chart.XAxis{Name: "Year"},
		YAxis:  chart.YAxis{Name: "Proportion (%)"},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderComposition(rows []domain.YearlyRow) ([]byte, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("no yearly data")
	}

	bars := make([]chart.StackedBar, 0, len(rows))
	for _, row := range rows {
		bar := chart.StackedBar{
			Name:  fmt.Sprintf("%d", row.Year),
			Width: 28,
		}
		for _, p := range domain.Pollutants() {
			bar.Values = append(bar.Values, chart.Value{
				Value: row.Value(p),
				Label: p.DisplayName(),
				Style: barStyle(pollutantColors[p]),
			})
		}
		bars = append(bars, bar)
	}

	ch := chart.StackedBarChart{
		Title:      "Relative Composition of Pollutants",
		Width:      1100,
		Height:     500,
		BarSpacing: 8,
		XAxis:      chart.Style{FontSize: 8},
		YAxis:      chart.Style{},
		Bars:       bars,
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func lineStyle(hex string) chart.Style {
	c := drawing.ColorFromHex(hex[1:])
	return chart.Style{
		StrokeColor: c,
		StrokeWidth: 2,
		DotColor:    c,
		DotWidth:    3,
	}
}

func barStyle(hex string) chart.Style {
	c := drawing.ColorFromHex(hex[1:])
	return chart.Style{
		FillColor:   c,
		StrokeColor: c,
		FontSize:    8,
	}
}
