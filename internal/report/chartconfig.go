// Package report turns analysis results into presentable artifacts: chart
// configurations for the dashboard frontend, trend summary prose, a catalog
// of candidate causes, and server-rendered PNG charts.
package report

import (
	"fmt"
	"math"
	"sort"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// Colors used across all charts. BOD5 navy, NH3N green, SS red, matching
// the report's palette.
var pollutantColors = map[domain.Pollutant]string{
	domain.BOD5: "#2C5282",
	domain.NH3N: "#38A169",
	domain.SS:   "#E53E3E",
}

var locationColors = []string{"#2C5282", "#38A169", "#E53E3E", "#805AD5", "#D69E2E"}

// ChartConfig is the JSON chart description consumed by the dashboard
// frontend. One config fully describes one chart.
type ChartConfig struct {
	ChartType  string        `json:"chart_type"` // line, area, bar, heatmap, box
	Title      string        `json:"title"`
	XAxis      string        `json:"x_axis,omitempty"`
	YAxis      string        `json:"y_axis,omitempty"`
	ShowLegend bool          `json:"show_legend"`
	ShowGrid   bool          `json:"show_grid"`
	Series     []ChartSeries `json:"series"`
	Colors     []string      `json:"colors,omitempty"`

	// Annotations mark notable x positions, e.g. flagged inflection years.
	Annotations []ChartAnnotation `json:"annotations,omitempty"`
}

// ChartSeries is one named line/area/bar group.
type ChartSeries struct {
	Name string       `json:"name"`
	Data []ChartPoint `json:"data"`
}

// ChartPoint is a single labeled value.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartAnnotation marks a labeled x position.
type ChartAnnotation struct {
	X     string `json:"x"`
	Label string `json:"label"`
}

// YearlyTrendChart builds the headline line chart: one series per indicator
// over the yearly means. Empty rows yield nil.
func YearlyTrendChart(rows []domain.YearlyRow) *ChartConfig {
	if len(rows) == 0 {
		return nil
	}

	cfg := &ChartConfig{
		ChartType:  "line",
		Title:      "Yearly Pollution Proportion Trends",
		XAxis:      "Year",
		YAxis:      "Proportion (%)",
		ShowLegend: true,
		ShowGrid:   true,
	}
	for _, p := range domain.Pollutants() {
		cfg.Series = append(cfg.Series, yearlySeries(rows, p))
		cfg.Colors = append(cfg.Colors, pollutantColors[p])
	}
	return cfg
}

// StackedAreaChart builds the relative-composition chart over yearly means.
func StackedAreaChart(rows []domain.YearlyRow) *ChartConfig {
	cfg := YearlyTrendChart(rows)
	if cfg == nil {
		return nil
	}
	cfg.ChartType = "area"
	cfg.Title = "Relative Composition of Pollutants"
	return cfg
}

// LocationChart builds a per-location line chart for one indicator.
func LocationChart(byLocation map[string][]domain.YearlyRow, p domain.Pollutant) *ChartConfig {
	if len(byLocation) == 0 {
		return nil
	}

	locations := make([]string, 0, len(byLocation))
	for loc := range byLocation {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	cfg := &ChartConfig{
		ChartType:  "line",
		Title:      fmt.Sprintf("%s Proportion by Location", p.DisplayName()),
		XAxis:      "Year",
		YAxis:      fmt.Sprintf("%s Proportion (%%)", p.DisplayName()),
		ShowLegend: true,
		ShowGrid:   true,
	}
	for i, loc := range locations {
		series := yearlySeries(byLocation[loc], p)
		series.Name = loc
		cfg.Series = append(cfg.Series, series)
		cfg.Colors = append(cfg.Colors, locationColors[i%len(locationColors)])
	}
	return cfg
}

// CorrelationHeatmap builds a heatmap config from the pairwise correlation
// matrix. One series per row indicator, one point per column indicator.
func CorrelationHeatmap(matrix analysis.CorrelationMatrix) *ChartConfig {
	if len(matrix) == 0 {
		return nil
	}

	cfg := &ChartConfig{
		ChartType: "heatmap",
		Title:     "Pollutant Correlation Matrix",
		ShowGrid:  false,
	}
	for _, a := range domain.Pollutants() {
		series := ChartSeries{Name: a.DisplayName()}
		for _, b := range domain.Pollutants() {
			r := matrix[a][b]
			if math.IsNaN(r) || math.IsInf(r, 0) {
				// Constant column, correlation undefined: omit the cell so
				// the config stays marshalable.
				continue
			}
			series.Data = append(series.Data, ChartPoint{
				Label: b.DisplayName(),
				Value: roundTo2(r),
			})
		}
		cfg.Series = append(cfg.Series, series)
	}
	return cfg
}

// BoxChart builds a five-number-summary box chart per indicator from the raw
// observations.
func BoxChart(observations []domain.Observation) *ChartConfig {
	if len(observations) == 0 {
		return nil
	}

	cfg := &ChartConfig{
		ChartType:  "box",
		Title:      "Distribution of Pollutant Proportions",
		YAxis:      "Proportion (%)",
		ShowLegend: true,
		ShowGrid:   true,
	}
	for _, p := range domain.Pollutants() {
		min, q1, med, q3, max := fiveNumberSummary(domain.ObservationColumn(observations, p))
		cfg.Series = append(cfg.Series, ChartSeries{
			Name: p.DisplayName(),
			Data: []ChartPoint{
				{Label: "min", Value: roundTo2(min)},
				{Label: "q1", Value: roundTo2(q1)},
				{Label: "median", Value: roundTo2(med)},
				{Label: "q3", Value: roundTo2(q3)},
				{Label: "max", Value: roundTo2(max)},
			},
		})
		cfg.Colors = append(cfg.Colors, pollutantColors[p])
	}
	return cfg
}

// InflectionTimelineChart overlays the yearly trend lines with annotations
// at every flagged inflection year.
func InflectionTimelineChart(rows []domain.YearlyRow, inflections []analysis.InflectionYear) *ChartConfig {
	cfg := YearlyTrendChart(rows)
	if cfg == nil {
		return nil
	}
	cfg.Title = "Critical Inflection Points"
	for _, inf := range inflections {
		label := "significant change"
		if len(inf.Flagged) > 0 {
			names := make([]string, len(inf.Flagged))
			for i, p := range inf.Flagged {
				names[i] = p.DisplayName()
			}
			label = fmt.Sprintf("%v exceeded threshold", names)
		}
		cfg.Annotations = append(cfg.Annotations, ChartAnnotation{
			X:     fmt.Sprintf("%d", inf.Year),
			Label: label,
		})
	}
	return cfg
}

func yearlySeries(rows []domain.YearlyRow, p domain.Pollutant) ChartSeries {
	series := ChartSeries{Name: p.DisplayName()}
	for _, r := range rows {
		series.Data = append(series.Data, ChartPoint{
			Label: fmt.Sprintf("%d", r.Year),
			Value: roundTo2(r.Value(p)),
		})
	}
	return series
}

// fiveNumberSummary computes min, lower quartile, median, upper quartile,
// max. Quartiles use the median-of-halves convention.
func fiveNumberSummary(values []float64) (min, q1, med, q3, max float64) {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	min, max = sorted[0], sorted[n-1]
	med = medianOf(sorted)
	if n < 2 {
		return min, min, med, max, max
	}
	q1 = medianOf(sorted[:n/2])
	q3 = medianOf(sorted[(n+1)/2:])
	return min, q1, med, q3, max
}

func medianOf(sorted []float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

func roundTo2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return math.Round(v*100) / 100
}
