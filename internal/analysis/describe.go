// Package analysis computes descriptive statistics, linear trend fits, and
// year-over-year inflection detection over pollution observations.
package analysis

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// Descriptive summarizes the distribution of one indicator across all
// observations (not yearly means).
type Descriptive struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Range  float64 `json:"range"`
	N      int     `json:"n"`
}

// Describe computes descriptive statistics for a sample. A nil or empty
// sample yields the zero value.
func Describe(values []float64) Descriptive {
	if len(values) == 0 {
		return Descriptive{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d := Descriptive{
		Mean:   stat.Mean(values, nil),
		Median: median(sorted),
		Min:    sorted[0],
		Max:    sorted[len(sorted)-1],
		N:      len(values),
	}
	d.Range = d.Max - d.Min
	if len(values) > 1 {
		d.StdDev = stat.StdDev(values, nil)
	}
	return d
}

// DescribeAll computes per-indicator descriptive statistics across the raw
// observation set.
func DescribeAll(observations []domain.Observation) map[domain.Pollutant]Descriptive {
	out := make(map[domain.Pollutant]Descriptive, 3)
	for _, p := range domain.Pollutants() {
		out[p] = Describe(domain.ObservationColumn(observations, p))
	}
	return out
}

// median expects sorted input.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// CorrelationMatrix holds pairwise Pearson correlations between indicators.
type CorrelationMatrix map[domain.Pollutant]map[domain.Pollutant]float64

// Correlations computes the pairwise Pearson correlation between indicator
// columns across raw observations. Diagonal entries are 1. Fewer than two
// observations yields nil.
func Correlations(observations []domain.Observation) CorrelationMatrix {
	if len(observations) < 2 {
		return nil
	}

	columns := make(map[domain.Pollutant][]float64, 3)
	for _, p := range domain.Pollutants() {
		columns[p] = domain.ObservationColumn(observations, p)
	}

	matrix := make(CorrelationMatrix, 3)
	for _, a := range domain.Pollutants() {
		matrix[a] = make(map[domain.Pollutant]float64, 3)
		for _, b := range domain.Pollutants() {
			if a == b {
				matrix[a][b] = 1
				continue
			}
			matrix[a][b] = stat.Correlation(columns[a], columns[b], nil)
		}
	}
	return matrix
}
