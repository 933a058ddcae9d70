package domain

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// YearlyRow holds the mean proportion per indicator for one year.
type YearlyRow struct {
	Year int     `json:"year"`
	BOD5 float64 `json:"bod5"`
	NH3N float64 `json:"nh3n"`
	SS   float64 `json:"ss"`
}

// Value returns the yearly mean for the given indicator.
func (r YearlyRow) Value(p Pollutant) float64 {
	switch p {
	case BOD5:
		return r.BOD5
	case NH3N:
		return r.NH3N
	case SS:
		return r.SS
	default:
		return 0
	}
}

// AggregateYearly reduces observations to one row per distinct year, each
// indicator value being the arithmetic mean across that year's observations.
// Rows are returned in ascending year order. An empty input yields nil.
func AggregateYearly(observations []Observation) []YearlyRow {
	if len(observations) == 0 {
		return nil
	}

	byYear := make(map[int][]Observation)
	for _, o := range observations {
		byYear[o.Year] = append(byYear[o.Year], o)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	rows := make([]YearlyRow, 0, len(years))
	for _, y := range years {
		group := byYear[y]
		rows = append(rows, YearlyRow{
			Year: y,
			BOD5: stat.Mean(columnOf(group, BOD5), nil),
			NH3N: stat.Mean(columnOf(group, NH3N), nil),
			SS:   stat.Mean(columnOf(group, SS), nil),
		})
	}
	return rows
}

// AggregateYearlyByLocation groups observations by location label and
// aggregates each group's rows by year. Location keys are returned by
// Locations; each series follows the AggregateYearly invariants.
func AggregateYearlyByLocation(observations []Observation) map[string][]YearlyRow {
	if len(observations) == 0 {
		return nil
	}

	byLocation := make(map[string][]Observation)
	for _, o := range observations {
		byLocation[o.Location] = append(byLocation[o.Location], o)
	}

	out := make(map[string][]YearlyRow, len(byLocation))
	for loc, group := range byLocation {
		out[loc] = AggregateYearly(group)
	}
	return out
}

// Locations returns the distinct location labels present, sorted.
func Locations(observations []Observation) []string {
	seen := make(map[string]bool)
	var labels []string
	for _, o := range observations {
		if !seen[o.Location] {
			seen[o.Location] = true
			labels = append(labels, o.Location)
		}
	}
	sort.Strings(labels)
	return labels
}

// Years extracts the year column from aggregated rows.
func Years(rows []YearlyRow) []int {
	years := make([]int, len(rows))
	for i, r := range rows {
		years[i] = r.Year
	}
	return years
}

// Column extracts one indicator's values from aggregated rows, in row order.
func Column(rows []YearlyRow, p Pollutant) []float64 {
	values := make([]float64, len(rows))
	for i, r := range rows {
		values[i] = r.Value(p)
	}
	return values
}

// ObservationColumn extracts one indicator's values from raw observations.
func ObservationColumn(observations []Observation, p Pollutant) []float64 {
	values := make([]float64, len(observations))
	for i, o := range observations {
		values[i] = o.Value(p)
	}
	return values
}

func columnOf(observations []Observation, p Pollutant) []float64 {
	return ObservationColumn(observations, p)
}
