package analysis

import (
	"math"

	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// DefaultInflectionThreshold is the percent-change magnitude above which a
// year is flagged as an inflection point.
const DefaultInflectionThreshold = 15.0

// InflectionYear records a year whose mean changed by more than the
// threshold versus the prior year for at least one indicator. Changes of
// ±Inf mark a jump off a zero prior-year mean; those are always flagged and
// must be rendered as text, not arithmetic.
type InflectionYear struct {
	Year    int                          `json:"year"`
	Changes map[domain.Pollutant]float64 `json:"changes"`
	Flagged []domain.Pollutant           `json:"flagged"`
}

// DetectInflections scans yearly rows for years whose year-over-year percent
// change exceeds threshold in absolute value for any indicator. The first
// year has no defined change and is never flagged. Rows must follow the
// AggregateYearly invariants. Empty or single-year input yields nil.
func DetectInflections(rows []domain.YearlyRow, threshold float64) []InflectionYear {
	if len(rows) < 2 {
		return nil
	}

	var flagged []InflectionYear
	for i := 1; i < len(rows); i++ {
		prev, curr := rows[i-1], rows[i]

		changes := make(map[domain.Pollutant]float64, 3)
		var over []domain.Pollutant
		for _, p := range domain.Pollutants() {
			change := yearOverYearChange(prev.Value(p), curr.Value(p))
			changes[p] = change
			if exceeds(change, threshold) {
				over = append(over, p)
			}
		}

		if len(over) > 0 {
			flagged = append(flagged, InflectionYear{
				Year:    curr.Year,
				Changes: changes,
				Flagged: over,
			})
		}
	}
	return flagged
}

// yearOverYearChange computes the percent change from prev to curr. A zero
// prev with a nonzero curr is a jump off zero, reported as ±Inf so the year
// is always flagged; zero to zero is no change.
func yearOverYearChange(prev, curr float64) float64 {
	if prev == 0 {
		if curr == 0 {
			return 0
		}
		return math.Inf(sign(curr))
	}
	return (curr - prev) / prev * 100
}

func exceeds(change, threshold float64) bool {
	if math.IsInf(change, 0) {
		return true
	}
	return math.Abs(change) > threshold
}
