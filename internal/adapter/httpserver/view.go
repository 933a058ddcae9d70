package httpserver

import (
	"fmt"
	"math"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/dataset"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
	"github.com/couchcryptid/pollution-trends-service/internal/report"
)

// dashboardView is the template data for the HTML dashboard.
type dashboardView struct {
	Title       string
	Empty       bool
	Diagnostics []string

	Observations int
	FirstYear    int
	LastYear     int

	Pollutants []pollutantView
	Yearly     []domain.YearlyRow
	Inflection []inflectionView
	Threshold  float64
}

// pollutantView gathers everything the page shows for one indicator.
type pollutantView struct {
	Key         string
	Name        string
	About       string
	Summary     report.TrendSummary
	Stats       analysis.Descriptive
	HasStats    bool
	Correlation map[string]string
	Causes      []string
}

// inflectionView is one flagged year with display-formatted changes.
type inflectionView struct {
	Year    int
	Changes []string // aligned with domain.Pollutants order
	Flagged string
}

func buildView(snap *dataset.Snapshot) dashboardView {
	view := dashboardView{
		Title:        "Pollution Proportion Trends Analysis",
		Empty:        snap.Empty(),
		Diagnostics:  snap.Diagnostics,
		Observations: len(snap.Observations),
		Yearly:       snap.Yearly,
		Threshold:    snap.Threshold,
	}
	if len(snap.Yearly) > 0 {
		view.FirstYear = snap.Yearly[0].Year
		view.LastYear = snap.Yearly[len(snap.Yearly)-1].Year
	}

	for _, p := range domain.Pollutants() {
		pv := pollutantView{
			Key:   string(p),
			Name:  p.DisplayName(),
			About: p.Description(),
		}

		// A missing trend fit degrades to the generic summary; the page
		// always renders.
		if tr, ok := snap.Trend(p); ok {
			pv.Summary = report.SummarizeTrend(p.DisplayName(), tr)
			pv.Causes = report.PotentialCauses(p, tr.Direction)
		} else {
			pv.Summary = report.FallbackTrendSummary(p.DisplayName())
			pv.Causes = report.PotentialCauses(p, "")
		}

		if stats, ok := snap.Statistics[p]; ok && stats.N > 0 {
			pv.Stats = stats
			pv.HasStats = true
		}

		if row, ok := snap.Correlations[p]; ok {
			pv.Correlation = make(map[string]string, len(row))
			for other, r := range row {
				if math.IsNaN(r) || math.IsInf(r, 0) {
					// Constant column, correlation undefined.
					pv.Correlation[other.DisplayName()] = "n/a"
					continue
				}
				pv.Correlation[other.DisplayName()] = fmt.Sprintf("%.2f", r)
			}
		}

		view.Pollutants = append(view.Pollutants, pv)
	}

	view.Inflection = inflectionRows(snap)
	return view
}

// trendAPIView mirrors analysis.TrendResult for the JSON API. PctChange is
// a pointer so an undefined change marshals as an absent field; json.Marshal
// rejects the non-finite sentinel outright.
type trendAPIView struct {
	Pollutant   string   `json:"pollutant"`
	Slope       float64  `json:"slope"`
	Intercept   float64  `json:"intercept"`
	RSquared    float64  `json:"r_squared"`
	PValue      float64  `json:"p_value"`
	Direction   string   `json:"direction"`
	Significant bool     `json:"significant"`
	N           int      `json:"n"`
	PctChange   *float64 `json:"pct_change,omitempty"`
}

func trendAPIViews(snap *dataset.Snapshot) map[string]trendAPIView {
	out := make(map[string]trendAPIView, len(snap.Trends))
	for p, tr := range snap.Trends {
		v := trendAPIView{
			Pollutant:   string(p),
			Slope:       tr.Slope,
			Intercept:   tr.Intercept,
			RSquared:    tr.RSquared,
			PValue:      tr.PValue,
			Direction:   tr.Direction,
			Significant: tr.Significant(),
			N:           tr.N,
		}
		if tr.PctChangeDefined {
			pct := tr.PctChange
			v.PctChange = &pct
		}
		out[string(p)] = v
	}
	return out
}

// correlationAPIView replaces undefined correlations (NaN from a constant
// column) with JSON null.
func correlationAPIView(matrix analysis.CorrelationMatrix) map[string]map[string]*float64 {
	if matrix == nil {
		return nil
	}
	out := make(map[string]map[string]*float64, len(matrix))
	for a, row := range matrix {
		cells := make(map[string]*float64, len(row))
		for b, r := range row {
			if math.IsNaN(r) || math.IsInf(r, 0) {
				cells[string(b)] = nil
				continue
			}
			v := r
			cells[string(b)] = &v
		}
		out[string(a)] = cells
	}
	return out
}

// trendSummaries maps each pollutant to its rendered trend summary for the
// overview API.
func trendSummaries(snap *dataset.Snapshot) map[string]report.TrendSummary {
	out := make(map[string]report.TrendSummary, len(domain.Pollutants()))
	for _, p := range domain.Pollutants() {
		if tr, ok := snap.Trend(p); ok {
			out[string(p)] = report.SummarizeTrend(p.DisplayName(), tr)
		} else {
			out[string(p)] = report.FallbackTrendSummary(p.DisplayName())
		}
	}
	return out
}

func inflectionRows(snap *dataset.Snapshot) []inflectionView {
	rows := make([]inflectionView, 0, len(snap.Inflections))
	for _, inf := range snap.Inflections {
		iv := inflectionView{Year: inf.Year}
		for _, p := range domain.Pollutants() {
			iv.Changes = append(iv.Changes, formatChange(inf.Changes[p]))
		}
		for i, p := range inf.Flagged {
			if i > 0 {
				iv.Flagged += ", "
			}
			iv.Flagged += p.DisplayName()
		}
		rows = append(rows, iv)
	}
	return rows
}

// formatChange renders a year-over-year change, spelling out the zero-base
// sentinel instead of printing Inf.
func formatChange(v float64) string {
	if math.IsInf(v, 0) {
		return "n/a (prior year zero)"
	}
	return fmt.Sprintf("%+.1f%%", v)
}
