package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

// ErrInsufficientData is returned when a trend fit has fewer than two
// distinct years to regress over.
var ErrInsufficientData = errors.New("trend fit requires at least two distinct years")

// Direction labels for the slope classification ladder.
const (
	StrongIncrease   = "strong increase"
	ModerateIncrease = "moderate increase"
	SlightIncrease   = "slight increase"
	SlightDecrease   = "slight decrease"
	ModerateDecrease = "moderate decrease"
	StrongDecrease   = "strong decrease"
)

// TrendResult is the least-squares fit of one indicator's yearly means
// against year, plus derived presentation fields. Recomputed fresh on every
// load; never persisted.
type TrendResult struct {
	Pollutant domain.Pollutant `json:"pollutant"`
	Slope     float64          `json:"slope"`
	Intercept float64          `json:"intercept"`
	RSquared  float64          `json:"r_squared"`
	PValue    float64          `json:"p_value"`
	Direction string           `json:"direction"`
	N         int              `json:"n"`

	// PctChange is the first-to-last-year percent change. When the first
	// year's mean is zero the change is non-finite (±Inf or NaN) and
	// PctChangeDefined is false; presenters must render the fallback text
	// instead of the number.
	PctChange        float64 `json:"pct_change"`
	PctChangeDefined bool    `json:"pct_change_defined"`
}

// Significant reports whether the slope is statistically significant at the
// conventional 0.05 level.
func (t TrendResult) Significant() bool {
	return t.PValue < 0.05
}

// ClassifyDirection buckets a slope into the fixed threshold ladder. The
// boundaries are half-open: a slope of exactly 0.5 is a moderate increase,
// exactly -0.5 a strong decrease.
func ClassifyDirection(slope float64) string {
	switch {
	case slope > 0.5:
		return StrongIncrease
	case slope > 0.1:
		return ModerateIncrease
	case slope > 0:
		return SlightIncrease
	case slope > -0.1:
		return SlightDecrease
	case slope > -0.5:
		return ModerateDecrease
	default:
		return StrongDecrease
	}
}

// PercentChange computes (last-first)/first × 100. A zero first value makes
// the change undefined: ±Inf (sign of last) for a nonzero last, NaN when
// both are zero, always with ok=false. Callers must not feed the sentinel
// into further arithmetic or serialization.
func PercentChange(first, last float64) (change float64, ok bool) {
	if first == 0 {
		if last == 0 {
			return math.NaN(), false
		}
		return math.Inf(sign(last)), false
	}
	return (last - first) / first * 100, true
}

func sign(v float64) int {
	if v < 0 {
		return -1
	}
	return 1
}

// FitTrend regresses one indicator's yearly means against year. The rows
// must follow the AggregateYearly invariants (ascending, unique years).
// Returns ErrInsufficientData for fewer than two rows.
func FitTrend(rows []domain.YearlyRow, p domain.Pollutant) (TrendResult, error) {
	if len(rows) < 2 {
		return TrendResult{}, fmt.Errorf("fit %s trend over %d year(s): %w", p, len(rows), ErrInsufficientData)
	}

	xs := make([]float64, len(rows))
	for i, r := range rows {
		xs[i] = float64(r.Year)
	}
	ys := domain.Column(rows, p)

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)
	r2 := stat.RSquared(xs, ys, nil, intercept, slope)

	pct, defined := PercentChange(ys[0], ys[len(ys)-1])

	return TrendResult{
		Pollutant:        p,
		Slope:            slope,
		Intercept:        intercept,
		RSquared:         r2,
		PValue:           slopePValue(xs, ys, intercept, slope),
		Direction:        ClassifyDirection(slope),
		N:                len(rows),
		PctChange:        pct,
		PctChangeDefined: defined,
	}, nil
}

// FitAllTrends fits every indicator, skipping those that cannot be fit.
// Callers look up by indicator and fall back to a generic message on a miss.
func FitAllTrends(rows []domain.YearlyRow) map[domain.Pollutant]TrendResult {
	out := make(map[domain.Pollutant]TrendResult, 3)
	for _, p := range domain.Pollutants() {
		tr, err := FitTrend(rows, p)
		if err != nil {
			continue
		}
		out[p] = tr
	}
	return out
}

// slopePValue computes the two-tailed p-value for the slope coefficient
// using the t statistic with n-2 degrees of freedom.
func slopePValue(xs, ys []float64, intercept, slope float64) float64 {
	n := len(xs)
	if n <= 2 {
		// Two points always fit exactly; no residual degrees of freedom.
		return 1
	}

	xMean := stat.Mean(xs, nil)
	var sse, sxx float64
	for i := range xs {
		resid := ys[i] - (intercept + slope*xs[i])
		sse += resid * resid
		dx := xs[i] - xMean
		sxx += dx * dx
	}
	if sxx == 0 {
		return 1
	}

	se := math.Sqrt(sse / float64(n-2) / sxx)
	if se == 0 {
		// Perfect fit: the slope is exactly determined.
		if slope == 0 {
			return 1
		}
		return 0
	}

	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 2)}
	return 2 * t.Survival(math.Abs(slope/se))
}
