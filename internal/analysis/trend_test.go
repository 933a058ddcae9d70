package analysis_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pollution-trends-service/internal/analysis"
	"github.com/couchcryptid/pollution-trends-service/internal/domain"
)

func TestClassifyDirection_Boundaries(t *testing.T) {
	tests := []struct {
		slope float64
		want  string
	}{
		{0.6, analysis.StrongIncrease},
		{0.5, analysis.ModerateIncrease}, // boundary belongs to the lower bucket
		{0.2, analysis.ModerateIncrease},
		{0.1, analysis.SlightIncrease},
		{0.01, analysis.SlightIncrease},
		{0, analysis.SlightDecrease},
		{-0.05, analysis.SlightDecrease},
		{-0.1, analysis.ModerateDecrease},
		{-0.4, analysis.ModerateDecrease},
		{-0.5, analysis.StrongDecrease},
		{-2, analysis.StrongDecrease},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, analysis.ClassifyDirection(tt.slope), "slope %v", tt.slope)
	}
}

func TestPercentChange(t *testing.T) {
	change, ok := analysis.PercentChange(100, 50)
	require.True(t, ok)
	assert.Equal(t, -50.0, change)

	change, ok = analysis.PercentChange(10, 9)
	require.True(t, ok)
	assert.InDelta(t, -10.0, change, 1e-12)

	change, ok = analysis.PercentChange(0, 5)
	assert.False(t, ok)
	assert.True(t, math.IsInf(change, 1))

	change, ok = analysis.PercentChange(0, -5)
	assert.False(t, ok)
	assert.True(t, math.IsInf(change, -1))

	// A flat zero start is still undefined, not a zero change.
	change, ok = analysis.PercentChange(0, 0)
	assert.False(t, ok)
	assert.True(t, math.IsNaN(change))
}

func rowsWithBOD5(values ...float64) []domain.YearlyRow {
	rows := make([]domain.YearlyRow, len(values))
	for i, v := range values {
		rows[i] = domain.YearlyRow{Year: 2000 + i, BOD5: v, NH3N: 30, SS: 30}
	}
	return rows
}

func TestFitTrend_KnownSeries(t *testing.T) {
	// Years 2000-2003 with means 10, 20, 8, 9: slope -1.5 by hand.
	rows := rowsWithBOD5(10, 20, 8, 9)

	tr, err := analysis.FitTrend(rows, domain.BOD5)
	require.NoError(t, err)

	assert.InDelta(t, -1.5, tr.Slope, 1e-9)
	assert.Equal(t, analysis.StrongDecrease, tr.Direction)
	assert.InDelta(t, -10.0, tr.PctChange, 1e-9)
	assert.True(t, tr.PctChangeDefined)
	assert.InDelta(t, 0.1213, tr.RSquared, 1e-3)
	assert.Greater(t, tr.PValue, 0.05)
	assert.False(t, tr.Significant())
	assert.Equal(t, 4, tr.N)
}

func TestFitTrend_PerfectFit(t *testing.T) {
	rows := rowsWithBOD5(1, 2, 3, 4)

	tr, err := analysis.FitTrend(rows, domain.BOD5)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, tr.Slope, 1e-9)
	assert.InDelta(t, 1.0, tr.RSquared, 1e-9)
	assert.Equal(t, 0.0, tr.PValue)
	assert.Equal(t, analysis.StrongIncrease, tr.Direction)
	assert.True(t, tr.Significant())
}

func TestFitTrend_TwoPoints(t *testing.T) {
	rows := rowsWithBOD5(100, 50)

	tr, err := analysis.FitTrend(rows, domain.BOD5)
	require.NoError(t, err)

	assert.Equal(t, -50.0, tr.PctChange)
	assert.True(t, tr.PctChangeDefined)
	// No residual degrees of freedom with two points.
	assert.Equal(t, 1.0, tr.PValue)
}

func TestFitTrend_ZeroFirstYear(t *testing.T) {
	rows := rowsWithBOD5(0, 13.57, 86.43)

	tr, err := analysis.FitTrend(rows, domain.BOD5)
	require.NoError(t, err)

	assert.False(t, tr.PctChangeDefined)
	assert.True(t, math.IsInf(tr.PctChange, 1))
}

func TestFitTrend_InsufficientData(t *testing.T) {
	_, err := analysis.FitTrend(rowsWithBOD5(10), domain.BOD5)
	require.ErrorIs(t, err, analysis.ErrInsufficientData)

	_, err = analysis.FitTrend(nil, domain.BOD5)
	require.ErrorIs(t, err, analysis.ErrInsufficientData)
}

func TestFitAllTrends_SkipsUnfittable(t *testing.T) {
	assert.Empty(t, analysis.FitAllTrends(rowsWithBOD5(10)))

	trends := analysis.FitAllTrends(rowsWithBOD5(10, 20, 8, 9))
	require.Len(t, trends, 3)
	assert.Contains(t, trends, domain.BOD5)
	assert.Contains(t, trends, domain.NH3N)
	assert.Contains(t, trends, domain.SS)
}
