package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/pollution-trends-service/internal/observability"
	"github.com/couchcryptid/pollution-trends-service/internal/report"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestRenderer_YearlyTrendPNG(t *testing.T) {
	r := report.NewRenderer(4, observability.NewMetricsForTesting())

	png, err := r.YearlyTrendPNG(testRows(), "fp-1")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, pngMagic, png[:4])

	// Second call with the same fingerprint serves the cached bytes.
	again, err := r.YearlyTrendPNG(testRows(), "fp-1")
	require.NoError(t, err)
	assert.Equal(t, png, again)
}

func TestRenderer_CompositionPNG(t *testing.T) {
	r := report.NewRenderer(4, observability.NewMetricsForTesting())

	png, err := r.CompositionPNG(testRows(), "fp-1")
	require.NoError(t, err)
	require.NotEmpty(t, png)
	assert.Equal(t, pngMagic, png[:4])
}

func TestRenderer_EmptyRows(t *testing.T) {
	r := report.NewRenderer(4, observability.NewMetricsForTesting())

	_, err := r.YearlyTrendPNG(nil, "fp-empty")
	require.Error(t, err)

	_, err = r.CompositionPNG(nil, "fp-empty")
	require.Error(t, err)
}
