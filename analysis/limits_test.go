package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/testutil"
)

func TestLimitsOf(t *testing.T) {
	t.Parallel()

	xlim, ylim, err := analysis.LimitsOf(testutil.SimpleDiagram())
	require.NoError(t, err)
	assert.Equal(t, analysis.Bounds{Min: 0, Max: 3}, xlim)
	assert.Equal(t, analysis.Bounds{Min: 1, Max: 6}, ylim)
	assert.Equal(t, 5.0, ylim.Span())
}

func TestLimits_Collapsed(t *testing.T) {
	t.Parallel()

	phs := []analysis.Diagram{
		{{1, 2}, {3, 9}},
		{{-4, 0}},
	}
	xlim, ylim, err := analysis.Limits(phs)
	require.NoError(t, err)
	assert.Equal(t, analysis.Bounds{Min: -4, Max: 3}, xlim)
	assert.Equal(t, analysis.Bounds{Min: 0, Max: 9}, ylim)
}

func TestLimits_Empty(t *testing.T) {
	t.Parallel()

	_, _, err := analysis.Limits(nil)
	assert.ErrorIs(t, err, analysis.ErrEmptyDiagram)
}
