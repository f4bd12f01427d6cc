package analysis_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotopo/tmdview/analysis"
)

func TestTransformPHToLength(t *testing.T) {
	t.Parallel()

	d := analysis.Diagram{{3, 1, 9}, {2, 6, 9}}

	start, err := analysis.TransformPHToLength(d, analysis.KeepStart)
	require.NoError(t, err)
	assert.Equal(t, analysis.Diagram{{1, 2}, {2, 4}}, start)

	end, err := analysis.TransformPHToLength(d, analysis.KeepEnd)
	require.NoError(t, err)
	assert.Equal(t, analysis.Diagram{{3, 2}, {6, 4}}, end)

	_, err = analysis.TransformPHToLength(d, analysis.KeepSide(7))
	assert.Error(t, err)
	assert.Equal(t, "KeepSide(7)", analysis.KeepSide(7).String())
	assert.Equal(t, "start", analysis.KeepStart.String())
}
