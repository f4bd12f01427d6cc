package analysis_test

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/testutil"
)

func TestBarAccessors(t *testing.T) {
	t.Parallel()

	b := analysis.Bar{5, 2, 7}
	assert.Equal(t, 5.0, b.Birth())
	assert.Equal(t, 2.0, b.Death())
	assert.Equal(t, 3.0, b.Lifetime())
}

func TestDiagramValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    analysis.Diagram
		want error
	}{
		{"valid", testutil.SimpleDiagram(), nil},
		{"empty", analysis.Diagram{}, analysis.ErrEmptyDiagram},
		{"short bar", analysis.Diagram{{1}}, analysis.ErrShortBar},
		{"ragged", analysis.Diagram{{0, 1}, {0, 1, 2}}, analysis.ErrRaggedBars},
		{"nan", analysis.Diagram{{0, math.NaN()}}, analysis.ErrNonFinite},
		{"inf", analysis.Diagram{{math.Inf(1), 0}}, analysis.ErrNonFinite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.d.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDiagramColumnAndFlatten(t *testing.T) {
	t.Parallel()

	d := testutil.SimpleDiagram()
	assert.Equal(t, 3, d.Width())

	col, err := d.Column(2)
	require.NoError(t, err)
	if diff := cmp.Diff([]float64{10, 40, 20, 30}, col); diff != "" {
		t.Errorf("Column(2) mismatch (-want +got):\n%s", diff)
	}

	_, err = d.Column(3)
	assert.ErrorIs(t, err, analysis.ErrFieldIndex)

	flat := analysis.Diagram{{1, 2}, {3, 4}}.Flatten()
	assert.Equal(t, []float64{1, 2, 3, 4}, flat)
	assert.Equal(t, 0, analysis.Diagram(nil).Width())
}

func TestCollapse(t *testing.T) {
	t.Parallel()

	a := analysis.Diagram{{0, 1}}
	b := analysis.Diagram{{2, 3}, {4, 5}}
	got := analysis.Collapse([]analysis.Diagram{a, b})
	assert.Equal(t, analysis.Diagram{{0, 1}, {2, 3}, {4, 5}}, got)
	assert.Empty(t, analysis.Collapse(nil))
}
