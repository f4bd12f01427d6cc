package view_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotopo/tmdview/internal/testutil"
	"github.com/neurotopo/tmdview/view"
)

func TestGetFigure_NewFigure(t *testing.T) {
	t.Parallel()

	fig, ax, err := view.GetFigure(view.Target{})
	require.NoError(t, err)
	require.NotNil(t, fig)
	require.NotNil(t, ax)

	assert.Equal(t, view.DefaultFigureWidth, fig.Width)
	assert.Equal(t, view.DefaultFigureHeight, fig.Height)
	assert.Equal(t, view.SingleAxes, ax.Subplot())
	assert.Same(t, fig, ax.Figure())
	assert.Same(t, ax, fig.Current())
	assert.Len(t, fig.Axes(), 1)
}

func TestGetFigure_Reuse(t *testing.T) {
	t.Parallel()

	fig := view.NewFigure(view.DefaultFigureWidth, view.DefaultFigureHeight)
	left, err := fig.AddSubplot(view.Subplot{Rows: 1, Cols: 2, Index: 1})
	require.NoError(t, err)
	right, err := fig.AddSubplot(view.Subplot{Rows: 1, Cols: 2, Index: 2})
	require.NoError(t, err)

	_, ax, err := view.GetFigure(view.OnFigure(fig, view.Subplot{}))
	require.NoError(t, err)
	assert.Same(t, right, ax, "zero subplot reuses the current axes")

	_, ax, err = view.GetFigure(view.OnFigure(fig, view.Subplot{Rows: 1, Cols: 2, Index: 1}))
	require.NoError(t, err)
	assert.Same(t, left, ax)
	assert.Same(t, left, fig.Current())
	assert.Len(t, fig.Axes(), 2)
}

func TestGetFigure_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target view.Target
		want   error
	}{
		{"no figure", view.Target{Mode: view.ReuseProvided}, view.ErrNoFigure},
		{"index past grid", view.NewFigureTarget(view.Subplot{Rows: 2, Cols: 2, Index: 5}), view.ErrSubplot},
		{"zero rows", view.NewFigureTarget(view.Subplot{Cols: 1, Index: 1}), view.ErrSubplot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := view.GetFigure(tt.target)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestFigure_WriterTo(t *testing.T) {
	t.Parallel()

	fig := view.NewFigure(view.DefaultFigureWidth, view.DefaultFigureHeight)
	cfg := view.DefaultEnhancedBarcodeConfig()
	cfg.Target = view.OnFigure(fig, view.Subplot{Rows: 1, Cols: 2, Index: 1})
	_, err := view.BarcodeEnhanced(testutil.SimpleDiagram(), cfg)
	require.NoError(t, err)

	hcfg := view.DefaultHistogramConfig()
	hcfg.Target = view.OnFigure(fig, view.Subplot{Rows: 1, Cols: 2, Index: 2})
	_, err = view.HistogramStepped(testutil.SimpleDiagram(), hcfg)
	require.NoError(t, err)

	wt, err := fig.WriterTo("png")
	require.NoError(t, err)
	var buf bytes.Buffer
	_, err = wt.WriteTo(&buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")), "output is a PNG")
}

func TestFigure_WriterToUnknownFormat(t *testing.T) {
	t.Parallel()

	fig := view.NewFigure(view.DefaultFigureWidth, view.DefaultFigureHeight)
	_, err := fig.WriterTo("bmp")
	testutil.AssertError(t, err)
}
