package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/testutil"
	"github.com/neurotopo/tmdview/style"
	"github.com/neurotopo/tmdview/view"
)

func TestExplicitTitleWins(t *testing.T) {
	t.Parallel()

	title := style.Options{Title: style.String("X")}
	d := testutil.SpreadDiagram()
	phs := []analysis.Diagram{testutil.SpreadDiagram(), testutil.ShiftedDiagram(1)}
	z, err := analysis.PersistenceImageData(d, analysis.ImageParams{Bins: 10})
	require.NoError(t, err)

	tests := []struct {
		name string
		draw func() (*view.Axes, error)
	}{
		{"barcode", func() (*view.Axes, error) {
			cfg := view.DefaultBarcodeConfig()
			cfg.Style = title
			return view.Barcode(d, cfg)
		}},
		{"enhanced barcode", func() (*view.Axes, error) {
			cfg := view.DefaultEnhancedBarcodeConfig()
			cfg.Style = title
			return view.BarcodeEnhanced(testutil.SimpleDiagram(), cfg)
		}},
		{"diagram", func() (*view.Axes, error) {
			cfg := view.DefaultDiagramConfig()
			cfg.Style = title
			return view.Diagram(d, cfg)
		}},
		{"persistence image", func() (*view.Axes, error) {
			cfg := view.DefaultImageConfig()
			cfg.Bins = 10
			cfg.Style = title
			_, ax, err := view.PersistenceImage(d, cfg)
			return ax, err
		}},
		{"image diff", func() (*view.Axes, error) {
			cfg := view.DefaultImagePairConfig()
			cfg.Style = title
			return view.PersistenceImageDiff(z, z, cfg)
		}},
		{"image add", func() (*view.Axes, error) {
			cfg := view.DefaultImagePairConfig()
			cfg.Style = title
			return view.PersistenceImageAdd(z, z, cfg)
		}},
		{"average image", func() (*view.Axes, error) {
			cfg := view.DefaultAverageImageConfig()
			cfg.Bins = 10
			cfg.Style = title
			_, ax, err := view.PersistenceImageAverage(phs, cfg)
			return ax, err
		}},
		{"start-length diagram", func() (*view.Axes, error) {
			cfg := view.DefaultStartLengthConfig()
			cfg.Style = title
			return view.StartLengthDiagram(d, cfg)
		}},
		{"stepped histogram", func() (*view.Axes, error) {
			cfg := view.DefaultHistogramConfig()
			cfg.Style = title
			return view.HistogramStepped(d, cfg)
		}},
		{"population histogram", func() (*view.Axes, error) {
			cfg := view.DefaultHistogramConfig()
			cfg.Style = title
			return view.HistogramSteppedPopulation(phs, cfg)
		}},
		{"horizontal histogram", func() (*view.Axes, error) {
			cfg := view.DefaultHistogramConfig()
			cfg.Style = title
			return view.HistogramHorizontal(d, cfg)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ax, err := tt.draw()
			require.NoError(t, err)
			assert.Equal(t, "X", ax.Plot.Title.Text)
		})
	}
}
