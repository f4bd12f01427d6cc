package view

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg/draw"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/monitoring"
	"github.com/neurotopo/tmdview/style"
)

// BarcodeConfig configures Barcode.
type BarcodeConfig struct {
	Target Target
	Style  style.Options

	// Color of every bar. Nil selects Blue.
	Color color.Color
	// LineWidth in points. Zero selects DefaultLineWidth.
	LineWidth float64
}

// DefaultBarcodeConfig returns the default barcode configuration.
func DefaultBarcodeConfig() BarcodeConfig {
	return BarcodeConfig{
		Color:     Blue,
		LineWidth: DefaultLineWidth,
	}
}

// Barcode draws one horizontal segment per bar, from birth to death, with
// bars stacked by increasing lifetime. The y range is [-1, len(d)].
func Barcode(d analysis.Diagram, cfg BarcodeConfig) (*Axes, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("barcode: %w", err)
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("barcode: %w", err)
	}
	sorted := analysis.SortPH(d)

	ls := draw.LineStyle{Color: orColor(cfg.Color, Blue), Width: orWidth(cfg.LineWidth)}
	for i, b := range sorted {
		y := float64(i)
		l, err := segment(b[0], y, b[1], y, ls)
		if err != nil {
			return nil, fmt.Errorf("barcode: bar %d: %w", i, err)
		}
		ax.Add(l)
	}
	monitoring.Debugf("barcode: %d bars", len(sorted))

	def := defaults("Persistence barcode", "Lifetime: radial distance from soma", "")
	def.YLim = &style.Range{-1, float64(len(sorted))}
	return finish(fig, ax, cfg.Style, def), nil
}

// EnhancedBarcodeConfig configures BarcodeEnhanced.
type EnhancedBarcodeConfig struct {
	Target Target
	Style  style.Options

	// ValID is the bar field that colors each bar.
	ValID int
	// ColorMap maps field values to colors. Nil selects Jet. Its range is
	// overwritten with the scale of the data.
	ColorMap palette.ColorMap
	// LineWidth in points. Zero selects DefaultLineWidth.
	LineWidth float64
}

// DefaultEnhancedBarcodeConfig returns the default configuration, coloring
// by the third bar field.
func DefaultEnhancedBarcodeConfig() EnhancedBarcodeConfig {
	return EnhancedBarcodeConfig{
		ValID:     2,
		ColorMap:  Jet(),
		LineWidth: DefaultLineWidth,
	}
}

// BarcodeEnhanced draws a barcode whose bars are colored by field ValID,
// on a color scale from 0 to the field's maximum, and attaches a color bar
// showing that scale.
func BarcodeEnhanced(d analysis.Diagram, cfg EnhancedBarcodeConfig) (*Axes, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("enhanced barcode: %w", err)
	}
	vals, err := d.Column(cfg.ValID)
	if err != nil {
		return nil, fmt.Errorf("enhanced barcode: %w", err)
	}
	valMax := floats.Max(vals)
	if valMax <= 0 {
		return nil, fmt.Errorf("enhanced barcode: field %d maximum %g gives an empty color scale", cfg.ValID, valMax)
	}

	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("enhanced barcode: %w", err)
	}
	cmap := cfg.ColorMap
	if cmap == nil {
		cmap = Jet()
	}
	if err := registerColorScale(ax, 0, valMax, cmap); err != nil {
		return nil, fmt.Errorf("enhanced barcode: %w", err)
	}

	sorted := analysis.SortByLifetime(d)
	width := orWidth(cfg.LineWidth)
	for i, b := range sorted {
		c, err := colorAt(cmap, b[cfg.ValID])
		if err != nil {
			return nil, fmt.Errorf("enhanced barcode: bar %d: %w", i, err)
		}
		y := float64(i)
		l, err := segment(b[0], y, b[1], y, draw.LineStyle{Color: c, Width: width})
		if err != nil {
			return nil, fmt.Errorf("enhanced barcode: bar %d: %w", i, err)
		}
		ax.Add(l)
	}
	monitoring.Debugf("enhanced barcode: %d bars, field %d scale [0, %g]", len(sorted), cfg.ValID, valMax)

	def := defaults("Barcode of p.h.", "Lifetime", "")
	def.YLim = &style.Range{-1, float64(len(sorted))}
	return finish(fig, ax, cfg.Style, def), nil
}
