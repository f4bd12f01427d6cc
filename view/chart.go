package view

import (
	"image/color"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/neurotopo/tmdview/style"
)

// Chart defaults shared by several entry points.
const (
	DefaultLineWidth  = 1.2 // points
	DefaultMarkerArea = 30  // square points
	DefaultFillAlpha  = 0.7
)

// defaults builds the default style of a chart. Empty strings leave the
// corresponding field unset.
func defaults(title, xlabel, ylabel string) style.Options {
	var o style.Options
	if title != "" {
		o.Title = style.String(title)
	}
	if xlabel != "" {
		o.XLabel = style.String(xlabel)
	}
	if ylabel != "" {
		o.YLabel = style.String(ylabel)
	}
	return o
}

// finish merges the caller's options over the chart defaults and applies
// them to ax.
func finish(fig *Figure, ax *Axes, opts, chartDefaults style.Options) *Axes {
	return PlotStyle(fig, ax, opts.WithDefaults(chartDefaults))
}

func orColor(c, fallback color.Color) color.Color {
	if c == nil {
		return fallback
	}
	return c
}

func orWidth(w float64) vg.Length {
	if w <= 0 {
		w = DefaultLineWidth
	}
	return vg.Points(w)
}

func orAlpha(a, fallback float64) float64 {
	if a <= 0 || a > 1 {
		return fallback
	}
	return a
}

// segment returns a two-point line from (x0, y0) to (x1, y1).
func segment(x0, y0, x1, y1 float64, ls draw.LineStyle) (*plotter.Line, error) {
	l, err := plotter.NewLine(plotter.XYs{{X: x0, Y: y0}, {X: x1, Y: y1}})
	if err != nil {
		return nil, err
	}
	l.LineStyle = ls
	return l, nil
}
