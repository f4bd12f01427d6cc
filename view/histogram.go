package view

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/monitoring"
	"github.com/neurotopo/tmdview/style"
)

// DefaultHistogramBins is the number of edges HistogramHorizontal places
// across the data range.
const DefaultHistogramBins = 100

// HistogramConfig configures the histogram charts.
type HistogramConfig struct {
	Target Target
	Style  style.Options

	// Color fills the histogram. Nil selects Blue.
	Color color.Color
	// Alpha is the fill opacity in (0, 1]. Zero selects DefaultFillAlpha.
	Alpha float64
	// Bins is the edge count for HistogramHorizontal. Zero selects
	// DefaultHistogramBins.
	Bins int
}

// DefaultHistogramConfig returns the default histogram configuration.
func DefaultHistogramConfig() HistogramConfig {
	return HistogramConfig{
		Color: Blue,
		Alpha: DefaultFillAlpha,
		Bins:  DefaultHistogramBins,
	}
}

// drawHistogram adds h to ax as a filled step area whose baseline is 0.
// A histogram without bins, as when every bar has zero length at one
// value, draws nothing.
func drawHistogram(ax *Axes, h analysis.Histogram, cfg HistogramConfig) error {
	n := len(h.Heights)
	if len(h.Edges) != n+1 {
		return fmt.Errorf("%d edges for %d heights: %w", len(h.Edges), n, analysis.ErrBins)
	}
	if n == 0 {
		return nil
	}
	pts := make(plotter.XYs, n+1)
	for i, y := range h.Heights {
		pts[i] = plotter.XY{X: h.Edges[i], Y: y}
	}
	pts[n] = plotter.XY{X: h.Edges[n], Y: h.Heights[n-1]}

	l, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	l.StepStyle = plotter.PostStep
	l.FillColor = withAlpha(orColor(cfg.Color, Blue), orAlpha(cfg.Alpha, DefaultFillAlpha))
	l.LineStyle = draw.LineStyle{}
	ax.Add(l)
	ax.Plot.Y.Min = math.Min(ax.Plot.Y.Min, 0)
	return nil
}

// HistogramStepped draws the number of bars alive between consecutive bar
// endpoints.
func HistogramStepped(d analysis.Diagram, cfg HistogramConfig) (*Axes, error) {
	h, err := analysis.HistogramStepped(d)
	if err != nil {
		return nil, fmt.Errorf("stepped histogram: %w", err)
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("stepped histogram: %w", err)
	}
	if err := drawHistogram(ax, h, cfg); err != nil {
		return nil, fmt.Errorf("stepped histogram: %w", err)
	}
	monitoring.Debugf("stepped histogram: %d bars, %d intervals", len(d), len(h.Heights))

	def := defaults("Stepped histogram", "Radial distance from soma", "Number of bars")
	return finish(fig, ax, cfg.Style, def), nil
}

// HistogramSteppedPopulation draws the stepped histogram of all diagrams
// together, divided by the number of diagrams.
func HistogramSteppedPopulation(phs []analysis.Diagram, cfg HistogramConfig) (*Axes, error) {
	if len(phs) == 0 {
		return nil, fmt.Errorf("population histogram: %w", analysis.ErrEmptyDiagram)
	}
	h, err := analysis.HistogramStepped(analysis.Collapse(phs))
	if err != nil {
		return nil, fmt.Errorf("population histogram: %w", err)
	}
	h = h.Scale(1 / float64(len(phs)))

	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("population histogram: %w", err)
	}
	if err := drawHistogram(ax, h, cfg); err != nil {
		return nil, fmt.Errorf("population histogram: %w", err)
	}
	monitoring.Debugf("population histogram: %d diagrams, %d intervals", len(phs), len(h.Heights))

	def := defaults("Population stepped histogram", "Radial distance from soma", "Average number of bars")
	return finish(fig, ax, cfg.Style, def), nil
}

// HistogramHorizontal draws the bars binned on cfg.Bins evenly spaced
// edges across their range.
func HistogramHorizontal(d analysis.Diagram, cfg HistogramConfig) (*Axes, error) {
	bins := cfg.Bins
	if bins == 0 {
		bins = DefaultHistogramBins
	}
	h, err := analysis.HistogramHorizontal(d, bins)
	if err != nil {
		return nil, fmt.Errorf("horizontal histogram: %w", err)
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("horizontal histogram: %w", err)
	}
	if err := drawHistogram(ax, h, cfg); err != nil {
		return nil, fmt.Errorf("horizontal histogram: %w", err)
	}
	monitoring.Debugf("horizontal histogram: %d bars, %d bins", len(d), len(h.Heights))

	def := defaults("Horizontal histogram", "Radial distance from soma", "Number of bars")
	return finish(fig, ax, cfg.Style, def), nil
}
