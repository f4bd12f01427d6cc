package view

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/monitoring"
	"github.com/neurotopo/tmdview/style"
)

// DiagramConfig configures Diagram and StartLengthDiagram.
type DiagramConfig struct {
	Target Target
	Style  style.Options

	// Color fills the markers. Nil selects Blue.
	Color color.Color
	// Alpha is the marker fill opacity in (0, 1]. Zero selects 1.
	Alpha float64
	// EdgeColor outlines the markers. Nil selects Black.
	EdgeColor color.Color
	// MarkerArea is the marker area in square points. Zero selects
	// DefaultMarkerArea.
	MarkerArea float64
}

// DefaultDiagramConfig returns the default diagram configuration.
func DefaultDiagramConfig() DiagramConfig {
	return DiagramConfig{
		Color:      Blue,
		Alpha:      1,
		EdgeColor:  Black,
		MarkerArea: DefaultMarkerArea,
	}
}

// markers returns the filled markers and their outlines for pts.
func (cfg DiagramConfig) markers(pts plotter.XYs) (fill, edge *plotter.Scatter, err error) {
	area := cfg.MarkerArea
	if area <= 0 {
		area = DefaultMarkerArea
	}
	radius := vg.Points(math.Sqrt(area) / 2)

	fill, err = plotter.NewScatter(pts)
	if err != nil {
		return nil, nil, err
	}
	fill.GlyphStyle = draw.GlyphStyle{
		Color:  withAlpha(orColor(cfg.Color, Blue), orAlpha(cfg.Alpha, 1)),
		Radius: radius,
		Shape:  draw.CircleGlyph{},
	}
	edge, err = plotter.NewScatter(pts)
	if err != nil {
		return nil, nil, err
	}
	edge.GlyphStyle = draw.GlyphStyle{
		Color:  orColor(cfg.EdgeColor, Black),
		Radius: radius,
		Shape:  draw.RingGlyph{},
	}
	return fill, edge, nil
}

// Diagram draws the persistence diagram: one marker per bar at
// (death, birth), over a black diagonal running from the smallest to the
// largest value anywhere in d.
func Diagram(d analysis.Diagram, cfg DiagramConfig) (*Axes, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}

	all := d.Flatten()
	lo, hi := floats.Min(all), floats.Max(all)
	diag, err := segment(lo, lo, hi, hi, draw.LineStyle{Color: Black, Width: vg.Points(DefaultLineWidth)})
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	ax.Add(diag)

	pts := make(plotter.XYs, len(d))
	for i, b := range d {
		pts[i] = plotter.XY{X: b.Death(), Y: b.Birth()}
	}
	fill, edge, err := cfg.markers(pts)
	if err != nil {
		return nil, fmt.Errorf("diagram: %w", err)
	}
	ax.Add(fill, edge)
	monitoring.Debugf("diagram: %d bars, diagonal [%g, %g]", len(d), lo, hi)

	def := defaults("Persistence diagram", "End radial distance from soma", "Start radial distance from soma")
	return finish(fig, ax, cfg.Style, def), nil
}

// StartLengthConfig configures StartLengthDiagram.
type StartLengthConfig struct {
	DiagramConfig

	// Side selects the endpoint used as the start of each component.
	Side analysis.KeepSide
}

// DefaultStartLengthConfig returns the default configuration, keeping the
// smaller endpoint.
func DefaultStartLengthConfig() StartLengthConfig {
	return StartLengthConfig{
		DiagramConfig: DefaultDiagramConfig(),
		Side:          analysis.KeepStart,
	}
}

// StartLengthDiagram draws every bar as (start, length) of the component
// it represents.
func StartLengthDiagram(d analysis.Diagram, cfg StartLengthConfig) (*Axes, error) {
	transformed, err := analysis.TransformPHToLength(d, cfg.Side)
	if err != nil {
		return nil, fmt.Errorf("start-length diagram: %w", err)
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("start-length diagram: %w", err)
	}

	pts := make(plotter.XYs, len(transformed))
	for i, b := range transformed {
		pts[i] = plotter.XY{X: b[0], Y: b[1]}
	}
	fill, edge, err := cfg.markers(pts)
	if err != nil {
		return nil, fmt.Errorf("start-length diagram: %w", err)
	}
	ax.Add(fill, edge)
	monitoring.Debugf("start-length diagram: %d components, side %v", len(transformed), cfg.Side)

	def := defaults("Transformed Persistence diagram", "Start of the component", "Length of the component")
	return finish(fig, ax, cfg.Style, def), nil
}
