// Package view renders persistence barcodes, diagrams, persistence images
// and histograms with gonum/plot.
//
// Every chart function draws onto an explicit figure/axes handle chosen by
// a Target, applies chart-specific transforms from the analysis package,
// merges the caller's style options over the chart defaults and returns
// the axes it drew on.
package view

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default figure size.
const (
	DefaultFigureWidth  = 6.4 * vg.Inch
	DefaultFigureHeight = 4.8 * vg.Inch
)

var (
	ErrNoFigure = errors.New("no figure provided to reuse")
	ErrSubplot  = errors.New("invalid subplot")
)

// Subplot selects one cell of a Rows×Cols grid. Index is 1-based and runs
// left to right, top to bottom (Subplot{1, 1, 1} is the whole figure).
// The zero value means "the figure's current axes".
type Subplot struct {
	Rows, Cols, Index int
}

// SingleAxes covers the whole figure.
var SingleAxes = Subplot{Rows: 1, Cols: 1, Index: 1}

// IsZero reports whether s is the zero Subplot.
func (s Subplot) IsZero() bool { return s == Subplot{} }

func (s Subplot) validate() error {
	if s.Rows < 1 || s.Cols < 1 || s.Index < 1 || s.Index > s.Rows*s.Cols {
		return fmt.Errorf("%d%d%d: %w", s.Rows, s.Cols, s.Index, ErrSubplot)
	}
	return nil
}

// cell returns the tile column and row of s.
func (s Subplot) cell() (col, row int) {
	i := s.Index - 1
	return i % s.Cols, i / s.Cols
}

// FigureMode selects whether a chart creates a new figure or draws on one
// the caller provides.
type FigureMode int

const (
	CreateNew FigureMode = iota
	ReuseProvided
)

// Target tells a chart function where to draw. The zero value creates a
// new figure with a single axes.
type Target struct {
	Mode    FigureMode
	Figure  *Figure
	Subplot Subplot
}

// NewFigureTarget draws on a new figure, in subplot sp.
func NewFigureTarget(sp Subplot) Target {
	return Target{Mode: CreateNew, Subplot: sp}
}

// OnFigure draws on fig. A zero sp reuses fig's current axes.
func OnFigure(fig *Figure, sp Subplot) Target {
	return Target{Mode: ReuseProvided, Figure: fig, Subplot: sp}
}

// Figure is a drawing surface holding one or more axes.
type Figure struct {
	Width, Height vg.Length

	axes    []*Axes
	current *Axes
}

// NewFigure returns an empty figure of the given size.
func NewFigure(width, height vg.Length) *Figure {
	return &Figure{Width: width, Height: height}
}

// Axes returns the figure's axes in creation order.
func (f *Figure) Axes() []*Axes { return slices.Clone(f.axes) }

// Current returns the most recently selected axes, or nil.
func (f *Figure) Current() *Axes { return f.current }

// AddSubplot returns the axes at sp, creating it if needed, and makes it
// current.
func (f *Figure) AddSubplot(sp Subplot) (*Axes, error) {
	if err := sp.validate(); err != nil {
		return nil, err
	}
	for _, ax := range f.axes {
		if ax.subplot == sp {
			f.current = ax
			return ax, nil
		}
	}
	ax := &Axes{Plot: plot.New(), fig: f, subplot: sp}
	f.axes = append(f.axes, ax)
	f.current = ax
	return ax, nil
}

// GetFigure resolves t into a figure and the axes to draw on.
func GetFigure(t Target) (*Figure, *Axes, error) {
	var fig *Figure
	switch t.Mode {
	case CreateNew:
		fig = NewFigure(DefaultFigureWidth, DefaultFigureHeight)
	case ReuseProvided:
		if t.Figure == nil {
			return nil, nil, ErrNoFigure
		}
		fig = t.Figure
	default:
		return nil, nil, fmt.Errorf("unknown figure mode %d", t.Mode)
	}

	sp := t.Subplot
	if sp.IsZero() {
		if fig.current != nil {
			return fig, fig.current, nil
		}
		sp = SingleAxes
	}
	ax, err := fig.AddSubplot(sp)
	if err != nil {
		return nil, nil, err
	}
	return fig, ax, nil
}

// colorBarFraction is the share of an axes tile given to its color bar.
const colorBarFraction = 0.15

// Draw draws every axes, and any attached color bar, onto dc.
func (f *Figure) Draw(dc draw.Canvas) {
	for _, ax := range f.axes {
		col, row := ax.subplot.cell()
		tiles := draw.Tiles{
			Rows: ax.subplot.Rows,
			Cols: ax.subplot.Cols,
			PadX: vg.Millimeter,
			PadY: vg.Millimeter,
		}
		tile := tiles.At(dc, col, row)
		if ax.colorBar == nil {
			ax.Plot.Draw(tile)
			continue
		}
		barWidth := vg.Length(colorBarFraction) * (tile.Max.X - tile.Min.X)
		ax.Plot.Draw(draw.Crop(tile, 0, -barWidth, 0, 0))
		ax.colorBar.Draw(draw.Crop(tile, tile.Max.X-tile.Min.X-barWidth, 0, 0, 0))
	}
}

// WriterTo renders the figure at its size in the given format ("png",
// "svg", "pdf", "eps", "jpg", "tif", "tex").
func (f *Figure) WriterTo(format string) (io.WriterTo, error) {
	c, err := draw.NewFormattedCanvas(f.Width, f.Height, format)
	if err != nil {
		return nil, fmt.Errorf("figure: %w", err)
	}
	f.Draw(draw.New(c))
	return c, nil
}

// Axes is one plotting area of a figure.
type Axes struct {
	// Plot is the underlying gonum plot.
	Plot *plot.Plot

	fig      *Figure
	subplot  Subplot
	plotters []plot.Plotter
	colorBar *plot.Plot
}

// Add adds plotters to the axes.
func (a *Axes) Add(ps ...plot.Plotter) {
	a.Plot.Add(ps...)
	a.plotters = append(a.plotters, ps...)
}

// Plotters returns everything drawn on the axes, in order.
func (a *Axes) Plotters() []plot.Plotter { return slices.Clone(a.plotters) }

// ColorBar returns the color bar plot attached to the axes, or nil.
func (a *Axes) ColorBar() *plot.Plot { return a.colorBar }

// Figure returns the figure owning the axes.
func (a *Axes) Figure() *Figure { return a.fig }

// Subplot returns the cell the axes occupies.
func (a *Axes) Subplot() Subplot { return a.subplot }
