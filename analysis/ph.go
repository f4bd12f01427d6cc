// Package analysis holds the persistence data model and the numeric
// transforms the plotting layer draws from: lifetime sorting, axis limits,
// stepped and binned histograms, and kernel-density persistence images.
package analysis

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyDiagram       = errors.New("empty persistence diagram")
	ErrShortBar           = errors.New("bar has fewer than two fields")
	ErrRaggedBars         = errors.New("bars have different lengths")
	ErrNonFinite          = errors.New("non-finite value in bar")
	ErrFieldIndex         = errors.New("field index out of range")
	ErrSingularCovariance = errors.New("bar covariance is singular")
	ErrShapeMismatch      = errors.New("image shapes differ")
	ErrBins               = errors.New("invalid bin count")
)

// Bar is one persistence interval: birth, death, then any per-bar
// attributes (e.g. subtree size) carried alongside.
type Bar []float64

// Birth returns the first endpoint.
func (b Bar) Birth() float64 { return b[0] }

// Death returns the second endpoint.
func (b Bar) Death() float64 { return b[1] }

// Lifetime returns |death - birth|.
func (b Bar) Lifetime() float64 { return math.Abs(b[1] - b[0]) }

// Diagram is the ordered collection of bars for one tree.
type Diagram []Bar

// Bounds is an inclusive axis range.
type Bounds struct {
	Min, Max float64
}

// Span returns Max - Min.
func (b Bounds) Span() float64 { return b.Max - b.Min }

// Validate checks that the diagram is non-empty, every bar has at least a
// birth and a death, all bars share one length and every value is finite.
// The relative order of birth and death is not checked: depending on the
// filtration either endpoint may be the larger one.
func (d Diagram) Validate() error {
	if len(d) == 0 {
		return ErrEmptyDiagram
	}
	width := len(d[0])
	for i, b := range d {
		if len(b) < 2 {
			return fmt.Errorf("bar %d: %w", i, ErrShortBar)
		}
		if len(b) != width {
			return fmt.Errorf("bar %d has %d fields, want %d: %w", i, len(b), width, ErrRaggedBars)
		}
		for _, v := range b {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("bar %d: %w", i, ErrNonFinite)
			}
		}
	}
	return nil
}

// Width returns the number of fields per bar, or 0 for an empty diagram.
func (d Diagram) Width() int {
	if len(d) == 0 {
		return 0
	}
	return len(d[0])
}

// Column returns field i of every bar.
func (d Diagram) Column(i int) ([]float64, error) {
	if i < 0 || i >= d.Width() {
		return nil, fmt.Errorf("column %d of %d: %w", i, d.Width(), ErrFieldIndex)
	}
	col := make([]float64, len(d))
	for j, b := range d {
		col[j] = b[i]
	}
	return col, nil
}

// Flatten returns every field of every bar in order.
func (d Diagram) Flatten() []float64 {
	out := make([]float64, 0, len(d)*d.Width())
	for _, b := range d {
		out = append(out, b...)
	}
	return out
}

// Collapse concatenates a list of diagrams into one.
func Collapse(phs []Diagram) Diagram {
	n := 0
	for _, d := range phs {
		n += len(d)
	}
	out := make(Diagram, 0, n)
	for _, d := range phs {
		out = append(out, d...)
	}
	return out
}
