package analysis

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Limits returns the ranges of the first and second columns over the
// collapsed list of diagrams.
func Limits(phs []Diagram) (xlim, ylim Bounds, err error) {
	return LimitsOf(Collapse(phs))
}

// LimitsOf returns the ranges of the first and second columns of d.
func LimitsOf(d Diagram) (xlim, ylim Bounds, err error) {
	if err := d.Validate(); err != nil {
		return Bounds{}, Bounds{}, fmt.Errorf("limits: %w", err)
	}
	xs, _ := d.Column(0)
	ys, _ := d.Column(1)
	xlim = Bounds{Min: floats.Min(xs), Max: floats.Max(xs)}
	ylim = Bounds{Min: floats.Min(ys), Max: floats.Max(ys)}
	return xlim, ylim, nil
}
