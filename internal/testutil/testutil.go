// Package testutil provides shared test utilities and fixtures.
//
// Fixtures are small persistence diagrams with hand-checkable sorting,
// limits and histograms, shared by the analysis and view tests.
package testutil

import (
	"math"
	"testing"

	"github.com/neurotopo/tmdview/analysis"
	"gonum.org/v1/gonum/mat"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertMatrixNear fails the test if got and want differ in shape or in
// any element by more than tol. NaN matches only NaN.
func AssertMatrixNear(t testing.TB, got, want mat.Matrix, tol float64) {
	t.Helper()
	gr, gc := got.Dims()
	wr, wc := want.Dims()
	if gr != wr || gc != wc {
		t.Fatalf("dims = %dx%d, want %dx%d", gr, gc, wr, wc)
	}
	for i := range gr {
		for j := range gc {
			g, w := got.At(i, j), want.At(i, j)
			if math.IsNaN(g) && math.IsNaN(w) {
				continue
			}
			if math.IsNaN(g) != math.IsNaN(w) || math.Abs(g-w) > tol {
				t.Fatalf("at (%d,%d) = %v, want %v (tol %v)", i, j, g, w, tol)
			}
		}
	}
}

// SimpleDiagram returns four bars with distinct lifetimes 1, 4, 2, 3 and
// a third field carrying a per-bar attribute.
func SimpleDiagram() analysis.Diagram {
	return analysis.Diagram{
		{0, 1, 10},
		{1, 5, 40},
		{2, 4, 20},
		{3, 6, 30},
	}
}

// TiedDiagram returns bars whose lifetimes tie, in a recognisable order.
func TiedDiagram() analysis.Diagram {
	return analysis.Diagram{
		{0, 2, 1},
		{5, 7, 2},
		{1, 2, 3},
		{10, 12, 4},
	}
}

// SpreadDiagram returns a diagram with enough spread in both columns for
// a non-singular kernel density estimate.
func SpreadDiagram() analysis.Diagram {
	return analysis.Diagram{
		{0, 10},
		{2, 8},
		{3, 15},
		{5, 9},
		{7, 20},
		{1, 4},
		{6, 12},
	}
}

// ShiftedDiagram returns SpreadDiagram with every value offset by dx.
func ShiftedDiagram(dx float64) analysis.Diagram {
	d := SpreadDiagram()
	for _, b := range d {
		for i := range b {
			b[i] += dx
		}
	}
	return d
}
