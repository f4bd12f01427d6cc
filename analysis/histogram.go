package analysis

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Histogram is a set of bin edges and one height per bin;
// len(Edges) == len(Heights)+1.
type Histogram struct {
	Edges   []float64
	Heights []float64
}

// Scale returns a copy of h with every height multiplied by f.
func (h Histogram) Scale(f float64) Histogram {
	heights := slices.Clone(h.Heights)
	floats.Scale(f, heights)
	return Histogram{Edges: slices.Clone(h.Edges), Heights: heights}
}

// endpoints returns each bar's (birth, death) ordered low to high.
func endpoints(d Diagram) [][2]float64 {
	out := make([][2]float64, len(d))
	for i, b := range d {
		lo, hi := b[0], b[1]
		if lo > hi {
			lo, hi = hi, lo
		}
		out[i] = [2]float64{lo, hi}
	}
	return out
}

// HistogramStepped counts, for each interval between consecutive distinct
// endpoints, how many bars are alive across it. Zero-length bars add
// nothing.
func HistogramStepped(d Diagram) (Histogram, error) {
	if err := d.Validate(); err != nil {
		return Histogram{}, fmt.Errorf("stepped histogram: %w", err)
	}
	ends := endpoints(d)

	edges := make([]float64, 0, 2*len(ends))
	for _, e := range ends {
		edges = append(edges, e[0], e[1])
	}
	slices.Sort(edges)
	edges = slices.Compact(edges)

	heights := make([]float64, len(edges)-1)
	for _, e := range ends {
		if e[0] == e[1] {
			continue
		}
		lo := sort.SearchFloat64s(edges, e[0])
		hi := sort.SearchFloat64s(edges, e[1])
		for k := lo; k < hi; k++ {
			heights[k]++
		}
	}
	return Histogram{Edges: edges, Heights: heights}, nil
}

// HistogramHorizontal bins the bars on numBins evenly spaced edges between
// the smallest and largest endpoint; see HistogramHorizontalRange.
func HistogramHorizontal(d Diagram, numBins int) (Histogram, error) {
	if err := d.Validate(); err != nil {
		return Histogram{}, fmt.Errorf("horizontal histogram: %w", err)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, e := range endpoints(d) {
		lo = math.Min(lo, e[0])
		hi = math.Max(hi, e[1])
	}
	return HistogramHorizontalRange(d, numBins, Bounds{Min: lo, Max: hi})
}

// HistogramHorizontalRange places numBins evenly spaced edges across r and
// increments every bin slot from each bar's start up to, but excluding,
// the slot holding its end.
func HistogramHorizontalRange(d Diagram, numBins int, r Bounds) (Histogram, error) {
	if err := d.Validate(); err != nil {
		return Histogram{}, fmt.Errorf("horizontal histogram: %w", err)
	}
	if numBins < 2 {
		return Histogram{}, fmt.Errorf("horizontal histogram: %d edges: %w", numBins, ErrBins)
	}
	edges := floats.Span(make([]float64, numBins), r.Min, r.Max)
	heights := make([]float64, numBins-1)
	binSize := r.Span() / float64(numBins-1)
	if binSize <= 0 {
		return Histogram{Edges: edges, Heights: heights}, nil
	}

	slot := func(v float64) int {
		i := int((v - r.Min) / binSize)
		return max(0, min(i, len(heights)))
	}
	for _, e := range endpoints(d) {
		for k := slot(e[0]); k < slot(e[1]); k++ {
			heights[k]++
		}
	}
	return Histogram{Edges: edges, Heights: heights}, nil
}
