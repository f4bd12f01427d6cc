package analysis

import (
	"math"
	"sort"
)

// SortPH returns bars of the form (birth, death, lifetime), ordered by
// lifetime ascending. Ties keep their input order.
func SortPH(d Diagram) Diagram {
	out := make(Diagram, len(d))
	for i, b := range d {
		out[i] = Bar{b[0], b[1], math.Abs(b[0] - b[1])}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i][2] < out[j][2]
	})
	return out
}

// SortByLifetime returns a copy of d, every field kept, ordered by
// lifetime ascending. Ties keep their input order.
func SortByLifetime(d Diagram) Diagram {
	out := make(Diagram, len(d))
	for i, b := range d {
		out[i] = append(Bar(nil), b...)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Lifetime() < out[j].Lifetime()
	})
	return out
}
