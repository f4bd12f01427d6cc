package analysis

import (
	"fmt"
	"math"
)

// KeepSide selects which endpoint TransformPHToLength keeps.
type KeepSide int

const (
	// KeepStart keeps the smaller endpoint.
	KeepStart KeepSide = iota
	// KeepEnd keeps the larger endpoint.
	KeepEnd
)

func (k KeepSide) String() string {
	switch k {
	case KeepStart:
		return "start"
	case KeepEnd:
		return "end"
	default:
		return fmt.Sprintf("KeepSide(%d)", int(k))
	}
}

// TransformPHToLength maps every bar to (endpoint, lifetime), where
// endpoint is chosen by side.
func TransformPHToLength(d Diagram, side KeepSide) (Diagram, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("length transform: %w", err)
	}
	out := make(Diagram, len(d))
	for i, b := range d {
		var x float64
		switch side {
		case KeepStart:
			x = math.Min(b[0], b[1])
		case KeepEnd:
			x = math.Max(b[0], b[1])
		default:
			return nil, fmt.Errorf("length transform: unknown side %v", side)
		}
		out[i] = Bar{x, b.Lifetime()}
	}
	return out, nil
}
