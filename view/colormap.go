package view

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
)

// Named colors used as chart defaults.
var (
	Blue  color.Color = color.NRGBA{B: 255, A: 255}
	Black color.Color = color.NRGBA{A: 255}
)

// paletteSize is the number of colors sampled from a ColorMap for heat maps.
const paletteSize = 256

// stop is one control point of a piecewise-linear color channel.
type stop struct{ at, v float64 }

// Channels of the classic "jet" map: dark blue through cyan, yellow and
// red to dark red.
var (
	jetRed   = []stop{{0, 0}, {0.35, 0}, {0.66, 1}, {0.89, 1}, {1, 0.5}}
	jetGreen = []stop{{0, 0}, {0.125, 0}, {0.375, 1}, {0.64, 1}, {0.91, 0}, {1, 0}}
	jetBlue  = []stop{{0, 0.5}, {0.11, 1}, {0.34, 1}, {0.65, 0}, {1, 0}}
)

func channel(stops []stop, t float64) float64 {
	for i := 1; i < len(stops); i++ {
		if t <= stops[i].at {
			a, b := stops[i-1], stops[i]
			return a.v + (b.v-a.v)*(t-a.at)/(b.at-a.at)
		}
	}
	return stops[len(stops)-1].v
}

// jet implements palette.ColorMap.
type jet struct {
	min, max, alpha float64
}

// Jet returns the jet color map over [0, 1].
func Jet() palette.ColorMap {
	return &jet{min: 0, max: 1, alpha: 1}
}

func (j *jet) At(v float64) (color.Color, error) {
	switch {
	case j.max <= j.min:
		return nil, fmt.Errorf("jet: color map range [%g, %g] is empty", j.min, j.max)
	case math.IsNaN(v):
		return nil, palette.ErrNaN
	case v < j.min:
		return nil, palette.ErrUnderflow
	case v > j.max:
		return nil, palette.ErrOverflow
	}
	t := (v - j.min) / (j.max - j.min)
	return color.NRGBA{
		R: unit8(channel(jetRed, t)),
		G: unit8(channel(jetGreen, t)),
		B: unit8(channel(jetBlue, t)),
		A: unit8(j.alpha),
	}, nil
}

func (j *jet) Max() float64 { return j.max }
func (j *jet) SetMax(v float64) { j.max = v }
func (j *jet) Min() float64 { return j.min }
func (j *jet) SetMin(v float64) { j.min = v }
func (j *jet) Alpha() float64 { return j.alpha }
func (j *jet) SetAlpha(a float64) {
	if a < 0 || a > 1 {
		panic(fmt.Sprintf("jet: invalid alpha %g", a))
	}
	j.alpha = a
}

func (j *jet) Palette(n int) palette.Palette {
	cm := jet{min: 0, max: 1, alpha: j.alpha}
	colors := make([]color.Color, n)
	for i := range colors {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		colors[i], _ = cm.At(t)
	}
	return colorList(colors)
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }

func unit8(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// withAlpha returns c with its opacity replaced by alpha in [0, 1].
func withAlpha(c color.Color, alpha float64) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = unit8(alpha)
	return n
}

// colorAt returns cm's color for v, clamping v into the map's range.
func colorAt(cm palette.ColorMap, v float64) (color.Color, error) {
	return cm.At(math.Max(cm.Min(), math.Min(cm.Max(), v)))
}

// registerColorScale sets cm to span [lo, hi] and attaches a vertical
// color bar showing that scale beside ax.
func registerColorScale(ax *Axes, lo, hi float64, cm palette.ColorMap) error {
	if !(hi > lo) {
		return fmt.Errorf("color scale [%g, %g] is empty", lo, hi)
	}
	cm.SetMin(lo)
	cm.SetMax(hi)

	bar := plot.New()
	bar.HideX()
	bar.Y.Padding = 0
	bar.Add(&plotter.ColorBar{ColorMap: cm, Vertical: true})
	ax.colorBar = bar
	return nil
}
