package view

import (
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"

	"github.com/neurotopo/tmdview/analysis"
)

// DefaultSmoothing is the default bilinear upsampling factor for image
// charts.
const DefaultSmoothing = 4

// rot90 rotates m by 90 degrees counter-clockwise.
func rot90(m mat.Matrix) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(c, r, nil)
	for i := range c {
		for j := range r {
			out.Set(i, j, m.At(j, c-1-i))
		}
	}
	return out
}

// bilinear upsamples m so that every original cell step is split into
// factor steps. Original samples are kept at the corners. A factor of 1
// returns a copy.
func bilinear(m mat.Matrix, factor int) *mat.Dense {
	r, c := m.Dims()
	if factor <= 1 || r < 2 || c < 2 {
		return mat.DenseCopyOf(m)
	}
	rr, cc := (r-1)*factor+1, (c-1)*factor+1
	out := mat.NewDense(rr, cc, nil)
	f := float64(factor)
	for i := range rr {
		y := float64(i) / f
		i0 := min(int(y), r-2)
		ty := y - float64(i0)
		for j := range cc {
			x := float64(j) / f
			j0 := min(int(x), c-2)
			tx := x - float64(j0)
			v := (1-ty)*((1-tx)*m.At(i0, j0)+tx*m.At(i0, j0+1)) +
				ty*((1-tx)*m.At(i0+1, j0)+tx*m.At(i0+1, j0+1))
			out.Set(i, j, v)
		}
	}
	return out
}

// maskBelow sets every element of m below threshold to NaN.
func maskBelow(m *mat.Dense, threshold float64) {
	r, c := m.Dims()
	for i := range r {
		for j := range c {
			if m.At(i, j) < threshold {
				m.Set(i, j, math.NaN())
			}
		}
	}
}

// displayGrid shows a matrix the way an image is shown: row 0 at the top,
// cells spread evenly over the x and y bounds. When m was upsampled by
// factor, every factor-th row and column is an original sample and sits
// at the center of the original cell, so smoothing never moves the
// samples relative to the unsmoothed image.
type displayGrid struct {
	m          mat.Matrix
	xlim, ylim analysis.Bounds
	// factor is the upsampling applied to m; 0 means none.
	factor int
}

var _ plotter.GridXYZ = displayGrid{}

func (g displayGrid) Dims() (c, r int) {
	r, c = g.m.Dims()
	return c, r
}

func (g displayGrid) Z(c, r int) float64 {
	rows, _ := g.m.Dims()
	return g.m.At(rows-1-r, c)
}

func (g displayGrid) X(c int) float64 {
	_, cols := g.m.Dims()
	return g.center(c, cols, g.xlim)
}

func (g displayGrid) Y(r int) float64 {
	rows, _ := g.m.Dims()
	return g.center(r, rows, g.ylim)
}

// center places index i of an upsampled axis of length n over b.
func (g displayGrid) center(i, n int, b analysis.Bounds) float64 {
	f := max(g.factor, 1)
	orig := (n-1)/f + 1
	return b.Min + (float64(i)/float64(f)+0.5)*b.Span()/float64(orig)
}

// gridImage describes how to show a persistence image.
type gridImage struct {
	data       mat.Matrix
	xlim, ylim analysis.Bounds
	smoothing  int
	masked     bool
	threshold  float64
	vmin, vmax float64
	cmap       palette.ColorMap
}

// heatMap builds the plotter for g: the data is rotated, smoothed and
// optionally masked, then colored on the fixed range [vmin, vmax].
func (g gridImage) heatMap() *plotter.HeatMap {
	rot := rot90(g.data)
	z := bilinear(rot, g.smoothing)
	factor := 1
	if zr, _ := z.Dims(); zr != rot.RawMatrix().Rows {
		factor = g.smoothing
	}
	if g.masked {
		maskBelow(z, g.threshold)
	}

	cmap := g.cmap
	cmap.SetMin(g.vmin)
	cmap.SetMax(g.vmax)
	pal := cmap.Palette(paletteSize)
	colors := pal.Colors()

	hm := plotter.NewHeatMap(displayGrid{m: z, xlim: g.xlim, ylim: g.ylim, factor: factor}, pal)
	hm.Min, hm.Max = g.vmin, g.vmax
	hm.NaN = color.Transparent
	hm.Underflow = colors[0]
	hm.Overflow = colors[len(colors)-1]
	hm.Rasterized = true
	return hm
}

// imageMask reports, per cell of z, whether the cell is below threshold.
func imageMask(z mat.Matrix, threshold float64) [][]bool {
	r, c := z.Dims()
	out := make([][]bool, r)
	for i := range r {
		out[i] = make([]bool, c)
		for j := range c {
			out[i][j] = z.At(i, j) < threshold
		}
	}
	return out
}

// valueRange returns the range to color z on: the explicit bounds where
// given, otherwise the finite data range. An empty range is widened by one
// on each side.
func valueRange(z mat.Matrix, vmin, vmax *float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	r, c := z.Dims()
	for i := range r {
		for j := range c {
			v := z.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	if vmin != nil {
		lo = *vmin
	}
	if vmax != nil {
		hi = *vmax
	}
	if lo >= hi {
		lo, hi = lo-1, lo+1
	}
	return lo, hi
}
