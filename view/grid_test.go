package view

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/testutil"
)

func TestRot90(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		4, 5, 6,
	})
	want := mat.NewDense(3, 2, []float64{
		3, 6,
		2, 5,
		1, 4,
	})
	testutil.AssertMatrixNear(t, rot90(m), want, 0)
}

func TestBilinear(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{
		0, 2,
		4, 6,
	})

	t.Run("identity", func(t *testing.T) {
		t.Parallel()
		testutil.AssertMatrixNear(t, bilinear(m, 1), m, 0)
	})

	t.Run("doubled", func(t *testing.T) {
		t.Parallel()
		want := mat.NewDense(3, 3, []float64{
			0, 1, 2,
			2, 3, 4,
			4, 5, 6,
		})
		testutil.AssertMatrixNear(t, bilinear(m, 2), want, 1e-12)
	})

	t.Run("corners kept", func(t *testing.T) {
		t.Parallel()
		up := bilinear(m, 5)
		r, c := up.Dims()
		require.Equal(t, 6, r)
		require.Equal(t, 6, c)
		assert.Equal(t, 0.0, up.At(0, 0))
		assert.Equal(t, 2.0, up.At(0, c-1))
		assert.Equal(t, 4.0, up.At(r-1, 0))
		assert.Equal(t, 6.0, up.At(r-1, c-1))
	})
}

func TestDisplayGrid(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 4, []float64{
		1, 2, 3, 4,
		5, 6, 7, 8,
	})
	g := displayGrid{m: m, xlim: analysis.Bounds{Min: 0, Max: 8}, ylim: analysis.Bounds{Min: 10, Max: 20}}

	c, r := g.Dims()
	assert.Equal(t, 4, c)
	assert.Equal(t, 2, r)
	assert.Equal(t, 5.0, g.Z(0, 0), "bottom row is the last matrix row")
	assert.Equal(t, 4.0, g.Z(3, 1), "top row is the first matrix row")
	assert.Equal(t, 1.0, g.X(0))
	assert.Equal(t, 7.0, g.X(3))
	assert.Equal(t, 12.5, g.Y(0))
	assert.Equal(t, 17.5, g.Y(1))
}

func TestDisplayGrid_Upsampled(t *testing.T) {
	t.Parallel()

	m := mat.NewDense(2, 2, []float64{0, 2, 4, 6})
	g := displayGrid{m: bilinear(m, 2), xlim: analysis.Bounds{Min: 0, Max: 8}, ylim: analysis.Bounds{Min: 0, Max: 4}, factor: 2}

	// The original samples stay at the centers of the two original cells.
	assert.Equal(t, 2.0, g.X(0))
	assert.Equal(t, 4.0, g.X(1))
	assert.Equal(t, 6.0, g.X(2))
	assert.Equal(t, 1.0, g.Y(0))
	assert.Equal(t, 3.0, g.Y(2))
}

func TestValueRange(t *testing.T) {
	t.Parallel()

	z := mat.NewDense(2, 2, []float64{-1, math.NaN(), 3, 2})
	lo, hi := valueRange(z, nil, nil)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 3.0, hi)

	vmax := 10.0
	lo, hi = valueRange(z, nil, &vmax)
	assert.Equal(t, -1.0, lo)
	assert.Equal(t, 10.0, hi)

	flat := mat.NewDense(1, 2, []float64{4, 4})
	lo, hi = valueRange(flat, nil, nil)
	assert.Equal(t, 3.0, lo)
	assert.Equal(t, 5.0, hi)
}

func TestImageMask(t *testing.T) {
	t.Parallel()

	z := mat.NewDense(2, 2, []float64{0.001, 0.5, 0.01, 0.009})
	assert.Equal(t, [][]bool{{true, false}, {false, true}}, imageMask(z, 0.01))
}

func TestJet(t *testing.T) {
	t.Parallel()

	cm := Jet()
	low, err := cm.At(0)
	require.NoError(t, err)
	r, g, b, _ := low.RGBA()
	assert.Equal(t, [3]uint32{0, 0, 128 * 0x101}, [3]uint32{r, g, b}, "dark blue")

	high, err := cm.At(1)
	require.NoError(t, err)
	r, g, b, _ = high.RGBA()
	assert.Equal(t, [3]uint32{128 * 0x101, 0, 0}, [3]uint32{r, g, b}, "dark red")

	_, err = cm.At(-0.5)
	assert.True(t, errors.Is(err, palette.ErrUnderflow))
	_, err = cm.At(1.5)
	assert.True(t, errors.Is(err, palette.ErrOverflow))
	_, err = cm.At(math.NaN())
	assert.True(t, errors.Is(err, palette.ErrNaN))

	cm.SetMin(10)
	cm.SetMax(20)
	mid, err := cm.At(15)
	require.NoError(t, err)
	_, g, _, _ = mid.RGBA()
	assert.Equal(t, uint32(0xffff), g, "green peaks mid-scale")

	assert.Len(t, cm.Palette(paletteSize).Colors(), paletteSize)
}

func TestRegisterColorScale(t *testing.T) {
	t.Parallel()

	fig := NewFigure(DefaultFigureWidth, DefaultFigureHeight)
	ax, err := fig.AddSubplot(SingleAxes)
	require.NoError(t, err)

	cm := Jet()
	require.NoError(t, registerColorScale(ax, 0, 40, cm))
	assert.Equal(t, 0.0, cm.Min())
	assert.Equal(t, 40.0, cm.Max())
	require.NotNil(t, ax.ColorBar())

	testutil.AssertError(t, registerColorScale(ax, 3, 3, Jet()))
}
