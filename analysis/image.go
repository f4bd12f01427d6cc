package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// DefaultImageBins is the grid resolution of a persistence image along
// each axis.
const DefaultImageBins = 100

// ImageParams controls persistence image evaluation.
type ImageParams struct {
	// XLim and YLim bound the grid. A nil bound is taken from the data.
	XLim, YLim *Bounds
	// Bins is the number of grid points per axis. Zero selects
	// DefaultImageBins.
	Bins int
	// NormFactor divides the grid. Zero divides by the grid maximum.
	NormFactor float64
}

func (p ImageParams) bins() (int, error) {
	n := p.Bins
	if n == 0 {
		n = DefaultImageBins
	}
	if n < 2 {
		return 0, fmt.Errorf("%d grid points: %w", n, ErrBins)
	}
	return n, nil
}

// gaussianKDE is a bivariate Gaussian kernel density estimate over the
// (birth, death) plane with Scott's bandwidth rule applied to the sample
// covariance.
type gaussianKDE struct {
	xs, ys []float64
	inv    *mat.SymDense
	norm   float64
}

func newGaussianKDE(d Diagram) (*gaussianKDE, error) {
	n := len(d)
	if n < 2 {
		return nil, fmt.Errorf("%d bar(s): %w", n, ErrSingularCovariance)
	}
	xs, _ := d.Column(0)
	ys, _ := d.Column(1)

	data := mat.NewDense(n, 2, nil)
	data.SetCol(0, xs)
	data.SetCol(1, ys)

	cov := mat.NewSymDense(2, nil)
	stat.CovarianceMatrix(cov, data, nil)
	factor := math.Pow(float64(n), -1.0/6.0) // Scott: n^(-1/(d+4)), d=2
	cov.ScaleSym(factor*factor, cov)

	var chol mat.Cholesky
	if ok := chol.Factorize(cov); !ok {
		return nil, ErrSingularCovariance
	}
	det := chol.Det()
	if det <= 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return nil, ErrSingularCovariance
	}
	inv := mat.NewSymDense(2, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingularCovariance, err)
	}

	return &gaussianKDE{
		xs:   xs,
		ys:   ys,
		inv:  inv,
		norm: 1 / (float64(n) * 2 * math.Pi * math.Sqrt(det)),
	}, nil
}

func (k *gaussianKDE) density(x, y float64) float64 {
	a, b, c := k.inv.At(0, 0), k.inv.At(0, 1), k.inv.At(1, 1)
	var sum float64
	for i := range k.xs {
		dx, dy := x-k.xs[i], y-k.ys[i]
		q := a*dx*dx + 2*b*dx*dy + c*dy*dy
		sum += math.Exp(-0.5 * q)
	}
	return sum * k.norm
}

// PersistenceImageData evaluates the kernel density of the bars' first two
// fields on a Bins×Bins grid spanning the bounds. Row i of the result is
// the i-th x (first column) sample, column j the j-th y sample.
func PersistenceImageData(d Diagram, p ImageParams) (*mat.Dense, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("persistence image: %w", err)
	}
	bins, err := p.bins()
	if err != nil {
		return nil, fmt.Errorf("persistence image: %w", err)
	}
	xlim, ylim, err := resolveBounds(p, func() (Bounds, Bounds, error) { return LimitsOf(d) })
	if err != nil {
		return nil, err
	}

	kde, err := newGaussianKDE(d)
	if err != nil {
		return nil, fmt.Errorf("persistence image: %w", err)
	}

	xs := floats.Span(make([]float64, bins), xlim.Min, xlim.Max)
	ys := floats.Span(make([]float64, bins), ylim.Min, ylim.Max)
	z := mat.NewDense(bins, bins, nil)
	for i, x := range xs {
		for j, y := range ys {
			z.Set(i, j, kde.density(x, y))
		}
	}

	norm := p.NormFactor
	if norm == 0 {
		norm = mat.Max(z)
	}
	if norm != 0 {
		z.Scale(1/norm, z)
	}
	return z, nil
}

func resolveBounds(p ImageParams, fallback func() (Bounds, Bounds, error)) (Bounds, Bounds, error) {
	if p.XLim != nil && p.YLim != nil {
		return *p.XLim, *p.YLim, nil
	}
	xlim, ylim, err := fallback()
	if err != nil {
		return Bounds{}, Bounds{}, err
	}
	if p.XLim != nil {
		xlim = *p.XLim
	}
	if p.YLim != nil {
		ylim = *p.YLim
	}
	return xlim, ylim, nil
}

// ImageDiff returns z1 - z2. With norm set each image is first divided by
// its own maximum.
func ImageDiff(z1, z2 mat.Matrix, norm bool) (*mat.Dense, error) {
	a, b, err := imagePair(z1, z2, norm)
	if err != nil {
		return nil, fmt.Errorf("image diff: %w", err)
	}
	a.Sub(a, b)
	return a, nil
}

// ImageAdd returns z1 + z2. With norm set each image is first divided by
// its own maximum.
func ImageAdd(z1, z2 mat.Matrix, norm bool) (*mat.Dense, error) {
	a, b, err := imagePair(z1, z2, norm)
	if err != nil {
		return nil, fmt.Errorf("image add: %w", err)
	}
	a.Add(a, b)
	return a, nil
}

func imagePair(z1, z2 mat.Matrix, norm bool) (*mat.Dense, *mat.Dense, error) {
	r1, c1 := z1.Dims()
	r2, c2 := z2.Dims()
	if r1 != r2 || c1 != c2 {
		return nil, nil, fmt.Errorf("%dx%d vs %dx%d: %w", r1, c1, r2, c2, ErrShapeMismatch)
	}
	a := mat.DenseCopyOf(z1)
	b := mat.DenseCopyOf(z2)
	if norm {
		a.Scale(1/mat.Max(a), a)
		b.Scale(1/mat.Max(b), b)
	}
	return a, b, nil
}

// AveragePersistenceImage evaluates each diagram's persistence image on
// shared bounds and returns their mean. Missing bounds come from the
// limits of the collapsed list.
func AveragePersistenceImage(phs []Diagram, p ImageParams) (*mat.Dense, error) {
	if len(phs) == 0 {
		return nil, fmt.Errorf("average image: %w", ErrEmptyDiagram)
	}
	xlim, ylim, err := resolveBounds(p, func() (Bounds, Bounds, error) { return Limits(phs) })
	if err != nil {
		return nil, fmt.Errorf("average image: %w", err)
	}
	p.XLim, p.YLim = &xlim, &ylim

	var sum *mat.Dense
	for i, d := range phs {
		z, err := PersistenceImageData(d, p)
		if err != nil {
			return nil, fmt.Errorf("average image: diagram %d: %w", i, err)
		}
		if sum == nil {
			sum = z
			continue
		}
		sum.Add(sum, z)
	}
	sum.Scale(1/float64(len(phs)), sum)
	return sum, nil
}
