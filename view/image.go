package view

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"

	"github.com/neurotopo/tmdview/analysis"
	"github.com/neurotopo/tmdview/internal/monitoring"
	"github.com/neurotopo/tmdview/style"
)

// DefaultMaskThreshold is the value below which masked image cells are
// hidden.
const DefaultMaskThreshold = 0.01

// Image is the grid a persistence image chart was drawn from.
type Image struct {
	// Data holds the normalized density; rows follow the first bar field
	// and columns the second.
	Data *mat.Dense
	// Mask marks the cells of Data hidden from the chart. It is nil when
	// masking is off.
	Mask [][]bool
}

// ImageConfig configures PersistenceImage.
type ImageConfig struct {
	Target Target
	Style  style.Options

	// XLim and YLim bound the image. A nil bound is taken from the data.
	XLim, YLim *analysis.Bounds
	// Bins is the grid resolution per axis. Zero selects
	// analysis.DefaultImageBins.
	Bins int
	// NormFactor divides the density. Zero divides by its maximum.
	NormFactor float64

	// Masked hides cells below Threshold. A nil Threshold selects
	// DefaultMaskThreshold.
	Masked    bool
	Threshold *float64

	// ColorBar attaches a color bar for the image's scale.
	ColorBar bool
	// VMin and VMax fix the color scale. Nil takes the data range.
	VMin, VMax *float64
	// ColorMap colors the image. Nil selects Jet.
	ColorMap palette.ColorMap
	// Smoothing is the bilinear upsampling factor. Zero selects
	// DefaultSmoothing and 1 disables smoothing.
	Smoothing int
}

// DefaultImageConfig returns the default persistence image configuration.
func DefaultImageConfig() ImageConfig {
	return ImageConfig{
		Bins:      analysis.DefaultImageBins,
		Threshold: Float(DefaultMaskThreshold),
		ColorMap:  Jet(),
		Smoothing: DefaultSmoothing,
	}
}

// Float returns a pointer to v, for optional config fields.
func Float(v float64) *float64 { return &v }

func orThreshold(t *float64) float64 {
	if t == nil {
		return DefaultMaskThreshold
	}
	return *t
}

func orSmoothing(s int) int {
	if s <= 0 {
		return DefaultSmoothing
	}
	return s
}

func orColorMap(cm, fallback palette.ColorMap) palette.ColorMap {
	if cm == nil {
		return fallback
	}
	return cm
}

func checkBounds(xlim, ylim analysis.Bounds) error {
	for _, b := range []analysis.Bounds{xlim, ylim} {
		if !(b.Max > b.Min) {
			return fmt.Errorf("image bounds [%g, %g] are empty", b.Min, b.Max)
		}
	}
	return nil
}

func checkScale(vmin, vmax *float64) error {
	if vmin != nil && vmax != nil && *vmin >= *vmax {
		return fmt.Errorf("color scale [%g, %g] is empty", *vmin, *vmax)
	}
	return nil
}

// imageStyle defaults the axis limits to the image bounds on top of the
// persistence image titles and labels.
func imageStyle(title string, xlim, ylim analysis.Bounds) style.Options {
	def := defaults(title, "End radial distance from soma", "Start radial distance from soma")
	def.XLim = &style.Range{xlim.Min, xlim.Max}
	def.YLim = &style.Range{ylim.Min, ylim.Max}
	return def
}

// PersistenceImage draws the kernel density image of d and returns the
// grid it was drawn from.
func PersistenceImage(d analysis.Diagram, cfg ImageConfig) (Image, *Axes, error) {
	if err := checkScale(cfg.VMin, cfg.VMax); err != nil {
		return Image{}, nil, fmt.Errorf("persistence image: %w", err)
	}
	xlim, ylim, err := imageBounds(cfg.XLim, cfg.YLim, func() (analysis.Bounds, analysis.Bounds, error) {
		return analysis.LimitsOf(d)
	})
	if err != nil {
		return Image{}, nil, fmt.Errorf("persistence image: %w", err)
	}
	z, err := analysis.PersistenceImageData(d, analysis.ImageParams{
		XLim:       &xlim,
		YLim:       &ylim,
		Bins:       cfg.Bins,
		NormFactor: cfg.NormFactor,
	})
	if err != nil {
		return Image{}, nil, fmt.Errorf("persistence image: %w", err)
	}

	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return Image{}, nil, fmt.Errorf("persistence image: %w", err)
	}

	img := Image{Data: z}
	scaled := mat.Matrix(z)
	if cfg.Masked {
		img.Mask = imageMask(z, orThreshold(cfg.Threshold))
		hidden := mat.DenseCopyOf(z)
		maskBelow(hidden, orThreshold(cfg.Threshold))
		scaled = hidden
	}
	lo, hi := valueRange(scaled, cfg.VMin, cfg.VMax)

	g := gridImage{
		data:      z,
		xlim:      xlim,
		ylim:      ylim,
		smoothing: orSmoothing(cfg.Smoothing),
		masked:    cfg.Masked,
		threshold: orThreshold(cfg.Threshold),
		vmin:      lo,
		vmax:      hi,
		cmap:      orColorMap(cfg.ColorMap, Jet()),
	}
	ax.Add(g.heatMap())
	if cfg.ColorBar {
		if err := registerColorScale(ax, lo, hi, g.cmap); err != nil {
			return Image{}, nil, fmt.Errorf("persistence image: %w", err)
		}
	}
	monitoring.Debugf("persistence image: %d bars, scale [%g, %g], masked=%t", len(d), lo, hi, cfg.Masked)

	return img, finish(fig, ax, cfg.Style, imageStyle("Persistence image", xlim, ylim)), nil
}

// imageBounds fills whichever of xlim and ylim is nil from fallback and
// checks both are non-empty.
func imageBounds(xlim, ylim *analysis.Bounds, fallback func() (analysis.Bounds, analysis.Bounds, error)) (analysis.Bounds, analysis.Bounds, error) {
	var x, y analysis.Bounds
	if xlim == nil || ylim == nil {
		fx, fy, err := fallback()
		if err != nil {
			return x, y, err
		}
		x, y = fx, fy
	}
	if xlim != nil {
		x = *xlim
	}
	if ylim != nil {
		y = *ylim
	}
	return x, y, checkBounds(x, y)
}

// DefaultImagePairBounds bounds difference and addition images when no
// bounds are given.
var DefaultImagePairBounds = analysis.Bounds{Min: 0, Max: 100}

// ImagePairConfig configures PersistenceImageDiff and PersistenceImageAdd.
type ImagePairConfig struct {
	Target Target
	Style  style.Options

	// XLim and YLim are the extent of the images. Nil selects
	// DefaultImagePairBounds.
	XLim, YLim *analysis.Bounds
	// Norm divides each image by its own maximum before combining.
	Norm bool
	// VMin and VMax fix the color scale. Nil selects [-1, 1] for a
	// difference and [0, 2] for a sum.
	VMin, VMax *float64
	// ColorMap colors the image. Nil selects a blue-red diverging map for
	// a difference and Jet for a sum.
	ColorMap palette.ColorMap
	// Smoothing is the bilinear upsampling factor. Zero selects
	// DefaultSmoothing.
	Smoothing int
}

// DefaultImagePairConfig returns the default configuration, with
// normalization on.
func DefaultImagePairConfig() ImagePairConfig {
	return ImagePairConfig{Norm: true, Smoothing: DefaultSmoothing}
}

func (cfg ImagePairConfig) bounds() (analysis.Bounds, analysis.Bounds, error) {
	return imageBounds(cfg.XLim, cfg.YLim, func() (analysis.Bounds, analysis.Bounds, error) {
		return DefaultImagePairBounds, DefaultImagePairBounds, nil
	})
}

// scale returns the color scale, filling unset ends from the defaults.
func scale(vmin, vmax *float64, defMin, defMax float64) (float64, float64, error) {
	lo, hi := defMin, defMax
	if vmin != nil {
		lo = *vmin
	}
	if vmax != nil {
		hi = *vmax
	}
	if !(hi > lo) {
		return 0, 0, fmt.Errorf("color scale [%g, %g] is empty", lo, hi)
	}
	return lo, hi, nil
}

// PersistenceImageDiff draws z1 - z2.
func PersistenceImageDiff(z1, z2 mat.Matrix, cfg ImagePairConfig) (*Axes, error) {
	xlim, ylim, err := cfg.bounds()
	if err != nil {
		return nil, fmt.Errorf("image diff: %w", err)
	}
	lo, hi, err := scale(cfg.VMin, cfg.VMax, -1, 1)
	if err != nil {
		return nil, fmt.Errorf("image diff: %w", err)
	}
	diff, err := analysis.ImageDiff(z1, z2, cfg.Norm)
	if err != nil {
		return nil, err
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("image diff: %w", err)
	}
	ax.Add(gridImage{
		data:      diff,
		xlim:      xlim,
		ylim:      ylim,
		smoothing: orSmoothing(cfg.Smoothing),
		vmin:      lo,
		vmax:      hi,
		cmap:      orColorMap(cfg.ColorMap, moreland.SmoothBlueRed()),
	}.heatMap())

	return finish(fig, ax, cfg.Style, imageStyle("Persistence image difference", xlim, ylim)), nil
}

// PersistenceImageAdd draws z1 + z2.
func PersistenceImageAdd(z1, z2 mat.Matrix, cfg ImagePairConfig) (*Axes, error) {
	xlim, ylim, err := cfg.bounds()
	if err != nil {
		return nil, fmt.Errorf("image add: %w", err)
	}
	lo, hi, err := scale(cfg.VMin, cfg.VMax, 0, 2)
	if err != nil {
		return nil, fmt.Errorf("image add: %w", err)
	}
	sum, err := analysis.ImageAdd(z1, z2, cfg.Norm)
	if err != nil {
		return nil, err
	}
	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, fmt.Errorf("image add: %w", err)
	}
	ax.Add(gridImage{
		data:      sum,
		xlim:      xlim,
		ylim:      ylim,
		smoothing: orSmoothing(cfg.Smoothing),
		vmin:      lo,
		vmax:      hi,
		cmap:      orColorMap(cfg.ColorMap, Jet()),
	}.heatMap())

	return finish(fig, ax, cfg.Style, imageStyle("Persistence image addition", xlim, ylim)), nil
}

// AverageImageConfig configures PersistenceImageAverage.
type AverageImageConfig struct {
	Target Target
	Style  style.Options

	// XLim and YLim bound every image. A nil bound is taken from the
	// collapsed diagrams.
	XLim, YLim *analysis.Bounds
	// Bins is the grid resolution per axis. Zero selects
	// analysis.DefaultImageBins.
	Bins int
	// NormFactor divides each image. Zero divides by its own maximum.
	NormFactor float64

	// Masked hides cells below Threshold. A nil Threshold selects
	// DefaultMaskThreshold.
	Masked    bool
	Threshold *float64

	// VMin and VMax fix the color scale. Nil takes the range of the
	// average.
	VMin, VMax *float64
	// ColorMap colors the image. Nil selects Jet.
	ColorMap palette.ColorMap
	// Smoothing is the bilinear upsampling factor. Zero selects
	// DefaultSmoothing.
	Smoothing int
}

// DefaultAverageImageConfig returns the default average image
// configuration.
func DefaultAverageImageConfig() AverageImageConfig {
	return AverageImageConfig{
		Bins:      analysis.DefaultImageBins,
		Threshold: Float(DefaultMaskThreshold),
		ColorMap:  Jet(),
		Smoothing: DefaultSmoothing,
	}
}

// PersistenceImageAverage draws the mean persistence image of phs, each
// evaluated on shared bounds, and returns the mean.
func PersistenceImageAverage(phs []analysis.Diagram, cfg AverageImageConfig) (*mat.Dense, *Axes, error) {
	if err := checkScale(cfg.VMin, cfg.VMax); err != nil {
		return nil, nil, fmt.Errorf("average image: %w", err)
	}
	xlim, ylim, err := imageBounds(cfg.XLim, cfg.YLim, func() (analysis.Bounds, analysis.Bounds, error) {
		return analysis.Limits(phs)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("average image: %w", err)
	}
	avg, err := analysis.AveragePersistenceImage(phs, analysis.ImageParams{
		XLim:       &xlim,
		YLim:       &ylim,
		Bins:       cfg.Bins,
		NormFactor: cfg.NormFactor,
	})
	if err != nil {
		return nil, nil, err
	}

	fig, ax, err := GetFigure(cfg.Target)
	if err != nil {
		return nil, nil, fmt.Errorf("average image: %w", err)
	}
	threshold := orThreshold(cfg.Threshold)
	lo, hi := valueRange(avg, cfg.VMin, cfg.VMax)
	ax.Add(gridImage{
		data:      avg,
		xlim:      xlim,
		ylim:      ylim,
		smoothing: orSmoothing(cfg.Smoothing),
		masked:    cfg.Masked,
		threshold: threshold,
		vmin:      lo,
		vmax:      hi,
		cmap:      orColorMap(cfg.ColorMap, Jet()),
	}.heatMap())
	monitoring.Debugf("average image: %d diagrams, scale [%g, %g]", len(phs), lo, hi)

	return avg, finish(fig, ax, cfg.Style, imageStyle("Average persistence image", xlim, ylim)), nil
}
