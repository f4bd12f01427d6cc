package view

import (
	"slices"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/neurotopo/tmdview/internal/monitoring"
	"github.com/neurotopo/tmdview/style"
)

// PlotStyle applies opts to ax: title, axis labels and axis limits, then
// the passthrough options. It must run after the chart's plotters are
// added, since adding a plotter widens the axis ranges. When fig is
// non-nil, ax becomes its current axes.
//
// Recognized passthrough options:
//
//	grid        bool    draw grid lines
//	no_axes     bool    hide both axes
//	title_size  number  title font size in points
//	label_size  number  axis label font size in points
//	legend_top  bool    place the legend at the top
//
// Other keys are logged and ignored.
func PlotStyle(fig *Figure, ax *Axes, opts style.Options) *Axes {
	p := ax.Plot
	if opts.Title != nil {
		p.Title.Text = *opts.Title
	}
	if opts.XLabel != nil {
		p.X.Label.Text = *opts.XLabel
	}
	if opts.YLabel != nil {
		p.Y.Label.Text = *opts.YLabel
	}
	if opts.XLim != nil {
		p.X.Min, p.X.Max = opts.XLim.Min(), opts.XLim.Max()
	}
	if opts.YLim != nil {
		p.Y.Min, p.Y.Max = opts.YLim.Min(), opts.YLim.Max()
	}

	keys := make([]string, 0, len(opts.Extra))
	for k := range opts.Extra {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !applyExtra(ax, opts, k) {
			monitoring.Debugf("plot style: ignoring option %q=%v", k, opts.Extra[k])
		}
	}

	if fig != nil {
		fig.current = ax
	}
	return ax
}

// applyExtra applies one passthrough option and reports whether it was
// understood.
func applyExtra(ax *Axes, opts style.Options, key string) bool {
	p := ax.Plot
	switch key {
	case "grid":
		on, ok := opts.Bool(key)
		if ok && on {
			ax.Add(plotter.NewGrid())
		}
		return ok
	case "no_axes":
		on, ok := opts.Bool(key)
		if ok && on {
			p.HideAxes()
		}
		return ok
	case "title_size":
		size, ok := opts.Float(key)
		if ok && size > 0 {
			p.Title.TextStyle.Font.Size = vg.Points(size)
			return true
		}
		return false
	case "label_size":
		size, ok := opts.Float(key)
		if ok && size > 0 {
			p.X.Label.TextStyle.Font.Size = vg.Points(size)
			p.Y.Label.TextStyle.Font.Size = vg.Points(size)
			return true
		}
		return false
	case "legend_top":
		top, ok := opts.Bool(key)
		if ok {
			p.Legend.Top = top
		}
		return ok
	}
	return false
}
