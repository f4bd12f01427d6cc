// Package style models the cosmetic options applied to a chart: title,
// axis labels, axis limits and a passthrough bag for everything else.
//
// Every named field is a pointer so that "not set" can be told apart from
// a zero value; WithDefaults fills unset fields without ever overriding an
// explicit choice.
package style

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"maps"
	"math"
	"os"
	"path/filepath"
)

// Range is an axis range, [min, max].
type Range [2]float64

// Min returns the lower end of the range.
func (r Range) Min() float64 { return r[0] }

// Max returns the upper end of the range.
func (r Range) Max() float64 { return r[1] }

// Options holds chart style options.
type Options struct {
	Title  *string `json:"title,omitempty"`
	XLabel *string `json:"xlabel,omitempty"`
	YLabel *string `json:"ylabel,omitempty"`
	XLim   *Range  `json:"xlim,omitempty"`
	YLim   *Range  `json:"ylim,omitempty"`

	// Extra carries options without a named field (for example "grid" or
	// "title_size"). In JSON these are ordinary top-level keys.
	Extra map[string]any `json:"-"`
}

// Helper functions to create pointers
func String(v string) *string { return &v }
func Limits(lo, hi float64) *Range {
	r := Range{lo, hi}
	return &r
}

// named lists the JSON keys that map to Options fields.
var named = map[string]bool{"title": true, "xlabel": true, "ylabel": true, "xlim": true, "ylim": true}

// UnmarshalJSON decodes the named fields and collects every other key
// into Extra.
func (o *Options) UnmarshalJSON(data []byte) error {
	type plain Options
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*o = Options(p)
	for k, v := range raw {
		if named[k] {
			continue
		}
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[k] = v
	}
	return nil
}

// MarshalJSON encodes the named fields and Extra as one flat object.
func (o Options) MarshalJSON() ([]byte, error) {
	type plain Options
	base, err := json.Marshal(plain(o))
	if err != nil {
		return nil, err
	}
	if len(o.Extra) == 0 {
		return base, nil
	}
	merged := make(map[string]any, len(o.Extra)+len(named))
	maps.Copy(merged, o.Extra)
	var fields map[string]any
	if err := json.Unmarshal(base, &fields); err != nil {
		return nil, err
	}
	maps.Copy(merged, fields)
	return json.Marshal(merged)
}

// LoadOptions loads Options from a JSON file.
// The file must have a .json extension and be at most 1MB.
func LoadOptions(path string) (*Options, error) {
	return loadOptions(filepath.Clean(path), os.Stat, os.ReadFile)
}

// LoadOptionsFS is LoadOptions reading name from fsys.
func LoadOptionsFS(fsys fs.FS, name string) (*Options, error) {
	return loadOptions(name,
		func(n string) (fs.FileInfo, error) { return fs.Stat(fsys, n) },
		func(n string) ([]byte, error) { return fs.ReadFile(fsys, n) },
	)
}

func loadOptions(name string, stat func(string) (fs.FileInfo, error), read func(string) ([]byte, error)) (*Options, error) {
	if ext := filepath.Ext(name); ext != ".json" {
		return nil, fmt.Errorf("style file must have .json extension, got %q", ext)
	}

	fileInfo, err := stat(name)
	if err != nil {
		return nil, fmt.Errorf("failed to stat style file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("style file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := read(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read style file: %w", err)
	}

	opts := &Options{}
	if err := json.Unmarshal(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse style JSON: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid style: %w", err)
	}
	return opts, nil
}

// Validate checks that any axis limits are finite and increasing.
func (o *Options) Validate() error {
	if err := validateRange("xlim", o.XLim); err != nil {
		return err
	}
	return validateRange("ylim", o.YLim)
}

func validateRange(name string, r *Range) error {
	if r == nil {
		return nil
	}
	for _, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be finite, got %v", name, *r)
		}
	}
	if r.Min() >= r.Max() {
		return fmt.Errorf("%s min must be below max, got %v", name, *r)
	}
	return nil
}

// WithDefaults returns a copy of o where every unset field, and every
// Extra key o does not define, is taken from defaults.
func (o Options) WithDefaults(defaults Options) Options {
	out := o
	if out.Title == nil {
		out.Title = defaults.Title
	}
	if out.XLabel == nil {
		out.XLabel = defaults.XLabel
	}
	if out.YLabel == nil {
		out.YLabel = defaults.YLabel
	}
	if out.XLim == nil {
		out.XLim = defaults.XLim
	}
	if out.YLim == nil {
		out.YLim = defaults.YLim
	}
	if len(defaults.Extra) > 0 {
		extra := maps.Clone(defaults.Extra)
		maps.Copy(extra, o.Extra)
		out.Extra = extra
	}
	return out
}

// GetTitle returns the title or "".
func (o Options) GetTitle() string {
	if o.Title == nil {
		return ""
	}
	return *o.Title
}

// GetXLabel returns the x-axis label or "".
func (o Options) GetXLabel() string {
	if o.XLabel == nil {
		return ""
	}
	return *o.XLabel
}

// GetYLabel returns the y-axis label or "".
func (o Options) GetYLabel() string {
	if o.YLabel == nil {
		return ""
	}
	return *o.YLabel
}

// Bool returns Extra[key] as a bool.
func (o Options) Bool(key string) (v, ok bool) {
	v, ok = o.Extra[key].(bool)
	return v, ok
}

// Float returns Extra[key] as a float64. JSON numbers and Go integer
// values are accepted.
func (o Options) Float(key string) (float64, bool) {
	switch v := o.Extra[key].(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	}
	return 0, false
}
