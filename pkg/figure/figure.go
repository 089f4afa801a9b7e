package figure

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/trace"
)

// Default frame size and margins in pixels.
const (
	DefaultWidth  = 700.0
	DefaultHeight = 450.0
)

// DefaultMargin is used when a layout sets no margin.
var DefaultMargin = Margin{L: 70, R: 40, T: 40, B: 60}

// Figure is a figure document.
type Figure struct {
	Layout Layout         `json:"layout"`
	Data   []*trace.Trace `json:"data"`
}

// Layout holds the figure-wide attributes: the box attributes shared by
// all traces plus frame and axis settings.
type Layout struct {
	trace.Layout

	Title         string  `json:"title,omitempty"`
	Width         float64 `json:"width,omitempty"`
	Height        float64 `json:"height,omitempty"`
	Margin        *Margin `json:"margin,omitempty"`
	PaperBGColor  string  `json:"paper_bgcolor,omitempty"`
	DensityPoints int     `json:"densityPoints,omitempty"`

	// XAxis and YAxis configure axes by id, such as "x" or "y2".
	XAxis map[string]AxisConfig `json:"xaxis,omitempty"`
	YAxis map[string]AxisConfig `json:"yaxis,omitempty"`
}

// Margin is the space between the frame and the plot area.
type Margin struct {
	L float64 `json:"l"`
	R float64 `json:"r"`
	T float64 `json:"t"`
	B float64 `json:"b"`
}

// AxisConfig is the user-facing configuration of one axis.
type AxisConfig struct {
	// Type is "linear", "log", "category" or "date". Empty infers the type
	// from the data.
	Type string `json:"type,omitempty"`
	// Range fixes the visible range. Log ranges are in powers of ten.
	Range *[2]float64 `json:"range,omitempty"`
	// AutoRange overrides whether the range follows the data. It defaults
	// to true unless Range is set.
	AutoRange  *bool    `json:"autorange,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

// Prepare applies defaults, derives statistics for boxes given only as
// samples and validates the figure. It is idempotent.
func (f *Figure) Prepare() error {
	f.Layout.SetDefaults()
	if err := f.Layout.Validate(); err != nil {
		return err
	}
	if len(f.Data) == 0 {
		return errors.New(errors.ErrCodeInvalidFigure, "figure has no traces")
	}
	for i, tr := range f.Data {
		if tr == nil {
			return errors.New(errors.ErrCodeInvalidFigure, "trace %d is null", i)
		}
		if err := summarizeSamples(&tr.X, f.Layout.DensityPoints); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTrace, err, "trace %d", i)
		}
		if err := summarizeSamples(&tr.Y, f.Layout.DensityPoints); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidTrace, err, "trace %d", i)
		}
		tr.SetDefaults(i)
		if err := tr.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// SetDefaults fills unset layout attributes.
func (l *Layout) SetDefaults() {
	l.Layout.SetDefaults()
	if l.Width <= 0 {
		l.Width = DefaultWidth
	}
	if l.Height <= 0 {
		l.Height = DefaultHeight
	}
	if l.Margin == nil {
		m := DefaultMargin
		l.Margin = &m
	}
}

// Validate checks the layout attributes.
func (l *Layout) Validate() error {
	if err := l.Layout.Validate(); err != nil {
		return err
	}
	m := l.Margin
	if m.L+m.R >= l.Width || m.T+m.B >= l.Height {
		return errors.New(errors.ErrCodeInvalidFigure, "margins leave no plot area in a %vx%v frame", l.Width, l.Height)
	}
	if err := errors.ValidateNonNegative("densityPoints", float64(l.DensityPoints)); err != nil {
		return err
	}
	for id, cfg := range l.XAxis {
		if err := cfg.validate('x', id); err != nil {
			return err
		}
	}
	for id, cfg := range l.YAxis {
		if err := cfg.validate('y', id); err != nil {
			return err
		}
	}
	return nil
}

// summarizeSamples fills quartiles, whiskers, mean and extremes of boxes
// that carry points but no quartiles. Limits and counts already given are
// kept.
func summarizeSamples(c *trace.Column, densityPoints int) error {
	for i, raw := range c.Stats {
		if raw.Q1 != nil || raw.Q3 != nil || raw.Med != nil || len(raw.Points) == 0 {
			continue
		}
		v := raw.Values()
		opts := []boxstat.SummarizeOption{
			boxstat.WithSpecLimits(v[boxstat.LSL], v[boxstat.USL]),
			boxstat.WithNaturalBoundaries(v[boxstat.LNB], v[boxstat.UNB]),
		}
		if raw.ProbabilityDensity == nil && densityPoints > 1 {
			opts = append(opts, boxstat.WithDensity(densityPoints))
		}
		sum, err := boxstat.Summarize(raw.Points, opts...)
		if err != nil {
			return err
		}
		if raw.Count > 0 {
			sum.Count = raw.Count
		}
		if raw.ProbabilityDensity != nil {
			sum.ProbabilityDensity = raw.ProbabilityDensity
		}
		for _, f := range []boxstat.Field{boxstat.Avg, boxstat.LW, boxstat.UW, boxstat.Min, boxstat.Max} {
			if x := v[f]; !math.IsNaN(x) {
				sum.Set(f, x)
			}
		}
		c.Stats[i] = sum
	}
	return nil
}

// Clone returns a deep copy of f.
func (f *Figure) Clone() (*Figure, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy figure")
	}
	var out Figure
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "copy figure")
	}
	return &out, nil
}
