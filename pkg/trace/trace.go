package trace

import (
	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/render/color"
)

// Default attribute values.
const (
	DefaultWhiskerWidth = 0.5
	DefaultLineWidth    = 2.0
	DefaultMarkerSize   = 6.0
	DefaultFillOpacity  = 0.5
	DefaultMarkerLine   = "#444"
	DefaultOutlierColor = "rgba(0, 0, 0, 0)"
)

// Trace is one box trace.
type Trace struct {
	Name        string      `json:"name,omitempty"`
	Visible     *bool       `json:"visible,omitempty"`
	Orientation Orientation `json:"orientation,omitempty"`

	X  Column `json:"x,omitzero"`
	Y  Column `json:"y,omitzero"`
	X0 any    `json:"x0,omitempty"`
	Y0 any    `json:"y0,omitempty"`

	XAxis string `json:"xaxis,omitempty"`
	YAxis string `json:"yaxis,omitempty"`

	Normalize    bool      `json:"normalize,omitempty"`
	WhiskerWidth *float64  `json:"whiskerwidth,omitempty"`
	BoxMean      BoxMean   `json:"boxmean,omitempty"`
	BoxPoints    BoxPoints `json:"boxpoints,omitempty"`

	Marker    Marker `json:"marker,omitzero"`
	Line      Line   `json:"line,omitzero"`
	FillColor string `json:"fillcolor,omitempty"`

	AvgMarker              Marker `json:"avgmarker,omitzero"`
	InvalidMarker          Marker `json:"invalidmarker,omitzero"`
	SpecificationLimitLine Line   `json:"specificationLimitLine,omitzero"`
	NaturalBoundaryLine    Line   `json:"naturalBoundaryLine,omitzero"`
	ProbabilityDensityLine Line   `json:"probabilityDensityLine,omitzero"`

	Transforms []Transform `json:"transforms,omitempty"`
}

// IsVisible reports whether the trace takes part in layout.
func (t *Trace) IsVisible() bool {
	return t.Visible == nil || *t.Visible
}

// Stats returns the value column's box statistics.
func (t *Trace) Stats() []boxstat.Raw {
	if t.Orientation == Horizontal {
		return t.X.Stats
	}
	return t.Y.Stats
}

// Positions returns the position column and the anchor.
func (t *Trace) Positions() (values []any, anchor any) {
	if t.Orientation == Horizontal {
		return t.Y.Values, t.Y0
	}
	return t.X.Values, t.X0
}

// Whisker returns the whisker cap width relative to the box width.
func (t *Trace) Whisker() float64 {
	if t.WhiskerWidth == nil {
		return DefaultWhiskerWidth
	}
	return *t.WhiskerWidth
}

// SetDefaults fills unset attributes. index is the trace's position in the
// figure and picks its default color. A trace without statistic data on
// either axis is made invisible.
func (t *Trace) SetDefaults(index int) {
	var inferred Orientation
	switch {
	case t.Y.IsStats():
		inferred = Vertical
	case t.X.IsStats():
		inferred = Horizontal
	default:
		hidden := false
		t.Visible = &hidden
		return
	}
	if t.Orientation == "" {
		t.Orientation = inferred
	}
	if t.XAxis == "" {
		t.XAxis = "x"
	}
	if t.YAxis == "" {
		t.YAxis = "y"
	}
	if t.WhiskerWidth == nil {
		w := DefaultWhiskerWidth
		t.WhiskerWidth = &w
	}
	if t.BoxPoints == "" {
		t.BoxPoints = PointsOutliers
	}

	lineColor := t.Marker.Color
	if lineColor == "" {
		lineColor = color.Palette(index)
	}
	t.Line.setDefaults(lineColor, DefaultLineWidth, "solid")
	if t.FillColor == "" {
		t.FillColor = color.AddOpacity(t.Line.Color, DefaultFillOpacity)
	}

	t.Marker.setDefaults(t.Line.Color, "circle", DefaultMarkerSize)
	if t.Marker.OutlierColor == "" {
		t.Marker.OutlierColor = DefaultOutlierColor
	}
	if t.Marker.Line.Color == "" {
		t.Marker.Line.Color = DefaultMarkerLine
	}
	if t.Marker.Line.Width == nil {
		t.Marker.Line.Width = new(float64)
	}
	if t.Marker.Line.OutlierColor == "" {
		t.Marker.Line.OutlierColor = t.Marker.Color
	}
	if t.Marker.Line.OutlierWidth == nil {
		w := 1.0
		t.Marker.Line.OutlierWidth = &w
	}

	t.AvgMarker.setDefaults(t.Line.Color, "diamond", 8)
	t.InvalidMarker.setDefaults("#d62728", "x", 10)
	t.SpecificationLimitLine.setDefaults("#d62728", 2, "dash")
	t.NaturalBoundaryLine.setDefaults("#ff7f0e", 1, "dot")
	t.ProbabilityDensityLine.setDefaults(t.Line.Color, 1, "solid")

	for i := range t.Transforms {
		t.Transforms[i].setDefaults()
	}
}

// Validate checks attributes SetDefaults cannot repair.
func (t *Trace) Validate() error {
	if !t.IsVisible() {
		return nil
	}
	if err := t.Orientation.Validate(); err != nil {
		return err
	}
	if t.X.IsStats() && t.Y.IsStats() {
		return errors.New(errors.ErrCodeInvalidTrace, "trace %q has box statistics on both x and y", t.Name)
	}
	if vals, _ := t.Positions(); len(vals) > 0 && len(vals) != len(t.Stats()) {
		return errors.New(errors.ErrCodeInvalidTrace, "trace %q has %d positions for %d boxes", t.Name, len(vals), len(t.Stats()))
	}
	if w := t.Whisker(); w < 0 || w > 1 {
		return errors.New(errors.ErrCodeInvalidTrace, "whiskerwidth must be in [0, 1], got %v", w)
	}
	if err := errors.ValidateNonNegative("line.width", t.Line.StrokeWidth()); err != nil {
		return err
	}
	for _, tr := range t.Transforms {
		if err := tr.Validate(); err != nil {
			return err
		}
	}
	return nil
}
