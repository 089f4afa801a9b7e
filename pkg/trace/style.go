package trace

import (
	"encoding/json"

	"github.com/matzehuels/specbox/pkg/errors"
)

// Line styles a stroked element.
type Line struct {
	Color string   `json:"color,omitempty"`
	Width *float64 `json:"width,omitempty"`
	Dash  string   `json:"dash,omitempty"`
}

// StrokeWidth returns the width, 0 when unset.
func (l Line) StrokeWidth() float64 {
	if l.Width == nil {
		return 0
	}
	return *l.Width
}

func (l *Line) setDefaults(color string, width float64, dash string) {
	if l.Color == "" {
		l.Color = color
	}
	if l.Width == nil {
		l.Width = &width
	}
	if l.Dash == "" {
		l.Dash = dash
	}
}

// MarkerLine styles the outline of markers.
type MarkerLine struct {
	Color        string   `json:"color,omitempty"`
	Width        *float64 `json:"width,omitempty"`
	OutlierColor string   `json:"outliercolor,omitempty"`
	OutlierWidth *float64 `json:"outlierwidth,omitempty"`
}

// Marker styles point symbols.
type Marker struct {
	Color        string     `json:"color,omitempty"`
	Symbol       string     `json:"symbol,omitempty"`
	Size         float64    `json:"size,omitempty"`
	Opacity      *float64   `json:"opacity,omitempty"`
	OutlierColor string     `json:"outliercolor,omitempty"`
	Line         MarkerLine `json:"line,omitzero"`
}

// Alpha returns the marker opacity, 1 when unset.
func (m Marker) Alpha() float64 {
	if m.Opacity == nil {
		return 1
	}
	return *m.Opacity
}

func (m *Marker) setDefaults(color, symbol string, size float64) {
	if m.Color == "" {
		m.Color = color
	}
	if m.Symbol == "" {
		m.Symbol = symbol
	}
	if m.Size == 0 {
		m.Size = size
	}
}

// BoxMean selects how the mean is drawn.
type BoxMean int

const (
	// MeanNone draws only the mean marker.
	MeanNone BoxMean = iota
	// MeanLine also draws a dashed line at the mean.
	MeanLine
	// MeanSD also draws the standard deviation diamond.
	MeanSD
)

// UnmarshalJSON accepts true, false or "sd".
func (m *BoxMean) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v {
	case true:
		*m = MeanLine
	case false, nil:
		*m = MeanNone
	case "sd":
		*m = MeanSD
	default:
		return errors.New(errors.ErrCodeInvalidTrace, "invalid boxmean %s (want true, false or \"sd\")", b)
	}
	return nil
}

// MarshalJSON encodes the attribute in its document form.
func (m BoxMean) MarshalJSON() ([]byte, error) {
	switch m {
	case MeanLine:
		return []byte("true"), nil
	case MeanSD:
		return []byte(`"sd"`), nil
	default:
		return []byte("false"), nil
	}
}

// BoxPoints selects which sample points are drawn.
type BoxPoints string

const (
	PointsOutliers BoxPoints = "outliers"
	PointsAll      BoxPoints = "all"
	PointsNone     BoxPoints = "none"
)

// UnmarshalJSON accepts "all", "outliers" or false.
func (p *BoxPoints) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v {
	case false:
		*p = PointsNone
	case "all", "outliers", "none":
		*p = BoxPoints(v.(string))
	case nil:
		*p = ""
	default:
		return errors.New(errors.ErrCodeInvalidTrace, "invalid boxpoints %s (want \"all\", \"outliers\" or false)", b)
	}
	return nil
}

// MarshalJSON encodes the attribute in its document form.
func (p BoxPoints) MarshalJSON() ([]byte, error) {
	if p == PointsNone {
		return []byte("false"), nil
	}
	return json.Marshal(string(p))
}
