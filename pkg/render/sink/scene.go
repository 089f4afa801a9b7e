package sink

import (
	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/hover"
)

// Rect is a pixel rectangle.
type Rect struct {
	X0 float64 `json:"x0"`
	Y0 float64 `json:"y0"`
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
}

// Width returns the width of r.
func (r Rect) Width() float64 { return r.X1 - r.X0 }

// Height returns the height of r.
func (r Rect) Height() float64 { return r.Y1 - r.Y0 }

// Scene is everything a sink draws.
type Scene struct {
	Width  float64
	Height float64
	// Plot is the area the axes span. Trace shapes are clipped to it.
	Plot Rect
	// Axes in drawing order. Axes with ids "x" and "y" sit at the bottom
	// and left; any other axis on the opposite side.
	Axes []*axis.Axis
	Sets []geometry.ShapeSet
	// Hover is an optional label overlay.
	Hover *hover.LabelSet
	// Background defaults to white.
	Background string
}

func (s Scene) background() string {
	if s.Background == "" {
		return "#ffffff"
	}
	return s.Background
}
