package geometry

import "math"

// Kind identifies what a shape depicts.
type Kind string

const (
	KindBox       Kind = "box"
	KindMedian    Kind = "median"
	KindWhisker   Kind = "whisker"
	KindCap       Kind = "cap"
	KindSpecLimit Kind = "speclimit"
	KindBoundary  Kind = "boundary"
	KindMeanLine  Kind = "meanline"
	KindSD        Kind = "sd"
	KindMean      Kind = "mean"
	KindDensity   Kind = "density"
	KindPoint     Kind = "point"
	KindOutlier   Kind = "outlier"
	KindInvalid   Kind = "invalid"
	KindBadge     Kind = "badge"
)

// Point is a pixel coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Style is the paint of a shape. Empty colors are not painted.
type Style struct {
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty"`
	Fill        string  `json:"fill,omitempty"`
	TextColor   string  `json:"text_color,omitempty"`
}

// Shape is one drawable element. Line-like shapes carry Points; marker
// shapes carry Center, Symbol and Size. Badges carry both a rectangle and
// Text.
type Shape struct {
	Kind   Kind    `json:"kind"`
	Box    int     `json:"box"`
	Points []Point `json:"points,omitempty"`
	Closed bool    `json:"closed,omitempty"`

	Center Point   `json:"center,omitzero"`
	Symbol string  `json:"symbol,omitempty"`
	Size   float64 `json:"size,omitempty"`
	Text   string  `json:"text,omitempty"`

	Style Style `json:"style"`
}

// IsMarker reports whether s is drawn as a symbol at Center.
func (s Shape) IsMarker() bool {
	return s.Symbol != ""
}

// Bounds returns the bounding box of s.
func (s Shape) Bounds() (lo, hi Point) {
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	grow := func(p Point) {
		lo.X, lo.Y = min(lo.X, p.X), min(lo.Y, p.Y)
		hi.X, hi.Y = max(hi.X, p.X), max(hi.Y, p.Y)
	}
	for _, p := range s.Points {
		grow(p)
	}
	if s.IsMarker() {
		r := s.Size / 2
		grow(Point{s.Center.X - r, s.Center.Y - r})
		grow(Point{s.Center.X + r, s.Center.Y + r})
	}
	return lo, hi
}

// ShapeSet holds the shapes of one trace in paint order.
type ShapeSet struct {
	Trace  int     `json:"trace"`
	Name   string  `json:"name,omitempty"`
	Shapes []Shape `json:"shapes"`
}

// Filter returns the shapes of the given kind.
func (s ShapeSet) Filter(kind Kind) []Shape {
	var out []Shape
	for _, sh := range s.Shapes {
		if sh.Kind == kind {
			out = append(out, sh)
		}
	}
	return out
}

// SymbolOutline returns the strokes that draw symbol at c with the given
// size. Closed outlines are filled; open ones are stroked. Circles are
// approximated by a polygon for sinks without a native circle.
func SymbolOutline(symbol string, c Point, size float64) (strokes [][]Point, closed bool) {
	r := size / 2
	switch symbol {
	case "diamond":
		return [][]Point{{{c.X, c.Y - r}, {c.X + r, c.Y}, {c.X, c.Y + r}, {c.X - r, c.Y}}}, true
	case "square":
		return [][]Point{{{c.X - r, c.Y - r}, {c.X + r, c.Y - r}, {c.X + r, c.Y + r}, {c.X - r, c.Y + r}}}, true
	case "x":
		return [][]Point{
			{{c.X - r, c.Y - r}, {c.X + r, c.Y + r}},
			{{c.X - r, c.Y + r}, {c.X + r, c.Y - r}},
		}, false
	case "cross":
		return [][]Point{
			{{c.X - r, c.Y}, {c.X + r, c.Y}},
			{{c.X, c.Y - r}, {c.X, c.Y + r}},
		}, false
	default:
		const n = 16
		ring := make([]Point, n)
		for i := range ring {
			a := 2 * math.Pi * float64(i) / n
			ring[i] = Point{c.X + r*math.Cos(a), c.Y + r*math.Sin(a)}
		}
		return [][]Point{ring}, true
	}
}
