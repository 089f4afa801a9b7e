package sink

import (
	"math"
	"strings"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/render/color"
)

const (
	defaultTicks = 6
	tickLength   = 5.0
	fontSize     = 11.0
	axisColor    = "#444444"
	gridColor    = "#eeeeee"
	labelPadding = 4.0
)

type anchor int

const (
	anchorStart anchor = iota
	anchorMiddle
	anchorEnd
)

// painter is the primitive drawing surface shared by the SVG and PNG
// sinks.
type painter interface {
	rect(r Rect, st geometry.Style)
	polyline(pts []geometry.Point, closed bool, st geometry.Style)
	circle(c geometry.Point, r float64, st geometry.Style)
	text(x, y float64, s string, a anchor, fill string)
	beginClip(r Rect)
	endClip()
	beginGroup(class, title string)
	endGroup()
}

func paint(s Scene, p painter, ticks int) {
	if ticks <= 0 {
		ticks = defaultTicks
	}
	p.rect(Rect{0, 0, s.Width, s.Height}, geometry.Style{Fill: s.background()})

	for _, a := range s.Axes {
		paintGrid(s, p, a, ticks)
	}
	for _, a := range s.Axes {
		paintAxis(s, p, a, ticks)
	}

	p.beginClip(s.Plot)
	for _, set := range s.Sets {
		p.beginGroup("trace", set.Name)
		for _, sh := range set.Shapes {
			paintShape(p, sh)
		}
		p.endGroup()
	}
	p.endClip()

	// Badges sit in the padding just outside the whiskers and may fall
	// outside the plot area, so they are drawn unclipped.
	for _, set := range s.Sets {
		for _, sh := range set.Filter(geometry.KindBadge) {
			p.text(sh.Center.X, sh.Center.Y+fontSize/3, sh.Text, anchorMiddle, sh.Style.TextColor)
		}
	}

	if s.Hover != nil {
		paintLabels(p, s.Hover)
	}
}

func bottomOrLeft(a *axis.Axis) bool {
	return a.ID == "x" || a.ID == "y"
}

func paintGrid(s Scene, p painter, a *axis.Axis, ticks int) {
	if !bottomOrLeft(a) {
		return
	}
	st := geometry.Style{Stroke: gridColor, StrokeWidth: 1}
	for _, t := range a.Ticks(ticks) {
		if a.Letter() == 'x' {
			p.polyline([]geometry.Point{{X: t.Pixel, Y: s.Plot.Y0}, {X: t.Pixel, Y: s.Plot.Y1}}, false, st)
		} else {
			p.polyline([]geometry.Point{{X: s.Plot.X0, Y: t.Pixel}, {X: s.Plot.X1, Y: t.Pixel}}, false, st)
		}
	}
}

func paintAxis(s Scene, p painter, a *axis.Axis, ticks int) {
	st := geometry.Style{Stroke: axisColor, StrokeWidth: 1}
	near := bottomOrLeft(a)

	if a.Letter() == 'x' {
		y, dir := s.Plot.Y1, 1.0
		if !near {
			y, dir = s.Plot.Y0, -1
		}
		p.polyline([]geometry.Point{{X: s.Plot.X0, Y: y}, {X: s.Plot.X1, Y: y}}, false, st)
		for _, t := range a.Ticks(ticks) {
			p.polyline([]geometry.Point{{X: t.Pixel, Y: y}, {X: t.Pixel, Y: y + dir*tickLength}}, false, st)
			ty := y + dir*(tickLength+labelPadding)
			if dir > 0 {
				ty += fontSize
			}
			p.text(t.Pixel, ty, t.Label, anchorMiddle, axisColor)
		}
		return
	}

	x, dir, a0 := s.Plot.X0, -1.0, anchorEnd
	if !near {
		x, dir, a0 = s.Plot.X1, 1, anchorStart
	}
	p.polyline([]geometry.Point{{X: x, Y: s.Plot.Y0}, {X: x, Y: s.Plot.Y1}}, false, st)
	for _, t := range a.Ticks(ticks) {
		p.polyline([]geometry.Point{{X: x, Y: t.Pixel}, {X: x + dir*tickLength, Y: t.Pixel}}, false, st)
		p.text(x+dir*(tickLength+labelPadding), t.Pixel+fontSize/3, t.Label, a0, axisColor)
	}
}

func paintShape(p painter, sh geometry.Shape) {
	switch {
	case sh.Kind == geometry.KindBadge:
		p.polyline(sh.Points, true, sh.Style)
	case sh.IsMarker() && sh.Text != "":
		p.beginGroup(string(sh.Kind), sh.Text)
		paintMarker(p, sh)
		p.endGroup()
	case sh.IsMarker():
		paintMarker(p, sh)
	default:
		p.polyline(sh.Points, sh.Closed, sh.Style)
	}
}

func paintMarker(p painter, sh geometry.Shape) {
	if sh.Symbol == "circle" {
		p.circle(sh.Center, sh.Size/2, sh.Style)
		return
	}
	strokes, closed := geometry.SymbolOutline(sh.Symbol, sh.Center, sh.Size)
	st := sh.Style
	if !closed {
		// Open symbols are drawn in their fill color.
		st = geometry.Style{Stroke: sh.Style.Fill, StrokeWidth: max(sh.Style.StrokeWidth, 2)}
	}
	for _, s := range strokes {
		p.polyline(s, closed, st)
	}
}

func paintLabels(p painter, set *hover.LabelSet) {
	for _, l := range set.Labels {
		text := labelText(l)
		x := max(l.X0, l.X1) + labelPadding
		y := (l.Y0+l.Y1)/2 + fontSize/3
		w := float64(len(text))*fontSize*0.6 + 2*labelPadding
		box := Rect{x, y - fontSize - labelPadding/2, x + w, y + labelPadding}
		p.rect(box, geometry.Style{Fill: l.Color, Stroke: axisColor, StrokeWidth: 0.5})
		p.text(x+labelPadding, y, text, anchorStart, color.Contrast(l.Color))
	}
}

func labelText(l hover.Label) string {
	var parts []string
	if l.Name != "" {
		parts = append(parts, l.Name)
	}
	switch {
	case l.Text != "":
		parts = append(parts, l.Text)
	default:
		parts = append(parts, l.Attr+": "+l.ValueLabel)
	}
	return strings.Join(parts, " ")
}

// DashArray returns the dash pattern of a named line dash scaled to the
// stroke width, or nil for solid lines.
func DashArray(dash string, width float64) []float64 {
	w := math.Max(width, 3)
	switch dash {
	case "dot":
		return []float64{w, w}
	case "dash":
		return []float64{3 * w, 3 * w}
	case "longdash":
		return []float64{5 * w, 5 * w}
	case "dashdot":
		return []float64{3 * w, w, w, w}
	case "longdashdot":
		return []float64{5 * w, 2 * w, w, 2 * w}
	default:
		return nil
	}
}
