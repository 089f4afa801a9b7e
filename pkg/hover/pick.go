package hover

import (
	"math"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/boxlayout"
	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/render/color"
	"github.com/matzehuels/specbox/pkg/trace"
)

const (
	// MaxHoverDistance is the distance a candidate must beat to be picked.
	MaxHoverDistance = 20.0
	// closestInflation widens the position slot in closest mode.
	closestInflation = 2.5
)

var (
	statAttrs    = []boxstat.Field{boxstat.Med, boxstat.LW, boxstat.Q1, boxstat.Q3, boxstat.UW}
	outlierAttrs = []boxstat.Field{boxstat.Min, boxstat.Max}
)

// Pick returns the labels of the box nearest to cursor, a pixel position,
// or nil when no box is within reach. calcs must come from a finalized
// pass run with layout.
func Pick(cursor geometry.Point, calcs []*boxlayout.Calc, mode trace.HoverMode, layout *trace.Layout) *LabelSet {
	var best *candidate
	bestDist := MaxHoverDistance
	for _, c := range calcs {
		if !c.Visible() {
			continue
		}
		p := newProbe(cursor, c, mode, layout)
		for i := range c.Boxes {
			d := p.distance(i)
			if d <= bestDist {
				bestDist = d
				best = &candidate{probe: p, box: i}
			}
		}
	}
	if best == nil || math.IsInf(bestDist, 1) {
		return nil
	}
	return &LabelSet{
		Trace:    best.c.Index,
		Box:      best.box,
		Distance: bestDist,
		Labels:   best.labels(best.box),
	}
}

type candidate struct {
	*probe
	box int
}

// probe holds the per-trace hover state for one cursor.
type probe struct {
	c       *boxlayout.Calc
	layout  *trace.Layout
	mode    trace.HoverMode
	posVal  float64 // cursor on the position axis, calc units
	valVal  float64 // cursor on the value axis, calc units
	valPx   float64
	delta   float64
	passVal float64
}

func newProbe(cursor geometry.Point, c *boxlayout.Calc, mode trace.HoverMode, layout *trace.Layout) *probe {
	posPx, valPx := c.Layout.Orientation.PosVal(cursor.X, cursor.Y)
	p := &probe{
		c:      c,
		layout: layout,
		mode:   mode,
		posVal: c.PosAxis.P2C(posPx),
		valVal: c.ValAxis.P2C(valPx),
		valPx:  valPx,
		delta:  c.Layout.BDPos,
	}
	if mode == trace.HoverClosest {
		p.delta *= closestInflation
	}
	pseudo := 1.0
	if span := math.Abs(c.PosAxis.L2C(c.PosAxis.Range[1]) - c.PosAxis.L2C(c.PosAxis.Range[0])); span > 0 {
		pseudo = min(1, p.delta/span)
	}
	p.passVal = MaxHoverDistance - pseudo
	return p
}

// inbox scores a one-dimensional hit: v0 and v1 are the interval ends
// relative to the cursor.
func (p *probe) inbox(v0, v1 float64) float64 {
	if v0*v1 < 0 || v0 == 0 {
		return p.passVal
	}
	return math.Inf(1)
}

func (p *probe) posDistance(i int) float64 {
	d := p.c.Center(i) - p.posVal
	return p.inbox(d-p.delta, d+p.delta)
}

func (p *probe) valDistance(i int) float64 {
	b := &p.c.Boxes[i]
	if b.NormalizationFailed {
		tol := p.c.Trace.InvalidMarker.Size / 2
		if math.Abs(p.c.ValAxis.C2P(0)-p.valPx) <= tol {
			return p.passVal
		}
		return math.Inf(1)
	}
	lo, hi := p.valueRange(b)
	return p.inbox(lo-p.valVal, hi-p.valVal)
}

// valueRange is the hoverable value span of b. With outliers off the
// scale it is the whisker span, open on each side with hidden outliers so
// the reveal label stays reachable.
func (p *probe) valueRange(b *boxstat.Box) (lo, hi float64) {
	s := b.Stats
	if !p.layout.IgnoresOutliers() {
		return s.First(boxstat.Min, boxstat.LW, boxstat.Q1, boxstat.Med), s.First(boxstat.Max, boxstat.UW, boxstat.Q3, boxstat.Med)
	}
	lo = s.First(boxstat.LW, boxstat.Q1, boxstat.Med)
	hi = s.First(boxstat.UW, boxstat.Q3, boxstat.Med)
	if b.LOC > 0 {
		lo = math.Inf(-1)
	}
	if b.UOC > 0 {
		hi = math.Inf(1)
	}
	return lo, hi
}

func (p *probe) distance(i int) float64 {
	dx, dy := p.posDistance, p.valDistance
	if p.c.Layout.Orientation == trace.Horizontal {
		dx, dy = dy, dx
	}
	switch p.mode {
	case trace.HoverX:
		return dx(i)
	case trace.HoverY:
		return dy(i)
	default:
		return (dx(i) + dy(i)) / 2
	}
}

func (p *probe) labels(i int) []Label {
	c := p.c
	b := &c.Boxes[i]
	center := c.Center(i)
	posPx := c.PosAxis.C2P(center)

	base := Label{
		Trace:         c.Index,
		Box:           i,
		Name:          c.Trace.Name,
		PositionLabel: c.PosAxis.FormatValue(b.Pos),
		Color:         labelColor(c.Trace),
	}

	if b.NormalizationFailed {
		l := base
		l.Text = NormalizationFailedText
		l.Attr = AttrNormalizationFailed
		p.place(&l, posPx, posPx, c.ValAxis.C2P(0))
		return []Label{l}
	}

	if p.revealHit(b) {
		l := base
		l.Text = p.layout.ShowOutliersText
		l.Attr = AttrOutliersMark
		l.OutliersMark = true
		l.Color = RevealColor
		p.place(&l, posPx, posPx, p.valPx)
		return []Label{l}
	}

	half := c.Layout.BDPos * b.BoxWidth
	pos0, pos1 := c.PosAxis.C2P(center-half), c.PosAxis.C2P(center+half)

	attrs := statAttrs
	if !p.layout.IgnoresOutliers() {
		attrs = append(append([]boxstat.Field(nil), statAttrs...), outlierAttrs...)
	}
	used := map[float64]bool{}
	var out []Label
	for _, f := range attrs {
		v := b.Get(f)
		if math.IsNaN(v) || used[v] {
			continue
		}
		used[v] = true

		l := base
		if len(out) > 0 {
			l.Name = ""
		}
		l.Attr = f.String()
		l.ValueLabel = formatDisplay(c.ValAxis, b, f)
		p.place(&l, pos0, pos1, c.ValAxis.C2P(v))
		out = append(out, l)
	}
	return out
}

// place anchors l across [pos0, pos1] at valPx.
func (p *probe) place(l *Label, pos0, pos1, valPx float64) {
	x0, y0 := p.c.Layout.Orientation.XY(pos0, valPx)
	x1, y1 := p.c.Layout.Orientation.XY(pos1, valPx)
	l.X0, l.Y0, l.X1, l.Y1 = x0, y0, x1, y1
}

func (p *probe) revealHit(b *boxstat.Box) bool {
	if !p.layout.IgnoresOutliers() || !p.c.ValAxis.AutoRange {
		return false
	}
	return (b.LOC > 0 && p.valVal < b.Get(boxstat.LW)) || (b.UOC > 0 && p.valVal > b.Get(boxstat.UW))
}

func formatDisplay(a *axis.Axis, b *boxstat.Box, f boxstat.Field) string {
	v := b.Display(f)
	if math.IsNaN(v) {
		v = b.Get(f)
	}
	return a.FormatValue(v)
}

// labelColor prefers a visible line, then visible points, then the fill.
func labelColor(tr *trace.Trace) string {
	if color.Opacity(tr.Line.Color) > 0 && tr.Line.StrokeWidth() > 0 {
		return tr.Line.Color
	}
	if color.Opacity(tr.Marker.Color) > 0 && tr.BoxPoints != trace.PointsNone {
		return tr.Marker.Color
	}
	return tr.FillColor
}
