package geometry

import (
	"math"
	"strconv"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/boxlayout"
	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/render/color"
	"github.com/matzehuels/specbox/pkg/trace"
)

const (
	// MedianNudge keeps the median this many pixels inside the box so it
	// stays visible when it coincides with a quartile.
	MedianNudge = 1.0

	badgeHeight      = 14.0
	badgeCharWidth   = 7.0
	badgeFill        = "rgba(255, 0, 0, 0.3)"
	badgeStroke      = "#ff0000"
	badgeTextColor   = "#555555"
	meanLineDash     = "dash"
	defaultTolerance = 0.25
)

// Options are the figure-wide attributes that shape geometry.
type Options struct {
	// Density decides when density lobes are drawn.
	Density trace.DensityMode
	// DensityMargin is the share of the box half-width kept free of the
	// widest lobe.
	DensityMargin float64
	// IgnoreOutliers enables outlier count badges.
	IgnoreOutliers bool
	// OutliersHoverText is attached to outlier points.
	OutliersHoverText string
	// Tolerance is the Douglas-Peucker tolerance in pixels applied to
	// density lobes before smoothing. Zero selects the default.
	Tolerance float64
}

// OptionsFrom reads Options from a defaulted layout.
func OptionsFrom(l *trace.Layout) Options {
	return Options{
		Density:           l.ShowProbabilityDensity,
		DensityMargin:     l.DensityMargin(),
		IgnoreOutliers:    l.IgnoresOutliers(),
		OutliersHoverText: l.OutliersHoverText,
	}
}

// BuildAll builds the shapes of every trace of a finalized pass.
func BuildAll(p *boxlayout.Pass) []ShapeSet {
	opts := OptionsFrom(p.Layout())
	sets := make([]ShapeSet, 0, len(p.Calcs()))
	for _, c := range p.Calcs() {
		sets = append(sets, Build(c, c.PosAxis, c.ValAxis, opts))
	}
	return sets
}

// Build produces the shapes of one trace. c must come from a finalized
// pass; invisible traces yield an empty set.
func Build(c *boxlayout.Calc, posAxis, valAxis *axis.Axis, opts Options) ShapeSet {
	set := ShapeSet{Trace: c.Index, Name: c.Trace.Name}
	if !c.Visible() {
		return set
	}
	if opts.Tolerance <= 0 {
		opts.Tolerance = defaultTolerance
	}
	b := &builder{c: c, tr: c.Trace, pos: posAxis, val: valAxis, o: c.Layout.Orientation, opts: opts}
	for i := range c.Boxes {
		b.box(i)
	}
	set.Shapes = b.shapes
	return set
}

type builder struct {
	c      *boxlayout.Calc
	tr     *trace.Trace
	pos    *axis.Axis
	val    *axis.Axis
	o      trace.Orientation
	opts   Options
	shapes []Shape
}

// at maps pixel offsets along the position and value axes to a point.
func (b *builder) at(posPx, valPx float64) Point {
	x, y := b.o.XY(posPx, valPx)
	return Point{x, y}
}

func (b *builder) add(s Shape) {
	b.shapes = append(b.shapes, s)
}

func (b *builder) segment(kind Kind, box int, p0, v0, p1, v1 float64, st Style) {
	b.add(Shape{Kind: kind, Box: box, Points: []Point{b.at(p0, v0), b.at(p1, v1)}, Style: st})
}

func lineStyle(l trace.Line) Style {
	return Style{Stroke: l.Color, StrokeWidth: l.StrokeWidth(), Dash: l.Dash}
}

func markerStyle(m trace.Marker) Style {
	st := Style{Fill: m.Color, Stroke: m.Line.Color}
	if m.Line.Width != nil {
		st.StrokeWidth = *m.Line.Width
	}
	return st
}

func (b *builder) box(i int) {
	bx := &b.c.Boxes[i]
	l := b.c.Layout
	center := b.c.Center(i)
	posc := b.pos.C2P(center)

	if bx.NormalizationFailed {
		m := b.tr.InvalidMarker
		st := markerStyle(m)
		st.Stroke = m.Color
		b.add(Shape{
			Kind:   KindInvalid,
			Box:    i,
			Center: b.at(posc, b.val.C2P(0)),
			Symbol: m.Symbol,
			Size:   m.Size,
			Style:  st,
		})
		return
	}

	half := l.BDPos * bx.BoxWidth
	pos0, pos1 := b.pos.C2P(center-half), b.pos.C2P(center+half)
	px := func(f boxstat.Field) (float64, bool) {
		v := bx.Get(f)
		if math.IsNaN(v) {
			return 0, false
		}
		return b.val.C2P(v), true
	}
	line := lineStyle(b.tr.Line)
	line.Dash = ""

	q1, hasQ1 := px(boxstat.Q1)
	q3, hasQ3 := px(boxstat.Q3)
	if hasQ1 && hasQ3 {
		fill := line
		fill.Fill = b.tr.FillColor
		b.add(Shape{
			Kind:   KindBox,
			Box:    i,
			Closed: true,
			Points: []Point{b.at(pos0, q1), b.at(pos1, q1), b.at(pos1, q3), b.at(pos0, q3)},
			Style:  fill,
		})
	}
	if med, ok := px(boxstat.Med); ok {
		if hasQ1 && hasQ3 {
			med = constrain(med, min(q1, q3)+MedianNudge, max(q1, q3)-MedianNudge)
		}
		b.segment(KindMedian, i, pos0, med, pos1, med, line)
	}

	lw, hasLW := px(boxstat.LW)
	uw, hasUW := px(boxstat.UW)
	if hasQ1 && hasLW {
		b.segment(KindWhisker, i, posc, q1, posc, lw, line)
	}
	if hasQ3 && hasUW {
		b.segment(KindWhisker, i, posc, q3, posc, uw, line)
	}
	if capHalf := l.WDPos; capHalf > 0 {
		w0, w1 := b.pos.C2P(center-capHalf), b.pos.C2P(center+capHalf)
		if hasLW {
			b.segment(KindCap, i, w0, lw, w1, lw, line)
		}
		if hasUW {
			b.segment(KindCap, i, w0, uw, w1, uw, line)
		}
	}

	// Limit lines span the whole position slot, not the trace's group.
	span0, span1 := b.pos.C2P(bx.Pos-l.DPos), b.pos.C2P(bx.Pos+l.DPos)
	b.limits(KindSpecLimit, i, span0, span1, px, lineStyle(b.tr.SpecificationLimitLine), boxstat.LSL, boxstat.USL)
	b.limits(KindBoundary, i, span0, span1, px, lineStyle(b.tr.NaturalBoundaryLine), boxstat.LNB, boxstat.UNB)

	b.mean(i, bx, posc, pos0, pos1, line)

	if b.densityVisible(bx) {
		b.density(i, bx, center, half)
	}
	b.points(i, bx, posc)
	if b.opts.IgnoreOutliers {
		b.badges(i, bx, posc, lw, hasLW, uw, hasUW)
	}
}

func (b *builder) limits(kind Kind, i int, span0, span1 float64, px func(boxstat.Field) (float64, bool), st Style, fields ...boxstat.Field) {
	for _, f := range fields {
		if v, ok := px(f); ok && !math.IsInf(v, 0) {
			b.segment(kind, i, span0, v, span1, v, st)
		}
	}
}

func (b *builder) mean(i int, bx *boxstat.Box, posc, pos0, pos1 float64, line Style) {
	avg := bx.Get(boxstat.Avg)
	if math.IsNaN(avg) {
		return
	}
	a := b.val.C2P(avg)

	if b.tr.BoxMean != trace.MeanNone {
		dashed := line
		dashed.Dash = meanLineDash
		b.segment(KindMeanLine, i, pos0, a, pos1, a, dashed)
	}
	if b.tr.BoxMean == trace.MeanSD && bx.SD > 0 && !math.IsNaN(bx.SD) {
		lo, hi := b.val.C2P(avg-bx.SD), b.val.C2P(avg+bx.SD)
		dashed := line
		dashed.Dash = meanLineDash
		b.add(Shape{
			Kind:   KindSD,
			Box:    i,
			Closed: true,
			Points: []Point{b.at(posc, lo), b.at(pos1, a), b.at(posc, hi), b.at(pos0, a)},
			Style:  dashed,
		})
	}

	m := b.tr.AvgMarker
	b.add(Shape{
		Kind:   KindMean,
		Box:    i,
		Center: b.at(posc, a),
		Symbol: m.Symbol,
		Size:   m.Size,
		Style:  markerStyle(m),
	})
}

func (b *builder) densityVisible(bx *boxstat.Box) bool {
	if bx.Density.Len() < 2 {
		return false
	}
	switch b.opts.Density {
	case trace.DensityAlways:
		return true
	case trace.DensityHover:
		return bx.Hover
	default:
		return false
	}
}

func (b *builder) points(i int, bx *boxstat.Box, posc float64) {
	if b.tr.BoxPoints == trace.PointsNone {
		return
	}
	m := b.tr.Marker
	normal := markerStyle(m)
	outlier := normal
	if color.Opacity(m.OutlierColor) > 0 {
		outlier.Fill = m.OutlierColor
	}
	outlier.Stroke = m.Line.OutlierColor
	if m.Line.OutlierWidth != nil {
		outlier.StrokeWidth = *m.Line.OutlierWidth
	}

	for _, v := range bx.Points {
		if math.IsNaN(v) {
			continue
		}
		isOut := bx.IsOutlier(v)
		if !isOut && b.tr.BoxPoints != trace.PointsAll {
			continue
		}
		s := Shape{
			Kind:   KindPoint,
			Box:    i,
			Center: b.at(posc, b.val.C2P(v)),
			Symbol: m.Symbol,
			Size:   m.Size,
			Style:  normal,
		}
		if isOut {
			s.Kind = KindOutlier
			s.Style = outlier
			s.Text = b.opts.OutliersHoverText
		}
		b.add(s)
	}
}

// badges places the outlier count beyond each whisker with hidden
// outliers, inside the pixel room the extent policy reserves.
func (b *builder) badges(i int, bx *boxstat.Box, posc, lw float64, hasLW bool, uw float64, hasUW bool) {
	if !hasLW || !hasUW {
		return
	}
	// Direction from the upper whisker towards the lower one in pixels.
	down := 1.0
	if lw < uw {
		down = -1
	}
	offset := float64(boxlayout.OutlierBadgePad) / 2
	if bx.LOC > 0 {
		b.badge(i, posc, lw+down*offset, bx.LOC)
	}
	if bx.UOC > 0 {
		b.badge(i, posc, uw-down*offset, bx.UOC)
	}
}

func (b *builder) badge(i int, posc, valPx float64, count int) {
	text := strconv.Itoa(count)
	c := b.at(posc, valPx)
	hw := (float64(len(text))*badgeCharWidth + 6) / 2
	hh := badgeHeight / 2
	b.add(Shape{
		Kind:   KindBadge,
		Box:    i,
		Closed: true,
		Points: []Point{
			{c.X - hw, c.Y - hh}, {c.X + hw, c.Y - hh},
			{c.X + hw, c.Y + hh}, {c.X - hw, c.Y + hh},
		},
		Center: c,
		Text:   text,
		Style:  Style{Fill: badgeFill, Stroke: badgeStroke, StrokeWidth: 1, TextColor: badgeTextColor},
	})
}

// constrain clamps v to [lo, hi]. When the interval is inverted the
// result lies between hi and lo.
func constrain(v, lo, hi float64) float64 {
	if lo > hi {
		return max(hi, min(lo, v))
	}
	return max(lo, min(hi, v))
}
