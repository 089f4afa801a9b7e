package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"

	"github.com/matzehuels/specbox/pkg/boxstat"
)

// smoothSamples is the number of points sampled per curve segment.
const smoothSamples = 8

// density emits the two mirrored lobes of box i. Each lobe point sits at
// the box center offset by the density scaled to the box half-width, minus
// the configured margin. NaN entries split a lobe into separate runs.
func (b *builder) density(i int, bx *boxstat.Box, center, half float64) {
	maxD := bx.MaxDensity()
	if maxD <= 0 {
		return
	}
	scale := half * (1 - b.opts.DensityMargin) / maxD
	st := lineStyle(b.tr.ProbabilityDensityLine)

	for _, side := range []float64{-1, 1} {
		var run orb.LineString
		flush := func() {
			if pts := Lobe(run, b.opts.Tolerance); len(pts) > 1 {
				b.add(Shape{Kind: KindDensity, Box: i, Points: pts, Style: st})
			}
			run = nil
		}
		for k, d := range bx.Density.Density {
			v := bx.Density.Scale[k]
			if math.IsNaN(d) || math.IsNaN(v) || math.IsInf(d, 0) {
				flush()
				continue
			}
			p := b.at(b.pos.C2P(center+side*d*scale), b.val.C2P(v))
			run = append(run, orb.Point{p.X, p.Y})
		}
		flush()
	}
}

// Lobe simplifies a pixel polyline with Douglas-Peucker at tolerance and
// smooths what is left with a Catmull-Rom spline through the kept
// vertices.
func Lobe(ls orb.LineString, tolerance float64) []Point {
	if len(ls) < 2 {
		return nil
	}
	if len(ls) > 2 && tolerance > 0 {
		if s, ok := simplify.DouglasPeucker(tolerance).Simplify(ls.Clone()).(orb.LineString); ok && len(s) >= 2 {
			ls = s
		}
	}
	pts := make([]Point, len(ls))
	for i, p := range ls {
		pts[i] = Point{p.X(), p.Y()}
	}
	return CatmullRom(pts, smoothSamples)
}

// CatmullRom samples a uniform Catmull-Rom spline through pts with n
// points per segment. The curve passes through every input point; end
// segments reuse the endpoint as the missing neighbour.
func CatmullRom(pts []Point, n int) []Point {
	if len(pts) < 3 || n < 2 {
		return append([]Point(nil), pts...)
	}
	out := make([]Point, 0, (len(pts)-1)*n+1)
	last := len(pts) - 1
	for i := range last {
		p0 := pts[max(i-1, 0)]
		p1, p2 := pts[i], pts[i+1]
		p3 := pts[min(i+2, last)]
		for s := range n {
			t := float64(s) / float64(n)
			out = append(out, Point{
				X: catmull(p0.X, p1.X, p2.X, p3.X, t),
				Y: catmull(p0.Y, p1.Y, p2.Y, p3.Y, t),
			})
		}
	}
	return append(out, pts[last])
}

func catmull(p0, p1, p2, p3, t float64) float64 {
	t2, t3 := t*t, t*t*t
	return 0.5 * (2*p1 + (p2-p0)*t + (2*p0-5*p1+4*p2-p3)*t2 + (3*p1-p0-3*p2+p3)*t3)
}
