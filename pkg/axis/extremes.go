package axis

import "math"

// padFraction is the share of the axis length added on each side of padded
// extremes.
const padFraction = 0.05

// PadOptions controls how FindExtremes pads values.
type PadOptions struct {
	// VPadMinus and VPadPlus pad in calc units below and above each value.
	VPadMinus, VPadPlus float64
	// PPadMinus and PPadPlus pad in pixels below and above each value.
	PPadMinus, PPadPlus float64
	// Padded adds padFraction of the axis length on both sides.
	Padded bool
}

// Point is one extreme in linear space with its pixel pad.
type Point struct {
	Val float64
	Pad float64
}

// Extremes is a set of candidate range endpoints.
type Extremes struct {
	Min []Point
	Max []Point
}

// Empty reports whether e holds no points.
func (e Extremes) Empty() bool {
	return len(e.Min) == 0 && len(e.Max) == 0
}

// FindExtremes computes candidate endpoints for vals. Non-finite values are
// skipped.
func (a *Axis) FindExtremes(vals []float64, opts PadOptions) Extremes {
	var ppadMinus, ppadPlus = opts.PPadMinus, opts.PPadPlus
	if opts.Padded {
		ppadMinus += padFraction * a.Length
		ppadPlus += padFraction * a.Length
	}

	var e Extremes
	for _, v := range vals {
		if !isFinite(v) {
			continue
		}
		lo := a.C2L(v - opts.VPadMinus)
		hi := a.C2L(v + opts.VPadPlus)
		if isFinite(lo) {
			e.Min = addPoint(e.Min, Point{Val: lo, Pad: ppadMinus}, lessOrEqual)
		}
		if isFinite(hi) {
			e.Max = addPoint(e.Max, Point{Val: hi, Pad: ppadPlus}, greaterOrEqual)
		}
	}
	return e
}

// Expand records e as extremes the axis range must cover.
func (a *Axis) Expand(e Extremes) {
	for _, p := range e.Min {
		a.mins = addPoint(a.mins, p, lessOrEqual)
	}
	for _, p := range e.Max {
		a.maxs = addPoint(a.maxs, p, greaterOrEqual)
	}
}

// Extremes returns the collected extremes.
func (a *Axis) Extremes() Extremes {
	return Extremes{Min: a.mins, Max: a.maxs}
}

// ResetExtremes drops every collected extreme and tick hint.
func (a *Axis) ResetExtremes() {
	a.mins, a.maxs = nil, nil
	a.minDtick, a.forceTick0, a.minDtickSet = 0, 0, false
}

// ComputeRange fixes Range from the collected extremes when AutoRange is
// set.
// The range is the narrowest one in which every point, with its pixel pad,
// stays inside the axis length.
func (a *Axis) ComputeRange() {
	if !a.AutoRange {
		return
	}
	if len(a.mins) == 0 || len(a.maxs) == 0 {
		a.Range = DefaultRange
		if a.Type == Log {
			a.Range = [2]float64{0, 1}
		}
		return
	}

	minmin, maxmax := math.Inf(1), math.Inf(-1)
	for _, p := range a.mins {
		minmin = min(minmin, p.Val)
	}
	for _, p := range a.maxs {
		maxmax = max(maxmax, p.Val)
	}
	if minmin >= maxmax {
		a.Range = [2]float64{minmin - 1, minmin + 1}
		return
	}

	best := 0.0
	lo, hi := Point{Val: minmin}, Point{Val: maxmax}
	for _, pmin := range a.mins {
		for _, pmax := range a.maxs {
			dv := pmax.Val - pmin.Val
			dp := a.Length - pmin.Pad - pmax.Pad
			if dv > 0 && dp > 0 && dv/dp > best {
				best = dv / dp
				lo, hi = pmin, pmax
			}
		}
	}
	if best == 0 {
		a.Range = [2]float64{minmin, maxmax}
		return
	}
	a.Range = [2]float64{lo.Val - best*lo.Pad, hi.Val + best*hi.Pad}
}

func lessOrEqual(a, b float64) bool    { return a <= b }
func greaterOrEqual(a, b float64) bool { return a >= b }

// addPoint inserts p unless an existing point dominates it (more extreme
// value and at least as much pad), removing points p dominates.
func addPoint(points []Point, p Point, moreExtreme func(a, b float64) bool) []Point {
	out := points[:0:0]
	for _, q := range points {
		if moreExtreme(q.Val, p.Val) && q.Pad >= p.Pad {
			return points
		}
		if !(moreExtreme(p.Val, q.Val) && p.Pad >= q.Pad) {
			out = append(out, q)
		}
	}
	return append(out, p)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
