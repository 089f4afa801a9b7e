package boxstat

import (
	"math"
	"slices"
)

// Window is a resolved normalization window.
type Window struct {
	Lo, Hi, Target float64
}

// ResolveWindow returns the normalization window of v. ok is false when
// neither LSL nor LNB, or neither USL nor UNB, is present.
func ResolveWindow(v Values) (w Window, ok bool) {
	lo := v.First(LSL, LNB)
	hi := v.First(USL, UNB)
	if math.IsNaN(lo) || math.IsNaN(hi) {
		return Window{}, false
	}
	return Window{Lo: lo, Hi: hi, Target: (lo + hi) / 2}, true
}

// Apply maps v onto the window's [-1, 1] scale. NaN stays NaN. A degenerate
// window yields non-finite results.
func (w Window) Apply(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return v
	case v >= w.Target:
		return (v - w.Target) / (w.Hi - w.Target)
	default:
		return (v - w.Target) / (w.Target - w.Lo)
	}
}

// Invert maps a normalized value back to data space.
func (w Window) Invert(n float64) float64 {
	if n >= 0 {
		return w.Target + n*(w.Hi-w.Target)
	}
	return w.Target + n*(w.Target-w.Lo)
}

// Normalize returns the normalized form of raw. The density magnitudes are
// copied unchanged; only their scale is remapped.
func Normalize(raw Raw) Box {
	orig := raw.Clone()
	box := Box{
		Count: raw.Count,
		Orig:  &orig,
		SD:    sampleSD(raw.Points),
	}

	w, ok := ResolveWindow(raw.Values())
	if !ok {
		box.Stats = Absent()
		box.NormalizationFailed = true
		box.SD = math.NaN()
		return box
	}

	for f, v := range raw.Values() {
		box.Stats[f] = w.Apply(v)
	}
	if len(raw.Points) > 0 {
		box.Points = make([]float64, len(raw.Points))
		for i, p := range raw.Points {
			box.Points[i] = w.Apply(p)
		}
	}
	if d := raw.ProbabilityDensity.Truncated(); d != nil {
		for i, s := range d.Scale {
			d.Scale[i] = w.Apply(s)
		}
		box.Density = d
	}
	// Target is the window midpoint, so Apply has one slope on both sides.
	if !math.IsNaN(box.SD) {
		box.SD = w.Apply(w.Target+box.SD) - w.Apply(w.Target)
	}
	return box
}

// Passthrough returns raw as a Box without normalization.
func Passthrough(raw Raw) Box {
	return Box{
		Stats:   raw.Values(),
		Points:  slices.Clone(raw.Points),
		Count:   raw.Count,
		Density: raw.ProbabilityDensity.Truncated(),
		SD:      sampleSD(raw.Points),
	}
}
