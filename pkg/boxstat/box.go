package boxstat

import "math"

// Box is the computed form of one box for a single calculation pass.
// A Box is built once and not modified afterwards; a new pass builds new
// boxes.
type Box struct {
	Stats   Values
	Points  []float64
	Count   float64
	Density *Density

	// NormalizationFailed is set when normalization was requested but no
	// window could be resolved on one side.
	NormalizationFailed bool

	// Orig is the pre-normalization snapshot. It is nil for boxes that
	// were passed through without normalization.
	Orig *Raw

	// Pos is the position-axis coordinate.
	Pos float64
	// BoxWidth is the width relative to the widest box of the trace.
	BoxWidth float64
	// LOC and UOC count points below LW and above UW.
	LOC, UOC int
	// Hover marks the box as selected in the UI.
	Hover bool
	// SD is the sample standard deviation of the raw points, NaN when
	// unknown.
	SD float64
}

// Get returns the computed value of f.
func (b *Box) Get(f Field) float64 {
	return b.Stats[f]
}

// Display returns the value to show in labels for field f: the original
// value when the box was normalized, otherwise the computed one.
func (b *Box) Display(f Field) float64 {
	if b.Orig != nil && !b.NormalizationFailed {
		return b.Orig.Values()[f]
	}
	return b.Stats[f]
}

// Normalized reports whether the stored statistics are on the [-1, 1]
// scale.
func (b *Box) Normalized() bool {
	return b.Orig != nil && !b.NormalizationFailed
}

// IsOutlier reports whether v lies outside the whiskers.
func (b *Box) IsOutlier(v float64) bool {
	return (b.Stats.Has(LW) && v < b.Stats[LW]) || (b.Stats.Has(UW) && v > b.Stats[UW])
}

// MaxDensity returns the largest finite density value, or 0.
func (b *Box) MaxDensity() float64 {
	if b.Density == nil {
		return 0
	}
	var m float64
	for _, d := range b.Density.Density {
		if !math.IsInf(d, 0) && !math.IsNaN(d) && d > m {
			m = d
		}
	}
	return m
}
