package boxstat

import (
	"math"
	"slices"
)

// Raw is one box as supplied by the caller. It is never mutated by this
// package.
type Raw struct {
	Q1  *float64 `json:"q1,omitempty"`
	Q3  *float64 `json:"q3,omitempty"`
	Med *float64 `json:"med,omitempty"`
	Avg *float64 `json:"avg,omitempty"`
	LW  *float64 `json:"lw,omitempty"`
	UW  *float64 `json:"uw,omitempty"`
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
	LSL *float64 `json:"lsl,omitempty"`
	USL *float64 `json:"usl,omitempty"`
	LNB *float64 `json:"lnb,omitempty"`
	UNB *float64 `json:"unb,omitempty"`

	Points             []float64 `json:"points,omitempty"`
	Count              float64   `json:"count,omitempty"`
	ProbabilityDensity *Density  `json:"probabilityDensity,omitempty"`
}

// Density is a probability density curve: Density[i] is the density at
// value Scale[i].
type Density struct {
	Density []float64 `json:"density"`
	Scale   []float64 `json:"scale"`
}

// Len returns the number of usable pairs.
func (d *Density) Len() int {
	if d == nil {
		return 0
	}
	return min(len(d.Density), len(d.Scale))
}

// Truncated returns a copy holding only the paired prefix of both arrays.
func (d *Density) Truncated() *Density {
	n := d.Len()
	if n == 0 {
		return nil
	}
	return &Density{
		Density: slices.Clone(d.Density[:n]),
		Scale:   slices.Clone(d.Scale[:n]),
	}
}

// F returns a pointer to v, for building Raw literals.
func F(v float64) *float64 { return &v }

func (r *Raw) fields() [NumFields]**float64 {
	return [NumFields]**float64{
		Med: &r.Med, Avg: &r.Avg, Q1: &r.Q1, Q3: &r.Q3, LW: &r.LW, UW: &r.UW,
		Min: &r.Min, Max: &r.Max, LSL: &r.LSL, USL: &r.USL, LNB: &r.LNB, UNB: &r.UNB,
	}
}

// Values returns the statistic fields with absent ones as NaN.
func (r Raw) Values() Values {
	v := Absent()
	for f, p := range r.fields() {
		if *p != nil {
			v[f] = **p
		}
	}
	return v
}

// Set stores value into field f. NaN clears the field.
func (r *Raw) Set(f Field, value float64) {
	p := r.fields()[f]
	if math.IsNaN(value) {
		*p = nil
		return
	}
	*p = F(value)
}

// Clone returns a deep copy of r.
func (r Raw) Clone() Raw {
	out := Raw{
		Points: slices.Clone(r.Points),
		Count:  r.Count,
	}
	for f, v := range r.Values() {
		out.Set(Field(f), v)
	}
	if r.ProbabilityDensity != nil {
		out.ProbabilityDensity = &Density{
			Density: slices.Clone(r.ProbabilityDensity.Density),
			Scale:   slices.Clone(r.ProbabilityDensity.Scale),
		}
	}
	return out
}

// Shift returns a copy of r with delta added to every statistic, point and
// density scale value.
func (r Raw) Shift(delta float64) Raw {
	out := r.Clone()
	if delta == 0 {
		return out
	}
	for f, v := range out.Values() {
		if !math.IsNaN(v) {
			out.Set(Field(f), v+delta)
		}
	}
	for i := range out.Points {
		out.Points[i] += delta
	}
	if out.ProbabilityDensity != nil {
		for i := range out.ProbabilityDensity.Scale {
			out.ProbabilityDensity.Scale[i] += delta
		}
	}
	return out
}
