package boxstat

import "math"

// Field identifies one statistic of a box.
type Field int

const (
	Med Field = iota
	Avg
	Q1
	Q3
	LW
	UW
	Min
	Max
	LSL
	USL
	LNB
	UNB

	// NumFields is the number of statistic fields.
	NumFields
)

var fieldNames = [NumFields]string{
	Med: "med", Avg: "avg", Q1: "q1", Q3: "q3", LW: "lw", UW: "uw",
	Min: "min", Max: "max", LSL: "lsl", USL: "usl", LNB: "lnb", UNB: "unb",
}

// String returns the wire name of the field.
func (f Field) String() string {
	if f < 0 || f >= NumFields {
		return "unknown"
	}
	return fieldNames[f]
}

// ParseField looks up a field by its wire name.
func ParseField(s string) (Field, bool) {
	for f, name := range fieldNames {
		if name == s {
			return Field(f), true
		}
	}
	return 0, false
}

// Values holds one value per Field. NaN marks an absent statistic.
type Values [NumFields]float64

// Absent returns Values with every field absent.
func Absent() Values {
	var v Values
	for i := range v {
		v[i] = math.NaN()
	}
	return v
}

// Has reports whether field f is present.
func (v Values) Has(f Field) bool {
	return !math.IsNaN(v[f])
}

// First returns the first present value among fields, or NaN.
func (v Values) First(fields ...Field) float64 {
	for _, f := range fields {
		if v.Has(f) {
			return v[f]
		}
	}
	return math.NaN()
}
