package boxlayout

import (
	"math"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/trace"
)

// ResolvePositions returns one position-axis coordinate per box of tr. In
// priority order it uses the trace's position column, its anchor (x0 or
// y0), its name when the name is compatible with the axis type, and
// finally ordinal. Entries that cannot be converted are NaN.
func ResolvePositions(tr *trace.Trace, posAxis *axis.Axis, ordinal int) []float64 {
	n := len(tr.Stats())
	values, anchor := tr.Positions()

	if len(values) > 0 {
		out := posAxis.MakeCalcData(values)
		for len(out) < n {
			out = append(out, math.NaN())
		}
		return out[:n]
	}

	c := float64(ordinal)
	if a := anchorCoord(posAxis, anchor); !math.IsNaN(a) {
		c = a
	} else if v, ok := posAxis.CoerceName(tr.Name); ok {
		c = v
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func anchorCoord(posAxis *axis.Axis, anchor any) float64 {
	if anchor == nil {
		return math.NaN()
	}
	return posAxis.D2C(anchor)
}
