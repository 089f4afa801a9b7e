package boxlayout

import (
	"math"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/boxstat"
)

// OutlierBadgePad is the pixel room reserved beyond the whiskers for the
// outlier count badge when outliers are excluded from the scale.
const OutlierBadgePad = 20

// ValueExtent computes the value-axis extremes of boxes. Each box
// contributes the lowest of lw, lsl, lnb and (unless outliers are ignored)
// min, and the highest of uw, usl, unb and max. Non-finite values are
// treated as absent. A failed box contributes 0, where its marker sits.
func ValueExtent(boxes []boxstat.Box, valAxis *axis.Axis, ignoreOutliers bool) axis.Extremes {
	var vals []float64
	var anyLow, anyHigh bool
	for _, b := range boxes {
		if b.NormalizationFailed {
			vals = append(vals, 0)
			continue
		}
		lowFields := []boxstat.Field{boxstat.LW, boxstat.LSL, boxstat.LNB}
		highFields := []boxstat.Field{boxstat.UW, boxstat.USL, boxstat.UNB}
		if !ignoreOutliers {
			lowFields = append(lowFields, boxstat.Min)
			highFields = append(highFields, boxstat.Max)
		}
		if lo, ok := extreme(b.Stats, lowFields, math.Min); ok {
			vals = append(vals, lo)
		}
		if hi, ok := extreme(b.Stats, highFields, math.Max); ok {
			vals = append(vals, hi)
		}
		anyLow = anyLow || b.LOC > 0
		anyHigh = anyHigh || b.UOC > 0
	}

	opts := axis.PadOptions{Padded: true}
	if ignoreOutliers && anyLow {
		opts.PPadMinus = OutlierBadgePad
	}
	if ignoreOutliers && anyHigh {
		opts.PPadPlus = OutlierBadgePad
	}
	return valAxis.FindExtremes(vals, opts)
}

func extreme(v boxstat.Values, fields []boxstat.Field, pick func(a, b float64) float64) (float64, bool) {
	out, ok := 0.0, false
	for _, f := range fields {
		x := v[f]
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		if !ok {
			out, ok = x, true
			continue
		}
		out = pick(out, x)
	}
	return out, ok
}
