package axis

import "math"

// Tick is one axis tick.
type Tick struct {
	Value float64 // calc coordinate
	Pixel float64
	Label string
}

// MinDtick records that ticks on this axis should be no closer than diff
// and aligned to first. Conflicting requests that are not multiples of
// each other disable the hint.
func (a *Axis) MinDtick(diff, first float64) {
	switch {
	case !a.minDtickSet:
		a.minDtick, a.forceTick0, a.minDtickSet = diff, first, true
	case a.minDtick == 0:
	case nearInteger(a.minDtick/diff) && nearInteger((first-a.forceTick0)/diff):
		a.minDtick, a.forceTick0 = diff, first
	case !nearInteger(diff/a.minDtick) || !nearInteger((first-a.forceTick0)/a.minDtick):
		a.minDtick = 0
	}
}

// TickHint returns the minimum tick spacing and alignment requested through
// MinDtick. ok is false when none is in force.
func (a *Axis) TickHint() (dtick, tick0 float64, ok bool) {
	if !a.minDtickSet || a.minDtick <= 0 {
		return 0, 0, false
	}
	return a.minDtick, a.forceTick0, true
}

func nearInteger(x float64) bool {
	return math.Mod(math.Mod(x, 1)+1.000001, 1) < 2e-6
}

// Ticks returns about n ticks covering the current range.
func (a *Axis) Ticks(n int) []Tick {
	n = max(n, 2)
	lo, hi := min(a.Range[0], a.Range[1]), max(a.Range[0], a.Range[1])

	var values []float64
	switch a.Type {
	case Category:
		for i := range a.categories {
			if v := float64(i); v >= lo && v <= hi {
				values = append(values, v)
			}
		}
	case Log:
		for e := math.Ceil(lo); e <= hi; e++ {
			values = append(values, math.Pow(10, e))
		}
	default:
		step := niceStep((hi - lo) / float64(n))
		start := math.Ceil(lo/step) * step
		if dtick, tick0, ok := a.TickHint(); ok && dtick >= step {
			step = dtick
			start = tick0 + math.Ceil((lo-tick0)/step)*step
		}
		for v := start; v <= hi+step*1e-9; v += step {
			values = append(values, v)
		}
	}

	ticks := make([]Tick, len(values))
	for i, v := range values {
		ticks[i] = Tick{Value: v, Pixel: a.C2P(v), Label: a.FormatValue(cleanZero(v))}
	}
	return ticks
}

func niceStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 1
	}
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	switch r := raw / mag; {
	case r <= 1:
		return mag
	case r <= 2:
		return 2 * mag
	case r <= 5:
		return 5 * mag
	default:
		return 10 * mag
	}
}

func cleanZero(v float64) float64 {
	if math.Abs(v) < 1e-12 {
		return 0
	}
	return v
}
