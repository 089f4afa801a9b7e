package boxlayout

import (
	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/trace"
)

// Reconcile shares spacing and extents across group, the visible box
// traces on one axis pair and orientation. Positions of all members are
// pooled; when no two boxes share a position the group is laid out as a
// single trace, otherwise each member gets its own slot in group mode.
// The position axis gets a tick hint and an extent padded by the shared
// DPos; the value axis gets each member's extent.
func Reconcile(group []*Calc, posAxis, valAxis *axis.Axis, cfg *trace.Layout) {
	var pooled []float64
	var members []*Calc
	for _, c := range group {
		if !c.Visible() {
			continue
		}
		members = append(members, c)
		for _, b := range c.Boxes {
			pooled = append(pooled, b.Pos)
		}
	}
	if len(pooled) == 0 {
		return
	}

	d := axis.DistinctVals(pooled)
	dPos := d.MinDiff / 2

	numBoxes := len(members)
	if len(d.Vals) == len(pooled) {
		numBoxes = 1
	}
	grouped := cfg.BoxMode == trace.BoxModeGroup && numBoxes > 1

	posAxis.MinDtick(d.MinDiff, d.Vals[0])
	posExtent := posAxis.FindExtremes(d.Vals, axis.PadOptions{VPadMinus: dPos, VPadPlus: dPos})
	posAxis.Expand(posExtent)

	for rank, c := range members {
		c.Layout.DPos = dPos
		c.Layout.NumBoxes = numBoxes
		c.Layout.GroupRank = rank
		c.Layout.Grouped = grouped
		c.Layout.PosExtent = posExtent
		valAxis.Expand(c.Layout.Extent)
	}
}

// SetPositions derives the box half-width, the group offset and the
// whisker cap half-width of c once its DPos is final.
func SetPositions(c *Calc, cfg *trace.Layout) {
	l := &c.Layout
	gap, groupGap := cfg.Gap(), cfg.GroupGap()

	n := 1.0
	if l.Grouped {
		n = float64(l.NumBoxes)
	}
	l.BDPos = l.DPos * (1 - gap) * (1 - groupGap) / n
	l.BPos = 0
	if l.Grouped {
		l.BPos = 2 * l.DPos * (-0.5 + (float64(l.GroupRank)+0.5)/n) * (1 - gap)
	}
	l.WDPos = l.BDPos * c.Trace.Whisker()
}
