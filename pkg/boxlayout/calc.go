package boxlayout

import (
	"math"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/trace"
)

// TraceLayout is the layout state of one trace. The single-trace phase sets
// BoxNum, DPos and Extent; the cross-trace phase overwrites DPos and fills
// the group fields; SetPositions derives BPos, BDPos and WDPos.
type TraceLayout struct {
	// BoxNum is the ordinal of the trace among box traces in the pass.
	BoxNum int
	// Orientation resolves which axis carries positions.
	Orientation trace.Orientation
	// PosLetter and ValLetter are the letters of the position and value
	// axes.
	PosLetter, ValLetter byte

	// DPos is half the minimum spacing between distinct positions. It is
	// NaN for a trace with fewer than two distinct positions until the
	// cross-trace phase.
	DPos float64
	// BPos offsets the trace within a shared position slot.
	BPos float64
	// BDPos is the half-width of a box of width 1.
	BDPos float64
	// WDPos is the half-width of a whisker cap of a box of width 1.
	WDPos float64

	// NumBoxes is the number of traces sharing each slot, 1 when boxes
	// never share a position.
	NumBoxes int
	// GroupRank is the trace's index within its cross-trace group.
	GroupRank int
	// Grouped is set when traces are offset side by side.
	Grouped bool

	// Extent is what the value axis must cover for this trace.
	Extent axis.Extremes
	// PosExtent is the shared position-axis extent of the group.
	PosExtent axis.Extremes
}

// Calc is the result of the single-trace phase for one trace.
type Calc struct {
	// Index is the trace's index in the figure.
	Index int
	// Trace is the configuration after defaults and transforms.
	Trace *trace.Trace
	// Boxes are the positioned boxes.
	Boxes []boxstat.Box
	// Layout is the trace layout.
	Layout TraceLayout

	PosAxis *axis.Axis
	ValAxis *axis.Axis
}

// Visible reports whether the trace has anything to lay out.
func (c *Calc) Visible() bool {
	return c.Trace.IsVisible() && len(c.Boxes) > 0
}

// Center returns the position-axis coordinate of box i's center.
func (c *Calc) Center(i int) float64 {
	return c.Boxes[i].Pos + c.Layout.BPos
}

func (p *Pass) calc(index int, tr *trace.Trace) *Calc {
	c := &Calc{Index: index, Trace: tr, Layout: TraceLayout{DPos: math.NaN()}}
	if !tr.IsVisible() {
		return c
	}

	o := tr.Orientation
	xa, ya := p.axes.Get(tr.XAxis), p.axes.Get(tr.YAxis)
	c.PosAxis, c.ValAxis = xa, ya
	if o == trace.Horizontal {
		c.PosAxis, c.ValAxis = ya, xa
	}

	boxnum := p.boxCount
	p.boxCount++

	raws := tr.Stats()
	positions := ResolvePositions(tr, c.PosAxis, boxnum)

	counts := make([]float64, 0, len(raws))
	for i, raw := range raws {
		if math.IsNaN(positions[i]) {
			continue
		}
		var b boxstat.Box
		if tr.Normalize {
			b = boxstat.Normalize(raw)
		} else {
			b = boxstat.Passthrough(raw)
		}
		b.Pos = positions[i]
		out := boxstat.ClassifyOutliers(b.Points, b.Get(boxstat.LW), b.Get(boxstat.UW))
		b.LOC, b.UOC = out.LOC, out.UOC
		b.Hover = p.selected(index, i)
		c.Boxes = append(c.Boxes, b)
		counts = append(counts, b.Count)
	}
	for i, w := range boxstat.Widths(counts) {
		c.Boxes[i].BoxWidth = w
	}

	c.Layout = TraceLayout{
		BoxNum:      boxnum,
		Orientation: o,
		PosLetter:   o.PosLetter(),
		ValLetter:   o.ValLetter(),
		DPos:        traceDPos(c.Boxes),
		NumBoxes:    1,
		Extent:      ValueExtent(c.Boxes, c.ValAxis, p.layout.IgnoresOutliers()),
	}
	return c
}

func traceDPos(boxes []boxstat.Box) float64 {
	pos := make([]float64, len(boxes))
	for i, b := range boxes {
		pos[i] = b.Pos
	}
	d := axis.DistinctVals(pos)
	if len(d.Vals) < 2 {
		return math.NaN()
	}
	return d.MinDiff / 2
}
