package boxlayout

import (
	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/trace"
)

// PassOption configures a Pass.
type PassOption func(*Pass)

// WithSelection marks box i of trace index as hovered.
func WithSelection(index, box int) PassOption {
	return func(p *Pass) {
		p.selection = append(p.selection, [2]int{index, box})
	}
}

// Pass is one recalculation of a figure. It is not safe for concurrent use;
// the Calcs it produces are read-only once Finalize returns.
type Pass struct {
	layout    *trace.Layout
	axes      axis.Set
	calcs     []*Calc
	boxCount  int
	selection [][2]int
	finalized bool
}

// NewPass starts a pass over axes with the figure-wide attributes of
// layout. Axis extremes collected by earlier passes are dropped.
func NewPass(layout *trace.Layout, axes axis.Set, opts ...PassOption) *Pass {
	for _, a := range axes {
		a.ResetExtremes()
	}
	p := &Pass{layout: layout, axes: axes}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pass) selected(index, box int) bool {
	for _, s := range p.selection {
		if s == [2]int{index, box} {
			return true
		}
	}
	return false
}

// Calc runs the single-trace phase for tr, the trace at index in the
// figure. tr must have had defaults applied. Invisible traces yield a Calc
// without boxes and do not consume a box ordinal.
func (p *Pass) Calc(index int, tr *trace.Trace) *Calc {
	c := p.calc(index, tr)
	p.calcs = append(p.calcs, c)
	return c
}

// Calcs returns every Calc of the pass in trace order.
func (p *Pass) Calcs() []*Calc {
	return p.calcs
}

// Layout returns the figure-wide attributes the pass runs with.
func (p *Pass) Layout() *trace.Layout {
	return p.layout
}

// Axes returns the axes of the pass.
func (p *Pass) Axes() axis.Set {
	return p.axes
}

type groupKey struct {
	xaxis, yaxis string
	orientation  trace.Orientation
}

// Groups returns visible calcs grouped by axis pair and orientation, in
// order of first appearance.
func (p *Pass) Groups() [][]*Calc {
	var keys []groupKey
	groups := map[groupKey][]*Calc{}
	for _, c := range p.calcs {
		if !c.Visible() {
			continue
		}
		k := groupKey{c.Trace.XAxis, c.Trace.YAxis, c.Trace.Orientation}
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], c)
	}
	out := make([][]*Calc, len(keys))
	for i, k := range keys {
		out[i] = groups[k]
	}
	return out
}

// CrossTrace reconciles every group.
func (p *Pass) CrossTrace() {
	for _, g := range p.Groups() {
		Reconcile(g, g[0].PosAxis, g[0].ValAxis, p.layout)
	}
}

// Finalize fixes axis ranges and derives box offsets and widths. It must
// run after CrossTrace and before any geometry is built.
func (p *Pass) Finalize() {
	p.axes.ComputeRanges()
	for _, c := range p.calcs {
		if c.Visible() {
			SetPositions(c, p.layout)
		}
	}
	p.finalized = true
}

// Finalized reports whether Finalize has run.
func (p *Pass) Finalized() bool {
	return p.finalized
}

// Run executes a full pass over traces and returns one Calc per trace.
func Run(layout *trace.Layout, axes axis.Set, traces []*trace.Trace, opts ...PassOption) *Pass {
	p := NewPass(layout, axes, opts...)
	for i, tr := range traces {
		p.Calc(i, tr)
	}
	p.CrossTrace()
	p.Finalize()
	return p
}
