package pipeline

import (
	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/boxlayout"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/render/sink"
)

// Plot is a figure after a finalized pass: every trace calculated and
// reconciled, every axis range fixed, every shape built.
type Plot struct {
	Figure *figure.Figure
	Axes   axis.Set
	Pass   *boxlayout.Pass
	Sets   []geometry.ShapeSet
}

// Compute prepares fig and runs one pass over its traces. fig is modified
// in place by [figure.Figure.Prepare]; frame overrides in opts are applied
// first.
func Compute(fig *figure.Figure, opts Options) (*Plot, error) {
	if fig == nil {
		return nil, errInvalidFigure()
	}
	applyFrame(fig, opts)
	if err := fig.Prepare(); err != nil {
		return nil, err
	}

	axes := fig.BuildAxes()
	var passOpts []boxlayout.PassOption
	if s := opts.Selection; s != nil {
		passOpts = append(passOpts, boxlayout.WithSelection(s.Trace, s.Box))
	}
	pass := boxlayout.Run(&fig.Layout.Layout, axes, fig.Data, passOpts...)

	return &Plot{
		Figure: fig,
		Axes:   axes,
		Pass:   pass,
		Sets:   geometry.BuildAll(pass),
	}, nil
}

// Boxes returns the number of boxes across visible traces.
func (p *Plot) Boxes() int {
	n := 0
	for _, c := range p.Pass.Calcs() {
		if c.Visible() {
			n += len(c.Boxes)
		}
	}
	return n
}

// Scene returns what the sinks draw. labels is an optional hover overlay.
func (p *Plot) Scene(labels *hover.LabelSet) sink.Scene {
	x0, y0, x1, y1 := p.Figure.Layout.PlotArea()
	ids := p.Axes.IDs()
	axes := make([]*axis.Axis, len(ids))
	for i, id := range ids {
		axes[i] = p.Axes[id]
	}
	return sink.Scene{
		Width:      p.Figure.Layout.Width,
		Height:     p.Figure.Layout.Height,
		Plot:       sink.Rect{X0: x0, Y0: y0, X1: x1, Y1: y1},
		Axes:       axes,
		Sets:       p.Sets,
		Hover:      labels,
		Background: p.Figure.Layout.PaperBGColor,
	}
}

// Hover picks the box nearest to the cursor. An empty mode uses the
// layout's hovermode.
func (p *Plot) Hover(opts HoverOptions) *hover.LabelSet {
	mode := opts.Mode
	if mode == "" {
		mode = p.Figure.Layout.HoverMode
	}
	return hover.Pick(geometry.Point{X: opts.X, Y: opts.Y}, p.Pass.Calcs(), mode, &p.Figure.Layout.Layout)
}

func applyFrame(fig *figure.Figure, opts Options) {
	if opts.Width > 0 {
		fig.Layout.Width = opts.Width
	}
	if opts.Height > 0 {
		fig.Layout.Height = opts.Height
	}
}
