package sink

import (
	"bytes"

	"github.com/fogleman/gg"

	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/fonts"
	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/render/color"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
	ticks int
}

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// WithPNGTicks sets the approximate number of ticks per axis.
func WithPNGTicks(n int) PNGOption {
	return func(r *pngRenderer) { r.ticks = n }
}

// RenderPNG rasterizes the scene.
func RenderPNG(s Scene, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 2.0}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png scale must be positive, got %v", r.scale)
	}
	w, h := int(s.Width*r.scale+0.5), int(s.Height*r.scale+0.5)
	if w <= 0 || h <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "png size %dx%d is empty", w, h)
	}

	// A fresh face per render: faces are not safe for concurrent drawing.
	face, err := fonts.NewFace(fontSize)
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)
	dc.SetFontFace(face)

	paint(s, &pngPainter{dc: dc}, r.ticks)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

type pngPainter struct {
	dc *gg.Context
}

func (p *pngPainter) rect(r Rect, st geometry.Style) {
	p.dc.DrawRectangle(r.X0, r.Y0, r.Width(), r.Height())
	p.fillStroke(st, true)
}

func (p *pngPainter) polyline(pts []geometry.Point, closed bool, st geometry.Style) {
	if len(pts) < 2 {
		return
	}
	p.dc.NewSubPath()
	p.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		p.dc.LineTo(pt.X, pt.Y)
	}
	if closed {
		p.dc.ClosePath()
	}
	p.fillStroke(st, closed)
}

func (p *pngPainter) circle(c geometry.Point, r float64, st geometry.Style) {
	p.dc.DrawCircle(c.X, c.Y, r)
	p.fillStroke(st, true)
}

// fillStroke paints the current path and clears it.
func (p *pngPainter) fillStroke(st geometry.Style, fill bool) {
	if fill && st.Fill != "" && p.setColor(st.Fill) {
		if st.Stroke != "" && st.StrokeWidth > 0 {
			p.dc.FillPreserve()
		} else {
			p.dc.Fill()
			return
		}
	}
	if st.Stroke != "" && st.StrokeWidth > 0 && p.setColor(st.Stroke) {
		p.dc.SetLineWidth(st.StrokeWidth)
		p.dc.SetDash(DashArray(st.Dash, st.StrokeWidth)...)
		p.dc.Stroke()
		p.dc.SetDash()
		return
	}
	p.dc.ClearPath()
}

func (p *pngPainter) setColor(s string) bool {
	c, err := color.Parse(s)
	if err != nil || c.A == 0 {
		return false
	}
	p.dc.SetColor(c.NRGBA())
	return true
}

func (p *pngPainter) text(x, y float64, s string, a anchor, fill string) {
	if s == "" || !p.setColor(orDefault(fill, axisColor)) {
		return
	}
	ax := [...]float64{0, 0.5, 1}[a]
	p.dc.DrawStringAnchored(s, x, y, ax, 0)
}

func (p *pngPainter) beginClip(r Rect) {
	p.dc.Push()
	p.dc.DrawRectangle(r.X0, r.Y0, r.Width(), r.Height())
	p.dc.Clip()
}

func (p *pngPainter) endClip() {
	p.dc.ResetClip()
	p.dc.Pop()
}

func (p *pngPainter) beginGroup(string, string) {}
func (p *pngPainter) endGroup()                 {}

func orDefault(s, dflt string) string {
	if s == "" {
		return dflt
	}
	return s
}
