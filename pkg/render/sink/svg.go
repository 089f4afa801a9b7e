package sink

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/specbox/pkg/fonts"
	"github.com/matzehuels/specbox/pkg/geometry"
)

const plotClipID = "plot-area"

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	ticks     int
	embedFont bool
	title     string
}

// WithTicks sets the approximate number of ticks per axis.
func WithTicks(n int) SVGOption { return func(r *svgRenderer) { r.ticks = n } }

// WithEmbeddedFont embeds the label font as a data URL so the output looks
// the same on machines without it.
func WithEmbeddedFont() SVGOption { return func(r *svgRenderer) { r.embedFont = true } }

// WithTitle sets the document title.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// RenderSVG renders the scene as an SVG document.
func RenderSVG(s Scene, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(int(s.Width+0.5), int(s.Height+0.5),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, num(s.Width), num(s.Height)),
		fmt.Sprintf(`font-family="%s"`, strings.ReplaceAll(fonts.FallbackFontFamily, `'`, "")),
		fmt.Sprintf(`font-size="%s"`, num(fontSize)))
	if r.title != "" {
		canvas.Title(r.title)
	}
	if r.embedFont {
		canvas.Def()
		fmt.Fprintf(canvas.Writer, "<style>@font-face { font-family: '%s'; src: url(data:font/ttf;base64,%s) format('truetype'); }</style>\n",
			fonts.FontFamily, fonts.RegularBase64())
		canvas.DefEnd()
	}

	paint(s, &svgPainter{canvas: canvas}, r.ticks)
	canvas.End()
	return buf.Bytes()
}

type svgPainter struct {
	canvas *svg.SVG
}

func (p *svgPainter) rect(r Rect, st geometry.Style) {
	p.polyline([]geometry.Point{{X: r.X0, Y: r.Y0}, {X: r.X1, Y: r.Y0}, {X: r.X1, Y: r.Y1}, {X: r.X0, Y: r.Y1}}, true, st)
}

func (p *svgPainter) polyline(pts []geometry.Point, closed bool, st geometry.Style) {
	if len(pts) < 2 {
		return
	}
	var d strings.Builder
	for i, pt := range pts {
		if i == 0 {
			d.WriteByte('M')
		} else {
			d.WriteByte('L')
		}
		d.WriteString(num(pt.X))
		d.WriteByte(',')
		d.WriteString(num(pt.Y))
	}
	if closed {
		d.WriteByte('Z')
	}
	if !closed {
		st.Fill = ""
	}
	p.canvas.Path(d.String(), svgStyle(st))
}

func (p *svgPainter) circle(c geometry.Point, r float64, st geometry.Style) {
	d := fmt.Sprintf("M%s,%sa%s,%s 0 1,0 %s,0a%s,%s 0 1,0 %s,0Z",
		num(c.X-r), num(c.Y), num(r), num(r), num(2*r), num(r), num(r), num(-2*r))
	p.canvas.Path(d, svgStyle(st))
}

func (p *svgPainter) text(x, y float64, s string, a anchor, fill string) {
	if s == "" {
		return
	}
	anchorName := [...]string{"start", "middle", "end"}[a]
	p.canvas.Text(int(x+0.5), int(y+0.5), s, fmt.Sprintf("text-anchor:%s;fill:%s", anchorName, orNone(fill)))
}

func (p *svgPainter) beginClip(r Rect) {
	p.canvas.ClipPath(`id="` + plotClipID + `"`)
	p.canvas.Rect(int(r.X0), int(r.Y0), int(r.Width()+0.5), int(r.Height()+0.5))
	p.canvas.ClipEnd()
	p.canvas.Group(`clip-path="url(#` + plotClipID + `)"`)
}

func (p *svgPainter) endClip() { p.canvas.Gend() }

func (p *svgPainter) beginGroup(class, title string) {
	p.canvas.Group(`class="` + class + `"`)
	if title != "" {
		p.canvas.Title(title)
	}
}

func (p *svgPainter) endGroup() { p.canvas.Gend() }

func svgStyle(st geometry.Style) string {
	parts := []string{"fill:" + orNone(st.Fill)}
	if st.Stroke != "" && st.StrokeWidth > 0 {
		parts = append(parts, "stroke:"+st.Stroke, "stroke-width:"+num(st.StrokeWidth))
		if dash := DashArray(st.Dash, st.StrokeWidth); dash != nil {
			strs := make([]string, len(dash))
			for i, d := range dash {
				strs[i] = num(d)
			}
			parts = append(parts, "stroke-dasharray:"+strings.Join(strs, ","))
		}
	} else {
		parts = append(parts, "stroke:none")
	}
	return strings.Join(parts, ";")
}

func orNone(c string) string {
	if c == "" {
		return "none"
	}
	return c
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
