// Package color parses and manipulates the CSS-style color strings used in
// figure documents.
package color

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/specbox/pkg/errors"
)

// RGBA is a color with straight alpha.
type RGBA struct {
	colorful.Color
	A float64
}

var named = map[string]string{
	"black":       "#000000",
	"white":       "#ffffff",
	"red":         "#ff0000",
	"green":       "#008000",
	"blue":        "#0000ff",
	"gray":        "#808080",
	"grey":        "#808080",
	"orange":      "#ffa500",
	"purple":      "#800080",
	"transparent": "rgba(0, 0, 0, 0)",
}

// Parse parses "#rgb", "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)" and a
// few color names.
func Parse(s string) (RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if alias, ok := named[s]; ok {
		s = alias
	}
	switch {
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
		}
		return RGBA{Color: c, A: 1}, nil
	case strings.HasPrefix(s, "rgba(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgba("):len(s)-1], 4)
	case strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")"):
		return parseFunc(s[len("rgb("):len(s)-1], 3)
	}
	return RGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", s)
}

func parseFunc(body string, n int) (RGBA, error) {
	parts := strings.Split(body, ",")
	if len(parts) != n {
		return RGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color component count in %q", body)
	}
	var v [4]float64
	v[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return RGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color component %q", p)
		}
		v[i] = f
	}
	return RGBA{
		Color: colorful.Color{R: clamp01(v[0] / 255), G: clamp01(v[1] / 255), B: clamp01(v[2] / 255)},
		A:     clamp01(v[3]),
	}, nil
}

// String formats c as a hex color when opaque, otherwise as rgba().
func (c RGBA) String() string {
	if c.A >= 1 {
		return c.Hex()
	}
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// NRGBA converts c for image drawing.
func (c RGBA) NRGBA() color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(c.A) * 255))}
}

// Opaque reports whether c has full alpha.
func (c RGBA) Opaque() bool {
	return c.A >= 1
}

// AddOpacity returns s with its alpha replaced by alpha. Unparseable colors
// are returned unchanged.
func AddOpacity(s string, alpha float64) string {
	c, err := Parse(s)
	if err != nil {
		return s
	}
	c.A = clamp01(alpha)
	r, g, b := c.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(c.A, 'f', -1, 64))
}

// Opacity returns the alpha of s, 0 when s does not parse.
func Opacity(s string) float64 {
	c, err := Parse(s)
	if err != nil {
		return 0
	}
	return c.A
}

// Contrast returns black or white, whichever reads better on s.
func Contrast(s string) string {
	c, err := Parse(s)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

// Combine flattens s onto an opaque background.
func Combine(s, background string) string {
	fg, err := Parse(s)
	if err != nil {
		return s
	}
	bg, err := Parse(background)
	if err != nil {
		return s
	}
	return RGBA{Color: bg.Color.BlendRgb(fg.Color, fg.A), A: 1}.String()
}

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
}

// Palette returns the default trace color for index i.
func Palette(i int) string {
	return palette[((i%len(palette))+len(palette))%len(palette)]
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
