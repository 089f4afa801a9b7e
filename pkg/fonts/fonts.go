// Package fonts provides the embedded label font for raster and vector
// output.
//
// The font is the Go Regular face shipped with golang.org/x/image, so no
// system font is needed to render PNG labels.
package fonts

import (
	"encoding/base64"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/specbox/pkg/errors"
)

// FontFamily is the CSS font-family name of the embedded font.
const FontFamily = "Go"

// FallbackFontFamily is the CSS font stack used when the font is not
// embedded in the SVG.
const FallbackFontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

// RegularTTF returns the TTF font data.
func RegularTTF() []byte {
	return goregular.TTF
}

var (
	parsed    *opentype.Font
	parseErr  error
	parseOnce sync.Once

	ttfBase64     string
	ttfBase64Once sync.Once
)

func regular() (*opentype.Font, error) {
	parseOnce.Do(func() {
		parsed, parseErr = opentype.Parse(goregular.TTF)
		if parseErr != nil {
			parseErr = errors.Wrap(errors.ErrCodeInternal, parseErr, "parse embedded font")
		}
	})
	return parsed, parseErr
}

// NewFace returns a face at size points for 72 DPI. A font.Face is not
// safe for concurrent drawing, so every render takes its own.
func NewFace(size float64) (font.Face, error) {
	fnt, err := regular()
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create font face")
	}
	return face, nil
}

// RegularBase64 returns the TTF font data as a base64 string.
// The result is cached after first computation.
func RegularBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(goregular.TTF)
	})
	return ttfBase64
}
