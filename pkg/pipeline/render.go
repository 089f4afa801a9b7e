package pipeline

import (
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/render/sink"
)

// Render draws the scene in every format of opts.Formats.
func Render(scene sink.Scene, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := renderFormat(scene, format, opts)
		if err != nil {
			return nil, wrap(err, "render %s", format)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func renderFormat(scene sink.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		svgOpts := []sink.SVGOption{sink.WithTicks(opts.Ticks)}
		if opts.EmbedFont {
			svgOpts = append(svgOpts, sink.WithEmbeddedFont())
		}
		if opts.Title != "" {
			svgOpts = append(svgOpts, sink.WithTitle(opts.Title))
		}
		return sink.RenderSVG(scene, svgOpts...), nil
	case FormatPNG:
		return sink.RenderPNG(scene, sink.WithScale(opts.Scale), sink.WithPNGTicks(opts.Ticks))
	case FormatJSON:
		return sink.RenderJSON(scene, sink.WithJSONTicks(opts.Ticks))
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
	}
}

// wrap adds context to err and keeps its code.
func wrap(err error, format string, args ...any) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, format, args...)
}

func errInvalidFigure() error {
	return errors.New(errors.ErrCodeInvalidFigure, "figure is empty")
}
