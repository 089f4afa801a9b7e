// Package pipeline provides the render pipeline for specbox figures.
//
// This package runs the complete prepare → pass → geometry → sink pipeline
// used by the CLI and the HTTP API, so both entry points produce the same
// output and share one caching strategy.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Prepare: apply figure defaults, summarize raw samples, build axes
//  2. Pass: calc, cross-trace and finalize (see [boxlayout.Run]), then
//     build the shapes of every trace
//  3. Render: draw the scene in each requested format (SVG, PNG, JSON)
//
// Hover queries reuse the first two stages and pick against the finalized
// pass.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, fig, pipeline.Options{
//	    Formats: []string{"svg", "png"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run the stages yourself:
//
//	plot, err := pipeline.Compute(fig, opts)
//	artifacts, err := pipeline.Render(plot.Scene(nil), opts)
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/specbox/pkg/cache"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/trace"
)

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultTicks is the approximate tick count per axis.
	DefaultTicks = 6
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// Selection names one box of one trace.
type Selection struct {
	Trace int `json:"trace"`
	Box   int `json:"box"`
}

// Cursor is a pixel position in the frame.
type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Frame overrides; zero keeps the figure's own size.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Selection marks a box as selected, which shows its density lobe
	// when the layout draws densities on hover.
	Selection *Selection `json:"selection,omitempty"`

	// Render options
	Formats   []string `json:"formats,omitempty"`
	Scale     float64  `json:"scale,omitempty"`
	Ticks     int      `json:"ticks,omitempty"`
	EmbedFont bool     `json:"embed_font,omitempty"`
	Title     string   `json:"title,omitempty"`
	// Hover draws the labels picked at this cursor on top of the chart.
	Hover *Cursor `json:"hover,omitempty"`

	// NoCache bypasses cache reads and writes.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// HoverOptions configures a hover query.
type HoverOptions struct {
	Cursor
	// Mode overrides the layout's hovermode when set.
	Mode trace.HoverMode `json:"mode,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// FigureHash is the content hash of the prepared figure.
	FigureHash string

	// Plot is the computed pass. It is nil when every artifact came from
	// the cache.
	Plot *Plot

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Traces     int
	Boxes      int
	PassTime   time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Ticks == 0 {
		o.Ticks = DefaultTicks
	}
	if o.Ticks < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "ticks must be positive, got %d", o.Ticks)
	}
	if err := errors.ValidateNonNegative("width", o.Width); err != nil {
		return err
	}
	if err := errors.ValidateNonNegative("height", o.Height); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// ArtifactKeyOpts returns cache key options for one artifact.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format: format,
		Ticks:  o.Ticks,
		Title:  o.Title,
	}
	switch format {
	case FormatPNG:
		k.Scale = o.Scale
	case FormatSVG:
		k.EmbedFont = o.EmbedFont
	}
	if o.Selection != nil {
		k.Selection = []int{o.Selection.Trace, o.Selection.Box}
	}
	if o.Hover != nil {
		k.Cursor = []float64{o.Hover.X, o.Hover.Y}
	}
	return k
}

func dedupe(formats []string) []string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
