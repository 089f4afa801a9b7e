package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output    string  // output file path (or base path for multiple outputs); "-" writes to stdout
	formats   string  // comma-separated output formats
	width     float64 // frame width override
	height    float64 // frame height override
	scale     float64 // PNG scale factor
	ticks     int     // approximate ticks per axis
	embedFont bool    // embed the label font in SVG output
	title     string  // document title
	noCache   bool    // bypass the render cache
	hoverX    float64 // draw hover labels at this cursor
	hoverY    float64
	hover     bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{scale: pipeline.DefaultScale, ticks: pipeline.DefaultTicks}

	cmd := &cobra.Command{
		Use:   "render <figure>",
		Short: "Render a figure to SVG, PNG or JSON",
		Long: `Render a figure document (JSON, TOML or YAML) to one or more output formats.

With a single format the output goes to --output, or next to the input file.
With several formats --output is used as the base path.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hover = cmd.Flags().Changed("hover-x") || cmd.Flags().Changed("hover-y")
			return c.runRender(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "", "output format(s): svg (default), png, json (comma-separated)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default: from the figure)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default: from the figure)")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "PNG scale factor")
	cmd.Flags().IntVar(&opts.ticks, "ticks", opts.ticks, "approximate number of ticks per axis")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	cmd.Flags().StringVar(&opts.title, "title", "", "document title (default: layout.title)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the render cache")
	cmd.Flags().Float64Var(&opts.hoverX, "hover-x", 0, "draw hover labels picked at this x pixel")
	cmd.Flags().Float64Var(&opts.hoverY, "hover-y", 0, "draw hover labels picked at this y pixel")

	return cmd
}

func (o renderOpts) pipelineOptions() pipeline.Options {
	p := pipeline.Options{
		Formats:   parseFormats(o.formats),
		Width:     o.width,
		Height:    o.height,
		Scale:     o.scale,
		Ticks:     o.ticks,
		EmbedFont: o.embedFont,
		Title:     o.title,
		NoCache:   o.noCache,
	}
	if o.hover {
		p.Hover = &pipeline.Cursor{X: o.hoverX, Y: o.hoverY}
	}
	return p
}

func (c *CLI) runRender(ctx context.Context, input string, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	popts := opts.pipelineOptions()
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	popts.Logger = logger

	fig, err := figure.ReadFile(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded figure", "path", input, "traces", len(fig.Data))

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	spinner := newSpinnerWithContext(ctx, "Rendering "+filepath.Base(input))
	spinner.Start()
	res, err := runner.Execute(ctx, fig, popts)
	spinner.Stop()
	if err != nil {
		return err
	}
	prog.done("Rendered " + filepath.Base(input))
	printStats(res.Stats.Traces, res.Stats.Boxes, res.CacheInfo.RenderHit)

	for _, format := range popts.Formats {
		path := outputPath(opts.output, input, format, len(popts.Formats) > 1)
		if err := writeOutput(path, res.Artifacts[format]); err != nil {
			return err
		}
		if path != "-" {
			printFile(path)
		}
	}
	return nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .png, .json), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// outputPath returns where one format is written.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	path := basePath(output, input) + "." + format
	if path == input {
		// A JSON figure rendered to JSON must not overwrite itself.
		path = basePath(output, input) + ".render." + format
	}
	return path
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}
