package cli

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"io"
	"maps"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/trace"
)

// defaultGroup names the only group of a plain sample array.
const defaultGroup = "samples"

// summarizeOpts holds the command-line flags for the summarize command.
type summarizeOpts struct {
	output  string
	format  string
	name    string
	density int
	lsl     float64
	usl     float64
	lnb     float64
	unb     float64
}

// sampleGroup is one column of raw samples.
type sampleGroup struct {
	name   string
	values []float64
}

// summarizeCommand creates the summarize command.
func (c *CLI) summarizeCommand() *cobra.Command {
	opts := summarizeOpts{lsl: math.NaN(), usl: math.NaN(), lnb: math.NaN(), unb: math.NaN()}

	cmd := &cobra.Command{
		Use:   "summarize <samples>",
		Short: "Build a figure from raw samples",
		Long: `Summarize raw samples into box statistics and write a figure document
with one trace, one box per group.

CSV input has one column per group with the group names in the header row;
empty cells are skipped. JSON input is either an object mapping group names
to sample arrays, or a plain array of samples.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSummarize(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output figure (format from extension; default: stdout)")
	cmd.Flags().StringVar(&opts.format, "format", string(figure.FormatJSON), "figure format for stdout: json, toml, yaml")
	cmd.Flags().StringVar(&opts.name, "name", "", "trace name")
	cmd.Flags().IntVar(&opts.density, "density", 0, "attach a density estimate sampled at this many points")
	cmd.Flags().Float64Var(&opts.lsl, "lsl", opts.lsl, "lower specification limit")
	cmd.Flags().Float64Var(&opts.usl, "usl", opts.usl, "upper specification limit")
	cmd.Flags().Float64Var(&opts.lnb, "lnb", opts.lnb, "lower natural boundary")
	cmd.Flags().Float64Var(&opts.unb, "unb", opts.unb, "upper natural boundary")

	return cmd
}

func (c *CLI) runSummarize(input string, opts summarizeOpts) error {
	groups, err := readSamples(input)
	if err != nil {
		return err
	}
	c.Logger.Debug("read samples", "path", input, "groups", len(groups))

	fig, err := summarize(groups, opts)
	if err != nil {
		return err
	}

	if opts.output != "" {
		if err := figure.WriteFile(opts.output, fig); err != nil {
			return err
		}
		printSuccess("Summarized %d groups", len(groups))
		printFile(opts.output)
		return nil
	}
	format, err := figure.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	return figure.Write(os.Stdout, fig, format)
}

// summarize builds a one-trace figure with a box per group.
func summarize(groups []sampleGroup, opts summarizeOpts) (*figure.Figure, error) {
	sumOpts := []boxstat.SummarizeOption{
		boxstat.WithSpecLimits(opts.lsl, opts.usl),
		boxstat.WithNaturalBoundaries(opts.lnb, opts.unb),
	}
	if opts.density > 0 {
		sumOpts = append(sumOpts, boxstat.WithDensity(opts.density))
	}

	names := make([]any, len(groups))
	stats := make([]boxstat.Raw, len(groups))
	for i, g := range groups {
		raw, err := boxstat.Summarize(g.values, sumOpts...)
		if err != nil {
			return nil, errors.Wrap(errors.GetCode(err), err, "group %q", g.name)
		}
		names[i] = g.name
		stats[i] = raw
	}

	tr := &trace.Trace{
		Name: opts.name,
		X:    trace.Column{Values: names},
		Y:    trace.Column{Stats: stats},
	}
	return &figure.Figure{Data: []*trace.Trace{tr}}, nil
}

// readSamples reads sample groups, picking the parser from the extension.
func readSamples(path string) ([]sampleGroup, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "samples %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parseCSVSamples(bytes.NewReader(data))
	case ".json":
		return parseJSONSamples(data)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown sample format %q (must be csv or json)", filepath.Ext(path))
}

func parseCSVSamples(r io.Reader) ([]sampleGroup, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.New(errors.ErrCodeInvalidInput, "csv has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
	}
	groups := make([]sampleGroup, len(header))
	for i, name := range header {
		groups[i].name = strings.TrimSpace(name)
	}

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse csv")
		}
		if len(record) > len(groups) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "csv line %d has %d cells for %d columns", line, len(record), len(groups))
		}
		for i, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "csv line %d column %q: %q is not a number", line, groups[i].name, cell)
			}
			groups[i].values = append(groups[i].values, v)
		}
	}
	return groups, nil
}

func parseJSONSamples(data []byte) ([]sampleGroup, error) {
	var plain []float64
	if err := json.Unmarshal(data, &plain); err == nil {
		return []sampleGroup{{name: defaultGroup, values: plain}}, nil
	}

	var named map[string][]float64
	if err := json.Unmarshal(data, &named); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "samples must be an array of numbers or an object of arrays")
	}
	if len(named) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no sample groups")
	}
	groups := make([]sampleGroup, 0, len(named))
	for _, name := range slices.Sorted(maps.Keys(named)) {
		groups = append(groups, sampleGroup{name: name, values: named[name]})
	}
	return groups, nil
}
