package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/pipeline"
	"github.com/matzehuels/specbox/pkg/trace"
)

type hoverOpts struct {
	x, y    float64
	mode    string
	width   float64
	height  float64
	noCache bool
}

// hoverCommand creates the hover command.
func (c *CLI) hoverCommand() *cobra.Command {
	var opts hoverOpts

	cmd := &cobra.Command{
		Use:   "hover <figure>",
		Short: "Print the hover labels at a cursor position",
		Long: `Pick the box nearest to a cursor, given in frame pixels, and print its
labels. Coordinates match the output of "specbox render" with the same
frame size.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runHover(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().Float64Var(&opts.x, "x", 0, "cursor x in pixels")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "cursor y in pixels")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "hover mode: closest, x, y (default: layout.hovermode)")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "frame width (default: from the figure)")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "frame height (default: from the figure)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "bypass the hover cache")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func (c *CLI) runHover(ctx context.Context, input string, opts hoverOpts) error {
	fig, err := figure.ReadFile(input)
	if err != nil {
		return err
	}
	if opts.width > 0 {
		fig.Layout.Width = opts.width
	}
	if opts.height > 0 {
		fig.Layout.Height = opts.height
	}

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	labels, err := runner.Hover(ctx, fig, pipeline.HoverOptions{
		Cursor: pipeline.Cursor{X: opts.x, Y: opts.y},
		Mode:   trace.HoverMode(opts.mode),
	})
	if err != nil {
		return err
	}
	if labels == nil {
		printInfo("No box within reach of (%g, %g)", opts.x, opts.y)
		return nil
	}
	printKeyValue("Trace", strconv.Itoa(labels.Trace))
	printKeyValue("Box", strconv.Itoa(labels.Box))
	printKeyValue("Distance", strconv.FormatFloat(labels.Distance, 'g', 4, 64))
	fmt.Println(labelTable(labels))
	if hover.Reveal(labels) {
		printNextStep("Click here to reveal outliers", "specbox explore "+input)
	}
	return nil
}

// labelTable renders a label set as a table.
func labelTable(set *hover.LabelSet) string {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := make([][]string, len(set.Labels))
	for i, l := range set.Labels {
		value := l.ValueLabel
		if l.Text != "" {
			value = l.Text
		}
		rows[i] = []string{l.Attr, l.Name, l.PositionLabel, value}
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Attr", "Trace", "Position", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if row < 0 || row >= len(set.Labels) {
				return base
			}
			l := set.Labels[row]
			switch {
			case l.OutliersMark:
				return base.Foreground(colorYellow)
			case l.Attr == hover.AttrNormalizationFailed:
				return base.Foreground(colorRed)
			case col == 3:
				return base.Foreground(colorCyan)
			}
			return base.Foreground(colorWhite)
		})
	return t.Render()
}
