package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/specbox/pkg/boxlayout"
	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/hover"
	"github.com/matzehuels/specbox/pkg/pipeline"
)

// valueSteps is the number of cursor steps across the value axis range.
const valueSteps = 40

var (
	exploreDimStyle = lipgloss.NewStyle().Foreground(colorDim)
	exploreErrStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var save bool

	cmd := &cobra.Command{
		Use:   "explore <figure>",
		Short: "Walk the boxes of a figure and inspect hover labels",
		Long: `Open an interactive view of a figure. The cursor steps between boxes and
along the value axis while the hover labels under it are shown live.

Keys: ←/→ box, ↑/↓ value, o reveal or hide outliers, q quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplore(args[0], save)
		},
	}
	cmd.Flags().BoolVar(&save, "save", false, "write the outlier setting back to the figure file on exit")
	return cmd
}

func (c *CLI) runExplore(input string, save bool) error {
	fig, err := figure.ReadFile(input)
	if err != nil {
		return err
	}
	model, err := NewExploreModel(fig, filepath.Base(input))
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return err
	}
	m := final.(ExploreModel)
	if m.Toggled%2 == 0 {
		return nil
	}
	if !save {
		printWarning("Outlier setting changed, rerun with --save to keep it")
		return nil
	}
	fig.Layout.ToggleOutliers()
	if err := figure.WriteFile(input, fig); err != nil {
		return err
	}
	printSuccess("Saved %s", input)
	return nil
}

// boxRef addresses one box of a visible trace.
type boxRef struct {
	trace, box int
}

// ExploreModel is the bubbletea model of the explore command.
type ExploreModel struct {
	Name string

	// Toggled counts outlier reveal toggles.
	Toggled int

	fig    *figure.Figure
	plot   *pipeline.Plot
	boxes  []boxRef
	cursor int
	// value is the cursor's linear coordinate on the value axis.
	value  float64
	labels *hover.LabelSet
	err    error
}

// NewExploreModel computes fig and places the cursor on the median of the
// first box. fig itself is left untouched.
func NewExploreModel(fig *figure.Figure, name string) (ExploreModel, error) {
	work, err := fig.Clone()
	if err != nil {
		return ExploreModel{}, err
	}
	m := ExploreModel{Name: name, fig: work}
	if err := m.recompute(); err != nil {
		return ExploreModel{}, err
	}
	if len(m.boxes) == 0 {
		return ExploreModel{}, errors.New(errors.ErrCodeInvalidFigure, "%s has no visible boxes", name)
	}
	m.jumpToMedian()
	m.pick()
	return m, nil
}

func (m *ExploreModel) recompute() error {
	plot, err := pipeline.Compute(m.fig, pipeline.Options{})
	if err != nil {
		return err
	}
	m.plot = plot
	m.boxes = m.boxes[:0]
	for _, c := range plot.Pass.Calcs() {
		if !c.Visible() {
			continue
		}
		for i := range c.Boxes {
			m.boxes = append(m.boxes, boxRef{trace: c.Index, box: i})
		}
	}
	if m.cursor >= len(m.boxes) {
		m.cursor = max(len(m.boxes)-1, 0)
	}
	return nil
}

func (m *ExploreModel) calc() *boxlayout.Calc {
	return m.plot.Pass.Calcs()[m.boxes[m.cursor].trace]
}

func (m *ExploreModel) jumpToMedian() {
	c := m.calc()
	med := c.Boxes[m.boxes[m.cursor].box].Get(boxstat.Med)
	if l := c.ValAxis.C2L(med); !math.IsNaN(l) && !math.IsInf(l, 0) {
		m.value = l
		return
	}
	r := c.ValAxis.Range
	m.value = (r[0] + r[1]) / 2
}

// Cursor returns the cursor in pixels.
func (m ExploreModel) Cursor() pipeline.Cursor {
	c := m.calc()
	pos := c.PosAxis.C2P(c.Center(m.boxes[m.cursor].box))
	val := c.ValAxis.L2P(m.value)
	if c.PosAxis.Letter() == 'y' {
		return pipeline.Cursor{X: val, Y: pos}
	}
	return pipeline.Cursor{X: pos, Y: val}
}

// Labels returns the labels under the cursor, nil on a miss.
func (m ExploreModel) Labels() *hover.LabelSet {
	return m.labels
}

func (m *ExploreModel) pick() {
	m.labels = m.plot.Hover(pipeline.HoverOptions{Cursor: m.Cursor()})
}

func (m *ExploreModel) step(dir float64) {
	r := m.calc().ValAxis.Range
	m.value += dir * (r[1] - r[0]) / valueSteps
	lo, hi := min(r[0], r[1]), max(r[0], r[1])
	m.value = min(max(m.value, lo), hi)
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
			m.jumpToMedian()
		}
	case "right", "l":
		if m.cursor < len(m.boxes)-1 {
			m.cursor++
			m.jumpToMedian()
		}
	case "up", "k":
		m.step(1)
	case "down", "j":
		m.step(-1)
	case "o", "enter":
		if key.String() == "enter" && !hover.Reveal(m.labels) {
			return m, nil
		}
		m.fig.Layout.ToggleOutliers()
		m.Toggled++
		if m.err = m.recompute(); m.err != nil {
			return m, nil
		}
		m.step(0)
	}
	m.pick()
	return m, nil
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Explore " + m.Name))
	b.WriteString("\n")
	b.WriteString(exploreDimStyle.Render("←/→ box  ↑/↓ value  o outliers  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(exploreErrStyle.Render(m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	ref := m.boxes[m.cursor]
	at := m.Cursor()
	c := m.calc()
	name := c.Trace.Name
	if name == "" {
		name = fmt.Sprintf("trace %d", ref.trace)
	}
	fmt.Fprintf(&b, "%s  box %d  %s\n",
		StyleValue.Render(name), ref.box,
		exploreDimStyle.Render(fmt.Sprintf("(%.0f, %.0f)px  value %s", at.X, at.Y, c.ValAxis.FormatValue(c.ValAxis.L2C(m.value)))))

	if m.labels == nil {
		b.WriteString(exploreDimStyle.Render("no box under the cursor"))
	} else {
		b.WriteString(labelTable(m.labels))
	}
	b.WriteString("\n\n")

	reveal := "hidden"
	if !m.fig.Layout.IgnoresOutliers() {
		reveal = "shown"
	}
	b.WriteString(exploreDimStyle.Render(fmt.Sprintf("  [%d/%d]  outliers %s", m.cursor+1, len(m.boxes), reveal)))
	return b.String()
}
