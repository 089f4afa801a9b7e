package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/cache"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/figure"
	"github.com/matzehuels/specbox/pkg/trace"
)

const doc = `{
  "layout": {"boxmode": "group", "title": "lots"},
  "data": [
    {"name": "A", "x": ["a", "b"], "y": [
      {"q1": 10, "q3": 20, "med": 15, "lw": 5, "uw": 25, "min": 1, "max": 30, "points": [1, 30]},
      {"q1": 12, "q3": 22, "med": 16, "lw": 8, "uw": 26}
    ]},
    {"name": "B", "x": ["a", "b"], "y": [
      {"q1": 11, "q3": 19, "med": 14},
      {"q1": 13, "q3": 21, "med": 18}
    ]}
  ]
}`

func testFigure(t *testing.T) *figure.Figure {
	t.Helper()
	f, err := figure.Unmarshal([]byte(doc), figure.FormatJSON)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"json", false},
		{"pdf", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale || opts.Ticks != DefaultTicks || opts.Logger == nil {
		t.Errorf("defaults = %+v", opts)
	}

	dup := Options{Formats: []string{"png", "svg", "png"}}
	if err := dup.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if len(dup.Formats) != 2 {
		t.Errorf("Formats = %v, want duplicates removed", dup.Formats)
	}

	for _, bad := range []Options{
		{Formats: []string{"gif"}},
		{Scale: -1},
		{Ticks: -2},
		{Width: -10},
	} {
		if err := bad.ValidateAndSetDefaults(); err == nil {
			t.Errorf("ValidateAndSetDefaults(%+v) = nil, want error", bad)
		}
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Scale: 3, EmbedFont: true, Selection: &Selection{Trace: 1, Box: 0}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	svg := opts.ArtifactKeyOpts(FormatSVG)
	png := opts.ArtifactKeyOpts(FormatPNG)
	if svg.Scale != 0 || !svg.EmbedFont {
		t.Errorf("svg key = %+v, want no scale and embedded font", svg)
	}
	if png.Scale != 3 || png.EmbedFont {
		t.Errorf("png key = %+v", png)
	}
	if len(svg.Selection) != 2 || svg.Selection[0] != 1 {
		t.Errorf("selection = %v", svg.Selection)
	}
}

func TestCompute(t *testing.T) {
	plot, err := Compute(testFigure(t), Options{Width: 600})
	if err != nil {
		t.Fatal(err)
	}
	if !plot.Pass.Finalized() {
		t.Error("pass not finalized")
	}
	if plot.Boxes() != 4 || len(plot.Sets) != 2 {
		t.Errorf("Boxes() = %d, sets = %d", plot.Boxes(), len(plot.Sets))
	}
	scene := plot.Scene(nil)
	if scene.Width != 600 || scene.Height != figure.DefaultHeight {
		t.Errorf("scene size = %vx%v", scene.Width, scene.Height)
	}
	if len(scene.Axes) != 2 || scene.Axes[0].ID != "x" || scene.Axes[1].ID != "y" {
		t.Errorf("scene axes = %v", scene.Axes)
	}
	c := plot.Pass.Calcs()
	if c[0].Center(0) >= c[1].Center(0) {
		t.Error("grouped traces should sit side by side")
	}

	if _, err := Compute(nil, Options{}); !errors.Is(err, errors.ErrCodeInvalidFigure) {
		t.Errorf("Compute(nil) error = %v", err)
	}
}

func TestExecuteFormats(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	fig := testFigure(t)
	res, err := runner.Execute(context.Background(), fig, Options{Formats: []string{"svg", "png", "json"}, Scale: 1})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(res.Artifacts["svg"], []byte("<svg")) || !bytes.Contains(res.Artifacts["svg"], []byte("<title>lots</title>")) {
		t.Error("svg artifact missing root element or title")
	}
	if !bytes.HasPrefix(res.Artifacts["png"], []byte("\x89PNG")) {
		t.Error("png artifact missing signature")
	}
	var out struct {
		Traces []json.RawMessage `json:"traces"`
	}
	if err := json.Unmarshal(res.Artifacts["json"], &out); err != nil || len(out.Traces) != 2 {
		t.Errorf("json artifact: %v, %d traces", err, len(out.Traces))
	}
	if res.Stats.Traces != 2 || res.Stats.Boxes != 4 || res.FigureHash == "" {
		t.Errorf("result = %+v", res.Stats)
	}
	if fig.Layout.Width != 0 || fig.Data[0].Orientation != "" {
		t.Error("Execute modified the input figure")
	}
}

func TestExecuteCache(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()
	ctx := context.Background()
	opts := Options{Formats: []string{"svg", "json"}}

	first, err := runner.Execute(ctx, testFigure(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.RenderHit || first.Plot == nil {
		t.Fatal("first run should miss the cache")
	}
	second, err := runner.Execute(ctx, testFigure(t), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.RenderHit || second.Plot != nil {
		t.Error("second run should come from the cache")
	}
	if !bytes.Equal(first.Artifacts["svg"], second.Artifacts["svg"]) {
		t.Error("cached svg differs")
	}

	edited := testFigure(t)
	*edited.Data[1].Y.Stats[0].Med = 15
	if res, _ := runner.Execute(ctx, edited, opts); res.CacheInfo.RenderHit {
		t.Error("edited figure hit a stale entry")
	}
	if res, _ := runner.Execute(ctx, testFigure(t), Options{Formats: []string{"svg"}, NoCache: true}); res.CacheInfo.RenderHit {
		t.Error("NoCache run hit the cache")
	}
	if res, _ := runner.Execute(ctx, testFigure(t), Options{Formats: []string{"png"}}); res.CacheInfo.RenderHit {
		t.Error("png was never rendered, should miss")
	}
}

func TestExecuteInvalid(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	tests := []struct {
		name string
		fig  *figure.Figure
		opts Options
		code errors.Code
	}{
		{"nil figure", nil, Options{}, errors.ErrCodeInvalidFigure},
		{"no traces", &figure.Figure{}, Options{}, errors.ErrCodeInvalidFigure},
		{"bad format", testFigure(t), Options{Formats: []string{"bmp"}}, errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runner.Execute(context.Background(), tt.fig, tt.opts)
			if !errors.Is(err, tt.code) {
				t.Errorf("Execute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

// boxCursor returns the pixel position of value v on box i of trace ti.
func boxCursor(t *testing.T, fig *figure.Figure, ti, i int, v float64) Cursor {
	t.Helper()
	plot, err := Compute(fig, Options{})
	if err != nil {
		t.Fatal(err)
	}
	c := plot.Pass.Calcs()[ti]
	return Cursor{X: c.PosAxis.C2P(c.Center(i)), Y: c.ValAxis.C2P(v)}
}

func TestRunnerHover(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	ctx := context.Background()
	fig := testFigure(t)
	at := boxCursor(t, testFigure(t), 1, 1, 18)

	for range 2 { // second round reads the cache
		set, err := runner.Hover(ctx, fig, HoverOptions{Cursor: at})
		if err != nil {
			t.Fatal(err)
		}
		if set == nil || set.Trace != 1 || set.Box != 1 {
			t.Fatalf("Hover() = %+v, want trace 1 box 1", set)
		}
		if len(set.Labels) == 0 || set.Labels[0].Attr != boxstat.Med.String() {
			t.Errorf("first label = %+v", set.Labels)
		}
	}

	miss, err := runner.Hover(ctx, fig, HoverOptions{Cursor: Cursor{X: -500, Y: -500}})
	if err != nil || miss != nil {
		t.Errorf("Hover() far away = %+v, %v", miss, err)
	}
	if _, err := runner.Hover(ctx, fig, HoverOptions{Cursor: at, Mode: "nearest"}); !errors.Is(err, errors.ErrCodeInvalidHoverMode) {
		t.Errorf("Hover(bad mode) error = %v", err)
	}
	if _, err := runner.Hover(ctx, fig, HoverOptions{Cursor: at, Mode: trace.HoverX}); err != nil {
		t.Errorf("Hover(x) error = %v", err)
	}
}

type readOnlyCache struct{ cache.Cache }

func (readOnlyCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New(errors.ErrCodeInternal, "cache is read-only")
}

func TestRunnerHoverLogsCacheWriteFailure(t *testing.T) {
	var buf bytes.Buffer
	runner := NewRunner(readOnlyCache{cache.NewNullCache()}, nil, log.New(&buf))
	fig := testFigure(t)

	set, err := runner.Hover(context.Background(), fig, HoverOptions{Cursor: boxCursor(t, testFigure(t), 1, 1, 18)})
	if err != nil || set == nil {
		t.Fatalf("Hover() = %+v, %v", set, err)
	}
	if out := buf.String(); !strings.Contains(out, "cache write failed") || !strings.Contains(out, "hover") {
		t.Errorf("log output = %q, want a hover cache write warning", out)
	}
}

func TestRunnerClick(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	ctx := context.Background()
	fig := testFigure(t)

	// Below the lower whisker the hidden outlier at 1 is revealable.
	at := boxCursor(t, testFigure(t), 0, 0, 2)
	labels, toggled, err := runner.Click(ctx, fig, at)
	if err != nil {
		t.Fatal(err)
	}
	if !toggled || labels == nil {
		t.Fatalf("Click() = %+v, %v", labels, toggled)
	}
	if fig.Layout.IgnoresOutliers() {
		t.Error("Click() did not reveal outliers")
	}

	_, toggled, err = runner.Click(ctx, fig, boxCursor(t, testFigure(t), 0, 0, 15))
	if err != nil || toggled {
		t.Errorf("Click() on the median toggled = %v, err = %v", toggled, err)
	}
}
