package trace

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/specbox/pkg/errors"
)

func decodeTrace(t *testing.T, doc string) Trace {
	t.Helper()
	var tr Trace
	if err := json.Unmarshal([]byte(doc), &tr); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	return tr
}

func TestOrientationInference(t *testing.T) {
	tests := []struct {
		name        string
		doc         string
		want        Orientation
		wantVisible bool
	}{
		{"stats on y", `{"y":[{"med":1}],"x":["a"]}`, Vertical, true},
		{"stats on x", `{"x":[{"med":1}]}`, Horizontal, true},
		{"explicit wins", `{"y":[{"med":1}],"orientation":"h"}`, Horizontal, true},
		{"no stats", `{"x":[1,2],"y":[3,4]}`, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := decodeTrace(t, tt.doc)
			tr.SetDefaults(0)
			if tr.Orientation != tt.want {
				t.Errorf("Orientation = %q, want %q", tr.Orientation, tt.want)
			}
			if tr.IsVisible() != tt.wantVisible {
				t.Errorf("IsVisible() = %v, want %v", tr.IsVisible(), tt.wantVisible)
			}
		})
	}
}

func TestOrientationRoles(t *testing.T) {
	if Vertical.PosLetter() != 'x' || Vertical.ValLetter() != 'y' {
		t.Error("vertical roles")
	}
	if Horizontal.PosLetter() != 'y' || Horizontal.ValLetter() != 'x' {
		t.Error("horizontal roles")
	}
	x, y := Horizontal.XY(1, 2)
	if x != 2 || y != 1 {
		t.Errorf("Horizontal.XY(1, 2) = %v, %v", x, y)
	}
	p, v := Horizontal.PosVal(x, y)
	if p != 1 || v != 2 {
		t.Errorf("Horizontal.PosVal = %v, %v", p, v)
	}
	if err := Orientation("d").Validate(); !errors.Is(err, errors.ErrCodeInvalidOrientation) {
		t.Errorf("Validate(d) = %v", err)
	}
}

func TestTraceDefaults(t *testing.T) {
	tr := decodeTrace(t, `{"y":[{"med":1,"q1":0,"q3":2}],"marker":{"color":"#1f77b4"}}`)
	tr.SetDefaults(3)

	if tr.Line.Color != "#1f77b4" {
		t.Errorf("line.color = %q, want marker color", tr.Line.Color)
	}
	if tr.Line.StrokeWidth() != DefaultLineWidth {
		t.Errorf("line.width = %v", tr.Line.StrokeWidth())
	}
	if tr.FillColor != "rgba(31, 119, 180, 0.5)" {
		t.Errorf("fillcolor = %q", tr.FillColor)
	}
	if tr.Marker.Line.OutlierColor != "#1f77b4" {
		t.Errorf("marker.line.outliercolor = %q", tr.Marker.Line.OutlierColor)
	}
	if tr.Whisker() != DefaultWhiskerWidth || tr.BoxPoints != PointsOutliers {
		t.Errorf("whisker = %v, boxpoints = %q", tr.Whisker(), tr.BoxPoints)
	}
	if tr.XAxis != "x" || tr.YAxis != "y" {
		t.Errorf("axes = %q %q", tr.XAxis, tr.YAxis)
	}
	if err := tr.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestTraceValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"position count mismatch", `{"y":[{"med":1}],"x":["a","b"]}`, errors.ErrCodeInvalidTrace},
		{"whisker too wide", `{"y":[{"med":1}],"whiskerwidth":2}`, errors.ErrCodeInvalidTrace},
		{"unknown transform", `{"y":[{"med":1}],"transforms":[{"type":"sort"}]}`, errors.ErrCodeUnsupported},
		{"bad orientation", `{"y":[{"med":1}],"orientation":"z"}`, errors.ErrCodeInvalidOrientation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := decodeTrace(t, tt.doc)
			tr.SetDefaults(0)
			if err := tr.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestBoxMeanAndPointsJSON(t *testing.T) {
	tests := []struct {
		doc        string
		wantMean   BoxMean
		wantPoints BoxPoints
	}{
		{`{"boxmean":true,"boxpoints":"all"}`, MeanLine, PointsAll},
		{`{"boxmean":"sd","boxpoints":false}`, MeanSD, PointsNone},
		{`{"boxmean":false}`, MeanNone, ""},
	}
	for _, tt := range tests {
		tr := decodeTrace(t, tt.doc)
		if tr.BoxMean != tt.wantMean || tr.BoxPoints != tt.wantPoints {
			t.Errorf("%s: boxmean = %v, boxpoints = %q", tt.doc, tr.BoxMean, tr.BoxPoints)
		}
	}

	var tr Trace
	if err := json.Unmarshal([]byte(`{"boxmean":"yes"}`), &tr); !errors.Is(err, errors.ErrCodeInvalidTrace) {
		t.Errorf("boxmean yes: err = %v", err)
	}

	out, err := json.Marshal(Trace{BoxMean: MeanSD, BoxPoints: PointsNone})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back := decodeTrace(t, string(out))
	if back.BoxMean != MeanSD || back.BoxPoints != PointsNone {
		t.Errorf("re-decoded %s: %v %q", out, back.BoxMean, back.BoxPoints)
	}
}

func TestColumnJSON(t *testing.T) {
	tr := decodeTrace(t, `{"x":["a", 2, null],"y":[null,{"q1":1},{"q3":4}]}`)
	if tr.X.IsStats() || tr.X.Len() != 3 {
		t.Errorf("x column = %+v", tr.X)
	}
	if !tr.Y.IsStats() || tr.Y.Len() != 3 {
		t.Fatalf("y column = %+v", tr.Y)
	}
	if tr.Y.Stats[1].Q1 == nil || *tr.Y.Stats[1].Q1 != 1 {
		t.Errorf("y[1].q1 = %v", tr.Y.Stats[1].Q1)
	}

	out, err := json.Marshal(tr)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	again := decodeTrace(t, string(out))
	if !again.Y.IsStats() || again.X.Len() != 3 {
		t.Errorf("round trip lost column kinds: %s", out)
	}
}

func TestApplyTransforms(t *testing.T) {
	tr := decodeTrace(t, `{
		"x": [1, "b"],
		"y": [{"med": 5, "points": [1, 9]}, {"med": 6}],
		"transforms": [{"type": "offset", "x": 10, "y": -1}, {"type": "offset", "enabled": false, "y": 100}]
	}`)
	tr.SetDefaults(0)
	out := ApplyTransforms(tr)

	if out.X.Values[0] != 11.0 || out.X.Values[1] != "b" {
		t.Errorf("x = %v", out.X.Values)
	}
	if *out.Y.Stats[0].Med != 4 || out.Y.Stats[0].Points[1] != 8 || *out.Y.Stats[1].Med != 5 {
		t.Errorf("y stats not shifted: %+v", out.Y.Stats)
	}
	if *tr.Y.Stats[0].Med != 5 || tr.X.Values[0] != 1.0 {
		t.Error("ApplyTransforms mutated its input")
	}
}
