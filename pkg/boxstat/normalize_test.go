package boxstat

import (
	"math"
	"testing"
)

func TestNormalizeWindowEndpoints(t *testing.T) {
	raw := Raw{
		LSL: F(10), USL: F(30),
		Q1: F(15), Q3: F(25), Med: F(20), LW: F(12), UW: F(28),
		Min: F(10), Max: F(30), Avg: F(21),
		Points: []float64{10, 20, 30},
		Count:  3,
	}
	box := Normalize(raw)

	if box.NormalizationFailed {
		t.Fatal("NormalizationFailed = true, want false")
	}
	tests := []struct {
		field Field
		want  float64
	}{
		{LSL, -1},
		{USL, 1},
		{Med, 0},
		{Q1, -0.5},
		{Q3, 0.5},
		{LW, -0.8},
		{UW, 0.8},
		{Avg, 0.1},
	}
	for _, tt := range tests {
		t.Run(tt.field.String(), func(t *testing.T) {
			if got := box.Get(tt.field); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("%s = %v, want %v", tt.field, got, tt.want)
			}
		})
	}

	wantPoints := []float64{-1, 0, 1}
	for i, p := range box.Points {
		if p != wantPoints[i] {
			t.Errorf("Points[%d] = %v, want %v", i, p, wantPoints[i])
		}
	}
}

func TestNormalizeFallsBackToNaturalBoundaries(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
		lo   float64
		hi   float64
	}{
		{"both natural", Raw{LNB: F(0), UNB: F(4), Med: F(2)}, 0, 4},
		{"lower natural", Raw{LNB: F(0), USL: F(4), Med: F(2)}, 0, 4},
		{"upper natural", Raw{LSL: F(0), UNB: F(4), Med: F(2)}, 0, 4},
		{"spec wins", Raw{LSL: F(1), LNB: F(0), USL: F(3), UNB: F(4), Med: F(2)}, 1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := ResolveWindow(tt.raw.Values())
			if !ok {
				t.Fatal("ResolveWindow() ok = false")
			}
			if w.Lo != tt.lo || w.Hi != tt.hi {
				t.Errorf("window = [%v, %v], want [%v, %v]", w.Lo, w.Hi, tt.lo, tt.hi)
			}
			box := Normalize(tt.raw)
			if got := box.Get(Med); got != 0 {
				t.Errorf("med = %v, want 0", got)
			}
		})
	}
}

func TestNormalizeFailure(t *testing.T) {
	tests := []struct {
		name string
		raw  Raw
	}{
		{"no limits", Raw{Med: F(5), Q1: F(3), Q3: F(7), Count: 4}},
		{"no upper", Raw{LSL: F(0), LNB: F(1), Med: F(5)}},
		{"no lower", Raw{USL: F(9), UNB: F(10), Med: F(5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			box := Normalize(tt.raw)
			if !box.NormalizationFailed {
				t.Fatal("NormalizationFailed = false, want true")
			}
			for f := range NumFields {
				if box.Stats.Has(f) {
					t.Errorf("%s is populated on a failed box", f)
				}
			}
			if len(box.Points) != 0 || box.Density != nil {
				t.Error("failed box carries points or density")
			}
			if box.Orig == nil {
				t.Error("Orig = nil, want snapshot")
			}
		})
	}
}

func TestNormalizeKeepsOriginal(t *testing.T) {
	raw := Raw{
		LSL: F(-3), USL: F(7), Med: F(1.25), Q1: F(0.1), Q3: F(2.2),
		Points: []float64{0.3, 6.9},
	}
	box := Normalize(raw)

	orig := box.Orig.Values()
	want := raw.Values()
	for f := range NumFields {
		if math.Float64bits(orig[f]) != math.Float64bits(want[f]) {
			t.Errorf("Orig %s = %v, want %v", f, orig[f], want[f])
		}
		if box.Stats.Has(f) && box.Display(f) != want[f] {
			t.Errorf("Display(%s) = %v, want %v", f, box.Display(f), want[f])
		}
	}

	again := Normalize(*box.Orig)
	for f := range NumFields {
		if math.Float64bits(again.Stats[f]) != math.Float64bits(box.Stats[f]) {
			t.Errorf("renormalizing Orig: %s = %v, want %v", f, again.Stats[f], box.Stats[f])
		}
	}

	// The snapshot must not alias the input.
	raw.Points[0] = 100
	if box.Orig.Points[0] != 0.3 {
		t.Error("Orig aliases the input points")
	}
}

func TestNormalizeDensity(t *testing.T) {
	raw := Raw{
		LSL: F(0), USL: F(10),
		ProbabilityDensity: &Density{
			Density: []float64{0.1, 0.4, 0.1},
			Scale:   []float64{0, 5, 10, 15},
		},
	}
	box := Normalize(raw)

	if box.Density.Len() != 3 {
		t.Fatalf("density len = %d, want 3 (truncated)", box.Density.Len())
	}
	wantScale := []float64{-1, 0, 1}
	for i := range 3 {
		if box.Density.Scale[i] != wantScale[i] {
			t.Errorf("Scale[%d] = %v, want %v", i, box.Density.Scale[i], wantScale[i])
		}
		if box.Density.Density[i] != raw.ProbabilityDensity.Density[i] {
			t.Errorf("Density[%d] = %v, want unchanged %v", i, box.Density.Density[i], raw.ProbabilityDensity.Density[i])
		}
	}
}

func TestNormalizeDegenerateWindow(t *testing.T) {
	box := Normalize(Raw{LSL: F(5), USL: F(5), Med: F(5), Q3: F(6), Q1: F(4)})
	if box.NormalizationFailed {
		t.Fatal("degenerate window must not be reported as failure")
	}
	if !math.IsNaN(box.Get(Med)) {
		t.Errorf("med = %v, want NaN", box.Get(Med))
	}
	if !math.IsInf(box.Get(Q3), 1) || !math.IsInf(box.Get(Q1), -1) {
		t.Errorf("q1, q3 = %v, %v, want -Inf, +Inf", box.Get(Q1), box.Get(Q3))
	}
}

func TestNormalizeSDMatchesNormalizedPoints(t *testing.T) {
	raw := Raw{LSL: F(0), USL: F(40), Avg: F(15.8), Points: []float64{1, 2, 3, 35, 38}}
	box := Normalize(raw)

	want := sampleSD(box.Points)
	if math.Abs(box.SD-want) > 1e-9 {
		t.Errorf("SD = %v, want %v", box.SD, want)
	}
	avg := box.Get(Avg)
	w, _ := ResolveWindow(raw.Values())
	lo := w.Apply(15.8 - sampleSD(raw.Points))
	hi := w.Apply(15.8 + sampleSD(raw.Points))
	if math.Abs((avg-box.SD)-lo) > 1e-9 || math.Abs((avg+box.SD)-hi) > 1e-9 {
		t.Errorf("avg±SD = [%v, %v], want [%v, %v]", avg-box.SD, avg+box.SD, lo, hi)
	}
}

func TestPassthrough(t *testing.T) {
	raw := Raw{Q1: F(10), Q3: F(20), Med: F(15), Count: 8}
	box := Passthrough(raw)
	if box.NormalizationFailed || box.Orig != nil || box.Normalized() {
		t.Error("passthrough box must not be marked normalized or failed")
	}
	if box.Get(Q1) != 10 || box.Get(Med) != 15 || box.Display(Q3) != 20 {
		t.Errorf("stats = %v", box.Stats)
	}
	if box.Stats.Has(LW) {
		t.Error("absent field must stay absent")
	}
}

func TestWindowInvert(t *testing.T) {
	w := Window{Lo: 2, Hi: 12, Target: 7}
	for _, v := range []float64{2, 4.5, 7, 9, 12} {
		if got := w.Invert(w.Apply(v)); math.Abs(got-v) > 1e-12 {
			t.Errorf("Invert(Apply(%v)) = %v", v, got)
		}
	}
}
