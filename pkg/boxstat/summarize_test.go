package boxstat

import (
	"math"
	"testing"

	"github.com/matzehuels/specbox/pkg/errors"
)

func TestSummarize(t *testing.T) {
	samples := []float64{7, 1, 2, 3, 4, 5, 6, 8, 40}
	raw, err := Summarize(samples)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	v := raw.Values()

	if v[Med] != 5 {
		t.Errorf("med = %v, want 5", v[Med])
	}
	if v[Q1] != 2.5 || v[Q3] != 7.5 {
		t.Errorf("q1, q3 = %v, %v, want 2.5, 7.5", v[Q1], v[Q3])
	}
	if v[Min] != 1 || v[Max] != 40 {
		t.Errorf("min, max = %v, %v", v[Min], v[Max])
	}
	if v[LW] != 1 || v[UW] != 8 {
		t.Errorf("whiskers = %v, %v, want 1, 8", v[LW], v[UW])
	}
	if raw.Count != 9 {
		t.Errorf("count = %v, want 9", raw.Count)
	}
	if o := ClassifyOutliers(raw.Points, v[LW], v[UW]); o.UOC != 1 || o.LOC != 0 {
		t.Errorf("outliers = %+v, want one upper", o)
	}
	if v.Has(LSL) || v.Has(UNB) {
		t.Error("limits should be absent without options")
	}
}

func TestSummarizeOptions(t *testing.T) {
	raw, err := Summarize([]float64{1, 2, 3, 4, 5},
		WithSpecLimits(0, math.NaN()),
		WithNaturalBoundaries(math.NaN(), 6),
		WithDensity(16),
	)
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	v := raw.Values()
	if v[LSL] != 0 || v[UNB] != 6 || v.Has(USL) || v.Has(LNB) {
		t.Errorf("limits = lsl %v usl %v lnb %v unb %v", v[LSL], v[USL], v[LNB], v[UNB])
	}
	if raw.ProbabilityDensity.Len() != 16 {
		t.Fatalf("density len = %d, want 16", raw.ProbabilityDensity.Len())
	}
	if _, ok := ResolveWindow(v); !ok {
		t.Error("window should resolve from mixed limits")
	}
}

func TestSummarizeSingleSample(t *testing.T) {
	raw, err := Summarize([]float64{3, math.NaN()})
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	v := raw.Values()
	for _, f := range []Field{Q1, Med, Q3, LW, UW, Min, Max, Avg} {
		if v[f] != 3 {
			t.Errorf("%s = %v, want 3", f, v[f])
		}
	}
}

func TestSummarizeEmpty(t *testing.T) {
	_, err := Summarize([]float64{math.Inf(1)})
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}

func TestKDE(t *testing.T) {
	d := KDE([]float64{0, 1, 1, 2, 2, 2, 3, 3, 4}, 41)
	if d.Len() != 41 {
		t.Fatalf("len = %d, want 41", d.Len())
	}

	// Density integrates to ~1 and peaks near the mode.
	var area float64
	peak := 0
	for i := 1; i < d.Len(); i++ {
		area += (d.Scale[i] - d.Scale[i-1]) * (d.Density[i] + d.Density[i-1]) / 2
		if d.Density[i] > d.Density[peak] {
			peak = i
		}
	}
	if math.Abs(area-1) > 0.05 {
		t.Errorf("area = %v, want ~1", area)
	}
	if s := d.Scale[peak]; s < 1.5 || s > 2.5 {
		t.Errorf("peak at %v, want near 2", s)
	}

	if KDE([]float64{1}, 10) != nil {
		t.Error("KDE of one sample should be nil")
	}
}
