package axis

import (
	"math"
	"testing"
)

func TestComputeRangeValuePads(t *testing.T) {
	a := New("x", Linear)
	a.Length = 100
	a.Expand(a.FindExtremes([]float64{1, 2, 3}, PadOptions{VPadMinus: 0.5, VPadPlus: 0.5}))
	a.ComputeRange()

	if a.Range != [2]float64{0.5, 3.5} {
		t.Errorf("Range = %v, want [0.5 3.5]", a.Range)
	}
}

func TestComputeRangePixelPads(t *testing.T) {
	a := New("y", Linear)
	a.Length = 120
	a.Expand(a.FindExtremes([]float64{0, 10}, PadOptions{PPadMinus: 10, PPadPlus: 10}))
	a.ComputeRange()

	// 10 units over 100 px leaves 10 px = 1 unit on each side.
	if math.Abs(a.Range[0]+1) > 1e-9 || math.Abs(a.Range[1]-11) > 1e-9 {
		t.Errorf("Range = %v, want [-1 11]", a.Range)
	}
	if p := a.C2P(0); math.Abs(p-110) > 1e-9 {
		t.Errorf("C2P(0) = %v, want 110", p)
	}
}

func TestComputeRangePadded(t *testing.T) {
	a := New("y", Linear)
	a.Length = 110
	a.Expand(a.FindExtremes([]float64{0, 100}, PadOptions{Padded: true}))
	a.ComputeRange()

	// 5% of 110 px on each side leaves 99 px for 100 units.
	pad := 5.5 * 100 / 99
	if math.Abs(a.Range[0]+pad) > 1e-9 || math.Abs(a.Range[1]-100-pad) > 1e-9 {
		t.Errorf("Range = %v, want [%v %v]", a.Range, -pad, 100+pad)
	}
}

func TestComputeRangeSkipsNonFinite(t *testing.T) {
	a := New("y", Linear)
	a.Length = 100
	a.Expand(a.FindExtremes([]float64{math.Inf(1), 2, math.NaN(), 4, math.Inf(-1)}, PadOptions{}))
	a.ComputeRange()

	if a.Range != [2]float64{2, 4} {
		t.Errorf("Range = %v, want [2 4]", a.Range)
	}
}

func TestComputeRangeFixed(t *testing.T) {
	a := New("y", Linear)
	a.AutoRange = false
	a.Range = [2]float64{-5, 5}
	a.Length = 100
	a.Expand(a.FindExtremes([]float64{100}, PadOptions{}))
	a.ComputeRange()

	if a.Range != [2]float64{-5, 5} {
		t.Errorf("Range = %v, want fixed [-5 5]", a.Range)
	}
}

func TestComputeRangeEmptyAndSingle(t *testing.T) {
	a := New("y", Linear)
	a.Length = 100
	a.ComputeRange()
	if a.Range != DefaultRange {
		t.Errorf("empty Range = %v, want %v", a.Range, DefaultRange)
	}

	a.Expand(a.FindExtremes([]float64{3}, PadOptions{}))
	a.ComputeRange()
	if a.Range != [2]float64{2, 4} {
		t.Errorf("single Range = %v, want [2 4]", a.Range)
	}
}

func TestExpandDropsDominatedPoints(t *testing.T) {
	a := New("x", Linear)
	a.Expand(Extremes{Min: []Point{{Val: 1, Pad: 0}, {Val: 0, Pad: 5}, {Val: 2, Pad: 1}}})

	got := a.Extremes().Min
	if len(got) != 1 || got[0] != (Point{Val: 0, Pad: 5}) {
		t.Errorf("Min = %v, want [{0 5}]", got)
	}

	a.Expand(Extremes{Min: []Point{{Val: -1, Pad: 0}}})
	if got := a.Extremes().Min; len(got) != 2 {
		t.Errorf("Min = %v, want two incomparable points", got)
	}

	a.ResetExtremes()
	if !a.Extremes().Empty() {
		t.Error("ResetExtremes left points behind")
	}
}

func TestDistinctVals(t *testing.T) {
	tests := []struct {
		name     string
		in       []float64
		wantVals []float64
		wantDiff float64
	}{
		{"sorted unique", []float64{3, 1, 2}, []float64{1, 2, 3}, 1},
		{"duplicates", []float64{1, 2, 3, 1, 2, 3}, []float64{1, 2, 3}, 1},
		{"uneven", []float64{0, 10, 12}, []float64{0, 10, 12}, 2},
		{"single", []float64{4}, []float64{4}, 1},
		{"all equal", []float64{4, 4, 4}, []float64{4}, 1},
		{"within tolerance", []float64{0, 1e-9, 1}, []float64{0, 1}, 1 - 1e-9},
		{"nan ignored", []float64{math.NaN(), 2, 5}, []float64{2, 5}, 3},
		{"empty", nil, nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DistinctVals(tt.in)
			if len(got.Vals) != len(tt.wantVals) {
				t.Fatalf("Vals = %v, want %v", got.Vals, tt.wantVals)
			}
			for i := range got.Vals {
				if got.Vals[i] != tt.wantVals[i] {
					t.Errorf("Vals = %v, want %v", got.Vals, tt.wantVals)
				}
			}
			if got.MinDiff != tt.wantDiff {
				t.Errorf("MinDiff = %v, want %v", got.MinDiff, tt.wantDiff)
			}
		})
	}
}
