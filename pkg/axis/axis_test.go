package axis

import (
	"math"
	"testing"
	"time"
)

func TestD2C(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		typ  Type
		in   any
		want float64
	}{
		{"linear float", Linear, 2.5, 2.5},
		{"linear int", Linear, int64(3), 3},
		{"linear numeric string", Linear, " 4.5 ", 4.5},
		{"linear junk", Linear, "abc", math.NaN()},
		{"linear nil", Linear, nil, math.NaN()},
		{"date string", Date, "2024-03-01", float64(day.UnixMilli())},
		{"date time", Date, day, float64(day.UnixMilli())},
		{"date rfc3339", Date, "2024-03-01T00:00:00Z", float64(day.UnixMilli())},
		{"date junk", Date, "soon", math.NaN()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := New("x", tt.typ).D2C(tt.in)
			if math.IsNaN(tt.want) {
				if !math.IsNaN(got) {
					t.Errorf("D2C(%v) = %v, want NaN", tt.in, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("D2C(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCategoryD2C(t *testing.T) {
	a := New("x", Category)
	a.SetCategories([]string{"a", "b"})

	if got := a.D2C("b"); got != 1 {
		t.Errorf("D2C(b) = %v, want 1", got)
	}
	if got := a.D2C("c"); got != 2 {
		t.Errorf("D2C(c) = %v, want 2 (appended)", got)
	}
	if got := a.D2C(float64(7)); got != 3 {
		t.Errorf("D2C(7) = %v, want 3", got)
	}
	if got := a.FormatValue(2); got != "c" {
		t.Errorf("FormatValue(2) = %q, want c", got)
	}
	if !math.IsNaN(a.D2C("")) {
		t.Error("empty category should not resolve")
	}
}

func TestPixelConversion(t *testing.T) {
	x := New("x", Linear)
	x.Range = [2]float64{0, 10}
	x.Offset, x.Length = 50, 500

	y := New("y", Linear)
	y.Range = [2]float64{0, 10}
	y.Offset, y.Length = 20, 400

	tests := []struct {
		name string
		ax   *Axis
		c    float64
		want float64
	}{
		{"x start", x, 0, 50},
		{"x mid", x, 5, 300},
		{"x end", x, 10, 550},
		{"y bottom", y, 0, 420},
		{"y top", y, 10, 20},
		{"y mid", y, 2.5, 320},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ax.C2P(tt.c); got != tt.want {
				t.Errorf("C2P(%v) = %v, want %v", tt.c, got, tt.want)
			}
			if got := tt.ax.P2C(tt.want); math.Abs(got-tt.c) > 1e-9 {
				t.Errorf("P2C(%v) = %v, want %v", tt.want, got, tt.c)
			}
		})
	}
}

func TestLogAxis(t *testing.T) {
	a := New("x", Log)
	a.Range = [2]float64{0, 2}
	a.Length = 200

	if got := a.C2P(10); math.Abs(got-100) > 1e-9 {
		t.Errorf("C2P(10) = %v, want 100", got)
	}
	if !math.IsNaN(a.C2L(-1)) {
		t.Error("C2L of a non-positive value should be NaN")
	}
	if _, ok := a.CoerceName("0"); ok {
		t.Error("CoerceName(0) on a log axis should fail")
	}
}

func TestCoerceName(t *testing.T) {
	tests := []struct {
		name   string
		typ    Type
		in     string
		wantOK bool
	}{
		{"category any", Category, "Line 7", true},
		{"category empty", Category, "", false},
		{"linear numeric", Linear, "3", true},
		{"linear text", Linear, "Line 7", false},
		{"date valid", Date, "2024-01-02", true},
		{"date text", Date, "Line 7", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := New("x", tt.typ).CoerceName(tt.in); ok != tt.wantOK {
				t.Errorf("CoerceName(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
		})
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range []Type{Linear, Log, Category, Date} {
		got, err := ParseType(typ.String())
		if err != nil || got != typ {
			t.Errorf("ParseType(%q) = %v, %v", typ.String(), got, err)
		}
	}
	if _, err := ParseType("polar"); err == nil {
		t.Error("ParseType(polar) should fail")
	}
}
