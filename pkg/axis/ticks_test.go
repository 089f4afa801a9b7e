package axis

import "testing"

func TestMinDtick(t *testing.T) {
	tests := []struct {
		name     string
		calls    [][2]float64
		wantTick float64
		wantOK   bool
	}{
		{"single request", [][2]float64{{2, 0}}, 2, true},
		{"finer multiple wins", [][2]float64{{2, 0}, {1, 1}}, 1, true},
		{"coarser multiple keeps", [][2]float64{{1, 0}, {3, 3}}, 1, true},
		{"incompatible spacing resets", [][2]float64{{2, 0}, {3, 0}}, 0, false},
		{"misaligned start resets", [][2]float64{{2, 0}, {2, 1}}, 0, false},
		{"reset is sticky", [][2]float64{{2, 0}, {3, 0}, {1, 0}}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New("x", Linear)
			for _, c := range tt.calls {
				a.MinDtick(c[0], c[1])
			}
			dtick, _, ok := a.TickHint()
			if ok != tt.wantOK || dtick != tt.wantTick {
				t.Errorf("TickHint() = %v, %v, want %v, %v", dtick, ok, tt.wantTick, tt.wantOK)
			}
		})
	}
}

func TestTicks(t *testing.T) {
	a := New("x", Linear)
	a.Range = [2]float64{0, 10}
	a.Length = 100

	ticks := a.Ticks(5)
	want := []string{"0", "2", "4", "6", "8", "10"}
	if len(ticks) != len(want) {
		t.Fatalf("got %d ticks, want %d", len(ticks), len(want))
	}
	for i, tk := range ticks {
		if tk.Label != want[i] {
			t.Errorf("tick %d label = %q, want %q", i, tk.Label, want[i])
		}
	}

	c := New("x", Category)
	c.SetCategories([]string{"a", "b", "c"})
	c.Range = [2]float64{-0.5, 2.5}
	if got := c.Ticks(10); len(got) != 3 || got[1].Label != "b" {
		t.Errorf("category ticks = %+v", got)
	}
}
