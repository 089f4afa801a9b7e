package boxlayout

import (
	"math"
	"testing"

	"github.com/matzehuels/specbox/pkg/axis"
)

func TestResolvePositions(t *testing.T) {
	tests := []struct {
		name    string
		typ     axis.Type
		doc     string
		ordinal int
		want    []float64
	}{
		{"position column", axis.Linear, `{"x":[3,"4",5],"y":[{},{},{}],"x0":9,"name":"7"}`, 2, []float64{3, 4, 5}},
		{"anchor", axis.Linear, `{"y":[{},{}],"x0":9,"name":"7"}`, 2, []float64{9, 9}},
		{"numeric name", axis.Linear, `{"y":[{},{}],"name":"7"}`, 2, []float64{7, 7}},
		{"text name on linear", axis.Linear, `{"y":[{}],"name":"Line A"}`, 2, []float64{2}},
		{"category name", axis.Category, `{"y":[{}],"name":"Line A"}`, 2, []float64{0}},
		{"ordinal", axis.Linear, `{"y":[{},{}]}`, 4, []float64{4, 4}},
		{"short column", axis.Linear, `{"x":[1],"y":[{},{}]}`, 0, []float64{1, math.NaN()}},
		{"horizontal anchor", axis.Linear, `{"x":[{}],"y0":-2}`, 0, []float64{-2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := newTrace(t, 0, tt.doc)
			got := ResolvePositions(tr, axis.New("x", tt.typ), tt.ordinal)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] && !(math.IsNaN(got[i]) && math.IsNaN(tt.want[i])) {
					t.Errorf("got %v, want %v", got, tt.want)
					break
				}
			}
		})
	}
}
