package trace

import (
	"encoding/json"
	"testing"

	"github.com/matzehuels/specbox/pkg/errors"
)

func TestLayoutDefaults(t *testing.T) {
	var l Layout
	l.SetDefaults()

	if l.BoxMode != BoxModeOverlay || l.Gap() != 0.3 || l.GroupGap() != 0.3 {
		t.Errorf("box defaults = %q %v %v", l.BoxMode, l.Gap(), l.GroupGap())
	}
	if l.ShowProbabilityDensity != DensityHover || l.DensityMargin() != 0.1 {
		t.Errorf("density defaults = %q %v", l.ShowProbabilityDensity, l.DensityMargin())
	}
	if !l.IgnoresOutliers() || l.ShowOutliersText != "Show outliers." || l.HoverMode != HoverClosest {
		t.Errorf("outlier defaults = %v %q %q", l.IgnoresOutliers(), l.ShowOutliersText, l.HoverMode)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLayoutKeepsExplicitZero(t *testing.T) {
	var l Layout
	if err := json.Unmarshal([]byte(`{"boxgap":0,"scaleIgnoresOutliers":false}`), &l); err != nil {
		t.Fatal(err)
	}
	l.SetDefaults()
	if l.Gap() != 0 {
		t.Errorf("boxgap = %v, want 0", l.Gap())
	}
	if l.IgnoresOutliers() {
		t.Error("explicit scaleIgnoresOutliers=false was overwritten")
	}
}

func TestLayoutValidate(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"boxmode", `{"boxmode":"stack"}`, errors.ErrCodeInvalidBoxMode},
		{"hovermode", `{"hovermode":"nearest"}`, errors.ErrCodeInvalidHoverMode},
		{"boxgap", `{"boxgap":1}`, errors.ErrCodeInvalidInput},
		{"density", `{"showProbabilityDensity":"sometimes"}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l Layout
			if err := json.Unmarshal([]byte(tt.doc), &l); err != nil {
				t.Fatal(err)
			}
			l.SetDefaults()
			if err := l.Validate(); !errors.Is(err, tt.code) {
				t.Errorf("Validate() = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestToggleOutliers(t *testing.T) {
	var l Layout
	l.SetDefaults()
	l.ToggleOutliers()
	if l.IgnoresOutliers() {
		t.Error("first toggle should reveal outliers")
	}
	l.ToggleOutliers()
	if !l.IgnoresOutliers() {
		t.Error("second toggle should hide outliers again")
	}
}
