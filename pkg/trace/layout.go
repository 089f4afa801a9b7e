package trace

import "github.com/matzehuels/specbox/pkg/errors"

// BoxMode selects how same-position boxes of different traces share a slot.
type BoxMode string

const (
	BoxModeOverlay BoxMode = "overlay"
	BoxModeGroup   BoxMode = "group"
)

// DensityMode selects when probability density lobes are drawn.
type DensityMode string

const (
	DensityAlways DensityMode = "always"
	DensityHover  DensityMode = "hover"
	DensityNever  DensityMode = "never"
)

// HoverMode selects the distance metric of hover picking.
type HoverMode string

const (
	HoverClosest HoverMode = "closest"
	HoverX       HoverMode = "x"
	HoverY       HoverMode = "y"
)

// Validate checks m is a known hover mode.
func (m HoverMode) Validate() error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidHoverMode, "hovermode", string(m), string(HoverClosest), string(HoverX), string(HoverY))
}

// Default layout attribute values.
const (
	DefaultBoxGap                   = 0.3
	DefaultBoxGroupGap              = 0.3
	DefaultProbabilityDensityMargin = 0.1
	DefaultShowOutliersText         = "Show outliers."
)

// Layout holds the figure-wide box attributes.
type Layout struct {
	BoxMode     BoxMode  `json:"boxmode,omitempty"`
	BoxGap      *float64 `json:"boxgap,omitempty"`
	BoxGroupGap *float64 `json:"boxgroupgap,omitempty"`

	ShowProbabilityDensity   DensityMode `json:"showProbabilityDensity,omitempty"`
	ProbabilityDensityMargin *float64    `json:"probabilityDensityMargin,omitempty"`

	ScaleIgnoresOutliers *bool  `json:"scaleIgnoresOutliers,omitempty"`
	ShowOutliersText     string `json:"showOutliersText,omitempty"`
	OutliersHoverText    string `json:"outliersHoverText,omitempty"`

	HoverMode HoverMode `json:"hovermode,omitempty"`
}

// SetDefaults fills unset attributes.
func (l *Layout) SetDefaults() {
	if l.BoxMode == "" {
		l.BoxMode = BoxModeOverlay
	}
	if l.BoxGap == nil {
		v := DefaultBoxGap
		l.BoxGap = &v
	}
	if l.BoxGroupGap == nil {
		v := DefaultBoxGroupGap
		l.BoxGroupGap = &v
	}
	if l.ShowProbabilityDensity == "" {
		l.ShowProbabilityDensity = DensityHover
	}
	if l.ProbabilityDensityMargin == nil {
		v := DefaultProbabilityDensityMargin
		l.ProbabilityDensityMargin = &v
	}
	if l.ScaleIgnoresOutliers == nil {
		v := true
		l.ScaleIgnoresOutliers = &v
	}
	if l.ShowOutliersText == "" {
		l.ShowOutliersText = DefaultShowOutliersText
	}
	if l.HoverMode == "" {
		l.HoverMode = HoverClosest
	}
}

// Validate checks the layout attributes.
func (l *Layout) Validate() error {
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidBoxMode, "boxmode", string(l.BoxMode), string(BoxModeOverlay), string(BoxModeGroup)); err != nil {
		return err
	}
	if err := errors.ValidateOneOf(errors.ErrCodeInvalidInput, "showProbabilityDensity", string(l.ShowProbabilityDensity), string(DensityAlways), string(DensityHover), string(DensityNever)); err != nil {
		return err
	}
	if err := l.HoverMode.Validate(); err != nil {
		return err
	}
	if err := errors.ValidateFraction("boxgap", l.Gap()); err != nil {
		return err
	}
	if err := errors.ValidateFraction("boxgroupgap", l.GroupGap()); err != nil {
		return err
	}
	return errors.ValidateFraction("probabilityDensityMargin", l.DensityMargin())
}

// Gap returns boxgap.
func (l *Layout) Gap() float64 { return deref(l.BoxGap, DefaultBoxGap) }

// GroupGap returns boxgroupgap.
func (l *Layout) GroupGap() float64 { return deref(l.BoxGroupGap, DefaultBoxGroupGap) }

// DensityMargin returns probabilityDensityMargin.
func (l *Layout) DensityMargin() float64 {
	return deref(l.ProbabilityDensityMargin, DefaultProbabilityDensityMargin)
}

// IgnoresOutliers reports whether value axes exclude outliers.
func (l *Layout) IgnoresOutliers() bool {
	return l.ScaleIgnoresOutliers == nil || *l.ScaleIgnoresOutliers
}

// ToggleOutliers flips scaleIgnoresOutliers, the action behind the reveal
// outliers click.
func (l *Layout) ToggleOutliers() {
	v := !l.IgnoresOutliers()
	l.ScaleIgnoresOutliers = &v
}

func deref(p *float64, dflt float64) float64 {
	if p == nil {
		return dflt
	}
	return *p
}
