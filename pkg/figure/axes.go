package figure

import (
	"math"
	"strings"

	"github.com/matzehuels/specbox/pkg/axis"
	"github.com/matzehuels/specbox/pkg/errors"
	"github.com/matzehuels/specbox/pkg/trace"
)

func (c AxisConfig) validate(letter byte, id string) error {
	if id == "" || id[0] != letter {
		return errors.New(errors.ErrCodeInvalidFigure, "%caxis key %q must start with %q", letter, id, letter)
	}
	if c.Type != "" {
		if _, err := axis.ParseType(c.Type); err != nil {
			return err
		}
	}
	if r := c.Range; r != nil && (!isFinite(r[0]) || !isFinite(r[1]) || r[0] == r[1]) {
		return errors.New(errors.ErrCodeInvalidFigure, "axis %s has an empty range [%v, %v]", id, r[0], r[1])
	}
	return nil
}

// PlotArea returns the plot rectangle in frame pixels as x0, y0, x1, y1.
// Prepare must have run.
func (l *Layout) PlotArea() (x0, y0, x1, y1 float64) {
	m := l.Margin
	return m.L, m.T, l.Width - m.R, l.Height - m.B
}

// BuildAxes returns a fresh axis for every axis the layout configures or a
// trace refers to, placed inside the plot area. Axes without a configured
// type take the type their data suggests. Prepare must have run.
func (f *Figure) BuildAxes() axis.Set {
	x0, y0, x1, y1 := f.Layout.PlotArea()

	ids := map[string]bool{}
	for id := range f.Layout.XAxis {
		ids[id] = true
	}
	for id := range f.Layout.YAxis {
		ids[id] = true
	}
	for _, tr := range f.Data {
		if tr.IsVisible() {
			ids[tr.XAxis] = true
			ids[tr.YAxis] = true
		}
	}

	set := axis.Set{}
	for id := range ids {
		cfg := f.Layout.XAxis[id]
		if id[0] == 'y' {
			cfg = f.Layout.YAxis[id]
		}
		typ, err := axis.ParseType(cfg.Type)
		if cfg.Type == "" || err != nil {
			typ = f.inferType(id)
		}

		a := axis.New(id, typ)
		if len(cfg.Categories) > 0 {
			a.SetCategories(cfg.Categories)
		}
		if cfg.Range != nil {
			a.Range = *cfg.Range
			a.AutoRange = false
		}
		if cfg.AutoRange != nil {
			a.AutoRange = *cfg.AutoRange
		}
		if a.Letter() == 'x' {
			a.Offset, a.Length = x0, x1-x0
		} else {
			a.Offset, a.Length = y0, y1-y0
		}
		set[id] = a
	}
	return set
}

// inferType picks an axis type from the positions the traces put on the
// axis: numbers give a linear axis, strings that all parse as dates a date
// axis and other strings a category axis. Value axes are linear.
func (f *Figure) inferType(id string) axis.Type {
	var values []any
	for _, tr := range f.Data {
		if !tr.IsVisible() {
			continue
		}
		posID := tr.XAxis
		if tr.Orientation == trace.Horizontal {
			posID = tr.YAxis
		}
		if posID != id {
			continue
		}
		vals, anchor := tr.Positions()
		switch {
		case len(vals) > 0:
			values = append(values, vals...)
		case anchor != nil:
			values = append(values, anchor)
		case tr.Name != "":
			values = append(values, tr.Name)
		}
	}
	return autoType(values)
}

func autoType(values []any) axis.Type {
	lin, date := axis.New("", axis.Linear), axis.New("", axis.Date)
	sawString, allDates := false, true
	for _, v := range values {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" || !math.IsNaN(lin.D2C(s)) {
			continue
		}
		sawString = true
		if math.IsNaN(date.D2C(s)) {
			allDates = false
		}
	}
	switch {
	case !sawString:
		return axis.Linear
	case allDates:
		return axis.Date
	default:
		return axis.Category
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
