package trace

import (
	"slices"

	"github.com/matzehuels/specbox/pkg/boxstat"
	"github.com/matzehuels/specbox/pkg/errors"
)

// TransformOffset is the only supported transform type.
const TransformOffset = "offset"

// Transform shifts trace data by a constant.
type Transform struct {
	Type    string  `json:"type"`
	Enabled *bool   `json:"enabled,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
}

func (tr *Transform) setDefaults() {
	if tr.Enabled == nil {
		enabled := true
		tr.Enabled = &enabled
	}
}

// Validate checks the transform type.
func (tr Transform) Validate() error {
	if tr.Type != TransformOffset {
		return errors.New(errors.ErrCodeUnsupported, "unsupported transform %q", tr.Type)
	}
	return nil
}

// IsEnabled reports whether the transform applies.
func (tr Transform) IsEnabled() bool {
	return tr.Enabled == nil || *tr.Enabled
}

// ApplyTransforms returns a copy of t with every enabled transform applied
// to its data. Numeric positions and every box statistic are shifted;
// non-numeric positions are left alone.
func ApplyTransforms(t Trace) Trace {
	if len(t.Transforms) == 0 {
		return t
	}
	t.X = cloneColumn(t.X)
	t.Y = cloneColumn(t.Y)
	for _, tr := range t.Transforms {
		if !tr.IsEnabled() || tr.Type != TransformOffset {
			continue
		}
		shiftColumn(&t.X, tr.X)
		shiftColumn(&t.Y, tr.Y)
	}
	return t
}

func cloneColumn(c Column) Column {
	out := Column{Values: slices.Clone(c.Values)}
	if c.Stats != nil {
		out.Stats = make([]boxstat.Raw, len(c.Stats))
		for i, s := range c.Stats {
			out.Stats[i] = s.Clone()
		}
	}
	return out
}

func shiftColumn(c *Column, delta float64) {
	if delta == 0 {
		return
	}
	for i, s := range c.Stats {
		c.Stats[i] = s.Shift(delta)
	}
	for i, v := range c.Values {
		switch x := v.(type) {
		case float64:
			c.Values[i] = x + delta
		case int64:
			c.Values[i] = float64(x) + delta
		case int:
			c.Values[i] = float64(x) + delta
		}
	}
}
