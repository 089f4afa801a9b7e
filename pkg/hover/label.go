package hover

// Attribute names carried by sentinel labels.
const (
	AttrNormalizationFailed = "normalizationFailed"
	AttrOutliersMark        = "outliersMark"
)

// NormalizationFailedText is the text of the failed box label.
const NormalizationFailedText = "normalization failed"

// RevealColor is the color of the reveal-outliers label.
const RevealColor = "rgba(255, 0, 0, 0.3)"

// Label is one hover label. X0..Y1 are the pixel anchor span; a statistic
// label spans the box width at the statistic's value.
type Label struct {
	Trace int    `json:"trace"`
	Box   int    `json:"box"`
	Name  string `json:"name,omitempty"`

	PositionLabel string `json:"position_label"`
	ValueLabel    string `json:"value_label,omitempty"`
	Text          string `json:"text,omitempty"`
	Color         string `json:"color"`

	X0 float64 `json:"x0"`
	X1 float64 `json:"x1"`
	Y0 float64 `json:"y0"`
	Y1 float64 `json:"y1"`

	Attr         string `json:"attr"`
	OutliersMark bool   `json:"outliers_mark,omitempty"`
}

// LabelSet is the result of a successful pick.
type LabelSet struct {
	Trace    int     `json:"trace"`
	Box      int     `json:"box"`
	Distance float64 `json:"distance"`
	Labels   []Label `json:"labels"`
}

// Attrs returns the attribute of every label in order.
func (s *LabelSet) Attrs() []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s.Labels))
	for i, l := range s.Labels {
		out[i] = l.Attr
	}
	return out
}

// Reveal reports whether clicking the picked point should bring hidden
// outliers into the axis range.
func Reveal(s *LabelSet) bool {
	if s == nil {
		return false
	}
	for _, l := range s.Labels {
		if l.OutliersMark {
			return true
		}
	}
	return false
}
