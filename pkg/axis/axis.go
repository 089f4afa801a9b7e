package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/specbox/pkg/errors"
)

// Type discriminates how data values map to coordinates.
type Type int

const (
	Linear Type = iota
	Log
	Category
	Date
)

var typeNames = map[Type]string{
	Linear:   "linear",
	Log:      "log",
	Category: "category",
	Date:     "date",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return "unknown"
}

// ParseType parses an axis type name.
func ParseType(s string) (Type, error) {
	for t, name := range typeNames {
		if name == s {
			return t, nil
		}
	}
	return Linear, errors.New(errors.ErrCodeInvalidInput, "unknown axis type %q", s)
}

// DefaultRange is the range of an autoranged axis with nothing to show.
var DefaultRange = [2]float64{-1, 6}

// Axis is one cartesian axis of a figure.
type Axis struct {
	// ID is the axis id, such as "x", "y" or "y2".
	ID string
	// Type selects the d2c mapping.
	Type Type
	// Range is the visible range in linear space.
	Range [2]float64
	// AutoRange makes ComputeRange derive Range from collected extremes.
	AutoRange bool
	// Offset and Length place the axis in pixels. For y axes Offset is the
	// top edge and pixel values grow downwards.
	Offset, Length float64

	categories []string
	catIndex   map[string]int

	mins, maxs []Point

	minDtick    float64
	forceTick0  float64
	minDtickSet bool
}

// New returns an autoranged axis of the given type.
func New(id string, typ Type) *Axis {
	return &Axis{
		ID:        id,
		Type:      typ,
		Range:     DefaultRange,
		AutoRange: true,
		catIndex:  map[string]int{},
	}
}

// Letter returns 'x' or 'y'.
func (a *Axis) Letter() byte {
	if a.ID == "" {
		return 'x'
	}
	return a.ID[0]
}

// SetCategories seeds the category list. Later unseen names are appended.
func (a *Axis) SetCategories(names []string) {
	a.categories = nil
	a.catIndex = map[string]int{}
	for _, n := range names {
		a.categoryIndex(n)
	}
}

// Categories returns the category names in index order.
func (a *Axis) Categories() []string {
	return a.categories
}

func (a *Axis) categoryIndex(name string) float64 {
	if i, ok := a.catIndex[name]; ok {
		return float64(i)
	}
	a.catIndex[name] = len(a.categories)
	a.categories = append(a.categories, name)
	return float64(len(a.categories) - 1)
}

// D2C converts a data value to a calc coordinate. Values that cannot be
// converted yield NaN. On category axes unseen names are registered.
func (a *Axis) D2C(v any) float64 {
	switch a.Type {
	case Category:
		if v == nil {
			return math.NaN()
		}
		s := formatDatum(v)
		if s == "" {
			return math.NaN()
		}
		return a.categoryIndex(s)
	case Date:
		return dateToMillis(v)
	default:
		return toNumber(v)
	}
}

// C2L converts a calc coordinate to linear space.
func (a *Axis) C2L(c float64) float64 {
	if a.Type == Log {
		if c <= 0 {
			return math.NaN()
		}
		return math.Log10(c)
	}
	return c
}

// L2C converts a linear coordinate back to calc space.
func (a *Axis) L2C(l float64) float64 {
	if a.Type == Log {
		return math.Pow(10, l)
	}
	return l
}

// L2P converts a linear coordinate to pixels.
func (a *Axis) L2P(l float64) float64 {
	span := a.Range[1] - a.Range[0]
	if span == 0 {
		return a.Offset + a.Length/2
	}
	frac := (l - a.Range[0]) / span
	if a.Letter() == 'y' {
		frac = 1 - frac
	}
	return a.Offset + frac*a.Length
}

// P2L converts pixels to a linear coordinate.
func (a *Axis) P2L(p float64) float64 {
	if a.Length == 0 {
		return a.Range[0]
	}
	frac := (p - a.Offset) / a.Length
	if a.Letter() == 'y' {
		frac = 1 - frac
	}
	return a.Range[0] + frac*(a.Range[1]-a.Range[0])
}

// C2P converts a calc coordinate to pixels.
func (a *Axis) C2P(c float64) float64 {
	return a.L2P(a.C2L(c))
}

// P2C converts pixels to a calc coordinate.
func (a *Axis) P2C(p float64) float64 {
	return a.L2C(a.P2L(p))
}

// MakeCalcData converts a data column to calc coordinates.
func (a *Axis) MakeCalcData(values []any) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = a.D2C(v)
	}
	return out
}

// CoerceName converts a trace name to a coordinate when the name is
// compatible with the axis type: any non-empty name on category axes, a
// number on linear and log axes, a date on date axes.
func (a *Axis) CoerceName(name string) (float64, bool) {
	if name == "" {
		return 0, false
	}
	c := a.D2C(name)
	if math.IsNaN(c) || (a.Type == Log && c <= 0) {
		return 0, false
	}
	return c, true
}

// FormatValue formats a calc coordinate for display.
func (a *Axis) FormatValue(c float64) string {
	if math.IsNaN(c) {
		return ""
	}
	switch a.Type {
	case Category:
		i := int(math.Round(c))
		if i >= 0 && i < len(a.categories) && float64(i) == c {
			return a.categories[i]
		}
	case Date:
		return time.UnixMilli(int64(c)).UTC().Format(dateLayout(a.Range[1] - a.Range[0]))
	}
	return strconv.FormatFloat(c, 'g', 6, 64)
}

func dateLayout(span float64) string {
	switch {
	case span < float64(2*24*time.Hour/time.Millisecond):
		return "2006-01-02 15:04"
	default:
		return "2006-01-02"
	}
}

func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case int32:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-01",
}

func dateToMillis(v any) float64 {
	switch x := v.(type) {
	case time.Time:
		return float64(x.UnixMilli())
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return float64(t.UnixMilli())
			}
		}
		return math.NaN()
	default:
		return toNumber(v)
	}
}

func formatDatum(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
