package sink

import (
	"encoding/json"
	"math"

	"github.com/matzehuels/specbox/pkg/geometry"
	"github.com/matzehuels/specbox/pkg/hover"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	ticks int
}

// WithJSONTicks sets the approximate number of ticks listed per axis.
func WithJSONTicks(n int) JSONOption { return func(r *jsonRenderer) { r.ticks = n } }

type jsonOutput struct {
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Plot   Rect                `json:"plot"`
	Axes   []jsonAxis          `json:"axes"`
	Traces []geometry.ShapeSet `json:"traces"`
	Hover  *hover.LabelSet     `json:"hover,omitempty"`
}

type jsonAxis struct {
	ID    string     `json:"id"`
	Type  string     `json:"type"`
	Range [2]float64 `json:"range"`
	Ticks []jsonTick `json:"ticks,omitempty"`
}

type jsonTick struct {
	Value float64 `json:"value"`
	Pixel float64 `json:"pixel"`
	Label string  `json:"label"`
}

// RenderJSON exports the scene geometry as a pretty-printed JSON document,
// for clients that draw the chart themselves. Shapes with a non-finite
// coordinate, such as the whiskers of a box whose limits coincide, are
// left out since JSON cannot carry them.
func RenderJSON(s Scene, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{ticks: defaultTicks}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		Width:  s.Width,
		Height: s.Height,
		Plot:   s.Plot,
		Axes:   make([]jsonAxis, 0, len(s.Axes)),
		Traces: make([]geometry.ShapeSet, 0, len(s.Sets)),
		Hover:  s.Hover,
	}
	for _, a := range s.Axes {
		ja := jsonAxis{ID: a.ID, Type: a.Type.String(), Range: a.Range}
		for _, t := range a.Ticks(r.ticks) {
			ja.Ticks = append(ja.Ticks, jsonTick{Value: t.Value, Pixel: t.Pixel, Label: t.Label})
		}
		out.Axes = append(out.Axes, ja)
	}
	for _, set := range s.Sets {
		kept := geometry.ShapeSet{Trace: set.Trace, Name: set.Name, Shapes: make([]geometry.Shape, 0, len(set.Shapes))}
		for _, sh := range set.Shapes {
			if finiteShape(sh) {
				kept.Shapes = append(kept.Shapes, sh)
			}
		}
		out.Traces = append(out.Traces, kept)
	}

	return json.MarshalIndent(out, "", "  ")
}

func finiteShape(sh geometry.Shape) bool {
	ok := func(p geometry.Point) bool {
		return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
	}
	for _, p := range sh.Points {
		if !ok(p) {
			return false
		}
	}
	return ok(sh.Center)
}
