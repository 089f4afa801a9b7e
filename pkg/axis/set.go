package axis

import (
	"maps"
	"slices"
)

// Set holds the axes of a figure by id.
type Set map[string]*Axis

// Get returns the axis with id, creating a linear axis if none exists.
func (s Set) Get(id string) *Axis {
	if a, ok := s[id]; ok {
		return a
	}
	a := New(id, Linear)
	s[id] = a
	return a
}

// IDs returns the axis ids in sorted order.
func (s Set) IDs() []string {
	return slices.Sorted(maps.Keys(s))
}

// ComputeRanges fixes the range of every axis.
func (s Set) ComputeRanges() {
	for _, a := range s {
		a.ComputeRange()
	}
}
