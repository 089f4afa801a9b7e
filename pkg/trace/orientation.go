package trace

import "github.com/matzehuels/specbox/pkg/errors"

// Orientation selects which screen axis carries box positions.
type Orientation string

const (
	// Vertical boxes sit at x positions and extend along y.
	Vertical Orientation = "v"
	// Horizontal boxes sit at y positions and extend along x.
	Horizontal Orientation = "h"
)

// Validate checks o is a known orientation.
func (o Orientation) Validate() error {
	return errors.ValidateOneOf(errors.ErrCodeInvalidOrientation, "orientation", string(o), string(Vertical), string(Horizontal))
}

// PosLetter returns the letter of the position axis.
func (o Orientation) PosLetter() byte {
	if o == Horizontal {
		return 'y'
	}
	return 'x'
}

// ValLetter returns the letter of the value axis.
func (o Orientation) ValLetter() byte {
	if o == Horizontal {
		return 'x'
	}
	return 'y'
}

// XY maps a (position, value) pair to (x, y).
func (o Orientation) XY(pos, val float64) (x, y float64) {
	if o == Horizontal {
		return val, pos
	}
	return pos, val
}

// PosVal maps an (x, y) pair to (position, value).
func (o Orientation) PosVal(x, y float64) (pos, val float64) {
	if o == Horizontal {
		return y, x
	}
	return x, y
}
