package world

import "fmt"

// Position identifies a grid cell by avenue (west-east, 0-based from the
// west edge) and street (south-north, 0-based from the south edge).
// Positions produced by Moved may carry a negative coordinate; such values
// fail every bounds check rather than being rejected at creation.
type Position struct {
	Avenue int `json:"avenue"`
	Street int `json:"street"`
}

// NewPosition validates that both coordinates are non-negative.
func NewPosition(avenue, street int) (Position, error) {
	if avenue < 0 || street < 0 {
		return Position{}, fmt.Errorf("%w: avenue and street must be non-negative (avenue=%d, street=%d)",
			ErrValidation, avenue, street)
	}
	return Position{Avenue: avenue, Street: street}, nil
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Avenue, p.Street)
}

// WithAvenue returns a copy of p with the avenue replaced.
func (p Position) WithAvenue(avenue int) Position {
	return Position{Avenue: avenue, Street: p.Street}
}

// WithStreet returns a copy of p with the street replaced.
func (p Position) WithStreet(street int) Position {
	return Position{Avenue: p.Avenue, Street: street}
}

// Moved returns the position one cell away in the given direction
// (north +street, south -street, east +avenue, west -avenue).
func (p Position) Moved(d Direction) Position {
	switch d {
	case North:
		return p.WithStreet(p.Street + 1)
	case South:
		return p.WithStreet(p.Street - 1)
	case East:
		return p.WithAvenue(p.Avenue + 1)
	default:
		return p.WithAvenue(p.Avenue - 1)
	}
}

// InBoundsOf reports whether p lies inside a world of the given size,
// treating the size as an open upper bound on both axes.
func (p Position) InBoundsOf(size Position) bool {
	return p.Avenue >= 0 && p.Street >= 0 &&
		p.Avenue < size.Avenue && p.Street < size.Street
}
