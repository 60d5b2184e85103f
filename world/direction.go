package world

import "fmt"

// Direction is one of the four compass orientations a robot can face.
// The zero value is North. Directions are ordered clockwise so that the
// turn operations reduce to modular arithmetic.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// directionNames is indexed by Direction.
var directionNames = [4]string{"north", "east", "south", "west"}

// ParseDirection converts a lowercase direction name ("north", "south",
// "east", "west") into a Direction.
func ParseDirection(s string) (Direction, error) {
	for i, name := range directionNames {
		if s == name {
			return Direction(i), nil
		}
	}
	return North, fmt.Errorf("%w: %q is not a direction", ErrValidation, s)
}

func (d Direction) String() string {
	if d > West {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// TurnedLeft returns the direction rotated 90 degrees counterclockwise.
func (d Direction) TurnedLeft() Direction {
	return (d + 3) % 4
}

// TurnedRight returns the direction rotated 90 degrees clockwise.
func (d Direction) TurnedRight() Direction {
	return (d + 1) % 4
}

// TurnedAround returns the opposite direction.
func (d Direction) TurnedAround() Direction {
	return (d + 2) % 4
}

// MarshalText implements encoding.TextMarshaler so directions serialize as
// their lowercase names in JSON world documents.
func (d Direction) MarshalText() ([]byte, error) {
	if d > West {
		return nil, fmt.Errorf("%w: Direction(%d)", ErrValidation, uint8(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
