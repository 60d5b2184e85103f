package world

import "fmt"

// Robot is the immutable combination of a grid position and a facing
// direction. Transform methods return a new value; none mutate.
type Robot struct {
	Position  Position  `json:"position"`
	Direction Direction `json:"direction"`
}

// NewRobot returns a robot at the given position facing east, the default
// orientation for a freshly placed robot.
func NewRobot(p Position) Robot {
	return Robot{Position: p, Direction: East}
}

// NewRobotFacing returns a robot at the given position and orientation.
func NewRobotFacing(p Position, d Direction) Robot {
	return Robot{Position: p, Direction: d}
}

func (r Robot) String() string {
	return fmt.Sprintf("robot at %v facing %v", r.Position, r.Direction)
}

func (r Robot) FacingNorth() bool { return r.Direction == North }
func (r Robot) FacingSouth() bool { return r.Direction == South }
func (r Robot) FacingEast() bool  { return r.Direction == East }
func (r Robot) FacingWest() bool  { return r.Direction == West }

// MovedTo returns a robot at the given position keeping the direction.
func (r Robot) MovedTo(p Position) Robot {
	return Robot{Position: p, Direction: r.Direction}
}

// WithAvenue returns a robot with the avenue replaced.
func (r Robot) WithAvenue(avenue int) Robot {
	return r.MovedTo(r.Position.WithAvenue(avenue))
}

// WithStreet returns a robot with the street replaced.
func (r Robot) WithStreet(street int) Robot {
	return r.MovedTo(r.Position.WithStreet(street))
}

// Moved returns a robot advanced one cell in its facing direction.
func (r Robot) Moved() Robot {
	return r.MovedTo(r.Position.Moved(r.Direction))
}

// Turned returns a robot facing the given direction at the same position.
func (r Robot) Turned(d Direction) Robot {
	return Robot{Position: r.Position, Direction: d}
}

func (r Robot) TurnedLeft() Robot   { return r.Turned(r.Direction.TurnedLeft()) }
func (r Robot) TurnedRight() Robot  { return r.Turned(r.Direction.TurnedRight()) }
func (r Robot) TurnedAround() Robot { return r.Turned(r.Direction.TurnedAround()) }
