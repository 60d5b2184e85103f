package world

import "testing"

func TestNewRobot_DefaultsEast(t *testing.T) {
	r := NewRobot(Position{Avenue: 1, Street: 2})
	if !r.FacingEast() {
		t.Errorf("new robot faces %v, want east", r.Direction)
	}
	if r.Position != (Position{Avenue: 1, Street: 2}) {
		t.Errorf("new robot at %v", r.Position)
	}
}

func TestRobot_Facing(t *testing.T) {
	tests := []struct {
		dir                        Direction
		north, south, east, west bool
	}{
		{North, true, false, false, false},
		{South, false, true, false, false},
		{East, false, false, true, false},
		{West, false, false, false, true},
	}
	for _, tt := range tests {
		r := NewRobotFacing(Position{}, tt.dir)
		if r.FacingNorth() != tt.north || r.FacingSouth() != tt.south ||
			r.FacingEast() != tt.east || r.FacingWest() != tt.west {
			t.Errorf("facing flags wrong for %v", tt.dir)
		}
	}
}

func TestRobot_TransformsDoNotMutate(t *testing.T) {
	r := NewRobotFacing(Position{Avenue: 1, Street: 1}, North)

	moved := r.Moved()
	turned := r.TurnedLeft()

	if r.Position != (Position{Avenue: 1, Street: 1}) || r.Direction != North {
		t.Error("transform mutated the receiver")
	}
	if moved.Position != (Position{Avenue: 1, Street: 2}) || moved.Direction != North {
		t.Errorf("Moved() = %v", moved)
	}
	if turned.Direction != West || turned.Position != r.Position {
		t.Errorf("TurnedLeft() = %v", turned)
	}
}

func TestRobot_With(t *testing.T) {
	r := NewRobotFacing(Position{Avenue: 2, Street: 3}, South)

	if got := r.WithAvenue(5); got.Position != (Position{Avenue: 5, Street: 3}) || got.Direction != South {
		t.Errorf("WithAvenue(5) = %v", got)
	}
	if got := r.WithStreet(5); got.Position != (Position{Avenue: 2, Street: 5}) || got.Direction != South {
		t.Errorf("WithStreet(5) = %v", got)
	}
	if got := r.MovedTo(Position{}); got.Position != (Position{}) || got.Direction != South {
		t.Errorf("MovedTo(origin) = %v", got)
	}
	if got := r.Turned(East); got.Direction != East || got.Position != r.Position {
		t.Errorf("Turned(East) = %v", got)
	}
}

func TestRobot_TurnsMatchDirection(t *testing.T) {
	for _, d := range allDirections {
		r := NewRobotFacing(Position{}, d)
		if r.TurnedLeft().Direction != d.TurnedLeft() {
			t.Errorf("TurnedLeft mismatch for %v", d)
		}
		if r.TurnedRight().Direction != d.TurnedRight() {
			t.Errorf("TurnedRight mismatch for %v", d)
		}
		if r.TurnedAround().Direction != d.TurnedAround() {
			t.Errorf("TurnedAround mismatch for %v", d)
		}
	}
}
