package world

import "fmt"

// World is the grid state container: per-cell ball counts and colors, wall
// bitmaps between adjacent cells, and the robot. All four grids share one
// storage scheme: row 0 is the northmost street (largest street index) and
// column 0 is avenue 0, so increasing street decreases the storage row.
//
// A World is not safe for concurrent use; callers that share one across
// goroutines must serialize access externally.
type World struct {
	robot      Robot
	ballCounts [][]int
	// horizontalWalls has shape (rows-1)×cols; entry (r,c) is the wall
	// between storage rows r and r+1 at column c.
	horizontalWalls [][]bool
	// verticalWalls has shape rows×(cols-1); entry (r,c) is the wall
	// between storage columns c and c+1 at row r.
	verticalWalls [][]bool
	colors        [][]RGB
}

// Setup carries the construction inputs for a World. BallCounts is required
// and determines the size; every other field is optional. Nil walls default
// to "no walls", nil colors to "all white", and a nil robot to position
// (0,0) facing east.
type Setup struct {
	Robot           *Robot
	BallCounts      [][]int
	HorizontalWalls [][]bool
	VerticalWalls   [][]bool
	Colors          [][]RGB
}

// New builds a World from setup, validating that the ball-count grid is
// rectangular and non-empty, that the optional grids match the derived
// size, that no ball count is negative, and that the robot starts in
// bounds.
func New(setup Setup) (*World, error) {
	rows, cols, err := dims(setup.BallCounts)
	if err != nil {
		return nil, fmt.Errorf("ball_counts: %w", err)
	}
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("%w: ball_counts is an empty 2D array", ErrValidation)
	}
	for i, row := range setup.BallCounts {
		for j, n := range row {
			if n < 0 {
				return nil, fmt.Errorf("%w: ball_counts[%d][%d] is negative (%d)", ErrValidation, i, j, n)
			}
		}
	}

	w := &World{ballCounts: copyGrid(setup.BallCounts)}

	if setup.HorizontalWalls == nil {
		w.horizontalWalls = makeGrid(rows-1, cols, false)
	} else {
		if err := ensureShape(setup.HorizontalWalls, rows-1, cols, "horizontal_walls"); err != nil {
			return nil, err
		}
		w.horizontalWalls = copyGrid(setup.HorizontalWalls)
	}

	if setup.VerticalWalls == nil {
		w.verticalWalls = makeGrid(rows, cols-1, false)
	} else {
		if err := ensureShape(setup.VerticalWalls, rows, cols-1, "vertical_walls"); err != nil {
			return nil, err
		}
		w.verticalWalls = copyGrid(setup.VerticalWalls)
	}

	if setup.Colors == nil {
		w.colors = makeGrid(rows, cols, White)
	} else {
		if err := ensureShape(setup.Colors, rows, cols, "colors"); err != nil {
			return nil, err
		}
		w.colors = copyGrid(setup.Colors)
	}

	robot := NewRobot(Position{})
	if setup.Robot != nil {
		robot = *setup.Robot
	}
	if !robot.Position.InBoundsOf(w.Size()) {
		return nil, fmt.Errorf("%w: robot position %v outside world of size %v",
			ErrValidation, robot.Position, w.Size())
	}
	w.robot = robot

	return w, nil
}

// NewEmpty builds a world of the given size with no balls, no walls, all
// cells white, and the robot at (0,0) facing east.
func NewEmpty(size Position) (*World, error) {
	if size.Avenue <= 0 || size.Street <= 0 {
		return nil, fmt.Errorf("%w: size %v must be at least 1x1", ErrValidation, size)
	}
	return New(Setup{BallCounts: makeGrid(size.Street, size.Avenue, 0)})
}

// Size is the current (avenue, street) extent, derived from the shape of
// the ball-count grid.
func (w *World) Size() Position {
	return Position{Avenue: len(w.ballCounts[0]), Street: len(w.ballCounts)}
}

// Robot returns the current robot state.
func (w *World) Robot() Robot {
	return w.robot
}

// SetRobot replaces the robot, rejecting positions outside the current
// bounds.
func (w *World) SetRobot(r Robot) error {
	if !r.Position.InBoundsOf(w.Size()) {
		return fmt.Errorf("%w: robot position %v (size %v)", ErrOutOfRange, r.Position, w.Size())
	}
	w.robot = r
	return nil
}

// MoveRobotTo teleports the robot, keeping its direction.
func (w *World) MoveRobotTo(p Position) error {
	return w.SetRobot(w.robot.MovedTo(p))
}

// RotateRobot points the robot in the given direction.
func (w *World) RotateRobot(d Direction) {
	w.robot = w.robot.Turned(d)
}

// BallCounts returns a copy of the ball-count grid in storage order
// (row 0 = northmost street).
func (w *World) BallCounts() [][]int {
	return copyGrid(w.ballCounts)
}

// HorizontalWalls returns a copy of the horizontal wall grid.
func (w *World) HorizontalWalls() [][]bool {
	return copyGrid(w.horizontalWalls)
}

// VerticalWalls returns a copy of the vertical wall grid.
func (w *World) VerticalWalls() [][]bool {
	return copyGrid(w.verticalWalls)
}

// CellColors returns a copy of the color grid.
func (w *World) CellColors() [][]RGB {
	return copyGrid(w.colors)
}

// Copy returns a deep copy sharing no mutable storage with w.
func (w *World) Copy() *World {
	return &World{
		robot:           w.robot,
		ballCounts:      copyGrid(w.ballCounts),
		horizontalWalls: copyGrid(w.horizontalWalls),
		verticalWalls:   copyGrid(w.verticalWalls),
		colors:          copyGrid(w.colors),
	}
}

// Equal reports whether two worlds hold identical state.
func (w *World) Equal(other *World) bool {
	return w.robot == other.robot &&
		gridsEqual(w.ballCounts, other.ballCounts) &&
		gridsEqual(w.horizontalWalls, other.horizontalWalls) &&
		gridsEqual(w.verticalWalls, other.verticalWalls) &&
		gridsEqual(w.colors, other.colors)
}

// rowCol maps a position to storage indices. Storage row 0 holds the
// northmost street.
func (w *World) rowCol(p Position) (row, col int) {
	return w.Size().Street - p.Street - 1, p.Avenue
}

// cell resolves the optional explicit position (at most one), defaulting
// to the robot's position, and bounds-checks it.
func (w *World) cell(at []Position) (Position, error) {
	p := w.robot.Position
	switch len(at) {
	case 0:
	case 1:
		p = at[0]
	default:
		return Position{}, fmt.Errorf("%w: at most one position may be given", ErrValidation)
	}
	if !p.InBoundsOf(w.Size()) {
		return Position{}, fmt.Errorf("%w: %v (size %v)", ErrOutOfRange, p, w.Size())
	}
	return p, nil
}

// BallCount reads a cell's ball count. With no argument it reads the
// robot's cell.
func (w *World) BallCount(at ...Position) (int, error) {
	p, err := w.cell(at)
	if err != nil {
		return 0, err
	}
	row, col := w.rowCol(p)
	return w.ballCounts[row][col], nil
}

// SetBallCount writes a cell's ball count; negative values are rejected.
func (w *World) SetBallCount(n int, at ...Position) error {
	p, err := w.cell(at)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("%w: tried to put %d balls at %v", ErrValidation, n, p)
	}
	row, col := w.rowCol(p)
	w.ballCounts[row][col] = n
	return nil
}

// PutBall adds one ball to a cell.
func (w *World) PutBall(at ...Position) error {
	n, err := w.BallCount(at...)
	if err != nil {
		return err
	}
	return w.SetBallCount(n+1, at...)
}

// TakeBall removes one ball from a cell, failing if the cell is empty.
func (w *World) TakeBall(at ...Position) error {
	n, err := w.BallCount(at...)
	if err != nil {
		return err
	}
	return w.SetBallCount(n-1, at...)
}

// BallsPresent reports whether a cell holds at least one ball.
func (w *World) BallsPresent(at ...Position) (bool, error) {
	n, err := w.BallCount(at...)
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// NoBallsPresent is the negation of BallsPresent.
func (w *World) NoBallsPresent(at ...Position) (bool, error) {
	present, err := w.BallsPresent(at...)
	if err != nil {
		return false, err
	}
	return !present, nil
}

// ColorAt reads a cell's color.
func (w *World) ColorAt(at ...Position) (RGB, error) {
	p, err := w.cell(at)
	if err != nil {
		return RGB{}, err
	}
	row, col := w.rowCol(p)
	return w.colors[row][col], nil
}

// Paint writes a cell's color.
func (w *World) Paint(c RGB, at ...Position) error {
	p, err := w.cell(at)
	if err != nil {
		return err
	}
	row, col := w.rowCol(p)
	w.colors[row][col] = c
	return nil
}

// ColorIs reports whether the robot's cell has the given color.
func (w *World) ColorIs(c RGB) bool {
	row, col := w.rowCol(w.robot.Position)
	return w.colors[row][col] == c
}

// wallSlot canonicalizes an edge reference to a single stored wall entry.
// "North of (r,c)" and "south of (r-1,c)" refer to the same horizontal
// wall; "west of (r,c)" and "east of (r,c-1)" to the same vertical wall.
// stored is false when the edge lies on the grid boundary, where no wall
// storage exists.
func (w *World) wallSlot(p Position, d Direction) (horizontal bool, row, col int, stored bool) {
	row, col = w.rowCol(p)
	switch d {
	case North:
		row--
		fallthrough
	case South:
		return true, row, col, row >= 0 && row < w.Size().Street-1
	case West:
		col--
		fallthrough
	default: // East
		return false, row, col, col >= 0 && col < w.Size().Avenue-1
	}
}

// IsBlocked reports whether movement from p toward d is obstructed by a
// wall or by the grid boundary. The outward edges of the grid always read
// as blocked.
func (w *World) IsBlocked(p Position, d Direction) (bool, error) {
	if !p.InBoundsOf(w.Size()) {
		return false, fmt.Errorf("%w: %v (size %v)", ErrOutOfRange, p, w.Size())
	}
	horizontal, row, col, stored := w.wallSlot(p, d)
	if !stored {
		return true, nil
	}
	if horizontal {
		return w.horizontalWalls[row][col], nil
	}
	return w.verticalWalls[row][col], nil
}

// IsClear is the negation of IsBlocked.
func (w *World) IsClear(p Position, d Direction) (bool, error) {
	blocked, err := w.IsBlocked(p, d)
	if err != nil {
		return false, err
	}
	return !blocked, nil
}

// SetBlocked places or removes the wall on the edge from p toward d.
// Unlike querying, setting a boundary edge is an out-of-range error: there
// is no wall storage there to change.
func (w *World) SetBlocked(blocked bool, p Position, d Direction) error {
	if !p.InBoundsOf(w.Size()) {
		return fmt.Errorf("%w: %v (size %v)", ErrOutOfRange, p, w.Size())
	}
	horizontal, row, col, stored := w.wallSlot(p, d)
	if !stored {
		return fmt.Errorf("%w: no wall storage %v of %v", ErrOutOfRange, d, p)
	}
	if horizontal {
		w.horizontalWalls[row][col] = blocked
	} else {
		w.verticalWalls[row][col] = blocked
	}
	return nil
}

// SetClear is the negation of SetBlocked.
func (w *World) SetClear(clear bool, p Position, d Direction) error {
	return w.SetBlocked(!clear, p, d)
}

// SetFrontIsBlocked places or removes the wall directly ahead of the robot.
func (w *World) SetFrontIsBlocked(blocked bool) error {
	return w.SetBlocked(blocked, w.robot.Position, w.robot.Direction)
}

// SetFrontIsClear is the negation of SetFrontIsBlocked.
func (w *World) SetFrontIsClear(clear bool) error {
	return w.SetFrontIsBlocked(!clear)
}

// blockedFacing queries the edge at the robot's cell toward d. The robot
// is always in bounds, so this cannot fail.
func (w *World) blockedFacing(d Direction) bool {
	blocked, _ := w.IsBlocked(w.robot.Position, d)
	return blocked
}

func (w *World) FrontIsBlocked() bool { return w.blockedFacing(w.robot.Direction) }
func (w *World) LeftIsBlocked() bool  { return w.blockedFacing(w.robot.Direction.TurnedLeft()) }
func (w *World) RightIsBlocked() bool { return w.blockedFacing(w.robot.Direction.TurnedRight()) }
func (w *World) FrontIsClear() bool   { return !w.FrontIsBlocked() }
func (w *World) LeftIsClear() bool    { return !w.LeftIsBlocked() }
func (w *World) RightIsClear() bool   { return !w.RightIsBlocked() }

// Move advances the robot one cell in its facing direction. It fails with
// ErrBlockedMove, leaving the world unchanged, when the front is blocked;
// it never clamps to the boundary.
func (w *World) Move() error {
	if w.FrontIsBlocked() {
		return fmt.Errorf("%w: tried to move %v into a wall", ErrBlockedMove, w.robot)
	}
	w.robot = w.robot.Moved()
	return nil
}

func (w *World) TurnLeft()   { w.robot = w.robot.TurnedLeft() }
func (w *World) TurnRight()  { w.robot = w.robot.TurnedRight() }
func (w *World) TurnAround() { w.robot = w.robot.TurnedAround() }

func (w *World) FacingNorth() bool { return w.robot.FacingNorth() }
func (w *World) FacingSouth() bool { return w.robot.FacingSouth() }
func (w *World) FacingEast() bool  { return w.robot.FacingEast() }
func (w *World) FacingWest() bool  { return w.robot.FacingWest() }

func (w *World) NotFacingNorth() bool { return !w.FacingNorth() }
func (w *World) NotFacingSouth() bool { return !w.FacingSouth() }
func (w *World) NotFacingEast() bool  { return !w.FacingEast() }
func (w *World) NotFacingWest() bool  { return !w.FacingWest() }
