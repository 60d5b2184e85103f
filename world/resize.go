package world

import "fmt"

// Resize grows or shrinks the world to the new (avenue, street) size,
// preserving the south-west-anchored sub-grid common to both sizes. Rows
// are added and removed only at the north edge (storage row 0), columns
// only at the east edge (the trailing column). New cells hold no balls,
// no walls, and white color.
//
// A size with a zero dimension, or one that would leave the robot out of
// bounds, is rejected and the world is left unchanged.
func (w *World) Resize(size Position) error {
	if size.Avenue <= 0 || size.Street <= 0 {
		return fmt.Errorf("%w: new size cannot have 0 as a dimension (new size = %v)", ErrValidation, size)
	}
	if !w.robot.Position.InBoundsOf(size) {
		return fmt.Errorf("%w: robot at %v would be out of bounds (new size = %v)",
			ErrValidation, w.robot.Position, size)
	}

	old := w.Size()

	if size.Street < old.Street {
		drop := old.Street - size.Street
		w.ballCounts = w.ballCounts[drop:]
		w.horizontalWalls = w.horizontalWalls[drop:]
		w.verticalWalls = w.verticalWalls[drop:]
		w.colors = w.colors[drop:]
	}
	if size.Street > old.Street {
		add := size.Street - old.Street
		w.ballCounts = prependRows(w.ballCounts, add, old.Avenue, 0)
		w.horizontalWalls = prependRows(w.horizontalWalls, add, old.Avenue, false)
		w.verticalWalls = prependRows(w.verticalWalls, add, old.Avenue-1, false)
		w.colors = prependRows(w.colors, add, old.Avenue, White)
	}
	if size.Avenue < old.Avenue {
		drop := old.Avenue - size.Avenue
		truncateColumns(w.ballCounts, drop)
		truncateColumns(w.horizontalWalls, drop)
		truncateColumns(w.verticalWalls, drop)
		truncateColumns(w.colors, drop)
	}
	if size.Avenue > old.Avenue {
		add := size.Avenue - old.Avenue
		w.ballCounts = appendColumns(w.ballCounts, add, 0)
		w.horizontalWalls = appendColumns(w.horizontalWalls, add, false)
		w.verticalWalls = appendColumns(w.verticalWalls, add, false)
		w.colors = appendColumns(w.colors, add, White)
	}

	return nil
}

// SetBallCounts replaces the ball-count grid, re-deriving the world size
// from its shape and resizing the other grids to match (same edge policy
// as Resize). The assignment is rejected on an inconsistent or empty
// shape, a negative count, or a size that strands the robot.
func (w *World) SetBallCounts(grid [][]int) error {
	rows, cols, err := dims(grid)
	if err != nil {
		return fmt.Errorf("ball_counts: %w", err)
	}
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%w: ball_counts is an empty 2D array", ErrValidation)
	}
	for i, row := range grid {
		for j, n := range row {
			if n < 0 {
				return fmt.Errorf("%w: ball_counts[%d][%d] is negative (%d)", ErrValidation, i, j, n)
			}
		}
	}
	if err := w.Resize(Position{Avenue: cols, Street: rows}); err != nil {
		return err
	}
	w.ballCounts = copyGrid(grid)
	return nil
}

// SetHorizontalWalls replaces the horizontal wall grid. A grid of R rows
// and C columns implies a world size of (C, R+1). A grid with zero rows
// keeps the current avenue count and implies a single street.
func (w *World) SetHorizontalWalls(grid [][]bool) error {
	rows, cols, err := dims(grid)
	if err != nil {
		return fmt.Errorf("horizontal_walls: %w", err)
	}
	if rows == 0 {
		cols = w.Size().Avenue
	}
	if err := w.Resize(Position{Avenue: cols, Street: rows + 1}); err != nil {
		return err
	}
	w.horizontalWalls = copyGrid(grid)
	return nil
}

// SetVerticalWalls replaces the vertical wall grid. A grid of R rows and
// C columns implies a world size of (C+1, R).
func (w *World) SetVerticalWalls(grid [][]bool) error {
	rows, cols, err := dims(grid)
	if err != nil {
		return fmt.Errorf("vertical_walls: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: vertical_walls is an empty 2D array", ErrValidation)
	}
	if err := w.Resize(Position{Avenue: cols + 1, Street: rows}); err != nil {
		return err
	}
	w.verticalWalls = copyGrid(grid)
	return nil
}

// SetColors replaces the color grid, re-deriving the world size from its
// shape like SetBallCounts.
func (w *World) SetColors(grid [][]RGB) error {
	rows, cols, err := dims(grid)
	if err != nil {
		return fmt.Errorf("colors: %w", err)
	}
	if rows == 0 || cols == 0 {
		return fmt.Errorf("%w: colors is an empty 2D array", ErrValidation)
	}
	if err := w.Resize(Position{Avenue: cols, Street: rows}); err != nil {
		return err
	}
	w.colors = copyGrid(grid)
	return nil
}

// prependRows inserts count rows of the given width at the north edge.
func prependRows[T any](grid [][]T, count, width int, fill T) [][]T {
	if width < 0 {
		width = 0
	}
	fresh := makeGrid(count, width, fill)
	return append(fresh, grid...)
}

// truncateColumns drops count trailing columns from every row.
func truncateColumns[T any](grid [][]T, count int) {
	for i, row := range grid {
		keep := len(row) - count
		if keep < 0 {
			keep = 0
		}
		grid[i] = row[:keep]
	}
}

// appendColumns adds count columns of fill to the east edge of every row.
func appendColumns[T any](grid [][]T, count int, fill T) [][]T {
	for i := range grid {
		for k := 0; k < count; k++ {
			grid[i] = append(grid[i], fill)
		}
	}
	return grid
}
