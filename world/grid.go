package world

import "fmt"

// dims returns the (rows, cols) shape of a 2D slice, failing when rows have
// differing lengths. An empty grid reports (0, 0).
func dims[T any](grid [][]T) (rows, cols int, err error) {
	rows = len(grid)
	for i, row := range grid {
		if i == 0 {
			cols = len(row)
			continue
		}
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d elements, row 0 has %d",
				ErrValidation, i, len(row), cols)
		}
	}
	return rows, cols, nil
}

// ensureShape fails unless grid has exactly the given shape.
func ensureShape[T any](grid [][]T, rows, cols int, name string) error {
	if len(grid) != rows {
		return fmt.Errorf("%w: expected %d rows in %s, found %d", ErrValidation, rows, name, len(grid))
	}
	for i, row := range grid {
		if len(row) != cols {
			return fmt.Errorf("%w: expected %d elements in %s[%d], found %d",
				ErrValidation, cols, name, i, len(row))
		}
	}
	return nil
}

// copyGrid returns a row-by-row copy sharing no storage with the input.
func copyGrid[T any](grid [][]T) [][]T {
	out := make([][]T, len(grid))
	for i, row := range grid {
		out[i] = make([]T, len(row))
		copy(out[i], row)
	}
	return out
}

// makeGrid returns a rows×cols grid with every cell set to fill.
func makeGrid[T any](rows, cols int, fill T) [][]T {
	grid := make([][]T, rows)
	for i := range grid {
		grid[i] = make([]T, cols)
		for j := range grid[i] {
			grid[i][j] = fill
		}
	}
	return grid
}

// gridsEqual reports element-wise equality of two 2D slices.
func gridsEqual[T comparable](a, b [][]T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
