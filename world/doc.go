// Package world implements the Karel grid-world state engine.
//
// The package provides:
//   - Immutable value types: Direction, Position, Robot, RGB
//   - The World aggregate holding ball counts, walls, colors, and the robot
//   - An invariant-preserving resize algorithm anchored at the south-west corner
//   - Color parsing for names, hex notation, and rgb(...) call notation
//
// Core Types:
//
// World is the single mutable aggregate. All of its grids share one storage
// scheme: row 0 is the northmost street and column 0 is avenue 0. Every
// mutation validates its inputs first and leaves the world untouched on
// failure.
//
// Usage:
//
//	w, err := world.New(world.Setup{
//		BallCounts: [][]int{{0, 1}, {2, 0}},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if w.FrontIsClear() {
//		if err := w.Move(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// Coordinates:
//
// Avenues run west to east and streets run south to north, both 0-based, so
// the origin (0,0) is the south-west corner. A world's size is an open upper
// bound on both axes. Resizing preserves the cells common to the old and new
// sizes: rows appear and disappear only at the north edge, columns only at
// the east edge, keeping the origin a fixed reference point.
//
// Errors:
//
//   - ErrValidation: malformed construction input or mutation value
//   - ErrOutOfRange: a position or boundary-edge access outside bounds
//   - ErrBlockedMove: a move attempted while the front is blocked
package world
