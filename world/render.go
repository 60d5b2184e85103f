package world

import (
	"fmt"
	"strings"
)

// robotGlyphs is indexed by Direction (north, east, south, west).
var robotGlyphs = [4]string{"^", ">", "v", "<"}

// Render draws the world as a text diagram with streets running bottom to
// top. Each cell shows its ball count (or a dot when empty), the robot is
// drawn as an arrow indicating its facing, and walls appear as | and ---
// between cells.
func (w *World) Render() string {
	size := w.Size()
	var b strings.Builder

	for row := 0; row < size.Street; row++ {
		// Cell row with vertical walls between cells.
		for col := 0; col < size.Avenue; col++ {
			b.WriteString(w.cellGlyph(row, col))
			if col < size.Avenue-1 {
				if w.verticalWalls[row][col] {
					b.WriteString("|")
				} else {
					b.WriteString(" ")
				}
			}
		}
		b.WriteString("\n")

		// Wall row with horizontal walls below this storage row.
		if row < size.Street-1 {
			for col := 0; col < size.Avenue; col++ {
				if w.horizontalWalls[row][col] {
					b.WriteString("-")
				} else {
					b.WriteString(" ")
				}
				if col < size.Avenue-1 {
					b.WriteString(" ")
				}
			}
			b.WriteString("\n")
		}
	}

	b.WriteString(fmt.Sprintf("%v, size %v\n", w.robot, size))
	return b.String()
}

func (w *World) cellGlyph(row, col int) string {
	robotRow, robotCol := w.rowCol(w.robot.Position)
	if row == robotRow && col == robotCol {
		return robotGlyphs[w.robot.Direction]
	}
	if n := w.ballCounts[row][col]; n > 0 {
		if n > 9 {
			return "*"
		}
		return fmt.Sprintf("%d", n)
	}
	return "."
}
