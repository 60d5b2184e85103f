// Command analyze prints quick, human-readable heuristics about world
// documents. It summarizes dimensions, tier, ball and wall totals, and
// highlights cells the robot cannot reach from its starting position,
// which usually means a wall layout mistake.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/worldfile"
)

// Summary holds the analysis of one world document.
type Summary struct {
	Name         string
	Tier         string
	Size         world.Position
	TotalBalls   int
	WallCount    int
	ColoredCells int

	// Unreachable lists positions the robot cannot reach from its start,
	// walking one cell at a time and honoring walls.
	Unreachable []world.Position

	// UnreachableBalls counts balls sitting on unreachable cells.
	UnreachableBalls int
}

func main() {
	paths := os.Args[1:]
	if len(paths) == 0 {
		matches, err := filepath.Glob(filepath.Join("worlds", "*.json"))
		if err != nil || len(matches) == 0 {
			fmt.Fprintln(os.Stderr, "usage: analyze <world.json>... (or run from a directory with worlds/)")
			os.Exit(1)
		}
		sort.Strings(matches)
		paths = matches
	}

	for _, path := range paths {
		fmt.Printf("\n=== Analyzing %s ===\n", path)
		summary, err := analyzeDocument(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printSummary(summary)
	}
}

// analyzeDocument parses and builds a world document, then walks its grid.
func analyzeDocument(path string) (*Summary, error) {
	doc, err := worldfile.ParseFile(path)
	if err != nil {
		return nil, err
	}
	tier, err := doc.CommandTier()
	if err != nil {
		return nil, err
	}
	w, err := doc.Build()
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		Name: doc.Name,
		Tier: string(tier),
		Size: w.Size(),
	}

	for _, row := range w.BallCounts() {
		for _, n := range row {
			summary.TotalBalls += n
		}
	}
	for _, walls := range [][][]bool{w.HorizontalWalls(), w.VerticalWalls()} {
		for _, row := range walls {
			for _, set := range row {
				if set {
					summary.WallCount++
				}
			}
		}
	}
	for _, row := range w.CellColors() {
		for _, c := range row {
			if c != world.White {
				summary.ColoredCells++
			}
		}
	}

	summary.Unreachable = unreachableCells(w)
	balls := w.BallCounts()
	size := w.Size()
	for _, p := range summary.Unreachable {
		// Ball grid row 0 is the northmost street.
		summary.UnreachableBalls += balls[size.Street-p.Street-1][p.Avenue]
	}

	return summary, nil
}

// unreachableCells flood-fills from the robot's start, honoring walls, and
// returns every cell the fill never visits.
func unreachableCells(w *world.World) []world.Position {
	size := w.Size()
	visited := make(map[world.Position]bool)
	queue := []world.Position{w.Robot().Position}
	visited[queue[0]] = true

	directions := []world.Direction{world.North, world.East, world.South, world.West}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		for _, d := range directions {
			blocked, err := w.IsBlocked(p, d)
			if err != nil || blocked {
				continue
			}
			next := p.Moved(d)
			if !next.InBoundsOf(size) || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	var unreachable []world.Position
	for street := 0; street < size.Street; street++ {
		for avenue := 0; avenue < size.Avenue; avenue++ {
			p := world.Position{Avenue: avenue, Street: street}
			if !visited[p] {
				unreachable = append(unreachable, p)
			}
		}
	}
	return unreachable
}

func printSummary(s *Summary) {
	fmt.Printf("Name: %s\n", s.Name)
	fmt.Printf("Size: %d avenues x %d streets\n", s.Size.Avenue, s.Size.Street)
	fmt.Printf("Tier: %s\n", s.Tier)
	fmt.Printf("Balls: %d\n", s.TotalBalls)
	fmt.Printf("Walls: %d\n", s.WallCount)
	if s.ColoredCells > 0 {
		fmt.Printf("Colored cells: %d\n", s.ColoredCells)
	}

	if len(s.Unreachable) == 0 {
		fmt.Println("Reachability: every cell reachable from the robot start")
		return
	}

	var cells []string
	for _, p := range s.Unreachable {
		cells = append(cells, fmt.Sprintf("(%d,%d)", p.Avenue, p.Street))
	}
	fmt.Printf("⚠️  Unreachable cells: %s\n", strings.Join(cells, " "))
	if s.UnreachableBalls > 0 {
		fmt.Printf("⚠️  %d ball(s) cannot be collected\n", s.UnreachableBalls)
	}
}
