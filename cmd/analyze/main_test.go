package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/karelgrid/karel/world"
)

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestAnalyzeDocument(t *testing.T) {
	path := writeDocument(t, "open.json", `{
		"name": "Open",
		"tier": "super",
		"ball_counts": [[0, 1, 2], [3, 0, 0]],
		"vertical_walls": [[true, false], [false, false]]
	}`)

	summary, err := analyzeDocument(path)
	if err != nil {
		t.Fatalf("analyzeDocument failed: %v", err)
	}

	if summary.Name != "Open" || summary.Tier != "super" {
		t.Errorf("summary header = %+v", summary)
	}
	if summary.Size != (world.Position{Avenue: 3, Street: 2}) {
		t.Errorf("size = %v", summary.Size)
	}
	if summary.TotalBalls != 6 {
		t.Errorf("total balls = %d, want 6", summary.TotalBalls)
	}
	if summary.WallCount != 1 {
		t.Errorf("wall count = %d, want 1", summary.WallCount)
	}
	// The single wall does not seal anything off.
	if len(summary.Unreachable) != 0 {
		t.Errorf("unreachable cells = %v, want none", summary.Unreachable)
	}
}

func TestAnalyzeDocument_SealedCell(t *testing.T) {
	// The north-east cell is boxed in by a wall to its south and west,
	// with 2 balls stranded on it.
	path := writeDocument(t, "sealed.json", `{
		"name": "Sealed",
		"ball_counts": [[0, 2], [0, 0]],
		"horizontal_walls": [[false, true]],
		"vertical_walls": [[true], [false]]
	}`)

	summary, err := analyzeDocument(path)
	if err != nil {
		t.Fatalf("analyzeDocument failed: %v", err)
	}

	if len(summary.Unreachable) != 1 {
		t.Fatalf("unreachable cells = %v, want exactly one", summary.Unreachable)
	}
	if summary.Unreachable[0] != (world.Position{Avenue: 1, Street: 1}) {
		t.Errorf("unreachable cell = %v, want (1,1)", summary.Unreachable[0])
	}
	if summary.UnreachableBalls != 2 {
		t.Errorf("unreachable balls = %d, want 2", summary.UnreachableBalls)
	}
}

func TestAnalyzeDocument_InvalidFile(t *testing.T) {
	path := writeDocument(t, "bad.json", `{"ball_counts": [[0]]}`)

	if _, err := analyzeDocument(path); err == nil {
		t.Error("expected error for document without a name")
	}
}
