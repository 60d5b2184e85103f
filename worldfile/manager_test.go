package worldfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
)

// createTestDocument builds a small valid document for tests.
func createTestDocument() *Document {
	return &Document{
		Name:        "Test World",
		Description: "A small world for testing",
		Tier:        "ultra",
		BallCounts: [][]int{
			{0, 1, 0},
			{2, 0, 0},
		},
		HorizontalWalls: [][]bool{{false, true, false}},
		Colors: [][]string{
			{"white", "red", "white"},
			{"white", "white", "#00f"},
		},
		Robot: &RobotDoc{Avenue: 1, Street: 0, Direction: "north"},
	}
}

func writeDocument(t *testing.T, dir, name, contents string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestDocument_Build(t *testing.T) {
	doc := createTestDocument()
	w, err := doc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if got := w.Size(); got != (world.Position{Avenue: 3, Street: 2}) {
		t.Errorf("Size = %v, want (3, 2)", got)
	}
	robot := w.Robot()
	if robot.Position != (world.Position{Avenue: 1, Street: 0}) || !robot.FacingNorth() {
		t.Errorf("robot = %v, want at (1, 0) facing north", robot)
	}
	// Documents are written north-first: ball_counts row 0 is street 1.
	if n, _ := w.BallCount(world.Position{Avenue: 1, Street: 1}); n != 1 {
		t.Errorf("ball count at (1, 1) = %d, want 1", n)
	}
	if n, _ := w.BallCount(world.Position{Avenue: 0, Street: 0}); n != 2 {
		t.Errorf("ball count at (0, 0) = %d, want 2", n)
	}
	if c, _ := w.ColorAt(world.Position{Avenue: 2, Street: 0}); c != (world.RGB{B: 255}) {
		t.Errorf("color at (2, 0) = %v, want blue", c)
	}
	if blocked, _ := w.IsBlocked(world.Position{Avenue: 1, Street: 0}, world.North); !blocked {
		t.Error("horizontal wall from document not present")
	}
}

func TestDocument_Defaults(t *testing.T) {
	doc := &Document{
		Name:       "Bare",
		BallCounts: [][]int{{0, 0}},
	}
	if err := Validate(doc); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	tier, err := doc.CommandTier()
	if err != nil || tier != command.TierNormal {
		t.Errorf("CommandTier = %v, %v, want normal", tier, err)
	}

	w, err := doc.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := w.Robot(); got != world.NewRobot(world.Position{}) {
		t.Errorf("robot = %v, want default at (0, 0) facing east", got)
	}
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Document)
	}{
		{"missing name", func(d *Document) { d.Name = "" }},
		{"unknown tier", func(d *Document) { d.Tier = "mega" }},
		{"no ball counts", func(d *Document) { d.BallCounts = nil }},
		{"ragged ball counts", func(d *Document) { d.BallCounts = [][]int{{0, 0, 0}, {0}} }},
		{"bad color name", func(d *Document) { d.Colors[0][0] = "nope" }},
		{"wrong wall shape", func(d *Document) { d.HorizontalWalls = [][]bool{{true}} }},
		{"robot out of bounds", func(d *Document) { d.Robot.Avenue = 9 }},
		{"negative robot street", func(d *Document) { d.Robot.Street = -1 }},
		{"bad robot direction", func(d *Document) { d.Robot.Direction = "up" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := createTestDocument()
			tt.mutate(doc)
			if err := Validate(doc); !errors.Is(err, world.ErrValidation) {
				t.Errorf("Validate error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestParse(t *testing.T) {
	doc, err := Parse([]byte(`{
		"name": "Tiny",
		"ball_counts": [[1]],
		"robot": {"avenue": 0, "street": 0, "direction": "west"}
	}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc.Name != "Tiny" || doc.Robot.Direction != "west" {
		t.Errorf("Parse = %+v", doc)
	}

	if _, err := Parse([]byte(`{not json`)); err == nil {
		t.Error("malformed JSON not reported")
	}
	if _, err := Parse([]byte(`{"name": "x", "ball_counts": [[-1]]}`)); !errors.Is(err, world.ErrValidation) {
		t.Errorf("invalid document error = %v, want ErrValidation", err)
	}
}

func TestManager_Load(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "tiny.json", `{"name": "Tiny", "ball_counts": [[0, 3]]}`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	doc, err := m.Load("tiny")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if doc.Name != "Tiny" {
		t.Errorf("loaded name = %q", doc.Name)
	}

	// Second load comes from cache: mutating the file must not change the
	// result.
	writeDocument(t, dir, "tiny.json", `{"name": "Changed", "ball_counts": [[0]]}`)
	doc, err = m.Load("tiny")
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if doc.Name != "Tiny" {
		t.Errorf("cached load returned %q, want original document", doc.Name)
	}

	m.RefreshCache()
	doc, err = m.Load("tiny")
	if err != nil {
		t.Fatalf("Load after refresh failed: %v", err)
	}
	if doc.Name != "Changed" {
		t.Errorf("load after refresh returned %q, want reread document", doc.Name)
	}
}

func TestManager_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "broken.json", `{"name": "Broken", "ball_counts": [[0], [0, 0]]}`)

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	if _, err := m.Load("missing"); !errors.Is(err, ErrWorldNotFound) {
		t.Errorf("missing world error = %v, want ErrWorldNotFound", err)
	}
	if _, err := m.Load("broken"); !errors.Is(err, ErrInvalidWorld) {
		t.Errorf("broken world error = %v, want ErrInvalidWorld", err)
	}

	if _, err := NewManager(filepath.Join(dir, "nope")); err == nil {
		t.Error("missing directory not reported")
	}
}

func TestManager_List(t *testing.T) {
	dir := t.TempDir()
	writeDocument(t, dir, "a.json", `{"name": "A", "description": "first", "ball_counts": [[0, 0], [0, 0]]}`)
	writeDocument(t, dir, "b.json", `{"name": "B", "tier": "super", "ball_counts": [[0]]}`)
	writeDocument(t, dir, "broken.json", `{`)
	writeDocument(t, dir, "notes.txt", "not a world")

	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	infos, err := m.List()
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List returned %d worlds, want 2: %+v", len(infos), infos)
	}

	byID := make(map[string]*Info)
	for _, info := range infos {
		byID[info.WorldID] = info
	}
	a := byID["a"]
	if a == nil || a.Name != "A" || a.Size != (world.Position{Avenue: 2, Street: 2}) || a.Tier != "normal" {
		t.Errorf("info for a = %+v", a)
	}
	b := byID["b"]
	if b == nil || b.Tier != "super" {
		t.Errorf("info for b = %+v", b)
	}
}

func TestManager_Save(t *testing.T) {
	dir := t.TempDir()
	m, err := NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}

	doc := createTestDocument()
	if err := m.Save("saved", doc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "saved.json")); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	loaded, err := m.Load("saved")
	if err != nil {
		t.Fatalf("Load after Save failed: %v", err)
	}
	if loaded.Name != doc.Name {
		t.Errorf("round-tripped name = %q", loaded.Name)
	}

	bad := createTestDocument()
	bad.Name = ""
	if err := m.Save("bad", bad); !errors.Is(err, ErrInvalidWorld) {
		t.Errorf("Save of invalid document error = %v, want ErrInvalidWorld", err)
	}
}
