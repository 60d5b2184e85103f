package session

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/karelgrid/karel/service"
	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
)

func newTestSession(t *testing.T, id string) *service.Session {
	t.Helper()
	w, err := world.New(world.Setup{
		BallCounts:    [][]int{{0, 2}, {1, 0}},
		VerticalWalls: [][]bool{{true}, {false}},
	})
	if err != nil {
		t.Fatalf("New world failed: %v", err)
	}
	w.TurnLeft()
	if err := w.Paint(world.Colors["red"]); err != nil {
		t.Fatalf("Paint failed: %v", err)
	}
	return &service.Session{
		ID:      id,
		WorldID: "collect",
		World:   w,
		Tier:    command.TierUltra,
	}
}

func TestFilePersistence_SaveLoad(t *testing.T) {
	fp, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	sess := newTestSession(t, "abcd")
	if err := fp.Save(sess); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !fp.Exists("abcd") {
		t.Fatal("saved session does not exist")
	}

	loaded, err := fp.Load("abcd")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.ID != "abcd" || loaded.WorldID != "collect" || loaded.Tier != command.TierUltra {
		t.Errorf("loaded session = %+v", loaded)
	}
	if !loaded.World.Equal(sess.World) {
		t.Error("restored world differs from saved world")
	}
	if !loaded.World.FacingNorth() {
		t.Error("robot direction lost in round trip")
	}
	if c, _ := loaded.World.ColorAt(world.Position{}); c != world.Colors["red"] {
		t.Error("cell color lost in round trip")
	}
	if blocked, _ := loaded.World.IsBlocked(world.Position{Avenue: 0, Street: 1}, world.East); !blocked {
		t.Error("wall lost in round trip")
	}
}

func TestFilePersistence_LoadErrors(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	if _, err := fp.Load("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Load of missing session error = %v, want ErrSessionNotFound", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "junk.json"), []byte("{"), 0644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if _, err := fp.Load("junk"); err == nil {
		t.Error("corrupt session file not reported")
	}

	if err := os.WriteFile(filepath.Join(dir, "empty.json"), []byte("{}"), 0644); err != nil {
		t.Fatalf("write empty: %v", err)
	}
	if _, err := fp.Load("empty"); err == nil {
		t.Error("session file without world state not reported")
	}
}

func TestFilePersistence_DeleteAndList(t *testing.T) {
	fp, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	for _, id := range []string{"aaaa", "bbbb"} {
		if err := fp.Save(newTestSession(t, id)); err != nil {
			t.Fatalf("Save(%q) failed: %v", id, err)
		}
	}

	ids, err := fp.ListAll()
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	slices.Sort(ids)
	if !slices.Equal(ids, []string{"aaaa", "bbbb"}) {
		t.Errorf("ListAll = %v", ids)
	}

	if err := fp.Delete("aaaa"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("aaaa") {
		t.Error("deleted session still exists")
	}
	if err := fp.Delete("aaaa"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("second Delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestManager_PersistenceRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fp, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}

	m := NewManagerWithPersistence(fp)
	sess, err := m.Create("abcd", "collect", command.TierNormal, newTestSession(t, "x").World)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !fp.Exists("abcd") {
		t.Fatal("Create did not persist the session")
	}

	// Mutate and write through.
	sess.World.TurnLeft()
	if err := m.Save("abcd"); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// A fresh manager over the same directory sees the session.
	m2 := NewManagerWithPersistence(fp)
	if err := m2.LoadPersisted(); err != nil {
		t.Fatalf("LoadPersisted failed: %v", err)
	}
	if m2.Count() != 1 {
		t.Fatalf("Count = %d after LoadPersisted, want 1", m2.Count())
	}
	loaded, err := m2.Get("abcd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !loaded.World.Equal(sess.World) {
		t.Error("persisted world differs after round trip")
	}

	// Delete removes the file too.
	if err := m2.Delete("abcd"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if fp.Exists("abcd") {
		t.Error("Delete left the session file behind")
	}
}

func TestManager_GetFallsBackToPersistence(t *testing.T) {
	fp, err := NewFilePersistence(t.TempDir())
	if err != nil {
		t.Fatalf("NewFilePersistence failed: %v", err)
	}
	if err := fp.Save(newTestSession(t, "abcd")); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m := NewManagerWithPersistence(fp)
	if m.Count() != 0 {
		t.Fatalf("fresh manager Count = %d", m.Count())
	}
	sess, err := m.Get("abcd")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if sess.Tier != command.TierUltra {
		t.Errorf("loaded tier = %v", sess.Tier)
	}
	if m.Count() != 1 {
		t.Errorf("Count = %d after fallback load, want 1", m.Count())
	}
}
