package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/karelgrid/karel/service"
	"github.com/karelgrid/karel/session"
	"github.com/karelgrid/karel/worldfile"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	doc := `{
		"name": "Collect",
		"tier": "super",
		"ball_counts": [[0, 1, 1]]
	}`
	if err := os.WriteFile(filepath.Join(dir, "collect.json"), []byte(doc), 0644); err != nil {
		t.Fatalf("write world: %v", err)
	}

	worlds, err := worldfile.NewManager(dir)
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	svc := service.NewWorldService(session.NewManager(), worlds)
	return NewServer(svc, nil)
}

func doJSON(t *testing.T, server *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func createSession(t *testing.T, server *Server) string {
	t.Helper()
	rec := doJSON(t, server, "POST", "/api/sessions", map[string]string{"world_id": "collect"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d, body %s", rec.Code, rec.Body.String())
	}
	var info service.SessionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal session: %v", err)
	}
	return info.ID
}

func TestCreateSession(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/sessions", map[string]string{"world_id": "collect"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	var info service.SessionInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if info.WorldID != "collect" || info.Tier != "super" || info.ID == "" {
		t.Errorf("session info = %+v", info)
	}
	if info.World == nil || len(info.World.BallCounts) != 1 {
		t.Errorf("world state = %+v", info.World)
	}
}

func TestCreateSession_Errors(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "POST", "/api/sessions", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing world_id status = %d", rec.Code)
	}

	rec = doJSON(t, server, "POST", "/api/sessions", map[string]string{"world_id": "nope"})
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("unknown world status = %d", rec.Code)
	}
}

func TestGetAndListSessions(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, "GET", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get session status = %d", rec.Code)
	}

	rec = doJSON(t, server, "GET", "/api/sessions/zzzz", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d", rec.Code)
	}

	createSession(t, server)
	rec = doJSON(t, server, "GET", "/api/sessions?limit=1", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list sessions status = %d", rec.Code)
	}
	var list struct {
		Count    int                    `json:"count"`
		Sessions []*service.SessionInfo `json:"sessions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if list.Count != 1 || len(list.Sessions) != 1 {
		t.Errorf("limited list = %+v", list)
	}
}

func TestRunProgram(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, "POST", "/api/sessions/"+id+"/run", map[string]string{
		"source": "move()\ntake_ball()\n",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d, body %s", rec.Code, rec.Body.String())
	}

	var result service.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if !result.Success {
		t.Fatalf("program failed: %s", result.Error)
	}
	if result.World.Robot.Avenue != 1 || result.World.BallCounts[0][1] != 0 {
		t.Errorf("world after run = %+v", result.World)
	}
}

func TestRunProgram_Failure(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	// A failing program is still a 200: the failure is part of the result.
	rec := doJSON(t, server, "POST", "/api/sessions/"+id+"/run", map[string]string{
		"source": "take_ball()",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d", rec.Code)
	}
	var result service.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal result: %v", err)
	}
	if result.Success || result.ErrorKind != "validation" {
		t.Errorf("result = %+v", result)
	}

	rec = doJSON(t, server, "POST", "/api/sessions/"+id+"/run", map[string]string{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing source status = %d", rec.Code)
	}

	rec = doJSON(t, server, "POST", "/api/sessions/zzzz/run", map[string]string{"source": "move()"})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown session status = %d", rec.Code)
	}
}

func TestResetAndState(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	if rec := doJSON(t, server, "POST", "/api/sessions/"+id+"/run", map[string]string{
		"source": "move()",
	}); rec.Code != http.StatusOK {
		t.Fatalf("run status = %d", rec.Code)
	}

	rec := doJSON(t, server, "POST", "/api/sessions/"+id+"/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset status = %d", rec.Code)
	}

	rec = doJSON(t, server, "GET", "/api/sessions/"+id+"/state", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("state status = %d", rec.Code)
	}
	var state struct {
		World    *service.WorldState `json:"world"`
		Rendered string              `json:"rendered"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &state); err != nil {
		t.Fatalf("unmarshal state: %v", err)
	}
	if state.World.Robot.Avenue != 0 {
		t.Errorf("robot avenue = %d after reset, want 0", state.World.Robot.Avenue)
	}
	if state.Rendered == "" {
		t.Error("state has no rendering")
	}
}

func TestDeleteSession(t *testing.T) {
	server := newTestServer(t)
	id := createSession(t, server)

	rec := doJSON(t, server, "DELETE", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	rec = doJSON(t, server, "GET", "/api/sessions/"+id, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("deleted session still retrievable, status = %d", rec.Code)
	}
}

func TestListWorlds(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/worlds", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list worlds status = %d", rec.Code)
	}
	var infos []*worldfile.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &infos); err != nil {
		t.Fatalf("unmarshal worlds: %v", err)
	}
	if len(infos) != 1 || infos[0].WorldID != "collect" {
		t.Errorf("worlds = %+v", infos)
	}
}

func TestHealth(t *testing.T) {
	server := newTestServer(t)

	rec := doJSON(t, server, "GET", "/api/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health status = %d", rec.Code)
	}
}
