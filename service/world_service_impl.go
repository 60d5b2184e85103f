package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/program"
	"github.com/karelgrid/karel/worldfile"
)

// worldServiceImpl implements the WorldService interface
type worldServiceImpl struct {
	sessions SessionManager
	worlds   WorldManager
}

// NewWorldService creates a new world service instance
func NewWorldService(sessions SessionManager, worlds WorldManager) WorldService {
	return &worldServiceImpl{
		sessions: sessions,
		worlds:   worlds,
	}
}

// CreateSession builds a fresh world from the named document and starts a
// session over it. The session manager hands out the ID.
func (s *worldServiceImpl) CreateSession(ctx context.Context, worldID string) (*SessionInfo, error) {
	doc, err := s.worlds.Load(worldID)
	if err != nil {
		if errors.Is(err, worldfile.ErrWorldNotFound) {
			if infos, listErr := s.worlds.List(); listErr == nil && len(infos) > 0 {
				var ids []string
				for _, info := range infos {
					ids = append(ids, info.WorldID)
				}
				return nil, fmt.Errorf("world '%s' not found. Available worlds: %s",
					worldID, strings.Join(ids, ", "))
			}
		}
		return nil, fmt.Errorf("failed to load world %s: %w", worldID, err)
	}

	w, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build world %s: %w", worldID, err)
	}
	tier, err := doc.CommandTier()
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.Create("", worldID, tier, w)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(session), nil
}

// GetSession retrieves session information
func (s *worldServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(session), nil
}

// ListSessions returns all active sessions
func (s *worldServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *worldServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	return s.sessions.Delete(sessionID)
}

// ResetSession rebuilds the session's world from its original document,
// keeping the session ID.
func (s *worldServiceImpl) ResetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	doc, err := s.worlds.Load(session.WorldID)
	if err != nil {
		return nil, fmt.Errorf("failed to load world %s: %w", session.WorldID, err)
	}
	w, err := doc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build world %s: %w", session.WorldID, err)
	}

	session.Mu.Lock()
	session.World = w
	session.Mu.Unlock()

	s.sessions.UpdateLastAccessed(sessionID)
	s.sessions.Save(sessionID)

	return sessionInfo(session), nil
}

// RunProgram executes program source against the session's world at the
// session's tier. A failure inside the program is reported in the result,
// not as a Go error; the world keeps the mutations applied before the
// failure.
func (s *worldServiceImpl) RunProgram(ctx context.Context, sessionID, source string) (*RunResult, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	session.Mu.Lock()
	runErr := program.Exec(session.World, session.Tier, sessionID+".kr", source)
	state := CaptureState(session.World)
	rendered := session.World.Render()
	session.Mu.Unlock()

	s.sessions.UpdateLastAccessed(sessionID)
	s.sessions.Save(sessionID)

	result := &RunResult{
		Success:  runErr == nil,
		World:    state,
		Rendered: rendered,
	}
	if runErr != nil {
		result.Error = runErr.Error()
		result.ErrorKind = errorKind(runErr)
	}
	return result, nil
}

// ListWorlds returns all available world documents
func (s *worldServiceImpl) ListWorlds(ctx context.Context) ([]*worldfile.Info, error) {
	return s.worlds.List()
}

func sessionInfo(session *Session) *SessionInfo {
	session.Mu.Lock()
	state := CaptureState(session.World)
	rendered := session.World.Render()
	session.Mu.Unlock()

	return &SessionInfo{
		ID:             session.ID,
		WorldID:        session.WorldID,
		Tier:           string(session.Tier),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		World:          state,
		Rendered:       rendered,
	}
}

// errorKind classifies a program failure for API consumers.
func errorKind(err error) string {
	switch {
	case errors.Is(err, world.ErrBlockedMove):
		return "blocked_move"
	case errors.Is(err, world.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, world.ErrValidation):
		return "validation"
	}
	return "program"
}
