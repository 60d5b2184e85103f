package service

import (
	"context"

	"github.com/karelgrid/karel/worldfile"
)

// WorldService defines all session and program operations.
type WorldService interface {
	// Session Management
	CreateSession(ctx context.Context, worldID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	ResetSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Program Execution
	RunProgram(ctx context.Context, sessionID, source string) (*RunResult, error)

	// World Documents
	ListWorlds(ctx context.Context) ([]*worldfile.Info, error)
}
