package session

import (
	"time"

	"github.com/karelgrid/karel/service"
)

// Persistence defines the interface for persisting sessions.
type Persistence interface {
	// Save persists a session to storage
	Save(sess *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// persistedSession is the JSON structure for a stored session. The full
// world state is embedded so restoring does not depend on the world
// document still existing unchanged.
type persistedSession struct {
	ID             string              `json:"id"`
	WorldID        string              `json:"world_id"`
	Tier           string              `json:"tier"`
	CreatedAt      time.Time           `json:"created_at"`
	LastAccessedAt time.Time           `json:"last_accessed_at"`
	World          *service.WorldState `json:"world"`
}
