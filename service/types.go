package service

import (
	"sync"
	"time"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
	"github.com/karelgrid/karel/worldfile"
)

// Session is one live world instance. A session's world is mutated by
// program runs; Mu serializes them so concurrent transports cannot
// interleave operations mid-program.
type Session struct {
	ID             string
	WorldID        string
	World          *world.World
	Tier           command.Tier
	CreatedAt      time.Time
	LastAccessedAt time.Time

	Mu sync.Mutex
}

// RobotState is the robot's pose in JSON payloads.
type RobotState struct {
	Avenue    int             `json:"avenue"`
	Street    int             `json:"street"`
	Direction world.Direction `json:"direction"`
}

// WorldState is the full serializable state of a world. Grids are in
// storage order (row 0 = northmost street); colors are hex strings.
type WorldState struct {
	Size            world.Position `json:"size"`
	Robot           RobotState     `json:"robot"`
	BallCounts      [][]int        `json:"ball_counts"`
	HorizontalWalls [][]bool       `json:"horizontal_walls"`
	VerticalWalls   [][]bool       `json:"vertical_walls"`
	Colors          [][]string     `json:"colors"`
}

// CaptureState snapshots a world into its serializable form.
func CaptureState(w *world.World) *WorldState {
	robot := w.Robot()
	colors := w.CellColors()
	hex := make([][]string, len(colors))
	for i, row := range colors {
		hex[i] = make([]string, len(row))
		for j, c := range row {
			hex[i][j] = c.String()
		}
	}
	return &WorldState{
		Size: w.Size(),
		Robot: RobotState{
			Avenue:    robot.Position.Avenue,
			Street:    robot.Position.Street,
			Direction: robot.Direction,
		},
		BallCounts:      w.BallCounts(),
		HorizontalWalls: w.HorizontalWalls(),
		VerticalWalls:   w.VerticalWalls(),
		Colors:          hex,
	}
}

// Restore rebuilds a live world from a captured state.
func (s *WorldState) Restore() (*world.World, error) {
	colors, err := world.ParseColorGrid(s.Colors)
	if err != nil {
		return nil, err
	}
	robot := world.NewRobotFacing(
		world.Position{Avenue: s.Robot.Avenue, Street: s.Robot.Street},
		s.Robot.Direction,
	)
	return world.New(world.Setup{
		Robot:           &robot,
		BallCounts:      s.BallCounts,
		HorizontalWalls: s.HorizontalWalls,
		VerticalWalls:   s.VerticalWalls,
		Colors:          colors,
	})
}

// SessionInfo describes a session in API responses.
type SessionInfo struct {
	ID             string      `json:"id"`
	WorldID        string      `json:"world_id"`
	Tier           string      `json:"tier"`
	CreatedAt      time.Time   `json:"created_at"`
	LastAccessedAt time.Time   `json:"last_accessed_at"`
	World          *WorldState `json:"world"`
	Rendered       string      `json:"rendered"`
}

// RunResult reports the outcome of a program run. On failure, Error
// carries the message and ErrorKind one of "validation", "out_of_range",
// "blocked_move", or "program"; World reflects the state after whatever
// prefix of the program ran.
type RunResult struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error,omitempty"`
	ErrorKind string      `json:"error_kind,omitempty"`
	World     *WorldState `json:"world"`
	Rendered  string      `json:"rendered"`
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id, worldID string, tier command.Tier, w *world.World) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// WorldManager hands out world documents by ID.
type WorldManager interface {
	Load(id string) (*worldfile.Document, error)
	List() ([]*worldfile.Info, error)
}
