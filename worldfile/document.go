package worldfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
)

// Document is the JSON description of a starting world. BallCounts is the
// only required grid and fixes the world size; walls, colors, robot, and
// tier are optional. Grids are written north-first, matching how the world
// reads on screen: row 0 is the northmost street.
type Document struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// Tier names the command tier programs run at for this world. Empty
	// means normal.
	Tier string `json:"tier,omitempty"`

	BallCounts      [][]int    `json:"ball_counts"`
	HorizontalWalls [][]bool   `json:"horizontal_walls,omitempty"`
	VerticalWalls   [][]bool   `json:"vertical_walls,omitempty"`
	Colors          [][]string `json:"colors,omitempty"`

	Robot *RobotDoc `json:"robot,omitempty"`
}

// RobotDoc is the robot's starting pose. An empty direction means east.
type RobotDoc struct {
	Avenue    int    `json:"avenue"`
	Street    int    `json:"street"`
	Direction string `json:"direction,omitempty"`
}

// Validate checks the document without building a world: the name must be
// set, the tier must parse, and the grids must describe a constructible
// world.
func Validate(doc *Document) error {
	if doc.Name == "" {
		return fmt.Errorf("%w: world document has no name", world.ErrValidation)
	}
	if _, err := doc.CommandTier(); err != nil {
		return err
	}
	_, err := doc.Build()
	return err
}

// CommandTier resolves the document's tier, defaulting to normal.
func (d *Document) CommandTier() (command.Tier, error) {
	if d.Tier == "" {
		return command.TierNormal, nil
	}
	return command.ParseTier(d.Tier)
}

// Build constructs the document's starting world.
func (d *Document) Build() (*world.World, error) {
	setup := world.Setup{
		BallCounts:      d.BallCounts,
		HorizontalWalls: d.HorizontalWalls,
		VerticalWalls:   d.VerticalWalls,
	}

	if d.Colors != nil {
		colors, err := world.ParseColorGrid(d.Colors)
		if err != nil {
			return nil, err
		}
		setup.Colors = colors
	}

	if d.Robot != nil {
		p, err := world.NewPosition(d.Robot.Avenue, d.Robot.Street)
		if err != nil {
			return nil, err
		}
		direction := world.East
		if d.Robot.Direction != "" {
			direction, err = world.ParseDirection(d.Robot.Direction)
			if err != nil {
				return nil, err
			}
		}
		robot := world.NewRobotFacing(p, direction)
		setup.Robot = &robot
	}

	return world.New(setup)
}

// Parse decodes and validates a world document from JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse world document: %w", err)
	}
	if err := Validate(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseFile reads and parses a world document from a file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read world document: %w", err)
	}
	return Parse(data)
}
