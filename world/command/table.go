package command

import (
	"fmt"
	"sort"

	"github.com/karelgrid/karel/world"
)

// Entry is one named capability in a tier table. Exactly one of Call and
// Value is set: Call for a world operation bound to a specific World, Value
// for a data entry (the ultra tier's color name table).
type Entry struct {
	// Call invokes the bound operation. Query operations return their
	// result; command operations return nil. Failures from the underlying
	// world operation are returned unmodified.
	Call func(args ...any) (any, error)

	// Value holds a non-callable entry.
	Value any
}

// Table maps operation names to their bound entries for one tier.
type Table map[string]Entry

// Names returns the sorted operation names the table exposes.
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTable builds the operation table for the given tier, binding each
// exposed name to an operation on w. The table's contents are a pure
// function of the tier name; unknown tiers are rejected.
func NewTable(w *world.World, tier Tier) (Table, error) {
	if _, err := ParseTier(string(tier)); err != nil {
		return nil, err
	}

	table := Table{
		"move":      cmd(w.Move),
		"turn_left": cmd0(w.TurnLeft),
		"put_ball":  cmd(func() error { return w.PutBall() }),
		"take_ball": cmd(func() error { return w.TakeBall() }),

		"balls_present":    queryErr(func() (bool, error) { return w.BallsPresent() }),
		"no_balls_present": queryErr(func() (bool, error) { return w.NoBallsPresent() }),

		"front_is_clear":   query(w.FrontIsClear),
		"left_is_clear":    query(w.LeftIsClear),
		"right_is_clear":   query(w.RightIsClear),
		"front_is_blocked": query(w.FrontIsBlocked),
		"left_is_blocked":  query(w.LeftIsBlocked),
		"right_is_blocked": query(w.RightIsBlocked),

		"facing_north": query(w.FacingNorth),
		"facing_south": query(w.FacingSouth),
		"facing_east":  query(w.FacingEast),
		"facing_west":  query(w.FacingWest),

		"not_facing_north": query(w.NotFacingNorth),
		"not_facing_south": query(w.NotFacingSouth),
		"not_facing_east":  query(w.NotFacingEast),
		"not_facing_west":  query(w.NotFacingWest),
	}

	if tier == TierSuper || tier == TierUltra {
		table["turn_right"] = cmd0(w.TurnRight)
		table["turn_around"] = cmd0(w.TurnAround)
	}

	if tier == TierUltra {
		table["color"] = Entry{Value: world.Colors}
		table["paint"] = colorCmd(func(c world.RGB) error { return w.Paint(c) })
		table["color_is"] = colorQuery(func(c world.RGB) bool { return w.ColorIs(c) })
	}

	return table, nil
}

// cmd wraps a zero-argument command that can fail.
func cmd(fn func() error) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		if err := noArgs(args); err != nil {
			return nil, err
		}
		return nil, fn()
	}}
}

// cmd0 wraps a zero-argument command that cannot fail.
func cmd0(fn func()) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		if err := noArgs(args); err != nil {
			return nil, err
		}
		fn()
		return nil, nil
	}}
}

// query wraps a zero-argument boolean query.
func query(fn func() bool) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		if err := noArgs(args); err != nil {
			return nil, err
		}
		return fn(), nil
	}}
}

// queryErr wraps a zero-argument query that can fail.
func queryErr(fn func() (bool, error)) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		if err := noArgs(args); err != nil {
			return nil, err
		}
		return fn()
	}}
}

// colorCmd wraps a command taking one color argument, given either as an
// RGB value or as any textual form ParseColor accepts.
func colorCmd(fn func(world.RGB) error) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		c, err := oneColorArg(args)
		if err != nil {
			return nil, err
		}
		return nil, fn(c)
	}}
}

// colorQuery wraps a boolean query taking one color argument.
func colorQuery(fn func(world.RGB) bool) Entry {
	return Entry{Call: func(args ...any) (any, error) {
		c, err := oneColorArg(args)
		if err != nil {
			return nil, err
		}
		return fn(c), nil
	}}
}

func noArgs(args []any) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: operation takes no arguments, got %d", world.ErrValidation, len(args))
	}
	return nil
}

func oneColorArg(args []any) (world.RGB, error) {
	if len(args) != 1 {
		return world.RGB{}, fmt.Errorf("%w: operation takes exactly one color argument, got %d",
			world.ErrValidation, len(args))
	}
	switch c := args[0].(type) {
	case world.RGB:
		return c, nil
	case string:
		return world.ParseColor(c)
	}
	return world.RGB{}, fmt.Errorf("%w: %v is not a color string or RGB value", world.ErrValidation, args[0])
}
