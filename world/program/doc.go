// Package program executes foreign robot programs against a World through a
// tier-restricted operation table.
//
// Programs are Starlark source. The predeclared namespace handed to a run
// contains exactly the operations of the requested tier, each bound to the
// target World — nothing else of the host is reachable, so a program's
// entire effect on the world flows through the tier table. Starlark's own
// language builtins (len, range, print, ...) remain available; they carry
// no world capability.
//
// Usage:
//
//	err := program.Exec(w, command.TierSuper, "lesson1", `
//	while front_is_clear():
//	    move()
//	turn_around()
//	`)
//
// A failure raised by an invoked operation (for example moving into a wall)
// aborts the run and is returned to the caller; side effects already applied
// to the world remain applied. Execution is synchronous and blocking with no
// internal timeout; bounding the runtime of an untrusted program is the
// caller's responsibility.
package program
