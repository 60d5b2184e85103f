package program

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/karelgrid/karel/world"
	"github.com/karelgrid/karel/world/command"
)

// fileOptions enables the imperative dialect robot programs are written in:
// while loops, top-level control flow, and reassignment.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
}

// Exec runs a robot program given as source text against w, exposing
// exactly the operation table of the requested tier. name labels the
// program in error positions. The first failure raised by an invoked
// operation aborts the run and is returned as-is; world mutations applied
// before the failure remain applied.
func Exec(w *world.World, tier command.Tier, name, src string) error {
	table, err := command.NewTable(w, tier)
	if err != nil {
		return err
	}

	thread := &starlark.Thread{Name: name}
	_, err = starlark.ExecFileOptions(fileOptions, thread, name, src, predeclare(table))
	return unwrapEval(err)
}

// ExecFile reads a program from path and runs it like Exec.
func ExecFile(w *world.World, tier command.Tier, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read program: %w", err)
	}
	return Exec(w, tier, path, string(src))
}

// predeclare converts a tier table into the program's predeclared
// namespace.
func predeclare(table command.Table) starlark.StringDict {
	dict := make(starlark.StringDict, len(table))
	for name, entry := range table {
		if entry.Call != nil {
			dict[name] = boundBuiltin(name, entry.Call)
		} else {
			dict[name] = toStarlark(entry.Value)
		}
	}
	return dict
}

// boundBuiltin wraps a bound world operation as a Starlark builtin,
// converting arguments and results at the boundary.
func boundBuiltin(name string, call func(args ...any) (any, error)) *starlark.Builtin {
	return starlark.NewBuiltin(name, func(
		thread *starlark.Thread,
		b *starlark.Builtin,
		args starlark.Tuple,
		kwargs []starlark.Tuple,
	) (starlark.Value, error) {
		if len(kwargs) > 0 {
			return nil, fmt.Errorf("%w: %s: unexpected keyword arguments", world.ErrValidation, b.Name())
		}
		goArgs := make([]any, len(args))
		for i, arg := range args {
			goArgs[i] = fromStarlark(arg)
		}
		result, err := call(goArgs...)
		if err != nil {
			return nil, err
		}
		return toStarlark(result), nil
	})
}

func fromStarlark(v starlark.Value) any {
	switch v := v.(type) {
	case starlark.String:
		return string(v)
	case starlark.Bool:
		return bool(v)
	case starlark.Int:
		if n, ok := v.Int64(); ok {
			return int(n)
		}
	}
	return v
}

func toStarlark(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case bool:
		return starlark.Bool(v)
	case int:
		return starlark.MakeInt(v)
	case string:
		return starlark.String(v)
	case world.RGB:
		return starlark.String(v.String())
	case map[string]world.RGB:
		// Deterministic insertion order keeps dict iteration stable for
		// programs that walk the color table.
		names := make([]string, 0, len(v))
		for name := range v {
			names = append(names, name)
		}
		sort.Strings(names)
		dict := starlark.NewDict(len(v))
		for _, name := range names {
			_ = dict.SetKey(starlark.String(name), starlark.String(v[name].String()))
		}
		return dict
	}
	panic(fmt.Errorf("unsupported value for starlark: %T", v))
}

// unwrapEval surfaces the Go error that aborted a run. Starlark wraps a
// failing builtin's error in an EvalError carrying the program backtrace;
// the world's own failure is the cause and must reach the caller
// unmodified so errors.Is keeps working.
func unwrapEval(err error) error {
	var evalErr *starlark.EvalError
	if errors.As(err, &evalErr) {
		if cause := evalErr.Unwrap(); cause != nil {
			return cause
		}
	}
	return err
}
