// Package builtin implements the shell's built-in command table from spec
// §4.6/§6: the dispatch target for a chain's command name once it's
// resolved as a built-in rather than an external program. Built-ins are
// each a small function, exposed through a registry so internal/shell's
// single-command fast path and internal/interp's pipeline worker can both
// dispatch through the same table.
package builtin

import (
	"context"
	"io"
	"sort"

	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/jobs"
)

// ExternalRunner spawns an external command, used by built-ins that need to
// run a program (`exec`, `timeout`, `command`). internal/shell supplies the
// implementation (backed by internal/interp) so this package never imports
// interp, avoiding a cycle.
type ExternalRunner func(ctx context.Context, name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (int, error)

// LineRunner parses, expands and dispatches one additional line through the
// shell, used by `source`/`.` and `eval`.
type LineRunner func(line string) int

// Context is the state every built-in function sees: the shared shell
// tables (read/write), the pipeline's stdio for this stage, and the two
// callbacks that reach back into internal/shell and internal/interp without
// an import cycle.
type Context struct {
	Env     *expand.Environment
	Arrays  *expand.ArrayTable
	Aliases *expand.AliasTable
	Jobs    *jobs.Table
	History *history.History
	Dirs    *DirStack

	Dir        *string // cwd, kept in sync with $PWD/$OLDPWD by cd/pushd/popd
	ShellName  string
	Positional *[]string
	LastBgPID  *int
	ShellPID   int

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	RunExternal ExternalRunner
	RunLine     LineRunner

	Traps map[string]string // signal name -> command text; stored, not invoked (spec §9: "trap (stub ok)")

	// Returned/ReturnCode let `return` unwind a source/eval loop early, even
	// from a nested RunLine call several levels down; callers share one
	// Runner-owned bool/int by pointer rather than a fresh copy per Context,
	// so a `return` inside a sourced line is visible to the outer source
	// loop that invoked it.
	Returned   *bool
	ReturnCode *int

	OptInd *int // getopts cursor into *Positional, shared the same way
}

// Func is one built-in's implementation. It returns the process-style exit
// code spec §6/§7 specifies for that built-in.
type Func func(ctx *Context, args []string) int

var registry = map[string]Func{}

func register(name string, fn Func) { registry[name] = fn }

// Lookup returns the built-in registered under name, if any.
func Lookup(name string) (Func, bool) {
	fn, ok := registry[name]
	return fn, ok
}

// Names returns every registered built-in name, sorted, for `type`/`which`/
// `complete`.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// IsBuiltin reports whether name is a registered built-in.
func IsBuiltin(name string) bool {
	_, ok := registry[name]
	return ok
}
