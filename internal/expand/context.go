package expand

import "context"

// CmdSubstFunc executes a command and captures its standard output, for
// `$(cmd)` command substitution. The executor (internal/interp) supplies
// the implementation so this package never imports it, avoiding a cycle.
// Spec §4.4 allows implementations to stub command substitution; a nil
// CmdSubstFunc makes `$(cmd)` expand to the empty string.
type CmdSubstFunc func(ctx context.Context, cmd string) (string, error)

// Context carries everything the expander needs to resolve a reference:
// the environment and array tables, positional parameters, and the handful
// of special variables from spec §4.4.1.
type Context struct {
	Ctx context.Context

	Env    *Environment
	Arrays *ArrayTable

	ShellName  string   // $0
	Positional []string // $1..$9, $@, $*, $#
	ExitCode   int      // $?
	ShellPID   int      // $$
	LastBgPID  int      // $!
	LastArg    string   // $_

	Dir string // cwd, used for glob expansion

	CmdSubst CmdSubstFunc
}
