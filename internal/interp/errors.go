package interp

import "fmt"

// ExitStatus is a command's exit code carried as an error: callers use
// errors.As to recover the code instead of threading an (int, error) pair
// through every layer by hand.
type ExitStatus int

func (e ExitStatus) Error() string { return fmt.Sprintf("exit status %d", int(e)) }

// ExecError is an ExecutionError per spec §7: a command failed to spawn,
// or an explicit redirect target couldn't be opened.
type ExecError struct {
	Cmd    string
	Reason error
}

func (e *ExecError) Error() string { return fmt.Sprintf("%s: %v", e.Cmd, e.Reason) }
func (e *ExecError) Unwrap() error { return e.Reason }

// errNotFound and errNotExecutable distinguish the 127/126 exit codes spec
// §7 calls for.
type errNotFound struct{ name string }

func (e errNotFound) Error() string { return e.name + ": command not found" }

type errNotExecutable struct{ name string }

func (e errNotExecutable) Error() string { return e.name + ": permission denied" }
