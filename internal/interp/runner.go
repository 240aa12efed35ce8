// Package interp executes a parsed CommandChain: expanding each command's
// words, applying redirections, and running the result as a built-in, an
// external process, or a multi-stage pipeline over this shell's flat
// CommandChain, reusing internal/builtin for anything that isn't an
// external program.
package interp

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"

	"github.com/go-den/den/internal/builtin"
	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/jobs"
	"github.com/go-den/den/internal/lexsyntax"
	"github.com/go-den/den/internal/token"
)

// Runner owns the shared shell state a CommandChain needs to execute, and
// is shared by every command run during a session — mirroring the
// teacher's single long-lived Runner rather than constructing one per line.
type Runner struct {
	Env     *expand.Environment
	Arrays  *expand.ArrayTable
	Aliases *expand.AliasTable
	Jobs    *jobs.Table
	History *history.History
	Dirs    *builtin.DirStack

	Dir        *string // cwd, shared with cd/pushd/popd
	ShellName  string
	Positional *[]string
	LastBgPID  *int
	ShellPID   int
	ExitCode   int
	LastArg    string
	Traps      map[string]string
	OptInd     int

	// Returned/ReturnCode back `return` inside a sourced script or eval,
	// shared by every builtin.Context this Runner hands out (see
	// internal/builtin.Context's doc comment).
	Returned   bool
	ReturnCode int

	// RunLine is supplied by internal/shell: parse + expand + Run one more
	// line, used by source/eval/timeout. Left nil, those builtins degrade
	// to no-ops rather than panicking.
	RunLine builtin.LineRunner
}

// NewRunner builds a Runner over the given shared tables.
func NewRunner(env *expand.Environment, arrays *expand.ArrayTable, aliases *expand.AliasTable, jobsTable *jobs.Table, hist *history.History, dirs *builtin.DirStack, dir *string, positional *[]string) *Runner {
	return &Runner{
		Env:        env,
		Arrays:     arrays,
		Aliases:    aliases,
		Jobs:       jobsTable,
		History:    hist,
		Dirs:       dirs,
		Dir:        dir,
		Positional: positional,
		LastBgPID:  new(int),
		ShellPID:   os.Getpid(),
		Traps:      make(map[string]string),
	}
}

// pipelineGroup is a maximal run of Pipe-joined commands — one scheduling
// unit for And/Or/Sequence short-circuiting and for backgrounding.
type pipelineGroup struct {
	start, end int
	leadingOp  token.Operator
	background bool
}

// groupPipelines splits chain into pipelineGroups at every non-Pipe
// operator. chain.Background marks the final group as background-eligible;
// it is a field on the chain, not an operator, so it never perturbs the
// len(Operators) == len(Commands)-1 grouping above.
func groupPipelines(chain *lexsyntax.CommandChain) []pipelineGroup {
	var groups []pipelineGroup
	start := 0
	leadingOp := token.OpNone
	for i, op := range chain.Operators {
		if op == token.OpPipe {
			continue
		}
		groups = append(groups, pipelineGroup{start: start, end: i + 1, leadingOp: leadingOp})
		start = i + 1
		leadingOp = op
	}
	groups = append(groups, pipelineGroup{start: start, end: len(chain.Commands), leadingOp: leadingOp})

	if chain.Background && len(groups) > 0 {
		groups[len(groups)-1].background = true
	}
	return groups
}

// Run executes chain's pipeline groups left to right, honoring &&/||
// short-circuiting and spawning trailing `&` pipelines in the background.
func (r *Runner) Run(ctx context.Context, chain *lexsyntax.CommandChain, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	groups := groupPipelines(chain)
	code := r.ExitCode
	for gi, g := range groups {
		if gi > 0 {
			switch g.leadingOp {
			case token.OpAnd:
				if code != 0 {
					continue
				}
			case token.OpOr:
				if code == 0 {
					continue
				}
			}
		}
		if g.background {
			r.runBackground(chain, g, stdout, stderr)
			code = 0
			r.ExitCode = code
			continue
		}
		var err error
		code, err = r.runPipeline(ctx, chain, g.start, g.end, stdin, stdout, stderr)
		r.ExitCode = code
		if err != nil {
			return code, err
		}
	}
	return code, nil
}

// renderCommand reconstructs a readable command line for job listings,
// since ParsedCommand keeps name/args as Words rather than source text.
func renderCommand(cmd lexsyntax.ParsedCommand) string {
	s := cmd.Name.Raw()
	for _, a := range cmd.Args {
		s += " " + a.Raw()
	}
	return s
}

// runBackground starts a trailing pipeline without waiting for it. A
// single external command is started directly and registered with the job
// table, which reaps it itself via polling (spec §4.6). Anything else — a
// builtin, or a multi-stage pipeline — runs on an unmanaged goroutine
// instead, since internal/jobs models a job as an *os.Process.
func (r *Runner) runBackground(chain *lexsyntax.CommandChain, g pipelineGroup, stdout, stderr io.Writer) {
	cmds := chain.Commands[g.start:g.end]
	text := renderCommand(cmds[0])
	for _, c := range cmds[1:] {
		text += " | " + renderCommand(c)
	}

	if len(cmds) == 1 {
		name, args, err := r.expandCommand(cmds[0])
		if err == nil && !builtin.IsBuiltin(name) {
			proc, err := r.startExternal(name, args, nil, stdout, stderr)
			if err == nil {
				j := r.Jobs.Add(proc, text)
				fmt.Fprintf(stdout, "[%d] %d\n", j.ID, proc.Pid)
				return
			}
			fmt.Fprintln(stderr, err)
			return
		}
	}
	go func() {
		r.runPipeline(context.Background(), chain, g.start, g.end, nil, stdout, stderr)
	}()
}

// runPipeline runs one Pipe-joined group of commands, wiring each stage's
// stdout to the next stage's stdin via io.Pipe. A single-command group
// skips the pipe machinery and runs directly.
func (r *Runner) runPipeline(ctx context.Context, chain *lexsyntax.CommandChain, start, end int, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	cmds := chain.Commands[start:end]
	n := len(cmds)
	if n == 1 {
		return r.runCommand(ctx, cmds[0], stdin, stdout, stderr)
	}

	ins := make([]io.Reader, n)
	ins[0] = stdin
	readers := make([]*io.PipeReader, n-1)
	writers := make([]*io.PipeWriter, n-1)
	for i := 0; i < n-1; i++ {
		pr, pw := io.Pipe()
		ins[i+1] = pr
		readers[i] = pr
		writers[i] = pw
	}

	var wg sync.WaitGroup
	codes := make([]int, n)
	errs := make([]error, n)
	for i, cmd := range cmds {
		i, cmd := i, cmd
		var w io.Writer = stdout
		if i < n-1 {
			w = writers[i]
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i < n-1 {
				defer writers[i].Close()
			}
			if i > 0 {
				// a stage that never reads its stdin must not leave the
				// previous stage blocked on its pipe write
				defer readers[i-1].Close()
			}
			codes[i], errs[i] = r.runCommand(ctx, cmd, ins[i], w, stderr)
		}()
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return codes[n-1], err
		}
	}
	return codes[n-1], nil
}

// expandCommand resolves a command's name (variable expansion only, per
// spec §4.4).
func (r *Runner) expandCommand(cmd lexsyntax.ParsedCommand) (string, []string, error) {
	ectx := r.expandContext()
	name, err := expand.ExpandCommandName(cmd.Name, ectx)
	if err != nil {
		return "", nil, err
	}
	args, err := expand.ExpandArgs(cmd.Args, ectx)
	if err != nil {
		return "", nil, err
	}
	return name, args, nil
}

func (r *Runner) expandContext() *expand.Context {
	return &expand.Context{
		Ctx:        context.Background(),
		Env:        r.Env,
		Arrays:     r.Arrays,
		ShellName:  r.ShellName,
		Positional: *r.Positional,
		ExitCode:   r.ExitCode,
		ShellPID:   r.ShellPID,
		LastBgPID:  *r.LastBgPID,
		LastArg:    r.LastArg,
		Dir:        *r.Dir,
		CmdSubst:   r.cmdSubst,
	}
}

// cmdSubst runs cmd as a nested chain and captures its stdout, implementing
// $(cmd) (spec §4.4).
func (r *Runner) cmdSubst(ctx context.Context, cmdline string) (string, error) {
	chain, err := lexsyntax.Parse(cmdline)
	if err != nil {
		return "", err
	}
	var buf captureWriter
	_, err = r.Run(ctx, chain, nil, &buf, io.Discard)
	return buf.String(), err
}

type captureWriter struct{ data []byte }

func (c *captureWriter) Write(p []byte) (int, error) {
	c.data = append(c.data, p...)
	return len(p), nil
}
func (c *captureWriter) String() string { return string(c.data) }

// runCommand expands, redirects, and dispatches a single command as a
// builtin or an external process.
func (r *Runner) runCommand(ctx context.Context, cmd lexsyntax.ParsedCommand, stdin io.Reader, stdout, stderr io.Writer) (int, error) {
	name, args, err := r.expandCommand(cmd)
	if err != nil {
		return 1, err
	}
	if name == "" {
		return 0, nil
	}
	name = r.Aliases.Expand(name)

	in, out, errw, closeAll, err := r.applyRedirections(cmd, stdin, stdout, stderr)
	if err != nil {
		return 1, &ExecError{Cmd: name, Reason: err}
	}
	defer closeAll()

	if len(args) > 0 {
		r.LastArg = args[len(args)-1]
	}

	if fn, ok := builtin.Lookup(name); ok {
		bctx := r.builtinContext(in, out, errw)
		code := fn(bctx, args)
		r.syncFromBuiltin(bctx)
		return code, nil
	}

	proc, err := r.startExternal(name, args, in, out, errw)
	if err != nil {
		return r.exitCodeFor(err), &ExecError{Cmd: name, Reason: err}
	}
	state, err := proc.Wait()
	if err != nil {
		return 1, err
	}
	return state.ExitCode(), nil
}

func (r *Runner) exitCodeFor(err error) int {
	switch err.(type) {
	case errNotFound:
		return 127
	case errNotExecutable:
		return 126
	default:
		return 126
	}
}

// startExternal resolves name on $PATH and starts it, returning its
// process without waiting (the caller decides whether to Wait immediately
// or register it as a background job).
func (r *Runner) startExternal(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) (*os.Process, error) {
	pathVar, _ := r.Env.Get("PATH")
	path, err := lookPath(name, pathVar, *r.Dir)
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(path, args...)
	cmd.Args[0] = name
	cmd.Dir = *r.Dir
	cmd.Env = r.Env.ExportedPairs()
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	prepareCommand(cmd)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd.Process, nil
}

// builtinContext assembles the per-call Context a builtin sees, sharing
// Positional/Returned/ReturnCode/OptInd by pointer with the Runner so
// nested dispatch (source, eval) observes state changes from inside.
func (r *Runner) builtinContext(stdin io.Reader, stdout, stderr io.Writer) *builtin.Context {
	dirCopy := *r.Dir
	return &builtin.Context{
		Env:        r.Env,
		Arrays:     r.Arrays,
		Aliases:    r.Aliases,
		Jobs:       r.Jobs,
		History:    r.History,
		Dirs:       r.Dirs,
		Dir:        &dirCopy,
		ShellName:  r.ShellName,
		Positional: r.Positional,
		LastBgPID:  r.LastBgPID,
		ShellPID:   r.ShellPID,
		Stdin:      stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		RunExternal: func(ctx context.Context, name string, args []string, in io.Reader, out, errw io.Writer) (int, error) {
			proc, err := r.startExternal(name, args, in, out, errw)
			if err != nil {
				return r.exitCodeFor(err), err
			}
			state, err := proc.Wait()
			if err != nil {
				return 1, err
			}
			return state.ExitCode(), nil
		},
		RunLine:    r.RunLine,
		Traps:      r.Traps,
		Returned:   &r.Returned,
		ReturnCode: &r.ReturnCode,
		OptInd:     &r.OptInd,
	}
}

// syncFromBuiltin copies back state a builtin may have changed on its
// Context's own copies (currently just Dir, which cd/pushd/popd update
// locally to keep $OLDPWD bookkeeping in one place).
func (r *Runner) syncFromBuiltin(ctx *builtin.Context) {
	if ctx.Dir != nil {
		*r.Dir = *ctx.Dir
	}
}
