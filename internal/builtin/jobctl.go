package builtin

import (
	"fmt"
	"strconv"
	"strings"
	"syscall"

	"github.com/go-den/den/internal/jobs"
)

func init() {
	register("jobs", jobsBuiltin)
	register("fg", fgBuiltin)
	register("bg", bgBuiltin)
	register("wait", waitBuiltin)
	register("kill", killBuiltin)
	register("disown", disownBuiltin)
}

func jobsBuiltin(ctx *Context, args []string) int {
	for _, j := range ctx.Jobs.All() {
		fmt.Fprintf(ctx.Stdout, "[%d]  %-8s %s\n", j.ID, j.Status, j.Command)
	}
	return 0
}

// parseJobRef accepts a bare job ID, a "%id" job reference, or "" (meaning the
// most recently started job), per spec §6's `fg [%id]`/`bg [%id]` contract.
func parseJobRef(ctx *Context, ref string) (*jobs.Job, error) {
	all := ctx.Jobs.All()
	if ref == "" {
		if len(all) == 0 {
			return nil, fmt.Errorf("no current job")
		}
		return all[len(all)-1], nil
	}
	idStr := strings.TrimPrefix(ref, "%")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		return nil, fmt.Errorf("bad job reference %q", ref)
	}
	j, ok := ctx.Jobs.Get(id)
	if !ok {
		return nil, fmt.Errorf("no such job %s", ref)
	}
	return j, nil
}

// fgBuiltin blocks until the referenced background job exits, reporting
// its exit code the way a foreground pipeline would.
func fgBuiltin(ctx *Context, args []string) int {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	j, err := parseJobRef(ctx, ref)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
		return 1
	}
	fmt.Fprintln(ctx.Stdout, j.Command)
	state, err := j.Proc.Wait()
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "fg: %v\n", err)
		return 1
	}
	ctx.Jobs.Remove(j.ID)
	return state.ExitCode()
}

// bgBuiltin resumes a stopped job in the background (spec §6). Den's job
// table never marks a job Stopped on its own (no terminal job-control
// signals are wired to the REPL), so this is a thin, honest no-op over
// whatever state the job is actually in.
func bgBuiltin(ctx *Context, args []string) int {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	j, err := parseJobRef(ctx, ref)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "bg: %v\n", err)
		return 1
	}
	fmt.Fprintf(ctx.Stdout, "[%d] %s\n", j.ID, j.Command)
	return 0
}

// waitBuiltin waits for one job (or, with no args, every running job) to
// finish.
func waitBuiltin(ctx *Context, args []string) int {
	targets := ctx.Jobs.All()
	if len(args) > 0 {
		j, err := parseJobRef(ctx, args[0])
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "wait: %v\n", err)
			return 1
		}
		targets = []*jobs.Job{j}
	}
	code := 0
	for _, j := range targets {
		if j.Status == jobs.Done {
			code = j.Code
			continue
		}
		state, err := j.Proc.Wait()
		if err != nil {
			continue
		}
		code = state.ExitCode()
		ctx.Jobs.Remove(j.ID)
	}
	return code
}

// killBuiltin implements `kill [-SIG|-N] {pid|%id}` from spec §6.
func killBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "kill: usage: kill [-SIG|-N] {pid|%id}")
		return 1
	}
	sig := syscall.SIGTERM
	i := 0
	if strings.HasPrefix(args[0], "-") {
		if s, ok := parseSignal(args[0][1:]); ok {
			sig = s
			i = 1
		}
	}
	if i >= len(args) {
		fmt.Fprintln(ctx.Stderr, "kill: missing operand")
		return 1
	}
	status := 0
	for _, target := range args[i:] {
		if strings.HasPrefix(target, "%") {
			j, err := parseJobRef(ctx, target)
			if err != nil {
				fmt.Fprintf(ctx.Stderr, "kill: %v\n", err)
				status = 1
				continue
			}
			if err := j.Proc.Signal(sig); err != nil {
				fmt.Fprintf(ctx.Stderr, "kill: %v\n", err)
				status = 1
			}
			continue
		}
		pid, err := strconv.Atoi(target)
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "kill: %s: arguments must be process or job IDs\n", target)
			status = 1
			continue
		}
		if err := syscall.Kill(pid, sig); err != nil {
			fmt.Fprintf(ctx.Stderr, "kill: (%d): %v\n", pid, err)
			status = 1
		}
	}
	return status
}

func parseSignal(s string) (syscall.Signal, bool) {
	switch strings.ToUpper(s) {
	case "HUP", "1":
		return syscall.SIGHUP, true
	case "INT", "2":
		return syscall.SIGINT, true
	case "QUIT", "3":
		return syscall.SIGQUIT, true
	case "KILL", "9":
		return syscall.SIGKILL, true
	case "TERM", "15":
		return syscall.SIGTERM, true
	case "CONT", "18":
		return syscall.SIGCONT, true
	case "STOP", "19":
		return syscall.SIGSTOP, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return syscall.Signal(n), true
	}
	return 0, false
}

// disownBuiltin removes a job from the table without waiting for it.
func disownBuiltin(ctx *Context, args []string) int {
	ref := ""
	if len(args) > 0 {
		ref = args[0]
	}
	j, err := parseJobRef(ctx, ref)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "disown: %v\n", err)
		return 1
	}
	ctx.Jobs.Remove(j.ID)
	return 0
}
