package builtin

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func init() {
	register("exec", execBuiltin)
	register("trap", trapBuiltin)
	register("getopts", getoptsBuiltin)
	register("timeout", timeoutBuiltin)
}

// execBuiltin implements `exec CMD ARGS...` per the Open Question resolution
// recorded in DESIGN.md: a builtin name runs synchronously in-process and
// then exits the whole shell with its code (there is no process image to
// replace); an external name replaces the current process image via
// execImage (platform-split in exec_unix.go / exec_notunix.go), which exits
// the shell implicitly.
func execBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		return 0
	}
	name, rest := args[0], args[1:]
	if fn, ok := Lookup(name); ok {
		os.Exit(fn(ctx, rest))
	}
	path, ok := findOnPath(ctx, name)
	if !ok {
		fmt.Fprintf(ctx.Stderr, "exec: %s: not found\n", name)
		return 127
	}
	if err := execImage(path, append([]string{name}, rest...), ctx.Env.ExportedPairs()); err != nil {
		fmt.Fprintf(ctx.Stderr, "exec: %v\n", err)
		return 126
	}
	return 0
}

// trapBuiltin records a signal handler command string. Den's REPL loop
// currently only wires SIGINT handling through the editor's own Ctrl-C
// path (spec §4.6), so this stores the mapping for future dispatch rather
// than invoking it.
func trapBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		for sig, cmd := range ctx.Traps {
			fmt.Fprintf(ctx.Stdout, "trap -- '%s' %s\n", cmd, sig)
		}
		return 0
	}
	if len(args) < 2 {
		fmt.Fprintln(ctx.Stderr, "trap: usage: trap COMMAND SIGNAL [SIGNAL...]")
		return 1
	}
	cmd := args[0]
	for _, sig := range args[1:] {
		ctx.Traps[strings.ToUpper(sig)] = cmd
	}
	return 0
}

// getoptsBuiltin implements a minimal `getopts OPTSTRING NAME`, consuming
// from the positional parameters and advancing ctx.OptInd.
func getoptsBuiltin(ctx *Context, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(ctx.Stderr, "getopts: usage: getopts OPTSTRING NAME")
		return 2
	}
	optstring, name := args[0], args[1]
	pos := *ctx.Positional
	if *ctx.OptInd >= len(pos) {
		return 1
	}
	arg := pos[*ctx.OptInd]
	if !strings.HasPrefix(arg, "-") || arg == "-" {
		return 1
	}
	opt := arg[1:2]
	if !strings.ContainsRune(optstring, rune(opt[0])) {
		ctx.Env.Set(name, "?")
		*ctx.OptInd++
		return 0
	}
	ctx.Env.Set(name, opt)
	*ctx.OptInd++
	if strings.Contains(optstring, opt+":") && *ctx.OptInd < len(pos) {
		ctx.Env.Set("OPTARG", pos[*ctx.OptInd])
		*ctx.OptInd++
	}
	return 0
}

// timeoutBuiltin implements `timeout SECONDS CMD ARGS...`: runs the command
// line and returns 124 if it overruns the given duration. The overrunning
// command is not killed; it keeps running on its own goroutine.
func timeoutBuiltin(ctx *Context, args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(ctx.Stderr, "timeout: usage: timeout SECONDS CMD [ARGS...]")
		return 1
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "timeout: %v\n", err)
		return 1
	}
	if ctx.RunLine == nil {
		return 0
	}
	line := strings.Join(args[1:], " ")
	done := make(chan int, 1)
	go func() { done <- ctx.RunLine(line) }()
	select {
	case code := <-done:
		return code
	case <-time.After(time.Duration(secs * float64(time.Second))):
		fmt.Fprintln(ctx.Stderr, "timeout: command timed out")
		return 124
	}
}
