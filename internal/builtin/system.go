package builtin

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"
)

func init() {
	register("uname", unameBuiltin)
	register("whoami", whoamiBuiltin)
	register("umask", umaskBuiltin)
	register("times", timesBuiltin)
	register("time", timeBuiltin)
}

func unameBuiltin(ctx *Context, args []string) int {
	os := runtime.GOOS
	if os != "" {
		os = strings.ToUpper(os[:1]) + os[1:]
	}
	fmt.Fprintf(ctx.Stdout, "%s %s\n", os, runtime.GOARCH)
	return 0
}

func whoamiBuiltin(ctx *Context, args []string) int {
	v, ok := ctx.Env.Get("USER")
	if !ok || v == "" {
		v = "unknown"
	}
	fmt.Fprintln(ctx.Stdout, v)
	return 0
}

// umaskBuiltin prints a fixed 0022; it does not query the process umask,
// and it ignores any arguments, so the mask is never changed.
func umaskBuiltin(ctx *Context, args []string) int {
	mask := os.FileMode(0o22)
	fmt.Fprintf(ctx.Stdout, "%04o\n", mask)
	return 0
}

// timesBuiltin prints the two-line layout of the POSIX `times` report with
// every value fixed at zero; no CPU time is measured, for the shell or for
// its children.
func timesBuiltin(ctx *Context, args []string) int {
	fmt.Fprintf(ctx.Stdout, "0m0.000s 0m0.000s\n0m0.000s 0m0.000s\n")
	return 0
}

// timeBuiltin times execution of the remaining words as a command line,
// reporting elapsed wall time on stderr afterward.
func timeBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		return 0
	}
	start := time.Now()
	code := 0
	if ctx.RunLine != nil {
		line := args[0]
		for _, a := range args[1:] {
			line += " " + a
		}
		code = ctx.RunLine(line)
	}
	elapsed := time.Since(start)
	fmt.Fprintf(ctx.Stderr, "\nreal\t%s\n", elapsed.Round(time.Millisecond))
	return code
}
