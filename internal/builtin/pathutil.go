package builtin

import (
	"fmt"
	"path/filepath"
)

func init() {
	register("basename", basenameBuiltin)
	register("dirname", dirnameBuiltin)
	register("realpath", realpathBuiltin)
}

func basenameBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "basename: usage: basename PATH [SUFFIX]")
		return 1
	}
	base := filepath.Base(args[0])
	if len(args) > 1 && args[1] != "" {
		base = trimSuffix(base, args[1])
	}
	fmt.Fprintln(ctx.Stdout, base)
	return 0
}

func trimSuffix(s, suffix string) string {
	if len(s) > len(suffix) && s[len(s)-len(suffix):] == suffix {
		return s[:len(s)-len(suffix)]
	}
	return s
}

func dirnameBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "dirname: usage: dirname PATH")
		return 1
	}
	fmt.Fprintln(ctx.Stdout, filepath.Dir(args[0]))
	return 0
}

// realpathBuiltin resolves PATH to an absolute, symlink-free form.
func realpathBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "realpath: usage: realpath PATH")
		return 1
	}
	resolved, err := filepath.Abs(args[0])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "realpath: %v\n", err)
		return 1
	}
	eval, err := filepath.EvalSymlinks(resolved)
	if err != nil {
		fmt.Fprintln(ctx.Stdout, resolved)
		return 0
	}
	fmt.Fprintln(ctx.Stdout, eval)
	return 0
}
