package builtin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func init() {
	register("type", typeBuiltin)
	register("which", whichBuiltin)
	register("command", commandBuiltin)
	register("builtin", builtinBuiltin)
	register("hash", hashBuiltin)
}

func findOnPath(ctx *Context, name string) (string, bool) {
	if strings.ContainsRune(name, '/') {
		if isExecutableFile(name) {
			return name, true
		}
		return "", false
	}
	pathVar, _ := ctx.Env.Get("PATH")
	for _, dir := range strings.Split(pathVar, ":") {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, name)
		if isExecutableFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func isExecutableFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Mode()&0o111 != 0
}

// typeBuiltin reports whether each name is a built-in, an alias, or a
// program found on $PATH (spec §6's introspection set).
func typeBuiltin(ctx *Context, args []string) int {
	status := 0
	for _, name := range args {
		if IsBuiltin(name) {
			fmt.Fprintf(ctx.Stdout, "%s is a shell builtin\n", name)
			continue
		}
		if v, ok := ctx.Aliases.Get(name); ok {
			fmt.Fprintf(ctx.Stdout, "%s is aliased to `%s'\n", name, v)
			continue
		}
		if path, ok := findOnPath(ctx, name); ok {
			fmt.Fprintf(ctx.Stdout, "%s is %s\n", name, path)
		} else {
			fmt.Fprintf(ctx.Stderr, "%s: not found\n", name)
			status = 1
		}
	}
	return status
}

// whichBuiltin reports each name's resolved path, or fails with 1.
func whichBuiltin(ctx *Context, args []string) int {
	status := 0
	for _, name := range args {
		if path, ok := findOnPath(ctx, name); ok {
			fmt.Fprintln(ctx.Stdout, path)
		} else {
			status = 1
		}
	}
	return status
}

// commandBuiltin runs name bypassing alias/function lookup: built-ins still
// dispatch, everything else goes straight to RunExternal.
func commandBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		return 0
	}
	name, rest := args[0], args[1:]
	if fn, ok := Lookup(name); ok {
		return fn(ctx, rest)
	}
	if ctx.RunExternal == nil {
		fmt.Fprintf(ctx.Stderr, "command: %s: not found\n", name)
		return 127
	}
	code, err := ctx.RunExternal(context.Background(), name, rest, ctx.Stdin, ctx.Stdout, ctx.Stderr)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "command: %v\n", err)
		return 127
	}
	return code
}

// builtinBuiltin forces name to dispatch as a built-in even if a same-named
// alias exists.
func builtinBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		return 0
	}
	fn, ok := Lookup(args[0])
	if !ok {
		fmt.Fprintf(ctx.Stderr, "builtin: %s: not a shell builtin\n", args[0])
		return 1
	}
	return fn(ctx, args[1:])
}

// hashBuiltin is a cache-clearing stub: den resolves $PATH fresh on every
// lookup (no memoized command table), so `hash` just reports that and
// `hash -r` is a no-op.
func hashBuiltin(ctx *Context, args []string) int {
	fmt.Fprintln(ctx.Stdout, "hash: den re-resolves $PATH on every command, nothing to clear")
	return 0
}
