package builtin

import (
	"fmt"
	"strings"
)

func init() {
	register("env", envBuiltin)
	register("export", exportBuiltin)
	register("set", setBuiltin)
	register("unset", unsetBuiltin)
	register("local", declareBuiltin)
	register("declare", declareBuiltin)
	register("readonly", readonlyBuiltin)
}

func splitAssignment(arg string) (name, value string, ok bool) {
	i := strings.IndexByte(arg, '=')
	if i < 0 {
		return arg, "", false
	}
	return arg[:i], arg[i+1:], true
}

// envBuiltin prints every exported variable as NAME=VALUE, one per line.
func envBuiltin(ctx *Context, args []string) int {
	for _, kv := range ctx.Env.ExportedPairs() {
		fmt.Fprintln(ctx.Stdout, kv)
	}
	return 0
}

// exportBuiltin implements `export NAME[=VAL] ...`: with a value, set then
// export; without one, export an already-set variable. No args lists every
// exported variable as an `export NAME=VALUE` line.
func exportBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		for _, kv := range ctx.Env.ExportedPairs() {
			fmt.Fprintf(ctx.Stdout, "export %s\n", kv)
		}
		return 0
	}
	status := 0
	for _, a := range args {
		name, value, hasValue := splitAssignment(a)
		if hasValue {
			if !ctx.Env.SetChecked(name, value) {
				fmt.Fprintf(ctx.Stderr, "export: %s: readonly variable\n", name)
				status = 1
				continue
			}
		}
		ctx.Env.Export(name)
	}
	return status
}

// setBuiltin implements a small subset of `set`: `set NAME=VAL` style
// assignments, and `set -e`/`set +e` toggling the errexit flag stored in
// the _DEN_ERREXIT variable (script-mode error policy per spec §4.6).
func setBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		for _, kv := range ctx.Env.ExportedPairs() {
			fmt.Fprintln(ctx.Stdout, kv)
		}
		return 0
	}
	for _, a := range args {
		switch a {
		case "-e":
			ctx.Env.Set("_DEN_ERREXIT", "1")
		case "+e":
			ctx.Env.Unset("_DEN_ERREXIT")
		default:
			if name, value, ok := splitAssignment(a); ok {
				if !ctx.Env.SetChecked(name, value) {
					fmt.Fprintf(ctx.Stderr, "set: %s: readonly variable\n", name)
					return 1
				}
			}
		}
	}
	return 0
}

// unsetBuiltin removes one or more variables.
func unsetBuiltin(ctx *Context, args []string) int {
	for _, name := range args {
		if ctx.Env.IsReadonly(name) {
			fmt.Fprintf(ctx.Stderr, "unset: %s: readonly variable\n", name)
			return 1
		}
		ctx.Env.Unset(name)
	}
	return 0
}

// declareBuiltin backs both `local` and `declare`: this shell has no
// function call stack (the grammar has no function definitions), so both
// behave as plain assignment into the shared Environment, matching spec
// §9's note to keep a single Shell-owned table rather than per-scope ones.
func declareBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		ctx.Env.Each(func(name, value string, exported bool) {
			fmt.Fprintf(ctx.Stdout, "%s=%s\n", name, value)
		})
		return 0
	}
	for _, a := range args {
		name, value, hasValue := splitAssignment(a)
		if hasValue {
			ctx.Env.SetChecked(name, value)
		}
	}
	return 0
}

// readonlyBuiltin marks a variable (optionally assigning it first) so
// later export/set assignments and unset are rejected.
func readonlyBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		ctx.Env.Each(func(name, value string, exported bool) {
			if ctx.Env.IsReadonly(name) {
				fmt.Fprintf(ctx.Stdout, "readonly %s=%s\n", name, value)
			}
		})
		return 0
	}
	for _, a := range args {
		name, value, hasValue := splitAssignment(a)
		if hasValue {
			ctx.Env.Set(name, value)
		}
		ctx.Env.MarkReadonly(name)
	}
	return 0
}
