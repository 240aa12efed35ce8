package builtin

import "fmt"

func init() {
	register("alias", aliasBuiltin)
	register("unalias", unaliasBuiltin)
}

// aliasBuiltin implements `alias` per spec §6: with args of the form
// `name=value`, define; with no args, list every alias.
func aliasBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		ctx.Aliases.Each(func(name, value string) {
			fmt.Fprintf(ctx.Stdout, "alias %s='%s'\n", name, value)
		})
		return 0
	}
	status := 0
	for _, a := range args {
		name, value, ok := splitAssignment(a)
		if !ok {
			if v, found := ctx.Aliases.Get(name); found {
				fmt.Fprintf(ctx.Stdout, "alias %s='%s'\n", name, v)
			} else {
				fmt.Fprintf(ctx.Stderr, "alias: %s: not found\n", name)
				status = 1
			}
			continue
		}
		ctx.Aliases.Set(name, value)
	}
	return status
}

func unaliasBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "unalias: usage: unalias name [name ...]")
		return 1
	}
	for _, name := range args {
		ctx.Aliases.Unset(name)
	}
	return 0
}
