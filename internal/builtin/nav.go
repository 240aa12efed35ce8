package builtin

import (
	"fmt"
	"os"
	"path/filepath"
)

func init() {
	register("cd", cdBuiltin)
	register("pwd", pwdBuiltin)
	register("pushd", pushdBuiltin)
	register("popd", popdBuiltin)
	register("dirs", dirsBuiltin)
}

// cdBuiltin implements `cd [dir]` per spec §6: no arg goes to $HOME, `-`
// goes to $OLDPWD, otherwise the given path; $PWD and $OLDPWD are kept in
// sync.
func cdBuiltin(ctx *Context, args []string) int {
	target := ""
	switch len(args) {
	case 0:
		home, _ := ctx.Env.Get("HOME")
		target = home
	case 1:
		if args[0] == "-" {
			old, ok := ctx.Env.Get("OLDPWD")
			if !ok {
				fmt.Fprintln(ctx.Stderr, "cd: OLDPWD not set")
				return 1
			}
			target = old
			fmt.Fprintln(ctx.Stdout, target)
		} else {
			target = args[0]
		}
	default:
		fmt.Fprintln(ctx.Stderr, "cd: too many arguments")
		return 1
	}
	if target == "" {
		fmt.Fprintln(ctx.Stderr, "cd: HOME not set")
		return 1
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(*ctx.Dir, target)
	}
	if err := os.Chdir(target); err != nil {
		fmt.Fprintf(ctx.Stderr, "cd: %v\n", err)
		return 1
	}
	resolved, err := os.Getwd()
	if err != nil {
		resolved = target
	}
	ctx.Env.Set("OLDPWD", *ctx.Dir)
	*ctx.Dir = resolved
	ctx.Env.Set("PWD", resolved)
	return 0
}

func pwdBuiltin(ctx *Context, args []string) int {
	fmt.Fprintln(ctx.Stdout, *ctx.Dir)
	return 0
}

// pushdBuiltin implements `pushd [dir]`: push the current directory, then
// cd to dir (or swap with the top of the stack if no arg is given).
func pushdBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		top, ok := ctx.Dirs.Pop()
		if !ok {
			fmt.Fprintln(ctx.Stderr, "pushd: directory stack empty")
			return 1
		}
		ctx.Dirs.Push(*ctx.Dir)
		if code := cdBuiltin(ctx, []string{top}); code != 0 {
			return code
		}
		return dirsBuiltin(ctx, nil)
	}
	ctx.Dirs.Push(*ctx.Dir)
	if code := cdBuiltin(ctx, args); code != 0 {
		ctx.Dirs.Pop()
		return code
	}
	return dirsBuiltin(ctx, nil)
}

// popdBuiltin implements `popd`: cd to the top of the stack and remove it.
func popdBuiltin(ctx *Context, args []string) int {
	top, ok := ctx.Dirs.Pop()
	if !ok {
		fmt.Fprintln(ctx.Stderr, "popd: directory stack empty")
		return 1
	}
	if code := cdBuiltin(ctx, []string{top}); code != 0 {
		return code
	}
	return dirsBuiltin(ctx, nil)
}

func dirsBuiltin(ctx *Context, args []string) int {
	all := append([]string{*ctx.Dir}, ctx.Dirs.All()...)
	for i, d := range all {
		if i > 0 {
			fmt.Fprint(ctx.Stdout, " ")
		}
		fmt.Fprint(ctx.Stdout, d)
	}
	fmt.Fprintln(ctx.Stdout)
	return 0
}
