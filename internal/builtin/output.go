package builtin

import (
	"fmt"
	"strings"
)

func init() {
	register("echo", echoBuiltin)
	register("printf", printfBuiltin)
	register("clear", clearBuiltin)
}

// echoBuiltin implements `echo [-n] ARGS...`: prints its arguments
// space-joined, suppressing the trailing newline with -n.
func echoBuiltin(ctx *Context, args []string) int {
	newline := true
	if len(args) > 0 && args[0] == "-n" {
		newline = false
		args = args[1:]
	}
	fmt.Fprint(ctx.Stdout, strings.Join(args, " "))
	if newline {
		fmt.Fprintln(ctx.Stdout)
	}
	return 0
}

// printfBuiltin implements a minimal `printf FORMAT [ARGS...]`: %s, %d, %%
// and escape sequences \n, \t are handled; anything else in the format
// passes through unchanged.
func printfBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "printf: usage: printf FORMAT [ARGS...]")
		return 1
	}
	format := unescape(args[0])
	rest := args[1:]
	var out strings.Builder
	argIdx := 0
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i == len(format)-1 {
			out.WriteByte(c)
			continue
		}
		i++
		switch format[i] {
		case '%':
			out.WriteByte('%')
		case 's', 'd':
			if argIdx < len(rest) {
				out.WriteString(rest[argIdx])
				argIdx++
			}
		default:
			out.WriteByte('%')
			out.WriteByte(format[i])
		}
	}
	fmt.Fprint(ctx.Stdout, out.String())
	return 0
}

func unescape(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = strings.ReplaceAll(s, `\t`, "\t")
	return s
}

// clearBuiltin emits the same "clear the viewport" escape sequence as the
// editor's own Ctrl-L redraw handler.
func clearBuiltin(ctx *Context, args []string) int {
	fmt.Fprint(ctx.Stdout, "\x1b[2J\x1b[H")
	return 0
}
