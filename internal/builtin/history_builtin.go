package builtin

import (
	"fmt"
	"strconv"
)

func init() {
	register("history", historyBuiltin)
	register("complete", completeBuiltin)
}

// historyBuiltin lists recorded commands, most recent last; an optional
// count argument limits the listing to the last N entries.
func historyBuiltin(ctx *Context, args []string) int {
	all := ctx.History.All()
	start := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "history: %v\n", err)
			return 1
		}
		if n < len(all) {
			start = len(all) - n
		}
	}
	for i := start; i < len(all); i++ {
		fmt.Fprintf(ctx.Stdout, "%5d  %s\n", i+1, all[i])
	}
	return 0
}

// completeBuiltin is a diagnostic entry point: `complete PREFIX` prints the
// registered built-in names that start with PREFIX. It does not consult the
// editor's completers ($PATH commands, files, git, Node/Bun).
func completeBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		return 0
	}
	for _, name := range Names() {
		if hasPrefix(name, args[0]) {
			fmt.Fprintln(ctx.Stdout, name)
		}
	}
	return 0
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
