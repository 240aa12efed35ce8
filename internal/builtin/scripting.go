package builtin

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const testUsageError = 2

func init() {
	register("source", sourceBuiltin)
	register(".", sourceBuiltin)
	register("read", readBuiltin)
	register("test", testBuiltin)
	register("[", testBracketBuiltin)
	register("true", trueBuiltin)
	register("false", falseBuiltin)
	register("sleep", sleepBuiltin)
	register("eval", evalBuiltin)
	register("shift", shiftBuiltin)
	register("return", returnBuiltin)
	register("break", breakContinueBuiltin)
	register("continue", breakContinueBuiltin)
}

// sourceBuiltin implements `source FILE`/`. FILE` per spec §6: execute each
// non-empty, non-comment line, inheriting the current environment and
// accumulating exit codes (the last line's code wins, matching script
// mode's own behavior in spec §4.6).
func sourceBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "source: usage: source FILE")
		return 1
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "source: %v\n", err)
		return 1
	}
	if ctx.RunLine == nil {
		return 0
	}
	code := 0
	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		code = ctx.RunLine(line)
		if *ctx.Returned {
			return *ctx.ReturnCode
		}
	}
	return code
}

// readBuiltin implements `read NAME`: read one line from stdin into the
// named shell variable.
func readBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "read: usage: read NAME")
		return 1
	}
	sc := bufio.NewScanner(ctx.Stdin)
	if !sc.Scan() {
		return 1
	}
	ctx.Env.Set(args[0], sc.Text())
	return 0
}

func trueBuiltin(ctx *Context, args []string) int  { return 0 }
func falseBuiltin(ctx *Context, args []string) int { return 1 }

func sleepBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(ctx.Stderr, "sleep: usage: sleep SECONDS")
		return 1
	}
	secs, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		fmt.Fprintf(ctx.Stderr, "sleep: %v\n", err)
		return 1
	}
	time.Sleep(time.Duration(secs * float64(time.Second)))
	return 0
}

// evalBuiltin re-joins its arguments into one line and runs it through the
// shell, per the usual `eval` contract.
func evalBuiltin(ctx *Context, args []string) int {
	if ctx.RunLine == nil || len(args) == 0 {
		return 0
	}
	return ctx.RunLine(strings.Join(args, " "))
}

// shiftBuiltin drops N (default 1) positional parameters from the front.
func shiftBuiltin(ctx *Context, args []string) int {
	n := 1
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(ctx.Stderr, "shift: %v\n", err)
			return 1
		}
		n = v
	}
	pos := *ctx.Positional
	if n > len(pos) {
		n = len(pos)
	}
	*ctx.Positional = pos[n:]
	return 0
}

// returnBuiltin signals the enclosing source/eval loop to stop, carrying an
// optional exit code (defaults to 0).
func returnBuiltin(ctx *Context, args []string) int {
	code := 0
	if len(args) > 0 {
		if v, err := strconv.Atoi(args[0]); err == nil {
			code = v
		}
	}
	*ctx.Returned = true
	*ctx.ReturnCode = code
	return code
}

// breakContinueBuiltin is a documented stub: the grammar in spec §4.3 has
// no loop construct, so `break`/`continue` have nothing to unwind and
// simply succeed.
func breakContinueBuiltin(ctx *Context, args []string) int { return 0 }

// testBracketBuiltin implements `[ EXPR ]`: the trailing `]` is required
// and stripped before evaluation.
func testBracketBuiltin(ctx *Context, args []string) int {
	if len(args) == 0 || args[len(args)-1] != "]" {
		fmt.Fprintln(ctx.Stderr, "[: missing closing ]")
		return testUsageError
	}
	return testBuiltin(ctx, args[:len(args)-1])
}

// testBuiltin implements `test EXPR` per spec §6: unary file/string tests
// and binary string/numeric comparisons, exiting 0 (true), 1 (false), or
// 2 (usage error).
func testBuiltin(ctx *Context, args []string) int {
	switch len(args) {
	case 0:
		return 1
	case 1:
		if args[0] == "" {
			return 1
		}
		return 0
	case 2:
		return testUnary(ctx, args[0], args[1])
	case 3:
		return testBinary(ctx, args[0], args[1], args[2])
	default:
		fmt.Fprintln(ctx.Stderr, "test: too many arguments")
		return testUsageError
	}
}

func testUnary(ctx *Context, op, operand string) int {
	switch op {
	case "-z":
		return boolExit(operand == "")
	case "-n":
		return boolExit(operand != "")
	case "-f":
		info, err := os.Stat(operand)
		return boolExit(err == nil && !info.IsDir())
	case "-d":
		info, err := os.Stat(operand)
		return boolExit(err == nil && info.IsDir())
	case "-e":
		_, err := os.Stat(operand)
		return boolExit(err == nil)
	case "-x":
		info, err := os.Stat(operand)
		return boolExit(err == nil && info.Mode()&0o111 != 0)
	}
	fmt.Fprintf(ctx.Stderr, "test: unknown unary operator %s\n", op)
	return testUsageError
}

func testBinary(ctx *Context, lhs, op, rhs string) int {
	switch op {
	case "=", "==":
		return boolExit(lhs == rhs)
	case "!=":
		return boolExit(lhs != rhs)
	}
	l, lerr := strconv.Atoi(lhs)
	r, rerr := strconv.Atoi(rhs)
	if lerr != nil || rerr != nil {
		fmt.Fprintf(ctx.Stderr, "test: %s: integer expression expected\n", lhs)
		return testUsageError
	}
	switch op {
	case "-eq":
		return boolExit(l == r)
	case "-ne":
		return boolExit(l != r)
	case "-lt":
		return boolExit(l < r)
	case "-le":
		return boolExit(l <= r)
	case "-gt":
		return boolExit(l > r)
	case "-ge":
		return boolExit(l >= r)
	}
	fmt.Fprintf(ctx.Stderr, "test: unknown binary operator %s\n", op)
	return testUsageError
}

func boolExit(ok bool) int {
	if ok {
		return 0
	}
	return 1
}
