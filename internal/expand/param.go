package expand

import (
	"strconv"
	"strings"
)

func isNameStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isNameByte(b byte) bool {
	return isNameStart(b) || (b >= '0' && b <= '9')
}

// ExpandVars resolves $VAR, ${VAR}, ${name[i]}, ${name[@]}, positional and
// special parameters, and $(cmd) command substitution within s. It is the
// first stage of expansion (spec §4.4.1) and is applied to every word part
// that is not single-quoted.
func ExpandVars(s string, ctx *Context) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(s) {
		if s[i] != '$' || i+1 >= len(s) {
			out.WriteByte(s[i])
			i++
			continue
		}
		next := s[i+1]
		switch {
		case next == '{':
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", &Error{Msg: "unmatched ${"}
			}
			inner := s[i+2 : i+2+end]
			val, err := expandBraced(inner, ctx)
			if err != nil {
				return "", err
			}
			out.WriteString(val)
			i = i + 2 + end + 1
		case next == '(':
			end, err := matchParen(s, i+1)
			if err != nil {
				return "", err
			}
			inner := s[i+2 : end]
			val, err := runCmdSubst(inner, ctx)
			if err != nil {
				return "", err
			}
			out.WriteString(val)
			i = end + 1
		case next == '?' || next == '$' || next == '!' || next == '_' || next == '@' || next == '*' || next == '#':
			out.WriteString(expandSpecial(next, ctx))
			i += 2
		case next >= '0' && next <= '9':
			out.WriteString(expandPositional(next, ctx))
			i += 2
		case isNameStart(next):
			j := i + 1
			for j < len(s) && isNameByte(s[j]) {
				j++
			}
			name := s[i+1 : j]
			out.WriteString(lookupScalar(name, ctx))
			i = j
		default:
			out.WriteByte('$')
			i++
		}
	}
	return out.String(), nil
}

func matchParen(s string, open int) (int, error) {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, &Error{Msg: "unmatched $("}
}

func runCmdSubst(cmd string, ctx *Context) (string, error) {
	if ctx.CmdSubst == nil {
		return "", nil
	}
	out, err := ctx.CmdSubst(ctx.Ctx, cmd)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(out, "\n"), nil
}

func expandSpecial(c byte, ctx *Context) string {
	switch c {
	case '?':
		return strconv.Itoa(ctx.ExitCode)
	case '$':
		return strconv.Itoa(ctx.ShellPID)
	case '!':
		if ctx.LastBgPID == 0 {
			return ""
		}
		return strconv.Itoa(ctx.LastBgPID)
	case '_':
		return ctx.LastArg
	case '@', '*':
		return strings.Join(ctx.Positional, " ")
	case '#':
		return strconv.Itoa(len(ctx.Positional))
	}
	return ""
}

func expandPositional(c byte, ctx *Context) string {
	if c == '0' {
		return ctx.ShellName
	}
	idx := int(c - '1')
	if idx < 0 || idx >= len(ctx.Positional) {
		return ""
	}
	return ctx.Positional[idx]
}

func lookupScalar(name string, ctx *Context) string {
	if v, ok := ctx.Env.Get(name); ok {
		return v
	}
	if items, ok := ctx.Arrays.Get(name); ok && len(items) > 0 {
		return items[0]
	}
	return ""
}

// expandBraced handles the body of ${...}: a bare name, ${name[i]} or
// ${name[@]}.
func expandBraced(inner string, ctx *Context) (string, error) {
	switch {
	case inner == "?" || inner == "$" || inner == "!" || inner == "_" || inner == "@" || inner == "*" || inner == "#":
		return expandSpecial(inner[0], ctx), nil
	case len(inner) == 1 && inner[0] >= '0' && inner[0] <= '9':
		return expandPositional(inner[0], ctx), nil
	}
	open := strings.IndexByte(inner, '[')
	if open < 0 {
		return lookupScalar(inner, ctx), nil
	}
	if !strings.HasSuffix(inner, "]") {
		return "", &Error{Msg: "malformed array reference: " + inner}
	}
	name := inner[:open]
	idxStr := inner[open+1 : len(inner)-1]
	items, ok := ctx.Arrays.Get(name)
	if !ok {
		return "", nil
	}
	if idxStr == "@" {
		return strings.Join(items, " "), nil
	}
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		return "", &Error{Msg: "bad array index: " + idxStr}
	}
	if idx < 0 || idx >= len(items) {
		return "", nil
	}
	return items[idx], nil
}

// Error is an ExpansionError per spec §7.
type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }
