// Package prompt implements the opaque "prompt renderer" collaborator from
// spec §1/§9: the shell builds a Context each time it needs a prompt
// string, and a Renderer turns it into the text the line editor displays.
// The real styling/theme/git-status machinery is explicitly out of scope
// (spec §1's Non-goals list the highlighter and prompt renderer as thin
// external collaborators); this package supplies the minimal contract and
// a template-based default so den runs standalone without one.
package prompt

import "strings"

// Context carries what a renderer needs to produce a prompt string: the
// current directory, last exit code, shell name, and whether this is a
// continuation (PS2) line.
type Context struct {
	Dir          string
	ExitCode     int
	ShellName    string
	Continuation bool
}

// Renderer turns a Context into the text shown before the cursor.
type Renderer interface {
	Render(ctx Context) string
}

// TemplateRenderer is the default Renderer: it expands a small set of
// placeholders in Format (matching spec §6's `prompt.format` config key)
// without pulling in a templating engine, since the placeholder set is
// fixed and small.
type TemplateRenderer struct {
	Format       string // e.g. "{dir} $ "
	Continuation string // e.g. "> " (PS2)
}

// DefaultFormat is used when config doesn't set prompt.format.
const DefaultFormat = "{dir} $ "

// DefaultContinuation is the PS2 prompt from spec §4.2's multi-line input.
const DefaultContinuation = "> "

// NewTemplateRenderer returns a TemplateRenderer falling back to the
// package defaults for empty fields.
func NewTemplateRenderer(format, continuation string) *TemplateRenderer {
	if format == "" {
		format = DefaultFormat
	}
	if continuation == "" {
		continuation = DefaultContinuation
	}
	return &TemplateRenderer{Format: format, Continuation: continuation}
}

// Render expands {dir}, {exit}, {shell} in Format.
func (t *TemplateRenderer) Render(ctx Context) string {
	if ctx.Continuation {
		return t.Continuation
	}
	s := t.Format
	s = strings.ReplaceAll(s, "{dir}", ctx.Dir)
	s = strings.ReplaceAll(s, "{exit}", itoa(ctx.ExitCode))
	s = strings.ReplaceAll(s, "{shell}", ctx.ShellName)
	return s
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
