// Package lexsyntax tokenizes and parses one logical shell line into a
// CommandChain with a single-pass, byte-scanning lexer producing a
// simpler, non-POSIX grammar: no here-docs, process substitution,
// arithmetic expansion or function definitions.
package lexsyntax

import "github.com/go-den/den/internal/token"

// WordPart is one quoted or unquoted segment of a Word's literal text, kept
// separate so the expander knows which parts are eligible for variable,
// brace and glob expansion.
type WordPart struct {
	Text  string
	Quote token.Quote
}

// Word is a sequence of adjoining quoted/unquoted segments, e.g. the single
// shell word `"hello "$NAME'!'` parses to three parts.
type Word struct {
	Parts []WordPart
}

// Raw concatenates a Word's parts without interpreting quoting, useful for
// redirection targets and diagnostics.
func (w Word) Raw() string {
	var s string
	for _, p := range w.Parts {
		s += p.Text
	}
	return s
}

// Token is one lexed unit. Payload is only meaningful when Kind == token.Word.
type Token struct {
	Kind    token.Kind
	Payload Word
	Pos     int
}

// Redirection is one `<`, `>`, `>>`, `2>`, `2>>` or `&>` applied to a command.
type Redirection struct {
	Kind   token.RedirKind
	Target string
}

// ParsedCommand is one simple command: a name, its arguments, and the
// redirections that apply to it.
type ParsedCommand struct {
	Name         Word
	Args         []Word
	Redirections []Redirection
}

// CommandChain is commands joined end to end by operators; len(Operators) ==
// len(Commands)-1 always holds. A trailing `&` does not add an operator: it
// sets Background, which applies to the chain's last pipeline (the run of
// commands joined by token.OpPipe ending at Commands[len(Commands)-1]).
type CommandChain struct {
	Commands   []ParsedCommand
	Operators  []token.Operator
	Background bool
}
