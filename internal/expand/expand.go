package expand

import (
	"github.com/go-den/den/internal/lexsyntax"
	"github.com/go-den/den/internal/token"
)

// expandParts runs variable expansion over every part of w, leaving
// single-quoted parts untouched, and reports whether every part was
// unquoted (the only case brace/glob expansion applies to).
func expandParts(w lexsyntax.Word, ctx *Context) (text string, allUnquoted bool, err error) {
	allUnquoted = true
	for _, p := range w.Parts {
		if p.Quote != token.Unquoted {
			allUnquoted = false
		}
		if p.Quote == token.Single {
			text += p.Text
			continue
		}
		v, err := ExpandVars(p.Text, ctx)
		if err != nil {
			return "", false, err
		}
		text += v
	}
	return text, allUnquoted, nil
}

// ExpandArg runs the full per-argument pipeline from spec §4.4: variable
// expansion, then (only for words with no quoted part, single or double)
// tilde, brace and glob expansion. A word may expand into zero, one or many
// resulting strings.
func ExpandArg(w lexsyntax.Word, ctx *Context) ([]string, error) {
	text, allUnquoted, err := expandParts(w, ctx)
	if err != nil {
		return nil, err
	}
	if !allUnquoted {
		return []string{text}, nil
	}
	text = expandHome(text, ctx.Env)
	candidates := ExpandBraces(text)
	return ExpandGlobs(candidates, ctx.Dir), nil
}

// ExpandArgs runs ExpandArg over an ordered sequence of words, concatenating
// the results, matching a pipeline's final flattened argv.
func ExpandArgs(words []lexsyntax.Word, ctx *Context) ([]string, error) {
	var out []string
	for _, w := range words {
		args, err := ExpandArg(w, ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, args...)
	}
	return out, nil
}

// ExpandCommandName performs variable expansion only (no globs), per spec
// §4.4: "Command names are variable-expanded only".
func ExpandCommandName(w lexsyntax.Word, ctx *Context) (string, error) {
	text, _, err := expandParts(w, ctx)
	return text, err
}

// ExpandRedirTarget performs variable expansion only on a redirection
// target, per spec §4.4.
func ExpandRedirTarget(target string, ctx *Context) (string, error) {
	return ExpandVars(target, ctx)
}
