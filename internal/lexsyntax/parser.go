package lexsyntax

import "github.com/go-den/den/internal/token"

// ParseError reports a parser failure with the token position it occurred
// at, so diagnostics can point at the offending byte.
type ParseError struct {
	Pos int
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// redirOpKind maps a redirection token.Kind to the RedirKind it produces.
func redirOpKind(k token.Kind) token.RedirKind {
	switch k {
	case token.RedirIn:
		return token.RedirStdin
	case token.RedirOut:
		return token.RedirStdoutOverwrite
	case token.RedirAppend:
		return token.RedirStdoutAppend
	case token.RedirErr:
		return token.RedirStderrOverwrite
	case token.RedirErrAppend:
		return token.RedirStderrAppend
	case token.RedirErrAndOut:
		return token.RedirCombineStderrToStdout
	}
	return token.RedirStdin
}

type parser struct {
	toks []Token
	pos  int
}

// Parse lexes and parses one logical line into a CommandChain.
//
// Grammar (see spec §4.3):
//
//	chain   := pipeline (LOGICAL_OP pipeline)*
//	pipeline:= command (PIPE command)*
//	command := WORD (WORD | redirection)*
//
// A trailing `&` is accepted after the whole chain and recorded by setting
// CommandChain.Background, not by an extra operator: per the CommandChain
// invariant (len(Operators) == len(Commands)-1) it applies to the pipeline
// that immediately precedes it (the commands since the last And/Or/Sequence
// operator), not necessarily to every command in the chain.
func Parse(line string) (*CommandChain, error) {
	toks, err := Tokenize(line)
	if err != nil {
		return nil, &ParseError{Msg: err.Error()}
	}
	p := &parser{toks: toks}
	return p.parseChain()
}

func (p *parser) cur() Token { return p.toks[p.pos] }

func (p *parser) parseChain() (*CommandChain, error) {
	chain := &CommandChain{}
	cmd, err := p.parseCommand()
	if err != nil {
		return nil, err
	}
	chain.Commands = append(chain.Commands, cmd)

	for {
		switch p.cur().Kind {
		case token.Pipe:
			p.pos++
			chain.Operators = append(chain.Operators, token.OpPipe)
		case token.And:
			p.pos++
			chain.Operators = append(chain.Operators, token.OpAnd)
		case token.Or:
			p.pos++
			chain.Operators = append(chain.Operators, token.OpOr)
		case token.Semicolon:
			p.pos++
			if p.cur().Kind == token.EOF {
				return chain, nil
			}
			chain.Operators = append(chain.Operators, token.OpSequence)
		case token.Background:
			p.pos++
			if p.cur().Kind != token.EOF {
				return nil, &ParseError{Pos: p.cur().Pos, Msg: "unexpected token after background operator"}
			}
			chain.Background = true
			return chain, nil
		case token.EOF:
			return chain, nil
		default:
			return nil, &ParseError{Pos: p.cur().Pos, Msg: "unexpected token, expected operator"}
		}
		if p.cur().Kind == token.EOF {
			return nil, &ParseError{Pos: p.cur().Pos, Msg: "unexpected end of input after operator"}
		}
		cmd, err := p.parseCommand()
		if err != nil {
			return nil, err
		}
		chain.Commands = append(chain.Commands, cmd)
	}
}

func (p *parser) parseCommand() (ParsedCommand, error) {
	var cmd ParsedCommand
	if p.cur().Kind != token.Word {
		return cmd, &ParseError{Pos: p.cur().Pos, Msg: "empty command"}
	}
	cmd.Name = p.cur().Payload
	p.pos++

	for {
		switch p.cur().Kind {
		case token.Word:
			cmd.Args = append(cmd.Args, p.cur().Payload)
			p.pos++
		case token.RedirIn, token.RedirOut, token.RedirAppend,
			token.RedirErr, token.RedirErrAppend, token.RedirErrAndOut:
			kind := p.cur().Kind
			pos := p.cur().Pos
			p.pos++
			if p.cur().Kind != token.Word {
				return cmd, &ParseError{Pos: pos, Msg: "missing redirection target"}
			}
			cmd.Redirections = append(cmd.Redirections, Redirection{
				Kind:   redirOpKind(kind),
				Target: p.cur().Payload.Raw(),
			})
			p.pos++
		default:
			return cmd, nil
		}
	}
}

// PrecedingPipeline returns the command indexes [start, len(chain.Commands))
// of the pipeline that chain.Background applies to: the commands joined by
// Pipe since the last And/Or/Sequence operator (or the start of the chain).
func PrecedingPipeline(chain *CommandChain) (start, end int) {
	end = len(chain.Commands)
	start = end - 1
	for i := len(chain.Operators) - 1; i >= 0; i-- {
		if chain.Operators[i] != token.OpPipe {
			break
		}
		start--
	}
	return start, end
}
