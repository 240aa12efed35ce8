package lexsyntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-den/den/internal/token"
)

// word builds a single-part unquoted Word, the common case in these fixtures.
func word(s string) Word {
	return Word{Parts: []WordPart{{Text: s, Quote: token.Unquoted}}}
}

func simpleCmd(name string, args ...string) ParsedCommand {
	cmd := ParsedCommand{Name: word(name)}
	for _, a := range args {
		cmd.Args = append(cmd.Args, word(a))
	}
	return cmd
}

func TestParseSimpleCommand(t *testing.T) {
	got, err := Parse("echo hello world")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{Commands: []ParsedCommand{simpleCmd("echo", "hello", "world")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParsePipeline(t *testing.T) {
	got, err := Parse("ps aux | grep den")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{
			simpleCmd("ps", "aux"),
			simpleCmd("grep", "den"),
		},
		Operators: []token.Operator{token.OpPipe},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAndOrChain(t *testing.T) {
	got, err := Parse("make build && make test || echo failed")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{
			simpleCmd("make", "build"),
			simpleCmd("make", "test"),
			simpleCmd("echo", "failed"),
		},
		Operators: []token.Operator{token.OpAnd, token.OpOr},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseSequence(t *testing.T) {
	got, err := Parse("cd /tmp; ls")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{
			simpleCmd("cd", "/tmp"),
			simpleCmd("ls"),
		},
		Operators: []token.Operator{token.OpSequence},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseTrailingSequenceIsDropped(t *testing.T) {
	got, err := Parse("ls;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{Commands: []ParsedCommand{simpleCmd("ls")}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBackgroundAppliesToPrecedingPipeline(t *testing.T) {
	got, err := Parse("sleep 10 | cat &")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{
			simpleCmd("sleep", "10"),
			simpleCmd("cat"),
		},
		Operators:  []token.Operator{token.OpPipe},
		Background: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
	if len(got.Operators) != len(got.Commands)-1 {
		t.Errorf("len(Operators) = %d, want %d (len(Commands)-1)", len(got.Operators), len(got.Commands)-1)
	}

	start, end := PrecedingPipeline(got)
	if start != 0 || end != 2 {
		t.Errorf("PrecedingPipeline = (%d, %d), want (0, 2)", start, end)
	}
}

func TestParseRedirections(t *testing.T) {
	got, err := Parse("sort < input.txt > output.txt 2>> err.log")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{{
			Name: word("sort"),
			Redirections: []Redirection{
				{Kind: token.RedirStdin, Target: "input.txt"},
				{Kind: token.RedirStdoutOverwrite, Target: "output.txt"},
				{Kind: token.RedirStderrAppend, Target: "err.log"},
			},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseQuotedWordParts(t *testing.T) {
	got, err := Parse(`echo "hello "'!'`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := &CommandChain{
		Commands: []ParsedCommand{{
			Name: word("echo"),
			Args: []Word{{Parts: []WordPart{
				{Text: "hello ", Quote: token.Double},
				{Text: "!", Quote: token.Single},
			}}},
		}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyCommandIsError(t *testing.T) {
	if _, err := Parse("| cat"); err == nil {
		t.Fatal("expected parse error for leading pipe")
	}
}

func TestParseUnterminatedQuoteIsError(t *testing.T) {
	if _, err := Parse(`echo "unterminated`); err == nil {
		t.Fatal("expected parse error for unterminated quote")
	}
}
