package interp

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-den/den/internal/builtin"
	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/jobs"
	"github.com/go-den/den/internal/lexsyntax"
)

func newTestRunner(t *testing.T) *Runner {
	t.Helper()
	dir := t.TempDir()
	env := expand.NewEnvironment("PATH=/usr/bin:/bin", "HOME="+dir)
	positional := []string{}
	return NewRunner(env, expand.NewArrayTable(), expand.NewAliasTable(), jobs.NewTable(), history.New(0, "", false, false), builtin.NewDirStack(), &dir, &positional)
}

// run executes line and returns its exit code and captured stdio. Most
// tests only care about the happy path, so errors are surfaced via t.Fatal
// rather than threaded through every call site; TestRunCommandNotFound
// exercises the execution-error path explicitly instead of going through
// this helper.
func run(t *testing.T, r *Runner, line string) (int, string, string) {
	t.Helper()
	chain, err := lexsyntax.Parse(line)
	require.NoError(t, err)
	var stdout, stderr bytes.Buffer
	code, err := r.Run(context.Background(), chain, nil, &stdout, &stderr)
	if err != nil {
		t.Fatalf("Run(%q): %v", line, err)
	}
	return code, stdout.String(), stderr.String()
}

func TestRunSingleBuiltin(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "echo hello world")
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello world\n", out)
}

func TestRunTrueFalseExitCodes(t *testing.T) {
	r := newTestRunner(t)
	code, _, _ := run(t, r, "true")
	assert.Equal(t, 0, code)
	code, _, _ = run(t, r, "false")
	assert.Equal(t, 1, code)
}

func TestRunAndShortCircuits(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "false && echo unreachable")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
}

func TestRunOrShortCircuits(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "true || echo unreachable")
	assert.Equal(t, 0, code)
	assert.Empty(t, out)
}

func TestRunOrFallsThroughOnFailure(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "false || echo fallback")
	assert.Equal(t, 0, code)
	assert.Equal(t, "fallback\n", out)
}

func TestRunSequence(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "echo one; echo two")
	assert.Equal(t, 0, code)
	assert.Equal(t, "one\ntwo\n", out)
}

func TestRunPipeline(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "echo hello | echo piped")
	assert.Equal(t, 0, code)
	// echo ignores stdin, so the pipeline's own output is just the last stage's.
	assert.Equal(t, "piped\n", out)
}

func TestRunRedirectionWritesFile(t *testing.T) {
	r := newTestRunner(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	code, _, _ := run(t, r, "echo contents > "+target)
	assert.Equal(t, 0, code)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "contents\n", string(data))
}

func TestRunRedirectionAppends(t *testing.T) {
	r := newTestRunner(t)
	dir := t.TempDir()
	target := filepath.Join(dir, "out.txt")
	_, _, _ = run(t, r, "echo first > "+target)
	_, _, _ = run(t, r, "echo second >> "+target)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestRunVariableExpansionInArgs(t *testing.T) {
	r := newTestRunner(t)
	code, out, _ := run(t, r, "export NAME=den; echo hello $NAME")
	assert.Equal(t, 0, code)
	assert.Equal(t, "hello den\n", out)
}

func TestRunCommandNotFound(t *testing.T) {
	r := newTestRunner(t)
	chain, err := lexsyntax.Parse("this-command-does-not-exist-anywhere")
	require.NoError(t, err)
	var stdout, stderr bytes.Buffer
	code, runErr := r.Run(context.Background(), chain, nil, &stdout, &stderr)
	assert.Equal(t, 127, code)
	var execErr *ExecError
	assert.ErrorAs(t, runErr, &execErr)
}

func TestRunCdUpdatesDir(t *testing.T) {
	r := newTestRunner(t)
	sub := t.TempDir()
	code, _, _ := run(t, r, "cd "+sub)
	assert.Equal(t, 0, code)
	assert.Equal(t, sub, *r.Dir)
}

func TestGroupPipelinesSplitsOnNonPipeOperators(t *testing.T) {
	chain, err := lexsyntax.Parse("a | b && c | d | e")
	require.NoError(t, err)
	groups := groupPipelines(chain)
	require.Len(t, groups, 2)
	assert.Equal(t, 0, groups[0].start)
	assert.Equal(t, 2, groups[0].end)
	assert.Equal(t, 2, groups[1].start)
	assert.Equal(t, 5, groups[1].end)
}

func TestGroupPipelinesMarksTrailingBackground(t *testing.T) {
	chain, err := lexsyntax.Parse("a; b | c &")
	require.NoError(t, err)
	groups := groupPipelines(chain)
	require.Len(t, groups, 2)
	assert.False(t, groups[0].background)
	assert.True(t, groups[1].background)
}
