package shell

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/go-den/den/internal/builtin"
	"github.com/go-den/den/internal/config"
	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/interp"
	"github.com/go-den/den/internal/jobs"
)

// newTestShell builds a Shell without touching a real terminal, so tests
// can drive RunLine/RunScript/RunCommand deterministically.
func newTestShell(t *testing.T) (*Shell, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	env := expand.NewEnvironment("PATH=/usr/bin:/bin", "HOME="+dir)
	positional := []string{}
	runner := interp.NewRunner(env, expand.NewArrayTable(), expand.NewAliasTable(), jobs.NewTable(), history.New(0, "", false, false), builtin.NewDirStack(), &dir, &positional)

	var stdout, stderr bytes.Buffer
	s := &Shell{
		cfg:    config.Default(),
		log:    zap.NewNop(),
		runner: runner,
		dir:    dir,
		stdout: &stdout,
		stderr: &stderr,
	}
	runner.RunLine = s.RunLine
	return s, &stdout, &stderr
}

func TestRunLineExecutesBuiltin(t *testing.T) {
	s, out, _ := newTestShell(t)
	code := s.RunLine("echo hi")
	assert.Equal(t, 0, code)
	assert.Equal(t, "hi\n", out.String())
}

func TestRunLineReportsCommandNotFound(t *testing.T) {
	s, _, errOut := newTestShell(t)
	code := s.RunLine("this-command-does-not-exist")
	assert.Equal(t, 127, code)
	assert.Contains(t, errOut.String(), "not found")
}

func TestRunCommandReturnsExitCode(t *testing.T) {
	s, out, _ := newTestShell(t)
	code := s.RunCommand("echo via -c")
	assert.Equal(t, 0, code)
	assert.Equal(t, "via -c\n", out.String())
}

func TestRunScriptExecutesEachLineSkippingBlanksAndComments(t *testing.T) {
	s, out, _ := newTestShell(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "script.den")
	script := "# a comment\n\necho one\necho two\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	code := s.RunScript(path)
	assert.Equal(t, 0, code)
	assert.Equal(t, "one\ntwo\n", out.String())
}

func TestRunScriptStopsOnErrexit(t *testing.T) {
	s, out, _ := newTestShell(t)
	s.runner.Env.Set("_DEN_ERREXIT", "1")
	dir := t.TempDir()
	path := filepath.Join(dir, "script.den")
	script := "false\necho unreachable\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0o644))

	s.RunScript(path)
	assert.Empty(t, out.String())
}

func TestApplySuffixAliasRewritesExtensionMatch(t *testing.T) {
	s, _, _ := newTestShell(t)
	s.cfg.Aliases.Suffix = []config.SuffixAliasEntry{{Extension: ".py", Command: "python3"}}

	dir := t.TempDir()
	script := filepath.Join(dir, "build.py")
	require.NoError(t, os.WriteFile(script, []byte("print('hi')"), 0o644))

	got := s.applySuffixAlias(script + " --flag")
	assert.Equal(t, "python3 "+script+" --flag", got)
}

func TestApplySuffixAliasLeavesExecutableFilesAlone(t *testing.T) {
	s, _, _ := newTestShell(t)
	s.cfg.Aliases.Suffix = []config.SuffixAliasEntry{{Extension: ".sh", Command: "bash"}}

	dir := t.TempDir()
	script := filepath.Join(dir, "run.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))

	got := s.applySuffixAlias(script)
	assert.Equal(t, script, got)
}
