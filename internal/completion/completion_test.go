package completion

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestCompleteFileAtFirstWordListsMatches(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "build.sh"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "bin"), 0o755))
	chdir(t, dir)

	d := New(20, false, 0, 0)
	cands := d.Complete("b", 0, 1)

	var labels []string
	for _, c := range cands {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "bin/")
	assert.Contains(t, labels, "build.sh")
}

func TestCompleteGitDispatchesOnFirstWord(t *testing.T) {
	d := New(20, false, 0, 0)
	cands := d.Complete("git chec", 4, 8)

	var labels []string
	for _, c := range cands {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "checkout")
}

func TestCompleteNodeReadsPackageJSONScripts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte(`{"scripts":{"build":"tsc","bundle":"esbuild"}}`), 0o644))
	chdir(t, dir)

	d := New(20, false, 0, 0)
	cands := d.Complete("npm run b", 8, 9)

	var labels []string
	for _, c := range cands {
		labels = append(labels, c.Label)
	}
	assert.Contains(t, labels, "build")
	assert.Contains(t, labels, "bundle")
}

func TestMaxSuggestionsCapsResults(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a1", "a2", "a3", "a4"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
	chdir(t, dir)

	d := New(2, false, 0, 0)
	cands := d.Complete("a", 0, 1)
	assert.Len(t, cands, 2)
}

func TestCacheServesRepeatedLookupWithinTTL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("x"), 0o644))
	chdir(t, dir)

	d := New(20, true, 16, time.Minute)
	first := d.Complete("o", 0, 1)
	require.NotEmpty(t, first)

	require.NoError(t, os.Remove(filepath.Join(dir, "one.txt")))
	second := d.Complete("o", 0, 1)
	assert.Equal(t, first, second)
}

func TestCacheExpiresAfterTTL(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.txt"), []byte("x"), 0o644))
	chdir(t, dir)
	t.Setenv("PATH", "")

	d := New(20, true, 16, time.Nanosecond)
	first := d.Complete("o", 0, 1)
	require.NotEmpty(t, first)

	require.NoError(t, os.Remove(filepath.Join(dir, "one.txt")))
	time.Sleep(time.Millisecond)
	second := d.Complete("o", 0, 1)
	assert.Empty(t, second)
}
