package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultHasSaneValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1000, cfg.History.MaxEntries)
	assert.Equal(t, "fuzzy", cfg.History.SearchMode)
	assert.Equal(t, 20, cfg.Completion.MaxSuggestions)
	assert.True(t, cfg.Completion.Cache.Enabled)
	assert.Equal(t, "{dir} $ ", cfg.Prompt.Format)
}

func TestLoadNoCandidatesReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, warnings, path, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, path)
	assert.Equal(t, Default(), cfg)
}

func TestLoadExplicitPathWithComments(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.jsonc")
	contents := `{
  // history settings
  "history": {
    "max_entries": 500,
    "search_mode": "exact",
  },
  "prompt": { "format": "{dir} > " },
}`
	require.NoError(t, os.WriteFile(p, []byte(contents), 0o644))

	cfg, warnings, path, err := Load(p)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, p, path)
	assert.Equal(t, 500, cfg.History.MaxEntries)
	assert.Equal(t, "exact", cfg.History.SearchMode)
	assert.Equal(t, "{dir} > ", cfg.Prompt.Format)
}

func TestLoadDenJSONCInCwd(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "den.jsonc"), []byte(`{"history":{"max_entries":42}}`), 0o644))

	cfg, _, path, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "den.jsonc", path)
	assert.Equal(t, 42, cfg.History.MaxEntries)
}

func TestLoadPackageJSONCReadsNestedDenKey(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.jsonc"), []byte(`{
  "name": "some-project",
  "den": { "completion": { "max_suggestions": 5 } }
}`), 0o644))

	cfg, _, path, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "package.jsonc", path)
	assert.Equal(t, 5, cfg.Completion.MaxSuggestions)
}

func TestLoadWarnsOnOutOfRangeNumericsButStillApplies(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "den.jsonc")
	require.NoError(t, os.WriteFile(p, []byte(`{"history":{"max_entries":0},"completion":{"max_suggestions":-1}}`), 0o644))

	cfg, warnings, _, err := Load(p)
	require.NoError(t, err)
	assert.Len(t, warnings, 2)
	assert.Equal(t, 0, cfg.History.MaxEntries)
	assert.Equal(t, -1, cfg.Completion.MaxSuggestions)
}

func TestLoadExplicitMissingFileIsError(t *testing.T) {
	_, _, _, err := Load(filepath.Join(t.TempDir(), "missing.jsonc"))
	assert.Error(t, err)
}

func TestLoadExplicitEmptyRequiredFieldIsError(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "custom.jsonc")
	require.NoError(t, os.WriteFile(p, []byte(`{"prompt":{"format":""}}`), 0o644))

	_, _, _, err := Load(p)
	assert.ErrorContains(t, err, "prompt.format")
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	return func() { _ = os.Chdir(old) }
}
