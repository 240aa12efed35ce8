// Package config implements den's JSONC configuration loader (spec §6):
// search a fixed list of candidate paths, standardize JSONC (comments and
// trailing commas) to plain JSON with github.com/tailscale/hujson, and
// unmarshal into the settings record below. Two of the candidates nest
// their settings under a "den" key inside a shared package.jsonc.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// HistoryConfig mirrors spec §6's history.* keys.
type HistoryConfig struct {
	MaxEntries       int    `json:"max_entries"`
	File             string `json:"file"`
	IgnoreDuplicates bool   `json:"ignore_duplicates"`
	IgnoreSpace      bool   `json:"ignore_space"`
	SearchMode       string `json:"search_mode"` // "fuzzy" | "exact"
}

// CompletionCacheConfig mirrors completion.cache.*.
type CompletionCacheConfig struct {
	Enabled    bool   `json:"enabled"`
	MaxEntries int    `json:"max_entries"`
	TTL        string `json:"ttl"`
}

// CompletionConfig mirrors completion.*.
type CompletionConfig struct {
	MaxSuggestions int                   `json:"max_suggestions"`
	Cache          CompletionCacheConfig `json:"cache"`
}

// ThemeColors mirrors theme.colors.*.
type ThemeColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Success   string `json:"success"`
	Warning   string `json:"warning"`
	Error     string `json:"error"`
	Info      string `json:"info"`
}

// ThemeSymbols mirrors theme.symbols.*.
type ThemeSymbols struct {
	Prompt string `json:"prompt"`
}

// ThemeConfig mirrors theme.*.
type ThemeConfig struct {
	Name    string       `json:"name"`
	Colors  ThemeColors  `json:"colors"`
	Symbols ThemeSymbols `json:"symbols"`
}

// PromptConfig mirrors prompt.*.
type PromptConfig struct {
	Format      string `json:"format"`
	RightPrompt string `json:"right_prompt"`
}

// ExpansionCacheLimits mirrors expansion.cache_limits.*.
type ExpansionCacheLimits struct {
	Glob     int `json:"glob"`
	Variable int `json:"variable"`
	Exec     int `json:"exec"`
}

// ExpansionConfig mirrors expansion.*.
type ExpansionConfig struct {
	CacheLimits ExpansionCacheLimits `json:"cache_limits"`
}

// AliasEntry is one aliases.custom[] item.
type AliasEntry struct {
	Name    string `json:"name"`
	Command string `json:"command"`
}

// SuffixAliasEntry is one aliases.suffix[] item.
type SuffixAliasEntry struct {
	Extension string `json:"extension"`
	Command   string `json:"command"`
}

// AliasesConfig mirrors aliases.*.
type AliasesConfig struct {
	Custom []AliasEntry       `json:"custom"`
	Suffix []SuffixAliasEntry `json:"suffix"`
}

// KeybindingEntry is one keybindings.custom[] item.
type KeybindingEntry struct {
	Key    string `json:"key"`
	Action string `json:"action"`
}

// KeybindingsConfig mirrors keybindings.*.
type KeybindingsConfig struct {
	Custom []KeybindingEntry `json:"custom"`
}

// EnvVarEntry is one environment.variables[] item.
type EnvVarEntry struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// EnvironmentConfig mirrors environment.*.
type EnvironmentConfig struct {
	Variables []EnvVarEntry `json:"variables"`
}

// Config is the fully-resolved settings record from spec §6's config table.
type Config struct {
	History     HistoryConfig     `json:"history"`
	Completion  CompletionConfig  `json:"completion"`
	Theme       ThemeConfig       `json:"theme"`
	Prompt      PromptConfig      `json:"prompt"`
	Expansion   ExpansionConfig   `json:"expansion"`
	Aliases     AliasesConfig     `json:"aliases"`
	Keybindings KeybindingsConfig `json:"keybindings"`
	Environment EnvironmentConfig `json:"environment"`
}

// Default returns the settings a Config should hold when no file is found.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		History: HistoryConfig{
			MaxEntries: 1000,
			File:       filepath.Join(home, ".den_history"),
			SearchMode: "fuzzy",
		},
		Completion: CompletionConfig{
			MaxSuggestions: 20,
			Cache:          CompletionCacheConfig{Enabled: true, MaxEntries: 256, TTL: "5m"},
		},
		Theme: ThemeConfig{
			Name:    "default",
			Symbols: ThemeSymbols{Prompt: "$"},
		},
		Prompt: PromptConfig{Format: "{dir} $ "},
	}
}

// candidate is one entry in the search order from spec §6. Entries marked
// nested read a "den" subkey instead of the whole file.
type candidate struct {
	path   string
	nested bool
}

func candidates() []candidate {
	home, _ := os.UserHomeDir()
	return []candidate{
		{"den.jsonc", false},
		{"package.jsonc", true},
		{filepath.Join("config", "den.jsonc"), false},
		{filepath.Join(".config", "den.jsonc"), false},
		{filepath.Join(home, ".config", "den.jsonc"), false},
		{filepath.Join(home, "package.jsonc"), true},
	}
}

// Load searches the candidate paths in order and returns the first hit,
// standardized from JSONC and unmarshaled over Default()'s values. explicit,
// if non-empty, is tried first and is an error (not silently skipped) if it
// cannot be read. Returns the resolved Config, any validation warnings, and
// the path actually used ("" for defaults).
func Load(explicit string) (*Config, []string, string, error) {
	if explicit != "" {
		cfg, err := loadFile(explicit, false)
		if err != nil {
			return nil, nil, "", err
		}
		if err := requireNonEmpty(cfg); err != nil {
			return nil, nil, "", err
		}
		warnings := validate(cfg)
		return cfg, warnings, explicit, nil
	}
	for _, c := range candidates() {
		if _, err := os.Stat(c.path); err != nil {
			continue
		}
		cfg, err := loadFile(c.path, c.nested)
		if err != nil {
			return nil, nil, "", fmt.Errorf("config: %s: %w", c.path, err)
		}
		if err := requireNonEmpty(cfg); err != nil {
			return nil, nil, "", fmt.Errorf("config: %s: %w", c.path, err)
		}
		warnings := validate(cfg)
		return cfg, warnings, c.path, nil
	}
	return Default(), nil, "", nil
}

// requireNonEmpty enforces spec §6's "empty values for required keys are
// errors" half of validation. History.File and Prompt.Format are the only
// keys a resolved Config cannot function without; everything else has a
// workable zero value or is covered by validate's warnings instead.
func requireNonEmpty(cfg *Config) error {
	if cfg.History.File == "" {
		return fmt.Errorf("history.file must not be empty")
	}
	if cfg.Prompt.Format == "" {
		return fmt.Errorf("prompt.format must not be empty")
	}
	return nil
}

func loadFile(path string, nested bool) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONC: %w", err)
	}
	if nested {
		var wrapper struct {
			Den json.RawMessage `json:"den"`
		}
		if err := json.Unmarshal(std, &wrapper); err != nil {
			return nil, err
		}
		std = wrapper.Den
		if len(std) == 0 {
			return Default(), nil
		}
	}
	cfg := Default()
	if err := json.Unmarshal(std, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate applies the half of spec §6's validation rule that isn't a hard
// error: out-of-range numerics are warnings, left applied as-is. Empty
// required keys are handled by requireNonEmpty and surfaced as an error
// instead, before validate ever runs.
func validate(cfg *Config) []string {
	var warnings []string
	if cfg.History.MaxEntries <= 0 {
		warnings = append(warnings, fmt.Sprintf("history.max_entries must be > 0, got %d", cfg.History.MaxEntries))
	}
	if cfg.Completion.MaxSuggestions < 1 {
		warnings = append(warnings, fmt.Sprintf("completion.max_suggestions must be >= 1, got %d", cfg.Completion.MaxSuggestions))
	}
	if cfg.History.SearchMode != "" && cfg.History.SearchMode != "fuzzy" && cfg.History.SearchMode != "exact" {
		warnings = append(warnings, fmt.Sprintf("history.search_mode: unknown mode %q, expected fuzzy or exact", cfg.History.SearchMode))
	}
	return warnings
}
