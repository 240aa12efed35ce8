// Package completion implements the built-in completers spec §9 requires:
// commands in $PATH, files/directories, git (branches, modified files,
// subcommands) and Node/Bun (scripts from package.json plus subcommands).
// Dispatcher composes them behind internal/editor's Completer interface and
// caches results the way diillson-chatcli's TokenManager caches a fetched
// access token: a value plus an expiresAt, guarded by a mutex, recomputed
// once the TTL has passed.
package completion

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-den/den/internal/editor"
)

// Dispatcher answers editor.Completer by inspecting the first word of the
// line to decide which built-in completer owns the word being completed,
// then caps the result to MaxSuggestions (spec §6's completion.* keys).
type Dispatcher struct {
	MaxSuggestions int

	cache *resultCache
	git   *gitCompleter
	node  *nodeCompleter
}

// New builds a Dispatcher. cacheEnabled/cacheMaxEntries/cacheTTL mirror
// completion.cache.* from config; ttl of zero disables expiry checks (cached
// entries never expire).
func New(maxSuggestions int, cacheEnabled bool, cacheMaxEntries int, cacheTTL time.Duration) *Dispatcher {
	d := &Dispatcher{MaxSuggestions: maxSuggestions, git: &gitCompleter{}, node: &nodeCompleter{}}
	if cacheEnabled {
		d.cache = newResultCache(cacheMaxEntries, cacheTTL)
	}
	return d
}

var _ editor.Completer = (*Dispatcher)(nil)

// Complete implements editor.Completer. line is the full input buffer;
// wordStart/wordEnd bound the word currently being completed.
func (d *Dispatcher) Complete(line string, wordStart, wordEnd int) []editor.Candidate {
	word := line[wordStart:wordEnd]
	firstWord, atFirstWord := commandWord(line, wordStart)

	key := firstWord + "\x00" + word
	if d.cache != nil {
		if cached, ok := d.cache.get(key); ok {
			return d.cap(cached)
		}
	}

	var cands []editor.Candidate
	switch {
	case atFirstWord:
		cands = append(pathCommandCandidates(word), fileCandidates(word)...)
	case firstWord == "git":
		cands = d.git.complete(word)
	case firstWord == "npm" || firstWord == "bun" || firstWord == "npx":
		cands = d.node.complete(word)
	default:
		cands = fileCandidates(word)
	}
	sortCandidates(cands)

	if d.cache != nil {
		d.cache.put(key, cands)
	}
	return d.cap(cands)
}

func (d *Dispatcher) cap(cands []editor.Candidate) []editor.Candidate {
	if d.MaxSuggestions <= 0 || len(cands) <= d.MaxSuggestions {
		return cands
	}
	return cands[:d.MaxSuggestions]
}

// commandWord reports the line's first word and whether wordStart lands on
// it, i.e. whether completion is happening at command position rather than
// an argument position.
func commandWord(line string, wordStart int) (word string, atFirstWord bool) {
	trimmed := strings.TrimLeft(line, " \t")
	leadingSpace := len(line) - len(trimmed)
	end := strings.IndexAny(trimmed, " \t")
	if end < 0 {
		end = len(trimmed)
	}
	word = trimmed[:end]
	atFirstWord = wordStart <= leadingSpace+end
	return word, atFirstWord
}

func sortCandidates(cands []editor.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Label < cands[j].Label })
}

// pathCommandCandidates lists executables on $PATH whose name starts with
// prefix, per spec §9's "commands in $PATH" completer.
func pathCommandCandidates(prefix string) []editor.Candidate {
	if prefix == "" || strings.ContainsAny(prefix, "/\\") {
		return nil
	}
	seen := make(map[string]bool)
	var out []editor.Candidate
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			name := e.Name()
			if !strings.HasPrefix(name, prefix) || seen[name] {
				continue
			}
			info, err := e.Info()
			if err != nil || info.IsDir() || info.Mode()&0o111 == 0 {
				continue
			}
			seen[name] = true
			out = append(out, editor.Candidate{Label: name, IsScript: true})
		}
	}
	return out
}

// fileCandidates lists directory entries under prefix's directory whose
// basename starts with prefix's basename, per spec §9's file/directory
// completer. A trailing "/" is appended to directory candidates so the
// shell can keep completing inside them.
func fileCandidates(prefix string) []editor.Candidate {
	dir, base := filepath.Split(prefix)
	searchDir := dir
	if searchDir == "" {
		searchDir = "."
	}
	entries, err := os.ReadDir(searchDir)
	if err != nil {
		return nil
	}
	var out []editor.Candidate
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, base) {
			continue
		}
		label := dir + name
		if e.IsDir() {
			label += "/"
		}
		out = append(out, editor.Candidate{Label: label, IsDir: e.IsDir()})
	}
	return out
}

// gitCompleter implements spec §9's "git (branches, modified files,
// subcommands)" completer, shelling out to git the way diillson-chatcli's
// GetGitInfo shells out via exec.Command/Output for each piece of status it
// gathers.
type gitCompleter struct{}

var gitSubcommands = []string{
	"add", "branch", "checkout", "clone", "commit", "diff", "fetch", "init",
	"log", "merge", "pull", "push", "rebase", "reset", "restore", "status",
	"stash", "switch", "tag",
}

func (g *gitCompleter) complete(word string) []editor.Candidate {
	var out []editor.Candidate
	for _, sub := range gitSubcommands {
		if strings.HasPrefix(sub, word) {
			out = append(out, editor.Candidate{Label: sub})
		}
	}
	out = append(out, g.branches(word)...)
	out = append(out, g.modifiedFiles(word)...)
	return out
}

func (g *gitCompleter) branches(word string) []editor.Candidate {
	raw, err := exec.Command("git", "branch", "--format=%(refname:short)").Output()
	if err != nil {
		return nil
	}
	var out []editor.Candidate
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		name := strings.TrimSpace(line)
		if name != "" && strings.HasPrefix(name, word) {
			out = append(out, editor.Candidate{Label: name})
		}
	}
	return out
}

func (g *gitCompleter) modifiedFiles(word string) []editor.Candidate {
	raw, err := exec.Command("git", "diff", "--name-only").Output()
	if err != nil {
		return nil
	}
	var out []editor.Candidate
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		name := strings.TrimSpace(line)
		if name != "" && strings.HasPrefix(name, word) {
			out = append(out, editor.Candidate{Label: name})
		}
	}
	return out
}

// nodeCompleter implements spec §9's "Node/Bun (scripts from package.json +
// subcommands)" completer.
type nodeCompleter struct{}

var nodeSubcommands = []string{
	"install", "run", "test", "build", "start", "exec", "add", "remove", "update",
}

func (n *nodeCompleter) complete(word string) []editor.Candidate {
	var out []editor.Candidate
	for _, sub := range nodeSubcommands {
		if strings.HasPrefix(sub, word) {
			out = append(out, editor.Candidate{Label: sub})
		}
	}
	out = append(out, n.scripts(word)...)
	return out
}

func (n *nodeCompleter) scripts(word string) []editor.Candidate {
	raw, err := os.ReadFile("package.json")
	if err != nil {
		return nil
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(raw, &pkg); err != nil {
		return nil
	}
	var out []editor.Candidate
	for name := range pkg.Scripts {
		if strings.HasPrefix(name, word) {
			out = append(out, editor.Candidate{Label: name, IsScript: true})
		}
	}
	return out
}

// resultCache is a bounded, TTL-expiring cache of completion results,
// grounded on the expiresAt/sync.RWMutex shape diillson-chatcli's
// TokenManager uses to cache a fetched access token.
type resultCache struct {
	mu         sync.RWMutex
	ttl        time.Duration
	maxEntries int
	entries    map[string]cacheEntry
	order      []string // insertion order, for evicting the oldest entry
}

type cacheEntry struct {
	value     []editor.Candidate
	expiresAt time.Time
}

func newResultCache(maxEntries int, ttl time.Duration) *resultCache {
	return &resultCache{maxEntries: maxEntries, ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *resultCache) get(key string) ([]editor.Candidate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.ttl > 0 && time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *resultCache) put(key string, value []editor.Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists {
		if c.maxEntries > 0 && len(c.order) >= c.maxEntries {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}
