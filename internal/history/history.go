// Package history implements the bounded, append-only command history
// described in spec §3 and §6: no two consecutive entries equal, oldest
// entry evicted once the bound is reached, persisted one command per line
// with no escaping. It also implements the substring and fuzzy search used
// by the line editor (spec §4.2), keeping editor-facing concerns (history,
// fuzzy ranking) as small,
// independently testable types rather than global state (spec §9).
package history

import (
	"bufio"
	"os"
	"strings"
)

// DefaultMax is the default history bound from spec §6
// (history.max_entries).
const DefaultMax = 1000

// WithinWindow resolves the "Open Question" in spec §9: whether
// ignore_duplicates is strict-consecutive or within a window. Both are
// applied; WithinWindow is the width of the additional window check.
const WithinWindow = 50

// History is the shell's persistent command history.
type History struct {
	entries           []string
	max               int
	ignoreDuplicates  bool
	ignoreLeadingSpace bool
	path              string
}

// New returns a History bounded at max entries (DefaultMax if max <= 0).
func New(max int, path string, ignoreDuplicates, ignoreLeadingSpace bool) *History {
	if max <= 0 {
		max = DefaultMax
	}
	return &History{max: max, path: path, ignoreDuplicates: ignoreDuplicates, ignoreLeadingSpace: ignoreLeadingSpace}
}

// Len returns the number of entries currently held.
func (h *History) Len() int { return len(h.entries) }

// At returns the entry at index i (0 = oldest).
func (h *History) At(i int) string { return h.entries[i] }

// All returns every entry, oldest first. The returned slice must not be
// mutated by the caller.
func (h *History) All() []string { return h.entries }

// Add appends cmd to history, enforcing the invariants in spec §3: no two
// consecutive entries equal (always), the bound is never exceeded (oldest
// evicted), and — when configured — a duplicate anywhere in the last
// WithinWindow entries is relocated to the end instead of appended twice,
// per the "source does both" resolution recorded in SPEC_FULL.md §13.
// It returns false if cmd was not recorded (empty, equal to the last entry,
// or ignored per ignore_space).
func (h *History) Add(cmd string) bool {
	if cmd == "" {
		return false
	}
	if h.ignoreLeadingSpace && strings.HasPrefix(cmd, " ") {
		return false
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == cmd {
		return false
	}
	if h.ignoreDuplicates {
		start := len(h.entries) - WithinWindow
		if start < 0 {
			start = 0
		}
		for i := len(h.entries) - 1; i >= start; i-- {
			if h.entries[i] == cmd {
				h.entries = append(h.entries[:i], h.entries[i+1:]...)
				break
			}
		}
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[len(h.entries)-h.max:]
	}
	return true
}

// Load reads history from its persistence path, passing each line through
// Add, so duplicates are folded on load by the same rules as Add (spec §6:
// "Loaded in order; duplicates folded on load").
func (h *History) Load() error {
	f, err := os.Open(h.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		h.Add(sc.Text())
	}
	return sc.Err()
}

// AppendFile appends cmd to the history file incrementally, matching the
// REPL step in spec §4.6 ("Append to history file incrementally"). IO
// failures here are non-fatal per spec §7 and must be logged by the caller,
// not propagated as a fatal shell error.
func (h *History) AppendFile(cmd string) error {
	if h.path == "" {
		return nil
	}
	f, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(cmd + "\n")
	return err
}

// SubstringMatches returns, oldest-last (most recent first), the indexes of
// entries containing substr, for the Up/Down substring-filtered navigation
// in spec §4.2.
func (h *History) SubstringMatches(substr string) []int {
	var out []int
	for i := len(h.entries) - 1; i >= 0; i-- {
		if strings.Contains(h.entries[i], substr) {
			out = append(out, i)
		}
	}
	return out
}
