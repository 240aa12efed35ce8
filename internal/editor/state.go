// Package editor implements the interactive line editor (spec §4.2,
// component C2): history navigation, reverse-incremental and fuzzy search,
// cycling tab completion, inline suggestions, kill ring, undo (no redo), visual
// selection, macro recording, and Emacs/Vi modes, built on top of
// internal/term's raw byte/key stream, following a single-owning-struct-
// per-concern pattern (interp.Runner owns execution state,
// expand.Environ owns variables); here Editor owns all of its mutable state
// for the duration of one ReadLine call, while history and the kill
// ring/undo stack persist for the shell's lifetime per spec §3.
package editor

import (
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/term"
)

// Mode selects the active key-dispatch table.
type Mode uint8

const (
	Emacs Mode = iota
	Vi
)

// ViSubmode is Vi mode's current submode.
type ViSubmode uint8

const (
	ViInsert ViSubmode = iota
	ViNormal
	ViReplace
)

// searchState holds the reverse-i-search substate from spec §4.2.
type searchState struct {
	active     bool
	query      []rune
	fuzzy      bool
	matchIndex int
	savedLine  string
	savedPos   int
}

// visualState holds the visual-selection substate from spec §4.2.
type visualState struct {
	active bool
	start  int
}

// completionState holds the cycling completion-menu substate from spec
// §4.2.
type completionState struct {
	active     bool
	candidates []Candidate
	index      int
	wordStart  int
	pathPrefix string
	original   string
}

// macroState holds Ctrl-X (/)/e macro recording state from spec §4.2.
type macroState struct {
	recording bool
	current   []Key
	stored    []Key
	playing   bool
}

// Key is a recorded keystroke, used by macro playback.
type Key = term.Key

// Editor owns all mutable state for one ReadLine call, plus the
// shell-lifetime kill ring and undo stack (spec §3's Line Editor State).
type Editor struct {
	term   *term.Terminal
	reader *term.Reader
	out    writer

	prompt string
	ps2    string

	buffer []rune
	cursor int

	history      *history.History
	historyIndex int  // -1 when not navigating
	savedLine    string
	historyFilter string
	hasFilter    bool

	suggestion string

	killRing    [][]rune
	yankIndex   int
	clipboard   ClipboardSync

	undoStack []snapshot

	search  searchState
	visual  visualState
	compl   completionState
	macro   macroState

	mode            Mode
	viSubmode       ViSubmode
	viCount         int
	viPending       byte
	lastSearchQuery string

	multiline []string // accumulated continuation lines

	completer   Completer
	highlighter func(string) string

	resized            bool
	requestClearScreen bool

	// OnIdle, if set, is called on each idle poll tick where ReadLine found
	// no key waiting, matching spec §5's cooperative loop (reap jobs, check
	// pending signals, then try to read again).
	OnIdle func()
}

type snapshot struct {
	buffer []rune
	cursor int
}

// ClipboardSync mirrors kill-ring pushes to an external clipboard. It is
// satisfied by internal/editor's clipboard.go (atotto/clipboard-backed) or
// a no-op for tests.
type ClipboardSync interface {
	WriteAll(text string) error
}

// writer is the minimal output surface the editor needs, satisfied by
// *os.File in production and a buffer in tests.
type writer interface {
	Write(p []byte) (int, error)
}

const (
	minKillRingSlots = 16
	minUndoStack     = 50
)

// New constructs an Editor. hist and clip may be shared across calls (they
// are shell-lifetime state); everything else is reset on each ReadLine.
func New(t *term.Terminal, out writer, hist *history.History, clip ClipboardSync, completer Completer) *Editor {
	return &Editor{
		term:         t,
		reader:       term.NewReader(t),
		out:          out,
		history:      hist,
		historyIndex: -1,
		clipboard:    clip,
		completer:    completer,
		ps2:          "> ",
	}
}

// SetMode switches the key-dispatch table (spec §4.2's setEditingMode).
func (e *Editor) SetMode(m Mode) {
	e.mode = m
	e.viSubmode = ViInsert
}

// SetHighlighter installs the optional syntax-highlighter callback used
// when rendering the buffer (spec §4.2's rendering contract); it is an
// opaque collaborator per spec §1.
func (e *Editor) SetHighlighter(fn func(string) string) { e.highlighter = fn }

func (e *Editor) bufferString() string { return string(e.buffer) }
