package editor

import (
	"sort"
	"strings"

	"github.com/go-den/den/internal/history"
)

// scriptMarker is the leading byte a Completer uses to flag a candidate as
// a "script/command" for distinct rendering (spec §4.2).
const scriptMarker = 0x02

// Candidate is one completion result from a Completer.
type Candidate struct {
	Label    string
	IsDir    bool
	IsScript bool
}

// Completer supplies completions for the word between wordStart and
// wordEnd in line. Built-in completers (commands in $PATH, files/
// directories, git, Node/Bun) register against this interface, matching
// spec §9's "use a trait/interface so new completers can register". line
// and the word bounds are passed (not just the bare prefix) because
// dispatch is on the *first* word of line: a git or Node/Bun completer
// needs to see that the command name is "git" or "npm" before it knows
// which candidates apply to the word actually being completed.
type Completer interface {
	Complete(line string, wordStart, wordEnd int) []Candidate
}

// shellMetaBreak reports whether b ends a completion word, per spec §4.2's
// word-start scan ("whitespace or a shell meta-char").
func shellMetaBreak(r rune) bool {
	switch r {
	case ' ', '\t', '|', '&', ';', '(', ')':
		return true
	}
	return false
}

// wordStartForCompletion scans left from the cursor to find the completion
// word's start (spec §4.2).
func (e *Editor) wordStartForCompletion() int {
	i := e.cursor
	for i > 0 && !shellMetaBreak(e.buffer[i-1]) {
		i--
	}
	return i
}

// startCompletion runs Tab: zero results rings the bell, one result is
// inserted directly (suffix-append, or full-word replace for path
// completions), and multiple results enter cycling mode sorted by fuzzy
// score against the typed basename (spec §4.2).
func (e *Editor) startCompletion() {
	if e.completer == nil {
		e.bell()
		return
	}
	start := e.wordStartForCompletion()
	word := string(e.buffer[start:e.cursor])
	basename := word
	if idx := strings.LastIndexByte(word, '/'); idx >= 0 {
		basename = word[idx+1:]
	}

	cands := e.completer.Complete(string(e.buffer), start, e.cursor)
	if len(cands) == 0 {
		e.bell()
		return
	}
	if len(cands) == 1 {
		e.applySingleCompletion(start, word, cands[0])
		return
	}

	sort.SliceStable(cands, func(i, j int) bool {
		si := history.FuzzyScore(basename, displayLabel(cands[i]))
		sj := history.FuzzyScore(basename, displayLabel(cands[j]))
		return si > sj
	})

	e.compl = completionState{
		active:     true,
		candidates: cands,
		index:      0,
		wordStart:  start,
		original:   word,
	}
	e.applyCompletionSelection()
}

func displayLabel(c Candidate) string {
	return strings.TrimPrefix(c.Label, string(rune(scriptMarker)))
}

func (e *Editor) applySingleCompletion(start int, word string, c Candidate) {
	label := displayLabel(c)
	if strings.Contains(word, "/") && strings.Contains(label, "/") {
		e.replaceWord(start, label)
		return
	}
	basename := word
	if idx := strings.LastIndexByte(word, '/'); idx >= 0 {
		basename = word[idx+1:]
	}
	if strings.HasPrefix(label, basename) {
		e.insertText(label[len(basename):])
	} else {
		e.replaceWord(start, label)
	}
}

// replaceWord replaces buffer[start:cursor] with replacement.
func (e *Editor) replaceWord(start int, replacement string) {
	e.deleteRange(start, e.cursor)
	e.cursor = start
	e.insertText(replacement)
}

// completionNext/completionPrev implement Tab/Right/Down and
// Shift-Tab/Left/Up inside the cycling menu.
func (e *Editor) completionNext() {
	if !e.compl.active {
		return
	}
	e.compl.index = (e.compl.index + 1) % len(e.compl.candidates)
	e.applyCompletionSelection()
}

func (e *Editor) completionPrev() {
	if !e.compl.active {
		return
	}
	e.compl.index--
	if e.compl.index < 0 {
		e.compl.index = len(e.compl.candidates) - 1
	}
	e.applyCompletionSelection()
}

func (e *Editor) applyCompletionSelection() {
	c := e.compl.candidates[e.compl.index]
	e.buffer = append(e.buffer[:e.compl.wordStart:e.compl.wordStart], []rune(displayLabel(c))...)
	e.cursor = len(e.buffer)
}

// acceptCompletion commits the current selection and leaves cycling mode.
func (e *Editor) acceptCompletion() {
	e.compl = completionState{}
}

// cancelCompletion restores the original word and leaves cycling mode
// (Ctrl-C while the menu is open).
func (e *Editor) cancelCompletion() {
	e.buffer = append(e.buffer[:e.compl.wordStart:e.compl.wordStart], []rune(e.compl.original)...)
	e.cursor = len(e.buffer)
	e.compl = completionState{}
}

func (e *Editor) bell() {
	_, _ = e.out.Write([]byte{0x07})
}
