package editor

import "strings"

const minSuggestionLen = 3

// updateSuggestion recomputes the inline "ghost text" suggestion per spec
// §4.2: only when the cursor is at end-of-line and the buffer is at least
// minSuggestionLen runes long, search history newest-to-oldest for the
// first entry with the buffer as a strict prefix.
func (e *Editor) updateSuggestion() {
	e.suggestion = ""
	if e.cursor != len(e.buffer) || len(e.buffer) < minSuggestionLen {
		return
	}
	if e.history == nil {
		return
	}
	buf := e.bufferString()
	entries := e.history.All()
	for i := len(entries) - 1; i >= 0; i-- {
		if strings.HasPrefix(entries[i], buf) && len(entries[i]) > len(buf) {
			e.suggestion = entries[i][len(buf):]
			return
		}
	}
}

// clearSuggestion drops the current suggestion; any edit or cursor move
// away from end-of-line clears it (spec §4.2).
func (e *Editor) clearSuggestion() {
	e.suggestion = ""
}

// acceptSuggestion appends the suggestion to the buffer (Right/End at EOL).
func (e *Editor) acceptSuggestion() {
	if e.suggestion == "" {
		return
	}
	e.insertText(e.suggestion)
	e.suggestion = ""
}
