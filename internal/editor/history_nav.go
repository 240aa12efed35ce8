package editor

// historyUp implements Up: on first press, save the current buffer and (if
// non-empty) treat it as a substring filter; subsequent presses iterate
// only over matching entries (spec §4.2).
func (e *Editor) historyUp() {
	if e.history == nil || e.history.Len() == 0 {
		return
	}
	if e.historyIndex == -1 {
		e.savedLine = e.bufferString()
		if e.savedLine != "" {
			e.historyFilter = e.savedLine
			e.hasFilter = true
		}
		e.historyIndex = e.history.Len()
	}
	idx := e.previousMatch(e.historyIndex - 1)
	if idx < 0 {
		return
	}
	e.historyIndex = idx
	e.setBufferFromHistory(e.history.At(idx))
}

// historyDown implements Down: advance toward the newest match, restoring
// the saved line and clearing the filter once past the newest entry.
func (e *Editor) historyDown() {
	if e.historyIndex == -1 {
		return
	}
	idx := e.nextMatch(e.historyIndex + 1)
	if idx >= e.history.Len() {
		e.historyIndex = -1
		e.setBufferFromHistory(e.savedLine)
		e.clearHistoryFilter()
		return
	}
	e.historyIndex = idx
	e.setBufferFromHistory(e.history.At(idx))
}

func (e *Editor) previousMatch(from int) int {
	for i := from; i >= 0; i-- {
		if e.matchesFilter(i) {
			return i
		}
	}
	return -1
}

func (e *Editor) nextMatch(from int) int {
	for i := from; i < e.history.Len(); i++ {
		if e.matchesFilter(i) {
			return i
		}
	}
	return e.history.Len()
}

func (e *Editor) matchesFilter(i int) bool {
	if !e.hasFilter {
		return true
	}
	entry := e.history.At(i)
	for j := 0; j+len(e.historyFilter) <= len(entry); j++ {
		if entry[j:j+len(e.historyFilter)] == e.historyFilter {
			return true
		}
	}
	return false
}

func (e *Editor) setBufferFromHistory(s string) {
	e.buffer = []rune(s)
	e.cursor = len(e.buffer)
	e.clearSuggestion()
}

// clearHistoryFilter clears the filter and history index; spec §4.2: "Any
// character insertion or deletion clears the filter and the history
// index."
func (e *Editor) clearHistoryFilter() {
	e.historyIndex = -1
	e.hasFilter = false
	e.historyFilter = ""
}
