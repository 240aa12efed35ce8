package editor

// startSearch enters reverse-i-search mode (Ctrl-R), per spec §4.2.
func (e *Editor) startSearch() {
	if e.search.active {
		e.advanceSearch()
		return
	}
	e.search = searchState{
		active:     true,
		fuzzy:      false,
		matchIndex: e.history.Len(),
		savedLine:  e.bufferString(),
		savedPos:   e.cursor,
	}
}

// advanceSearch moves to the next older match for the current query
// (repeated Ctrl-R).
func (e *Editor) advanceSearch() {
	if len(e.search.query) == 0 {
		return
	}
	idx, ok := e.history.ReverseSearchMatch(string(e.search.query), e.search.matchIndex-1, e.search.fuzzy)
	if ok {
		e.search.matchIndex = idx
	}
}

// searchTypeRune appends to the query and rescans.
func (e *Editor) searchTypeRune(r rune) {
	e.search.query = append(e.search.query, r)
	e.rescanSearch()
}

// searchBackspace shortens the query and rescans.
func (e *Editor) searchBackspace() {
	if len(e.search.query) == 0 {
		return
	}
	e.search.query = e.search.query[:len(e.search.query)-1]
	e.rescanSearch()
}

func (e *Editor) rescanSearch() {
	idx, ok := e.history.ReverseSearchMatch(string(e.search.query), e.history.Len()-1, e.search.fuzzy)
	if ok {
		e.search.matchIndex = idx
	} else {
		e.search.matchIndex = -1
	}
}

// toggleSearchMode flips between fuzzy and substring matching (Ctrl-S
// during search), per spec §4.2.
func (e *Editor) toggleSearchMode() {
	e.search.fuzzy = !e.search.fuzzy
	e.rescanSearch()
}

// currentSearchMatch returns the matched history entry, or "" if none.
func (e *Editor) currentSearchMatch() string {
	if e.search.matchIndex < 0 || e.search.matchIndex >= e.history.Len() {
		return ""
	}
	return e.history.At(e.search.matchIndex)
}

// acceptSearch replaces the buffer with the match and leaves search mode.
func (e *Editor) acceptSearch() {
	if m := e.currentSearchMatch(); m != "" {
		e.setBufferFromHistory(m)
	}
	if len(e.search.query) > 0 {
		e.lastSearchQuery = string(e.search.query)
	}
	e.search = searchState{}
}

// cancelSearch restores the pre-search buffer.
func (e *Editor) cancelSearch() {
	e.buffer = []rune(e.search.savedLine)
	e.cursor = e.search.savedPos
	e.search = searchState{}
}

// searchPromptLine renders the "(reverse-i-search)`query': match" line from
// spec §4.2, substituting a fuzzy-search label when toggled.
func (e *Editor) searchPromptLine() string {
	label := "reverse-i-search"
	if e.search.fuzzy {
		label = "fuzzy-search"
	}
	return "(" + label + ")`" + string(e.search.query) + "': " + e.currentSearchMatch()
}
