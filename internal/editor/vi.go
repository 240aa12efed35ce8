package editor

import "github.com/go-den/den/internal/term"

// dispatchViKey routes to the submode-specific handler (spec §4.2's Vi mode:
// Insert, Normal, Replace).
func (e *Editor) dispatchViKey(k Key) Action {
	switch e.viSubmode {
	case ViInsert:
		return e.dispatchViInsert(k)
	case ViReplace:
		return e.dispatchViReplace(k)
	default:
		return e.dispatchViNormal(k)
	}
}

// enterNormal switches to Normal submode, moving the cursor back one
// position the way vi does when leaving Insert (unless already at column
// 0), and clears any pending operator.
func (e *Editor) enterNormal() {
	e.viSubmode = ViNormal
	e.viPending = 0
	e.viCount = 0
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Editor) dispatchViInsert(k Key) Action {
	switch k.Type {
	case term.KeyEscape:
		e.enterNormal()
	case term.KeyEnter:
		return e.handleEnter()
	case term.KeyBackspace:
		e.backspace()
	case term.KeyDelete:
		e.deleteForward()
	case term.KeyTab:
		e.startCompletion()
	case term.KeyUp:
		e.historyUp()
	case term.KeyDown:
		e.historyDown()
	case term.KeyLeft:
		if e.cursor > 0 {
			e.cursor--
		}
	case term.KeyRight:
		e.moveRightOrAccept()
	case term.KeyHome:
		e.cursor = 0
	case term.KeyEnd:
		e.cursor = len(e.buffer)
	case term.KeyCtrlLeft:
		e.cursor = e.wordStartBefore(e.cursor)
	case term.KeyCtrlRight:
		e.cursor = e.wordEndAfter(e.cursor)
	case term.KeyCtrl:
		return e.dispatchCtrlKey(k.Rune)
	case term.KeyChar:
		e.insertRune(k.Rune)
	}
	return ActionNone
}

// dispatchViReplace overtypes instead of inserting, for the single-shot R
// command.
func (e *Editor) dispatchViReplace(k Key) Action {
	switch k.Type {
	case term.KeyEscape:
		e.enterNormal()
	case term.KeyEnter:
		return e.handleEnter()
	case term.KeyChar:
		e.snapshotForUndo()
		if e.cursor < len(e.buffer) {
			e.buffer[e.cursor] = k.Rune
			e.cursor++
		} else {
			e.buffer = append(e.buffer, k.Rune)
			e.cursor++
		}
		e.clearHistoryFilter()
	case term.KeyBackspace:
		if e.cursor > 0 {
			e.cursor--
		}
	}
	return ActionNone
}

// dispatchViNormal implements the Normal submode command set from spec
// §4.2: motions (h j k l 0 ^ $ w b e), edits (x X D dd cc), mode entry
// (i I a A o O s S C R), undo (u), and search (/ n), each optionally
// preceded by a digit-prefix repeat count.
func (e *Editor) dispatchViNormal(k Key) Action {
	if k.Type == term.KeyChar && k.Rune >= '1' && k.Rune <= '9' {
		e.viCount = e.viCount*10 + int(k.Rune-'0')
		return ActionNone
	}
	if k.Type == term.KeyChar && k.Rune == '0' && e.viCount > 0 {
		e.viCount *= 10
		return ActionNone
	}

	count := e.viCount
	if count == 0 {
		count = 1
	}

	if e.viPending != 0 {
		return e.dispatchViOperator(k, count)
	}

	switch k.Type {
	case term.KeyEnter:
		return e.handleEnter()
	case term.KeyEscape:
		e.viCount = 0
	case term.KeyChar:
		e.dispatchViNormalChar(k.Rune, count)
	case term.KeyUp:
		e.historyUp()
	case term.KeyDown:
		e.historyDown()
	case term.KeyLeft:
		e.viMoveLeft(count)
	case term.KeyRight:
		e.viMoveRight(count)
	}
	if k.Type != term.KeyChar || (k.Rune < '0' || k.Rune > '9') {
		e.viCount = 0
	}
	return ActionNone
}

func (e *Editor) viMoveLeft(count int) {
	for i := 0; i < count && e.cursor > 0; i++ {
		e.cursor--
	}
}

func (e *Editor) viMoveRight(count int) {
	for i := 0; i < count && e.cursor < len(e.buffer)-1; i++ {
		e.cursor++
	}
}

func (e *Editor) dispatchViNormalChar(r rune, count int) {
	switch r {
	case 'h':
		e.viMoveLeft(count)
	case 'l':
		e.viMoveRight(count)
	case 'k':
		for i := 0; i < count; i++ {
			e.historyUp()
		}
	case 'j':
		for i := 0; i < count; i++ {
			e.historyDown()
		}
	case '0':
		e.cursor = 0
	case '^':
		e.cursor = e.firstNonBlank()
	case '$':
		if len(e.buffer) > 0 {
			e.cursor = len(e.buffer) - 1
		}
	case 'w':
		for i := 0; i < count; i++ {
			e.cursor = e.wordEndAfter(e.cursor)
		}
	case 'b':
		for i := 0; i < count; i++ {
			e.cursor = e.wordStartBefore(e.cursor)
		}
	case 'e':
		for i := 0; i < count; i++ {
			e.cursor = e.viWordEnd(e.cursor)
		}
	case 'x':
		to := e.cursor + count
		if to > len(e.buffer) {
			to = len(e.buffer)
		}
		e.pushKill(e.deleteRange(e.cursor, to))
	case 'X':
		from := e.cursor - count
		if from < 0 {
			from = 0
		}
		e.pushKill(e.deleteRange(from, e.cursor))
	case 'D':
		e.pushKill(e.deleteRange(e.cursor, len(e.buffer)))
	case 'd', 'c':
		e.viPending = byte(r)
	case 'i':
		e.viSubmode = ViInsert
	case 'I':
		e.cursor = e.firstNonBlank()
		e.viSubmode = ViInsert
	case 'a':
		if e.cursor < len(e.buffer) {
			e.cursor++
		}
		e.viSubmode = ViInsert
	case 'A':
		e.cursor = len(e.buffer)
		e.viSubmode = ViInsert
	case 'o', 'O':
		e.insertText("\n")
		e.viSubmode = ViInsert
	case 's':
		to := e.cursor + count
		if to > len(e.buffer) {
			to = len(e.buffer)
		}
		e.pushKill(e.deleteRange(e.cursor, to))
		e.viSubmode = ViInsert
	case 'S':
		e.pushKill(e.deleteRange(0, len(e.buffer)))
		e.cursor = 0
		e.viSubmode = ViInsert
	case 'C':
		e.pushKill(e.deleteRange(e.cursor, len(e.buffer)))
		e.viSubmode = ViInsert
	case 'R':
		e.viSubmode = ViReplace
	case 'u':
		e.Undo()
	case '/':
		e.startSearch()
	case 'n':
		if e.lastSearchQuery != "" {
			e.search.query = []rune(e.lastSearchQuery)
			e.advanceSearch()
			e.acceptSearch()
		}
	}
}

// viWordEnd implements vi's "e" motion: the end of the current or next
// word, distinct from wordEndAfter which lands just past it.
func (e *Editor) viWordEnd(pos int) int {
	end := e.wordEndAfter(pos)
	if end > pos {
		end--
	}
	return end
}

func (e *Editor) firstNonBlank() int {
	i := 0
	for i < len(e.buffer) && (e.buffer[i] == ' ' || e.buffer[i] == '\t') {
		i++
	}
	return i
}

// dispatchViOperator completes a pending d/c command with its motion,
// implementing the "dd"/"cc" line-operators and d{motion}/c{motion} forms
// spec §4.2 calls out.
func (e *Editor) dispatchViOperator(k Key, count int) Action {
	op := e.viPending
	e.viPending = 0
	e.viCount = 0

	if k.Type != term.KeyChar {
		return ActionNone
	}

	from, to := e.cursor, e.cursor
	switch k.Rune {
	case 'd', 'c':
		from, to = 0, len(e.buffer)
	case 'w':
		for i := 0; i < count; i++ {
			to = e.wordEndAfter(to)
		}
		for to < len(e.buffer) && !isWordByte(e.buffer[to]) {
			to++
		}
	case 'b':
		for i := 0; i < count; i++ {
			from = e.wordStartBefore(from)
		}
	case '$':
		to = len(e.buffer)
	case '0':
		from = 0
	default:
		return ActionNone
	}

	if from > to {
		from, to = to, from
	}
	e.pushKill(e.deleteRange(from, to))
	e.cursor = from
	if op == 'c' {
		e.viSubmode = ViInsert
	}
	return ActionNone
}
