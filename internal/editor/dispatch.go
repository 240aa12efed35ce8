package editor

import "github.com/go-den/den/internal/term"

// Action tells the ReadLine loop what to do after dispatching one key.
type Action uint8

const (
	ActionNone Action = iota
	ActionSubmit
	ActionEOF
	ActionInterrupt
)

// dispatchKey routes k to the right substate handler, in the priority order
// implied by spec §4.2's state machine: an active search, then an active
// completion menu, then visual mode, then the mode-specific (Emacs/Vi) key
// table. It records k for macro playback (spec §4.2) before handling it.
func (e *Editor) dispatchKey(k Key) Action {
	e.recordKey(k)
	return e.route(k)
}

// route is dispatchKey's substate switch, factored out so completion's
// fallthrough into the normal key table (below) doesn't record k twice.
func (e *Editor) route(k Key) Action {
	if e.search.active {
		return e.dispatchSearchKey(k)
	}
	if e.compl.active {
		return e.dispatchCompletionKey(k)
	}
	if e.visual.active {
		if a, handled := e.dispatchVisualKey(k); handled {
			return a
		}
	}
	if e.mode == Vi {
		return e.dispatchViKey(k)
	}
	return e.dispatchEmacsKey(k)
}

func (e *Editor) dispatchSearchKey(k Key) Action {
	switch k.Type {
	case term.KeyEnter:
		e.acceptSearch()
	case term.KeyCtrl:
		switch k.Rune {
		case 'r':
			e.advanceSearch()
		case 's':
			e.toggleSearchMode()
		case 'c', 'g':
			e.cancelSearch()
		case 'h':
			e.searchBackspace()
		}
	case term.KeyBackspace:
		e.searchBackspace()
	case term.KeyEscape:
		e.cancelSearch()
	case term.KeyChar:
		e.searchTypeRune(k.Rune)
	}
	return ActionNone
}

func (e *Editor) dispatchCompletionKey(k Key) Action {
	switch k.Type {
	case term.KeyTab, term.KeyDown, term.KeyRight:
		e.completionNext()
		return ActionNone
	case term.KeyLeft, term.KeyUp:
		e.completionPrev()
		return ActionNone
	case term.KeyCtrl:
		if k.Rune == 'c' {
			e.cancelCompletion()
			return ActionNone
		}
	case term.KeyEnter:
		e.acceptCompletion()
		return ActionSubmit
	}
	e.acceptCompletion()
	return e.route(k)
}

// dispatchVisualKey handles the subset of keys visual mode intercepts;
// handled reports whether k was consumed here (movement keys extend the
// selection but are still applied by falling through to the normal cursor
// logic, so only the copy/cut/cancel keys are fully intercepted).
func (e *Editor) dispatchVisualKey(k Key) (Action, bool) {
	switch k.Type {
	case term.KeyEscape:
		e.cancelVisual()
		return ActionNone, true
	case term.KeyCtrl:
		switch k.Rune {
		case 'w':
			e.copyVisual()
			return ActionNone, true
		case 'u':
			e.cutVisual()
			return ActionNone, true
		}
	}
	return ActionNone, false
}

// dispatchEmacsKey implements the Emacs key bindings table from spec §4.2.
func (e *Editor) dispatchEmacsKey(k Key) Action {
	switch k.Type {
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
		e.clearSuggestion()
	case term.KeyRight:
		e.moveRightOrAccept()
	case term.KeyHome:
		e.cursor = 0
		e.clearSuggestion()
	case term.KeyEnd:
		e.cursor = len(e.buffer)
		e.updateSuggestion()
	case term.KeyCtrlLeft:
		e.cursor = e.wordStartBefore(e.cursor)
	case term.KeyCtrlRight:
		e.cursor = e.wordEndAfter(e.cursor)
	case term.KeyAlt:
		e.dispatchAltKey(k.Rune)
	case term.KeyCtrl:
		return e.dispatchCtrlKey(k.Rune)
	case term.KeyChar:
		e.insertRune(k.Rune)
	}
	return ActionNone
}

func (e *Editor) moveRightOrAccept() {
	if e.cursor == len(e.buffer) && e.suggestion != "" {
		e.acceptSuggestion()
		return
	}
	if e.cursor < len(e.buffer) {
		e.cursor++
	}
	e.clearSuggestion()
}

func (e *Editor) dispatchAltKey(r rune) {
	switch r {
	case 'd':
		e.killWordForward()
	case 'b':
		e.cursor = e.wordStartBefore(e.cursor)
	case 'f':
		e.cursor = e.wordEndAfter(e.cursor)
	}
}

func (e *Editor) dispatchCtrlKey(r rune) Action {
	switch r {
	case 'a':
		e.cursor = 0
		e.clearSuggestion()
	case 'e':
		e.cursor = len(e.buffer)
		e.updateSuggestion()
	case 'b':
		if e.cursor > 0 {
			e.cursor--
		}
	case 'f':
		e.moveRightOrAccept()
	case 'l':
		e.requestClearScreen = true
	case 'k':
		e.killToEnd()
	case 't':
		e.transposeChars()
	case 'u':
		e.killToStart()
	case 'w':
		e.killWordBackward()
	case 'y':
		e.yank()
	case 'r':
		e.startSearch()
	case ' ':
		e.startVisual()
	case '_':
		e.Undo()
	case 'd':
		if len(e.buffer) == 0 {
			return ActionEOF
		}
		e.deleteForward()
	case 'c':
		return ActionInterrupt
	case 'x':
		return e.dispatchCtrlXPrefix()
	}
	return ActionNone
}

// dispatchCtrlXPrefix reads one more key for the Ctrl-X (/)/e macro
// bindings (spec §4.2).
func (e *Editor) dispatchCtrlXPrefix() Action {
	k, ok := e.reader.ReadKey()
	if !ok {
		return ActionNone
	}
	if k.Type == term.KeyChar {
		switch k.Rune {
		case '(':
			e.startMacro()
		case ')':
			e.stopMacro()
		case 'e':
			e.playMacro()
		}
	}
	return ActionNone
}
