package editor

import "slices"

// snapshotForUndo pushes {buffer, cursor} onto the undo stack before a
// mutating operation, per spec §4.2's undo contract; the oldest entry is
// dropped once the bound is reached.
func (e *Editor) snapshotForUndo() {
	e.undoStack = append(e.undoStack, snapshot{
		buffer: slices.Clone(e.buffer),
		cursor: e.cursor,
	})
	if len(e.undoStack) > minUndoStack {
		e.undoStack = e.undoStack[len(e.undoStack)-minUndoStack:]
	}
}

// Undo pops the most recent snapshot and applies it (spec §4.2).
func (e *Editor) Undo() {
	if len(e.undoStack) == 0 {
		return
	}
	last := e.undoStack[len(e.undoStack)-1]
	e.undoStack = e.undoStack[:len(e.undoStack)-1]
	e.buffer = last.buffer
	e.cursor = last.cursor
	e.clearSuggestion()
	e.clearHistoryFilter()
}

// insertRune inserts r at the cursor and advances it.
func (e *Editor) insertRune(r rune) {
	e.snapshotForUndo()
	e.buffer = slices.Insert(e.buffer, e.cursor, r)
	e.cursor++
	e.clearHistoryFilter()
	e.updateSuggestion()
}

// insertText inserts s at the cursor as a single undo step.
func (e *Editor) insertText(s string) {
	if s == "" {
		return
	}
	e.snapshotForUndo()
	runes := []rune(s)
	e.buffer = slices.Insert(e.buffer, e.cursor, runes...)
	e.cursor += len(runes)
	e.clearHistoryFilter()
	e.updateSuggestion()
}

// deleteRange removes buffer[from:to) as a single undo step and returns the
// removed text.
func (e *Editor) deleteRange(from, to int) []rune {
	if from < 0 {
		from = 0
	}
	if to > len(e.buffer) {
		to = len(e.buffer)
	}
	if from >= to {
		return nil
	}
	e.snapshotForUndo()
	removed := slices.Clone(e.buffer[from:to])
	e.buffer = slices.Delete(e.buffer, from, to)
	if e.cursor > to {
		e.cursor -= to - from
	} else if e.cursor > from {
		e.cursor = from
	}
	e.clearHistoryFilter()
	e.updateSuggestion()
	return removed
}

// backspace deletes the rune before the cursor.
func (e *Editor) backspace() {
	if e.cursor == 0 {
		return
	}
	e.deleteRange(e.cursor-1, e.cursor)
}

// deleteForward deletes the rune under the cursor.
func (e *Editor) deleteForward() {
	if e.cursor >= len(e.buffer) {
		return
	}
	e.deleteRange(e.cursor, e.cursor+1)
}

// transposeChars implements Ctrl-T: swap the two runes before the cursor,
// or the last two at end-of-line (spec §4.2).
func (e *Editor) transposeChars() {
	pos := e.cursor
	if pos == len(e.buffer) {
		pos--
	}
	if pos < 1 || pos >= len(e.buffer) {
		return
	}
	e.snapshotForUndo()
	e.buffer[pos-1], e.buffer[pos] = e.buffer[pos], e.buffer[pos-1]
	if e.cursor < len(e.buffer) {
		e.cursor = pos + 1
	}
	e.clearHistoryFilter()
}

func isWordByte(r rune) bool {
	return !(r == ' ' || r == '\t')
}

// wordStartBefore scans left from pos to the start of the word pos is in
// (or just past), skipping leading whitespace first.
func (e *Editor) wordStartBefore(pos int) int {
	i := pos
	for i > 0 && !isWordByte(e.buffer[i-1]) {
		i--
	}
	for i > 0 && isWordByte(e.buffer[i-1]) {
		i--
	}
	return i
}

// wordEndAfter scans right from pos to the end of the next word.
func (e *Editor) wordEndAfter(pos int) int {
	i := pos
	for i < len(e.buffer) && !isWordByte(e.buffer[i]) {
		i++
	}
	for i < len(e.buffer) && isWordByte(e.buffer[i]) {
		i++
	}
	return i
}
