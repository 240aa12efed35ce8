package editor

// pushKill adds removed text to the kill ring and updates the yank index to
// point at it, per spec §4.2. The ring is bounded (>= minKillRingSlots);
// oldest entries are dropped once full. A best-effort copy is mirrored to
// the OS clipboard (github.com/atotto/clipboard, wired via ClipboardSync),
// grounded on kir-gadjello-llm's use of atotto/clipboard for cross-process
// copy/paste.
func (e *Editor) pushKill(text []rune) {
	if len(text) == 0 {
		return
	}
	e.killRing = append(e.killRing, text)
	if len(e.killRing) > minKillRingSlots {
		e.killRing = e.killRing[len(e.killRing)-minKillRingSlots:]
	}
	e.yankIndex = len(e.killRing) - 1
	if e.clipboard != nil {
		_ = e.clipboard.WriteAll(string(text))
	}
}

// yank inserts the slot under the yank index at the cursor (spec §4.2's
// Ctrl-Y). Yank-pop (cycling through older slots) is the reasonable
// extension spec §4.2 notes as optional and is not implemented.
func (e *Editor) yank() {
	if len(e.killRing) == 0 {
		return
	}
	e.insertText(string(e.killRing[e.yankIndex]))
}

// killToStart implements Ctrl-U outside visual mode: kill from the buffer
// start to the cursor.
func (e *Editor) killToStart() {
	removed := e.deleteRange(0, e.cursor)
	e.pushKill(removed)
}

// killToEnd implements Ctrl-K: kill from the cursor to the buffer end.
func (e *Editor) killToEnd() {
	removed := e.deleteRange(e.cursor, len(e.buffer))
	e.pushKill(removed)
}

// killWordBackward implements Ctrl-W: kill the word before the cursor.
func (e *Editor) killWordBackward() {
	start := e.wordStartBefore(e.cursor)
	removed := e.deleteRange(start, e.cursor)
	e.pushKill(removed)
}

// killWordForward implements Alt-D: kill the word after the cursor.
func (e *Editor) killWordForward() {
	end := e.wordEndAfter(e.cursor)
	removed := e.deleteRange(e.cursor, end)
	e.pushKill(removed)
}
