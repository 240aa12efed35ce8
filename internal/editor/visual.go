package editor

// startVisual marks visual_start = cursor and enters visual mode (Ctrl-
// Space), per spec §4.2.
func (e *Editor) startVisual() {
	e.visual = visualState{active: true, start: e.cursor}
}

// visualRange returns the inclusive-exclusive [from, to) range currently
// selected, normalized regardless of movement direction.
func (e *Editor) visualRange() (from, to int) {
	if e.visual.start <= e.cursor {
		return e.visual.start, e.cursor
	}
	return e.cursor, e.visual.start
}

// cancelVisual leaves visual mode without modifying the buffer (ESC).
func (e *Editor) cancelVisual() {
	e.visual = visualState{}
}

// copyVisual implements Ctrl-W in visual mode: copy the selection to the
// kill ring without deleting it.
func (e *Editor) copyVisual() {
	from, to := e.visualRange()
	if from >= to {
		e.cancelVisual()
		return
	}
	text := make([]rune, to-from)
	copy(text, e.buffer[from:to])
	e.pushKill(text)
	e.cancelVisual()
}

// cutVisual implements Ctrl-U in visual mode: cut the selection to the kill
// ring.
func (e *Editor) cutVisual() {
	from, to := e.visualRange()
	if from >= to {
		e.cancelVisual()
		return
	}
	removed := e.deleteRange(from, to)
	e.pushKill(removed)
	e.cancelVisual()
}
