package editor

// startMacro begins recording keystrokes (Ctrl-X (), per spec §4.2.
func (e *Editor) startMacro() {
	e.macro.recording = true
	e.macro.current = nil
}

// stopMacro ends recording and stores the captured keystrokes (Ctrl-X )).
func (e *Editor) stopMacro() {
	if !e.macro.recording {
		return
	}
	e.macro.recording = false
	e.macro.stored = e.macro.current
	e.macro.current = nil
}

// recordKey appends k to the in-progress macro, if recording.
func (e *Editor) recordKey(k Key) {
	if e.macro.recording {
		e.macro.current = append(e.macro.current, k)
	}
}

// playMacro replays the stored macro (Ctrl-X e) by re-dispatching each
// recorded key through the same handler the live loop uses.
func (e *Editor) playMacro() {
	if e.macro.playing || len(e.macro.stored) == 0 {
		return
	}
	e.macro.playing = true
	defer func() { e.macro.playing = false }()
	for _, k := range e.macro.stored {
		e.dispatchKey(k)
	}
}
