package editor

import "errors"

// ErrInterrupted reports that the user pressed Ctrl-C mid-line, matching
// spec §4.2's read_line(prompt) -> Result<Option<String>, Interrupted>
// contract: an interrupted line is discarded and the caller re-prompts.
var ErrInterrupted = errors.New("editor: interrupted")

// ReadLine reads one logical line of input, driving the raw terminal
// through render/dispatch until Enter submits a complete command, Ctrl-D
// signals end-of-input on an empty buffer, or Ctrl-C interrupts the line.
// Continuation lines (open quotes, unbalanced brackets, trailing
// backslash) are accumulated under the ps2 prompt before returning, per
// spec §4.2.
//
// Return contract: (line, true, nil) on a submitted line; ("", false,
// nil) on EOF; ("", false, ErrInterrupted) on Ctrl-C.
func (e *Editor) ReadLine(prompt string) (string, bool, error) {
	if err := e.term.EnableRaw(); err != nil {
		return "", false, err
	}
	defer e.term.DisableRaw()

	e.resetForLine(prompt)
	e.render()

	for {
		select {
		case <-e.term.OnResize():
			e.render()
		default:
		}

		k, ok := e.reader.ReadKey()
		if !ok {
			if e.OnIdle != nil {
				e.OnIdle()
			}
			continue
		}

		switch e.dispatchKey(k) {
		case ActionSubmit:
			line := e.Line()
			_, _ = e.out.Write([]byte("\r\n"))
			if line != "" {
				if e.history.Add(line) {
					_ = e.history.AppendFile(line)
				}
			}
			return line, true, nil
		case ActionEOF:
			_, _ = e.out.Write([]byte("\r\n"))
			return "", false, nil
		case ActionInterrupt:
			_, _ = e.out.Write([]byte("^C\r\n"))
			return "", false, ErrInterrupted
		}

		if e.requestClearScreen {
			e.clearScreen()
		} else {
			e.render()
		}
	}
}

// resetForLine clears the per-call editing state while leaving history,
// the kill ring, the undo stack, and any stored macro intact across calls
// (spec §3: those persist for the shell's lifetime).
func (e *Editor) resetForLine(prompt string) {
	e.prompt = prompt
	e.buffer = nil
	e.cursor = 0
	e.multiline = nil
	e.suggestion = ""
	e.historyIndex = -1
	e.hasFilter = false
	e.historyFilter = ""
	e.search = searchState{}
	e.visual = visualState{}
	e.compl = completionState{}
	e.viSubmode = ViInsert
	e.viCount = 0
	e.viPending = 0
	e.requestClearScreen = false
}
