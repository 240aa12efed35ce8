package editor

import "github.com/atotto/clipboard"

// SystemClipboard mirrors kill-ring entries to the OS clipboard via
// github.com/atotto/clipboard, grounded on kir-gadjello-llm's use of the
// same library for copy/paste between the editor and the host OS.
type SystemClipboard struct{}

// WriteAll writes text to the OS clipboard, ignoring errors from
// unsupported platforms/headless environments — clipboard sync is a
// best-effort nicety, never required for kill-ring correctness.
func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}
