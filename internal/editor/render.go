package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// render redraws the current line in place: carriage return, erase to end
// of line, the prompt, the (optionally highlighted) buffer or ghost-text
// suggestion, then the cursor repositioned by column width, per spec
// §4.2's redraw contract. Column math uses go-runewidth so wide runes
// don't desync the cursor from the terminal's own idea of column.
func (e *Editor) render() {
	var b strings.Builder
	b.WriteString("\r\x1b[K")

	prompt := e.currentPrompt()
	b.WriteString(prompt)

	line := e.bufferString()
	rendered := line
	if e.highlighter != nil {
		rendered = e.highlighter(line)
	}
	b.WriteString(rendered)

	trailingWidth := 0
	if e.suggestion != "" && e.cursor == len(e.buffer) {
		b.WriteString("\x1b[90m")
		b.WriteString(e.suggestion)
		b.WriteString("\x1b[0m")
		trailingWidth += runewidth.StringWidth(e.suggestion)
	}

	if e.search.active {
		tail := "  " + e.searchPromptLine()
		b.WriteString(tail)
		trailingWidth += runewidth.StringWidth(tail)
	}

	cursorCol := runewidth.StringWidth(string(e.buffer[:e.cursor]))
	lineCol := runewidth.StringWidth(line) + trailingWidth
	if back := lineCol - cursorCol; back > 0 {
		b.WriteString("\x1b[")
		b.WriteString(itoa(back))
		b.WriteString("D")
	}

	_, _ = e.out.Write([]byte(b.String()))
}

// currentPrompt picks PS1 vs PS2 depending on whether continuation lines
// have accumulated (spec §4.2's multi-line prompt contract).
func (e *Editor) currentPrompt() string {
	if len(e.multiline) > 0 {
		return e.ps2
	}
	return e.prompt
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// clearScreen handles Ctrl-L: full screen clear, cursor home, then redraw.
func (e *Editor) clearScreen() {
	_, _ = e.out.Write([]byte("\x1b[2J\x1b[H"))
	e.requestClearScreen = false
	e.render()
}
