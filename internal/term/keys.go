package term

// KeyType is the semantic class of a decoded Key.
type KeyType uint8

const (
	KeyChar KeyType = iota
	KeyCtrl
	KeyAlt
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyDelete
	KeyPageUp
	KeyPageDown
	KeyCtrlLeft
	KeyCtrlRight
)

// Key is one semantic keystroke decoded from the raw byte stream: a literal
// character, a Ctrl- combination, an Alt- combination, or a named key such
// as an arrow or Home/End, per spec §4.1's escape parser contract.
type Key struct {
	Type KeyType
	Rune rune // set for KeyChar, KeyCtrl (the base letter) and KeyAlt
}

// Reader decodes the Terminal's byte stream into Keys, assembling CSI and
// Alt escape sequences and falling back to a bare Escape key when no
// follow-up byte arrives within EscapeAmbiguityWindow (spec §4.1: "On
// ambiguous ESC alone ... the editor treats it as a Vi normal-mode trigger
// or visual-mode cancel").
type Reader struct {
	t *Terminal
}

// NewReader wraps a Terminal for key-level reads.
func NewReader(t *Terminal) *Reader { return &Reader{t: t} }

// ReadKey blocks (subject to the terminal's PollInterval polling) until one
// key is available, returning ok=false if the terminal's idle poll elapsed
// with nothing typed — callers use this to drive the cooperative loop in
// spec §5 (check jobs/signals, then try to read again).
func (r *Reader) ReadKey() (Key, bool) {
	b, ok := r.t.ReadByte()
	if !ok {
		return Key{}, false
	}
	switch b {
	case '\r', '\n':
		return Key{Type: KeyEnter}, true
	case 0x7f, 0x08:
		return Key{Type: KeyBackspace}, true
	case '\t':
		return Key{Type: KeyTab}, true
	case 0x1b:
		return r.readEscape(), true
	}
	if b < 0x20 {
		switch b {
		case 0x00: // Ctrl-Space
			return Key{Type: KeyCtrl, Rune: ' '}, true
		case 0x1f: // Ctrl-_ and Ctrl-/
			return Key{Type: KeyCtrl, Rune: '_'}, true
		}
		return Key{Type: KeyCtrl, Rune: rune(b) + 'a' - 1}, true
	}
	return r.readRune(b)
}

// readRune assembles a (possibly multi-byte) UTF-8 rune starting at the
// already-read lead byte b.
func (r *Reader) readRune(b byte) (Key, bool) {
	n := utf8SeqLen(b)
	buf := []byte{b}
	for len(buf) < n {
		nb, ok := r.t.ReadByte()
		if !ok {
			break
		}
		buf = append(buf, nb)
	}
	ru := decodeRune(buf)
	return Key{Type: KeyChar, Rune: ru}, true
}

func utf8SeqLen(b byte) int {
	switch {
	case b&0x80 == 0:
		return 1
	case b&0xE0 == 0xC0:
		return 2
	case b&0xF0 == 0xE0:
		return 3
	case b&0xF8 == 0xF0:
		return 4
	}
	return 1
}

func decodeRune(buf []byte) rune {
	if len(buf) == 1 {
		return rune(buf[0])
	}
	r := []rune(string(buf))
	if len(r) == 0 {
		return utf8ReplacementChar
	}
	return r[0]
}

const utf8ReplacementChar = '�'

// readEscape reads bytes following a bare ESC, recognizing:
//   - CSI sequences: ESC [ A|B|C|D|H|F, ESC [ 3~|5~|6~, ESC [ 1;5 C|D
//   - Alt- sequences: ESC x for x in {b, f, d}
//
// If no follow-up byte arrives within EscapeAmbiguityWindow, a bare
// KeyEscape is returned.
func (r *Reader) readEscape() Key {
	b, ok := r.t.readByteTimeout(EscapeAmbiguityWindow)
	if !ok {
		return Key{Type: KeyEscape}
	}
	if b != '[' {
		switch b {
		case 'b', 'f', 'd':
			return Key{Type: KeyAlt, Rune: rune(b)}
		}
		return Key{Type: KeyAlt, Rune: rune(b)}
	}
	return r.readCSI()
}

func (r *Reader) readCSI() Key {
	b, ok := r.t.readByteTimeout(EscapeAmbiguityWindow)
	if !ok {
		return Key{Type: KeyEscape}
	}
	switch b {
	case 'A':
		return Key{Type: KeyUp}
	case 'B':
		return Key{Type: KeyDown}
	case 'C':
		return Key{Type: KeyRight}
	case 'D':
		return Key{Type: KeyLeft}
	case 'H':
		return Key{Type: KeyHome}
	case 'F':
		return Key{Type: KeyEnd}
	case '1':
		return r.readCtrlArrow()
	case '3', '5', '6':
		return r.readTilde(b)
	}
	return Key{Type: KeyEscape}
}

// readCtrlArrow handles `ESC [ 1 ; 5 C|D` (Ctrl+Arrow word navigation).
func (r *Reader) readCtrlArrow() Key {
	rest := []byte{}
	for i := 0; i < 3; i++ {
		b, ok := r.t.readByteTimeout(EscapeAmbiguityWindow)
		if !ok {
			return Key{Type: KeyEscape}
		}
		rest = append(rest, b)
		if b == 'C' || b == 'D' {
			break
		}
	}
	if len(rest) == 0 {
		return Key{Type: KeyEscape}
	}
	switch rest[len(rest)-1] {
	case 'C':
		return Key{Type: KeyCtrlRight}
	case 'D':
		return Key{Type: KeyCtrlLeft}
	}
	return Key{Type: KeyEscape}
}

// readTilde handles `ESC [ 3~` (Delete), `ESC [ 5~` (PgUp), `ESC [ 6~`
// (PgDn).
func (r *Reader) readTilde(first byte) Key {
	b, ok := r.t.readByteTimeout(EscapeAmbiguityWindow)
	if !ok || b != '~' {
		return Key{Type: KeyEscape}
	}
	switch first {
	case '3':
		return Key{Type: KeyDelete}
	case '5':
		return Key{Type: KeyPageUp}
	case '6':
		return Key{Type: KeyPageDown}
	}
	return Key{Type: KeyEscape}
}
