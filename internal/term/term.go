// Package term implements the raw-terminal I/O layer (spec §4.1, component
// C1): enabling/disabling raw mode, non-blocking byte reads, window-size
// events, and the escape-sequence parser that turns CSI/Alt sequences into
// semantic Keys for the line editor. Uses golang.org/x/term for
// MakeRaw/Restore/GetSize, the same library diillson-chatcli and
// kir-gadjello-llm reach for to control a real terminal;
// the non-blocking, short-timeout read loop spec §4.1 and §5 call for is
// layered on top with a background reader goroutine, since x/term's raw
// mode alone gives blocking reads with no VMIN/VTIME control.
package term

import (
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// PollInterval is the approximate non-blocking read granularity from spec
// §4.1 ("MIN=0, TIME=1 deci-second").
const PollInterval = 100 * time.Millisecond

// EscapeAmbiguityWindow is how long the escape parser waits for a CSI/Alt
// follow-up before treating a lone ESC as its own key (spec §4.1).
const EscapeAmbiguityWindow = 50 * time.Millisecond

// Terminal owns raw-mode state and non-blocking byte delivery for stdin.
// Raw-mode state is owned exclusively by the line editor for the duration
// of read_line, per spec §5's shared-resource policy.
type Terminal struct {
	in     *os.File
	out    *os.File
	state  *term.State
	raw    bool
	bytes  chan byte
	resize chan struct{}
}

// New wraps the given input/output files (normally os.Stdin/os.Stdout).
func New(in, out *os.File) *Terminal {
	t := &Terminal{in: in, out: out, bytes: make(chan byte, 256), resize: make(chan struct{}, 1)}
	go t.readLoop()
	installResizeHandler(t)
	return t
}

func (t *Terminal) readLoop() {
	buf := make([]byte, 256)
	for {
		n, err := t.in.Read(buf)
		for i := 0; i < n; i++ {
			t.bytes <- buf[i]
		}
		if err != nil {
			return
		}
	}
}

// IsTerminal reports whether in is attached to a terminal, used to choose
// between REPL and piped/script execution (spec §6 invocation contract).
// go-isatty rather than x/term's own IsTerminal, matching kir-gadjello-llm's
// choice of a dedicated TTY-detection dependency for this check.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd())
}

// EnableRaw puts the terminal into raw mode: no canonical buffering, no
// local echo, no ISIG, no CR/NL translation, 8-bit clean, per spec §4.1.
// Idempotent: calling it twice in a row is a no-op.
func (t *Terminal) EnableRaw() error {
	if t.raw {
		return nil
	}
	st, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return err
	}
	t.state = st
	t.raw = true
	return nil
}

// DisableRaw restores the terminal's original mode. Idempotent, and safe to
// call even if EnableRaw was never called or already failed, matching spec
// §4.1's guarantee that raw-mode restoration on exit paths is guaranteed.
func (t *Terminal) DisableRaw() error {
	if !t.raw || t.state == nil {
		return nil
	}
	err := term.Restore(int(t.in.Fd()), t.state)
	t.raw = false
	return err
}

// ReadByte returns the next input byte, or ok=false if none arrived within
// PollInterval (spec §4.1's non-blocking contract).
func (t *Terminal) ReadByte() (b byte, ok bool) {
	select {
	case b := <-t.bytes:
		return b, true
	case <-time.After(PollInterval):
		return 0, false
	}
}

// readByteTimeout reads one byte with a caller-specified timeout, used by
// the escape-sequence assembler to bound how long it waits for a CSI/Alt
// follow-up byte.
func (t *Terminal) readByteTimeout(d time.Duration) (byte, bool) {
	select {
	case b := <-t.bytes:
		return b, true
	case <-time.After(d):
		return 0, false
	}
}

// WindowSize returns the terminal's current rows and columns.
func (t *Terminal) WindowSize() (rows, cols int) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 24, 80
	}
	return rows, cols
}

// OnResize returns a channel that receives a value whenever SIGWINCH fires,
// per spec §4.2's rendering contract ("A SIGWINCH handler sets a flag
// checked in the input loop").
func (t *Terminal) OnResize() <-chan struct{} { return t.resize }

func (t *Terminal) notifyResize() {
	select {
	case t.resize <- struct{}{}:
	default:
	}
}
