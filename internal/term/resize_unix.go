//go:build !windows

package term

import (
	"os"
	"os/signal"
	"syscall"
)

// installResizeHandler wires SIGWINCH into the Terminal's resize channel,
// with the unix-specific half of a build-tagged signal handling split.
func installResizeHandler(t *Terminal) {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	go func() {
		for range ch {
			t.notifyResize()
		}
	}()
}
