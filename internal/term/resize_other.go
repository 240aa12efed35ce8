//go:build windows

package term

// installResizeHandler is a no-op on platforms without SIGWINCH; spec §4.1
// notes the raw-mode equivalent there is an opt-in virtual-terminal mode,
// which does not deliver a resize signal the same way.
func installResizeHandler(t *Terminal) {}
