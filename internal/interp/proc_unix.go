//go:build unix

package interp

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"
)

// prepareCommand puts a foreground external command in its own process
// group so a SIGINT from the editor's Ctrl-C can be forwarded to the whole
// pipeline at once, using golang.org/x/sys/unix for the process- and
// signal-level syscalls involved.
func prepareCommand(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

func interruptCommand(cmd *exec.Cmd) error {
	return unix.Kill(-cmd.Process.Pid, unix.SIGINT)
}
