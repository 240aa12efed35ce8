//go:build !unix

package interp

import "os/exec"

func prepareCommand(cmd *exec.Cmd) {}

func interruptCommand(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}
