//go:build unix

package builtin

import "syscall"

// execImage replaces the current process image, matching spec §6's `exec`
// semantics on platforms that support it.
func execImage(path string, argv, env []string) error {
	return syscall.Exec(path, argv, env)
}
