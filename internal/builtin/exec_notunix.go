//go:build !unix

package builtin

import "fmt"

// execImage has no equivalent outside of unix process-image replacement;
// den falls back to reporting the limitation rather than pretending to
// support it.
func execImage(path string, argv, env []string) error {
	return fmt.Errorf("exec: process image replacement is unsupported on this platform")
}
