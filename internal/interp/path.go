package interp

import (
	"os"
	"path/filepath"
	"strings"
)

// lookPath resolves name against the shell's own $PATH variable rather than
// the OS process's environment, since `export`/`set` mutate the shell's
// Environment table, not os.Environ() (spec §5's shared-resource policy:
// the executor reads the environment the runtime owns). A name containing
// a slash is checked directly, matching POSIX shells.
func lookPath(name, pathVar, dir string) (string, error) {
	if strings.ContainsRune(name, '/') {
		p := name
		if !filepath.IsAbs(p) {
			p = filepath.Join(dir, p)
		}
		return checkExecutable(p)
	}
	for _, d := range strings.Split(pathVar, ":") {
		if d == "" {
			d = "."
		}
		candidate := filepath.Join(d, name)
		if p, err := checkExecutable(candidate); err == nil {
			return p, nil
		}
	}
	return "", errNotFound{name: name}
}

func checkExecutable(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", errNotFound{name: path}
	}
	if info.IsDir() {
		return "", errNotFound{name: path}
	}
	if info.Mode()&0o111 == 0 {
		return "", errNotExecutable{name: path}
	}
	return path, nil
}
