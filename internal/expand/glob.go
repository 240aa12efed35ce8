package expand

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// hasGlobMeta reports whether s contains any of the `*`, `?`, `[...]` glob
// metacharacters this shell supports (spec §4.4.3 — no `**` globstar).
func hasGlobMeta(s string) bool {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '*', '?', '[':
			return true
		}
	}
	return false
}

// globToRegexp translates a single shell glob segment (no `/`) into an
// anchored regular expression, adapted from mvdan/sh's pattern.Regexp:
// `*` and `?` behave as in POSIX globbing, and `[...]` bracket expressions
// support `!`/`^` negation and `[:class:]` POSIX named classes. Segments
// are translated and matched one path component at a time rather than
// across slashes, since spec §4.4.3 drops `**` globstar support.
func globToRegexp(pat string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("^")
	i := 0
	for i < len(pat) {
		switch c := pat[i]; c {
		case '*':
			sb.WriteString(".*")
			i++
		case '?':
			sb.WriteString(".")
			i++
		case '\\':
			i++
			if i >= len(pat) {
				return nil, fmt.Errorf("glob: trailing backslash in %q", pat)
			}
			sb.WriteString(regexp.QuoteMeta(string(pat[i])))
			i++
		case '[':
			n, cls, err := globCharClass(pat[i:])
			if err != nil {
				return nil, err
			}
			sb.WriteString(cls)
			i += n
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
			i++
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}

// globCharClass translates a `[...]` bracket expression starting at s[0] ==
// '[' into an equivalent regexp bracket expression, returning how many
// bytes of s it consumed. `!` is accepted as a negation prefix alongside
// `^`, matching POSIX shells that allow either; `[:name:]` named classes
// pass through unchanged since Go's regexp/syntax understands the same
// names.
func globCharClass(s string) (int, string, error) {
	var sb strings.Builder
	sb.WriteByte('[')
	i := 1
	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		sb.WriteByte('^')
		i++
	}
	if i < len(s) && s[i] == ']' {
		sb.WriteString(`\]`)
		i++
	}
	for {
		if i >= len(s) {
			return 0, "", fmt.Errorf("glob: [ was not matched with a closing ]")
		}
		c := s[i]
		switch {
		case c == ']':
			sb.WriteByte(']')
			return i + 1, sb.String(), nil
		case strings.HasPrefix(s[i:], "[:"):
			if end := strings.Index(s[i:], ":]"); end >= 0 {
				sb.WriteString(s[i : i+end+2])
				i += end + 2
				continue
			}
			sb.WriteByte(c)
			i++
		case c == '\\' && i+1 < len(s):
			sb.WriteByte('\\')
			sb.WriteByte(s[i+1])
			i += 2
		default:
			sb.WriteByte(c)
			i++
		}
	}
}

// ExpandGlob expands a glob pattern against the filesystem rooted at dir.
// If no match is found, the pattern is returned unchanged (nullglob is off,
// per spec §4.4.3): glob syntax errors and empty matches both fall back to
// the literal word. Matching walks one path segment at a time via
// globToRegexp rather than delegating to filepath.Glob, so `[!...]`
// negation and `[:class:]` expressions follow shell bracket semantics
// instead of filepath.Match's narrower one.
func ExpandGlob(pattern, dir string) []string {
	if !hasGlobMeta(pattern) {
		return []string{pattern}
	}

	base := dir
	rel := pattern
	if filepath.IsAbs(pattern) {
		base = string(filepath.Separator)
		rel = strings.TrimPrefix(pattern, base)
	}

	matches, err := globSegments(base, strings.Split(rel, "/"))
	if err != nil || len(matches) == 0 {
		return []string{pattern}
	}

	if !filepath.IsAbs(pattern) {
		for i, m := range matches {
			if r, err := filepath.Rel(dir, m); err == nil {
				matches[i] = r
			}
		}
	}
	sort.Strings(matches)
	return matches
}

// globSegments matches path segments one component at a time against base:
// literal segments are passed through with a Stat, glob segments are
// expanded against a directory listing translated through globToRegexp.
func globSegments(base string, segments []string) ([]string, error) {
	dirs := []string{base}
	for _, seg := range segments {
		if seg == "" {
			continue
		}
		var next []string
		if !hasGlobMeta(seg) {
			for _, d := range dirs {
				p := filepath.Join(d, seg)
				if _, err := os.Stat(p); err == nil {
					next = append(next, p)
				}
			}
		} else {
			re, err := globToRegexp(seg)
			if err != nil {
				return nil, err
			}
			for _, d := range dirs {
				entries, err := os.ReadDir(d)
				if err != nil {
					continue
				}
				for _, e := range entries {
					if re.MatchString(e.Name()) {
						next = append(next, filepath.Join(d, e.Name()))
					}
				}
			}
		}
		if len(next) == 0 {
			return nil, nil
		}
		dirs = next
	}
	return dirs, nil
}

// ExpandGlobs applies ExpandGlob to every candidate produced by brace
// expansion, concatenating the results in order, and flattens them into the
// final argument list for one original word (spec order: braces, then
// globs).
func ExpandGlobs(candidates []string, dir string) []string {
	var out []string
	for _, c := range candidates {
		out = append(out, ExpandGlob(c, dir)...)
	}
	return out
}

// expandHome replaces a leading `~` with $HOME, a small, widely expected
// convenience that spec §4.4 does not explicitly forbid and original_source
// shells invariably support for path arguments.
func expandHome(s string, env *Environment) string {
	if s == "~" {
		if home, ok := env.Get("HOME"); ok {
			return home
		}
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
		return s
	}
	if strings.HasPrefix(s, "~/") {
		if home, ok := env.Get("HOME"); ok {
			return home + s[1:]
		}
	}
	return s
}
