// Package shell wires together the tables in internal/expand, internal/jobs,
// internal/history and internal/builtin's DirStack with internal/interp's
// Runner and internal/editor's line editor into the REPL and script-mode
// loops described in spec §4.6, generalized from a one-shot parser.Parse
// call into the shell's own tokenizer/parser and its fuller settings,
// history, job-control and completion surface.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/go-den/den/internal/builtin"
	"github.com/go-den/den/internal/completion"
	"github.com/go-den/den/internal/config"
	"github.com/go-den/den/internal/editor"
	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/history"
	"github.com/go-den/den/internal/interp"
	"github.com/go-den/den/internal/jobs"
	"github.com/go-den/den/internal/lexsyntax"
	"github.com/go-den/den/internal/prompt"
	"github.com/go-den/den/internal/term"
)

// Shell owns one session's worth of shared state: the tables interp.Runner
// executes against, the editor that reads lines from a terminal, and the
// config/prompt collaborators that shape how it looks and behaves.
type Shell struct {
	cfg    *config.Config
	log    *zap.Logger
	runner *interp.Runner

	dir        string
	positional []string

	term     *term.Terminal
	editor   *editor.Editor
	renderer prompt.Renderer

	stdout io.Writer
	stderr io.Writer
}

// errexit reports whether `set -e` is in effect, per spec §4.6's
// script-mode error policy: setBuiltin stores this as $_DEN_ERREXIT in the
// shell's own Environment rather than a Go field, so it is visible to (and
// settable by) scripts the same way any other variable is.
func (s *Shell) errexit() bool {
	v, _ := s.runner.Env.Get("_DEN_ERREXIT")
	return v != ""
}

// NewHeadless builds a Shell for -c/script/piped-input use: no terminal or
// line editor is attached, since none of those modes read interactively.
// args are the script's positional parameters ($1, $2, ...).
func NewHeadless(cfg *config.Config, log *zap.Logger, args []string) (*Shell, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	env := expand.NewEnvironment(os.Environ()...)
	env.Set("PWD", dir)
	hist := history.New(cfg.History.MaxEntries, cfg.History.File, cfg.History.IgnoreDuplicates, cfg.History.IgnoreSpace)
	if err := hist.Load(); err != nil {
		log.Warn("history: failed to load", zap.Error(err))
	}

	for _, v := range cfg.Environment.Variables {
		env.Set(v.Name, v.Value)
		env.Export(v.Name)
	}

	aliases := expand.NewAliasTable()
	for _, a := range cfg.Aliases.Custom {
		aliases.Set(a.Name, a.Command)
	}

	positional := append([]string{}, args...)
	runner := interp.NewRunner(env, expand.NewArrayTable(), aliases, jobs.NewTable(), hist, builtin.NewDirStack(), &dir, &positional)
	runner.ShellName = "den"

	s := &Shell{
		cfg:        cfg,
		log:        log,
		runner:     runner,
		dir:        dir,
		positional: positional,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
		renderer:   prompt.NewTemplateRenderer(cfg.Prompt.Format, prompt.DefaultContinuation),
	}
	runner.RunLine = s.RunLine
	return s, nil
}

// New builds a Shell for interactive use, additionally wiring stdin/stdout
// through internal/term and internal/editor. args are the script's
// positional parameters ($1, $2, ...).
func New(cfg *config.Config, log *zap.Logger, args []string) (*Shell, error) {
	s, err := NewHeadless(cfg, log, args)
	if err != nil {
		return nil, err
	}

	t := term.New(os.Stdin, os.Stdout)
	s.term = t
	comp := completion.New(cfg.Completion.MaxSuggestions, cfg.Completion.Cache.Enabled, cfg.Completion.Cache.MaxEntries, cacheTTL(cfg.Completion.Cache.TTL))
	ed := editor.New(t, os.Stdout, s.runner.History, editor.SystemClipboard{}, comp)
	ed.OnIdle = s.onIdle
	s.editor = ed

	return s, nil
}

// cacheTTL parses completion.cache.ttl (e.g. "5m"); an empty or malformed
// value disables expiry rather than failing startup over a cosmetic setting.
func cacheTTL(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0
	}
	return d
}

// RunLine parses, expands and executes one line against the shell's
// Runner, returning its exit code. It is wired into
// builtin.Context.RunLine so `source`/`eval`/`timeout` can recurse back
// into the same pipeline the REPL uses, without internal/builtin importing
// internal/interp.
func (s *Shell) RunLine(line string) int {
	line = s.applySuffixAlias(line)
	chain, err := lexsyntax.Parse(line)
	if err != nil {
		fmt.Fprintln(s.stderr, "den:", err)
		return 2
	}
	code, err := s.runner.Run(context.Background(), chain, nil, s.stdout, s.stderr)
	if err != nil {
		s.reportExecError(err)
	}
	return code
}

// applySuffixAlias implements `aliases.suffix[]` (spec §6: "File-extension
// dispatch"): if the line's first word names an existing, non-executable-
// as-is file whose extension matches a configured suffix alias, it is
// rewritten to run under that alias's interpreter — e.g. typing "build.py"
// with a suffix alias {".py", "python3"} runs as "python3 build.py".
func (s *Shell) applySuffixAlias(line string) string {
	if len(s.cfg.Aliases.Suffix) == 0 {
		return line
	}
	first := line
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		first = line[:i]
	}
	ext := filepath.Ext(first)
	if ext == "" {
		return line
	}
	info, err := os.Stat(first)
	if err != nil || info.IsDir() || info.Mode()&0o111 != 0 {
		return line
	}
	for _, sa := range s.cfg.Aliases.Suffix {
		if sa.Extension == ext {
			return sa.Command + " " + line
		}
	}
	return line
}

// reportExecError prints an ExecutionError per spec §7 without treating it
// as fatal to the session.
func (s *Shell) reportExecError(err error) {
	var execErr *interp.ExecError
	if errors.As(err, &execErr) {
		fmt.Fprintln(s.stderr, "den:", execErr)
		return
	}
	fmt.Fprintln(s.stderr, "den:", err)
}

// onIdle is the editor's per-poll-tick hook: reap finished background jobs
// and announce them, per spec §4.6 and §5 ("Done messages appear before
// the next prompt").
func (s *Shell) onIdle() {
	for _, j := range s.runner.Jobs.ReapDone() {
		fmt.Fprintf(s.stdout, "\r\n[%d]  Done (%d) %s\r\n", j.ID, j.Code, j.Command)
	}
}

// Close releases the shell's terminal/editor resources.
func (s *Shell) Close() {
	if s.term != nil {
		s.term.DisableRaw()
	}
}

// RunREPL drives the interactive read-eval-print loop from spec §4.6: reap
// jobs, read a line, execute it, update $?, repeat until EOF.
func (s *Shell) RunREPL() int {
	for {
		for _, j := range s.runner.Jobs.ReapDone() {
			fmt.Fprintf(s.stdout, "[%d]  Done (%d) %s\n", j.ID, j.Code, j.Command)
		}

		p := s.renderer.Render(prompt.Context{
			Dir:       s.dir,
			ExitCode:  s.runner.ExitCode,
			ShellName: s.runner.ShellName,
		})
		line, ok, err := s.editor.ReadLine(p)
		if err != nil {
			if err == editor.ErrInterrupted {
				s.runner.ExitCode = 130
				continue
			}
			fmt.Fprintln(s.stderr, "den:", err)
			continue
		}
		if !ok {
			break
		}
		s.dir = *s.runner.Dir
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.RunLine(line)
	}
	return s.runner.ExitCode
}

// RunScript executes path as a script: each non-blank, non-comment line is
// parsed and run in turn (spec §4.6). $0 is set to path for the duration of
// the run, per spec §6's invocation contract. Execution stops at the first
// error only when set -e / $_DEN_ERREXIT is in effect; otherwise it
// continues past a failing line, matching an interactive session's
// tolerance for individual command failures.
func (s *Shell) RunScript(path string) int {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(s.stderr, "den:", err)
		return 1
	}
	defer f.Close()
	s.runner.ShellName = path
	return s.runReader(f)
}

// RunStdin executes piped, non-interactive input line by line, for the
// case where stdin is not a terminal (spec §6's invocation contract).
func (s *Shell) RunStdin(r io.Reader) int {
	return s.runReader(r)
}

func (s *Shell) runReader(r io.Reader) int {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		s.RunLine(line)
		if s.errexit() && s.runner.ExitCode != 0 {
			break
		}
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintln(s.stderr, "den:", err)
		return 1
	}
	return s.runner.ExitCode
}

// RunCommand executes a single -c command line (spec §6's `-c COMMAND`).
func (s *Shell) RunCommand(line string) int {
	s.RunLine(line)
	return s.runner.ExitCode
}
