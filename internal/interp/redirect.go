package interp

import (
	"io"
	"os"

	"github.com/go-den/den/internal/expand"
	"github.com/go-den/den/internal/lexsyntax"
	"github.com/go-den/den/internal/token"
)

// applyRedirections opens each of cmd's redirection targets and returns the
// stdin/stdout/stderr a command should actually run with, layering over the
// pipeline-supplied stdio. The returned close func releases every file
// opened here; it is always non-nil and safe to defer unconditionally.
func (r *Runner) applyRedirections(cmd lexsyntax.ParsedCommand, stdin io.Reader, stdout, stderr io.Writer) (io.Reader, io.Writer, io.Writer, func(), error) {
	in, out, errw := stdin, stdout, stderr
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	ectx := r.expandContext()
	for _, rd := range cmd.Redirections {
		target, err := expand.ExpandRedirTarget(rd.Target, ectx)
		if err != nil {
			return nil, nil, nil, closeAll, err
		}

		switch rd.Kind {
		case token.RedirStdin:
			f, err := os.Open(target)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			in = f

		case token.RedirStdoutOverwrite:
			f, err := os.Create(target)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			out = f

		case token.RedirStdoutAppend:
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			out = f

		case token.RedirStderrOverwrite:
			f, err := os.Create(target)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			errw = f

		case token.RedirStderrAppend:
			f, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			errw = f

		case token.RedirCombineStderrToStdout:
			f, err := os.Create(target)
			if err != nil {
				return nil, nil, nil, closeAll, err
			}
			opened = append(opened, f)
			out = f
			errw = f
		}
	}
	return in, out, errw, closeAll, nil
}
