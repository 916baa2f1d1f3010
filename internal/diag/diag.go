// Package diag renders pipeline errors for the CLI. Every stage
// (lang/parser, lang/checker) returns its own typed *Error carrying a
// token.Range and a message rather than a bare errors.New, so each
// diagnostic is a typed value instead of an ad hoc formatted string. diag
// doesn't require those packages to import it back: it recognizes any
// error that implements Ranged and falls back to plain message rendering
// otherwise.
package diag

import (
	"fmt"
	"io"
	gotoken "go/token"

	"github.com/fatih/color"
	"golang.org/x/term"

	"toyc/lang/token"
)

// Ranged is implemented by every stage's own error type (lang/parser.Error,
// lang/checker.Error) so diag can recover source range info from a plain
// error value without a sentinel type or an import cycle.
type Ranged interface {
	error
	DiagRange() token.Range
}

// Diagnostic is one rendered failure: a file-relative source range plus a
// human-readable message. It satisfies error so it composes with
// fmt.Errorf("%w", ...) and errors.Is/errors.As.
type Diagnostic struct {
	Range   token.Range
	Message string
}

func (d *Diagnostic) Error() string { return d.Message }

// FromError builds a Diagnostic from any error produced by the pipeline.
// If err implements Ranged its range is preserved; otherwise the
// Diagnostic carries the message alone.
func FromError(err error) *Diagnostic {
	if d, ok := err.(*Diagnostic); ok {
		return d
	}
	if r, ok := err.(Ranged); ok {
		return &Diagnostic{Range: r.DiagRange(), Message: err.Error()}
	}
	return &Diagnostic{Message: err.Error()}
}

// Render writes d to w as "filename:line:col: message", colored red for
// terminals (golang.org/x/term.IsTerminal gates whether w looks like one)
// and in plain text otherwise — stderr piped to a file or CI log shouldn't
// carry escape codes.
func (d *Diagnostic) Render(w io.Writer, filename string, fset *gotoken.FileSet) {
	loc := filename
	if d.Range.Start != token.NoPos && fset != nil {
		pos := fset.Position(d.Range.Start)
		loc = fmt.Sprintf("%s:%d:%d", filename, pos.Line, pos.Column)
	}

	msg := fmt.Sprintf("%s: %s", loc, d.Message)
	if isTerminal(w) {
		msg = color.New(color.FgRed, color.Bold).Sprint(msg)
	}
	fmt.Fprintln(w, msg)
}

func isTerminal(w io.Writer) bool {
	type fder interface{ Fd() uintptr }
	f, ok := w.(fder)
	return ok && term.IsTerminal(int(f.Fd()))
}
