package diag_test

import (
	"bytes"
	"errors"
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/internal/diag"
	"toyc/lang/token"
)

type rangedErr struct {
	rng token.Range
	msg string
}

func (e rangedErr) Error() string         { return e.msg }
func (e rangedErr) DiagRange() token.Range { return e.rng }

func TestFromErrorPreservesRange(t *testing.T) {
	src := "x + y"
	fset := gotoken.NewFileSet()
	file := fset.AddFile("f.toy", -1, len(src))

	rng := token.Range{Start: file.Pos(2), End: file.Pos(3)}
	d := diag.FromError(rangedErr{rng: rng, msg: "boom"})
	require.Equal(t, rng, d.Range)
	require.Equal(t, "boom", d.Message)
}

func TestFromErrorFallsBackWithoutRange(t *testing.T) {
	d := diag.FromError(errors.New("plain failure"))
	require.Equal(t, token.NoPos, d.Range.Start)
	require.Equal(t, "plain failure", d.Message)
}

func TestRenderFormatsFileLineColumn(t *testing.T) {
	src := "line one\nline two\n"
	fset := gotoken.NewFileSet()
	file := fset.AddFile("f.toy", -1, len(src))
	file.AddLine(9) // second line begins at byte offset 9

	rng := token.Range{Start: file.Pos(9), End: file.Pos(13)}
	d := diag.FromError(rangedErr{rng: rng, msg: "bad thing"})

	var buf bytes.Buffer
	d.Render(&buf, "f.toy", fset)
	require.Equal(t, "f.toy:2:1: bad thing\n", buf.String())
}

func TestRenderWithoutRangeUsesBareFilename(t *testing.T) {
	d := diag.FromError(errors.New("no position info"))
	var buf bytes.Buffer
	d.Render(&buf, "f.toy", gotoken.NewFileSet())
	require.Equal(t, "f.toy: no position info\n", buf.String())
}
