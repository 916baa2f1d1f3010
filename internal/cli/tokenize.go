package cli

import (
	"context"
	"fmt"
	gotoken "go/token"

	"github.com/mna/mainer"

	"toyc/lang/scanner"
	"toyc/lang/token"
)

// Tokenize runs `toyc tokenize FILE...`: scan each file and print its
// token stream, one token per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fset := gotoken.NewFileSet()
	logger := loggerFrom(ctx)

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		file, src, err := readFile(fset, path)
		if err != nil {
			fmt.Fprintln(stdio.Stderr, err)
			return err
		}

		logger.Debug("tokenizing", "file", path, "bytes", len(src))
		sc := scanner.New(file, src)
		for {
			tok, val := sc.Next()
			pos := fset.Position(val.Range.Start)
			fmt.Fprintf(stdio.Stdout, "%s:%d:%d: %s", path, pos.Line, pos.Column, tok)
			if val.Raw != "" {
				fmt.Fprintf(stdio.Stdout, " %q", val.Raw)
			}
			fmt.Fprintln(stdio.Stdout)
			if tok == token.END {
				break
			}
		}
	}
	return nil
}
