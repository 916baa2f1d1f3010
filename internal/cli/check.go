package cli

import (
	"context"
	gotoken "go/token"

	"github.com/mna/mainer"

	"toyc/internal/diag"
	"toyc/lang/checker"
)

// Check runs `toyc check FILE...`: scan, parse, type-check, and print each
// file's typed program. There is no separate name-resolution pass distinct
// from type checking in this toolchain.
func (c *Cmd) Check(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fset := gotoken.NewFileSet()
	logger := loggerFrom(ctx)

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		chunk, _, err := parseFile(ctx, fset, path)
		if err != nil {
			diag.FromError(err).Render(stdio.Stderr, path, fset)
			return err
		}
		prog, err := checker.CheckProgram(ctx, chunk)
		if err != nil {
			diag.FromError(err).Render(stdio.Stderr, path, fset)
			return err
		}
		logger.Debug("checked", "file", path)
		checker.Print(stdio.Stdout, prog)
	}
	return nil
}
