package cli

import (
	"context"
	gotoken "go/token"
	"time"

	"github.com/mna/mainer"

	"toyc/internal/diag"
	"toyc/lang/checker"
	"toyc/lang/compiler"
	"toyc/lang/machine"
)

// Run runs `toyc run FILE...` (the default command): compile and execute
// each file in turn, in the order given, stopping at the first file that
// fails any stage.
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fset := gotoken.NewFileSet()
	logger := loggerFrom(ctx)

	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()

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

		code := compiler.AssembleProgram(prog)

		m := machine.New(stdio.Stdout)
		if err := m.Run(ctx, code); err != nil {
			diag.FromError(err).Render(stdio.Stderr, path, fset)
			return err
		}

		logger.Debug("ran", "file", path, "elapsed", time.Since(start))
	}
	return nil
}
