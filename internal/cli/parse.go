package cli

import (
	"context"
	gotoken "go/token"

	"github.com/mna/mainer"

	"toyc/internal/diag"
	"toyc/lang/ast"
	"toyc/lang/parser"
)

// Parse runs `toyc parse FILE...`: scan, parse, and print each file's
// syntax tree.
func (c *Cmd) Parse(ctx context.Context, stdio mainer.Stdio, args []string) error {
	fset := gotoken.NewFileSet()
	printer := ast.Printer{Output: stdio.Stdout, Fset: fset}
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
		logger.Debug("parsed", "file", path)
		printer.Print(chunk)
	}
	return nil
}

// parseFile scans and parses one file, returning its arena alongside the
// chunk since the arena must outlive every node the chunk references.
func parseFile(ctx context.Context, fset *gotoken.FileSet, path string) (*ast.Chunk, *ast.Arena, error) {
	file, src, err := readFile(fset, path)
	if err != nil {
		return nil, nil, err
	}
	arena := ast.NewArena()
	chunk, err := parser.ParseFile(ctx, file, src, arena, path)
	if err != nil {
		return nil, nil, err
	}
	return chunk, arena, nil
}
