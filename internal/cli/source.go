package cli

import (
	"fmt"
	gotoken "go/token"
	"os"
)

// readFile loads path's bytes and registers it with fset under its own
// name, the way every subcommand needs before handing it to the scanner:
// the scanner records newline offsets into the returned *gotoken.File as
// it scans, so fset must already know about the file first.
func readFile(fset *gotoken.FileSet, path string) (*gotoken.File, []byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	file := fset.AddFile(path, -1, len(src))
	return file, src, nil
}
