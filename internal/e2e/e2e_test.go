// Package e2e runs every stage of the pipeline — scan, parse, check,
// assemble, execute — over whole-program fixtures and compares stdout/
// stderr against golden files, driving internal/filetest against
// testdata/in and testdata/out.
package e2e

import (
	"bytes"
	"context"
	"flag"
	gotoken "go/token"
	"os"
	"path/filepath"
	"testing"

	"toyc/internal/diag"
	"toyc/internal/filetest"
	"toyc/lang/ast"
	"toyc/lang/checker"
	"toyc/lang/compiler"
	"toyc/lang/machine"
	"toyc/lang/parser"
)

var testUpdateE2ETests = flag.Bool("test.update-e2e-tests", false, "If set, replace expected end-to-end test results with actual results.")

func TestPipeline(t *testing.T) {
	ctx := context.Background()
	srcDir, resultDir := filepath.Join("testdata", "in"), filepath.Join("testdata", "out")

	for _, fi := range filetest.SourceFiles(t, srcDir, ".toy") {
		t.Run(fi.Name(), func(t *testing.T) {
			var out, errOut bytes.Buffer
			runOne(ctx, filepath.Join(srcDir, fi.Name()), fi.Name(), &out, &errOut)

			filetest.DiffOutput(t, fi, out.String(), resultDir, testUpdateE2ETests)
			filetest.DiffErrors(t, fi, errOut.String(), resultDir, testUpdateE2ETests)
		})
	}
}

// runOne drives one file through the whole pipeline, writing print()
// output to out and any single diagnostic to errOut. displayName is used
// instead of path in rendered diagnostics so golden files don't encode an
// absolute or test-run-dependent path.
func runOne(ctx context.Context, path, displayName string, out, errOut *bytes.Buffer) {
	fset := gotoken.NewFileSet()
	src, err := os.ReadFile(path)
	if err != nil {
		errOut.WriteString(err.Error())
		return
	}
	file := fset.AddFile(path, -1, len(src))

	arena := ast.NewArena()
	chunk, err := parser.ParseFile(ctx, file, src, arena, displayName)
	if err != nil {
		diag.FromError(err).Render(errOut, displayName, fset)
		return
	}

	prog, err := checker.CheckProgram(ctx, chunk)
	if err != nil {
		diag.FromError(err).Render(errOut, displayName, fset)
		return
	}

	code := compiler.AssembleProgram(prog)

	m := machine.New(out)
	if err := m.Run(ctx, code); err != nil {
		diag.FromError(err).Render(errOut, displayName, fset)
	}
}
