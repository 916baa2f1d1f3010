package machine_test

import (
	"bytes"
	"context"
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/lang/ast"
	"toyc/lang/checker"
	"toyc/lang/compiler"
	"toyc/lang/machine"
	"toyc/lang/parser"
)

func run(t *testing.T, src string) string {
	t.Helper()
	fset := gotoken.NewFileSet()
	file := fset.AddFile("test", -1, len(src))
	arena := ast.NewArena()
	chunk, err := parser.ParseFile(context.Background(), file, []byte(src), arena, "test")
	require.NoError(t, err)
	prog, err := checker.CheckProgram(context.Background(), chunk)
	require.NoError(t, err)
	code := compiler.AssembleProgram(prog)

	var out bytes.Buffer
	m := machine.New(&out)
	require.NoError(t, m.Run(context.Background(), code))
	return out.String()
}

func TestRunAddLiterals(t *testing.T) {
	require.Equal(t, "3\n", run(t, "print(1 + 2)\n"))
}

func TestRunAddFloats(t *testing.T) {
	require.Equal(t, "4.0\n", run(t, "print(1.5 + 2.5)\n"))
}

func TestRunDeclareAndReassign(t *testing.T) {
	require.Equal(t, "3\n", run(t, "x: int = 1\nx = 3\nprint(x)\n"))
}

func TestRunFunctionCall(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return a + b\n\nprint(add(5, 6))\n"
	require.Equal(t, "11\n", run(t, src))
}

func TestRunWhileElse(t *testing.T) {
	src := "x: int = 3\nwhile x:\n    x = x - 1\nelse:\n    x = 42\nprint(x)\n"
	require.Equal(t, "42\n", run(t, src))
}

func TestRunBoolPrintsPythonCase(t *testing.T) {
	require.Equal(t, "True\n", run(t, "print(True)\n"))
	require.Equal(t, "False\n", run(t, "print(False)\n"))
}

func TestRunFloatCastFromInt(t *testing.T) {
	require.Equal(t, "1.0\n", run(t, "print(float(1))\n"))
}

func TestRunIntCastFromFloat(t *testing.T) {
	require.Equal(t, "1\n", run(t, "print(int(1.9))\n"))
}

func TestRunBoolCastTruthiness(t *testing.T) {
	require.Equal(t, "True\n", run(t, "print(bool(1))\n"))
	require.Equal(t, "False\n", run(t, "print(bool(0))\n"))
}

func TestRunBreakExitsLoopEarly(t *testing.T) {
	src := "x: int = 3\nwhile x:\n    break\nelse:\n    x = 42\nprint(x)\n"
	require.Equal(t, "3\n", run(t, src))
}

func TestRunIfElseDivergentArmUIDsReadCorrectSlot(t *testing.T) {
	// the else arm runs and declares its own y; the value must reach the
	// one stack slot every reference after the chain reads from, not the
	// untaken if-arm's uninitialized slot.
	src := "if False:\n    y: int = 1\nelse:\n    y: int = 2\nprint(y)\n"
	require.Equal(t, "2\n", run(t, src))
}

func TestRunIfElifElseMiddleArmRuns(t *testing.T) {
	src := "if False:\n    y: int = 1\nelif True:\n    y: int = 2\nelse:\n    y: int = 3\nprint(y)\n"
	require.Equal(t, "2\n", run(t, src))
}

func TestRunIfElifElseFirstArmRuns(t *testing.T) {
	src := "if True:\n    y: int = 1\nelif True:\n    y: int = 2\nelse:\n    y: int = 3\nprint(y)\n"
	require.Equal(t, "1\n", run(t, src))
}

func TestRunNestedFunctionCalls(t *testing.T) {
	src := "def inc(a: int) -> int:\n    return a + 1\n\ndef twice(a: int) -> int:\n    return inc(inc(a))\n\nprint(twice(5))\n"
	require.Equal(t, "7\n", run(t, src))
}
