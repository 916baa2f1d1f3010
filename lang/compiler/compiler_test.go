package compiler_test

import (
	"context"
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/lang/ast"
	"toyc/lang/checker"
	"toyc/lang/compiler"
	"toyc/lang/parser"
)

func assemble(t *testing.T, src string) []compiler.Opcode {
	t.Helper()
	fset := gotoken.NewFileSet()
	file := fset.AddFile("test", -1, len(src))
	arena := ast.NewArena()
	chunk, err := parser.ParseFile(context.Background(), file, []byte(src), arena, "test")
	require.NoError(t, err)
	prog, err := checker.CheckProgram(context.Background(), chunk)
	require.NoError(t, err)
	return compiler.AssembleProgram(prog)
}

func ops(code []compiler.Opcode) []compiler.Op {
	out := make([]compiler.Op, len(code))
	for i, c := range code {
		out[i] = c.Op
	}
	return out
}

func TestAssembleAddLiterals(t *testing.T) {
	code := assemble(t, "print(1 + 2)\n")
	// the global body (addresses 0-7) is followed by print's builtin body
	// (addresses 8-12), which performs the ECall.
	require.Equal(t, []compiler.Op{
		compiler.OpPushNone, compiler.OpMakeInt, compiler.OpMakeInt, compiler.OpAddInt,
		compiler.OpCall, compiler.OpPop, compiler.OpPop, compiler.OpReturn,
		compiler.OpGetLocal, compiler.OpMakeInt, compiler.OpECall, compiler.OpSetLocal, compiler.OpReturn,
	}, ops(code[:13]))
	require.Equal(t, int64(8), code[4].Int)
	require.Equal(t, compiler.PrintPrimitive, code[9].Int)
}

func TestAssembleWhileJumpsAreResolved(t *testing.T) {
	code := assemble(t, "x: int = 3\nwhile x:\n    x = x - 1\nprint(x)\n")
	for i, c := range code {
		if c.Op == compiler.OpJump || c.Op == compiler.OpJumpIf || c.Op == compiler.OpJumpNotIf {
			require.GreaterOrEqualf(t, c.Int, int64(0), "opcode %d has unpatched (negative) jump target", i)
			require.Lessf(t, c.Int, int64(len(code)), "opcode %d jump target out of range", i)
		}
	}
}

func TestAssembleFunctionCallResolvesCalleeAddress(t *testing.T) {
	code := assemble(t, "def add(a: int, b: int) -> int:\n    return a + b\n\nprint(add(1, 2))\n")

	var sawCall bool
	for _, c := range code {
		if c.Op == compiler.OpCall {
			sawCall = true
			require.GreaterOrEqual(t, c.Int, int64(0))
			require.Less(t, c.Int, int64(len(code)))
		}
	}
	require.True(t, sawCall)
}

func TestAssembleIfElifElseJumpsAreResolved(t *testing.T) {
	src := "if False:\n    y: int = 1\nelif False:\n    y: int = 2\nelse:\n    y: int = 3\nprint(y)\n"
	code := assemble(t, src)
	for i, c := range code {
		if c.Op == compiler.OpJump || c.Op == compiler.OpJumpIf || c.Op == compiler.OpJumpNotIf {
			require.GreaterOrEqualf(t, c.Int, int64(0), "opcode %d has unpatched (negative) jump target", i)
			require.Lessf(t, c.Int, int64(len(code)), "opcode %d jump target out of range", i)
		}
	}
}

func TestAssembleGlobalBodyLeadsTheProgram(t *testing.T) {
	// a function defined before any top-level statement must not push its
	// body ahead of the global chunk's own instructions.
	code := assemble(t, "def f() -> int:\n    return 1\n\nprint(f())\n")
	require.Equal(t, compiler.OpCall, findFirstCall(code).Op)
	// the very first opcode belongs to the global body (the PushNone that
	// reserves print's return slot), not to f's own body.
	require.NotEqual(t, compiler.OpReturn, code[0].Op)
}

func findFirstCall(code []compiler.Opcode) compiler.Opcode {
	for _, c := range code {
		if c.Op == compiler.OpCall {
			return c
		}
	}
	return compiler.Opcode{}
}
