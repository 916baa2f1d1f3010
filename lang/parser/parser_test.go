package parser_test

import (
	"context"
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/lang/ast"
	"toyc/lang/parser"
)

func parse(t *testing.T, src string) (*ast.Chunk, error) {
	t.Helper()
	fset := gotoken.NewFileSet()
	file := fset.AddFile("test", -1, len(src))
	arena := ast.NewArena()
	return parser.ParseFile(context.Background(), file, []byte(src), arena, "test")
}

func TestParseExprStmt(t *testing.T) {
	chunk, err := parse(t, "print(1 + 2)\n")
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 1)

	stmt, ok := chunk.Block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)

	call, ok := stmt.Expr.(*ast.CallExpr)
	require.True(t, ok)
	require.Len(t, call.Args, 1)

	add, ok := call.Args[0].(*ast.AddExpr)
	require.True(t, ok)
	left, ok := add.Left.(*ast.IntExpr)
	require.True(t, ok)
	require.Equal(t, uint64(1), left.Value)
}

func TestParseDeclareAndAssign(t *testing.T) {
	chunk, err := parse(t, "x: int = 1\nx = 3\n")
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 2)

	decl, ok := chunk.Block.Stmts[0].(*ast.DeclareStmt)
	require.True(t, ok)
	require.Equal(t, "x", decl.Name.Lit)
	require.Equal(t, "int", decl.TypeName.Lit)

	assign, ok := chunk.Block.Stmts[1].(*ast.AssignStmt)
	require.True(t, ok)
	require.Equal(t, "x", assign.Name.Lit)
}

func TestParseFunctionStmt(t *testing.T) {
	src := "def add(a: int, b: int) -> int:\n    return a + b\n"
	chunk, err := parse(t, src)
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 1)

	fn, ok := chunk.Block.Stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Lit)
	require.Len(t, fn.Params, 2)
	require.Equal(t, "a", fn.Params[0].Name.Lit)
	require.Equal(t, "int", fn.Params[0].Type.Lit)
	require.Equal(t, "int", fn.ReturnType.Lit)
	require.Len(t, fn.Body.Stmts, 1)
}

func TestParseWhileElse(t *testing.T) {
	src := "while x:\n    x = x - 1\nelse:\n    x = 42\n"
	chunk, err := parse(t, src)
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 1)

	w, ok := chunk.Block.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, w.Body.Stmts, 1)
	require.Len(t, w.Else.Stmts, 1)
}

func TestParseIfElifElse(t *testing.T) {
	src := "if x:\n    y: int = 1\nelif z:\n    y: int = 2\nelse:\n    y: int = 3\nprint(y)\n"
	chunk, err := parse(t, src)
	require.NoError(t, err)
	require.Len(t, chunk.Block.Stmts, 2)

	ifStmt, ok := chunk.Block.Stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.Len(t, ifStmt.Branches, 2)
	require.Len(t, ifStmt.Branches[0].Body.Stmts, 1)
	require.Len(t, ifStmt.Branches[1].Body.Stmts, 1)
	require.NotNil(t, ifStmt.Else)
	require.Len(t, ifStmt.Else.Stmts, 1)
}

func TestParseAssignmentTargetMustBeAssignable(t *testing.T) {
	_, err := parse(t, "1 = 2\n")
	require.Error(t, err)
}

func TestParseExpectedTokenError(t *testing.T) {
	_, err := parse(t, "def f(:\n    pass\n")
	require.Error(t, err)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	require.NotZero(t, perr.Range.Start)
}
