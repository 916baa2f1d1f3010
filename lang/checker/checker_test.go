package checker_test

import (
	"context"
	gotoken "go/token"
	"testing"

	"github.com/stretchr/testify/require"

	"toyc/lang/ast"
	"toyc/lang/checker"
	"toyc/lang/parser"
	"toyc/lang/types"
)

func check(t *testing.T, src string) (*checker.TProgram, error) {
	t.Helper()
	fset := gotoken.NewFileSet()
	file := fset.AddFile("test", -1, len(src))
	arena := ast.NewArena()
	chunk, err := parser.ParseFile(context.Background(), file, []byte(src), arena, "test")
	require.NoError(t, err)
	return checker.CheckProgram(context.Background(), chunk)
}

func TestCheckArithRequiresMatchingTypes(t *testing.T) {
	_, err := check(t, "print(1 + 1.5)\n")
	require.Error(t, err)
}

func TestCheckArithRejectsNonNumeric(t *testing.T) {
	_, err := check(t, "print(True + True)\n")
	require.Error(t, err)
}

func TestCheckDeclareWrongType(t *testing.T) {
	_, err := check(t, "x: int = 1.0\n")
	require.Error(t, err)
	var cerr *checker.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, "value is wrong type", cerr.Message)
}

func TestCheckDeclareNoneFitsAnyTarget(t *testing.T) {
	_, err := check(t, "x: int = None\n")
	require.NoError(t, err)
}

func TestCheckAssignUnknownName(t *testing.T) {
	_, err := check(t, "x = 1\n")
	require.Error(t, err)
}

func TestCheckBreakOutsideLoop(t *testing.T) {
	_, err := check(t, "break\n")
	require.Error(t, err)
}

func TestCheckReturnOutsideFunction(t *testing.T) {
	_, err := check(t, "return 1\n")
	require.Error(t, err)
}

func TestCheckDotAccessAlwaysErrors(t *testing.T) {
	_, err := check(t, "x: int = 1\nx.y = 2\n")
	require.Error(t, err)
}

func TestCheckTupleExprAlwaysErrors(t *testing.T) {
	_, err := check(t, "print((1, 2))\n")
	require.Error(t, err)
}

func TestCheckFunctionCallWrongArgCount(t *testing.T) {
	_, err := check(t, "def f(a: int) -> int:\n    return a\n\nprint(f())\n")
	require.Error(t, err)
}

func TestCheckFunctionMutualRecursionAcrossDeclOrder(t *testing.T) {
	src := "def isEven(n: int) -> bool:\n    return isOdd(n)\n\ndef isOdd(n: int) -> bool:\n    return isEven(n)\n\npass\n"
	_, err := check(t, src)
	require.NoError(t, err)
}

func TestCheckFunctionCallSucceeds(t *testing.T) {
	prog, err := check(t, "def add(a: int, b: int) -> int:\n    return a + b\n\nprint(add(1, 2))\n")
	require.NoError(t, err)
	require.Len(t, prog.Stmts, 2)

	fn, ok := prog.Stmts[0].(checker.TFunction)
	require.True(t, ok)
	require.Equal(t, types.Int{}, fn.Type.Return)
	require.Len(t, fn.ArgumentUIDs, 2)
}

func TestCheckIfElseDivergentArmUIDsStillChecks(t *testing.T) {
	// y is declared separately in each arm; the checker must accept this
	// since both arms agree on the type, even though each arm mints its
	// own UID for y.
	src := "if False:\n    y: int = 1\nelse:\n    y: int = 2\nprint(y)\n"
	_, err := check(t, src)
	require.NoError(t, err)
}

func TestCheckIfElifElseMismatchedTypesError(t *testing.T) {
	src := "if True:\n    y: int = 1\nelif False:\n    y: float = 2.0\nelse:\n    y: int = 3\nprint(y)\n"
	_, err := check(t, src)
	require.Error(t, err)
}

func TestCheckIfWithoutElseNeverFoldsIntoParent(t *testing.T) {
	// y only appears along some control paths (no else arm), so it must
	// not become visible after the chain.
	src := "if True:\n    y: int = 1\nprint(y)\n"
	_, err := check(t, src)
	require.Error(t, err)
}

func TestCheckWhileElseFoldsDeclarationsIntoParentScope(t *testing.T) {
	// y declared inside the while body and z declared inside its else clause
	// must both still be visible after the loop, since the checker folds
	// both scopes into the parent.
	src := "x: int = 0\nwhile x:\n    y: int = 1\n    x = y\nelse:\n    z: int = 2\nprint(y)\nprint(z)\n"
	_, err := check(t, src)
	require.NoError(t, err)
}
