// Package checker implements the type checker: name resolution, UID
// assignment, and the typing rules that turn an untyped lang/ast tree into
// a TIR (TProgram). The scope-stack shape (push/pop, declare/lookup)
// follows a resolver-style design, and original_source/type_checker.rs
// supplies the exact assignability and arithmetic rules.
package checker

import (
	"context"
	"fmt"

	"toyc/lang/ast"
	"toyc/lang/token"
	"toyc/lang/types"
)

// Error is a single type-checking failure. Checking does not accumulate
// errors: the first one aborts and is returned to the caller.
type Error struct {
	Range   token.Range
	Message string
}

func (e *Error) Error() string { return e.Message }

// DiagRange lets internal/diag render this Error with its source range
// without checker importing diag back.
func (e *Error) DiagRange() token.Range { return e.Range }

// Checker holds all state needed for one CheckProgram call. It is not
// reusable across programs.
type Checker struct {
	scopes          []scope
	nextUID         UID
	funcReturnTypes []types.Type
	loopDepth       int
	declStack       [][]UID
}

// CheckProgram type-checks chunk and produces its TIR.
func CheckProgram(ctx context.Context, chunk *ast.Chunk) (*TProgram, error) {
	c := &Checker{nextUID: firstUserUID}
	c.push()
	c.registerBuiltins()

	c.declStack = append(c.declStack, nil)
	stmts, err := c.checkStmtList(ctx, chunk.Block.Stmts)
	if err != nil {
		return nil, err
	}
	decls := c.declStack[len(c.declStack)-1]

	return &TProgram{Stmts: stmts, Declarations: decls}, nil
}

func (c *Checker) registerBuiltins() {
	any := types.Any{}
	builtins := []struct {
		name token.NameID
		uid  UID
		ft   types.Function
	}{
		{token.NamePrint, BuiltinPrintUID, types.Function{Return: types.None{}, Args: []types.Type{any}}},
		{token.NameFloat, BuiltinFloatUID, types.Function{Return: types.Float{}, Args: []types.Type{any}}},
		{token.NameInt, BuiltinIntUID, types.Function{Return: types.Int{}, Args: []types.Type{any}}},
		{token.NameBool, BuiltinBoolUID, types.Function{Return: types.Bool{}, Args: []types.Type{any}}},
	}
	top := c.scopes[len(c.scopes)-1]
	for _, b := range builtins {
		top[b.name] = &Symbol{UID: b.uid, Type: b.ft, IsFunc: true}
	}
}

func (c *Checker) push() { c.scopes = append(c.scopes, scope{}) }
func (c *Checker) pop()  { c.scopes = c.scopes[:len(c.scopes)-1] }

func (c *Checker) errorf(rng token.Range, format string, args ...any) *Error {
	return &Error{Range: rng, Message: fmt.Sprintf(format, args...)}
}

func identRange(id *ast.IdentExpr) token.Range {
	start, end := id.Span()
	return token.Range{Start: start, End: end}
}

func exprRange(e ast.Expr) token.Range {
	start, end := e.Span()
	return token.Range{Start: start, End: end}
}

func (c *Checker) resolveTypeName(id *ast.IdentExpr) (types.Type, *Error) {
	switch id.Name {
	case token.NameInt:
		return types.Int{}, nil
	case token.NameFloat:
		return types.Float{}, nil
	case token.NameBool:
		return types.Bool{}, nil
	default:
		return nil, c.errorf(identRange(id), "type doesn't exist")
	}
}

func (c *Checker) lookupSymbol(id *ast.IdentExpr) (*Symbol, *Error) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if sym, ok := c.scopes[i][id.Name]; ok {
			return sym, nil
		}
	}
	return nil, c.errorf(identRange(id), "name %q doesn't exist", id.Lit)
}

func (c *Checker) declareVariable(id *ast.IdentExpr, typ types.Type) *Symbol {
	sym := &Symbol{UID: c.nextUID, Range: identRange(id), Type: typ}
	c.nextUID++
	c.scopes[len(c.scopes)-1][id.Name] = sym
	if n := len(c.declStack); n > 0 {
		c.declStack[n-1] = append(c.declStack[n-1], sym.UID)
	}
	return sym
}

func (c *Checker) declareParam(id *ast.IdentExpr, typ types.Type) *Symbol {
	sym := &Symbol{UID: c.nextUID, Range: identRange(id), Type: typ}
	c.nextUID++
	c.scopes[len(c.scopes)-1][id.Name] = sym
	return sym
}

func (c *Checker) declareFunction(id *ast.IdentExpr, ft types.Function) *Symbol {
	sym := &Symbol{UID: c.nextUID, Range: identRange(id), Type: ft, IsFunc: true}
	c.nextUID++
	c.scopes[len(c.scopes)-1][id.Name] = sym
	return sym
}

// isAssignable implements is_assignable: a None-typed value fits any
// target; Any accepts everything; otherwise the types must match exactly.
func isAssignable(target, value types.Type) bool {
	if _, ok := value.(types.None); ok {
		return true
	}
	if _, ok := target.(types.Any); ok {
		return true
	}
	return target.Equal(value)
}

// prescanFunctions resolves the signature of every FunctionStmt directly in
// stmts (it runs for each statement list, nested blocks included) and
// declares it in the current scope before any statement body is checked,
// so mutually recursive calls type-check regardless of source order.
// Variables are deliberately not pre-scanned: their bindings only become
// available after their own Declare statement runs.
func (c *Checker) prescanFunctions(stmts []ast.Stmt) (map[ast.Stmt]*Symbol, *Error) {
	syms := map[ast.Stmt]*Symbol{}
	for _, s := range stmts {
		fn, ok := s.(*ast.FunctionStmt)
		if !ok {
			continue
		}
		argTypes := make([]types.Type, len(fn.Params))
		for i, p := range fn.Params {
			t, err := c.resolveTypeName(p.Type)
			if err != nil {
				return nil, err
			}
			argTypes[i] = t
		}
		retType := types.Type(types.None{})
		if fn.ReturnType != nil {
			t, err := c.resolveTypeName(fn.ReturnType)
			if err != nil {
				return nil, err
			}
			retType = t
		}
		syms[s] = c.declareFunction(fn.Name, types.Function{Return: retType, Args: argTypes})
	}
	return syms, nil
}

func (c *Checker) checkStmtList(ctx context.Context, stmts []ast.Stmt) ([]TStmt, *Error) {
	funcSyms, err := c.prescanFunctions(stmts)
	if err != nil {
		return nil, err
	}
	out := make([]TStmt, 0, len(stmts))
	for _, s := range stmts {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, c.errorf(token.Range{}, "%s", ctxErr)
		}
		t, err := c.checkStmt(ctx, s, funcSyms)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// checkBlockNewScope checks block's statements in a fresh child scope and
// returns both the typed statements and the scope map as it stood right
// before being popped, so the caller can fold or merge it.
func (c *Checker) checkBlockNewScope(ctx context.Context, block *ast.Block) ([]TStmt, scope, *Error) {
	c.push()
	stmts, err := c.checkStmtList(ctx, block.Stmts)
	sc := c.scopes[len(c.scopes)-1]
	c.pop()
	if err != nil {
		return nil, nil, err
	}
	return stmts, sc, nil
}

func (c *Checker) checkStmt(ctx context.Context, s ast.Stmt, funcSyms map[ast.Stmt]*Symbol) (TStmt, *Error) {
	switch s := s.(type) {
	case *ast.PassStmt:
		return TPass{}, nil

	case *ast.ExprStmt:
		e, err := c.checkExpr(s.Expr)
		if err != nil {
			return nil, err
		}
		return TExprStmt{Expr: e}, nil

	case *ast.DeclareStmt:
		declType, terr := c.resolveTypeName(s.TypeName)
		if terr != nil {
			return nil, terr
		}
		sym := c.declareVariable(s.Name, declType)
		value, verr := c.checkExpr(s.Value)
		if verr != nil {
			return nil, verr
		}
		if !isAssignable(declType, value.ExprType()) {
			return nil, c.errorf(exprRange(s.Value), "value is wrong type")
		}
		return TDeclare{UID: sym.UID, Type: declType, Value: value}, nil

	case *ast.AssignStmt:
		sym, lerr := c.lookupSymbol(s.Name)
		if lerr != nil {
			return nil, lerr
		}
		if sym.IsFunc {
			return nil, c.errorf(identRange(s.Name), "cannot assign to a function")
		}
		value, verr := c.checkExpr(s.Value)
		if verr != nil {
			return nil, verr
		}
		if !isAssignable(sym.Type, value.ExprType()) {
			return nil, c.errorf(exprRange(s.Value), "value is wrong type")
		}
		return TAssign{UID: sym.UID, Value: value}, nil

	case *ast.AssignMemberStmt:
		return nil, c.errorf(exprRange(s.Target), "type has no members")

	case *ast.IfStmt:
		var branches []TIfBranch
		var arms []scope
		for _, br := range s.Branches {
			cond, cerr := c.checkExpr(br.Cond)
			if cerr != nil {
				return nil, cerr
			}
			body, sc, berr := c.checkBlockNewScope(ctx, br.Body)
			if berr != nil {
				return nil, berr
			}
			branches = append(branches, TIfBranch{Cond: cond, Body: body})
			arms = append(arms, sc)
		}
		var elseBody []TStmt
		hasElse := s.Else != nil
		if hasElse {
			body, sc, berr := c.checkBlockNewScope(ctx, s.Else)
			if berr != nil {
				return nil, berr
			}
			elseBody = body
			arms = append(arms, sc)
		}
		merged, merr := mergeParallelScopes(arms, hasElse)
		if merr != nil {
			return nil, merr
		}
		// Each arm declared its own UID for a name that merge picked a
		// canonical UID for; append a copy into the canonical slot at the
		// end of every arm but the one that owns it, so the value survives
		// into the canonical stack slot regardless of which arm ran.
		for i := range branches {
			branches[i].Body = reconcileArmUIDs(branches[i].Body, arms[i], merged)
		}
		if hasElse {
			elseBody = reconcileArmUIDs(elseBody, arms[len(arms)-1], merged)
		}
		c.foldIntoParent(merged)
		return TIf{Branches: branches, Else: elseBody}, nil

	case *ast.WhileStmt:
		cond, cerr := c.checkExpr(s.Cond)
		if cerr != nil {
			return nil, cerr
		}
		c.loopDepth++
		body, sc, berr := c.checkBlockNewScope(ctx, s.Body)
		c.loopDepth--
		if berr != nil {
			return nil, berr
		}
		c.foldIntoParent(sc)
		var elseBody []TStmt
		if s.Else != nil {
			eb, esc, eerr := c.checkBlockNewScope(ctx, s.Else)
			if eerr != nil {
				return nil, eerr
			}
			elseBody = eb
			c.foldIntoParent(esc)
		}
		return TWhile{Cond: cond, Body: body, Else: elseBody}, nil

	case *ast.BreakStmt:
		if c.loopDepth == 0 {
			return nil, c.errorf(token.Range{Start: s.Pos, End: s.Pos}, "break outside of a loop")
		}
		return TBreak{}, nil

	case *ast.ReturnStmt:
		if len(c.funcReturnTypes) == 0 {
			return nil, c.errorf(token.Range{Start: s.Pos, End: s.Pos}, "return outside of a function")
		}
		want := c.funcReturnTypes[len(c.funcReturnTypes)-1]
		var value TExpr
		got := types.Type(types.None{})
		if s.Value != nil {
			v, verr := c.checkExpr(s.Value)
			if verr != nil {
				return nil, verr
			}
			value = v
			got = v.ExprType()
		}
		if !isAssignable(want, got) {
			return nil, c.errorf(token.Range{Start: s.Pos, End: s.Pos}, "value is wrong type")
		}
		return TReturn{Value: value}, nil

	case *ast.FunctionStmt:
		sym := funcSyms[s]
		return c.checkFunctionBody(ctx, s, sym)

	default:
		return nil, c.errorf(token.Range{}, "unsupported statement")
	}
}

func (c *Checker) checkFunctionBody(ctx context.Context, fn *ast.FunctionStmt, sym *Symbol) (TStmt, *Error) {
	ft := sym.Type.(types.Function)

	c.push()
	defer c.pop()
	c.declStack = append(c.declStack, nil)
	c.funcReturnTypes = append(c.funcReturnTypes, ft.Return)

	argUIDs := make([]UID, len(fn.Params))
	for i, p := range fn.Params {
		psym := c.declareParam(p.Name, ft.Args[i])
		argUIDs[i] = psym.UID
	}

	body, err := c.checkStmtList(ctx, fn.Body.Stmts)
	c.funcReturnTypes = c.funcReturnTypes[:len(c.funcReturnTypes)-1]
	decls := c.declStack[len(c.declStack)-1]
	c.declStack = c.declStack[:len(c.declStack)-1]
	if err != nil {
		return nil, err
	}

	return TFunction{
		UID:          sym.UID,
		ArgumentUIDs: argUIDs,
		Declarations: decls,
		Type:         ft,
		Body:         body,
	}, nil
}

func (c *Checker) checkExpr(e ast.Expr) (TExpr, *Error) {
	switch e := e.(type) {
	case *ast.NoneExpr:
		return TNone{}, nil
	case *ast.TrueExpr:
		return TBool{Value: true}, nil
	case *ast.FalseExpr:
		return TBool{Value: false}, nil
	case *ast.IntExpr:
		return TInt{Value: e.Value}, nil
	case *ast.FloatExpr:
		return TFloat{Value: e.Value}, nil

	case *ast.IdentExpr:
		sym, err := c.lookupSymbol(e)
		if err != nil {
			return nil, err
		}
		return TIdent{UID: sym.UID, Type: sym.Type}, nil

	case *ast.AddExpr:
		return c.checkArith(e.Left, e.Right, exprRange(e), func(l, r TExpr, t types.Type) TExpr {
			return TAdd{Left: l, Right: r, Type: t}
		})
	case *ast.MinusExpr:
		return c.checkArith(e.Left, e.Right, exprRange(e), func(l, r TExpr, t types.Type) TExpr {
			return TMinus{Left: l, Right: r, Type: t}
		})

	case *ast.CallExpr:
		calleeIdent, ok := e.Callee.(*ast.IdentExpr)
		if !ok {
			return nil, c.errorf(exprRange(e.Callee), "can only call a name")
		}
		sym, serr := c.lookupSymbol(calleeIdent)
		if serr != nil {
			return nil, serr
		}
		if !sym.IsFunc {
			return nil, c.errorf(identRange(calleeIdent), "cannot call a variable")
		}
		ft := sym.Type.(types.Function)
		if len(e.Args) != len(ft.Args) {
			return nil, c.errorf(exprRange(e), "wrong number of arguments")
		}
		args := make([]TExpr, len(e.Args))
		for i, a := range e.Args {
			ta, aerr := c.checkExpr(a)
			if aerr != nil {
				return nil, aerr
			}
			if !isAssignable(ft.Args[i], ta.ExprType()) {
				return nil, c.errorf(exprRange(a), "argument is wrong type")
			}
			args[i] = ta
		}
		return TCall{Callee: sym.UID, Args: args, Type: ft.Return}, nil

	case *ast.DotAccessExpr:
		return nil, c.errorf(exprRange(e.Parent), "type has no members")

	case *ast.TupExpr:
		return nil, c.errorf(exprRange(e), "tuple expressions are not supported as values")

	default:
		return nil, c.errorf(token.Range{}, "unsupported expression")
	}
}

func (c *Checker) checkArith(leftE, rightE ast.Expr, rng token.Range, make func(l, r TExpr, t types.Type) TExpr) (TExpr, *Error) {
	left, lerr := c.checkExpr(leftE)
	if lerr != nil {
		return nil, lerr
	}
	right, rerr := c.checkExpr(rightE)
	if rerr != nil {
		return nil, rerr
	}
	lt, rt := left.ExprType(), right.ExprType()
	if !lt.Equal(rt) {
		return nil, c.errorf(rng, "left and right side of operator need to have the same type")
	}
	switch lt.(type) {
	case types.Int, types.Float:
	default:
		return nil, c.errorf(rng, "operator requires a numeric type")
	}
	return make(left, right, lt), nil
}
