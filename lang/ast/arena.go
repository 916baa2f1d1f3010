package ast

import "toyc/internal/arena"

// Arena owns every node allocated while parsing a single file. Nothing
// mutates a node after the parser hands it to the checker, so one Arena per
// compilation, dropped after lowering, is sufficient. Slices (Block.Stmts,
// CallExpr.Args, ...) are plain garbage-collected Go slices rather than
// arena-backed: they vary too much in size to bucket usefully, and they
// are owned by the single node that holds them, so collecting them
// together with that node is already what happens once the arena itself
// is dropped.
type Arena struct {
	noneExprs          arena.Buckets[NoneExpr]
	trueExprs          arena.Buckets[TrueExpr]
	falseExprs         arena.Buckets[FalseExpr]
	intExprs           arena.Buckets[IntExpr]
	floatExprs         arena.Buckets[FloatExpr]
	identExprs         arena.Buckets[IdentExpr]
	addExprs           arena.Buckets[AddExpr]
	minusExprs         arena.Buckets[MinusExpr]
	callExprs          arena.Buckets[CallExpr]
	dotAccessExprs     arena.Buckets[DotAccessExpr]
	tupExprs           arena.Buckets[TupExpr]
	passStmts          arena.Buckets[PassStmt]
	exprStmts          arena.Buckets[ExprStmt]
	declareStmts       arena.Buckets[DeclareStmt]
	assignStmts        arena.Buckets[AssignStmt]
	assignMemberStmts  arena.Buckets[AssignMemberStmt]
	ifStmts            arena.Buckets[IfStmt]
	whileStmts         arena.Buckets[WhileStmt]
	breakStmts         arena.Buckets[BreakStmt]
	returnStmts        arena.Buckets[ReturnStmt]
	functionStmts      arena.Buckets[FunctionStmt]
	blocks             arena.Buckets[Block]
}

func NewArena() *Arena { return &Arena{} }

func (a *Arena) NewNoneExpr() *NoneExpr   { return a.noneExprs.New() }
func (a *Arena) NewTrueExpr() *TrueExpr   { return a.trueExprs.New() }
func (a *Arena) NewFalseExpr() *FalseExpr { return a.falseExprs.New() }
func (a *Arena) NewIntExpr() *IntExpr     { return a.intExprs.New() }
func (a *Arena) NewFloatExpr() *FloatExpr { return a.floatExprs.New() }
func (a *Arena) NewIdentExpr() *IdentExpr { return a.identExprs.New() }
func (a *Arena) NewAddExpr() *AddExpr     { return a.addExprs.New() }
func (a *Arena) NewMinusExpr() *MinusExpr { return a.minusExprs.New() }
func (a *Arena) NewCallExpr() *CallExpr   { return a.callExprs.New() }
func (a *Arena) NewDotAccessExpr() *DotAccessExpr { return a.dotAccessExprs.New() }
func (a *Arena) NewTupExpr() *TupExpr     { return a.tupExprs.New() }

func (a *Arena) NewPassStmt() *PassStmt               { return a.passStmts.New() }
func (a *Arena) NewExprStmt() *ExprStmt               { return a.exprStmts.New() }
func (a *Arena) NewDeclareStmt() *DeclareStmt         { return a.declareStmts.New() }
func (a *Arena) NewAssignStmt() *AssignStmt           { return a.assignStmts.New() }
func (a *Arena) NewAssignMemberStmt() *AssignMemberStmt { return a.assignMemberStmts.New() }
func (a *Arena) NewIfStmt() *IfStmt                   { return a.ifStmts.New() }
func (a *Arena) NewWhileStmt() *WhileStmt             { return a.whileStmts.New() }
func (a *Arena) NewBreakStmt() *BreakStmt             { return a.breakStmts.New() }
func (a *Arena) NewReturnStmt() *ReturnStmt           { return a.returnStmts.New() }
func (a *Arena) NewFunctionStmt() *FunctionStmt       { return a.functionStmts.New() }

func (a *Arena) NewBlock() *Block { return a.blocks.New() }
