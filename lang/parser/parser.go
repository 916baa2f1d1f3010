// Package parser implements the recursive-descent parser: a two-token
// lookahead grammar that builds an untyped lang/ast tree directly from a
// lang/scanner token stream. Restructured from original_source/parser.rs's
// try_parse_program/try_parse_stmt production shapes into a long-lived
// *parser idiom (a cur/peek/advance two-token buffer, one method per production),
// with Error{Range, Message} standing in for a Result type.
package parser

import (
	"context"
	"fmt"
	gotoken "go/token"

	"toyc/lang/ast"
	"toyc/lang/scanner"
	"toyc/lang/token"
)

// Error is a single parse failure. Parsing does not attempt recovery: the
// first Error aborts and propagates to the caller unchanged.
type Error struct {
	Range   token.Range
	Message string
}

func (e *Error) Error() string { return e.Message }

// DiagRange lets internal/diag render this Error with its source range
// without parser importing diag back.
func (e *Error) DiagRange() token.Range { return e.Range }

type parser struct {
	sc    *scanner.Scanner
	arena *ast.Arena

	tok [2]token.Token
	val [2]token.Value
}

func newParser(sc *scanner.Scanner, arena *ast.Arena) *parser {
	p := &parser{sc: sc, arena: arena}
	p.tok[0], p.val[0] = sc.Next()
	p.tok[1], p.val[1] = sc.Next()
	return p
}

func (p *parser) cur() token.Token    { return p.tok[0] }
func (p *parser) curVal() token.Value { return p.val[0] }
func (p *parser) peek() token.Token   { return p.tok[1] }

func (p *parser) advance() {
	p.tok[0], p.val[0] = p.tok[1], p.val[1]
	p.tok[1], p.val[1] = p.sc.Next()
}

func (p *parser) errorf(rng token.Range, format string, args ...any) *Error {
	return &Error{Range: rng, Message: fmt.Sprintf(format, args...)}
}

func (p *parser) expect(tok token.Token) (token.Value, *Error) {
	if p.cur() != tok {
		return token.Value{}, p.errorf(p.curVal().Range, "expected %s, found %s", tok, p.cur())
	}
	v := p.curVal()
	p.advance()
	return v, nil
}

// ParseFile parses the whole of src (already registered in file) into a
// Chunk. name is used only for diagnostics and the Chunk's own Name field.
func ParseFile(ctx context.Context, file *gotoken.File, src []byte, arena *ast.Arena, name string) (*ast.Chunk, error) {
	sc := scanner.New(file, src)
	p := newParser(sc, arena)

	block := arena.NewBlock()
	block.Start = file.Pos(0)
	for p.cur() != token.END {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.cur() == token.UNKNOWN_DEDENT {
			return nil, p.errorf(p.curVal().Range, "mismatched indentation")
		}
		stmt, err := p.parseStmt(ctx)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	eof := p.curVal()
	block.End = eof.Range.Start

	return &ast.Chunk{Name: name, Block: block, EOF: eof.Range.Start}, nil
}

func (p *parser) parseBlock(ctx context.Context) (*ast.Block, error) {
	open, err := p.expect(token.INDENT)
	if err != nil {
		return nil, err
	}
	block := p.arena.NewBlock()
	block.Start = open.Range.Start
	for p.cur() != token.DEDENT {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		switch p.cur() {
		case token.END:
			return nil, p.errorf(p.curVal().Range, "expected dedent, found end of file")
		case token.UNKNOWN_DEDENT:
			return nil, p.errorf(p.curVal().Range, "mismatched indentation")
		}
		stmt, err := p.parseStmt(ctx)
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
	}
	end := p.curVal()
	p.advance()
	block.End = end.Range.End
	return block, nil
}

func (p *parser) parseStmt(ctx context.Context) (ast.Stmt, error) {
	switch p.cur() {
	case token.PASS:
		pos := p.curVal().Range.Start
		p.advance()
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		stmt := p.arena.NewPassStmt()
		*stmt = ast.PassStmt{Pos: pos}
		return stmt, nil
	case token.BREAK:
		pos := p.curVal().Range.Start
		p.advance()
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		stmt := p.arena.NewBreakStmt()
		*stmt = ast.BreakStmt{Pos: pos}
		return stmt, nil
	case token.RETURN:
		return p.parseReturnStmt()
	case token.DEF:
		return p.parseFunctionStmt(ctx)
	case token.WHILE:
		return p.parseWhileStmt(ctx)
	case token.IF:
		return p.parseIfStmt(ctx)
	case token.IDENT:
		if p.peek() == token.COLON {
			return p.parseDeclareStmt()
		}
		return p.parseSimpleStmt()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *parser) parseIdent() (*ast.IdentExpr, *Error) {
	v := p.curVal()
	if p.cur() != token.IDENT {
		return nil, p.errorf(v.Range, "expected identifier, found %s", p.cur())
	}
	p.advance()
	id := p.arena.NewIdentExpr()
	*id = ast.IdentExpr{Pos: v.Range.Start, Name: v.Name, Lit: v.Raw}
	return id, nil
}

func (p *parser) parseReturnStmt() (ast.Stmt, error) {
	pos := p.curVal().Range.Start
	p.advance()
	var value ast.Expr
	if p.cur() != token.NEWLINE {
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		value = v
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	stmt := p.arena.NewReturnStmt()
	*stmt = ast.ReturnStmt{Pos: pos, Value: value}
	return stmt, nil
}

func (p *parser) parseDeclareStmt() (ast.Stmt, error) {
	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	typeName, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQUAL); err != nil {
		return nil, err
	}
	value, verr := p.parseExpr()
	if verr != nil {
		return nil, verr
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	stmt := p.arena.NewDeclareStmt()
	*stmt = ast.DeclareStmt{Name: name, TypeName: typeName, Value: value}
	return stmt, nil
}

func (p *parser) parseSimpleStmt() (ast.Stmt, error) {
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch p.cur() {
	case token.EQUAL:
		eqRange := p.curVal().Range
		p.advance()
		if !ast.IsAssignable(expr) {
			return nil, p.errorf(eqRange, "assignment can only happen to names or members")
		}
		value, verr := p.parseExpr()
		if verr != nil {
			return nil, verr
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		switch target := expr.(type) {
		case *ast.IdentExpr:
			stmt := p.arena.NewAssignStmt()
			*stmt = ast.AssignStmt{Name: target, Value: value}
			return stmt, nil
		case *ast.DotAccessExpr:
			stmt := p.arena.NewAssignMemberStmt()
			*stmt = ast.AssignMemberStmt{Target: target, Value: value}
			return stmt, nil
		default:
			panic("unreachable: IsAssignable only accepts *IdentExpr and *DotAccessExpr")
		}
	case token.NEWLINE:
		p.advance()
		stmt := p.arena.NewExprStmt()
		*stmt = ast.ExprStmt{Expr: expr}
		return stmt, nil
	default:
		return nil, p.errorf(p.curVal().Range, "statement needs to end in a newline")
	}
}

func (p *parser) parseIfStmt(ctx context.Context) (ast.Stmt, error) {
	var branches []ast.IfBranch

	p.advance() // 'if'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ctx)
	if err != nil {
		return nil, err
	}
	branches = append(branches, ast.IfBranch{Cond: cond, Body: body})

	for p.cur() == token.ELIF {
		p.advance()
		c, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		b, err := p.parseBlock(ctx)
		if err != nil {
			return nil, err
		}
		branches = append(branches, ast.IfBranch{Cond: c, Body: b})
	}

	var elseBlock *ast.Block
	if p.cur() == token.ELSE {
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		b, err := p.parseBlock(ctx)
		if err != nil {
			return nil, err
		}
		elseBlock = b
	}

	stmt := p.arena.NewIfStmt()
	*stmt = ast.IfStmt{Branches: branches, Else: elseBlock}
	return stmt, nil
}

func (p *parser) parseWhileStmt(ctx context.Context) (ast.Stmt, error) {
	start := p.curVal().Range.Start
	p.advance() // 'while'
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ctx)
	if err != nil {
		return nil, err
	}

	var elseBlock *ast.Block
	if p.cur() == token.ELSE {
		p.advance()
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return nil, err
		}
		b, err := p.parseBlock(ctx)
		if err != nil {
			return nil, err
		}
		elseBlock = b
	}

	stmt := p.arena.NewWhileStmt()
	*stmt = ast.WhileStmt{Cond: cond, Body: body, Else: elseBlock, Start: start}
	return stmt, nil
}

func (p *parser) parseFunctionStmt(ctx context.Context) (ast.Stmt, error) {
	start := p.curVal().Range.Start
	p.advance() // 'def'

	name, err := p.parseIdent()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Param
	for p.cur() != token.RPAREN {
		pname, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		ptype, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		params = append(params, ast.Param{Name: pname, Type: ptype})
		if p.cur() == token.COMMA {
			p.advance()
			continue
		}
		break
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	var retType *ast.IdentExpr
	if p.cur() == token.ARROW {
		p.advance()
		rt, err := p.parseIdent()
		if err != nil {
			return nil, err
		}
		retType = rt
	}

	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	body, err := p.parseBlock(ctx)
	if err != nil {
		return nil, err
	}

	stmt := p.arena.NewFunctionStmt()
	*stmt = ast.FunctionStmt{
		Name:       name,
		Params:     params,
		ReturnType: retType,
		Body:       body,
		Start:      start,
		End:        body.End,
	}
	return stmt, nil
}
