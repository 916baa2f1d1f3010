package parser

import (
	"toyc/lang/ast"
	"toyc/lang/token"
)

// parseExpr parses the additive level: left-associative '+'/'-' chains over
// unary-postfix operands. This is the lowest (loosest-binding) precedence
// this grammar has.
func (p *parser) parseExpr() (ast.Expr, error) {
	left, err := p.parseUnaryPostfix()
	if err != nil {
		return nil, err
	}
	for p.cur() == token.PLUS || p.cur() == token.DASH {
		op := p.cur()
		opPos := p.curVal().Range.Start
		p.advance()
		right, err := p.parseUnaryPostfix()
		if err != nil {
			return nil, err
		}
		if op == token.PLUS {
			e := p.arena.NewAddExpr()
			*e = ast.AddExpr{Left: left, Op: opPos, Right: right}
			left = e
		} else {
			e := p.arena.NewMinusExpr()
			*e = ast.MinusExpr{Left: left, Op: opPos, Right: right}
			left = e
		}
	}
	return left, nil
}

// parseUnaryPostfix parses an atom followed by any number of postfix
// operators: `(args)` (call) and `.member` (dot access), left to right.
func (p *parser) parseUnaryPostfix() (ast.Expr, error) {
	expr, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.cur() {
		case token.LPAREN:
			lparen := p.curVal().Range.Start
			p.advance()
			args, err := p.parseExprList(token.RPAREN)
			if err != nil {
				return nil, err
			}
			rparen, err := p.expect(token.RPAREN)
			if err != nil {
				return nil, err
			}
			call := p.arena.NewCallExpr()
			*call = ast.CallExpr{Callee: expr, Lparen: lparen, Args: args, Rparen: rparen.Range.Start}
			expr = call
		case token.DOT:
			dotPos := p.curVal().Range.Start
			p.advance()
			member, merr := p.parseIdent()
			if merr != nil {
				return nil, merr
			}
			dot := p.arena.NewDotAccessExpr()
			*dot = ast.DotAccessExpr{Parent: expr, Dot: dotPos, Member: member}
			expr = dot
		default:
			return expr, nil
		}
	}
}

// parseExprList parses a comma-separated list of expressions, stopping
// before terminator (which the caller consumes). A trailing comma just
// before terminator is permitted.
func (p *parser) parseExprList(terminator token.Token) ([]ast.Expr, error) {
	if p.cur() == terminator {
		return nil, nil
	}
	var list []ast.Expr
	for {
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		list = append(list, e)
		if p.cur() != token.COMMA {
			break
		}
		p.advance()
		if p.cur() == terminator {
			break
		}
	}
	return list, nil
}

func (p *parser) parseAtom() (ast.Expr, error) {
	v := p.curVal()
	switch p.cur() {
	case token.NONE:
		p.advance()
		e := p.arena.NewNoneExpr()
		*e = ast.NoneExpr{Pos: v.Range.Start}
		return e, nil
	case token.TRUE:
		p.advance()
		e := p.arena.NewTrueExpr()
		*e = ast.TrueExpr{Pos: v.Range.Start}
		return e, nil
	case token.FALSE:
		p.advance()
		e := p.arena.NewFalseExpr()
		*e = ast.FalseExpr{Pos: v.Range.Start}
		return e, nil
	case token.INTEGER:
		p.advance()
		e := p.arena.NewIntExpr()
		*e = ast.IntExpr{Pos: v.Range.Start, Raw: v.Raw, Value: uint64(v.Int)}
		return e, nil
	case token.FLOAT:
		p.advance()
		e := p.arena.NewFloatExpr()
		*e = ast.FloatExpr{Pos: v.Range.Start, Raw: v.Raw, Value: v.Float}
		return e, nil
	case token.IDENT:
		p.advance()
		e := p.arena.NewIdentExpr()
		*e = ast.IdentExpr{Pos: v.Range.Start, Name: v.Name, Lit: v.Raw}
		return e, nil
	case token.LPAREN:
		return p.parseParenOrTuple()
	default:
		return nil, p.errorf(v.Range, "expected expression, found %s", p.cur())
	}
}

// parseParenOrTuple parses the `(` that starts either a parenthesized
// expression, an empty tuple `()`, or a comma-separated tuple with two or
// more elements. A single element without a trailing comma unwraps to that
// element rather than becoming a one-element Tup.
func (p *parser) parseParenOrTuple() (ast.Expr, error) {
	lparen := p.curVal().Range.Start
	p.advance()

	if p.cur() == token.RPAREN {
		rparen := p.curVal().Range.Start
		p.advance()
		e := p.arena.NewTupExpr()
		*e = ast.TupExpr{Lparen: lparen, Rparen: rparen}
		return e, nil
	}

	first, err := p.parseExpr()
	if err != nil {
		return nil, err
	}

	if p.cur() != token.COMMA {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}

	values := []ast.Expr{first}
	for p.cur() == token.COMMA {
		p.advance()
		if p.cur() == token.RPAREN {
			break
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		values = append(values, e)
	}
	rparen, rerr := p.expect(token.RPAREN)
	if rerr != nil {
		return nil, rerr
	}
	e := p.arena.NewTupExpr()
	*e = ast.TupExpr{Lparen: lparen, Values: values, Rparen: rparen.Range.Start}
	return e, nil
}
