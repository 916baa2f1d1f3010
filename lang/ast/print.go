package ast

import (
	"fmt"
	"io"
	gotoken "go/token"
)

// Printer dumps a parsed Chunk as an indented S-expression-like tree, one
// node per line, for the CLI's `parse` debug command. It is deliberately
// small (no comment interleaving, no configurable node formatting): this
// grammar has few node kinds, and the debug command only needs enough
// detail to see the parse took the shape the source implies.
type Printer struct {
	Output io.Writer
	Fset   *gotoken.FileSet
}

func (p *Printer) Print(chunk *Chunk) {
	fmt.Fprintf(p.Output, "chunk %s\n", chunk.Name)
	p.printBlock(chunk.Block, 1)
}

func (p *Printer) pos(at gotoken.Pos) string {
	if p.Fset == nil {
		return fmt.Sprintf("%d", at)
	}
	pos := p.Fset.Position(at)
	return fmt.Sprintf("%d:%d", pos.Line, pos.Column)
}

func (p *Printer) indent(depth int) {
	for i := 0; i < depth; i++ {
		fmt.Fprint(p.Output, "  ")
	}
}

func (p *Printer) printBlock(b *Block, depth int) {
	for _, s := range b.Stmts {
		p.printStmt(s, depth)
	}
}

func (p *Printer) printStmt(s Stmt, depth int) {
	p.indent(depth)
	switch s := s.(type) {
	case *PassStmt:
		fmt.Fprintf(p.Output, "pass @%s\n", p.pos(s.Pos))

	case *ExprStmt:
		fmt.Fprintln(p.Output, "expr-stmt")
		p.printExpr(s.Expr, depth+1)

	case *DeclareStmt:
		fmt.Fprintf(p.Output, "declare %s: %s\n", s.Name.Lit, s.TypeName.Lit)
		p.printExpr(s.Value, depth+1)

	case *AssignStmt:
		fmt.Fprintf(p.Output, "assign %s\n", s.Name.Lit)
		p.printExpr(s.Value, depth+1)

	case *AssignMemberStmt:
		fmt.Fprintln(p.Output, "assign-member")
		p.printExpr(s.Target, depth+1)
		p.printExpr(s.Value, depth+1)

	case *IfStmt:
		fmt.Fprintln(p.Output, "if")
		for _, br := range s.Branches {
			p.indent(depth + 1)
			fmt.Fprintln(p.Output, "branch")
			p.printExpr(br.Cond, depth+2)
			p.printBlock(br.Body, depth+2)
		}
		if s.Else != nil {
			p.indent(depth + 1)
			fmt.Fprintln(p.Output, "else")
			p.printBlock(s.Else, depth+2)
		}

	case *WhileStmt:
		fmt.Fprintf(p.Output, "while @%s\n", p.pos(s.Start))
		p.printExpr(s.Cond, depth+1)
		p.printBlock(s.Body, depth+1)
		if s.Else != nil {
			p.indent(depth)
			fmt.Fprintln(p.Output, "else")
			p.printBlock(s.Else, depth+1)
		}

	case *BreakStmt:
		fmt.Fprintf(p.Output, "break @%s\n", p.pos(s.Pos))

	case *ReturnStmt:
		fmt.Fprintf(p.Output, "return @%s\n", p.pos(s.Pos))
		if s.Value != nil {
			p.printExpr(s.Value, depth+1)
		}

	case *FunctionStmt:
		fmt.Fprintf(p.Output, "def %s(", s.Name.Lit)
		for i, param := range s.Params {
			if i > 0 {
				fmt.Fprint(p.Output, ", ")
			}
			fmt.Fprintf(p.Output, "%s: %s", param.Name.Lit, param.Type.Lit)
		}
		fmt.Fprint(p.Output, ")")
		if s.ReturnType != nil {
			fmt.Fprintf(p.Output, " -> %s", s.ReturnType.Lit)
		}
		fmt.Fprintln(p.Output)
		p.printBlock(s.Body, depth+1)

	default:
		fmt.Fprintf(p.Output, "<unknown stmt %T>\n", s)
	}
}

func (p *Printer) printExpr(e Expr, depth int) {
	p.indent(depth)
	switch e := e.(type) {
	case *NoneExpr:
		fmt.Fprintln(p.Output, "None")
	case *TrueExpr:
		fmt.Fprintln(p.Output, "True")
	case *FalseExpr:
		fmt.Fprintln(p.Output, "False")
	case *IntExpr:
		fmt.Fprintf(p.Output, "int %s\n", e.Raw)
	case *FloatExpr:
		fmt.Fprintf(p.Output, "float %s\n", e.Raw)
	case *IdentExpr:
		fmt.Fprintf(p.Output, "ident %s\n", e.Lit)
	case *AddExpr:
		fmt.Fprintln(p.Output, "+")
		p.printExpr(e.Left, depth+1)
		p.printExpr(e.Right, depth+1)
	case *MinusExpr:
		fmt.Fprintln(p.Output, "-")
		p.printExpr(e.Left, depth+1)
		p.printExpr(e.Right, depth+1)
	case *CallExpr:
		fmt.Fprintln(p.Output, "call")
		p.printExpr(e.Callee, depth+1)
		for _, a := range e.Args {
			p.printExpr(a, depth+1)
		}
	case *DotAccessExpr:
		fmt.Fprintln(p.Output, "dot-access")
		p.printExpr(e.Parent, depth+1)
		p.indent(depth + 1)
		fmt.Fprintf(p.Output, "member %s\n", e.Member.Lit)
	case *TupExpr:
		fmt.Fprintln(p.Output, "tuple")
		for _, v := range e.Values {
			p.printExpr(v, depth+1)
		}
	default:
		fmt.Fprintf(p.Output, "<unknown expr %T>\n", e)
	}
}
