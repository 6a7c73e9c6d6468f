package ast

import "github.com/coreaot/coreaot/pkg/token"

// Node is implemented by every AST node.
type Node interface {
	Span() token.Span
}

// Decl is a top-level declaration: Struct, ExternFunction, or Function.
type Decl interface {
	Node
	declNode()
}

// Stmt is a statement inside a function body.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of the AST: an ordered list of top-level Decls.
type Program struct {
	Decls []Decl
}

// Span returns the span covering the whole program, or a zero Span if empty.
func (p *Program) Span() token.Span {
	if len(p.Decls) == 0 {
		return token.Span{}
	}
	return token.Span{Start: p.Decls[0].Span().Start, End: p.Decls[len(p.Decls)-1].Span().End}
}
