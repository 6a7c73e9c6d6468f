package ast

import "github.com/coreaot/coreaot/pkg/token"

// TypeExpr is a structurally parsed type, resolved against the type
// table later by the IR translator.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is a bare type name: int, double, boolean, string, void, or a
// struct name.
type NamedType struct {
	Name string
	Sp   token.Span
}

func (t *NamedType) Span() token.Span { return t.Sp }
func (*NamedType) typeExprNode()      {}

// PointerType is `*T`.
type PointerType struct {
	Elem TypeExpr
	Sp   token.Span
}

func (t *PointerType) Span() token.Span { return t.Sp }
func (*PointerType) typeExprNode()      {}

// ArrayType is `[N]T`, N a compile-time integer literal expression.
type ArrayType struct {
	Size Expr
	Elem TypeExpr
	Sp   token.Span
}

func (t *ArrayType) Span() token.Span { return t.Sp }
func (*ArrayType) typeExprNode()      {}

// TupleType is `(T1, T2, …)`.
type TupleType struct {
	Elems []TypeExpr
	Sp    token.Span
}

func (t *TupleType) Span() token.Span { return t.Sp }
func (*TupleType) typeExprNode()      {}

// FunctionPtrType is the function-pointer type form: `fn(T1, T2): R`.
type FunctionPtrType struct {
	Params []TypeExpr
	Return TypeExpr
	Sp     token.Span
}

func (t *FunctionPtrType) Span() token.Span { return t.Sp }
func (*FunctionPtrType) typeExprNode()      {}
