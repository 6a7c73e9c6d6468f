package ast

import "github.com/coreaot/coreaot/pkg/token"

// Ident is a bare identifier reference.
type Ident struct {
	Name string
	Sp   token.Span
}

func (e *Ident) Span() token.Span { return e.Sp }
func (*Ident) exprNode()          {}

// IntLiteral is a decimal integer literal, kept as text until the IR
// translator parses it to the front-end's 64-bit Int representation.
type IntLiteral struct {
	Text string
	Sp   token.Span
}

func (e *IntLiteral) Span() token.Span { return e.Sp }
func (*IntLiteral) exprNode()          {}

// FloatLiteral is a double literal, kept as text until translation.
type FloatLiteral struct {
	Text string
	Sp   token.Span
}

func (e *FloatLiteral) Span() token.Span { return e.Sp }
func (*FloatLiteral) exprNode()          {}

// StringLiteral is a decoded "…" string literal.
type StringLiteral struct {
	Value string
	Sp    token.Span
}

func (e *StringLiteral) Span() token.Span { return e.Sp }
func (*StringLiteral) exprNode()          {}

// BoolLiteral is `true` or `false`.
type BoolLiteral struct {
	Value bool
	Sp    token.Span
}

func (e *BoolLiteral) Span() token.Span { return e.Sp }
func (*BoolLiteral) exprNode()          {}

// NullptrLiteral is the `nullptr` literal.
type NullptrLiteral struct{ Sp token.Span }

func (e *NullptrLiteral) Span() token.Span { return e.Sp }
func (*NullptrLiteral) exprNode()          {}

// BinOp enumerates the source-level binary operators; the IR translator
// selects a monomorphic IR operator from one of these per its
// operand-type table.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpAnd // &&, short-circuit
	OpOr  // ||, short-circuit
)

// BinaryExpr is a binary operator application.
type BinaryExpr struct {
	Op   BinOp
	X, Y Expr
	Sp   token.Span
}

func (e *BinaryExpr) Span() token.Span { return e.Sp }
func (*BinaryExpr) exprNode()          {}

// UnaryOp enumerates the source-level prefix unary operators.
type UnaryOp int

const (
	OpNeg    UnaryOp = iota // -x
	OpNot                   // !x
	OpAddr                  // &x
	OpDeref                 // *x
	OpPreInc                // ++x
	OpPreDec                // --x
)

// UnaryExpr is a prefix unary operator application.
type UnaryExpr struct {
	Op UnaryOp
	X  Expr
	Sp token.Span
}

func (e *UnaryExpr) Span() token.Span { return e.Sp }
func (*UnaryExpr) exprNode()          {}

// PostfixOp enumerates the postfix mutation operators.
type PostfixOp int

const (
	OpPostInc PostfixOp = iota // x++
	OpPostDec                  // x--
)

// PostfixExpr is a postfix mutation: `x++` or `x--`.
type PostfixExpr struct {
	Op PostfixOp
	X  Expr
	Sp token.Span
}

func (e *PostfixExpr) Span() token.Span { return e.Sp }
func (*PostfixExpr) exprNode()          {}

// AssignExpr is `target = value`; assignment is an expression, yielding
// the just-written value.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Sp     token.Span
}

func (e *AssignExpr) Span() token.Span { return e.Sp }
func (*AssignExpr) exprNode()          {}

// IndexExpr is `x[index]`.
type IndexExpr struct {
	X     Expr
	Index Expr
	Sp    token.Span
}

func (e *IndexExpr) Span() token.Span { return e.Sp }
func (*IndexExpr) exprNode()          {}

// FieldExpr is `x.name`, a struct or tuple field access. Tuple fields are
// written `x.0`, `x.1`, …; Name holds the literal text either way and the
// IR translator resolves it to an index.
type FieldExpr struct {
	X    Expr
	Name string
	Sp   token.Span
}

func (e *FieldExpr) Span() token.Span { return e.Sp }
func (*FieldExpr) exprNode()          {}

// CallExpr is `callee(args…)`.
type CallExpr struct {
	Callee Expr
	Args   []Expr
	Sp     token.Span
}

func (e *CallExpr) Span() token.Span { return e.Sp }
func (*CallExpr) exprNode()          {}

// CastExpr is `x as T`.
type CastExpr struct {
	X    Expr
	Type TypeExpr
	Sp   token.Span
}

func (e *CastExpr) Span() token.Span { return e.Sp }
func (*CastExpr) exprNode()          {}

// StructLiteralField is one `name: value` in a struct literal.
type StructLiteralField struct {
	Name  string
	Value Expr
}

// StructLiteral is `Name { field: value, … }`.
type StructLiteral struct {
	TypeName string
	Fields   []StructLiteralField
	Sp       token.Span
}

func (e *StructLiteral) Span() token.Span { return e.Sp }
func (*StructLiteral) exprNode()          {}

// ArrayLiteral is `[e1, e2, …]`.
type ArrayLiteral struct {
	Elems []Expr
	Sp    token.Span
}

func (e *ArrayLiteral) Span() token.Span { return e.Sp }
func (*ArrayLiteral) exprNode()          {}

// ArrayFillLiteral is `[value; count]`; value is evaluated once and
// copied into all `count` slots (see DESIGN.md's Open Question
// decision).
type ArrayFillLiteral struct {
	Value Expr
	Count Expr
	Sp    token.Span
}

func (e *ArrayFillLiteral) Span() token.Span { return e.Sp }
func (*ArrayFillLiteral) exprNode()          {}

// TupleLiteral is `(e1, e2, …)`.
type TupleLiteral struct {
	Elems []Expr
	Sp    token.Span
}

func (e *TupleLiteral) Span() token.Span { return e.Sp }
func (*TupleLiteral) exprNode()          {}
