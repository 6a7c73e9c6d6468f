// Package ir defines the typed intermediate representation produced by
// internal/translator and consumed by internal/backend: a Program of
// Functions and ExternFunctions over Statements and Expressions where
// every expression carries both its Type and its Category (place or
// value).
//
// Unlike internal/ast, this tree has no direct analogue in DWScript's own
// interpreter, which walks its AST (or a flat bytecode) directly rather
// than lowering to a typed SSA-adjacent IR — so the node shapes below are
// original, sized to exactly the operators this language's surface and
// semantics enumerate.
package ir

import (
	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

// Category distinguishes a place (l-value, designates storage) from a
// value (r-value, yields a datum) — an alternative to a synthetic
// LValue type, carried alongside Type on every Expr.
type Category int

const (
	RValue Category = iota
	LValue
)

func (c Category) String() string {
	if c == LValue {
		return "lvalue"
	}
	return "rvalue"
}

// Program is the root of the IR: every Function and ExternFunction
// declared by the source program, in declaration order.
type Program struct {
	Functions       []*Function
	ExternFunctions []*ExternFunction
}

// Param is one function parameter: its hoisted local identifier and type.
type Param struct {
	ID   intern.Id
	Type types.Type
}

// LocalDecl is one hoisted local variable declaration: every `let`
// encountered anywhere in a function body
// is flattened into its enclosing function's LocalDecls with a fresh ID,
// in the order first encountered.
type LocalDecl struct {
	ID   intern.Id
	Type types.Type
}

// Function is a defined, source-bodied function.
type Function struct {
	Name       string
	Return     types.Type
	Params     []Param
	LocalDecls []LocalDecl
	Body       *Block
	Span       token.Span
}

// ExternFunction is a declared-only, externally-linked function.
type ExternFunction struct {
	Name     string
	Return   types.Type
	Params   []types.Type
	Variadic bool
	Span     token.Span
}
