package ast

import "github.com/coreaot/coreaot/pkg/token"

// FieldDecl is one `name: type` struct field.
type FieldDecl struct {
	Name string
	Type TypeExpr
	Sp   token.Span
}

func (f *FieldDecl) Span() token.Span { return f.Sp }

// StructDecl declares a struct type and its ordered fields.
type StructDecl struct {
	Name   string
	Fields []*FieldDecl
	Sp     token.Span
}

func (d *StructDecl) Span() token.Span { return d.Sp }
func (*StructDecl) declNode()          {}

// ExternFuncDecl declares an external function: parameter types only,
// optionally variadic.
type ExternFuncDecl struct {
	Name     string
	Params   []TypeExpr
	Variadic bool
	Return   TypeExpr
	Sp       token.Span
}

func (d *ExternFuncDecl) Span() token.Span { return d.Sp }
func (*ExternFuncDecl) declNode()          {}

// Param is one `name: type` function parameter.
type Param struct {
	Name string
	Type TypeExpr
	Sp   token.Span
}

func (p *Param) Span() token.Span { return p.Sp }

// FuncDecl declares a function with a body.
type FuncDecl struct {
	Name   string
	Params []*Param
	Return TypeExpr
	Body   *BlockStmt
	Sp     token.Span
}

func (d *FuncDecl) Span() token.Span { return d.Sp }
func (*FuncDecl) declNode()          {}
