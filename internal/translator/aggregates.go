package translator

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

// There is no composite-literal IR expression: struct, array, and tuple
// literals, and the recursive zero-fill of an uninitialized aggregate
// local, all lower to a sequence of per-field/per-element Assign
// statements against the destination place. The helpers below build those
// statement sequences; statements.go calls them for a let's initializer
// and expressions.go calls them to materialize an aggregate literal that
// appears in a plain expression position.

func isAggregateLiteral(e ast.Expr) bool {
	switch e.(type) {
	case *ast.StructLiteral, *ast.ArrayLiteral, *ast.ArrayFillLiteral, *ast.TupleLiteral:
		return true
	default:
		return false
	}
}

func intLit(v int64, span token.Span) ir.Expr {
	return &ir.Value{Base: ir.NewBase(types.Int, ir.RValue, span), Kind: ir.ValLiteral, Literal: ir.Literal{Int: v}}
}

func doubleLit(v float64, span token.Span) ir.Expr {
	return &ir.Value{Base: ir.NewBase(types.Double, ir.RValue, span), Kind: ir.ValLiteral, Literal: ir.Literal{Double: v}}
}

func boolLit(v bool, span token.Span) ir.Expr {
	return &ir.Value{Base: ir.NewBase(types.Boolean, ir.RValue, span), Kind: ir.ValLiteral, Literal: ir.Literal{Bool: v}}
}

func strLit(v string, span token.Span) ir.Expr {
	return &ir.Value{Base: ir.NewBase(types.String, ir.RValue, span), Kind: ir.ValLiteral, Literal: ir.Literal{Str: v}}
}

func (t *Translator) nullPtr(ptrType types.Type, span token.Span) ir.Expr {
	return &ir.Cast{Base: ir.NewBase(ptrType, ir.RValue, span), Kind: ir.IntToPtr, X: intLit(0, span)}
}

func assignStmt(place, value ir.Expr, span token.Span) ir.Stmt {
	return &ir.Expression{X: &ir.Assign{Base: ir.NewBase(place.Type(), ir.RValue, span), Target: place, Value: value}, Span: span}
}

func fieldPlace(place ir.Expr, index int, fieldType types.Type, span token.Span) ir.Expr {
	return &ir.FieldAccess{Base: ir.NewBase(fieldType, ir.LValue, span), X: place, Index: index}
}

// fillDefault recursively zero-fills place, whose static type is typ.
func (t *Translator) fillDefault(place ir.Expr, typ types.Type, span token.Span) []ir.Stmt {
	switch typ.Kind() {
	case types.KindInt:
		return []ir.Stmt{assignStmt(place, intLit(0, span), span)}
	case types.KindDouble:
		return []ir.Stmt{assignStmt(place, doubleLit(0, span), span)}
	case types.KindBoolean:
		return []ir.Stmt{assignStmt(place, boolLit(false, span), span)}
	case types.KindString:
		return []ir.Stmt{assignStmt(place, strLit("", span), span)}
	case types.KindPointer:
		return []ir.Stmt{assignStmt(place, t.nullPtr(typ, span), span)}
	case types.KindArray:
		at := typ.(*types.ArrayType)
		var stmts []ir.Stmt
		for i := int64(0); i < at.Size; i++ {
			stmts = append(stmts, t.fillDefault(fieldPlace(place, int(i), at.Elem, span), at.Elem, span)...)
		}
		return stmts
	case types.KindTuple:
		tt := typ.(*types.TupleType)
		var stmts []ir.Stmt
		for i, et := range tt.Elems {
			stmts = append(stmts, t.fillDefault(fieldPlace(place, i, et, span), et, span)...)
		}
		return stmts
	case types.KindStruct:
		st := typ.(*types.StructType)
		var stmts []ir.Stmt
		for i, f := range st.Fields {
			stmts = append(stmts, t.fillDefault(fieldPlace(place, i, f.Type, span), f.Type, span)...)
		}
		return stmts
	default:
		t.errorf(TypeMismatch, span, "type %s has no default value", typ.String())
		return nil
	}
}

// fillValue lowers one destination place from a single source expression,
// recursing into fillLiteral when the source is itself an aggregate
// literal and otherwise emitting a converted scalar assignment.
func (t *Translator) fillValue(place ir.Expr, src ast.Expr, span token.Span) []ir.Stmt {
	if isAggregateLiteral(src) {
		return t.fillLiteral(place, src, span)
	}
	val := t.translateExprRValue(src)
	val = t.convertTo(val, place.Type(), src.Span(), "initializer")
	return []ir.Stmt{assignStmt(place, val, span)}
}

// fillLiteral lowers an aggregate literal into place, which must already
// have the literal's matching struct/array/tuple type.
func (t *Translator) fillLiteral(place ir.Expr, lit ast.Expr, span token.Span) []ir.Stmt {
	switch e := lit.(type) {
	case *ast.StructLiteral:
		st, ok := place.Type().(*types.StructType)
		if !ok {
			t.errorf(TypeMismatch, e.Span(), "struct literal used where %s is expected", place.Type().String())
			return nil
		}
		var stmts []ir.Stmt
		filled := make([]bool, len(st.Fields))
		for _, sf := range e.Fields {
			idx := st.FieldIndex(sf.Name)
			if idx < 0 {
				t.errorf(UnknownField, e.Span(), "unknown field %q in struct %q", sf.Name, st.Name)
				continue
			}
			filled[idx] = true
			stmts = append(stmts, t.fillValue(fieldPlace(place, idx, st.Fields[idx].Type, span), sf.Value, span)...)
		}
		for i, f := range st.Fields {
			if !filled[i] {
				stmts = append(stmts, t.fillDefault(fieldPlace(place, i, f.Type, span), f.Type, span)...)
			}
		}
		return stmts

	case *ast.ArrayLiteral:
		at, ok := place.Type().(*types.ArrayType)
		if !ok {
			t.errorf(TypeMismatch, e.Span(), "array literal used where %s is expected", place.Type().String())
			return nil
		}
		if int64(len(e.Elems)) != at.Size {
			t.errorf(TypeMismatch, e.Span(), "array literal has %d elements, expected %d", len(e.Elems), at.Size)
		}
		var stmts []ir.Stmt
		for i, el := range e.Elems {
			if int64(i) >= at.Size {
				break
			}
			stmts = append(stmts, t.fillValue(fieldPlace(place, i, at.Elem, span), el, span)...)
		}
		return stmts

	case *ast.ArrayFillLiteral:
		at, ok := place.Type().(*types.ArrayType)
		if !ok {
			t.errorf(TypeMismatch, e.Span(), "array fill literal used where %s is expected", place.Type().String())
			return nil
		}
		count, okCount := t.evalConstIntSize(e.Count)
		if !okCount || count != at.Size {
			t.errorf(TypeMismatch, e.Span(), "array fill count does not match declared size %d", at.Size)
		}
		preStmts, source := t.materializeOnce(e.Value, at.Elem)
		var stmts []ir.Stmt
		stmts = append(stmts, preStmts...)
		for i := int64(0); i < at.Size; i++ {
			stmts = append(stmts, assignStmt(fieldPlace(place, int(i), at.Elem, span), source, span))
		}
		return stmts

	case *ast.TupleLiteral:
		tt, ok := place.Type().(*types.TupleType)
		if !ok {
			t.errorf(TypeMismatch, e.Span(), "tuple literal used where %s is expected", place.Type().String())
			return nil
		}
		if len(e.Elems) != len(tt.Elems) {
			t.errorf(TypeMismatch, e.Span(), "tuple literal has %d elements, expected %d", len(e.Elems), len(tt.Elems))
		}
		var stmts []ir.Stmt
		for i, el := range e.Elems {
			if i >= len(tt.Elems) {
				break
			}
			stmts = append(stmts, t.fillValue(fieldPlace(place, i, tt.Elems[i], span), el, span)...)
		}
		return stmts

	default:
		return t.fillValue(place, lit, span)
	}
}

// materializeOnce translates value exactly once into a fresh hidden
// local, returning the statements that compute it and a reusable RValue
// reading it back — used by ArrayFillLiteral so a side-effecting fill
// expression runs a single time yet can be copied into every slot (see
// DESIGN.md's Open Question decision: a fill expression is evaluated
// once).
func (t *Translator) materializeOnce(value ast.Expr, elemType types.Type) ([]ir.Stmt, ir.Expr) {
	id := t.newLocal("$fill", elemType)
	place := &ir.Value{Base: ir.NewBase(elemType, ir.LValue, value.Span()), Kind: ir.ValLocal, Local: id}
	stmts := t.fillValue(place, value, value.Span())
	return stmts, &ir.LValueToRValue{Base: ir.NewBase(elemType, ir.RValue, value.Span()), X: place}
}

// materializeAggregate lowers an aggregate literal that appears in a
// plain expression position (a call argument, a return value, the RHS of
// a field assignment) into a BlockExpr: a hidden local is filled field by
// field, then read back as the block's trailing value.
func (t *Translator) materializeAggregate(lit ast.Expr, typ types.Type) ir.Expr {
	id := t.newLocal("$tmp", typ)
	place := &ir.Value{Base: ir.NewBase(typ, ir.LValue, lit.Span()), Kind: ir.ValLocal, Local: id}
	stmts := t.fillLiteral(place, lit, lit.Span())
	load := &ir.LValueToRValue{Base: ir.NewBase(typ, ir.RValue, lit.Span()), X: place}
	return &ir.BlockExpr{Base: ir.NewBase(typ, ir.RValue, lit.Span()), Stmts: stmts, Value: load}
}
