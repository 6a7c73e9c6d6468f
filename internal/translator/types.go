package translator

import (
	"strconv"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/types"
)

// primitiveTypes maps the reserved type names to their singleton Type.
var primitiveTypes = map[string]types.Type{
	"void":    types.Void,
	"int":     types.Int,
	"double":  types.Double,
	"boolean": types.Boolean,
	"string":  types.String,
}

// resolveType turns a structurally parsed TypeExpr into an interned
// Type: types are parsed structurally and resolved later. An
// unresolvable struct name resolves to *types.IncompleteType{Name}; callers
// report their own UnknownType diagnostic, since the right message differs
// by context (a field, a parameter, a return type, a local).
func (t *Translator) resolveType(te ast.TypeExpr) types.Type {
	switch e := te.(type) {
	case *ast.NamedType:
		if p, ok := primitiveTypes[e.Name]; ok {
			return p
		}
		if st := t.typeCtx.LookupStruct(e.Name); st != nil {
			return st
		}
		return &types.IncompleteType{Name: e.Name}

	case *ast.PointerType:
		return t.typeCtx.Pointer(t.resolveType(e.Elem))

	case *ast.ArrayType:
		elem := t.resolveType(e.Elem)
		size, ok := t.evalConstIntSize(e.Size)
		if !ok {
			t.errorf(TypeMismatch, e.Size.Span(), "array size must be a non-negative constant integer")
			size = 0
		}
		return t.typeCtx.Array(elem, size)

	case *ast.TupleType:
		elems := make([]types.Type, len(e.Elems))
		for i, el := range e.Elems {
			elems[i] = t.resolveType(el)
		}
		return t.typeCtx.Tuple(elems)

	case *ast.FunctionPtrType:
		params := make([]types.Type, len(e.Params))
		for i, p := range e.Params {
			params[i] = t.resolveType(p)
		}
		return t.typeCtx.FunctionPtr(params, t.resolveType(e.Return))

	default:
		return &types.IncompleteType{Name: "?"}
	}
}

// evalConstIntSize folds the narrow class of compile-time integer
// expressions an array size may be: a bare non-negative integer literal. A
// negated literal is recognised but always rejected.
// Nothing in this language supports named constants yet, so this is
// deliberately small rather than a general constant-folder.
func (t *Translator) evalConstIntSize(e ast.Expr) (int64, bool) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		v, err := strconv.ParseInt(n.Text, 10, 64)
		if err != nil || v < 0 {
			return 0, false
		}
		return v, true
	case *ast.UnaryExpr:
		if n.Op != ast.OpNeg {
			return 0, false
		}
		if lit, ok := n.X.(*ast.IntLiteral); ok {
			v, err := strconv.ParseInt(lit.Text, 10, 64)
			if err != nil {
				return 0, false
			}
			return -v, false // negative sizes are never valid
		}
		return 0, false
	default:
		return 0, false
	}
}
