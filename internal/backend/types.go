package backend

import (
	ctypes "github.com/coreaot/coreaot/internal/types"

	"github.com/llir/llvm/ir/types"
)

// typeOf lowers an internal/types.Type to its LLVM representation,
// memoized so that two internal/ir nodes sharing one interned Type (e.g.
// two reads of the same struct-typed local) resolve to one identical LLVM
// type object, not two structurally-equal-but-distinct ones.
//
// Int is always 64-bit (see DESIGN.md "Integer width": a 32-/64-bit
// discrepancy otherwise open to interpretation is avoided by never
// lowering Int to i32). Boolean is i1. String is an i8 pointer (a
// C-style byte buffer; the string type carries no length/capacity of its
// own).
func (e *Emitter) typeOf(t ctypes.Type) types.Type {
	if lt, ok := e.typeCache[t]; ok {
		return lt
	}

	switch t.Kind() {
	case ctypes.KindStruct:
		return e.structType(t.(*ctypes.StructType))

	case ctypes.KindVoid:
		e.typeCache[t] = types.Void
		return types.Void
	case ctypes.KindInt:
		lt := types.I64
		e.typeCache[t] = lt
		return lt
	case ctypes.KindDouble:
		lt := types.Double
		e.typeCache[t] = lt
		return lt
	case ctypes.KindBoolean:
		lt := types.I1
		e.typeCache[t] = lt
		return lt
	case ctypes.KindString:
		lt := types.NewPointer(types.I8)
		e.typeCache[t] = lt
		return lt
	case ctypes.KindPointer:
		pt := t.(*ctypes.PointerType)
		lt := types.NewPointer(e.typeOf(pt.Elem))
		e.typeCache[t] = lt
		return lt
	case ctypes.KindArray:
		at := t.(*ctypes.ArrayType)
		lt := types.NewArray(uint64(at.Size), e.typeOf(at.Elem))
		e.typeCache[t] = lt
		return lt
	case ctypes.KindTuple:
		tt := t.(*ctypes.TupleType)
		fields := make([]types.Type, len(tt.Elems))
		for i, el := range tt.Elems {
			fields[i] = e.typeOf(el)
		}
		lt := types.NewStruct(fields...)
		e.typeCache[t] = lt
		return lt
	case ctypes.KindFunctionPtr:
		ft := t.(*ctypes.FunctionPtrType)
		params := make([]types.Type, len(ft.Params))
		for i, p := range ft.Params {
			params[i] = e.typeOf(p)
		}
		sig := types.NewFunc(e.typeOf(ft.Return), params...)
		lt := types.NewPointer(sig)
		e.typeCache[t] = lt
		return lt
	default:
		panic("backend: no LLVM representation for type " + t.String())
	}
}

// structType lowers a struct type, registering it in the cache before
// recursing into its fields so a self-referential field (always behind a
// pointer — a value-type recursion check rejects anything else, see
// DESIGN.md "Struct forward-reference identity") finds the same,
// still-being-built LLVM struct rather than looping forever.
func (e *Emitter) structType(st *ctypes.StructType) types.Type {
	if lt, ok := e.typeCache[st]; ok {
		return lt
	}
	lt := &types.StructType{TypeName: st.Name}
	e.typeCache[st] = lt
	e.module.NewTypeDef(st.Name, lt)

	fields := make([]types.Type, len(st.Fields))
	for i, f := range st.Fields {
		fields[i] = e.typeOf(f.Type)
	}
	lt.Fields = fields
	return lt
}
