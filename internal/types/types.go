// Package types implements the language's interned type values: type
// equality and hashing reduce to Go pointer identity because every
// compound type is constructed once per shape by a TypeContext and
// cached for reuse, turning a runtime type-registry pattern into a pure,
// immutable interned value type.
package types

import (
	"fmt"
	"strings"
)

// Kind discriminates the variants of Type.
type Kind int

const (
	KindVoid Kind = iota
	KindInt
	KindDouble
	KindBoolean
	KindString
	KindPointer
	KindArray
	KindTuple
	KindStruct
	KindFunctionPtr
	KindLValue
	KindIncomplete
)

// Type is an interned type value. Two Types are the same type if and only
// if the Go values are ==, since TypeContext never constructs the same
// shape twice.
type Type interface {
	Kind() Kind
	String() string
}

type voidType struct{}
type intType struct{}
type doubleType struct{}
type booleanType struct{}
type stringType struct{}

func (voidType) Kind() Kind    { return KindVoid }
func (voidType) String() string { return "void" }

func (intType) Kind() Kind    { return KindInt }
func (intType) String() string { return "int" }

func (doubleType) Kind() Kind    { return KindDouble }
func (doubleType) String() string { return "double" }

func (booleanType) Kind() Kind    { return KindBoolean }
func (booleanType) String() string { return "boolean" }

func (stringType) Kind() Kind    { return KindString }
func (stringType) String() string { return "string" }

// Singleton primitive types. Primitives have no fields, so a single shared
// instance per primitive is always correct — no context lookup needed.
var (
	Void    Type = voidType{}
	Int     Type = intType{}
	Double  Type = doubleType{}
	Boolean Type = booleanType{}
	String  Type = stringType{}
)

// PointerType is `Pointer(T)`.
type PointerType struct{ Elem Type }

func (t *PointerType) Kind() Kind     { return KindPointer }
func (t *PointerType) String() string { return "*" + t.Elem.String() }

// ArrayType is `Array(T, N)` with compile-time N.
type ArrayType struct {
	Elem Type
	Size int64
}

func (t *ArrayType) Kind() Kind { return KindArray }
func (t *ArrayType) String() string {
	return fmt.Sprintf("[%d]%s", t.Size, t.Elem.String())
}

// TupleType is `Tuple(T1, …, Tn)`.
type TupleType struct{ Elems []Type }

func (t *TupleType) Kind() Kind { return KindTuple }
func (t *TupleType) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// StructField is one ordered field of a StructType.
type StructField struct {
	Name string
	Type Type
}

// StructType is `Struct(name, fields: ordered [name→T])`. Struct identity
// is by name: two StructType values with the same Name are the same type,
// which is how TypeContext interns them: struct declaration is resolved
// once, in a pre-pass.
type StructType struct {
	Name   string
	Fields []StructField
}

func (t *StructType) Kind() Kind     { return KindStruct }
func (t *StructType) String() string { return "struct " + t.Name }

// FieldIndex returns the index of field name within the struct, or -1.
func (t *StructType) FieldIndex(name string) int {
	for i, f := range t.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

// FunctionPtrType is `FunctionPtr(sig)`.
type FunctionPtrType struct {
	Params []Type
	Return Type
}

func (t *FunctionPtrType) Kind() Kind { return KindFunctionPtr }
func (t *FunctionPtrType) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return "fn(" + strings.Join(parts, ", ") + "): " + t.Return.String()
}

// LValueType is the synthetic `LValue(T, mutable?)` sentinel, built only
// by TypeContext.LValue. The IR translator does not construct it: it tags
// expressions with a Category alongside their real Type instead (see
// DESIGN.md's Open Question decision).
type LValueType struct {
	Elem    Type
	Mutable bool
}

func (t *LValueType) Kind() Kind { return KindLValue }
func (t *LValueType) String() string {
	if t.Mutable {
		return "lvalue<mut " + t.Elem.String() + ">"
	}
	return "lvalue<" + t.Elem.String() + ">"
}

// IncompleteType is the sentinel for a type that could not be resolved: an
// unknown type name, or the placeholder type of an expression or
// declaration that failed to translate. Structs declared in the program
// pre-pass are *StructType values from the start (see
// TypeContext.DeclareIncomplete), not IncompleteType.
type IncompleteType struct{ Name string }

func (t *IncompleteType) Kind() Kind     { return KindIncomplete }
func (t *IncompleteType) String() string { return "incomplete " + t.Name }

// IsScalar reports whether t is one of Int, Double, Boolean.
func IsScalar(t Type) bool {
	switch t.Kind() {
	case KindInt, KindDouble, KindBoolean:
		return true
	default:
		return false
	}
}
