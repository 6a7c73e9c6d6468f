package types

import "testing"

func TestPointerInterning(t *testing.T) {
	ctx := NewContext()
	p1 := ctx.Pointer(Int)
	p2 := ctx.Pointer(Int)
	if p1 != p2 {
		t.Fatalf("expected identical Pointer(Int) instances, got %p and %p", p1, p2)
	}
	p3 := ctx.Pointer(Double)
	if Type(p1) == Type(p3) {
		t.Fatalf("Pointer(Int) and Pointer(Double) must differ")
	}
}

func TestArrayInterning(t *testing.T) {
	ctx := NewContext()
	a1 := ctx.Array(Int, 3)
	a2 := ctx.Array(Int, 3)
	if a1 != a2 {
		t.Fatalf("expected identical Array(Int,3) instances")
	}
	a3 := ctx.Array(Int, 4)
	if Type(a1) == Type(a3) {
		t.Fatalf("Array(Int,3) and Array(Int,4) must differ")
	}
}

func TestStructPrePassIncompleteThenPopulate(t *testing.T) {
	ctx := NewContext()
	ctx.DeclareIncomplete("Point")
	if !ctx.IsDeclared("Point") || ctx.IsComplete("Point") {
		t.Fatalf("expected Point declared but incomplete")
	}
	st := ctx.PopulateStruct("Point", []StructField{{Name: "x", Type: Int}, {Name: "y", Type: Int}})
	if !ctx.IsComplete("Point") {
		t.Fatalf("expected Point complete after PopulateStruct")
	}
	if st.FieldIndex("y") != 1 {
		t.Fatalf("expected y at index 1, got %d", st.FieldIndex("y"))
	}
	if st.FieldIndex("z") != -1 {
		t.Fatalf("expected missing field to return -1")
	}
}

func TestTupleAndFunctionPtrInterning(t *testing.T) {
	ctx := NewContext()
	t1 := ctx.Tuple([]Type{Int, Double})
	t2 := ctx.Tuple([]Type{Int, Double})
	if t1 != t2 {
		t.Fatalf("expected identical tuple instances")
	}
	f1 := ctx.FunctionPtr([]Type{Int}, Boolean)
	f2 := ctx.FunctionPtr([]Type{Int}, Boolean)
	if f1 != f2 {
		t.Fatalf("expected identical function pointer type instances")
	}
}
