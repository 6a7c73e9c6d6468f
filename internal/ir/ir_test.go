package ir

import (
	"testing"

	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

func TestValueNodeCarriesTypeAndCategory(t *testing.T) {
	local := &Value{Base: NewBase(types.Int, LValue, zeroSpan()), Kind: ValLocal, Local: intern.Id(0)}
	if local.Type() != types.Int {
		t.Fatalf("expected Int, got %v", local.Type())
	}
	if local.Category() != LValue {
		t.Fatalf("expected LValue category, got %v", local.Category())
	}

	lit := &Value{Base: NewBase(types.Int, RValue, zeroSpan()), Kind: ValLiteral, Literal: Literal{Int: 7}}
	if lit.Category() != RValue || lit.Literal.Int != 7 {
		t.Fatalf("unexpected literal node: %+v", lit)
	}
}

func TestLValueToRValueWrapsAPlace(t *testing.T) {
	place := &Value{Base: NewBase(types.Int, LValue, zeroSpan()), Kind: ValLocal}
	loaded := &LValueToRValue{Base: NewBase(types.Int, RValue, zeroSpan()), X: place}
	if loaded.Category() != RValue {
		t.Fatalf("expected RValue after load")
	}
	if loaded.X.Category() != LValue {
		t.Fatalf("expected wrapped operand to still be a place")
	}
}

func TestBinaryOperatorIsMonomorphic(t *testing.T) {
	x := &Value{Base: NewBase(types.Int, RValue, zeroSpan()), Kind: ValLiteral, Literal: Literal{Int: 1}}
	y := &Value{Base: NewBase(types.Int, RValue, zeroSpan()), Kind: ValLiteral, Literal: Literal{Int: 2}}
	add := &BinaryOperator{Base: NewBase(types.Int, RValue, zeroSpan()), Op: IntPlus, X: x, Y: y}
	if add.Op != IntPlus || add.Type() != types.Int {
		t.Fatalf("unexpected binary operator node: %+v", add)
	}
}

func TestFunctionHoldsHoistedLocals(t *testing.T) {
	fn := &Function{
		Name:   "main",
		Return: types.Int,
		Params: []Param{{ID: intern.Id(0), Type: types.Int}},
		LocalDecls: []LocalDecl{
			{ID: intern.Id(1), Type: types.Int},
		},
		Body: &Block{},
	}
	if len(fn.LocalDecls) != 1 || fn.LocalDecls[0].ID != intern.Id(1) {
		t.Fatalf("unexpected function shape: %+v", fn)
	}
}

func zeroSpan() token.Span { return token.Span{} }
