package translator

import (
	"testing"

	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/internal/types"
)

func translate(t *testing.T, src string) (*ir.Program, []*TranslateError) {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	tr := New(intern.New(), types.NewContext())
	out, errs := tr.Translate(prog)
	return out, errs
}

func requireNoErrors(t *testing.T, errs []*TranslateError) {
	t.Helper()
	if len(errs) != 0 {
		for _, e := range errs {
			t.Logf("error: %s (%s)", e.Error(), e.Kind)
		}
		t.Fatalf("expected no translation errors, got %d", len(errs))
	}
}

func TestTranslateSimpleArithmeticFunction(t *testing.T) {
	out, errs := translate(t, `
		fn add(a: int, b: int): int {
			return a + b;
		}
	`)
	requireNoErrors(t, errs)
	if len(out.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(out.Functions))
	}
	fn := out.Functions[0]
	if fn.Return != types.Int || len(fn.Params) != 2 {
		t.Fatalf("unexpected function signature: %+v", fn)
	}
	if len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[0].(*ir.Return)
	if !ok {
		t.Fatalf("expected *ir.Return, got %T", fn.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ir.BinaryOperator)
	if !ok || bin.Op != ir.IntPlus {
		t.Fatalf("expected IntPlus binary operator, got %+v", ret.Value)
	}
}

func TestTranslateIntToDoublePromotion(t *testing.T) {
	out, errs := translate(t, `
		fn f(): double {
			let x: double = 1;
			return x + 2;
		}
	`)
	requireNoErrors(t, errs)
	fn := out.Functions[0]
	if len(fn.LocalDecls) != 1 || fn.LocalDecls[0].Type != types.Double {
		t.Fatalf("expected one double local, got %+v", fn.LocalDecls)
	}
}

func TestTranslateStructFieldAccessAndDefaultFill(t *testing.T) {
	out, errs := translate(t, `
		struct Point { x: int, y: int }
		fn origin(): int {
			let p: Point;
			return p.x;
		}
	`)
	requireNoErrors(t, errs)
	fn := out.Functions[0]
	// Default fill of a 2-field struct emits 2 assignment statements
	// before the return.
	if len(fn.Body.Stmts) != 3 {
		t.Fatalf("expected 3 statements (2 default fills + return), got %d", len(fn.Body.Stmts))
	}
	ret, ok := fn.Body.Stmts[2].(*ir.Return)
	if !ok {
		t.Fatalf("expected last statement to be return, got %T", fn.Body.Stmts[2])
	}
	fa, ok := ret.Value.(*ir.LValueToRValue).X.(*ir.FieldAccess)
	if !ok {
		t.Fatalf("expected field access under the load, got %+v", ret.Value)
	}
	if fa.Index != 0 {
		t.Fatalf("expected field index 0 for x, got %d", fa.Index)
	}
}

func TestTranslateRecursiveValueTypeIsRejected(t *testing.T) {
	_, errs := translate(t, `
		struct A { next: B }
		struct B { next: A }
	`)
	if len(errs) == 0 {
		t.Fatalf("expected a RecursiveValueType error")
	}
	found := false
	for _, e := range errs {
		if e.Kind == RecursiveValueType {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected RecursiveValueType among errors, got %+v", errs)
	}
}

func TestTranslatePointerFieldBreaksValueCycle(t *testing.T) {
	_, errs := translate(t, `
		struct Node { value: int, next: *Node }
	`)
	requireNoErrors(t, errs)
}

func TestTranslateUndeclaredNameReportsError(t *testing.T) {
	_, errs := translate(t, `
		fn f(): int {
			return y;
		}
	`)
	if len(errs) != 1 || errs[0].Kind != UndeclaredName {
		t.Fatalf("expected a single UndeclaredName error, got %+v", errs)
	}
}

func TestTranslateArityMismatch(t *testing.T) {
	_, errs := translate(t, `
		fn f(a: int): int { return a; }
		fn g(): int { return f(1, 2); }
	`)
	if len(errs) != 1 || errs[0].Kind != ArityMismatch {
		t.Fatalf("expected a single ArityMismatch error, got %+v", errs)
	}
}

func TestTranslateArrayIndexLowersToPointerArithmetic(t *testing.T) {
	out, errs := translate(t, `
		fn first(a: [3]int): int {
			return a[0];
		}
	`)
	requireNoErrors(t, errs)
	fn := out.Functions[0]
	ret := fn.Body.Stmts[0].(*ir.Return)
	deref, ok := ret.Value.(*ir.LValueToRValue).X.(*ir.Dereference)
	if !ok {
		t.Fatalf("expected a Dereference place under the load, got %+v", ret.Value)
	}
	offset, ok := deref.X.(*ir.BinaryOperator)
	if !ok || offset.Op != ir.PtrPlusOffset {
		t.Fatalf("expected PtrPlusOffset under the dereference, got %+v", deref.X)
	}
}

func TestTranslateBreakOutsideLoopIsRejected(t *testing.T) {
	_, errs := translate(t, `
		fn f(): int {
			break;
			return 0;
		}
	`)
	if len(errs) != 1 || errs[0].Kind != BreakOutsideLoop {
		t.Fatalf("expected a single BreakOutsideLoop error, got %+v", errs)
	}
}

func TestTranslateWhileLoopAllowsBreak(t *testing.T) {
	_, errs := translate(t, `
		fn f(): int {
			while (true) {
				break;
			}
			return 0;
		}
	`)
	requireNoErrors(t, errs)
}

func TestTranslateInvalidCastIsRejected(t *testing.T) {
	_, errs := translate(t, `
		fn f(): int {
			let s: string = "x";
			return s as int;
		}
	`)
	if len(errs) != 1 || errs[0].Kind != InvalidCast {
		t.Fatalf("expected a single InvalidCast error, got %+v", errs)
	}
}

func TestTranslateForLoopWithLetInitHoistsToFunction(t *testing.T) {
	out, errs := translate(t, `
		fn sum(): int {
			let total: int = 0;
			for (let i: int = 0; i < 10; i++) {
				total = total + i;
			}
			return total;
		}
	`)
	requireNoErrors(t, errs)
	fn := out.Functions[0]
	if len(fn.LocalDecls) != 2 {
		t.Fatalf("expected 2 hoisted locals (total, i), got %d", len(fn.LocalDecls))
	}
}
