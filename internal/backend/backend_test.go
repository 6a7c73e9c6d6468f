package backend

import (
	"testing"

	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/internal/translator"
	"github.com/coreaot/coreaot/internal/types"

	"github.com/llir/llvm/ir"
)

func emit(t *testing.T, src string) *ir.Module {
	t.Helper()
	p := parser.New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	in := intern.New()
	tr := translator.New(in, types.NewContext())
	irProg, errs := tr.Translate(prog)
	if len(errs) != 0 {
		t.Fatalf("unexpected translation errors: %+v", errs)
	}
	return New(in).Emit(irProg)
}

func findFunc(m *ir.Module, name string) *ir.Func {
	for _, f := range m.Funcs {
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func TestEmitSimpleArithmeticFunction(t *testing.T) {
	m := emit(t, `
		fn add(a: int, b: int): int {
			return a + b;
		}
	`)
	fn := findFunc(m, "add")
	if fn == nil {
		t.Fatalf("expected a function named add")
	}
	if len(fn.Params) != 2 {
		t.Fatalf("expected 2 params, got %d", len(fn.Params))
	}
	if len(fn.Blocks) != 1 {
		t.Fatalf("expected a single basic block, got %d", len(fn.Blocks))
	}
	if _, ok := fn.Blocks[0].Term.(*ir.TermRet); !ok {
		t.Fatalf("expected the entry block to end in a ret, got %T", fn.Blocks[0].Term)
	}
}

func TestEmitIfElseWithReturningBranchesNeedsNoMergeBlock(t *testing.T) {
	m := emit(t, `
		fn max(a: int, b: int): int {
			if (a > b) {
				return a;
			} else {
				return b;
			}
		}
	`)
	fn := findFunc(m, "max")
	if fn == nil {
		t.Fatalf("expected a function named max")
	}
	// entry (cond branch) + then + else; both branches return, so no
	// merge block is needed.
	if len(fn.Blocks) != 3 {
		t.Fatalf("expected 3 basic blocks, got %d", len(fn.Blocks))
	}
	if _, ok := fn.Blocks[0].Term.(*ir.TermCondBr); !ok {
		t.Fatalf("expected entry to end in a conditional branch, got %T", fn.Blocks[0].Term)
	}
}

func TestEmitWhileLoopHasCondBodyStepEndBlocks(t *testing.T) {
	m := emit(t, `
		fn countdown(n: int): int {
			while (n > 0) {
				n = n - 1;
			}
			return n;
		}
	`)
	fn := findFunc(m, "countdown")
	if fn == nil {
		t.Fatalf("expected a function named countdown")
	}
	// entry, for.cond, for.body, for.step, for.end.
	if len(fn.Blocks) != 5 {
		t.Fatalf("expected 5 basic blocks, got %d", len(fn.Blocks))
	}
}

func TestEmitStructFieldStoreUsesGetElementPtr(t *testing.T) {
	m := emit(t, `
		struct Point { x: int, y: int }
		fn setX(p: *Point, v: int): int {
			(*p).x = v;
			return v;
		}
	`)
	fn := findFunc(m, "setX")
	if fn == nil {
		t.Fatalf("expected a function named setX")
	}
	foundGEP := false
	for _, inst := range fn.Blocks[0].Insts {
		if _, ok := inst.(*ir.InstGetElementPtr); ok {
			foundGEP = true
		}
	}
	if !foundGEP {
		t.Fatalf("expected a getelementptr instruction in setX's body")
	}
}

func TestEmitShortCircuitAndProducesPhi(t *testing.T) {
	m := emit(t, `
		fn pick(a: boolean, b: boolean): boolean {
			return a && b;
		}
	`)
	fn := findFunc(m, "pick")
	if fn == nil {
		t.Fatalf("expected a function named pick")
	}
	foundPhi := false
	for _, blk := range fn.Blocks {
		for _, inst := range blk.Insts {
			if _, ok := inst.(*ir.InstPhi); ok {
				foundPhi = true
			}
		}
	}
	if !foundPhi {
		t.Fatalf("expected a phi instruction lowering the ternary")
	}
}

func TestEmitExternFunctionIsDeclaredNotDefined(t *testing.T) {
	m := emit(t, `
		extern fn puts(string): int;
		fn greet(s: string): int {
			return puts(s);
		}
	`)
	fn := findFunc(m, "puts")
	if fn == nil {
		t.Fatalf("expected puts to be declared")
	}
	if len(fn.Blocks) != 0 {
		t.Fatalf("expected puts to have no body (declaration only), got %d blocks", len(fn.Blocks))
	}
}
