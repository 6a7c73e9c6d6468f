package backend

import (
	"github.com/coreaot/coreaot/internal/intern"
	cir "github.com/coreaot/coreaot/internal/ir"
	ctypes "github.com/coreaot/coreaot/internal/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"
)

// buildFunction lowers one defined function's body. Every parameter and
// every hoisted local gets its own alloca in the entry block up front,
// addressed uniformly by its intern.Id —
// the translator already flattened every nested `let` into
// fn.LocalDecls, so there is nothing left to hoist here.
func (e *Emitter) buildFunction(fn *cir.Function, llfn *ir.Func) {
	e.locals = make(map[intern.Id]value.Value)
	e.breakTargets = nil
	e.contTargets = nil
	e.cur = llfn.NewBlock("entry")
	entry := e.cur

	for i, p := range fn.Params {
		alloc := entry.NewAlloca(e.typeOf(p.Type))
		alloc.SetName(e.interner.Resolve(p.ID) + ".addr")
		entry.NewStore(llfn.Params[i], alloc)
		e.locals[p.ID] = alloc
	}
	for _, l := range fn.LocalDecls {
		alloc := entry.NewAlloca(e.typeOf(l.Type))
		alloc.SetName(e.interner.Resolve(l.ID))
		e.locals[l.ID] = alloc
	}

	terminated := e.emitBlock(fn.Body)
	if !terminated {
		if fn.Return.Kind() == ctypes.KindVoid {
			e.cur.NewRet(nil)
		} else {
			// The translator does not check that every path of a non-void
			// function ends in a Return statement; a path that falls off
			// the end reaches this unreachable terminator, and executing
			// it is undefined behaviour.
			e.cur.NewUnreachable()
		}
	}
}
