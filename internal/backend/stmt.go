package backend

import (
	cir "github.com/coreaot/coreaot/internal/ir"
)

// emitBlock lowers a sequence of statements into the current block,
// stopping as soon as one of them terminates it (return/break/continue),
// the same short-circuit a statement generator walking straight-line code
// uses (dshills-alas's generateStatement loop). Reports whether the
// block now ends in a terminator.
func (e *Emitter) emitBlock(b *cir.Block) bool {
	for _, s := range b.Stmts {
		if e.emitStmt(s) {
			return true
		}
	}
	return false
}

func (e *Emitter) emitStmt(s cir.Stmt) bool {
	switch st := s.(type) {
	case *cir.Block:
		return e.emitBlock(st)

	case *cir.Expression:
		e.lower(st.X)
		return false

	case *cir.Return:
		if st.Value == nil {
			e.cur.NewRet(nil)
		} else {
			e.cur.NewRet(e.lower(st.Value))
		}
		return true

	case *cir.If:
		return e.emitIf(st)

	case *cir.For:
		return e.emitFor(st)

	case *cir.Break:
		e.cur.NewBr(e.breakTargets[len(e.breakTargets)-1])
		return true

	case *cir.Continue:
		e.cur.NewBr(e.contTargets[len(e.contTargets)-1])
		return true
	}
	panic("backend: unhandled statement node")
}

// emitIf lowers both branches into their own blocks and joins them at a
// merge block, tracking each branch's actual ENDING block rather than
// assuming it is the block it started in — a nested if/while inside
// either branch moves e.cur before control returns here.
func (e *Emitter) emitIf(s *cir.If) bool {
	cond := e.lower(s.Cond)
	fn := e.cur.Parent
	thenBlk := fn.NewBlock("if.then")
	elseBlk := fn.NewBlock("if.else")
	e.cur.NewCondBr(cond, thenBlk, elseBlk)

	e.cur = thenBlk
	thenTerm := e.emitBlock(s.Then)
	thenEnd := e.cur

	e.cur = elseBlk
	elseTerm := e.emitBlock(s.Else)
	elseEnd := e.cur

	if thenTerm && elseTerm {
		return true
	}

	mergeBlk := fn.NewBlock("if.end")
	if !thenTerm {
		thenEnd.NewBr(mergeBlk)
	}
	if !elseTerm {
		elseEnd.NewBr(mergeBlk)
	}
	e.cur = mergeBlk
	return false
}

// emitFor lowers the normalized loop form (`while (c) b` arrives as
// For{Cond: c} with Init/Step nil) into cond/body/step/end
// blocks. continue jumps to step so the step always runs before the
// condition is re-checked, matching C-style for-loop semantics even when
// Step is nil (an empty step block that falls straight through to cond).
func (e *Emitter) emitFor(s *cir.For) bool {
	if s.Init != nil {
		e.emitStmt(s.Init)
	}

	fn := e.cur.Parent
	condBlk := fn.NewBlock("for.cond")
	bodyBlk := fn.NewBlock("for.body")
	stepBlk := fn.NewBlock("for.step")
	endBlk := fn.NewBlock("for.end")

	e.cur.NewBr(condBlk)

	e.cur = condBlk
	if s.Cond != nil {
		cond := e.lower(s.Cond)
		e.cur.NewCondBr(cond, bodyBlk, endBlk)
	} else {
		e.cur.NewBr(bodyBlk)
	}

	e.breakTargets = append(e.breakTargets, endBlk)
	e.contTargets = append(e.contTargets, stepBlk)

	e.cur = bodyBlk
	bodyTerm := e.emitBlock(s.Body)
	if !bodyTerm {
		e.cur.NewBr(stepBlk)
	}

	e.breakTargets = e.breakTargets[:len(e.breakTargets)-1]
	e.contTargets = e.contTargets[:len(e.contTargets)-1]

	e.cur = stepBlk
	if s.Step != nil {
		e.lower(s.Step)
	}
	e.cur.NewBr(condBlk)

	e.cur = endBlk
	return false
}
