package translator

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/types"
)

// translateBlock translates a nested block, introducing its own scope.
func (t *Translator) translateBlock(b *ast.BlockStmt) *ir.Block {
	t.pushScope()
	blk := t.translateBlockNoScope(b)
	t.popScope()
	return blk
}

// translateBlockNoScope translates a block's statements into the
// caller's already-pushed scope; used for a function's top-level body so
// parameters and its statements share one scope.
func (t *Translator) translateBlockNoScope(b *ast.BlockStmt) *ir.Block {
	blk := &ir.Block{Span: b.Span()}
	for _, s := range b.Stmts {
		t.translateStmt(s, blk)
	}
	return blk
}

func (t *Translator) translateStmt(s ast.Stmt, blk *ir.Block) {
	switch st := s.(type) {
	case *ast.EmptyStmt:
		// nothing to lower

	case *ast.BlockStmt:
		blk.Stmts = append(blk.Stmts, t.translateBlock(st))

	case *ast.LetStmt:
		blk.Stmts = append(blk.Stmts, t.translateLet(st)...)

	case *ast.IfStmt:
		blk.Stmts = append(blk.Stmts, t.translateIf(st))

	case *ast.WhileStmt:
		blk.Stmts = append(blk.Stmts, t.translateWhile(st))

	case *ast.ForStmt:
		blk.Stmts = append(blk.Stmts, t.translateFor(st))

	case *ast.ReturnStmt:
		blk.Stmts = append(blk.Stmts, t.translateReturn(st))

	case *ast.ExprStmt:
		blk.Stmts = append(blk.Stmts, &ir.Expression{X: t.translateExprRValue(st.X), Span: st.Span()})

	case *ast.BreakStmt:
		if t.loopDepth == 0 {
			t.errorf(BreakOutsideLoop, st.Span(), "break outside a loop")
		}
		blk.Stmts = append(blk.Stmts, &ir.Break{Span: st.Span()})

	case *ast.ContinueStmt:
		if t.loopDepth == 0 {
			t.errorf(ContinueOutsideLoop, st.Span(), "continue outside a loop")
		}
		blk.Stmts = append(blk.Stmts, &ir.Continue{Span: st.Span()})
	}
}

// translateLet hoists name's storage, binds it into the current scope,
// and lowers its initializer (or a recursive default-value fill when one
// is absent) into assignment statements, as part of local hoisting.
func (t *Translator) translateLet(s *ast.LetStmt) []ir.Stmt {
	var declType types.Type
	switch {
	case s.Type != nil:
		declType = t.resolveType(s.Type)
		if _, incomplete := declType.(*types.IncompleteType); incomplete {
			t.errorf(UnknownType, s.Type.Span(), "unknown type in declaration of %q", s.Name)
		}
	case s.Value != nil:
		declType = t.peekExprType(s.Value)
	default:
		t.errorf(UnknownType, s.Span(), "cannot infer type of %q without a type annotation or initializer", s.Name)
		declType = &types.IncompleteType{Name: "?"}
	}

	id := t.newLocal(s.Name, declType)
	t.define(s.Name, &valueSymbol{id: id, typ: declType}, s)
	place := &ir.Value{Base: ir.NewBase(declType, ir.LValue, s.Span()), Kind: ir.ValLocal, Local: id}

	if s.Value == nil {
		return t.fillDefault(place, declType, s.Span())
	}
	return t.fillValue(place, s.Value, s.Span())
}

// peekExprType translates value only to learn its static type, when a let
// has no type annotation to resolve against. The resulting node is
// discarded; translateLet re-translates the initializer against the now
// known declType so conversions (e.g. int literal into a double local)
// apply uniformly whether the type came from an annotation or inference.
func (t *Translator) peekExprType(value ast.Expr) types.Type {
	if isAggregateLiteral(value) {
		t.errorf(UnknownType, value.Span(), "an aggregate literal initializer requires an explicit type annotation")
		return &types.IncompleteType{Name: "?"}
	}
	saved := len(t.errors)
	node := t.translateExprRValue(value)
	t.errors = t.errors[:saved]
	return node.Type()
}

func (t *Translator) translateIf(s *ast.IfStmt) *ir.If {
	cond := t.translateExprRValue(s.Cond)
	if cond.Type() != types.Boolean {
		t.errorf(TypeMismatch, s.Cond.Span(), "if condition must be boolean, got %s", cond.Type().String())
	}

	then := t.translateBlock(s.Then)

	var elseBlk *ir.Block
	switch e := s.Else.(type) {
	case nil:
		elseBlk = &ir.Block{}
	case *ast.BlockStmt:
		elseBlk = t.translateBlock(e)
	case *ast.IfStmt:
		elseBlk = &ir.Block{Stmts: []ir.Stmt{t.translateIf(e)}}
	}

	return &ir.If{Cond: cond, Then: then, Else: elseBlk, Span: s.Span()}
}

func (t *Translator) translateWhile(s *ast.WhileStmt) *ir.For {
	cond := t.translateExprRValue(s.Cond)
	if cond.Type() != types.Boolean {
		t.errorf(TypeMismatch, s.Cond.Span(), "while condition must be boolean, got %s", cond.Type().String())
	}

	t.loopDepth++
	body := t.translateBlock(s.Body)
	t.loopDepth--

	return &ir.For{Cond: cond, Body: body, Span: s.Span()}
}

func (t *Translator) translateFor(s *ast.ForStmt) *ir.For {
	t.pushScope()
	defer t.popScope()

	var init ir.Stmt
	if s.Init != nil {
		switch in := s.Init.(type) {
		case *ast.LetStmt:
			init = wrapStmts(t.translateLet(in))
		case *ast.ExprStmt:
			init = &ir.Expression{X: t.translateExprRValue(in.X), Span: in.Span()}
		}
	}

	var cond ir.Expr
	if s.Cond != nil {
		cond = t.translateExprRValue(s.Cond)
		if cond.Type() != types.Boolean {
			t.errorf(TypeMismatch, s.Cond.Span(), "for condition must be boolean, got %s", cond.Type().String())
		}
	}

	var step ir.Expr
	if s.Step != nil {
		step = t.translateExprRValue(s.Step)
	}

	t.loopDepth++
	body := t.translateBlock(s.Body)
	t.loopDepth--

	return &ir.For{Init: init, Cond: cond, Step: step, Body: body, Span: s.Span()}
}

func wrapStmts(stmts []ir.Stmt) ir.Stmt {
	if len(stmts) == 1 {
		return stmts[0]
	}
	return &ir.Block{Stmts: stmts}
}

func (t *Translator) translateReturn(s *ast.ReturnStmt) *ir.Return {
	if s.Value == nil {
		if t.currentReturn != nil && t.currentReturn.Kind() != types.KindVoid {
			t.errorf(ReturnTypeMismatch, s.Span(), "missing return value, function returns %s", t.currentReturn.String())
		}
		return &ir.Return{Span: s.Span()}
	}

	val := t.translateExprRValue(s.Value)
	if t.currentReturn == nil || t.currentReturn.Kind() == types.KindVoid {
		t.errorf(ReturnTypeMismatch, s.Span(), "void function must not return a value")
		return &ir.Return{Span: s.Span()}
	}
	val = t.convertTo(val, t.currentReturn, s.Span(), "return value")
	return &ir.Return{Value: val, Span: s.Span()}
}
