package translator

import (
	"strconv"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

// errorExpr is the placeholder node returned after an error so
// translation can continue best-effort, under the translator's
// continue-on-error policy.
func (t *Translator) errorExpr(span ast.Node) ir.Expr {
	return &ir.Value{Base: ir.NewBase(&types.IncompleteType{Name: "?"}, ir.RValue, span.Span()), Kind: ir.ValLiteral}
}

func (t *Translator) toRValue(e ir.Expr) ir.Expr {
	if e.Category() == ir.RValue {
		return e
	}
	return &ir.LValueToRValue{Base: ir.NewBase(e.Type(), ir.RValue, e.Span()), X: e}
}

func (t *Translator) toLValue(e ir.Expr) ir.Expr {
	if e.Category() == ir.LValue {
		return e
	}
	return &ir.RValueToLValue{Base: ir.NewBase(e.Type(), ir.LValue, e.Span()), X: e}
}

// translateExprRValue translates e and loads it if it came back as a
// place: LValueToRValue is inserted whenever the source is a place.
func (t *Translator) translateExprRValue(e ast.Expr) ir.Expr {
	return t.toRValue(t.translateExpr(e))
}

// convertTo applies the implicit conversion from val's type to target, if
// one exists, or reports TypeMismatch. The only implicit conversion in
// this language is Int widening to Double; a nullptr's generic
// Pointer(void) converts to any pointer type via BitCast. A value of
// Incomplete type, the placeholder left by an already reported error,
// passes through without a second diagnostic.
func (t *Translator) convertTo(val ir.Expr, target types.Type, span token.Span, context string) ir.Expr {
	if target == nil || val.Type() == target {
		return val
	}
	if _, placeholder := val.Type().(*types.IncompleteType); placeholder {
		return val
	}
	if val.Type() == types.Int && target.Kind() == types.KindDouble {
		return &ir.Cast{Base: ir.NewBase(types.Double, ir.RValue, val.Span()), Kind: ir.IntToDouble, X: val}
	}
	if isGenericNullPtr(val) && target.Kind() == types.KindPointer {
		return &ir.BitCast{Base: ir.NewBase(target, ir.RValue, val.Span()), X: val}
	}
	t.errorf(TypeMismatch, span, "%s: cannot use %s as %s", context, val.Type().String(), target.String())
	return val
}

func isGenericNullPtr(val ir.Expr) bool {
	pt, ok := val.Type().(*types.PointerType)
	return ok && pt.Elem == types.Void
}

func (t *Translator) translateExpr(e ast.Expr) ir.Expr {
	switch ex := e.(type) {
	case *ast.Ident:
		return t.translateIdent(ex)
	case *ast.IntLiteral:
		v, err := strconv.ParseInt(ex.Text, 10, 64)
		if err != nil {
			t.errorf(TypeMismatch, ex.Span(), "malformed integer literal %q", ex.Text)
		}
		return &ir.Value{Base: ir.NewBase(types.Int, ir.RValue, ex.Sp), Kind: ir.ValLiteral, Literal: ir.Literal{Int: v}}
	case *ast.FloatLiteral:
		v, err := strconv.ParseFloat(ex.Text, 64)
		if err != nil {
			t.errorf(TypeMismatch, ex.Span(), "malformed float literal %q", ex.Text)
		}
		return &ir.Value{Base: ir.NewBase(types.Double, ir.RValue, ex.Sp), Kind: ir.ValLiteral, Literal: ir.Literal{Double: v}}
	case *ast.StringLiteral:
		return &ir.Value{Base: ir.NewBase(types.String, ir.RValue, ex.Sp), Kind: ir.ValLiteral, Literal: ir.Literal{Str: ex.Value}}
	case *ast.BoolLiteral:
		return &ir.Value{Base: ir.NewBase(types.Boolean, ir.RValue, ex.Sp), Kind: ir.ValLiteral, Literal: ir.Literal{Bool: ex.Value}}
	case *ast.NullptrLiteral:
		return t.nullPtr(t.typeCtx.Pointer(types.Void), ex.Sp)
	case *ast.BinaryExpr:
		return t.translateBinary(ex)
	case *ast.UnaryExpr:
		return t.translateUnary(ex)
	case *ast.PostfixExpr:
		return t.translatePostfix(ex)
	case *ast.AssignExpr:
		return t.translateAssign(ex)
	case *ast.IndexExpr:
		return t.translateIndex(ex)
	case *ast.FieldExpr:
		return t.translateField(ex)
	case *ast.CallExpr:
		return t.translateCall(ex)
	case *ast.CastExpr:
		return t.translateCast(ex)
	case *ast.StructLiteral:
		return t.materializeAggregate(ex, t.structLiteralType(ex))
	case *ast.ArrayLiteral, *ast.ArrayFillLiteral, *ast.TupleLiteral:
		t.errorf(UnknownType, e.Span(), "array/tuple literal requires an explicit type annotation here")
		return t.errorExpr(e)
	default:
		t.errorf(TypeMismatch, e.Span(), "unsupported expression form")
		return t.errorExpr(e)
	}
}

func (t *Translator) structLiteralType(e *ast.StructLiteral) types.Type {
	st := t.typeCtx.LookupStruct(e.TypeName)
	if st == nil {
		t.errorf(UnknownType, e.Span(), "unknown struct type %q", e.TypeName)
		return &types.IncompleteType{Name: e.TypeName}
	}
	return st
}

func (t *Translator) translateIdent(e *ast.Ident) ir.Expr {
	if sym, ok := t.lookup(e.Name); ok {
		return &ir.Value{Base: ir.NewBase(sym.typ, ir.LValue, e.Sp), Kind: ir.ValLocal, Local: sym.id}
	}
	if sig, ok := t.funcs[e.Name]; ok {
		fpType := t.typeCtx.FunctionPtr(sig.params, sig.ret)
		return &ir.Value{Base: ir.NewBase(fpType, ir.RValue, e.Sp), Kind: ir.ValGlobal, Global: e.Name}
	}
	t.errorf(UndeclaredName, e.Sp, "undeclared name %q", e.Name)
	return t.errorExpr(e)
}

var boolBinOps = map[ast.BinOp]ir.BinOp{
	ast.OpEq:    ir.BoolEq,
	ast.OpNotEq: ir.BoolNe,
}

func (t *Translator) translateBinary(e *ast.BinaryExpr) ir.Expr {
	if e.Op == ast.OpAnd || e.Op == ast.OpOr {
		return t.translateShortCircuit(e)
	}

	x := t.translateExprRValue(e.X)
	y := t.translateExprRValue(e.Y)

	// Numeric promotion: Int widens to Double when the other operand is
	// Double, the same implicit conversion applied to operands here.
	if x.Type() == types.Int && y.Type().Kind() == types.KindDouble {
		x = t.convertTo(x, types.Double, e.X.Span(), "operand")
	}
	if y.Type() == types.Int && x.Type().Kind() == types.KindDouble {
		y = t.convertTo(y, types.Double, e.Y.Span(), "operand")
	}

	xk, yk := x.Type().Kind(), y.Type().Kind()

	switch {
	case xk == types.KindInt && yk == types.KindInt:
		if op, ok := intBinOps[e.Op]; ok {
			return &ir.BinaryOperator{Base: ir.NewBase(intBinOpResult(e.Op), ir.RValue, e.Sp), Op: op, X: x, Y: y}
		}

	case xk == types.KindDouble && yk == types.KindDouble:
		if op, ok := doubleBinOps[e.Op]; ok {
			return &ir.BinaryOperator{Base: ir.NewBase(doubleBinOpResult(e.Op), ir.RValue, e.Sp), Op: op, X: x, Y: y}
		}

	case xk == types.KindBoolean && yk == types.KindBoolean:
		if op, ok := boolBinOps[e.Op]; ok {
			return &ir.BinaryOperator{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Op: op, X: x, Y: y}
		}

	case xk == types.KindPointer && yk == types.KindPointer:
		switch e.Op {
		case ast.OpEq:
			return &ir.BinaryOperator{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Op: ir.PtrEq, X: x, Y: y}
		case ast.OpNotEq:
			return &ir.BinaryOperator{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Op: ir.PtrNe, X: x, Y: y}
		case ast.OpSub:
			return &ir.BinaryOperator{Base: ir.NewBase(types.Int, ir.RValue, e.Sp), Op: ir.PtrDiff, X: x, Y: y}
		}

	case xk == types.KindPointer && yk == types.KindInt:
		switch e.Op {
		case ast.OpAdd:
			return &ir.BinaryOperator{Base: ir.NewBase(x.Type(), ir.RValue, e.Sp), Op: ir.PtrPlusOffset, X: x, Y: y}
		case ast.OpSub:
			neg := &ir.UnaryOperator{Base: ir.NewBase(types.Int, ir.RValue, e.Sp), Op: ir.IntNeg, X: y}
			return &ir.BinaryOperator{Base: ir.NewBase(x.Type(), ir.RValue, e.Sp), Op: ir.PtrMinusOffset, X: x, Y: neg}
		}
	}

	t.errorf(TypeMismatch, e.Sp, "operator not defined for operand types %s and %s", x.Type().String(), y.Type().String())
	return t.errorExpr(e)
}

var intBinOps = map[ast.BinOp]ir.BinOp{
	ast.OpAdd: ir.IntPlus, ast.OpSub: ir.IntMinus, ast.OpMul: ir.IntMul,
	ast.OpDiv: ir.IntDiv, ast.OpMod: ir.IntMod,
	ast.OpEq: ir.IntEq, ast.OpNotEq: ir.IntNe,
	ast.OpLess: ir.IntLess, ast.OpLessEq: ir.IntLessEq,
	ast.OpGreater: ir.IntGreater, ast.OpGreaterEq: ir.IntGreaterEq,
}

func intBinOpResult(op ast.BinOp) types.Type {
	switch op {
	case ast.OpEq, ast.OpNotEq, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return types.Boolean
	default:
		return types.Int
	}
}

var doubleBinOps = map[ast.BinOp]ir.BinOp{
	ast.OpAdd: ir.DoublePlus, ast.OpSub: ir.DoubleMinus, ast.OpMul: ir.DoubleMul, ast.OpDiv: ir.DoubleDiv,
	ast.OpEq: ir.DoubleEq, ast.OpNotEq: ir.DoubleNe,
	ast.OpLess: ir.DoubleLess, ast.OpLessEq: ir.DoubleLessEq,
	ast.OpGreater: ir.DoubleGreater, ast.OpGreaterEq: ir.DoubleGreaterEq,
}

func doubleBinOpResult(op ast.BinOp) types.Type {
	switch op {
	case ast.OpEq, ast.OpNotEq, ast.OpLess, ast.OpLessEq, ast.OpGreater, ast.OpGreaterEq:
		return types.Boolean
	default:
		return types.Double
	}
}

// translateShortCircuit lowers && and || to the sole join-point
// construct rather than dedicated LazyAnd/LazyOr nodes.
func (t *Translator) translateShortCircuit(e *ast.BinaryExpr) ir.Expr {
	left := t.translateExprRValue(e.X)
	if left.Type() != types.Boolean {
		t.errorf(TypeMismatch, e.X.Span(), "operand of %s must be boolean", binOpSymbol(e.Op))
	}
	right := t.translateExprRValue(e.Y)
	if right.Type() != types.Boolean {
		t.errorf(TypeMismatch, e.Y.Span(), "operand of %s must be boolean", binOpSymbol(e.Op))
	}

	if e.Op == ast.OpAnd {
		return &ir.Ternary{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Cond: left, Then: right, Else: boolLit(false, e.Sp)}
	}
	return &ir.Ternary{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Cond: left, Then: boolLit(true, e.Sp), Else: right}
}

func binOpSymbol(op ast.BinOp) string {
	if op == ast.OpAnd {
		return "&&"
	}
	return "||"
}

func (t *Translator) translateUnary(e *ast.UnaryExpr) ir.Expr {
	switch e.Op {
	case ast.OpNeg:
		x := t.translateExprRValue(e.X)
		switch x.Type().Kind() {
		case types.KindInt:
			return &ir.UnaryOperator{Base: ir.NewBase(types.Int, ir.RValue, e.Sp), Op: ir.IntNeg, X: x}
		case types.KindDouble:
			return &ir.UnaryOperator{Base: ir.NewBase(types.Double, ir.RValue, e.Sp), Op: ir.DoubleNeg, X: x}
		}
		t.errorf(TypeMismatch, e.Sp, "unary - requires int or double, got %s", x.Type().String())
		return t.errorExpr(e)

	case ast.OpNot:
		x := t.translateExprRValue(e.X)
		if x.Type() != types.Boolean {
			t.errorf(TypeMismatch, e.Sp, "unary ! requires boolean, got %s", x.Type().String())
		}
		return &ir.UnaryOperator{Base: ir.NewBase(types.Boolean, ir.RValue, e.Sp), Op: ir.BoolNot, X: x}

	case ast.OpAddr:
		x := t.translateExpr(e.X)
		if x.Category() != ir.LValue {
			t.errorf(NotAPlace, e.Sp, "cannot take the address of a value")
			return t.errorExpr(e)
		}
		return &ir.LValueUnaryOperator{Base: ir.NewBase(t.typeCtx.Pointer(x.Type()), ir.RValue, e.Sp), Op: ir.LValueToPtr, X: x}

	case ast.OpDeref:
		x := t.translateExprRValue(e.X)
		pt, ok := x.Type().(*types.PointerType)
		if !ok {
			t.errorf(TypeMismatch, e.Sp, "cannot dereference non-pointer type %s", x.Type().String())
			return t.errorExpr(e)
		}
		return &ir.Dereference{Base: ir.NewBase(pt.Elem, ir.LValue, e.Sp), X: x}

	case ast.OpPreInc, ast.OpPreDec:
		x := t.translateExpr(e.X)
		if x.Category() != ir.LValue {
			t.errorf(NotAPlace, e.Sp, "%s requires a place", prePostSymbol(e.Op))
			return t.errorExpr(e)
		}
		op := ir.Increment
		if e.Op == ast.OpPreDec {
			op = ir.Decrement
		}
		return &ir.LValueUnaryOperator{Base: ir.NewBase(x.Type(), ir.RValue, e.Sp), Op: op, X: x, Post: false}
	}

	t.errorf(TypeMismatch, e.Sp, "unsupported unary operator")
	return t.errorExpr(e)
}

func prePostSymbol(op ast.UnaryOp) string {
	if op == ast.OpPreInc {
		return "++"
	}
	return "--"
}

func (t *Translator) translatePostfix(e *ast.PostfixExpr) ir.Expr {
	x := t.translateExpr(e.X)
	if x.Category() != ir.LValue {
		t.errorf(NotAPlace, e.Sp, "postfix %s requires a place", postfixSymbol(e.Op))
		return t.errorExpr(e)
	}
	op := ir.Increment
	if e.Op == ast.OpPostDec {
		op = ir.Decrement
	}
	return &ir.LValueUnaryOperator{Base: ir.NewBase(x.Type(), ir.RValue, e.Sp), Op: op, X: x, Post: true}
}

func postfixSymbol(op ast.PostfixOp) string {
	if op == ast.OpPostInc {
		return "++"
	}
	return "--"
}

func (t *Translator) translateAssign(e *ast.AssignExpr) ir.Expr {
	target := t.translateExpr(e.Target)
	if target.Category() != ir.LValue {
		t.errorf(NotAPlace, e.Sp, "left side of assignment is not a place")
		return t.errorExpr(e)
	}

	if isAggregateLiteral(e.Value) {
		stmts := t.fillLiteral(target, e.Value, e.Sp)
		load := &ir.LValueToRValue{Base: ir.NewBase(target.Type(), ir.RValue, e.Sp), X: target}
		return &ir.BlockExpr{Base: ir.NewBase(target.Type(), ir.RValue, e.Sp), Stmts: stmts, Value: load}
	}

	value := t.translateExprRValue(e.Value)
	value = t.convertTo(value, target.Type(), e.Value.Span(), "assignment")
	return &ir.Assign{Base: ir.NewBase(target.Type(), ir.RValue, e.Sp), Target: target, Value: value}
}

// translateIndex lowers `x[index]`. There is no dynamic-index IR node
// (FieldAccess only indexes by a compile-time-constant Index), so a
// runtime index decays the array place to a pointer to its element type
// and lowers to pointer arithmetic plus Dereference: the same mechanism
// already given to pointer indexing (see DESIGN.md).
func (t *Translator) translateIndex(e *ast.IndexExpr) ir.Expr {
	x := t.translateExpr(e.X)

	var elemType types.Type
	var basePtr ir.Expr

	switch xt := x.Type().(type) {
	case *types.ArrayType:
		elemType = xt.Elem
		place := t.toLValue(x)
		arrPtrType := t.typeCtx.Pointer(place.Type())
		arrPtr := &ir.LValueUnaryOperator{Base: ir.NewBase(arrPtrType, ir.RValue, e.Sp), Op: ir.LValueToPtr, X: place}
		elemPtrType := t.typeCtx.Pointer(elemType)
		basePtr = &ir.BitCast{Base: ir.NewBase(elemPtrType, ir.RValue, e.Sp), X: arrPtr}
	case *types.PointerType:
		elemType = xt.Elem
		basePtr = t.toRValue(x)
	default:
		t.errorf(TypeMismatch, e.Sp, "cannot index non-array, non-pointer type %s", x.Type().String())
		return t.errorExpr(e)
	}

	idx := t.translateExprRValue(e.Index)
	if idx.Type() != types.Int {
		t.errorf(TypeMismatch, e.Index.Span(), "array index must be int, got %s", idx.Type().String())
	}

	offset := &ir.BinaryOperator{Base: ir.NewBase(basePtr.Type(), ir.RValue, e.Sp), Op: ir.PtrPlusOffset, X: basePtr, Y: idx}
	return &ir.Dereference{Base: ir.NewBase(elemType, ir.LValue, e.Sp), X: offset}
}

func (t *Translator) translateField(e *ast.FieldExpr) ir.Expr {
	x := t.translateExpr(e.X)

	switch xt := x.Type().(type) {
	case *types.StructType:
		idx := xt.FieldIndex(e.Name)
		if idx < 0 {
			t.errorf(UnknownField, e.Sp, "unknown field %q in struct %q", e.Name, xt.Name)
			return t.errorExpr(e)
		}
		return &ir.FieldAccess{Base: ir.NewBase(xt.Fields[idx].Type, x.Category(), e.Sp), X: x, Index: idx}

	case *types.TupleType:
		idx, err := strconv.Atoi(e.Name)
		if err != nil || idx < 0 || idx >= len(xt.Elems) {
			t.errorf(UnknownField, e.Sp, "unknown tuple index %q", e.Name)
			return t.errorExpr(e)
		}
		return &ir.FieldAccess{Base: ir.NewBase(xt.Elems[idx], x.Category(), e.Sp), X: x, Index: idx}

	default:
		t.errorf(TypeMismatch, e.Sp, "cannot access a field of non-struct, non-tuple type %s", x.Type().String())
		return t.errorExpr(e)
	}
}

func (t *Translator) translateCall(e *ast.CallExpr) ir.Expr {
	if ident, ok := e.Callee.(*ast.Ident); ok {
		if _, shadowed := t.lookup(ident.Name); !shadowed {
			if sig, ok := t.funcs[ident.Name]; ok {
				return t.translateDirectCall(e, ident.Name, sig)
			}
			t.errorf(UndeclaredName, ident.Sp, "call to undeclared function %q", ident.Name)
			return t.errorExpr(e)
		}
	}

	callee := t.translateExprRValue(e.Callee)
	fpt, ok := callee.Type().(*types.FunctionPtrType)
	if !ok {
		t.errorf(NotCallable, e.Sp, "cannot call a value of type %s", callee.Type().String())
		return t.errorExpr(e)
	}
	args := t.translateArgs(e.Args, fpt.Params, false, e.Sp)
	return &ir.FunctionCall{Base: ir.NewBase(fpt.Return, ir.RValue, e.Sp), Callee: callee, Args: args}
}

func (t *Translator) translateDirectCall(e *ast.CallExpr, name string, sig *funcSig) ir.Expr {
	fpType := t.typeCtx.FunctionPtr(sig.params, sig.ret)
	callee := &ir.Value{Base: ir.NewBase(fpType, ir.RValue, e.Sp), Kind: ir.ValGlobal, Global: name}
	args := t.translateArgs(e.Args, sig.params, sig.variadic, e.Sp)
	return &ir.FunctionCall{Base: ir.NewBase(sig.ret, ir.RValue, e.Sp), Callee: callee, Args: args}
}

func (t *Translator) translateArgs(argExprs []ast.Expr, params []types.Type, variadic bool, span token.Span) []ir.Expr {
	if len(argExprs) != len(params) && (!variadic || len(argExprs) < len(params)) {
		t.errorf(ArityMismatch, span, "expected %d argument(s), got %d", len(params), len(argExprs))
	}

	args := make([]ir.Expr, len(argExprs))
	for i, ae := range argExprs {
		val := t.translateExprRValue(ae)
		if i < len(params) {
			val = t.convertTo(val, params[i], ae.Span(), "argument")
		}
		args[i] = val
	}
	return args
}

var castTable = map[[2]types.Kind]ir.CastKind{
	{types.KindInt, types.KindDouble}:     ir.IntToDouble,
	{types.KindDouble, types.KindInt}:     ir.DoubleToInt,
	{types.KindBoolean, types.KindInt}:    ir.BooleanToInt,
	{types.KindInt, types.KindBoolean}:    ir.IntToBoolean,
	{types.KindPointer, types.KindInt}:    ir.PtrToInt,
	{types.KindInt, types.KindPointer}:    ir.IntToPtr,
}

func (t *Translator) translateCast(e *ast.CastExpr) ir.Expr {
	x := t.translateExprRValue(e.X)
	target := t.resolveType(e.Type)

	if x.Type() == target {
		return x
	}
	if x.Type().Kind() == types.KindPointer && target.Kind() == types.KindPointer {
		return &ir.BitCast{Base: ir.NewBase(target, ir.RValue, e.Sp), X: x}
	}
	if kind, ok := castTable[[2]types.Kind{x.Type().Kind(), target.Kind()}]; ok {
		return &ir.Cast{Base: ir.NewBase(target, ir.RValue, e.Sp), Kind: kind, X: x}
	}

	t.errorf(InvalidCast, e.Sp, "cannot cast %s to %s", x.Type().String(), target.String())
	return t.errorExpr(e)
}
