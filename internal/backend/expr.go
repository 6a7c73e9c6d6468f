package backend

import (
	cir "github.com/coreaot/coreaot/internal/ir"
	ctypes "github.com/coreaot/coreaot/internal/types"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// lower lowers one internal/ir expression node. For a node whose
// Category() is RValue it returns the computed value; for a node whose
// Category() is LValue it returns the address of the place the node
// designates — the same distinction the IR itself draws between values
// and places, carried one level further into LLVM pointers.
func (e *Emitter) lower(expr cir.Expr) value.Value {
	switch n := expr.(type) {
	case *cir.Value:
		return e.lowerValueNode(n)

	case *cir.LValueToRValue:
		addr := e.lower(n.X)
		return e.cur.NewLoad(e.typeOf(n.Type()), addr)

	case *cir.RValueToLValue:
		v := e.lower(n.X)
		alloc := e.cur.NewAlloca(e.typeOf(n.Type()))
		e.cur.NewStore(v, alloc)
		return alloc

	case *cir.Assign:
		v := e.lower(n.Value)
		addr := e.lower(n.Target)
		e.cur.NewStore(v, addr)
		return v

	case *cir.Cast:
		return e.lowerCast(n)

	case *cir.BitCast:
		return e.cur.NewBitCast(e.lower(n.X), e.typeOf(n.Type()))

	case *cir.BinaryOperator:
		return e.lowerBinary(n)

	case *cir.UnaryOperator:
		return e.lowerUnary(n)

	case *cir.Dereference:
		// X is an RValue pointer whose runtime value already is the
		// place's address (DESIGN.md "ir.Dereference"): no instruction
		// to emit, just hand the pointer value back as an address.
		return e.lower(n.X)

	case *cir.LValueUnaryOperator:
		return e.lowerLValueUnary(n)

	case *cir.FunctionCall:
		return e.lowerCall(n)

	case *cir.FieldAccess:
		return e.lowerField(n)

	case *cir.Ternary:
		return e.lowerTernary(n)

	case *cir.BlockExpr:
		for _, s := range n.Stmts {
			e.emitStmt(s)
		}
		if n.Value == nil {
			return nil
		}
		return e.lower(n.Value)
	}
	panic("backend: unhandled expression node")
}

func (e *Emitter) lowerValueNode(n *cir.Value) value.Value {
	switch n.Kind {
	case cir.ValLiteral:
		return e.lowerLiteral(n)
	case cir.ValLocal:
		return e.locals[n.Local]
	case cir.ValGlobal:
		if fn, ok := e.funcs[n.Global]; ok {
			return fn
		}
		panic("backend: undeclared global " + n.Global)
	}
	panic("backend: unhandled value kind")
}

func (e *Emitter) lowerLiteral(n *cir.Value) value.Value {
	switch n.Type().Kind() {
	case ctypes.KindInt:
		return constant.NewInt(types.I64, n.Literal.Int)
	case ctypes.KindDouble:
		return constant.NewFloat(types.Double, n.Literal.Double)
	case ctypes.KindBoolean:
		if n.Literal.Bool {
			return constant.NewInt(types.I1, 1)
		}
		return constant.NewInt(types.I1, 0)
	case ctypes.KindString:
		return e.stringConstant(n.Literal.Str)
	}
	panic("backend: literal of unsupported type " + n.Type().String())
}

// stringConstant backs a string literal with a private global byte array
// and returns a pointer to its first byte, the same "global array + GEP
// to element 0" shape dshills-alas's generateLiteral uses for string data.
func (e *Emitter) stringConstant(s string) value.Value {
	data := constant.NewCharArrayFromString(s + "\x00")
	g := e.module.NewGlobalDef(e.freshGlobalName("str"), data)
	g.Immutable = true
	zero := constant.NewInt(types.I64, 0)
	return e.cur.NewGetElementPtr(data.Type(), g, zero, zero)
}

func (e *Emitter) lowerCast(n *cir.Cast) value.Value {
	x := e.lower(n.X)
	switch n.Kind {
	case cir.IntToDouble:
		return e.cur.NewSIToFP(x, types.Double)
	case cir.DoubleToInt:
		return e.cur.NewFPToSI(x, types.I64)
	case cir.BooleanToInt:
		return e.cur.NewZExt(x, types.I64)
	case cir.IntToBoolean:
		return e.cur.NewICmp(enum.IPredNE, x, constant.NewInt(types.I64, 0))
	case cir.PtrToInt:
		return e.cur.NewPtrToInt(x, types.I64)
	case cir.IntToPtr:
		return e.cur.NewIntToPtr(x, e.typeOf(n.Type()))
	}
	panic("backend: unhandled cast kind")
}

// sizeOf computes sizeof(t) in bytes as a compile-time constant, using the
// standard "GEP one element past a null pointer, then ptrtoint" trick —
// the usual way to ask LLVM itself for a type's size without consulting
// target data at IR-construction time.
func (e *Emitter) sizeOf(t ctypes.Type) value.Value {
	lt := e.typeOf(t)
	null := constant.NewNull(types.NewPointer(lt))
	one := constant.NewInt(types.I64, 1)
	gep := constant.NewGetElementPtr(lt, null, one)
	return constant.NewPtrToInt(gep, types.I64)
}

func (e *Emitter) lowerBinary(n *cir.BinaryOperator) value.Value {
	x := e.lower(n.X)
	y := e.lower(n.Y)
	switch n.Op {
	case cir.IntPlus:
		return e.cur.NewAdd(x, y)
	case cir.DoublePlus:
		return e.cur.NewFAdd(x, y)
	case cir.PtrPlusOffset:
		elem := n.X.Type().(*ctypes.PointerType).Elem
		return e.cur.NewGetElementPtr(e.typeOf(elem), x, y)
	case cir.IntMinus:
		return e.cur.NewSub(x, y)
	case cir.DoubleMinus:
		return e.cur.NewFSub(x, y)
	case cir.PtrMinusOffset:
		elem := n.X.Type().(*ctypes.PointerType).Elem
		neg := e.cur.NewSub(constant.NewInt(types.I64, 0), y)
		return e.cur.NewGetElementPtr(e.typeOf(elem), x, neg)
	case cir.PtrDiff:
		elem := n.X.Type().(*ctypes.PointerType).Elem
		xi := e.cur.NewPtrToInt(x, types.I64)
		yi := e.cur.NewPtrToInt(y, types.I64)
		diff := e.cur.NewSub(xi, yi)
		return e.cur.NewSDiv(diff, e.sizeOf(elem))
	case cir.IntMul:
		return e.cur.NewMul(x, y)
	case cir.DoubleMul:
		return e.cur.NewFMul(x, y)
	case cir.IntDiv:
		return e.cur.NewSDiv(x, y)
	case cir.DoubleDiv:
		return e.cur.NewFDiv(x, y)
	case cir.IntMod:
		return e.cur.NewSRem(x, y)
	case cir.IntEq:
		return e.cur.NewICmp(enum.IPredEQ, x, y)
	case cir.IntNe:
		return e.cur.NewICmp(enum.IPredNE, x, y)
	// Double equality is ORDERED (false whenever either operand is NaN)
	// and inequality is UNORDERED (true whenever either operand is NaN),
	// matching ordinary "NaN != NaN is true" language semantics
	// (DESIGN.md Open Question (i)).
	case cir.DoubleEq:
		return e.cur.NewFCmp(enum.FPredOEQ, x, y)
	case cir.DoubleNe:
		return e.cur.NewFCmp(enum.FPredUNE, x, y)
	case cir.BoolEq:
		return e.cur.NewICmp(enum.IPredEQ, x, y)
	case cir.BoolNe:
		return e.cur.NewICmp(enum.IPredNE, x, y)
	case cir.PtrEq:
		return e.cur.NewICmp(enum.IPredEQ, x, y)
	case cir.PtrNe:
		return e.cur.NewICmp(enum.IPredNE, x, y)
	case cir.IntLess:
		return e.cur.NewICmp(enum.IPredSLT, x, y)
	case cir.IntLessEq:
		return e.cur.NewICmp(enum.IPredSLE, x, y)
	case cir.IntGreater:
		return e.cur.NewICmp(enum.IPredSGT, x, y)
	case cir.IntGreaterEq:
		return e.cur.NewICmp(enum.IPredSGE, x, y)
	case cir.DoubleLess:
		return e.cur.NewFCmp(enum.FPredOLT, x, y)
	case cir.DoubleLessEq:
		return e.cur.NewFCmp(enum.FPredOLE, x, y)
	case cir.DoubleGreater:
		return e.cur.NewFCmp(enum.FPredOGT, x, y)
	case cir.DoubleGreaterEq:
		return e.cur.NewFCmp(enum.FPredOGE, x, y)
	}
	panic("backend: unhandled binary operator")
}

func (e *Emitter) lowerUnary(n *cir.UnaryOperator) value.Value {
	x := e.lower(n.X)
	switch n.Op {
	case cir.IntNeg:
		return e.cur.NewSub(constant.NewInt(types.I64, 0), x)
	case cir.DoubleNeg:
		return e.cur.NewFNeg(x)
	case cir.BoolNot:
		return e.cur.NewXor(x, constant.NewInt(types.I1, 1))
	}
	panic("backend: unhandled unary operator")
}

func (e *Emitter) lowerLValueUnary(n *cir.LValueUnaryOperator) value.Value {
	if n.Op == cir.LValueToPtr {
		// X's address already is the `&place` value.
		return e.lower(n.X)
	}

	addr := e.lower(n.X)
	elemType := e.typeOf(n.X.Type())
	old := e.cur.NewLoad(elemType, addr)

	var next value.Value
	if n.X.Type().Kind() == ctypes.KindDouble {
		one := constant.NewFloat(types.Double, 1)
		if n.Op == cir.Increment {
			next = e.cur.NewFAdd(old, one)
		} else {
			next = e.cur.NewFSub(old, one)
		}
	} else {
		one := constant.NewInt(types.I64, 1)
		if n.Op == cir.Increment {
			next = e.cur.NewAdd(old, one)
		} else {
			next = e.cur.NewSub(old, one)
		}
	}
	e.cur.NewStore(next, addr)
	if n.Post {
		return old
	}
	return next
}

func (e *Emitter) lowerCall(n *cir.FunctionCall) value.Value {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		args[i] = e.lower(a)
	}
	if g, ok := n.Callee.(*cir.Value); ok && g.Kind == cir.ValGlobal {
		if fn, ok := e.funcs[g.Global]; ok {
			return e.cur.NewCall(fn, args...)
		}
	}
	callee := e.lower(n.Callee)
	return e.cur.NewCall(callee, args...)
}

func (e *Emitter) lowerField(n *cir.FieldAccess) value.Value {
	if n.X.Category() == cir.LValue {
		base := e.lower(n.X)
		parentType := e.typeOf(n.X.Type())
		return e.cur.NewGetElementPtr(parentType, base,
			constant.NewInt(types.I32, 0), constant.NewInt(types.I32, int64(n.Index)))
	}
	// X is itself an aggregate VALUE (e.g. a struct read back out of a
	// BlockExpr materializing a literal): extract the field in place
	// rather than taking an address that was never computed.
	agg := e.lower(n.X)
	return e.cur.NewExtractValue(agg, uint64(n.Index))
}

// lowerTernary lowers `cond ? then : else` (the sole join-point
// construct, since `&&`/`||` desugar to it) into a three-block
// diamond joined by a phi, the standard LLVM shape for a value-producing
// conditional.
func (e *Emitter) lowerTernary(n *cir.Ternary) value.Value {
	fn := e.cur.Parent
	thenBlk := fn.NewBlock("ternary.then")
	elseBlk := fn.NewBlock("ternary.else")
	mergeBlk := fn.NewBlock("ternary.end")

	cond := e.lower(n.Cond)
	e.cur.NewCondBr(cond, thenBlk, elseBlk)

	e.cur = thenBlk
	thenVal := e.lower(n.Then)
	thenEnd := e.cur
	thenEnd.NewBr(mergeBlk)

	e.cur = elseBlk
	elseVal := e.lower(n.Else)
	elseEnd := e.cur
	elseEnd.NewBr(mergeBlk)

	e.cur = mergeBlk
	return mergeBlk.NewPhi(ir.NewIncoming(thenVal, thenEnd), ir.NewIncoming(elseVal, elseEnd))
}
