package ir

import (
	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

// Expr is an IR expression. Every Expr carries its result Type and its
// Category; that type must agree with its operator and operand types.
type Expr interface {
	exprNode()
	Type() types.Type
	Category() Category
	Span() token.Span
}

// Base is embedded by every Expr implementation.
type Base struct {
	Typ types.Type
	Cat Category
	Sp  token.Span
}

func (b Base) Type() types.Type   { return b.Typ }
func (b Base) Category() Category { return b.Cat }
func (b Base) Span() token.Span   { return b.Sp }

// NewBase constructs a Base with the given type, category, and span; node
// constructors set it with the keyed field `Base: ir.NewBase(...)`.
func NewBase(t types.Type, cat Category, sp token.Span) Base {
	return Base{Typ: t, Cat: cat, Sp: sp}
}

// ValueKind discriminates the three Value sub-variants.
type ValueKind int

const (
	ValLiteral ValueKind = iota
	ValLocal
	ValGlobal
)

// Literal holds the payload for a literal Value; only the field matching
// the node's Type is meaningful.
type Literal struct {
	Int    int64
	Double float64
	Bool   bool
	Str    string
}

// Value is `Value (Literal | Local(id) | Global(name))`: a literal datum,
// a reference to a hoisted local by its IdentifierId, or a reference to a
// global (an extern or defined function) by name. Value is always an
// RValue except ValLocal, which is a place (a local designates storage);
// its category is set by the translator accordingly.
type Value struct {
	Base
	Kind    ValueKind
	Literal Literal
	Local   intern.Id
	Global  string
}

func (*Value) exprNode() {}

// LValueToRValue loads the value out of a place: wherever an operand
// must be a value, LValueToRValue is inserted if the source is a place.
type LValueToRValue struct {
	Base
	X Expr
}

func (*LValueToRValue) exprNode() {}

// RValueToLValue materializes a value into a fresh temporary place:
// wherever a place is required from a pure r-value, a temporary is
// materialized.
type RValueToLValue struct {
	Base
	X Expr
}

func (*RValueToLValue) exprNode() {}

// Assign requires a place Target and a value Value; its result is an
// RValue of the target's type (the just-written value).
type Assign struct {
	Base
	Target Expr
	Value  Expr
}

func (*Assign) exprNode() {}

// CastKind enumerates the recognized explicit-cast conversions.
type CastKind int

const (
	IntToDouble CastKind = iota
	DoubleToInt          // truncate toward zero
	BooleanToInt         // zero-extend
	IntToBoolean         // non-zero -> true
	PtrToInt
	IntToPtr
)

// Cast is an explicit `as`-conversion between scalar/pointer representations.
type Cast struct {
	Base
	Kind CastKind
	X    Expr
}

func (*Cast) exprNode() {}

// BitCast reinterprets X as Base.Type without a representation change.
// The translator emits it for pointer-to-pointer conversions: an explicit
// `as` cast between pointer types, the generic nullptr converted to a
// specific pointer type, and an array's address decayed to a pointer to
// its element type for indexing.
type BitCast struct {
	Base
	X Expr
}

func (*BitCast) exprNode() {}

// BinOp enumerates the fully monomorphic binary IR operators selected by
// an operand-type table during translation: each name fixes both operand
// types and the operation, so the backend never branches on operand type.
type BinOp int

const (
	IntPlus BinOp = iota
	DoublePlus
	PtrPlusOffset
	IntMinus
	DoubleMinus
	PtrMinusOffset
	PtrDiff
	IntMul
	DoubleMul
	IntDiv
	DoubleDiv
	IntMod
	IntEq
	IntNe
	DoubleEq
	DoubleNe
	BoolEq
	BoolNe
	PtrEq
	PtrNe
	IntLess
	IntLessEq
	IntGreater
	IntGreaterEq
	// Double relational comparisons are ordered (see DESIGN.md Open Question
	// decision): they are false whenever either operand is NaN, as with the
	// IEEE ordered predicates (fcmp olt/ole/ogt/oge).
	DoubleLess
	DoubleLessEq
	DoubleGreater
	DoubleGreaterEq
)

// BinaryOperator applies a monomorphic binary operator to two values.
type BinaryOperator struct {
	Base
	Op   BinOp
	X, Y Expr
}

func (*BinaryOperator) exprNode() {}

// UnOp enumerates the monomorphic value-producing unary operators: `-` on
// Int/Double and `!` on Boolean.
type UnOp int

const (
	IntNeg UnOp = iota
	DoubleNeg
	BoolNot
)

// UnaryOperator applies a value-producing unary operator.
type UnaryOperator struct {
	Base
	Op UnOp
	X  Expr
}

func (*UnaryOperator) exprNode() {}

// Dereference turns a Pointer(T) value into a place of T: `*p` requires
// a Pointer T operand and yields a place of T. Concretely, the pointer's
// runtime value already is the place's address, so this node exists
// purely to retag X's static Type/Category; the backend emits no
// instruction for it. LValueToRValue/RValueToLValue/LValueUnaryOperator
// cover the rest of the place/value conversions, but one more is
// required to turn an arbitrary Pointer(T) value into a place — see
// DESIGN.md.
type Dereference struct {
	Base
	X Expr
}

func (*Dereference) exprNode() {}

// LValueUnaryOp enumerates the place-consuming unary operators.
type LValueUnaryOp int

const (
	Increment LValueUnaryOp = iota
	Decrement
	LValueToPtr // `&place`
)

// LValueUnaryOperator applies a place-consuming unary operator: `++`/`--`
// (Post distinguishes pre- from post-, both require a place and yield a
// value) or `&` (LValueToPtr, yields Pointer(T)).
type LValueUnaryOperator struct {
	Base
	Op   LValueUnaryOp
	X    Expr
	Post bool
}

func (*LValueUnaryOperator) exprNode() {}

// FunctionCall applies Callee (a Global value or a function-pointer
// value) to Args.
type FunctionCall struct {
	Base
	Callee Expr
	Args   []Expr
}

func (*FunctionCall) exprNode() {}

// FieldAccess indexes into a struct or tuple place by the resolved
// field/element Index; names do not appear in IR. Its category mirrors
// X's: a field of a place is a place, a field of a value is a value.
type FieldAccess struct {
	Base
	X     Expr
	Index int
}

func (*FieldAccess) exprNode() {}

// Ternary is `cond ? then : else`, the sole join-point construct; `&&`
// and `||` desugar to it rather than getting dedicated LazyAnd/LazyOr
// IR nodes.
type Ternary struct {
	Base
	Cond Expr
	Then Expr
	Else Expr
}

func (*Ternary) exprNode() {}

// BlockExpr is an expression block with a trailing value: its statements
// run for effect, then Value (nil for Void) is the block's result.
type BlockExpr struct {
	Base
	Stmts []Stmt
	Value Expr // nil ok, when Base.Typ is types.Void
}

func (*BlockExpr) exprNode() {}
