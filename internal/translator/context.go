// Package translator implements the IR translator: name resolution,
// type checking, lvalue/rvalue discipline, implicit conversions,
// operator selection, and lowering from internal/ast to internal/ir.
package translator

import (
	"fmt"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/intern"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/types"
)

// valueSymbol is one entry of the value table: a name bound to a hoisted
// local's identifier and its type.
type valueSymbol struct {
	id  intern.Id
	typ types.Type
}

// funcSig is one entry of the global function symbol table, covering
// both extern and defined functions uniformly.
type funcSig struct {
	params   []types.Type
	ret      types.Type
	variadic bool
}

// Translator holds all state for one compilation: the interners, the
// type context, the two symbol tables (value scopes + the global
// function table, struct names living in the type context itself), and
// the current function's in-progress IR and control-flow context.
//
// Grounded on DWScript's Analyzer (internal/semantic/analyzer.go): the
// same shape of a long-lived struct walking the AST with per-function
// accumulated errors, narrowed from its class/record/enum/interface
// surface down to this language's struct/pointer/array/tuple surface.
type Translator struct {
	interner *intern.Interner
	typeCtx  *types.TypeContext
	funcs    map[string]*funcSig

	scopes []map[string]*valueSymbol

	errors []*TranslateError

	currentFunc   *ir.Function
	currentReturn types.Type
	loopDepth     int
	localCounter  int
}

// New creates a Translator sharing interner and typeCtx with the rest of
// the pipeline (both must already exist; the translator does not own
// their lifecycle — interners and the type context live for the whole
// compilation).
func New(interner *intern.Interner, typeCtx *types.TypeContext) *Translator {
	return &Translator{
		interner: interner,
		typeCtx:  typeCtx,
		funcs:    make(map[string]*funcSig),
	}
}

// Errors returns all accumulated diagnostics.
func (t *Translator) Errors() []*TranslateError { return t.errors }

func (t *Translator) pushScope() {
	t.scopes = append(t.scopes, make(map[string]*valueSymbol))
}

func (t *Translator) popScope() {
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// define binds name in the innermost scope. Redeclaration in the same
// scope is a DuplicateDeclaration error; shadowing an outer scope is
// allowed.
func (t *Translator) define(name string, sym *valueSymbol, span ast.Node) {
	scope := t.scopes[len(t.scopes)-1]
	if _, exists := scope[name]; exists {
		t.errorf(DuplicateDeclaration, span.Span(), "redeclaration of %q in the same scope", name)
		return
	}
	scope[name] = sym
}

// lookup resolves name against the innermost-to-outermost value scopes.
func (t *Translator) lookup(name string) (*valueSymbol, bool) {
	for i := len(t.scopes) - 1; i >= 0; i-- {
		if sym, ok := t.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// newLocal allocates a fresh identifier and records it as a hoisted
// local of the current function.
//
// The shared Interner caches by string content, so two sibling `let x`
// declarations in the same function (legal: they don't coexist, e.g. two
// non-overlapping blocks both naming a local "x") would otherwise collide
// on one Id and alias storage. Suffixing with a per-translator counter
// keeps every hoisted local's Id distinct regardless of name reuse.
func (t *Translator) newLocal(name string, typ types.Type) intern.Id {
	t.localCounter++
	id := t.interner.Intern(fmt.Sprintf("%s#%d", name, t.localCounter))
	t.currentFunc.LocalDecls = append(t.currentFunc.LocalDecls, ir.LocalDecl{ID: id, Type: typ})
	return id
}

// Translate runs the full three-step program pre-pass then translates
// every function body, returning the IR program built so
// far together with every accumulated error. Callers should treat a
// non-empty Errors() as a failed compilation even though prog is
// returned (some functions may have translated successfully before an
// error in a later one).
func (t *Translator) Translate(prog *ast.Program) (*ir.Program, []*TranslateError) {
	t.declareStructs(prog)
	t.populateStructs(prog)
	t.registerFunctionSignatures(prog)

	out := &ir.Program{}
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.ExternFuncDecl:
			out.ExternFunctions = append(out.ExternFunctions, t.externSignature(d))
		case *ast.FuncDecl:
			out.Functions = append(out.Functions, t.translateFunction(d))
		}
	}
	return out, t.errors
}
