package translator

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/ir"
	"github.com/coreaot/coreaot/internal/types"
	"github.com/coreaot/coreaot/pkg/token"
)

// registerFunctionSignatures is the pre-pass's third step: register all
// extern and non-extern function signatures before any body is
// translated, so forward calls and mutual recursion resolve.
func (t *Translator) registerFunctionSignatures(prog *ast.Program) {
	for _, decl := range prog.Decls {
		switch d := decl.(type) {
		case *ast.ExternFuncDecl:
			t.registerFuncSig(d.Name, d.Params, d.Return, d.Variadic, d.Span())
		case *ast.FuncDecl:
			paramTypes := make([]ast.TypeExpr, len(d.Params))
			for i, p := range d.Params {
				paramTypes[i] = p.Type
			}
			t.registerFuncSig(d.Name, paramTypes, d.Return, false, d.Span())
		}
	}
}

func (t *Translator) registerFuncSig(name string, paramTypes []ast.TypeExpr, ret ast.TypeExpr, variadic bool, span token.Span) {
	if _, exists := t.funcs[name]; exists {
		t.errorf(DuplicateDeclaration, span, "duplicate function declaration %q", name)
		return
	}

	params := make([]types.Type, len(paramTypes))
	for i, pt := range paramTypes {
		rt := t.resolveType(pt)
		if _, incomplete := rt.(*types.IncompleteType); incomplete {
			t.errorf(UnknownType, pt.Span(), "unknown parameter type in %q", name)
		}
		params[i] = rt
	}

	retType := t.resolveType(ret)
	if _, incomplete := retType.(*types.IncompleteType); incomplete {
		t.errorf(UnknownType, ret.Span(), "unknown return type in %q", name)
	}

	t.funcs[name] = &funcSig{params: params, ret: retType, variadic: variadic}
}

// externSignature builds the IR node for an already-registered extern
// function. The signature lookup cannot miss: registerFunctionSignatures
// ran over every declaration, including this one, before any call site.
func (t *Translator) externSignature(d *ast.ExternFuncDecl) *ir.ExternFunction {
	sig := t.funcs[d.Name]
	return &ir.ExternFunction{
		Name:     d.Name,
		Return:   sig.ret,
		Params:   sig.params,
		Variadic: sig.variadic,
		Span:     d.Span(),
	}
}

// translateFunction lowers one defined function's parameters and body.
func (t *Translator) translateFunction(d *ast.FuncDecl) *ir.Function {
	sig := t.funcs[d.Name]

	fn := &ir.Function{Name: d.Name, Return: sig.ret, Span: d.Span()}
	t.currentFunc = fn
	t.currentReturn = sig.ret

	t.pushScope()
	for i, p := range d.Params {
		id := t.interner.Intern(p.Name)
		ptype := sig.params[i]
		fn.Params = append(fn.Params, ir.Param{ID: id, Type: ptype})
		t.define(p.Name, &valueSymbol{id: id, typ: ptype}, p)
	}

	fn.Body = t.translateBlockNoScope(d.Body)
	t.popScope()

	t.currentFunc = nil
	t.currentReturn = nil
	return fn
}
