package cmd

import (
	"fmt"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/intern"
	cir "github.com/coreaot/coreaot/internal/ir"
)

// dumpASTNode prints a node and its children with one level of
// indentation per nesting depth, covering every declaration kind, every
// statement kind but the empty statement, and the expression kinds common
// enough to read at a
// glance; anything else falls back to its Go representation, a common
// fallback for debug AST dumpers.
func dumpASTNode(node any, indent int) {
	pad := ""
	for i := 0; i < indent; i++ {
		pad += "  "
	}

	switch n := node.(type) {
	case *ast.Program:
		fmt.Printf("%sProgram (%d declarations)\n", pad, len(n.Decls))
		for _, d := range n.Decls {
			dumpASTNode(d, indent+1)
		}
	case *ast.StructDecl:
		fmt.Printf("%sStructDecl %s\n", pad, n.Name)
		for _, f := range n.Fields {
			fmt.Printf("%s  %s: %s\n", pad, f.Name, typeString(f.Type))
		}
	case *ast.ExternFuncDecl:
		fmt.Printf("%sExternFuncDecl %s -> %s\n", pad, n.Name, typeString(n.Return))
	case *ast.FuncDecl:
		fmt.Printf("%sFuncDecl %s -> %s\n", pad, n.Name, typeString(n.Return))
		for _, p := range n.Params {
			fmt.Printf("%s  param %s: %s\n", pad, p.Name, typeString(p.Type))
		}
		dumpASTNode(n.Body, indent+1)
	case *ast.BlockStmt:
		fmt.Printf("%sBlockStmt (%d statements)\n", pad, len(n.Stmts))
		for _, s := range n.Stmts {
			dumpASTNode(s, indent+1)
		}
	case *ast.LetStmt:
		fmt.Printf("%sLetStmt %s\n", pad, n.Name)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.IfStmt:
		fmt.Printf("%sIfStmt\n", pad)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Then, indent+1)
		if n.Else != nil {
			dumpASTNode(n.Else, indent+1)
		}
	case *ast.WhileStmt:
		fmt.Printf("%sWhileStmt\n", pad)
		dumpASTNode(n.Cond, indent+1)
		dumpASTNode(n.Body, indent+1)
	case *ast.ForStmt:
		fmt.Printf("%sForStmt\n", pad)
		if n.Init != nil {
			dumpASTNode(n.Init, indent+1)
		}
		if n.Cond != nil {
			dumpASTNode(n.Cond, indent+1)
		}
		if n.Step != nil {
			dumpASTNode(n.Step, indent+1)
		}
		dumpASTNode(n.Body, indent+1)
	case *ast.ReturnStmt:
		fmt.Printf("%sReturnStmt\n", pad)
		if n.Value != nil {
			dumpASTNode(n.Value, indent+1)
		}
	case *ast.ExprStmt:
		fmt.Printf("%sExprStmt\n", pad)
		dumpASTNode(n.X, indent+1)
	case *ast.BreakStmt:
		fmt.Printf("%sBreakStmt\n", pad)
	case *ast.ContinueStmt:
		fmt.Printf("%sContinueStmt\n", pad)
	case *ast.BinaryExpr:
		fmt.Printf("%sBinaryExpr (%s)\n", pad, binOpString(n.Op))
		dumpASTNode(n.X, indent+1)
		dumpASTNode(n.Y, indent+1)
	case *ast.UnaryExpr:
		fmt.Printf("%sUnaryExpr (%s)\n", pad, unaryOpString(n.Op))
		dumpASTNode(n.X, indent+1)
	case *ast.AssignExpr:
		fmt.Printf("%sAssignExpr\n", pad)
		dumpASTNode(n.Target, indent+1)
		dumpASTNode(n.Value, indent+1)
	case *ast.CallExpr:
		fmt.Printf("%sCallExpr (%d args)\n", pad, len(n.Args))
		dumpASTNode(n.Callee, indent+1)
		for _, a := range n.Args {
			dumpASTNode(a, indent+1)
		}
	case *ast.FieldExpr:
		fmt.Printf("%sFieldExpr .%s\n", pad, n.Name)
		dumpASTNode(n.X, indent+1)
	case *ast.IndexExpr:
		fmt.Printf("%sIndexExpr\n", pad)
		dumpASTNode(n.X, indent+1)
		dumpASTNode(n.Index, indent+1)
	case *ast.Ident:
		fmt.Printf("%sIdent %s\n", pad, n.Name)
	case *ast.IntLiteral:
		fmt.Printf("%sIntLiteral %s\n", pad, n.Text)
	case *ast.FloatLiteral:
		fmt.Printf("%sFloatLiteral %s\n", pad, n.Text)
	case *ast.StringLiteral:
		fmt.Printf("%sStringLiteral %q\n", pad, n.Value)
	case *ast.BoolLiteral:
		fmt.Printf("%sBoolLiteral %v\n", pad, n.Value)
	default:
		fmt.Printf("%s%T: %+v\n", pad, node, node)
	}
}

func typeString(t ast.TypeExpr) string {
	switch tt := t.(type) {
	case *ast.NamedType:
		return tt.Name
	case *ast.PointerType:
		return "*" + typeString(tt.Elem)
	case *ast.ArrayType:
		return "[]" + typeString(tt.Elem)
	case nil:
		return "<inferred>"
	default:
		return fmt.Sprintf("%T", t)
	}
}

func binOpString(op ast.BinOp) string {
	names := [...]string{"+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&&", "||"}
	if int(op) >= 0 && int(op) < len(names) {
		return names[op]
	}
	return "?"
}

func unaryOpString(op ast.UnaryOp) string {
	names := [...]string{"-", "!", "&", "*", "++", "--"}
	if int(op) >= 0 && int(op) < len(names) {
		return names[op]
	}
	return "?"
}

// dumpIR prints a translated Program: every function's signature,
// hoisted locals, and body, resolving intern.Ids back to source names so
// the output reads like source rather than a table of integers.
func dumpIR(prog *cir.Program, in *intern.Interner) {
	for _, fn := range prog.ExternFunctions {
		fmt.Printf("extern fn %s(...) -> %s\n", fn.Name, fn.Return)
	}
	for _, fn := range prog.Functions {
		fmt.Printf("fn %s -> %s\n", fn.Name, fn.Return)
		for _, p := range fn.Params {
			fmt.Printf("  param %s: %s\n", in.Resolve(p.ID), p.Type)
		}
		for _, l := range fn.LocalDecls {
			fmt.Printf("  local %s: %s\n", in.Resolve(l.ID), l.Type)
		}
		dumpIRBlock(fn.Body, in, 1)
	}
}

func dumpIRBlock(b *cir.Block, in *intern.Interner, indent int) {
	pad := indentStr(indent)
	fmt.Printf("%sblock (%d statements)\n", pad, len(b.Stmts))
	for _, s := range b.Stmts {
		dumpIRStmt(s, in, indent+1)
	}
}

func dumpIRStmt(s cir.Stmt, in *intern.Interner, indent int) {
	pad := indentStr(indent)
	switch st := s.(type) {
	case *cir.Block:
		dumpIRBlock(st, in, indent)
	case *cir.If:
		fmt.Printf("%sif\n", pad)
		dumpIRExpr(st.Cond, in, indent+1)
		dumpIRBlock(st.Then, in, indent+1)
		dumpIRBlock(st.Else, in, indent+1)
	case *cir.For:
		fmt.Printf("%sfor\n", pad)
		if st.Cond != nil {
			dumpIRExpr(st.Cond, in, indent+1)
		}
		dumpIRBlock(st.Body, in, indent+1)
	case *cir.Return:
		fmt.Printf("%sreturn\n", pad)
		if st.Value != nil {
			dumpIRExpr(st.Value, in, indent+1)
		}
	case *cir.Expression:
		fmt.Printf("%sexpr\n", pad)
		dumpIRExpr(st.X, in, indent+1)
	case *cir.Break:
		fmt.Printf("%sbreak\n", pad)
	case *cir.Continue:
		fmt.Printf("%scontinue\n", pad)
	default:
		fmt.Printf("%s%T\n", pad, s)
	}
}

func dumpIRExpr(e cir.Expr, in *intern.Interner, indent int) {
	pad := indentStr(indent)
	switch n := e.(type) {
	case *cir.Value:
		switch n.Kind {
		case cir.ValLocal:
			fmt.Printf("%slocal %s : %s\n", pad, in.Resolve(n.Local), n.Type())
		case cir.ValGlobal:
			fmt.Printf("%sglobal %s : %s\n", pad, n.Global, n.Type())
		default:
			fmt.Printf("%sliteral %+v : %s\n", pad, n.Literal, n.Type())
		}
	case *cir.BinaryOperator:
		fmt.Printf("%sbinop %d : %s\n", pad, n.Op, n.Type())
		dumpIRExpr(n.X, in, indent+1)
		dumpIRExpr(n.Y, in, indent+1)
	case *cir.UnaryOperator:
		fmt.Printf("%sunop %d : %s\n", pad, n.Op, n.Type())
		dumpIRExpr(n.X, in, indent+1)
	case *cir.Assign:
		fmt.Printf("%sassign : %s\n", pad, n.Type())
		dumpIRExpr(n.Target, in, indent+1)
		dumpIRExpr(n.Value, in, indent+1)
	case *cir.FunctionCall:
		fmt.Printf("%scall (%d args) : %s\n", pad, len(n.Args), n.Type())
		dumpIRExpr(n.Callee, in, indent+1)
		for _, a := range n.Args {
			dumpIRExpr(a, in, indent+1)
		}
	case *cir.FieldAccess:
		fmt.Printf("%sfield[%d] : %s\n", pad, n.Index, n.Type())
		dumpIRExpr(n.X, in, indent+1)
	case *cir.LValueToRValue:
		fmt.Printf("%sload : %s\n", pad, n.Type())
		dumpIRExpr(n.X, in, indent+1)
	case *cir.RValueToLValue:
		fmt.Printf("%smaterialize : %s\n", pad, n.Type())
		dumpIRExpr(n.X, in, indent+1)
	default:
		fmt.Printf("%s%T : %s\n", pad, e, e.Type())
	}
}

func indentStr(n int) string {
	s := ""
	for i := 0; i < n; i++ {
		s += "  "
	}
	return s
}

// irToJSONTree builds a plain map/slice tree of a translated Program
// suitable for json.Marshal, so the ir subcommand's --format json output
// can be queried with gjson and golden fixtures patched with sjson
// instead of hand-parsing the text dump in dumpIR.
func irToJSONTree(prog *cir.Program, in *intern.Interner) map[string]any {
	externs := make([]map[string]any, 0, len(prog.ExternFunctions))
	for _, fn := range prog.ExternFunctions {
		externs = append(externs, map[string]any{
			"name":   fn.Name,
			"return": fn.Return.String(),
		})
	}

	functions := make([]map[string]any, 0, len(prog.Functions))
	for _, fn := range prog.Functions {
		params := make([]map[string]any, 0, len(fn.Params))
		for _, p := range fn.Params {
			params = append(params, map[string]any{
				"name": in.Resolve(p.ID),
				"type": p.Type.String(),
			})
		}
		locals := make([]map[string]any, 0, len(fn.LocalDecls))
		for _, l := range fn.LocalDecls {
			locals = append(locals, map[string]any{
				"name": in.Resolve(l.ID),
				"type": l.Type.String(),
			})
		}
		functions = append(functions, map[string]any{
			"name":       fn.Name,
			"return":     fn.Return.String(),
			"params":     params,
			"locals":     locals,
			"statements": len(fn.Body.Stmts),
		})
	}

	return map[string]any{
		"externs":   externs,
		"functions": functions,
	}
}
