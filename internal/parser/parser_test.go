package parser

import (
	"testing"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.New(src))
	prog, err := p.ParseProgram()
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	return prog
}

func TestParseStructDecl(t *testing.T) {
	prog := parseProgram(t, `struct Point { x: int, y: int }`)
	if len(prog.Decls) != 1 {
		t.Fatalf("expected 1 decl, got %d", len(prog.Decls))
	}
	sd, ok := prog.Decls[0].(*ast.StructDecl)
	if !ok {
		t.Fatalf("expected *ast.StructDecl, got %T", prog.Decls[0])
	}
	if sd.Name != "Point" || len(sd.Fields) != 2 {
		t.Fatalf("unexpected struct decl: %+v", sd)
	}
	if sd.Fields[1].Name != "y" {
		t.Fatalf("expected second field y, got %s", sd.Fields[1].Name)
	}
}

func TestParseExternFuncDeclVariadic(t *testing.T) {
	prog := parseProgram(t, `extern fn printf(*int, ...): int;`)
	ed, ok := prog.Decls[0].(*ast.ExternFuncDecl)
	if !ok {
		t.Fatalf("expected *ast.ExternFuncDecl, got %T", prog.Decls[0])
	}
	if !ed.Variadic || len(ed.Params) != 1 {
		t.Fatalf("unexpected extern decl: %+v", ed)
	}
}

func TestParseFuncDeclWithParamsAndBody(t *testing.T) {
	prog := parseProgram(t, `fn add(a: int, b: int): int { return a + b; }`)
	fd, ok := prog.Decls[0].(*ast.FuncDecl)
	if !ok {
		t.Fatalf("expected *ast.FuncDecl, got %T", prog.Decls[0])
	}
	if len(fd.Params) != 2 || fd.Params[0].Name != "a" {
		t.Fatalf("unexpected params: %+v", fd.Params)
	}
	if len(fd.Body.Stmts) != 1 {
		t.Fatalf("expected 1 statement in body, got %d", len(fd.Body.Stmts))
	}
	ret, ok := fd.Body.Stmts[0].(*ast.ReturnStmt)
	if !ok {
		t.Fatalf("expected *ast.ReturnStmt, got %T", fd.Body.Stmts[0])
	}
	bin, ok := ret.Value.(*ast.BinaryExpr)
	if !ok || bin.Op != ast.OpAdd {
		t.Fatalf("expected a + b, got %+v", ret.Value)
	}
}

func TestOperatorPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3;", "(1+(2*3))"},
		{"(1 + 2) * 3;", "((1+2)*3)"},
		{"a = b = c;", "(a=(b=c))"},
		{"a < b && c < d;", "((a<b)&&(c<d))"},
		{"-a + b;", "((-a)+b)"},
		{"a.b.c;", "((a.b).c)"},
		{"a[0][1];", "((a[0])[1])"},
		{"f(1,2) + 3;", "(f(1,2)+3)"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseProgram(t, "fn main(): void { "+tt.src+" }")
			fd := prog.Decls[0].(*ast.FuncDecl)
			es := fd.Body.Stmts[0].(*ast.ExprStmt)
			got := renderExpr(es.X)
			if got != tt.want {
				t.Fatalf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseIfElseIfChain(t *testing.T) {
	prog := parseProgram(t, `fn main(): void {
		if (a) { return; } else if (b) { return; } else { return; }
	}`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	ifs := fd.Body.Stmts[0].(*ast.IfStmt)
	elseIf, ok := ifs.Else.(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected else-if chain, got %T", ifs.Else)
	}
	if _, ok := elseIf.Else.(*ast.BlockStmt); !ok {
		t.Fatalf("expected trailing else block, got %T", elseIf.Else)
	}
}

func TestParseForLoopAllClausesOptional(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { for (;;) { break; } }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	fs := fd.Body.Stmts[0].(*ast.ForStmt)
	if fs.Init != nil || fs.Cond != nil || fs.Step != nil {
		t.Fatalf("expected all clauses nil, got %+v", fs)
	}
}

func TestParseForLoopWithLetInit(t *testing.T) {
	prog := parseProgram(t, `fn main(): int {
		let x: int = 0;
		for (let i: int = 0; i < 10; ++i) { x = x + i; }
		return x;
	}`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	fs := fd.Body.Stmts[1].(*ast.ForStmt)
	if _, ok := fs.Init.(*ast.LetStmt); !ok {
		t.Fatalf("expected LetStmt init, got %T", fs.Init)
	}
	if _, ok := fs.Step.(*ast.UnaryExpr); !ok {
		t.Fatalf("expected pre-increment step, got %T", fs.Step)
	}
}

func TestParseStructLiteral(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { let p: P = P{x: 3, y: 4}; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	let := fd.Body.Stmts[0].(*ast.LetStmt)
	sl, ok := let.Value.(*ast.StructLiteral)
	if !ok {
		t.Fatalf("expected *ast.StructLiteral, got %T", let.Value)
	}
	if sl.TypeName != "P" || len(sl.Fields) != 2 || sl.Fields[1].Name != "y" {
		t.Fatalf("unexpected struct literal: %+v", sl)
	}
}

func TestParseArrayFillLiteral(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { let a: [3]int = [0; 3]; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	let := fd.Body.Stmts[0].(*ast.LetStmt)
	fill, ok := let.Value.(*ast.ArrayFillLiteral)
	if !ok {
		t.Fatalf("expected *ast.ArrayFillLiteral, got %T", let.Value)
	}
	if _, ok := fill.Value.(*ast.IntLiteral); !ok {
		t.Fatalf("expected int literal fill value, got %T", fill.Value)
	}
}

func TestParseTupleLiteralAndType(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { let t: (int, double) = (1, 2.5); }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	let := fd.Body.Stmts[0].(*ast.LetStmt)
	tt, ok := let.Type.(*ast.TupleType)
	if !ok || len(tt.Elems) != 2 {
		t.Fatalf("expected tuple type of arity 2, got %+v", let.Type)
	}
	tl, ok := let.Value.(*ast.TupleLiteral)
	if !ok || len(tl.Elems) != 2 {
		t.Fatalf("expected tuple literal of arity 2, got %+v", let.Value)
	}
}

func TestParseCastExpression(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { let x: double = 1 as double; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	let := fd.Body.Stmts[0].(*ast.LetStmt)
	cast, ok := let.Value.(*ast.CastExpr)
	if !ok {
		t.Fatalf("expected *ast.CastExpr, got %T", let.Value)
	}
	if nt, ok := cast.Type.(*ast.NamedType); !ok || nt.Name != "double" {
		t.Fatalf("expected cast to double, got %+v", cast.Type)
	}
}

func TestParseFunctionPointerType(t *testing.T) {
	prog := parseProgram(t, `fn main(): void { let f: fn(int, int): int = nullptr; }`)
	fd := prog.Decls[0].(*ast.FuncDecl)
	let := fd.Body.Stmts[0].(*ast.LetStmt)
	fp, ok := let.Type.(*ast.FunctionPtrType)
	if !ok || len(fp.Params) != 2 {
		t.Fatalf("expected fn(int,int):int, got %+v", let.Type)
	}
}

func TestParseErrorAbortsAfterFirst(t *testing.T) {
	p := New(lexer.New(`fn main(): int { return )( ; }`))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	pe, ok := err.(*ParseError)
	if !ok {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if pe.Kind != ExpectedExpression {
		t.Fatalf("expected ExpectedExpression, got %s", pe.Kind)
	}
}

func TestParseMissingSemicolonReportsExpectedToken(t *testing.T) {
	p := New(lexer.New(`fn main(): void { let x: int = 1 }`))
	_, err := p.ParseProgram()
	if err == nil {
		t.Fatalf("expected a parse error")
	}
	if err.(*ParseError).Kind != ExpectedToken {
		t.Fatalf("expected ExpectedToken, got %s", err.(*ParseError).Kind)
	}
}

// renderExpr renders an expression as a fully-parenthesized string so
// precedence and associativity tests can assert on shape without a full
// pretty-printer.
func renderExpr(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.Ident:
		return n.Name
	case *ast.IntLiteral:
		return n.Text
	case *ast.FloatLiteral:
		return n.Text
	case *ast.BinaryExpr:
		return "(" + renderExpr(n.X) + binOpStr(n.Op) + renderExpr(n.Y) + ")"
	case *ast.AssignExpr:
		return "(" + renderExpr(n.Target) + "=" + renderExpr(n.Value) + ")"
	case *ast.UnaryExpr:
		return "(" + unaryOpStr(n.Op) + renderExpr(n.X) + ")"
	case *ast.FieldExpr:
		return "(" + renderExpr(n.X) + "." + n.Name + ")"
	case *ast.IndexExpr:
		return "(" + renderExpr(n.X) + "[" + renderExpr(n.Index) + "])"
	case *ast.CallExpr:
		s := renderExpr(n.Callee) + "("
		for i, a := range n.Args {
			if i > 0 {
				s += ","
			}
			s += renderExpr(a)
		}
		return s + ")"
	default:
		return "?"
	}
}

func binOpStr(op ast.BinOp) string {
	switch op {
	case ast.OpAdd:
		return "+"
	case ast.OpSub:
		return "-"
	case ast.OpMul:
		return "*"
	case ast.OpDiv:
		return "/"
	case ast.OpLess:
		return "<"
	case ast.OpAnd:
		return "&&"
	default:
		return "?"
	}
}

func unaryOpStr(op ast.UnaryOp) string {
	switch op {
	case ast.OpNeg:
		return "-"
	case ast.OpNot:
		return "!"
	case ast.OpAddr:
		return "&"
	case ast.OpDeref:
		return "*"
	default:
		return "?"
	}
}
