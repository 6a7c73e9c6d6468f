package diag

import (
	"strings"
	"testing"

	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/internal/parser"
	"github.com/coreaot/coreaot/pkg/token"
)

func TestFromLexErrorsAdaptsKindAndSpan(t *testing.T) {
	pos := token.Position{Line: 3, Column: 7}
	ds := FromLexErrors([]lexer.LexerError{
		{Kind: lexer.UnknownChar, Message: "unexpected character '$'", Pos: pos},
	})
	if len(ds) != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", len(ds))
	}
	d := ds[0]
	if d.Stage != "lex" || d.Kind != "UnknownChar" {
		t.Fatalf("unexpected stage/kind: %s/%s", d.Stage, d.Kind)
	}
	if d.Span.Start != pos || d.Span.End != pos {
		t.Fatalf("expected a zero-width span at %s, got %s", pos, d.Span)
	}
}

func TestFromParseErrorReturnsNilForNonParseError(t *testing.T) {
	if d := FromParseError(nil); d != nil {
		t.Fatalf("expected nil for a nil error, got %+v", d)
	}
}

func TestFromParseErrorAdaptsSpan(t *testing.T) {
	sp := token.Span{Start: token.Position{Line: 1, Column: 1}, End: token.Position{Line: 1, Column: 4}}
	err := &parser.ParseError{Kind: parser.ExpectedExpression, Message: "expected expression", Span: sp}
	d := FromParseError(err)
	if d == nil {
		t.Fatalf("expected a non-nil diagnostic")
	}
	if d.Stage != "parse" || d.Span != sp {
		t.Fatalf("unexpected stage/span: %s/%s", d.Stage, d.Span)
	}
}

func TestBagHasErrorsOnlyWhenAnErrorSeverityIsPresent(t *testing.T) {
	var b Bag
	if b.HasErrors() {
		t.Fatalf("empty bag should not report errors")
	}
	b.Add(&Diagnostic{Severity: SeverityWarning, Message: "advisory"})
	if b.HasErrors() {
		t.Fatalf("a bag with only warnings should not report errors")
	}
	b.Add(&Diagnostic{Severity: SeverityError, Message: "fatal"})
	if !b.HasErrors() {
		t.Fatalf("expected HasErrors to be true once an error is added")
	}
}

func TestBagAddSkipsNilDiagnostics(t *testing.T) {
	var b Bag
	b.Add(nil, &Diagnostic{Message: "real"}, nil)
	if len(b.Diagnostics()) != 1 {
		t.Fatalf("expected nils to be dropped, got %d diagnostics", len(b.Diagnostics()))
	}
}

func TestRenderIncludesSourceLineAndCaret(t *testing.T) {
	source := "fn add(a: int, b: int): int {\n\treturn a + b;\n}\n"
	var b Bag
	b.Add(&Diagnostic{
		Severity: SeverityError,
		Stage:    "translate",
		Kind:     "UndeclaredName",
		Message:  "undeclared name 'c'",
		Span: token.Span{
			Start: token.Position{Line: 2, Column: 9},
			End:   token.Position{Line: 2, Column: 10},
		},
	})
	out := b.Render(source, "sum.ca", false)
	if !strings.Contains(out, "return a + b;") {
		t.Fatalf("expected the offending source line in the rendered output, got %q", out)
	}
	if !strings.Contains(out, "sum.ca:2:9") {
		t.Fatalf("expected a file:line:column location, got %q", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("expected a caret pointing at the span, got %q", out)
	}
}

func TestRenderJoinsMultipleDiagnosticsWithBlankLine(t *testing.T) {
	var b Bag
	b.Add(
		&Diagnostic{Message: "first", Span: token.Span{Start: token.Position{Line: 1, Column: 1}}},
		&Diagnostic{Message: "second", Span: token.Span{Start: token.Position{Line: 2, Column: 1}}},
	)
	out := b.Render("a\nb\n", "", false)
	if !strings.Contains(out, "first") || !strings.Contains(out, "second") {
		t.Fatalf("expected both diagnostics rendered, got %q", out)
	}
	if !strings.Contains(out, "\n\n") {
		t.Fatalf("expected diagnostics to be separated by a blank line")
	}
}
