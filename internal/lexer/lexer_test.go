package lexer

import "testing"

func TestNextTokenPunctuationAndOperators(t *testing.T) {
	input := `(){}[];:,.-> ... = == != < <= > >= ! && || & + - * / % ++ --`

	tests := []TokenType{
		LPAREN, RPAREN, LBRACE, RBRACE, LBRACK, RBRACK, SEMICOLON, COLON, COMMA, DOT, ARROW, ELLIPSIS,
		ASSIGN, EQ, NOT_EQ, LESS, LESS_EQ, GREATER, GREATER_EQ, NOT, AND_AND, OR_OR, AMP,
		PLUS, MINUS, ASTERISK, SLASH, PERCENT, INC, DEC, EOF,
	}

	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %s, want %s (literal %q)", i, tok.Type, want, tok.Literal)
		}
	}
}

func TestNextTokenKeywordsAndIdentifiers(t *testing.T) {
	input := `extern while for if else return true false continue break struct as fn let nullptr myVar _x`

	tests := []struct {
		tt      TokenType
		literal string
	}{
		{EXTERN, "extern"}, {WHILE, "while"}, {FOR, "for"}, {IF, "if"}, {ELSE, "else"},
		{RETURN, "return"}, {TRUE, "true"}, {FALSE, "false"}, {CONTINUE, "continue"},
		{BREAK, "break"}, {STRUCT, "struct"}, {AS, "as"}, {FN, "fn"}, {LET, "let"},
		{NULLPTR, "nullptr"}, {IDENT, "myVar"}, {IDENT, "_x"},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.tt || tok.Literal != tt.literal {
			t.Fatalf("token %d: got %s(%q), want %s(%q)", i, tok.Type, tok.Literal, tt.tt, tt.literal)
		}
	}
}

func TestReservedIdentifier(t *testing.T) {
	l := New(`___reserved`)
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != ReservedIdentifier {
		t.Fatalf("expected one ReservedIdentifier error, got %v", l.Errors())
	}
}

func TestUnknownChar(t *testing.T) {
	l := New("`")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != UnknownChar {
		t.Fatalf("expected one UnknownChar error, got %v", l.Errors())
	}
}

func TestUnparsableNumber(t *testing.T) {
	l := New("123abc")
	tok := l.NextToken()
	if tok.Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 || l.Errors()[0].Kind != UnparsableNumber {
		t.Fatalf("expected one UnparsableNumber error, got %v", l.Errors())
	}
}

func TestNumberLiterals(t *testing.T) {
	tests := []struct {
		input string
		tt    TokenType
	}{
		{"123", INT},
		{"123.45", FLOAT},
		{"1.5e10", FLOAT},
		{"1.5e+10", FLOAT},
		{"1.5e-10", FLOAT},
		{"0", INT},
	}
	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != tt.tt || tok.Literal != tt.input {
			t.Errorf("input %q: got %s(%q), want %s", tt.input, tok.Type, tok.Literal, tt.tt)
		}
	}
}

func TestStringLiteralWithEscapedQuote(t *testing.T) {
	l := New(`"hi \"there\""`)
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	want := `hi "there"`
	if tok.Literal != want {
		t.Fatalf("got %q, want %q", tok.Literal, want)
	}
}

func TestStringLiteralFoldsFullwidthForms(t *testing.T) {
	// U+FF21 FULLWIDTH LATIN CAPITAL LETTER A folds to ASCII 'A'.
	l := New("\"ＡBC\"")
	tok := l.NextToken()
	if tok.Type != STRING {
		t.Fatalf("got %s, want STRING", tok.Type)
	}
	if tok.Literal != "ABC" {
		t.Fatalf("got %q, want %q", tok.Literal, "ABC")
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	input := "// line comment\n# preprocessor-style comment\n/* block\ncomment */\nlet"
	l := New(input)
	tok := l.NextToken()
	if tok.Type != LET {
		t.Fatalf("got %s, want LET (comments should be skipped)", tok.Type)
	}
}

func TestPreserveComments(t *testing.T) {
	l := New("// hi\nlet", WithPreserveComments(true))
	tok := l.NextToken()
	if tok.Type != COMMENT {
		t.Fatalf("got %s, want COMMENT", tok.Type)
	}
	tok = l.NextToken()
	if tok.Type != LET {
		t.Fatalf("got %s, want LET", tok.Type)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	l := New("let x")
	first := l.Peek(0)
	if first.Type != LET {
		t.Fatalf("Peek(0) = %s, want LET", first.Type)
	}
	second := l.Peek(1)
	if second.Type != IDENT {
		t.Fatalf("Peek(1) = %s, want IDENT", second.Type)
	}
	// Still buffered: NextToken must return LET first.
	tok := l.NextToken()
	if tok.Type != LET {
		t.Fatalf("NextToken() = %s, want LET", tok.Type)
	}
}

func TestUTF8BOMStripped(t *testing.T) {
	l := New("\xEF\xBB\xBFlet")
	tok := l.NextToken()
	if tok.Type != LET {
		t.Fatalf("got %s, want LET", tok.Type)
	}
}

func TestPositionTracking(t *testing.T) {
	l := New("let\nx")
	tok := l.NextToken()
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Fatalf("got %+v, want line 1 col 1", tok.Pos)
	}
	tok = l.NextToken()
	if tok.Pos.Line != 2 {
		t.Fatalf("got line %d, want 2", tok.Pos.Line)
	}
}
