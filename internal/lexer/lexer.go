// Package lexer implements a single-pass, rewindable scanner: source
// bytes in, a stream of spanned Tokens out.
package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Lexer scans source text into a stream of Tokens.
//
// # Unicode and column positions
//
// Column positions are counted in runes, not bytes or display cells: a
// multi-byte sequence (e.g. "Δ") advances the column by one, matching the
// teacher's documented trade-off of simplicity and reproducibility over
// terminal-accurate display width.
type Lexer struct {
	input            string
	errors           []LexerError
	tokenBuffer      []Token
	position         int
	readPosition     int
	line             int
	column           int
	ch               rune
	preserveComments bool
}

// LexerState is a snapshot of the Lexer usable to backtrack the parser's
// speculative lookahead without re-lexing from the start.
type LexerState struct {
	tokenBuffer  []Token
	position     int
	readPosition int
	line         int
	column       int
	ch           rune
}

// LexerOption configures a Lexer at construction time.
type LexerOption func(*Lexer)

// WithPreserveComments makes NextToken return COMMENT tokens instead of
// silently skipping them, for tools that render source with comments intact.
func WithPreserveComments(preserve bool) LexerOption {
	return func(l *Lexer) { l.preserveComments = preserve }
}

// New creates a Lexer over input, stripping a leading UTF-8 BOM if present.
func New(input string, opts ...LexerOption) *Lexer {
	if len(input) >= 3 && input[0] == 0xEF && input[1] == 0xBB && input[2] == 0xBF {
		input = input[3:]
	}

	l := &Lexer{input: input, line: 1, column: 0}
	for _, opt := range opts {
		opt(l)
	}
	l.readChar()
	return l
}

// Errors returns all lexical diagnostics accumulated so far.
func (l *Lexer) Errors() []LexerError {
	return l.errors
}

func (l *Lexer) addError(kind ErrorKind, msg string, pos Position) {
	l.errors = append(l.errors, LexerError{Kind: kind, Message: msg, Pos: pos})
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = l.readPosition
		l.column++
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

func (l *Lexer) currentPos() Position {
	return Position{Line: l.line, Column: l.column, Offset: l.position}
}

// SaveState captures the lexer's position for later restoration, used by
// the parser's one-token rewind buffer and speculative backtracking.
func (l *Lexer) SaveState() LexerState {
	bufferCopy := make([]Token, len(l.tokenBuffer))
	copy(bufferCopy, l.tokenBuffer)
	return LexerState{
		position: l.position, readPosition: l.readPosition,
		ch: l.ch, line: l.line, column: l.column,
		tokenBuffer: bufferCopy,
	}
}

// RestoreState restores a previously saved LexerState.
func (l *Lexer) RestoreState(s LexerState) {
	l.position, l.readPosition = s.position, s.readPosition
	l.ch, l.line, l.column = s.ch, s.line, s.column
	l.tokenBuffer = s.tokenBuffer
}

// Peek returns the token n positions ahead without consuming it, buffering
// tokens lazily as needed.
func (l *Lexer) Peek(n int) Token {
	for len(l.tokenBuffer) <= n {
		l.tokenBuffer = append(l.tokenBuffer, l.scan())
	}
	return l.tokenBuffer[n]
}

// NextToken returns the next token, draining the peek buffer first.
func (l *Lexer) NextToken() Token {
	if len(l.tokenBuffer) > 0 {
		tok := l.tokenBuffer[0]
		l.tokenBuffer = l.tokenBuffer[1:]
		return tok
	}
	return l.scan()
}

// skipIgnored skips whitespace and the three comment forms (`//` line,
// `#` line, `/* */` block) greedily before each token.
func (l *Lexer) skipIgnored() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '\n':
			l.line++
			l.column = 0
			l.readChar()
		case l.startsComment():
			if l.preserveComments {
				return
			}
			l.consumeComment()
		default:
			return
		}
	}
}

// startsComment reports whether the lexer is positioned at the start of a
// `//` line comment, `#` preprocessor-style line comment, or `/* */` block
// comment — the three forms skipIgnored skips greedily before each token.
func (l *Lexer) startsComment() bool {
	return (l.ch == '/' && l.peekChar() == '/') || l.ch == '#' || (l.ch == '/' && l.peekChar() == '*')
}

func (l *Lexer) consumeComment() {
	switch {
	case l.ch == '/' && l.peekChar() == '*':
		l.skipBlockComment()
	default:
		l.skipLineComment()
	}
}

func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar() // '/'
	l.readChar() // '*'
	for l.ch != 0 {
		if l.ch == '*' && l.peekChar() == '/' {
			l.readChar()
			l.readChar()
			return
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		l.readChar()
	}
}

// readComment reads one comment (of any of the three forms) as a single
// COMMENT token, used only when WithPreserveComments is set.
func (l *Lexer) readComment(pos Position) Token {
	start := l.position
	l.consumeComment()
	return NewToken(COMMENT, l.input[start:l.position], pos)
}

// tokenHandlers dispatches multi-character punctuation/operators that begin
// with an ambiguous first rune; order-independent, each handler is
// responsible for the longest-match rule for its own lead character.
var tokenHandlers = map[rune]func(*Lexer, Position) Token{
	'+': (*Lexer).handlePlus,
	'-': (*Lexer).handleMinus,
	'=': (*Lexer).handleEquals,
	'!': (*Lexer).handleBang,
	'<': (*Lexer).handleLess,
	'>': (*Lexer).handleGreater,
	'&': (*Lexer).handleAmp,
	'|': (*Lexer).handleOr,
	'.': (*Lexer).handleDot,
}

func (l *Lexer) handlePlus(pos Position) Token {
	if l.peekChar() == '+' {
		l.readChar()
		l.readChar()
		return NewToken(INC, "++", pos)
	}
	l.readChar()
	return NewToken(PLUS, "+", pos)
}

func (l *Lexer) handleMinus(pos Position) Token {
	if l.peekChar() == '-' {
		l.readChar()
		l.readChar()
		return NewToken(DEC, "--", pos)
	}
	if l.peekChar() == '>' {
		l.readChar()
		l.readChar()
		return NewToken(ARROW, "->", pos)
	}
	l.readChar()
	return NewToken(MINUS, "-", pos)
}

func (l *Lexer) handleEquals(pos Position) Token {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return NewToken(EQ, "==", pos)
	}
	l.readChar()
	return NewToken(ASSIGN, "=", pos)
}

func (l *Lexer) handleBang(pos Position) Token {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return NewToken(NOT_EQ, "!=", pos)
	}
	l.readChar()
	return NewToken(NOT, "!", pos)
}

func (l *Lexer) handleLess(pos Position) Token {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return NewToken(LESS_EQ, "<=", pos)
	}
	l.readChar()
	return NewToken(LESS, "<", pos)
}

func (l *Lexer) handleGreater(pos Position) Token {
	if l.peekChar() == '=' {
		l.readChar()
		l.readChar()
		return NewToken(GREATER_EQ, ">=", pos)
	}
	l.readChar()
	return NewToken(GREATER, ">", pos)
}

func (l *Lexer) handleAmp(pos Position) Token {
	if l.peekChar() == '&' {
		l.readChar()
		l.readChar()
		return NewToken(AND_AND, "&&", pos)
	}
	l.readChar()
	return NewToken(AMP, "&", pos)
}

func (l *Lexer) handleOr(pos Position) Token {
	if l.peekChar() == '|' {
		l.readChar()
		l.readChar()
		return NewToken(OR_OR, "||", pos)
	}
	l.readChar()
	l.addError(UnknownChar, "unknown character '|'", pos)
	return NewToken(ILLEGAL, "|", pos)
}

func (l *Lexer) handleDot(pos Position) Token {
	if l.peekChar() == '.' {
		l.readChar()
		if l.peekChar() == '.' {
			l.readChar()
			l.readChar()
			return NewToken(ELLIPSIS, "...", pos)
		}
		// ".." is not a valid token in this language; both dots are
		// consumed into a single ILLEGAL token.
		l.readChar()
		l.addError(UnknownChar, "unexpected '..'", pos)
		return NewToken(ILLEGAL, "..", pos)
	}
	l.readChar()
	return NewToken(DOT, ".", pos)
}

// simpleTokens are single-character punctuation with no multi-char variant.
var simpleTokens = map[rune]TokenType{
	'(': LPAREN, ')': RPAREN,
	'{': LBRACE, '}': RBRACE,
	'[': LBRACK, ']': RBRACK,
	';': SEMICOLON, ':': COLON, ',': COMMA,
	'*': ASTERISK, '%': PERCENT,
}

func (l *Lexer) scan() Token {
	l.skipIgnored()
	pos := l.currentPos()

	switch {
	case l.ch == 0:
		return NewToken(EOF, "", pos)
	case l.preserveComments && l.startsComment():
		return l.readComment(pos)
	case l.ch == '"':
		return l.readStringLiteral(pos)
	case isIdentStart(l.ch):
		return l.readIdentifierOrKeyword(pos)
	case isDigit(l.ch):
		return l.readNumber(pos)
	case l.ch == '/':
		l.readChar()
		return NewToken(SLASH, "/", pos)
	}

	if handler, ok := tokenHandlers[l.ch]; ok {
		return handler(l, pos)
	}
	if tt, ok := simpleTokens[l.ch]; ok {
		lit := string(l.ch)
		l.readChar()
		return NewToken(tt, lit, pos)
	}

	bad := l.ch
	l.addError(UnknownChar, "unknown character "+strconvQuoteRune(bad), pos)
	l.readChar()
	return NewToken(ILLEGAL, string(bad), pos)
}

func strconvQuoteRune(r rune) string {
	return "'" + string(r) + "'"
}

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

// readIdentifierOrKeyword reads `[A-Za-z_][A-Za-z0-9_]*` and classifies it.
// Identifiers beginning with three underscores are reserved.
func (l *Lexer) readIdentifierOrKeyword(pos Position) Token {
	start := l.position
	for isIdentPart(l.ch) {
		l.readChar()
	}
	text := l.input[start:l.position]

	if strings.HasPrefix(text, "___") {
		l.addError(ReservedIdentifier, "reserved identifier: "+text, pos)
		return NewToken(ILLEGAL, text, pos)
	}

	return NewToken(LookupIdent(text), text, pos)
}

// readNumber reads an integer or double literal. A double requires a literal
// `.` followed by at least one digit, with an optional exponent; this
// disambiguates `3.` method/field access ambiguity is avoided entirely since
// this language has no trailing-dot float form.
func (l *Lexer) readNumber(pos Position) Token {
	start := l.position
	for isDigit(l.ch) {
		l.readChar()
	}

	isFloat := false
	if l.ch == '.' && isDigit(l.peekChar()) {
		isFloat = true
		l.readChar() // consume '.'
		for isDigit(l.ch) {
			l.readChar()
		}
	}

	if l.ch == 'e' || l.ch == 'E' {
		save := l.SaveState()
		l.readChar()
		if l.ch == '+' || l.ch == '-' {
			l.readChar()
		}
		if isDigit(l.ch) {
			isFloat = true
			for isDigit(l.ch) {
				l.readChar()
			}
		} else {
			// not actually an exponent; rewind
			l.RestoreState(save)
		}
	}

	text := l.input[start:l.position]

	// A digit sequence directly followed by identifier characters (e.g.
	// "123abc", "1.5ex") is an unparsable number, not a number token
	// followed by an identifier token.
	if isIdentStart(l.ch) {
		for isIdentPart(l.ch) {
			l.readChar()
		}
		bad := l.input[start:l.position]
		l.addError(UnparsableNumber, "unparsable number literal: "+bad, pos)
		return NewToken(ILLEGAL, bad, pos)
	}

	if isFloat {
		return NewToken(FLOAT, text, pos)
	}
	return NewToken(INT, text, pos)
}

// readStringLiteral reads a "…" string literal with \" as an escaped quote.
func (l *Lexer) readStringLiteral(pos Position) Token {
	startLine, startColumn, startOffset := l.line, l.column, l.position
	l.readChar() // opening quote

	var b strings.Builder
	for l.ch != 0 && l.ch != '"' {
		if l.ch == '\\' && l.peekChar() == '"' {
			b.WriteByte('"')
			l.readChar()
			l.readChar()
			continue
		}
		if l.ch == '\\' {
			switch l.peekChar() {
			case 'n':
				b.WriteByte('\n')
				l.readChar()
				l.readChar()
				continue
			case 't':
				b.WriteByte('\t')
				l.readChar()
				l.readChar()
				continue
			case '\\':
				b.WriteByte('\\')
				l.readChar()
				l.readChar()
				continue
			}
		}
		if l.ch == '\n' {
			l.line++
			l.column = 0
		}
		// Fullwidth and halfwidth forms (e.g. U+FF02 fullwidth quotation
		// mark) read as distinct runes from their ASCII look-alikes but
		// are easy to mistake for them; fold them to the canonical form
		// so a string literal's decoded content never silently carries
		// a visually-confusable double.
		switch width.LookupRune(l.ch).Kind() {
		case width.EastAsianFullwidth, width.EastAsianHalfwidth:
			b.WriteString(width.Fold.String(string(l.ch)))
		default:
			b.WriteRune(l.ch)
		}
		l.readChar()
	}

	if l.ch == 0 {
		l.addError(UnknownChar, "unterminated string literal",
			Position{Line: startLine, Column: startColumn, Offset: startOffset})
		return NewToken(STRING, b.String(), pos)
	}

	l.readChar() // closing quote
	return NewToken(STRING, b.String(), pos)
}
