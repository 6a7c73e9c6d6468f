// Package parser implements a recursive-descent, precedence-climbing
// parser: a token stream in, an *ast.Program out.
package parser

import (
	"fmt"

	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/pkg/token"
)

// Precedence levels, lowest to highest.
const (
	_ int = iota
	LOWEST
	ASSIGN      // = (right-assoc)
	LOGICAL_OR  // ||
	LOGICAL_AND // &&
	EQUALITY    // == !=
	RELATIONAL  // < <= > >=
	ADDITIVE    // + -
	MULTIPLICATIVE
	PREFIX // -x !x *x &x ++x --x
	POSTFIX
)

var precedences = map[lexer.TokenType]int{
	lexer.ASSIGN:     ASSIGN,
	lexer.OR_OR:      LOGICAL_OR,
	lexer.AND_AND:    LOGICAL_AND,
	lexer.EQ:         EQUALITY,
	lexer.NOT_EQ:     EQUALITY,
	lexer.LESS:       RELATIONAL,
	lexer.LESS_EQ:    RELATIONAL,
	lexer.GREATER:    RELATIONAL,
	lexer.GREATER_EQ: RELATIONAL,
	lexer.PLUS:       ADDITIVE,
	lexer.MINUS:      ADDITIVE,
	lexer.ASTERISK:   MULTIPLICATIVE,
	lexer.SLASH:      MULTIPLICATIVE,
	lexer.PERCENT:    MULTIPLICATIVE,
	lexer.LPAREN:     POSTFIX,
	lexer.LBRACK:     POSTFIX,
	lexer.DOT:        POSTFIX,
	lexer.AS:         POSTFIX,
	lexer.INC:        POSTFIX,
	lexer.DEC:        POSTFIX,
}

type prefixParseFn func() ast.Expr
type infixParseFn func(ast.Expr) ast.Expr

// Parser is a one-shot recursive-descent parser over a *lexer.Lexer. It
// follows a one-error, abort policy: the first error unwinds parsing back
// to ParseProgram via a bailout panic, the same technique go/parser uses
// internally to avoid threading an error return through every parse
// method.
type Parser struct {
	l    *lexer.Lexer
	cur  lexer.Token
	peek lexer.Token
	err  *ParseError

	prefixFns map[lexer.TokenType]prefixParseFn
	infixFns  map[lexer.TokenType]infixParseFn
}

// bailout unwinds the call stack to ParseProgram once p.err is set.
type bailout struct{}

// New creates a Parser over l.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}
	p.cur = l.NextToken()
	p.peek = l.NextToken()

	p.prefixFns = map[lexer.TokenType]prefixParseFn{
		lexer.IDENT:    p.parseIdent,
		lexer.INT:      p.parseIntLiteral,
		lexer.FLOAT:    p.parseFloatLiteral,
		lexer.STRING:   p.parseStringLiteral,
		lexer.TRUE:     p.parseBoolLiteral,
		lexer.FALSE:    p.parseBoolLiteral,
		lexer.NULLPTR:  p.parseNullptrLiteral,
		lexer.MINUS:    p.parseUnaryPrefix,
		lexer.NOT:      p.parseUnaryPrefix,
		lexer.ASTERISK: p.parseUnaryPrefix,
		lexer.AMP:      p.parseUnaryPrefix,
		lexer.INC:      p.parseUnaryPrefix,
		lexer.DEC:      p.parseUnaryPrefix,
		lexer.LPAREN:   p.parseGroupedOrTuple,
		lexer.LBRACK:   p.parseArrayLiteral,
	}

	p.infixFns = map[lexer.TokenType]infixParseFn{
		lexer.PLUS:       p.parseBinary,
		lexer.MINUS:      p.parseBinary,
		lexer.ASTERISK:   p.parseBinary,
		lexer.SLASH:      p.parseBinary,
		lexer.PERCENT:    p.parseBinary,
		lexer.EQ:         p.parseBinary,
		lexer.NOT_EQ:     p.parseBinary,
		lexer.LESS:       p.parseBinary,
		lexer.LESS_EQ:    p.parseBinary,
		lexer.GREATER:    p.parseBinary,
		lexer.GREATER_EQ: p.parseBinary,
		lexer.AND_AND:    p.parseBinary,
		lexer.OR_OR:      p.parseBinary,
		lexer.ASSIGN:     p.parseAssign,
		lexer.LPAREN:     p.parseCall,
		lexer.LBRACK:     p.parseIndex,
		lexer.DOT:        p.parseField,
		lexer.AS:         p.parseCast,
		lexer.INC:        p.parsePostfix,
		lexer.DEC:        p.parsePostfix,
	}
	return p
}

// ParseProgram parses the whole token stream. On the first error it
// returns the partial program built so far (which callers should discard)
// together with that error.
func (p *Parser) ParseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); ok {
				err = p.err
				return
			}
			panic(r)
		}
	}()

	prog = &ast.Program{}
	for p.cur.Type != lexer.EOF {
		prog.Decls = append(prog.Decls, p.parseDecl())
	}
	return prog, nil
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) pos() token.Position { return p.cur.Pos }

func (p *Parser) span(start token.Position) token.Span {
	return token.Span{Start: start, End: p.cur.Pos}
}

// fail records the parser's single error and bails out to ParseProgram.
func (p *Parser) fail(kind ErrorKind, msg string) {
	if p.err == nil {
		p.err = &ParseError{Kind: kind, Message: msg, Span: token.Span{Start: p.cur.Pos, End: p.cur.Pos}}
	}
	panic(bailout{})
}

// expect asserts cur.Type == tt, consumes it, and returns its position; on
// mismatch it fails with ExpectedToken.
func (p *Parser) expect(tt lexer.TokenType) token.Position {
	if p.cur.Type != tt {
		p.fail(ExpectedToken, fmt.Sprintf("expected %s, got %s %q", tt, p.cur.Type, p.cur.Literal))
	}
	pos := p.cur.Pos
	p.advance()
	return pos
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}
