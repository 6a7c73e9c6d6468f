package parser

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
	"github.com/coreaot/coreaot/pkg/token"
)

// parseExpression is the precedence-climbing core: it parses one prefix
// expression, then repeatedly extends it with infix/postfix operators
// whose precedence is at least minPrec.
func (p *Parser) parseExpression(minPrec int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.fail(ExpectedExpression, "unexpected token in expression: "+p.cur.Type.String())
	}
	left := prefix()

	for minPrec < p.curPrecedence() {
		infix, ok := p.infixFns[p.cur.Type]
		if !ok {
			p.fail(ExpectedExpression, "unexpected token in expression: "+p.cur.Type.String())
		}
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdent() ast.Expr {
	start := p.cur.Pos
	name := p.cur.Literal
	if p.peek.Type == lexer.LBRACE {
		return p.parseStructLiteral(start, name)
	}
	p.advance()
	return &ast.Ident{Name: name, Sp: p.span(start)}
}

func (p *Parser) parseStructLiteral(start lexer.Position, typeName string) ast.Expr {
	p.advance() // identifier
	p.expect(lexer.LBRACE)

	var fields []ast.StructLiteralField
	for p.cur.Type != lexer.RBRACE {
		name := p.parseIdentName()
		p.expect(lexer.COLON)
		value := p.parseExpression(LOWEST)
		fields = append(fields, ast.StructLiteralField{Name: name, Value: value})
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.StructLiteral{TypeName: typeName, Fields: fields, Sp: p.span(start)}
}

func (p *Parser) parseIntLiteral() ast.Expr {
	start := p.cur.Pos
	text := p.cur.Literal
	p.advance()
	return &ast.IntLiteral{Text: text, Sp: p.span(start)}
}

func (p *Parser) parseFloatLiteral() ast.Expr {
	start := p.cur.Pos
	text := p.cur.Literal
	p.advance()
	return &ast.FloatLiteral{Text: text, Sp: p.span(start)}
}

func (p *Parser) parseStringLiteral() ast.Expr {
	start := p.cur.Pos
	value := p.cur.Literal
	p.advance()
	return &ast.StringLiteral{Value: value, Sp: p.span(start)}
}

func (p *Parser) parseBoolLiteral() ast.Expr {
	start := p.cur.Pos
	value := p.cur.Type == lexer.TRUE
	p.advance()
	return &ast.BoolLiteral{Value: value, Sp: p.span(start)}
}

func (p *Parser) parseNullptrLiteral() ast.Expr {
	start := p.cur.Pos
	p.advance()
	return &ast.NullptrLiteral{Sp: p.span(start)}
}

var prefixUnaryOps = map[lexer.TokenType]ast.UnaryOp{
	lexer.MINUS:    ast.OpNeg,
	lexer.NOT:      ast.OpNot,
	lexer.AMP:      ast.OpAddr,
	lexer.ASTERISK: ast.OpDeref,
	lexer.INC:      ast.OpPreInc,
	lexer.DEC:      ast.OpPreDec,
}

func (p *Parser) parseUnaryPrefix() ast.Expr {
	start := p.cur.Pos
	op := prefixUnaryOps[p.cur.Type]
	p.advance()
	x := p.parseExpression(PREFIX)
	return &ast.UnaryExpr{Op: op, X: x, Sp: p.span(start)}
}

// parseGroupedOrTuple disambiguates `(expr)` from the tuple literal
// `(e1, e2, …)`: a single element with no trailing comma is a grouped
// expression, everything else is a TupleLiteral.
func (p *Parser) parseGroupedOrTuple() ast.Expr {
	start := p.expect(lexer.LPAREN)
	if p.cur.Type == lexer.RPAREN {
		p.advance()
		return &ast.TupleLiteral{Sp: p.span(start)}
	}

	first := p.parseExpression(LOWEST)
	if p.cur.Type != lexer.COMMA {
		p.expect(lexer.RPAREN)
		return first
	}

	elems := []ast.Expr{first}
	for p.cur.Type == lexer.COMMA {
		p.advance()
		if p.cur.Type == lexer.RPAREN {
			break
		}
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RPAREN)
	return &ast.TupleLiteral{Elems: elems, Sp: p.span(start)}
}

// parseArrayLiteral disambiguates `[e1, e2, …]` from the array-fill form
// `[value; count]`.
func (p *Parser) parseArrayLiteral() ast.Expr {
	start := p.expect(lexer.LBRACK)
	if p.cur.Type == lexer.RBRACK {
		p.advance()
		return &ast.ArrayLiteral{Sp: p.span(start)}
	}

	first := p.parseExpression(LOWEST)
	if p.cur.Type == lexer.SEMICOLON {
		p.advance()
		count := p.parseExpression(LOWEST)
		p.expect(lexer.RBRACK)
		return &ast.ArrayFillLiteral{Value: first, Count: count, Sp: p.span(start)}
	}

	elems := []ast.Expr{first}
	for p.cur.Type == lexer.COMMA {
		p.advance()
		if p.cur.Type == lexer.RBRACK {
			break
		}
		elems = append(elems, p.parseExpression(LOWEST))
	}
	p.expect(lexer.RBRACK)
	return &ast.ArrayLiteral{Elems: elems, Sp: p.span(start)}
}

var binaryOps = map[lexer.TokenType]ast.BinOp{
	lexer.PLUS:       ast.OpAdd,
	lexer.MINUS:      ast.OpSub,
	lexer.ASTERISK:   ast.OpMul,
	lexer.SLASH:      ast.OpDiv,
	lexer.PERCENT:    ast.OpMod,
	lexer.EQ:         ast.OpEq,
	lexer.NOT_EQ:     ast.OpNotEq,
	lexer.LESS:       ast.OpLess,
	lexer.LESS_EQ:    ast.OpLessEq,
	lexer.GREATER:    ast.OpGreater,
	lexer.GREATER_EQ: ast.OpGreaterEq,
	lexer.AND_AND:    ast.OpAnd,
	lexer.OR_OR:      ast.OpOr,
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := binaryOps[p.cur.Type]
	prec := precedences[p.cur.Type]
	p.advance()
	right := p.parseExpression(prec)
	return &ast.BinaryExpr{Op: op, X: left, Y: right, Sp: exprSpan(left, right)}
}

// parseAssign parses right-associative `target = value`.
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	p.advance()
	value := p.parseExpression(ASSIGN - 1)
	return &ast.AssignExpr{Target: left, Value: value, Sp: exprSpan(left, value)}
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	start := callee.Span().Start
	p.expect(lexer.LPAREN)
	var args []ast.Expr
	if p.cur.Type != lexer.RPAREN {
		args = append(args, p.parseExpression(LOWEST))
		for p.cur.Type == lexer.COMMA {
			p.advance()
			args = append(args, p.parseExpression(LOWEST))
		}
	}
	p.expect(lexer.RPAREN)
	return &ast.CallExpr{Callee: callee, Args: args, Sp: p.span(start)}
}

func (p *Parser) parseIndex(x ast.Expr) ast.Expr {
	start := x.Span().Start
	p.expect(lexer.LBRACK)
	index := p.parseExpression(LOWEST)
	p.expect(lexer.RBRACK)
	return &ast.IndexExpr{X: x, Index: index, Sp: p.span(start)}
}

// parseField parses `x.name` or the tuple-index form `x.0`. The `.` is
// always its own DOT token and the digits after it go through the lexer's
// number scanner, so a single index such as `x.0` arrives as an INT, while
// a chained `x.0.1` arrives as the FLOAT `0.1` and is rejected here.
func (p *Parser) parseField(x ast.Expr) ast.Expr {
	start := x.Span().Start
	p.expect(lexer.DOT)
	var name string
	switch p.cur.Type {
	case lexer.IDENT, lexer.INT:
		name = p.cur.Literal
		p.advance()
	default:
		p.fail(ExpectedToken, "expected a field name or tuple index, got "+p.cur.Type.String())
	}
	return &ast.FieldExpr{X: x, Name: name, Sp: p.span(start)}
}

func (p *Parser) parseCast(x ast.Expr) ast.Expr {
	start := x.Span().Start
	p.expect(lexer.AS)
	typ := p.parseType()
	return &ast.CastExpr{X: x, Type: typ, Sp: p.span(start)}
}

var postfixOps = map[lexer.TokenType]ast.PostfixOp{
	lexer.INC: ast.OpPostInc,
	lexer.DEC: ast.OpPostDec,
}

func (p *Parser) parsePostfix(x ast.Expr) ast.Expr {
	start := x.Span().Start
	op := postfixOps[p.cur.Type]
	p.advance()
	return &ast.PostfixExpr{Op: op, X: x, Sp: p.span(start)}
}

// exprSpan builds the span covering [a.Span().Start, b.Span().End].
func exprSpan(a, b ast.Expr) token.Span {
	return token.Span{Start: a.Span().Start, End: b.Span().End}
}
