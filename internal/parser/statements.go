package parser

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
)

// parseStatement parses one statement inside a function body: Empty,
// Block, Let, If, While, For, Return, Expression, Break, Continue.
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case lexer.SEMICOLON:
		start := p.cur.Pos
		p.advance()
		return &ast.EmptyStmt{Sp: p.span(start)}
	case lexer.LBRACE:
		return p.parseBlockStmt()
	case lexer.LET:
		return p.parseLetStmt()
	case lexer.IF:
		return p.parseIfStmt()
	case lexer.WHILE:
		return p.parseWhileStmt()
	case lexer.FOR:
		return p.parseForStmt()
	case lexer.RETURN:
		return p.parseReturnStmt()
	case lexer.BREAK:
		start := p.cur.Pos
		p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.BreakStmt{Sp: p.span(start)}
	case lexer.CONTINUE:
		start := p.cur.Pos
		p.advance()
		p.expect(lexer.SEMICOLON)
		return &ast.ContinueStmt{Sp: p.span(start)}
	default:
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlockStmt() *ast.BlockStmt {
	start := p.expect(lexer.LBRACE)
	var stmts []ast.Stmt
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF {
		stmts = append(stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE)
	return &ast.BlockStmt{Stmts: stmts, Sp: p.span(start)}
}

// parseLetStmt parses `let name[: type] [= value];`. The type annotation
// and the initializer are each optional, but at least the translator
// requires one of them to infer a type during local hoisting.
func (p *Parser) parseLetStmt() *ast.LetStmt {
	start := p.expect(lexer.LET)
	name := p.parseIdentName()

	var typ ast.TypeExpr
	if p.cur.Type == lexer.COLON {
		p.advance()
		typ = p.parseType()
	}

	var value ast.Expr
	if p.cur.Type == lexer.ASSIGN {
		p.advance()
		value = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	return &ast.LetStmt{Name: name, Type: typ, Value: value, Sp: p.span(start)}
}

// parseIfStmt parses `if (cond) { … } [else ({ … } | if …)]`.
func (p *Parser) parseIfStmt() *ast.IfStmt {
	start := p.expect(lexer.IF)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	then := p.parseBlockStmt()

	var elseStmt ast.Stmt
	if p.cur.Type == lexer.ELSE {
		p.advance()
		if p.cur.Type == lexer.IF {
			elseStmt = p.parseIfStmt()
		} else {
			elseStmt = p.parseBlockStmt()
		}
	}
	return &ast.IfStmt{Cond: cond, Then: then, Else: elseStmt, Sp: p.span(start)}
}

func (p *Parser) parseWhileStmt() *ast.WhileStmt {
	start := p.expect(lexer.WHILE)
	p.expect(lexer.LPAREN)
	cond := p.parseExpression(LOWEST)
	p.expect(lexer.RPAREN)
	body := p.parseBlockStmt()
	return &ast.WhileStmt{Cond: cond, Body: body, Sp: p.span(start)}
}

// parseForStmt parses the C-style `for (init; cond; step) { … }`, each
// clause optional.
func (p *Parser) parseForStmt() *ast.ForStmt {
	start := p.expect(lexer.FOR)
	p.expect(lexer.LPAREN)

	var init ast.Stmt
	if p.cur.Type == lexer.LET {
		init = p.parseLetStmt()
	} else if p.cur.Type != lexer.SEMICOLON {
		init = p.parseExprStmt()
	} else {
		p.expect(lexer.SEMICOLON)
	}

	var cond ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		cond = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)

	var step ast.Expr
	if p.cur.Type != lexer.RPAREN {
		step = p.parseExpression(LOWEST)
	}
	p.expect(lexer.RPAREN)

	body := p.parseBlockStmt()
	return &ast.ForStmt{Init: init, Cond: cond, Step: step, Body: body, Sp: p.span(start)}
}

// parseReturnStmt parses `return [expr];`.
func (p *Parser) parseReturnStmt() *ast.ReturnStmt {
	start := p.expect(lexer.RETURN)
	var value ast.Expr
	if p.cur.Type != lexer.SEMICOLON {
		value = p.parseExpression(LOWEST)
	}
	p.expect(lexer.SEMICOLON)
	return &ast.ReturnStmt{Value: value, Sp: p.span(start)}
}

func (p *Parser) parseExprStmt() *ast.ExprStmt {
	start := p.cur.Pos
	x := p.parseExpression(LOWEST)
	p.expect(lexer.SEMICOLON)
	return &ast.ExprStmt{X: x, Sp: p.span(start)}
}
