package parser

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
)

// parseDecl parses one top-level declaration: struct, extern fn, or fn.
func (p *Parser) parseDecl() ast.Decl {
	switch p.cur.Type {
	case lexer.STRUCT:
		return p.parseStructDecl()
	case lexer.EXTERN:
		return p.parseExternFuncDecl()
	case lexer.FN:
		return p.parseFuncDecl()
	default:
		p.fail(ExpectedDeclaration, "expected 'struct', 'extern', or 'fn', got "+p.cur.Type.String())
		return nil
	}
}

// parseStructDecl parses `struct Name { name: type, … }`.
func (p *Parser) parseStructDecl() *ast.StructDecl {
	start := p.expect(lexer.STRUCT)
	name := p.parseIdentName()
	p.expect(lexer.LBRACE)

	var fields []*ast.FieldDecl
	for p.cur.Type != lexer.RBRACE {
		fields = append(fields, p.parseFieldDecl())
		if p.cur.Type == lexer.COMMA {
			p.advance()
		} else {
			break
		}
	}
	p.expect(lexer.RBRACE)
	return &ast.StructDecl{Name: name, Fields: fields, Sp: p.span(start)}
}

func (p *Parser) parseFieldDecl() *ast.FieldDecl {
	start := p.cur.Pos
	name := p.parseIdentName()
	p.expect(lexer.COLON)
	typ := p.parseType()
	return &ast.FieldDecl{Name: name, Type: typ, Sp: p.span(start)}
}

// parseExternFuncDecl parses `extern fn name(T, …[, ...]): R;`.
func (p *Parser) parseExternFuncDecl() *ast.ExternFuncDecl {
	start := p.expect(lexer.EXTERN)
	p.expect(lexer.FN)
	name := p.parseIdentName()
	p.expect(lexer.LPAREN)

	var params []ast.TypeExpr
	variadic := false
	if p.cur.Type != lexer.RPAREN {
		for {
			if p.cur.Type == lexer.ELLIPSIS {
				p.advance()
				variadic = true
				break
			}
			params = append(params, p.parseType())
			if p.cur.Type == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)
	ret := p.parseType()
	p.expect(lexer.SEMICOLON)
	return &ast.ExternFuncDecl{Name: name, Params: params, Variadic: variadic, Return: ret, Sp: p.span(start)}
}

// parseFuncDecl parses `fn name(name: T, …): R { … }`.
func (p *Parser) parseFuncDecl() *ast.FuncDecl {
	start := p.expect(lexer.FN)
	name := p.parseIdentName()
	p.expect(lexer.LPAREN)

	var params []*ast.Param
	if p.cur.Type != lexer.RPAREN {
		params = append(params, p.parseParam())
		for p.cur.Type == lexer.COMMA {
			p.advance()
			params = append(params, p.parseParam())
		}
	}
	p.expect(lexer.RPAREN)
	p.expect(lexer.COLON)
	ret := p.parseType()
	body := p.parseBlockStmt()
	return &ast.FuncDecl{Name: name, Params: params, Return: ret, Body: body, Sp: p.span(start)}
}

func (p *Parser) parseParam() *ast.Param {
	start := p.cur.Pos
	name := p.parseIdentName()
	p.expect(lexer.COLON)
	typ := p.parseType()
	return &ast.Param{Name: name, Type: typ, Sp: p.span(start)}
}

// parseIdentName consumes and returns an IDENT token's literal text.
func (p *Parser) parseIdentName() string {
	if p.cur.Type != lexer.IDENT {
		p.fail(ExpectedToken, "expected an identifier, got "+p.cur.Type.String())
	}
	name := p.cur.Literal
	p.advance()
	return name
}
