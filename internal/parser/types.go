package parser

import (
	"github.com/coreaot/coreaot/internal/ast"
	"github.com/coreaot/coreaot/internal/lexer"
)

// parseType parses a structural type expression: `identifier`, `*T`,
// `[N]T`, `(T, …)`, or the function-pointer form `fn(T, …): R`.
// Resolution against the type table happens later, in translation.
func (p *Parser) parseType() ast.TypeExpr {
	switch p.cur.Type {
	case lexer.IDENT:
		start := p.cur.Pos
		name := p.cur.Literal
		p.advance()
		return &ast.NamedType{Name: name, Sp: p.span(start)}

	case lexer.ASTERISK:
		start := p.cur.Pos
		p.advance()
		elem := p.parseType()
		return &ast.PointerType{Elem: elem, Sp: p.span(start)}

	case lexer.LBRACK:
		start := p.cur.Pos
		p.advance()
		size := p.parseExpression(LOWEST)
		p.expect(lexer.RBRACK)
		elem := p.parseType()
		return &ast.ArrayType{Size: size, Elem: elem, Sp: p.span(start)}

	case lexer.LPAREN:
		start := p.cur.Pos
		p.advance()
		var elems []ast.TypeExpr
		if p.cur.Type != lexer.RPAREN {
			elems = append(elems, p.parseType())
			for p.cur.Type == lexer.COMMA {
				p.advance()
				elems = append(elems, p.parseType())
			}
		}
		p.expect(lexer.RPAREN)
		return &ast.TupleType{Elems: elems, Sp: p.span(start)}

	case lexer.FN:
		start := p.cur.Pos
		p.advance()
		p.expect(lexer.LPAREN)
		var params []ast.TypeExpr
		if p.cur.Type != lexer.RPAREN {
			params = append(params, p.parseType())
			for p.cur.Type == lexer.COMMA {
				p.advance()
				params = append(params, p.parseType())
			}
		}
		p.expect(lexer.RPAREN)
		p.expect(lexer.COLON)
		ret := p.parseType()
		return &ast.FunctionPtrType{Params: params, Return: ret, Sp: p.span(start)}

	default:
		p.fail(ExpectedType, "expected a type, got "+p.cur.Type.String())
		return nil
	}
}
