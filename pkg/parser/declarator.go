package parser

import (
	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/scope"
)

// declaratorMode says whether a declarator must, must not, or may name
// something.
type declaratorMode int

const (
	declNamed declaratorMode = iota
	declAbstract
	declEither
)

// parseDeclarator parses a declarator and returns it along with the token
// of its name, which is the zero Token for an abstract declarator. The
// name is not declared; that is up to the caller.
func (p *Parser) parseDeclarator(mode declaratorMode) (*ast.Declarator, lexer.Token) {
	start := p.curToken
	d, name := p.parseDirectDeclarator(mode)
	p.checkDerivations(start, d)
	return d, name
}

func (p *Parser) parseDirectDeclarator(mode declaratorMode) (*ast.Declarator, lexer.Token) {
	d := &ast.Declarator{}
	for p.curTokenIs(lexer.TokenStar) || p.curTokenIs(lexer.TokenCaret) {
		tok := p.curToken
		if tok.Type == lexer.TokenCaret {
			p.requireExtension(tok, "block pointer", dialect.Clang)
			p.nextToken()
			d.Derived = append(d.Derived, &ast.BlockDeclarator{Qualifiers: p.parsePointerQualifiers()})
			continue
		}
		p.nextToken()
		d.Derived = append(d.Derived, &ast.PointerDeclarator{Qualifiers: p.parsePointerQualifiers()})
	}

	var name lexer.Token
	switch {
	case p.curTokenIs(lexer.TokenIdent) && mode != declAbstract:
		name = p.nextToken()
		d.Kind = &ast.Identifier{Name: name.Literal}
	case p.curTokenIs(lexer.TokenLParen) && p.parenStartsDeclarator(mode):
		p.nextToken()
		var inner *ast.Declarator
		inner, name = p.parseDirectDeclarator(mode)
		p.expect(lexer.TokenRParen)
		d.Kind = inner
	default:
		if mode == declNamed {
			p.syntaxError("expected identifier or '(' in declarator, got %s", describe(p.curToken))
		}
		d.Kind = ast.Abstract{}
	}

	for {
		switch p.curToken.Type {
		case lexer.TokenLBracket:
			d.Derived = append(d.Derived, p.parseArraySuffix())
		case lexer.TokenLParen:
			d.Derived = append(d.Derived, p.parseFunctionSuffix())
		default:
			return d, name
		}
	}
}

// parenStartsDeclarator decides whether '(' opens a nested declarator or
// a parameter list. Where both are possible, a typedef name after the
// parenthesis means parameters.
func (p *Parser) parenStartsDeclarator(mode declaratorMode) bool {
	if mode == declNamed {
		return true
	}
	switch p.peekToken.Type {
	case lexer.TokenStar, lexer.TokenCaret:
		return true
	case lexer.TokenIdent:
		return mode == declEither && !p.scopes.IsTypedefName(p.peekToken.Literal)
	}
	return false
}

func (p *Parser) parsePointerQualifiers() []ast.PointerQualifier {
	var quals []ast.PointerQualifier
	for {
		if q, ok := p.qualifierAt(); ok {
			p.nextToken()
			quals = append(quals, q)
			continue
		}
		if p.curTokenIs(lexer.TokenAttribute) {
			quals = append(quals, ast.Extensions(p.parseAttributeSpecifier()))
			continue
		}
		return quals
	}
}

func (p *Parser) parseArraySuffix() *ast.ArrayDeclarator {
	p.nextToken()
	ad := &ast.ArrayDeclarator{SizeKind: ast.SizeUnknown}
	static := false
	if p.curTokenIs(lexer.TokenStatic) {
		p.nextToken()
		static = true
	}
	for {
		q, ok := p.qualifierAt()
		if !ok {
			break
		}
		p.nextToken()
		ad.Qualifiers = append(ad.Qualifiers, q)
	}
	if !static && p.curTokenIs(lexer.TokenStatic) {
		p.nextToken()
		static = true
	}
	switch {
	case static:
		ad.SizeKind = ast.SizeStaticExpression
		ad.Size = p.parseAssignmentExpression()
	case p.curTokenIs(lexer.TokenStar) && p.peekTokenIs(lexer.TokenRBracket):
		p.nextToken()
		ad.SizeKind = ast.SizeVariableUnknown
	case p.curTokenIs(lexer.TokenRBracket):
	default:
		ad.SizeKind = ast.SizeVariableExpression
		ad.Size = p.parseAssignmentExpression()
	}
	p.expect(lexer.TokenRBracket)
	return ad
}

// parseFunctionSuffix parses a parameter list or identifier list in a
// frame of its own. The frame is kept so that a function body can be
// parsed inside it.
func (p *Parser) parseFunctionSuffix() ast.DerivedDeclarator {
	p.nextToken()
	if p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		return &ast.KRFunctionDeclarator{}
	}
	frame := p.scopes.Push()
	defer p.scopes.Pop()

	var dd ast.DerivedDeclarator
	if p.curTokenIs(lexer.TokenIdent) && !p.scopes.IsTypedefName(p.curToken.Literal) {
		dd = p.parseIdentifierList()
	} else {
		dd = p.parseParameterList()
	}
	p.expect(lexer.TokenRParen)
	p.paramScopes[dd] = frame
	return dd
}

func (p *Parser) parseIdentifierList() *ast.KRFunctionDeclarator {
	kr := &ast.KRFunctionDeclarator{}
	for {
		tok := p.curToken
		id := p.expectIdentifier()
		p.declare(tok, id.Name, scope.Identifier)
		kr.Identifiers = append(kr.Identifiers, id)
		if !p.curTokenIs(lexer.TokenComma) {
			return kr
		}
		p.nextToken()
	}
}

func (p *Parser) parseParameterList() *ast.FunctionDeclarator {
	fd := &ast.FunctionDeclarator{}
	for {
		if p.curTokenIs(lexer.TokenEllipsis) {
			p.nextToken()
			fd.Ellipsis = true
			return fd
		}
		fd.Parameters = append(fd.Parameters, p.parseParameterDeclaration())
		if !p.curTokenIs(lexer.TokenComma) {
			return fd
		}
		p.nextToken()
	}
}

func (p *Parser) parseParameterDeclaration() *ast.ParameterDeclaration {
	pd := &ast.ParameterDeclaration{Specifiers: p.parseSpecifiers(declarationSpecifiers)}
	switch p.curToken.Type {
	case lexer.TokenComma, lexer.TokenRParen, lexer.TokenAttribute:
	default:
		d, name := p.parseDeclarator(declEither)
		if !d.IsEmpty() {
			pd.Declarator = d
		}
		if id := d.Name(); id != nil {
			p.declare(name, id.Name, scope.Identifier)
		}
	}
	pd.Extensions = p.parseAttributesOpt()
	return pd
}

// derivationOrder lists the derivations of d from the name outwards: the
// innermost level first, and within a level the suffixes left to right
// followed by the pointers right to left.
func derivationOrder(d *ast.Declarator) []ast.DerivedDeclarator {
	var order []ast.DerivedDeclarator
	if inner, ok := d.Kind.(*ast.Declarator); ok {
		order = derivationOrder(inner)
	}
	var pointers []ast.DerivedDeclarator
	for _, dd := range d.Derived {
		switch dd.(type) {
		case *ast.PointerDeclarator, *ast.BlockDeclarator:
			pointers = append(pointers, dd)
		default:
			order = append(order, dd)
		}
	}
	for i := len(pointers) - 1; i >= 0; i-- {
		order = append(order, pointers[i])
	}
	return order
}

// functionDerivation returns the function suffix that makes d declare a
// function, or nil if d declares something else.
func functionDerivation(d *ast.Declarator) ast.DerivedDeclarator {
	order := derivationOrder(d)
	if len(order) > 0 && isFunction(order[0]) {
		return order[0]
	}
	return nil
}

func isFunction(dd ast.DerivedDeclarator) bool {
	switch dd.(type) {
	case *ast.FunctionDeclarator, *ast.KRFunctionDeclarator:
		return true
	}
	return false
}

// checkDerivations rejects derivation chains that cannot form a type:
// functions returning functions or arrays, arrays of functions, and block
// pointers to anything but a function.
func (p *Parser) checkDerivations(tok lexer.Token, d *ast.Declarator) {
	order := derivationOrder(d)
	for i, dd := range order {
		var next ast.DerivedDeclarator
		if i+1 < len(order) {
			next = order[i+1]
		}
		switch dd.(type) {
		case *ast.FunctionDeclarator, *ast.KRFunctionDeclarator:
			if isFunction(next) {
				p.fail(KindSyntax, tok, nil, "function returning a function")
			}
			if _, ok := next.(*ast.ArrayDeclarator); ok {
				p.fail(KindSyntax, tok, nil, "function returning an array")
			}
		case *ast.ArrayDeclarator:
			if isFunction(next) {
				p.fail(KindSyntax, tok, nil, "array of functions")
			}
		case *ast.BlockDeclarator:
			if !isFunction(next) {
				p.fail(KindSyntax, tok, nil, "block pointer to non-function type")
			}
		}
	}
}
