package parser

import (
	"strings"

	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
)

// parseAttributesOpt parses any number of attribute specifiers.
func (p *Parser) parseAttributesOpt() []ast.Extension {
	var exts []ast.Extension
	for p.curTokenIs(lexer.TokenAttribute) {
		exts = append(exts, p.parseAttributeSpecifier()...)
	}
	return exts
}

// parseAttributeSpecifier parses __attribute__((...)). Empty entries in
// the list are allowed.
func (p *Parser) parseAttributeSpecifier() []ast.Extension {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	p.expect(lexer.TokenLParen)
	var exts []ast.Extension
	for !p.curTokenIs(lexer.TokenRParen) {
		if p.curTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		exts = append(exts, p.parseAttribute())
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
	}
	p.expect(lexer.TokenRParen)
	p.expect(lexer.TokenRParen)
	return exts
}

// parseAttribute parses one attribute. Keywords are valid attribute names,
// as in __attribute__((const)), so the name is taken without gating.
func (p *Parser) parseAttribute() ast.Extension {
	tok := p.curToken
	if tok.Type != lexer.TokenIdent && !tok.Type.IsKeyword() {
		p.syntaxError("expected attribute name, got %s", describe(tok))
	}
	p.advance()
	if tok.Literal == "availability" && p.dialect.Has(dialect.Clang) && p.curTokenIs(lexer.TokenLParen) {
		return p.parseAvailability()
	}
	attr := &ast.Attribute{Name: tok.Literal}
	if p.curTokenIs(lexer.TokenLParen) {
		p.nextToken()
		for !p.curTokenIs(lexer.TokenRParen) {
			attr.Arguments = append(attr.Arguments, p.parseAssignmentExpression())
			if !p.curTokenIs(lexer.TokenComma) {
				break
			}
			p.nextToken()
		}
		p.expect(lexer.TokenRParen)
	}
	return attr
}

var availabilityClauses = map[string]ast.AvailabilityClauseKind{
	"introduced":  ast.ClauseIntroduced,
	"deprecated":  ast.ClauseDeprecated,
	"obsoleted":   ast.ClauseObsoleted,
	"unavailable": ast.ClauseUnavailable,
	"message":     ast.ClauseMessage,
	"replacement": ast.ClauseReplacement,
}

// parseAvailability parses the arguments of availability(platform, ...).
func (p *Parser) parseAvailability() *ast.AvailabilityAttribute {
	p.expect(lexer.TokenLParen)
	aa := &ast.AvailabilityAttribute{Platform: p.expectIdentifier()}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		tok := p.curToken
		kind, ok := availabilityClauses[tok.Literal]
		if tok.Type != lexer.TokenIdent || !ok {
			p.syntaxError("expected availability clause, got %s", describe(tok))
		}
		p.nextToken()
		clause := &ast.AvailabilityClause{Kind: kind}
		switch kind {
		case ast.ClauseIntroduced, ast.ClauseDeprecated, ast.ClauseObsoleted:
			p.expect(lexer.TokenAssign)
			clause.Version = p.parseAvailabilityVersion()
		case ast.ClauseMessage, ast.ClauseReplacement:
			p.expect(lexer.TokenAssign)
			clause.Text = p.parseStringLiteral()
		}
		aa.Clauses = append(aa.Clauses, clause)
	}
	p.expect(lexer.TokenRParen)
	return aa
}

// parseAvailabilityVersion splits a version such as 10.6 or 10.6.1. The
// lexer reads the first two components as one number.
func (p *Parser) parseAvailabilityVersion() *ast.AvailabilityVersion {
	tok := p.curToken
	if !p.curTokenIs(lexer.TokenInt) && !p.curTokenIs(lexer.TokenReal) {
		p.syntaxError("expected version, got %s", describe(tok))
	}
	parts := strings.Split(tok.Literal, ".")
	if len(parts) > 3 {
		p.syntaxError("invalid version %q", tok.Literal)
	}
	for _, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			p.syntaxError("invalid version %q", tok.Literal)
		}
	}
	p.nextToken()
	v := &ast.AvailabilityVersion{Major: parts[0]}
	if len(parts) > 1 {
		v.Minor = parts[1]
	}
	if len(parts) > 2 {
		v.Subminor = parts[2]
	}
	return v
}

// parseDeclaratorExtensions attaches asm labels and attributes that
// follow a declarator.
func (p *Parser) parseDeclaratorExtensions(d *ast.Declarator) {
	for {
		switch p.curToken.Type {
		case lexer.TokenAsm:
			d.Extensions = append(d.Extensions, p.parseAsmLabel())
		case lexer.TokenAttribute:
			d.Extensions = append(d.Extensions, p.parseAttributeSpecifier()...)
		default:
			return
		}
	}
}

func (p *Parser) parseAsmLabel() *ast.AsmLabel {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	label := p.parseStringLiteral()
	p.expect(lexer.TokenRParen)
	return &ast.AsmLabel{Label: label}
}
