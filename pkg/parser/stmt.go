package parser

import (
	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
)

func (p *Parser) parseStatement() ast.Statement {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokenLBrace:
		return p.parseCompoundStatement()
	case lexer.TokenIf:
		return p.parseIfStatement()
	case lexer.TokenSwitch:
		return p.parseSwitchStatement()
	case lexer.TokenWhile:
		return p.parseWhileStatement()
	case lexer.TokenDo:
		return p.parseDoWhileStatement()
	case lexer.TokenFor:
		return p.parseForStatement()
	case lexer.TokenGoto:
		p.nextToken()
		label := p.expectIdentifier()
		p.expect(lexer.TokenSemicolon)
		return &ast.GotoStatement{Label: label}
	case lexer.TokenContinue:
		p.nextToken()
		p.expect(lexer.TokenSemicolon)
		return &ast.ContinueStatement{}
	case lexer.TokenBreak:
		p.nextToken()
		p.expect(lexer.TokenSemicolon)
		return &ast.BreakStatement{}
	case lexer.TokenReturn:
		p.nextToken()
		rs := &ast.ReturnStatement{}
		if !p.curTokenIs(lexer.TokenSemicolon) {
			rs.Expression = p.parseExpression()
		}
		p.expect(lexer.TokenSemicolon)
		return rs
	case lexer.TokenCase:
		return p.parseCaseStatement()
	case lexer.TokenDefault:
		p.nextToken()
		p.expect(lexer.TokenColon)
		return &ast.LabeledStatement{Label: ast.DefaultLabel{}, Statement: p.parseStatement()}
	case lexer.TokenAsm:
		return p.parseAsmStatement()
	case lexer.TokenSemicolon:
		p.nextToken()
		return &ast.ExpressionStatement{}
	case lexer.TokenIdent:
		if p.peekTokenIs(lexer.TokenColon) {
			p.nextToken()
			p.nextToken()
			p.parseAttributesOpt()
			return &ast.LabeledStatement{Label: &ast.Identifier{Name: tok.Literal}, Statement: p.parseStatement()}
		}
	}
	e := p.parseExpression()
	p.expect(lexer.TokenSemicolon)
	return &ast.ExpressionStatement{Expression: e}
}

// parseCompoundStatement parses a block in a new frame.
func (p *Parser) parseCompoundStatement() *ast.CompoundStatement {
	p.scopes.Push()
	defer p.scopes.Pop()
	return p.parseBlockBody()
}

// parseBlockBody parses a block in the current frame.
func (p *Parser) parseBlockBody() *ast.CompoundStatement {
	open := p.expect(lexer.TokenLBrace)
	cs := &ast.CompoundStatement{}
	for !p.curTokenIs(lexer.TokenRBrace) {
		if p.curTokenIs(lexer.TokenEOF) {
			p.syntaxError("unterminated block opened at %s", open.Pos())
		}
		cs.Items = append(cs.Items, p.parseBlockItem())
	}
	p.nextToken()
	return cs
}

func (p *Parser) parseBlockItem() ast.BlockItem {
	if p.curTokenIs(lexer.TokenStaticAssert) {
		return p.parseStaticAssert()
	}
	if p.startsBlockDeclaration() {
		return p.parseDeclaration()
	}
	return p.parseStatement()
}

// startsBlockDeclaration decides between a declaration and a statement
// at the start of a block item. A typedef name followed by ':' is a label.
func (p *Parser) startsBlockDeclaration() bool {
	i := p.pos
	for p.tokenAt(i).Type == lexer.TokenExtension {
		i++
	}
	tok := p.tokenAt(i)
	if tok.Type == lexer.TokenIdent && p.tokenAt(i+1).Type == lexer.TokenColon {
		return false
	}
	return p.startsDeclaration(tok)
}

// parseSubstatement parses the body of a selection or iteration
// statement in a frame of its own.
func (p *Parser) parseSubstatement() ast.Statement {
	p.scopes.Push()
	defer p.scopes.Pop()
	return p.parseStatement()
}

// parseParenExpression parses "( expression )".
func (p *Parser) parseParenExpression() ast.Expression {
	p.expect(lexer.TokenLParen)
	e := p.parseExpression()
	p.expect(lexer.TokenRParen)
	return e
}

func (p *Parser) parseIfStatement() ast.Statement {
	p.nextToken()
	p.scopes.Push()
	defer p.scopes.Pop()

	is := &ast.IfStatement{Condition: p.parseParenExpression()}
	is.Then = p.parseSubstatement()
	if p.curTokenIs(lexer.TokenElse) {
		p.nextToken()
		is.Else = p.parseSubstatement()
	}
	return is
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	p.nextToken()
	p.scopes.Push()
	defer p.scopes.Pop()

	ss := &ast.SwitchStatement{Expression: p.parseParenExpression()}
	ss.Statement = p.parseSubstatement()
	return ss
}

func (p *Parser) parseWhileStatement() ast.Statement {
	p.nextToken()
	p.scopes.Push()
	defer p.scopes.Pop()

	ws := &ast.WhileStatement{Expression: p.parseParenExpression()}
	ws.Statement = p.parseSubstatement()
	return ws
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	p.nextToken()
	p.scopes.Push()
	defer p.scopes.Pop()

	ds := &ast.DoWhileStatement{Statement: p.parseSubstatement()}
	p.expect(lexer.TokenWhile)
	ds.Expression = p.parseParenExpression()
	p.expect(lexer.TokenSemicolon)
	return ds
}

func (p *Parser) parseForStatement() ast.Statement {
	p.nextToken()
	p.scopes.Push()
	defer p.scopes.Pop()

	p.expect(lexer.TokenLParen)
	fs := &ast.ForStatement{}
	switch {
	case p.curTokenIs(lexer.TokenSemicolon):
		p.nextToken()
		fs.Initializer = ast.EmptyForInitializer{}
	case p.curTokenIs(lexer.TokenStaticAssert):
		fs.Initializer = p.parseStaticAssert()
	case p.startsBlockDeclaration():
		fs.Initializer = p.parseDeclaration()
	default:
		fs.Initializer = &ast.ForExpression{Expression: p.parseExpression()}
		p.expect(lexer.TokenSemicolon)
	}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		fs.Condition = p.parseExpression()
	}
	p.expect(lexer.TokenSemicolon)
	if !p.curTokenIs(lexer.TokenRParen) {
		fs.Step = p.parseExpression()
	}
	p.expect(lexer.TokenRParen)
	fs.Statement = p.parseSubstatement()
	return fs
}

func (p *Parser) parseCaseStatement() ast.Statement {
	p.nextToken()
	low := p.parseConditionalExpression()
	var label ast.Label = &ast.CaseLabel{Expression: low}
	if p.curTokenIs(lexer.TokenEllipsis) {
		p.requireExtension(p.curToken, "case range", dialect.GNU)
		p.nextToken()
		label = &ast.CaseRangeLabel{Low: low, High: p.parseConditionalExpression()}
	}
	p.expect(lexer.TokenColon)
	return &ast.LabeledStatement{Label: label, Statement: p.parseStatement()}
}

// parseAsmStatement parses GNU basic and extended asm. A qualifier or any
// operand section makes the statement extended.
func (p *Parser) parseAsmStatement() ast.Statement {
	p.nextToken()
	var qual *ast.TypeQualifier
	if q, ok := p.qualifierAt(); ok {
		p.nextToken()
		qual = &q
	}
	p.expect(lexer.TokenLParen)
	template := p.parseStringLiteral()
	if qual == nil && p.curTokenIs(lexer.TokenRParen) {
		p.nextToken()
		p.expect(lexer.TokenSemicolon)
		return &ast.BasicAsmStatement{Template: template}
	}

	as := &ast.ExtendedAsmStatement{Qualifier: qual, Template: template}
	if p.curTokenIs(lexer.TokenColon) {
		p.nextToken()
		as.Outputs = p.parseAsmOperands()
		if p.curTokenIs(lexer.TokenColon) {
			p.nextToken()
			as.Inputs = p.parseAsmOperands()
			if p.curTokenIs(lexer.TokenColon) {
				p.nextToken()
				as.Clobbers = p.parseAsmClobbers()
			}
		}
	}
	p.expect(lexer.TokenRParen)
	p.expect(lexer.TokenSemicolon)
	return as
}

func (p *Parser) parseAsmOperands() []*ast.AsmOperand {
	var ops []*ast.AsmOperand
	if p.curTokenIs(lexer.TokenColon) || p.curTokenIs(lexer.TokenRParen) {
		return ops
	}
	for {
		op := &ast.AsmOperand{}
		if p.curTokenIs(lexer.TokenLBracket) {
			p.nextToken()
			op.SymbolicName = p.expectIdentifier()
			p.expect(lexer.TokenRBracket)
		}
		op.Constraints = p.parseStringLiteral()
		op.Variable = p.parseParenExpression()
		ops = append(ops, op)
		if !p.curTokenIs(lexer.TokenComma) {
			return ops
		}
		p.nextToken()
	}
}

func (p *Parser) parseAsmClobbers() []*ast.StringLiteral {
	var clobbers []*ast.StringLiteral
	if p.curTokenIs(lexer.TokenRParen) {
		return clobbers
	}
	for {
		clobbers = append(clobbers, p.parseStringLiteral())
		if !p.curTokenIs(lexer.TokenComma) {
			return clobbers
		}
		p.nextToken()
	}
}
