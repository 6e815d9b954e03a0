package parser

import (
	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
)

// Binary operator precedence, lowest first. Assignment, the conditional
// operator and the comma are handled by their own functions.
const (
	precLogicalOr = iota + 1
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
)

type binaryOperator struct {
	prec int
	op   ast.BinaryOperator
}

var binaryOperators = map[lexer.TokenType]binaryOperator{
	lexer.TokenOr:        {precLogicalOr, ast.OpLogicalOr},
	lexer.TokenAnd:       {precLogicalAnd, ast.OpLogicalAnd},
	lexer.TokenPipe:      {precBitwiseOr, ast.OpBitwiseOr},
	lexer.TokenCaret:     {precBitwiseXor, ast.OpBitwiseXor},
	lexer.TokenAmpersand: {precBitwiseAnd, ast.OpBitwiseAnd},
	lexer.TokenEq:        {precEquality, ast.OpEquals},
	lexer.TokenNe:        {precEquality, ast.OpNotEquals},
	lexer.TokenLt:        {precRelational, ast.OpLess},
	lexer.TokenGt:        {precRelational, ast.OpGreater},
	lexer.TokenLe:        {precRelational, ast.OpLessOrEqual},
	lexer.TokenGe:        {precRelational, ast.OpGreaterOrEqual},
	lexer.TokenShl:       {precShift, ast.OpShiftLeft},
	lexer.TokenShr:       {precShift, ast.OpShiftRight},
	lexer.TokenPlus:      {precAdditive, ast.OpAdd},
	lexer.TokenMinus:     {precAdditive, ast.OpSubtract},
	lexer.TokenStar:      {precMultiplicative, ast.OpMultiply},
	lexer.TokenSlash:     {precMultiplicative, ast.OpDivide},
	lexer.TokenPercent:   {precMultiplicative, ast.OpModulo},
}

var assignmentOperators = map[lexer.TokenType]ast.BinaryOperator{
	lexer.TokenAssign:        ast.OpAssign,
	lexer.TokenStarAssign:    ast.OpAssignMultiply,
	lexer.TokenSlashAssign:   ast.OpAssignDivide,
	lexer.TokenPercentAssign: ast.OpAssignModulo,
	lexer.TokenPlusAssign:    ast.OpAssignPlus,
	lexer.TokenMinusAssign:   ast.OpAssignMinus,
	lexer.TokenShlAssign:     ast.OpAssignShiftLeft,
	lexer.TokenShrAssign:     ast.OpAssignShiftRight,
	lexer.TokenAndAssign:     ast.OpAssignBitwiseAnd,
	lexer.TokenXorAssign:     ast.OpAssignBitwiseXor,
	lexer.TokenOrAssign:      ast.OpAssignBitwiseOr,
}

var prefixOperators = map[lexer.TokenType]ast.UnaryOperator{
	lexer.TokenAmpersand: ast.OpAddress,
	lexer.TokenStar:      ast.OpIndirection,
	lexer.TokenPlus:      ast.OpPlus,
	lexer.TokenMinus:     ast.OpMinus,
	lexer.TokenTilde:     ast.OpComplement,
	lexer.TokenNot:       ast.OpNegate,
}

// startsTypeName reports whether tok can begin a type name in the current
// scope.
func (p *Parser) startsTypeName(tok lexer.Token) bool {
	if _, ok := basicTypes[tok.Type]; ok {
		return true
	}
	if _, ok := typeQualifiers[tok.Type]; ok {
		return true
	}
	switch tok.Type {
	case lexer.TokenStruct, lexer.TokenUnion, lexer.TokenEnum, lexer.TokenTypeof, lexer.TokenAttribute:
		return true
	case lexer.TokenIdent:
		return p.scopes.IsTypedefName(tok.Literal)
	}
	return false
}

// startsDeclaration reports whether tok can begin a declaration.
func (p *Parser) startsDeclaration(tok lexer.Token) bool {
	if p.startsTypeName(tok) {
		return true
	}
	if _, ok := storageClasses[tok.Type]; ok {
		return true
	}
	if _, ok := functionSpecifiers[tok.Type]; ok {
		return true
	}
	return tok.Type == lexer.TokenAlignas || tok.Type == lexer.TokenExtension
}

func (p *Parser) parseExpression() ast.Expression {
	first := p.parseAssignmentExpression()
	if !p.curTokenIs(lexer.TokenComma) {
		return first
	}
	ce := &ast.CommaExpression{Expressions: []ast.Expression{first}}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		ce.Expressions = append(ce.Expressions, p.parseAssignmentExpression())
	}
	return ce
}

func (p *Parser) parseAssignmentExpression() ast.Expression {
	lhs := p.parseConditionalExpression()
	if op, ok := assignmentOperators[p.curToken.Type]; ok {
		p.nextToken()
		return &ast.BinaryOperatorExpression{Operator: op, LHS: lhs, RHS: p.parseAssignmentExpression()}
	}
	return lhs
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	cond := p.parseBinaryExpression(precLogicalOr)
	if !p.curTokenIs(lexer.TokenQuestion) {
		return cond
	}
	question := p.nextToken()
	ce := &ast.ConditionalExpression{Condition: cond}
	if p.curTokenIs(lexer.TokenColon) {
		p.requireExtension(question, "conditional with omitted operand", dialect.GNU)
	} else {
		ce.Then = p.parseExpression()
	}
	p.expect(lexer.TokenColon)
	ce.Else = p.parseConditionalExpression()
	return ce
}

// parseBinaryExpression parses operators of at least minPrec by
// precedence climbing. All binary operators associate to the left.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	lhs := p.parseCastExpression()
	for {
		bin, ok := binaryOperators[p.curToken.Type]
		if !ok || bin.prec < minPrec {
			return lhs
		}
		p.nextToken()
		rhs := p.parseBinaryExpression(bin.prec + 1)
		lhs = &ast.BinaryOperatorExpression{Operator: bin.op, LHS: lhs, RHS: rhs}
	}
}

func (p *Parser) parseCastExpression() ast.Expression {
	if p.curTokenIs(lexer.TokenLParen) && p.startsTypeName(p.peekToken) {
		open := p.curToken
		if tn, ok := p.tryParenTypeName(); ok {
			if p.curTokenIs(lexer.TokenLBrace) {
				return p.parsePostfixOperators(p.parseCompoundLiteral(tn))
			}
			return &ast.CastExpression{TypeName: tn, Expression: p.parseCastExpression()}
		}
		// Neither a cast nor a parenthesized expression: blame the '('.
		var inner ast.Expression
		p.failAt(open, func() { inner = p.parsePrimaryExpression() })
		return p.parsePostfixOperators(inner)
	}
	return p.parseUnaryExpression()
}

// tryParenTypeName tries to parse "( type-name )". Names the type name
// declares, such as enumeration constants, go into a scratch frame that is
// merged into the enclosing scope only on success. On failure the cursor
// is rewound and nothing is declared.
func (p *Parser) tryParenTypeName() (*ast.TypeName, bool) {
	m := p.mark()
	open := p.nextToken()
	scratch := p.scopes.Push()
	var tn *ast.TypeName
	ok := func() bool {
		defer p.scopes.Pop()
		return p.attempt(func() {
			tn = p.parseTypeName()
			p.expect(lexer.TokenRParen)
		})
	}()
	if !ok {
		p.reset(m)
		return nil, false
	}
	if err := p.scopes.Merge(scratch); err != nil {
		p.conflict(open, err)
	}
	return tn, true
}

func (p *Parser) parseCompoundLiteral(tn *ast.TypeName) ast.Expression {
	return &ast.CompoundLiteral{TypeName: tn, InitializerList: p.parseInitializerList()}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokenIncrement, lexer.TokenDecrement:
		p.nextToken()
		op := ast.OpPreIncrement
		if tok.Type == lexer.TokenDecrement {
			op = ast.OpPreDecrement
		}
		return &ast.UnaryOperatorExpression{Operator: op, Operand: p.parseUnaryExpression()}
	case lexer.TokenSizeof:
		p.nextToken()
		if p.curTokenIs(lexer.TokenLParen) && p.startsTypeName(p.peekToken) {
			if tn, ok := p.tryParenTypeName(); ok {
				if p.curTokenIs(lexer.TokenLBrace) {
					return &ast.SizeOfValue{Expression: p.parsePostfixOperators(p.parseCompoundLiteral(tn))}
				}
				return &ast.SizeOfType{TypeName: tn}
			}
		}
		return &ast.SizeOfValue{Expression: p.parseUnaryExpression()}
	case lexer.TokenAlignof:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		tn := p.parseTypeName()
		p.expect(lexer.TokenRParen)
		return &ast.AlignOf{TypeName: tn}
	case lexer.TokenExtension:
		p.nextToken()
		return p.parseCastExpression()
	}
	if op, ok := prefixOperators[tok.Type]; ok {
		p.nextToken()
		return &ast.UnaryOperatorExpression{Operator: op, Operand: p.parseCastExpression()}
	}
	return p.parsePostfixOperators(p.parsePrimaryExpression())
}

func (p *Parser) parsePostfixOperators(e ast.Expression) ast.Expression {
	for {
		switch p.curToken.Type {
		case lexer.TokenLBracket:
			p.nextToken()
			index := p.parseExpression()
			p.expect(lexer.TokenRBracket)
			e = &ast.BinaryOperatorExpression{Operator: ast.OpIndex, LHS: e, RHS: index}
		case lexer.TokenLParen:
			p.nextToken()
			call := &ast.CallExpression{Callee: e}
			if !p.curTokenIs(lexer.TokenRParen) {
				for {
					call.Arguments = append(call.Arguments, p.parseAssignmentExpression())
					if !p.curTokenIs(lexer.TokenComma) {
						break
					}
					p.nextToken()
				}
			}
			p.expect(lexer.TokenRParen)
			e = call
		case lexer.TokenDot, lexer.TokenArrow:
			op := ast.MemberDirect
			if p.nextToken().Type == lexer.TokenArrow {
				op = ast.MemberIndirect
			}
			e = &ast.MemberExpression{Operator: op, Expression: e, Identifier: p.expectIdentifier()}
		case lexer.TokenIncrement:
			p.nextToken()
			e = &ast.UnaryOperatorExpression{Operator: ast.OpPostIncrement, Operand: e}
		case lexer.TokenDecrement:
			p.nextToken()
			e = &ast.UnaryOperatorExpression{Operator: ast.OpPostDecrement, Operand: e}
		default:
			return e
		}
	}
}

// parsePrimaryExpression parses identifiers of any classification, so a
// typedef name that reaches here is read as a plain identifier.
func (p *Parser) parsePrimaryExpression() ast.Expression {
	tok := p.curToken
	switch tok.Type {
	case lexer.TokenIdent:
		p.nextToken()
		return &ast.Identifier{Name: tok.Literal}
	case lexer.TokenInt:
		return &ast.Constant{Value: p.parseIntegerConstant()}
	case lexer.TokenReal:
		return &ast.Constant{Value: p.parseFloatConstant()}
	case lexer.TokenCharacter:
		p.nextToken()
		return &ast.Constant{Value: &ast.Character{Spelling: tok.Literal}}
	case lexer.TokenString:
		return p.parseStringLiteral()
	case lexer.TokenLParen:
		if p.peekTokenIs(lexer.TokenLBrace) {
			p.requireExtension(tok, "statement expression", dialect.GNU)
			p.nextToken()
			body := p.parseCompoundStatement()
			p.expect(lexer.TokenRParen)
			return &ast.StatementExpression{Statement: body}
		}
		p.nextToken()
		e := p.parseExpression()
		p.expect(lexer.TokenRParen)
		return e
	case lexer.TokenGeneric:
		return p.parseGenericSelection()
	case lexer.TokenBuiltinVaArg:
		p.nextToken()
		p.expect(lexer.TokenLParen)
		va := &ast.VaArgExpression{VaList: p.parseAssignmentExpression()}
		p.expect(lexer.TokenComma)
		va.TypeName = p.parseTypeName()
		p.expect(lexer.TokenRParen)
		return va
	case lexer.TokenBuiltinOffsetof:
		return p.parseOffsetOf()
	}
	p.syntaxError("expected expression, got %s", describe(tok))
	return nil
}

func (p *Parser) parseIntegerConstant() *ast.Integer {
	tok := p.curToken
	n, err := decodeInteger(tok.Literal)
	if err != nil {
		p.syntaxError("%v", err)
	}
	if n.Base == ast.BaseBinary {
		p.requireExtension(tok, "binary integer constant", dialect.GNU)
	}
	if n.Suffix.Imaginary {
		p.requireExtension(tok, "imaginary constant", dialect.GNU)
	}
	p.nextToken()
	return n
}

func (p *Parser) parseFloatConstant() *ast.Float {
	tok := p.curToken
	f, err := decodeFloat(tok.Literal)
	if err != nil {
		p.syntaxError("%v", err)
	}
	if f.Suffix.Imaginary {
		p.requireExtension(tok, "imaginary constant", dialect.GNU)
	}
	p.nextToken()
	return f
}

// parseStringLiteral joins adjacent string literal tokens.
func (p *Parser) parseStringLiteral() *ast.StringLiteral {
	if !p.curTokenIs(lexer.TokenString) {
		p.syntaxError("expected string literal, got %s", describe(p.curToken))
	}
	sl := &ast.StringLiteral{}
	for p.curTokenIs(lexer.TokenString) {
		sl.Parts = append(sl.Parts, p.nextToken().Literal)
	}
	return sl
}

func (p *Parser) parseGenericSelection() *ast.GenericSelection {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	gs := &ast.GenericSelection{Expression: p.parseAssignmentExpression()}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		if p.curTokenIs(lexer.TokenDefault) {
			p.nextToken()
			p.expect(lexer.TokenColon)
			gs.Associations = append(gs.Associations, &ast.GenericDefault{Expression: p.parseAssignmentExpression()})
			continue
		}
		tn := p.parseTypeName()
		p.expect(lexer.TokenColon)
		gs.Associations = append(gs.Associations, &ast.GenericTypeAssociation{TypeName: tn, Expression: p.parseAssignmentExpression()})
	}
	if len(gs.Associations) == 0 {
		p.syntaxError("_Generic requires at least one association")
	}
	p.expect(lexer.TokenRParen)
	return gs
}

func (p *Parser) parseOffsetOf() *ast.OffsetOfExpression {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	oe := &ast.OffsetOfExpression{TypeName: p.parseTypeName()}
	p.expect(lexer.TokenComma)
	od := &ast.OffsetDesignator{Base: p.expectIdentifier()}
	for {
		switch p.curToken.Type {
		case lexer.TokenDot:
			p.nextToken()
			od.Members = append(od.Members, ast.OffsetMember{Kind: ast.OffsetMemberDirect, Identifier: p.expectIdentifier()})
			continue
		case lexer.TokenArrow:
			p.nextToken()
			od.Members = append(od.Members, ast.OffsetMember{Kind: ast.OffsetMemberIndirect, Identifier: p.expectIdentifier()})
			continue
		case lexer.TokenLBracket:
			p.nextToken()
			od.Members = append(od.Members, ast.OffsetMember{Kind: ast.OffsetMemberIndex, Index: p.parseExpression()})
			p.expect(lexer.TokenRBracket)
			continue
		}
		break
	}
	oe.Designator = od
	p.expect(lexer.TokenRParen)
	return oe
}
