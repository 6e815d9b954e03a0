package parser

import (
	"strings"

	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/scope"
)

var storageClasses = map[lexer.TokenType]ast.StorageClassSpecifier{
	lexer.TokenTypedef:     ast.StorageTypedef,
	lexer.TokenExtern:      ast.StorageExtern,
	lexer.TokenStatic:      ast.StorageStatic,
	lexer.TokenThreadLocal: ast.StorageThreadLocal,
	lexer.TokenAuto:        ast.StorageAuto,
	lexer.TokenRegister:    ast.StorageRegister,
}

var basicTypes = map[lexer.TokenType]ast.BasicType{
	lexer.TokenVoid:     ast.TypeVoid,
	lexer.TokenChar:     ast.TypeChar,
	lexer.TokenShort:    ast.TypeShort,
	lexer.TokenInt_:     ast.TypeInt,
	lexer.TokenLong:     ast.TypeLong,
	lexer.TokenFloat:    ast.TypeFloat,
	lexer.TokenDouble:   ast.TypeDouble,
	lexer.TokenSigned:   ast.TypeSigned,
	lexer.TokenUnsigned: ast.TypeUnsigned,
	lexer.TokenBool:     ast.TypeBool,
	lexer.TokenComplex:  ast.TypeComplex,
}

var typeQualifiers = map[lexer.TokenType]ast.TypeQualifier{
	lexer.TokenConst:           ast.QualConst,
	lexer.TokenRestrict:        ast.QualRestrict,
	lexer.TokenVolatile:        ast.QualVolatile,
	lexer.TokenNonnull:         ast.QualNonnull,
	lexer.TokenNullUnspecified: ast.QualNullUnspecified,
	lexer.TokenNullable:        ast.QualNullable,
	lexer.TokenAtomic:          ast.QualAtomic,
}

var functionSpecifiers = map[lexer.TokenType]ast.FunctionSpecifier{
	lexer.TokenInline:   ast.FuncInline,
	lexer.TokenNoreturn: ast.FuncNoreturn,
}

// specifierList selects which specifiers a list may contain.
type specifierList int

const (
	declarationSpecifiers specifierList = iota
	specifierQualifiers
)

// qualifierAt returns the type qualifier spelled by the current token.
// _Atomic followed by '(' is the atomic type specifier instead.
func (p *Parser) qualifierAt() (ast.TypeQualifier, bool) {
	q, ok := typeQualifiers[p.curToken.Type]
	if ok && p.curTokenIs(lexer.TokenAtomic) && p.peekTokenIs(lexer.TokenLParen) {
		return q, false
	}
	return q, ok
}

// parseSpecifiers parses a non-empty specifier list. An identifier is
// taken as a typedef name only while no other type specifier has been
// seen, so that "T T;" redeclares T.
func (p *Parser) parseSpecifiers(list specifierList) []ast.DeclarationSpecifier {
	var specs []ast.DeclarationSpecifier
	sawType := false
	for {
		spec, isType := p.parseSpecifier(list, sawType)
		if spec == nil {
			break
		}
		specs = append(specs, spec)
		sawType = sawType || isType
	}
	if len(specs) == 0 {
		p.syntaxError("expected declaration specifiers, got %s", describe(p.curToken))
	}
	return specs
}

func (p *Parser) parseSpecifier(list specifierList, sawType bool) (ast.DeclarationSpecifier, bool) {
	tok := p.curToken
	if q, ok := p.qualifierAt(); ok {
		p.nextToken()
		return q, false
	}
	if t, ok := basicTypes[tok.Type]; ok {
		p.nextToken()
		return t, true
	}
	if list == declarationSpecifiers {
		if s, ok := storageClasses[tok.Type]; ok {
			p.nextToken()
			return s, false
		}
		if f, ok := functionSpecifiers[tok.Type]; ok {
			p.nextToken()
			return f, false
		}
		if tok.Type == lexer.TokenAlignas {
			return p.parseAlignas(), false
		}
	}
	switch tok.Type {
	case lexer.TokenAtomic:
		return p.parseAtomicType(), true
	case lexer.TokenStruct, lexer.TokenUnion:
		return p.parseStructType(), true
	case lexer.TokenEnum:
		return p.parseEnumType(), true
	case lexer.TokenTypeof:
		return p.parseTypeOf(), true
	case lexer.TokenAttribute:
		return ast.Extensions(p.parseAttributeSpecifier()), false
	case lexer.TokenIdent:
		if !sawType && p.scopes.IsTypedefName(tok.Literal) {
			p.nextToken()
			return &ast.TypedefName{Identifier: &ast.Identifier{Name: tok.Literal}}, true
		}
	}
	return nil, false
}

func (p *Parser) parseSpecifierQualifiers() []ast.SpecifierQualifier {
	specs := p.parseSpecifiers(specifierQualifiers)
	out := make([]ast.SpecifierQualifier, len(specs))
	for i, s := range specs {
		out[i] = s.(ast.SpecifierQualifier)
	}
	return out
}

func (p *Parser) parseAtomicType() *ast.AtomicType {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	tn := p.parseTypeName()
	p.expect(lexer.TokenRParen)
	return &ast.AtomicType{TypeName: tn}
}

func (p *Parser) parseAlignas() *ast.AlignmentSpecifier {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	as := &ast.AlignmentSpecifier{}
	if p.startsTypeName(p.curToken) {
		as.TypeName = p.parseTypeName()
	} else {
		as.Expression = p.parseConditionalExpression()
	}
	p.expect(lexer.TokenRParen)
	return as
}

func (p *Parser) parseTypeOf() *ast.TypeOf {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	to := &ast.TypeOf{}
	if p.startsTypeName(p.curToken) {
		to.TypeName = p.parseTypeName()
	} else {
		to.Expression = p.parseExpression()
	}
	p.expect(lexer.TokenRParen)
	return to
}

// parseStructType parses a struct or union specifier. Tags live in their
// own namespace and member names are not entered in the scope stack.
func (p *Parser) parseStructType() *ast.StructType {
	st := &ast.StructType{Kind: ast.KindStruct}
	if p.nextToken().Type == lexer.TokenUnion {
		st.Kind = ast.KindUnion
	}
	st.Extensions = p.parseAttributesOpt()
	if p.curTokenIs(lexer.TokenIdent) {
		st.Identifier = &ast.Identifier{Name: p.nextToken().Literal}
	}
	if !p.curTokenIs(lexer.TokenLBrace) {
		if st.Identifier == nil {
			p.syntaxError("expected tag or '{' after %s, got %s", strings.ToLower(st.Kind.String()), describe(p.curToken))
		}
		return st
	}
	p.nextToken()
	if p.curTokenIs(lexer.TokenRBrace) {
		p.requireExtension(p.curToken, "empty "+strings.ToLower(st.Kind.String()), dialect.GNU)
	}
	st.Declarations = []ast.StructDeclaration{}
	for !p.curTokenIs(lexer.TokenRBrace) {
		if p.curTokenIs(lexer.TokenSemicolon) {
			p.requireExtension(p.curToken, "empty member declaration", dialect.GNU)
			p.nextToken()
			continue
		}
		st.Declarations = append(st.Declarations, p.parseStructDeclaration())
	}
	p.nextToken()
	return st
}

func (p *Parser) parseStructDeclaration() ast.StructDeclaration {
	p.skipExtensionKeyword()
	if p.curTokenIs(lexer.TokenStaticAssert) {
		return p.parseStaticAssert()
	}
	field := &ast.StructField{Specifiers: p.parseSpecifierQualifiers()}
	if p.curTokenIs(lexer.TokenSemicolon) {
		// anonymous struct or union member
		p.nextToken()
		return field
	}
	for {
		sd := &ast.StructDeclarator{}
		if !p.curTokenIs(lexer.TokenColon) {
			sd.Declarator, _ = p.parseDeclarator(declNamed)
			p.parseDeclaratorExtensions(sd.Declarator)
		}
		if p.curTokenIs(lexer.TokenColon) {
			p.nextToken()
			sd.BitWidth = p.parseConditionalExpression()
			if sd.Declarator != nil {
				p.parseDeclaratorExtensions(sd.Declarator)
			}
		}
		field.Declarators = append(field.Declarators, sd)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	p.expect(lexer.TokenSemicolon)
	return field
}

func (p *Parser) parseEnumType() *ast.EnumType {
	p.nextToken()
	et := &ast.EnumType{Extensions: p.parseAttributesOpt()}
	if p.curTokenIs(lexer.TokenIdent) {
		et.Identifier = &ast.Identifier{Name: p.nextToken().Literal}
	}
	if !p.curTokenIs(lexer.TokenLBrace) {
		if et.Identifier == nil {
			p.syntaxError("expected enum tag or '{', got %s", describe(p.curToken))
		}
		return et
	}
	p.nextToken()
	for {
		et.Enumerators = append(et.Enumerators, p.parseEnumerator())
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
		if p.curTokenIs(lexer.TokenRBrace) {
			break
		}
	}
	p.expect(lexer.TokenRBrace)
	return et
}

// parseEnumerator declares the constant after its value, which is parsed
// with the constant still unknown.
func (p *Parser) parseEnumerator() *ast.Enumerator {
	tok := p.curToken
	en := &ast.Enumerator{Identifier: p.expectIdentifier()}
	en.Extensions = p.parseAttributesOpt()
	if p.curTokenIs(lexer.TokenAssign) {
		p.nextToken()
		en.Expression = p.parseConditionalExpression()
	}
	p.declare(tok, en.Identifier.Name, scope.EnumConstant)
	return en
}

// parseTypeName parses a specifier-qualifier list and an optional
// abstract declarator.
func (p *Parser) parseTypeName() *ast.TypeName {
	tn := &ast.TypeName{Specifiers: p.parseSpecifierQualifiers()}
	switch p.curToken.Type {
	case lexer.TokenStar, lexer.TokenCaret, lexer.TokenLParen, lexer.TokenLBracket:
		tn.Declarator, _ = p.parseDeclarator(declAbstract)
	}
	return tn
}

func (p *Parser) parseStaticAssert() *ast.StaticAssert {
	p.nextToken()
	p.expect(lexer.TokenLParen)
	sa := &ast.StaticAssert{Expression: p.parseConditionalExpression()}
	if p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		sa.Message = p.parseStringLiteral()
	}
	p.expect(lexer.TokenRParen)
	p.expect(lexer.TokenSemicolon)
	return sa
}

// declarationKind is the classification given to the names a declaration
// with these specifiers introduces.
func declarationKind(specs []ast.DeclarationSpecifier) scope.SymbolKind {
	for _, s := range specs {
		if s == ast.StorageTypedef {
			return scope.TypedefName
		}
	}
	return scope.Identifier
}

func (p *Parser) parseDeclaration() *ast.Declaration {
	p.skipExtensionKeyword()
	decl := &ast.Declaration{Specifiers: p.parseSpecifiers(declarationSpecifiers)}
	if !p.curTokenIs(lexer.TokenSemicolon) {
		kind := declarationKind(decl.Specifiers)
		decl.Declarators = p.parseInitDeclaratorList(p.parseInitDeclarator(kind), kind)
	}
	p.expect(lexer.TokenSemicolon)
	return decl
}

func (p *Parser) parseInitDeclarator(kind scope.SymbolKind) *ast.InitDeclarator {
	d, name := p.parseDeclarator(declNamed)
	p.parseDeclaratorExtensions(d)
	return p.finishInitDeclarator(d, name, kind)
}

// finishInitDeclarator declares the name before parsing the initializer,
// which is already in the name's scope.
func (p *Parser) finishInitDeclarator(d *ast.Declarator, name lexer.Token, kind scope.SymbolKind) *ast.InitDeclarator {
	p.declare(name, d.Name().Name, kind)
	id := &ast.InitDeclarator{Declarator: d}
	if p.curTokenIs(lexer.TokenAssign) {
		p.nextToken()
		id.Initializer = p.parseInitializer()
	}
	return id
}

func (p *Parser) parseInitDeclaratorList(first *ast.InitDeclarator, kind scope.SymbolKind) []*ast.InitDeclarator {
	list := []*ast.InitDeclarator{first}
	for p.curTokenIs(lexer.TokenComma) {
		p.nextToken()
		list = append(list, p.parseInitDeclarator(kind))
	}
	return list
}

func (p *Parser) parseExternalDeclaration() ast.ExternalDeclaration {
	// Only a definition at this level reads a parameter frame back.
	defer clear(p.paramScopes)
	p.skipExtensionKeyword()
	if p.curTokenIs(lexer.TokenStaticAssert) {
		return p.parseStaticAssert()
	}
	specs := p.parseSpecifiers(declarationSpecifiers)
	if p.curTokenIs(lexer.TokenSemicolon) {
		p.nextToken()
		return &ast.Declaration{Specifiers: specs}
	}
	kind := declarationKind(specs)
	d, name := p.parseDeclarator(declNamed)
	p.parseDeclaratorExtensions(d)
	if kind != scope.TypedefName {
		if fn := functionDerivation(d); fn != nil {
			if p.curTokenIs(lexer.TokenLBrace) || p.startsKRDefinition(fn) {
				return p.parseFunctionDefinition(specs, d, name, fn)
			}
		}
	}
	decl := &ast.Declaration{Specifiers: specs}
	decl.Declarators = p.parseInitDeclaratorList(p.finishInitDeclarator(d, name, kind), kind)
	p.expect(lexer.TokenSemicolon)
	return decl
}

// startsKRDefinition reports whether the tokens after an identifier-list
// declarator are parameter declarations followed by a function body.
// The trial runs in a throwaway frame and always rewinds, so a prototype
// followed by unrelated declarations is left alone.
func (p *Parser) startsKRDefinition(fn ast.DerivedDeclarator) bool {
	kr, ok := fn.(*ast.KRFunctionDeclarator)
	if !ok || len(kr.Identifiers) == 0 {
		return false
	}
	if !p.startsDeclaration(p.curToken) || p.curTokenIs(lexer.TokenTypedef) {
		return false
	}
	defer p.reset(p.mark())
	p.scopes.Push()
	defer p.scopes.Pop()
	return p.attempt(func() {
		for !p.curTokenIs(lexer.TokenLBrace) {
			p.parseDeclaration()
		}
	})
}

// parseFunctionDefinition parses the K&R declarations and body of a
// function. Both are parsed in the frame that holds the parameters.
func (p *Parser) parseFunctionDefinition(specs []ast.DeclarationSpecifier, d *ast.Declarator, name lexer.Token, fn ast.DerivedDeclarator) *ast.FunctionDefinition {
	p.declare(name, d.Name().Name, scope.Identifier)
	if frame, ok := p.paramScopes[fn]; ok {
		delete(p.paramScopes, fn)
		p.scopes.PushFrame(frame)
	} else {
		p.scopes.Push()
	}
	defer p.scopes.Pop()

	fd := &ast.FunctionDefinition{Specifiers: specs, Declarator: d}
	for !p.curTokenIs(lexer.TokenLBrace) {
		fd.Declarations = append(fd.Declarations, p.parseDeclaration())
	}
	fd.Body = p.parseBlockBody()
	return fd
}

func (p *Parser) parseInitializer() ast.Initializer {
	if p.curTokenIs(lexer.TokenLBrace) {
		return &ast.ListInitializer{Items: p.parseInitializerList()}
	}
	return &ast.ExpressionInitializer{Expression: p.parseAssignmentExpression()}
}

// parseInitializerList parses a braced list, trailing comma allowed.
func (p *Parser) parseInitializerList() []*ast.InitializerListItem {
	p.expect(lexer.TokenLBrace)
	items := []*ast.InitializerListItem{}
	for !p.curTokenIs(lexer.TokenRBrace) {
		item := &ast.InitializerListItem{Designation: p.parseDesignation()}
		item.Initializer = p.parseInitializer()
		items = append(items, item)
		if !p.curTokenIs(lexer.TokenComma) {
			break
		}
		p.nextToken()
	}
	p.expect(lexer.TokenRBrace)
	return items
}

func (p *Parser) parseDesignation() []ast.Designator {
	var ds []ast.Designator
	for {
		switch p.curToken.Type {
		case lexer.TokenLBracket:
			p.nextToken()
			from := p.parseConditionalExpression()
			if p.curTokenIs(lexer.TokenEllipsis) {
				p.requireExtension(p.curToken, "range designator", dialect.GNU)
				p.nextToken()
				ds = append(ds, &ast.RangeDesignator{From: from, To: p.parseConditionalExpression()})
			} else {
				ds = append(ds, &ast.IndexDesignator{Expression: from})
			}
			p.expect(lexer.TokenRBracket)
		case lexer.TokenDot:
			p.nextToken()
			ds = append(ds, &ast.MemberDesignator{Identifier: p.expectIdentifier()})
		default:
			if len(ds) > 0 {
				p.expect(lexer.TokenAssign)
			}
			return ds
		}
	}
}
