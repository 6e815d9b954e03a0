// Package parser implements a scope-aware recursive descent parser for C.
//
// C cannot be parsed without knowing which identifiers name types, so the
// parser keeps a scope.Stack of classifications and consults it at every
// identifier where the grammar branches on it.
package parser

import (
	"fmt"

	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/scope"
)

// Config selects the dialect of a parse and the typedef names visible
// before the first token.
type Config struct {
	Dialect  dialect.Dialect
	Typedefs []string
}

// ConfigFor returns a Config for d with the typedef names that compilers
// of that dialect predeclare.
func ConfigFor(d dialect.Dialect) Config {
	cfg := Config{Dialect: d}
	if d.Has(dialect.GNU) {
		cfg.Typedefs = append(cfg.Typedefs, "__builtin_va_list")
	}
	return cfg
}

// Parser parses C source code into a concrete syntax tree. A Parser owns
// its scope stack and must not be shared between goroutines.
type Parser struct {
	src       lexer.Source
	tokens    []lexer.Token
	pos       int
	curToken  lexer.Token
	peekToken lexer.Token

	dialect dialect.Dialect
	scopes  *scope.Stack

	// paramScopes keeps the parameter frame of each function declarator
	// so that a function body can re-enter it. Entries live until the
	// enclosing external declaration is finished.
	paramScopes map[ast.DerivedDeclarator]*scope.Scope
}

// New creates a new Parser reading tokens from src.
func New(src lexer.Source, cfg Config) *Parser {
	p := &Parser{
		src:         src,
		dialect:     cfg.Dialect,
		scopes:      scope.NewStack(),
		paramScopes: make(map[ast.DerivedDeclarator]*scope.Scope),
	}
	for _, name := range cfg.Typedefs {
		// Every seed has the same kind, so Declare cannot conflict.
		_ = p.scopes.Declare(name, scope.TypedefName)
	}
	p.setPos(0)
	return p
}

// Parse parses a translation unit from src.
func Parse(src lexer.Source, d dialect.Dialect, predeclared []string) (*ast.TranslationUnit, error) {
	return New(src, Config{Dialect: d, Typedefs: predeclared}).ParseTranslationUnit()
}

// ParseString parses C source text as a translation unit.
func ParseString(text string, cfg Config) (*ast.TranslationUnit, error) {
	return New(lexer.New(text), cfg).ParseTranslationUnit()
}

// Scopes exposes the parser's scope stack.
func (p *Parser) Scopes() *scope.Stack {
	return p.scopes
}

// Dialect returns the dialect the parser was configured with.
func (p *Parser) Dialect() dialect.Dialect {
	return p.dialect
}

// AtEOF reports whether all input has been consumed.
func (p *Parser) AtEOF() bool {
	return p.curTokenIs(lexer.TokenEOF)
}

// ParseTranslationUnit parses external declarations until end of input.
func (p *Parser) ParseTranslationUnit() (tu *ast.TranslationUnit, err error) {
	err = p.run(func() {
		tu = &ast.TranslationUnit{}
		for !p.curTokenIs(lexer.TokenEOF) {
			if p.curTokenIs(lexer.TokenSemicolon) {
				p.requireExtension(p.curToken, "empty declaration", dialect.GNU)
				p.nextToken()
				continue
			}
			tu.Declarations = append(tu.Declarations, p.parseExternalDeclaration())
		}
	})
	return tu, err
}

// ParseExternalDeclaration parses one declaration or function definition.
func (p *Parser) ParseExternalDeclaration() (ed ast.ExternalDeclaration, err error) {
	err = p.run(func() { ed = p.parseExternalDeclaration() })
	return ed, err
}

// ParseDeclaration parses one declaration in the current scope.
func (p *Parser) ParseDeclaration() (d *ast.Declaration, err error) {
	err = p.run(func() { d = p.parseDeclaration() })
	return d, err
}

// ParseStatement parses one statement in the current scope.
func (p *Parser) ParseStatement() (s ast.Statement, err error) {
	err = p.run(func() { s = p.parseStatement() })
	return s, err
}

// ParseExpression parses one expression, commas included.
func (p *Parser) ParseExpression() (e ast.Expression, err error) {
	err = p.run(func() { e = p.parseExpression() })
	return e, err
}

// run calls fn and converts a bailout into the returned error. Frames
// pushed by fn are popped by their own deferred calls while the panic
// unwinds, so the scope depth is the same on both paths.
func (p *Parser) run(fn func()) (err error) {
	defer clear(p.paramScopes)
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			err = b.err
		}
	}()
	fn()
	return nil
}

// attempt calls fn and reports whether it finished without a syntax
// error. Classification and extension errors are not recoverable by
// choosing another production and keep propagating.
func (p *Parser) attempt(fn func()) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			b, isBailout := r.(bailout)
			if !isBailout || b.err.Kind != KindSyntax {
				panic(r)
			}
			ok = false
		}
	}()
	fn()
	return true
}

func (p *Parser) tokenAt(i int) lexer.Token {
	for len(p.tokens) <= i {
		if n := len(p.tokens); n > 0 && p.tokens[n-1].Type == lexer.TokenEOF {
			return p.tokens[n-1]
		}
		p.tokens = append(p.tokens, p.adjust(p.src.NextToken()))
	}
	return p.tokens[i]
}

// adjust turns extension keywords outside the reserved namespace, such as
// typeof and asm, back into identifiers when their extension is disabled.
// Reserved spellings stay keywords and fail when consumed.
func (p *Parser) adjust(tok lexer.Token) lexer.Token {
	if tok.Requires != dialect.Std && !p.dialect.Has(tok.Requires) && !lexer.IsReserved(tok.Literal) {
		tok.Type = lexer.TokenIdent
		tok.Requires = dialect.Std
	}
	return tok
}

func (p *Parser) setPos(i int) {
	p.pos = i
	p.curToken = p.tokenAt(i)
	p.peekToken = p.tokenAt(i + 1)
}

func (p *Parser) mark() int {
	return p.pos
}

func (p *Parser) reset(mark int) {
	p.setPos(mark)
}

// advance moves past the current token without checking it.
func (p *Parser) advance() lexer.Token {
	tok := p.curToken
	p.setPos(p.pos + 1)
	return tok
}

// nextToken consumes the current token, rejecting keywords of disabled
// extensions and malformed tokens.
func (p *Parser) nextToken() lexer.Token {
	tok := p.curToken
	if tok.Requires != dialect.Std && !p.dialect.Has(tok.Requires) {
		p.unsupported(tok, fmt.Sprintf("%q", tok.Literal), tok.Requires)
	}
	if tok.Type == lexer.TokenIllegal {
		p.syntaxError("illegal token %q", tok.Literal)
	}
	return p.advance()
}

func (p *Parser) curTokenIs(t lexer.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t lexer.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	if !p.curTokenIs(t) {
		p.syntaxError("expected %q, got %s", t.String(), describe(p.curToken))
	}
	return p.nextToken()
}

func (p *Parser) expectIdentifier() *ast.Identifier {
	if !p.curTokenIs(lexer.TokenIdent) {
		p.syntaxError("expected identifier, got %s", describe(p.curToken))
	}
	return &ast.Identifier{Name: p.nextToken().Literal}
}

func (p *Parser) declare(tok lexer.Token, name string, kind scope.SymbolKind) {
	if err := p.scopes.Declare(name, kind); err != nil {
		p.conflict(tok, err)
	}
}

func (p *Parser) requireExtension(tok lexer.Token, what string, need dialect.Dialect) {
	if !p.dialect.Has(need) {
		p.unsupported(tok, what, need)
	}
}

// skipExtensionKeyword drops leading __extension__ markers.
func (p *Parser) skipExtensionKeyword() {
	for p.curTokenIs(lexer.TokenExtension) {
		p.nextToken()
	}
}
