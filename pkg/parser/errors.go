package parser

import (
	"errors"
	"fmt"

	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
)

// ErrorKind classifies a parse failure.
type ErrorKind int

const (
	// KindSyntax means no production matched the input.
	KindSyntax ErrorKind = iota
	// KindClassification means a name was redeclared with a different
	// classification in the same scope.
	KindClassification
	// KindUnsupportedExtension means the input uses a GNU or Clang
	// construct that the parse's dialect does not enable.
	KindUnsupportedExtension
)

func (k ErrorKind) String() string {
	switch k {
	case KindClassification:
		return "classification conflict"
	case KindUnsupportedExtension:
		return "unsupported extension"
	default:
		return "syntax error"
	}
}

// Sentinel errors for errors.Is on a *Error.
var (
	ErrSyntax               = errors.New("syntax error")
	ErrClassification       = errors.New("classification conflict")
	ErrUnsupportedExtension = errors.New("unsupported extension")
)

// Error is the error returned by every parse entry point. Parsing stops at
// the first error.
type Error struct {
	Kind ErrorKind
	Pos  lexer.Position
	Msg  string
	// Err is the underlying cause, such as a *scope.ConflictError.
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Pos, e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrSyntax:
		return e.Kind == KindSyntax
	case ErrClassification:
		return e.Kind == KindClassification
	case ErrUnsupportedExtension:
		return e.Kind == KindUnsupportedExtension
	}
	return false
}

// bailout carries an *Error up the stack from the failure point to the
// recover in the entry point. Deferred scope pops run on the way.
type bailout struct {
	err *Error
}

func (p *Parser) fail(kind ErrorKind, tok lexer.Token, cause error, format string, args ...any) {
	panic(bailout{&Error{Kind: kind, Pos: tok.Pos(), Msg: fmt.Sprintf(format, args...), Err: cause}})
}

// failAt runs fn and moves a syntax error raised inside it to tok.
func (p *Parser) failAt(tok lexer.Token, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			if b, ok := r.(bailout); ok && b.err.Kind == KindSyntax {
				b.err.Pos = tok.Pos()
			}
			panic(r)
		}
	}()
	fn()
}

func (p *Parser) syntaxError(format string, args ...any) {
	p.fail(KindSyntax, p.curToken, nil, format, args...)
}

func (p *Parser) unsupported(tok lexer.Token, what string, need dialect.Dialect) {
	p.fail(KindUnsupportedExtension, tok, nil, "%s requires %s", what, need)
}

func (p *Parser) conflict(tok lexer.Token, err error) {
	p.fail(KindClassification, tok, err, "%v", err)
}

// describe names a token for error messages.
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.TokenEOF:
		return "end of input"
	case lexer.TokenIdent, lexer.TokenInt, lexer.TokenReal, lexer.TokenCharacter, lexer.TokenString, lexer.TokenIllegal:
		return fmt.Sprintf("%s %q", tok.Type, tok.Literal)
	}
	return fmt.Sprintf("%q", tok.Literal)
}
