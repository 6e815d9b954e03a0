package lexer

import "strings"

// Source produces tokens one at a time. After the input is exhausted it
// keeps returning a TokenEOF token.
type Source interface {
	NextToken() Token
}

// Lexer tokenizes C source code. Preprocessor line markers and directives
// left in preprocessed input are skipped.
type Lexer struct {
	input   string
	pos     int  // current position in input
	readPos int  // next reading position
	ch      byte // current character
	line    int
	column  int

	atLineStart bool
}

// New creates a new Lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0, atLineStart: true}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}
	if l.readPos >= len(l.input) {
		l.ch = 0 // EOF
	} else {
		l.ch = l.input[l.readPos]
	}
	l.pos = l.readPos
	l.readPos++
	l.column++
}

func (l *Lexer) peekChar() byte {
	if l.readPos >= len(l.input) {
		return 0
	}
	return l.input[l.readPos]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

// punctuators is ordered so that longer spellings are tried first.
var punctuators = []struct {
	text string
	typ  TokenType
}{
	{"...", TokenEllipsis},
	{"<<=", TokenShlAssign},
	{">>=", TokenShrAssign},
	{"->", TokenArrow},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"<<", TokenShl},
	{">>", TokenShr},
	{"<=", TokenLe},
	{">=", TokenGe},
	{"==", TokenEq},
	{"!=", TokenNe},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
	{"=", TokenAssign},
	{"<", TokenLt},
	{">", TokenGt},
	{"!", TokenNot},
	{"&", TokenAmpersand},
	{"|", TokenPipe},
	{"^", TokenCaret},
	{"~", TokenTilde},
	{"?", TokenQuestion},
	{":", TokenColon},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
}

// NextToken returns the next token from the input
func (l *Lexer) NextToken() Token {
	l.skipTrivia()

	tok := Token{Line: l.line, Column: l.column, Offset: l.pos}
	l.atLineStart = false

	switch {
	case l.atEOF():
		tok.Type = TokenEOF
		tok.Literal = ""
		return tok
	case isLetter(l.ch):
		start := l.pos
		ident := l.readIdentifier()
		if isLiteralPrefix(ident) && (l.ch == '\'' || l.ch == '"') {
			return l.readQuoted(tok, start)
		}
		tok.Literal = ident
		tok.Type, tok.Requires = LookupIdent(ident)
		return tok
	case isDigit(l.ch) || (l.ch == '.' && isDigit(l.peekChar())):
		tok.Literal = l.readNumber()
		tok.Type = TokenInt
		if isRealSpelling(tok.Literal) {
			tok.Type = TokenReal
		}
		return tok
	case l.ch == '\'' || l.ch == '"':
		return l.readQuoted(tok, l.pos)
	}

	rest := l.input[l.pos:]
	for _, p := range punctuators {
		if strings.HasPrefix(rest, p.text) {
			for range p.text {
				l.readChar()
			}
			tok.Type = p.typ
			tok.Literal = p.text
			return tok
		}
	}

	tok.Type = TokenIllegal
	tok.Literal = string(l.ch)
	l.readChar()
	return tok
}

// skipTrivia skips whitespace, comments, line continuations and
// preprocessor lines starting with '#'.
func (l *Lexer) skipTrivia() {
	for !l.atEOF() {
		switch {
		case l.ch == '\n':
			l.atLineStart = true
			l.readChar()
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\f' || l.ch == '\v':
			l.readChar()
		case l.ch == '\\' && l.peekChar() == '\n':
			l.readChar()
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for !l.atEOF() && l.ch != '\n' {
				l.readChar()
			}
		case l.ch == '/' && l.peekChar() == '*':
			l.readChar()
			l.readChar()
			for !l.atEOF() && !(l.ch == '*' && l.peekChar() == '/') {
				l.readChar()
			}
			if !l.atEOF() {
				l.readChar()
				l.readChar()
			}
		case l.ch == '#' && l.atLineStart:
			l.skipDirective()
		default:
			return
		}
	}
}

func (l *Lexer) skipDirective() {
	for !l.atEOF() && l.ch != '\n' {
		if l.ch == '\\' && l.peekChar() == '\n' {
			l.readChar()
		}
		l.readChar()
	}
}

func (l *Lexer) readIdentifier() string {
	start := l.pos
	for isLetter(l.ch) || isDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.pos]
}

// readNumber reads a preprocessing number: digits, letters, dots and
// signed exponents, decoded later by the parser.
func (l *Lexer) readNumber() string {
	start := l.pos
	for {
		switch {
		case (l.ch == 'e' || l.ch == 'E' || l.ch == 'p' || l.ch == 'P') && (l.peekChar() == '+' || l.peekChar() == '-'):
			l.readChar()
			l.readChar()
		case isLetter(l.ch) || isDigit(l.ch) || l.ch == '.':
			l.readChar()
		default:
			return l.input[start:l.pos]
		}
	}
}

// readQuoted reads a character constant or string literal, keeping the
// prefix, the quotes and any escape sequences in the spelling.
func (l *Lexer) readQuoted(tok Token, start int) Token {
	quote := l.ch
	tok.Type = TokenString
	if quote == '\'' {
		tok.Type = TokenCharacter
	}
	l.readChar()
	for l.ch != quote {
		if l.atEOF() || l.ch == '\n' {
			tok.Type = TokenIllegal
			tok.Literal = l.input[start:l.pos]
			return tok
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEOF() {
				continue
			}
		}
		l.readChar()
	}
	l.readChar()
	tok.Literal = l.input[start:l.pos]
	return tok
}

func isRealSpelling(s string) bool {
	if len(s) > 1 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return strings.ContainsAny(s, ".pP")
	}
	return strings.ContainsAny(s, ".eE")
}

func isLiteralPrefix(s string) bool {
	return s == "L" || s == "u" || s == "U" || s == "u8"
}

func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

// SliceSource replays a fixed token slice, then EOF forever.
type SliceSource struct {
	tokens []Token
	pos    int
}

// NewSliceSource returns a Source over tokens.
func NewSliceSource(tokens []Token) *SliceSource {
	return &SliceSource{tokens: tokens}
}

func (s *SliceSource) NextToken() Token {
	if s.pos >= len(s.tokens) {
		return Token{Type: TokenEOF}
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok
}

// Tokenize lexes all of input, stopping after the EOF token.
func Tokenize(input string) []Token {
	l := New(input)
	var tokens []Token
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens
		}
	}
}
