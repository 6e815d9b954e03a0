package lexer

import (
	"testing"

	"github.com/raymyers/cparse/pkg/dialect"
)

type expectedToken struct {
	expectedType    TokenType
	expectedLiteral string
}

func checkTokens(t *testing.T, input string, tests []expectedToken) {
	t.Helper()
	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextToken(t *testing.T) {
	checkTokens(t, `int main() { return 42; }`, []expectedToken{
		{TokenInt_, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenLBrace, "{"},
		{TokenReturn, "return"},
		{TokenInt, "42"},
		{TokenSemicolon, ";"},
		{TokenRBrace, "}"},
		{TokenEOF, ""},
	})
}

func TestOperators(t *testing.T) {
	input := `+ - * / % = == != < <= > >= && || ! & | ^ ~ << >> <<= >>= -> ... ++ -- ? : . += |=`
	checkTokens(t, input, []expectedToken{
		{TokenPlus, "+"},
		{TokenMinus, "-"},
		{TokenStar, "*"},
		{TokenSlash, "/"},
		{TokenPercent, "%"},
		{TokenAssign, "="},
		{TokenEq, "=="},
		{TokenNe, "!="},
		{TokenLt, "<"},
		{TokenLe, "<="},
		{TokenGt, ">"},
		{TokenGe, ">="},
		{TokenAnd, "&&"},
		{TokenOr, "||"},
		{TokenNot, "!"},
		{TokenAmpersand, "&"},
		{TokenPipe, "|"},
		{TokenCaret, "^"},
		{TokenTilde, "~"},
		{TokenShl, "<<"},
		{TokenShr, ">>"},
		{TokenShlAssign, "<<="},
		{TokenShrAssign, ">>="},
		{TokenArrow, "->"},
		{TokenEllipsis, "..."},
		{TokenIncrement, "++"},
		{TokenDecrement, "--"},
		{TokenQuestion, "?"},
		{TokenColon, ":"},
		{TokenDot, "."},
		{TokenPlusAssign, "+="},
		{TokenOrAssign, "|="},
		{TokenEOF, ""},
	})
}

func TestComments(t *testing.T) {
	input := `int // comment
main /* block
comment */ ()`
	checkTokens(t, input, []expectedToken{
		{TokenInt_, "int"},
		{TokenIdent, "main"},
		{TokenLParen, "("},
		{TokenRParen, ")"},
		{TokenEOF, ""},
	})
}

func TestDirectivesSkipped(t *testing.T) {
	input := "# 1 \"foo.c\"\nint x;\n  #pragma once \\\n  continued\na # b"
	checkTokens(t, input, []expectedToken{
		{TokenInt_, "int"},
		{TokenIdent, "x"},
		{TokenSemicolon, ";"},
		{TokenIdent, "a"},
		{TokenIllegal, "#"},
		{TokenIdent, "b"},
		{TokenEOF, ""},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, `0 42 0x2a 1ul 08 1.5 .5e3 1e+10 0x2Ap19L 2. 1.2.3 1a`, []expectedToken{
		{TokenInt, "0"},
		{TokenInt, "42"},
		{TokenInt, "0x2a"},
		{TokenInt, "1ul"},
		{TokenInt, "08"},
		{TokenReal, "1.5"},
		{TokenReal, ".5e3"},
		{TokenReal, "1e+10"},
		{TokenReal, "0x2Ap19L"},
		{TokenReal, "2."},
		{TokenReal, "1.2.3"},
		{TokenInt, "1a"},
		{TokenEOF, ""},
	})
}

func TestCharactersAndStrings(t *testing.T) {
	checkTokens(t, `'a' '\'' L'x' "hi" u8"x\"y" U"z" L`, []expectedToken{
		{TokenCharacter, `'a'`},
		{TokenCharacter, `'\''`},
		{TokenCharacter, `L'x'`},
		{TokenString, `"hi"`},
		{TokenString, `u8"x\"y"`},
		{TokenString, `U"z"`},
		{TokenIdent, "L"},
		{TokenEOF, ""},
	})
}

func TestUnterminatedString(t *testing.T) {
	checkTokens(t, "\"abc\nx", []expectedToken{
		{TokenIllegal, `"abc`},
		{TokenIdent, "x"},
		{TokenEOF, ""},
	})
}

func TestExtensionKeywords(t *testing.T) {
	tests := []struct {
		input    string
		typ      TokenType
		requires dialect.Dialect
	}{
		{"int", TokenInt_, dialect.Std},
		{"_Atomic", TokenAtomic, dialect.Std},
		{"__attribute__", TokenAttribute, dialect.GNU},
		{"__const", TokenConst, dialect.GNU},
		{"typeof", TokenTypeof, dialect.GNU},
		{"_Nullable", TokenNullable, dialect.Clang},
		{"__builtin_va_list", TokenIdent, dialect.Std},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := New(tt.input).NextToken()
			if tok.Type != tt.typ {
				t.Errorf("type = %v, want %v", tok.Type, tt.typ)
			}
			if tok.Requires != tt.requires {
				t.Errorf("requires = %v, want %v", tok.Requires, tt.requires)
			}
		})
	}
}

func TestPositions(t *testing.T) {
	l := New("int\n  x;")
	tok := l.NextToken()
	if tok.Pos() != (Position{Offset: 0, Line: 1, Column: 1}) {
		t.Errorf("int at %+v", tok.Pos())
	}
	tok = l.NextToken()
	if tok.Pos() != (Position{Offset: 6, Line: 2, Column: 3}) {
		t.Errorf("x at %+v", tok.Pos())
	}
	if got := tok.Pos().String(); got != "line 2, col 3" {
		t.Errorf("String() = %q", got)
	}
}

func TestIsReserved(t *testing.T) {
	for ident, want := range map[string]bool{
		"__x":      true,
		"_Nonnull": true,
		"_x":       false,
		"typeof":   false,
		"_":        false,
	} {
		if got := IsReserved(ident); got != want {
			t.Errorf("IsReserved(%q) = %v, want %v", ident, got, want)
		}
	}
}

func TestSliceSource(t *testing.T) {
	tokens := Tokenize("a b")
	if len(tokens) != 3 || tokens[2].Type != TokenEOF {
		t.Fatalf("Tokenize = %v", tokens)
	}
	src := NewSliceSource(tokens[:2])
	if tok := src.NextToken(); tok.Literal != "a" {
		t.Errorf("first = %q", tok.Literal)
	}
	src.NextToken()
	for i := 0; i < 2; i++ {
		if tok := src.NextToken(); tok.Type != TokenEOF {
			t.Errorf("expected EOF after end, got %v", tok.Type)
		}
	}
}
