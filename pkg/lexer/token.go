package lexer

import (
	"fmt"

	"github.com/raymyers/cparse/pkg/dialect"
)

// TokenType represents the type of a token
type TokenType int

const (
	// Special tokens
	TokenEOF TokenType = iota
	TokenIllegal

	// Literals
	TokenIdent     // main, foo, x
	TokenInt       // 42, 0x2a, 1ul
	TokenReal      // 1.5, .5e3, 0x1p4
	TokenCharacter // 'a', L'x'
	TokenString    // "hello", u8"x"

	keywordStart

	// Keywords
	TokenInt_     // int
	TokenVoid     // void
	TokenReturn   // return
	TokenIf       // if
	TokenElse     // else
	TokenWhile    // while
	TokenDo       // do
	TokenFor      // for
	TokenBreak    // break
	TokenContinue // continue
	TokenSwitch   // switch
	TokenCase     // case
	TokenDefault  // default
	TokenGoto     // goto
	TokenTypedef  // typedef
	TokenStruct   // struct
	TokenSizeof   // sizeof
	TokenUnion    // union
	TokenEnum     // enum
	TokenStatic   // static
	TokenExtern   // extern
	TokenAuto     // auto
	TokenRegister // register
	TokenConst    // const
	TokenVolatile // volatile
	TokenRestrict // restrict
	TokenChar     // char
	TokenShort    // short
	TokenLong     // long
	TokenFloat    // float
	TokenDouble   // double
	TokenSigned   // signed
	TokenUnsigned // unsigned
	TokenInline   // inline

	// C11 keywords
	TokenAlignas      // _Alignas
	TokenAlignof      // _Alignof
	TokenAtomic       // _Atomic
	TokenBool         // _Bool
	TokenComplex      // _Complex
	TokenGeneric      // _Generic
	TokenNoreturn     // _Noreturn
	TokenStaticAssert // _Static_assert
	TokenThreadLocal  // _Thread_local

	// GNU keywords
	TokenAsm             // asm, __asm__
	TokenAttribute       // __attribute__
	TokenExtension       // __extension__
	TokenTypeof          // typeof, __typeof__
	TokenBuiltinVaArg    // __builtin_va_arg
	TokenBuiltinOffsetof // __builtin_offsetof

	// Clang keywords
	TokenNonnull         // _Nonnull
	TokenNullable        // _Nullable
	TokenNullUnspecified // _Null_unspecified

	keywordEnd

	// Operators
	TokenPlus      // +
	TokenMinus     // -
	TokenStar      // *
	TokenSlash     // /
	TokenPercent   // %
	TokenAssign    // =
	TokenEq        // ==
	TokenNe        // !=
	TokenLt        // <
	TokenLe        // <=
	TokenGt        // >
	TokenGe        // >=
	TokenAnd       // &&
	TokenOr        // ||
	TokenNot       // !
	TokenAmpersand // &
	TokenPipe      // |
	TokenCaret     // ^
	TokenTilde     // ~
	TokenShl       // <<
	TokenShr       // >>
	TokenQuestion  // ?
	TokenColon     // :

	// Compound assignment operators
	TokenPlusAssign    // +=
	TokenMinusAssign   // -=
	TokenStarAssign    // *=
	TokenSlashAssign   // /=
	TokenPercentAssign // %=
	TokenAndAssign     // &=
	TokenOrAssign      // |=
	TokenXorAssign     // ^=
	TokenShlAssign     // <<=
	TokenShrAssign     // >>=

	// Increment/decrement
	TokenIncrement // ++
	TokenDecrement // --

	// Delimiters
	TokenLParen    // (
	TokenRParen    // )
	TokenLBrace    // {
	TokenRBrace    // }
	TokenLBracket  // [
	TokenRBracket  // ]
	TokenSemicolon // ;
	TokenComma     // ,
	TokenDot       // .
	TokenArrow     // ->
	TokenEllipsis  // ...
)

var tokenNames = map[TokenType]string{
	TokenEOF:             "EOF",
	TokenIllegal:         "ILLEGAL",
	TokenIdent:           "IDENT",
	TokenInt:             "INT",
	TokenReal:            "REAL",
	TokenCharacter:       "CHAR",
	TokenString:          "STRING",
	TokenInt_:            "int",
	TokenVoid:            "void",
	TokenReturn:          "return",
	TokenIf:              "if",
	TokenElse:            "else",
	TokenWhile:           "while",
	TokenDo:              "do",
	TokenFor:             "for",
	TokenBreak:           "break",
	TokenContinue:        "continue",
	TokenSwitch:          "switch",
	TokenCase:            "case",
	TokenDefault:         "default",
	TokenGoto:            "goto",
	TokenTypedef:         "typedef",
	TokenStruct:          "struct",
	TokenSizeof:          "sizeof",
	TokenUnion:           "union",
	TokenEnum:            "enum",
	TokenStatic:          "static",
	TokenExtern:          "extern",
	TokenAuto:            "auto",
	TokenRegister:        "register",
	TokenConst:           "const",
	TokenVolatile:        "volatile",
	TokenRestrict:        "restrict",
	TokenChar:            "char",
	TokenShort:           "short",
	TokenLong:            "long",
	TokenFloat:           "float",
	TokenDouble:          "double",
	TokenSigned:          "signed",
	TokenUnsigned:        "unsigned",
	TokenInline:          "inline",
	TokenAlignas:         "_Alignas",
	TokenAlignof:         "_Alignof",
	TokenAtomic:          "_Atomic",
	TokenBool:            "_Bool",
	TokenComplex:         "_Complex",
	TokenGeneric:         "_Generic",
	TokenNoreturn:        "_Noreturn",
	TokenStaticAssert:    "_Static_assert",
	TokenThreadLocal:     "_Thread_local",
	TokenAsm:             "asm",
	TokenAttribute:       "__attribute__",
	TokenExtension:       "__extension__",
	TokenTypeof:          "typeof",
	TokenBuiltinVaArg:    "__builtin_va_arg",
	TokenBuiltinOffsetof: "__builtin_offsetof",
	TokenNonnull:         "_Nonnull",
	TokenNullable:        "_Nullable",
	TokenNullUnspecified: "_Null_unspecified",
	TokenPlus:            "+",
	TokenMinus:           "-",
	TokenStar:            "*",
	TokenSlash:           "/",
	TokenPercent:         "%",
	TokenAssign:          "=",
	TokenEq:              "==",
	TokenNe:              "!=",
	TokenLt:              "<",
	TokenLe:              "<=",
	TokenGt:              ">",
	TokenGe:              ">=",
	TokenAnd:             "&&",
	TokenOr:              "||",
	TokenNot:             "!",
	TokenAmpersand:       "&",
	TokenPipe:            "|",
	TokenCaret:           "^",
	TokenTilde:           "~",
	TokenShl:             "<<",
	TokenShr:             ">>",
	TokenQuestion:        "?",
	TokenColon:           ":",
	TokenPlusAssign:      "+=",
	TokenMinusAssign:     "-=",
	TokenStarAssign:      "*=",
	TokenSlashAssign:     "/=",
	TokenPercentAssign:   "%=",
	TokenAndAssign:       "&=",
	TokenOrAssign:        "|=",
	TokenXorAssign:       "^=",
	TokenShlAssign:       "<<=",
	TokenShrAssign:       ">>=",
	TokenIncrement:       "++",
	TokenDecrement:       "--",
	TokenLParen:          "(",
	TokenRParen:          ")",
	TokenLBrace:          "{",
	TokenRBrace:          "}",
	TokenLBracket:        "[",
	TokenRBracket:        "]",
	TokenSemicolon:       ";",
	TokenComma:           ",",
	TokenDot:             ".",
	TokenArrow:           "->",
	TokenEllipsis:        "...",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsKeyword reports whether t is a keyword token, including extension keywords.
func (t TokenType) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// Position locates a token in its input. Line and Column are 1-based.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Column)
}

// Token represents a lexical token
type Token struct {
	Type    TokenType
	Literal string
	Line    int
	Column  int
	Offset  int
	// Requires is the extension set that must be enabled for a keyword
	// spelling to act as a keyword. Zero for standard C.
	Requires dialect.Dialect
}

// Pos returns the token's position.
func (t Token) Pos() Position {
	return Position{Offset: t.Offset, Line: t.Line, Column: t.Column}
}

type keyword struct {
	typ      TokenType
	requires dialect.Dialect
}

// keywords maps keyword spellings to token types. Alternate GNU spellings
// map to the same token type as the standard keyword.
var keywords = map[string]keyword{
	"int":            {TokenInt_, dialect.Std},
	"void":           {TokenVoid, dialect.Std},
	"return":         {TokenReturn, dialect.Std},
	"if":             {TokenIf, dialect.Std},
	"else":           {TokenElse, dialect.Std},
	"while":          {TokenWhile, dialect.Std},
	"do":             {TokenDo, dialect.Std},
	"for":            {TokenFor, dialect.Std},
	"break":          {TokenBreak, dialect.Std},
	"continue":       {TokenContinue, dialect.Std},
	"switch":         {TokenSwitch, dialect.Std},
	"case":           {TokenCase, dialect.Std},
	"default":        {TokenDefault, dialect.Std},
	"goto":           {TokenGoto, dialect.Std},
	"typedef":        {TokenTypedef, dialect.Std},
	"struct":         {TokenStruct, dialect.Std},
	"sizeof":         {TokenSizeof, dialect.Std},
	"union":          {TokenUnion, dialect.Std},
	"enum":           {TokenEnum, dialect.Std},
	"static":         {TokenStatic, dialect.Std},
	"extern":         {TokenExtern, dialect.Std},
	"auto":           {TokenAuto, dialect.Std},
	"register":       {TokenRegister, dialect.Std},
	"const":          {TokenConst, dialect.Std},
	"volatile":       {TokenVolatile, dialect.Std},
	"restrict":       {TokenRestrict, dialect.Std},
	"char":           {TokenChar, dialect.Std},
	"short":          {TokenShort, dialect.Std},
	"long":           {TokenLong, dialect.Std},
	"float":          {TokenFloat, dialect.Std},
	"double":         {TokenDouble, dialect.Std},
	"signed":         {TokenSigned, dialect.Std},
	"unsigned":       {TokenUnsigned, dialect.Std},
	"inline":         {TokenInline, dialect.Std},
	"_Alignas":       {TokenAlignas, dialect.Std},
	"_Alignof":       {TokenAlignof, dialect.Std},
	"_Atomic":        {TokenAtomic, dialect.Std},
	"_Bool":          {TokenBool, dialect.Std},
	"_Complex":       {TokenComplex, dialect.Std},
	"_Generic":       {TokenGeneric, dialect.Std},
	"_Noreturn":      {TokenNoreturn, dialect.Std},
	"_Static_assert": {TokenStaticAssert, dialect.Std},
	"_Thread_local":  {TokenThreadLocal, dialect.Std},

	"asm":                {TokenAsm, dialect.GNU},
	"__asm":              {TokenAsm, dialect.GNU},
	"__asm__":            {TokenAsm, dialect.GNU},
	"__attribute":        {TokenAttribute, dialect.GNU},
	"__attribute__":      {TokenAttribute, dialect.GNU},
	"__extension__":      {TokenExtension, dialect.GNU},
	"typeof":             {TokenTypeof, dialect.GNU},
	"__typeof":           {TokenTypeof, dialect.GNU},
	"__typeof__":         {TokenTypeof, dialect.GNU},
	"__builtin_va_arg":   {TokenBuiltinVaArg, dialect.GNU},
	"__builtin_offsetof": {TokenBuiltinOffsetof, dialect.GNU},
	"__alignof":          {TokenAlignof, dialect.GNU},
	"__alignof__":        {TokenAlignof, dialect.GNU},
	"__complex__":        {TokenComplex, dialect.GNU},
	"__const":            {TokenConst, dialect.GNU},
	"__const__":          {TokenConst, dialect.GNU},
	"__inline":           {TokenInline, dialect.GNU},
	"__inline__":         {TokenInline, dialect.GNU},
	"__restrict":         {TokenRestrict, dialect.GNU},
	"__restrict__":       {TokenRestrict, dialect.GNU},
	"__signed":           {TokenSigned, dialect.GNU},
	"__signed__":         {TokenSigned, dialect.GNU},
	"__thread":           {TokenThreadLocal, dialect.GNU},
	"__volatile":         {TokenVolatile, dialect.GNU},
	"__volatile__":       {TokenVolatile, dialect.GNU},

	"_Nonnull":          {TokenNonnull, dialect.Clang},
	"_Nullable":         {TokenNullable, dialect.Clang},
	"_Null_unspecified": {TokenNullUnspecified, dialect.Clang},
}

// LookupIdent returns the token type for an identifier (keyword or IDENT)
// and the extensions that keyword needs.
func LookupIdent(ident string) (TokenType, dialect.Dialect) {
	if kw, ok := keywords[ident]; ok {
		return kw.typ, kw.requires
	}
	return TokenIdent, dialect.Std
}

// IsReserved reports whether an identifier spelling lies in the
// implementation's reserved namespace: a leading underscore followed by
// an uppercase letter or a second underscore.
func IsReserved(ident string) bool {
	if len(ident) < 2 || ident[0] != '_' {
		return false
	}
	return ident[1] == '_' || (ident[1] >= 'A' && ident[1] <= 'Z')
}
