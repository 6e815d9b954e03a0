package parser

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/raymyers/cparse/pkg/ast"
	"github.com/raymyers/cparse/pkg/dialect"
	"github.com/raymyers/cparse/pkg/lexer"
	"github.com/raymyers/cparse/pkg/scope"
)

var (
	std   = dialect.Std
	gnu   = dialect.GNU
	clang = dialect.GNU | dialect.Clang
)

func parseTU(t *testing.T, input string, d dialect.Dialect, typedefs ...string) *ast.TranslationUnit {
	t.Helper()
	tu, err := Parse(lexer.New(input), d, typedefs)
	require.NoError(t, err, "input: %s", input)
	return tu
}

func parseErr(t *testing.T, input string, d dialect.Dialect, typedefs ...string) *Error {
	t.Helper()
	_, err := Parse(lexer.New(input), d, typedefs)
	require.Error(t, err, "input: %s", input)
	var perr *Error
	require.True(t, errors.As(err, &perr), "expected *Error, got %T", err)
	return perr
}

func parseExpr(t *testing.T, input string, typedefs ...string) ast.Expression {
	t.Helper()
	p := New(lexer.New(input), Config{Dialect: gnu, Typedefs: typedefs})
	e, err := p.ParseExpression()
	require.NoError(t, err, "input: %s", input)
	require.True(t, p.AtEOF(), "input not consumed: %s", input)
	return e
}

func TestEmptyFunction(t *testing.T) {
	tu := parseTU(t, `int main() {}`, std)
	require.Len(t, tu.Declarations, 1)

	fd, ok := tu.Declarations[0].(*ast.FunctionDefinition)
	require.True(t, ok, "expected FunctionDefinition, got %T", tu.Declarations[0])
	assert.Equal(t, "main", fd.Declarator.Name().Name)
	assert.Equal(t, []ast.DeclarationSpecifier{ast.TypeInt}, fd.Specifiers)
	assert.Empty(t, fd.Body.Items)
}

func TestTypedefVersusStructTag(t *testing.T) {
	tu := parseTU(t, `typedef int a; struct a { a a, b; }; a x;`, gnu)
	require.Len(t, tu.Declarations, 3)

	decl := tu.Declarations[1].(*ast.Declaration)
	st := decl.Specifiers[0].(*ast.StructType)
	assert.Equal(t, "a", st.Identifier.Name)
	field := st.Declarations[0].(*ast.StructField)
	assert.Equal(t, &ast.TypedefName{Identifier: &ast.Identifier{Name: "a"}}, field.Specifiers[0])
	require.Len(t, field.Declarators, 2)
	assert.Equal(t, "a", field.Declarators[0].Declarator.Name().Name)

	// members do not shadow the typedef
	last := tu.Declarations[2].(*ast.Declaration)
	assert.IsType(t, &ast.TypedefName{}, last.Specifiers[0])
}

func TestInnerScopesRestored(t *testing.T) {
	input := `typedef int a, b;
int x;
void foo() {
	if (sizeof(enum {a})) x = sizeof(enum{b});
	else x = b;
	switch (sizeof(enum {b})) x = b;
	while (sizeof(enum {a})) x = a;
	for (int a = 0; a < 1; a++) x = a;
	{ int b; b = 1; }
	a x, y;
	b z, w;
}`
	tu := parseTU(t, input, gnu)
	fd := tu.Declarations[2].(*ast.FunctionDefinition)
	items := fd.Body.Items
	require.Len(t, items, 7)
	for _, item := range items[5:] {
		decl, ok := item.(*ast.Declaration)
		require.True(t, ok, "expected Declaration, got %T", item)
		assert.IsType(t, &ast.TypedefName{}, decl.Specifiers[0])
	}
}

func TestShadowedTypedefInBlock(t *testing.T) {
	tu := parseTU(t, `typedef int T; void f(void) { int T; T = 1; { T * x; } } T y;`, gnu)
	fd := tu.Declarations[1].(*ast.FunctionDefinition)

	// T is a variable inside f, so "T * x" is a multiplication
	inner := fd.Body.Items[2].(*ast.CompoundStatement)
	es, ok := inner.Items[0].(*ast.ExpressionStatement)
	require.True(t, ok, "expected ExpressionStatement, got %T", inner.Items[0])
	bin := es.Expression.(*ast.BinaryOperatorExpression)
	assert.Equal(t, ast.OpMultiply, bin.Operator)

	decl := tu.Declarations[2].(*ast.Declaration)
	assert.IsType(t, &ast.TypedefName{}, decl.Specifiers[0])
}

func TestParametersScopedToFunction(t *testing.T) {
	tu := parseTU(t, `typedef int a; int foo(a a) { return a; } int bar(int a); _Atomic (a) b;`, gnu)
	require.Len(t, tu.Declarations, 4)

	fd := tu.Declarations[1].(*ast.FunctionDefinition)
	ret := fd.Body.Items[0].(*ast.ReturnStatement)
	assert.Equal(t, &ast.Identifier{Name: "a"}, ret.Expression)

	decl := tu.Declarations[3].(*ast.Declaration)
	assert.IsType(t, &ast.AtomicType{}, decl.Specifiers[0])
}

func TestParameterShadowsTypedefInAtomic(t *testing.T) {
	err := parseErr(t, `typedef int a; void foo(int a, _Atomic (a) b);`, gnu)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestEnumConstantIsNotAType(t *testing.T) {
	err := parseErr(t, `enum {a, b = (a)1};`, gnu)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCastTrialDoesNotSeeShadowedTypedef(t *testing.T) {
	input := `typedef int a; int x; void f(void) { if (sizeof(enum {a})) x = (_Atomic(a))1; }`
	err := parseErr(t, input, gnu)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestKRAmbiguity(t *testing.T) {
	input := `int foo (int) __attribute__((__nothrow__)); typedef int named; int bar (int f) { }`
	tu := parseTU(t, input, gnu)
	require.Len(t, tu.Declarations, 3)
	assert.IsType(t, &ast.Declaration{}, tu.Declarations[0])
	assert.IsType(t, &ast.Declaration{}, tu.Declarations[1])
	assert.IsType(t, &ast.FunctionDefinition{}, tu.Declarations[2])
}

func TestKRFunctionDefinition(t *testing.T) {
	tu := parseTU(t, `typedef int T; int f(a, b) int a; T *b; { return a + *b; }`, std)
	require.Len(t, tu.Declarations, 2)

	fd, ok := tu.Declarations[1].(*ast.FunctionDefinition)
	require.True(t, ok, "expected FunctionDefinition, got %T", tu.Declarations[1])
	require.Len(t, fd.Declarations, 2)
	kr := fd.Declarator.Derived[0].(*ast.KRFunctionDeclarator)
	assert.Equal(t, []*ast.Identifier{{Name: "a"}, {Name: "b"}}, kr.Identifiers)
}

func TestKRDeclarationWithoutBody(t *testing.T) {
	tu := parseTU(t, `int f(a, b); int g;`, std)
	require.Len(t, tu.Declarations, 2)
	assert.IsType(t, &ast.Declaration{}, tu.Declarations[0])
}

func TestCastVersusParenthesized(t *testing.T) {
	cast := parseExpr(t, `(test_t) + 1`, "test_t")
	ce, ok := cast.(*ast.CastExpression)
	require.True(t, ok, "expected CastExpression, got %T", cast)
	unary := ce.Expression.(*ast.UnaryOperatorExpression)
	assert.Equal(t, ast.OpPlus, unary.Operator)

	paren := parseExpr(t, `(x) + 1`)
	bin, ok := paren.(*ast.BinaryOperatorExpression)
	require.True(t, ok, "expected BinaryOperatorExpression, got %T", paren)
	assert.Equal(t, ast.OpAdd, bin.Operator)
	assert.Equal(t, &ast.Identifier{Name: "x"}, bin.LHS)
}

func TestSizeofForms(t *testing.T) {
	assert.IsType(t, &ast.SizeOfType{}, parseExpr(t, `sizeof(T)`, "T"))
	assert.IsType(t, &ast.SizeOfValue{}, parseExpr(t, `sizeof(x)`))
	assert.IsType(t, &ast.SizeOfValue{}, parseExpr(t, `sizeof x`))

	lit := parseExpr(t, `sizeof (T){1, 2}`, "T")
	sv, ok := lit.(*ast.SizeOfValue)
	require.True(t, ok, "expected SizeOfValue, got %T", lit)
	assert.IsType(t, &ast.CompoundLiteral{}, sv.Expression)
}

func TestExpressionPrecedence(t *testing.T) {
	e := parseExpr(t, `a = b + c * d << 1 == e && f || g ? h : i`)
	assign := e.(*ast.BinaryOperatorExpression)
	assert.Equal(t, ast.OpAssign, assign.Operator)
	cond := assign.RHS.(*ast.ConditionalExpression)
	or := cond.Condition.(*ast.BinaryOperatorExpression)
	assert.Equal(t, ast.OpLogicalOr, or.Operator)

	e = parseExpr(t, `a - b - c`)
	outer := e.(*ast.BinaryOperatorExpression)
	assert.Equal(t, &ast.Identifier{Name: "c"}, outer.RHS)
	assert.IsType(t, &ast.BinaryOperatorExpression{}, outer.LHS)

	e = parseExpr(t, `a = b = c`)
	outer = e.(*ast.BinaryOperatorExpression)
	assert.Equal(t, &ast.Identifier{Name: "a"}, outer.LHS)
	assert.IsType(t, &ast.BinaryOperatorExpression{}, outer.RHS)
}

func TestPostfixExpressions(t *testing.T) {
	e := parseExpr(t, `f(a, b)[1]->x.y++`)
	post := e.(*ast.UnaryOperatorExpression)
	assert.Equal(t, ast.OpPostIncrement, post.Operator)
	member := post.Operand.(*ast.MemberExpression)
	assert.Equal(t, ast.MemberDirect, member.Operator)
	arrow := member.Expression.(*ast.MemberExpression)
	assert.Equal(t, ast.MemberIndirect, arrow.Operator)
	index := arrow.Expression.(*ast.BinaryOperatorExpression)
	assert.Equal(t, ast.OpIndex, index.Operator)
	call := index.LHS.(*ast.CallExpression)
	assert.Len(t, call.Arguments, 2)
}

func TestGNUExpressions(t *testing.T) {
	assert.IsType(t, &ast.StatementExpression{}, parseExpr(t, `({ int y = 1; y; })`))

	cond := parseExpr(t, `a ?: b`).(*ast.ConditionalExpression)
	assert.Nil(t, cond.Then)

	off := parseExpr(t, `__builtin_offsetof(struct s, a.b[2])`).(*ast.OffsetOfExpression)
	assert.Equal(t, "a", off.Designator.Base.Name)
	assert.Len(t, off.Designator.Members, 2)

	va := parseExpr(t, `__builtin_va_arg(ap, int)`).(*ast.VaArgExpression)
	assert.Equal(t, &ast.Identifier{Name: "ap"}, va.VaList)

	gs := parseExpr(t, `_Generic(x, int: 1, default: 0)`).(*ast.GenericSelection)
	assert.Len(t, gs.Associations, 2)
}

func TestStringConcatenation(t *testing.T) {
	sl := parseExpr(t, `"a" L"b" "c"`).(*ast.StringLiteral)
	assert.Equal(t, []string{`"a"`, `L"b"`, `"c"`}, sl.Parts)
}

func TestStatements(t *testing.T) {
	input := `int f(int n) {
	int i, s = 0;
	for (i = 0; i < n; i++) { if (i % 2) continue; s += i; }
	for (;;) break;
	while (n--) s++;
	do { s--; } while (s > 10);
	switch (n) { case 1: case 2 ... 4: s = 0; break; default: ; }
	goto out;
out:
	return s;
}`
	tu := parseTU(t, input, gnu)
	fd := tu.Declarations[0].(*ast.FunctionDefinition)
	types := make([]string, len(fd.Body.Items))
	for i, item := range fd.Body.Items {
		types[i] = fmt.Sprintf("%T", item)
	}
	assert.Equal(t, []string{
		"*ast.Declaration",
		"*ast.ForStatement",
		"*ast.ForStatement",
		"*ast.WhileStatement",
		"*ast.DoWhileStatement",
		"*ast.SwitchStatement",
		"*ast.GotoStatement",
		"*ast.LabeledStatement",
	}, types)
}

func TestTypedefLabel(t *testing.T) {
	tu := parseTU(t, `typedef int T; void f(void) { T: goto T; }`, std)
	fd := tu.Declarations[1].(*ast.FunctionDefinition)
	ls, ok := fd.Body.Items[0].(*ast.LabeledStatement)
	require.True(t, ok, "expected LabeledStatement, got %T", fd.Body.Items[0])
	assert.Equal(t, &ast.Identifier{Name: "T"}, ls.Label)
}

func TestAsmStatements(t *testing.T) {
	tu := parseTU(t, `void f(int x) {
	asm("nop");
	__asm__ volatile ("mov %1, %0" : "=r" (x) : [in] "r" (x) : "memory", "cc");
}`, gnu)
	fd := tu.Declarations[0].(*ast.FunctionDefinition)
	assert.IsType(t, &ast.BasicAsmStatement{}, fd.Body.Items[0])
	ext := fd.Body.Items[1].(*ast.ExtendedAsmStatement)
	require.NotNil(t, ext.Qualifier)
	assert.Equal(t, ast.QualVolatile, *ext.Qualifier)
	assert.Len(t, ext.Outputs, 1)
	require.Len(t, ext.Inputs, 1)
	assert.Equal(t, "in", ext.Inputs[0].SymbolicName.Name)
	assert.Len(t, ext.Clobbers, 2)
}

func TestInitializers(t *testing.T) {
	tu := parseTU(t, `struct p { int x, y; } pts[] = { [0] = { .x = 1, .y = 2 }, [1 ... 3] = { 0 }, };`, gnu)
	decl := tu.Declarations[0].(*ast.Declaration)
	list := decl.Declarators[0].Initializer.(*ast.ListInitializer)
	require.Len(t, list.Items, 2)
	assert.IsType(t, &ast.IndexDesignator{}, list.Items[0].Designation[0])
	assert.IsType(t, &ast.RangeDesignator{}, list.Items[1].Designation[0])
	inner := list.Items[0].Initializer.(*ast.ListInitializer)
	assert.IsType(t, &ast.MemberDesignator{}, inner.Items[1].Designation[0])
}

func TestDeclaratorChains(t *testing.T) {
	tu := parseTU(t, `int (*fa[3])(void); int *(*fp)(int); char (*(*x())[5])();`, std)
	require.Len(t, tu.Declarations, 3)

	d := tu.Declarations[0].(*ast.Declaration).Declarators[0].Declarator
	order := derivationOrder(d)
	require.Len(t, order, 3)
	assert.IsType(t, &ast.ArrayDeclarator{}, order[0])
	assert.IsType(t, &ast.PointerDeclarator{}, order[1])
	assert.IsType(t, &ast.FunctionDeclarator{}, order[2])
}

func TestMalformedDerivations(t *testing.T) {
	for _, input := range []string{
		`int f()();`,
		`int f()[2];`,
		`int a[3]();`,
		`int (*g[2])()();`,
	} {
		t.Run(input, func(t *testing.T) {
			err := parseErr(t, input, std)
			assert.ErrorIs(t, err, ErrSyntax)
		})
	}
}

func TestArraySizes(t *testing.T) {
	tu := parseTU(t, `void f(int a[], int b[*], int c[static 3], int d[const n]);`, std)
	decl := tu.Declarations[0].(*ast.Declaration)
	fn := decl.Declarators[0].Declarator.Derived[0].(*ast.FunctionDeclarator)
	kinds := make([]ast.ArraySizeKind, len(fn.Parameters))
	for i, param := range fn.Parameters {
		kinds[i] = param.Declarator.Derived[0].(*ast.ArrayDeclarator).SizeKind
	}
	assert.Equal(t, []ast.ArraySizeKind{
		ast.SizeUnknown, ast.SizeVariableUnknown, ast.SizeStaticExpression, ast.SizeVariableExpression,
	}, kinds)
}

func TestDialectGating(t *testing.T) {
	input := `int (^b)(int);`
	tu := parseTU(t, input, clang)
	require.Len(t, tu.Declarations, 1)

	for _, d := range []dialect.Dialect{std, gnu} {
		err := parseErr(t, input, d)
		assert.ErrorIs(t, err, ErrUnsupportedExtension, "dialect %s", d)
		assert.Equal(t, lexer.Position{Offset: 5, Line: 1, Column: 6}, err.Pos)
	}
}

func TestExtensionKeywordsGated(t *testing.T) {
	tests := []struct {
		input string
		need  dialect.Dialect
		// err is the failure without the extension
		err error
	}{
		{`int x __attribute__((aligned(8)));`, gnu, ErrUnsupportedExtension},
		{`int *_Nonnull p;`, clang, ErrUnsupportedExtension},
		{`int x = ({ 1; });`, gnu, ErrUnsupportedExtension},
		{`int x = 0b101;`, gnu, ErrUnsupportedExtension},
		{`__extension__ int x;`, gnu, ErrUnsupportedExtension},
		// typeof is an ordinary identifier in standard C
		{`typeof(int) x;`, gnu, ErrSyntax},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			parseTU(t, tt.input, tt.need)
			err := parseErr(t, tt.input, std)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestAvailabilityAttribute(t *testing.T) {
	input := `void f(void) __attribute__((availability(macos, introduced=10.6.1, deprecated=11, message="use g")));`
	tu := parseTU(t, input, clang)
	d := tu.Declarations[0].(*ast.Declaration).Declarators[0].Declarator
	require.Len(t, d.Extensions, 1)
	aa := d.Extensions[0].(*ast.AvailabilityAttribute)
	assert.Equal(t, "macos", aa.Platform.Name)
	require.Len(t, aa.Clauses, 3)
	assert.Equal(t, &ast.AvailabilityVersion{Major: "10", Minor: "6", Subminor: "1"}, aa.Clauses[0].Version)
	assert.Equal(t, &ast.AvailabilityVersion{Major: "11"}, aa.Clauses[1].Version)
	assert.Equal(t, []string{`"use g"`}, aa.Clauses[2].Text.Parts)

	// without Clang it is an ordinary attribute
	tu = parseTU(t, `void f(void) __attribute__((availability(macos, introduced=10.6)));`, gnu)
	d = tu.Declarations[0].(*ast.Declaration).Declarators[0].Declarator
	attr := d.Extensions[0].(*ast.Attribute)
	assert.Equal(t, "availability", attr.Name)
	assert.Len(t, attr.Arguments, 2)
}

func TestAsmLabel(t *testing.T) {
	tu := parseTU(t, `int f(void) __asm__("_f") __attribute__((pure));`, gnu)
	d := tu.Declarations[0].(*ast.Declaration).Declarators[0].Declarator
	require.Len(t, d.Extensions, 2)
	assert.IsType(t, &ast.AsmLabel{}, d.Extensions[0])
	assert.IsType(t, &ast.Attribute{}, d.Extensions[1])
}

func TestClassificationConflict(t *testing.T) {
	err := parseErr(t, `typedef int a; int a;`, std)
	assert.ErrorIs(t, err, ErrClassification)
	assert.Equal(t, 1, err.Pos.Line)
	assert.Equal(t, 20, err.Pos.Column)

	var conflict *scope.ConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, scope.TypedefName, conflict.Existing)
	assert.Equal(t, scope.Identifier, conflict.Requested)

	err = parseErr(t, `typedef int a; enum { a };`, std)
	assert.ErrorIs(t, err, ErrClassification)

	// same kind, or a nested scope, is fine
	parseTU(t, `typedef int a; typedef int a; int x; extern int x;`, std)
	parseTU(t, `typedef int a; void f(void) { int a; }`, std)
}

func TestSyntaxErrorPosition(t *testing.T) {
	err := parseErr(t, "int x;\nint y = ;", std)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, lexer.Position{Offset: 15, Line: 2, Column: 9}, err.Pos)
	assert.Contains(t, err.Error(), "line 2, col 9")
}

func TestUnterminatedBlock(t *testing.T) {
	err := parseErr(t, "void f(void) {\n  int x;\n", std)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Contains(t, err.Msg, "unterminated block")
}

func TestScopeDepthRestored(t *testing.T) {
	inputs := []string{
		`typedef int a; void f(void) { if (sizeof(enum {a})) { int b; } }`,
		`int f(int x) { for (int i = 0; i < x; i++) { while (i) {} } return x; }`,
		`void f(void) { if (1) { int x = ; } }`,
		`void f(int a, _Atomic (a) b);`,
		`void f(void) { switch (1) { case 1: do { } while (`,
		`typedef int a; void f(void) { { enum { a }; typedef int a; } }`,
		`int (^b)(int);`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			p := New(lexer.New(input), Config{Dialect: gnu})
			_, _ = p.ParseTranslationUnit()
			st := p.Scopes()
			assert.Equal(t, 1, st.Depth())
			assert.Equal(t, st.Pushes(), st.Pops())
		})
	}
}

func TestFailedTrialLeavesNoBindings(t *testing.T) {
	// the cast trial declares x inside a type name it then abandons
	p := New(lexer.New(`(enum { x } 1)`), Config{Dialect: gnu})
	_, err := p.ParseExpression()
	require.Error(t, err)
	_, bound := p.Scopes().Lookup("x")
	assert.False(t, bound)
	assert.Equal(t, 1, p.Scopes().Depth())
}

func TestSuccessfulTrialKeepsBindings(t *testing.T) {
	p := New(lexer.New(`(enum { x, y }) 1`), Config{Dialect: gnu})
	_, err := p.ParseExpression()
	require.NoError(t, err)
	assert.Equal(t, scope.EnumConstant, p.Scopes().Classify("y"))
}

func TestPredeclaredTypedefs(t *testing.T) {
	cfg := ConfigFor(gnu)
	assert.Contains(t, cfg.Typedefs, "__builtin_va_list")
	assert.Empty(t, ConfigFor(std).Typedefs)

	tu, err := ParseString(`__builtin_va_list ap; size_t n;`, Config{Dialect: gnu, Typedefs: append(cfg.Typedefs, "size_t")})
	require.NoError(t, err)
	for _, ed := range tu.Declarations {
		decl := ed.(*ast.Declaration)
		assert.IsType(t, &ast.TypedefName{}, decl.Specifiers[0])
	}
}

func TestConcurrentParses(t *testing.T) {
	inputs := []string{
		`typedef int a; struct a { a a, b; };`,
		`typedef int a; int foo(a a) {} int bar(int a); _Atomic (a) b;`,
		`int foo (int) __attribute__((__nothrow__)); typedef int named; int bar (int f) { }`,
	}
	want := make([]string, len(inputs))
	for i, input := range inputs {
		want[i] = ast.Dump(parseTU(t, input, gnu))
	}

	var g errgroup.Group
	for n := 0; n < 8; n++ {
		for i, input := range inputs {
			g.Go(func() error {
				tu, err := ParseString(input, Config{Dialect: gnu})
				if err != nil {
					return err
				}
				if got := ast.Dump(tu); got != want[i] {
					return fmt.Errorf("input %d: concurrent parse differs", i)
				}
				return nil
			})
		}
	}
	require.NoError(t, g.Wait())
}

func TestAmbiguousDeclarations(t *testing.T) {
	tu := parseTU(t, `typedef int a; int foo() { int a; }`, std)
	fd := tu.Declarations[1].(*ast.FunctionDefinition)
	decl := fd.Body.Items[0].(*ast.Declaration)
	assert.Equal(t, []ast.DeclarationSpecifier{ast.TypeInt}, decl.Specifiers)
	assert.Equal(t, "a", decl.Declarators[0].Declarator.Name().Name)

	input := `typedef int a;
void foo() {
	unsigned int;
	const a;
	a x;
	unsigned a;
	a = 1;
}`
	tu = parseTU(t, input, std)
	items := tu.Declarations[1].(*ast.FunctionDefinition).Body.Items
	require.Len(t, items, 5)
	assert.IsType(t, &ast.TypedefName{}, items[1].(*ast.Declaration).Specifiers[1])
	assert.IsType(t, &ast.ExpressionStatement{}, items[4])
}

func TestParameterNameIsNotAType(t *testing.T) {
	err := parseErr(t, `typedef int a; int foo(int a* b) {}`, std)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestTypedefRedefinedInBlock(t *testing.T) {
	err := parseErr(t, `typedef int a; void foo() { a a; _Atomic (a) b; }`, std)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestSymbolDefinedBeforeInitializer(t *testing.T) {
	err := parseErr(t, `typedef int a; int foo() { int a = sizeof(_Atomic(a)); }`, std)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestEnumInCastModifiesScope(t *testing.T) {
	err := parseErr(t, `typedef int a; int foo() { int x = (enum {a})1; _Atomic(a) b; }`, std)
	assert.ErrorIs(t, err, ErrSyntax)

	err = parseErr(t, `typedef int a; int foo() { int x = (enum {a, b = (a)1})1; }`, std)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestScopeRestoredAfterBlocksAndLoops(t *testing.T) {
	inputs := []string{
		`void foo() { typedef int a; { a a; } _Atomic (a) b; }`,
		`typedef int a;
void foo() {
	for (a a;;)
		a = a;
	while (true) {int a;}
	do { int a; } while(true);
	_Atomic (a) b;
}`,
	}
	for i, input := range inputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			parseTU(t, input, std)
		})
	}
}

func TestEmptyStructRequiresGNU(t *testing.T) {
	err := parseErr(t, `struct foo { } S;`, std)
	assert.ErrorIs(t, err, ErrUnsupportedExtension)

	tu := parseTU(t, `struct foo { } S;`, gnu)
	st := tu.Declarations[0].(*ast.Declaration).Specifiers[0].(*ast.StructType)
	assert.NotNil(t, st.Declarations)
	assert.Empty(t, st.Declarations)
}

func TestIntKeywordSpecifier(t *testing.T) {
	tu, err := ParseString("int x;", Config{Dialect: std})
	require.NoError(t, err)
	decl := tu.Declarations[0].(*ast.Declaration)
	assert.Equal(t, []ast.DeclarationSpecifier{ast.TypeInt}, decl.Specifiers)

	// An integer literal in parentheses is not a type name.
	tu = parseTU(t, "long x = (1);", std)
	init := tu.Declarations[0].(*ast.Declaration).Declarators[0].Initializer.(*ast.ExpressionInitializer)
	_, ok := init.Expression.(*ast.Constant)
	assert.True(t, ok, "expected Constant, got %T", init.Expression)
}

func TestFailedCastReportedAtParen(t *testing.T) {
	err := parseErr(t, "int x = (test_t y);", gnu, "test_t")
	assert.ErrorIs(t, err, ErrSyntax)
	assert.Equal(t, lexer.Position{Offset: 8, Line: 1, Column: 9}, err.Pos)
}

func TestParameterFramesReleased(t *testing.T) {
	src := `
int f(int a);
int (*g(int b))(char c);
int h(a, b) int a; char b; { return a + b; }
void k(void) { int m(int n); m(1); }
`
	p := New(lexer.New(src), Config{Dialect: gnu})
	var kinds []string
	for !p.AtEOF() {
		ed, err := p.ParseExternalDeclaration()
		require.NoError(t, err)
		kinds = append(kinds, fmt.Sprintf("%T", ed))
		assert.Empty(t, p.paramScopes)
	}
	assert.Equal(t, []string{"*ast.Declaration", "*ast.Declaration",
		"*ast.FunctionDefinition", "*ast.FunctionDefinition"}, kinds)
	assert.Equal(t, gnu, p.Dialect())

	_, err := New(lexer.New("int q(int r);"), Config{Dialect: std}).ParseDeclaration()
	require.NoError(t, err)
}

func TestParseExternalDeclarationStopsOnError(t *testing.T) {
	p := New(lexer.New("int ok; int bad(;"), Config{Dialect: clang})
	assert.Equal(t, clang, p.Dialect())

	ed, err := p.ParseExternalDeclaration()
	require.NoError(t, err)
	assert.IsType(t, &ast.Declaration{}, ed)

	_, err = p.ParseExternalDeclaration()
	require.ErrorIs(t, err, ErrSyntax)
	assert.Empty(t, p.paramScopes)
}
