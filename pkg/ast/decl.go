package ast

// Declaration is a declaration with zero or more init-declarators.
type Declaration struct {
	Specifiers  []DeclarationSpecifier
	Declarators []*InitDeclarator
}

// InitDeclarator is a declarator with an optional initializer.
type InitDeclarator struct {
	Declarator  *Declarator
	Initializer Initializer
}

// FunctionDefinition is a function with a body. Declarations holds the
// K&R parameter declarations, if any.
type FunctionDefinition struct {
	Specifiers   []DeclarationSpecifier
	Declarator   *Declarator
	Declarations []*Declaration
	Body         *CompoundStatement
}

// StaticAssert is a _Static_assert declaration.
type StaticAssert struct {
	Expression Expression
	Message    *StringLiteral
}

// StorageClassSpecifier represents storage class keywords
type StorageClassSpecifier int

const (
	StorageTypedef StorageClassSpecifier = iota
	StorageExtern
	StorageStatic
	StorageThreadLocal
	StorageAuto
	StorageRegister
)

func (s StorageClassSpecifier) String() string {
	return [...]string{"Typedef", "Extern", "Static", "ThreadLocal", "Auto", "Register"}[s]
}

// BasicType is a type specifier keyword.
type BasicType int

const (
	TypeVoid BasicType = iota
	TypeChar
	TypeShort
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeSigned
	TypeUnsigned
	TypeBool
	TypeComplex
)

func (t BasicType) String() string {
	return [...]string{"Void", "Char", "Short", "Int", "Long", "Float", "Double",
		"Signed", "Unsigned", "Bool", "Complex"}[t]
}

// TypeQualifier represents type qualifiers, including Clang nullability.
type TypeQualifier int

const (
	QualConst TypeQualifier = iota
	QualRestrict
	QualVolatile
	QualNonnull
	QualNullUnspecified
	QualNullable
	QualAtomic
)

func (q TypeQualifier) String() string {
	return [...]string{"Const", "Restrict", "Volatile", "Nonnull", "NullUnspecified",
		"Nullable", "Atomic"}[q]
}

// FunctionSpecifier is inline or _Noreturn.
type FunctionSpecifier int

const (
	FuncInline FunctionSpecifier = iota
	FuncNoreturn
)

func (f FunctionSpecifier) String() string {
	if f == FuncNoreturn {
		return "Noreturn"
	}
	return "Inline"
}

// AlignmentSpecifier is _Alignas with either a type name or an expression.
type AlignmentSpecifier struct {
	TypeName   *TypeName
	Expression Expression
}

// Extensions is a run of attributes appearing in a specifier or pointer
// qualifier list.
type Extensions []Extension

// AtomicType is the _Atomic(type-name) type specifier.
type AtomicType struct {
	TypeName *TypeName
}

// TypedefName is a type specifier naming a typedef.
type TypedefName struct {
	Identifier *Identifier
}

// TypeOf is the GNU typeof specifier, applied to an expression or a type.
type TypeOf struct {
	Expression Expression
	TypeName   *TypeName
}

// StructKind distinguishes struct from union.
type StructKind int

const (
	KindStruct StructKind = iota
	KindUnion
)

func (k StructKind) String() string {
	if k == KindUnion {
		return "Union"
	}
	return "Struct"
}

// StructType is a struct or union specifier. Declarations is nil when
// the specifier has no body and non-nil (possibly empty) when it does.
type StructType struct {
	Kind         StructKind
	Identifier   *Identifier
	Declarations []StructDeclaration
	Extensions   []Extension
}

// StructField declares one or more members sharing a specifier list.
type StructField struct {
	Specifiers  []SpecifierQualifier
	Declarators []*StructDeclarator
}

// StructDeclarator is a member declarator with an optional bit width.
type StructDeclarator struct {
	Declarator *Declarator
	BitWidth   Expression
}

// EnumType is an enum specifier. Enumerators is nil without a body.
type EnumType struct {
	Identifier  *Identifier
	Enumerators []*Enumerator
	Extensions  []Extension
}

// Enumerator is one enumeration constant.
type Enumerator struct {
	Identifier *Identifier
	Expression Expression
	Extensions []Extension
}

// Declarator is a name (or its absence) together with the derivations
// applied to it. Derived holds pointers first, in source order, then
// array and function suffixes in source order.
type Declarator struct {
	Kind       DeclaratorKind
	Derived    []DerivedDeclarator
	Extensions []Extension
}

// Abstract is the kind of a declarator without a name.
type Abstract struct{}

// PointerDeclarator is '*' with its qualifiers.
type PointerDeclarator struct {
	Qualifiers []PointerQualifier
}

// BlockDeclarator is the Clang block pointer '^' with its qualifiers.
type BlockDeclarator struct {
	Qualifiers []PointerQualifier
}

// ArraySizeKind tells which form an array size has.
type ArraySizeKind int

const (
	SizeUnknown            ArraySizeKind = iota // []
	SizeVariableUnknown                         // [*]
	SizeVariableExpression                      // [n]
	SizeStaticExpression                        // [static n]
)

func (k ArraySizeKind) String() string {
	return [...]string{"Unknown", "VariableUnknown", "VariableExpression", "StaticExpression"}[k]
}

// ArrayDeclarator is an array suffix.
type ArrayDeclarator struct {
	Qualifiers []TypeQualifier
	SizeKind   ArraySizeKind
	Size       Expression
}

// FunctionDeclarator is a prototype-style function suffix.
type FunctionDeclarator struct {
	Parameters []*ParameterDeclaration
	Ellipsis   bool
}

// KRFunctionDeclarator is an old-style function suffix with an identifier
// list, or the empty parameter list "()".
type KRFunctionDeclarator struct {
	Identifiers []*Identifier
}

// ParameterDeclaration is one parameter of a prototype. Declarator is nil
// when the parameter has neither a name nor derivations.
type ParameterDeclaration struct {
	Specifiers []DeclarationSpecifier
	Declarator *Declarator
	Extensions []Extension
}

// TypeName is a specifier-qualifier list with an optional abstract
// declarator.
type TypeName struct {
	Specifiers []SpecifierQualifier
	Declarator *Declarator
}

// ExpressionInitializer initializes with a single expression.
type ExpressionInitializer struct {
	Expression Expression
}

// ListInitializer is a braced initializer list.
type ListInitializer struct {
	Items []*InitializerListItem
}

// InitializerListItem is one element of a braced initializer list.
type InitializerListItem struct {
	Designation []Designator
	Initializer Initializer
}

// IndexDesignator is [expr].
type IndexDesignator struct {
	Expression Expression
}

// MemberDesignator is .name.
type MemberDesignator struct {
	Identifier *Identifier
}

// RangeDesignator is the GNU [from ... to].
type RangeDesignator struct {
	From Expression
	To   Expression
}

// Name returns the identifier a declarator declares, or nil when it is
// abstract.
func (d *Declarator) Name() *Identifier {
	for d != nil {
		switch k := d.Kind.(type) {
		case *Identifier:
			return k
		case *Declarator:
			d = k
		default:
			return nil
		}
	}
	return nil
}

// IsEmpty reports whether d is abstract with no derivations and no
// extensions.
func (d *Declarator) IsEmpty() bool {
	_, abstract := d.Kind.(Abstract)
	return abstract && len(d.Derived) == 0 && len(d.Extensions) == 0
}

func (*Declaration) implNode()           {}
func (*InitDeclarator) implNode()        {}
func (*FunctionDefinition) implNode()    {}
func (*StaticAssert) implNode()          {}
func (StorageClassSpecifier) implNode()  {}
func (BasicType) implNode()              {}
func (TypeQualifier) implNode()          {}
func (FunctionSpecifier) implNode()      {}
func (*AlignmentSpecifier) implNode()    {}
func (Extensions) implNode()             {}
func (*AtomicType) implNode()            {}
func (*TypedefName) implNode()           {}
func (*TypeOf) implNode()                {}
func (*StructType) implNode()            {}
func (*StructField) implNode()           {}
func (*StructDeclarator) implNode()      {}
func (*EnumType) implNode()              {}
func (*Enumerator) implNode()            {}
func (*Declarator) implNode()            {}
func (Abstract) implNode()               {}
func (*PointerDeclarator) implNode()     {}
func (*BlockDeclarator) implNode()       {}
func (*ArrayDeclarator) implNode()       {}
func (*FunctionDeclarator) implNode()    {}
func (*KRFunctionDeclarator) implNode()  {}
func (*ParameterDeclaration) implNode()  {}
func (*TypeName) implNode()              {}
func (*ExpressionInitializer) implNode() {}
func (*ListInitializer) implNode()       {}
func (*InitializerListItem) implNode()   {}
func (*IndexDesignator) implNode()       {}
func (*MemberDesignator) implNode()      {}
func (*RangeDesignator) implNode()       {}

func (*Declaration) implExternalDeclaration()        {}
func (*StaticAssert) implExternalDeclaration()       {}
func (*FunctionDefinition) implExternalDeclaration() {}

func (*Declaration) implBlockItem()  {}
func (*StaticAssert) implBlockItem() {}

func (*Declaration) implForInitializer()  {}
func (*StaticAssert) implForInitializer() {}

func (*StaticAssert) implStructDeclaration() {}
func (*StructField) implStructDeclaration()  {}

func (StorageClassSpecifier) implDeclarationSpecifier() {}
func (BasicType) implDeclarationSpecifier()             {}
func (TypeQualifier) implDeclarationSpecifier()         {}
func (FunctionSpecifier) implDeclarationSpecifier()     {}
func (*AlignmentSpecifier) implDeclarationSpecifier()   {}
func (Extensions) implDeclarationSpecifier()            {}
func (*AtomicType) implDeclarationSpecifier()           {}
func (*TypedefName) implDeclarationSpecifier()          {}
func (*TypeOf) implDeclarationSpecifier()               {}
func (*StructType) implDeclarationSpecifier()           {}
func (*EnumType) implDeclarationSpecifier()             {}

func (BasicType) implSpecifierQualifier()     {}
func (TypeQualifier) implSpecifierQualifier() {}
func (Extensions) implSpecifierQualifier()    {}
func (*AtomicType) implSpecifierQualifier()   {}
func (*TypedefName) implSpecifierQualifier()  {}
func (*TypeOf) implSpecifierQualifier()       {}
func (*StructType) implSpecifierQualifier()   {}
func (*EnumType) implSpecifierQualifier()     {}

func (BasicType) implTypeSpecifier()    {}
func (*AtomicType) implTypeSpecifier()  {}
func (*TypedefName) implTypeSpecifier() {}
func (*TypeOf) implTypeSpecifier()      {}
func (*StructType) implTypeSpecifier()  {}
func (*EnumType) implTypeSpecifier()    {}

func (TypeQualifier) implPointerQualifier() {}
func (Extensions) implPointerQualifier()    {}

func (Abstract) implDeclaratorKind()    {}
func (*Declarator) implDeclaratorKind() {}

func (*PointerDeclarator) implDerivedDeclarator()    {}
func (*BlockDeclarator) implDerivedDeclarator()      {}
func (*ArrayDeclarator) implDerivedDeclarator()      {}
func (*FunctionDeclarator) implDerivedDeclarator()   {}
func (*KRFunctionDeclarator) implDerivedDeclarator() {}

func (*ExpressionInitializer) implInitializer() {}
func (*ListInitializer) implInitializer()       {}

func (*IndexDesignator) implDesignator()  {}
func (*MemberDesignator) implDesignator() {}
func (*RangeDesignator) implDesignator()  {}
