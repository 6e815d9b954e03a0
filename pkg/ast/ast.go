// Package ast defines the concrete syntax tree produced by the parser. Each
// syntactic category is a closed set of node types behind an interface
// with unexported marker methods.
package ast

// Node is the base interface for all syntax tree nodes
type Node interface {
	implNode()
}

// Expression is the interface for all expression nodes
type Expression interface {
	Node
	implExpression()
}

// Statement is the interface for all statement nodes
type Statement interface {
	Node
	BlockItem
	implStatement()
}

// ExternalDeclaration is a top-level item of a translation unit:
// *Declaration, *StaticAssert or *FunctionDefinition.
type ExternalDeclaration interface {
	Node
	implExternalDeclaration()
}

// BlockItem is an item of a compound statement: *Declaration,
// *StaticAssert or a Statement.
type BlockItem interface {
	Node
	implBlockItem()
}

// DeclarationSpecifier is one element of a declaration's specifier list:
// StorageClassSpecifier, a TypeSpecifier, TypeQualifier,
// FunctionSpecifier, *AlignmentSpecifier or Extensions.
type DeclarationSpecifier interface {
	Node
	implDeclarationSpecifier()
}

// SpecifierQualifier is one element of a specifier-qualifier list, as used
// by struct fields and type names: a TypeSpecifier, TypeQualifier or
// Extensions.
type SpecifierQualifier interface {
	Node
	implSpecifierQualifier()
}

// TypeSpecifier names or builds a type.
type TypeSpecifier interface {
	DeclarationSpecifier
	SpecifierQualifier
	implTypeSpecifier()
}

// DeclaratorKind is the core of a declarator: an *Identifier, Abstract,
// or a parenthesized nested *Declarator.
type DeclaratorKind interface {
	Node
	implDeclaratorKind()
}

// DerivedDeclarator is one step of a declarator's derivation chain.
type DerivedDeclarator interface {
	Node
	implDerivedDeclarator()
}

// PointerQualifier qualifies a pointer or block pointer: a TypeQualifier
// or Extensions.
type PointerQualifier interface {
	Node
	implPointerQualifier()
}

// Initializer is an *ExpressionInitializer or a *ListInitializer.
type Initializer interface {
	Node
	implInitializer()
}

// Designator selects a subobject in an initializer list.
type Designator interface {
	Node
	implDesignator()
}

// StructDeclaration is a member of a struct or union body: *StructField
// or *StaticAssert.
type StructDeclaration interface {
	Node
	implStructDeclaration()
}

// Label prefixes a labeled statement.
type Label interface {
	Node
	implLabel()
}

// ForInitializer is the first clause of a for statement.
type ForInitializer interface {
	Node
	implForInitializer()
}

// Extension is a GNU or Clang annotation attached to a declaration.
type Extension interface {
	Node
	implExtension()
}

// Identifier is a name. It is used as a primary expression, a declarator
// name, a label and wherever the grammar needs a bare name.
type Identifier struct {
	Name string
}

func (*Identifier) implNode()           {}
func (*Identifier) implExpression()     {}
func (*Identifier) implDeclaratorKind() {}
func (*Identifier) implLabel()          {}

// TranslationUnit is the root of a parsed file.
type TranslationUnit struct {
	Declarations []ExternalDeclaration
}

func (*TranslationUnit) implNode() {}
