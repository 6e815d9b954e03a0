package ast

// UnaryOperator represents prefix and postfix unary operators
type UnaryOperator int

const (
	OpPostIncrement UnaryOperator = iota // x++
	OpPostDecrement                      // x--
	OpPreIncrement                       // ++x
	OpPreDecrement                       // --x
	OpAddress                            // &x
	OpIndirection                        // *x
	OpPlus                               // +x
	OpMinus                              // -x
	OpComplement                         // ~x
	OpNegate                             // !x
)

var unaryNames = []string{
	"PostIncrement", "PostDecrement", "PreIncrement", "PreDecrement",
	"Address", "Indirection", "Plus", "Minus", "Complement", "Negate",
}

func (op UnaryOperator) String() string {
	if int(op) < len(unaryNames) {
		return unaryNames[op]
	}
	return "?"
}

// IsPostfix reports whether the operator follows its operand.
func (op UnaryOperator) IsPostfix() bool {
	return op == OpPostIncrement || op == OpPostDecrement
}

// BinaryOperator represents binary operators, including assignment and
// array subscripting.
type BinaryOperator int

const (
	OpIndex BinaryOperator = iota // a[b]
	OpMultiply
	OpDivide
	OpModulo
	OpAdd
	OpSubtract
	OpShiftLeft
	OpShiftRight
	OpLess
	OpGreater
	OpLessOrEqual
	OpGreaterOrEqual
	OpEquals
	OpNotEquals
	OpBitwiseAnd
	OpBitwiseXor
	OpBitwiseOr
	OpLogicalAnd
	OpLogicalOr
	OpAssign
	OpAssignMultiply
	OpAssignDivide
	OpAssignModulo
	OpAssignPlus
	OpAssignMinus
	OpAssignShiftLeft
	OpAssignShiftRight
	OpAssignBitwiseAnd
	OpAssignBitwiseXor
	OpAssignBitwiseOr
)

var binaryNames = []string{
	"Index", "Multiply", "Divide", "Modulo", "Plus", "Minus",
	"ShiftLeft", "ShiftRight", "Less", "Greater", "LessOrEqual", "GreaterOrEqual",
	"Equals", "NotEquals", "BitwiseAnd", "BitwiseXor", "BitwiseOr",
	"LogicalAnd", "LogicalOr", "Assign", "AssignMultiply", "AssignDivide",
	"AssignModulo", "AssignPlus", "AssignMinus", "AssignShiftLeft",
	"AssignShiftRight", "AssignBitwiseAnd", "AssignBitwiseXor", "AssignBitwiseOr",
}

func (op BinaryOperator) String() string {
	if int(op) < len(binaryNames) {
		return binaryNames[op]
	}
	return "?"
}

// MemberOperator distinguishes '.' from '->'.
type MemberOperator int

const (
	MemberDirect   MemberOperator = iota // .
	MemberIndirect                       // ->
)

func (op MemberOperator) String() string {
	if op == MemberIndirect {
		return "Indirect"
	}
	return "Direct"
}

// ConstantValue is the payload of a Constant: *Integer, *Float or
// *Character.
type ConstantValue interface {
	Node
	implConstantValue()
}

// Constant is a literal constant expression.
type Constant struct {
	Value ConstantValue
}

// IntegerBase is the radix an integer constant was written in.
type IntegerBase int

const (
	BaseDecimal IntegerBase = iota
	BaseOctal
	BaseHexadecimal
	BaseBinary
)

func (b IntegerBase) String() string {
	return [...]string{"Decimal", "Octal", "Hexadecimal", "Binary"}[b]
}

// IntegerSize is the size given by an integer suffix.
type IntegerSize int

const (
	SizeInt IntegerSize = iota
	SizeLong
	SizeLongLong
)

func (s IntegerSize) String() string {
	return [...]string{"Int", "Long", "LongLong"}[s]
}

// IntegerSuffix is a decoded integer suffix.
type IntegerSuffix struct {
	Size      IntegerSize
	Unsigned  bool
	Imaginary bool
}

// Integer is an integer constant. Number holds the digits without the
// base prefix or suffix.
type Integer struct {
	Base   IntegerBase
	Number string
	Suffix IntegerSuffix
}

// FloatBase is the radix a floating constant was written in.
type FloatBase int

const (
	FloatDecimal FloatBase = iota
	FloatHexadecimal
)

func (b FloatBase) String() string {
	if b == FloatHexadecimal {
		return "Hexadecimal"
	}
	return "Decimal"
}

// FloatFormat is the type selected by a floating suffix.
type FloatFormat int

const (
	FormatDouble FloatFormat = iota
	FormatFloat
	FormatLongDouble
)

func (f FloatFormat) String() string {
	return [...]string{"Double", "Float", "LongDouble"}[f]
}

// FloatSuffix is a decoded floating suffix.
type FloatSuffix struct {
	Format    FloatFormat
	Imaginary bool
}

// Float is a floating constant. Number holds the mantissa and exponent
// without the base prefix or suffix.
type Float struct {
	Base   FloatBase
	Number string
	Suffix FloatSuffix
}

// Character is a character constant, spelled with its prefix and quotes.
type Character struct {
	Spelling string
}

// StringLiteral is a sequence of adjacent string literal tokens, each
// spelled with its prefix and quotes.
type StringLiteral struct {
	Parts []string
}

// MemberExpression is a '.' or '->' member access.
type MemberExpression struct {
	Operator   MemberOperator
	Expression Expression
	Identifier *Identifier
}

// CallExpression is a function call.
type CallExpression struct {
	Callee    Expression
	Arguments []Expression
}

// CompoundLiteral is a (type-name){ initializer-list } expression.
type CompoundLiteral struct {
	TypeName        *TypeName
	InitializerList []*InitializerListItem
}

// SizeOfType is sizeof applied to a parenthesized type name.
type SizeOfType struct {
	TypeName *TypeName
}

// SizeOfValue is sizeof applied to an expression.
type SizeOfValue struct {
	Expression Expression
}

// AlignOf is _Alignof applied to a type name.
type AlignOf struct {
	TypeName *TypeName
}

// UnaryOperatorExpression applies a unary operator.
type UnaryOperatorExpression struct {
	Operator UnaryOperator
	Operand  Expression
}

// CastExpression converts an expression to a type.
type CastExpression struct {
	TypeName   *TypeName
	Expression Expression
}

// BinaryOperatorExpression applies a binary operator.
type BinaryOperatorExpression struct {
	Operator BinaryOperator
	LHS      Expression
	RHS      Expression
}

// ConditionalExpression is c ? a : b. Then is nil for the GNU form c ?: b.
type ConditionalExpression struct {
	Condition Expression
	Then      Expression
	Else      Expression
}

// CommaExpression is a comma-separated expression sequence.
type CommaExpression struct {
	Expressions []Expression
}

// GenericSelection is a _Generic expression.
type GenericSelection struct {
	Expression   Expression
	Associations []GenericAssociation
}

// GenericAssociation is a *GenericTypeAssociation or *GenericDefault.
type GenericAssociation interface {
	Node
	implGenericAssociation()
}

// GenericTypeAssociation is a "type-name: expression" association.
type GenericTypeAssociation struct {
	TypeName   *TypeName
	Expression Expression
}

// GenericDefault is a "default: expression" association.
type GenericDefault struct {
	Expression Expression
}

// OffsetOfExpression is GNU __builtin_offsetof(type, designator).
type OffsetOfExpression struct {
	TypeName   *TypeName
	Designator *OffsetDesignator
}

// OffsetDesignator is a member path starting at a named member.
type OffsetDesignator struct {
	Base    *Identifier
	Members []OffsetMember
}

// OffsetMemberKind tells which form an OffsetMember has.
type OffsetMemberKind int

const (
	OffsetMemberDirect   OffsetMemberKind = iota // .name
	OffsetMemberIndirect                         // ->name
	OffsetMemberIndex                            // [expr]
)

func (k OffsetMemberKind) String() string {
	return [...]string{"Member", "IndirectMember", "Index"}[k]
}

// OffsetMember is one step of an offsetof designator. Identifier is set
// for member steps and Index for subscript steps.
type OffsetMember struct {
	Kind       OffsetMemberKind
	Identifier *Identifier
	Index      Expression
}

// VaArgExpression is GNU __builtin_va_arg(list, type).
type VaArgExpression struct {
	VaList   Expression
	TypeName *TypeName
}

// StatementExpression is a GNU ({ ... }) expression.
type StatementExpression struct {
	Statement Statement
}

func (*Constant) implNode()                 {}
func (*Integer) implNode()                  {}
func (*Float) implNode()                    {}
func (*Character) implNode()                {}
func (*StringLiteral) implNode()            {}
func (*MemberExpression) implNode()         {}
func (*CallExpression) implNode()           {}
func (*CompoundLiteral) implNode()          {}
func (*SizeOfType) implNode()               {}
func (*SizeOfValue) implNode()              {}
func (*AlignOf) implNode()                  {}
func (*UnaryOperatorExpression) implNode()  {}
func (*CastExpression) implNode()           {}
func (*BinaryOperatorExpression) implNode() {}
func (*ConditionalExpression) implNode()    {}
func (*CommaExpression) implNode()          {}
func (*GenericSelection) implNode()         {}
func (*GenericTypeAssociation) implNode()   {}
func (*GenericDefault) implNode()           {}
func (*OffsetOfExpression) implNode()       {}
func (*OffsetDesignator) implNode()         {}
func (*VaArgExpression) implNode()          {}
func (*StatementExpression) implNode()      {}

func (*Integer) implConstantValue()   {}
func (*Float) implConstantValue()     {}
func (*Character) implConstantValue() {}

func (*GenericTypeAssociation) implGenericAssociation() {}
func (*GenericDefault) implGenericAssociation()         {}

func (*Constant) implExpression()                 {}
func (*StringLiteral) implExpression()            {}
func (*MemberExpression) implExpression()         {}
func (*CallExpression) implExpression()           {}
func (*CompoundLiteral) implExpression()          {}
func (*SizeOfType) implExpression()               {}
func (*SizeOfValue) implExpression()              {}
func (*AlignOf) implExpression()                  {}
func (*UnaryOperatorExpression) implExpression()  {}
func (*CastExpression) implExpression()           {}
func (*BinaryOperatorExpression) implExpression() {}
func (*ConditionalExpression) implExpression()    {}
func (*CommaExpression) implExpression()          {}
func (*GenericSelection) implExpression()         {}
func (*OffsetOfExpression) implExpression()       {}
func (*VaArgExpression) implExpression()          {}
func (*StatementExpression) implExpression()      {}
