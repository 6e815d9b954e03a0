package ast

// Attribute is a GNU __attribute__ entry with its arguments.
type Attribute struct {
	Name      string
	Arguments []Expression
}

// AsmLabel is a GNU asm("name") label on a declarator.
type AsmLabel struct {
	Label *StringLiteral
}

// AvailabilityAttribute is the Clang availability(platform, ...) attribute.
type AvailabilityAttribute struct {
	Platform *Identifier
	Clauses  []*AvailabilityClause
}

// AvailabilityClauseKind tells which clause of an availability attribute
// is present.
type AvailabilityClauseKind int

const (
	ClauseIntroduced AvailabilityClauseKind = iota
	ClauseDeprecated
	ClauseObsoleted
	ClauseUnavailable
	ClauseMessage
	ClauseReplacement
)

func (k AvailabilityClauseKind) String() string {
	return [...]string{"Introduced", "Deprecated", "Obsoleted", "Unavailable", "Message", "Replacement"}[k]
}

// AvailabilityClause is one clause. Version is set for the introduced,
// deprecated and obsoleted clauses, Text for message and replacement.
type AvailabilityClause struct {
	Kind    AvailabilityClauseKind
	Version *AvailabilityVersion
	Text    *StringLiteral
}

// AvailabilityVersion is a dotted version with up to three components.
// Missing components are empty.
type AvailabilityVersion struct {
	Major    string
	Minor    string
	Subminor string
}

func (*Attribute) implNode()             {}
func (*AsmLabel) implNode()              {}
func (*AvailabilityAttribute) implNode() {}
func (*AvailabilityClause) implNode()    {}

func (*Attribute) implExtension()             {}
func (*AsmLabel) implExtension()              {}
func (*AvailabilityAttribute) implExtension() {}
