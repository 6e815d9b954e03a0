package ast

// CompoundStatement is a braced block.
type CompoundStatement struct {
	Items []BlockItem
}

// ExpressionStatement is an expression followed by ';'. Expression is nil
// for the null statement.
type ExpressionStatement struct {
	Expression Expression
}

// LabeledStatement is a statement preceded by a label.
type LabeledStatement struct {
	Label     Label
	Statement Statement
}

// IfStatement represents if/else
type IfStatement struct {
	Condition Expression
	Then      Statement
	Else      Statement // nil when absent
}

// SwitchStatement represents switch
type SwitchStatement struct {
	Expression Expression
	Statement  Statement
}

// WhileStatement represents while
type WhileStatement struct {
	Expression Expression
	Statement  Statement
}

// DoWhileStatement represents do-while
type DoWhileStatement struct {
	Statement  Statement
	Expression Expression
}

// ForStatement represents for. Condition and Step are nil when omitted.
type ForStatement struct {
	Initializer ForInitializer
	Condition   Expression
	Step        Expression
	Statement   Statement
}

// GotoStatement represents goto
type GotoStatement struct {
	Label *Identifier
}

// ContinueStatement represents continue
type ContinueStatement struct{}

// BreakStatement represents break
type BreakStatement struct{}

// ReturnStatement represents return. Expression is nil for a bare return.
type ReturnStatement struct {
	Expression Expression
}

// BasicAsmStatement is GNU asm("template") with no operands.
type BasicAsmStatement struct {
	Template *StringLiteral
}

// ExtendedAsmStatement is GNU asm with operands and clobbers.
type ExtendedAsmStatement struct {
	Qualifier *TypeQualifier
	Template  *StringLiteral
	Outputs   []*AsmOperand
	Inputs    []*AsmOperand
	Clobbers  []*StringLiteral
}

// AsmOperand is [name] "constraint" (expression).
type AsmOperand struct {
	SymbolicName *Identifier
	Constraints  *StringLiteral
	Variable     Expression
}

// CaseLabel is case expr:.
type CaseLabel struct {
	Expression Expression
}

// CaseRangeLabel is the GNU case low ... high:.
type CaseRangeLabel struct {
	Low  Expression
	High Expression
}

// DefaultLabel is default:.
type DefaultLabel struct{}

// EmptyForInitializer is an omitted first clause of a for statement.
type EmptyForInitializer struct{}

// ForExpression is an expression used as the first clause of a for
// statement.
type ForExpression struct {
	Expression Expression
}

func (*CompoundStatement) implNode()    {}
func (*ExpressionStatement) implNode()  {}
func (*LabeledStatement) implNode()     {}
func (*IfStatement) implNode()          {}
func (*SwitchStatement) implNode()      {}
func (*WhileStatement) implNode()       {}
func (*DoWhileStatement) implNode()     {}
func (*ForStatement) implNode()         {}
func (*GotoStatement) implNode()        {}
func (*ContinueStatement) implNode()    {}
func (*BreakStatement) implNode()       {}
func (*ReturnStatement) implNode()      {}
func (*BasicAsmStatement) implNode()    {}
func (*ExtendedAsmStatement) implNode() {}
func (*AsmOperand) implNode()           {}
func (*CaseLabel) implNode()            {}
func (*CaseRangeLabel) implNode()       {}
func (DefaultLabel) implNode()          {}
func (EmptyForInitializer) implNode()   {}
func (*ForExpression) implNode()        {}

func (*CompoundStatement) implStatement()    {}
func (*ExpressionStatement) implStatement()  {}
func (*LabeledStatement) implStatement()     {}
func (*IfStatement) implStatement()          {}
func (*SwitchStatement) implStatement()      {}
func (*WhileStatement) implStatement()       {}
func (*DoWhileStatement) implStatement()     {}
func (*ForStatement) implStatement()         {}
func (*GotoStatement) implStatement()        {}
func (*ContinueStatement) implStatement()    {}
func (*BreakStatement) implStatement()       {}
func (*ReturnStatement) implStatement()      {}
func (*BasicAsmStatement) implStatement()    {}
func (*ExtendedAsmStatement) implStatement() {}

func (*CompoundStatement) implBlockItem()    {}
func (*ExpressionStatement) implBlockItem()  {}
func (*LabeledStatement) implBlockItem()     {}
func (*IfStatement) implBlockItem()          {}
func (*SwitchStatement) implBlockItem()      {}
func (*WhileStatement) implBlockItem()       {}
func (*DoWhileStatement) implBlockItem()     {}
func (*ForStatement) implBlockItem()         {}
func (*GotoStatement) implBlockItem()        {}
func (*ContinueStatement) implBlockItem()    {}
func (*BreakStatement) implBlockItem()       {}
func (*ReturnStatement) implBlockItem()      {}
func (*BasicAsmStatement) implBlockItem()    {}
func (*ExtendedAsmStatement) implBlockItem() {}

func (*CaseLabel) implLabel()      {}
func (*CaseRangeLabel) implLabel() {}
func (DefaultLabel) implLabel()    {}

func (EmptyForInitializer) implForInitializer() {}
func (*ForExpression) implForInitializer()      {}
