package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps a syntax tree as an indented list of nodes, one node per
// line: the node name, then the variant when it is not a nested node, then
// any primitive fields.
type Printer struct {
	w      io.Writer
	indent int
}

// NewPrinter creates a new tree printer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w, indent: 0}
}

// Dump returns the printed form of n.
func Dump(n Node) string {
	var sb strings.Builder
	NewPrinter(&sb).Print(n)
	return sb.String()
}

func (p *Printer) writeIndent() {
	fmt.Fprint(p.w, strings.Repeat("    ", p.indent))
}

// open writes a node line and indents its children. The returned func
// restores the indentation.
func (p *Printer) open(name string, fields ...string) func() {
	p.writeIndent()
	fmt.Fprint(p.w, name)
	for _, f := range fields {
		fmt.Fprint(p.w, " ", f)
	}
	fmt.Fprintln(p.w)
	p.indent++
	return func() { p.indent-- }
}

func (p *Printer) leaf(name string, fields ...string) {
	p.open(name, fields...)()
}

// Print prints any node. Nodes that only make sense inside a parent are
// printed as they would appear there.
func (p *Printer) Print(n Node) {
	switch n := n.(type) {
	case *TranslationUnit:
		p.PrintTranslationUnit(n)
	case *FunctionDefinition:
		p.printFunctionDefinition(n)
	case *Declaration:
		p.printDeclaration(n)
	case *StaticAssert:
		p.printStaticAssert(n)
	case Statement:
		p.printStatement(n)
	case Expression:
		p.printExpression(n)
	case *Declarator:
		p.printDeclarator(n)
	case *TypeName:
		p.printTypeName(n)
	case Extension:
		p.printExtension(n)
	default:
		p.leaf(fmt.Sprintf("Unknown(%T)", n))
	}
}

// PrintTranslationUnit prints a complete translation unit
func (p *Printer) PrintTranslationUnit(tu *TranslationUnit) {
	defer p.open("TranslationUnit")()
	for _, ed := range tu.Declarations {
		p.printExternalDeclaration(ed)
	}
}

func (p *Printer) printExternalDeclaration(ed ExternalDeclaration) {
	defer p.open("ExternalDeclaration")()
	switch d := ed.(type) {
	case *Declaration:
		p.printDeclaration(d)
	case *StaticAssert:
		p.printStaticAssert(d)
	case *FunctionDefinition:
		p.printFunctionDefinition(d)
	}
}

func (p *Printer) printFunctionDefinition(f *FunctionDefinition) {
	defer p.open("FunctionDefinition")()
	for _, s := range f.Specifiers {
		p.printDeclarationSpecifier(s)
	}
	p.printDeclarator(f.Declarator)
	for _, d := range f.Declarations {
		p.printDeclaration(d)
	}
	p.printStatement(f.Body)
}

func (p *Printer) printDeclaration(d *Declaration) {
	defer p.open("Declaration")()
	for _, s := range d.Specifiers {
		p.printDeclarationSpecifier(s)
	}
	for _, id := range d.Declarators {
		p.printInitDeclarator(id)
	}
}

func (p *Printer) printStaticAssert(s *StaticAssert) {
	defer p.open("StaticAssert")()
	p.printExpression(s.Expression)
	if s.Message != nil {
		p.printStringLiteral(s.Message)
	}
}

func (p *Printer) printInitDeclarator(id *InitDeclarator) {
	defer p.open("InitDeclarator")()
	p.printDeclarator(id.Declarator)
	if id.Initializer != nil {
		p.printInitializer(id.Initializer)
	}
}

func (p *Printer) printDeclarationSpecifier(s DeclarationSpecifier) {
	defer p.open("DeclarationSpecifier")()
	switch s := s.(type) {
	case StorageClassSpecifier:
		p.leaf("StorageClassSpecifier", s.String())
	case TypeQualifier:
		p.leaf("TypeQualifier", s.String())
	case FunctionSpecifier:
		p.leaf("FunctionSpecifier", s.String())
	case *AlignmentSpecifier:
		p.printAlignmentSpecifier(s)
	case Extensions:
		p.printExtensions(s)
	case TypeSpecifier:
		p.printTypeSpecifier(s)
	}
}

func (p *Printer) printSpecifierQualifier(s SpecifierQualifier) {
	defer p.open("SpecifierQualifier")()
	switch s := s.(type) {
	case TypeQualifier:
		p.leaf("TypeQualifier", s.String())
	case Extensions:
		p.printExtensions(s)
	case TypeSpecifier:
		p.printTypeSpecifier(s)
	}
}

func (p *Printer) printAlignmentSpecifier(a *AlignmentSpecifier) {
	defer p.open("AlignmentSpecifier")()
	if a.TypeName != nil {
		p.printTypeName(a.TypeName)
	} else {
		p.printExpression(a.Expression)
	}
}

func (p *Printer) printTypeSpecifier(s TypeSpecifier) {
	switch s := s.(type) {
	case BasicType:
		p.leaf("TypeSpecifier", s.String())
	case *AtomicType:
		defer p.open("TypeSpecifier", "Atomic")()
		p.printTypeName(s.TypeName)
	case *TypedefName:
		defer p.open("TypeSpecifier", "TypedefName")()
		p.printIdentifier(s.Identifier)
	case *StructType:
		defer p.open("TypeSpecifier")()
		p.printStructType(s)
	case *EnumType:
		defer p.open("TypeSpecifier")()
		p.printEnumType(s)
	case *TypeOf:
		defer p.open("TypeSpecifier")()
		defer p.open("TypeOf")()
		if s.TypeName != nil {
			p.printTypeName(s.TypeName)
		} else {
			p.printExpression(s.Expression)
		}
	}
}

func (p *Printer) printStructType(s *StructType) {
	defer p.open("StructType")()
	p.leaf("StructKind", s.Kind.String())
	if s.Identifier != nil {
		p.printIdentifier(s.Identifier)
	}
	for _, d := range s.Declarations {
		p.printStructDeclaration(d)
	}
	p.printExtensions(s.Extensions)
}

func (p *Printer) printStructDeclaration(d StructDeclaration) {
	defer p.open("StructDeclaration")()
	switch d := d.(type) {
	case *StructField:
		defer p.open("StructField")()
		for _, s := range d.Specifiers {
			p.printSpecifierQualifier(s)
		}
		for _, sd := range d.Declarators {
			p.printStructDeclarator(sd)
		}
	case *StaticAssert:
		p.printStaticAssert(d)
	}
}

func (p *Printer) printStructDeclarator(sd *StructDeclarator) {
	defer p.open("StructDeclarator")()
	if sd.Declarator != nil {
		p.printDeclarator(sd.Declarator)
	}
	if sd.BitWidth != nil {
		p.printExpression(sd.BitWidth)
	}
}

func (p *Printer) printEnumType(e *EnumType) {
	defer p.open("EnumType")()
	if e.Identifier != nil {
		p.printIdentifier(e.Identifier)
	}
	for _, en := range e.Enumerators {
		p.printEnumerator(en)
	}
	p.printExtensions(e.Extensions)
}

func (p *Printer) printEnumerator(e *Enumerator) {
	defer p.open("Enumerator")()
	p.printIdentifier(e.Identifier)
	if e.Expression != nil {
		p.printExpression(e.Expression)
	}
	p.printExtensions(e.Extensions)
}

func (p *Printer) printDeclarator(d *Declarator) {
	defer p.open("Declarator")()
	switch k := d.Kind.(type) {
	case Abstract:
		p.leaf("DeclaratorKind", "Abstract")
	case *Identifier:
		closeKind := p.open("DeclaratorKind")
		p.printIdentifier(k)
		closeKind()
	case *Declarator:
		closeKind := p.open("DeclaratorKind")
		p.printDeclarator(k)
		closeKind()
	}
	for _, dd := range d.Derived {
		p.printDerivedDeclarator(dd)
	}
	p.printExtensions(d.Extensions)
}

func (p *Printer) printDerivedDeclarator(dd DerivedDeclarator) {
	switch dd := dd.(type) {
	case *PointerDeclarator:
		defer p.open("PointerDeclarator", "Pointer")()
		p.printPointerQualifiers(dd.Qualifiers)
	case *BlockDeclarator:
		defer p.open("PointerDeclarator", "Block")()
		p.printPointerQualifiers(dd.Qualifiers)
	case *ArrayDeclarator:
		defer p.open("DerivedDeclarator")()
		defer p.open("ArrayDeclarator")()
		for _, q := range dd.Qualifiers {
			p.leaf("TypeQualifier", q.String())
		}
		closeSize := p.open("ArraySize", dd.SizeKind.String())
		if dd.Size != nil {
			p.printExpression(dd.Size)
		}
		closeSize()
	case *FunctionDeclarator:
		defer p.open("DerivedDeclarator")()
		defer p.open("FunctionDeclarator")()
		for _, param := range dd.Parameters {
			p.printParameterDeclaration(param)
		}
		if dd.Ellipsis {
			p.leaf("Ellipsis", "Some")
		} else {
			p.leaf("Ellipsis", "None")
		}
	case *KRFunctionDeclarator:
		defer p.open("DerivedDeclarator", "KRFunction")()
		for _, id := range dd.Identifiers {
			p.printIdentifier(id)
		}
	}
}

func (p *Printer) printPointerQualifiers(qs []PointerQualifier) {
	for _, q := range qs {
		closeQ := p.open("PointerQualifier")
		switch q := q.(type) {
		case TypeQualifier:
			p.leaf("TypeQualifier", q.String())
		case Extensions:
			p.printExtensions(q)
		}
		closeQ()
	}
}

func (p *Printer) printParameterDeclaration(pd *ParameterDeclaration) {
	defer p.open("ParameterDeclaration")()
	for _, s := range pd.Specifiers {
		p.printDeclarationSpecifier(s)
	}
	if pd.Declarator != nil {
		p.printDeclarator(pd.Declarator)
	}
	p.printExtensions(pd.Extensions)
}

func (p *Printer) printTypeName(tn *TypeName) {
	defer p.open("TypeName")()
	for _, s := range tn.Specifiers {
		p.printSpecifierQualifier(s)
	}
	if tn.Declarator != nil {
		p.printDeclarator(tn.Declarator)
	}
}

func (p *Printer) printInitializer(init Initializer) {
	defer p.open("Initializer")()
	switch init := init.(type) {
	case *ExpressionInitializer:
		p.printExpression(init.Expression)
	case *ListInitializer:
		for _, item := range init.Items {
			p.printInitializerListItem(item)
		}
	}
}

func (p *Printer) printInitializerListItem(item *InitializerListItem) {
	defer p.open("InitializerListItem")()
	for _, d := range item.Designation {
		p.printDesignator(d)
	}
	p.printInitializer(item.Initializer)
}

func (p *Printer) printDesignator(d Designator) {
	defer p.open("Designator")()
	switch d := d.(type) {
	case *IndexDesignator:
		p.printExpression(d.Expression)
	case *MemberDesignator:
		p.printIdentifier(d.Identifier)
	case *RangeDesignator:
		defer p.open("RangeDesignator")()
		p.printExpression(d.From)
		p.printExpression(d.To)
	}
}

func (p *Printer) printExtensions(exts []Extension) {
	for _, e := range exts {
		p.printExtension(e)
	}
}

func (p *Printer) printExtension(e Extension) {
	defer p.open("Extension")()
	switch e := e.(type) {
	case *Attribute:
		defer p.open("Attribute", quote(e.Name))()
		for _, arg := range e.Arguments {
			p.printExpression(arg)
		}
	case *AsmLabel:
		p.printStringLiteral(e.Label)
	case *AvailabilityAttribute:
		p.leaf("AvailabilityAttribute")
	}
}

func (p *Printer) printIdentifier(id *Identifier) {
	p.leaf("Identifier", quote(id.Name))
}

func (p *Printer) printStringLiteral(s *StringLiteral) {
	parts := make([]string, len(s.Parts))
	for i, part := range s.Parts {
		parts[i] = quote(part)
	}
	p.leaf("StringLiteral", "["+strings.Join(parts, ", ")+"]")
}

func (p *Printer) printStatement(s Statement) {
	switch s := s.(type) {
	case *CompoundStatement:
		defer p.open("Statement", "Compound")()
		for _, item := range s.Items {
			p.printBlockItem(item)
		}
	case *GotoStatement:
		defer p.open("Statement", "Goto")()
		p.printIdentifier(s.Label)
	case *ContinueStatement:
		p.leaf("Statement", "Continue")
	case *BreakStatement:
		p.leaf("Statement", "Break")
	case *ReturnStatement:
		defer p.open("Statement", "Return")()
		if s.Expression != nil {
			p.printExpression(s.Expression)
		}
	case *ExpressionStatement:
		defer p.open("Statement")()
		if s.Expression != nil {
			p.printExpression(s.Expression)
		}
	case *LabeledStatement:
		defer p.open("Statement")()
		defer p.open("LabeledStatement")()
		p.printLabel(s.Label)
		p.printStatement(s.Statement)
	case *IfStatement:
		defer p.open("Statement")()
		defer p.open("IfStatement")()
		p.printExpression(s.Condition)
		p.printStatement(s.Then)
		if s.Else != nil {
			p.printStatement(s.Else)
		}
	case *SwitchStatement:
		defer p.open("Statement")()
		defer p.open("SwitchStatement")()
		p.printExpression(s.Expression)
		p.printStatement(s.Statement)
	case *WhileStatement:
		defer p.open("Statement")()
		defer p.open("WhileStatement")()
		p.printExpression(s.Expression)
		p.printStatement(s.Statement)
	case *DoWhileStatement:
		defer p.open("Statement")()
		defer p.open("DoWhileStatement")()
		p.printStatement(s.Statement)
		p.printExpression(s.Expression)
	case *ForStatement:
		defer p.open("Statement")()
		defer p.open("ForStatement")()
		p.printForInitializer(s.Initializer)
		if s.Condition != nil {
			p.printExpression(s.Condition)
		}
		if s.Step != nil {
			p.printExpression(s.Step)
		}
		p.printStatement(s.Statement)
	case *BasicAsmStatement:
		defer p.open("Statement")()
		defer p.open("AsmStatement")()
		p.printStringLiteral(s.Template)
	case *ExtendedAsmStatement:
		defer p.open("Statement")()
		defer p.open("AsmStatement")()
		p.printExtendedAsm(s)
	}
}

func (p *Printer) printExtendedAsm(s *ExtendedAsmStatement) {
	defer p.open("GnuExtendedAsmStatement")()
	if s.Qualifier != nil {
		p.leaf("TypeQualifier", s.Qualifier.String())
	}
	p.printStringLiteral(s.Template)
	for _, op := range s.Outputs {
		p.printAsmOperand(op)
	}
	for _, op := range s.Inputs {
		p.printAsmOperand(op)
	}
	for _, c := range s.Clobbers {
		p.printStringLiteral(c)
	}
}

func (p *Printer) printAsmOperand(op *AsmOperand) {
	defer p.open("GnuAsmOperand")()
	if op.SymbolicName != nil {
		p.printIdentifier(op.SymbolicName)
	}
	p.printStringLiteral(op.Constraints)
	p.printExpression(op.Variable)
}

func (p *Printer) printLabel(l Label) {
	switch l := l.(type) {
	case DefaultLabel:
		p.leaf("Label", "Default")
	case *Identifier:
		defer p.open("Label")()
		p.printIdentifier(l)
	case *CaseLabel:
		defer p.open("Label")()
		p.printExpression(l.Expression)
	case *CaseRangeLabel:
		defer p.open("Label")()
		defer p.open("CaseRange")()
		p.printExpression(l.Low)
		p.printExpression(l.High)
	}
}

func (p *Printer) printForInitializer(fi ForInitializer) {
	switch fi := fi.(type) {
	case EmptyForInitializer:
		p.leaf("ForInitializer", "Empty")
	case *ForExpression:
		defer p.open("ForInitializer")()
		p.printExpression(fi.Expression)
	case *Declaration:
		defer p.open("ForInitializer")()
		p.printDeclaration(fi)
	case *StaticAssert:
		defer p.open("ForInitializer")()
		p.printStaticAssert(fi)
	}
}

func (p *Printer) printBlockItem(item BlockItem) {
	defer p.open("BlockItem")()
	switch item := item.(type) {
	case *Declaration:
		p.printDeclaration(item)
	case *StaticAssert:
		p.printStaticAssert(item)
	case Statement:
		p.printStatement(item)
	}
}

func (p *Printer) printExpression(e Expression) {
	defer p.open("Expression")()
	switch e := e.(type) {
	case *Identifier:
		p.printIdentifier(e)
	case *Constant:
		p.printConstant(e)
	case *StringLiteral:
		p.printStringLiteral(e)
	case *GenericSelection:
		defer p.open("GenericSelection")()
		p.printExpression(e.Expression)
		for _, a := range e.Associations {
			p.printGenericAssociation(a)
		}
	case *MemberExpression:
		defer p.open("MemberExpression")()
		p.leaf("MemberOperator", e.Operator.String())
		p.printExpression(e.Expression)
		p.printIdentifier(e.Identifier)
	case *CallExpression:
		defer p.open("CallExpression")()
		p.printExpression(e.Callee)
		for _, arg := range e.Arguments {
			p.printExpression(arg)
		}
	case *CompoundLiteral:
		defer p.open("CompoundLiteral")()
		p.printTypeName(e.TypeName)
		for _, item := range e.InitializerList {
			p.printInitializerListItem(item)
		}
	case *SizeOfType:
		defer p.open("SizeOfTy")()
		p.printTypeName(e.TypeName)
	case *SizeOfValue:
		defer p.open("SizeOfVal")()
		p.printExpression(e.Expression)
	case *AlignOf:
		defer p.open("AlignOf")()
		p.printTypeName(e.TypeName)
	case *UnaryOperatorExpression:
		defer p.open("UnaryOperatorExpression")()
		if e.Operator.IsPostfix() {
			p.printExpression(e.Operand)
			p.leaf("UnaryOperator", e.Operator.String())
		} else {
			p.leaf("UnaryOperator", e.Operator.String())
			p.printExpression(e.Operand)
		}
	case *CastExpression:
		defer p.open("CastExpression")()
		p.printTypeName(e.TypeName)
		p.printExpression(e.Expression)
	case *BinaryOperatorExpression:
		defer p.open("BinaryOperatorExpression")()
		p.printExpression(e.LHS)
		p.printExpression(e.RHS)
		p.leaf("BinaryOperator", e.Operator.String())
	case *ConditionalExpression:
		defer p.open("ConditionalExpression")()
		p.printExpression(e.Condition)
		if e.Then != nil {
			p.printExpression(e.Then)
		}
		p.printExpression(e.Else)
	case *CommaExpression:
		for _, sub := range e.Expressions {
			p.printExpression(sub)
		}
	case *OffsetOfExpression:
		defer p.open("OffsetOfExpression")()
		p.printTypeName(e.TypeName)
		p.printOffsetDesignator(e.Designator)
	case *VaArgExpression:
		defer p.open("VaArgExpression")()
		p.printExpression(e.VaList)
		p.printTypeName(e.TypeName)
	case *StatementExpression:
		p.printStatement(e.Statement)
	}
}

func (p *Printer) printGenericAssociation(a GenericAssociation) {
	defer p.open("GenericAssociation")()
	switch a := a.(type) {
	case *GenericTypeAssociation:
		defer p.open("GenericAssociationType")()
		p.printTypeName(a.TypeName)
		p.printExpression(a.Expression)
	case *GenericDefault:
		p.printExpression(a.Expression)
	}
}

func (p *Printer) printOffsetDesignator(d *OffsetDesignator) {
	defer p.open("OffsetDesignator")()
	p.printIdentifier(d.Base)
	for _, m := range d.Members {
		switch m.Kind {
		case OffsetMemberIndex:
			closeM := p.open("OffsetMember")
			p.printExpression(m.Index)
			closeM()
		default:
			closeM := p.open("OffsetMember", m.Kind.String())
			p.printIdentifier(m.Identifier)
			closeM()
		}
	}
}

func (p *Printer) printConstant(c *Constant) {
	switch v := c.Value.(type) {
	case *Character:
		p.leaf("Constant", "Character", v.Spelling)
	case *Integer:
		defer p.open("Constant")()
		defer p.open("Integer", quote(v.Number))()
		p.leaf("IntegerBase", v.Base.String())
		closeSuffix := p.open("IntegerSuffix", fmt.Sprint(v.Suffix.Unsigned), fmt.Sprint(v.Suffix.Imaginary))
		p.leaf("IntegerSize", v.Suffix.Size.String())
		closeSuffix()
	case *Float:
		defer p.open("Constant")()
		defer p.open("Float", quote(v.Number))()
		p.leaf("FloatBase", v.Base.String())
		closeSuffix := p.open("FloatSuffix", fmt.Sprint(v.Suffix.Imaginary))
		p.leaf("FloatFormat", v.Suffix.Format.String())
		closeSuffix()
	}
}

// quote wraps s in double quotes, escaping quotes and backslashes and
// writing characters outside printable ASCII as \u{XXXX}.
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch {
		case r == '"' || r == '\'' || r == '\\':
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case r >= ' ' && r <= '~':
			sb.WriteRune(r)
		default:
			fmt.Fprintf(&sb, "\\u{%04x}", r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
