package ast

// Class and member modifier flags, matching nikic/php-parser.
const (
	ModifierPublic    = 1
	ModifierProtected = 2
	ModifierPrivate   = 4
	ModifierStatic    = 8
	ModifierAbstract  = 16
	ModifierFinal     = 32
	ModifierReadonly  = 64
)

// UseKind distinguishes class, function and constant imports.
type UseKind int

const (
	UseUnknown  UseKind = 0
	UseNormal   UseKind = 1
	UseFunction UseKind = 2
	UseConstant UseKind = 3
)

// Namespace is a namespace block.
type Namespace struct {
	stmtBase
	Name  *Name  `php:"name"`
	Stmts []Stmt `php:"stmts"`
}

func (*Namespace) NodeType() string { return "Stmt_Namespace" }

// NewNamespace creates a Namespace. name may be nil for the global namespace.
func NewNamespace(name *Name, stmts []Stmt) *Namespace {
	return &Namespace{Name: name, Stmts: stmts}
}

// Use is a use import statement.
type Use struct {
	stmtBase
	Type UseKind    `php:"type"`
	Uses []*UseItem `php:"uses"`
}

func (*Use) NodeType() string { return "Stmt_Use" }

// NewUse creates a Use statement.
func NewUse(kind UseKind, items ...*UseItem) *Use {
	return &Use{Type: kind, Uses: items}
}

// GroupUse is a grouped use import: use Prefix\{A, B};
type GroupUse struct {
	stmtBase
	Type   UseKind    `php:"type"`
	Prefix *Name      `php:"prefix"`
	Uses   []*UseItem `php:"uses"`
}

func (*GroupUse) NodeType() string { return "Stmt_GroupUse" }

// NewGroupUse creates a GroupUse statement.
func NewGroupUse(kind UseKind, prefix *Name, items ...*UseItem) *GroupUse {
	return &GroupUse{Type: kind, Prefix: prefix, Uses: items}
}

// UseItem is a single imported name.
type UseItem struct {
	base
	Type  UseKind     `php:"type"`
	Name  *Name       `php:"name"`
	Alias *Identifier `php:"alias"`
}

func (*UseItem) NodeType() string { return "Stmt_UseUse" }

// NewUseItem creates a UseItem with an optional alias.
func NewUseItem(name *Name, alias *Identifier) *UseItem {
	return &UseItem{Type: UseUnknown, Name: name, Alias: alias}
}

// Class is a class declaration.
type Class struct {
	stmtBase
	Flags          int         `php:"flags"`
	Name           *Identifier `php:"name"`
	Extends        *Name       `php:"extends"`
	Implements     []*Name     `php:"implements"`
	Stmts          []Stmt      `php:"stmts"`
	AttrGroups     []Node      `php:"attrGroups"`
	NamespacedName *Name       `php:"namespacedName"`
}

func (*Class) NodeType() string { return "Stmt_Class" }

// NewClass creates a Class.
func NewClass(name *Identifier, flags int, extends *Name, implements []*Name, stmts []Stmt) *Class {
	if implements == nil {
		implements = []*Name{}
	}
	if stmts == nil {
		stmts = []Stmt{}
	}
	return &Class{
		Flags:      flags,
		Name:       name,
		Extends:    extends,
		Implements: implements,
		Stmts:      stmts,
		AttrGroups: []Node{},
	}
}

// ClassMethod is a method declaration.
type ClassMethod struct {
	stmtBase
	Flags      int         `php:"flags"`
	ByRef      bool        `php:"byRef"`
	Name       *Identifier `php:"name"`
	Params     []*Param    `php:"params"`
	ReturnType TypeNode    `php:"returnType"`
	Stmts      []Stmt      `php:"stmts"`
	AttrGroups []Node      `php:"attrGroups"`
}

func (*ClassMethod) NodeType() string { return "Stmt_ClassMethod" }

// NewClassMethod creates a ClassMethod.
func NewClassMethod(name *Identifier, flags int, params []*Param, returnType TypeNode, stmts []Stmt) *ClassMethod {
	if params == nil {
		params = []*Param{}
	}
	if stmts == nil {
		stmts = []Stmt{}
	}
	return &ClassMethod{
		Flags:      flags,
		Name:       name,
		Params:     params,
		ReturnType: returnType,
		Stmts:      stmts,
		AttrGroups: []Node{},
	}
}

// Property is a property declaration.
type Property struct {
	stmtBase
	Flags      int             `php:"flags"`
	Type       TypeNode        `php:"type"`
	Props      []*PropertyItem `php:"props"`
	AttrGroups []Node          `php:"attrGroups"`
}

func (*Property) NodeType() string { return "Stmt_Property" }

// NewProperty creates a Property with a single item.
func NewProperty(flags int, typ TypeNode, name string, def Expr) *Property {
	return &Property{
		Flags:      flags,
		Type:       typ,
		Props:      []*PropertyItem{{Name: NewIdentifier(name), Default: def}},
		AttrGroups: []Node{},
	}
}

// PropertyItem is one declared property.
type PropertyItem struct {
	base
	Name    *Identifier `php:"name"`
	Default Expr        `php:"default"`
}

func (*PropertyItem) NodeType() string { return "PropertyItem" }

// ClassConst is a class constant declaration.
type ClassConst struct {
	stmtBase
	Flags      int      `php:"flags"`
	Consts     []*Const `php:"consts"`
	AttrGroups []Node   `php:"attrGroups"`
}

func (*ClassConst) NodeType() string { return "Stmt_ClassConst" }

// NewClassConst creates a ClassConst with a single constant.
func NewClassConst(flags int, name string, value Expr) *ClassConst {
	return &ClassConst{
		Flags:      flags,
		Consts:     []*Const{{Name: NewIdentifier(name), Value: value}},
		AttrGroups: []Node{},
	}
}

// Const is a name/value constant pair.
type Const struct {
	base
	Name  *Identifier `php:"name"`
	Value Expr        `php:"value"`
}

func (*Const) NodeType() string { return "Const" }

// Expression wraps an expression used as a statement.
type Expression struct {
	stmtBase
	Expr Expr `php:"expr"`
}

func (*Expression) NodeType() string { return "Stmt_Expression" }

// NewExpression creates an expression statement.
func NewExpression(expr Expr) *Expression {
	return &Expression{Expr: expr}
}

// Return is a return statement. Expr may be nil.
type Return struct {
	stmtBase
	Expr Expr `php:"expr"`
}

func (*Return) NodeType() string { return "Stmt_Return" }

// NewReturn creates a Return.
func NewReturn(expr Expr) *Return {
	return &Return{Expr: expr}
}

// Declare is a declare(...) statement.
type Declare struct {
	stmtBase
	Declares []*DeclareItem `php:"declares"`
	Stmts    []Stmt         `php:"stmts"`
}

func (*Declare) NodeType() string { return "Stmt_Declare" }

// NewDeclare creates a Declare without a body.
func NewDeclare(items ...*DeclareItem) *Declare {
	return &Declare{Declares: items}
}

// DeclareItem is a key=value pair inside declare().
type DeclareItem struct {
	base
	Key   *Identifier `php:"key"`
	Value Expr        `php:"value"`
}

func (*DeclareItem) NodeType() string { return "DeclareItem" }

// NewDeclareItem creates a DeclareItem.
func NewDeclareItem(key string, value Expr) *DeclareItem {
	return &DeclareItem{Key: NewIdentifier(key), Value: value}
}

// If is an if statement.
type If struct {
	stmtBase
	Cond    Expr      `php:"cond"`
	Stmts   []Stmt    `php:"stmts"`
	ElseIfs []*ElseIf `php:"elseifs"`
	Else    *Else     `php:"else"`
}

func (*If) NodeType() string { return "Stmt_If" }

// NewIf creates an If without elseif/else branches.
func NewIf(cond Expr, stmts []Stmt) *If {
	if stmts == nil {
		stmts = []Stmt{}
	}
	return &If{Cond: cond, Stmts: stmts, ElseIfs: []*ElseIf{}}
}

// ElseIf is an elseif branch.
type ElseIf struct {
	base
	Cond  Expr   `php:"cond"`
	Stmts []Stmt `php:"stmts"`
}

func (*ElseIf) NodeType() string { return "Stmt_ElseIf" }

// NewElseIf creates an ElseIf.
func NewElseIf(cond Expr, stmts []Stmt) *ElseIf {
	return &ElseIf{Cond: cond, Stmts: stmts}
}

// Else is an else branch.
type Else struct {
	base
	Stmts []Stmt `php:"stmts"`
}

func (*Else) NodeType() string { return "Stmt_Else" }

// NewElse creates an Else.
func NewElse(stmts []Stmt) *Else {
	return &Else{Stmts: stmts}
}

// Foreach is a foreach loop. KeyVar may be nil.
type Foreach struct {
	stmtBase
	Expr     Expr   `php:"expr"`
	KeyVar   Expr   `php:"keyVar"`
	ByRef    bool   `php:"byRef"`
	ValueVar Expr   `php:"valueVar"`
	Stmts    []Stmt `php:"stmts"`
}

func (*Foreach) NodeType() string { return "Stmt_Foreach" }

// NewForeach creates a Foreach.
func NewForeach(expr, keyVar, valueVar Expr, stmts []Stmt) *Foreach {
	return &Foreach{Expr: expr, KeyVar: keyVar, ValueVar: valueVar, Stmts: stmts}
}

// For is a for loop.
type For struct {
	stmtBase
	Init  []Expr `php:"init"`
	Cond  []Expr `php:"cond"`
	Loop  []Expr `php:"loop"`
	Stmts []Stmt `php:"stmts"`
}

func (*For) NodeType() string { return "Stmt_For" }

// NewFor creates a For.
func NewFor(init, cond, loop []Expr, stmts []Stmt) *For {
	return &For{Init: init, Cond: cond, Loop: loop, Stmts: stmts}
}

// While is a while loop.
type While struct {
	stmtBase
	Cond  Expr   `php:"cond"`
	Stmts []Stmt `php:"stmts"`
}

func (*While) NodeType() string { return "Stmt_While" }

// NewWhile creates a While.
func NewWhile(cond Expr, stmts []Stmt) *While {
	return &While{Cond: cond, Stmts: stmts}
}

// Switch is a switch statement.
type Switch struct {
	stmtBase
	Cond  Expr    `php:"cond"`
	Cases []*Case `php:"cases"`
}

func (*Switch) NodeType() string { return "Stmt_Switch" }

// NewSwitch creates a Switch.
func NewSwitch(cond Expr, cases ...*Case) *Switch {
	return &Switch{Cond: cond, Cases: cases}
}

// Case is a switch case. A nil Cond is the default case.
type Case struct {
	base
	Cond  Expr   `php:"cond"`
	Stmts []Stmt `php:"stmts"`
}

func (*Case) NodeType() string { return "Stmt_Case" }

// NewCase creates a Case.
func NewCase(cond Expr, stmts []Stmt) *Case {
	return &Case{Cond: cond, Stmts: stmts}
}

// Break is a break statement. Num may be nil.
type Break struct {
	stmtBase
	Num Expr `php:"num"`
}

func (*Break) NodeType() string { return "Stmt_Break" }

// NewBreak creates a Break.
func NewBreak(num Expr) *Break {
	return &Break{Num: num}
}

// Continue is a continue statement. Num may be nil.
type Continue struct {
	stmtBase
	Num Expr `php:"num"`
}

func (*Continue) NodeType() string { return "Stmt_Continue" }

// NewContinue creates a Continue.
func NewContinue(num Expr) *Continue {
	return &Continue{Num: num}
}

// Unset is an unset(...) statement.
type Unset struct {
	stmtBase
	Vars []Expr `php:"vars"`
}

func (*Unset) NodeType() string { return "Stmt_Unset" }

// NewUnset creates an Unset.
func NewUnset(vars ...Expr) *Unset {
	return &Unset{Vars: vars}
}

// Nop is an empty statement, used to carry free-standing comments.
type Nop struct {
	stmtBase
}

func (*Nop) NodeType() string { return "Stmt_Nop" }

// NewNop creates a Nop with the given comments attached.
func NewNop(comments ...*Comment) *Nop {
	nop := &Nop{}
	if len(comments) > 0 {
		nop.setAttributes(NewAttributes(Attribute{Key: AttrComments, Value: comments}))
	}
	return nop
}
