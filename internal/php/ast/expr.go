package ast

// Variable is $name.
type Variable struct {
	exprBase
	Name string `php:"name"`
}

func (*Variable) NodeType() string { return "Expr_Variable" }

// NewVariable creates a Variable. name excludes the dollar sign.
func NewVariable(name string) *Variable {
	return &Variable{Name: name}
}

// Assign is target = value.
type Assign struct {
	exprBase
	Var  Expr `php:"var"`
	Expr Expr `php:"expr"`
}

func (*Assign) NodeType() string { return "Expr_Assign" }

// NewAssign creates an Assign.
func NewAssign(target, value Expr) *Assign {
	return &Assign{Var: target, Expr: value}
}

// Array is an array literal. AttrKind selects array() or [] syntax.
type Array struct {
	exprBase
	Items []*ArrayItem `php:"items"`
}

func (*Array) NodeType() string { return "Expr_Array" }

// NewArray creates a short-syntax Array.
func NewArray(items ...*ArrayItem) *Array {
	if items == nil {
		items = []*ArrayItem{}
	}
	arr := &Array{Items: items}
	arr.setAttributes(NewAttributes(Attribute{Key: AttrKind, Value: ArrayKindShort}))
	return arr
}

// NewLongArray creates an Array printed with array( ... ) syntax.
func NewLongArray(items ...*ArrayItem) *Array {
	if items == nil {
		items = []*ArrayItem{}
	}
	arr := &Array{Items: items}
	arr.setAttributes(NewAttributes(Attribute{Key: AttrKind, Value: ArrayKindLong}))
	return arr
}

// Multiline marks arr to print one item per line.
func Multiline(arr *Array) *Array {
	return MergeAttributes(arr, NewAttributes(Attribute{Key: AttrMultiline, Value: true}))
}

// ArrayItem is one array entry. Key may be nil.
type ArrayItem struct {
	base
	Key    Expr `php:"key"`
	Value  Expr `php:"value"`
	ByRef  bool `php:"byRef"`
	Unpack bool `php:"unpack"`
}

func (*ArrayItem) NodeType() string { return "ArrayItem" }

// NewArrayItem creates a positional ArrayItem.
func NewArrayItem(value Expr) *ArrayItem {
	return &ArrayItem{Value: value}
}

// NewKeyedArrayItem creates an ArrayItem with a key.
func NewKeyedArrayItem(key, value Expr) *ArrayItem {
	return &ArrayItem{Key: key, Value: value}
}

// ArrayDimFetch is $var[dim]. A nil Dim is the append form $var[].
type ArrayDimFetch struct {
	exprBase
	Var Expr `php:"var"`
	Dim Expr `php:"dim"`
}

func (*ArrayDimFetch) NodeType() string { return "Expr_ArrayDimFetch" }

// NewArrayDimFetch creates an ArrayDimFetch.
func NewArrayDimFetch(v, dim Expr) *ArrayDimFetch {
	return &ArrayDimFetch{Var: v, Dim: dim}
}

// PropertyFetch is $var->name.
type PropertyFetch struct {
	exprBase
	Var  Expr        `php:"var"`
	Name *Identifier `php:"name"`
}

func (*PropertyFetch) NodeType() string { return "Expr_PropertyFetch" }

// NewPropertyFetch creates a PropertyFetch.
func NewPropertyFetch(v Expr, name string) *PropertyFetch {
	return &PropertyFetch{Var: v, Name: NewIdentifier(name)}
}

// MethodCall is $var->name(args).
type MethodCall struct {
	exprBase
	Var  Expr        `php:"var"`
	Name *Identifier `php:"name"`
	Args []*Arg      `php:"args"`
}

func (*MethodCall) NodeType() string { return "Expr_MethodCall" }

// NewMethodCall creates a MethodCall.
func NewMethodCall(v Expr, name string, args ...*Arg) *MethodCall {
	if args == nil {
		args = []*Arg{}
	}
	return &MethodCall{Var: v, Name: NewIdentifier(name), Args: args}
}

// StaticCall is Class::name(args).
type StaticCall struct {
	exprBase
	Class NameOrExpr  `php:"class"`
	Name  *Identifier `php:"name"`
	Args  []*Arg      `php:"args"`
}

func (*StaticCall) NodeType() string { return "Expr_StaticCall" }

// NewStaticCall creates a StaticCall.
func NewStaticCall(class NameOrExpr, name string, args ...*Arg) *StaticCall {
	if args == nil {
		args = []*Arg{}
	}
	return &StaticCall{Class: class, Name: NewIdentifier(name), Args: args}
}

// FuncCall is name(args).
type FuncCall struct {
	exprBase
	Name NameOrExpr `php:"name"`
	Args []*Arg     `php:"args"`
}

func (*FuncCall) NodeType() string { return "Expr_FuncCall" }

// NewFuncCall creates a FuncCall to a named function.
func NewFuncCall(name string, args ...*Arg) *FuncCall {
	if args == nil {
		args = []*Arg{}
	}
	return &FuncCall{Name: NewName(name), Args: args}
}

// New is new Class(args).
type New struct {
	exprBase
	Class NameOrExpr `php:"class"`
	Args  []*Arg     `php:"args"`
}

func (*New) NodeType() string { return "Expr_New" }

// NewNew creates a New expression.
func NewNew(class NameOrExpr, args ...*Arg) *New {
	if args == nil {
		args = []*Arg{}
	}
	return &New{Class: class, Args: args}
}

// ConstFetch is a constant reference, including true, false and null.
type ConstFetch struct {
	exprBase
	Name *Name `php:"name"`
}

func (*ConstFetch) NodeType() string { return "Expr_ConstFetch" }

// NewConstFetch creates a ConstFetch.
func NewConstFetch(name string) *ConstFetch {
	return &ConstFetch{Name: NewName(name)}
}

// NewTrue returns the true constant.
func NewTrue() *ConstFetch { return NewConstFetch("true") }

// NewFalse returns the false constant.
func NewFalse() *ConstFetch { return NewConstFetch("false") }

// NewNull returns the null constant.
func NewNull() *ConstFetch { return NewConstFetch("null") }

// NewBool returns the true or false constant.
func NewBool(value bool) *ConstFetch {
	if value {
		return NewTrue()
	}
	return NewFalse()
}

// BooleanNot is ! expr.
type BooleanNot struct {
	exprBase
	Expr Expr `php:"expr"`
}

func (*BooleanNot) NodeType() string { return "Expr_BooleanNot" }

// NewBooleanNot creates a BooleanNot.
func NewBooleanNot(expr Expr) *BooleanNot {
	return &BooleanNot{Expr: expr}
}

// Instanceof is expr instanceof Class.
type Instanceof struct {
	exprBase
	Expr  Expr       `php:"expr"`
	Class NameOrExpr `php:"class"`
}

func (*Instanceof) NodeType() string { return "Expr_Instanceof" }

// NewInstanceof creates an Instanceof.
func NewInstanceof(expr Expr, class NameOrExpr) *Instanceof {
	return &Instanceof{Expr: expr, Class: class}
}

// BinaryOperator names a binary operation, used as the nodeType suffix.
type BinaryOperator string

const (
	OpPlus           BinaryOperator = "Plus"
	OpMinus          BinaryOperator = "Minus"
	OpMul            BinaryOperator = "Mul"
	OpDiv            BinaryOperator = "Div"
	OpMod            BinaryOperator = "Mod"
	OpConcat         BinaryOperator = "Concat"
	OpBooleanAnd     BinaryOperator = "BooleanAnd"
	OpBooleanOr      BinaryOperator = "BooleanOr"
	OpSmaller        BinaryOperator = "Smaller"
	OpSmallerOrEqual BinaryOperator = "SmallerOrEqual"
	OpGreater        BinaryOperator = "Greater"
	OpGreaterOrEqual BinaryOperator = "GreaterOrEqual"
	OpEqual          BinaryOperator = "Equal"
	OpNotEqual       BinaryOperator = "NotEqual"
	OpIdentical      BinaryOperator = "Identical"
	OpNotIdentical   BinaryOperator = "NotIdentical"
	OpCoalesce       BinaryOperator = "Coalesce"
)

var binaryOperatorTokens = map[BinaryOperator]string{
	OpPlus:           "+",
	OpMinus:          "-",
	OpMul:            "*",
	OpDiv:            "/",
	OpMod:            "%",
	OpConcat:         ".",
	OpBooleanAnd:     "&&",
	OpBooleanOr:      "||",
	OpSmaller:        "<",
	OpSmallerOrEqual: "<=",
	OpGreater:        ">",
	OpGreaterOrEqual: ">=",
	OpEqual:          "==",
	OpNotEqual:       "!=",
	OpIdentical:      "===",
	OpNotIdentical:   "!==",
	OpCoalesce:       "??",
}

// Token returns the PHP operator token, e.g. "!==".
func (op BinaryOperator) Token() string {
	return binaryOperatorTokens[op]
}

// Valid reports whether op is a known operator.
func (op BinaryOperator) Valid() bool {
	_, ok := binaryOperatorTokens[op]
	return ok
}

// BinaryOp is left <op> right.
type BinaryOp struct {
	exprBase
	Op    BinaryOperator `php:"-"`
	Left  Expr           `php:"left"`
	Right Expr           `php:"right"`
}

func (b *BinaryOp) NodeType() string { return "Expr_BinaryOp_" + string(b.Op) }

// NewBinaryOp creates a BinaryOp.
func NewBinaryOp(op BinaryOperator, left, right Expr) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

// Ternary is cond ? if : else. A nil If is the short form cond ?: else.
type Ternary struct {
	exprBase
	Cond Expr `php:"cond"`
	If   Expr `php:"if"`
	Else Expr `php:"else"`
}

func (*Ternary) NodeType() string { return "Expr_Ternary" }

// NewTernary creates a Ternary.
func NewTernary(cond, ifTrue, ifFalse Expr) *Ternary {
	return &Ternary{Cond: cond, If: ifTrue, Else: ifFalse}
}

// CastKind names a scalar cast, used as the nodeType suffix.
type CastKind string

const (
	CastInt    CastKind = "Int"
	CastDouble CastKind = "Double"
	CastString CastKind = "String"
	CastBool   CastKind = "Bool"
	CastArray  CastKind = "Array"
)

var castTokens = map[CastKind]string{
	CastInt:    "int",
	CastDouble: "float",
	CastString: "string",
	CastBool:   "bool",
	CastArray:  "array",
}

// Token returns the cast keyword, e.g. "int".
func (k CastKind) Token() string {
	return castTokens[k]
}

// Valid reports whether k is a known cast.
func (k CastKind) Valid() bool {
	_, ok := castTokens[k]
	return ok
}

// Cast is (kind) expr.
type Cast struct {
	exprBase
	Kind CastKind `php:"-"`
	Expr Expr     `php:"expr"`
}

func (c *Cast) NodeType() string { return "Expr_Cast_" + string(c.Kind) }

// NewCast creates a Cast.
func NewCast(kind CastKind, expr Expr) *Cast {
	return &Cast{Kind: kind, Expr: expr}
}

// Closure is an anonymous function.
type Closure struct {
	exprBase
	Static     bool          `php:"static"`
	ByRef      bool          `php:"byRef"`
	Params     []*Param      `php:"params"`
	Uses       []*ClosureUse `php:"uses"`
	ReturnType TypeNode      `php:"returnType"`
	Stmts      []Stmt        `php:"stmts"`
	AttrGroups []Node        `php:"attrGroups"`
}

func (*Closure) NodeType() string { return "Expr_Closure" }

// NewClosure creates a Closure.
func NewClosure(static bool, params []*Param, uses []*ClosureUse, returnType TypeNode, stmts []Stmt) *Closure {
	if params == nil {
		params = []*Param{}
	}
	if uses == nil {
		uses = []*ClosureUse{}
	}
	if stmts == nil {
		stmts = []Stmt{}
	}
	return &Closure{
		Static:     static,
		Params:     params,
		Uses:       uses,
		ReturnType: returnType,
		Stmts:      stmts,
		AttrGroups: []Node{},
	}
}

// ClosureUse is a variable captured by a closure.
type ClosureUse struct {
	base
	Var   *Variable `php:"var"`
	ByRef bool      `php:"byRef"`
}

func (*ClosureUse) NodeType() string { return "ClosureUse" }

// NewClosureUse creates a ClosureUse.
func NewClosureUse(v *Variable, byRef bool) *ClosureUse {
	return &ClosureUse{Var: v, ByRef: byRef}
}

// Empty is empty(expr).
type Empty struct {
	exprBase
	Expr Expr `php:"expr"`
}

func (*Empty) NodeType() string { return "Expr_Empty" }

// NewEmpty creates an Empty.
func NewEmpty(expr Expr) *Empty {
	return &Empty{Expr: expr}
}
