package printer

import (
	"strconv"
	"strings"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

// Binding strength of binary operators; higher binds tighter.
var precedence = map[ast.BinaryOperator]int{
	ast.OpMul:            9,
	ast.OpDiv:            9,
	ast.OpMod:            9,
	ast.OpPlus:           8,
	ast.OpMinus:          8,
	ast.OpConcat:         8,
	ast.OpSmaller:        7,
	ast.OpSmallerOrEqual: 7,
	ast.OpGreater:        7,
	ast.OpGreaterOrEqual: 7,
	ast.OpEqual:          6,
	ast.OpNotEqual:       6,
	ast.OpIdentical:      6,
	ast.OpNotIdentical:   6,
	ast.OpBooleanAnd:     5,
	ast.OpBooleanOr:      4,
	ast.OpCoalesce:       3,
}

// Operators whose right operand may share their precedence without parentheses.
var associative = map[ast.BinaryOperator]bool{
	ast.OpPlus:       true,
	ast.OpMul:        true,
	ast.OpConcat:     true,
	ast.OpBooleanAnd: true,
	ast.OpBooleanOr:  true,
	ast.OpCoalesce:   true,
}

// Expr prints an expression. The first line is unindented; any continuation
// lines are indented relative to level.
func (p *Printer) Expr(node ast.NameOrExpr, level int) ([]string, error) {
	if node == nil {
		return nil, errors.NewUnsupportedNode("<nil>")
	}

	switch e := node.(type) {
	case *ast.Name:
		return text(e.String()), nil

	case *ast.Variable:
		if e.Name == "" {
			return nil, errors.NewEmptyName("variable")
		}
		return text("$" + e.Name), nil

	case *ast.String:
		return text(Quote(e.Value)), nil

	case *ast.LNumber:
		return text(strconv.FormatInt(e.Value, 10)), nil

	case *ast.DNumber:
		value, err := formatFloat(e.Value)
		if err != nil {
			return nil, err
		}
		return text(value), nil

	case *ast.ConstFetch:
		return text(e.Name.String()), nil

	case *ast.Assign:
		target, err := p.Expr(e.Var, level)
		if err != nil {
			return nil, err
		}
		value, err := p.Expr(e.Expr, level)
		if err != nil {
			return nil, err
		}
		return glue(suffix(target, " = "), value), nil

	case *ast.Array:
		return p.array(e, level)

	case *ast.ArrayDimFetch:
		return p.dimFetch(e, level)

	case *ast.PropertyFetch:
		target, err := p.Expr(e.Var, level)
		if err != nil {
			return nil, err
		}
		return suffix(target, "->"+e.Name.Name), nil

	case *ast.MethodCall:
		target, err := p.Expr(e.Var, level)
		if err != nil {
			return nil, err
		}
		return p.call(suffix(target, "->"+e.Name.Name), e, e.Args, level)

	case *ast.StaticCall:
		class, err := p.Expr(e.Class, level)
		if err != nil {
			return nil, err
		}
		return p.call(suffix(class, "::"+e.Name.Name), e, e.Args, level)

	case *ast.FuncCall:
		name, err := p.Expr(e.Name, level)
		if err != nil {
			return nil, err
		}
		return p.call(name, e, e.Args, level)

	case *ast.New:
		class, err := p.Expr(e.Class, level)
		if err != nil {
			return nil, err
		}
		return p.call(prefix("new ", class), e, e.Args, level)

	case *ast.BooleanNot:
		operand, err := p.operand(e.Expr, level)
		if err != nil {
			return nil, err
		}
		return prefix("! ", operand), nil

	case *ast.Instanceof:
		subject, err := p.operand(e.Expr, level)
		if err != nil {
			return nil, err
		}
		class, err := p.Expr(e.Class, level)
		if err != nil {
			return nil, err
		}
		return glue(suffix(subject, " instanceof "), class), nil

	case *ast.BinaryOp:
		return p.binary(e, level)

	case *ast.Ternary:
		return p.ternary(e, level)

	case *ast.Cast:
		if !e.Kind.Valid() {
			return nil, errors.NewUnsupportedOperator("cast", string(e.Kind))
		}
		operand, err := p.operand(e.Expr, level)
		if err != nil {
			return nil, err
		}
		return prefix("("+e.Kind.Token()+") ", operand), nil

	case *ast.Empty:
		inner, err := p.Expr(e.Expr, level)
		if err != nil {
			return nil, err
		}
		return suffix(prefix("empty( ", inner), " )"), nil

	case *ast.Closure:
		return p.closure(e, level)
	}

	return nil, errors.NewUnsupportedNode(node.NodeType())
}

// operand prints a unary operand, parenthesising looser expressions.
func (p *Printer) operand(node ast.Expr, level int) ([]string, error) {
	printed, err := p.Expr(node, level)
	if err != nil {
		return nil, err
	}
	switch node.(type) {
	case *ast.BinaryOp, *ast.Ternary, *ast.Assign:
		return parenthesise(printed), nil
	}
	return printed, nil
}

func (p *Printer) binary(e *ast.BinaryOp, level int) ([]string, error) {
	if !e.Op.Valid() {
		return nil, errors.NewUnsupportedOperator("binary operator", string(e.Op))
	}
	own := precedence[e.Op]

	left, err := p.Expr(e.Left, level)
	if err != nil {
		return nil, err
	}
	if needsParens(e.Left, own, false, e.Op) {
		left = parenthesise(left)
	}

	right, err := p.Expr(e.Right, level)
	if err != nil {
		return nil, err
	}
	if needsParens(e.Right, own, true, e.Op) {
		right = parenthesise(right)
	}

	return glue(suffix(left, " "+e.Op.Token()+" "), right), nil
}

func needsParens(child ast.Expr, own int, right bool, op ast.BinaryOperator) bool {
	switch c := child.(type) {
	case *ast.Ternary, *ast.Assign:
		return true
	case *ast.BinaryOp:
		inner := precedence[c.Op]
		if inner < own {
			return true
		}
		return right && inner == own && !(associative[op] && c.Op == op)
	}
	return false
}

func (p *Printer) ternary(e *ast.Ternary, level int) ([]string, error) {
	cond, err := p.Expr(e.Cond, level)
	if err != nil {
		return nil, err
	}
	if _, nested := e.Cond.(*ast.Ternary); nested {
		cond = parenthesise(cond)
	}

	otherwise, err := p.Expr(e.Else, level)
	if err != nil {
		return nil, err
	}
	if _, nested := e.Else.(*ast.Ternary); nested {
		otherwise = parenthesise(otherwise)
	}

	if e.If == nil {
		return glue(suffix(cond, " ?: "), otherwise), nil
	}

	then, err := p.Expr(e.If, level)
	if err != nil {
		return nil, err
	}
	return glue(glue(suffix(cond, " ? "), suffix(then, " : ")), otherwise), nil
}

func (p *Printer) dimFetch(e *ast.ArrayDimFetch, level int) ([]string, error) {
	target, err := p.Expr(e.Var, level)
	if err != nil {
		return nil, err
	}
	if e.Dim == nil {
		return suffix(target, "[]"), nil
	}

	dim, err := p.Expr(e.Dim, level)
	if err != nil {
		return nil, err
	}
	switch e.Dim.(type) {
	case *ast.String, *ast.LNumber:
		return glue(suffix(target, "["), suffix(dim, "]")), nil
	}
	return glue(suffix(target, "[ "), suffix(dim, " ]")), nil
}

func (p *Printer) call(head []string, node ast.Node, args []*ast.Arg, level int) ([]string, error) {
	if len(args) == 0 {
		return suffix(head, "()"), nil
	}

	if node.Attributes().Bool(ast.AttrMultiline) {
		lines := suffix(head, "(")
		inner := p.Indent(level + 1)
		for i, arg := range args {
			printed, err := p.arg(arg, level+1)
			if err != nil {
				return nil, err
			}
			printed = prefix(inner, printed)
			if i < len(args)-1 {
				printed = suffix(printed, ",")
			}
			lines = append(lines, printed...)
		}
		return append(lines, p.Indent(level)+")"), nil
	}

	parts := make([][]string, 0, len(args))
	for _, arg := range args {
		printed, err := p.arg(arg, level)
		if err != nil {
			return nil, err
		}
		parts = append(parts, printed)
	}
	return glue(head, wrapList("(", parts, ")")), nil
}

func (p *Printer) arg(arg *ast.Arg, level int) ([]string, error) {
	value, err := p.Expr(arg.Value, level)
	if err != nil {
		return nil, err
	}
	switch {
	case arg.Unpack:
		value = prefix("...", value)
	case arg.ByRef:
		value = prefix("&", value)
	}
	if arg.Name != nil {
		value = prefix(arg.Name.Name+": ", value)
	}
	return value, nil
}

func (p *Printer) array(arr *ast.Array, level int) ([]string, error) {
	open, close := "[", "]"
	if arr.Attributes().Int(ast.AttrKind) == ast.ArrayKindLong {
		open, close = "array(", ")"
	}
	if len(arr.Items) == 0 {
		return text(open + close), nil
	}

	if !arr.Attributes().Bool(ast.AttrMultiline) {
		items := make([][]string, 0, len(arr.Items))
		inline := true
		for _, item := range arr.Items {
			printed, err := p.arrayItem(item, level)
			if err != nil {
				return nil, err
			}
			if len(printed) > 1 {
				inline = false
				break
			}
			items = append(items, printed)
		}
		if inline {
			return wrapList(open, items, close), nil
		}
	}

	lines := text(open)
	inner := p.Indent(level + 1)
	for _, item := range arr.Items {
		printed, err := p.arrayItem(item, level+1)
		if err != nil {
			return nil, err
		}
		lines = append(lines, suffix(prefix(inner, printed), ",")...)
	}
	return append(lines, p.Indent(level)+close), nil
}

func (p *Printer) arrayItem(item *ast.ArrayItem, level int) ([]string, error) {
	value, err := p.Expr(item.Value, level)
	if err != nil {
		return nil, err
	}
	switch {
	case item.Unpack:
		value = prefix("...", value)
	case item.ByRef:
		value = prefix("&", value)
	}
	if item.Key == nil {
		return value, nil
	}

	key, err := p.Expr(item.Key, level)
	if err != nil {
		return nil, err
	}
	return glue(suffix(key, " => "), value), nil
}

func (p *Printer) closure(e *ast.Closure, level int) ([]string, error) {
	head := "function "
	if e.Static {
		head = "static function "
	}
	if e.ByRef {
		head += "&"
	}

	params, err := p.Params(e.Params)
	if err != nil {
		return nil, err
	}
	if params == "" {
		head += "()"
	} else {
		head += "( " + params + " )"
	}

	if len(e.Uses) > 0 {
		uses := make([]string, 0, len(e.Uses))
		for _, use := range e.Uses {
			name := "$" + use.Var.Name
			if use.ByRef {
				name = "&" + name
			}
			uses = append(uses, name)
		}
		head += " use ( " + strings.Join(uses, ", ") + " )"
	}

	if e.ReturnType != nil {
		typ, err := p.Type(e.ReturnType)
		if err != nil {
			return nil, err
		}
		head += ": " + typ
	}

	lines := text(head + " {")
	body, err := p.Stmts(e.Stmts, level+1)
	if err != nil {
		return nil, err
	}
	lines = append(lines, body...)
	return append(lines, p.Indent(level)+"}"), nil
}

func text(line string) []string {
	return []string{line}
}

// glue joins right onto the last line of left.
func glue(left, right []string) []string {
	if len(left) == 0 {
		return right
	}
	if len(right) == 0 {
		return left
	}
	out := make([]string, 0, len(left)+len(right)-1)
	out = append(out, left...)
	out[len(out)-1] += right[0]
	return append(out, right[1:]...)
}

func prefix(head string, lines []string) []string {
	return glue(text(head), lines)
}

func suffix(lines []string, tail string) []string {
	return glue(lines, text(tail))
}

func terminate(lines []string) []string {
	return suffix(lines, ";")
}

func parenthesise(lines []string) []string {
	return suffix(prefix("( ", lines), " )")
}

// wrapList renders "open a, b close" with inner spacing, or "openclose" when
// empty.
func wrapList(open string, parts [][]string, close string) []string {
	if len(parts) == 0 {
		return text(open + close)
	}
	lines := text(open + " ")
	for i, part := range parts {
		if i > 0 {
			lines = suffix(lines, ", ")
		}
		lines = glue(lines, part)
	}
	return suffix(lines, " "+close)
}
