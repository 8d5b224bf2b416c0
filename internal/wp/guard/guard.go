// Package guard builds the small expressions and control blocks shared by
// every generated handler: conditions, casts, fetches, and WP_Error returns.
//
// Builders that take an indent level return printables whose lines are
// fully indented at that level. Inner printables passed to a block must
// already be rendered one level deeper.
package guard

import (
	"strings"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/php/ast"
)

// Variable returns $name. An empty name panics with a GEN601 error.
func Variable(name string) *ast.Variable {
	name = strings.TrimPrefix(name, "$")
	if name == "" {
		panic(errors.NewEmptyName("variable"))
	}
	return ast.NewVariable(name)
}

// PropertyFetch returns $name->property.
func PropertyFetch(name, property string) *ast.PropertyFetch {
	return ast.NewPropertyFetch(Variable(name), property)
}

// ArrayDimFetch returns $name['key'].
func ArrayDimFetch(name, key string) *ast.ArrayDimFetch {
	return ast.NewArrayDimFetch(Variable(name), ast.NewString(key))
}

// BooleanNot returns ! expr.
func BooleanNot(expr ast.Expr) *ast.BooleanNot {
	return ast.NewBooleanNot(expr)
}

// Instanceof returns expr instanceof class.
func Instanceof(expr ast.Expr, class string) *ast.Instanceof {
	return ast.NewInstanceof(expr, ast.ParseName(class))
}

// NotInstanceof returns ! expr instanceof class.
func NotInstanceof(expr ast.Expr, class string) *ast.BooleanNot {
	return BooleanNot(Instanceof(expr, class))
}

// BinaryOperation returns left <op> right. An unknown operator panics with a
// GEN605 error.
func BinaryOperation(op ast.BinaryOperator, left, right ast.Expr) *ast.BinaryOp {
	if !op.Valid() {
		panic(errors.NewUnsupportedOperator("binary operator", string(op)))
	}
	return ast.NewBinaryOp(op, left, right)
}

// ScalarCast returns (kind) expr. Only scalar casts are accepted.
func ScalarCast(kind ast.CastKind, expr ast.Expr) *ast.Cast {
	switch kind {
	case ast.CastInt, ast.CastDouble, ast.CastString, ast.CastBool:
		return ast.NewCast(kind, expr)
	}
	panic(errors.NewUnsupportedOperator("scalar cast", string(kind)))
}

// Call returns name( args ).
func Call(name string, args ...ast.Expr) *ast.FuncCall {
	return ast.NewFuncCall(name, ast.Args(args...)...)
}

// MultilineCall is Call with one argument per line.
func MultilineCall(name string, args ...ast.Expr) *ast.FuncCall {
	return ast.MergeAttributes(Call(name, args...), ast.NewAttributes(ast.Attribute{Key: ast.AttrMultiline, Value: true}))
}

// This returns $this->method( args ).
func This(method string, args ...ast.Expr) *ast.MethodCall {
	return ast.NewMethodCall(Variable("this"), method, ast.Args(args...)...)
}

// String returns a single-quoted string literal.
func String(value string) *ast.String {
	return ast.NewString(value)
}

// Int returns an integer literal.
func Int(value int64) *ast.LNumber {
	return ast.NewInt(value)
}

// IsNull returns null === expr.
func IsNull(expr ast.Expr) *ast.BinaryOp {
	return BinaryOperation(ast.OpIdentical, ast.NewNull(), expr)
}

// NotNull returns null !== expr.
func NotNull(expr ast.Expr) *ast.BinaryOp {
	return BinaryOperation(ast.OpNotIdentical, ast.NewNull(), expr)
}

// BlankString returns ! is_string( expr ) || '' === trim( expr ).
func BlankString(expr ast.Expr) *ast.BinaryOp {
	return BinaryOperation(ast.OpBooleanOr,
		BooleanNot(Call("is_string", expr)),
		BinaryOperation(ast.OpIdentical, String(""), Call("trim", expr)),
	)
}

// NonBlankString returns is_string( expr ) && '' !== trim( expr ).
func NonBlankString(expr ast.Expr) *ast.BinaryOp {
	return BinaryOperation(ast.OpBooleanAnd,
		Call("is_string", expr),
		BinaryOperation(ast.OpNotIdentical, String(""), Call("trim", expr)),
	)
}

// NotEmpty returns ! empty( expr ).
func NotEmpty(expr ast.Expr) *ast.BooleanNot {
	return BooleanNot(ast.NewEmpty(expr))
}
