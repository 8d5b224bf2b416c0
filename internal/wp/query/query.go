// Package query renders the request handling shared by list and item
// handlers: reading request params, clamping pagination, and assembling
// query argument arrays.
package query

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/wp/guard"
)

// Pagination bounds applied to per_page.
const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// RequestParam returns $request->get_param( 'param' ).
func RequestParam(param string) *ast.MethodCall {
	return ast.NewMethodCall(guard.Variable("request"), "get_param", ast.NewArg(guard.String(param)))
}

// RequestParams returns $request->get_params().
func RequestParams() *ast.MethodCall {
	return ast.NewMethodCall(guard.Variable("request"), "get_params")
}

// ParamAssignment renders $variable = $request->get_param( 'param' );.
func ParamAssignment(variable, param string, level int) printable.Statement {
	return guard.Assign(guard.Variable(variable), RequestParam(param), level)
}

// IntParamAssignment renders $variable = (int) $request->get_param( 'param' );.
func IntParamAssignment(variable, param string, level int) printable.Statement {
	return guard.Assign(guard.Variable(variable), guard.ScalarCast(ast.CastInt, RequestParam(param)), level)
}

// Clamp renders if ( $variable <op> bound ) { $variable = value; }.
func Clamp(variable string, op ast.BinaryOperator, bound, value int64, level int) printable.Statement {
	return guard.If(
		guard.BinaryOperation(op, guard.Variable(variable), guard.Int(bound)),
		level,
		guard.Assign(guard.Variable(variable), guard.Int(value), level+1),
	)
}

// PerPage reads per_page and clamps it to [1, MaxPerPage], falling back to
// DefaultPerPage.
func PerPage(level int) []printable.Statement {
	return []printable.Statement{
		IntParamAssignment("per_page", "per_page", level),
		Clamp("per_page", ast.OpSmallerOrEqual, 0, DefaultPerPage, level),
		Clamp("per_page", ast.OpGreater, MaxPerPage, MaxPerPage, level),
	}
}

// Page reads page and floors it at 1.
func Page(level int) []printable.Statement {
	return []printable.Statement{
		IntParamAssignment("page", "page", level),
		Clamp("page", ast.OpSmallerOrEqual, 0, 1, level),
	}
}

// Entry is one key of a query argument array.
type Entry struct {
	Key   string
	Value ast.Expr
}

// ArgsArray returns a multi-line array( 'key' => value, ... ).
func ArgsArray(entries ...Entry) *ast.Array {
	items := make([]*ast.ArrayItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, ast.NewKeyedArrayItem(guard.String(entry.Key), entry.Value))
	}
	return ast.Multiline(ast.NewLongArray(items...))
}

// ArgsAssignment renders $variable = array( ... ); one entry per line.
func ArgsAssignment(variable string, level int, entries ...Entry) printable.Statement {
	return guard.Assign(guard.Variable(variable), ArgsArray(entries...), level)
}

// StringList returns array( 'a', 'b' ) on one line.
func StringList(values ...string) *ast.Array {
	items := make([]*ast.ArrayItem, 0, len(values))
	for _, value := range values {
		items = append(items, ast.NewArrayItem(guard.String(value)))
	}
	return ast.NewLongArray(items...)
}

// MergeExtraArgs copies every request param into $target except the
// reserved keys:
//
//	$extra_args = $request->get_params();
//	foreach ( $extra_args as $key => $value ) { ... }
func MergeExtraArgs(target string, reserved []string, level int) []printable.Statement {
	skip := guard.If(
		guard.Call("in_array", guard.Variable("key"), StringList(reserved...), ast.NewTrue()),
		level+1,
		guard.Continue(level+2),
	)
	copyArg := guard.Assign(
		ast.NewArrayDimFetch(guard.Variable(target), guard.Variable("key")),
		guard.Variable("value"),
		level+1,
	)

	return []printable.Statement{
		guard.Assign(guard.Variable("extra_args"), RequestParams(), level),
		guard.Foreach(guard.Variable("extra_args"), guard.Variable("key"), guard.Variable("value"), level, skip, copyArg),
	}
}

// SetArg renders $variable['key'] = value;.
func SetArg(variable, key string, value ast.Expr, level int) printable.Statement {
	return guard.Assign(guard.ArrayDimFetch(variable, key), value, level)
}

// PageCount returns (int) ceil( $total / max( 1, $per_page ) ).
func PageCount(total ast.Expr) *ast.Cast {
	return guard.ScalarCast(ast.CastInt, guard.Call("ceil",
		guard.BinaryOperation(ast.OpDiv, total, guard.Call("max", guard.Int(1), guard.Variable("per_page"))),
	))
}

// ListResponse renders return array( 'items' => $items, 'total' => ..., 'pages' => ..., );.
func ListResponse(total, pages ast.Expr, level int) printable.Statement {
	return guard.Return(ArgsArray(
		Entry{Key: "items", Value: guard.Variable("items")},
		Entry{Key: "total", Value: total},
		Entry{Key: "pages", Value: pages},
	), level)
}

// Cache scopes.
const (
	ScopeList   = "list"
	ScopeGet    = "get"
	ScopeCreate = "create"
	ScopeUpdate = "update"
	ScopeRemove = "remove"
)

// CacheEvent builds the cache event recorded for a compiled route. A nil key
// yields no segments.
func CacheEvent(scope, operation string, key *ir.CacheKey, description string) program.CacheEvent {
	event := program.CacheEvent{Scope: scope, Operation: operation, Segments: []string{}, Description: description}
	if key != nil {
		event.Segments = append(event.Segments, key.Segments...)
	}
	return event
}
