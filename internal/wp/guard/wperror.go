package guard

import (
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/util/strings"
)

// ArrayStyle selects array( ... ) or [ ... ] for the status payload.
type ArrayStyle int

const (
	ArrayLong ArrayStyle = iota
	ArrayShort
)

// WpError describes a generated WP_Error construction.
type WpError struct {
	Code    string
	Message string
	Status  int
	Style   ArrayStyle
}

// Expr returns new WP_Error( 'code', 'message', array( 'status' => N ) ).
func (e WpError) Expr() *ast.New {
	status := []*ast.ArrayItem{ast.NewKeyedArrayItem(String("status"), Int(int64(e.Status)))}

	payload := ast.NewLongArray(status...)
	if e.Style == ArrayShort {
		payload = ast.NewArray(status...)
	}

	return ast.NewNew(ast.NewName("WP_Error"), ast.Args(String(e.Code), String(e.Message), payload)...)
}

// WpErrorReturn renders return new WP_Error( ... ); at level.
func WpErrorReturn(e WpError, level int) printable.Statement {
	return Return(e.Expr(), level)
}

// ErrorCodeFactory namespaces error codes per resource:
// wpk_<snake resource>_<suffix>.
type ErrorCodeFactory func(suffix string) string

// NewErrorCodeFactory returns the factory for resource.
func NewErrorCodeFactory(resource string) ErrorCodeFactory {
	prefix := "wpk_" + strings.ToSnakeCase(resource)
	return func(suffix string) string {
		return prefix + "_" + suffix
	}
}
