// Package identity resolves how a resource instance is addressed and
// renders the guards that validate the identity request param.
package identity

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// Resolved is an identity with defaults applied.
type Resolved struct {
	Type  string
	Param string
}

// Resolve applies defaults: no identity means a numeric id, and an empty
// param defaults to id for numbers and slug for strings.
func Resolve(identity *ir.Identity) Resolved {
	if identity == nil {
		return Resolved{Type: ir.IdentityNumber, Param: "id"}
	}

	resolved := Resolved{Type: identity.Type, Param: identity.Param}
	if resolved.Type != ir.IdentityString {
		resolved.Type = ir.IdentityNumber
	}
	if resolved.Param == "" {
		if resolved.Type == ir.IdentityNumber {
			resolved.Param = "id"
		} else {
			resolved.Param = "slug"
		}
	}
	return resolved
}

// IsNumber reports whether the identity is numeric.
func (r Resolved) IsNumber() bool {
	return r.Type == ir.IdentityNumber
}

// RequestAssignment renders $<param> = $request->get_param( '<param>' );.
func RequestAssignment(r Resolved, level int) printable.Statement {
	return query.ParamAssignment(r.Param, r.Param, level)
}

// ValidationOptions configures ValidationPrintables.
type ValidationOptions struct {
	Identity   Resolved
	PascalName string
	ErrorCode  guard.ErrorCodeFactory
	Level      int
}

// ValidationPrintables renders the guards for the identity variable. Numeric
// identities are null-checked, cast, and rejected when not positive. String
// identities are rejected when blank and then trimmed.
func ValidationPrintables(opts ValidationOptions) []printable.Statement {
	param := guard.Variable(opts.Identity.Param)
	level := opts.Level

	missing := guard.WpErrorReturn(guard.WpError{
		Code:    opts.ErrorCode("missing_identifier"),
		Message: "Missing identifier for " + opts.PascalName + ".",
		Status:  400,
	}, level+1)

	if !opts.Identity.IsNumber() {
		return []printable.Statement{
			guard.If(guard.BlankString(param), level, missing),
			guard.Assign(param, guard.Call("trim", guard.ScalarCast(ast.CastString, param)), level),
		}
	}

	invalid := guard.WpErrorReturn(guard.WpError{
		Code:    opts.ErrorCode("invalid_identifier"),
		Message: "Invalid identifier for " + opts.PascalName + ".",
		Status:  400,
	}, level+1)

	return []printable.Statement{
		guard.If(guard.IsNull(param), level, missing),
		guard.Assign(param, guard.ScalarCast(ast.CastInt, param), level),
		guard.If(guard.BinaryOperation(ast.OpSmallerOrEqual, param, guard.Int(0)), level, invalid),
	}
}
