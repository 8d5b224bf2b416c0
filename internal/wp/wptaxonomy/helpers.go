// Package wptaxonomy compiles handlers for resources stored as WordPress
// taxonomy terms.
package wptaxonomy

import (
	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// Helper method names, keyed by the resource's PascalCase name.

func TaxonomyMethod(pascal string) string { return "get" + pascal + "Taxonomy" }
func PrepareTermMethod(pascal string) string { return "prepare" + pascal + "TermResponse" }
func ResolveTermMethod(pascal string) string { return "resolve" + pascal + "Term" }
func ExtractTermArgsMethod(pascal string) string { return "extract" + pascal + "TermArgs" }
func ValidateIdentityMethod(pascal string) string { return "validate" + pascal + "Identity" }

// HelperOptions configures the term helper methods.
type HelperOptions struct {
	Resource   ir.Resource
	PascalName string
	Identity   identity.Resolved
	ErrorCode  guard.ErrorCodeFactory
}

// TaxonomyStorage returns the resource's wp-taxonomy storage or a GEN602
// error.
func TaxonomyStorage(resource ir.Resource) (*ir.Storage, error) {
	if resource.StorageMode() != ir.StorageWPTaxonomy {
		return nil, errors.NewStorageMismatch(resource.Name, ir.StorageWPTaxonomy, resource.StorageMode())
	}
	return resource.Storage, nil
}

// Helpers renders get<Name>Taxonomy, prepare<Name>TermResponse,
// resolve<Name>Term, extract<Name>TermArgs and validate<Name>Identity.
func Helpers(opts HelperOptions) ([]template.MethodTemplate, error) {
	storage, err := TaxonomyStorage(opts.Resource)
	if err != nil {
		return nil, err
	}
	if opts.ErrorCode == nil {
		opts.ErrorCode = guard.NewErrorCodeFactory(opts.Resource.Name)
	}

	builders := []func() (template.MethodTemplate, error){
		func() (template.MethodTemplate, error) { return taxonomyHelper(opts, storage) },
		func() (template.MethodTemplate, error) { return prepareTermHelper(opts, storage) },
		func() (template.MethodTemplate, error) { return resolveTermHelper(opts) },
		func() (template.MethodTemplate, error) { return extractTermArgsHelper(opts) },
		func() (template.MethodTemplate, error) { return validateIdentityHelper(opts) },
	}

	methods := make([]template.MethodTemplate, 0, len(builders))
	for _, build := range builders {
		method, err := build()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}
	return methods, nil
}

func private(name string, params []*ast.Param, returnType ast.TypeNode, body func(*template.MethodBodyBuilder)) (template.MethodTemplate, error) {
	return template.NewMethod(template.MethodOptions{
		Name:       name,
		Flags:      ast.ModifierPrivate,
		Params:     params,
		ReturnType: returnType,
		Level:      1,
		Body:       body,
	})
}

func taxonomyHelper(opts HelperOptions, storage *ir.Storage) (template.MethodTemplate, error) {
	return private(TaxonomyMethod(opts.PascalName), nil, ast.NewIdentifier("string"),
		func(body *template.MethodBodyBuilder) {
			body.Statement(guard.Return(guard.String(storage.Taxonomy), body.Level()))
		})
}

// TermResponse returns the response array for $term.
func TermResponse(hierarchical bool) *ast.Array {
	field := func(kind ast.CastKind, name string) ast.Expr {
		return guard.ScalarCast(kind, guard.PropertyFetch("term", name))
	}
	return query.ArgsArray(
		query.Entry{Key: "id", Value: field(ast.CastInt, "term_id")},
		query.Entry{Key: "slug", Value: field(ast.CastString, "slug")},
		query.Entry{Key: "name", Value: field(ast.CastString, "name")},
		query.Entry{Key: "taxonomy", Value: field(ast.CastString, "taxonomy")},
		query.Entry{Key: "hierarchical", Value: ast.NewBool(hierarchical)},
		query.Entry{Key: "description", Value: field(ast.CastString, "description")},
		query.Entry{Key: "parent", Value: field(ast.CastInt, "parent")},
		query.Entry{Key: "count", Value: field(ast.CastInt, "count")},
	)
}

func prepareTermHelper(opts HelperOptions, storage *ir.Storage) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("term"), ast.NewName("WP_Term"))}
	return private(PrepareTermMethod(opts.PascalName), params, ast.NewIdentifier("array"),
		func(body *template.MethodBodyBuilder) {
			body.Statement(guard.Return(TermResponse(storage.Hierarchical), body.Level()))
		})
}

// resolveTermHelper looks terms up by id when the identity is an int, and
// by slug then name when it is a string.
func resolveTermHelper(opts HelperOptions) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("identity"), nil)}
	returnType := ast.NewNullableType(ast.NewName("WP_Term"))

	return private(ResolveTermMethod(opts.PascalName), params, returnType,
		func(body *template.MethodBodyBuilder) {
			level := body.Level()
			identity := guard.Variable("identity")
			taxonomy := guard.Variable("taxonomy")
			term := guard.Variable("term")
			candidate := guard.Variable("candidate")
			isTerm := guard.Instanceof(term, "WP_Term")

			body.Statement(guard.Assign(taxonomy, guard.This(TaxonomyMethod(opts.PascalName)), level))
			body.Statement(guard.If(guard.Call("is_int", identity), level,
				guard.Assign(term, guard.Call("get_term", identity, taxonomy), level+1),
				guard.If(isTerm, level+1, guard.Return(term, level+2)),
			))
			body.Statement(guard.If(guard.Call("is_string", identity), level,
				guard.Assign(candidate, guard.Call("trim", guard.Call("strval", identity)), level+1),
				guard.If(guard.BinaryOperation(ast.OpNotIdentical, guard.String(""), candidate), level+1,
					guard.Assign(term, guard.Call("get_term_by", guard.String("slug"), candidate, taxonomy), level+2),
					guard.If(isTerm, level+2, guard.Return(term, level+3)),
					guard.Assign(term, guard.Call("get_term_by", guard.String("name"), candidate, taxonomy), level+2),
					guard.If(isTerm, level+2, guard.Return(term, level+3)),
				),
			))
			body.Statement(guard.Return(ast.NewNull(), level))
		})
}

// extractTermArgsHelper collects description, slug and parent from the
// request for wp_insert_term and wp_update_term.
func extractTermArgsHelper(opts HelperOptions) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("request"), ast.NewName("WP_REST_Request"))}

	return private(ExtractTermArgsMethod(opts.PascalName), params, ast.NewIdentifier("array"),
		func(body *template.MethodBodyBuilder) {
			level := body.Level()
			description := guard.Variable("description")
			slug := guard.Variable("slug")
			parent := guard.Variable("parent")

			body.Statement(guard.Assign(guard.Variable("args"), ast.NewLongArray(), level))
			body.Statement(query.ParamAssignment("description", "description", level))
			body.Statement(guard.If(guard.Call("is_string", description), level,
				query.SetArg("args", "description", description, level+1),
			))
			body.Statement(query.ParamAssignment("slug", "slug", level))
			body.Statement(guard.If(guard.NonBlankString(slug), level,
				query.SetArg("args", "slug", guard.Call("sanitize_title", slug), level+1),
			))
			body.Statement(query.ParamAssignment("parent", "parent", level))
			body.Statement(guard.If(guard.BinaryOperation(ast.OpNotIdentical, ast.NewNull(), parent), level,
				query.SetArg("args", "parent", guard.Call("max", guard.Int(0), guard.ScalarCast(ast.CastInt, parent)), level+1),
			))
			body.Statement(guard.Return(guard.Variable("args"), level))
		})
}

// validateIdentityHelper returns the normalised identity or a 400 WP_Error.
func validateIdentityHelper(opts HelperOptions) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("value"), nil)}

	return private(ValidateIdentityMethod(opts.PascalName), params, nil,
		func(body *template.MethodBodyBuilder) {
			level := body.Level()
			value := guard.Variable("value")
			missing := func() printable.Statement {
				return guard.WpErrorReturn(guard.WpError{
					Code:    opts.ErrorCode("missing_identifier"),
					Message: "Missing identifier for " + opts.PascalName + ".",
					Status:  400,
				}, level+1)
			}
			invalid := func() printable.Statement {
				return guard.WpErrorReturn(guard.WpError{
					Code:    opts.ErrorCode("invalid_identifier"),
					Message: "Invalid identifier for " + opts.PascalName + ".",
					Status:  400,
				}, level+1)
			}
			blank := guard.BinaryOperation(ast.OpIdentical, guard.String(""), guard.Call("trim", value))

			body.Statement(guard.If(guard.IsNull(value), level, missing()))

			if !opts.Identity.IsNumber() {
				body.Statement(guard.If(
					guard.BinaryOperation(ast.OpBooleanOr, guard.BooleanNot(guard.Call("is_string", value)), blank),
					level,
					missing(),
				))
				body.Statement(guard.Return(guard.Call("trim", guard.ScalarCast(ast.CastString, value)), level))
				return
			}

			body.Statement(guard.If(
				guard.BinaryOperation(ast.OpBooleanAnd, guard.Call("is_string", value), blank),
				level,
				missing(),
			))
			body.Statement(guard.If(guard.BooleanNot(guard.Call("is_numeric", value)), level, invalid()))
			body.Statement(guard.Assign(value, guard.ScalarCast(ast.CastInt, value), level))
			body.Statement(guard.If(guard.BinaryOperation(ast.OpSmallerOrEqual, value, guard.Int(0)), level, invalid()))
			body.Statement(guard.Return(value, level))
		})
}
