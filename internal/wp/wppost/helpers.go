// Package wppost compiles handlers for resources stored as a WordPress post
// type: the list and get route bodies, the list query builders, and the
// private helper methods every post-backed controller carries.
package wppost

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/mutation"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// DefaultStatus is used when the storage declares no statuses.
const DefaultStatus = "publish"

// PostType returns the storage post type, falling back to the resource name.
func PostType(resource ir.Resource) string {
	if resource.Storage != nil && resource.Storage.PostType != "" {
		return resource.Storage.PostType
	}
	return resource.Name
}

func defaultStatus(storage *ir.Storage) string {
	if len(storage.Statuses) > 0 {
		return storage.Statuses[0]
	}
	return DefaultStatus
}

// Helpers renders the private methods used by the post route bodies, in the
// order they appear in the controller.
func Helpers(opts mutation.HelperOptions) ([]template.MethodTemplate, error) {
	storage, err := mutation.PostStorage(opts.Resource)
	if err != nil {
		return nil, err
	}

	builders := []func() (template.MethodTemplate, error){
		func() (template.MethodTemplate, error) { return postTypeHelper(opts) },
		func() (template.MethodTemplate, error) { return statusesHelper(opts, storage) },
		func() (template.MethodTemplate, error) { return defaultStatusHelper(opts, storage) },
		func() (template.MethodTemplate, error) { return normaliseStatusHelper(opts) },
		func() (template.MethodTemplate, error) { return resolvePostHelper(opts) },
		func() (template.MethodTemplate, error) { return mutation.PrepareResponseHelper(opts) },
		func() (template.MethodTemplate, error) { return mutation.SyncMetaHelper(opts) },
		func() (template.MethodTemplate, error) { return mutation.SyncTaxonomiesHelper(opts) },
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

func postTypeHelper(opts mutation.HelperOptions) (template.MethodTemplate, error) {
	return private(mutation.PostTypeMethod(opts.PascalName), nil, ast.NewIdentifier("string"),
		func(body *template.MethodBodyBuilder) {
			body.Statement(guard.Return(guard.String(PostType(opts.Resource)), body.Level()))
		})
}

func statusesHelper(opts mutation.HelperOptions, storage *ir.Storage) (template.MethodTemplate, error) {
	return private(mutation.StatusesMethod(opts.PascalName), nil, ast.NewIdentifier("array"),
		func(body *template.MethodBodyBuilder) {
			body.Statement(guard.Return(query.StringList(storage.Statuses...), body.Level()))
		})
}

func defaultStatusHelper(opts mutation.HelperOptions, storage *ir.Storage) (template.MethodTemplate, error) {
	return private(mutation.DefaultStatusMethod(opts.PascalName), nil, ast.NewIdentifier("string"),
		func(body *template.MethodBodyBuilder) {
			body.Statement(guard.Return(guard.String(defaultStatus(storage)), body.Level()))
		})
}

// normaliseStatusHelper lowercases and trims the requested status and falls
// back to the default status when it is blank or not allowed.
func normaliseStatusHelper(opts mutation.HelperOptions) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("status"), nil)}

	return private(mutation.NormaliseStatusMethod(opts.PascalName), params, ast.NewIdentifier("string"),
		func(body *template.MethodBodyBuilder) {
			level := body.Level()
			status := guard.Variable("status")
			allowed := guard.Variable("allowed")
			fallback := guard.This(mutation.DefaultStatusMethod(opts.PascalName))

			body.Statement(guard.If(guard.BlankString(status), level, guard.Return(fallback, level+1)))
			body.Statement(guard.Assign(status, guard.Call("strtolower", guard.Call("trim", status)), level))
			body.Statement(guard.Assign(allowed, guard.This(mutation.StatusesMethod(opts.PascalName)), level))
			body.Statement(guard.If(ast.NewEmpty(allowed), level, guard.Return(status, level+1)))
			body.Statement(guard.If(guard.Call("in_array", status, allowed, ast.NewTrue()), level,
				guard.Return(status, level+1),
			))
			body.Statement(guard.Return(fallback, level))
		})
}

// resolvePostHelper looks the post up by id for numeric identities, then by
// path, by name across the allowed statuses, and by uuid meta when the
// identity param is uuid.
func resolvePostHelper(opts mutation.HelperOptions) (template.MethodTemplate, error) {
	params := []*ast.Param{ast.NewParam(guard.Variable("identity"), nil)}
	returnType := ast.NewNullableType(ast.NewName("WP_Post"))

	return private(mutation.ResolvePostMethod(opts.PascalName), params, returnType,
		func(body *template.MethodBodyBuilder) {
			level := body.Level()
			identity := guard.Variable("identity")
			post := guard.Variable("post")
			postType := guard.Variable("post_type")
			candidate := guard.Variable("candidate")
			results := guard.Variable("results")
			statuses := guard.Variable("statuses")
			isPost := guard.Instanceof(post, "WP_Post")

			body.Statement(guard.Assign(postType, guard.This(mutation.PostTypeMethod(opts.PascalName)), level))

			if opts.Identity.IsNumber() {
				body.Statement(guard.If(guard.Call("is_numeric", identity), level,
					guard.Assign(post, guard.Call("get_post", guard.ScalarCast(ast.CastInt, identity)), level+1),
					guard.If(
						guard.BinaryOperation(ast.OpBooleanAnd,
							isPost,
							guard.BinaryOperation(ast.OpIdentical, guard.PropertyFetch("post", "post_type"), postType),
						),
						level+1,
						guard.Return(post, level+2),
					),
				))
			}

			inner := level + 2
			lookups := []printable.Statement{
				guard.Assign(post, guard.Call("get_page_by_path", candidate, ast.NewConstFetch("OBJECT"), postType), inner),
				guard.If(isPost, inner, guard.Return(post, inner+1)),
				guard.Assign(statuses, guard.This(mutation.StatusesMethod(opts.PascalName)), inner),
				guard.If(ast.NewEmpty(statuses), inner, guard.Assign(statuses, guard.String("any"), inner+1)),
				guard.Assign(results, guard.MultilineCall("get_posts", query.ArgsArray(
					query.Entry{Key: "name", Value: candidate},
					query.Entry{Key: "post_type", Value: postType},
					query.Entry{Key: "post_status", Value: statuses},
					query.Entry{Key: "posts_per_page", Value: guard.Int(1)},
				)), inner),
				guard.If(guard.NotEmpty(results), inner,
					guard.Assign(post, ast.NewArrayDimFetch(results, guard.Int(0)), inner+1),
					guard.If(guard.NotInstanceof(post, "WP_Post"), inner+1,
						guard.Assign(post, guard.Call("get_post", post), inner+2),
					),
					guard.If(isPost, inner+1, guard.Return(post, inner+2)),
				),
			}
			if opts.Identity.Param == "uuid" {
				lookups = append(lookups,
					guard.Assign(results, guard.MultilineCall("get_posts", query.ArgsArray(
						query.Entry{Key: "post_type", Value: postType},
						query.Entry{Key: "post_status", Value: guard.String("any")},
						query.Entry{Key: "meta_key", Value: guard.String("uuid")},
						query.Entry{Key: "meta_value", Value: candidate},
						query.Entry{Key: "posts_per_page", Value: guard.Int(1)},
					)), inner),
					guard.If(guard.NotEmpty(results), inner,
						guard.Assign(post, guard.Call("get_post", ast.NewArrayDimFetch(results, guard.Int(0))), inner+1),
						guard.If(isPost, inner+1, guard.Return(post, inner+2)),
					),
				)
			}

			body.Statement(guard.If(guard.Call("is_string", identity), level,
				guard.Assign(candidate, guard.Call("trim", guard.ScalarCast(ast.CastString, identity)), level+1),
				guard.If(guard.BinaryOperation(ast.OpNotIdentical, guard.String(""), candidate), level+1, lookups...),
			))
			body.Statement(guard.Return(ast.NewNull(), level))
		})
}
