package mutation

import (
	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/util/strings"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// HelperOptions configures the private helper methods. A zero Contract
// means WPPostContract.
type HelperOptions struct {
	Resource   ir.Resource
	PascalName string
	Identity   identity.Resolved
	Contract   Contract
}

func (o HelperOptions) contract() Contract {
	if o.Contract.Helpers == (HelperNames{}) {
		return WPPostContract
	}
	return o.Contract
}

// PostStorage returns the resource's wp-post storage or a GEN602 error.
func PostStorage(resource ir.Resource) (*ir.Storage, error) {
	if resource.StorageMode() != ir.StorageWPPost {
		return nil, errors.NewStorageMismatch(resource.Name, ir.StorageWPPost, resource.StorageMode())
	}
	return resource.Storage, nil
}

// MetaVariable names the local holding a meta value: <snake key>Meta.
func MetaVariable(key string) string {
	return strings.ToSnakeCase(key) + "Meta"
}

// TermsVariable names the local holding taxonomy term ids: <snake key>Terms.
func TermsVariable(key string) string {
	return strings.ToSnakeCase(key) + "Terms"
}

func postIDAndRequestParams() []*ast.Param {
	return []*ast.Param{
		ast.NewParam(guard.Variable("post_id"), ast.NewIdentifier("int")),
		ast.NewParam(guard.Variable("request"), ast.NewName("WP_REST_Request")),
	}
}

// SyncMetaHelper renders sync<Name>Meta( int $post_id, WP_REST_Request $request ): void.
func SyncMetaHelper(opts HelperOptions) (template.MethodTemplate, error) {
	storage, err := PostStorage(opts.Resource)
	if err != nil {
		return template.MethodTemplate{}, err
	}

	return template.NewMethod(template.MethodOptions{
		Name:       opts.contract().SyncMetaMethod(opts.PascalName),
		Flags:      ast.ModifierPrivate,
		Params:     postIDAndRequestParams(),
		ReturnType: ast.NewIdentifier("void"),
		Level:      1,
		Body: func(body *template.MethodBodyBuilder) {
			level := body.Level()
			keys := storage.MetaKeys()
			if len(keys) == 0 {
				body.Statement(printable.Stmt(ast.NewUnset(guard.Variable("post_id"), guard.Variable("request")), level))
				body.Statement(guard.Return(nil, level))
				return
			}

			for _, key := range keys {
				descriptor := storage.Meta[key]
				name := MetaVariable(key)
				value := guard.Variable(name)

				inner := metaSanitizer(name, descriptor, level+1)
				if descriptor.IsSingle() {
					inner = append(inner, guard.Expression(
						guard.Call("update_post_meta", guard.Variable("post_id"), guard.String(key), value),
						level+1,
					))
				} else {
					inner = append(inner,
						guard.Expression(guard.Call("delete_post_meta", guard.Variable("post_id"), guard.String(key)), level+1),
						guard.Foreach(ast.NewCast(ast.CastArray, value), nil, guard.Variable("value"), level+1,
							guard.Expression(guard.Call("add_post_meta", guard.Variable("post_id"), guard.String(key), guard.Variable("value")), level+2),
						),
					)
				}

				body.Statement(query.ParamAssignment(name, key, level))
				body.Statement(guard.If(guard.NotNull(value), level, inner...))
			}
		},
	})
}

// SyncTaxonomiesHelper renders sync<Name>Taxonomies( int $post_id, WP_REST_Request $request ).
// It returns true or the first WP_Error from wp_set_object_terms.
func SyncTaxonomiesHelper(opts HelperOptions) (template.MethodTemplate, error) {
	storage, err := PostStorage(opts.Resource)
	if err != nil {
		return template.MethodTemplate{}, err
	}

	return template.NewMethod(template.MethodOptions{
		Name:   opts.contract().SyncTaxonomiesMethod(opts.PascalName),
		Flags:  ast.ModifierPrivate,
		Params: postIDAndRequestParams(),
		Level:  1,
		Body: func(body *template.MethodBodyBuilder) {
			level := body.Level()
			keys := storage.TaxonomyKeys()
			if len(keys) == 0 {
				body.Statement(printable.Stmt(ast.NewUnset(guard.Variable("post_id"), guard.Variable("request")), level))
				body.Statement(guard.Return(ast.NewTrue(), level))
				return
			}

			result := guard.Variable("result")
			body.Statement(guard.Assign(result, ast.NewTrue(), level))

			for _, key := range keys {
				name := TermsVariable(key)
				terms := guard.Variable(name)

				body.Statement(query.ParamAssignment(name, key, level))
				body.Statement(guard.If(guard.NotNull(terms), level,
					guard.EnsureArray(name, level+1),
					guard.Assign(terms, IntTermIDs(terms, true), level+1),
					guard.Assign(result, guard.MultilineCall("wp_set_object_terms",
						guard.Variable("post_id"),
						terms,
						guard.String(storage.Taxonomies[key].Taxonomy),
						ast.NewFalse(),
					), level+1),
					guard.ReturnIfWpError("result", level+1),
				))
			}

			body.Statement(guard.Return(result, level))
		},
	})
}

// PrepareResponseHelper renders prepare<Name>Response( WP_Post $post, WP_REST_Request $request ): array.
func PrepareResponseHelper(opts HelperOptions) (template.MethodTemplate, error) {
	storage, err := PostStorage(opts.Resource)
	if err != nil {
		return template.MethodTemplate{}, err
	}

	return template.NewMethod(template.MethodOptions{
		Name:  opts.contract().PrepareResponseMethod(opts.PascalName),
		Flags: ast.ModifierPrivate,
		Params: []*ast.Param{
			ast.NewParam(guard.Variable("post"), ast.NewName("WP_Post")),
			ast.NewParam(guard.Variable("request"), ast.NewName("WP_REST_Request")),
		},
		ReturnType: ast.NewIdentifier("array"),
		Level:      1,
		Body: func(body *template.MethodBodyBuilder) {
			level := body.Level()
			postField := func(kind ast.CastKind, field string) ast.Expr {
				return guard.ScalarCast(kind, guard.PropertyFetch("post", field))
			}

			entries := []query.Entry{{Key: "id", Value: postField(ast.CastInt, "ID")}}
			if opts.Identity.Param == "slug" {
				entries = append(entries, query.Entry{Key: "slug", Value: postField(ast.CastString, "post_name")})
			}
			entries = append(entries, query.Entry{Key: "status", Value: postField(ast.CastString, "post_status")})
			body.Statement(query.ArgsAssignment("data", level, entries...))

			for _, field := range supportedFields {
				if storage.HasSupport(field.support) {
					body.Statement(query.SetArg("data", field.param, postField(ast.CastString, field.column), level))
				}
			}

			for _, key := range storage.MetaKeys() {
				descriptor := storage.Meta[key]
				name := MetaVariable(key)
				body.Statement(guard.Assign(guard.Variable(name), guard.Call("get_post_meta",
					guard.PropertyFetch("post", "ID"),
					guard.String(key),
					ast.NewBool(descriptor.IsSingle()),
				), level))
				body.Statements(metaSanitizer(name, descriptor, level)...)
				body.Statement(query.SetArg("data", key, guard.Variable(name), level))
			}

			for _, key := range storage.TaxonomyKeys() {
				name := TermsVariable(key)
				terms := guard.Variable(name)
				body.Statement(guard.Assign(terms, guard.Call("wp_get_object_terms",
					guard.PropertyFetch("post", "ID"),
					guard.String(storage.Taxonomies[key].Taxonomy),
					ast.NewLongArray(ast.NewKeyedArrayItem(guard.String("fields"), guard.String("ids"))),
				), level))
				body.Statement(guard.If(guard.Call("is_wp_error", terms), level,
					guard.Assign(terms, ast.NewLongArray(), level+1),
				))
				body.Statement(guard.Assign(terms, IntTermIDs(terms, false), level))
				body.Statement(query.SetArg("data", key, terms, level))
			}

			body.Statement(guard.Return(guard.Variable("data"), level))
		},
	})
}

// supportedFields maps post type supports onto request params and post
// columns.
var supportedFields = []struct {
	support string
	param   string
	column  string
}{
	{support: "title", param: "title", column: "post_title"},
	{support: "editor", param: "content", column: "post_content"},
	{support: "excerpt", param: "excerpt", column: "post_excerpt"},
}

// IntTermIDs returns array_map( 'intval', (array) $v ), wrapped in
// array_filter when filter is set.
func IntTermIDs(v ast.Expr, filter bool) ast.Expr {
	mapped := guard.Call("array_map", guard.String("intval"), ast.NewCast(ast.CastArray, v))
	if !filter {
		return mapped
	}
	return guard.Call("array_filter", mapped)
}

// metaSanitizer coerces the meta local to its declared type. Multi-value
// keys are normalised to a list and sanitised element by element.
func metaSanitizer(name string, descriptor ir.MetaDescriptor, level int) []printable.Statement {
	if descriptor.IsSingle() || descriptor.Type == "array" {
		return []printable.Statement{sanitizeValue(name, descriptor.Type, level)}
	}

	v := guard.Variable(name)
	return []printable.Statement{
		guard.EnsureArray(name, level),
		guard.Assign(v, guard.Call("array_values", ast.NewCast(ast.CastArray, v)), level),
		guard.Foreach(v, guard.Variable("meta_index"), guard.Variable("meta_value"), level,
			sanitizeValue("meta_value", descriptor.Type, level+1),
			guard.Assign(ast.NewArrayDimFetch(v, guard.Variable("meta_index")), guard.Variable("meta_value"), level+1),
		),
	}
}

func sanitizeValue(name, typ string, level int) printable.Statement {
	v := guard.Variable(name)

	var value ast.Expr
	switch typ {
	case "integer":
		value = ast.NewTernary(guard.Call("is_numeric", v), guard.ScalarCast(ast.CastInt, v), guard.Int(0))
	case "number":
		value = ast.NewTernary(guard.Call("is_numeric", v), guard.ScalarCast(ast.CastDouble, v), ast.NewFloat(0))
	case "boolean":
		value = guard.Call("rest_sanitize_boolean", v)
	case "array":
		value = guard.Call("array_values", ast.NewCast(ast.CastArray, v))
	case "object":
		value = ast.NewTernary(guard.Call("is_array", v), v, ast.NewLongArray())
	default:
		value = ast.NewTernary(guard.Call("is_string", v), v, guard.ScalarCast(ast.CastString, v))
	}
	return guard.Assign(v, value, level)
}
