package wppost

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/mutation"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// queryArgKeys are the WP_Query args owned by the list handler. Request
// params with these names are never forwarded.
var queryArgKeys = []string{"page", "per_page", "post_type", "post_status", "fields", "paged", "posts_per_page"}

// ReservedKeys returns the request params the list handler consumes itself.
func ReservedKeys(storage *ir.Storage) []string {
	keys := append([]string(nil), queryArgKeys...)
	keys = append(keys, storage.MetaKeys()...)
	return append(keys, storage.TaxonomyKeys()...)
}

// ListRoute compiles the paged WP_Query list handler.
func ListRoute(opts mutation.RouteOptions) bool {
	storage, err := mutation.PostStorage(opts.Resource)
	if err != nil {
		return false
	}
	body := opts.Body
	level := body.Level()

	body.Statement(guard.Assign(guard.Variable("post_type"), guard.This(mutation.PostTypeMethod(opts.PascalName)), level))
	body.Statements(query.PerPage(level)...)
	body.Statements(query.Page(level)...)
	body.Blank()

	status := ast.Expr(guard.String("any"))
	if len(storage.Statuses) > 0 {
		body.Statement(guard.Assign(guard.Variable("statuses"), guard.This(mutation.StatusesMethod(opts.PascalName)), level))
		status = guard.Variable("statuses")
	}
	body.Statement(query.ArgsAssignment("query_args", level,
		query.Entry{Key: "post_type", Value: guard.Variable("post_type")},
		query.Entry{Key: "post_status", Value: status},
		query.Entry{Key: "fields", Value: guard.String("ids")},
		query.Entry{Key: "paged", Value: guard.Variable("page")},
		query.Entry{Key: "posts_per_page", Value: guard.Variable("per_page")},
	))
	body.Blank()

	body.Statements(query.MergeExtraArgs("query_args", ReservedKeys(storage), level)...)
	body.Blank()

	if meta := MetaQuery(storage, level); len(meta) > 0 {
		body.Statements(meta...)
		body.Blank()
	}
	if tax := TaxQuery(storage, level); len(tax) > 0 {
		body.Statements(tax...)
		body.Blank()
	}

	wpQuery := guard.Variable("query")
	body.Statement(guard.Assign(wpQuery, ast.NewNew(ast.NewName("WP_Query")), level))
	body.Statement(guard.Assign(guard.Variable("results"),
		ast.NewMethodCall(wpQuery, "query", ast.NewArg(guard.Variable("query_args"))), level))
	body.Statement(guard.ReturnIfWpError("results", level))
	body.Statement(guard.Assign(guard.Variable("items"), ast.NewLongArray(), level))
	body.Blank()

	post := guard.Variable("post")
	body.Statement(guard.Foreach(guard.Variable("results"), nil, guard.Variable("post_id"), level,
		guard.Assign(post, guard.Call("get_post", guard.Variable("post_id")), level+1),
		guard.If(guard.NotInstanceof(post, "WP_Post"), level+1, guard.Continue(level+2)),
		printable.Blank(),
		guard.Assign(
			ast.NewArrayDimFetch(guard.Variable("items"), nil),
			guard.This(opts.Contract.PrepareResponseMethod(opts.PascalName), post, guard.Variable("request")),
			level+1,
		),
	))
	body.Blank()

	total := guard.Variable("total")
	pages := guard.Variable("pages")
	body.Statement(guard.Assign(total, guard.ScalarCast(ast.CastInt, ast.NewPropertyFetch(wpQuery, "found_posts")), level))
	body.Statement(guard.Assign(pages, query.PageCount(total), level))
	body.Blank()
	body.Statement(query.ListResponse(total, pages, level))

	opts.Record(query.CacheEvent(query.ScopeList, "read", &opts.Resource.CacheKeys.List, "List posts query"))
	return true
}

// GetRoute compiles the single post handler.
func GetRoute(opts mutation.RouteOptions) bool {
	if _, err := mutation.PostStorage(opts.Resource); err != nil {
		return false
	}
	level := opts.Body.Level()

	mutation.IdentityPrelude(opts)
	mutation.ResolvePost(opts)
	opts.Body.Statement(guard.Return(
		guard.This(opts.Contract.PrepareResponseMethod(opts.PascalName), guard.Variable("post"), guard.Variable("request")),
		level,
	))

	opts.Record(query.CacheEvent(query.ScopeGet, "read", &opts.Resource.CacheKeys.Get, "Get post"))
	return true
}

// MetaQuery renders the $meta_query filters built from meta request params
// and merges them into $query_args. Multi-value meta matches with IN, single
// values with =.
func MetaQuery(storage *ir.Storage, level int) []printable.Statement {
	keys := storage.MetaKeys()
	if len(keys) == 0 {
		return nil
	}

	metaQuery := guard.Variable("meta_query")
	out := []printable.Statement{guard.Assign(metaQuery, ast.NewLongArray(), level)}

	for _, key := range keys {
		name := mutation.MetaVariable(key)
		v := guard.Variable(name)
		push := func(compare string, level int) printable.Statement {
			return guard.Assign(ast.NewArrayDimFetch(metaQuery, nil), query.ArgsArray(
				query.Entry{Key: "key", Value: guard.String(key)},
				query.Entry{Key: "compare", Value: guard.String(compare)},
				query.Entry{Key: "value", Value: v},
			), level)
		}

		var branch []printable.Statement
		if storage.Meta[key].IsSingle() {
			branch = []printable.Statement{
				guard.Assign(v, ast.NewTernary(
					guard.Call("is_scalar", v),
					guard.Call("trim", guard.ScalarCast(ast.CastString, v)),
					ast.NewNull(),
				), level+1),
				guard.If(
					guard.BinaryOperation(ast.OpBooleanAnd,
						guard.NotNull(v),
						guard.BinaryOperation(ast.OpNotIdentical, v, guard.String("")),
					),
					level+1,
					push("=", level+2),
				),
			}
		} else {
			branch = []printable.Statement{
				guard.EnsureArray(name, level+1),
				guard.Assign(v, guard.Call("array_values", ast.NewCast(ast.CastArray, v)), level+1),
				guard.Assign(v, guard.Call("array_filter",
					guard.Call("array_map", guard.String("trim"), guard.Call("array_map", guard.String("strval"), v)),
					guard.String("strlen"),
				), level+1),
				guard.If(guard.NotEmpty(v), level+1, push("IN", level+2)),
			}
		}

		out = append(out,
			query.ParamAssignment(name, key, level),
			guard.If(guard.NotNull(v), level, branch...),
		)
	}

	return append(out, guard.If(guard.NotEmpty(metaQuery), level,
		query.SetArg("query_args", "meta_query", metaQuery, level+1),
	))
}

// TaxQuery renders the $tax_query filters built from taxonomy request params
// and merges them into $query_args. Terms are matched by term_id.
func TaxQuery(storage *ir.Storage, level int) []printable.Statement {
	keys := storage.TaxonomyKeys()
	if len(keys) == 0 {
		return nil
	}

	taxQuery := guard.Variable("tax_query")
	out := []printable.Statement{guard.Assign(taxQuery, ast.NewLongArray(), level)}

	for _, key := range keys {
		name := mutation.TermsVariable(key)
		v := guard.Variable(name)

		out = append(out,
			query.ParamAssignment(name, key, level),
			guard.If(guard.NotNull(v), level,
				guard.EnsureArray(name, level+1),
				guard.Assign(v, mutation.IntTermIDs(v, true), level+1),
				guard.If(guard.NotEmpty(v), level+1,
					guard.Assign(ast.NewArrayDimFetch(taxQuery, nil), query.ArgsArray(
						query.Entry{Key: "taxonomy", Value: guard.String(storage.Taxonomies[key].Taxonomy)},
						query.Entry{Key: "field", Value: guard.String("term_id")},
						query.Entry{Key: "terms", Value: v},
					), level+2),
				),
			),
		)
	}

	return append(out, guard.If(guard.NotEmpty(taxQuery), level,
		query.SetArg("query_args", "tax_query", taxQuery, level+1),
	))
}
