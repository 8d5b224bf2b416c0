package wptaxonomy

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/mutation"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// reservedKeys are request params the list handler never forwards to
// WP_Term_Query.
var reservedKeys = []string{"page", "per_page", "taxonomy", "hide_empty"}

// RouteOptions configures a term route compiler. Cache may be nil.
type RouteOptions struct {
	Body       *template.MethodBodyBuilder
	Resource   ir.Resource
	Identity   identity.Resolved
	PascalName string
	Cache      mutation.CacheRecorder
}

func (o RouteOptions) record(event program.CacheEvent) {
	if o.Cache != nil {
		o.Cache.RecordCache(event)
	}
}

// ListRoute compiles the paged term list. One WP_Term_Query fetches the page
// and a second, count-only query sizes the collection.
func ListRoute(opts RouteOptions) bool {
	if _, err := TaxonomyStorage(opts.Resource); err != nil {
		return false
	}
	body := opts.Body
	level := body.Level()

	body.Statement(guard.Assign(guard.Variable("taxonomy"), guard.This(TaxonomyMethod(opts.PascalName)), level))
	body.Statements(query.PerPage(level)...)
	body.Blank()
	body.Statements(query.Page(level)...)
	body.Blank()

	body.Statement(query.ArgsAssignment("query_args", level,
		query.Entry{Key: "taxonomy", Value: guard.Variable("taxonomy")},
		query.Entry{Key: "hide_empty", Value: ast.NewFalse()},
	))
	body.Blank()
	body.Statements(query.MergeExtraArgs("query_args", reservedKeys, level)...)
	body.Blank()

	perPage := guard.Variable("per_page")
	body.Statement(query.SetArg("query_args", "number", perPage, level))
	body.Statement(query.SetArg("query_args", "offset", guard.BinaryOperation(ast.OpMul,
		guard.BinaryOperation(ast.OpMinus, guard.Variable("page"), guard.Int(1)),
		perPage,
	), level))
	body.Blank()

	termQuery := guard.Variable("term_query")
	body.Statement(guard.Assign(termQuery, ast.NewNew(ast.NewName("WP_Term_Query")), level))
	body.Statement(guard.Assign(guard.Variable("results"),
		ast.NewMethodCall(termQuery, "query", ast.NewArg(guard.Variable("query_args"))), level))
	body.Statement(guard.ReturnIfWpError("results", level))
	body.Blank()

	term := guard.Variable("term")
	body.Statement(guard.Assign(guard.Variable("items"), ast.NewLongArray(), level))
	body.Statement(guard.Foreach(guard.Variable("results"), nil, term, level,
		guard.If(guard.Instanceof(term, "WP_Term"), level+1,
			guard.Assign(ast.NewArrayDimFetch(guard.Variable("items"), nil),
				guard.This(PrepareTermMethod(opts.PascalName), term), level+2),
		),
	))
	body.Blank()

	countArgs := guard.Variable("count_query_args")
	body.Statement(guard.Assign(countArgs, guard.Variable("query_args"), level))
	body.Statement(query.SetArg("count_query_args", "count", ast.NewTrue(), level))
	body.Statement(query.SetArg("count_query_args", "number", guard.Int(0), level))
	body.Statement(query.SetArg("count_query_args", "offset", guard.Int(0), level))
	body.Blank()

	countQuery := guard.Variable("count_query")
	total := guard.Variable("total")
	pages := guard.Variable("pages")
	body.Statement(guard.Assign(countQuery, ast.NewNew(ast.NewName("WP_Term_Query")), level))
	body.Statement(guard.Assign(total, guard.ScalarCast(ast.CastInt,
		ast.NewMethodCall(countQuery, "query", ast.NewArg(countArgs))), level))
	body.Statement(guard.Assign(pages, query.PageCount(total), level))
	body.Blank()
	body.Statement(query.ListResponse(total, pages, level))

	opts.record(query.CacheEvent(query.ScopeList, "read", &opts.Resource.CacheKeys.List, "List terms query"))
	return true
}

// GetRoute compiles the single term handler.
func GetRoute(opts RouteOptions) bool {
	if _, err := TaxonomyStorage(opts.Resource); err != nil {
		return false
	}
	body := opts.Body
	level := body.Level()
	param := opts.Identity.Param
	term := guard.Variable("term")

	body.Statement(identity.RequestAssignment(opts.Identity, level))
	body.Statement(guard.Assign(guard.Variable(param),
		guard.This(ValidateIdentityMethod(opts.PascalName), guard.Variable(param)), level))
	body.Statement(guard.ReturnIfWpError(param, level))
	body.Blank()

	body.Statement(guard.Assign(term, guard.This(ResolveTermMethod(opts.PascalName), guard.Variable(param)), level))
	body.Statement(guard.If(guard.NotInstanceof(term, "WP_Term"), level,
		guard.WpErrorReturn(guard.WpError{
			Code:    guard.NewErrorCodeFactory(opts.Resource.Name)("not_found"),
			Message: opts.PascalName + " not found.",
			Status:  404,
		}, level+1),
	))
	body.Blank()
	body.Statement(guard.Return(guard.This(PrepareTermMethod(opts.PascalName), term), level))

	opts.record(query.CacheEvent(query.ScopeGet, "read", &opts.Resource.CacheKeys.Get, "Get term"))
	return true
}
