package mutation

import (
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// CacheRecorder receives the cache events of compiled routes.
type CacheRecorder interface {
	RecordCache(event program.CacheEvent)
}

// RouteOptions configures a route body compiler. Statements are appended to
// Body at its level. Cache may be nil.
type RouteOptions struct {
	Body       *template.MethodBodyBuilder
	Resource   ir.Resource
	Identity   identity.Resolved
	PascalName string
	Contract   Contract
	Cache      CacheRecorder
}

func (o RouteOptions) macro() MacroOptions {
	return MacroOptions{
		Body:       o.Body,
		Level:      o.Body.Level(),
		Contract:   o.Contract,
		PascalName: o.PascalName,
	}
}

func (o RouteOptions) errorCode() guard.ErrorCodeFactory {
	return guard.NewErrorCodeFactory(o.Resource.Name)
}

// Record forwards event to Cache when one is set.
func (o RouteOptions) Record(event program.CacheEvent) {
	if o.Cache != nil {
		o.Cache.RecordCache(event)
	}
}

// IdentityPrelude reads and validates the identity param.
func IdentityPrelude(opts RouteOptions) {
	level := opts.Body.Level()
	opts.Body.Statement(identity.RequestAssignment(opts.Identity, level))

	validation := identity.ValidationPrintables(identity.ValidationOptions{
		Identity:   opts.Identity,
		PascalName: opts.PascalName,
		ErrorCode:  opts.errorCode(),
		Level:      level,
	})
	opts.Body.Statements(validation...)
	if len(validation) > 0 {
		opts.Body.Blank()
	}
}

// ResolvePost loads $post through resolve<Name>Post and returns a 404 when
// it is not a WP_Post.
func ResolvePost(opts RouteOptions) {
	level := opts.Body.Level()
	opts.Body.Statement(guard.Assign(
		guard.Variable("post"),
		guard.This(ResolvePostMethod(opts.PascalName), guard.Variable(opts.Identity.Param)),
		level,
	))
	opts.Body.Statement(guard.If(guard.NotInstanceof(guard.Variable("post"), "WP_Post"), level,
		guard.WpErrorReturn(guard.WpError{
			Code:    opts.errorCode()("not_found"),
			Message: opts.PascalName + " not found.",
			Status:  404,
		}, level+1),
	))
	opts.Body.Blank()
}

// copySupportedFields copies title, content and excerpt into $post_data
// when the post type supports them, and a non-empty slug into post_name
// when the identity is the slug.
func copySupportedFields(opts RouteOptions, storage *ir.Storage) {
	level := opts.Body.Level()
	for _, field := range supportedFields {
		if !storage.HasSupport(field.support) {
			continue
		}
		value := guard.Variable(field.param)
		opts.Body.Statement(query.ParamAssignment(field.param, field.param, level))
		opts.Body.Statement(guard.If(guard.Call("is_string", value), level,
			query.SetArg("post_data", field.column, value, level+1),
		))
	}

	if opts.Identity.Param == "slug" {
		slug := guard.Variable("slug")
		opts.Body.Statement(query.ParamAssignment("slug", "slug", level))
		opts.Body.Statement(guard.If(guard.NonBlankString(slug), level,
			query.SetArg("post_data", "post_name", guard.Call("sanitize_title", slug), level+1),
		))
	}
}

// failureGuard renders if ( <literal> === $variable ) { return 500 error; }.
func failureGuard(opts RouteOptions, literal ast.Expr, variable, suffix, message string) {
	level := opts.Body.Level()
	opts.Body.Statement(guard.If(
		guard.BinaryOperation(ast.OpIdentical, literal, guard.Variable(variable)),
		level,
		guard.WpErrorReturn(guard.WpError{
			Code:    opts.errorCode()(suffix),
			Message: message,
			Status:  500,
		}, level+1),
	))
}

// CreateRoute compiles the create handler. It reports false when the
// resource is not post-backed.
func CreateRoute(opts RouteOptions) bool {
	storage, err := PostStorage(opts.Resource)
	if err != nil {
		return false
	}
	level := opts.Body.Level()
	macro := opts.macro()

	opts.Body.Statement(guard.Assign(guard.Variable("post_type"), guard.This(PostTypeMethod(opts.PascalName)), level))
	opts.Body.Blank()

	opts.Body.Statement(query.ArgsAssignment("post_data", level,
		query.Entry{Key: "post_type", Value: guard.Variable("post_type")},
	))
	StatusValidation(StatusValidationOptions{
		MacroOptions: macro,
		Target:       ArrayDimExpression("post_data", "post_status"),
	})
	copySupportedFields(opts, storage)
	opts.Body.Blank()

	opts.Body.Statement(guard.Assign(guard.Variable("post_id"),
		guard.Call("wp_insert_post", guard.Variable("post_data"), ast.NewTrue()), level))
	opts.Body.Statement(guard.ReturnIfWpError("post_id", level))
	failureGuard(opts, guard.Int(0), "post_id", "create_failed", "Unable to create "+opts.PascalName+".")
	opts.Body.Blank()

	postID := VariableExpression("post_id")
	SyncMeta(SyncMetaOptions{MacroOptions: macro, PostID: postID})
	SyncTaxonomies(SyncTaxonomiesOptions{MacroOptions: macro, PostID: postID, Result: VariableExpression("taxonomy_result")})
	CachePriming(CachePrimingOptions{
		MacroOptions:   macro,
		PostID:         postID,
		ErrorCode:      opts.errorCode()("load_failed"),
		FailureMessage: "Unable to load created " + opts.PascalName + ".",
	})

	opts.Record(query.CacheEvent(query.ScopeCreate, "write", opts.Resource.CacheKeys.Create, "Create "+opts.PascalName))
	return true
}

// UpdateRoute compiles the update handler. Mutations run against the
// resolved post, not a fresh id.
func UpdateRoute(opts RouteOptions) bool {
	storage, err := PostStorage(opts.Resource)
	if err != nil {
		return false
	}
	level := opts.Body.Level()
	macro := opts.macro()

	IdentityPrelude(opts)
	ResolvePost(opts)

	opts.Body.Statement(query.ArgsAssignment("post_data", level,
		query.Entry{Key: "ID", Value: guard.PropertyFetch("post", "ID")},
		query.Entry{Key: "post_type", Value: guard.This(PostTypeMethod(opts.PascalName))},
	))
	StatusValidation(StatusValidationOptions{
		MacroOptions:       macro,
		Target:             ArrayDimExpression("post_data", "post_status"),
		GuardWithNullCheck: true,
	})
	copySupportedFields(opts, storage)
	opts.Body.Blank()

	opts.Body.Statement(guard.Assign(guard.Variable("result"),
		guard.Call("wp_update_post", guard.Variable("post_data"), ast.NewTrue()), level))
	opts.Body.Statement(guard.ReturnIfWpError("result", level))
	failureGuard(opts, guard.Int(0), "result", "update_failed", "Unable to update "+opts.PascalName+".")
	opts.Body.Blank()

	postID := PropertyExpression("post", "ID")
	SyncMeta(SyncMetaOptions{MacroOptions: macro, PostID: postID})
	SyncTaxonomies(SyncTaxonomiesOptions{MacroOptions: macro, PostID: postID, Result: VariableExpression("taxonomy_result")})
	CachePriming(CachePrimingOptions{
		MacroOptions:   macro,
		PostID:         postID,
		ErrorCode:      opts.errorCode()("load_failed"),
		FailureMessage: "Unable to load updated " + opts.PascalName + ".",
		PostVariable:   "updated",
	})

	opts.Record(query.CacheEvent(query.ScopeUpdate, "write", opts.Resource.CacheKeys.Update, "Update "+opts.PascalName))
	return true
}

// DeleteRoute compiles the delete handler. The response carries the post as
// it was before deletion.
func DeleteRoute(opts RouteOptions) bool {
	if _, err := PostStorage(opts.Resource); err != nil {
		return false
	}
	level := opts.Body.Level()

	IdentityPrelude(opts)
	ResolvePost(opts)

	opts.Body.Statement(guard.Assign(guard.Variable("previous"),
		guard.This(opts.Contract.PrepareResponseMethod(opts.PascalName), guard.Variable("post"), guard.Variable("request")), level))
	opts.Body.Statement(guard.Assign(guard.Variable("deleted"),
		guard.Call("wp_delete_post", guard.PropertyFetch("post", "ID"), ast.NewTrue()), level))
	failureGuard(opts, ast.NewFalse(), "deleted", "delete_failed", "Unable to delete "+opts.PascalName+".")
	opts.Body.Blank()

	opts.Body.Statement(guard.Return(query.ArgsArray(
		query.Entry{Key: "deleted", Value: ast.NewTrue()},
		query.Entry{Key: "id", Value: guard.ScalarCast(ast.CastInt, guard.PropertyFetch("post", "ID"))},
		query.Entry{Key: "previous", Value: guard.Variable("previous")},
	), level))

	opts.Record(query.CacheEvent(query.ScopeRemove, "write", opts.Resource.CacheKeys.Remove, "Delete "+opts.PascalName))
	return true
}
