package mutation

import (
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/query"
)

// Expression is a macro operand: the node and how it reads in source.
type Expression struct {
	Node    ast.Expr
	Display string
}

func newExpression(node ast.Expr) Expression {
	return Expression{Node: node, Display: printable.Inline(node)}
}

// VariableExpression returns $name.
func VariableExpression(name string) Expression {
	return newExpression(guard.Variable(name))
}

// ArrayDimExpression returns $name['key'].
func ArrayDimExpression(name, key string) Expression {
	return newExpression(guard.ArrayDimFetch(name, key))
}

// PropertyExpression returns $name->property.
func PropertyExpression(name, property string) Expression {
	return newExpression(guard.PropertyFetch(name, property))
}

// MacroOptions are shared by every macro.
type MacroOptions struct {
	Body       *template.MethodBodyBuilder
	Level      int
	Contract   Contract
	PascalName string
}

func (o MacroOptions) tag(key, value string) {
	o.Body.Statement(guard.Comment("@wp-kernel "+key+" "+value, o.Level))
}

// StatusValidationOptions configures StatusValidation.
type StatusValidationOptions struct {
	MacroOptions
	Target             Expression
	GuardWithNullCheck bool
}

// StatusValidation reads the status param and assigns its normalised value
// to Target, inside a null check when requested.
func StatusValidation(opts StatusValidationOptions) {
	opts.tag(opts.Contract.MetadataKeys.ChannelTag, "status-validation")
	opts.tag(opts.Contract.MetadataKeys.StatusValidation, "normalise")

	opts.Body.Statement(query.ParamAssignment("status", "status", opts.Level))

	normalise := guard.This(NormaliseStatusMethod(opts.PascalName), guard.Variable("status"))
	if !opts.GuardWithNullCheck {
		opts.Body.Statement(guard.Assign(opts.Target.Node, normalise, opts.Level))
		return
	}
	opts.Body.Statement(guard.If(
		guard.NotNull(guard.Variable("status")),
		opts.Level,
		guard.Assign(opts.Target.Node, normalise, opts.Level+1),
	))
}

// SyncMetaOptions configures SyncMeta.
type SyncMetaOptions struct {
	MacroOptions
	PostID Expression
}

// SyncMeta calls $this->sync<Name>Meta( <post id>, $request );.
func SyncMeta(opts SyncMetaOptions) {
	opts.tag(opts.Contract.MetadataKeys.ChannelTag, "sync-meta")
	opts.tag(opts.Contract.MetadataKeys.SyncMeta, "update")

	opts.Body.Statement(guard.Expression(
		guard.This(opts.Contract.SyncMetaMethod(opts.PascalName), opts.PostID.Node, guard.Variable("request")),
		opts.Level,
	))
}

// SyncTaxonomiesOptions configures SyncTaxonomies.
type SyncTaxonomiesOptions struct {
	MacroOptions
	PostID Expression
	Result Expression
}

// SyncTaxonomies assigns the taxonomy sync result and returns it when it is
// a WP_Error.
func SyncTaxonomies(opts SyncTaxonomiesOptions) {
	opts.tag(opts.Contract.MetadataKeys.ChannelTag, "sync-taxonomies")
	opts.tag(opts.Contract.MetadataKeys.SyncTaxonomies, "update")

	opts.Body.Statement(guard.Assign(
		opts.Result.Node,
		guard.This(opts.Contract.SyncTaxonomiesMethod(opts.PascalName), opts.PostID.Node, guard.Variable("request")),
		opts.Level,
	))
	opts.Body.Statement(guard.If(
		guard.Call("is_wp_error", opts.Result.Node),
		opts.Level,
		guard.Return(opts.Result.Node, opts.Level+1),
	))
}

// CachePrimingOptions configures CachePriming. PostVariable defaults to
// "post".
type CachePrimingOptions struct {
	MacroOptions
	PostID         Expression
	ErrorCode      string
	FailureMessage string
	PostVariable   string
}

// CachePriming reloads the post, fails with a 500 when it cannot be loaded,
// and returns the prepared response.
func CachePriming(opts CachePrimingOptions) {
	opts.tag(opts.Contract.MetadataKeys.ChannelTag, "cache-priming")
	opts.tag(opts.Contract.MetadataKeys.CachePriming, "prime")
	opts.tag(opts.Contract.MetadataKeys.CacheSegment, "prime")

	name := opts.PostVariable
	if name == "" {
		name = "post"
	}
	post := guard.Variable(name)

	opts.Body.Statement(guard.Assign(post, guard.Call("get_post", opts.PostID.Node), opts.Level))
	opts.Body.Statement(guard.If(
		guard.NotInstanceof(post, "WP_Post"),
		opts.Level,
		guard.WpErrorReturn(guard.WpError{
			Code:    opts.ErrorCode,
			Message: opts.FailureMessage,
			Status:  500,
			Style:   guard.ArrayShort,
		}, opts.Level+1),
	))
	opts.Body.Statement(guard.Return(
		guard.This(opts.Contract.PrepareResponseMethod(opts.PascalName), post, guard.Variable("request")),
		opts.Level,
	))
}
