// Package controller assembles one REST controller class per resource. It
// classifies the resource's routes, dispatches each to the compiler for its
// storage mode and kind, and appends the resulting class to the run's
// channel.
package controller

import (
	"path"
	"sort"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/report"
	casing "github.com/wpkernel/phpgen/internal/util/strings"
	"github.com/wpkernel/phpgen/internal/wp/guard"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/mutation"
	"github.com/wpkernel/phpgen/internal/wp/wppost"
	"github.com/wpkernel/phpgen/internal/wp/wptaxonomy"
)

// EntryKind is the metadata kind of controller entries.
const EntryKind = "resource-controller"

// BaseClass is the class every generated controller extends.
const BaseClass = "BaseController"

// Options configures controller generation.
type Options struct {
	// Namespace overrides the project's PHP namespace root.
	Namespace string
	// OutputDir is the workspace directory controllers are written under.
	OutputDir string
	Reporter  report.Reporter
}

func (o Options) reporter() report.Reporter {
	if o.Reporter == nil {
		return report.NewNop()
	}
	return o.Reporter
}

// ClassName returns the controller class name for a resource.
func ClassName(resource ir.Resource) string {
	return casing.ToPascalCase(resource.Name) + "Controller"
}

// EntryKey returns the channel key of a resource's controller.
func EntryKey(resource ir.Resource) string {
	return EntryKind + "." + resource.Name
}

// BuildAll builds a controller for every resource of project. A failing
// resource does not stop the others; every failure comes back in one
// errors.ErrorList together with the entries that did build.
func BuildAll(ctx *program.Context, project *ir.Project, opts Options) ([]*program.Entry, error) {
	entries := make([]*program.Entry, 0, len(project.Resources))
	var failures errors.ErrorList
	for _, resource := range project.Resources {
		entry, err := Build(ctx, project, resource, opts)
		if err != nil {
			failures = append(failures, resourceError(resource, err))
			continue
		}
		entries = append(entries, entry)
	}
	if len(failures) > 0 {
		return entries, failures
	}
	return entries, nil
}

func resourceError(resource ir.Resource, err error) *errors.GeneratorError {
	genErr, ok := errors.As(err)
	if !ok {
		return errors.NewGenerationFailed(err.Error(), err).WithResource(resource.Name)
	}
	if genErr.Resource == "" {
		genErr.WithResource(resource.Name)
	}
	return genErr
}

// Build appends the controller class of resource to its channel entry. An
// entry that already holds statements is returned unchanged. The entry is
// only written once every method has been built.
func Build(ctx *program.Context, project *ir.Project, resource ir.Resource, opts Options) (entry *program.Entry, err error) {
	defer printable.Catch(&err)

	log := opts.reporter().Child("controller")
	root := opts.Namespace
	if root == "" {
		root = project.Namespace
	}
	className := ClassName(resource)
	resolved := identity.Resolve(resource.Identity)

	entry = ctx.Channel().Open(program.OpenOptions{
		Key:       EntryKey(resource),
		FilePath:  path.Join(opts.OutputDir, "Rest", className+".php"),
		Namespace: root + `\Rest`,
		Metadata: program.Metadata{
			Kind:     EntryKind,
			Name:     resource.Name,
			Resource: resource.Name,
		},
	})
	if len(entry.Statements()) > 0 {
		return entry, nil
	}

	for _, warning := range missingPolicies(resource) {
		log.Warn("Write route missing policy.",
			"resource", resource.Name,
			"method", warning.method,
			"path", warning.path,
		)
	}

	b := &builder{
		resource: resource,
		identity: resolved,
		pascal:   casing.ToPascalCase(resource.Name),
	}
	plans := b.plan()

	methods, err := b.methods(plans)
	if err != nil {
		return nil, err
	}

	entry.AppendDocblock(fileDocblock(project, resource)...)
	for _, use := range imports(root, resource) {
		entry.AddUse(use)
	}

	class := template.NewClass(template.ClassOptions{
		Name:    className,
		Flags:   ast.ModifierFinal,
		Extends: BaseClass,
		Methods: methods,
	})
	program.AppendPrintable(entry, class)

	entry.Metadata.Identity = &program.IdentityMetadata{Type: resolved.Type, Param: resolved.Param}
	for _, plan := range plans {
		entry.Metadata.Routes = append(entry.Metadata.Routes, plan.metadata())
	}
	for _, event := range b.cache {
		entry.RecordCache(event)
	}

	log.Debug("built controller", "resource", resource.Name, "class", className, "routes", len(plans))
	return entry, nil
}

// policyWarning is a write route without a policy.
type policyWarning struct {
	method string
	path   string
}

func missingPolicies(resource ir.Resource) []policyWarning {
	var out []policyWarning
	for _, route := range resource.Routes {
		switch route.NormalisedMethod() {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			continue
		}
		if route.Policy != "" {
			continue
		}
		out = append(out, policyWarning{method: route.NormalisedMethod(), path: route.Path})
	}
	return out
}

// PolicyWarnings returns a CFG504 warning for every write route of
// resource that has no policy.
func PolicyWarnings(resource ir.Resource) errors.ErrorList {
	var list errors.ErrorList
	for _, w := range missingPolicies(resource) {
		list = append(list, errors.NewMissingPolicy(resource.Name, w.method, w.path))
	}
	return list
}

// ProjectWarnings collects the policy warnings of every resource.
func ProjectWarnings(project *ir.Project) errors.ErrorList {
	var list errors.ErrorList
	for _, resource := range project.Resources {
		list = append(list, PolicyWarnings(resource)...)
	}
	return list
}

func fileDocblock(project *ir.Project, resource ir.Resource) []string {
	lines := []string{
		"Source: " + project.Origin + " → resources." + resource.Name,
		"Schema: " + resource.SchemaKey + " (" + resource.SchemaProvenance + ")",
	}
	for _, route := range resource.Routes {
		lines = append(lines, "Route: ["+route.NormalisedMethod()+"] "+route.Path)
	}
	return lines
}

func imports(root string, resource ir.Resource) []string {
	uses := []string{
		root + `\Policy\Policy`,
		"WP_Error",
		"WP_REST_Request",
		"function is_wp_error",
	}
	switch resource.StorageMode() {
	case ir.StorageWPPost:
		uses = append(uses, "WP_Post", "WP_Query")
	case ir.StorageWPTaxonomy:
		uses = append(uses, "WP_Term", "WP_Term_Query")
	}
	return uses
}

// routePlan is a classified route ready for compilation.
type routePlan struct {
	route  ir.Route
	kind   RouteKind
	method string
	tags   map[string]string
	cache  []string
}

func (p routePlan) metadata() program.RouteMetadata {
	return program.RouteMetadata{
		Method:        p.route.NormalisedMethod(),
		Path:          p.route.Path,
		Kind:          string(p.kind),
		CacheSegments: p.cache,
		Tags:          p.tags,
	}
}

// docblock renders the handler docblock. Tags are sorted by key.
func (p routePlan) docblock() []string {
	lines := []string{
		"Handle [" + p.route.NormalisedMethod() + "] " + p.route.Path + ".",
		"@wp-kernel route-kind " + string(p.kind),
	}
	keys := make([]string, 0, len(p.tags))
	for key := range p.tags {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		lines = append(lines, "@wp-kernel "+key+" "+p.tags[key])
	}
	return lines
}

type builder struct {
	resource ir.Resource
	identity identity.Resolved
	pascal   string
	cache    []program.CacheEvent
}

// RecordCache holds the cache events of compiled routes until the class is
// appended to its entry.
func (b *builder) RecordCache(event program.CacheEvent) {
	b.cache = append(b.cache, event)
}

func (b *builder) plan() []routePlan {
	routes := b.resource.Routes
	kinds := ClassifyRoutes(routes, b.identity.Param)
	names := methodNames(routes)

	plans := make([]routePlan, len(routes))
	for i, route := range routes {
		plans[i] = routePlan{
			route:  route,
			kind:   kinds[i],
			method: names[i],
			tags:   b.mutationTags(kinds[i]),
			cache:  b.cacheSegments(kinds[i]),
		}
	}
	return plans
}

// mutationTags tags the write routes of post-backed resources with their
// mutation kind.
func (b *builder) mutationTags(kind RouteKind) map[string]string {
	contract := mutation.WPPostContract
	value := mutationKind(contract, kind)
	if b.resource.StorageMode() != ir.StorageWPPost || value == "" {
		return nil
	}
	return map[string]string{contract.MetadataKeys.ChannelTag: value}
}

// mutationKind maps a write route kind onto the contract's kind names.
func mutationKind(contract mutation.Contract, kind RouteKind) string {
	switch kind {
	case KindCreate:
		return contract.Kinds.Create
	case KindUpdate:
		return contract.Kinds.Update
	case KindRemove:
		return contract.Kinds.Delete
	}
	return ""
}

func (b *builder) cacheSegments(kind RouteKind) []string {
	keys := b.resource.CacheKeys
	var key *ir.CacheKey
	switch kind {
	case KindList:
		key = &keys.List
	case KindGet:
		key = &keys.Get
	case KindCreate:
		key = keys.Create
	case KindUpdate:
		key = keys.Update
	case KindRemove:
		key = keys.Remove
	default:
		return nil
	}
	if key == nil {
		return []string{}
	}
	return append([]string{}, key.Segments...)
}

func (b *builder) methods(plans []routePlan) ([]template.MethodTemplate, error) {
	var methods []template.MethodTemplate

	fixed := []func() (template.MethodTemplate, error){
		b.resourceNameMethod,
		b.schemaKeyMethod,
		b.restArgsMethod,
	}
	for _, build := range fixed {
		method, err := build()
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	for _, plan := range plans {
		method, err := b.routeMethod(plan)
		if err != nil {
			return nil, err
		}
		methods = append(methods, method)
	}

	helpers, err := b.storageHelpers()
	if err != nil {
		return nil, err
	}
	return append(methods, helpers...), nil
}

func public(name string, returnType string, body func(*template.MethodBodyBuilder)) (template.MethodTemplate, error) {
	return template.NewMethod(template.MethodOptions{
		Name:       name,
		Flags:      ast.ModifierPublic,
		ReturnType: ast.NewIdentifier(returnType),
		Level:      1,
		Body:       body,
	})
}

func (b *builder) resourceNameMethod() (template.MethodTemplate, error) {
	return public("get_resource_name", "string", func(body *template.MethodBodyBuilder) {
		body.Statement(guard.Return(guard.String(b.resource.Name), body.Level()))
	})
}

func (b *builder) schemaKeyMethod() (template.MethodTemplate, error) {
	return public("get_schema_key", "string", func(body *template.MethodBodyBuilder) {
		body.Statement(guard.Return(guard.String(b.resource.SchemaKey), body.Level()))
	})
}

func (b *builder) restArgsMethod() (template.MethodTemplate, error) {
	var renderErr error
	method, err := public("get_rest_args", "array", func(body *template.MethodBodyBuilder) {
		statement, err := printable.RenderReturn(RestArgs(b.resource), body.Level())
		if err != nil {
			renderErr = err
			return
		}
		body.Statement(statement)
	})
	if renderErr != nil {
		return template.MethodTemplate{}, renderErr
	}
	return method, err
}

// RestArgs describes the resource's query params for register_rest_route,
// keyed by param name in sorted order.
func RestArgs(resource ir.Resource) *printable.OrderedMap {
	args := printable.NewOrderedMap()
	for _, name := range resource.QueryParamNames() {
		param := resource.QueryParams[name]
		arg := printable.NewOrderedMap().
			Set("type", param.Type).
			Set("required", !param.Optional)
		if param.Description != "" {
			arg.Set("description", param.Description)
		}
		if len(param.Enum) > 0 {
			arg.Set("enum", param.Enum)
		}
		args.Set(name, arg)
	}
	return args
}

type routeCompiler func(b *builder, body *template.MethodBodyBuilder) bool

func postRoute(compile func(mutation.RouteOptions) bool) routeCompiler {
	return func(b *builder, body *template.MethodBodyBuilder) bool {
		return compile(mutation.RouteOptions{
			Body:       body,
			Resource:   b.resource,
			Identity:   b.identity,
			PascalName: b.pascal,
			Contract:   mutation.WPPostContract,
			Cache:      b,
		})
	}
}

// postMutation compiles a write route with the compiler the contract
// registers for its mutation kind.
func postMutation(kind RouteKind) routeCompiler {
	return func(b *builder, body *template.MethodBodyBuilder) bool {
		compile := mutation.WPPostContract.Route(mutationKind(mutation.WPPostContract, kind))
		if compile == nil {
			return false
		}
		return postRoute(compile)(b, body)
	}
}

func termRoute(compile func(wptaxonomy.RouteOptions) bool) routeCompiler {
	return func(b *builder, body *template.MethodBodyBuilder) bool {
		return compile(wptaxonomy.RouteOptions{
			Body:       body,
			Resource:   b.resource,
			Identity:   b.identity,
			PascalName: b.pascal,
			Cache:      b,
		})
	}
}

var compilers = map[string]map[RouteKind]routeCompiler{
	ir.StorageWPPost: {
		KindList:   postRoute(wppost.ListRoute),
		KindGet:    postRoute(wppost.GetRoute),
		KindCreate: postMutation(KindCreate),
		KindUpdate: postMutation(KindUpdate),
		KindRemove: postMutation(KindRemove),
	},
	ir.StorageWPTaxonomy: {
		KindList: termRoute(wptaxonomy.ListRoute),
		KindGet:  termRoute(wptaxonomy.GetRoute),
	},
}

func (b *builder) routeMethod(plan routePlan) (template.MethodTemplate, error) {
	request := ast.NewParam(guard.Variable("request"), ast.NewName("WP_REST_Request"))

	return template.NewMethod(template.MethodOptions{
		Name:     plan.method,
		Flags:    ast.ModifierPublic,
		Params:   []*ast.Param{request},
		Level:    1,
		Docblock: plan.docblock(),
		Body: func(body *template.MethodBodyBuilder) {
			level := body.Level()
			compile := compilers[b.resource.StorageMode()][plan.kind]

			if compile == nil && UsesIdentity(plan.route, plan.kind, b.identity.Param) {
				body.Statement(identity.RequestAssignment(b.identity, level))
				body.Blank()
			}
			if plan.route.Policy != "" {
				body.Statements(PolicyGuard(plan.route.Policy, level)...)
				body.Blank()
			}
			if compile != nil && compile(b, body) {
				return
			}
			body.Statements(NotImplemented(plan.route, level)...)
		},
	})
}

// PolicyGuard renders the Policy::enforce call for policy and returns its
// WP_Error when the request is denied.
func PolicyGuard(policy string, level int) []printable.Statement {
	enforce := ast.NewStaticCall(ast.NewName("Policy"), "enforce",
		ast.Args(guard.String(policy), guard.Variable("request"))...)
	return []printable.Statement{
		guard.Assign(guard.Variable("permission"), enforce, level),
		guard.ReturnIfWpError("permission", level),
	}
}

// NotImplemented renders the stub body of a route no compiler handles.
func NotImplemented(route ir.Route, level int) []printable.Statement {
	return []printable.Statement{
		guard.Comment("TODO: Implement handler for ["+route.NormalisedMethod()+"] "+route.Path+".", level),
		guard.Return(ast.NewNew(ast.NewName("WP_Error"),
			ast.Args(guard.Int(501), guard.String("Not Implemented"))...), level),
	}
}

func (b *builder) storageHelpers() ([]template.MethodTemplate, error) {
	switch b.resource.StorageMode() {
	case ir.StorageWPPost:
		return wppost.Helpers(mutation.HelperOptions{
			Resource:   b.resource,
			PascalName: b.pascal,
			Identity:   b.identity,
		})
	case ir.StorageWPTaxonomy:
		return wptaxonomy.Helpers(wptaxonomy.HelperOptions{
			Resource:   b.resource,
			PascalName: b.pascal,
			Identity:   b.identity,
		})
	}
	return nil, nil
}

var _ mutation.CacheRecorder = (*builder)(nil)
