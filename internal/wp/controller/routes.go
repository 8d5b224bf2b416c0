package controller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wpkernel/phpgen/internal/ir"
	casing "github.com/wpkernel/phpgen/internal/util/strings"
)

// RouteKind classifies a route against the resource's collection and
// identity paths.
type RouteKind string

const (
	KindList   RouteKind = "list"
	KindGet    RouteKind = "get"
	KindCreate RouteKind = "create"
	KindUpdate RouteKind = "update"
	KindRemove RouteKind = "remove"
	KindCustom RouteKind = "custom"
)

// IsWrite reports whether the kind mutates the resource.
func (k RouteKind) IsWrite() bool {
	return k == KindCreate || k == KindUpdate || k == KindRemove
}

var (
	identityKinds = map[string]RouteKind{
		"GET":    KindGet,
		"PUT":    KindUpdate,
		"PATCH":  KindUpdate,
		"DELETE": KindRemove,
	}
	collectionKinds = map[string]RouteKind{
		"GET":  KindList,
		"POST": KindCreate,
	}

	repeatedSlashes = regexp.MustCompile(`/+`)
	versionSegment  = regexp.MustCompile(`^v[0-9]+$`)
)

// NormalisePath adds a leading slash, collapses repeated slashes and drops
// trailing ones.
func NormalisePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	path = repeatedSlashes.ReplaceAllString(path, "/")
	if trimmed := strings.TrimRight(path, "/"); trimmed != "" {
		return trimmed
	}
	return "/"
}

func pathSegments(path string) []string {
	if path == "/" {
		return nil
	}
	return strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
}

func joinSegments(segments []string) string {
	return "/" + strings.Join(segments, "/")
}

func isPlaceholder(segment string) bool {
	return strings.HasPrefix(segment, ":")
}

// identityBase returns the parent of a path ending in :<param>, provided no
// other segment is a placeholder.
func identityBase(path, param string) (string, bool) {
	segments := pathSegments(NormalisePath(path))
	if len(segments) == 0 || segments[len(segments)-1] != ":"+param {
		return "", false
	}
	base := segments[:len(segments)-1]
	for _, segment := range base {
		if isPlaceholder(segment) {
			return "", false
		}
	}
	return joinSegments(base), true
}

// CanonicalBasePaths returns the collection paths of a resource: the parents
// of its identity routes, or when there are none, the shortest static routes
// of at most one segment.
func CanonicalBasePaths(routes []ir.Route, param string) map[string]bool {
	bases := map[string]bool{}
	for _, route := range routes {
		if base, ok := identityBase(route.Path, param); ok {
			bases[base] = true
		}
	}
	if len(bases) > 0 {
		return bases
	}

	shortest := -1
	var static []string
	for _, route := range routes {
		path := NormalisePath(route.Path)
		if strings.Contains(path, ":") {
			continue
		}
		static = append(static, path)
		if n := len(pathSegments(path)); shortest < 0 || n < shortest {
			shortest = n
		}
	}
	if shortest < 0 || shortest > 1 {
		return bases
	}
	for _, path := range static {
		if len(pathSegments(path)) == shortest {
			bases[path] = true
		}
	}
	return bases
}

// ClassifyRoute determines the kind of route. Identity routes under a
// canonical base map GET, PUT, PATCH and DELETE; canonical collection routes
// map GET and POST. Anything else is custom.
func ClassifyRoute(route ir.Route, param string, bases map[string]bool) RouteKind {
	method := route.NormalisedMethod()
	path := NormalisePath(route.Path)

	if base, ok := identityBase(path, param); ok && bases[base] {
		if kind, ok := identityKinds[method]; ok {
			return kind
		}
		return KindCustom
	}
	if bases[path] {
		if kind, ok := collectionKinds[method]; ok {
			return kind
		}
	}
	return KindCustom
}

// ClassifyRoutes classifies every route of a resource in order.
func ClassifyRoutes(routes []ir.Route, param string) []RouteKind {
	bases := CanonicalBasePaths(routes, param)
	kinds := make([]RouteKind, len(routes))
	for i, route := range routes {
		kinds[i] = ClassifyRoute(route, param, bases)
	}
	return kinds
}

// UsesIdentity reports whether a handler reads the identity param: always
// for get, update and remove, otherwise when the path names it.
func UsesIdentity(route ir.Route, kind RouteKind, param string) bool {
	switch kind {
	case KindGet, KindUpdate, KindRemove:
		return true
	}
	return strings.Contains(strings.ToLower(route.Path), ":"+strings.ToLower(param))
}

// MethodName derives the handler name from the HTTP method and the path
// segments after the REST namespace and version: GET /demo/v1/books/:slug
// becomes getBooksBySlug. Paths without a version segment use every segment.
func MethodName(route ir.Route) string {
	segments := pathSegments(NormalisePath(route.Path))
	for i, segment := range segments {
		if versionSegment.MatchString(segment) {
			segments = segments[i+1:]
			break
		}
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(route.NormalisedMethod()))
	for _, segment := range segments {
		if isPlaceholder(segment) {
			b.WriteString("By" + casing.ToPascalCase(segment[1:]))
			continue
		}
		b.WriteString(casing.ToPascalCase(segment))
	}
	return b.String()
}

// methodNames names every route handler. A name already taken gets a
// numeric suffix.
func methodNames(routes []ir.Route) []string {
	names := make([]string, len(routes))
	seen := map[string]int{}
	for i, route := range routes {
		name := MethodName(route)
		seen[name]++
		if n := seen[name]; n > 1 {
			name += strconv.Itoa(n)
		}
		names[i] = name
	}
	return names
}
