package wppost

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/identity"
	"github.com/wpkernel/phpgen/internal/wp/mutation"
)

func booksResource() ir.Resource {
	multiple := false
	return ir.Resource{
		Name:     "books",
		Identity: &ir.Identity{Type: ir.IdentityString, Param: "slug"},
		Storage: &ir.Storage{
			Mode:     ir.StorageWPPost,
			PostType: "book",
			Statuses: []string{"draft", "publish"},
			Meta: map[string]ir.MetaDescriptor{
				"rating": {Type: "integer"},
				"tags":   {Type: "string", Single: &multiple},
			},
			Taxonomies: map[string]ir.TaxonomyDescriptor{
				"genres": {Taxonomy: "book_genre"},
			},
		},
		CacheKeys: ir.CacheKeys{
			List: ir.CacheKey{Segments: []string{"books", "list"}},
			Get:  ir.CacheKey{Segments: []string{"books", "get"}},
		},
	}
}

func at(level int, lines ...string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line != "" {
			line = printable.Indent(level) + line
		}
		out[i] = line
	}
	return out
}

type recorder struct {
	events []program.CacheEvent
}

func (r *recorder) RecordCache(event program.CacheEvent) {
	r.events = append(r.events, event)
}

func routeOptions(resource ir.Resource, cache mutation.CacheRecorder) mutation.RouteOptions {
	return mutation.RouteOptions{
		Body:       template.NewMethodBodyBuilder("", 2),
		Resource:   resource,
		Identity:   identity.Resolve(resource.Identity),
		PascalName: "Books",
		Contract:   mutation.WPPostContract,
		Cache:      cache,
	}
}

func TestListRoute(t *testing.T) {
	cache := &recorder{}
	opts := routeOptions(booksResource(), cache)
	require.True(t, ListRoute(opts))

	lines := opts.Body.Lines()
	assert.Equal(t, at(2,
		"$post_type = $this->getBooksPostType();",
		"$per_page = (int) $request->get_param( 'per_page' );",
		"if ( $per_page <= 0 ) {",
		"        $per_page = 10;",
		"}",
		"if ( $per_page > 100 ) {",
		"        $per_page = 100;",
		"}",
		"$page = (int) $request->get_param( 'page' );",
		"if ( $page <= 0 ) {",
		"        $page = 1;",
		"}",
		"",
		"$statuses = $this->getBooksStatuses();",
		"$query_args = array(",
		"        'post_type' => $post_type,",
		"        'post_status' => $statuses,",
		"        'fields' => 'ids',",
		"        'paged' => $page,",
		"        'posts_per_page' => $per_page,",
		");",
		"",
		"$extra_args = $request->get_params();",
		"foreach ( $extra_args as $key => $value ) {",
		"        if ( in_array( $key, array( 'page', 'per_page', 'post_type', 'post_status', 'fields', 'paged', 'posts_per_page', 'rating', 'tags', 'genres' ), true ) ) {",
		"                continue;",
		"        }",
		"        $query_args[ $key ] = $value;",
		"}",
	), lines[:29])

	assert.Equal(t, at(2,
		"$total = (int) $query->found_posts;",
		"$pages = (int) ceil( $total / max( 1, $per_page ) );",
		"",
		"return array(",
		"        'items' => $items,",
		"        'total' => $total,",
		"        'pages' => $pages,",
		");",
	), lines[len(lines)-8:])

	joined := strings.Join(lines, "\n")
	ordered := []string{
		"$meta_query = array();",
		"$tax_query = array();",
		"$query = new WP_Query();",
		"$results = $query->query( $query_args );",
		"if ( is_wp_error( $results ) ) {",
		"foreach ( $results as $post_id ) {",
		"if ( ! $post instanceof WP_Post ) {",
		"$items[] = $this->prepareBooksResponse( $post, $request );",
	}
	previous := -1
	for _, marker := range ordered {
		index := strings.Index(joined, marker)
		require.NotEqual(t, -1, index, marker)
		assert.Greater(t, index, previous, marker)
		previous = index
	}

	require.Len(t, cache.events, 1)
	assert.Equal(t, "list", cache.events[0].Scope)
	assert.Equal(t, "read", cache.events[0].Operation)
	assert.Equal(t, []string{"books", "list"}, cache.events[0].Segments)
}

func TestListRouteWithoutStatusesOrFilters(t *testing.T) {
	resource := booksResource()
	resource.Storage.Statuses = nil
	resource.Storage.Meta = nil
	resource.Storage.Taxonomies = nil

	opts := routeOptions(resource, nil)
	require.True(t, ListRoute(opts))

	joined := strings.Join(opts.Body.Lines(), "\n")
	assert.Contains(t, joined, "'post_status' => 'any',")
	assert.NotContains(t, joined, "getBooksStatuses")
	assert.NotContains(t, joined, "$meta_query")
	assert.NotContains(t, joined, "$tax_query")
}

func TestGetRoute(t *testing.T) {
	cache := &recorder{}
	opts := routeOptions(booksResource(), cache)
	require.True(t, GetRoute(opts))

	lines := opts.Body.Lines()
	assert.Equal(t, at(2,
		"$post = $this->resolveBooksPost( $slug );",
		"if ( ! $post instanceof WP_Post ) {",
		"        return new WP_Error( 'wpk_books_not_found', 'Books not found.', array( 'status' => 404 ) );",
		"}",
		"",
		"return $this->prepareBooksResponse( $post, $request );",
	), lines[len(lines)-6:])
	assert.Equal(t, printable.Indent(2)+"$slug = $request->get_param( 'slug' );", lines[0])

	require.Len(t, cache.events, 1)
	assert.Equal(t, []string{"books", "get"}, cache.events[0].Segments)
}

func TestRoutesRejectTaxonomyStorage(t *testing.T) {
	resource := booksResource()
	resource.Storage = &ir.Storage{Mode: ir.StorageWPTaxonomy, Taxonomy: "genre"}

	list := routeOptions(resource, nil)
	assert.False(t, ListRoute(list))
	assert.Empty(t, list.Body.Lines())

	get := routeOptions(resource, nil)
	assert.False(t, GetRoute(get))
	assert.Empty(t, get.Body.Stmts())
}

func TestTaxQuery(t *testing.T) {
	lines := printable.Lines(TaxQuery(booksResource().Storage, 0))
	assert.Equal(t, []string{
		"$tax_query = array();",
		"$genresTerms = $request->get_param( 'genres' );",
		"if ( null !== $genresTerms ) {",
		"        if ( ! is_array( $genresTerms ) ) {",
		"                $genresTerms = array( $genresTerms );",
		"        }",
		"        $genresTerms = array_filter( array_map( 'intval', (array) $genresTerms ) );",
		"        if ( ! empty( $genresTerms ) ) {",
		"                $tax_query[] = array(",
		"                        'taxonomy' => 'book_genre',",
		"                        'field' => 'term_id',",
		"                        'terms' => $genresTerms,",
		"                );",
		"        }",
		"}",
		"if ( ! empty( $tax_query ) ) {",
		"        $query_args['tax_query'] = $tax_query;",
		"}",
	}, lines)
}

func TestMetaQuery(t *testing.T) {
	statements := MetaQuery(booksResource().Storage, 0)
	lines := printable.Lines(statements)

	assert.Equal(t, []string{
		"$meta_query = array();",
		"$ratingMeta = $request->get_param( 'rating' );",
		"if ( null !== $ratingMeta ) {",
		"        $ratingMeta = is_scalar( $ratingMeta ) ? trim( (string) $ratingMeta ) : null;",
	}, lines[:4])

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "'compare' => '=',")
	assert.Contains(t, joined, "'compare' => 'IN',")
	assert.Contains(t, joined, "$tagsMeta = array_filter( array_map( 'trim', array_map( 'strval', $tagsMeta ) ), 'strlen' );")
	assert.Equal(t, "        $query_args['meta_query'] = $meta_query;", lines[len(lines)-2])

	// the seed, a read and a guard per key, then the merge guard
	assert.Len(t, printable.Nodes(statements), 6)

	assert.Nil(t, MetaQuery(&ir.Storage{Mode: ir.StorageWPPost}, 0))
}

func TestHelpers(t *testing.T) {
	resource := booksResource()
	methods, err := Helpers(mutation.HelperOptions{
		Resource:   resource,
		PascalName: "Books",
		Identity:   identity.Resolve(resource.Identity),
	})
	require.NoError(t, err)

	names := make([]string, 0, len(methods))
	for _, method := range methods {
		names = append(names, method.Node.Name.Name)
	}
	assert.Equal(t, []string{
		"getBooksPostType",
		"getBooksStatuses",
		"getBooksDefaultStatus",
		"normaliseBooksStatus",
		"resolveBooksPost",
		"prepareBooksResponse",
		"syncBooksMeta",
		"syncBooksTaxonomies",
	}, names)

	assert.Equal(t, at(1,
		"private function getBooksPostType(): string",
		"{",
		"        return 'book';",
		"}",
	), methods[0].Lines)
	assert.Equal(t, printable.Indent(2)+"return array( 'draft', 'publish' );", methods[1].Lines[2])
	assert.Equal(t, printable.Indent(2)+"return 'draft';", methods[2].Lines[2])

	assert.Equal(t, at(1,
		"private function normaliseBooksStatus( $status ): string",
		"{",
		"        if ( ! is_string( $status ) || '' === trim( $status ) ) {",
		"                return $this->getBooksDefaultStatus();",
		"        }",
		"        $status = strtolower( trim( $status ) );",
		"        $allowed = $this->getBooksStatuses();",
		"        if ( empty( $allowed ) ) {",
		"                return $status;",
		"        }",
		"        if ( in_array( $status, $allowed, true ) ) {",
		"                return $status;",
		"        }",
		"        return $this->getBooksDefaultStatus();",
		"}",
	), methods[3].Lines)
}

func TestHelpersDefaults(t *testing.T) {
	resource := booksResource()
	resource.Storage.PostType = ""
	resource.Storage.Statuses = nil

	methods, err := Helpers(mutation.HelperOptions{Resource: resource, PascalName: "Books", Identity: identity.Resolve(nil)})
	require.NoError(t, err)
	assert.Equal(t, printable.Indent(2)+"return 'books';", methods[0].Lines[2])
	assert.Equal(t, printable.Indent(2)+"return array();", methods[1].Lines[2])
	assert.Equal(t, printable.Indent(2)+"return 'publish';", methods[2].Lines[2])
}

func TestResolvePostHelper(t *testing.T) {
	tests := []struct {
		name        string
		identity    identity.Resolved
		wantNumeric bool
		wantUUID    bool
	}{
		{"numeric id", identity.Resolved{Type: ir.IdentityNumber, Param: "id"}, true, false},
		{"slug", identity.Resolved{Type: ir.IdentityString, Param: "slug"}, false, false},
		{"uuid", identity.Resolved{Type: ir.IdentityString, Param: "uuid"}, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, err := resolvePostHelper(mutation.HelperOptions{Resource: booksResource(), PascalName: "Books", Identity: tt.identity})
			require.NoError(t, err)

			joined := strings.Join(method.Lines, "\n")
			assert.Contains(t, method.Lines[0], "private function resolveBooksPost( $identity ): ?WP_Post")
			assert.Contains(t, joined, "$post = get_page_by_path( $candidate, OBJECT, $post_type );")
			assert.Contains(t, joined, "$candidate = trim( (string) $identity );")
			assert.Equal(t, tt.wantNumeric, strings.Contains(joined, "if ( is_numeric( $identity ) ) {"))
			assert.Equal(t, tt.wantUUID, strings.Contains(joined, "'meta_key' => 'uuid',"))
			assert.Equal(t, printable.Indent(2)+"return null;", method.Lines[len(method.Lines)-2])
		})
	}
}

func TestReservedKeys(t *testing.T) {
	keys := ReservedKeys(booksResource().Storage)
	assert.Equal(t, []string{"page", "per_page", "post_type", "post_status", "fields", "paged", "posts_per_page", "rating", "tags", "genres"}, keys)
	assert.Len(t, queryArgKeys, 7)
}
