package mutation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/ast"
	"github.com/wpkernel/phpgen/internal/php/printable"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/php/template"
	"github.com/wpkernel/phpgen/internal/wp/identity"
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
			Supports: []string{"title"},
			Meta: map[string]ir.MetaDescriptor{
				"rating": {Type: "integer"},
				"tags":   {Type: "string", Single: &multiple},
			},
			Taxonomies: map[string]ir.TaxonomyDescriptor{
				"genres": {Taxonomy: "book_genre"},
			},
		},
		CacheKeys: ir.CacheKeys{
			Create: &ir.CacheKey{Segments: []string{"books", "create"}},
		},
	}
}

// at indents every non-empty line to level.
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

func routeOptions(body *template.MethodBodyBuilder, resource ir.Resource, cache CacheRecorder) RouteOptions {
	return RouteOptions{
		Body:       body,
		Resource:   resource,
		Identity:   identity.Resolve(resource.Identity),
		PascalName: "Books",
		Contract:   WPPostContract,
		Cache:      cache,
	}
}

type recorder struct {
	events []program.CacheEvent
}

func (r *recorder) RecordCache(event program.CacheEvent) {
	r.events = append(r.events, event)
}

func TestStatusValidationMacro(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	StatusValidation(StatusValidationOptions{
		MacroOptions: MacroOptions{Body: body, Level: 2, Contract: WPPostContract, PascalName: "Books"},
		Target:       VariableExpression("post_status"),
	})

	assert.Equal(t, at(2,
		"// @wp-kernel resource.wpPost.mutation status-validation",
		"// @wp-kernel mutation:status normalise",
		"$status = $request->get_param( 'status' );",
		"$post_status = $this->normaliseBooksStatus( $status );",
	), body.Lines())

	stmts := body.Stmts()
	require.Len(t, stmts, 4)
	assert.Equal(t, "Stmt_Nop", stmts[0].NodeType())
	assert.Equal(t, "// @wp-kernel mutation:status normalise", stmts[1].Attributes().Comments()[0].Text)
}

func TestGuardedStatusValidationMacro(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	StatusValidation(StatusValidationOptions{
		MacroOptions:       MacroOptions{Body: body, Level: 2, Contract: WPPostContract, PascalName: "Books"},
		Target:             ArrayDimExpression("post_data", "post_status"),
		GuardWithNullCheck: true,
	})

	lines := body.Lines()
	assert.Equal(t, at(2,
		"if ( null !== $status ) {",
		"        $post_data['post_status'] = $this->normaliseBooksStatus( $status );",
		"}",
	), lines[3:])
}

func TestCachePrimingMacro(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	CachePriming(CachePrimingOptions{
		MacroOptions:   MacroOptions{Body: body, Level: 2, Contract: WPPostContract, PascalName: "Books"},
		PostID:         VariableExpression("post_id"),
		ErrorCode:      "wpk_books_load_failed",
		FailureMessage: "Unable to load created Book.",
	})

	assert.Equal(t, at(2,
		"// @wp-kernel resource.wpPost.mutation cache-priming",
		"// @wp-kernel mutation:cache-priming prime",
		"// @wp-kernel cache:segment prime",
		"$post = get_post( $post_id );",
		"if ( ! $post instanceof WP_Post ) {",
		"        return new WP_Error( 'wpk_books_load_failed', 'Unable to load created Book.', [ 'status' => 500 ] );",
		"}",
		"return $this->prepareBooksResponse( $post, $request );",
	), body.Lines())
}

func TestExpressionDisplay(t *testing.T) {
	assert.Equal(t, "$post_id", VariableExpression("post_id").Display)
	assert.Equal(t, "$post_data['post_status']", ArrayDimExpression("post_data", "post_status").Display)
	assert.Equal(t, "$post->ID", PropertyExpression("post", "ID").Display)
}

func TestCreateRoute(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	cache := &recorder{}
	require.True(t, CreateRoute(routeOptions(body, booksResource(), cache)))

	assert.Equal(t, at(2,
		"$post_type = $this->getBooksPostType();",
		"",
		"$post_data = array(",
		"        'post_type' => $post_type,",
		");",
		"// @wp-kernel resource.wpPost.mutation status-validation",
		"// @wp-kernel mutation:status normalise",
		"$status = $request->get_param( 'status' );",
		"$post_data['post_status'] = $this->normaliseBooksStatus( $status );",
		"$title = $request->get_param( 'title' );",
		"if ( is_string( $title ) ) {",
		"        $post_data['post_title'] = $title;",
		"}",
		"$slug = $request->get_param( 'slug' );",
		"if ( is_string( $slug ) && '' !== trim( $slug ) ) {",
		"        $post_data['post_name'] = sanitize_title( $slug );",
		"}",
		"",
		"$post_id = wp_insert_post( $post_data, true );",
		"if ( is_wp_error( $post_id ) ) {",
		"        return $post_id;",
		"}",
		"if ( 0 === $post_id ) {",
		"        return new WP_Error( 'wpk_books_create_failed', 'Unable to create Books.', array( 'status' => 500 ) );",
		"}",
		"",
		"// @wp-kernel resource.wpPost.mutation sync-meta",
		"// @wp-kernel mutation:sync-meta update",
		"$this->syncBooksMeta( $post_id, $request );",
		"// @wp-kernel resource.wpPost.mutation sync-taxonomies",
		"// @wp-kernel mutation:sync-taxonomies update",
		"$taxonomy_result = $this->syncBooksTaxonomies( $post_id, $request );",
		"if ( is_wp_error( $taxonomy_result ) ) {",
		"        return $taxonomy_result;",
		"}",
		"// @wp-kernel resource.wpPost.mutation cache-priming",
		"// @wp-kernel mutation:cache-priming prime",
		"// @wp-kernel cache:segment prime",
		"$post = get_post( $post_id );",
		"if ( ! $post instanceof WP_Post ) {",
		"        return new WP_Error( 'wpk_books_load_failed', 'Unable to load created Books.', [ 'status' => 500 ] );",
		"}",
		"return $this->prepareBooksResponse( $post, $request );",
	), body.Lines())

	stmts := body.Stmts()
	last, ok := stmts[len(stmts)-1].(*ast.Return)
	require.True(t, ok)
	assert.Equal(t, "Expr_MethodCall", last.Expr.NodeType())

	require.Len(t, cache.events, 1)
	assert.Equal(t, []string{"books", "create"}, cache.events[0].Segments)
}

func TestCreateRouteOrdering(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	require.True(t, CreateRoute(routeOptions(body, booksResource(), nil)))
	joined := strings.Join(body.Lines(), "\n")

	ordered := []string{
		"$this->getBooksPostType()",
		"// @wp-kernel mutation:status normalise",
		"wp_insert_post( $post_data, true )",
		"is_wp_error( $post_id )",
		"$this->syncBooksMeta( $post_id, $request );",
		"syncBooksTaxonomies",
		"is_wp_error( $taxonomy_result )",
		"get_post( $post_id )",
		"instanceof WP_Post",
		"return $this->prepareBooksResponse(",
	}
	previous := -1
	for _, marker := range ordered {
		index := strings.Index(joined, marker)
		require.NotEqual(t, -1, index, marker)
		assert.Greater(t, index, previous, marker)
		previous = index
	}
}

func TestUpdateRoute(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	resource := booksResource()
	resource.Storage.Supports = nil
	require.True(t, UpdateRoute(routeOptions(body, resource, nil)))

	lines := body.Lines()
	assert.Equal(t, at(2,
		"$slug = $request->get_param( 'slug' );",
		"if ( ! is_string( $slug ) || '' === trim( $slug ) ) {",
		"        return new WP_Error( 'wpk_books_missing_identifier', 'Missing identifier for Books.', array( 'status' => 400 ) );",
		"}",
		"$slug = trim( (string) $slug );",
		"",
		"$post = $this->resolveBooksPost( $slug );",
		"if ( ! $post instanceof WP_Post ) {",
		"        return new WP_Error( 'wpk_books_not_found', 'Books not found.', array( 'status' => 404 ) );",
		"}",
		"",
		"$post_data = array(",
		"        'ID' => $post->ID,",
		"        'post_type' => $this->getBooksPostType(),",
		");",
	), lines[:15])

	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "if ( null !== $status ) {")
	assert.Contains(t, joined, "$result = wp_update_post( $post_data, true );")
	assert.Contains(t, joined, "if ( 0 === $result ) {")
	assert.Contains(t, joined, "$this->syncBooksMeta( $post->ID, $request );")
	assert.Contains(t, joined, "$taxonomy_result = $this->syncBooksTaxonomies( $post->ID, $request );")
	assert.Contains(t, joined, "$updated = get_post( $post->ID );")
	assert.Contains(t, joined, "'Unable to load updated Books.'")
	assert.Equal(t, at(2, "return $this->prepareBooksResponse( $updated, $request );"), lines[len(lines)-1:])
}

func TestDeleteRoute(t *testing.T) {
	body := template.NewMethodBodyBuilder("", 2)
	resource := booksResource()
	resource.Identity = nil
	require.True(t, DeleteRoute(routeOptions(body, resource, nil)))

	assert.Equal(t, at(2,
		"$id = $request->get_param( 'id' );",
		"if ( null === $id ) {",
		"        return new WP_Error( 'wpk_books_missing_identifier', 'Missing identifier for Books.', array( 'status' => 400 ) );",
		"}",
		"$id = (int) $id;",
		"if ( $id <= 0 ) {",
		"        return new WP_Error( 'wpk_books_invalid_identifier', 'Invalid identifier for Books.', array( 'status' => 400 ) );",
		"}",
		"",
		"$post = $this->resolveBooksPost( $id );",
		"if ( ! $post instanceof WP_Post ) {",
		"        return new WP_Error( 'wpk_books_not_found', 'Books not found.', array( 'status' => 404 ) );",
		"}",
		"",
		"$previous = $this->prepareBooksResponse( $post, $request );",
		"$deleted = wp_delete_post( $post->ID, true );",
		"if ( false === $deleted ) {",
		"        return new WP_Error( 'wpk_books_delete_failed', 'Unable to delete Books.', array( 'status' => 500 ) );",
		"}",
		"",
		"return array(",
		"        'deleted' => true,",
		"        'id' => (int) $post->ID,",
		"        'previous' => $previous,",
		");",
	), body.Lines())
}

func TestRoutesRejectOtherStorage(t *testing.T) {
	resource := booksResource()
	resource.Storage = &ir.Storage{Mode: ir.StorageWPTaxonomy, Taxonomy: "genre"}

	for name, compile := range map[string]func(RouteOptions) bool{
		"create": CreateRoute,
		"update": UpdateRoute,
		"delete": DeleteRoute,
	} {
		t.Run(name, func(t *testing.T) {
			body := template.NewMethodBodyBuilder("", 2)
			assert.False(t, compile(routeOptions(body, resource, nil)))
			assert.Empty(t, body.Lines())
		})
	}
}

func TestSyncMetaHelper(t *testing.T) {
	method, err := SyncMetaHelper(HelperOptions{Resource: booksResource(), PascalName: "Books"})
	require.NoError(t, err)

	assert.Equal(t, at(1,
		"private function syncBooksMeta( int $post_id, WP_REST_Request $request ): void",
		"{",
		"        $ratingMeta = $request->get_param( 'rating' );",
		"        if ( null !== $ratingMeta ) {",
		"                $ratingMeta = is_numeric( $ratingMeta ) ? (int) $ratingMeta : 0;",
		"                update_post_meta( $post_id, 'rating', $ratingMeta );",
		"        }",
		"        $tagsMeta = $request->get_param( 'tags' );",
		"        if ( null !== $tagsMeta ) {",
		"                if ( ! is_array( $tagsMeta ) ) {",
		"                        $tagsMeta = array( $tagsMeta );",
		"                }",
		"                $tagsMeta = array_values( (array) $tagsMeta );",
		"                foreach ( $tagsMeta as $meta_index => $meta_value ) {",
		"                        $meta_value = is_string( $meta_value ) ? $meta_value : (string) $meta_value;",
		"                        $tagsMeta[ $meta_index ] = $meta_value;",
		"                }",
		"                delete_post_meta( $post_id, 'tags' );",
		"                foreach ( (array) $tagsMeta as $value ) {",
		"                        add_post_meta( $post_id, 'tags', $value );",
		"                }",
		"        }",
		"}",
	), method.Lines)
	assert.Equal(t, "syncBooksMeta", method.Node.Name.Name)
	assert.Len(t, method.Node.Stmts, 4)
}

func TestSyncHelpersWithoutEntries(t *testing.T) {
	resource := booksResource()
	resource.Storage.Meta = nil
	resource.Storage.Taxonomies = nil

	meta, err := SyncMetaHelper(HelperOptions{Resource: resource, PascalName: "Books"})
	require.NoError(t, err)
	assert.Equal(t, at(2, "unset( $post_id, $request );", "return;"), meta.Lines[2:4])

	taxonomies, err := SyncTaxonomiesHelper(HelperOptions{Resource: resource, PascalName: "Books"})
	require.NoError(t, err)
	assert.Equal(t, at(1, "private function syncBooksTaxonomies( int $post_id, WP_REST_Request $request )"), taxonomies.Lines[:1])
	assert.Equal(t, at(2, "unset( $post_id, $request );", "return true;"), taxonomies.Lines[2:4])
}

func TestSyncTaxonomiesHelper(t *testing.T) {
	method, err := SyncTaxonomiesHelper(HelperOptions{Resource: booksResource(), PascalName: "Books"})
	require.NoError(t, err)

	assert.Equal(t, at(2,
		"$result = true;",
		"$genresTerms = $request->get_param( 'genres' );",
		"if ( null !== $genresTerms ) {",
		"        if ( ! is_array( $genresTerms ) ) {",
		"                $genresTerms = array( $genresTerms );",
		"        }",
		"        $genresTerms = array_filter( array_map( 'intval', (array) $genresTerms ) );",
		"        $result = wp_set_object_terms(",
		"                $post_id,",
		"                $genresTerms,",
		"                'book_genre',",
		"                false",
		"        );",
		"        if ( is_wp_error( $result ) ) {",
		"                return $result;",
		"        }",
		"}",
		"return $result;",
	), method.Lines[2:len(method.Lines)-1])
}

func TestPrepareResponseHelper(t *testing.T) {
	method, err := PrepareResponseHelper(HelperOptions{
		Resource:   booksResource(),
		PascalName: "Books",
		Identity:   identity.Resolved{Type: ir.IdentityString, Param: "slug"},
	})
	require.NoError(t, err)

	assert.Equal(t, at(1, "private function prepareBooksResponse( WP_Post $post, WP_REST_Request $request ): array"), method.Lines[:1])
	body := method.Lines[2 : len(method.Lines)-1]
	assert.Equal(t, at(2,
		"$data = array(",
		"        'id' => (int) $post->ID,",
		"        'slug' => (string) $post->post_name,",
		"        'status' => (string) $post->post_status,",
		");",
		"$data['title'] = (string) $post->post_title;",
		"$ratingMeta = get_post_meta( $post->ID, 'rating', true );",
		"$ratingMeta = is_numeric( $ratingMeta ) ? (int) $ratingMeta : 0;",
		"$data['rating'] = $ratingMeta;",
	), body[:9])

	joined := strings.Join(body, "\n")
	assert.Contains(t, joined, "$tagsMeta = get_post_meta( $post->ID, 'tags', false );")
	assert.Contains(t, joined, "$genresTerms = wp_get_object_terms( $post->ID, 'book_genre', array( 'fields' => 'ids' ) );")
	assert.Contains(t, joined, "$genresTerms = array_map( 'intval', (array) $genresTerms );")
	assert.Equal(t, printable.Indent(2)+"return $data;", body[len(body)-1])
}

func TestMetaSanitizerTypes(t *testing.T) {
	tests := []struct {
		typ  string
		want string
	}{
		{"integer", "$v = is_numeric( $v ) ? (int) $v : 0;"},
		{"number", "$v = is_numeric( $v ) ? (float) $v : 0.0;"},
		{"boolean", "$v = rest_sanitize_boolean( $v );"},
		{"array", "$v = array_values( (array) $v );"},
		{"object", "$v = is_array( $v ) ? $v : array();"},
		{"string", "$v = is_string( $v ) ? $v : (string) $v;"},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			assert.Equal(t, []string{tt.want}, printable.Lines(metaSanitizer("v", ir.MetaDescriptor{Type: tt.typ}, 0)))
		})
	}

	multiple := false
	assert.Len(t, metaSanitizer("v", ir.MetaDescriptor{Type: "array", Single: &multiple}, 0), 1)
}

func TestHelpersRequirePostStorage(t *testing.T) {
	resource := booksResource()
	resource.Storage = nil

	_, err := SyncMetaHelper(HelperOptions{Resource: resource, PascalName: "Books"})
	require.Error(t, err)
	genErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrStorageMismatch, genErr.Code)
}

func TestContractRoutes(t *testing.T) {
	kinds := WPPostContract.Kinds
	tests := []struct {
		kind string
		call string
	}{
		{kinds.Create, "$post_id = wp_insert_post( $post_data, true );"},
		{kinds.Update, "$result = wp_update_post( $post_data, true );"},
		{kinds.Delete, "$deleted = wp_delete_post( $post->ID, true );"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			compile := WPPostContract.Route(tt.kind)
			require.NotNil(t, compile)

			body := template.NewMethodBodyBuilder("", 2)
			require.True(t, compile(routeOptions(body, booksResource(), nil)))
			assert.Contains(t, strings.Join(body.Lines(), "\n"), tt.call)
		})
	}

	assert.Nil(t, WPPostContract.Route(""))
	assert.Nil(t, WPPostContract.Route("archive"))
}

func TestContractHelperNames(t *testing.T) {
	assert.Equal(t, "syncBooksMeta", WPPostContract.SyncMetaMethod("Books"))
	assert.Equal(t, "syncBooksTaxonomies", WPPostContract.SyncTaxonomiesMethod("Books"))
	assert.Equal(t, "prepareBooksResponse", WPPostContract.PrepareResponseMethod("Books"))

	custom := WPPostContract
	custom.Helpers.SyncMeta = "persist%sMeta"

	body := template.NewMethodBodyBuilder("", 2)
	SyncMeta(SyncMetaOptions{
		MacroOptions: MacroOptions{Body: body, Level: 2, Contract: custom, PascalName: "Books"},
		PostID:       VariableExpression("post_id"),
	})
	assert.Equal(t, printable.Indent(2)+"$this->persistBooksMeta( $post_id, $request );", body.Lines()[2])

	method, err := SyncMetaHelper(HelperOptions{Resource: booksResource(), PascalName: "Books", Contract: custom})
	require.NoError(t, err)
	assert.Equal(t, "persistBooksMeta", method.Node.Name.Name)

	fallback, err := SyncMetaHelper(HelperOptions{Resource: booksResource(), PascalName: "Books"})
	require.NoError(t, err)
	assert.Equal(t, "syncBooksMeta", fallback.Node.Name.Name)
}
