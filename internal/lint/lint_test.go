package lint

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
	"github.com/wpkernel/phpgen/internal/ir"
	"github.com/wpkernel/phpgen/internal/php/program"
	"github.com/wpkernel/phpgen/internal/wp/controller"
)

const validPHP = `<?php
declare(strict_types=1);

namespace Demo\Rest;

final class Example
{
        public function get(): array
        {
                return array( 'ok' => true );
        }
}
`

func TestCheckAcceptsValidPHP(t *testing.T) {
	issues, err := Check(context.Background(), "Example.php", []byte(validPHP))
	require.NoError(t, err)
	assert.Empty(t, issues)
	assert.NoError(t, Validate(context.Background(), "Example.php", []byte(validPHP)))
}

func TestCheckFlagsTruncatedFile(t *testing.T) {
	truncated := validPHP[:strings.LastIndex(validPHP, "}")]

	issues, err := Check(context.Background(), "Example.php", []byte(truncated))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.Equal(t, "Example.php", issues[0].Path)
	assert.Positive(t, issues[0].Line)
	assert.Contains(t, issues[0].String(), "Example.php:")

	err = Validate(context.Background(), "Example.php", []byte(truncated))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrSyntax))
	genErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, "Example.php", genErr.File)
}

func TestCheckFlagsMissingSemicolon(t *testing.T) {
	issues, err := Check(context.Background(), "broken.php", []byte("<?php\n$a = 1\n$b = 2;\n"))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.GreaterOrEqual(t, issues[0].Line, 2)
}

func TestIssueString(t *testing.T) {
	assert.Equal(t, "a.php:3:7: missing ;", Issue{Path: "a.php", Line: 3, Column: 7, Kind: KindMissing, Node: ";"}.String())
	assert.Equal(t, "a.php:1:1: syntax error", Issue{Path: "a.php", Line: 1, Column: 1, Kind: KindError}.String())
}

func TestGeneratedControllersParse(t *testing.T) {
	multiple := false
	project := &ir.Project{
		Namespace: "Demo",
		Origin:    "kernel.yml",
		Resources: []ir.Resource{
			{
				Name:      "books",
				SchemaKey: "book",
				Identity:  &ir.Identity{Type: ir.IdentityString, Param: "slug"},
				Storage: &ir.Storage{
					Mode:       ir.StorageWPPost,
					PostType:   "book",
					Statuses:   []string{"draft", "publish"},
					Supports:   []string{"title", "editor", "excerpt"},
					Meta:       map[string]ir.MetaDescriptor{"rating": {Type: "integer"}, "tags": {Type: "string", Single: &multiple}},
					Taxonomies: map[string]ir.TaxonomyDescriptor{"genres": {Taxonomy: "book_genre"}},
				},
				Routes: []ir.Route{
					{Method: "GET", Path: "/demo/v1/books"},
					{Method: "POST", Path: "/demo/v1/books", Policy: "books.create"},
					{Method: "GET", Path: "/demo/v1/books/:slug"},
					{Method: "PATCH", Path: "/demo/v1/books/:slug", Policy: "books.update"},
					{Method: "DELETE", Path: "/demo/v1/books/:slug", Policy: "books.delete"},
				},
				QueryParams: map[string]ir.QueryParam{"search": {Type: "string", Optional: true}},
			},
			{
				Name:      "genres",
				SchemaKey: "genre",
				Storage:   &ir.Storage{Mode: ir.StorageWPTaxonomy, Taxonomy: "book_genre"},
				Routes: []ir.Route{
					{Method: "GET", Path: "/demo/v1/genres"},
					{Method: "GET", Path: "/demo/v1/genres/:id"},
					{Method: "POST", Path: "/demo/v1/genres"},
				},
			},
		},
	}

	ctx := program.NewContext()
	entries, err := controller.BuildAll(ctx, project, controller.Options{OutputDir: "inc"})
	require.NoError(t, err)

	for _, entry := range entries {
		built := program.Build(entry)
		issues, err := Check(context.Background(), built.Path, []byte(built.Code))
		require.NoError(t, err)
		assert.Empty(t, issues, "%s:\n%s", built.Path, built.Code)
	}
}
