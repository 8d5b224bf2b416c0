package ir

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wpkernel/phpgen/internal/errors"
)

const booksYAML = `
namespace: Demo
resources:
  - name: books
    schemaKey: book
    identity:
      type: string
      param: slug
    storage:
      mode: wp-post
      postType: book
      statuses: [draft, publish]
      supports: [title, editor]
      meta:
        rating:
          type: integer
        tags:
          type: string
          single: false
      taxonomies:
        genres:
          taxonomy: book_genre
    routes:
      - method: get
        path: /demo/v1/books
      - method: POST
        path: /demo/v1/books
        policy: books.create
`

func TestDecodeYAML(t *testing.T) {
	project, err := Decode("kernel.yml", []byte(booksYAML))
	require.NoError(t, err)

	assert.Equal(t, "Demo", project.Namespace)
	assert.Equal(t, "kernel.yml", project.Origin)
	require.Len(t, project.Resources, 1)

	books := project.Resources[0]
	assert.Equal(t, "book", books.SchemaKey)
	assert.Equal(t, "manual", books.SchemaProvenance)
	assert.Equal(t, StorageWPPost, books.StorageMode())
	assert.Equal(t, "GET", books.Routes[0].Method)
	assert.Equal(t, []string{"books", "list"}, books.CacheKeys.List.Segments)
	assert.Equal(t, []string{"books", "get"}, books.CacheKeys.Get.Segments)
	assert.Nil(t, books.CacheKeys.Create)

	assert.True(t, books.Storage.HasSupport("title"))
	assert.False(t, books.Storage.HasSupport("excerpt"))
	assert.Equal(t, []string{"rating", "tags"}, books.Storage.MetaKeys())
	assert.True(t, books.Storage.Meta["rating"].IsSingle())
	assert.False(t, books.Storage.Meta["tags"].IsSingle())
	assert.Equal(t, []string{"genres"}, books.Storage.TaxonomyKeys())
}

func TestDecodeJSON(t *testing.T) {
	data := []byte(`{
		"namespace": "Demo",
		"origin": "kernel.config.ts",
		"resources": [{
			"name": "job-category",
			"storage": {"mode": "wp-taxonomy", "taxonomy": "job_category", "hierarchical": true},
			"routes": [{"method": "GET", "path": "/demo/v1/job-categories"}]
		}]
	}`)

	project, err := Decode("kernel.json", data)
	require.NoError(t, err)
	assert.Equal(t, "kernel.config.ts", project.Origin)
	assert.True(t, project.Resources[0].Storage.Hierarchical)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		data string
		code errors.ErrorCode
	}{
		{"malformed yaml", "kernel.yml", "resources: [", errors.ErrDescriptorDecode},
		{"malformed json", "kernel.json", "{", errors.ErrDescriptorDecode},
		{"missing name", "kernel.yml", "resources:\n  - schemaKey: x\n", errors.ErrDescriptorInvalid},
		{"duplicate", "kernel.yml", "resources:\n  - name: a\n  - name: a\n", errors.ErrDescriptorInvalid},
		{"bad method", "kernel.yml", "resources:\n  - name: a\n    routes:\n      - {method: TRACE, path: /a}\n", errors.ErrDescriptorInvalid},
		{"bad identity", "kernel.yml", "resources:\n  - name: a\n    identity: {type: uuid}\n", errors.ErrDescriptorInvalid},
		{"taxonomy without slug", "kernel.yml", "resources:\n  - name: a\n    storage: {mode: wp-taxonomy}\n", errors.ErrDescriptorInvalid},
		{"unknown mode", "kernel.yml", "resources:\n  - name: a\n    storage: {mode: custom-table}\n", errors.ErrDescriptorInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.file, []byte(tt.data))
			require.Error(t, err)
			genErr, ok := errors.As(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, genErr.Code)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kernel.yml")
	require.NoError(t, os.WriteFile(path, []byte(booksYAML), 0o644))

	project, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, project.Resources, 1)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
