package workspace

import (
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashContent(t *testing.T) {
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		HashContent(nil))
	assert.Equal(t,
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9",
		HashContent([]byte("hello world")))
}

func TestWriteSkipsUnchangedContent(t *testing.T) {
	ws := NewMemory()

	first, err := ws.Write("inc/Rest/BooksController.php", []byte("<?php\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, first.Status)

	second, err := ws.Write("inc/Rest/BooksController.php", []byte("<?php\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, second.Status)
	assert.Equal(t, first.Hash, second.Hash)

	third, err := ws.Write("inc/Rest/BooksController.php", []byte("<?php\n// changed\n"))
	require.NoError(t, err)
	assert.Equal(t, StatusWritten, third.Status)

	content, err := ws.Read("inc/Rest/BooksController.php")
	require.NoError(t, err)
	assert.Equal(t, "<?php\n// changed\n", string(content))
}

func TestDryRunDoesNotWrite(t *testing.T) {
	fs := memfs.New()
	ws := New(fs, WithDryRun(true))

	result, err := ws.Write("inc/Rest/A.php", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, StatusPlanned, result.Status)

	_, err = fs.Stat("inc/Rest/A.php")
	assert.Error(t, err)
}

func TestDryRunReportsUnchanged(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "a.php", []byte("x"), 0o644))

	result, err := New(fs, WithDryRun(true)).Write("a.php", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, StatusUnchanged, result.Status)
}

func TestFiles(t *testing.T) {
	ws := NewMemory()
	for _, path := range []string{"inc/Rest/B.php", "inc/Rest/A.php", "inc/Rest/A.php.ast.json"} {
		_, err := ws.Write(path, []byte(path))
		require.NoError(t, err)
	}

	files, err := ws.Files("inc")
	require.NoError(t, err)
	assert.Equal(t, []string{"inc/Rest/A.php", "inc/Rest/A.php.ast.json", "inc/Rest/B.php"}, files)
}
