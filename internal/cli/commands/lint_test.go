package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.php")
	bad := filepath.Join(dir, "bad.php")
	require.NoError(t, os.WriteFile(good, []byte("<?php\n$a = 1;\n"), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("<?php\nfunction broken( {\n"), 0644))

	out, _, err := execute(t, dir, "lint", good)
	require.NoError(t, err)
	assert.Equal(t, "✓ "+good+"\n", out)

	out, stderr, err := execute(t, dir, "lint", good, bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 file(s)")
	assert.Contains(t, out, "✓ "+good)
	assert.Contains(t, stderr, "SYNTAX ERROR: "+bad)
	assert.Contains(t, stderr, bad+":")
}

func TestLintCommandNeedsFiles(t *testing.T) {
	_, _, err := execute(t, t.TempDir(), "lint")
	assert.Error(t, err)

	_, _, err = execute(t, t.TempDir(), "lint", "does-not-exist.php")
	assert.Error(t, err)
}

func TestLintGeneratedOutput(t *testing.T) {
	dir := project(t, "ast_json: false\n")
	_, _, err := execute(t, dir, "generate")
	require.NoError(t, err)

	out, _, err := execute(t, dir,
		"lint",
		filepath.Join(dir, "inc", "Rest", "BooksController.php"),
		filepath.Join(dir, "inc", "Rest", "GenresController.php"),
	)
	require.NoError(t, err)
	assert.Contains(t, out, "BooksController.php")
	assert.Contains(t, out, "GenresController.php")
}

func TestLintDirectory(t *testing.T) {
	dir := project(t, "")
	_, _, err := execute(t, dir, "generate")
	require.NoError(t, err)

	out, _, err := execute(t, dir, "lint", filepath.Join(dir, "inc"))
	require.NoError(t, err)
	assert.Equal(t, ""+
		"✓ "+filepath.Join(dir, "inc", "Rest", "BooksController.php")+"\n"+
		"✓ "+filepath.Join(dir, "inc", "Rest", "GenresController.php")+"\n", out)
}
