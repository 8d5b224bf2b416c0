// Package workspace writes generated files. Writes whose content hash
// matches the file already on disk are skipped.
package workspace

import (
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/wpkernel/phpgen/internal/errors"
)

// Status describes what a write did.
type Status string

const (
	StatusWritten   Status = "written"
	StatusUnchanged Status = "unchanged"
	StatusPlanned   Status = "planned"
)

// Result reports one write.
type Result struct {
	Path   string
	Status Status
	Hash   string
}

// Workspace is the output boundary used by the generator.
type Workspace interface {
	Write(path string, content []byte) (Result, error)
	Read(path string) ([]byte, error)
}

// FS is a Workspace over a billy filesystem.
type FS struct {
	fs     billy.Filesystem
	dryRun bool
}

// Option configures an FS.
type Option func(*FS)

// WithDryRun reports what would be written without touching the filesystem.
func WithDryRun(dryRun bool) Option {
	return func(w *FS) { w.dryRun = dryRun }
}

// New wraps fs.
func New(fs billy.Filesystem, opts ...Option) *FS {
	w := &FS{fs: fs}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// NewOS creates a workspace rooted at dir on the local disk.
func NewOS(dir string, opts ...Option) *FS {
	return New(osfs.New(dir), opts...)
}

// NewMemory creates an in-memory workspace.
func NewMemory(opts ...Option) *FS {
	return New(memfs.New(), opts...)
}

// Root returns the filesystem root.
func (w *FS) Root() string {
	return w.fs.Root()
}

// Write stores content at path, creating parent directories. Identical
// content already present is left untouched.
func (w *FS) Write(path string, content []byte) (Result, error) {
	path = filepath.ToSlash(filepath.Clean(path))
	result := Result{Path: path, Hash: HashContent(content)}

	if existing, err := hashFile(w.fs, path); err == nil && existing == result.Hash {
		result.Status = StatusUnchanged
		return result, nil
	}

	if w.dryRun {
		result.Status = StatusPlanned
		return result, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return result, errors.NewWorkspaceWrite(path, err)
		}
	}
	if err := util.WriteFile(w.fs, path, content, 0o644); err != nil {
		return result, errors.NewWorkspaceWrite(path, err)
	}

	result.Status = StatusWritten
	return result, nil
}

// Read returns the content stored at path.
func (w *FS) Read(path string) ([]byte, error) {
	return util.ReadFile(w.fs, filepath.ToSlash(filepath.Clean(path)))
}

// Files lists every regular file under dir, sorted.
func (w *FS) Files(dir string) ([]string, error) {
	var files []string
	err := util.Walk(w.fs, dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, filepath.ToSlash(path))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
