package filesystem

import (
	"os"
	"path/filepath"
)

// OSFileSystem implements FileSystemProvider for a bundle directory on disk.
// Paths passed to it are relative to the bundle root and cannot escape it.
type OSFileSystem struct {
	ioProvider
	root string
}

// NewOSFileSystem creates a provider rooted at dir. An empty dir means the
// working directory.
func NewOSFileSystem(dir string) *OSFileSystem {
	if dir == "" {
		dir = "."
	}
	return &OSFileSystem{
		ioProvider: ioProvider{fsys: os.DirFS(dir)},
		root:       dir,
	}
}

// Root returns the absolute path of the bundle root when it can be resolved.
func (p *OSFileSystem) Root() string {
	if abs, err := filepath.Abs(p.root); err == nil {
		return abs
	}
	return p.root
}
