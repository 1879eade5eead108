package filesystem

import (
	"io/fs"
	"path"
	"strings"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File is a directory entry with its metadata and content accessor.
type File interface {
	// Path returns the slash-separated path relative to the provider root.
	Path() string

	// Name returns the base name of the entry.
	Name() string

	// Info returns file metadata.
	Info() FileInfo

	// ReadContent returns the file's content.
	ReadContent() ([]byte, error)
}

// Directory is an opened directory of a provider.
type Directory interface {
	// Path returns the slash-separated path relative to the provider root.
	Path() string

	// Entries returns the direct children of the directory sorted by name.
	// Subdirectories are included; callers filter with Info().IsDir().
	Entries() ([]File, error)
}

// FileSystemProvider opens directories and reads files below a root.
type FileSystemProvider interface {
	// Open opens the directory at the given path.
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path.
	ReadFile(path string) ([]byte, error)

	// Stat returns file information for the given path.
	Stat(path string) (FileInfo, error)
}

// cleanRelative normalizes a caller path into a clean slash-separated path
// relative to the root. "" and "/" both map to ".".
func cleanRelative(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return "."
	}
	return path.Clean(p)
}

// joinRelative joins a directory and entry name, keeping "." out of the result.
func joinRelative(dir, name string) string {
	if dir == "." || dir == "" {
		return name
	}
	return dir + "/" + name
}
