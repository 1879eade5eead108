package filesystem

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// EmbedFileSystem implements FileSystemProvider for resources compiled into
// the binary. It plays the role a classpath plays for JVM services: a module
// embeds its reference and sample data and loads it at tenant init.
type EmbedFileSystem struct {
	ioProvider
	root string
}

// NewEmbedFileSystem creates a new filesystem provider wrapping an embed.FS.
// The root parameter specifies the subdirectory within the embed.FS to treat as the root.
// Panics if root is not a valid embed path.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	root = path.Clean(strings.ReplaceAll(root, "\\", "/"))

	sub, err := fs.Sub(embedFS, root)
	if err != nil {
		panic(fmt.Sprintf("invalid embed root %q: %v", root, err))
	}

	return &EmbedFileSystem{
		ioProvider: ioProvider{fsys: sub},
		root:       root,
	}
}

// Root returns the directory of the embed.FS used as root.
func (efs *EmbedFileSystem) Root() string { return efs.root }
