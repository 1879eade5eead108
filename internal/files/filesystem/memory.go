package filesystem

import (
	"io/fs"
	"testing/fstest"
	"time"
)

// MemoryFileSystem implements FileSystemProvider for in-memory testing.
// Reads are safe for concurrent use; AddFile must not race with reads.
type MemoryFileSystem struct {
	ioProvider
	files fstest.MapFS
}

// NewMemoryFileSystem creates an empty in-memory filesystem.
func NewMemoryFileSystem() *MemoryFileSystem {
	files := fstest.MapFS{}
	return &MemoryFileSystem{
		ioProvider: ioProvider{fsys: files},
		files:      files,
	}
}

// AddFile adds a file; parent directories are implied.
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time.
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.files[cleanRelative(filePath)] = &fstest.MapFile{
		Data:    []byte(content),
		Mode:    0644,
		ModTime: modTime,
	}
}

// AddDir adds an empty directory.
func (mfs *MemoryFileSystem) AddDir(dirPath string) {
	mfs.files[cleanRelative(dirPath)] = &fstest.MapFile{
		Mode:    0755 | fs.ModeDir,
		ModTime: time.Now(),
	}
}
