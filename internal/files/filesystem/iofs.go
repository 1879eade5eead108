package filesystem

import (
	"fmt"
	"io/fs"
)

// ioFile implements File for entries of an fs.FS.
type ioFile struct {
	fsys    fs.FS
	relPath string
	info    fs.FileInfo
}

func (f *ioFile) Path() string   { return f.relPath }
func (f *ioFile) Name() string   { return f.info.Name() }
func (f *ioFile) Info() FileInfo { return f.info }

func (f *ioFile) ReadContent() ([]byte, error) {
	return fs.ReadFile(f.fsys, f.relPath)
}

// ioDirectory implements Directory for an fs.FS.
type ioDirectory struct {
	fsys    fs.FS
	relPath string
}

func (d *ioDirectory) Path() string { return d.relPath }

func (d *ioDirectory) Entries() ([]File, error) {
	// fs.ReadDir sorts by file name
	entries, err := fs.ReadDir(d.fsys, d.relPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", d.relPath, err)
	}

	files := make([]File, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to get file info for %s: %w", entry.Name(), err)
		}
		files = append(files, &ioFile{
			fsys:    d.fsys,
			relPath: joinRelative(d.relPath, entry.Name()),
			info:    info,
		})
	}
	return files, nil
}

// ioProvider implements FileSystemProvider on top of any fs.FS.
// The embedded, OS and in-memory providers share it.
type ioProvider struct {
	fsys fs.FS
}

func (p *ioProvider) resolve(name string) (string, error) {
	rel := cleanRelative(name)
	if !fs.ValidPath(rel) {
		return "", &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}
	return rel, nil
}

// Open implements FileSystemProvider.Open
func (p *ioProvider) Open(openPath string) (Directory, error) {
	rel, err := p.resolve(openPath)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(p.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}

	return &ioDirectory{fsys: p.fsys, relPath: rel}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (p *ioProvider) ReadFile(filePath string) ([]byte, error) {
	rel, err := p.resolve(filePath)
	if err != nil {
		return nil, err
	}

	content, err := fs.ReadFile(p.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// Stat implements FileSystemProvider.Stat
func (p *ioProvider) Stat(statPath string) (FileInfo, error) {
	rel, err := p.resolve(statPath)
	if err != nil {
		return nil, err
	}

	info, err := fs.Stat(p.fsys, rel)
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}
