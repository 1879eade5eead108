package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// Scanner lists and reads the data files of a rule's source directory.
// Only regular files directly under the directory are considered; nested
// directories and dotfiles (.keep, .DS_Store) are skipped.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
}

var _ tenantload.ResourceScanner = (*Scanner)(nil)

// NewScanner creates a new resource scanner over the given provider.
// Panics if fsProvider is nil.
func NewScanner(fsProvider filesystem.FileSystemProvider) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		fsProvider: fsProvider,
	}
}

// ListResources returns the files directly under dir in name order.
// A directory that does not exist yields an empty list, the same as a
// directory with no files.
func (s *Scanner) ListResources(dir string) ([]tenantload.Resource, error) {
	d, err := s.fsProvider.Open(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w for path %s: %w", tenantload.ErrResourceRead, dir, err)
	}

	entries, err := d.Entries()
	if err != nil {
		return nil, fmt.Errorf("%w for path %s: %w", tenantload.ErrResourceRead, dir, err)
	}

	resources := make([]tenantload.Resource, 0, len(entries))
	for _, entry := range entries {
		if entry.Info().IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		resources = append(resources, tenantload.Resource{
			Path: entry.Path(),
			Name: entry.Name(),
		})
	}

	return resources, nil
}

// ReadResource reads the content of a resource returned by ListResources.
func (s *Scanner) ReadResource(res tenantload.Resource) ([]byte, error) {
	content, err := s.fsProvider.ReadFile(res.Path)
	if err != nil {
		return nil, fmt.Errorf("%w for url=%s: %w", tenantload.ErrResourceRead, res.Path, err)
	}
	return content, nil
}
