package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func newTestScanner() (*Scanner, *filesystem.MemoryFileSystem) {
	fs := filesystem.NewMemoryFileSystem()
	return NewScanner(fs), fs
}

func TestNewScanner_NilProvider(t *testing.T) {
	require.Panics(t, func() { NewScanner(nil) })
}

func TestListResources(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("ref-data/groups/staff.json", `{"id":"1"}`)
	fs.AddFile("ref-data/groups/faculty.json", `{"id":"2"}`)
	fs.AddFile("ref-data/groups/.keep", "")
	fs.AddFile("ref-data/groups/archive/old.json", `{"id":"3"}`)
	fs.AddFile("ref-data/other/x.json", `{"id":"4"}`)

	resources, err := s.ListResources("ref-data/groups")
	require.NoError(t, err)

	assert.Equal(t, []tenantload.Resource{
		{Path: "ref-data/groups/faculty.json", Name: "faculty.json"},
		{Path: "ref-data/groups/staff.json", Name: "staff.json"},
	}, resources)
}

func TestListResources_MissingDirectoryIsEmpty(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("ref-data/groups/staff.json", "{}")

	resources, err := s.ListResources("ref-data/missing")
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestListResources_EmptyDirectory(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddDir("sample-data/users")

	resources, err := s.ListResources("sample-data/users")
	require.NoError(t, err)
	assert.Empty(t, resources)
}

func TestListResources_PathIsAFile(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("ref-data/groups", "{}")

	_, err := s.ListResources("ref-data/groups")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tenantload.ErrResourceRead))
}

func TestReadResource(t *testing.T) {
	s, fs := newTestScanner()
	fs.AddFile("ref-data/groups/staff.json", `{"id":"1"}`)

	resources, err := s.ListResources("ref-data/groups")
	require.NoError(t, err)
	require.Len(t, resources, 1)

	content, err := s.ReadResource(resources[0])
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, string(content))
}

func TestReadResource_Missing(t *testing.T) {
	s, _ := newTestScanner()

	_, err := s.ReadResource(tenantload.Resource{Path: "gone/x.json", Name: "x.json"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, tenantload.ErrResourceRead))
	assert.Contains(t, err.Error(), "gone/x.json")
}
