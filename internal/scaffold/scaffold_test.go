package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/tenantload/internal/logging"
)

// TestIsDirectoryEmpty tests the directory emptiness validation
func TestIsDirectoryEmpty(t *testing.T) {
	tests := []struct {
		name          string
		files         []string // created inside the directory; nil means the directory is not created
		create        bool
		expectedEmpty bool
	}{
		{name: "nonexistent directory", create: false, expectedEmpty: true},
		{name: "empty directory", create: true, expectedEmpty: true},
		{name: "directory with file", create: true, files: []string{"test.txt"}, expectedEmpty: false},
		{name: "directory with subdirectory", create: true, files: []string{"ref-data/"}, expectedEmpty: false},
		{name: "directory with hidden file", create: true, files: []string{".hidden"}, expectedEmpty: false},
		{name: "directory with only .env", create: true, files: []string{".env"}, expectedEmpty: true},
		{name: "directory with existing manifest", create: true, files: []string{"tenantload.yaml"}, expectedEmpty: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "bundle")
			if tt.create {
				require.NoError(t, os.Mkdir(dir, 0755))
			}
			for _, f := range tt.files {
				if strings.HasSuffix(f, "/") {
					require.NoError(t, os.Mkdir(filepath.Join(dir, f), 0755))
					continue
				}
				require.NoError(t, os.WriteFile(filepath.Join(dir, f), []byte("content"), 0644))
			}

			isEmpty, err := isDirectoryEmpty(dir)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedEmpty, isEmpty)
		})
	}
}

func TestIsDirectoryEmpty_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	_, err := isDirectoryEmpty(path)
	assert.Error(t, err)
}

// TestCreateProject_RefusesNonEmptyDirectory tests that CreateProject refuses non-empty directories
func TestCreateProject_RefusesNonEmptyDirectory(t *testing.T) {
	targetDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(targetDir, "existing.txt"), []byte("existing content"), 0644))

	scaffolder := NewScaffolder(logging.NewNullLogger())
	err := scaffolder.CreateProject(Options{ProjectName: "testbundle"}, "basic", targetDir)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestCreateProject_UnknownTemplate(t *testing.T) {
	scaffolder := NewScaffolder(logging.NewNullLogger())
	err := scaffolder.CreateProject(Options{ProjectName: "x"}, "nope", filepath.Join(t.TempDir(), "x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "template 'nope' not found")
}

func TestCreateProject_Basic(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "mybundle")

	scaffolder := NewScaffolder(logging.NewNullLogger())
	require.NoError(t, scaffolder.CreateProject(Options{ProjectName: "mybundle", Tenant: "college"}, "basic", targetDir))

	for _, rel := range []string{
		"tenantload.yaml",
		"README.md",
		"ref-data/groups/staff.json",
		"ref-data/groups/faculty.json",
		"ref-data/addresstypes/home.json",
		"sample-data/users/0a246f61-d85f-42b6-8dcc-48d25a46690b.json",
	} {
		_, err := os.Stat(filepath.Join(targetDir, filepath.FromSlash(rel)))
		assert.NoError(t, err, "expected %s to be created", rel)
	}

	manifest, err := os.ReadFile(filepath.Join(targetDir, "tenantload.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `X-Okapi-Tenant: "college"`)
	assert.Contains(t, string(manifest), "bundle for mybundle")
	assert.NotContains(t, string(manifest), "{{")
}

func TestCreateProject_DefaultTenant(t *testing.T) {
	targetDir := filepath.Join(t.TempDir(), "b")

	require.NoError(t, NewScaffolder(logging.NewNullLogger()).CreateProject(Options{ProjectName: "b"}, "minimal", targetDir))

	manifest, err := os.ReadFile(filepath.Join(targetDir, "tenantload.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(manifest), `X-Okapi-Tenant: "`+DefaultTenant+`"`)
}

func TestListTemplates(t *testing.T) {
	templates, err := ListTemplates()
	require.NoError(t, err)
	assert.Equal(t, []string{"basic", "minimal"}, templates)
}

func TestBuildFileTree(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "ref-data", "groups"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "ref-data", "groups", "staff.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "tenantload.yaml"), []byte(""), 0644))

	tree, err := BuildFileTree(root)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(tree), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], "/"))
	assert.Equal(t, "├── ref-data/", lines[1])
	assert.Equal(t, "│   └── groups/", lines[2])
	assert.Equal(t, "│       └── staff.json", lines[3])
	assert.Equal(t, "└── tenantload.yaml", lines[4])
}

func TestNewScaffolder_NilLoggerPanics(t *testing.T) {
	assert.Panics(t, func() { NewScaffolder(nil) })
}
