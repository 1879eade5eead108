// Package scaffold creates starter tenant data bundles from embedded templates.
package scaffold

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

//go:embed all:templates
var templatesFS embed.FS

// GetTemplatesFS returns the embedded templates filesystem for testing purposes.
// This allows tests to access embedded templates without filesystem I/O.
func GetTemplatesFS() embed.FS {
	return templatesFS
}

// Options are the values substituted into a template.
type Options struct {
	// ProjectName replaces {{PROJECT_NAME}}.
	ProjectName string

	// Tenant replaces {{TENANT}}; defaults to "diku".
	Tenant string
}

// DefaultTenant is the tenant written into templates when none is given.
const DefaultTenant = "diku"

// Scaffolder handles bundle initialization from templates
type Scaffolder struct {
	logger tenantload.Logger
}

// NewScaffolder creates a new Scaffolder instance
func NewScaffolder(logger tenantload.Logger) *Scaffolder {
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{
		logger: logger,
	}
}

// CreateProject creates a new bundle from a template
func (s *Scaffolder) CreateProject(opts Options, templateName, targetPath string) error {
	templatePath := fmt.Sprintf("templates/%s", templateName)
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		return fmt.Errorf("template '%s' not found: %w", templateName, err)
	}

	isEmpty, err := isDirectoryEmpty(targetPath)
	if err != nil {
		return fmt.Errorf("failed to check target directory: %w", err)
	}
	if !isEmpty {
		return fmt.Errorf("target directory '%s' is not empty\n\ntenantload init requires an empty directory to avoid overwriting existing files.\n\nOptions:\n• Choose a different location\n• Remove existing files manually\n• Use a new directory name", targetPath)
	}

	if err := os.MkdirAll(targetPath, 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	if opts.Tenant == "" {
		opts.Tenant = DefaultTenant
	}
	s.logger.Verbose("Creating bundle '%s' at %s with template '%s'", opts.ProjectName, targetPath, templateName)

	if err := s.copyTemplateFiles(templatePath, targetPath, opts); err != nil {
		return fmt.Errorf("failed to copy template files: %w", err)
	}

	s.logger.Verbose("Bundle created successfully")
	return nil
}

// copyTemplateFiles recursively copies files from embedded template to target directory
func (s *Scaffolder) copyTemplateFiles(templatePath, targetPath string, opts Options) error {
	replacer := strings.NewReplacer(
		"{{PROJECT_NAME}}", opts.ProjectName,
		"{{TENANT}}", opts.Tenant,
	)

	return fs.WalkDir(templatesFS, templatePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == templatePath {
			return nil
		}

		relPath := strings.TrimPrefix(path, templatePath+"/")
		targetFilePath := filepath.Join(targetPath, filepath.FromSlash(relPath))

		if d.IsDir() {
			s.logger.Verbose("Creating directory: %s", relPath)
			return os.MkdirAll(targetFilePath, 0755)
		}

		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		s.logger.Verbose("Creating file: %s", relPath)
		if err := os.WriteFile(targetFilePath, []byte(replacer.Replace(string(content))), 0644); err != nil {
			return fmt.Errorf("failed to write file %s: %w", targetFilePath, err)
		}

		return nil
	})
}

// Render returns a template as an in-memory bundle without touching the disk.
func Render(opts Options, templateName string) (*filesystem.MemoryFileSystem, error) {
	templatePath := "templates/" + templateName
	if _, err := templatesFS.ReadDir(templatePath); err != nil {
		return nil, fmt.Errorf("template '%s' not found: %w", templateName, err)
	}
	if opts.Tenant == "" {
		opts.Tenant = DefaultTenant
	}
	replacer := strings.NewReplacer("{{PROJECT_NAME}}", opts.ProjectName, "{{TENANT}}", opts.Tenant)

	mfs := filesystem.NewMemoryFileSystem()
	err := fs.WalkDir(templatesFS, templatePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		content, err := templatesFS.ReadFile(path)
		if err != nil {
			return err
		}
		mfs.AddFile(strings.TrimPrefix(path, templatePath+"/"), replacer.Replace(string(content)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mfs, nil
}

// ListTemplates returns available template names
func ListTemplates() ([]string, error) {
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}

	var templates []string
	for _, entry := range entries {
		if entry.IsDir() {
			templates = append(templates, entry.Name())
		}
	}

	return templates, nil
}

// isDirectoryEmpty reports whether a bundle can be created at path: it does
// not exist yet, or it is a directory holding nothing but a .env file.
func isDirectoryEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("path exists but is not a directory")
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return false, fmt.Errorf("failed to read directory: %w", err)
	}

	// A local .env holds connection settings and does not clash with a template.
	for _, entry := range entries {
		if entry.Name() != ".env" {
			return false, nil
		}
	}
	return true, nil
}

// BuildFileTree renders the directory below rootPath as an indented tree,
// directories first marked with a trailing slash.
func BuildFileTree(rootPath string) (string, error) {
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = rootPath
	}

	var sb strings.Builder
	sb.WriteString(absPath + "/\n")
	if err := writeTree(&sb, rootPath, ""); err != nil {
		return "", fmt.Errorf("failed to build file tree: %w", err)
	}
	return sb.String(), nil
}

func writeTree(sb *strings.Builder, dir, indent string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		branch, childIndent := "├── ", indent+"│   "
		if i == len(entries)-1 {
			branch, childIndent = "└── ", indent+"    "
		}

		name := entry.Name()
		if entry.IsDir() {
			name += "/"
		}
		sb.WriteString(indent + branch + name + "\n")

		if entry.IsDir() {
			if err := writeTree(sb, filepath.Join(dir, entry.Name()), childIndent); err != nil {
				return err
			}
		}
	}
	return nil
}

// IsValidTemplate reports whether name is an embedded template.
func IsValidTemplate(name string) bool {
	templates, err := ListTemplates()
	if err != nil {
		return false
	}
	for _, t := range templates {
		if t == name {
			return true
		}
	}
	return false
}
