package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vvka-141/tenantload/internal/config"
	"github.com/vvka-141/tenantload/internal/scaffold"
)

func resetInitFlags() {
	initTemplate = "basic"
	initTenant = scaffold.DefaultTenant
	initList = false
}

func TestRunInit_BasicTemplate(t *testing.T) {
	resetInitFlags()
	projectDir := filepath.Join(t.TempDir(), "tenant-data")

	var stderr bytes.Buffer
	initCmd.SetErr(&stderr)
	defer initCmd.SetErr(nil)

	if err := initCmd.RunE(initCmd, []string{projectDir}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	for _, rel := range []string{"tenantload.yaml", "README.md", "ref-data/groups/staff.json"} {
		if _, err := os.Stat(filepath.Join(projectDir, rel)); os.IsNotExist(err) {
			t.Errorf("Expected %s to exist", rel)
		}
	}

	manifest, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("generated manifest should be valid: %v", err)
	}
	if manifest.Headers["X-Okapi-Tenant"] != scaffold.DefaultTenant {
		t.Errorf("expected tenant %q, got %q", scaffold.DefaultTenant, manifest.Headers["X-Okapi-Tenant"])
	}

	if !strings.Contains(stderr.String(), "tenantload plan "+projectDir) {
		t.Errorf("expected next steps in output, got:\n%s", stderr.String())
	}
}

func TestRunInit_MinimalTemplateWithTenant(t *testing.T) {
	resetInitFlags()
	projectDir := filepath.Join(t.TempDir(), "data")

	initTemplate = "minimal"
	initTenant = "college"
	initCmd.SetErr(&bytes.Buffer{})
	defer initCmd.SetErr(nil)

	if err := initCmd.RunE(initCmd, []string{projectDir}); err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	manifest, err := config.Load(projectDir)
	if err != nil {
		t.Fatalf("generated manifest should be valid: %v", err)
	}
	if manifest.Headers["X-Okapi-Tenant"] != "college" {
		t.Errorf("expected tenant college, got %q", manifest.Headers["X-Okapi-Tenant"])
	}
}

func TestRunInit_InvalidTemplate(t *testing.T) {
	resetInitFlags()
	projectDir := filepath.Join(t.TempDir(), "data")

	initTemplate = "nonexistent"
	err := initCmd.RunE(initCmd, []string{projectDir})
	if err == nil {
		t.Fatal("Expected error for invalid template")
	}
	if !strings.Contains(err.Error(), "invalid template") {
		t.Errorf("Expected 'invalid template' error, got: %v", err)
	}
}

func TestRunInit_NonEmptyDirectory(t *testing.T) {
	resetInitFlags()
	targetDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(targetDir, "existing.txt"), []byte("data"), 0644); err != nil {
		t.Fatal(err)
	}

	err := initCmd.RunE(initCmd, []string{targetDir})
	if err == nil {
		t.Fatal("Expected error for non-empty directory")
	}
}

func TestRunInit_MissingTarget(t *testing.T) {
	resetInitFlags()

	err := initCmd.RunE(initCmd, []string{})
	if err == nil {
		t.Fatal("Expected error for missing target path")
	}
	if !strings.Contains(err.Error(), "missing required argument: <target_path>") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunInit_List(t *testing.T) {
	resetInitFlags()
	initList = true
	defer resetInitFlags()

	var stderr bytes.Buffer
	initCmd.SetErr(&stderr)
	defer initCmd.SetErr(nil)

	if err := initCmd.RunE(initCmd, nil); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !strings.Contains(stderr.String(), "minimal") {
		t.Errorf("expected template list, got:\n%s", stderr.String())
	}
}
