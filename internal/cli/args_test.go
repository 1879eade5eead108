package cli

import (
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

func TestRequireBundleDir(t *testing.T) {
	cmd := &cobra.Command{
		Use: "load <bundle_dir>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireBundleDir(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <bundle_dir>") {
			t.Errorf("expected error to contain 'missing required argument: <bundle_dir>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "--flag loadReference=true") {
			t.Errorf("expected error to contain an example, got: %s", err.Error())
		}
		if code := tenantload.ExitCodeForError(err); code != tenantload.ExitUsageError {
			t.Errorf("expected exit code %d, got %d", tenantload.ExitUsageError, code)
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireBundleDir(cmd, []string{"./tenant-data"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireBundleDir(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}

func TestRequireTemplateName(t *testing.T) {
	cmd := &cobra.Command{
		Use: "describe <template_name>",
	}

	t.Run("returns error when no args", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "missing required argument: <template_name>") {
			t.Errorf("expected error to contain 'missing required argument: <template_name>', got: %s", err.Error())
		}
		if !strings.Contains(err.Error(), "tenantload templates list") {
			t.Errorf("expected error to contain 'tenantload templates list', got: %s", err.Error())
		}
	})

	t.Run("returns nil when arg provided", func(t *testing.T) {
		if err := RequireTemplateName(cmd, []string{"basic"}); err != nil {
			t.Errorf("expected nil, got: %v", err)
		}
	})

	t.Run("returns error when too many args", func(t *testing.T) {
		err := RequireTemplateName(cmd, []string{"a", "b"})
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "accepts 1 arg") {
			t.Errorf("expected error to contain 'accepts 1 arg', got: %s", err.Error())
		}
	})
}
