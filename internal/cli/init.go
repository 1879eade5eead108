package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/vvka-141/tenantload/internal/logging"
	"github.com/vvka-141/tenantload/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new tenant data bundle",
	Long: `Initialize a tenant data bundle into the specified directory.

The bundle contains:
- tenantload.yaml with the load rules
- Reference and sample data directories with example JSON files
- README with usage instructions

Target directory must be empty or non-existent (a .env file is allowed).

Examples:
  tenantload init .                         # Initialize in current directory
  tenantload init ./tenant-data             # Initialize in ./tenant-data
  tenantload init ./data --tenant college   # Write "college" as X-Okapi-Tenant

Available templates:
  basic   - Reference and sample data with every identifier strategy
  minimal - A single rule to start from

Use 'tenantload templates list' to see all available templates with descriptions.`,
	Args:              cobra.MinimumNArgs(0),
	ValidArgsFunction: completeDirectories,
	RunE:              runInit,
}

var (
	initTemplate string
	initTenant   string
	initList     bool
)

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVarP(&initTemplate, "template", "t", "basic", "Template to use (basic, minimal)")
	initCmd.Flags().StringVar(&initTenant, "tenant", scaffold.DefaultTenant, "Tenant written into the X-Okapi-Tenant header of the manifest")
	initCmd.Flags().BoolVar(&initList, "list", false, "List available templates")

	_ = initCmd.RegisterFlagCompletionFunc("template", completeTemplateNames)
}

func runInit(cmd *cobra.Command, args []string) error {
	if initList {
		return runTemplatesList(cmd, args)
	}

	if len(args) == 0 {
		return fmt.Errorf("missing required argument: <target_path>\n\nUsage: tenantload init <target_path> [flags]\n\nExamples:\n  tenantload init .             # Current directory\n  tenantload init ./tenant-data # Subdirectory\n\nUse 'tenantload init --list' to see available templates")
	}

	targetPath := args[0]

	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "tenant-data"
		}
	}
	verbose := getVerboseFlag(cmd)

	if !scaffold.IsValidTemplate(initTemplate) {
		templates, _ := scaffold.ListTemplates()
		return fmt.Errorf("invalid template '%s'. Available templates: %v\n\nUse 'tenantload templates list' for detailed descriptions", initTemplate, templates)
	}

	scaffolder := scaffold.NewScaffolder(logging.NewConsoleLogger(verbose))

	opts := scaffold.Options{ProjectName: projectName, Tenant: initTenant}
	if err := scaffolder.CreateProject(opts, initTemplate, targetPath); err != nil {
		return fmt.Errorf("failed to create bundle: %w", err)
	}

	errOut := cmd.ErrOrStderr()
	tree, err := scaffold.BuildFileTree(targetPath)
	if err != nil {
		fmt.Fprintf(errOut, "\n✓ Bundle initialized in '%s' using template '%s'\n\n", targetPath, initTemplate)
	} else {
		fmt.Fprintf(errOut, "\n✓ Bundle initialized using template '%s'\n\n", initTemplate)
		fmt.Fprintln(errOut, "Created structure:")
		fmt.Fprint(errOut, tree)
	}

	fmt.Fprintln(errOut, "\nNext steps:")
	fmt.Fprintf(errOut, "  tenantload plan %s --flag loadReference=true\n", targetPath)
	fmt.Fprintf(errOut, "  tenantload load %s --url http://localhost:9130 --flag loadReference=true\n", targetPath)

	return nil
}
