package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"github.com/vvka-141/tenantload/internal/config"
	"github.com/vvka-141/tenantload/internal/scaffold"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "Manage bundle templates",
	Long: `List and describe available bundle templates.

Templates are starting points for tenant data bundles, from a single rule
to a full reference and sample data layout.`,
}

var templatesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available templates",
	Long:  `List all available bundle templates with descriptions.`,
	RunE:  runTemplatesList,
}

var templatesDescribeCmd = &cobra.Command{
	Use:               "describe <template_name>",
	Short:             "Show detailed information about a template",
	Long:              `Show detailed information about a specific template including structure, features and the rules its manifest defines.`,
	Args:              RequireTemplateName,
	ValidArgsFunction: completeTemplateNames,
	RunE:              runTemplatesDescribe,
}

func init() {
	rootCmd.AddCommand(templatesCmd)
	templatesCmd.AddCommand(templatesListCmd)
	templatesCmd.AddCommand(templatesDescribeCmd)
}

func runTemplatesList(cmd *cobra.Command, args []string) error {
	templates, err := scaffold.ListTemplates()
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintln(out, "Available templates:")
	fmt.Fprintln(out)

	descriptions := getTemplateDescriptions()

	for _, t := range templates {
		desc, ok := descriptions[t]
		if !ok {
			desc = TemplateDescription{Short: "No description available"}
		}

		fmt.Fprintf(out, "  %-12s %s\n", t, desc.Short)
		if desc.Long != "" {
			fmt.Fprintf(out, "               %s\n", desc.Long)
		}
		if desc.BestFor != "" {
			fmt.Fprintf(out, "               Best for: %s\n", desc.BestFor)
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "Use: tenantload init <target_path> --template <template_name>")
	return nil
}

func runTemplatesDescribe(cmd *cobra.Command, args []string) error {
	templateName := args[0]

	if !scaffold.IsValidTemplate(templateName) {
		templates, _ := scaffold.ListTemplates()
		return fmt.Errorf("template '%s' not found. Available templates: %v\n\nUse 'tenantload templates list' to see all templates", templateName, templates)
	}

	descriptions := getTemplateDescriptions()
	desc, ok := descriptions[templateName]
	if !ok {
		return fmt.Errorf("no description available for template '%s'", templateName)
	}

	out := cmd.ErrOrStderr()
	fmt.Fprintf(out, "Template: %s\n", templateName)
	fmt.Fprintf(out, "Description: %s\n", desc.Short)
	if desc.Long != "" {
		fmt.Fprintf(out, "\n%s\n", desc.Long)
	}

	if len(desc.Structure) > 0 {
		fmt.Fprintln(out, "\nStructure:")
		for _, item := range desc.Structure {
			fmt.Fprintf(out, "  %s\n", item)
		}
	}

	if len(desc.Features) > 0 {
		fmt.Fprintln(out, "\nFeatures:")
		for _, feature := range desc.Features {
			fmt.Fprintf(out, "  - %s\n", feature)
		}
	}

	if desc.BestFor != "" {
		fmt.Fprintf(out, "\nBest for: %s\n", desc.BestFor)
	}

	if err := describeManifest(out, templateName); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nUsage:\n  tenantload init ./tenant-data --template %s\n", templateName)

	return nil
}

// describeManifest renders the template in memory and prints the headers and
// rules its manifest resolves to for the default tenant.
func describeManifest(out io.Writer, templateName string) error {
	bundle, err := scaffold.Render(scaffold.Options{ProjectName: templateName}, templateName)
	if err != nil {
		return fmt.Errorf("failed to render template '%s': %w", templateName, err)
	}

	manifest, err := config.LoadFrom(bundle)
	if err != nil {
		return fmt.Errorf("template '%s' has an invalid %s: %w", templateName, config.ConfigFileName, err)
	}
	rules, err := manifest.LoadRules()
	if err != nil {
		return fmt.Errorf("template '%s' has an invalid %s: %w", templateName, config.ConfigFileName, err)
	}

	if len(manifest.Headers) > 0 {
		fmt.Fprintf(out, "\nHeaders (tenant %s):\n", scaffold.DefaultTenant)
		names := make([]string, 0, len(manifest.Headers))
		for name := range manifest.Headers {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(out, "  %s: %s\n", name, manifest.Headers[name])
		}
	}

	fmt.Fprintln(out, "\nRules:")
	for _, rule := range rules {
		fmt.Fprintf(out, "  %-14s %s -> %s (%s)\n", rule.Key, rule.SourceDir(), rule.URIPath, rule.Strategy)
	}
	return nil
}

// TemplateDescription contains metadata about a template
type TemplateDescription struct {
	Short     string
	Long      string
	Structure []string
	Features  []string
	BestFor   string
}

func getTemplateDescriptions() map[string]TemplateDescription {
	return map[string]TemplateDescription{
		"basic": {
			Short: "Reference and sample data",
			Long:  "Groups and address types as reference data, users and their permissions as sample data.",
			Structure: []string{
				"├── tenantload.yaml",
				"├── ref-data/",
				"│   ├── addresstypes/",
				"│   └── groups/",
				"└── sample-data/",
				"    ├── perms/",
				"    └── users/",
			},
			Features: []string{
				"Identifiers from JSON content and from file names",
				"Templated endpoint (perms/users/%d/permissions)",
				"Tenant placeholder substituted at load time",
				"Extra accepted status for already-present records",
			},
			BestFor: "Modules shipping both reference and sample data",
		},
		"minimal": {
			Short: "A single reference data rule",
			Long:  "One loadReference rule and one JSON file.",
			Structure: []string{
				"├── tenantload.yaml",
				"└── ref-data/",
				"    └── items/",
			},
			Features: []string{
				"Smallest valid manifest",
			},
			BestFor: "Starting a bundle from scratch",
		},
	}
}
