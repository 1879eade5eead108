package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/vvka-141/tenantload/internal/logging"
	"github.com/vvka-141/tenantload/internal/scaffold"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

// logFormats contains valid --log-format values for shell completion.
var logFormats = []string{logging.FormatText, logging.FormatJSON}

// completeTemplateNames provides shell completion for template names.
func completeTemplateNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	templates, err := scaffold.ListTemplates()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	return filterPrefix(templates, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeLogFormats provides shell completion for --log-format.
func completeLogFormats(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return filterPrefix(logFormats, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeFlagKeys offers the conventional trigger keys as key=true pairs.
func completeFlagKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	keys := []string{
		tenantload.KeyLoadReference + "=true",
		tenantload.KeyLoadSample + "=true",
	}
	return filterPrefix(keys, toComplete), cobra.ShellCompDirectiveNoFileComp
}

// completeDirectories provides shell completion for directory paths.
func completeDirectories(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return nil, cobra.ShellCompDirectiveFilterDirs
}

func filterPrefix(values []string, prefix string) []string {
	var matches []string
	for _, v := range values {
		if strings.HasPrefix(v, prefix) {
			matches = append(matches, v)
		}
	}
	return matches
}
