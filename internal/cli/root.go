package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix namespaces the environment fallbacks of command flags,
// e.g. --url falls back to TENANTLOAD_URL.
const envPrefix = "TENANTLOAD"

var rootCmd = &cobra.Command{
	Use:   "tenantload",
	Short: "Tenant initialization data loader",
	Long: `tenantload uploads bundles of JSON reference and sample data to a
multi-tenant platform when a tenant is initialized.

A bundle is a directory with a tenantload.yaml manifest. Each manifest rule
maps a tenant flag (loadReference, loadSample, ...) to a directory of JSON
files and an endpoint. Every file of an enabled rule is upserted: a PUT to
<endpoint>/<id> first, and a POST to <endpoint> when the PUT answers 400 or 404.

Rules run in order; the files of one rule are sent concurrently. The first
failure stops the load.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid manifest, flags or headers
  11 - Endpoint unreachable
  13 - Load failed (unexpected status, bad identifier, unreadable file)
  14 - tenantload.yaml not found`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for tenantload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newEnv returns a viper instance reading TENANTLOAD_* variables.
// Flag names map to variables by upper-casing and replacing '-' with '_'.
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}
