package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vvka-141/tenantload/internal/config"
	"github.com/vvka-141/tenantload/internal/files/filesystem"
	"github.com/vvka-141/tenantload/internal/files/loader"
	"github.com/vvka-141/tenantload/internal/files/scanner"
	"github.com/vvka-141/tenantload/internal/logging"
	"github.com/vvka-141/tenantload/internal/params"
	"github.com/vvka-141/tenantload/internal/services"
	"github.com/vvka-141/tenantload/internal/tui"
	"github.com/vvka-141/tenantload/internal/ui"
	"github.com/vvka-141/tenantload/pkg/tenantload"
)

var loadCmd = &cobra.Command{
	Use:   "load <bundle_dir>",
	Short: "Load a tenant data bundle",
	Long: `Load the JSON files of a bundle into a tenant.

Every rule of tenantload.yaml whose key is enabled ("true") is run in order.
Each file is sent as a PUT to <endpoint>/<uri>/<id>; a 400 or 404 answer is
retried once as a POST to <endpoint>/<uri>.

Flags are merged from, lowest to highest precedence:
  --tenant-attributes   TenantAttributes JSON document (parameters array)
  --flags-file          .env files, later files win
  --flag                key=value pairs

The endpoint is --url (or TENANTLOAD_URL), else the X-Okapi-Url-to or
X-Okapi-Url header, else the manifest's endpoint.

Examples:
  tenantload load ./tenant-data --url http://localhost:9130 --flag loadReference=true
  tenantload load ./tenant-data --tenant diku --flags-file tenant.env
  tenantload load ./tenant-data --header X-Okapi-Url=http://okapi:9130 --tenant-attributes ta.json`,
	Args:              RequireBundleDir,
	ValidArgsFunction: completeDirectories,
	RunE:              runLoad,
}

var planCmd = &cobra.Command{
	Use:   "plan <bundle_dir>",
	Short: "Show the requests a load would send",
	Long: `Resolve every enabled rule and print the first request of each file
without sending anything. Identifier problems (missing "id" property,
unusable file names) are reported exactly as load would report them.

Accepts the same flags as load.`,
	Args:              RequireBundleDir,
	ValidArgsFunction: completeDirectories,
	RunE:              runPlan,
}

type loadFlagValues struct {
	url              string
	flags            []string
	flagsFiles       []string
	tenantAttributes string
	headers          []string
	tenant           string
	timeout          time.Duration
	concurrency      int
	logFormat        string
	pick             bool
}

var loadFlags loadFlagValues

func resetLoadFlags() {
	loadFlags = loadFlagValues{concurrency: -1}
}

// loadConfig is everything a load or plan needs, resolved from the manifest,
// the environment and the command line.
type loadConfig struct {
	BundleDir   string
	Rules       []tenantload.LoadRule
	Request     tenantload.LoadRequest
	Timeout     time.Duration
	Concurrency int
	Logger      tenantload.Logger
}

// pickKeys asks for the enabled rule keys when --pick is given.
var pickKeys = tui.PickKeys

// readFileFunc reads a local file named on the command line.
type readFileFunc func(path string) ([]byte, error)

func init() {
	rootCmd.AddCommand(loadCmd)
	rootCmd.AddCommand(planCmd)

	for _, cmd := range []*cobra.Command{loadCmd, planCmd} {
		registerLoadFlags(cmd)
	}
}

func registerLoadFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&loadFlags.url, "url", "",
		"Endpoint base URL (env: TENANTLOAD_URL).\n"+
			"Overrides the X-Okapi-Url-to and X-Okapi-Url headers and the manifest endpoint.")
	f.StringArrayVarP(&loadFlags.flags, "flag", "f", nil,
		"Tenant flag as key=value (can be specified multiple times).\n"+
			"A rule runs only when its key is exactly \"true\".\n"+
			"Example: --flag loadReference=true --flag loadSample=true")
	f.StringSliceVar(&loadFlags.flagsFiles, "flags-file", nil,
		"Load tenant flags from .env files (can be specified multiple times).\n"+
			"Later files override earlier ones; --flag overrides all files.")
	f.StringVar(&loadFlags.tenantAttributes, "tenant-attributes", "",
		"TenantAttributes JSON document whose parameters become tenant flags.\n"+
			"Lowest precedence of all flag sources.")
	f.StringArrayVarP(&loadFlags.headers, "header", "H", nil,
		"Request header as Name=value (can be specified multiple times).\n"+
			"X- headers are forwarded on every request; X-Okapi-Url sets the endpoint.")
	f.StringVar(&loadFlags.tenant, "tenant", "",
		"Tenant id sent as X-Okapi-Tenant (env: TENANTLOAD_TENANT)")
	f.DurationVar(&loadFlags.timeout, "timeout", 0,
		"Maximum time for the whole load (env: TENANTLOAD_TIMEOUT).\n"+
			"Defaults to the manifest timeout, then 3m.")
	f.IntVar(&loadFlags.concurrency, "concurrency", -1,
		"Files of one rule sent at the same time; 0 is unbounded (env: TENANTLOAD_CONCURRENCY).\n"+
			"Defaults to the manifest concurrency.")
	f.StringVar(&loadFlags.logFormat, "log-format", "",
		"Log format: text or json (env: TENANTLOAD_LOG_FORMAT, default text)")

	f.BoolVar(&loadFlags.pick, "pick", false,
		"Choose the rule keys to enable in an interactive picker.\n"+
			"Keys enabled by the other flag sources start checked.")

	_ = cmd.RegisterFlagCompletionFunc("log-format", completeLogFormats)
	_ = cmd.RegisterFlagCompletionFunc("flag", completeFlagKeys)
}

// readLocalFile reads path through an OS filesystem rooted at its directory.
func readLocalFile(path string) ([]byte, error) {
	return filesystem.NewOSFileSystem(filepath.Dir(path)).ReadFile(filepath.Base(path))
}

func buildLoadConfig(cmd *cobra.Command, args []string) (loadConfig, error) {
	return buildLoadConfigWith(cmd, args, readLocalFile)
}

func buildLoadConfigWith(cmd *cobra.Command, args []string, read readFileFunc) (loadConfig, error) {
	if err := RequireBundleDir(cmd, args); err != nil {
		return loadConfig{}, err
	}

	bundleDir := args[0]
	verbose := getVerboseFlag(cmd)

	_ = godotenv.Load()
	env := newEnv()

	logger, err := logging.New(stringSetting(cmd, env, "log-format", loadFlags.logFormat), verbose)
	if err != nil {
		return loadConfig{}, err
	}

	manifest, err := config.LoadFrom(filesystem.NewOSFileSystem(bundleDir))
	if err != nil {
		return loadConfig{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	rules, err := manifest.LoadRules()
	if err != nil {
		return loadConfig{}, fmt.Errorf("failed to load %s: %w", config.ConfigFileName, err)
	}

	flags, err := resolveTenantFlags(read, logger)
	if err != nil {
		return loadConfig{}, err
	}
	if loadFlags.pick {
		if flags, err = pickKeys(rules, flags); err != nil {
			return loadConfig{}, err
		}
	}

	headers, err := resolveHeaders(cmd, env, manifest)
	if err != nil {
		return loadConfig{}, err
	}

	endpointURL := stringSetting(cmd, env, "url", loadFlags.url)
	if endpointURL == "" {
		if _, ok := headers.Endpoint(); !ok {
			endpointURL = manifest.Endpoint
		}
	}

	timeout, err := resolveTimeout(cmd, env, manifest)
	if err != nil {
		return loadConfig{}, err
	}

	concurrency, err := resolveConcurrency(cmd, env, manifest)
	if err != nil {
		return loadConfig{}, err
	}

	return loadConfig{
		BundleDir: bundleDir,
		Rules:     rules,
		Request: tenantload.LoadRequest{
			Flags:       flags,
			Headers:     headers,
			EndpointURL: endpointURL,
		},
		Timeout:     timeout,
		Concurrency: concurrency,
		Logger:      logger,
	}, nil
}

// stringSetting returns the flag value when set, else TENANTLOAD_<NAME>.
func stringSetting(cmd *cobra.Command, env *viper.Viper, name, value string) string {
	if value != "" || cmd.Flags().Changed(name) {
		return value
	}
	return env.GetString(name)
}

func resolveTenantFlags(read readFileFunc, logger tenantload.Logger) (tenantload.Flags, error) {
	var fromAttributes map[string]string
	if loadFlags.tenantAttributes != "" {
		content, err := read(loadFlags.tenantAttributes)
		if err != nil {
			return nil, fmt.Errorf("failed to read tenant attributes '%s': %w", loadFlags.tenantAttributes, err)
		}
		fromAttributes, err = params.ParseTenantAttributes(content)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", tenantload.ErrInvalidConfig, err)
		}
	}

	fromFiles, err := loadFlagsFromFiles(read, loadFlags.flagsFiles, logger)
	if err != nil {
		return nil, err
	}

	fromCLI, err := params.ParseKeyValuePairs(loadFlags.flags)
	if err != nil {
		return nil, fmt.Errorf("invalid --flag: %w: %w", tenantload.ErrInvalidConfig, err)
	}

	return tenantload.Flags(params.Merge(fromAttributes, fromFiles, fromCLI)), nil
}

// loadFlagsFromFiles loads tenant flags from .env files.
// Later files override earlier ones.
func loadFlagsFromFiles(read readFileFunc, files []string, logger tenantload.Logger) (map[string]string, error) {
	flags := make(map[string]string)

	for _, file := range files {
		logger.Verbose("Loading flags from file: %s", file)

		content, err := read(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read flags file '%s': %w\n\nTip: Verify the path or use --flag to set flags directly:\n  tenantload load ./tenant-data --flag loadReference=true", file, err)
		}

		fileFlags, err := params.ParseEnvFile(content)
		if err != nil {
			return nil, fmt.Errorf("failed to parse flags file '%s': %w: %w\n\nTip: Verify the file format (KEY=VALUE)", file, tenantload.ErrInvalidConfig, err)
		}

		for k, v := range fileFlags {
			flags[k] = v
		}

		logger.Verbose("Loaded %d flags from file (total: %d)", len(fileFlags), len(flags))
	}

	return flags, nil
}

// resolveHeaders layers --header and --tenant over the manifest headers, and
// adds a request id when none was given. Names match case-insensitively, so a
// later layer replaces a header whatever its spelling.
func resolveHeaders(cmd *cobra.Command, env *viper.Viper, manifest *config.Manifest) (tenantload.Headers, error) {
	fromCLI, err := params.ParseKeyValuePairs(loadFlags.headers)
	if err != nil {
		return nil, fmt.Errorf("invalid --header: %w: %w", tenantload.ErrInvalidConfig, err)
	}

	headers := make(tenantload.Headers, len(manifest.Headers)+len(fromCLI)+1)
	for _, layer := range []map[string]string{manifest.Headers, fromCLI} {
		for name, value := range layer {
			headers.Set(name, value)
		}
	}
	if tenant := stringSetting(cmd, env, "tenant", loadFlags.tenant); tenant != "" {
		headers.Set(tenantload.HeaderTenant, tenant)
	}
	if !headers.Has(tenantload.HeaderRequestID) {
		headers[tenantload.HeaderRequestID] = uuid.NewString()
	}
	return headers, nil
}

func resolveTimeout(cmd *cobra.Command, env *viper.Viper, manifest *config.Manifest) (time.Duration, error) {
	if loadFlags.timeout > 0 {
		return loadFlags.timeout, nil
	}
	if cmd.Flags().Changed("timeout") {
		return 0, fmt.Errorf("--timeout must be positive: %w", tenantload.ErrInvalidConfig)
	}
	if raw := env.GetString("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return 0, fmt.Errorf("invalid %s_TIMEOUT %q: %w", envPrefix, raw, tenantload.ErrInvalidConfig)
		}
		return d, nil
	}
	return manifest.TimeoutDuration()
}

func resolveConcurrency(cmd *cobra.Command, env *viper.Viper, manifest *config.Manifest) (int, error) {
	if loadFlags.concurrency >= 0 {
		return loadFlags.concurrency, nil
	}
	if cmd.Flags().Changed("concurrency") {
		return 0, fmt.Errorf("--concurrency must not be negative: %w", tenantload.ErrInvalidConfig)
	}
	if env.IsSet("concurrency") {
		n := env.GetInt("concurrency")
		if n < 0 {
			return 0, fmt.Errorf("%s_CONCURRENCY must not be negative: %w", envPrefix, tenantload.ErrInvalidConfig)
		}
		return n, nil
	}
	return manifest.Concurrency, nil
}

func newLoadService(cfg loadConfig) (*services.LoadService, error) {
	svc := services.NewLoadService(
		scanner.NewScanner(filesystem.NewOSFileSystem(cfg.BundleDir)),
		loader.DefaultClientFactory,
		cfg.Logger,
		services.WithConcurrency(cfg.Concurrency),
	)
	if err := svc.AddRules(cfg.Rules); err != nil {
		return nil, err
	}
	return svc, nil
}

func syncLogger(logger tenantload.Logger) {
	if s, ok := logger.(interface{ Sync() error }); ok {
		_ = s.Sync()
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	cfg, err := buildLoadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer syncLogger(cfg.Logger)

	svc, err := newLoadService(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\n[INTERRUPT] Received interrupt signal, cancelling load...")
			cancel()
		case <-ctx.Done():
		}
	}()

	outcome, err := svc.Perform(ctx, cfg.Request)
	ui.NewPrinter(cmd.OutOrStdout(), ui.IsStyled()).Outcome(outcome, err)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	cfg, err := buildLoadConfig(cmd, args)
	if err != nil {
		return err
	}
	defer syncLogger(cfg.Logger)

	svc, err := newLoadService(cfg)
	if err != nil {
		return err
	}

	planned, err := svc.Plan(cfg.Request)
	if err != nil {
		return fmt.Errorf("plan failed: %w", err)
	}

	ui.NewPrinter(cmd.OutOrStdout(), ui.IsStyled()).Plan(planned)
	return nil
}
