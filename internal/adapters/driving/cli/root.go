// Package cli provides the seekr command line interface.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seekr/internal/core/ports/driven"
	"github.com/custodia-labs/seekr/internal/core/ports/driving"
	"github.com/custodia-labs/seekr/internal/logger"
	"github.com/custodia-labs/seekr/internal/metrics"
)

// skipWiring marks commands that run without backend services.
const skipWiring = "seekr.skip-wiring"

// version is set by SetVersion from the build.
var version = "dev"

// errNotConfigured is returned when a command runs before wiring.
var errNotConfigured = errors.New("services not configured")

// Options are the global flags that shape wiring.
type Options struct {
	Verbose   bool
	Backend   string
	ConfigDir string
	Ephemeral bool
}

// Services are the wired ports the commands use.
type Services struct {
	Settings driving.SettingsService
	Health   driving.HealthMonitor

	// NewController returns a fresh controller rendering through r.
	// A nil r uses plain unmarked text.
	NewController func(r driving.ResultRenderer) driving.SearchController

	Metrics     *metrics.Metrics
	ConfigStore driven.ConfigStore

	// BackendURL is the effective backend base URL.
	BackendURL string
}

// Wiring builds Services once global flags are parsed.
type Wiring func(opts Options) (*Services, error)

var (
	opts   Options
	wiring Wiring

	settingsService driving.SettingsService
	healthMonitor   driving.HealthMonitor
	newController   func(driving.ResultRenderer) driving.SearchController
	metricsRegistry *metrics.Metrics
	configStore     driven.ConfigStore
	backendURL      string
)

var rootCmd = &cobra.Command{
	Use:   "seekr",
	Short: "Semantic search client for a vector-search backend",
	Long: `seekr submits natural-language queries to a vector-search backend and
shows ranked results with the query terms highlighted.

It offers a one-shot search command, an interactive terminal UI, a small
web front end and an MCP tool server, all sharing one configuration in
~/.seekr/config.toml.`,
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log requests and responses to stderr")
	flags.StringVar(&opts.Backend, "backend", "", "backend base URL (overrides backend.url)")
	flags.StringVar(&opts.ConfigDir, "config-dir", "", "configuration directory (default ~/.seekr)")
	flags.BoolVar(&opts.Ephemeral, "ephemeral", false, "keep settings in memory only")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetWiring installs the function that builds services after flag parsing.
func SetWiring(w Wiring) {
	wiring = w
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func preRun(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(opts.Verbose)

	if cmd.Annotations[skipWiring] == "true" || wiring == nil {
		return nil
	}

	svc, err := wiring(opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	applyServices(svc)
	return nil
}

func applyServices(svc *Services) {
	settingsService = svc.Settings
	healthMonitor = svc.Health
	newController = svc.NewController
	metricsRegistry = svc.Metrics
	configStore = svc.ConfigStore
	backendURL = svc.BackendURL
}
