package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/seekr/internal/core/domain"
	"github.com/custodia-labs/seekr/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the settings stored in the configuration file.

Environment variables named SEEKR_<KEY> (dots become underscores, e.g.
SEEKR_BACKEND_URL) and a .env file in the working directory override the
file; "show" prints the effective values.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one effective setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsGet,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> [value]",
	Short: "Store one setting",
	Long: `Store one setting in the configuration file after validating it.

Sample queries are comma separated. When setting backend.api_key without a
value, the key is read from the terminal without echo.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file location",
	Args:  cobra.NoArgs,
	RunE:  runSettingsPath,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsGetCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsPathCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Backend]")
	cmd.Printf("  URL: %s\n", settings.Backend.URL)
	cmd.Printf("  Timeout: %ds\n", settings.Backend.TimeoutSec)
	if settings.Backend.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Backend.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	if settings.Backend.RateLimit > 0 {
		cmd.Printf("  Rate Limit: %g req/s\n", settings.Backend.RateLimit)
	} else {
		cmd.Printf("  Rate Limit: unlimited\n")
	}
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Default Limit: %d\n", settings.Search.DefaultLimit)
	cmd.Println("  Sample Queries:")
	for i, q := range settings.Search.SampleQueries {
		cmd.Printf("    %d. %s\n", i+1, q)
	}
	cmd.Println()

	cmd.Println("[Web]")
	cmd.Printf("  Address: %s\n", settings.Web.Addr)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	value, err := settingValue(settings, args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}

	key := args[0]
	var value string
	switch {
	case len(args) == 2:
		value = args[1]
	case key == services.KeyBackendAPIKey:
		cmd.Print("API key: ")
		value = readPassword()
		cmd.Println()
	default:
		return fmt.Errorf("%w: %s requires a value", domain.ErrInvalidInput, key)
	}

	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if key == services.KeyBackendAPIKey {
		cmd.Printf("Set %s = %s\n", key, maskAPIKey(value))
		return nil
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func runSettingsPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return fmt.Errorf("settings: %w", errNotConfigured)
	}
	cmd.Println(configStore.Path())
	return nil
}

// settingValue formats one effective setting for display.
func settingValue(settings *domain.AppSettings, key string) (string, error) {
	switch key {
	case services.KeyBackendURL:
		return settings.Backend.URL, nil
	case services.KeyBackendTimeout:
		return fmt.Sprintf("%d", settings.Backend.TimeoutSec), nil
	case services.KeyBackendAPIKey:
		if settings.Backend.APIKey == "" {
			return "(not set)", nil
		}
		return maskAPIKey(settings.Backend.APIKey), nil
	case services.KeyBackendRate:
		return fmt.Sprintf("%g", settings.Backend.RateLimit), nil
	case services.KeySearchLimit:
		return fmt.Sprintf("%d", settings.Search.DefaultLimit), nil
	case services.KeySearchSamples:
		return strings.Join(settings.Search.SampleQueries, ", "), nil
	case services.KeyWebAddr:
		return settings.Web.Addr, nil
	default:
		return "", fmt.Errorf("%w: unknown key %q (known: %s)",
			domain.ErrInvalidInput, key, strings.Join(settingsService.Keys(), ", "))
	}
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
