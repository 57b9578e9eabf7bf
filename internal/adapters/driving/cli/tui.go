package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seekr/internal/adapters/driving/tui"
	"github.com/custodia-labs/seekr/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/seekr/internal/core/services"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for seekr.

The status badge is filled by a single probe at startup and never blocks
searching.

Controls:
  Enter      - Search
  Tab        - Cycle result limit
  Alt+1..9   - Run a sample query
  ↑/k, ↓/j   - Navigate results
  n          - New search
  Esc        - Edit query
  s          - Settings (outside the query field)
  ?          - Toggle help
  q          - Quit (outside the query field)`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if newController == nil {
		return fmt.Errorf("tui: %w", errNotConfigured)
	}

	renderer := services.NewResultRenderer(styles.DefaultStyles().Mark)
	ports := tui.NewPorts(newController(renderer), healthMonitor, settingsService)

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
