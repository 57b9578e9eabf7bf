package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seekr/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check backend reachability",
	Long: `Probes the backend status endpoint once and prints the indicator.
Exits with an error unless the backend reports itself healthy.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if healthMonitor == nil {
		return fmt.Errorf("status: %w", errNotConfigured)
	}

	ind := healthMonitor.CheckStatus(cmd.Context())

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "Backend:    %s\n", backendURL)
	fmt.Fprintf(w, "Status:     %s\n", ind.Label)
	if ind.Collection != "" {
		fmt.Fprintf(w, "Collection: %s\n", ind.Collection)
	}

	if !ind.Level.Positive() {
		return fmt.Errorf("%w: %s", domain.ErrBackendUnavailable, ind.Label)
	}
	return nil
}
