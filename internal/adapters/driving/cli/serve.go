package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/seekr/internal/adapters/driving/web"
	"github.com/custodia-labs/seekr/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web front end",
	Long: `Serve a browser page with the search form, sample queries, a result
limit selector and a backend status badge.

The badge is filled by one status probe at startup. Prometheus metrics are
exposed at /metrics and a liveness probe at /healthz. Edits to the config
file are picked up without a restart (sample queries and default limit).`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from web.addr)")
	serveCmd.Flags().Bool("open", false, "open the page in the default browser")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if newController == nil || healthMonitor == nil {
		return fmt.Errorf("serve: %w", errNotConfigured)
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" && settingsService != nil {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		addr = settings.Web.Addr
	}

	server, err := web.NewServer(&web.Ports{
		NewController: newController,
		Health:        healthMonitor,
		Settings:      settingsService,
		Metrics:       metricsRegistry,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if configStore != nil {
		go func() {
			err := configStore.Watch(ctx, func() {
				if err := server.Reload(); err != nil {
					logger.Warn("Config reload failed: %v", err)
				}
			})
			if err != nil {
				logger.Warn("Config watch stopped: %v", err)
			}
		}()
	}

	pageURL := "http://" + displayAddr(addr)
	fmt.Fprintf(cmd.OutOrStdout(), "seekr web UI listening on %s\n", pageURL)

	if open, _ := cmd.Flags().GetBool("open"); open {
		if err := web.OpenBrowser(pageURL); err != nil {
			logger.Warn("Could not open browser: %v", err)
		}
	}
	return server.Run(ctx, addr)
}

// displayAddr makes ":8080" clickable.
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
