package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicedesk/internal/logger"
	"invoicedesk/internal/tui"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse invoices in an interactive terminal UI",
	Long: `Open a full-screen view of inbox and processed invoices.

Both categories are fetched on start. Switch tabs with tab, pick the card or
list layout with c and l, press / to search and esc to clear, r to sync again
and q to quit. Logs are written to a file so they do not disturb the screen.`,
	Example: `  # Browse with logs in ./invoicedesk.log
  invoicedesk browse

  # Write debug logs somewhere else
  LOG_LEVEL=debug invoicedesk browse --log-file /tmp/invoicedesk.log`,
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)

	browseCmd.Flags().String("log-file", "invoicedesk.log", "File that receives logs while the UI is open")
}

func runBrowse(cmd *cobra.Command, args []string) error {
	logFile, _ := cmd.Flags().GetString("log-file")
	if logFile == "" {
		return fmt.Errorf("--log-file must not be empty")
	}

	logConfig := appConfig.GetLoggerConfig()
	logConfig.Output = logFile
	logConfig.Format = "json"
	if err := logger.Setup(logConfig); err != nil {
		return fmt.Errorf("failed to redirect logs to %s: %w", logFile, err)
	}

	log := logger.WithComponent("browse")

	ctrl, err := newController(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice client: %w", err)
	}

	ctx, cancel := createSignalContext(log)
	defer cancel()

	log.Info().Msg("Starting interactive browser")

	if err := tui.Run(ctx, ctrl); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}

	log.Info().Msg("Interactive browser closed")
	return nil
}
