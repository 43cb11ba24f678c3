package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicedesk/internal/config"
	"invoicedesk/internal/logger"
)

var version = "1.0.0"

// appConfig is loaded by the root command before any subcommand runs.
var appConfig *config.Config

var rootCmd = &cobra.Command{
	Use:   "invoicedesk",
	Short: "Browse, search and export invoices from the invoice service",
	Long: `invoicedesk fetches inbox (draft) and processed invoices from the invoice
service and shows them as cards or a table, with live search highlighting.

The same view is available as an interactive terminal UI (browse), a one-shot
listing (list), an HTTP API (serve) and a Google Sheets export (export).

Required environment variables:
  INVOICE_API_BASE_URL  - Root URL of the invoice service
  INVOICE_API_USER_ID   - Value sent as X-USER-ID
  INVOICE_API_CLIENT_ID - Value sent as X-CLIENT-ID`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: loadAppConfig,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.WithComponent("root")
		log.Info().
			Str("version", version).
			Msg("invoicedesk executed")

		fmt.Println("Welcome to invoicedesk!")
		fmt.Println("Use --help to see available commands and options.")
	},
}

func Execute() {
	log := logger.WithComponent("cmd")

	if err := rootCmd.Execute(); err != nil {
		log.Error().
			Err(err).
			Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: ./invoicedesk.yaml or ~/.config/invoicedesk/invoicedesk.yaml)")
}

// loadAppConfig reads configuration and reconfigures the logger from it.
func loadAppConfig(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")

	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	appConfig = cfg
	log := logger.WithComponent("config")
	log.Debug().
		Str("base_url", cfg.API.BaseURL).
		Str("timezone", cfg.Display.Timezone).
		Msg("Configuration loaded")
	return nil
}
