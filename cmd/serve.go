package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicedesk/internal/logger"
	"invoicedesk/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the invoice view over HTTP",
	Long: `Start an HTTP server exposing the invoice view as JSON.

Clients change the tab, layout and search query with POST requests and receive
the resulting view in every response. POST /api/sync fetches both categories
again. Invoices are fetched once at startup unless --no-sync is given.`,
	Example: `  # Listen on the configured address (SERVER_ADDR, default :8080)
  invoicedesk serve

  # Listen on localhost only
  invoicedesk serve --addr 127.0.0.1:9000`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "Listen address (default: SERVER_ADDR or :8080)")
	serveCmd.Flags().Bool("no-sync", false, "Skip the initial fetch")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("serve")

	addr, _ := cmd.Flags().GetString("addr")
	noSync, _ := cmd.Flags().GetBool("no-sync")
	if addr == "" {
		addr = appConfig.Server.Addr
	}

	ctrl, err := newController(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice client: %w", err)
	}

	ctx, cancel := createSignalContext(log)
	defer cancel()

	if !noSync {
		if err := ctrl.Sync(ctx); err != nil {
			log.Warn().Err(err).Msg("Initial sync completed with errors")
		}
	}

	if err := server.New(ctrl).Run(ctx, addr); err != nil {
		return fmt.Errorf("HTTP server failed: %w", err)
	}

	log.Info().Msg("HTTP server stopped")
	return nil
}
