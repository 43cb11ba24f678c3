package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicedesk/internal/logger"
	"invoicedesk/internal/render"
	"invoicedesk/internal/server"
	"invoicedesk/internal/view"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Fetch invoices once and print them",
	Long: `Fetch inbox and processed invoices, apply an optional search query and print
the selected tab as cards, a table or JSON.

The JSON form is the same document the HTTP API returns from GET /api/view.
The command fails only when neither category could be fetched.`,
	Example: `  # Inbox as cards
  invoicedesk list

  # Processed invoices as a table, filtered
  invoicedesk list --tab processed --layout list --query acme

  # Save the view as JSON
  invoicedesk list --json -o view.json`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().String("tab", "inbox", "Tab to show (inbox, processed)")
	listCmd.Flags().String("layout", "card", "Layout (card, list)")
	listCmd.Flags().StringP("query", "q", "", "Case-insensitive search across the displayed fields")
	listCmd.Flags().Int("width", 120, "Output width in columns for the card layout")
	listCmd.Flags().Bool("json", false, "Print the view as JSON")
	listCmd.Flags().StringP("output", "o", "", "Output file path for JSON (default: stdout)")
}

func runList(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("list")

	tabFlag, _ := cmd.Flags().GetString("tab")
	layoutFlag, _ := cmd.Flags().GetString("layout")
	query, _ := cmd.Flags().GetString("query")
	width, _ := cmd.Flags().GetInt("width")
	asJSON, _ := cmd.Flags().GetBool("json")
	outputPath, _ := cmd.Flags().GetString("output")

	tab, err := view.ParseTab(tabFlag)
	if err != nil {
		return err
	}
	layout, err := view.ParseLayout(layoutFlag)
	if err != nil {
		return err
	}
	if width <= 0 {
		return fmt.Errorf("width must be positive")
	}
	if outputPath != "" && !asJSON {
		return fmt.Errorf("--output requires --json")
	}

	ctrl, err := newController(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice client: %w", err)
	}

	ctx, cancel := createSignalContext(log)
	defer cancel()

	log.Info().
		Str("tab", string(tab)).
		Str("layout", string(layout)).
		Str("query", query).
		Msg("Fetching invoices")

	start := time.Now()
	if err := ctrl.Sync(ctx); err != nil {
		if syncFailed(ctrl.Snapshot()) {
			return handleFetchError(err, log)
		}
		log.Warn().Err(err).Msg("Some invoices could not be fetched")
	}

	if err := ctrl.SelectTab(tab); err != nil {
		return err
	}
	if err := ctrl.SelectLayout(layout); err != nil {
		return err
	}
	if query != "" {
		ctrl.OpenSearch()
		ctrl.SetQuery(query)
	}

	v := ctrl.View()
	log.Info().
		Int("rows", len(v.Rows)).
		Dur("duration", time.Since(start)).
		Msg("Invoices fetched")

	if asJSON {
		return writeJSON(server.NewViewResponse(v), outputPath, log)
	}

	fmt.Println(render.Header(v.LastSync))
	fmt.Println(render.Tabs(v.Tab, v.Layout))
	fmt.Println()
	fmt.Println(render.Body(v, width))
	return nil
}
