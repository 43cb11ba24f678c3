package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"invoicedesk/internal/logger"
	"invoicedesk/internal/sheets"
	"invoicedesk/internal/view"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export invoices to Google Sheets",
	Long: `Fetch invoices and append them to a worksheet in Google Sheets.

The worksheet is created with a header row when it does not exist. An optional
search query exports only the invoices the view would show for it.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_SHEET_URL - Google Sheets URL to write to`,
	Example: `  # Export both tabs
  invoicedesk export

  # Export matching processed invoices to a named worksheet
  invoicedesk export --tab processed --query acme --worksheet "Q4 Invoices"

  # Show what would be written
  invoicedesk export --dry-run`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("tab", "all", "Tab to export (inbox, processed, all)")
	exportCmd.Flags().StringP("query", "q", "", "Export only invoices matching this search")
	exportCmd.Flags().String("worksheet", "", "Worksheet name (default: GOOGLE_SHEET_WORKSHEET or Invoices)")
	exportCmd.Flags().Bool("dry-run", false, "Fetch and convert but don't write to the sheet")
}

// exportTabs resolves the --tab flag.
func exportTabs(flag string) ([]view.Tab, error) {
	if flag == "" || flag == "all" {
		return []view.Tab{view.TabInbox, view.TabProcessed}, nil
	}
	tab, err := view.ParseTab(flag)
	if err != nil {
		return nil, err
	}
	return []view.Tab{tab}, nil
}

func runExport(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("export")

	tabFlag, _ := cmd.Flags().GetString("tab")
	query, _ := cmd.Flags().GetString("query")
	worksheet, _ := cmd.Flags().GetString("worksheet")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	tabs, err := exportTabs(tabFlag)
	if err != nil {
		return err
	}
	if worksheet != "" {
		appConfig.Sheets.Worksheet = worksheet
	}
	if !dryRun {
		if err := appConfig.ValidateSheets(); err != nil {
			return err
		}
	}

	ctrl, err := newController(appConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize invoice client: %w", err)
	}

	ctx, cancel := createSignalContext(log)
	defer cancel()

	log.Info().
		Str("tab", tabFlag).
		Str("query", query).
		Str("worksheet", appConfig.Sheets.Worksheet).
		Bool("dry_run", dryRun).
		Msg("Starting invoice export")

	if err := ctrl.Sync(ctx); err != nil {
		// Partial fetches are not exported.
		return handleFetchError(err, log)
	}

	rows, err := collectExportRows(ctrl, tabs, query, time.Now())
	if err != nil {
		return err
	}

	if dryRun {
		log.Info().Int("rows", len(rows)).Msg("Dry run, nothing written")
		for _, row := range rows {
			fmt.Printf("%-9s  %-24s  %-14s  %-13s  %s\n", row.Tab, row.VendorName, row.InvoiceNumber, row.DueDate, row.Amount)
		}
		return nil
	}

	if err := writeExport(ctx, rows); err != nil {
		return err
	}

	fmt.Printf("Exported %d invoices to %q\n", len(rows), appConfig.Sheets.Worksheet)
	return nil
}

// collectExportRows renders each tab through the controller so the export
// matches what the view shows for query.
func collectExportRows(ctrl *view.Controller, tabs []view.Tab, query string, exportedAt time.Time) ([]sheets.ExportRow, error) {
	if query != "" {
		ctrl.SetQuery(query)
	}

	var rows []sheets.ExportRow
	for _, tab := range tabs {
		if err := ctrl.SelectTab(tab); err != nil {
			return nil, err
		}
		rows = append(rows, sheets.RowsFromView(tab, ctrl.Rows(), exportedAt)...)
	}
	return rows, nil
}

func writeExport(ctx context.Context, rows []sheets.ExportRow) error {
	svc, err := sheets.NewSheetsService(ctx, appConfig.Sheets.URL)
	if err != nil {
		return fmt.Errorf("failed to initialize Google Sheets service: %w", err)
	}
	if err := svc.WriteInvoices(ctx, rows, appConfig.Sheets.Worksheet); err != nil {
		return fmt.Errorf("failed to write invoices: %w", err)
	}
	return nil
}
