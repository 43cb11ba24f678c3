package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"invoicedesk/internal/config"
	"invoicedesk/internal/invoice"
	"invoicedesk/internal/view"
)

// createSignalContext returns a context canceled on SIGINT or SIGTERM.
func createSignalContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, shutting down")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}

// newController wires the invoice client into a view controller.
func newController(cfg *config.Config) (*view.Controller, error) {
	const op = "newController"

	if err := cfg.ValidateAPI(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("%s: invalid timezone: %w", op, err)
	}

	client, err := invoice.NewClient(invoice.ClientConfig{
		BaseURL:  cfg.API.BaseURL,
		UserID:   cfg.API.UserID,
		ClientID: cfg.API.ClientID,
		Timeout:  cfg.API.Timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return view.New(client, view.WithLocation(loc)), nil
}

// syncFailed reports whether every category failed in the last sync.
func syncFailed(snap view.State) bool {
	for _, category := range invoice.Categories {
		if snap.Errors[category] == nil {
			return false
		}
	}
	return true
}

// handleFetchError turns a fetch failure into a message for the terminal.
func handleFetchError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Invoice fetch failed")

	var netErr *invoice.NetworkError
	var schemaErr *invoice.SchemaError

	switch {
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("invoice fetch was canceled")
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("invoice fetch timed out. Try increasing INVOICE_API_TIMEOUT")
	case errors.As(err, &netErr) && (netErr.StatusCode == 401 || netErr.StatusCode == 403):
		return fmt.Errorf("the invoice service rejected the credentials (status %d). Check INVOICE_API_USER_ID and INVOICE_API_CLIENT_ID", netErr.StatusCode)
	case errors.As(err, &netErr) && netErr.StatusCode != 0:
		return fmt.Errorf("the invoice service responded with status %d", netErr.StatusCode)
	case errors.As(err, &netErr):
		return fmt.Errorf("the invoice service is unreachable. Check INVOICE_API_BASE_URL: %w", err)
	case errors.As(err, &schemaErr):
		return fmt.Errorf("the invoice service returned an unexpected response (%s): %w", schemaErr.Field, err)
	default:
		return fmt.Errorf("invoice fetch failed: %w", err)
	}
}

// writeJSON writes v as indented JSON to outputPath, or stdout when empty.
func writeJSON(v interface{}, outputPath string, log zerolog.Logger) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal output to JSON")
		return fmt.Errorf("failed to create JSON output: %w", err)
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
			log.Error().
				Err(err).
				Str("output_file", outputPath).
				Msg("Failed to write output file")
			return fmt.Errorf("failed to write output file: %w", err)
		}

		log.Info().
			Str("output_file", outputPath).
			Int("bytes", len(jsonData)).
			Msg("Output written to file")
		return nil
	}

	if _, err := os.Stdout.Write(jsonData); err != nil {
		log.Error().Err(err).Msg("Failed to write to stdout")
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Println()
	return nil
}
