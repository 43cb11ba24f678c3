package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"invoicedesk/internal/config"
	"invoicedesk/internal/invoice"
	"invoicedesk/internal/view"
)

type stubSource struct{}

func (stubSource) FetchDrafts(ctx context.Context) ([]invoice.Invoice, error) {
	return []invoice.Invoice{
		{Summary: invoice.Summary{VendorName: "Acme Corp", InvoiceNumber: "INV1", DueDate: "2024-12-23"}},
		{Summary: invoice.Summary{VendorName: "Globex", InvoiceNumber: "INV2"}},
	}, nil
}

func (stubSource) FetchProcessed(ctx context.Context) ([]invoice.ProcessedInvoice, error) {
	return []invoice.ProcessedInvoice{
		{Summary: invoice.Summary{VendorName: "Acme Corp", InvoiceNumber: "P-1"}, Currency: "INR"},
	}, nil
}

func TestHandleFetchError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "canceled",
			err:  fmt.Errorf("sync: %w", context.Canceled),
			want: "canceled",
		},
		{
			name: "timeout",
			err:  context.DeadlineExceeded,
			want: "INVOICE_API_TIMEOUT",
		},
		{
			name: "unauthorized",
			err:  invoice.NewNetworkError("FetchDrafts", invoice.CategoryDraft, 401, invoice.ErrUnexpectedStatus),
			want: "rejected the credentials (status 401)",
		},
		{
			name: "server error",
			err:  invoice.NewNetworkError("FetchDrafts", invoice.CategoryDraft, 502, invoice.ErrUnexpectedStatus),
			want: "status 502",
		},
		{
			name: "unreachable",
			err:  invoice.NewNetworkError("FetchDrafts", invoice.CategoryDraft, 0, invoice.ErrRequestFailed),
			want: "unreachable",
		},
		{
			name: "schema inside join",
			err:  errors.Join(invoice.NewSchemaError("FetchProcessed", invoice.CategoryProcessed, invoice.ListingField, invoice.ErrMissingListing)),
			want: "unexpected response (" + invoice.ListingField + ")",
		},
		{
			name: "other",
			err:  errors.New("boom"),
			want: "invoice fetch failed: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := handleFetchError(tt.err, zerolog.Nop())
			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("handleFetchError() = %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestExportTabs(t *testing.T) {
	tests := []struct {
		flag    string
		want    []view.Tab
		wantErr bool
	}{
		{flag: "", want: []view.Tab{view.TabInbox, view.TabProcessed}},
		{flag: "all", want: []view.Tab{view.TabInbox, view.TabProcessed}},
		{flag: "processed", want: []view.Tab{view.TabProcessed}},
		{flag: "inbox", want: []view.Tab{view.TabInbox}},
		{flag: "archive", wantErr: true},
	}
	for _, tt := range tests {
		got, err := exportTabs(tt.flag)
		if tt.wantErr {
			if err == nil {
				t.Errorf("exportTabs(%q) expected error", tt.flag)
			}
			continue
		}
		if err != nil || len(got) != len(tt.want) {
			t.Errorf("exportTabs(%q) = %v, %v", tt.flag, got, err)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("exportTabs(%q)[%d] = %s, want %s", tt.flag, i, got[i], tt.want[i])
			}
		}
	}
}

func TestCollectExportRows(t *testing.T) {
	ctrl := view.New(stubSource{}, view.WithLocation(time.UTC))
	if err := ctrl.Sync(context.Background()); err != nil {
		t.Fatalf("Sync() error = %v", err)
	}

	at := time.Date(2024, 12, 23, 9, 0, 0, 0, time.UTC)
	rows, err := collectExportRows(ctrl, []view.Tab{view.TabInbox, view.TabProcessed}, "acme", at)
	if err != nil {
		t.Fatalf("collectExportRows() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("collectExportRows() = %d rows, want 2", len(rows))
	}
	if rows[0].Tab != "Inbox" || rows[0].InvoiceNumber != "INV1" || rows[0].DueDate != "23 Dec, 2024" {
		t.Errorf("inbox row = %+v", rows[0])
	}
	if rows[1].Tab != "Processed" || rows[1].InvoiceNumber != "P-1" || rows[1].Currency != "INR" {
		t.Errorf("processed row = %+v", rows[1])
	}
}

func TestSyncFailed(t *testing.T) {
	boom := errors.New("boom")
	partial := view.State{Errors: map[invoice.Category]error{invoice.CategoryDraft: boom}}
	if syncFailed(partial) {
		t.Error("syncFailed() = true with one category loaded")
	}
	all := view.State{Errors: map[invoice.Category]error{
		invoice.CategoryDraft:     boom,
		invoice.CategoryProcessed: boom,
	}}
	if !syncFailed(all) {
		t.Error("syncFailed() = false with every category failing")
	}
}

func TestNewController_RequiresAPISettings(t *testing.T) {
	cfg := config.Default()
	if _, err := newController(cfg); err == nil {
		t.Fatal("newController() expected error without API settings")
	}

	cfg.API.BaseURL = "https://invoices.example.com/api"
	cfg.API.UserID = "user"
	cfg.API.ClientID = "client"
	cfg.Display.Timezone = "UTC"
	ctrl, err := newController(cfg)
	if err != nil {
		t.Fatalf("newController() error = %v", err)
	}
	if ctrl.Location() != time.UTC {
		t.Errorf("Location() = %v, want UTC", ctrl.Location())
	}
}
