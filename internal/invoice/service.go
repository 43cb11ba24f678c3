// Package invoice retrieves vendor invoices from the remote invoice endpoint
// and shapes them into display-ready records.
//
// The endpoint is queried once per status category:
//
//	GET {base}/invoice?invoice_status=DRAFT
//	GET {base}/invoice?invoice_status=PROCESSED
//
// Every request carries these headers:
//   - Accept: application/json
//   - X-USER-ID: the configured user identifier
//   - X-CLIENT-ID: the configured client identifier
//
// The response is a JSON object whose invoiceListingDtos field holds the
// invoice array. A missing or mistyped array is a SchemaError. A transport
// failure or non-2xx status is a NetworkError. Individual malformed records
// are skipped rather than failing the listing, and missing display values
// (vendor, due date, amount) are defaulted at display time.
package invoice

import (
	"context"
	"net/http"
	"time"
)

// Source fetches the two invoice categories. The categories are independent:
// a failure in one never affects the other.
type Source interface {
	// FetchDrafts returns the inbox (DRAFT) invoices.
	FetchDrafts(ctx context.Context) ([]Invoice, error)

	// FetchProcessed returns the PROCESSED invoices.
	FetchProcessed(ctx context.Context) ([]ProcessedInvoice, error)
}

// ClientConfig holds configuration for the HTTP invoice client.
type ClientConfig struct {
	// BaseURL is the API root; "/invoice" is appended to it.
	BaseURL string

	// UserID is sent as X-USER-ID.
	UserID string

	// ClientID is sent as X-CLIENT-ID.
	ClientID string

	// Timeout bounds each request. Default: 30 seconds.
	Timeout time.Duration

	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
}

// DefaultConfig returns a ClientConfig with sensible defaults.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Timeout: 30 * time.Second,
	}
}

// MaxResponseBytes caps how much of a listing response is read.
const MaxResponseBytes = 16 << 20
