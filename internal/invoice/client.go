package invoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"invoicedesk/internal/logger"
)

// Client is the HTTP implementation of Source.
type Client struct {
	endpoint   string
	userID     string
	clientID   string
	httpClient *http.Client
	log        zerolog.Logger
}

var _ Source = (*Client)(nil)

// NewClient validates cfg and returns a ready client.
func NewClient(cfg ClientConfig) (*Client, error) {
	const op = "NewClient"

	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%s: base URL must be absolute, got %q", op, cfg.BaseURL)
	}
	if cfg.UserID == "" || cfg.ClientID == "" {
		return nil, fmt.Errorf("%s: user and client identifiers are required", op)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultConfig().Timeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		endpoint:   base.JoinPath("invoice").String(),
		userID:     cfg.UserID,
		clientID:   cfg.ClientID,
		httpClient: httpClient,
		log:        logger.WithComponent("invoice-client"),
	}, nil
}

// FetchDrafts returns the inbox (DRAFT) invoices.
func (c *Client) FetchDrafts(ctx context.Context) ([]Invoice, error) {
	const op = "FetchDrafts"

	body, err := c.get(ctx, op, CategoryDraft)
	if err != nil {
		return nil, err
	}

	dtos, rejected, err := decodeListing(op, CategoryDraft, body)
	if err != nil {
		return nil, err
	}
	c.logRejected(CategoryDraft, rejected)

	out := make([]Invoice, len(dtos))
	for i, d := range dtos {
		out[i] = d.toInvoice()
	}
	return out, nil
}

// FetchProcessed returns the PROCESSED invoices.
func (c *Client) FetchProcessed(ctx context.Context) ([]ProcessedInvoice, error) {
	const op = "FetchProcessed"

	body, err := c.get(ctx, op, CategoryProcessed)
	if err != nil {
		return nil, err
	}

	dtos, rejected, err := decodeListing(op, CategoryProcessed, body)
	if err != nil {
		return nil, err
	}
	c.logRejected(CategoryProcessed, rejected)

	out := make([]ProcessedInvoice, len(dtos))
	for i, d := range dtos {
		out[i] = d.toProcessed()
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, op string, category Category) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, NewNetworkError(op, category, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err))
	}

	q := req.URL.Query()
	q.Set("invoice_status", string(category))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-USER-ID", c.userID)
	req.Header.Set("X-CLIENT-ID", c.clientID)

	// Request logs inherit the fields the caller stored in ctx.
	log := logger.WithContext(ctx).With().
		Str("component", "invoice-client").
		Str("category", string(category)).
		Logger()

	log.Debug().
		Str("url", req.URL.String()).
		Msg("Fetching invoices")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().
			Err(err).
			Msg("Invoice request failed")
		return nil, NewNetworkError(op, category, 0, errors.Join(ErrRequestFailed, err))
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(snippet)).
			Msg("Invoice endpoint returned an error status")
		return nil, NewNetworkError(op, category, resp.StatusCode,
			fmt.Errorf("%w: %s", ErrUnexpectedStatus, strings.TrimSpace(string(snippet))))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes))
	if err != nil {
		return nil, NewNetworkError(op, category, resp.StatusCode, errors.Join(ErrRequestFailed, err))
	}

	log.Info().
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Dur("duration", time.Since(start)).
		Msg("Fetched invoice listing")

	return body, nil
}

func (c *Client) logRejected(category Category, rejected []RejectedRecord) {
	for _, r := range rejected {
		c.log.Warn().
			Str("category", string(category)).
			Int("index", r.Index).
			Str("reason", r.Reason).
			Msg("Skipping malformed invoice record")
	}
}
