package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"invoicedesk/internal/invoice"
	"invoicedesk/internal/logger"
)

// Ticket identifies one fetch request. Only the latest ticket issued for a
// category may change that category's state.
type Ticket struct {
	Category invoice.Category
	Seq      uint64
}

// Result is the outcome of a fetch. Exactly one of the collections is used,
// according to the ticket category.
type Result struct {
	Drafts    []invoice.Invoice
	Processed []invoice.ProcessedInvoice
	Err       error
}

// Controller is the single owner of view state. It is safe for concurrent use.
type Controller struct {
	source invoice.Source
	loc    *time.Location
	now    func() time.Time
	log    zerolog.Logger

	mu    sync.RWMutex
	state State
	seq   map[invoice.Category]uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithLocation sets the timezone used for due dates and the sync time.
func WithLocation(loc *time.Location) Option {
	return func(c *Controller) {
		if loc != nil {
			c.loc = loc
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// New returns a controller in the initial state: inbox tab, card layout,
// empty query, empty collections and no sync time.
func New(source invoice.Source, opts ...Option) *Controller {
	c := &Controller{
		source: source,
		loc:    time.Local,
		now:    time.Now,
		log:    logger.WithComponent("view"),
		state:  initialState(),
		seq:    make(map[invoice.Category]uint64),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Location returns the display timezone.
func (c *Controller) Location() *time.Location {
	return c.loc
}

// SelectTab sets the active tab. Query and layout are untouched.
func (c *Controller) SelectTab(t Tab) error {
	if !t.Valid() {
		return ErrInvalidTab
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Tab = t
	c.log.Debug().Str("tab", string(t)).Msg("Tab selected")
	return nil
}

// SelectLayout sets the active layout. Tab and query are untouched.
func (c *Controller) SelectLayout(l Layout) error {
	if !l.Valid() {
		return ErrInvalidLayout
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Layout = l
	c.log.Debug().Str("layout", string(l)).Msg("Layout selected")
	return nil
}

// SetQuery replaces the query. Rows are re-filtered on the next read.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Query = q
}

// OpenSearch shows the search input.
func (c *Controller) OpenSearch() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchOpen = true
}

// ToggleSearch flips the search input visibility and reports the new value.
func (c *Controller) ToggleSearch() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.SearchOpen = !c.state.SearchOpen
	return c.state.SearchOpen
}

// ClearQuery empties the query and closes the search input.
func (c *Controller) ClearQuery() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Query = ""
	c.state.SearchOpen = false
}

// Begin issues a new ticket for category and marks it loading. Any ticket
// issued earlier for the same category becomes stale.
func (c *Controller) Begin(category invoice.Category) Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.beginLocked(category)
}

func (c *Controller) beginLocked(category invoice.Category) Ticket {
	c.seq[category]++
	c.state.Loading[category] = true
	return Ticket{Category: category, Seq: c.seq[category]}
}

// BeginSync stamps the sync time and issues one ticket per category.
func (c *Controller) BeginSync() []Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.LastSync = invoice.FormatSyncTime(c.now().In(c.loc))

	tickets := make([]Ticket, 0, len(invoice.Categories))
	for _, category := range invoice.Categories {
		tickets = append(tickets, c.beginLocked(category))
	}

	c.log.Debug().Str("last_sync", c.state.LastSync).Msg("Sync started")
	return tickets
}

// Fetch runs the source request for ticket. It does not touch view state.
func (c *Controller) Fetch(ctx context.Context, t Ticket) Result {
	ctx = logger.WithFields(map[string]interface{}{"seq": t.Seq}).WithContext(ctx)

	switch t.Category {
	case invoice.CategoryDraft:
		drafts, err := c.source.FetchDrafts(ctx)
		return Result{Drafts: drafts, Err: err}
	case invoice.CategoryProcessed:
		processed, err := c.source.FetchProcessed(ctx)
		return Result{Processed: processed, Err: err}
	default:
		return Result{Err: errors.New("unknown invoice category " + string(t.Category))}
	}
}

// Complete applies a fetch result. Results for stale tickets are dropped and
// false is returned. A failure keeps the last-known collection; a success
// replaces it and clears the category error.
func (c *Controller) Complete(t Ticket, r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if latest := c.seq[t.Category]; t.Seq != latest {
		c.log.Debug().
			Str("category", string(t.Category)).
			Uint64("seq", t.Seq).
			Uint64("latest", latest).
			Msg("Dropping stale invoice response")
		return false
	}

	c.state.Loading[t.Category] = false

	if r.Err != nil {
		c.state.Errors[t.Category] = r.Err
		c.log.Error().
			Err(r.Err).
			Str("category", string(t.Category)).
			Msg("Invoice fetch failed, keeping last-known collection")
		return true
	}

	delete(c.state.Errors, t.Category)
	switch t.Category {
	case invoice.CategoryDraft:
		c.state.Drafts = nonNil(r.Drafts)
		c.log.Info().Int("count", len(c.state.Drafts)).Msg("Inbox invoices updated")
	case invoice.CategoryProcessed:
		c.state.Processed = nonNil(r.Processed)
		c.log.Info().Int("count", len(c.state.Processed)).Msg("Processed invoices updated")
	}
	return true
}

// Sync stamps the sync time and re-fetches both categories concurrently,
// waiting for both. The returned error joins the per-category failures.
func (c *Controller) Sync(ctx context.Context) error {
	tickets := c.BeginSync()

	errs := make([]error, len(tickets))
	var wg sync.WaitGroup
	for i, t := range tickets {
		wg.Add(1)
		go func(i int, t Ticket) {
			defer wg.Done()
			r := c.Fetch(ctx, t)
			c.Complete(t, r)
			errs[i] = r.Err
		}(i, t)
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.state.clone()
}

// Rows returns the active tab's records matching the query, formatted and
// highlighted.
func (c *Controller) Rows() []Row {
	return c.View().Rows
}

// EmptyState returns the message to show in place of rows, or "" when there
// are rows to show.
func (c *Controller) EmptyState() string {
	return c.View().EmptyState
}

// ErrorMessage returns the user-facing error for category, or "".
func (c *Controller) ErrorMessage(category invoice.Category) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return ErrorMessage(category, c.state.Errors[category])
}

// View computes the state, rows and messages under one lock.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return buildView(c.state.clone(), c.loc)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
