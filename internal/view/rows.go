package view

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"invoicedesk/internal/invoice"
	"invoicedesk/internal/search"
)

// Empty-state messages, in priority order.
const (
	MessageLoading = "Loading invoices…"
	MessageNoData  = "No invoices to show"
)

// Cell is one display value with its highlight spans.
type Cell struct {
	Text  string        `json:"text"`
	Spans []search.Span `json:"spans"`
}

// Row is one display-ready invoice. PONumbers and Currency are only set for
// processed invoices.
type Row struct {
	Category      invoice.Category `json:"category"`
	VendorName    Cell             `json:"vendorName"`
	InvoiceNumber Cell             `json:"invoiceNumber"`
	DueDate       Cell             `json:"dueDate"`
	Amount        Cell             `json:"amount"`
	Status        Cell             `json:"status"`
	StatusClass   string           `json:"statusClass"`
	PONumbers     *Cell            `json:"poNumbers,omitempty"`
	Currency      *Cell            `json:"currency,omitempty"`
}

// View is everything a surface needs to draw one frame.
type View struct {
	State
	Rows       []Row
	EmptyState string
	Error      string
}

func buildView(s State, loc *time.Location) View {
	m := search.Compile(s.Query)
	category := s.Tab.Category()

	var rows []Row
	switch category {
	case invoice.CategoryProcessed:
		matched := search.FilterWith(s.Processed, m, func(p invoice.ProcessedInvoice) []string {
			return p.SearchFields(loc)
		})
		rows = make([]Row, len(matched))
		for i, p := range matched {
			rows[i] = processedRow(p, m, loc)
		}
	default:
		matched := search.FilterWith(s.Drafts, m, func(d invoice.Invoice) []string {
			return d.SearchFields(loc)
		})
		rows = make([]Row, len(matched))
		for i, d := range matched {
			rows[i] = summaryRow(invoice.CategoryDraft, d.Summary, m, loc)
		}
	}

	return View{
		State:      s,
		Rows:       rows,
		EmptyState: emptyState(s, len(rows), m.Query()),
		Error:      ErrorMessage(category, s.Errors[category]),
	}
}

func summaryRow(category invoice.Category, s invoice.Summary, m *search.Matcher, loc *time.Location) Row {
	return Row{
		Category:      category,
		VendorName:    cell(s.DisplayVendor(), m),
		InvoiceNumber: cell(s.InvoiceNumber, m),
		DueDate:       cell(s.DisplayDueDate(loc), m),
		Amount:        cell(s.DisplayAmount(), m),
		Status:        cell(s.DisplayStatus(), m),
		StatusClass:   StatusClass(s.InvoiceDifficulty),
	}
}

func processedRow(p invoice.ProcessedInvoice, m *search.Matcher, loc *time.Location) Row {
	row := summaryRow(invoice.CategoryProcessed, p.Summary, m, loc)
	po := cell(p.DisplayPONumbers(), m)
	currency := cell(p.DisplayCurrency(), m)
	row.PONumbers = &po
	row.Currency = &currency
	return row
}

func cell(text string, m *search.Matcher) Cell {
	return Cell{Text: text, Spans: m.Spans(text)}
}

// StatusClass normalizes a difficulty tag into a style key such as
// "few-issues". Unknown or empty tags yield "unknown".
func StatusClass(tag string) string {
	class := strings.ToLower(strings.TrimSpace(tag))
	class = strings.NewReplacer("_", "-", " ", "-").Replace(class)
	if class == "" {
		return "unknown"
	}
	return class
}

func emptyState(s State, rows int, query string) string {
	if rows > 0 {
		return ""
	}
	category := s.Tab.Category()
	switch {
	case s.Loading[category]:
		return MessageLoading
	case s.Errors[category] != nil:
		return ErrorMessage(category, s.Errors[category])
	case query != "":
		return fmt.Sprintf("No invoices match %q", query)
	default:
		return MessageNoData
	}
}

// ErrorMessage converts a fetch error into the single message shown for a
// category. A nil error yields "".
func ErrorMessage(category invoice.Category, err error) string {
	if err == nil {
		return ""
	}
	prefix := fmt.Sprintf("Could not load %s invoices", category.Label())

	var netErr *invoice.NetworkError
	var schemaErr *invoice.SchemaError
	switch {
	case errors.As(err, &netErr) && netErr.StatusCode != 0:
		return fmt.Sprintf("%s: server responded %d %s.", prefix, netErr.StatusCode, http.StatusText(netErr.StatusCode))
	case errors.As(err, &netErr):
		return prefix + ": the invoice service is unreachable."
	case errors.As(err, &schemaErr):
		return prefix + ": the response was not in the expected format."
	default:
		return prefix + "."
	}
}
