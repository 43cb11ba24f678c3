package invoice

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Category is the status category an invoice was fetched under. It is decided
// by the endpoint that produced the record, never by inspecting the record.
type Category string

const (
	CategoryDraft     Category = "DRAFT"
	CategoryProcessed Category = "PROCESSED"
)

// Categories lists every category in fetch order.
var Categories = []Category{CategoryDraft, CategoryProcessed}

// Label returns the human name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryDraft:
		return "inbox"
	case CategoryProcessed:
		return "processed"
	default:
		return strings.ToLower(string(c))
	}
}

// Amount is an optional monetary value. Only JSON numbers are valid; strings,
// null and missing values decode to an invalid Amount and display as "N/A".
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a valid Amount.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		// Non-numeric amounts are a display concern, not a decode failure.
		return nil
	}
	*a = NewAmount(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(a.Value)
}

// StringList accepts either a JSON string or an array of strings and keeps
// them as a comma separated display string.
type StringList string

// UnmarshalJSON implements json.Unmarshaler.
func (s *StringList) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*s = StringList(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*s = StringList(strings.Join(many, ", "))
	return nil
}

// VendorInformation is the nested vendor block carried by inbox invoices.
type VendorInformation struct {
	VendorCode string `json:"vendorCode,omitempty"`
	GSTIN      string `json:"gstin,omitempty"`
	SiteID     string `json:"siteId,omitempty"`
}

// Summary holds the fields shared by every invoice shape. Display values are
// always derived from it, never stored.
type Summary struct {
	VendorName        string `json:"vendorName,omitempty"`
	InvoiceNumber     string `json:"invoiceNumber"`
	InvoiceStatus     string `json:"invoiceStatus,omitempty"`
	DueDate           string `json:"dueDate,omitempty"`
	InvoiceDifficulty string `json:"invoiceDifficulty,omitempty"`
	TotalAmount       Amount `json:"totalAmount"`
}

// Invoice is a draft (inbox) invoice.
type Invoice struct {
	Summary
	VendorInformation VendorInformation `json:"vendorInformation"`
}

// ProcessedInvoice is an invoice fetched from the processed category.
type ProcessedInvoice struct {
	Summary
	PONumbers string `json:"poNumbers,omitempty"`
	InvoiceID string `json:"invoiceId,omitempty"`
	Currency  string `json:"currency,omitempty"`
}

// DisplayVendor returns the vendor name, defaulted when absent.
func (s Summary) DisplayVendor() string {
	if strings.TrimSpace(s.VendorName) == "" {
		return UnknownVendor
	}
	return s.VendorName
}

// DisplayDueDate returns the formatted due date in loc, or a placeholder.
func (s Summary) DisplayDueDate(loc *time.Location) string {
	return DisplayDate(s.DueDate, loc)
}

// DisplayAmount returns the currency string for the total amount.
func (s Summary) DisplayAmount() string {
	return FormatAmount(s.TotalAmount)
}

// DisplayStatus returns the capitalized difficulty text.
func (s Summary) DisplayStatus() string {
	return DifficultyLabel(s.InvoiceDifficulty)
}

// SearchFields returns the texts a query is matched against.
func (s Summary) SearchFields(loc *time.Location) []string {
	return []string{
		s.DisplayVendor(),
		s.InvoiceNumber,
		s.DisplayDueDate(loc),
		s.DisplayAmount(),
		s.InvoiceDifficulty,
		s.DisplayStatus(),
	}
}

// DisplayPONumbers returns the PO numbers, or "N/A" when there are none.
func (p ProcessedInvoice) DisplayPONumbers() string {
	return orNotAvailable(p.PONumbers)
}

// DisplayCurrency returns the currency, or "N/A" when absent.
func (p ProcessedInvoice) DisplayCurrency() string {
	return orNotAvailable(p.Currency)
}

// SearchFields extends the summary fields with the PO numbers and currency
// shown on the processed tab.
func (p ProcessedInvoice) SearchFields(loc *time.Location) []string {
	return append(p.Summary.SearchFields(loc), p.DisplayPONumbers(), p.DisplayCurrency())
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotAvailable
	}
	return s
}
