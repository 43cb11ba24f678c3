// Package view owns the invoice view state: active tab and layout, the query,
// the last sync time and the two fetched collections. State changes only
// through the Controller's named transitions.
package view

import (
	"errors"
	"fmt"
	"strings"

	"invoicedesk/internal/invoice"
)

// Tab selects which category is displayed.
type Tab string

const (
	TabInbox     Tab = "inbox"
	TabProcessed Tab = "processed"
)

// Layout selects the presentation surface.
type Layout string

const (
	LayoutCard Layout = "card"
	LayoutList Layout = "list"
)

var (
	// ErrInvalidTab is returned for a tab name other than inbox or processed.
	ErrInvalidTab = errors.New("invalid tab")

	// ErrInvalidLayout is returned for a layout name other than card or list.
	ErrInvalidLayout = errors.New("invalid layout")
)

// ParseTab parses a tab name, case-insensitively. "draft" is accepted as an
// alias for the inbox.
func ParseTab(s string) (Tab, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbox", "draft":
		return TabInbox, nil
	case "processed":
		return TabProcessed, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidTab, s)
	}
}

// ParseLayout parses a layout name. "table" and "grid" are accepted aliases.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "card", "cards", "grid":
		return LayoutCard, nil
	case "list", "table":
		return LayoutList, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLayout, s)
	}
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	return t == TabInbox || t == TabProcessed
}

// Category returns the fetch category backing the tab.
func (t Tab) Category() invoice.Category {
	if t == TabProcessed {
		return invoice.CategoryProcessed
	}
	return invoice.CategoryDraft
}

// Title is the tab heading.
func (t Tab) Title() string {
	if t == TabProcessed {
		return "Processed"
	}
	return "Inbox"
}

// TabFor returns the tab displaying category c.
func TabFor(c invoice.Category) Tab {
	if c == invoice.CategoryProcessed {
		return TabProcessed
	}
	return TabInbox
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	return l == LayoutCard || l == LayoutList
}

// State is a point-in-time copy of the view.
type State struct {
	Tab        Tab
	Layout     Layout
	Query      string
	SearchOpen bool

	// LastSync is the wall-clock time of the last sync as "H:MM AM/PM",
	// empty until the first sync.
	LastSync string

	Drafts    []invoice.Invoice
	Processed []invoice.ProcessedInvoice

	Loading map[invoice.Category]bool
	Errors  map[invoice.Category]error
}

func initialState() State {
	return State{
		Tab:       TabInbox,
		Layout:    LayoutCard,
		Drafts:    []invoice.Invoice{},
		Processed: []invoice.ProcessedInvoice{},
		Loading:   make(map[invoice.Category]bool),
		Errors:    make(map[invoice.Category]error),
	}
}

func (s State) clone() State {
	out := s
	out.Drafts = append([]invoice.Invoice(nil), s.Drafts...)
	out.Processed = append([]invoice.ProcessedInvoice(nil), s.Processed...)
	out.Loading = make(map[invoice.Category]bool, len(s.Loading))
	for k, v := range s.Loading {
		out.Loading[k] = v
	}
	out.Errors = make(map[invoice.Category]error, len(s.Errors))
	for k, v := range s.Errors {
		out.Errors[k] = v
	}
	return out
}
