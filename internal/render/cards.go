package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"invoicedesk/internal/search"
	"invoicedesk/internal/view"
)

const (
	// CardWidth is the outer width of one card, borders included.
	CardWidth = 36
	cardGap   = 1
	labelW    = 9
)

// Cards lays rows out as a grid of cards fitting width columns.
func Cards(rows []view.Row, width int) string {
	if len(rows) == 0 {
		return ""
	}

	perLine := (width + cardGap) / (CardWidth + cardGap)
	if perLine < 1 {
		perLine = 1
	}

	gap := strings.Repeat(" ", cardGap)
	var lines []string
	for start := 0; start < len(rows); start += perLine {
		end := min(start+perLine, len(rows))

		cards := make([]string, 0, 2*(end-start))
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, gap)
			}
			cards = append(cards, card(rows[i]))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func card(row view.Row) string {
	inner := CardWidth - 4

	badge := StatusBadge(cellText(row.Status, CardMatch), row.StatusClass)
	vendorW := inner - ansi.StringWidth(badge)
	if badge != "" {
		vendorW--
	}
	vendor := CardVendor.Render(ansi.Truncate(cellText(row.VendorName, CardMatch), max(vendorW, 1), "…"))
	title := vendor
	if badge != "" {
		pad := max(inner-ansi.StringWidth(vendor)-ansi.StringWidth(badge), 1)
		title = vendor + strings.Repeat(" ", pad) + badge
	}

	body := []string{
		title,
		field("Invoice", row.InvoiceNumber, inner),
		field("Due", row.DueDate, inner),
		field("Amount", row.Amount, inner),
	}
	if row.PONumbers != nil {
		body = append(body, field("PO", *row.PONumbers, inner))
	}
	if row.Currency != nil {
		body = append(body, field("Currency", *row.Currency, inner))
	}

	return Card.Width(CardWidth - 2).Render(strings.Join(body, "\n"))
}

func field(label string, c view.Cell, inner int) string {
	value := ansi.Truncate(cellText(c, CardMatch), max(inner-labelW, 1), "…")
	return Muted.Render(padRight(label, labelW)) + value
}

// cellText renders a cell's spans, styling matched spans with match.
func cellText(c view.Cell, match lipgloss.Style) string {
	if len(c.Spans) == 0 {
		return c.Text
	}
	return search.Render(c.Spans, func(s string) string { return match.Render(s) })
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
