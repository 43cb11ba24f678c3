package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"invoicedesk/internal/view"
)

// Column headings of the table surface.
var (
	baseColumns      = []string{"VENDOR NAME", "INVOICE NUMBER", "DUE DATE", "AMOUNT", "STATUS"}
	processedColumns = []string{"PO NUMBERS", "CURRENCY"}
)

const (
	columnSep   = "  "
	maxColWidth = 40
)

// Columns returns the headings used for rows of the given tab.
func Columns(tab view.Tab) []string {
	cols := append([]string(nil), baseColumns...)
	if tab == view.TabProcessed {
		cols = append(cols, processedColumns...)
	}
	return cols
}

// Table renders rows as fixed columns sized to their widest value. The
// output is not clipped; wrap it with HScroll.Window for narrow terminals.
func Table(rows []view.Row, tab view.Tab) string {
	headers := Columns(tab)
	cells := make([][]view.Cell, len(rows))
	for i, row := range rows {
		cells[i] = rowCells(row, len(headers))
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.StringWidth(h)
	}
	for _, rc := range cells {
		for i, c := range rc {
			widths[i] = min(max(widths[i], ansi.StringWidth(c.Text)), maxColWidth)
		}
	}

	lines := make([]string, 0, len(rows)+2)

	head := make([]string, len(headers))
	for i, h := range headers {
		head[i] = TableHeader.Render(padRight(h, widths[i]))
	}
	lines = append(lines, strings.Join(head, columnSep))

	rule := make([]string, len(headers))
	for i := range headers {
		rule[i] = strings.Repeat("─", widths[i])
	}
	lines = append(lines, Muted.Render(strings.Join(rule, columnSep)))

	for r, rc := range cells {
		parts := make([]string, len(rc))
		for i, c := range rc {
			text := cellText(c, TableMatch)
			if i == statusColumn {
				text = StatusBadgeInline(text, rows[r].StatusClass)
			}
			if ansi.StringWidth(text) > widths[i] {
				text = ansi.Truncate(text, widths[i], "…")
			}
			parts[i] = padRight(text, widths[i])
		}
		lines = append(lines, strings.TrimRight(strings.Join(parts, columnSep), " "))
	}

	return strings.Join(lines, "\n")
}

const statusColumn = 4

func rowCells(row view.Row, n int) []view.Cell {
	cells := []view.Cell{row.VendorName, row.InvoiceNumber, row.DueDate, row.Amount, row.Status}
	if n > len(cells) {
		po, currency := view.Cell{}, view.Cell{}
		if row.PONumbers != nil {
			po = *row.PONumbers
		}
		if row.Currency != nil {
			currency = *row.Currency
		}
		cells = append(cells, po, currency)
	}
	return cells
}

// StatusBadgeInline colors status text without badge padding, for table cells.
func StatusBadgeInline(text, class string) string {
	if text == "" {
		return ""
	}
	return Muted.Foreground(StatusColor(class)).Render(text)
}
