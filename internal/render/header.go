package render

import (
	"strings"

	"invoicedesk/internal/view"
)

// Header renders the page heading and the last sync time, if any.
func Header(lastSync string) string {
	title := Title.Render("Invoices")
	if lastSync == "" {
		return title + "  " + Subtitle.Render("not synced yet")
	}
	return title + "  " + Subtitle.Render("last synced at "+lastSync)
}

// Tabs renders the Inbox/Processed tabs followed by the layout toggle.
func Tabs(tab view.Tab, layout view.Layout) string {
	var b strings.Builder
	for _, t := range []view.Tab{view.TabInbox, view.TabProcessed} {
		if t == tab {
			b.WriteString(TabActive.Render(t.Title()))
		} else {
			b.WriteString(TabInactive.Render(t.Title()))
		}
	}

	b.WriteString("   ")
	for i, l := range []view.Layout{view.LayoutCard, view.LayoutList} {
		if i > 0 {
			b.WriteString(Muted.Render(" | "))
		}
		if l == layout {
			b.WriteString(ToggleActive.Render("[" + string(l) + "]"))
		} else {
			b.WriteString(Muted.Render(" " + string(l) + " "))
		}
	}
	return b.String()
}

// Body renders the active layout for v, or its empty-state message. A
// category error is shown above rows kept from an earlier sync.
func Body(v view.View, width int) string {
	if len(v.Rows) == 0 {
		msg := v.EmptyState
		if v.Error != "" && msg == v.Error {
			return Error.Padding(1, 2).Render(msg)
		}
		return EmptyState.Render(msg)
	}

	var content string
	if v.Layout == view.LayoutList {
		content = Table(v.Rows, v.Tab)
	} else {
		content = Cards(v.Rows, width)
	}

	if v.Error != "" {
		return Error.Render(v.Error) + "\n\n" + content
	}
	return content
}
