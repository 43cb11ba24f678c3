package render

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// DefaultScrollStep is how many columns Prev and Next move.
const DefaultScrollStep = 10

// HScroll is the horizontal scroll position of the table surface. Prev is
// disabled at the left edge and Next at the right edge.
type HScroll struct {
	Offset        int
	ContentWidth  int
	ViewportWidth int
	Step          int
}

// SetContent measures s and clamps the offset to the new width.
func (h *HScroll) SetContent(s string) {
	width := 0
	for _, line := range strings.Split(s, "\n") {
		width = max(width, ansi.StringWidth(line))
	}
	h.ContentWidth = width
	h.clamp()
}

// SetViewport sets the visible width and clamps the offset.
func (h *HScroll) SetViewport(width int) {
	h.ViewportWidth = max(width, 0)
	h.clamp()
}

// AtStart reports whether the view is scrolled fully left.
func (h HScroll) AtStart() bool {
	return h.Offset <= 0
}

// AtEnd reports whether the right edge of the content is visible.
func (h HScroll) AtEnd() bool {
	return h.Offset+h.ViewportWidth >= h.ContentWidth-1
}

// Prev scrolls left by one step and reports whether the offset changed.
func (h *HScroll) Prev() bool {
	if h.AtStart() {
		return false
	}
	h.Offset = max(h.Offset-h.step(), 0)
	return true
}

// Next scrolls right by one step and reports whether the offset changed.
func (h *HScroll) Next() bool {
	if h.AtEnd() {
		return false
	}
	before := h.Offset
	h.Offset += h.step()
	h.clamp()
	return h.Offset != before
}

// Window cuts every line of s to the visible columns.
func (h HScroll) Window(s string) string {
	if h.ViewportWidth <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = ansi.Cut(line, h.Offset, h.Offset+h.ViewportWidth)
	}
	return strings.Join(lines, "\n")
}

// Indicator renders the prev/next controls, dimming the disabled ones.
func (h HScroll) Indicator() string {
	if h.AtStart() && h.AtEnd() {
		return ""
	}
	prev, next := HelpKey.Render("◀ prev"), HelpKey.Render("next ▶")
	if h.AtStart() {
		prev = Muted.Render("◀ prev")
	}
	if h.AtEnd() {
		next = Muted.Render("next ▶")
	}
	return prev + Muted.Render("  ") + next
}

func (h HScroll) step() int {
	if h.Step <= 0 {
		return DefaultScrollStep
	}
	return h.Step
}

func (h *HScroll) clamp() {
	limit := max(h.ContentWidth-h.ViewportWidth, 0)
	h.Offset = min(max(h.Offset, 0), limit)
}
