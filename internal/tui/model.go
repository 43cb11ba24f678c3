// Package tui is the interactive terminal surface over the view controller.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"invoicedesk/internal/render"
	"invoicedesk/internal/view"
)

const defaultWidth = 100

// fetchedMsg carries the result of one category fetch back to Update.
type fetchedMsg struct {
	ticket view.Ticket
	result view.Result
}

// Model is the bubbletea model of the invoice browser.
type Model struct {
	ctx    context.Context
	ctrl   *view.Controller
	keys   KeyMap
	input  textinput.Model
	scroll render.HScroll
	width  int
	height int
}

// New creates a browser model driving ctrl. ctx bounds every fetch.
func New(ctx context.Context, ctrl *view.Controller) *Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "vendor, invoice number, date, amount or status"
	ti.CharLimit = 100
	ti.Width = 50

	m := &Model{
		ctx:   ctx,
		ctrl:  ctrl,
		keys:  DefaultKeyMap,
		input: ti,
		width: defaultWidth,
	}
	m.scroll.SetViewport(defaultWidth)
	return m
}

// Init starts the initial sync so the surface is populated on start.
func (m *Model) Init() tea.Cmd {
	return m.sync()
}

func (m *Model) sync() tea.Cmd {
	tickets := m.ctrl.BeginSync()
	cmds := make([]tea.Cmd, len(tickets))
	for i, t := range tickets {
		cmds[i] = m.fetch(t)
	}
	return tea.Batch(cmds...)
}

func (m *Model) fetch(t view.Ticket) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return fetchedMsg{ticket: t, result: ctrl.Fetch(ctx, t)}
	}
}

// Update handles key presses, window resizes and fetch completions.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll.SetViewport(msg.Width)
		m.refreshScroll()
		return m, nil

	case fetchedMsg:
		m.ctrl.Complete(msg.ticket, msg.result)
		m.refreshScroll()
		return m, nil

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}

	if m.input.Focused() {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.SwitchTab):
		next := view.TabProcessed
		if m.ctrl.Snapshot().Tab == view.TabProcessed {
			next = view.TabInbox
		}
		_ = m.ctrl.SelectTab(next)
		m.scroll.Offset = 0

	case key.Matches(msg, m.keys.CardLayout):
		_ = m.ctrl.SelectLayout(view.LayoutCard)

	case key.Matches(msg, m.keys.ListLayout):
		_ = m.ctrl.SelectLayout(view.LayoutList)

	case key.Matches(msg, m.keys.Search):
		m.ctrl.OpenSearch()
		m.input.SetValue(m.ctrl.Snapshot().Query)
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, m.keys.Clear):
		m.clearQuery()

	case key.Matches(msg, m.keys.Sync):
		return m, m.sync()

	case key.Matches(msg, m.keys.ScrollLeft):
		m.scroll.Prev()
		return m, nil

	case key.Matches(msg, m.keys.ScrollRight):
		m.scroll.Next()
		return m, nil
	}

	m.refreshScroll()
	return m, nil
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Clear):
		m.clearQuery()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		m.input.Blur()
		return m, nil
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetQuery(m.input.Value())
	m.refreshScroll()
	return m, cmd
}

func (m *Model) clearQuery() {
	m.ctrl.ClearQuery()
	m.input.Reset()
	m.input.Blur()
	m.refreshScroll()
}

// refreshScroll re-measures the table after anything that changes its rows.
func (m *Model) refreshScroll() {
	v := m.ctrl.View()
	if v.Layout != view.LayoutList || len(v.Rows) == 0 {
		m.scroll.SetContent("")
		return
	}
	m.scroll.SetContent(render.Table(v.Rows, v.Tab))
}

// View renders the header, tabs, optional search line, the active surface
// and the help bar.
func (m *Model) View() string {
	v := m.ctrl.View()

	sections := []string{
		render.Header(v.LastSync),
		render.Tabs(v.Tab, v.Layout),
	}
	if v.SearchOpen || v.Query != "" {
		sections = append(sections, m.input.View())
	}

	body := render.Body(v, m.width)
	if v.Layout == view.LayoutList && len(v.Rows) > 0 {
		body = m.scroll.Window(body)
		if ind := m.scroll.Indicator(); ind != "" {
			body += "\n" + ind
		}
	}
	sections = append(sections, body, m.helpView())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) helpView() string {
	bindings := m.keys.ShortHelp()
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, render.HelpKey.Render(h.Key)+" "+h.Desc)
	}
	return render.HelpBar.Render(strings.Join(parts, "  "))
}

// Run starts the browser on the alternate screen and blocks until it exits.
func Run(ctx context.Context, ctrl *view.Controller) error {
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
