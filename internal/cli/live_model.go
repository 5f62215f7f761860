package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/depotnotes/internal/cli/formatter"
	"github.com/alexanderramin/depotnotes/internal/contract"
	"github.com/alexanderramin/depotnotes/internal/domain"
	"github.com/alexanderramin/depotnotes/internal/rules"
	"github.com/alexanderramin/depotnotes/internal/service"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// liveKeyMap is the live view's key bindings.
type liveKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Toggle key.Binding
	Copy   key.Binding
	Reset  key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func newLiveKeyMap() liveKeyMap {
	return liveKeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Prev:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev state")),
		Next:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next state")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle flag")),
		Copy:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy all")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k liveKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Next, k.Toggle, k.Copy, k.Help, k.Quit}
}

func (k liveKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Prev, k.Next},
		{k.Toggle, k.Copy, k.Reset},
		{k.Help, k.Quit},
	}
}

// notesViewportKeyMap leaves letters and arrows to the selection rows.
func notesViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
	}
}

// liveRow is one selectable line: a side of a component transition, or a
// site flag.
type liveRow struct {
	component domain.Component
	to        bool
	flag      string
}

func (r liveRow) isFlag() bool { return r.flag != "" }

func (r liveRow) label() string {
	if r.isFlag() {
		return r.flag
	}
	side := "from"
	if r.to {
		side = "to"
	}
	return fmt.Sprintf("%s %s", r.component, side)
}

// bundleMsg carries reloaded rule data into the live view.
type bundleMsg struct{ bundle *rules.Bundle }

// waitForBundle blocks until the next reload, or returns nil once the
// channel is closed.
func waitForBundle(updates <-chan *rules.Bundle) tea.Cmd {
	if updates == nil {
		return nil
	}
	return func() tea.Msg {
		b, ok := <-updates
		if !ok {
			return nil
		}
		return bundleMsg{bundle: b}
	}
}

// liveModel recomputes every section whenever any selection changes.
type liveModel struct {
	ctx     context.Context
	notes   service.NoteService
	dataset service.DatasetService
	updates <-chan *rules.Bundle

	rows        []liveRow
	cursor      int
	transitions map[domain.Component]*domain.Transition
	flags       map[string]bool
	selected    map[string][]string
	reference   string

	resp   *contract.NotesResponse
	err    error
	status string

	vp       viewport.Model
	help     help.Model
	keys     liveKeyMap
	width    int
	quitting bool
}

func newLiveModel(ctx context.Context, app *App, seed contract.NotesRequest, updates <-chan *rules.Bundle) *liveModel {
	vp := viewport.New(0, 0)
	vp.KeyMap = notesViewportKeyMap()
	vp.MouseWheelEnabled = true

	m := &liveModel{
		ctx:     ctx,
		notes:   app.Notes,
		dataset: app.Dataset,
		updates: updates,
		transitions: map[domain.Component]*domain.Transition{
			domain.ComponentBoiler:   {From: seed.Boiler.From, To: seed.Boiler.To},
			domain.ComponentCylinder: {From: seed.Cylinder.From, To: seed.Cylinder.To},
			domain.ComponentFlue:     {From: seed.Flue.From, To: seed.Flue.To},
		},
		flags:     map[string]bool{},
		selected:  map[string][]string{},
		reference: seed.Reference,
		vp:        vp,
		help:      help.New(),
		keys:      newLiveKeyMap(),
	}
	for _, f := range seed.Flags {
		m.flags[f] = true
	}
	for section, codes := range seed.Selected {
		m.selected[section] = slices.Clone(codes)
	}
	m.buildRows()
	m.recompute()
	return m
}

// buildRows lays out the transition rows followed by one row per flag the
// rules know about, plus any seeded flag they do not.
func (m *liveModel) buildRows() {
	m.rows = m.rows[:0]
	for _, c := range []domain.Component{domain.ComponentBoiler, domain.ComponentCylinder, domain.ComponentFlue} {
		m.rows = append(m.rows, liveRow{component: c}, liveRow{component: c, to: true})
	}
	known := map[string]bool{}
	for _, f := range m.dataset.Flags() {
		known[f] = true
		m.rows = append(m.rows, liveRow{flag: f})
	}
	for _, f := range domain.Flags(m.flags).Names() {
		if !known[f] {
			m.rows = append(m.rows, liveRow{flag: f})
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
}

func (m *liveModel) request() contract.NotesRequest {
	req := contract.NewNotesRequest()
	req.Boiler = *m.transitions[domain.ComponentBoiler]
	req.Cylinder = *m.transitions[domain.ComponentCylinder]
	req.Flue = *m.transitions[domain.ComponentFlue]
	req.Flags = domain.Flags(m.flags).Names()
	for section, codes := range m.selected {
		req.Selected[section] = slices.Clone(codes)
	}
	req.Reference = m.reference
	return req
}

func (m *liveModel) recompute() {
	m.resp, m.err = m.notes.Generate(m.ctx, m.request())
	if m.err != nil {
		m.vp.SetContent(formatter.StyleRed.Render(m.err.Error()))
		return
	}
	m.vp.SetContent(formatter.FormatSections(m.resp.Sections))
}

func (m *liveModel) value(r liveRow) string {
	t := m.transitions[r.component]
	if r.to {
		return t.To
	}
	return t.From
}

// cycle moves a transition row through "" and the component's states.
func (m *liveModel) cycle(r liveRow, step int) {
	options := append([]string{""}, m.dataset.States(r.component)...)
	current := 0
	for i, o := range options {
		if o == m.value(r) {
			current = i
			break
		}
	}
	next := options[(current+step+len(options))%len(options)]
	t := m.transitions[r.component]
	if r.to {
		t.To = next
	} else {
		t.From = next
	}
}

func (m *liveModel) reset() {
	for _, t := range m.transitions {
		*t = domain.Transition{}
	}
	m.flags = map[string]bool{}
	m.selected = map[string][]string{}
	m.buildRows()
	m.cursor = 0
}

func (m *liveModel) Init() tea.Cmd {
	return waitForBundle(m.updates)
}

func (m *liveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.resize(msg.Height)
		return m, nil

	case bundleMsg:
		m.dataset.Swap(msg.bundle)
		m.buildRows()
		m.recompute()
		m.status = "rule data reloaded"
		return m, waitForBundle(m.updates)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *liveModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""
	row := m.rows[m.cursor]

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Prev):
		if !row.isFlag() {
			m.cycle(row, -1)
			m.recompute()
		}
	case key.Matches(msg, m.keys.Next):
		if !row.isFlag() {
			m.cycle(row, 1)
			m.recompute()
		}
	case key.Matches(msg, m.keys.Toggle):
		if row.isFlag() {
			m.flags[row.flag] = !m.flags[row.flag]
		} else {
			m.cycle(row, 1)
		}
		m.recompute()
	case key.Matches(msg, m.keys.Copy):
		if m.resp == nil {
			return m, nil
		}
		if err := clipboardWriteAll(m.resp.CopyAll); err != nil {
			m.status = "copy failed: " + err.Error()
		} else {
			m.status = "copied all sections"
		}
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		m.recompute()
		m.status = "selections cleared"
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	default:
		var cmd tea.Cmd
		m.vp, cmd = m.vp.Update(msg)
		return m, cmd
	}
	return m, nil
}

// resize gives the notes pane whatever height the rows and footer leave.
func (m *liveModel) resize(height int) {
	m.vp.Width = m.width
	chrome := len(m.rows) + 6
	m.vp.Height = max(height-chrome, 3)
}

func (m *liveModel) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder

	title := "depotnotes live"
	if src := m.dataset.Source(); src != "" {
		title += " · " + src
	}
	b.WriteString(formatter.Header(title) + "\n\n")

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = formatter.StyleHeader.Render("▸ ")
		}
		b.WriteString(cursor + m.renderRow(r) + "\n")
	}

	sep := lipgloss.NewStyle().Foreground(formatter.ColorDim).Render(strings.Repeat("─", max(m.width, 20)))
	b.WriteString(sep + "\n")
	b.WriteString(m.vp.View() + "\n")
	b.WriteString(sep + "\n")

	if m.status != "" {
		b.WriteString(formatter.StyleGreen.Render(m.status) + "  ")
	}
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *liveModel) renderRow(r liveRow) string {
	label := fmt.Sprintf("%-14s", r.label())
	if r.isFlag() {
		box := formatter.StyleDim.Render("[ ]")
		if m.flags[r.flag] {
			box = formatter.StyleGreen.Render("[x]")
		}
		return formatter.StyleDim.Render(label) + " " + box
	}
	v := m.value(r)
	if v == "" {
		return formatter.StyleDim.Render(label) + " " + formatter.Dim("--")
	}
	return formatter.StyleDim.Render(label) + " " + formatter.StyleFg.Render("‹ "+v+" ›")
}
