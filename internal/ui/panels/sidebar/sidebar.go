// Package sidebar is the history panel: recent conversions, newest first,
// with a search filter.
package sidebar

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// Searcher supplies the items shown for a filter query.
type Searcher interface {
	Search(query string) []history.Item
}

// rowHeight is the number of lines one entry occupies.
const rowHeight = 2

// Model is the history panel.
type Model struct {
	source Searcher
	items  []history.Item
	cursor int
	offset int

	width   int
	height  int
	focused bool

	filtering   bool
	filterInput textinput.Model

	theme  theme.Theme
	styles theme.Styles
	tr     *i18n.Translator
}

// New creates a new history panel reading from source.
func New(t theme.Theme, s theme.Styles, tr *i18n.Translator, source Searcher) Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.CharLimit = 128
	ti.Placeholder = tr.T("history.search")

	m := Model{
		source:      source,
		theme:       t,
		styles:      s,
		tr:          tr,
		filterInput: ti,
	}
	m.Refresh()
	return m
}

// Refresh re-reads items from the source using the current filter.
func (m *Model) Refresh() {
	if m.source == nil {
		m.items = nil
	} else {
		m.items = m.source.Search(m.filterInput.Value())
	}
	m.clampCursor()
}

// SetTheme swaps colours.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
}

// Retranslate refreshes strings after a language switch.
func (m *Model) Retranslate() {
	m.filterInput.Placeholder = m.tr.T("history.search")
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.filterInput.Width = max(w-6, 1)
	m.clampCursor()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(f bool) {
	m.focused = f
}

// Filtering reports whether the filter input has focus.
func (m Model) Filtering() bool {
	return m.filtering
}

// Query returns the active filter.
func (m Model) Query() string {
	return m.filterInput.Value()
}

// Items returns the entries currently listed.
func (m Model) Items() []history.Item {
	return m.items
}

// Selected returns the entry under the cursor.
func (m Model) Selected() (history.Item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return history.Item{}, false
	}
	return m.items[m.cursor], true
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.items) {
		m.cursor = max(0, len(m.items)-1)
	}
	visible := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+visible {
		m.offset = m.cursor - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// visibleRows is how many entries fit below the title and filter line.
func (m Model) visibleRows() int {
	h := m.height - 2 - 2 // border, title and blank line
	if m.filtering || m.filterInput.Value() != "" {
		h--
	}
	return max(h/rowHeight, 1)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.filtering {
		return m.updateFilter(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "/":
		m.filtering = true
		m.filterInput.Focus()
		m.clampCursor()
		return m, textinput.Blink
	case "esc":
		if m.filterInput.Value() != "" {
			m.filterInput.SetValue("")
			m.Refresh()
		}
		return m, nil
	case "D":
		if len(m.items) == 0 {
			return m, nil
		}
		return m, func() tea.Msg { return msgs.ClearHistoryMsg{} }
	}

	if len(m.items) == 0 {
		return m, nil
	}

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		m.cursor = len(m.items) - 1
	case "enter", "l":
		id := m.items[m.cursor].ID
		return m, func() tea.Msg { return msgs.HistorySelectedMsg{ID: id} }
	case "d", "x", "delete":
		id := m.items[m.cursor].ID
		return m, func() tea.Msg { return msgs.HistoryDeleteMsg{ID: id} }
	}
	m.clampCursor()

	return m, nil
}

func (m Model) updateFilter(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter", "esc":
			m.filtering = false
			m.filterInput.Blur()
			if msg.String() == "esc" {
				m.filterInput.SetValue("")
			}
			m.Refresh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.cursor = 0
	m.offset = 0
	m.Refresh()
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}

	innerW := max(m.width-2, 1)
	innerH := max(m.height-2, 1)

	lines := []string{m.styles.Title.Render(m.tr.T("history.title")), ""}

	if len(m.items) == 0 {
		empty := m.tr.T("history.noHistory")
		if m.filterInput.Value() != "" {
			empty = m.tr.T("history.noResults")
		}
		lines = append(lines, m.styles.Muted.Render(runewidth.Truncate(empty, innerW, "…")))
	} else {
		end := min(m.offset+m.visibleRows(), len(m.items))
		for i := m.offset; i < end; i++ {
			lines = append(lines, m.renderItem(m.items[i], i == m.cursor, innerW)...)
		}
	}

	content := fitHeight(strings.Join(lines, "\n"), innerH)
	if m.filtering || m.filterInput.Value() != "" {
		content = fitHeight(strings.Join(lines, "\n"), innerH-1) + "\n" + m.filterInput.View()
	}

	return border.
		Width(innerW).
		Height(innerH).
		Render(content)
}

func (m Model) renderItem(it history.Item, isCursor bool, maxWidth int) []string {
	label := m.tr.T("history." + string(it.Type))
	badge := m.styles.KindStyle(string(it.Type)).Render(label)
	when := m.styles.Muted.Render(humanize.Time(it.Timestamp))
	head := badge + " " + when

	preview := strings.Join(strings.Fields(it.Input), " ")
	preview = runewidth.Truncate(preview, maxWidth-2, "…")

	if isCursor {
		head = m.styles.Cursor.Width(maxWidth).Render(runewidth.Truncate(label+" "+humanize.Time(it.Timestamp), maxWidth, "…"))
		return []string{head, m.styles.Cursor.Width(maxWidth).Render("  " + preview)}
	}
	return []string{head, m.styles.Normal.Render("  " + preview)}
}

// fitHeight truncates or pads content to the given height.
func fitHeight(content string, h int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
