// Package editor is the input panel. Text tabs edit a textarea; the image
// encode tab shows the chosen image instead.
package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/endecoder/internal/core/fileio"
	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// Model is the input panel.
type Model struct {
	area  textarea.Model
	tab   state.Tab
	title string

	// image encode tab
	fileLabel string
	thumbnail string

	focused bool
	width   int
	height  int
	styles  theme.Styles
	tr      *i18n.Translator
}

// New creates the input panel for the given tab.
func New(t theme.Theme, styles theme.Styles, tr *i18n.Translator) Model {
	area := textarea.New()
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.SetWidth(40)
	area.SetHeight(6)

	m := Model{
		area:   area,
		styles: styles,
		tr:     tr,
		width:  60,
		height: 20,
	}
	m.SetTab(state.TextEncode)
	return m
}

// SetTab switches the panel to tab, updating labels. Content is kept; the
// caller clears it when needed.
func (m *Model) SetTab(tab state.Tab) {
	m.tab = tab
	m.Retranslate()
}

// Tab returns the tab the panel is showing.
func (m Model) Tab() state.Tab {
	return m.tab
}

// Retranslate refreshes the title and placeholder.
func (m *Model) Retranslate() {
	switch m.tab {
	case state.TextEncode:
		m.title = m.tr.T("textEncoder.input")
		m.area.Placeholder = m.tr.T("textEncoder.placeholder")
	case state.TextDecode:
		m.title = m.tr.T("textDecoder.input")
		m.area.Placeholder = m.tr.T("textDecoder.placeholder")
	case state.ImageEncode:
		m.title = m.tr.T("imageEncoder.input")
		m.area.Placeholder = ""
	case state.ImageDecode:
		m.title = m.tr.T("imageDecoder.input")
		m.area.Placeholder = m.tr.T("imageDecoder.placeholder")
	}
}

// SetTheme swaps colours.
func (m *Model) SetTheme(styles theme.Styles) {
	m.styles = styles
}

// SetFocused sets whether the panel has focus. Losing focus leaves insert
// mode.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
	if !focused {
		m.area.Blur()
	}
}

// SetSize sets the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	innerW := max(w-2, 10)
	innerH := max(h-3, 1) // border and title
	m.area.SetWidth(innerW)
	m.area.SetHeight(innerH)
}

// Focus enters insert mode on text tabs.
func (m *Model) Focus() tea.Cmd {
	if m.tab == state.ImageEncode {
		return nil
	}
	return m.area.Focus()
}

// Blur leaves insert mode.
func (m *Model) Blur() {
	m.area.Blur()
}

// Editing returns whether the textarea takes keystrokes.
func (m Model) Editing() bool {
	return m.area.Focused()
}

// Value returns the text input.
func (m Model) Value() string {
	return m.area.Value()
}

// SetValue replaces the text input.
func (m *Model) SetValue(s string) {
	m.area.SetValue(s)
}

// SetFile shows a loaded file on the image encode tab.
func (m *Model) SetFile(label, thumbnail string) {
	m.fileLabel = label
	m.thumbnail = thumbnail
}

// FileLabel returns the label set by SetFile.
func (m Model) FileLabel() string {
	return m.fileLabel
}

// Reset clears text and file state.
func (m *Model) Reset() {
	m.area.Reset()
	m.fileLabel = ""
	m.thumbnail = ""
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. Only keys arriving in insert mode are
// expected here.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.String() == "esc":
			m.area.Blur()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case key.Paste:
			if path, ok := fileio.PastedPath(string(key.Runes)); ok {
				return m, func() tea.Msg { return msgs.PathDroppedMsg{Path: path} }
			}
		}
	}

	if m.tab == state.ImageEncode {
		return m, nil
	}

	before := m.area.Value()
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	if m.area.Value() != before {
		changed := func() tea.Msg { return msgs.InputChangedMsg{} }
		return m, tea.Batch(cmd, changed)
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	innerW := max(m.width-2, 10)
	innerH := max(m.height-2, 1)

	title := m.styles.Title.Render(runewidth.Truncate(m.title, innerW, "…"))

	var body string
	if m.tab == state.ImageEncode {
		body = m.imageView(innerW, innerH-1)
	} else {
		body = m.area.View()
	}

	content := title + "\n" + body

	var borderStyle lipgloss.Style
	if m.focused {
		borderStyle = m.styles.FocusedBorder
	} else {
		borderStyle = m.styles.UnfocusedBorder
	}
	return borderStyle.Width(innerW).Height(innerH).Render(content)
}

func (m Model) imageView(w, h int) string {
	if m.fileLabel == "" {
		hint := m.styles.Hint.Width(w).Align(lipgloss.Center).Render(m.tr.T("imageEncoder.selectImage"))
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, hint)
	}
	parts := []string{m.styles.Value.Render(runewidth.Truncate(m.fileLabel, w, "…"))}
	if m.thumbnail != "" {
		parts = append(parts, "", m.thumbnail)
	}
	return strings.Join(parts, "\n")
}
