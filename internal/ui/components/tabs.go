package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// TabItem represents a single tab.
type TabItem struct {
	Name string
	// Kind is "encode" or "decode" and picks the accent color.
	Kind string
}

// TabBar is the horizontal bar of converter tabs.
type TabBar struct {
	tabs   []TabItem
	active int
	title  string
	width  int
	theme  theme.Theme
	styles theme.Styles
}

// NewTabBar creates a new tab bar.
func NewTabBar(t theme.Theme, s theme.Styles) TabBar {
	return TabBar{
		theme:  t,
		styles: s,
	}
}

// SetTabs sets the tab items.
func (m *TabBar) SetTabs(tabs []TabItem) {
	m.tabs = tabs
	if m.active >= len(tabs) && len(tabs) > 0 {
		m.active = len(tabs) - 1
	}
}

// SetActive sets the active tab index.
func (m *TabBar) SetActive(index int) {
	if index >= 0 && index < len(m.tabs) {
		m.active = index
	}
}

// Active returns the active tab index.
func (m TabBar) Active() int {
	return m.active
}

// SetTitle sets the application title shown on the right.
func (m *TabBar) SetTitle(title string) {
	m.title = title
}

// SetWidth sets the available width.
func (m *TabBar) SetWidth(w int) {
	m.width = w
}

// Init implements tea.Model.
func (m TabBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m TabBar) Update(msg tea.Msg) (TabBar, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("["))):
			return m, func() tea.Msg { return msgs.PrevTabMsg{} }
		case key.Matches(msg, key.NewBinding(key.WithKeys("]"))):
			return m, func() tea.Msg { return msgs.NextTabMsg{} }
		}
	}
	return m, nil
}

// View renders the tab bar.
func (m TabBar) View() string {
	if len(m.tabs) == 0 {
		return ""
	}

	sep := lipgloss.NewStyle().Foreground(m.theme.Muted).Render("│")

	maxTabWidth := 24
	if avail := m.width - len(m.tabs) - lipgloss.Width(m.title) - 1; avail > 0 {
		if perTab := avail / len(m.tabs); perTab < maxTabWidth {
			maxTabWidth = perTab
		}
	}
	if maxTabWidth < 8 {
		maxTabWidth = 8
	}

	var parts []string
	for i, tab := range m.tabs {
		marker := lipgloss.NewStyle().
			Foreground(m.theme.KindColor(tab.Kind)).
			Bold(true).
			Render(kindMarker(tab.Kind))

		// 2 columns for the marker, 4 for tab padding
		name := runewidth.Truncate(tab.Name, maxTabWidth-6, "…")
		label := marker + " " + name

		if i == m.active {
			parts = append(parts, m.styles.TabActive.Render(label))
		} else {
			parts = append(parts, m.styles.TabInactive.Render(label))
		}
	}

	rendered := strings.Join(parts, sep) + sep
	title := lipgloss.NewStyle().Foreground(m.theme.Mauve).Bold(true).Render(m.title)

	gap := m.width - lipgloss.Width(rendered) - lipgloss.Width(title)
	if gap < 1 {
		return rendered
	}
	return rendered + strings.Repeat(" ", gap) + title
}

func kindMarker(kind string) string {
	switch kind {
	case "encode":
		return "→"
	case "decode":
		return "←"
	default:
		return "•"
	}
}
