package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

type helpSection struct {
	Title    string
	Bindings []helpBinding
}

type helpBinding struct {
	Key  string
	Desc string
}

var helpSections = []helpSection{
	{
		Title: "General",
		Bindings: []helpBinding{
			{"Ctrl+C", "Quit application"},
			{"Ctrl+K", "Open command palette"},
			{"?", "Toggle this help"},
			{"Tab", "Cycle focus forward"},
			{"Shift+Tab", "Cycle focus backward"},
			{"[ / ]", "Previous / next converter tab"},
			{"1-4", "Jump to converter tab"},
			{"Ctrl+T", "Toggle light / dark theme"},
			{"Ctrl+L", "Switch UI language"},
			{"H", "Toggle history panel"},
		},
	},
	{
		Title: "Converter",
		Bindings: []helpBinding{
			{"i", "Edit input"},
			{"Esc", "Leave input"},
			{"Enter / Ctrl+S", "Process and save to history"},
			{"Ctrl+O / o", "Open a file"},
			{"Ctrl+V / p", "Paste from clipboard"},
			{"y", "Copy output"},
			{"Ctrl+D / D", "Download output"},
			{"c", "Show code snippet"},
			{"s", "Insert a language sample"},
			{"x", "Clear input and output"},
		},
	},
	{
		Title: "Output",
		Bindings: []helpBinding{
			{"j / k", "Scroll down / up"},
			{"g / G", "Top / bottom"},
			{"/ / Ctrl+F", "Search output"},
			{"n / N", "Next / previous match"},
			{"w", "Toggle word wrap"},
		},
	},
	{
		Title: "History",
		Bindings: []helpBinding{
			{"j / k", "Move cursor down / up"},
			{"Enter", "Restore entry into its tab"},
			{"/", "Search history"},
			{"d", "Delete entry"},
			{"D", "Clear all history"},
		},
	},
	{
		Title: "Code snippet",
		Bindings: []helpBinding{
			{"Tab / l", "Next language"},
			{"y", "Copy code"},
			{"Esc", "Close"},
		},
	},
}

// Help is a help overlay showing keybindings.
type Help struct {
	Visible  bool
	viewport viewport.Model
	theme    theme.Theme
	styles   theme.Styles
	title    string
	width    int
	height   int
	ready    bool
}

// NewHelp creates a new help overlay.
func NewHelp(t theme.Theme, s theme.Styles) Help {
	return Help{
		theme:  t,
		styles: s,
		title:  "Keyboard Shortcuts",
	}
}

// SetSize sets the terminal dimensions for centering.
func (m *Help) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTitle sets the overlay title.
func (m *Help) SetTitle(title string) {
	m.title = title
}

// Toggle toggles help visibility.
func (m *Help) Toggle() {
	m.Visible = !m.Visible
	if m.Visible {
		m.buildViewport()
	}
}

func (m *Help) buildViewport() {
	boxWidth := 70
	contentWidth := boxWidth - 6 // padding + border

	keyStyle := lipgloss.NewStyle().
		Foreground(m.theme.Mauve).
		Bold(true).
		Width(16).
		Align(lipgloss.Right)

	descStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text)

	sectionStyle := lipgloss.NewStyle().
		Foreground(m.theme.Lavender).
		Bold(true).
		MarginTop(1)

	sepStyle := lipgloss.NewStyle().
		Foreground(m.theme.Muted)

	var lines []string
	for _, section := range helpSections {
		lines = append(lines, sectionStyle.Render(section.Title))
		lines = append(lines, sepStyle.Render(strings.Repeat("─", contentWidth)))

		for _, b := range section.Bindings {
			line := keyStyle.Render(b.Key) + sepStyle.Render(" │ ") + descStyle.Render(b.Desc)
			lines = append(lines, line)
		}
	}

	vpHeight := m.height - 8
	if vpHeight < 10 {
		vpHeight = 10
	}

	m.viewport = viewport.New(contentWidth, vpHeight)
	m.viewport.SetContent(strings.Join(lines, "\n"))
	m.ready = true
}

// Init implements tea.Model.
func (m Help) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Help) Update(msg tea.Msg) (Help, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			m.Visible = false
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the help overlay.
func (m Help) View() string {
	if !m.Visible {
		return ""
	}

	if !m.ready {
		m.buildViewport()
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(64).
		Align(lipgloss.Center)

	content := titleStyle.Render(m.title) + "\n\n" + m.viewport.View()

	return lipgloss.NewStyle().
		Width(70).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
