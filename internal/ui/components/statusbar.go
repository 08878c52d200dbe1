package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// clearStatusMsg clears a temporary status message.
type clearStatusMsg struct{}

// StatusBar is a full-width bottom status bar.
type StatusBar struct {
	tab       string
	size      int64
	mime      string
	mode      msgs.AppMode
	message   string
	language  string
	themeName string
	width     int
	theme     theme.Theme
	styles    theme.Styles
}

// NewStatusBar creates a new status bar.
func NewStatusBar(t theme.Theme, s theme.Styles) StatusBar {
	return StatusBar{
		theme:     t,
		styles:    s,
		mode:      msgs.ModeNormal,
		themeName: t.Name,
	}
}

// SetTab sets the name of the active tab.
func (m *StatusBar) SetTab(name string) {
	m.tab = name
}

// SetOutput sets the size and detected type of the current output.
// A zero size hides both.
func (m *StatusBar) SetOutput(size int64, mime string) {
	m.size = size
	m.mime = mime
}

// SetMode sets the current app mode.
func (m *StatusBar) SetMode(mode msgs.AppMode) {
	m.mode = mode
}

// SetWidth sets the available width.
func (m *StatusBar) SetWidth(w int) {
	m.width = w
}

// SetMessage sets a temporary status message.
func (m *StatusBar) SetMessage(text string) {
	m.message = text
}

// SetLanguage sets the UI language name displayed on the right.
func (m *StatusBar) SetLanguage(name string) {
	m.language = name
}

// SetTheme sets the theme name displayed on the right.
func (m *StatusBar) SetTheme(name string) {
	m.themeName = name
}

// Init implements tea.Model.
func (m StatusBar) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatusBar) Update(msg tea.Msg) (StatusBar, tea.Cmd) {
	switch msg.(type) {
	case clearStatusMsg:
		m.message = ""
	}
	return m, nil
}

// View renders the status bar.
func (m StatusBar) View() string {
	barStyle := lipgloss.NewStyle().
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Width(m.width)

	var leftParts []string

	if m.message != "" {
		leftParts = append(leftParts, lipgloss.NewStyle().
			Foreground(m.theme.Text).
			Background(m.theme.Surface).
			Render(m.message))
	} else {
		if m.tab != "" {
			leftParts = append(leftParts, lipgloss.NewStyle().
				Foreground(m.theme.Lavender).
				Background(m.theme.Surface).
				Bold(true).
				Render(m.tab))
		}
		if m.size > 0 {
			leftParts = append(leftParts, lipgloss.NewStyle().
				Foreground(m.theme.Subtext).
				Background(m.theme.Surface).
				Render(humanize.IBytes(uint64(m.size))))
			if m.mime != "" {
				leftParts = append(leftParts, lipgloss.NewStyle().
					Foreground(m.theme.Muted).
					Background(m.theme.Surface).
					Render(m.mime))
			}
		}
	}

	left := strings.Join(leftParts, " │ ")

	modeStr := lipgloss.NewStyle().
		Foreground(m.theme.Mauve).
		Background(m.theme.Surface).
		Bold(true).
		Render("[" + m.mode.String() + "]")

	var rightParts []string
	if m.language != "" {
		rightParts = append(rightParts, lipgloss.NewStyle().
			Foreground(m.theme.Teal).
			Background(m.theme.Surface).
			Bold(true).
			Render("["+m.language+"]"))
	}
	if m.themeName != "" {
		rightParts = append(rightParts, lipgloss.NewStyle().
			Foreground(m.theme.Peach).
			Background(m.theme.Surface).
			Render("["+m.themeName+"]"))
	}
	rightParts = append(rightParts, lipgloss.NewStyle().
		Foreground(m.theme.Muted).
		Background(m.theme.Surface).
		Render("?:help  Ctrl+K:command"))
	hint := strings.Join(rightParts, " ")

	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(modeStr)
	rightWidth := lipgloss.Width(hint)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.width {
		line := " " + left + " " + modeStr + " " + hint
		return barStyle.Render(line)
	}

	remaining := m.width - totalContent - 2
	if remaining < 0 {
		remaining = 0
	}
	gap1 := remaining / 2
	gap2 := remaining - gap1

	line := " " + left +
		strings.Repeat(" ", gap1) + modeStr +
		strings.Repeat(" ", gap2) + hint

	return barStyle.Render(line)
}
