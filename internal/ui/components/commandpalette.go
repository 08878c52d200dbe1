package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"

	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// PaletteCommand is a command entry in the palette.
type PaletteCommand struct {
	Name     string
	Shortcut string
	Msg      tea.Msg
}

// FindFunc filters palette entries for a query. An empty query should
// return every entry.
type FindFunc func(query string, cmds []PaletteCommand) []PaletteCommand

// DefaultCommands is the palette used until SetCommands is called.
var DefaultCommands = []PaletteCommand{
	{Name: "Process", Shortcut: "Enter", Msg: msgs.ProcessMsg{}},
	{Name: "Open File", Shortcut: "Ctrl+O", Msg: msgs.OpenFilePickerMsg{}},
	{Name: "Paste", Shortcut: "Ctrl+V", Msg: msgs.PasteMsg{}},
	{Name: "Copy Output", Shortcut: "y", Msg: msgs.CopyOutputMsg{}},
	{Name: "Download Output", Shortcut: "Ctrl+D", Msg: msgs.DownloadMsg{}},
	{Name: "Clear Input", Shortcut: "x", Msg: msgs.ClearInputMsg{}},
	{Name: "Code Snippet", Shortcut: "c", Msg: msgs.ShowSnippetMsg{}},
	{Name: "Insert Sample", Shortcut: "s", Msg: msgs.ShowSamplesMsg{}},
	{Name: "Toggle Theme", Shortcut: "Ctrl+T", Msg: msgs.ToggleThemeMsg{}},
	{Name: "Switch Theme", Shortcut: "", Msg: msgs.SwitchThemeMsg{}},
	{Name: "Switch Language", Shortcut: "Ctrl+L", Msg: msgs.SwitchLanguageMsg{}},
	{Name: "Toggle History", Shortcut: "H", Msg: msgs.ToggleHistoryMsg{}},
	{Name: "Clear History", Shortcut: "D", Msg: msgs.ClearHistoryMsg{}},
	{Name: "Help", Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
	{Name: "Quit", Shortcut: "Ctrl+C", Msg: tea.Quit()},
}

// CommandPalette is a fuzzy command palette overlay.
type CommandPalette struct {
	Visible     bool
	input       textinput.Model
	defaults    []PaletteCommand
	commands    []PaletteCommand
	filtered    []PaletteCommand
	find        FindFunc
	title       string
	placeholder string
	cursor      int
	theme       theme.Theme
	styles      theme.Styles
}

// NewCommandPalette creates a new command palette.
func NewCommandPalette(t theme.Theme, s theme.Styles) CommandPalette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.CharLimit = 64
	ti.Width = 54

	return CommandPalette{
		input:       ti,
		defaults:    DefaultCommands,
		commands:    DefaultCommands,
		filtered:    DefaultCommands,
		find:        FuzzyFind,
		title:       "Command Palette",
		placeholder: ti.Placeholder,
		theme:       t,
		styles:      s,
	}
}

// SetCommands replaces the default command list, e.g. with translated names.
func (m *CommandPalette) SetCommands(cmds []PaletteCommand) {
	m.defaults = cmds
	if !m.Visible {
		m.ResetCommands()
	}
}

// SetTitle sets the title shown for the default command list.
func (m *CommandPalette) SetTitle(title, placeholder string) {
	m.title = title
	m.placeholder = placeholder
	m.input.Placeholder = placeholder
}

// Open shows the command palette.
func (m *CommandPalette) Open() {
	m.ResetCommands()
	m.show()
}

// Close hides the command palette.
func (m *CommandPalette) Close() {
	m.Visible = false
	m.input.Blur()
}

// OpenPicker opens the palette over an arbitrary list. find may be nil for
// fuzzy matching on names.
func (m *CommandPalette) OpenPicker(placeholder string, cmds []PaletteCommand, find FindFunc) {
	if find == nil {
		find = FuzzyFind
	}
	m.commands = cmds
	m.find = find
	m.input.Placeholder = placeholder
	m.show()
}

// OpenThemePicker opens the palette in theme selection mode.
func (m *CommandPalette) OpenThemePicker(themeNames []string) {
	cmds := make([]PaletteCommand, len(themeNames))
	for i, name := range themeNames {
		cmds[i] = PaletteCommand{
			Name: name,
			Msg:  msgs.SwitchThemeMsg{Name: name},
		}
	}
	m.OpenPicker("Select theme...", cmds, nil)
}

// ResetCommands restores the default commands after a picker.
func (m *CommandPalette) ResetCommands() {
	m.commands = m.defaults
	m.filtered = m.defaults
	m.find = FuzzyFind
	m.input.Placeholder = m.placeholder
}

// Filtered returns the entries matching the current query.
func (m CommandPalette) Filtered() []PaletteCommand {
	return m.filtered
}

func (m *CommandPalette) show() {
	m.Visible = true
	m.input.SetValue("")
	m.input.Focus()
	m.filtered = m.commands
	m.cursor = 0
}

// FuzzyFind matches cmds by name with sahilm/fuzzy, best match first.
func FuzzyFind(query string, cmds []PaletteCommand) []PaletteCommand {
	if query == "" {
		return cmds
	}
	names := make([]string, len(cmds))
	for i, c := range cmds {
		names[i] = c.Name
	}
	matches := fuzzy.Find(query, names)
	out := make([]PaletteCommand, len(matches))
	for i, match := range matches {
		out[i] = cmds[match.Index]
	}
	return out
}

// Init implements tea.Model.
func (m CommandPalette) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m CommandPalette) Update(msg tea.Msg) (CommandPalette, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			m.Close()
			m.ResetCommands()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case "enter":
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				selected := m.filtered[m.cursor]
				m.Close()
				m.ResetCommands()
				return m, tea.Batch(
					func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} },
					func() tea.Msg { return selected.Msg },
				)
			}
			return m, nil
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	m.filtered = m.find(m.input.Value(), m.commands)

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	return m, cmd
}

// View renders the command palette overlay.
func (m CommandPalette) View() string {
	if !m.Visible {
		return ""
	}

	boxWidth := 60

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(boxWidth - 4).
		Align(lipgloss.Center)
	title := titleStyle.Render(m.title)

	maxItems := 15
	if len(m.filtered) < maxItems {
		maxItems = len(m.filtered)
	}

	// keep the cursor inside the visible window
	start := 0
	if m.cursor >= maxItems {
		start = m.cursor - maxItems + 1
	}

	nameStyle := lipgloss.NewStyle().Foreground(m.theme.Text)
	shortcutStyle := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var items []string
	for i := start; i < start+maxItems && i < len(m.filtered); i++ {
		cmd := m.filtered[i]

		nameWidth := boxWidth - 6
		if cmd.Shortcut != "" {
			nameWidth -= len(cmd.Shortcut) + 1
		}
		name := runewidth.Truncate(cmd.Name, nameWidth, "…")

		gap := boxWidth - 6 - runewidth.StringWidth(name) - len(cmd.Shortcut)
		if gap < 1 {
			gap = 1
		}
		pad := strings.Repeat(" ", gap)

		line := nameStyle.Render(name) + pad + shortcutStyle.Render(cmd.Shortcut)
		if i == m.cursor {
			line = lipgloss.NewStyle().
				Background(m.theme.Overlay).
				Foreground(m.theme.Text).
				Width(boxWidth - 4).
				Render(name + pad + cmd.Shortcut)
		}

		items = append(items, line)
	}

	content := title + "\n\n" + m.input.View() + "\n\n" + lipgloss.JoinVertical(lipgloss.Left, items...)

	return lipgloss.NewStyle().
		Width(boxWidth).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
