// Package snippet shows generated code that reproduces the current
// conversion in JavaScript, Python or PHP.
package snippet

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/export/codegen"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/panels/output"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

const boxWidth = 76

// Model is the code snippet overlay.
type Model struct {
	Visible bool

	op    codegen.Op
	lang  codegen.Language
	input string
	code  string
	err   error

	viewport viewport.Model
	theme    theme.Theme
	styles   theme.Styles
	tr       *i18n.Translator
	width    int
	height   int
}

// New creates a hidden snippet overlay.
func New(t theme.Theme, s theme.Styles, tr *i18n.Translator) Model {
	return Model{
		lang:     codegen.LangJavaScript,
		viewport: viewport.New(boxWidth-6, 12),
		theme:    t,
		styles:   s,
		tr:       tr,
	}
}

// SetTheme swaps colours.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.theme = t
	m.styles = s
	m.render()
}

// SetSize sets the terminal size used to bound the overlay.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.viewport.Width = min(boxWidth, max(w-4, 20)) - 6
	m.viewport.Height = max(h-12, 5)
	m.render()
}

// Open shows code for op applied to input in lang.
func (m *Model) Open(op codegen.Op, lang codegen.Language, input string) {
	m.Visible = true
	m.op = op
	m.input = input
	if lang == "" {
		lang = codegen.LangJavaScript
	}
	m.lang = lang
	m.generate()
}

// Close hides the overlay.
func (m *Model) Close() {
	m.Visible = false
}

// Language returns the language shown.
func (m Model) Language() codegen.Language {
	return m.lang
}

// Code returns the generated code.
func (m Model) Code() string {
	return m.code
}

func (m *Model) generate() {
	m.code, m.err = codegen.Generate(m.op, m.lang, m.input)
	m.render()
	m.viewport.GotoTop()
}

func (m *Model) render() {
	if m.code == "" {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(output.Highlight(m.code, string(m.lang), m.theme.Chroma, 0, false))
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.Visible {
		return m, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			m.Close()
			return m, func() tea.Msg { return msgs.SetModeMsg{Mode: msgs.ModeNormal} }
		case "tab", "l", "right":
			m.lang = m.lang.Next()
			m.generate()
			lang := string(m.lang)
			return m, func() tea.Msg { return msgs.SnippetLanguageMsg{Language: lang} }
		case "shift+tab", "h", "left":
			langs := codegen.Languages()
			for i := range langs {
				if langs[(i+1)%len(langs)] == m.lang {
					m.lang = langs[i]
					break
				}
			}
			m.generate()
			lang := string(m.lang)
			return m, func() tea.Msg { return msgs.SnippetLanguageMsg{Language: lang} }
		case "y", "c":
			if m.code == "" {
				return m, nil
			}
			code := m.code
			return m, func() tea.Msg { return msgs.CopySnippetMsg{Code: code} }
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the overlay.
func (m Model) View() string {
	if !m.Visible {
		return ""
	}

	w := m.viewport.Width + 6

	titleStyle := lipgloss.NewStyle().
		Foreground(m.theme.Text).
		Bold(true).
		Width(w - 4).
		Align(lipgloss.Center)
	title := titleStyle.Render(m.tr.T("snippet.title", m.lang.DisplayName()))

	var tabs []string
	for _, l := range codegen.Languages() {
		if l == m.lang {
			tabs = append(tabs, m.styles.TabActive.Render(l.DisplayName()))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(l.DisplayName()))
		}
	}
	tabRow := strings.Join(tabs, " ")

	body := m.viewport.View()
	if m.err != nil {
		body = m.styles.Error.Render(m.err.Error())
	}

	hint := m.styles.Hint.Render("tab: language  y: copy  esc: close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", tabRow, "", body, "", hint)

	return lipgloss.NewStyle().
		Width(w).
		Background(m.theme.Surface).
		Foreground(m.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.BorderFocused).
		Padding(1, 2).
		Render(content)
}
