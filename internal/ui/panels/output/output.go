// Package output renders converter results: Base64 text, decoded text with
// syntax highlighting, and image previews.
package output

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/sadopc/endecoder/internal/core/preview"
	"github.com/sadopc/endecoder/internal/core/sniff"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// MaxDisplayBytes caps how much output text is put into the viewport.
// Copy and download always use the full result.
const MaxDisplayBytes = 256 << 10

// Thumbnail bounds in terminal cells.
const (
	thumbCols = 48
	thumbRows = 12
)

// Model is the output panel.
type Model struct {
	viewport viewport.Model
	search   SearchBar
	th       theme.Theme
	styles   theme.Styles
	tr       *i18n.Translator

	title       string
	placeholder string
	header      string
	text        string
	lexer       string
	notice      string
	noticeErr   bool

	focused   bool
	wrap      bool
	searching bool
	width     int
	height    int
}

// New creates an output panel.
func New(t theme.Theme, s theme.Styles, tr *i18n.Translator) Model {
	return Model{
		viewport: viewport.New(0, 0),
		search:   NewSearchBar(s),
		th:       t,
		styles:   s,
		tr:       tr,
		wrap:     true,
	}
}

// SetTitle sets the panel title and the text shown when there is no output.
func (m *Model) SetTitle(title, placeholder string) {
	m.title = title
	m.placeholder = placeholder
}

// SetText shows text highlighted with the named chroma lexer.
func (m *Model) SetText(text, lexer string) {
	m.header = ""
	m.notice = ""
	m.lexer = lexer
	m.text = text
	if len(text) > MaxDisplayBytes {
		m.text = clipBytes(text, MaxDisplayBytes)
		m.header = m.styles.Warning.Render(m.tr.T("preview.truncated", humanize.IBytes(MaxDisplayBytes)))
	}
	m.refresh()
	m.viewport.GotoTop()
}

// SetPreview shows a summary of decoded data: dimensions and a thumbnail
// for raster images, highlighted text for text kinds.
func (m *Model) SetPreview(p preview.Preview, data []byte) {
	m.notice = ""
	m.text = ""
	m.lexer = ""

	var lines []string
	kind := m.styles.KindStyle(p.Sniff.Kind.String())

	switch {
	case p.Raster():
		lines = append(lines, kind.Render(m.tr.T("preview.image", p.Width, p.Height, strings.ToUpper(p.Format))))
	case p.Sniff.MIME == sniff.MIMESVG:
		lines = append(lines, kind.Render(m.tr.T("preview.svg")))
	case p.Sniff.Kind == sniff.KindPDF:
		lines = append(lines, kind.Render(m.tr.T("preview.pdf", p.Pages)))
	case p.Sniff.Kind == sniff.KindBinary:
		lines = append(lines, m.styles.Muted.Render(m.tr.T("preview.noPreview")))
	}
	lines = append(lines,
		m.styles.Key.Render(m.tr.T("preview.type", p.Sniff.MIME)),
		m.styles.Key.Render(m.tr.T("preview.size", humanize.IBytes(uint64(p.Size)))),
	)
	if p.Cut {
		lines = append(lines, m.styles.Warning.Render(m.tr.T("preview.truncated", humanize.IBytes(preview.MaxTextPreview))))
	}

	if p.Raster() {
		cols := thumbCols
		if w := m.width - 2; w < cols {
			cols = w
		}
		if thumb := preview.Thumbnail(data, cols, thumbRows); thumb != "" {
			lines = append(lines, "", thumb)
		}
	}
	m.header = strings.Join(lines, "\n")

	if p.Text != "" {
		m.text = p.Text
		m.lexer = LexerFor(p.Sniff.MIME, p.JSON)
	}
	m.refresh()
	m.viewport.GotoTop()
}

// SetNotice replaces the output with a single message.
func (m *Model) SetNotice(text string, isError bool) {
	m.Clear()
	m.notice = text
	m.noticeErr = isError
}

// Clear removes all output.
func (m *Model) Clear() {
	m.header = ""
	m.text = ""
	m.lexer = ""
	m.notice = ""
	m.noticeErr = false
	if m.searching {
		m.searching = false
		m.search.Close()
	}
	m.refresh()
}

// Empty reports whether nothing is shown.
func (m Model) Empty() bool {
	return m.header == "" && m.text == "" && m.notice == ""
}

// SetTheme swaps colours; rendered content is rebuilt.
func (m *Model) SetTheme(t theme.Theme, s theme.Styles) {
	m.th = t
	m.styles = s
	m.search.styles = s
	m.refresh()
}

// SetFocused sets whether this panel has focus.
func (m *Model) SetFocused(focused bool) {
	m.focused = focused
}

// SetSize updates the panel dimensions.
func (m *Model) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.search.SetWidth(w - 2)
	m.refresh()
}

// Searching returns whether the search bar is open.
func (m Model) Searching() bool {
	return m.searching
}

// Typing reports whether keystrokes go to the search input.
func (m Model) Typing() bool {
	return m.searching && m.search.Typing()
}

// Wrap reports whether long lines are wrapped.
func (m Model) Wrap() bool {
	return m.wrap
}

func (m *Model) innerSize() (int, int) {
	w, h := m.width-2, m.height-2
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}

// refresh lays out the viewport below the title and header and re-renders
// the body.
func (m *Model) refresh() {
	w, h := m.innerSize()
	vpH := h - 1 // title
	if m.header != "" {
		vpH -= lipgloss.Height(m.header)
	}
	if m.searching {
		vpH--
	}
	if vpH < 0 {
		vpH = 0
	}
	m.viewport.Width = w
	m.viewport.Height = vpH

	if m.text == "" {
		m.viewport.SetContent("")
		return
	}

	if m.searching && m.search.Query() != "" {
		// plain text so ANSI codes do not break matching
		content := m.text
		if m.wrap && w > 0 {
			content = wrapText(content, w)
		}
		mark := lipgloss.NewStyle().Background(m.th.Yellow).Foreground(m.th.Base)
		highlighted, lines := HighlightMatches(content, m.search.Query(), mark)
		m.search.SetMatches(lines)
		m.viewport.SetContent(highlighted)
		return
	}

	m.viewport.SetContent(Highlight(m.text, m.lexer, m.th.Chroma, w, m.wrap))
}

func (m *Model) gotoMatch() {
	if line := m.search.CurrentMatchLine(); line >= 0 {
		m.viewport.SetYOffset(line)
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.searching && m.search.Typing() {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if !m.search.Active() {
			m.searching = false
		}
		m.refresh()
		if m.searching {
			m.gotoMatch()
		}
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "/", "ctrl+f":
			if m.text == "" {
				return m, nil
			}
			m.searching = true
			m.search.Open()
			m.refresh()
			return m, nil
		case "w":
			m.wrap = !m.wrap
			m.refresh()
			return m, nil
		case "g":
			m.viewport.GotoTop()
			return m, nil
		case "G":
			m.viewport.GotoBottom()
			return m, nil
		case "n":
			if m.searching && m.search.Query() != "" {
				m.search.NextMatch()
				m.gotoMatch()
				return m, nil
			}
		case "N":
			if m.searching && m.search.Query() != "" {
				m.search.PrevMatch()
				m.gotoMatch()
				return m, nil
			}
		case "esc":
			if m.searching {
				m.searching = false
				m.search.Close()
				m.refresh()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the panel.
func (m Model) View() string {
	border := m.styles.UnfocusedBorder
	if m.focused {
		border = m.styles.FocusedBorder
	}
	w, h := m.innerSize()

	title := m.styles.Title.Render(runewidth.Truncate(m.title, w, "…"))

	var body string
	switch {
	case m.notice != "":
		style := m.styles.Muted
		if m.noticeErr {
			style = m.styles.Error
		}
		body = lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, style.Width(w).Align(lipgloss.Center).Render(m.notice))
	case m.Empty():
		body = lipgloss.Place(w, h-1, lipgloss.Center, lipgloss.Center, m.styles.Muted.Render(m.placeholder))
	default:
		parts := []string{}
		if m.header != "" {
			parts = append(parts, m.header)
		}
		parts = append(parts, m.viewport.View())
		if m.searching {
			parts = append(parts, m.search.View())
		}
		body = lipgloss.JoinVertical(lipgloss.Left, parts...)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return border.Width(w).Height(h).Render(content)
}

// clipBytes cuts s to at most n bytes without splitting a rune.
func clipBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
