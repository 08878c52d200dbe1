package theme

import "github.com/charmbracelet/lipgloss"

// Styles holds pre-computed Lip Gloss styles for the current theme.
type Styles struct {
	// Panel borders
	FocusedBorder   lipgloss.Style
	UnfocusedBorder lipgloss.Style

	// Text styles
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Bold       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	Key        lipgloss.Style
	Value      lipgloss.Style
	Hint       lipgloss.Style
	StatusText lipgloss.Style

	// History kinds
	Encode lipgloss.Style
	Decode lipgloss.Style

	// Components
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	StatusBar   lipgloss.Style
	Selected    lipgloss.Style
	Cursor      lipgloss.Style
	Badge       lipgloss.Style
}

// NewStyles creates a Styles set from a Theme.
func NewStyles(t Theme) Styles {
	return Styles{
		FocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocused),
		UnfocusedBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderUnfocused),

		Title:    lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.Subtext),
		Normal:   lipgloss.NewStyle().Foreground(t.Text),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Bold:     lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(t.Red),
		Success:  lipgloss.NewStyle().Foreground(t.Green),
		Warning:  lipgloss.NewStyle().Foreground(t.Yellow),
		Key:      lipgloss.NewStyle().Foreground(t.Mauve),
		Value:    lipgloss.NewStyle().Foreground(t.Text),
		Hint:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		StatusText: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Padding(0, 1),

		Encode: lipgloss.NewStyle().Foreground(t.KindColor("encode")).Bold(true),
		Decode: lipgloss.NewStyle().Foreground(t.KindColor("decode")).Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(t.Text).
			Background(t.Surface).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(t.Subtext).
			Padding(0, 2),
		StatusBar: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Background(t.Surface).
			Foreground(t.Text),
		Cursor: lipgloss.NewStyle().
			Background(t.Overlay).
			Foreground(t.Text),
		Badge: lipgloss.NewStyle().
			Foreground(t.Base).
			Background(t.Mauve).
			Padding(0, 1),
	}
}

// KindStyle returns the style for a history entry kind.
func (s Styles) KindStyle(kind string) lipgloss.Style {
	switch kind {
	case "encode":
		return s.Encode
	case "decode":
		return s.Decode
	default:
		return s.Normal
	}
}
