package theme

import "github.com/charmbracelet/lipgloss"

// Theme holds all colors for the application.
type Theme struct {
	Name string
	Dark bool
	// Chroma is the syntax highlighting style used for code and text previews.
	Chroma string

	// Base colors
	Base    lipgloss.Color
	Surface lipgloss.Color
	Overlay lipgloss.Color

	// Text
	Text    lipgloss.Color
	Subtext lipgloss.Color
	Muted   lipgloss.Color

	// Accents
	Mauve    lipgloss.Color
	Red      lipgloss.Color
	Peach    lipgloss.Color
	Yellow   lipgloss.Color
	Green    lipgloss.Color
	Teal     lipgloss.Color
	Blue     lipgloss.Color
	Lavender lipgloss.Color

	// Semantic
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
}

// KindColor returns the color for a history entry kind ("encode"/"decode").
func (t Theme) KindColor(kind string) lipgloss.Color {
	switch kind {
	case "encode":
		return t.Green
	case "decode":
		return t.Blue
	default:
		return t.Text
	}
}

// PreviewColor returns the accent for a sniffed preview kind.
func (t Theme) PreviewColor(kind string) lipgloss.Color {
	switch kind {
	case "image":
		return t.Mauve
	case "pdf":
		return t.Red
	case "text":
		return t.Teal
	default:
		return t.Peach
	}
}

// Toggle returns the light counterpart of a dark theme and vice versa.
func Toggle(t Theme) Theme {
	if t.Dark {
		return CatppuccinLatte
	}
	return CatppuccinMocha
}

// fill copies colors missing from t from the default of the same darkness.
func fill(t Theme) Theme {
	base := CatppuccinMocha
	if !t.Dark {
		base = CatppuccinLatte
	}
	pairs := []struct {
		dst *lipgloss.Color
		src lipgloss.Color
	}{
		{&t.Base, base.Base}, {&t.Surface, base.Surface}, {&t.Overlay, base.Overlay},
		{&t.Text, base.Text}, {&t.Subtext, base.Subtext}, {&t.Muted, base.Muted},
		{&t.Mauve, base.Mauve}, {&t.Red, base.Red}, {&t.Peach, base.Peach},
		{&t.Yellow, base.Yellow}, {&t.Green, base.Green}, {&t.Teal, base.Teal},
		{&t.Blue, base.Blue}, {&t.Lavender, base.Lavender},
		{&t.BorderFocused, base.BorderFocused}, {&t.BorderUnfocused, base.BorderUnfocused},
	}
	for _, p := range pairs {
		if *p.dst == "" {
			*p.dst = p.src
		}
	}
	if t.Chroma == "" {
		t.Chroma = base.Chroma
	}
	return t
}
