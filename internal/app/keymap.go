package app

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application keybindings.
type KeyMap struct {
	// Global, also active while typing
	Quit           key.Binding
	CommandPalette key.Binding
	Process        key.Binding
	OpenFile       key.Binding
	ToggleTheme    key.Binding
	SwitchLanguage key.Binding

	// Normal mode
	Help          key.Binding
	Insert        key.Binding
	ProcessNormal key.Binding
	OpenFileAlt   key.Binding
	Paste         key.Binding
	Copy          key.Binding
	Download      key.Binding
	Snippet       key.Binding
	Sample        key.Binding
	Clear         key.Binding

	// Panel navigation
	CycleFocus    key.Binding
	CycleFocusRev key.Binding
	ToggleHistory key.Binding

	// Tab navigation
	PrevTab key.Binding
	NextTab key.Binding
	GotoTab key.Binding
}

// DefaultKeyMap returns the default keybinding configuration.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		CommandPalette: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "command palette"),
		),
		Process: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "process"),
		),
		OpenFile: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open file"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "toggle theme"),
		),
		SwitchLanguage: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "switch language"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Insert: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "edit input"),
		),
		ProcessNormal: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "process"),
		),
		OpenFileAlt: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v", "p"),
			key.WithHelp("p", "paste"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy output"),
		),
		Download: key.NewBinding(
			key.WithKeys("ctrl+d", "D"),
			key.WithHelp("D", "download"),
		),
		Snippet: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "code snippet"),
		),
		Sample: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "insert sample"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear"),
		),
		CycleFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		CycleFocusRev: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "toggle history"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "prev tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "next tab"),
		),
		GotoTab: key.NewBinding(
			key.WithKeys("1", "2", "3", "4"),
			key.WithHelp("1-4", "go to tab"),
		),
	}
}
