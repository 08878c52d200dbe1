package msgs

import (
	"time"

	"github.com/sadopc/endecoder/internal/core/fileio"
	"github.com/sadopc/endecoder/internal/core/state"
)

// Panel focus targets
type PanelFocus int

const (
	FocusHistory PanelFocus = iota
	FocusInput
	FocusOutput
)

// AppMode represents the current input mode.
type AppMode int

const (
	ModeNormal AppMode = iota
	ModeInsert
	ModeCommandPalette
	ModeModal
	ModeSearch
	ModePicker
)

func (m AppMode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInsert:
		return "INSERT"
	case ModeCommandPalette:
		return "COMMAND"
	case ModeModal:
		return "MODAL"
	case ModeSearch:
		return "SEARCH"
	case ModePicker:
		return "PICKER"
	default:
		return "UNKNOWN"
	}
}

// FocusPanelMsg requests focus change to a specific panel.
type FocusPanelMsg struct {
	Panel PanelFocus
}

// ToggleHistoryMsg toggles history panel visibility.
type ToggleHistoryMsg struct{}

// SwitchTabMsg switches to a specific tab.
type SwitchTabMsg struct {
	Tab state.Tab
}

// NextTabMsg / PrevTabMsg for tab navigation.
type NextTabMsg struct{}
type PrevTabMsg struct{}

// InputChangedMsg is emitted by the input panel after its text changed.
type InputChangedMsg struct{}

// ProcessMsg converts the current input and records it in history.
type ProcessMsg struct{}

// OpenCommandPaletteMsg opens the command palette.
type OpenCommandPaletteMsg struct{}

// ShowHelpMsg toggles the help overlay.
type ShowHelpMsg struct{}

// SetModeMsg changes the app mode.
type SetModeMsg struct {
	Mode AppMode
}

// StatusMsg sets a temporary status bar message.
type StatusMsg struct {
	Text     string
	Duration time.Duration
}

// ToastMsg shows a toast notification.
type ToastMsg struct {
	Text     string
	Duration time.Duration
	IsError  bool
}

// --- Clipboard and files ---

// PasteMsg replaces the input with the clipboard contents.
type PasteMsg struct{}

// CopyOutputMsg copies the current output to the clipboard.
type CopyOutputMsg struct{}

// OpenFilePickerMsg opens the file picker for the active tab.
type OpenFilePickerMsg struct{}

// PathDroppedMsg is emitted when a paste is a path to an existing file.
type PathDroppedMsg struct {
	Path string
}

// FileLoadedMsg is the single completion of a file load. ID identifies the
// load so a superseded completion can be dropped.
type FileLoadedMsg struct {
	ID   int
	File fileio.File
	Err  error
}

// DownloadMsg saves the current output to the download directory.
type DownloadMsg struct{}

// ClearInputMsg resets input, output and any loaded file.
type ClearInputMsg struct{}

// --- History ---

// HistorySelectedMsg is emitted when a history entry is selected.
type HistorySelectedMsg struct {
	ID string
}

// HistoryDeleteMsg removes one history entry.
type HistoryDeleteMsg struct {
	ID string
}

// ClearHistoryMsg asks for confirmation before clearing history.
type ClearHistoryMsg struct{}

// ClearHistoryConfirmedMsg clears all history entries.
type ClearHistoryConfirmedMsg struct{}

// HistoryChangedMsg is emitted when the history file changed on disk.
type HistoryChangedMsg struct{}

// --- Appearance ---

// SwitchThemeMsg requests switching to a named theme. An empty name opens
// the theme picker.
type SwitchThemeMsg struct {
	Name string
}

// ToggleThemeMsg flips between the light and dark default themes.
type ToggleThemeMsg struct{}

// SwitchLanguageMsg switches the UI language. An empty code cycles to the
// next language.
type SwitchLanguageMsg struct {
	Code string
}

// --- Samples and snippets ---

// ShowSamplesMsg opens the language sample picker.
type ShowSamplesMsg struct{}

// InsertSampleMsg fills the input with a language sample.
type InsertSampleMsg struct {
	Key string
}

// ShowSnippetMsg opens the code snippet overlay for the current input.
type ShowSnippetMsg struct{}

// SnippetLanguageMsg is emitted when the snippet overlay changes language.
type SnippetLanguageMsg struct {
	Language string
}

// CopySnippetMsg copies generated code to the clipboard.
type CopySnippetMsg struct {
	Code string
}
