package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/ui/msgs"
)

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	// Overlays own the keyboard while open.
	switch {
	case a.pickerOpen:
		return a.updatePicker(msg)
	case a.commandPalette.Visible:
		var cmd tea.Cmd
		a.commandPalette, cmd = a.commandPalette.Update(msg)
		return a, cmd
	case a.help.Visible:
		var cmd tea.Cmd
		a.help, cmd = a.help.Update(msg)
		return a, cmd
	case a.modal.Visible:
		var cmd tea.Cmd
		a.modal, cmd = a.modal.Update(msg)
		return a, cmd
	case a.snippet.Visible:
		var cmd tea.Cmd
		a.snippet, cmd = a.snippet.Update(msg)
		return a, cmd
	}

	if cmd := a.handleGlobalKey(msg); cmd != nil {
		return a, cmd
	}

	if a.editor.Editing() {
		return a.updateEditorInsert(msg)
	}
	if a.focus == msgs.FocusOutput && a.output.Typing() {
		var cmd tea.Cmd
		a.output, cmd = a.output.Update(msg)
		return a, cmd
	}
	if a.focus == msgs.FocusHistory && a.sidebar.Filtering() {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}

	return a.handlePanelKey(msg)
}

// handleGlobalKey handles bindings that work even while typing.
func (a App) handleGlobalKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, a.keys.CommandPalette):
		return func() tea.Msg { return msgs.OpenCommandPaletteMsg{} }
	case key.Matches(msg, a.keys.Process):
		return func() tea.Msg { return msgs.ProcessMsg{} }
	case key.Matches(msg, a.keys.OpenFile):
		return func() tea.Msg { return msgs.OpenFilePickerMsg{} }
	case key.Matches(msg, a.keys.ToggleTheme):
		return func() tea.Msg { return msgs.ToggleThemeMsg{} }
	case key.Matches(msg, a.keys.SwitchLanguage):
		return func() tea.Msg { return msgs.SwitchLanguageMsg{} }
	}
	return nil
}

func (a App) handlePanelKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.CycleFocus):
		a.cycleFocus(false)
		return a, nil
	case key.Matches(msg, a.keys.CycleFocusRev):
		a.cycleFocus(true)
		return a, nil
	case key.Matches(msg, a.keys.ToggleHistory):
		return a, func() tea.Msg { return msgs.ToggleHistoryMsg{} }
	case key.Matches(msg, a.keys.Help):
		return a, func() tea.Msg { return msgs.ShowHelpMsg{} }
	case key.Matches(msg, a.keys.GotoTab):
		tab := state.Tab(int(msg.Runes[0] - '1'))
		return a, func() tea.Msg { return msgs.SwitchTabMsg{Tab: tab} }
	case key.Matches(msg, a.keys.PrevTab):
		return a, func() tea.Msg { return msgs.PrevTabMsg{} }
	case key.Matches(msg, a.keys.NextTab):
		return a, func() tea.Msg { return msgs.NextTabMsg{} }
	case key.Matches(msg, a.keys.Insert):
		return a.enterInsert()
	case key.Matches(msg, a.keys.Snippet):
		return a, func() tea.Msg { return msgs.ShowSnippetMsg{} }
	case key.Matches(msg, a.keys.Sample):
		return a, func() tea.Msg { return msgs.ShowSamplesMsg{} }
	case key.Matches(msg, a.keys.Copy):
		return a, func() tea.Msg { return msgs.CopyOutputMsg{} }
	case key.Matches(msg, a.keys.OpenFileAlt):
		return a, func() tea.Msg { return msgs.OpenFilePickerMsg{} }
	case key.Matches(msg, a.keys.Paste):
		return a, func() tea.Msg { return msgs.PasteMsg{} }
	}

	// The history panel owns the remaining keys while focused, so its
	// own bindings (d, D, enter) win over the converter ones.
	if a.focus == msgs.FocusHistory {
		var cmd tea.Cmd
		a.sidebar, cmd = a.sidebar.Update(msg)
		return a, cmd
	}

	switch {
	case key.Matches(msg, a.keys.ProcessNormal) && a.focus == msgs.FocusInput:
		return a, func() tea.Msg { return msgs.ProcessMsg{} }
	case key.Matches(msg, a.keys.Download):
		return a, func() tea.Msg { return msgs.DownloadMsg{} }
	case key.Matches(msg, a.keys.Clear):
		return a, func() tea.Msg { return msgs.ClearInputMsg{} }
	}

	var cmd tea.Cmd
	switch a.focus {
	case msgs.FocusInput:
		a.editor, cmd = a.editor.Update(msg)
	case msgs.FocusOutput:
		a.output, cmd = a.output.Update(msg)
	}
	return a, cmd
}

// enterInsert focuses the input box. The image encode tab has none.
func (a App) enterInsert() (tea.Model, tea.Cmd) {
	if a.store.ActiveTab == state.ImageEncode {
		return a, nil
	}
	a.focus = msgs.FocusInput
	a.updateFocus()
	cmd := a.editor.Focus()
	a.setMode(msgs.ModeInsert)
	return a, cmd
}

func (a App) updateEditorInsert(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	a.editor, cmd = a.editor.Update(msg)

	if a.editor.Editing() {
		a.setMode(msgs.ModeInsert)
	} else {
		a.setMode(msgs.ModeNormal)
	}
	return a, cmd
}

func (a *App) cycleFocus(reverse bool) {
	panels := []msgs.PanelFocus{msgs.FocusHistory, msgs.FocusInput, msgs.FocusOutput}
	if !a.layout.HistoryVisible {
		panels = []msgs.PanelFocus{msgs.FocusInput, msgs.FocusOutput}
	}

	idx := 0
	for i, p := range panels {
		if p == a.focus {
			idx = i
			break
		}
	}

	if reverse {
		idx = (idx - 1 + len(panels)) % len(panels)
	} else {
		idx = (idx + 1) % len(panels)
	}

	a.focus = panels[idx]
	a.updateFocus()
}
