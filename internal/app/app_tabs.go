package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/ui/components"
	"github.com/sadopc/endecoder/internal/ui/msgs"
)

var tabKeys = map[state.Tab]string{
	state.TextEncode:  "tabs.textEncode",
	state.TextDecode:  "tabs.textDecode",
	state.ImageEncode: "tabs.imageEncode",
	state.ImageDecode: "tabs.imageDecode",
}

// outputKeys are the catalog sections holding each tab's output labels.
var outputKeys = map[state.Tab]string{
	state.TextEncode:  "textEncoder",
	state.TextDecode:  "textDecoder",
	state.ImageEncode: "imageEncoder",
	state.ImageDecode: "imageDecoder",
}

func (a *App) syncTabs() {
	tabs := make([]components.TabItem, len(state.Tabs))
	for i, t := range state.Tabs {
		kind := "decode"
		if t.Encodes() {
			kind = "encode"
		}
		tabs[i] = components.TabItem{Name: a.tr.T(tabKeys[t]), Kind: kind}
	}
	a.tabBar.SetTabs(tabs)
	a.tabBar.SetActive(int(a.store.ActiveTab))
	a.tabBar.SetTitle(a.tr.T("app.name"))
	a.statusBar.SetTab(a.tr.T(tabKeys[a.store.ActiveTab]))
}

// retranslate pushes the current UI language into every component.
func (a *App) retranslate() {
	a.syncTabs()

	a.editor.SetTab(a.store.ActiveTab)
	a.sidebar.Retranslate()
	section := outputKeys[a.store.ActiveTab]
	var placeholder string
	if a.store.ActiveTab == state.ImageDecode {
		placeholder = a.tr.T("imageDecoder.enterValidData")
	} else {
		placeholder = a.tr.T(section + ".resultPlaceholder")
	}
	a.output.SetTitle(a.tr.T(section+".output"), placeholder)

	a.commandPalette.SetCommands(a.paletteCommands())
	a.help.SetTitle(a.tr.T("common.help"))
	a.modal.SetLabels(a.tr.T("history.clearAll"), "")
	a.statusBar.SetLanguage(a.tr.LanguageName())
}

// paletteCommands is the translated command list.
func (a *App) paletteCommands() []components.PaletteCommand {
	t := a.tr.T
	return []components.PaletteCommand{
		{Name: t("common.process"), Shortcut: "Enter", Msg: msgs.ProcessMsg{}},
		{Name: t("common.file"), Shortcut: "Ctrl+O", Msg: msgs.OpenFilePickerMsg{}},
		{Name: t("common.paste"), Shortcut: "Ctrl+V", Msg: msgs.PasteMsg{}},
		{Name: t("common.copy"), Shortcut: "y", Msg: msgs.CopyOutputMsg{}},
		{Name: t("common.download"), Shortcut: "Ctrl+D", Msg: msgs.DownloadMsg{}},
		{Name: t("common.snippet"), Shortcut: "c", Msg: msgs.ShowSnippetMsg{}},
		{Name: t("common.samples"), Shortcut: "s", Msg: msgs.ShowSamplesMsg{}},
		{Name: t("tabs.textEncode"), Shortcut: "1", Msg: msgs.SwitchTabMsg{Tab: state.TextEncode}},
		{Name: t("tabs.textDecode"), Shortcut: "2", Msg: msgs.SwitchTabMsg{Tab: state.TextDecode}},
		{Name: t("tabs.imageEncode"), Shortcut: "3", Msg: msgs.SwitchTabMsg{Tab: state.ImageEncode}},
		{Name: t("tabs.imageDecode"), Shortcut: "4", Msg: msgs.SwitchTabMsg{Tab: state.ImageDecode}},
		{Name: t("common.theme"), Shortcut: "Ctrl+T", Msg: msgs.ToggleThemeMsg{}},
		{Name: t("common.theme") + "…", Msg: msgs.SwitchThemeMsg{}},
		{Name: t("common.language"), Shortcut: "Ctrl+L", Msg: msgs.SwitchLanguageMsg{}},
		{Name: t("history.title"), Shortcut: "H", Msg: msgs.ToggleHistoryMsg{}},
		{Name: t("history.clearAll"), Shortcut: "D", Msg: msgs.ClearHistoryMsg{}},
		{Name: t("common.help"), Shortcut: "?", Msg: msgs.ShowHelpMsg{}},
		{Name: t("common.quit"), Shortcut: "Ctrl+C", Msg: tea.QuitMsg{}},
	}
}

// resetTab clears input, output and any loaded file.
func (a *App) resetTab() {
	if a.cancelLoad != nil {
		a.cancelLoad()
		a.cancelLoad = nil
	}
	a.loadID++
	a.work = work{}
	a.editor.Reset()
	a.output.Clear()
	a.updateOutputStatus()
}

// setTab activates tab with empty content.
func (a *App) setTab(tab state.Tab) {
	editing := a.editor.Editing()
	a.store.SetTab(tab)
	a.retranslate()
	a.resetTab()
	if editing && tab != state.ImageEncode {
		a.editor.Focus()
	} else if editing {
		a.editor.Blur()
		a.setMode(msgs.ModeNormal)
	}
	a.saveState()
}

func (a App) switchTab(tab state.Tab) (tea.Model, tea.Cmd) {
	if tab == a.store.ActiveTab {
		return a, nil
	}
	a.setTab(tab)
	if a.pickerOpen {
		a.closePicker()
	}
	return a, nil
}
