// Package app is the root Bubble Tea model tying the converter panels,
// history and overlays together.
package app

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/config"
	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/core/fileio"
	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/export/codegen"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/logging"
	"github.com/sadopc/endecoder/internal/ui/components"
	"github.com/sadopc/endecoder/internal/ui/layout"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/panels/editor"
	"github.com/sadopc/endecoder/internal/ui/panels/output"
	"github.com/sadopc/endecoder/internal/ui/panels/sidebar"
	"github.com/sadopc/endecoder/internal/ui/panels/snippet"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

// Clipboard reads and writes the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Options are the dependencies handed to New. Zero values get working
// defaults: an in-memory history, an unsaved state store, English.
type Options struct {
	Config     config.Config
	State      *state.Store
	Translator *i18n.Translator
	History    *history.Store
	Watcher    *history.Watcher
	Logger     *slog.Logger
	Clipboard  Clipboard
}

// work is what the active tab has produced. It is reset on tab switch.
type work struct {
	file   *fileio.File // loaded file, nil for typed input
	output string       // text shown and copied
	data   []byte       // decoded bytes on decode tabs
	mime   string
}

// App is the root Bubble Tea model.
type App struct {
	sidebar sidebar.Model
	editor  editor.Model
	output  output.Model
	snippet snippet.Model
	picker  filepicker.Model

	tabBar         components.TabBar
	statusBar      components.StatusBar
	commandPalette components.CommandPalette
	help           components.Help
	toast          components.Toast
	modal          components.Modal

	cfg     config.Config
	store   *state.Store
	tr      *i18n.Translator
	history *history.Store
	watcher *history.Watcher
	codec   *codec.Codec
	clip    Clipboard
	log     *slog.Logger

	work       work
	loadID     int
	cancelLoad context.CancelFunc
	pickerOpen bool

	mode           msgs.AppMode
	focus          msgs.PanelFocus
	historyVisible bool
	layout         layout.PanelLayout
	keys           KeyMap

	theme  theme.Theme
	styles theme.Styles

	width  int
	height int
	ready  bool
}

// New creates the root model.
func New(opts Options) App {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	store := opts.State
	if store == nil {
		store = state.NewStore()
	}
	tr := opts.Translator
	if tr == nil {
		tr = i18n.MustNew(i18n.Fallback)
	}
	hist := opts.History
	if hist == nil {
		hist = history.NewStore(context.Background(), history.NewMemory(), log)
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = systemClipboard{}
	}

	themeName := store.Theme
	if themeName == "" {
		themeName = opts.Config.Theme
	}
	t := theme.Resolve(themeName)
	s := theme.NewStyles(t)

	a := App{
		cfg:     opts.Config,
		store:   store,
		tr:      tr,
		history: hist,
		watcher: opts.Watcher,
		codec:   codec.New(log),
		clip:    clip,
		log:     log,

		mode:           msgs.ModeNormal,
		focus:          msgs.FocusInput,
		historyVisible: true,
		keys:           DefaultKeyMap(),
	}
	if store.SnippetLanguage == "" {
		store.SnippetLanguage = opts.Config.SnippetLanguage
	}

	a.sidebar = sidebar.New(t, s, tr, hist)
	a.editor = editor.New(t, s, tr)
	a.output = output.New(t, s, tr)
	a.snippet = snippet.New(t, s, tr)
	a.picker = newPicker(s)
	a.applyTheme(t, s)
	a.resetTab()
	a.updateFocus()
	if !a.cfg.VimMode {
		a.editor.Focus()
		a.setMode(msgs.ModeInsert)
	}
	return a
}

// applyTheme restyles the panels and rebuilds the chrome components for t.
func (a *App) applyTheme(t theme.Theme, s theme.Styles) {
	a.theme = t
	a.styles = s

	a.sidebar.SetTheme(t, s)
	a.editor.SetTheme(s)
	a.output.SetTheme(t, s)
	a.snippet.SetTheme(t, s)
	a.picker = restylePicker(a.picker, s)

	a.tabBar = components.NewTabBar(t, s)
	a.statusBar = components.NewStatusBar(t, s)
	a.commandPalette = components.NewCommandPalette(t, s)
	a.help = components.NewHelp(t, s)
	a.toast = components.NewToast(t, s)
	a.modal = components.NewModal(t, s)

	a.retranslate()
	a.statusBar.SetMode(a.mode)
	a.statusBar.SetTheme(t.Name)
	if a.ready {
		a.resizePanels()
	}
}

func newPicker(s theme.Styles) filepicker.Model {
	fp := filepicker.New()
	fp.AutoHeight = true
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	return restylePicker(fp, s)
}

func restylePicker(fp filepicker.Model, s theme.Styles) filepicker.Model {
	fp.Styles.Selected = s.Selected
	fp.Styles.Cursor = s.Cursor
	fp.Styles.Directory = s.Key
	fp.Styles.File = s.Normal
	fp.Styles.DisabledFile = s.Muted
	fp.Styles.DisabledCursor = s.Muted
	fp.Styles.DisabledSelected = s.Muted
	return fp
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return a.waitForHistoryChange()
}

// waitForHistoryChange turns the next watcher event into a message.
func (a App) waitForHistoryChange() tea.Cmd {
	if a.watcher == nil {
		return nil
	}
	changes := a.watcher.Changes()
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return msgs.HistoryChangedMsg{}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout = layout.HandleResize(msg, a.historyVisible)
		a.ready = true
		a.resizePanels()
		if a.pickerOpen {
			return a.updatePicker(a.pickerSize())
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case msgs.InputChangedMsg:
		a.work.file = nil
		a.convert()
		return a, nil

	case msgs.ProcessMsg:
		return a.process()

	case msgs.PasteMsg:
		return a, a.readClipboard()

	case clipboardMsg:
		return a.handlePaste(msg)

	case msgs.CopyOutputMsg:
		return a.copyOutput()

	case msgs.OpenFilePickerMsg:
		return a.openPicker()

	case msgs.PathDroppedMsg:
		return a.loadFile(msg.Path)

	case msgs.FileLoadedMsg:
		return a.handleFileLoaded(msg)

	case msgs.DownloadMsg:
		return a.download()

	case downloadedMsg:
		return a.handleDownloaded(msg)

	case msgs.ClearInputMsg:
		a.resetTab()
		return a, nil

	case msgs.NextTabMsg:
		return a.switchTab(a.store.ActiveTab.Next())

	case msgs.PrevTabMsg:
		return a.switchTab(a.store.ActiveTab.Prev())

	case msgs.SwitchTabMsg:
		return a.switchTab(msg.Tab)

	case msgs.FocusPanelMsg:
		a.focus = msg.Panel
		a.updateFocus()
		return a, nil

	case msgs.ToggleHistoryMsg:
		a.historyVisible = !a.historyVisible
		a.layout = layout.Calculate(a.width, a.height, a.historyVisible)
		if !a.layout.HistoryVisible && a.focus == msgs.FocusHistory {
			a.focus = msgs.FocusInput
		}
		a.resizePanels()
		return a, nil

	case msgs.OpenCommandPaletteMsg:
		a.commandPalette.Open()
		a.setMode(msgs.ModeCommandPalette)
		return a, nil

	case msgs.ShowHelpMsg:
		a.help.SetSize(a.width, a.height)
		a.help.Toggle()
		if a.help.Visible {
			a.setMode(msgs.ModeModal)
		} else {
			a.setMode(msgs.ModeNormal)
		}
		return a, nil

	case msgs.SetModeMsg:
		a.setMode(msg.Mode)
		return a, nil

	case msgs.StatusMsg:
		a.statusBar.SetMessage(msg.Text)
		if msg.Duration > 0 {
			cmds = append(cmds, tea.Tick(msg.Duration, func(time.Time) tea.Msg {
				return msgs.StatusMsg{Text: ""}
			}))
		}
		return a, tea.Batch(cmds...)

	case msgs.ToastMsg:
		cmd := a.toast.Show(msg.Text, msg.IsError, msg.Duration)
		return a, cmd

	case msgs.HistorySelectedMsg:
		return a.restoreHistory(msg.ID)

	case msgs.HistoryDeleteMsg:
		return a.deleteHistory(msg.ID)

	case msgs.ClearHistoryMsg:
		a.modal.SetLabels(a.tr.T("history.clearAll"), "")
		a.modal.Show(a.tr.T("history.title"), a.tr.T("history.clearConfirm"), msgs.ClearHistoryConfirmedMsg{})
		a.setMode(msgs.ModeModal)
		return a, nil

	case msgs.ClearHistoryConfirmedMsg:
		return a.clearHistory()

	case msgs.HistoryChangedMsg:
		return a.reloadHistory()

	case msgs.SwitchThemeMsg:
		return a.handleSwitchTheme(msg)

	case msgs.ToggleThemeMsg:
		return a.handleSwitchTheme(msgs.SwitchThemeMsg{Name: theme.Toggle(a.theme).Name})

	case msgs.SwitchLanguageMsg:
		return a.handleSwitchLanguage(msg)

	case msgs.ShowSamplesMsg:
		return a.openSamples()

	case msgs.InsertSampleMsg:
		return a.insertSample(msg.Key)

	case msgs.ShowSnippetMsg:
		return a.openSnippet()

	case msgs.SnippetLanguageMsg:
		if lang, err := codegen.ParseLanguage(msg.Language); err == nil {
			a.store.SnippetLanguage = string(lang)
			a.saveState()
		}
		return a, nil

	case msgs.CopySnippetMsg:
		return a, a.writeClipboard(msg.Code, "snippet.copied", "snippet.copyFailed")
	}

	var cmd tea.Cmd
	if a.pickerOpen {
		a.picker, cmd = a.picker.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	a.toast, cmd = a.toast.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.statusBar, cmd = a.statusBar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.editor, cmd = a.editor.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}
	a.sidebar, cmd = a.sidebar.Update(msg)
	if cmd != nil {
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) setMode(mode msgs.AppMode) {
	a.mode = mode
	a.statusBar.SetMode(mode)
}

func (a *App) updateFocus() {
	a.sidebar.SetFocused(a.focus == msgs.FocusHistory)
	a.editor.SetFocused(a.focus == msgs.FocusInput)
	a.output.SetFocused(a.focus == msgs.FocusOutput)
	if a.focus != msgs.FocusInput && a.mode == msgs.ModeInsert {
		a.setMode(msgs.ModeNormal)
	}
}

func (a *App) resizePanels() {
	l := a.layout
	a.sidebar.SetSize(l.HistoryWidth, l.ContentHeight)
	a.editor.SetSize(l.InputWidth, l.ContentHeight)
	a.output.SetSize(l.OutputWidth, l.ContentHeight)
	a.snippet.SetSize(a.width, a.height)
	a.tabBar.SetWidth(a.width)
	a.statusBar.SetWidth(a.width)
	a.help.SetSize(a.width, a.height)
	a.updateFocus()
}

// saveState persists UI preferences, logging failures.
func (a *App) saveState() {
	if err := a.store.Save(); err != nil {
		a.log.Warn("saving state failed", "err", err)
	}
}

// View implements tea.Model.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	tabBar := a.tabBar.View()

	var panels string
	if a.layout.SinglePanel {
		switch a.focus {
		case msgs.FocusOutput:
			panels = a.output.View()
		default:
			panels = a.editor.View()
		}
	} else {
		var panelViews []string
		if a.layout.HistoryVisible {
			panelViews = append(panelViews, a.sidebar.View())
		}
		panelViews = append(panelViews, a.editor.View(), a.output.View())
		panels = lipgloss.JoinHorizontal(lipgloss.Top, panelViews...)
	}

	statusBar := a.statusBar.View()
	main := lipgloss.JoinVertical(lipgloss.Left, tabBar, panels, statusBar)

	switch {
	case a.pickerOpen:
		main = overlayCenter(main, a.pickerView(), a.width, a.height, a.theme)
	case a.commandPalette.Visible:
		main = overlayCenter(main, a.commandPalette.View(), a.width, a.height, a.theme)
	case a.snippet.Visible:
		main = overlayCenter(main, a.snippet.View(), a.width, a.height, a.theme)
	case a.help.Visible:
		main = overlayCenter(main, a.help.View(), a.width, a.height, a.theme)
	case a.modal.Visible:
		main = overlayCenter(main, a.modal.View(), a.width, a.height, a.theme)
	}
	if a.toast.Visible {
		main = overlayTopRight(main, a.toast.View(), a.width)
	}

	return main
}

func overlayCenter(_, overlay string, width, height int, t theme.Theme) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, overlay,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(t.Base),
	)
}

func overlayTopRight(bg, overlay string, width int) string {
	overlayWidth := lipgloss.Width(overlay)
	gap := width - overlayWidth - 2
	if gap < 0 {
		gap = 0
	}
	positioned := lipgloss.NewStyle().MarginLeft(gap).Render(overlay)
	return positioned + "\n" + bg
}
