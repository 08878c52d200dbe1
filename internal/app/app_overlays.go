package app

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/export/codegen"
	"github.com/sadopc/endecoder/internal/samples"
	"github.com/sadopc/endecoder/internal/ui/components"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

var imageTypes = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp", ".tif", ".tiff", ".svg"}

// --- File picker ---

func (a App) openPicker() (tea.Model, tea.Cmd) {
	if a.store.ActiveTab == state.ImageEncode {
		a.picker.AllowedTypes = imageTypes
	} else {
		a.picker.AllowedTypes = nil
	}
	if a.picker.CurrentDirectory == "" {
		a.picker.CurrentDirectory = "."
		if wd, err := os.Getwd(); err == nil {
			a.picker.CurrentDirectory = wd
		}
	}
	a.pickerOpen = true
	a.setMode(msgs.ModePicker)

	var sized tea.Cmd
	a.picker, sized = a.picker.Update(a.pickerSize())
	return a, tea.Batch(a.picker.Init(), sized)
}

func (a *App) closePicker() {
	a.pickerOpen = false
	a.setMode(msgs.ModeNormal)
}

func (a App) pickerSize() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: max(a.height-6, 8)}
}

func (a App) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc", "q":
			a.closePicker()
			return a, nil
		}
	}

	var cmd tea.Cmd
	a.picker, cmd = a.picker.Update(msg)

	if ok, path := a.picker.DidSelectFile(msg); ok {
		a.closePicker()
		m, load := a.loadFile(path)
		return m, tea.Batch(cmd, load)
	}
	if ok, _ := a.picker.DidSelectDisabledFile(msg); ok {
		return a, tea.Batch(cmd, a.toastCmd("toast.notImage", true))
	}
	return a, cmd
}

func (a App) pickerView() string {
	w := min(max(a.width-8, 30), 90)
	title := a.styles.Title.Render(a.tr.T("common.file"))
	dir := a.styles.Muted.Render(a.picker.CurrentDirectory)
	hint := a.styles.Hint.Render("enter: select  h/backspace: up  esc: close")

	content := lipgloss.JoinVertical(lipgloss.Left, title, dir, "", a.picker.View(), hint)
	return lipgloss.NewStyle().
		Width(w).
		Background(a.theme.Surface).
		Foreground(a.theme.Text).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(a.theme.BorderFocused).
		Padding(0, 1).
		Render(content)
}

// --- Theme and language ---

func (a App) handleSwitchTheme(msg msgs.SwitchThemeMsg) (tea.Model, tea.Cmd) {
	if msg.Name == "" {
		a.commandPalette.OpenThemePicker(theme.Names())
		a.setMode(msgs.ModeCommandPalette)
		return a, nil
	}

	t := theme.Resolve(msg.Name)
	a.applyTheme(t, theme.NewStyles(t))
	a.store.Theme = t.Name
	a.saveState()
	return a, a.toastCmd("toast.themeSwitched", false, t.Name)
}

func (a App) handleSwitchLanguage(msg msgs.SwitchLanguageMsg) (tea.Model, tea.Cmd) {
	if msg.Code == "" {
		a.tr.Next()
	} else if !a.tr.SetLanguage(msg.Code) {
		return a, nil
	}
	a.store.Language = a.tr.Language()
	a.retranslate()
	a.refreshOutput()
	a.saveState()
	return a, a.toastCmd("toast.languageSwitched", false, a.tr.LanguageName())
}

// --- Samples ---

func sampleCommands(list []samples.Sample) []components.PaletteCommand {
	cmds := make([]components.PaletteCommand, len(list))
	for i, s := range list {
		cmds[i] = components.PaletteCommand{Name: s.Name, Msg: msgs.InsertSampleMsg{Key: s.Key}}
	}
	return cmds
}

func findSamples(query string, _ []components.PaletteCommand) []components.PaletteCommand {
	return sampleCommands(samples.Find(query))
}

func (a App) openSamples() (tea.Model, tea.Cmd) {
	a.commandPalette.OpenPicker(a.tr.T("samples.title"), sampleCommands(samples.All), findSamples)
	a.setMode(msgs.ModeCommandPalette)
	return a, nil
}

// insertSample fills the text encode input with a sample sentence.
func (a App) insertSample(key string) (tea.Model, tea.Cmd) {
	s, ok := samples.Get(key)
	if !ok {
		return a, nil
	}
	if a.store.ActiveTab != state.TextEncode {
		a.setTab(state.TextEncode)
	}
	a.work.file = nil
	a.editor.SetValue(s.Text)
	a.convert()
	return a, nil
}

// --- Code snippet ---

// snippetSource returns the operation and input the snippet reproduces.
func (a App) snippetSource() (codegen.Op, string) {
	switch a.store.ActiveTab {
	case state.TextEncode:
		return codegen.OpEncode, a.editor.Value()
	case state.TextDecode:
		return codegen.OpDecode, strings.TrimSpace(a.editor.Value())
	case state.ImageDecode:
		payload, _ := codec.StripDataURL(a.editor.Value())
		return codegen.OpDecode, strings.TrimSpace(payload)
	default:
		// Image encode has no text input; show how to decode its output.
		return codegen.OpDecode, codec.EncodeBytes(a.workData())
	}
}

func (a App) workData() []byte {
	if a.work.file == nil {
		return nil
	}
	return a.work.file.Data
}

func (a App) openSnippet() (tea.Model, tea.Cmd) {
	op, input := a.snippetSource()
	if input == "" {
		return a, a.toastCmd("toast.nothingToCopy", true)
	}
	lang, err := codegen.ParseLanguage(a.store.SnippetLanguage)
	if err != nil {
		lang = codegen.LangJavaScript
	}
	a.snippet.SetSize(a.width, a.height)
	a.snippet.Open(op, lang, input)
	a.setMode(msgs.ModeModal)
	return a, nil
}
