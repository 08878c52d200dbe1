package app

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/core/fileio"
	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/core/preview"
	"github.com/sadopc/endecoder/internal/core/sniff"
	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/ui/msgs"
)

const toastError = 3 * time.Second

// clipboardMsg carries the result of a clipboard read.
type clipboardMsg struct {
	text string
	err  error
}

// downloadedMsg reports where a download was written.
type downloadedMsg struct {
	path string
	err  error
}

func (a *App) toastCmd(key string, isError bool, args ...any) tea.Cmd {
	d := time.Duration(0)
	if isError {
		d = toastError
	}
	return a.toast.Show(a.tr.T(key, args...), isError, d)
}

// convert recomputes the output for the active tab from the input box.
// Text tabs convert live on every edit.
func (a *App) convert() {
	input := a.editor.Value()
	a.work.output, a.work.data, a.work.mime = "", nil, ""

	switch a.store.ActiveTab {
	case state.TextEncode:
		if input == "" {
			a.output.Clear()
			break
		}
		a.work.output = a.codec.Encode(input)
		a.work.mime = sniff.MIMEText
		a.output.SetText(a.work.output, "text")

	case state.TextDecode:
		if strings.TrimSpace(input) == "" {
			a.output.Clear()
			break
		}
		if !codec.IsBase64(compactBase64(input)) {
			a.output.SetNotice(a.tr.T("toast.invalidBase64"), true)
			break
		}
		data, err := codec.DecodeBytes(input)
		if err != nil {
			a.output.SetNotice(a.tr.T("toast.invalidBase64"), true)
			break
		}
		p := preview.Build(data)
		a.work.data = data
		a.work.output = a.codec.Decode(input)
		a.work.mime = p.Sniff.MIME
		a.output.SetPreview(p, data)

	case state.ImageDecode:
		payload, _ := codec.StripDataURL(input)
		if strings.TrimSpace(payload) == "" {
			a.output.Clear()
			break
		}
		if !codec.IsBase64(compactBase64(payload)) {
			a.output.SetNotice(a.tr.T("imageDecoder.enterValidData"), false)
			break
		}
		data, err := codec.DecodeBytes(payload)
		if err != nil {
			a.output.SetNotice(a.tr.T("imageDecoder.enterValidData"), false)
			break
		}
		p := preview.Build(data)
		if p.Sniff.Kind != sniff.KindImage {
			a.output.SetNotice(a.tr.T("imageDecoder.noValidImage"), true)
			break
		}
		a.work.data = data
		a.work.mime = p.Sniff.MIME
		a.work.output = codec.DataURL(p.Sniff.MIME, codec.EncodeBytes(data))
		a.output.SetPreview(p, data)

	case state.ImageEncode:
		if a.work.file == nil {
			a.output.Clear()
			break
		}
		a.showFile(*a.work.file)
	}
	a.updateOutputStatus()
}

// compactBase64 drops the whitespace of wrapped Base64 text.
func compactBase64(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// showFile renders a file loaded on an encode tab.
func (a *App) showFile(f fileio.File) {
	a.work.output = codec.EncodeBytes(f.Data)
	a.work.mime = f.Sniff.MIME
	a.output.SetText(a.work.output, "text")
}

func (a *App) updateOutputStatus() {
	size := int64(len(a.work.output))
	if a.work.data != nil {
		size = int64(len(a.work.data))
	}
	a.statusBar.SetOutput(size, a.work.mime)
}

// refreshOutput re-renders the current work, e.g. after a language switch.
func (a *App) refreshOutput() {
	if a.work.file != nil && a.store.ActiveTab.Encodes() {
		a.showFile(*a.work.file)
		a.updateOutputStatus()
		return
	}
	a.convert()
}

// process records the current conversion in history.
func (a App) process() (tea.Model, tea.Cmd) {
	input := a.editor.Value()

	switch a.store.ActiveTab {
	case state.TextEncode:
		if a.work.file != nil || input == "" {
			return a, nil
		}
		a.convert()
		cmd := a.record(history.Entry{Input: input, Output: a.work.output, Type: history.Encode}, "toast.encoded")
		return a, cmd

	case state.TextDecode:
		if strings.TrimSpace(input) == "" {
			return a, nil
		}
		a.convert()
		if a.work.data == nil {
			return a, a.toastCmd("toast.invalidBase64", true)
		}
		cmd := a.record(history.Entry{Input: input, Output: a.work.output, Type: history.Decode}, "toast.decoded")
		return a, cmd
	}
	return a, nil
}

// record adds e to history and refreshes the panel. okKey is the toast
// shown on success; empty shows none.
func (a *App) record(e history.Entry, okKey string) tea.Cmd {
	_, err := a.history.Add(context.Background(), e)
	a.sidebar.Refresh()
	if errors.Is(err, history.ErrQuotaExceeded) {
		return a.toastCmd("toast.storageFull", true)
	}
	if okKey == "" {
		return nil
	}
	return a.toastCmd(okKey, false)
}

// --- Clipboard ---

func (a App) readClipboard() tea.Cmd {
	clip := a.clip
	return func() tea.Msg {
		text, err := clip.ReadAll()
		return clipboardMsg{text: text, err: err}
	}
}

func (a App) handlePaste(msg clipboardMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.log.Warn("reading clipboard failed", "err", msg.err)
		return a, a.toastCmd("toast.pasteFailed", true)
	}
	if path, ok := fileio.PastedPath(msg.text); ok {
		return a.loadFile(path)
	}
	if a.store.ActiveTab == state.ImageEncode {
		return a, a.toastCmd("toast.notImage", true)
	}

	a.work.file = nil
	a.editor.SetValue(msg.text)
	a.convert()
	return a, a.toastCmd("toast.pasted", false)
}

func (a App) copyOutput() (tea.Model, tea.Cmd) {
	if a.work.output == "" {
		return a, a.toastCmd("toast.nothingToCopy", true)
	}
	return a, a.writeClipboard(a.work.output, "toast.copied", "toast.copyFailed")
}

// writeClipboard copies text and reports the outcome as a toast.
func (a App) writeClipboard(text, okKey, failKey string) tea.Cmd {
	if err := a.clip.WriteAll(text); err != nil {
		a.log.Warn("writing clipboard failed", "err", err)
		return func() tea.Msg {
			return msgs.ToastMsg{Text: a.tr.T(failKey), IsError: true, Duration: toastError}
		}
	}
	return func() tea.Msg {
		return msgs.ToastMsg{Text: a.tr.T(okKey)}
	}
}

// --- Files ---

// loadFile starts reading path, cancelling any load still in flight.
func (a App) loadFile(path string) (tea.Model, tea.Cmd) {
	if a.cancelLoad != nil {
		a.cancelLoad()
	}
	ctx, cancel := context.WithCancel(context.Background())
	a.cancelLoad = cancel
	a.loadID++

	id := a.loadID
	limit := a.cfg.MaxFileSize
	return a, func() tea.Msg {
		f, err := fileio.Load(ctx, path, limit)
		return msgs.FileLoadedMsg{ID: id, File: f, Err: err}
	}
}

func (a App) handleFileLoaded(msg msgs.FileLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.ID != a.loadID {
		return a, nil
	}
	if a.cancelLoad != nil {
		a.cancelLoad()
		a.cancelLoad = nil
	}

	tab := a.store.ActiveTab
	if msg.Err != nil {
		a.log.Warn("loading file failed", "err", msg.Err)
		if errors.Is(msg.Err, fileio.ErrTooLarge) {
			limit := a.cfg.MaxFileSize
			if limit <= 0 {
				limit = fileio.DefaultMaxSize
			}
			return a, a.toastCmd("toast.tooLarge", true, humanize.IBytes(uint64(limit)))
		}
		if tab.Image() {
			return a, a.toastCmd("toast.imageFailed", true)
		}
		return a, a.toastCmd("toast.fileFailed", true)
	}

	f := msg.File
	switch tab {
	case state.TextEncode:
		a.work.file = &f
		a.editor.SetValue("[File: " + f.Name + "]")
		a.showFile(f)
		a.updateOutputStatus()
		cmds := []tea.Cmd{a.toastCmd("toast.fileLoaded", false, f.Name)}
		if e, ok := history.FileEncodeEntry(f.Name, f.Size, false, a.work.output); ok {
			cmds = append(cmds, a.record(e, ""))
		}
		return a, tea.Batch(cmds...)

	case state.ImageEncode:
		if f.Sniff.Kind != sniff.KindImage {
			return a, a.toastCmd("toast.notImage", true)
		}
		a.work.file = &f
		label := f.Name + " (" + humanize.IBytes(uint64(f.Size)) + ")"
		a.editor.SetFile(label, preview.Thumbnail(f.Data, 32, 8))
		a.showFile(f)
		a.updateOutputStatus()
		cmds := []tea.Cmd{a.toastCmd("toast.imageLoaded", false, f.Name)}
		if e, ok := history.FileEncodeEntry(f.Name, f.Size, true, a.work.output); ok {
			cmds = append(cmds, a.record(e, ""))
		}
		return a, tea.Batch(cmds...)

	case state.TextDecode:
		a.work.file = nil
		a.editor.SetValue(strings.TrimSpace(string(f.Data)))
		a.convert()
		a.work.file = &f
		return a, a.toastCmd("toast.textFileLoaded", false, f.Name)

	case state.ImageDecode:
		text := strings.TrimSpace(string(f.Data))
		a.work.file = nil
		a.editor.SetValue(text)
		a.convert()
		a.work.file = &f
		payload, _ := codec.StripDataURL(text)
		if !codec.IsBase64(compactBase64(payload)) {
			return a, a.toastCmd("toast.noBase64File", true)
		}
		cmds := []tea.Cmd{a.toastCmd("toast.textFileLoaded", false, f.Name)}
		if a.work.data != nil {
			cmds = append(cmds, a.record(history.TextFileDecodeEntry(f.Name), ""))
		}
		return a, tea.Batch(cmds...)
	}
	return a, nil
}

// download writes the current result to the download directory.
func (a App) download() (tea.Model, tea.Cmd) {
	if a.work.output == "" && a.work.data == nil {
		return a, a.toastCmd("toast.nothingToCopy", true)
	}

	original := ""
	if a.work.file != nil {
		original = a.work.file.Base()
	}

	var name string
	var data []byte
	if a.store.ActiveTab.Encodes() {
		name = fileio.EncodedName(original)
		data = []byte(a.work.output)
	} else {
		name = fileio.DecodedName(original, a.work.mime)
		data = a.work.data
	}

	dir := a.cfg.DownloadDir
	log := a.log
	return a, func() tea.Msg {
		path, err := fileio.Save(dir, name, data)
		if err != nil {
			log.Error("download failed", "dir", dir, "name", name, "err", err)
		}
		return downloadedMsg{path: path, err: err}
	}
}

func (a App) handleDownloaded(msg downloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a, a.toastCmd("toast.downloadFailed", true)
	}
	return a, a.toastCmd("toast.downloaded", false, msg.path)
}

// --- History ---

func (a App) restoreHistory(id string) (tea.Model, tea.Cmd) {
	it, ok := a.history.Get(id)
	if !ok {
		return a, nil
	}

	tab := state.TextEncode
	if it.Type == history.Decode {
		tab = state.TextDecode
	}
	if a.store.ActiveTab != tab {
		a.setTab(tab)
	}
	a.work = work{}
	a.editor.SetValue(it.Input)
	a.work.output = it.Output
	a.work.mime = sniff.MIMEText
	a.output.SetText(it.Output, "text")
	a.updateOutputStatus()
	return a, a.toastCmd("toast.historyRestored", false)
}

func (a App) deleteHistory(id string) (tea.Model, tea.Cmd) {
	if err := a.history.Delete(context.Background(), id); err != nil {
		a.log.Warn("deleting history entry failed", "id", id, "err", err)
		return a, nil
	}
	a.sidebar.Refresh()
	return a, a.toastCmd("toast.historyDeleted", false)
}

func (a App) clearHistory() (tea.Model, tea.Cmd) {
	if err := a.history.Clear(context.Background()); err != nil {
		a.log.Warn("clearing history failed", "err", err)
	}
	a.sidebar.Refresh()
	return a, a.toastCmd("toast.historyCleared", false)
}

// reloadHistory picks up changes another process wrote to the history file.
func (a App) reloadHistory() (tea.Model, tea.Cmd) {
	if err := a.history.Reload(context.Background()); err != nil {
		a.log.Warn("reloading history failed", "err", err)
	}
	a.sidebar.Refresh()
	return a, tea.Batch(a.toastCmd("toast.historyReloaded", false), a.waitForHistoryChange())
}
