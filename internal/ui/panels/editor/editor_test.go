package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

func newEditorModelForTest() Model {
	th := theme.Resolve("catppuccin-mocha")
	styles := theme.NewStyles(th)
	m := New(th, styles, i18n.MustNew("en"))
	m.SetSize(80, 20)
	return m
}

// messages runs cmd and flattens batches.
func messages(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, messages(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func TestEditor_TitlesPerTab(t *testing.T) {
	tests := []struct {
		tab   state.Tab
		title string
	}{
		{state.TextEncode, "Text to encode"},
		{state.TextDecode, "Base64 to decode"},
		{state.ImageEncode, "Image"},
		{state.ImageDecode, "Base64 image data"},
	}
	m := newEditorModelForTest()
	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			m.SetTab(tt.tab)
			if m.Tab() != tt.tab {
				t.Fatalf("tab = %v", m.Tab())
			}
			if !strings.Contains(m.View(), tt.title) {
				t.Fatalf("view missing %q:\n%s", tt.title, m.View())
			}
		})
	}
}

func TestEditor_TypingEmitsInputChanged(t *testing.T) {
	m := newEditorModelForTest()
	m.Focus()
	if !m.Editing() {
		t.Fatal("expected editing after Focus")
	}

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("hi")})
	if m.Value() != "hi" {
		t.Fatalf("value = %q", m.Value())
	}
	found := false
	for _, msg := range messages(cmd) {
		if _, ok := msg.(msgs.InputChangedMsg); ok {
			found = true
		}
	}
	if !found {
		t.Fatal("expected InputChangedMsg")
	}

	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Editing() {
		t.Fatal("esc should leave insert mode")
	}
	got := messages(cmd)
	if len(got) != 1 {
		t.Fatalf("esc msgs = %#v", got)
	}
	if mode, ok := got[0].(msgs.SetModeMsg); !ok || mode.Mode != msgs.ModeNormal {
		t.Fatalf("esc msg = %#v", got[0])
	}
}

func TestEditor_PastedPathIsDropped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "photo.png")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	m := newEditorModelForTest()
	m.Focus()
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(path), Paste: true})
	if m.Value() != "" {
		t.Fatalf("path should not be inserted, value = %q", m.Value())
	}
	got := messages(cmd)
	if len(got) != 1 {
		t.Fatalf("msgs = %#v", got)
	}
	drop, ok := got[0].(msgs.PathDroppedMsg)
	if !ok || drop.Path != path {
		t.Fatalf("drop msg = %#v", got[0])
	}

	// ordinary pasted text is inserted
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("SGVsbG8="), Paste: true})
	if m.Value() != "SGVsbG8=" {
		t.Fatalf("value = %q", m.Value())
	}
}

func TestEditor_ImageTab(t *testing.T) {
	m := newEditorModelForTest()
	m.SetTab(state.ImageEncode)
	if cmd := m.Focus(); cmd != nil || m.Editing() {
		t.Fatal("image tab has no text input")
	}
	if !strings.Contains(m.View(), "select an image") {
		t.Fatalf("hint missing:\n%s", m.View())
	}

	m.SetFile("cat.png (12 KiB)", "")
	if m.FileLabel() != "cat.png (12 KiB)" || !strings.Contains(m.View(), "cat.png") {
		t.Fatalf("file label missing:\n%s", m.View())
	}

	m.Reset()
	if m.FileLabel() != "" {
		t.Fatal("reset should clear the file")
	}
}

func TestEditor_SetValueAndReset(t *testing.T) {
	m := newEditorModelForTest()
	m.SetValue("line one\nline two")
	if m.Value() != "line one\nline two" {
		t.Fatalf("value = %q", m.Value())
	}
	m.Reset()
	if m.Value() != "" {
		t.Fatalf("value after reset = %q", m.Value())
	}
}

func TestEditor_Retranslate(t *testing.T) {
	tr := i18n.MustNew("en")
	th := theme.Default()
	m := New(th, theme.NewStyles(th), tr)
	m.SetSize(80, 20)
	tr.SetLanguage("hi")
	m.Retranslate()
	if strings.Contains(m.View(), "Text to encode") {
		t.Fatal("title should follow the translator language")
	}
}
