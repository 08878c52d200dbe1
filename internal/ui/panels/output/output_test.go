package output

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/core/preview"
	"github.com/sadopc/endecoder/internal/core/sniff"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

func newOutputForTest(t *testing.T) Model {
	t.Helper()
	th := theme.Default()
	m := New(th, theme.NewStyles(th), i18n.MustNew("en"))
	m.SetTitle("Base64 output", "Encoded result will appear here")
	m.SetSize(80, 30)
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+f":
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 10), G: uint8(y * 10), B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestLexerFor(t *testing.T) {
	tests := []struct {
		mime string
		json bool
		want string
	}{
		{sniff.MIMEText, true, "json"},
		{sniff.MIMEText, false, "text"},
		{sniff.MIMEHTML, false, "html"},
		{sniff.MIMESVG, false, "xml"},
		{sniff.MIMEBinary, false, "text"},
	}
	for _, tt := range tests {
		if got := LexerFor(tt.mime, tt.json); got != tt.want {
			t.Errorf("LexerFor(%q, %v) = %q, want %q", tt.mime, tt.json, got, tt.want)
		}
	}
}

func TestHighlight_PlainTextUnchanged(t *testing.T) {
	if got := Highlight("SGVsbG8=", "text", "dracula", 0, false); got != "SGVsbG8=" {
		t.Fatalf("Highlight plain = %q", got)
	}
	got := Highlight(`{"a":1}`, "json", "no-such-style", 0, false)
	if !strings.Contains(got, "a") {
		t.Fatalf("Highlight json lost content: %q", got)
	}
}

func TestHighlightMatches(t *testing.T) {
	mark := lipgloss.NewStyle()
	content := "alpha\nBeta\ngamma beta"
	_, lines := HighlightMatches(content, "BETA", mark)
	if len(lines) != 2 || lines[0] != 1 || lines[1] != 2 {
		t.Fatalf("match lines = %v, want [1 2]", lines)
	}

	out, lines := HighlightMatches(content, "", mark)
	if out != content || lines != nil {
		t.Fatalf("empty query changed content: %q %v", out, lines)
	}

	// lowercasing changes byte length here; the line still counts as a match
	_, lines = HighlightMatches("İstanbul", "STANBUL", mark)
	if len(lines) != 1 {
		t.Fatalf("expected a match for multi-byte case folding, got %v", lines)
	}
}

func TestSearchBar_Cycling(t *testing.T) {
	th := theme.Default()
	sb := NewSearchBar(theme.NewStyles(th))
	if sb.CurrentMatchLine() != -1 {
		t.Fatal("expected -1 without matches")
	}
	sb.Open()
	sb.SetMatches([]int{3, 7, 9})
	sb.NextMatch()
	if got := sb.CurrentMatchLine(); got != 7 {
		t.Fatalf("after next = %d, want 7", got)
	}
	sb.PrevMatch()
	sb.PrevMatch()
	if got := sb.CurrentMatchLine(); got != 9 {
		t.Fatalf("after wrap-around prev = %d, want 9", got)
	}
	sb.Close()
	if sb.Active() || sb.CurrentMatchLine() != -1 {
		t.Fatal("close should reset state")
	}
}

func TestModel_EmptyShowsPlaceholder(t *testing.T) {
	m := newOutputForTest(t)
	if !m.Empty() {
		t.Fatal("new model should be empty")
	}
	view := m.View()
	if !strings.Contains(view, "Encoded result will appear here") {
		t.Fatalf("placeholder missing: %q", view)
	}
	if !strings.Contains(view, "Base64 output") {
		t.Fatalf("title missing: %q", view)
	}
}

func TestModel_SetTextAndClear(t *testing.T) {
	m := newOutputForTest(t)
	m.SetText("SGVsbG8gV29ybGQ=", "text")
	if m.Empty() {
		t.Fatal("expected content after SetText")
	}
	if !strings.Contains(m.View(), "SGVsbG8gV29ybGQ=") {
		t.Fatalf("output text missing from view: %q", m.View())
	}
	m.Clear()
	if !m.Empty() {
		t.Fatal("expected empty after Clear")
	}
}

func TestModel_SetTextTruncatesLongOutput(t *testing.T) {
	m := newOutputForTest(t)
	m.SetText(strings.Repeat("A", MaxDisplayBytes+10), "text")
	if len(m.text) != MaxDisplayBytes {
		t.Fatalf("display text len = %d, want %d", len(m.text), MaxDisplayBytes)
	}
	if !strings.Contains(m.View(), "showing the first 256 KiB") {
		t.Fatalf("truncation notice missing: %q", m.View())
	}
}

func TestClipBytes_KeepsRunesWhole(t *testing.T) {
	s := "aé" // é is two bytes
	if got := clipBytes(s, 2); got != "a" {
		t.Fatalf("clipBytes = %q, want %q", got, "a")
	}
	if got := clipBytes(s, 10); got != s {
		t.Fatalf("clipBytes short input = %q", got)
	}
}

func TestModel_SetPreviewImage(t *testing.T) {
	m := newOutputForTest(t)
	data := pngBytes(t, 8, 4)
	m.SetPreview(preview.Build(data), data)

	view := m.View()
	if !strings.Contains(view, "8×4 PNG image") {
		t.Fatalf("image summary missing: %q", view)
	}
	if !strings.Contains(view, "Type: image/png") {
		t.Fatalf("type line missing: %q", view)
	}
	if !strings.Contains(view, "▀") {
		t.Fatalf("thumbnail missing: %q", view)
	}
}

func TestModel_SetPreviewBinaryAndText(t *testing.T) {
	m := newOutputForTest(t)
	bin := []byte{0x00, 0x01, 0x02, 0xff}
	m.SetPreview(preview.Build(bin), bin)
	if !strings.Contains(m.View(), "No preview available") {
		t.Fatalf("binary notice missing: %q", m.View())
	}

	text := []byte(`{"name":"endecoder"}`)
	m.SetPreview(preview.Build(text), text)
	if m.lexer != "json" {
		t.Fatalf("lexer = %q, want json", m.lexer)
	}
	if !strings.Contains(m.View(), "endecoder") {
		t.Fatalf("decoded text missing: %q", m.View())
	}
}

func TestModel_SetNotice(t *testing.T) {
	m := newOutputForTest(t)
	m.SetText("abc", "text")
	m.SetNotice("No valid image found in the data", true)
	if m.text != "" {
		t.Fatal("notice should replace text")
	}
	if !strings.Contains(m.View(), "No valid image found") {
		t.Fatalf("notice missing: %q", m.View())
	}
}

func TestModel_KeysWrapAndSearch(t *testing.T) {
	m := newOutputForTest(t)
	if !m.Wrap() {
		t.Fatal("wrap should default to on")
	}
	m, _ = m.Update(key("w"))
	if m.Wrap() {
		t.Fatal("w should toggle wrap off")
	}

	// search needs text
	m, _ = m.Update(key("/"))
	if m.Searching() {
		t.Fatal("search should not open on empty output")
	}

	m.SetText("one\ntwo\nthree two", "text")
	m, _ = m.Update(key("ctrl+f"))
	if !m.Searching() || !m.Typing() {
		t.Fatal("ctrl+f should open search with focus")
	}
	for _, r := range "two" {
		m, _ = m.Update(key(string(r)))
	}
	m, _ = m.Update(key("enter"))
	if m.Typing() {
		t.Fatal("enter should leave the query input")
	}
	if got := m.search.CurrentMatchLine(); got != 1 {
		t.Fatalf("first match line = %d, want 1", got)
	}
	m, _ = m.Update(key("n"))
	if got := m.search.CurrentMatchLine(); got != 2 {
		t.Fatalf("next match line = %d, want 2", got)
	}
	m, _ = m.Update(key("esc"))
	if m.Searching() {
		t.Fatal("esc should close search")
	}
}
