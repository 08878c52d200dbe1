package sidebar

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/ui/msgs"
	"github.com/sadopc/endecoder/internal/ui/theme"
)

type fakeSearcher struct {
	items   []history.Item
	queries []string
}

func (f *fakeSearcher) Search(q string) []history.Item {
	f.queries = append(f.queries, q)
	if q == "" {
		return f.items
	}
	var out []history.Item
	for _, it := range f.items {
		if strings.Contains(strings.ToLower(it.Input), strings.ToLower(q)) {
			out = append(out, it)
		}
	}
	return out
}

func sampleItems() []history.Item {
	now := time.Now()
	return []history.Item{
		{ID: "a", Timestamp: now.Add(-time.Minute), Input: "Hello World", Output: "SGVsbG8gV29ybGQ=", Type: history.Encode},
		{ID: "b", Timestamp: now.Add(-time.Hour), Input: "bmFtYXN0ZQ==", Output: "namaste", Type: history.Decode},
		{ID: "c", Timestamp: now.Add(-24 * time.Hour), Input: "வணக்கம்", Output: "4K61", Type: history.Encode},
	}
}

func newSidebarModelForTest(items []history.Item) (Model, *fakeSearcher) {
	th := theme.Default()
	src := &fakeSearcher{items: items}
	m := New(th, theme.NewStyles(th), i18n.MustNew("en"), src)
	m.SetSize(40, 20)
	return m, src
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestSidebar_EmptyStates(t *testing.T) {
	m, _ := newSidebarModelForTest(nil)
	if !strings.Contains(m.View(), "No history yet") {
		t.Fatalf("empty view = %q", m.View())
	}
	if _, ok := m.Selected(); ok {
		t.Fatal("expected no selection")
	}
	if _, cmd := m.Update(runes("D")); cmd != nil {
		t.Fatal("clear on empty list should be a no-op")
	}

	m, _ = newSidebarModelForTest(sampleItems())
	m, _ = m.Update(runes("/"))
	for _, r := range "zzz" {
		m, _ = m.Update(runes(string(r)))
	}
	if !strings.Contains(m.View(), "No matching entries") {
		t.Fatalf("no-results view = %q", m.View())
	}
}

func TestSidebar_NavigationAndSelection(t *testing.T) {
	m, _ := newSidebarModelForTest(sampleItems())

	tests := []struct {
		key    string
		cursor int
	}{
		{"j", 1},
		{"j", 2},
		{"j", 2},
		{"k", 1},
		{"g", 0},
		{"G", 2},
	}
	for _, tt := range tests {
		m, _ = m.Update(runes(tt.key))
		if m.cursor != tt.cursor {
			t.Fatalf("after %q cursor = %d, want %d", tt.key, m.cursor, tt.cursor)
		}
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a selection command")
	}
	sel, ok := cmd().(msgs.HistorySelectedMsg)
	if !ok || sel.ID != "c" {
		t.Fatalf("selection msg = %#v", sel)
	}

	_, cmd = m.Update(runes("d"))
	del, ok := cmd().(msgs.HistoryDeleteMsg)
	if !ok || del.ID != "c" {
		t.Fatalf("delete msg = %#v", del)
	}

	_, cmd = m.Update(runes("D"))
	if _, ok := cmd().(msgs.ClearHistoryMsg); !ok {
		t.Fatal("D should request clearing history")
	}
}

func TestSidebar_FilterUsesSearcher(t *testing.T) {
	m, src := newSidebarModelForTest(sampleItems())

	m, _ = m.Update(runes("/"))
	if !m.Filtering() {
		t.Fatal("expected filtering mode")
	}
	for _, r := range "hello" {
		m, _ = m.Update(runes(string(r)))
	}
	if got := len(m.Items()); got != 1 {
		t.Fatalf("filtered len = %d, want 1", got)
	}
	if last := src.queries[len(src.queries)-1]; last != "hello" {
		t.Fatalf("last query = %q", last)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if m.Filtering() || m.Query() != "hello" {
		t.Fatalf("enter should keep the query, filtering=%v query=%q", m.Filtering(), m.Query())
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Query() != "" || len(m.Items()) != 3 {
		t.Fatalf("esc should clear the filter, query=%q items=%d", m.Query(), len(m.Items()))
	}
}

func TestSidebar_RefreshClampsCursor(t *testing.T) {
	m, src := newSidebarModelForTest(sampleItems())
	m, _ = m.Update(runes("G"))
	src.items = src.items[:1]
	m.Refresh()
	if m.cursor != 0 {
		t.Fatalf("cursor = %d, want 0 after shrink", m.cursor)
	}
	it, ok := m.Selected()
	if !ok || it.ID != "a" {
		t.Fatalf("selected = %#v", it)
	}
}

func TestSidebar_ViewRendersEntries(t *testing.T) {
	m, _ := newSidebarModelForTest(sampleItems())
	view := m.View()
	for _, want := range []string{"History", "encode", "decode", "Hello World", "minute ago"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSidebar_ScrollKeepsCursorVisible(t *testing.T) {
	var items []history.Item
	for i := 0; i < 20; i++ {
		items = append(items, history.Item{ID: string(rune('a' + i)), Timestamp: time.Now(), Input: "entry", Type: history.Encode})
	}
	m, _ := newSidebarModelForTest(items)
	m.SetSize(30, 10) // 2 entries visible
	for i := 0; i < 5; i++ {
		m, _ = m.Update(runes("j"))
	}
	if m.cursor != 5 {
		t.Fatalf("cursor = %d, want 5", m.cursor)
	}
	if m.offset > m.cursor || m.cursor >= m.offset+m.visibleRows() {
		t.Fatalf("cursor %d outside window offset=%d rows=%d", m.cursor, m.offset, m.visibleRows())
	}
}
