package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewStoreInitialState(t *testing.T) {
	s := NewStore()

	if s == nil {
		t.Fatal("NewStore() returned nil")
	}
	if s.ActiveTab != TextEncode {
		t.Fatalf("ActiveTab = %v, want text-encode", s.ActiveTab)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save() on unbacked store = %v, want nil", err)
	}
}

func TestTabNavigationWraps(t *testing.T) {
	s := NewStore()

	s.PrevTab()
	if s.ActiveTab != ImageDecode {
		t.Fatalf("PrevTab from first = %v, want image-decode", s.ActiveTab)
	}
	s.NextTab()
	if s.ActiveTab != TextEncode {
		t.Fatalf("NextTab from last = %v, want text-encode", s.ActiveTab)
	}
	s.NextTab()
	s.NextTab()
	if s.ActiveTab != ImageEncode {
		t.Fatalf("ActiveTab = %v, want image-encode", s.ActiveTab)
	}
}

func TestSetTabIgnoresOutOfRange(t *testing.T) {
	s := NewStore()
	s.SetTab(TextDecode)
	s.SetTab(Tab(9))
	if s.ActiveTab != TextDecode {
		t.Fatalf("ActiveTab = %v, want text-decode", s.ActiveTab)
	}
}

func TestParseTab(t *testing.T) {
	tests := []struct {
		in      string
		want    Tab
		wantErr bool
	}{
		{"text-encode", TextEncode, false},
		{"decode", TextDecode, false},
		{"image", ImageEncode, false},
		{"image-decode", ImageDecode, false},
		{"video", TextEncode, true},
	}
	for _, tt := range tests {
		got, err := ParseTab(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTab(%q) = %v, %v", tt.in, got, err)
		}
	}
}

func TestTabPredicates(t *testing.T) {
	if !TextEncode.Encodes() || TextDecode.Encodes() || !ImageEncode.Encodes() {
		t.Error("Encodes() mismatch")
	}
	if TextEncode.Image() || !ImageDecode.Image() {
		t.Error("Image() mismatch")
	}
}

func TestSaveAndOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.yaml")

	s := Open(path)
	s.SetTab(ImageDecode)
	s.Theme = "catppuccin-latte"
	s.Language = "ta"
	s.SnippetLanguage = "python"
	if err := s.Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "active_tab: image-decode"; !strings.Contains(string(data), want) {
		t.Fatalf("state file %q missing %q", data, want)
	}

	got := Open(path)
	if got.State != s.State {
		t.Fatalf("Open() = %#v, want %#v", got.State, s.State)
	}
}

func TestOpenCorruptFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.yaml")
	if err := os.WriteFile(path, []byte("active_tab: sideways\n"), 0644); err != nil {
		t.Fatal(err)
	}
	s := Open(path)
	if s.State != (State{}) {
		t.Fatalf("expected default state, got %#v", s.State)
	}
	if s.Path() != path {
		t.Fatalf("Path() = %q, want %q", s.Path(), path)
	}
}
