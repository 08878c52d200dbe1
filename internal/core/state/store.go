package state

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// State is the persisted UI preference set.
type State struct {
	ActiveTab       Tab    `yaml:"active_tab"`
	Theme           string `yaml:"theme,omitempty"`
	Language        string `yaml:"language,omitempty"`
	SnippetLanguage string `yaml:"snippet_language,omitempty"`
}

// Store holds the central UI state and where it is saved.
type Store struct {
	State
	path string
}

// NewStore creates a state store that is not backed by a file.
func NewStore() *Store {
	return &Store{}
}

// Open loads the state file at path. A missing or unreadable file yields
// defaults; the path is kept so Save can create it.
func Open(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var st State
	if err := yaml.Unmarshal(data, &st); err != nil {
		return s
	}
	s.State = st
	return s
}

// Path returns the backing file, or "" for an unsaved store.
func (s *Store) Path() string { return s.path }

// Save writes the state file. It is a no-op for stores without a path.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	data, err := yaml.Marshal(s.State)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// NextTab switches to the next tab.
func (s *Store) NextTab() {
	s.ActiveTab = s.ActiveTab.Next()
}

// PrevTab switches to the previous tab.
func (s *Store) PrevTab() {
	s.ActiveTab = s.ActiveTab.Prev()
}

// SetTab switches to t, ignoring values outside the tab range.
func (s *Store) SetTab(t Tab) {
	if t < 0 || int(t) >= len(Tabs) {
		return
	}
	s.ActiveTab = t
}
