// Package history keeps the bounded list of past conversions and mirrors it
// to a Repository. The in-memory list is authoritative: persistence failures
// are logged and never roll back a change.
package history

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store is the history list plus its backing repository.
type Store struct {
	mu          sync.Mutex
	repo        Repository
	log         *slog.Logger
	items       []Item
	quotaWarned bool

	now   func() time.Time
	newID func() string
}

// NewStore loads the list from repo. A load failure yields an empty list.
func NewStore(ctx context.Context, repo Repository, log *slog.Logger) *Store {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	s := &Store{
		repo:  repo,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	if err := s.Reload(ctx); err != nil {
		log.Warn("loading history failed", "err", err)
	}
	return s
}

// Reload replaces the in-memory list with the repository contents. On
// failure the list is left empty.
func (s *Store) Reload(ctx context.Context) error {
	items, err := s.repo.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.items = nil
		return err
	}
	if len(items) > MaxItems {
		items = items[:MaxItems]
	}
	s.items = items
	return nil
}

// Add truncates e, assigns an ID and timestamp, and prepends it. The returned
// error is non-nil only the first time the repository reports
// ErrQuotaExceeded; the item is in the list either way.
func (s *Store) Add(ctx context.Context, e Entry) (Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it := Item{
		ID:        s.newID(),
		Timestamp: s.now(),
		Input:     Truncate(e.Input),
		Output:    Truncate(e.Output),
		Type:      e.Type,
	}
	s.items = append([]Item{it}, s.items...)
	if len(s.items) > MaxItems {
		s.items = s.items[:MaxItems]
	}

	err := s.repo.Append(ctx, it)
	if err == nil {
		err = s.repo.Evict(ctx, MaxItems)
	}
	return it, s.persisted("add", err)
}

// Delete removes the item with the given ID.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, it := range s.items {
		if it.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	return s.persisted("delete", s.repo.Save(ctx, s.items))
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	return s.persisted("clear", s.repo.Save(ctx, nil))
}

// Items returns a copy of the list, most recent first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Item(nil), s.items...)
}

// Len returns the number of items.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Get returns the item with the given ID.
func (s *Store) Get(id string) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Search returns items whose input or output contains query, ignoring case.
// A blank query returns the full list in order.
func (s *Store) Search(query string) []Item {
	if strings.TrimSpace(query) == "" {
		return s.Items()
	}
	q := strings.ToLower(query)

	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Item
	for _, it := range s.items {
		if strings.Contains(strings.ToLower(it.Input), q) ||
			strings.Contains(strings.ToLower(it.Output), q) {
			out = append(out, it)
		}
	}
	return out
}

// Close closes the repository.
func (s *Store) Close() error {
	return s.repo.Close()
}

// persisted logs a repository error and decides what reaches the caller.
// Must be called with s.mu held.
func (s *Store) persisted(op string, err error) error {
	if err == nil {
		return nil
	}
	s.log.Error("saving history failed", "op", op, "err", err)
	if errors.Is(err, ErrQuotaExceeded) && !s.quotaWarned {
		s.quotaWarned = true
		return err
	}
	return nil
}
