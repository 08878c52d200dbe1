package history

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrQuotaExceeded is returned when a write would exceed the storage quota.
	ErrQuotaExceeded = errors.New("history storage quota exceeded")
	// ErrNotFound is returned when no item has the requested ID.
	ErrNotFound = errors.New("history item not found")
)

// Repository persists the history list. Items are always most recent first.
type Repository interface {
	Load(ctx context.Context) ([]Item, error)
	Save(ctx context.Context, items []Item) error
	Append(ctx context.Context, item Item) error
	Evict(ctx context.Context, keep int) error
	Close() error
}

// Memory is an in-process Repository.
type Memory struct {
	mu    sync.Mutex
	items []Item
}

// NewMemory returns an empty in-memory repository.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(ctx context.Context) ([]Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Item(nil), m.items...), nil
}

func (m *Memory) Save(ctx context.Context, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item(nil), items...)
	return nil
}

func (m *Memory) Append(ctx context.Context, item Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append([]Item{item}, m.items...)
	return nil
}

func (m *Memory) Evict(ctx context.Context, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.items) > keep {
		m.items = m.items[:keep]
	}
	return nil
}

func (m *Memory) Close() error { return nil }
