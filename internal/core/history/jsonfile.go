package history

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

// JSONFile stores the whole history as one JSON array in a file.
// A positive Quota caps the encoded size in bytes.
type JSONFile struct {
	path  string
	quota int64

	mu      sync.Mutex
	lastSum [sha256.Size]byte
}

// NewJSONFile returns a repository backed by path. The file is created on
// first write.
func NewJSONFile(path string, quota int64) *JSONFile {
	return &JSONFile{path: path, quota: quota}
}

// Path returns the backing file path.
func (f *JSONFile) Path() string { return f.path }

func (f *JSONFile) Load(ctx context.Context) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

func (f *JSONFile) Save(ctx context.Context, items []Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.write(items)
}

func (f *JSONFile) Append(ctx context.Context, item Item) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		var corrupt *corruptError
		if !errors.As(err, &corrupt) {
			return err
		}
		// unreadable content is replaced
		items = nil
	}
	return f.write(append([]Item{item}, items...))
}

func (f *JSONFile) Evict(ctx context.Context, keep int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	items, err := f.read()
	if err != nil {
		return err
	}
	if len(items) <= keep {
		return nil
	}
	return f.write(items[:keep])
}

func (f *JSONFile) Close() error { return nil }

// Stale reports whether the file content differs from what this repository
// last read or wrote, i.e. another process has changed it.
func (f *JSONFile) Stale() bool {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return sha256.Sum256(data) != f.lastSum
}

type corruptError struct {
	path string
	err  error
}

func (e *corruptError) Error() string {
	return fmt.Sprintf("parsing history file %s: %v", e.path, e.err)
}

func (e *corruptError) Unwrap() error { return e.err }

func (f *JSONFile) read() ([]Item, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}
	f.lastSum = sha256.Sum256(data)

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var records []record
	if err := sonic.Unmarshal(data, &records); err != nil {
		return nil, &corruptError{path: f.path, err: err}
	}
	items := make([]Item, 0, len(records))
	for _, r := range records {
		items = append(items, r.item())
	}
	return items, nil
}

func (f *JSONFile) write(items []Item) error {
	records := make([]record, 0, len(items))
	for _, it := range items {
		records = append(records, toRecord(it))
	}
	data, err := sonic.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}
	if f.quota > 0 && int64(len(data)) > f.quota {
		return fmt.Errorf("writing %d bytes (quota %d): %w", len(data), f.quota, ErrQuotaExceeded)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing history file: %w", err)
	}
	f.lastSum = sha256.Sum256(data)
	return nil
}
