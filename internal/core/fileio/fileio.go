// Package fileio loads user files for encoding and decoding.
package fileio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/endecoder/internal/core/sniff"
)

// DefaultMaxSize is the load limit used when none is configured.
const DefaultMaxSize = 50 << 20

// ErrTooLarge is returned when a file exceeds the load limit.
var ErrTooLarge = errors.New("file too large")

const chunkSize = 64 << 10

// File is a fully read file.
type File struct {
	Path  string
	Name  string
	Size  int64
	Data  []byte
	Sniff sniff.Result
}

// Base returns the file name without its extension.
func (f File) Base() string {
	return strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
}

// Load reads path to completion. It stops early when ctx is cancelled and
// refuses files larger than limit bytes (limit <= 0 means DefaultMaxSize).
func Load(ctx context.Context, path string, limit int64) (File, error) {
	if limit <= 0 {
		limit = DefaultMaxSize
	}
	path = ExpandHome(path)

	fh, err := os.Open(path)
	if err != nil {
		return File{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer fh.Close()

	info, err := fh.Stat()
	if err != nil {
		return File{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("%s is a directory", path)
	}
	if info.Size() > limit {
		return File{}, fmt.Errorf("%s is %d bytes (limit %d): %w", info.Name(), info.Size(), limit, ErrTooLarge)
	}

	data := make([]byte, 0, info.Size())
	buf := make([]byte, chunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return File{}, err
		}
		n, err := fh.Read(buf)
		data = append(data, buf[:n]...)
		if int64(len(data)) > limit {
			return File{}, fmt.Errorf("%s grew past %d bytes: %w", info.Name(), limit, ErrTooLarge)
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return File{}, fmt.Errorf("reading %s: %w", path, err)
		}
	}

	return File{
		Path:  path,
		Name:  info.Name(),
		Size:  int64(len(data)),
		Data:  data,
		Sniff: sniff.Detect(data),
	}, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// PastedPath reports whether pasted text is a single existing regular file
// path, as terminals insert when a file is dropped on them. It returns the
// cleaned path.
func PastedPath(text string) (string, bool) {
	p := strings.TrimSpace(text)
	if p == "" || strings.ContainsAny(p, "\n\r") {
		return "", false
	}
	// drag and drop often quotes or escapes the path
	if len(p) >= 2 && (p[0] == '\'' && p[len(p)-1] == '\'' || p[0] == '"' && p[len(p)-1] == '"') {
		p = p[1 : len(p)-1]
	} else {
		p = strings.ReplaceAll(p, `\ `, " ")
	}
	p = strings.TrimPrefix(p, "file://")
	p = ExpandHome(p)
	if !filepath.IsAbs(p) && !strings.HasPrefix(p, ".") {
		return "", false
	}

	info, err := os.Stat(p)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return p, true
}
