package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sadopc/endecoder/internal/core/sniff"
)

// EncodedName is the download name for Base64 text produced from original.
func EncodedName(original string) string {
	if original == "" {
		return "encoded.txt"
	}
	return strings.TrimSuffix(original, filepath.Ext(original)) + "-encoded.txt"
}

// DecodedName is the download name for decoded bytes of the given MIME type.
func DecodedName(original, mime string) string {
	base := strings.TrimSuffix(original, filepath.Ext(original))
	if base == "" {
		base = "decoded-file"
	}
	return sniff.FileName(base, mime)
}

// UniquePath returns dir/name, or dir/base-N.ext for the first N that does
// not exist yet.
func UniquePath(dir, name string) (string, error) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	candidate := filepath.Join(dir, name)
	for i := 1; ; i++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
	}
}

// Save writes data into dir under name without overwriting existing files,
// and returns the path written.
func Save(dir, name string, data []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	dir = ExpandHome(dir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating download directory: %w", err)
	}
	for {
		path, err := UniquePath(dir, name)
		if err != nil {
			return "", err
		}
		fh, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("creating %s: %w", path, err)
		}
		if _, err := fh.Write(data); err != nil {
			fh.Close()
			return "", fmt.Errorf("writing %s: %w", path, err)
		}
		return path, fh.Close()
	}
}
