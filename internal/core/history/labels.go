package history

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

const (
	// MaxRecordedFileSize is the size below which a loaded file is recorded.
	MaxRecordedFileSize = 1 << 20
	// MaxStoredOutputSize is the size below which a file's Base64 is stored.
	MaxStoredOutputSize = 100 << 10

	// DecodedImageOutput stands in for decoded image data.
	DecodedImageOutput = "[Decoded Image]"
)

// FileEncodeEntry builds the history entry for a file or image that was
// loaded and encoded. ok is false when the file is too large to record.
func FileEncodeEntry(name string, size int64, image bool, encoded string) (e Entry, ok bool) {
	if size >= MaxRecordedFileSize {
		return Entry{}, false
	}
	label, placeholder := "File", "Base64 Content"
	if image {
		label, placeholder = "Image", "Base64 Image"
	}
	human := humanize.IBytes(uint64(size))

	e = Entry{
		Input:  fmt.Sprintf("%s: %s (%s)", label, name, human),
		Output: encoded,
		Type:   Encode,
	}
	if size >= MaxStoredOutputSize {
		e.Output = fmt.Sprintf("[%s - %s]", placeholder, human)
	}
	return e, true
}

// TextFileDecodeEntry builds the entry for a Base64 text file decoded to an image.
func TextFileDecodeEntry(name string) Entry {
	return Entry{
		Input:  "Text file: " + name,
		Output: DecodedImageOutput,
		Type:   Decode,
	}
}
