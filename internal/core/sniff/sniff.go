// Package sniff guesses a MIME type for decoded bytes from their leading
// magic number, falling back to a printable-text check.
package sniff

import (
	"bytes"
	"strings"
)

// Kind selects how decoded data is previewed.
type Kind int

const (
	KindBinary Kind = iota
	KindImage
	KindPDF
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindPDF:
		return "pdf"
	case KindText:
		return "text"
	default:
		return "binary"
	}
}

// MIME types produced by Detect.
const (
	MIMEJPEG   = "image/jpeg"
	MIMEPNG    = "image/png"
	MIMEGIF    = "image/gif"
	MIMEBMP    = "image/bmp"
	MIMEWebP   = "image/webp"
	MIMETIFF   = "image/tiff"
	MIMESVG    = "image/svg+xml"
	MIMEPDF    = "application/pdf"
	MIMEHTML   = "text/html"
	MIMEText   = "text/plain"
	MIMEBinary = "application/octet-stream"
)

// Result is the outcome of sniffing a byte slice.
type Result struct {
	MIME string
	Kind Kind
	Ext  string
}

// Previewable reports whether the data has a preview representation.
func (r Result) Previewable() bool {
	return r.Kind != KindBinary
}

type signature struct {
	prefix []byte
	mime   string
}

var signatures = []signature{
	{[]byte{0xFF, 0xD8, 0xFF}, MIMEJPEG},
	{[]byte{0x89, 0x50, 0x4E, 0x47}, MIMEPNG},
	{[]byte{0x47, 0x49, 0x46}, MIMEGIF},
	{[]byte{0x25, 0x50, 0x44, 0x46}, MIMEPDF},
	{[]byte{0x49, 0x49, 0x2A, 0x00}, MIMETIFF},
	{[]byte{0x4D, 0x4D, 0x00, 0x2A}, MIMETIFF},
}

// Detect classifies data. Unknown binary data always maps to
// application/octet-stream with KindBinary.
func Detect(data []byte) Result {
	mime := detectMIME(data)
	return Result{MIME: mime, Kind: KindOf(mime), Ext: Extension(mime)}
}

func detectMIME(data []byte) string {
	for _, sig := range signatures {
		if bytes.HasPrefix(data, sig.prefix) {
			return sig.mime
		}
	}

	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return MIMEWebP
	}

	if len(data) >= 2 && data[0] == 0x3C && (data[1] == 0x3F || data[1] == 0x21) {
		if bytes.Contains(data, []byte("<svg")) {
			return MIMESVG
		}
		return MIMEHTML
	}

	// "BM" also starts plenty of ordinary text, so require the header size
	// field to be plausible before calling it a bitmap.
	if isBMP(data) {
		return MIMEBMP
	}

	if IsPrintable(data) {
		return MIMEText
	}
	return MIMEBinary
}

func isBMP(data []byte) bool {
	if len(data) < 26 || data[0] != 'B' || data[1] != 'M' {
		return false
	}
	size := int(data[2]) | int(data[3])<<8 | int(data[4])<<16 | int(data[5])<<24
	reserved := data[6] | data[7] | data[8] | data[9]
	return reserved == 0 && size >= 26
}

// IsPrintable reports whether every byte of data is >= 0x20 or one of tab,
// newline and carriage return. Bytes above 0x7F pass, so text in a legacy
// encoding or with broken UTF-8 still counts as text.
func IsPrintable(data []byte) bool {
	for _, b := range data {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			return false
		}
	}
	return true
}

// KindOf maps a MIME type to its preview kind.
func KindOf(mime string) Kind {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return KindImage
	case mime == MIMEPDF:
		return KindPDF
	case strings.HasPrefix(mime, "text/"):
		return KindText
	default:
		return KindBinary
	}
}

// Extension returns the file extension, with leading dot, used when saving
// data of the given MIME type.
func Extension(mime string) string {
	switch mime {
	case MIMEJPEG:
		return ".jpg"
	case MIMEPNG:
		return ".png"
	case MIMEGIF:
		return ".gif"
	case MIMEBMP:
		return ".bmp"
	case MIMEWebP:
		return ".webp"
	case MIMETIFF:
		return ".tiff"
	case MIMESVG:
		return ".svg"
	case MIMEPDF:
		return ".pdf"
	case MIMEHTML:
		return ".html"
	case MIMEText:
		return ".txt"
	default:
		return ".bin"
	}
}

// FileName appends the extension for mime to base unless base already ends
// with it. ".jpeg" is accepted for JPEG and ".tif" for TIFF.
func FileName(base, mime string) string {
	ext := Extension(mime)
	lower := strings.ToLower(base)
	if strings.HasSuffix(lower, ext) {
		return base
	}
	switch mime {
	case MIMEJPEG:
		if strings.HasSuffix(lower, ".jpeg") {
			return base
		}
	case MIMETIFF:
		if strings.HasSuffix(lower, ".tif") {
			return base
		}
	}
	return base + ext
}
