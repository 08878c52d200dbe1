// Package preview turns decoded bytes into something the terminal can show:
// image dimensions and a block thumbnail, a PDF summary, or readable text.
package preview

import (
	"bytes"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/tidwall/pretty"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/sadopc/endecoder/internal/core/sniff"
)

// MaxTextPreview caps how much decoded text is rendered.
const MaxTextPreview = 64 * 1024

// Preview describes what can be shown for a decoded payload.
type Preview struct {
	Sniff  sniff.Result
	Size   int
	Text   string // for text kinds
	JSON   bool   // Text was pretty-printed JSON
	Width  int    // for raster images, 0 when unknown
	Height int
	Format string // image format reported by the decoder
	Pages  int    // estimated PDF page count
	Cut    bool   // Text was cut at MaxTextPreview
}

// Build inspects data and returns its preview.
func Build(data []byte) Preview {
	p := Preview{Sniff: sniff.Detect(data), Size: len(data)}

	switch p.Sniff.Kind {
	case sniff.KindImage:
		if p.Sniff.MIME == sniff.MIMESVG {
			p.Text, p.Cut = clip(data)
			break
		}
		if cfg, format, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
			p.Width, p.Height, p.Format = cfg.Width, cfg.Height, format
		}
	case sniff.KindPDF:
		p.Pages = countPDFPages(data)
	case sniff.KindText:
		text := data
		if p.Sniff.MIME == sniff.MIMEText && json.Valid(bytes.TrimSpace(data)) && looksLikeJSONDoc(data) {
			text = pretty.Pretty(data)
			p.JSON = true
		}
		p.Text, p.Cut = clip(text)
	}
	return p
}

// Raster reports whether the preview is a decodable raster image.
func (p Preview) Raster() bool {
	return p.Sniff.Kind == sniff.KindImage && p.Width > 0 && p.Height > 0
}

// clip caps data at MaxTextPreview and replaces invalid UTF-8 with U+FFFD.
func clip(data []byte) (string, bool) {
	if len(data) <= MaxTextPreview {
		return strings.ToValidUTF8(string(data), "\uFFFD"), false
	}
	cut := data[:MaxTextPreview]
	// do not split a multi-byte rune
	for i := 0; i < 3 && len(cut) > 0 && cut[len(cut)-1]&0xC0 == 0x80; i++ {
		cut = cut[:len(cut)-1]
	}
	if len(cut) > 0 && cut[len(cut)-1] >= 0xC0 {
		cut = cut[:len(cut)-1]
	}
	return strings.ToValidUTF8(string(cut), "\uFFFD"), true
}

func looksLikeJSONDoc(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[')
}

func countPDFPages(data []byte) int {
	n := bytes.Count(data, []byte("/Type /Page")) + bytes.Count(data, []byte("/Type/Page"))
	n -= bytes.Count(data, []byte("/Type /Pages")) + bytes.Count(data, []byte("/Type/Pages"))
	if n < 0 {
		return 0
	}
	return n
}
