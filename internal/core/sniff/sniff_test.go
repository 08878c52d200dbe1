package sniff

import (
	"bytes"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		mime string
		kind Kind
	}{
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, MIMEJPEG, KindImage},
		{"png", []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}, MIMEPNG, KindImage},
		{"png prefix only", []byte{0x89, 0x50, 0x4E, 0x47}, MIMEPNG, KindImage},
		{"gif", []byte("GIF89a\x01\x00"), MIMEGIF, KindImage},
		{"pdf", []byte("%PDF-1.7\n"), MIMEPDF, KindPDF},
		{"svg", []byte(`<?xml version="1.0"?><svg xmlns="http://www.w3.org/2000/svg"></svg>`), MIMESVG, KindImage},
		{"html doctype", []byte("<!DOCTYPE html><html></html>"), MIMEHTML, KindText},
		{"xml without svg", []byte(`<?xml version="1.0"?><note/>`), MIMEHTML, KindText},
		{"webp", append([]byte("RIFF\x24\x00\x00\x00WEBPVP8 "), make([]byte, 8)...), MIMEWebP, KindImage},
		{"tiff little endian", []byte{0x49, 0x49, 0x2A, 0x00, 0x08}, MIMETIFF, KindImage},
		{"ascii text", []byte("Hello, world!\n\tIndented\r\n"), MIMEText, KindText},
		{"utf8 text", []byte("नमस्ते"), MIMEText, KindText},
		{"empty", nil, MIMEText, KindText},
		{"control bytes", []byte{0x00, 0x01, 0x02, 0x03}, MIMEBinary, KindBinary},
		{"invalid utf8", []byte{'a', 0xff, 'b'}, MIMEText, KindText},
		{"truncated two byte sequence", []byte{0xC3, 0x28}, MIMEText, KindText},
		{"stray continuation byte", []byte{0x41, 0x80, 0x42}, MIMEText, KindText},
		{"high bytes only", []byte{0xFE, 0xFE, 0xFE, 0xFE}, MIMEText, KindText},
		{"latin1 text", []byte("caf\xe9 cr\xe8me\n"), MIMEText, KindText},
		{"high bytes with nul", []byte{0xFE, 0x00, 0xFE}, MIMEBinary, KindBinary},
		{"plain text starting with BM", []byte("BMW is a car"), MIMEText, KindText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.data)
			if got.MIME != tt.mime {
				t.Errorf("Detect MIME = %q, want %q", got.MIME, tt.mime)
			}
			if got.Kind != tt.kind {
				t.Errorf("Detect Kind = %v, want %v", got.Kind, tt.kind)
			}
		})
	}
}

func TestDetectBMP(t *testing.T) {
	header := make([]byte, 54)
	header[0], header[1] = 'B', 'M'
	header[2] = 54
	got := Detect(header)
	if got.MIME != MIMEBMP {
		t.Errorf("Detect BMP = %q, want %q", got.MIME, MIMEBMP)
	}
}

func TestDetectSingleFallback(t *testing.T) {
	got := Detect(bytes.Repeat([]byte{0x00, 0x9c}, 8))
	if got.MIME != MIMEBinary || got.Ext != ".bin" || got.Previewable() {
		t.Errorf("fallback = %+v, want octet-stream, .bin, not previewable", got)
	}
}

func TestFileName(t *testing.T) {
	tests := []struct {
		base, mime, want string
	}{
		{"decoded-file", MIMEPNG, "decoded-file.png"},
		{"photo.PNG", MIMEPNG, "photo.PNG"},
		{"photo.jpeg", MIMEJPEG, "photo.jpeg"},
		{"photo", MIMEJPEG, "photo.jpg"},
		{"scan.tif", MIMETIFF, "scan.tif"},
		{"report", MIMEPDF, "report.pdf"},
		{"blob", MIMEBinary, "blob.bin"},
		{"notes.txt", MIMEText, "notes.txt"},
	}
	for _, tt := range tests {
		if got := FileName(tt.base, tt.mime); got != tt.want {
			t.Errorf("FileName(%q, %q) = %q, want %q", tt.base, tt.mime, got, tt.want)
		}
	}
}

func TestKindString(t *testing.T) {
	if KindImage.String() != "image" || KindBinary.String() != "binary" {
		t.Error("unexpected Kind strings")
	}
}
