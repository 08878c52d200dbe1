// Package codec converts between text or raw bytes and standard padded Base64.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// ErrInvalidBase64 is returned when input cannot be decoded as Base64.
var ErrInvalidBase64 = errors.New("invalid base64 input")

// EncodeString encodes text as UTF-8 and returns its Base64 form.
// Invalid UTF-8 sequences are replaced with U+FFFD first.
func EncodeString(text string) string {
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "�")
	}
	return base64.StdEncoding.EncodeToString([]byte(text))
}

// EncodeBytes returns the padded Base64 form of data.
func EncodeBytes(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBytes decodes Base64 input into raw bytes. Surrounding whitespace and
// embedded line breaks are ignored, and unpadded input is accepted.
func DecodeBytes(input string) ([]byte, error) {
	s := compact(input)
	if s == "" {
		return nil, fmt.Errorf("%w: empty input", ErrInvalidBase64)
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err == nil {
		return data, nil
	}
	if !strings.HasSuffix(s, "=") {
		if raw, rawErr := base64.RawStdEncoding.DecodeString(s); rawErr == nil {
			return raw, nil
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidBase64, err)
}

// DecodeString decodes Base64 input and interprets the bytes as UTF-8 text,
// replacing invalid sequences with U+FFFD.
func DecodeString(input string) (string, error) {
	data, err := DecodeBytes(input)
	if err != nil {
		return "", err
	}
	if utf8.Valid(data) {
		return string(data), nil
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}

// IsBase64 reports whether s looks like Base64: only A-Z, a-z, 0-9, '+', '/'
// and '=' with a length that is a multiple of four. It does not check that s
// actually decodes.
func IsBase64(s string) bool {
	if s == "" || len(s)%4 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isAlphabet(s[i]) {
			return false
		}
	}
	return true
}

// StripDataURL removes a "data:<mime>;base64," prefix and returns the payload
// and the declared MIME type. Input without the prefix is returned unchanged.
func StripDataURL(s string) (payload, mime string) {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "data:") {
		return s, ""
	}
	comma := strings.IndexByte(trimmed, ',')
	if comma < 0 {
		return s, ""
	}
	header := trimmed[len("data:"):comma]
	if !strings.HasSuffix(header, ";base64") {
		return s, ""
	}
	return trimmed[comma+1:], strings.TrimSuffix(header, ";base64")
}

// DataURL builds a data URL from a MIME type and Base64 payload.
func DataURL(mime, payload string) string {
	if mime == "" {
		mime = "application/octet-stream"
	}
	return "data:" + mime + ";base64," + payload
}

// Codec wraps the package functions with the failure policy used by the UI:
// errors are logged and an empty string is returned.
type Codec struct {
	log *slog.Logger
}

// New creates a Codec that reports failures to log. A nil logger discards.
func New(log *slog.Logger) *Codec {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Codec{log: log}
}

// Encode returns the Base64 form of text. Encoding a Go string cannot fail,
// so unlike Decode there is nothing to log.
func (c *Codec) Encode(text string) string {
	return EncodeString(text)
}

// Decode returns the text form of Base64 input, or "" on failure.
func (c *Codec) Decode(input string) string {
	text, err := DecodeString(input)
	if err != nil {
		c.log.Error("decoding failed", "err", err, "length", len(input))
		return ""
	}
	return text
}

func compact(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "\r\n\t ") {
		return s
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '\r', '\n', '\t', ' ':
			return -1
		}
		return r
	}, s)
}

func isAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '+', c == '/', c == '=':
		return true
	}
	return false
}
