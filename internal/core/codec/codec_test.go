package codec

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"ascii", "hello world"},
		{"hindi", "नमस्ते दुनिया"},
		{"tamil", "வணக்கம் உலகம்"},
		{"emoji", "base64 🚀 works"},
		{"newlines", "line one\nline two\r\n\ttabbed"},
		{"quotes", `he said "hi" and 'bye'`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded := EncodeString(tt.in)
			if tt.in != "" && !IsBase64(encoded) {
				t.Fatalf("EncodeString(%q) = %q, not structurally base64", tt.in, encoded)
			}
			if tt.in == "" {
				return
			}
			got, err := DecodeString(encoded)
			if err != nil {
				t.Fatalf("DecodeString(%q) error: %v", encoded, err)
			}
			if got != tt.in {
				t.Errorf("round trip = %q, want %q", got, tt.in)
			}
		})
	}
}

func TestEncodeKnownValues(t *testing.T) {
	tests := map[string]string{
		"abcd":  "YWJjZA==",
		"hello": "aGVsbG8=",
		"é":     "w6k=",
	}
	for in, want := range tests {
		if got := EncodeString(in); got != want {
			t.Errorf("EncodeString(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEncodeReplacesInvalidUTF8(t *testing.T) {
	got := EncodeString("a\xffb")
	want := EncodeString("a�b")
	if got != want {
		t.Errorf("EncodeString with invalid UTF-8 = %q, want %q", got, want)
	}
}

func TestDecodeStringTrimsAndTolerates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"surrounding whitespace", "  YWJjZA==\n", "abcd"},
		{"wrapped lines", "YWJj\nZA==", "abcd"},
		{"unpadded", "YWJjZA", "abcd"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeString(tt.in)
			if err != nil {
				t.Fatalf("DecodeString(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("DecodeString(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeStringInvalid(t *testing.T) {
	for _, in := range []string{"", "   ", "abc$", "@@@@"} {
		if _, err := DecodeString(in); !errors.Is(err, ErrInvalidBase64) {
			t.Errorf("DecodeString(%q) error = %v, want ErrInvalidBase64", in, err)
		}
	}
}

func TestDecodeStringReplacesInvalidUTF8(t *testing.T) {
	got, err := DecodeString(EncodeBytes([]byte{'o', 'k', 0xff}))
	if err != nil {
		t.Fatal(err)
	}
	if got != "ok�" {
		t.Errorf("DecodeString = %q, want replacement character", got)
	}
}

func TestIsBase64(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"abc", false},
		{"YWJjZA==", true},
		{"", false},
		{"YWJj", true},
		{"YW Jj", false},
		{"YWJj\n", false},
		{"YWJ-", false},
		{"====", true}, // structural only
	}
	for _, tt := range tests {
		if got := IsBase64(tt.in); got != tt.want {
			t.Errorf("IsBase64(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsBase64AcceptsEncodedBytes(t *testing.T) {
	inputs := [][]byte{
		{0x00},
		{0xff, 0xd8, 0xff, 0xe0},
		bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 17),
		[]byte("plain text"),
	}
	for _, in := range inputs {
		if enc := EncodeBytes(in); !IsBase64(enc) {
			t.Errorf("IsBase64(EncodeBytes(%v)) = false for %q", in, enc)
		}
	}
}

func TestDecodeBytesBinary(t *testing.T) {
	in := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	got, err := DecodeBytes(EncodeBytes(in))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, in) {
		t.Errorf("DecodeBytes = %v, want %v", got, in)
	}
}

func TestStripDataURL(t *testing.T) {
	payload, mime := StripDataURL("data:image/png;base64,iVBORw0KGgo=")
	if payload != "iVBORw0KGgo=" || mime != "image/png" {
		t.Errorf("StripDataURL = (%q, %q)", payload, mime)
	}

	payload, mime = StripDataURL("YWJjZA==")
	if payload != "YWJjZA==" || mime != "" {
		t.Errorf("StripDataURL(plain) = (%q, %q)", payload, mime)
	}

	payload, mime = StripDataURL("data:text/plain,hello")
	if payload != "data:text/plain,hello" || mime != "" {
		t.Errorf("StripDataURL(non-base64 data URL) = (%q, %q)", payload, mime)
	}
}

func TestDataURL(t *testing.T) {
	if got := DataURL("image/gif", "R0lG"); got != "data:image/gif;base64,R0lG" {
		t.Errorf("DataURL = %q", got)
	}
	if got := DataURL("", "AA=="); !strings.HasPrefix(got, "data:application/octet-stream;base64,") {
		t.Errorf("DataURL default mime = %q", got)
	}
}

func TestCodecDecodeFailureReturnsEmpty(t *testing.T) {
	c := New(nil)
	if got := c.Decode("not base64!"); got != "" {
		t.Errorf("Decode(invalid) = %q, want empty", got)
	}
	if got := c.Decode("aGVsbG8="); got != "hello" {
		t.Errorf("Decode = %q, want hello", got)
	}
	if got := c.Encode("hello"); got != "aGVsbG8=" {
		t.Errorf("Encode = %q", got)
	}
}
