package main

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sadopc/endecoder/internal/config"
	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/logging"
)

// testEnv returns an env reading stdin from the given string (a terminal
// when empty) with history in a temporary JSON file.
func testEnv(t *testing.T, stdin string) (env, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.HistoryPath = filepath.Join(t.TempDir(), "history.json")

	var stdout, stderr bytes.Buffer
	return env{
		stdin:    strings.NewReader(stdin),
		stdout:   &stdout,
		stderr:   &stderr,
		stdinTTY: stdin == "",
		cfg:      cfg,
		log:      logging.Discard(),
	}, &stdout, &stderr
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func historyJSON(t *testing.T, e env) []cliItem {
	t.Helper()
	var stdout bytes.Buffer
	e.stdout = &stdout
	if code := historyCmd(e, []string{"list", "--json"}); code != exitOK {
		t.Fatalf("history list exit code = %d", code)
	}
	var items []cliItem
	if err := json.Unmarshal(stdout.Bytes(), &items); err != nil {
		t.Fatalf("history JSON: %v\n%s", err, stdout.String())
	}
	return items
}

func TestRunVersionAndHelp(t *testing.T) {
	e, stdout, _ := testEnv(t, "")
	if code := run(e, []string{"version"}); code != exitOK {
		t.Fatalf("version exit code = %d", code)
	}
	if !strings.HasPrefix(stdout.String(), "endecoder ") {
		t.Errorf("version output = %q", stdout.String())
	}

	stdout.Reset()
	if code := run(e, []string{"--help"}); code != exitOK {
		t.Fatalf("help exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "Commands:") {
		t.Errorf("help output missing command list")
	}
}

func TestRunUnknownCommand(t *testing.T) {
	e, _, stderr := testEnv(t, "")
	if code := run(e, []string{"frobnicate"}); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if !strings.Contains(stderr.String(), `unknown command "frobnicate"`) {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunBadTab(t *testing.T) {
	e, _, _ := testEnv(t, "")
	if code := run(e, []string{"--tab", "nope"}); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
}

func TestEncodeCmd(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"argument", []string{"Hello, World!"}, "", "SGVsbG8sIFdvcmxkIQ=="},
		{"joined arguments", []string{"Hello,", "World!"}, "", "SGVsbG8sIFdvcmxkIQ=="},
		{"multibyte", []string{"नमस्ते"}, "", "4KSo4KSu4KS44KWN4KSk4KWH"},
		{"stdin", nil, "Hello", "SGVsbG8="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, stdout, _ := testEnv(t, tt.stdin)
			if code := encodeCmd(e, tt.args); code != exitOK {
				t.Fatalf("exit code = %d", code)
			}
			if got := strings.TrimSpace(stdout.String()); got != tt.want {
				t.Errorf("encode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodeCmdNoInput(t *testing.T) {
	e, stdout, stderr := testEnv(t, "")
	if code := encodeCmd(e, nil); code != exitUsage {
		t.Fatalf("exit code = %d, want %d", code, exitUsage)
	}
	if stdout.Len() != 0 || !strings.Contains(stderr.String(), "no input") {
		t.Errorf("stdout = %q, stderr = %q", stdout.String(), stderr.String())
	}
}

func TestEncodeCmdRecordsHistory(t *testing.T) {
	e, _, _ := testEnv(t, "")
	if code := encodeCmd(e, []string{"hello"}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	items := historyJSON(t, e)
	if len(items) != 1 {
		t.Fatalf("history has %d items, want 1", len(items))
	}
	if items[0].Input != "hello" || items[0].Output != "aGVsbG8=" || items[0].Type != "encode" {
		t.Errorf("item = %+v", items[0])
	}

	if code := encodeCmd(e, []string{"--no-history", "world"}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if n := len(historyJSON(t, e)); n != 1 {
		t.Errorf("--no-history recorded an item, history has %d", n)
	}
}

func TestEncodeCmdFile(t *testing.T) {
	e, stdout, _ := testEnv(t, "")
	data := testPNG(t)
	path := filepath.Join(t.TempDir(), "dot.png")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	if code := encodeCmd(e, []string{"-f", path}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if got := strings.TrimSpace(stdout.String()); got != codec.EncodeBytes(data) {
		t.Errorf("encoded file mismatch")
	}
	items := historyJSON(t, e)
	if len(items) != 1 || !strings.HasPrefix(items[0].Input, "Image: dot.png") {
		t.Errorf("history = %+v", items)
	}
}

func TestEncodeCmdMissingFile(t *testing.T) {
	e, _, stderr := testEnv(t, "")
	if code := encodeCmd(e, []string{"-f", filepath.Join(t.TempDir(), "missing")}); code != exitFail {
		t.Fatalf("exit code = %d, want %d", code, exitFail)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestDecodeCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		wantCode int
		want     string
	}{
		{"argument", []string{"SGVsbG8sIFdvcmxkIQ=="}, "", exitOK, "Hello, World!"},
		{"multibyte", []string{"4KSo4KSu4KS44KWN4KSk4KWH"}, "", exitOK, "नमस्ते"},
		{"wrapped stdin", nil, "SGVs\nbG8=\n", exitOK, "Hello"},
		{"data url", []string{"data:text/plain;base64,SGVsbG8="}, "", exitOK, "Hello"},
		{"latin1 bytes print as text", []string{"Y2Fm6Q=="}, "", exitOK, "caf\uFFFD"},
		{"invalid", []string{"not base64!"}, "", exitFail, ""},
		{"bad length", []string{"SGVsbG8"}, "", exitFail, ""},
		{"no input", nil, "", exitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, stdout, _ := testEnv(t, tt.stdin)
			if code := decodeCmd(e, append([]string{"--no-history"}, tt.args...)); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if got := strings.TrimSuffix(stdout.String(), "\n"); got != tt.want {
				t.Errorf("decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeCmdBinary(t *testing.T) {
	data := testPNG(t)
	encoded := codec.EncodeBytes(data)

	t.Run("refuses terminal", func(t *testing.T) {
		e, stdout, stderr := testEnv(t, "")
		e.stdoutTTY = true
		if code := decodeCmd(e, []string{encoded}); code != exitFail {
			t.Fatalf("exit code = %d, want %d", code, exitFail)
		}
		if stdout.Len() != 0 || !strings.Contains(stderr.String(), "image/png") {
			t.Errorf("stdout = %d bytes, stderr = %q", stdout.Len(), stderr.String())
		}
	})

	t.Run("raw to pipe", func(t *testing.T) {
		e, stdout, _ := testEnv(t, "")
		if code := decodeCmd(e, []string{"--no-history", encoded}); code != exitOK {
			t.Fatalf("exit code = %d", code)
		}
		if !bytes.Equal(stdout.Bytes(), data) {
			t.Errorf("raw output mismatch")
		}
	})

	t.Run("output directory", func(t *testing.T) {
		e, _, _ := testEnv(t, "")
		dir := t.TempDir()
		if code := decodeCmd(e, []string{"--no-history", "-o", dir, encoded}); code != exitOK {
			t.Fatalf("exit code = %d", code)
		}
		got, err := os.ReadFile(filepath.Join(dir, "decoded-file.png"))
		if err != nil {
			t.Fatalf("reading saved file: %v", err)
		}
		if !bytes.Equal(got, data) {
			t.Errorf("saved file mismatch")
		}
	})

	t.Run("output file", func(t *testing.T) {
		e, _, _ := testEnv(t, "")
		out := filepath.Join(t.TempDir(), "sub", "pic.png")
		if code := decodeCmd(e, []string{"--no-history", "-o", out, encoded}); code != exitOK {
			t.Fatalf("exit code = %d", code)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output file missing: %v", err)
		}
	})
}

func TestDecodeCmdImageFileHistory(t *testing.T) {
	e, _, _ := testEnv(t, "")
	path := filepath.Join(t.TempDir(), "image.txt")
	if err := os.WriteFile(path, []byte(codec.EncodeBytes(testPNG(t))), 0644); err != nil {
		t.Fatal(err)
	}
	if code := decodeCmd(e, []string{"-f", path, "-o", t.TempDir()}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	items := historyJSON(t, e)
	if len(items) != 1 || items[0].Input != "Text file: image.txt" || items[0].Output != "[Decoded Image]" {
		t.Errorf("history = %+v", items)
	}
}

func TestSniffCmd(t *testing.T) {
	data := testPNG(t)

	e, stdout, _ := testEnv(t, "")
	if code := sniffCmd(e, []string{codec.EncodeBytes(data)}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	out := stdout.String()
	for _, want := range []string{"image/png", "kind:      image", "extension: .png", "dimensions: 3x2"} {
		if !strings.Contains(out, want) {
			t.Errorf("sniff output missing %q:\n%s", want, out)
		}
	}

	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4\n1 0 obj << /Type /Page >>\n"), 0644); err != nil {
		t.Fatal(err)
	}
	e, stdout, _ = testEnv(t, "")
	if code := sniffCmd(e, []string{"-f", path}); code != exitOK {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "application/pdf") {
		t.Errorf("sniff -f output = %q", stdout.String())
	}

	e, _, _ = testEnv(t, "")
	if code := sniffCmd(e, []string{"@@@@"}); code != exitFail {
		t.Errorf("invalid input exit code = %d, want %d", code, exitFail)
	}
}

func TestHistoryCmd(t *testing.T) {
	e, _, _ := testEnv(t, "")
	for _, text := range []string{"alpha", "beta", "gamma"} {
		if code := encodeCmd(e, []string{text}); code != exitOK {
			t.Fatalf("encode %q exit code = %d", text, code)
		}
	}

	items := historyJSON(t, e)
	if len(items) != 3 || items[0].Input != "gamma" {
		t.Fatalf("history = %+v", items)
	}

	var stdout bytes.Buffer
	e.stdout = &stdout
	if code := historyCmd(e, []string{"search", "BETA", "--json"}); code != exitOK {
		t.Fatalf("search exit code = %d", code)
	}
	var found []cliItem
	if err := json.Unmarshal(stdout.Bytes(), &found); err != nil {
		t.Fatalf("search JSON: %v", err)
	}
	if len(found) != 1 || found[0].Input != "beta" {
		t.Errorf("search = %+v", found)
	}

	stdout.Reset()
	if code := historyCmd(e, nil); code != exitOK {
		t.Fatalf("list exit code = %d", code)
	}
	if !strings.Contains(stdout.String(), "INPUT") || !strings.Contains(stdout.String(), "alpha") {
		t.Errorf("table output = %q", stdout.String())
	}

	if code := historyCmd(e, []string{"delete", items[1].ID}); code != exitOK {
		t.Fatalf("delete exit code = %d", code)
	}
	if got := historyJSON(t, e); len(got) != 2 {
		t.Errorf("after delete history has %d items, want 2", len(got))
	}
	if code := historyCmd(e, []string{"delete", "no-such-id"}); code != exitFail {
		t.Errorf("delete unknown exit code = %d, want %d", code, exitFail)
	}

	if code := historyCmd(e, []string{"clear"}); code != exitOK {
		t.Fatalf("clear exit code = %d", code)
	}
	if got := historyJSON(t, e); len(got) != 0 {
		t.Errorf("after clear history has %d items", len(got))
	}
}

func TestHistoryCmdUsage(t *testing.T) {
	tests := [][]string{
		{"search"},
		{"delete"},
		{"delete", "a", "b"},
		{"rename"},
	}
	for _, args := range tests {
		e, _, _ := testEnv(t, "")
		if code := historyCmd(e, args); code != exitUsage {
			t.Errorf("history %v exit code = %d, want %d", args, code, exitUsage)
		}
	}
}

func TestSnippetCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
		want     string
	}{
		{"javascript encode", []string{"Hello"}, exitOK, "btoa(binary)"},
		{"python decode", []string{"--lang", "py", "--op", "decode", "SGVsbG8="}, exitOK, "base64.b64decode"},
		{"php escapes dollar", []string{"--lang", "php", "cost $5"}, exitOK, `cost \$5`},
		{"verify encode", []string{"--verify", "नमस्ते"}, exitOK, "TextEncoder"},
		{"verify decode", []string{"--verify", "--op", "decode", "SGVsbG8sIFdvcmxkIQ=="}, exitOK, "atob("},
		{"verify needs javascript", []string{"--lang", "python", "--verify", "x"}, exitUsage, ""},
		{"unknown language", []string{"--lang", "cobol", "x"}, exitUsage, ""},
		{"unknown op", []string{"--op", "rot13", "x"}, exitUsage, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, stdout, _ := testEnv(t, "")
			if code := snippetCmd(e, tt.args); code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if tt.want != "" && !strings.Contains(stdout.String(), tt.want) {
				t.Errorf("snippet missing %q:\n%s", tt.want, stdout.String())
			}
		})
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := firstNonEmpty("", "hi", "ta"); got != "hi" {
		t.Errorf("firstNonEmpty = %q", got)
	}
	if got := firstNonEmpty("", ""); got != "" {
		t.Errorf("firstNonEmpty = %q", got)
	}
}
