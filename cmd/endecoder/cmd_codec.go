package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sadopc/endecoder/internal/core/codec"
	"github.com/sadopc/endecoder/internal/core/fileio"
	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/core/preview"
	"github.com/sadopc/endecoder/internal/core/sniff"
)

var errNoInput = errors.New("no input: pass an argument, -f <file>, or pipe data on stdin")

// input is what a codec subcommand works on.
type input struct {
	data []byte
	file *fileio.File // set when read with -f
}

// readInput takes the input from -f, the positional arguments, or a piped
// stdin, in that order.
func readInput(ctx context.Context, e env, fs *flag.FlagSet, path string) (input, error) {
	if path != "" {
		f, err := fileio.Load(ctx, path, e.cfg.MaxFileSize)
		if err != nil {
			return input{}, err
		}
		return input{data: f.Data, file: &f}, nil
	}
	if fs.NArg() > 0 {
		return input{data: []byte(strings.Join(fs.Args(), " "))}, nil
	}
	if e.stdinTTY {
		return input{}, errNoInput
	}

	limit := e.cfg.MaxFileSize
	if limit <= 0 {
		limit = fileio.DefaultMaxSize
	}
	data, err := io.ReadAll(io.LimitReader(e.stdin, limit+1))
	if err != nil {
		return input{}, fmt.Errorf("reading stdin: %w", err)
	}
	if int64(len(data)) > limit {
		return input{}, fmt.Errorf("stdin is larger than %s: %w", humanize.IBytes(uint64(limit)), fileio.ErrTooLarge)
	}
	if len(data) == 0 {
		return input{}, errNoInput
	}
	return input{data: data}, nil
}

// recordHistory adds e to the configured history, reporting but not failing
// on errors.
func recordHistory(ctx context.Context, e env, entry history.Entry) {
	store, _, err := openHistory(ctx, e.cfg, false, e.log)
	if err != nil {
		e.log.Warn("opening history failed", "err", err)
		return
	}
	defer store.Close()
	if _, err := store.Add(ctx, entry); err != nil {
		fmt.Fprintf(e.stderr, "Warning: %v\n", err)
	}
}

func encodeCmd(e env, args []string) int {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fileFlag := fs.String("f", "", "Encode the contents of a file")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the conversion in history")

	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: endecoder encode [text] [-f file] [--no-history]\n\n")
		fmt.Fprintf(e.stderr, "Encode text, a file or stdin to Base64. Text is encoded as UTF-8.\n\n")
		fmt.Fprintf(e.stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(e.stderr, "\nExamples:\n")
		fmt.Fprintf(e.stderr, "  endecoder encode 'नमस्ते'\n")
		fmt.Fprintf(e.stderr, "  endecoder encode -f photo.png > photo.txt\n")
		fmt.Fprintf(e.stderr, "  echo -n hello | endecoder encode\n")
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	ctx := context.Background()
	in, err := readInput(ctx, e, fs, *fileFlag)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		if errors.Is(err, errNoInput) {
			return exitUsage
		}
		return exitFail
	}

	encoded := codec.EncodeBytes(in.data)
	fmt.Fprintln(e.stdout, encoded)

	if *noHistoryFlag {
		return exitOK
	}
	if in.file != nil {
		image := in.file.Sniff.Kind == sniff.KindImage
		if entry, ok := history.FileEncodeEntry(in.file.Name, in.file.Size, image, encoded); ok {
			recordHistory(ctx, e, entry)
		}
		return exitOK
	}
	recordHistory(ctx, e, history.Entry{Input: string(in.data), Output: encoded, Type: history.Encode})
	return exitOK
}

func decodeCmd(e env, args []string) int {
	fs := flag.NewFlagSet("decode", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fileFlag := fs.String("f", "", "Decode Base64 read from a file")
	outFlag := fs.String("o", "", "Write decoded bytes to a file or directory")
	noHistoryFlag := fs.Bool("no-history", false, "Do not record the conversion in history")

	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: endecoder decode [base64] [-f file] [-o out] [--no-history]\n\n")
		fmt.Fprintf(e.stderr, "Decode Base64 or a data URL. Text is printed; binary data needs -o\n")
		fmt.Fprintf(e.stderr, "unless stdout is redirected.\n\n")
		fmt.Fprintf(e.stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(e.stderr, "\nExamples:\n")
		fmt.Fprintf(e.stderr, "  endecoder decode SGVsbG8=\n")
		fmt.Fprintf(e.stderr, "  endecoder decode -f image.txt -o .\n")
		fmt.Fprintf(e.stderr, "\nExit codes:\n")
		fmt.Fprintf(e.stderr, "  0  Decoded\n")
		fmt.Fprintf(e.stderr, "  1  Invalid Base64 or write failure\n")
		fmt.Fprintf(e.stderr, "  2  Usage error\n")
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	ctx := context.Background()
	in, err := readInput(ctx, e, fs, *fileFlag)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		if errors.Is(err, errNoInput) {
			return exitUsage
		}
		return exitFail
	}

	text := strings.TrimSpace(string(in.data))
	payload, _ := codec.StripDataURL(text)
	if !codec.IsBase64(strings.Join(strings.Fields(payload), "")) {
		fmt.Fprintf(e.stderr, "Error: %v\n", codec.ErrInvalidBase64)
		return exitFail
	}
	data, err := codec.DecodeBytes(payload)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitFail
	}
	result := sniff.Detect(data)

	switch {
	case *outFlag != "":
		path, err := writeDecoded(*outFlag, in.file, result.MIME, data)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitFail
		}
		fmt.Fprintf(e.stderr, "Saved %s (%s, %s)\n", path, result.MIME, humanize.IBytes(uint64(len(data))))
	case result.Kind == sniff.KindText:
		text, _ := codec.DecodeString(payload)
		fmt.Fprintln(e.stdout, text)
	case e.stdoutTTY:
		fmt.Fprintf(e.stderr, "Error: decoded data is %s (%s); use -o to save it\n", result.MIME, humanize.IBytes(uint64(len(data))))
		return exitFail
	default:
		if _, err := e.stdout.Write(data); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitFail
		}
	}

	if *noHistoryFlag {
		return exitOK
	}
	if in.file != nil && result.Kind == sniff.KindImage {
		recordHistory(ctx, e, history.TextFileDecodeEntry(in.file.Name))
		return exitOK
	}
	decoded, _ := codec.DecodeString(payload)
	recordHistory(ctx, e, history.Entry{Input: text, Output: decoded, Type: history.Decode})
	return exitOK
}

// writeDecoded saves data to out. A directory gets a generated, non-clashing
// name; anything else is used as the file path.
func writeDecoded(out string, src *fileio.File, mime string, data []byte) (string, error) {
	out = fileio.ExpandHome(out)
	if info, err := os.Stat(out); err == nil && info.IsDir() {
		original := ""
		if src != nil {
			original = src.Name
		}
		return fileio.Save(out, fileio.DecodedName(original, mime), data)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return "", fmt.Errorf("writing output: %w", err)
	}
	return out, nil
}

func sniffCmd(e env, args []string) int {
	fs := flag.NewFlagSet("sniff", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	fileFlag := fs.String("f", "", "Inspect a file as is instead of Base64 input")

	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: endecoder sniff [base64] [-f file]\n\n")
		fmt.Fprintf(e.stderr, "Detect the type of Base64 data (or of a file) from its magic bytes.\n\n")
		fmt.Fprintf(e.stderr, "Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	in, err := readInput(context.Background(), e, fs, *fileFlag)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		if errors.Is(err, errNoInput) {
			return exitUsage
		}
		return exitFail
	}

	data := in.data
	if in.file == nil {
		payload, _ := codec.StripDataURL(string(data))
		data, err = codec.DecodeBytes(payload)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitFail
		}
	}

	p := preview.Build(data)
	fmt.Fprintf(e.stdout, "mime:      %s\n", p.Sniff.MIME)
	fmt.Fprintf(e.stdout, "kind:      %s\n", p.Sniff.Kind)
	fmt.Fprintf(e.stdout, "extension: %s\n", p.Sniff.Ext)
	fmt.Fprintf(e.stdout, "size:      %s\n", humanize.IBytes(uint64(p.Size)))
	if p.Width > 0 {
		fmt.Fprintf(e.stdout, "dimensions: %dx%d\n", p.Width, p.Height)
	}
	if p.Pages > 0 {
		fmt.Fprintf(e.stdout, "pages:     %d\n", p.Pages)
	}
	return exitOK
}
