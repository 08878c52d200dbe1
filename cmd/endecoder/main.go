package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/sadopc/endecoder/internal/app"
	"github.com/sadopc/endecoder/internal/config"
	"github.com/sadopc/endecoder/internal/core/history"
	"github.com/sadopc/endecoder/internal/core/state"
	"github.com/sadopc/endecoder/internal/i18n"
	"github.com/sadopc/endecoder/internal/logging"
	"github.com/sadopc/endecoder/pkg/version"
)

// Exit codes shared by all subcommands.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

// env is what a subcommand reads from and writes to.
type env struct {
	stdin     io.Reader
	stdout    io.Writer
	stderr    io.Writer
	stdinTTY  bool
	stdoutTTY bool
	cfg       config.Config
	log       *slog.Logger
}

func main() {
	cfg := config.Load()
	log, closeLog, err := logging.New(filepath.Join(config.StateDir(), "endecoder.log"), cfg.LogLevel)
	if err != nil {
		log, closeLog = logging.Discard(), func() error { return nil }
	}

	e := env{
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		stderr:    os.Stderr,
		stdinTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		stdoutTTY: term.IsTerminal(int(os.Stdout.Fd())),
		cfg:       cfg,
		log:       log,
	}

	code := run(e, os.Args[1:])
	closeLog()
	os.Exit(code)
}

func run(e env, args []string) int {
	if len(args) > 0 {
		rest := args[1:]
		switch args[0] {
		case "encode":
			return encodeCmd(e, rest)
		case "decode":
			return decodeCmd(e, rest)
		case "sniff":
			return sniffCmd(e, rest)
		case "history":
			return historyCmd(e, rest)
		case "snippet":
			return snippetCmd(e, rest)
		case "completion":
			return completionCmd(e, rest)
		case "version":
			fmt.Fprintf(e.stdout, "endecoder %s (%s) built %s\n", version.Version, version.Commit, version.Date)
			return exitOK
		case "help", "-h", "--help":
			printHelp(e.stdout)
			return exitOK
		}
	}
	return tuiCmd(e, args)
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `endecoder - Base64 encoding and decoding for text, files and images

Usage:
  endecoder [flags]                    Launch TUI (interactive mode)
  endecoder <command> [args] [flags]   Run a subcommand

Commands:
  encode      Encode text, a file or stdin to Base64
  decode      Decode Base64 text, a file or stdin
  sniff       Detect the file type of Base64 data or a file
  history     List, search, delete or clear conversion history
  snippet     Print code that reproduces a conversion
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --tab <name>     Start on a tab: text-encode, text-decode, image-encode, image-decode
  --theme <name>   Color theme
  --lang <code>    UI language: en, hi, ta
  --no-history     Keep history in memory only
  --version        Print version and exit

Run 'endecoder <command> --help' for more information about a command.
`)
}

// openHistory opens the configured history backend. file is non-nil for
// the JSON backend so the TUI can watch it.
func openHistory(ctx context.Context, cfg config.Config, noHistory bool, log *slog.Logger) (*history.Store, *history.JSONFile, error) {
	if noHistory || cfg.HistoryBackend == config.BackendMemory {
		return history.NewStore(ctx, history.NewMemory(), log), nil, nil
	}

	path := cfg.HistoryFile()
	if cfg.HistoryBackend == config.BackendSQLite {
		db, err := history.NewSQLite(path)
		if err != nil {
			return nil, nil, err
		}
		return history.NewStore(ctx, db, log), nil, nil
	}

	file := history.NewJSONFile(path, cfg.HistoryQuotaBytes)
	return history.NewStore(ctx, file, log), file, nil
}

func tuiCmd(e env, args []string) int {
	fs := flag.NewFlagSet("endecoder", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	versionFlag := fs.Bool("version", false, "Print version and exit")
	tabFlag := fs.String("tab", "", "Start on a tab (text-encode, text-decode, image-encode, image-decode)")
	themeFlag := fs.String("theme", "", "Color theme")
	langFlag := fs.String("lang", "", "UI language (en, hi, ta)")
	noHistoryFlag := fs.Bool("no-history", false, "Keep history in memory only")
	fs.Usage = func() { printHelp(e.stderr) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(e.stderr, "Error: unknown command %q\n\n", fs.Arg(0))
		printHelp(e.stderr)
		return exitUsage
	}

	if *versionFlag {
		fmt.Fprintf(e.stdout, "endecoder %s (%s) built %s\n", version.Version, version.Commit, version.Date)
		return exitOK
	}

	cfg := e.cfg
	store := state.Open(filepath.Join(config.StateDir(), "state.yaml"))

	if *tabFlag != "" {
		tab, err := state.ParseTab(*tabFlag)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitUsage
		}
		store.SetTab(tab)
	}
	if *themeFlag != "" {
		store.Theme = *themeFlag
	}

	lang := firstNonEmpty(*langFlag, store.Language, cfg.Language, i18n.Detect(os.Getenv))
	tr, err := i18n.New(lang)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitFail
	}
	store.Language = tr.Language()

	ctx := context.Background()
	hist, file, err := openHistory(ctx, cfg, *noHistoryFlag, e.log)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error opening history: %v\n", err)
		return exitFail
	}
	defer hist.Close()

	var watcher *history.Watcher
	if file != nil {
		if err := os.MkdirAll(filepath.Dir(file.Path()), 0755); err == nil {
			watcher, err = history.Watch(file, e.log)
			if err != nil {
				e.log.Warn("watching history failed", "err", err)
			}
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	model := app.New(app.Options{
		Config:     cfg,
		State:      store,
		Translator: tr,
		History:    hist,
		Watcher:    watcher,
		Logger:     e.log,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	e.log.Info("starting", "version", version.Version, "tab", store.ActiveTab.String(), "lang", tr.Language())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(e.stderr, "Error: %v\n", err)
		return exitFail
	}
	if err := store.Save(); err != nil {
		e.log.Warn("saving state failed", "err", err)
	}
	return exitOK
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
