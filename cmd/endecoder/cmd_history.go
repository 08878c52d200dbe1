package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/bytedance/sonic"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"

	"github.com/sadopc/endecoder/internal/core/history"
)

// previewWidth is the column width of inputs and outputs in list output.
const previewWidth = 40

// cliItem is the JSON shape of a history item on the command line.
type cliItem struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Input     string    `json:"input"`
	Output    string    `json:"output"`
}

func historyCmd(e env, args []string) int {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	jsonFlag := fs.Bool("json", false, "Print items as JSON")

	fs.Usage = func() {
		fmt.Fprintf(e.stderr, "Usage: endecoder history [list|search <query>|delete <id>|clear] [--json]\n\n")
		fmt.Fprintf(e.stderr, "Show or edit the conversion history, most recent first.\n\n")
		fmt.Fprintf(e.stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(e.stderr, "\nExamples:\n")
		fmt.Fprintf(e.stderr, "  endecoder history\n")
		fmt.Fprintf(e.stderr, "  endecoder history search hello --json\n")
		fmt.Fprintf(e.stderr, "  endecoder history clear\n")
	}

	// Flags may follow the action.
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return exitUsage
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	action := "list"
	if len(positional) > 0 {
		action, positional = positional[0], positional[1:]
	}

	ctx := context.Background()
	store, _, err := openHistory(ctx, e.cfg, false, e.log)
	if err != nil {
		fmt.Fprintf(e.stderr, "Error opening history: %v\n", err)
		return exitFail
	}
	defer store.Close()

	switch action {
	case "list":
		return printItems(e, store.Items(), *jsonFlag)
	case "search":
		if len(positional) == 0 {
			fmt.Fprintf(e.stderr, "Error: search needs a query\n")
			return exitUsage
		}
		return printItems(e, store.Search(strings.Join(positional, " ")), *jsonFlag)
	case "delete":
		if len(positional) != 1 {
			fmt.Fprintf(e.stderr, "Error: delete needs exactly one item ID\n")
			return exitUsage
		}
		if err := store.Delete(ctx, positional[0]); err != nil {
			if errors.Is(err, history.ErrNotFound) {
				fmt.Fprintf(e.stderr, "Error: no history item %q\n", positional[0])
			} else {
				fmt.Fprintf(e.stderr, "Error: %v\n", err)
			}
			return exitFail
		}
		fmt.Fprintf(e.stderr, "Deleted %s\n", positional[0])
		return exitOK
	case "clear":
		n := store.Len()
		if err := store.Clear(ctx); err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitFail
		}
		fmt.Fprintf(e.stderr, "Cleared %d item(s)\n", n)
		return exitOK
	default:
		fmt.Fprintf(e.stderr, "Error: unknown history action %q\n\n", action)
		fs.Usage()
		return exitUsage
	}
}

func printItems(e env, items []history.Item, asJSON bool) int {
	if asJSON {
		out := make([]cliItem, len(items))
		for i, it := range items {
			out[i] = cliItem{
				ID:        it.ID,
				Timestamp: it.Timestamp,
				Type:      string(it.Type),
				Input:     it.Input,
				Output:    it.Output,
			}
		}
		data, err := sonic.Marshal(out)
		if err != nil {
			fmt.Fprintf(e.stderr, "Error: %v\n", err)
			return exitFail
		}
		if e.stdoutTTY {
			data = pretty.Color(pretty.Pretty(data), nil)
		} else {
			data = pretty.Pretty(data)
		}
		e.stdout.Write(data)
		return exitOK
	}

	if len(items) == 0 {
		fmt.Fprintln(e.stderr, "No history")
		return exitOK
	}
	tw := tabwriter.NewWriter(e.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tWHEN\tINPUT\tOUTPUT")
	for _, it := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.Type,
			humanize.Time(it.Timestamp),
			oneLine(it.Input),
			oneLine(it.Output),
		)
	}
	tw.Flush()
	return exitOK
}

// oneLine flattens s and cuts it to previewWidth terminal cells.
func oneLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, previewWidth, "…")
}
