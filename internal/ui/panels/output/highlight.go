package output

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/endecoder/internal/core/sniff"
)

// LexerFor maps a sniffed MIME type to a chroma lexer name.
func LexerFor(mime string, json bool) string {
	switch {
	case json:
		return "json"
	case mime == sniff.MIMEHTML:
		return "html"
	case mime == sniff.MIMESVG:
		return "xml"
	default:
		return "text"
	}
}

// Highlight applies chroma syntax highlighting to source with the named
// chroma style. Plain text is returned unchanged apart from wrapping.
func Highlight(source, lexerName, styleName string, width int, wrap bool) string {
	result := source
	if lexerName != "" && lexerName != "text" {
		result = colorize(source, lexerName, styleName)
	}
	if wrap && width > 0 {
		result = wrapText(result, width)
	}
	return result
}

func colorize(source, lexerName, styleName string) string {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := chromastyles.Get(styleName)
	if style == nil {
		style = chromastyles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return source
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return source
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// wrapText hard-wraps s to width using lipgloss.
func wrapText(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Render(s)
}
