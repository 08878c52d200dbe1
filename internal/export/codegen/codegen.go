package codegen

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/sadopc/endecoder/internal/core/codec"
)

// Language represents a target programming language.
type Language string

const (
	LangJavaScript Language = "javascript"
	LangPython     Language = "python"
	LangPHP        Language = "php"
)

// Op is the conversion a snippet demonstrates.
type Op string

const (
	OpEncode Op = "encode"
	OpDecode Op = "decode"
)

// MaxInputLength is how many characters of the input a snippet embeds.
const MaxInputLength = 500

// Languages returns all supported languages.
func Languages() []Language {
	return []Language{LangJavaScript, LangPython, LangPHP}
}

// DisplayName is the menu label for lang.
func (l Language) DisplayName() string {
	switch l {
	case LangJavaScript:
		return "JavaScript"
	case LangPython:
		return "Python"
	case LangPHP:
		return "PHP"
	}
	return string(l)
}

// Next cycles through Languages.
func (l Language) Next() Language {
	langs := Languages()
	for i, x := range langs {
		if x == l {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}

// ParseLanguage accepts a language name and the short forms js and py.
func ParseLanguage(s string) (Language, error) {
	switch strings.ToLower(s) {
	case "javascript", "js":
		return LangJavaScript, nil
	case "python", "py":
		return LangPython, nil
	case "php":
		return LangPHP, nil
	}
	return "", fmt.Errorf("unsupported language: %s", s)
}

// ParseOp accepts "encode" or "decode".
func ParseOp(s string) (Op, error) {
	switch Op(strings.ToLower(s)) {
	case OpEncode:
		return OpEncode, nil
	case OpDecode:
		return OpDecode, nil
	}
	return "", fmt.Errorf("unsupported operation: %s", s)
}

// Generate generates a snippet performing op on input in the given language.
func Generate(op Op, lang Language, input string) (string, error) {
	input = Clip(input)
	switch lang {
	case LangJavaScript:
		return generateJavaScript(op, input), nil
	case LangPython:
		return generatePython(op, input), nil
	case LangPHP:
		return generatePHP(op, input), nil
	default:
		return "", fmt.Errorf("unsupported language: %s", lang)
	}
}

// Clip cuts input to MaxInputLength characters followed by "...".
func Clip(input string) string {
	if utf8.RuneCountInString(input) <= MaxInputLength {
		return input
	}
	n := 0
	for i := range input {
		if n == MaxInputLength {
			return input[:i] + "..."
		}
		n++
	}
	return input
}

var quoteEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
)

// phpEscaper leaves ' alone since a double-quoted PHP string keeps \'
// as two characters, and escapes $ to stop variable interpolation.
var phpEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`$`, `\$`,
	"\n", `\n`,
	"\r", `\r`,
)

// escape makes input safe inside a double-quoted string literal.
func escape(input string) string {
	return quoteEscaper.Replace(input)
}

func generateJavaScript(op Op, input string) string {
	var b strings.Builder
	if op == OpEncode {
		b.WriteString("// JavaScript Base64 Encode (UTF-8 safe)\n")
		b.WriteString("const encoder = new TextEncoder();\n")
		b.WriteString(fmt.Sprintf("const bytes = encoder.encode(\"%s\");\n", escape(input)))
		b.WriteString("let binary = '';\n")
		b.WriteString("const len = bytes.byteLength;\n")
		b.WriteString("for (let i = 0; i < len; i++) {\n")
		b.WriteString("  binary += String.fromCharCode(bytes[i]);\n")
		b.WriteString("}\n")
		b.WriteString("const base64 = btoa(binary);\n")
		b.WriteString(fmt.Sprintf("console.log(base64); // Output: %s", codec.EncodeString(input)))
		return b.String()
	}
	b.WriteString("// JavaScript Base64 Decode (UTF-8 safe)\n")
	b.WriteString(fmt.Sprintf("const binary = atob(\"%s\");\n", escape(input)))
	b.WriteString("const bytes = new Uint8Array(binary.length);\n")
	b.WriteString("for (let i = 0; i < binary.length; i++) {\n")
	b.WriteString("  bytes[i] = binary.charCodeAt(i);\n")
	b.WriteString("}\n")
	b.WriteString("const decoder = new TextDecoder();\n")
	b.WriteString("const text = decoder.decode(bytes);\n")
	b.WriteString("console.log(text);")
	return b.String()
}

func generatePython(op Op, input string) string {
	var b strings.Builder
	if op == OpEncode {
		b.WriteString("# Python Base64 Encode (UTF-8 safe)\n")
		b.WriteString("import base64\n")
		b.WriteString(fmt.Sprintf("text = \"%s\"\n", escape(input)))
		b.WriteString("encoded = base64.b64encode(text.encode('utf-8'))\n")
		b.WriteString(fmt.Sprintf("print(encoded.decode('ascii'))  # Output: %s", codec.EncodeString(input)))
		return b.String()
	}
	b.WriteString("# Python Base64 Decode (UTF-8 safe)\n")
	b.WriteString("import base64\n")
	b.WriteString(fmt.Sprintf("encoded = \"%s\"\n", escape(input)))
	b.WriteString("decoded = base64.b64decode(encoded)\n")
	b.WriteString("print(decoded.decode('utf-8'))")
	return b.String()
}

func generatePHP(op Op, input string) string {
	literal := phpEscaper.Replace(input)

	var b strings.Builder
	b.WriteString("<?php\n")
	if op == OpEncode {
		b.WriteString("// PHP Base64 Encode (UTF-8 safe)\n")
		b.WriteString(fmt.Sprintf("$text = \"%s\";\n", literal))
		b.WriteString("$encoded = base64_encode($text);\n")
		b.WriteString(fmt.Sprintf("echo $encoded; // Output: %s\n", codec.EncodeString(input)))
	} else {
		b.WriteString("// PHP Base64 Decode (UTF-8 safe)\n")
		b.WriteString(fmt.Sprintf("$encoded = \"%s\";\n", literal))
		b.WriteString("$decoded = base64_decode($encoded);\n")
		b.WriteString("echo $decoded;\n")
	}
	b.WriteString("?>")
	return b.String()
}
