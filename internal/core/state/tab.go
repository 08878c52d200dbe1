package state

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Tab is one of the four converter modes.
type Tab int

const (
	TextEncode Tab = iota
	TextDecode
	ImageEncode
	ImageDecode
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TextEncode, TextDecode, ImageEncode, ImageDecode}

var tabNames = [...]string{"text-encode", "text-decode", "image-encode", "image-decode"}

func (t Tab) String() string {
	if t < 0 || int(t) >= len(tabNames) {
		return fmt.Sprintf("tab(%d)", int(t))
	}
	return tabNames[t]
}

// Next returns the following tab, wrapping around.
func (t Tab) Next() Tab { return Tab((int(t) + 1) % len(Tabs)) }

// Prev returns the preceding tab, wrapping around.
func (t Tab) Prev() Tab { return Tab((int(t) - 1 + len(Tabs)) % len(Tabs)) }

// Encodes reports whether the tab turns input into Base64.
func (t Tab) Encodes() bool { return t == TextEncode || t == ImageEncode }

// Image reports whether the tab works on image data.
func (t Tab) Image() bool { return t == ImageEncode || t == ImageDecode }

// ParseTab accepts a tab name ("text-decode") or the short forms
// "encode", "decode", "image", "image-decode".
func ParseTab(s string) (Tab, error) {
	switch s {
	case "text-encode", "encode":
		return TextEncode, nil
	case "text-decode", "decode":
		return TextDecode, nil
	case "image-encode", "image":
		return ImageEncode, nil
	case "image-decode":
		return ImageDecode, nil
	}
	return TextEncode, fmt.Errorf("unknown tab %q", s)
}

func (t Tab) MarshalYAML() (any, error) {
	return t.String(), nil
}

func (t *Tab) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseTab(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
