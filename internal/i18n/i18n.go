// Package i18n translates UI strings. Catalogs are embedded YAML files keyed
// by dotted paths ("toast.copied"); missing keys fall back to English and
// then to the key itself.
package i18n

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Fallback is the language used for missing keys.
const Fallback = "en"

// Language is a selectable UI language.
type Language struct {
	Code string
	Name string
	Tag  language.Tag
}

// Languages lists the supported UI languages in menu order.
var Languages = []Language{
	{Code: "en", Name: "English", Tag: language.English},
	{Code: "hi", Name: "हिन्दी (Hindi)", Tag: language.Hindi},
	{Code: "ta", Name: "தமிழ் (Tamil)", Tag: language.Tamil},
}

var (
	loadOnce sync.Once
	catalogs map[string]map[string]string
	loadErr  error
)

func loadCatalogs() (map[string]map[string]string, error) {
	loadOnce.Do(func() {
		catalogs = make(map[string]map[string]string, len(Languages))
		for _, l := range Languages {
			data, err := localeFS.ReadFile("locales/" + l.Code + ".yaml")
			if err != nil {
				loadErr = fmt.Errorf("reading %s catalog: %w", l.Code, err)
				return
			}
			var tree map[string]any
			if err := yaml.Unmarshal(data, &tree); err != nil {
				loadErr = fmt.Errorf("parsing %s catalog: %w", l.Code, err)
				return
			}
			flat := make(map[string]string)
			flatten("", tree, flat)
			catalogs[l.Code] = flat
		}
	})
	return catalogs, loadErr
}

func flatten(prefix string, node map[string]any, out map[string]string) {
	for k, v := range node {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case map[string]any:
			flatten(key, val, out)
		case string:
			out[key] = val
		default:
			out[key] = fmt.Sprint(val)
		}
	}
}

// Translator looks up strings for the current language.
type Translator struct {
	lang     string
	catalogs map[string]map[string]string
}

// New returns a translator for lang. Unknown codes select English.
func New(lang string) (*Translator, error) {
	cats, err := loadCatalogs()
	if err != nil {
		return nil, err
	}
	t := &Translator{lang: Fallback, catalogs: cats}
	t.SetLanguage(lang)
	return t, nil
}

// MustNew is New for callers that cannot handle a broken embedded catalog.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Language returns the current language code.
func (t *Translator) Language() string { return t.lang }

// LanguageName returns the display name of the current language.
func (t *Translator) LanguageName() string {
	for _, l := range Languages {
		if l.Code == t.lang {
			return l.Name
		}
	}
	return t.lang
}

// SetLanguage switches language and reports whether code was supported.
func (t *Translator) SetLanguage(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := t.catalogs[code]; !ok {
		return false
	}
	t.lang = code
	return true
}

// Next cycles to the following supported language and returns its code.
func (t *Translator) Next() string {
	for i, l := range Languages {
		if l.Code == t.lang {
			t.lang = Languages[(i+1)%len(Languages)].Code
			return t.lang
		}
	}
	t.lang = Fallback
	return t.lang
}

// T translates key, formatting the result with args when given.
func (t *Translator) T(key string, args ...any) string {
	msg, ok := t.catalogs[t.lang][key]
	if !ok {
		msg, ok = t.catalogs[Fallback][key]
	}
	if !ok {
		msg = key
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

var matcher = language.NewMatcher(func() []language.Tag {
	tags := make([]language.Tag, len(Languages))
	for i, l := range Languages {
		tags[i] = l.Tag
	}
	return tags
}())

// Detect picks a supported language from the usual locale variables,
// returning "" when none of them names one.
func Detect(getenv func(string) string) string {
	for _, name := range []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"} {
		for _, v := range strings.Split(getenv(name), ":") {
			if code := Match(v); code != "" {
				return code
			}
		}
	}
	return ""
}

// Match maps a POSIX locale ("ta_IN.UTF-8") or BCP 47 tag to a supported
// language code, or "" when nothing matches.
func Match(locale string) string {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	if locale == "" || locale == "C" || locale == "POSIX" {
		return ""
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return ""
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return ""
	}
	return Languages[idx].Code
}
