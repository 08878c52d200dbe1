package theme

import (
	"sort"
	"strings"

	"github.com/sadopc/endecoder/internal/config"
)

// Catalog maps theme names to themes.
var Catalog = map[string]Theme{}

func init() {
	register(CatppuccinMocha)
	register(CatppuccinLatte)
	register(Nord)
	register(Dracula)
	register(SolarizedLight)
}

func register(t Theme) {
	Catalog[normalizeKey(t.Name)] = t
}

// Default returns the default theme.
func Default() Theme {
	return CatppuccinMocha
}

// Get returns a theme by name.
func Get(name string) (Theme, bool) {
	t, ok := Catalog[normalizeKey(name)]
	return t, ok
}

// Names returns all built-in and custom theme names, sorted.
func Names() []string {
	seen := map[string]bool{}
	var names []string
	for _, t := range Catalog {
		names = append(names, t.Name)
		seen[normalizeKey(t.Name)] = true
	}
	for key, t := range LoadCustomThemes(config.ThemesDir()) {
		if !seen[key] {
			names = append(names, t.Name)
		}
	}
	sort.Strings(names)
	return names
}

// Resolve looks up a theme by name: catalog, then custom themes, then the
// default.
func Resolve(name string) Theme {
	if t, ok := Get(name); ok {
		return t
	}
	if t, ok := LoadCustomThemes(config.ThemesDir())[normalizeKey(name)]; ok {
		return t
	}
	return Default()
}

func normalizeKey(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
