// Package i18n provides the localized string tables shipped with the bot.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// BaseLanguage is the fallback for missing languages and keys.
const BaseLanguage = "en"

// languageNameKey holds each locale's own display name.
const languageNameKey = "Language"

// Localizer resolves message keys to translated strings. Lookups never
// fail: a missing language falls back to the base language, a missing
// key to the base table, and ultimately to the key itself.
type Localizer struct {
	tables map[string]map[string]string
}

func New() (*Localizer, error) {
	entries, err := fs.ReadDir(localesFS, "locales")
	if err != nil {
		return nil, fmt.Errorf("read locales dir: %w", err)
	}

	tables := make(map[string]map[string]string, len(entries))

	for _, entry := range entries {
		lang := strings.TrimSuffix(entry.Name(), ".yaml")

		raw, err := localesFS.ReadFile(path.Join("locales", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", entry.Name(), err)
		}

		table := make(map[string]string)
		if err := yaml.Unmarshal(raw, &table); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", entry.Name(), err)
		}

		tables[lang] = table
	}

	if _, ok := tables[BaseLanguage]; !ok {
		return nil, fmt.Errorf("missing base locale: %s", BaseLanguage)
	}

	return &Localizer{tables: tables}, nil
}

// Lookup returns the translation of key for lang.
func (l *Localizer) Lookup(key, lang string) string {
	if table, ok := l.tables[lang]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}

	if msg, ok := l.tables[BaseLanguage][key]; ok {
		return msg
	}

	return key
}

// Languages maps each available language code to its localized display
// name, for the language selection keyboard.
func (l *Localizer) Languages() map[string]string {
	out := make(map[string]string, len(l.tables))

	for code, table := range l.tables {
		name := table[languageNameKey]
		if name == "" {
			name = code
		}

		out[code] = name
	}

	return out
}
