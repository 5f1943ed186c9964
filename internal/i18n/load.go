package i18n

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// LoadDir reads translation files for every configured locale from dir:
//
//	<dir>/<locale>/code.json   {"key": {"message": "...", "description": "..."}}
//	<dir>/<locale>.yaml        key: value  (or key: {other: value})
//
// Both files are optional. Entries named after a literal default message resolve
// to the key that declared it. Returns the number of translations loaded.
func (c *Catalog) LoadDir(dir string) (int, error) {
	total := 0
	for _, locale := range c.Locales() {
		for _, path := range []string{
			filepath.Join(dir, locale, "code.json"),
			filepath.Join(dir, locale+".yaml"),
		} {
			n, err := c.loadFile(locale, path)
			if err != nil {
				return total, err
			}
			total += n
		}
	}
	return total, nil
}

func (c *Catalog) loadFile(locale, path string) (int, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if os.IsNotExist(err) {
		return 0, nil
	}
	if err != nil {
		return 0, errors.WrapError(err, errors.CategoryI18n, "read translation file").WithContext("path", path).Build()
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return 0, errors.WrapError(err, errors.CategoryI18n, "parse translation file").Fatal().WithContext("path", path).Build()
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	loaded := 0
	for _, name := range names {
		text, err := entryText(raw[name])
		if err != nil {
			return loaded, errors.WrapError(err, errors.CategoryI18n, "invalid translation entry").
				Fatal().WithContext("path", path).WithContext("entry", name).Build()
		}
		key, known := c.ResolveKey(name)
		if !known {
			slog.Debug("Translation for unregistered key", logfields.Locale(locale), logfields.MessageKey(name))
		}
		c.Set(locale, key, text)
		loaded++
	}
	slog.Debug("Loaded translations", logfields.Locale(locale), logfields.Path(path), logfields.Count(loaded))
	return loaded, nil
}

func entryText(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case map[string]any:
		for _, field := range []string{"message", "other", "translation"} {
			if s, ok := t[field].(string); ok {
				return s, nil
			}
		}
		return "", fmt.Errorf("entry has no message/other/translation field")
	default:
		return "", fmt.Errorf("unsupported entry type %T", v)
	}
}
