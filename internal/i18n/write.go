package i18n

import (
	"encoding/json"
	"os"
	"path/filepath"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

type codeEntry struct {
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

// WriteTranslations writes <dir>/<locale>/code.json for every locale except
// the default. Existing translations are kept; untranslated keys are seeded
// with the default-locale literal. It returns the files written.
func (c *Catalog) WriteTranslations(dir string) ([]string, error) {
	msgs := c.Messages()
	var written []string
	for _, locale := range c.Locales()[1:] {
		entries := make(map[string]codeEntry, len(msgs))
		for _, m := range msgs {
			text, ok := c.Lookup(locale, m.Key)
			if !ok {
				text = m.Default
			}
			entries[string(m.Key)] = codeEntry{Message: text, Description: m.Description}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return written, errors.WrapError(err, errors.CategoryInternal, "encode translations").Build()
		}
		path := filepath.Join(dir, locale, "code.json")
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return written, errors.FileSystemError("create translation directory").WithCause(err).WithContext("path", path).Build()
		}
		// #nosec G306 -- translations are committed alongside the content
		if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
			return written, errors.FileSystemError("write translation file").WithCause(err).WithContext("path", path).Build()
		}
		written = append(written, path)
	}
	return written, nil
}
