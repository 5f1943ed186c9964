package hugo

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// projectDirs are created in every staged project.
var projectDirs = []string{
	"content",
	"assets",
	"i18n",
	"layouts/partials",
	"layouts/shortcodes",
}

func stagePrepareOutput(_ context.Context, bs *BuildState) error {
	root := bs.Root()
	for _, dir := range projectDirs {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o750); err != nil {
			return ErrConfigWrite.Wrap(err).WithContext("path", filepath.Join(root, dir)).Build()
		}
	}
	return nil
}

// hugoLang is the language key Hugo uses for locale. Hugo lowercases keys.
func hugoLang(locale string) string { return strings.ToLower(locale) }

func writePublicFile(root, rel string, data []byte) error {
	p := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	// #nosec G306 -- generated site files are public
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
