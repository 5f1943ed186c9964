package hugo

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/feature"
	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Message keys for site-level strings. Navbar labels use Docusaurus' own
// "item.label.<label>" keys so existing navbar translations carry over.
const (
	keySiteTitle   i18n.Key = "site.title"
	keySiteTagline i18n.Key = "site.tagline"
	keySearch      i18n.Key = "theme.SearchBar.label"
	keyLanguage    i18n.Key = "theme.navbar.localeDropdown.label"
)

func navbarLabelKey(label string) i18n.Key { return i18n.Key("item.label." + label) }

func stageI18n(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	cat, err := g.buildCatalog()
	if err != nil {
		return err
	}
	bs.Catalog = cat

	def := cat.DefaultLocale()
	for _, locale := range cat.Locales() {
		table := cat.Table(locale)
		out := make(map[string]string, len(table))
		for k, v := range table {
			out[string(k)] = v
		}
		data, err := yaml.Marshal(out)
		if err != nil {
			return err
		}
		if err := writePublicFile(bs.Root(), "i18n/"+hugoLang(locale)+".yaml", data); err != nil {
			return ErrConfigWrite.Wrap(err).Build()
		}

		if locale == def {
			continue
		}
		missing := cat.Missing(locale)
		bs.Report.MissingTranslations[locale] = len(missing)
		g.recorder.SetMissingTranslations(locale, len(missing))
		for _, k := range missing {
			slog.Debug("Missing translation", logfields.Locale(locale), logfields.MessageKey(string(k)))
		}
	}
	return nil
}

// buildCatalog registers every message the site renders and loads the
// translation files from the i18n directory.
func (g *Generator) buildCatalog() (*i18n.Catalog, error) {
	cfg := g.config
	cat, err := i18n.NewCatalog(cfg.I18n.Locales)
	if err != nil {
		return nil, err
	}
	cat.Register(
		i18n.Msg(keySiteTitle, cfg.Title),
		i18n.Msg(keySiteTagline, cfg.Tagline),
		i18n.Msg(keySearch, "Search"),
		i18n.Msg(keyLanguage, "Language"),
	)
	cat.Register(navbarMessages(cfg.Navbar.Items)...)
	cat.Register(feature.Messages(g.features)...)

	dir := g.sourcePath(cfg.I18n.Dir)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		slog.Debug("No translation directory", logfields.Path(dir))
		return cat, nil
	}
	n, err := cat.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	slog.Debug("Loaded translations", logfields.Path(filepath.Clean(dir)), logfields.Count(n))
	return cat, nil
}

func navbarMessages(items []config.NavbarItem) []i18n.Message {
	var out []i18n.Message
	for _, item := range items {
		if item.Label != "" {
			out = append(out, i18n.Msg(navbarLabelKey(item.Label), item.Label))
		}
		if dd, ok := item.Spec.(config.DropdownItem); ok {
			out = append(out, navbarMessages(dd.Items)...)
		}
	}
	return out
}

// WriteTranslations seeds the translation files of every non-default locale
// with the messages the site renders.
func (g *Generator) WriteTranslations() ([]string, error) {
	cat, err := g.buildCatalog()
	if err != nil {
		return nil, err
	}
	return cat.WriteTranslations(g.sourcePath(g.config.I18n.Dir))
}
