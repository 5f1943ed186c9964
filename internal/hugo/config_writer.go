package hugo

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	th "git.home.luguber.info/chenyuan/blogsite/internal/hugo/theme"
	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

const hugoConfigFile = "hugo.yaml"

func stageGenerateConfig(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	t := g.activeTheme()
	if t == nil {
		return ErrUnknownTheme.Wrap(nil).
			WithContext("theme", g.config.Hugo.Theme).
			WithContext("known", strings.Join(th.Names(), ",")).
			Build()
	}
	root, err := g.hugoConfig(bs.Catalog, bs.Report)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(root)
	if err != nil {
		return ErrConfigWrite.Wrap(err).Build()
	}
	path := filepath.Join(bs.Root(), hugoConfigFile)
	if err := writePublicFile(bs.Root(), hugoConfigFile, data); err != nil {
		return ErrConfigWrite.Wrap(err).WithContext("path", path).Build()
	}
	if err := g.writeGoMod(bs.Root()); err != nil {
		return ErrConfigWrite.Wrap(err).Build()
	}
	slog.Debug("Generated Hugo configuration", logfields.Path(path))
	return nil
}

// hugoConfig assembles the hugo.yaml document.
func (g *Generator) hugoConfig(cat *i18n.Catalog, report *BuildReport) (map[string]any, error) {
	cfg := g.config
	if cat == nil {
		var err error
		if cat, err = g.buildCatalog(); err != nil {
			return nil, err
		}
	}

	languages := make(map[string]any, len(cfg.I18n.Locales))
	for i, locale := range cfg.I18n.Locales {
		l := cat.For(locale)
		name := cfg.LocaleLabel(locale)
		if name == "" {
			name = cat.LanguageName(locale)
		}
		lang := map[string]any{
			"languageName": name,
			"languageCode": locale,
			"weight":       i + 1,
			"title":        l.T(keySiteTitle),
			"params":       map[string]any{"tagline": l.T(keySiteTagline)},
			"menus":        map[string]any{"main": menuEntries(cfg, cfg.Navbar.Items, l, "")},
		}
		if cfg.I18n.LocaleConfigs[locale].Direction == "rtl" {
			lang["languageDirection"] = "rtl"
		}
		languages[hugoLang(locale)] = lang
	}

	root := map[string]any{
		"title":                          cfg.Title,
		"baseURL":                        g.SiteURL(),
		"defaultContentLanguage":         hugoLang(cfg.DefaultLocale()),
		"defaultContentLanguageInSubdir": false,
		"enableGitInfo":                  cfg.Docs.ShowLastUpdateTime && report.Commit != "",
		"enableRobotsTXT":                true,
		"languages":                      languages,
		"markup": map[string]any{
			"goldmark": map[string]any{"renderer": map[string]any{"unsafe": true}},
			"highlight": map[string]any{
				"style":     chromaStyle(cfg.Prism.Theme),
				"noClasses": false,
				"tabWidth":  4,
			},
		},
		"params": g.siteParams(report),
	}

	module := map[string]any{"mounts": g.mounts()}
	if t := g.activeTheme(); t != nil && t.Features().ModulePath != "" {
		module["imports"] = []map[string]any{{"path": t.Features().ModulePath}}
	}
	root["module"] = module
	return root, nil
}

// prismStyles maps Prism theme names onto the closest Chroma style. Keys are
// lowercased with separators removed.
var prismStyles = map[string]string{
	"github":               "github",
	"dracula":              "dracula",
	"vsdark":               "vs",
	"vslight":              "vs",
	"nightowl":             "native",
	"nightowllight":        "friendly",
	"oceanicnext":          "monokai",
	"okaidia":              "monokai",
	"palenight":            "onedark",
	"onedark":              "onedark",
	"onelight":             "xcode",
	"synthwave84":          "fruity",
	"duotonedark":          "nord",
	"duotonelight":         "paraiso-light",
	"gruvboxmaterialdark":  "gruvbox",
	"gruvboxmateriallight": "gruvbox-light",
}

func chromaStyle(prism string) string {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(prism))
	if s, ok := prismStyles[key]; ok {
		return s
	}
	return strings.ToLower(prism)
}
