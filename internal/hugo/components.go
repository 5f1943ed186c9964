package hugo

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
	"git.home.luguber.info/chenyuan/blogsite/internal/feature"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Pre-rendered component partials live under this directory, one file per
// locale plus a dispatcher choosing by the page language.
const componentDir = "layouts/partials/blogsite"

func stageComponents(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	root := bs.Root()
	cfg := g.config
	def := hugoLang(cfg.DefaultLocale())
	mode := cfg.ColorMode.Initial()

	written := 0
	for _, locale := range cfg.I18n.Locales {
		l := bs.Catalog.For(locale)
		lang := hugoLang(locale)

		html, err := feature.RenderHTML(feature.Localize(g.features, l))
		if err != nil {
			return ErrComponentRender.Wrap(err).WithContext("component", "features").WithContext("locale", locale).Build()
		}
		if err := writePublicFile(root, componentDir+"/features/"+lang+".html", hugoSafe(html)); err != nil {
			return err
		}
		written++

		if cfg.Comments != nil {
			html, err := embed.Render(embed.NewProps(*cfg.Comments, mode, locale))
			if err != nil {
				return ErrComponentRender.Wrap(err).WithContext("component", "comments").WithContext("locale", locale).Build()
			}
			if err := writePublicFile(root, componentDir+"/comments/"+lang+".html", hugoSafe(html)); err != nil {
				return err
			}
			written++
		}

		if err := g.writeHomePage(root, locale, l.T(keySiteTitle), l.T(keySiteTagline)); err != nil {
			return err
		}
	}

	if err := writePublicFile(root, componentDir+"/features.html", []byte(dispatcher("features", def, ""))); err != nil {
		return err
	}
	comments := ""
	if cfg.Comments != nil {
		comments = dispatcher("comments", def, "ne .Params.comments false")
	}
	if err := writePublicFile(root, componentDir+"/comments.html", []byte(comments)); err != nil {
		return err
	}

	bs.Report.Components = written
	slog.Debug("Rendered components", logfields.BuildID(bs.Report.BuildID), logfields.Count(written))
	return nil
}

// dispatcher selects the per-language partial, falling back to the default
// language. cond, when set, guards the whole partial.
func dispatcher(component, defaultLang, cond string) string {
	var b strings.Builder
	if cond != "" {
		fmt.Fprintf(&b, "{{- if %s -}}\n", cond)
	}
	fmt.Fprintf(&b, "{{- $p := printf \"blogsite/%s/%%s.html\" site.Language.Lang -}}\n", component)
	fmt.Fprintf(&b, "{{- if not (templates.Exists (printf \"partials/%%s\" $p)) }}{{ $p = \"blogsite/%s/%s.html\" }}{{ end -}}\n", component, defaultLang)
	b.WriteString("{{- partial $p . -}}\n")
	if cond != "" {
		b.WriteString("{{- end -}}\n")
	}
	return b.String()
}

// hugoSafe turns pre-rendered HTML into template source: Hugo parses partials
// as templates, so literal action delimiters are emitted through an action.
func hugoSafe(html template.HTML) []byte {
	return []byte(strings.ReplaceAll(string(html), "{{", `{{ "{{" }}`))
}

// writeHomePage writes the landing page of one locale. Its body is the
// features shortcode.
func (g *Generator) writeHomePage(root, locale, title, description string) error {
	fm := map[string]any{
		"title":       title,
		"description": description,
		"comments":    false,
	}
	if t := g.activeTheme(); t != nil && t.Features().HomeLayout != "" {
		fm["layout"] = t.Features().HomeLayout
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return err
	}
	name := "content/_index.md"
	if locale != g.config.DefaultLocale() {
		name = "content/_index." + hugoLang(locale) + ".md"
	}
	page := "---\n" + string(data) + "---\n\n{{< features >}}\n"
	return writePublicFile(root, name, []byte(page))
}
