package hugo

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// Docusaurus keeps translated docs and posts under these plugin directories.
const (
	docsPluginDir = "docusaurus-plugin-content-docs/current"
	blogPluginDir = "docusaurus-plugin-content-blog"
)

// mounts returns the module mounts for the project. Declaring any content,
// static or assets mount drops Hugo's default for that component, so the
// project-local directories are mounted explicitly. Sources outside the
// project are relative to the output dir; the staging dir is its sibling.
func (g *Generator) mounts() []map[string]any {
	cfg := g.config
	out := []map[string]any{
		{"source": "content", "target": "content"},
		{"source": "assets", "target": "assets"},
	}
	add := func(src, target, lang string) {
		abs := g.sourcePath(src)
		if abs == "" {
			return
		}
		if _, err := os.Stat(abs); err != nil {
			slog.Debug("Skipping missing mount source", logfields.Path(abs))
			return
		}
		m := map[string]any{"source": g.relToOutput(abs), "target": target}
		if lang != "" {
			m["lang"] = hugoLang(lang)
		}
		out = append(out, m)
	}

	def := cfg.DefaultLocale()
	docsTarget := "content/" + strings.Trim(cfg.Docs.RouteBasePath, "/")
	blogTarget := "content/" + strings.Trim(cfg.Blog.RouteBasePath, "/")
	add(cfg.Docs.Path, docsTarget, def)
	add(cfg.Blog.Path, blogTarget, def)
	for _, locale := range cfg.I18n.Locales {
		if locale == def {
			continue
		}
		add(filepath.Join(cfg.I18n.Dir, locale, filepath.FromSlash(docsPluginDir)), docsTarget, locale)
		add(filepath.Join(cfg.I18n.Dir, locale, blogPluginDir), blogTarget, locale)
	}
	add(cfg.Theme.StaticDir, "static", "")
	if t := g.activeTheme(); t != nil && cfg.Theme.CustomCSS != "" {
		if target := t.Features().CustomCSSTarget; target != "" {
			add(cfg.Theme.CustomCSS, target, "")
		}
	}
	return out
}

func (g *Generator) relToOutput(abs string) string {
	from, err := filepath.Abs(g.outputDir)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	to, err := filepath.Abs(abs)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return filepath.ToSlash(to)
	}
	return filepath.ToSlash(rel)
}

// goModule is the module path of the generated project, derived from the
// site host ("chen-yuan-blog.vercel.app" -> "chen-yuan-blog-vercel-app").
func (g *Generator) goModule() string {
	name := "blogsite-site"
	if u, err := url.Parse(g.config.URL); err == nil && u.Hostname() != "" {
		name = strings.ReplaceAll(u.Hostname(), ".", "-")
	}
	return name
}

// writeGoMod writes the go.mod Hugo Modules needs to resolve the theme import,
// pinning the theme version.
func (g *Generator) writeGoMod(root string) error {
	t := g.activeTheme()
	if t == nil {
		return nil
	}
	f := t.Features()
	content := fmt.Sprintf("module %s\n\ngo 1.21\n", g.goModule())
	if f.ModulePath != "" && f.ModuleVersion != "" {
		content += fmt.Sprintf("\nrequire %s %s // indirect\n", f.ModulePath, f.ModuleVersion)
	}
	return writePublicFile(root, "go.mod", []byte(content))
}
