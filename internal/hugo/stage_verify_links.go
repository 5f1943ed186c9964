package hugo

import (
	"context"
	"log/slog"
	"path/filepath"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/linkverify"
	"git.home.luguber.info/chenyuan/blogsite/internal/logfields"
)

// stageVerifyLinks applies on_broken_markdown_links to the Markdown sources
// and, when Hugo rendered the site, on_broken_links to the HTML output.
func stageVerifyLinks(ctx context.Context, bs *BuildState) error {
	g := bs.Generator
	cfg := g.config
	checked := false
	var result *StageError

	if cfg.OnBrokenMarkdownLinks != config.LinkPolicyIgnore {
		rep, err := linkverify.CheckMarkdown(ctx, g.markdownDirs()...)
		if err != nil {
			return err
		}
		checked = true
		bs.Report.LinksChecked += rep.LinksChecked
		bs.Report.BrokenLinks = append(bs.Report.BrokenLinks, rep.Broken...)
		result = worse(result, applyLinkPolicy(cfg.OnBrokenMarkdownLinks, ErrBrokenSourceLinks, rep.Broken))
	}

	if bs.Report.StaticRendered && cfg.OnBrokenLinks != config.LinkPolicyIgnore {
		rep, err := linkverify.CheckSite(ctx, filepath.Join(bs.Root(), "public"), g.SiteURL())
		if err != nil {
			return err
		}
		checked = true
		bs.Report.LinksChecked += rep.LinksChecked
		bs.Report.BrokenLinks = append(bs.Report.BrokenLinks, rep.Broken...)
		result = worse(result, applyLinkPolicy(cfg.OnBrokenLinks, ErrBrokenLinks, rep.Broken))
	}

	if !checked {
		return errStageSkipped
	}
	if result != nil {
		return result
	}
	return nil
}

// markdownDirs are the default-locale and translated content sources.
func (g *Generator) markdownDirs() []string {
	cfg := g.config
	dirs := []string{g.sourcePath(cfg.Docs.Path), g.sourcePath(cfg.Blog.Path)}
	for _, locale := range cfg.I18n.Locales[1:] {
		dirs = append(dirs,
			g.sourcePath(filepath.Join(cfg.I18n.Dir, locale, filepath.FromSlash(docsPluginDir))),
			g.sourcePath(filepath.Join(cfg.I18n.Dir, locale, blogPluginDir)),
		)
	}
	return dirs
}

// applyLinkPolicy logs broken links and turns them into a stage error:
// throw is fatal, warn is a warning, ignore is silent.
func applyLinkPolicy(policy config.LinkPolicy, sentinel *errors.ClassifiedError, broken []linkverify.BrokenLink) *StageError {
	if len(broken) == 0 || policy == config.LinkPolicyIgnore {
		return nil
	}
	for _, b := range broken {
		attrs := []any{logfields.Path(b.File), logfields.URL(b.URL), slog.String("source", string(b.Source))}
		if b.Line > 0 {
			attrs = append(attrs, slog.Int("line", b.Line))
		}
		slog.Warn("Broken link", attrs...)
	}
	err := sentinel.Wrap(nil).
		WithContext("count", len(broken)).
		WithContext("first", broken[0].File+" -> "+broken[0].URL).
		Build()
	if policy == config.LinkPolicyThrow {
		return newFatalStageError(StageVerifyLinks, err)
	}
	return newWarnStageError(StageVerifyLinks, err)
}

func worse(a, b *StageError) *StageError {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Kind == StageErrorFatal && a.Kind != StageErrorFatal:
		return b
	}
	return a
}
