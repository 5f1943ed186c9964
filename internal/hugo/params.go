package hugo

import (
	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/version"
)

// siteParams builds hugo.yaml params in three phases: blogsite's own keys,
// theme defaults (which never overwrite), then hugo.params from the config,
// deep-merged last.
func (g *Generator) siteParams(report *BuildReport) map[string]any {
	cfg := g.config
	params := map[string]any{
		"description":      cfg.Tagline,
		"tagline":          cfg.Tagline,
		"organizationName": cfg.OrganizationName,
		"projectName":      cfg.ProjectName,
		"colorMode": map[string]any{
			"defaultMode":               string(cfg.ColorMode.Initial()),
			"disableSwitch":             cfg.ColorMode.DisableSwitch,
			"respectPrefersColorScheme": cfg.ColorMode.RespectPrefersColorScheme,
		},
		"codeTheme": map[string]any{
			"light": cfg.Prism.Theme,
			"dark":  cfg.Prism.DarkTheme,
		},
		"prism": map[string]any{
			"defaultLanguage":     cfg.Prism.DefaultLanguage,
			"additionalLanguages": stringsOrEmpty(cfg.Prism.AdditionalLanguages),
		},
		"docs": map[string]any{
			"routeBasePath":      cfg.Docs.RouteBasePath,
			"sidebarPath":        cfg.Docs.SidebarPath,
			"sidebarHideable":    cfg.Docs.SidebarHideable,
			"editURL":            cfg.Docs.EditURL,
			"showLastUpdateTime": cfg.Docs.ShowLastUpdateTime,
		},
		"blog": map[string]any{
			"routeBasePath":   cfg.Blog.RouteBasePath,
			"editURL":         cfg.Blog.EditURL,
			"showReadingTime": cfg.Blog.ShowReadingTime,
		},
		"navbarTitle":    cfg.Navbar.Title,
		"hideOnScroll":   cfg.Navbar.HideOnScroll,
		"localeDropdown": hasLocaleDropdown(cfg.Navbar.Items),
		"plugins":        stringsOrEmpty(cfg.Plugins),
		"presets":        stringsOrEmpty(cfg.Presets),
		"blogsite": map[string]any{
			"version":  version.Version,
			"buildID":  report.BuildID,
			"commit":   report.Commit,
			"snapshot": report.Snapshot,
		},
	}
	if cfg.Favicon != "" {
		params["favicon"] = cfg.Favicon
	}
	if cfg.Footer.Style != "" || cfg.Footer.Copyright != "" || len(cfg.Footer.Columns) > 0 {
		params["footerLinks"] = footerParams(cfg.Footer)
	}
	if bar := cfg.AnnouncementBar; bar != nil {
		params["announcementBar"] = map[string]any{
			"id":              bar.ID,
			"content":         bar.Content,
			"backgroundColor": bar.BackgroundColor,
			"textColor":       bar.TextColor,
			"isCloseable":     bar.IsCloseable,
		}
	}
	if a := cfg.Algolia; a != nil {
		params["algolia"] = map[string]any{
			"appId":     a.AppID,
			"apiKey":    a.APIKey,
			"indexName": a.IndexName,
		}
	}
	if b := cfg.Comments; b != nil {
		params["giscus"] = map[string]any{
			"repo":             b.Repo,
			"repoId":           b.RepoID,
			"category":         b.Category,
			"categoryId":       b.CategoryID,
			"mapping":          string(b.Mapping),
			"term":             b.Term,
			"strict":           b.Strict,
			"reactionsEnabled": b.ReactionsEnabled,
			"emitMetadata":     b.EmitMetadata,
			"inputPosition":    b.InputPosition,
			"lang":             b.Lang,
			"loading":          b.Loading,
		}
	}

	if t := g.activeTheme(); t != nil {
		t.ApplyParams(g, params)
	}
	mergeParams(params, cfg.Hugo.Params)
	return params
}

func footerParams(f config.FooterConfig) map[string]any {
	cols := make([]map[string]any, 0, len(f.Columns))
	for _, c := range f.Columns {
		links := make([]map[string]any, 0, len(c.Items))
		for _, it := range c.Items {
			link := map[string]any{"label": it.Label}
			if it.Href != "" {
				link["href"] = it.Href
			} else {
				link["to"] = it.To
			}
			links = append(links, link)
		}
		cols = append(cols, map[string]any{"title": c.Title, "items": links})
	}
	return map[string]any{"style": f.Style, "copyright": f.Copyright, "columns": cols}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// mergeParams deep-merges src into dst. Maps merge recursively; slices and
// scalars replace. Maps from src are copied so dst never aliases config values.
func mergeParams(dst, src map[string]any) {
	for k, v := range src {
		mv, ok := v.(map[string]any)
		if !ok {
			dst[k] = v
			continue
		}
		existing, ok := dst[k].(map[string]any)
		if !ok {
			existing = map[string]any{}
			dst[k] = existing
		}
		mergeParams(existing, mv)
	}
}
