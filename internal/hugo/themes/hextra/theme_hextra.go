// Package hextra configures the Hextra Hugo theme.
package hextra

import th "git.home.luguber.info/chenyuan/blogsite/internal/hugo/theme"

// Name is the value of hugo.theme that selects this theme.
const Name = "hextra"

type Theme struct{}

func (Theme) Name() string { return Name }

func (Theme) Features() th.Features {
	return th.Features{
		Name:            Name,
		ModulePath:      "github.com/imfing/hextra",
		ModuleVersion:   "v0.11.0",
		CommentsHook:    "layouts/partials/components/comments.html",
		HeadHook:        "layouts/partials/custom/head-end.html",
		CustomCSSTarget: "assets/css/custom.css",
		HomeLayout:      "hextra-home",
	}
}

// ApplyParams fills Hextra's params from the site config. Keys already present
// are left alone so hugo.params overrides keep working.
func (Theme) ApplyParams(ctx th.ParamContext, params map[string]any) {
	cfg := ctx.Config()

	setDefault(params, "theme", map[string]any{
		"default":       cfg.ColorMode.HugoThemeDefault(),
		"displayToggle": !cfg.ColorMode.DisableSwitch,
	})

	navbar := map[string]any{
		"displayTitle": true,
		"displayLogo":  cfg.Navbar.Logo != "",
		"width":        "normal",
	}
	if cfg.Navbar.Logo != "" {
		navbar["logo"] = map[string]any{"path": cfg.Navbar.Logo, "dark": cfg.Navbar.Logo}
	}
	setDefault(params, "navbar", navbar)

	// Hextra ships its own search; Algolia credentials stay under params.algolia.
	setDefault(params, "search", map[string]any{
		"enable": true,
		"type":   "flexsearch",
		"flexsearch": map[string]any{
			"index":    "content",
			"tokenize": "forward",
		},
	})

	if cfg.Docs.EditURL != "" {
		setDefault(params, "editURL", map[string]any{
			"enable": true,
			"base":   joinURL(cfg.Docs.EditURL, cfg.Docs.Path),
		})
	}
	if cfg.Docs.ShowLastUpdateTime {
		setDefault(params, "displayUpdatedDate", true)
		setDefault(params, "dateFormat", "2006-01-02")
	}

	if bar := cfg.AnnouncementBar; bar != nil {
		setDefault(params, "banner", map[string]any{"key": bar.ID, "message": bar.Content})
	}

	footer := map[string]any{"displayPoweredBy": false, "displayCopyright": cfg.Footer.Copyright != ""}
	setDefault(params, "footer", footer)

	// The comment partial is replaced; enabling it only makes Hextra call the hook.
	setDefault(params, "comments", map[string]any{"enable": cfg.Comments != nil, "type": "giscus"})
	setDefault(params, "page", map[string]any{"width": "normal"})
}

func setDefault(params map[string]any, key string, v any) {
	if _, ok := params[key]; !ok {
		params[key] = v
	}
}

func joinURL(base, p string) string {
	if p == "" {
		return base
	}
	if base != "" && base[len(base)-1] != '/' {
		base += "/"
	}
	return base + p
}

func init() { th.Register(Theme{}) }

var _ th.Theme = Theme{}
