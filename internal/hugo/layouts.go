package hugo

import (
	"context"
	"fmt"
	"strings"
)

const featuresShortcode = `{{- partial "blogsite/features.html" .Page -}}
`

const commentsHook = `{{- partial "blogsite/comments.html" . -}}
`

func stageLayouts(_ context.Context, bs *BuildState) error {
	g := bs.Generator
	root := bs.Root()
	if err := writePublicFile(root, "layouts/shortcodes/features.html", []byte(featuresShortcode)); err != nil {
		return err
	}
	t := g.activeTheme()
	if t == nil {
		return nil
	}
	f := t.Features()
	if f.CommentsHook != "" && g.config.Comments != nil {
		if err := writePublicFile(root, f.CommentsHook, []byte(commentsHook)); err != nil {
			return err
		}
	}
	if f.HeadHook != "" {
		if err := writePublicFile(root, f.HeadHook, []byte(g.headHook())); err != nil {
			return err
		}
	}
	return nil
}

// headHook carries settings the theme has no params for: the favicon, the
// announcement bar colors and navbar behavior flags read by custom CSS.
func (g *Generator) headHook() string {
	cfg := g.config
	var b strings.Builder
	if cfg.Favicon != "" {
		fmt.Fprintf(&b, "<link rel=\"icon\" href=\"{{ %q | relURL }}\">\n", cfg.Favicon)
	}
	var vars []string
	if bar := cfg.AnnouncementBar; bar != nil {
		if bar.BackgroundColor != "" {
			vars = append(vars, "--blogsite-banner-bg: "+bar.BackgroundColor)
		}
		if bar.TextColor != "" {
			vars = append(vars, "--blogsite-banner-fg: "+bar.TextColor)
		}
	}
	if len(vars) > 0 {
		fmt.Fprintf(&b, "<style>:root { %s; }</style>\n", strings.Join(vars, "; "))
	}
	if cfg.Navbar.HideOnScroll {
		b.WriteString("<script>document.documentElement.dataset.navbarHideOnScroll = \"true\";</script>\n")
	}
	if cfg.Docs.SidebarHideable {
		b.WriteString("<script>document.documentElement.dataset.sidebarHideable = \"true\";</script>\n")
	}
	return b.String()
}
