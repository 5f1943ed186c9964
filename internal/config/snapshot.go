package config

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Snapshot computes a stable hash of the fields that affect generated output.
// Logging, history and output location are left out so changing them does not
// count as a site change. Callers should resolve the config first.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }

	w("title", c.Title)
	w("tagline", c.Tagline)
	w("url", c.URL)
	w("base_url", c.BaseURL)
	w("favicon", c.Favicon)
	w("on_broken_links", string(c.OnBrokenLinks))
	w("on_broken_markdown_links", string(c.OnBrokenMarkdownLinks))
	// Locale order is significant: the first one is the default.
	w("i18n.locales", strings.Join(c.I18n.Locales, ","))
	for _, l := range c.I18n.Locales {
		if lc, ok := c.I18n.LocaleConfigs[l]; ok {
			w("i18n.locale_configs."+l, lc.Label, lc.Direction)
		}
	}
	w("navbar.title", c.Navbar.Title)
	w("navbar.hide_on_scroll", strconv.FormatBool(c.Navbar.HideOnScroll))
	writeItems(w, "navbar.items", c.Navbar.Items)
	for i, col := range c.Footer.Columns {
		for j, l := range col.Items {
			w("footer."+strconv.Itoa(i)+"."+strconv.Itoa(j), col.Title, l.Label, l.To, l.Href)
		}
	}
	w("footer.copyright", c.Footer.Copyright)
	w("prism", c.Prism.Theme, c.Prism.DarkTheme, c.Prism.DefaultLanguage, strings.Join(c.Prism.AdditionalLanguages, ","))
	w("color_mode", string(c.ColorMode.DefaultMode), strconv.FormatBool(c.ColorMode.DisableSwitch), strconv.FormatBool(c.ColorMode.RespectPrefersColorScheme))
	if b := c.AnnouncementBar; b != nil {
		w("announcement_bar", b.ID, b.Content, b.BackgroundColor, b.TextColor, strconv.FormatBool(b.IsCloseable))
	}
	if a := c.Algolia; a != nil {
		w("algolia", a.AppID, a.APIKey, a.IndexName)
	}
	w("docs", c.Docs.Path, c.Docs.RouteBasePath, c.Docs.SidebarPath, c.Docs.EditURL,
		strconv.FormatBool(c.Docs.SidebarHideable), strconv.FormatBool(c.Docs.ShowLastUpdateTime))
	w("blog", c.Blog.Path, c.Blog.RouteBasePath, c.Blog.EditURL, strconv.FormatBool(c.Blog.ShowReadingTime))
	w("theme", c.Theme.CustomCSS, c.Theme.StaticDir)
	w("plugins", strings.Join(c.Plugins, ","))
	w("presets", strings.Join(c.Presets, ","))
	if b := c.Comments; b != nil {
		w("comments", b.Repo, b.RepoID, b.Category, b.CategoryID, string(b.Mapping), b.Term,
			strconv.FormatBool(b.Strict), strconv.FormatBool(b.ReactionsEnabled), strconv.FormatBool(b.EmitMetadata),
			b.InputPosition, b.Lang, b.Loading)
	}
	w("hugo.theme", c.Hugo.Theme)
	w("hugo.params", fmt.Sprint(c.Hugo.Params))
	return hex.EncodeToString(h.Sum(nil))
}

func writeItems(w func(...string), prefix string, items []NavbarItem) {
	for i, it := range items {
		key := prefix + "." + strconv.Itoa(i)
		w(key, string(it.Kind()), it.Label, string(it.Position), it.Target())
		if dd, ok := it.Spec.(DropdownItem); ok {
			w(key+".locales", strconv.FormatBool(dd.Locales))
			writeItems(w, key+".items", dd.Items)
		}
	}
}
