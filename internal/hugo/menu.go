package hugo

import (
	"fmt"
	"net/url"
	"strings"

	"git.home.luguber.info/chenyuan/blogsite/internal/config"
	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
)

// menuEntries maps navbar items onto Hugo's menus.main for one locale. Item
// order becomes weight. The locale dropdown has no menu form in Hugo; themes
// render their own language switcher, so it is exposed as params.localeDropdown.
func menuEntries(cfg *config.Config, items []config.NavbarItem, l i18n.Localizer, parent string) []map[string]any {
	entries := make([]map[string]any, 0, len(items))
	for i, item := range items {
		weight := (i + 1) * 10
		params := map[string]any{}
		if item.Position != "" {
			params["position"] = string(item.Position)
		}
		e := map[string]any{"weight": weight}
		if item.Label != "" {
			e["name"] = l.T(navbarLabelKey(item.Label))
		}
		if parent != "" {
			e["parent"] = parent
		}

		switch spec := item.Spec.(type) {
		case config.SearchItem:
			if item.Label == "" {
				e["name"] = l.T(keySearch)
			}
			params["type"] = "search"
		case config.DocItem:
			e["pageRef"] = docPageRef(cfg, spec.DocID)
		case config.BlogItem:
			if isAbsoluteURL(spec.To) {
				e["url"] = spec.To
			} else {
				e["pageRef"] = "/" + strings.Trim(spec.To, "/")
			}
		case config.LinkItem:
			e["url"] = spec.Href
			if icon := linkIcon(spec.Href); icon != "" {
				params["icon"] = icon
			}
		case config.DropdownItem:
			if spec.Locales {
				continue
			}
			id := fmt.Sprintf("%snav-%d", parentPrefix(parent), i)
			e["identifier"] = id
			if item.Label == "" {
				e["name"] = id
			}
			entries = append(entries, withParams(e, params))
			entries = append(entries, menuEntries(cfg, spec.Items, l, id)...)
			continue
		}
		entries = append(entries, withParams(e, params))
	}
	return entries
}

func withParams(e map[string]any, params map[string]any) map[string]any {
	if len(params) > 0 {
		e["params"] = params
	}
	return e
}

func parentPrefix(parent string) string {
	if parent == "" {
		return ""
	}
	return parent + "-"
}

// docPageRef resolves a doc id against the docs route, e.g. "frontend/index"
// -> "/docs/frontend". Hugo addresses section index pages by their directory.
func docPageRef(cfg *config.Config, docID string) string {
	id := strings.Trim(docID, "/")
	switch {
	case id == "index":
		id = ""
	case strings.HasSuffix(id, "/index"):
		id = strings.TrimSuffix(id, "/index")
	}
	ref := "/" + strings.Trim(cfg.Docs.RouteBasePath, "/")
	if id != "" {
		ref += "/" + id
	}
	return ref
}

func hasLocaleDropdown(items []config.NavbarItem) bool {
	for _, item := range items {
		if dd, ok := item.Spec.(config.DropdownItem); ok && (dd.Locales || hasLocaleDropdown(dd.Items)) {
			return true
		}
	}
	return false
}

func isAbsoluteURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// linkIcon picks a theme icon for well-known hosts.
func linkIcon(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	switch strings.TrimPrefix(u.Hostname(), "www.") {
	case "github.com":
		return "github"
	case "gitlab.com":
		return "gitlab"
	case "x.com", "twitter.com":
		return "x-twitter"
	}
	return ""
}
