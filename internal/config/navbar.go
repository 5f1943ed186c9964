package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/normalization"
)

// NavbarKind discriminates navbar items.
type NavbarKind string

const (
	NavbarDoc      NavbarKind = "doc"
	NavbarBlog     NavbarKind = "blog"
	NavbarSearch   NavbarKind = "search"
	NavbarDropdown NavbarKind = "dropdown"
	NavbarLink     NavbarKind = "link"
)

// kindLocaleDropdown is accepted on input and decodes to a dropdown listing locales.
const kindLocaleDropdown NavbarKind = "localeDropdown"

var navbarKindNormalizer = normalization.NewNormalizer("navbar item type", map[string]NavbarKind{
	"doc":            NavbarDoc,
	"blog":           NavbarBlog,
	"search":         NavbarSearch,
	"dropdown":       NavbarDropdown,
	"link":           NavbarLink,
	"localeDropdown": kindLocaleDropdown,
}, NavbarLink)

// Position places an item on one side of the navbar.
type Position string

const (
	PositionLeft  Position = "left"
	PositionRight Position = "right"
)

var positionNormalizer = normalization.NewNormalizer("navbar position", map[string]Position{
	"left":  PositionLeft,
	"right": PositionRight,
}, PositionLeft)

// NavbarSpec is the kind-specific part of a navbar item. It is implemented by
// DocItem, BlogItem, SearchItem, DropdownItem and LinkItem only.
type NavbarSpec interface {
	Kind() NavbarKind
	isNavbarSpec()
}

// DocItem links to a documentation page by id.
type DocItem struct {
	DocID string `yaml:"doc_id" validate:"required"`
}

// BlogItem links to a route inside the site, usually the blog.
type BlogItem struct {
	To string `yaml:"to" validate:"required"`
}

// SearchItem renders the search box.
type SearchItem struct{}

// DropdownItem either lists the site locales or nests child items.
type DropdownItem struct {
	Locales bool         `yaml:"locales,omitempty"`
	Items   []NavbarItem `yaml:"items,omitempty" validate:"-"`
}

// LinkItem points outside the site.
type LinkItem struct {
	Href string `yaml:"href" validate:"required,http_url"`
}

func (DocItem) Kind() NavbarKind      { return NavbarDoc }
func (BlogItem) Kind() NavbarKind     { return NavbarBlog }
func (SearchItem) Kind() NavbarKind   { return NavbarSearch }
func (DropdownItem) Kind() NavbarKind { return NavbarDropdown }
func (LinkItem) Kind() NavbarKind     { return NavbarLink }

func (DocItem) isNavbarSpec()      {}
func (BlogItem) isNavbarSpec()     {}
func (SearchItem) isNavbarSpec()   {}
func (DropdownItem) isNavbarSpec() {}
func (LinkItem) isNavbarSpec()     {}

// NavbarItem is one navbar entry.
type NavbarItem struct {
	Label    string
	Position Position
	Spec     NavbarSpec
}

// Kind returns the item's kind, or "" for an item without a spec.
func (n NavbarItem) Kind() NavbarKind {
	if n.Spec == nil {
		return ""
	}
	return n.Spec.Kind()
}

// Target is the URL the item navigates to relative to the site root.
// Search and dropdown items have no target.
func (n NavbarItem) Target() string {
	switch s := n.Spec.(type) {
	case DocItem:
		return "/docs/" + strings.TrimPrefix(s.DocID, "/")
	case BlogItem:
		if strings.HasPrefix(s.To, "http://") || strings.HasPrefix(s.To, "https://") {
			return s.To
		}
		return "/" + strings.TrimPrefix(s.To, "/")
	case LinkItem:
		return s.Href
	}
	return ""
}

// External reports whether the item leaves the site.
func (n NavbarItem) External() bool {
	_, ok := n.Spec.(LinkItem)
	return ok
}

type rawNavbarItem struct {
	Type     string       `yaml:"type,omitempty"`
	Label    string       `yaml:"label,omitempty"`
	Position string       `yaml:"position,omitempty"`
	DocID    string       `yaml:"doc_id,omitempty"`
	To       string       `yaml:"to,omitempty"`
	Href     string       `yaml:"href,omitempty"`
	Locales  bool         `yaml:"locales,omitempty"`
	Items    []NavbarItem `yaml:"items,omitempty"`
}

// UnmarshalYAML decodes the flat YAML form and selects the spec by "type".
// Without a type the kind is inferred from href, to or doc_id in that order.
// Fields that do not belong to the selected kind are rejected.
func (n *NavbarItem) UnmarshalYAML(value *yaml.Node) error {
	var raw rawNavbarItem
	if err := value.Decode(&raw); err != nil {
		return err
	}

	kind, err := raw.kind()
	if err != nil {
		return navbarError(value, err.Error())
	}
	pos, err := positionNormalizer.Parse(raw.Position)
	if err != nil {
		return navbarError(value, err.Error())
	}

	present := raw.presentFields()
	allowed := map[NavbarKind][]string{
		NavbarDoc:          {"doc_id"},
		NavbarBlog:         {"to"},
		NavbarSearch:       {},
		NavbarDropdown:     {"items", "locales"},
		kindLocaleDropdown: {},
		NavbarLink:         {"href"},
	}[kind]
	for _, f := range present {
		if !contains(allowed, f) {
			return navbarError(value, fmt.Sprintf("field %q is not allowed for type %s", f, kind))
		}
	}

	n.Label = raw.Label
	n.Position = pos
	switch kind {
	case NavbarDoc:
		n.Spec = DocItem{DocID: raw.DocID}
	case NavbarBlog:
		n.Spec = BlogItem{To: raw.To}
	case NavbarSearch:
		n.Spec = SearchItem{}
	case NavbarDropdown:
		n.Spec = DropdownItem{Locales: raw.Locales, Items: raw.Items}
	case kindLocaleDropdown:
		n.Spec = DropdownItem{Locales: true}
	case NavbarLink:
		n.Spec = LinkItem{Href: raw.Href}
	}
	return nil
}

// MarshalYAML writes the flat form with an explicit type.
func (n NavbarItem) MarshalYAML() (any, error) {
	raw := rawNavbarItem{Label: n.Label, Position: string(n.Position)}
	switch s := n.Spec.(type) {
	case DocItem:
		raw.Type, raw.DocID = string(NavbarDoc), s.DocID
	case BlogItem:
		raw.Type, raw.To = string(NavbarBlog), s.To
	case SearchItem:
		raw.Type = string(NavbarSearch)
	case DropdownItem:
		if s.Locales && len(s.Items) == 0 {
			raw.Type = string(kindLocaleDropdown)
		} else {
			raw.Type, raw.Locales, raw.Items = string(NavbarDropdown), s.Locales, s.Items
		}
	case LinkItem:
		raw.Type, raw.Href = string(NavbarLink), s.Href
	default:
		return nil, fmt.Errorf("navbar item %q has no type", n.Label)
	}
	return raw, nil
}

func (r rawNavbarItem) kind() (NavbarKind, error) {
	if strings.TrimSpace(r.Type) != "" {
		return navbarKindNormalizer.Parse(r.Type)
	}
	switch {
	case r.Href != "":
		return NavbarLink, nil
	case r.To != "":
		return NavbarBlog, nil
	case r.DocID != "":
		return NavbarDoc, nil
	}
	return "", fmt.Errorf("navbar item needs a type or one of href, to, doc_id")
}

func (r rawNavbarItem) presentFields() []string {
	var out []string
	if r.DocID != "" {
		out = append(out, "doc_id")
	}
	if r.To != "" {
		out = append(out, "to")
	}
	if r.Href != "" {
		out = append(out, "href")
	}
	if r.Locales {
		out = append(out, "locales")
	}
	if len(r.Items) > 0 {
		out = append(out, "items")
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func navbarError(node *yaml.Node, msg string) error {
	return errors.ConfigError("navbar: "+msg).WithContext("line", node.Line).Build()
}
