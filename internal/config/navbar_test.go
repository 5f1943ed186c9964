package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

func decodeItems(t *testing.T, src string) ([]NavbarItem, error) {
	t.Helper()
	var items []NavbarItem
	err := yaml.Unmarshal([]byte(src), &items)
	return items, err
}

func TestNavbarItemDecodeByType(t *testing.T) {
	items, err := decodeItems(t, `
- type: search
  position: right
- type: doc
  doc_id: frontend/index
  label: 知识库
  position: right
- to: blog
  label: Blog
- type: localeDropdown
  position: Right
- href: https://github.com/chenyuan-new/blogByDocusaurus
  label: GitHub
- type: dropdown
  label: More
  items:
    - href: https://example.com
      label: Example
`)
	require.NoError(t, err)
	require.Len(t, items, 6)

	assert.Equal(t, SearchItem{}, items[0].Spec)
	assert.Equal(t, PositionRight, items[0].Position)
	assert.Equal(t, DocItem{DocID: "frontend/index"}, items[1].Spec)
	assert.Equal(t, "/docs/frontend/index", items[1].Target())
	assert.Equal(t, NavbarBlog, items[2].Kind())
	assert.Equal(t, "/blog", items[2].Target())
	assert.Equal(t, PositionLeft, items[2].Position)
	assert.Equal(t, DropdownItem{Locales: true}, items[3].Spec)
	assert.Equal(t, PositionRight, items[3].Position)
	assert.Equal(t, NavbarLink, items[4].Kind())
	assert.True(t, items[4].External())

	dd, ok := items[5].Spec.(DropdownItem)
	require.True(t, ok)
	require.Len(t, dd.Items, 1)
	assert.Equal(t, "https://example.com", dd.Items[0].Target())
}

func TestNavbarItemRejectsFieldsOfOtherKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"doc with href", "- type: doc\n  doc_id: a\n  href: https://x.io\n  label: A\n", `"href" is not allowed for type doc`},
		{"search with to", "- type: search\n  to: blog\n", `"to" is not allowed for type search`},
		{"unknown type", "- type: sidebar\n  label: S\n", "invalid navbar item type"},
		{"no type no target", "- label: Lonely\n", "needs a type"},
		{"bad position", "- type: search\n  position: center\n", "invalid navbar position"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := decodeItems(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
		})
	}
}

func TestNavbarValidationRequiresKindFields(t *testing.T) {
	tests := []struct {
		name string
		item NavbarItem
		want string
	}{
		{"doc without id", NavbarItem{Label: "D", Position: PositionLeft, Spec: DocItem{}}, "navbar.items[0].doc_id"},
		{"link without href", NavbarItem{Label: "L", Position: PositionLeft, Spec: LinkItem{}}, "navbar.items[0].href"},
		{"link with relative href", NavbarItem{Label: "L", Position: PositionLeft, Spec: LinkItem{Href: "/docs"}}, "http_url"},
		{"blog without to", NavbarItem{Label: "B", Position: PositionLeft, Spec: BlogItem{}}, "navbar.items[0].to"},
		{"empty dropdown", NavbarItem{Label: "M", Position: PositionLeft, Spec: DropdownItem{}}, "needs locales or items"},
		{"missing label", NavbarItem{Position: PositionLeft, Spec: DocItem{DocID: "x"}}, "label is required"},
		{"missing spec", NavbarItem{Label: "X", Position: PositionLeft}, "has no type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Navbar.Items = []NavbarItem{tt.item}
			err := ValidateConfig(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		})
	}
}

func TestNavbarNestedValidation(t *testing.T) {
	cfg := Default()
	cfg.Navbar.Items = []NavbarItem{{
		Label:    "More",
		Position: PositionLeft,
		Spec:     DropdownItem{Items: []NavbarItem{{Label: "Bad", Position: PositionLeft, Spec: LinkItem{}}}},
	}}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "navbar.items[0].items[0].href")
}

func TestNavbarItemMarshalRoundTrip(t *testing.T) {
	orig := Default().Navbar.Items
	data, err := yaml.Marshal(orig)
	require.NoError(t, err)
	assert.Contains(t, string(data), "type: localeDropdown")

	var back []NavbarItem
	require.NoError(t, yaml.Unmarshal(data, &back))
	assert.Equal(t, orig, back)
}
