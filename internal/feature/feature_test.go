package feature

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/chenyuan/blogsite/internal/i18n"
)

func newCatalog(t *testing.T) *i18n.Catalog {
	t.Helper()
	c, err := i18n.NewCatalog([]string{"zh-Hans", "en"})
	require.NoError(t, err)
	c.Register(Messages(Defaults())...)
	return c
}

func TestRenderDefaultsInOrder(t *testing.T) {
	c := newCatalog(t)
	cards := Render(Localize(Defaults(), c.For("zh-Hans")))

	require.Len(t, cards, 3)
	assert.Equal(t, "支持我", cards[0].Title)
	assert.Equal(t, "关于我", cards[1].Title)
	assert.Equal(t, "联系我", cards[2].Title)
	for _, card := range cards {
		assert.Equal(t, 4, card.ColumnSpan)
	}
	assert.Equal(t, "An always to learn FE", string(cards[1].Description))
	assert.Equal(t, "微信: emNjOTExMTEw", string(cards[2].Description))
}

func TestRenderUsesLocaleWithFallback(t *testing.T) {
	c := newCatalog(t)
	c.Set("en", "homepage.features.about.title", "About me")

	cards := Render(Localize(Defaults(), c.For("en")))
	require.Len(t, cards, 3)
	assert.Equal(t, "支持我", cards[0].Title)
	assert.Equal(t, "About me", cards[1].Title)
}

func TestLiteralKeyedTranslations(t *testing.T) {
	c := newCatalog(t)
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "en"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en", "code.json"), []byte(`{
  "支持我": {"message": "Support me"},
  "请给我一个⭐️": {"message": "Please give me a ⭐️"},
  "微信": {"message": "WeChat"}
}`), 0o600))
	_, err := c.LoadDir(dir)
	require.NoError(t, err)

	cards := Render(Localize(Defaults(), c.For("en")))
	require.Len(t, cards, 3)
	assert.Equal(t, "Support me", cards[0].Title)
	assert.True(t, strings.HasPrefix(string(cards[0].Description), "Please give me a ⭐️ <a "), string(cards[0].Description))
	assert.Contains(t, string(cards[0].Description), `href="https://github.com/chenyuan-new/blogByDocusaurus"`)
	assert.Equal(t, "An always to learn FE", string(cards[1].Description))
	assert.Equal(t, "WeChat: emNjOTExMTEw", string(cards[2].Description))
}

func TestMessagesSkipFixedText(t *testing.T) {
	keys := make([]i18n.Key, 0, 5)
	for _, m := range Messages(Defaults()) {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []i18n.Key{
		"homepage.features.support.title",
		"homepage.features.support.cta",
		"homepage.features.about.title",
		"homepage.features.contact.title",
		"homepage.features.contact.wechat",
	}, keys)
}

func TestRenderEmptyList(t *testing.T) {
	assert.Empty(t, Render(nil))
	assert.Empty(t, Render([]Item{}))

	html, err := RenderHTML(nil)
	require.NoError(t, err)
	assert.Contains(t, string(html), `<section class="features">`)
	assert.NotContains(t, string(html), "col--4")
}

func TestRenderIsIdempotent(t *testing.T) {
	items := Localize(Defaults(), newCatalog(t).For("zh-Hans"))
	assert.Equal(t, Render(items), Render(items))

	a, err := RenderHTML(items)
	require.NoError(t, err)
	b, err := RenderHTML(items)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestColumnSpanIndependentOfLength(t *testing.T) {
	for _, n := range []int{1, 2, 5, 7} {
		items := make([]Item, n)
		for i := range items {
			items[i] = Item{Title: "t", Description: "d"}
		}
		for _, card := range Render(items) {
			assert.Equal(t, ColumnSpan, card.ColumnSpan)
		}
	}
}

func TestRenderHTMLMarkup(t *testing.T) {
	items := Localize(Defaults(), newCatalog(t).For("zh-Hans"))
	html, err := RenderHTML(items)
	require.NoError(t, err)
	out := string(html)

	assert.Equal(t, 3, strings.Count(out, `<div class="col col--4">`))
	assert.Less(t, strings.Index(out, "支持我"), strings.Index(out, "关于我"))
	assert.Less(t, strings.Index(out, "关于我"), strings.Index(out, "联系我"))
	assert.Contains(t, out, `<div class="text--center padding-horiz--md">`)
}

func TestInlineExternalLinks(t *testing.T) {
	out := string(Inline("请给我一个⭐️ [GitHub](https://github.com/chenyuan-new/blogByDocusaurus)"))
	assert.True(t, strings.HasPrefix(out, "请给我一个⭐️ <a "), out)
	assert.Contains(t, out, `href="https://github.com/chenyuan-new/blogByDocusaurus"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)
	assert.NotContains(t, out, "<p>")
}

func TestInlineInternalLinkAndRawHTML(t *testing.T) {
	out := string(Inline("see [docs](/docs/intro) <b>bold</b>"))
	assert.Contains(t, out, `<a href="/docs/intro">docs</a>`)
	assert.NotContains(t, out, "target=")
	assert.NotContains(t, out, "<b>")
}
