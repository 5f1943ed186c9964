package linkverify

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
}

func TestScanPageKeepsSameSiteReferences(t *testing.T) {
	doc := `<html><head><link rel="stylesheet" href="/css/site.css"><link rel="alternate" href="/index.xml"></head><body>
<a href="/docs/intro/">Intro</a>
<a href="https://github.com/chenyuan-new">GitHub</a>
<a href="https://blog.example.com/blog/">Self</a>
<a href="#top">Top</a>
<a href="mailto:me@example.com">Mail</a>
<a href="/sitemap.xml">Sitemap</a>
<img src="img/logo.png" alt="logo"/>
</body></html>`
	site, err := url.Parse("https://blog.example.com/")
	require.NoError(t, err)

	links, err := scanPage(strings.NewReader(doc), site)
	require.NoError(t, err)
	assert.Equal(t, []pageLink{
		{Ref: "/css/site.css", Tag: "link"},
		{Ref: "/docs/intro/", Tag: "a"},
		{Ref: "https://blog.example.com/blog/", Tag: "a"},
		{Ref: "img/logo.png", Tag: "img"},
	}, links)
}

func TestCheckable(t *testing.T) {
	assert.True(t, checkable("/docs/", nil))
	assert.False(t, checkable("/index.xml", nil))
	assert.False(t, checkable("/en/search.json", nil))
	assert.False(t, checkable("https://x.io/", nil))
	assert.False(t, checkable("javascript:void(0)", nil))
}

func TestCheckSite(t *testing.T) {
	public := t.TempDir()
	writeFile(t, public, "index.html", `<a href="/docs/intro/">ok</a><a href="/blog">ok pretty</a><a href="/missing/">broken</a>`)
	writeFile(t, public, "docs/intro/index.html", `<a href="../other/">sibling</a><a href="../../en/">en</a><img src="/img/a.png">`)
	writeFile(t, public, "blog/index.html", `<a href="https://chen.example.com/docs/intro/">abs</a><a href="/index.xml">rss</a>`)
	writeFile(t, public, "en/index.html", `<a href="/">home</a>`)
	writeFile(t, public, "img/a.png", "png")

	report, err := CheckSite(t.Context(), public, "https://chen.example.com/")
	require.NoError(t, err)

	assert.Equal(t, 4, report.FilesScanned)
	require.Len(t, report.Broken, 2)
	assert.Equal(t, BrokenLink{Source: SourceHTML, File: "docs/intro/index.html", URL: "../other/", Tag: "a"}, report.Broken[0])
	assert.Equal(t, "index.html", report.Broken[1].File)
	assert.Equal(t, "/missing/", report.Broken[1].URL)
}

func TestCheckSiteWithBasePath(t *testing.T) {
	public := t.TempDir()
	writeFile(t, public, "index.html", `<a href="/blog/docs/">ok</a><a href="/other-app/">outside</a><a href="/blog/nope">broken</a>`)
	writeFile(t, public, "docs/index.html", "")

	report, err := CheckSite(t.Context(), public, "https://chen.example.com/blog/")
	require.NoError(t, err)
	require.Len(t, report.Broken, 1)
	assert.Equal(t, "/blog/nope", report.Broken[0].URL)
}

func TestCheckMarkdown(t *testing.T) {
	root := t.TempDir()
	docs := filepath.Join(root, "docs")
	writeFile(t, docs, "intro.md", "---\ntitle: Intro\n---\n\nSee [setup](./guide/setup.md#install).\n\n[gone](./gone.md) and [web](https://example.com).\n")
	writeFile(t, docs, "guide/setup.md", "Back to [intro](../intro.md) and ![img](../img/missing%20file.png).\nThe [route](../intro) form is left to the site.\n")

	report, err := CheckMarkdown(t.Context(), docs, filepath.Join(root, "blog"))
	require.NoError(t, err)

	assert.Equal(t, 2, report.FilesScanned)
	assert.Equal(t, 4, report.LinksChecked)
	require.Len(t, report.Broken, 2)
	assert.Equal(t, "../img/missing%20file.png", report.Broken[0].URL)
	assert.Equal(t, "./gone.md", report.Broken[1].URL)
	assert.Equal(t, 7, report.Broken[1].Line)
	assert.Equal(t, SourceMarkdown, report.Broken[1].Source)
}
