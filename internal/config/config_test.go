package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	"git.home.luguber.info/chenyuan/blogsite/internal/embed"
	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

const minimalYAML = `
title: Test Site
url: https://example.com/
i18n:
  locales: [en]
navbar:
  items:
    - type: doc
      doc_id: intro
      label: Docs
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "blogsite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadMinimalAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "/", cfg.BaseURL)
	assert.Equal(t, "en", cfg.DefaultLocale())
	assert.Equal(t, LinkPolicyThrow, cfg.OnBrokenLinks)
	assert.Equal(t, LinkPolicyWarn, cfg.OnBrokenMarkdownLinks)
	assert.Equal(t, "hextra", cfg.Hugo.Theme)
	assert.Equal(t, "hugo", cfg.Hugo.Binary)
	assert.Equal(t, "./site", cfg.Output.Directory)
	assert.True(t, cfg.Output.Clean)
	assert.Equal(t, "docs", cfg.Docs.Path)
	assert.Equal(t, "blog", cfg.Blog.RouteBasePath)
	assert.Equal(t, "github", cfg.Prism.Theme)
	assert.Equal(t, "dracula", cfg.Prism.DarkTheme)
	assert.Equal(t, "Test Site", cfg.Navbar.Title)
	assert.Nil(t, cfg.Comments)
	require.Len(t, cfg.Navbar.Items, 1)
	assert.Equal(t, "/docs/intro", cfg.Navbar.Items[0].Target())
}

func TestLoadEmptyLocaleListFails(t *testing.T) {
	for _, locales := range []string{"[]", "~"} {
		_, err := Parse([]byte("title: T\nurl: https://example.com/\ni18n:\n  locales: " + locales + "\n"))
		require.Error(t, err)
		assert.True(t, errors.HasCategory(err, errors.CategoryValidation))
		assert.Contains(t, err.Error(), "at least one locale")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("BLOGSITE_TEST_ALGOLIA_KEY", "secret-key")
	cfg, err := Parse([]byte(minimalYAML + `
algolia:
  app_id: APP
  api_key: ${BLOGSITE_TEST_ALGOLIA_KEY}
  index_name: idx
`))
	require.NoError(t, err)
	require.NotNil(t, cfg.Algolia)
	assert.Equal(t, "secret-key", cfg.Algolia.APIKey)
}

func TestDefaultLocaleMovesToFront(t *testing.T) {
	cfg, err := Parse([]byte(`
title: T
url: https://example.com/
i18n:
  default_locale: zh-Hans
  locales: [en, zh-Hans, en]
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zh-Hans", "en"}, cfg.I18n.Locales)
	assert.Equal(t, "zh-Hans", cfg.DefaultLocale())
}

func TestInvalidLocaleTag(t *testing.T) {
	_, err := Parse([]byte("title: T\nurl: https://example.com/\ni18n:\n  locales: [\"not a tag\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "i18n.locales[0]")
}

func TestValidationUsesYAMLFieldNames(t *testing.T) {
	_, err := Parse([]byte("url: https://example.com/\ni18n:\n  locales: [en]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title failed validation for tag 'required'")
}

func TestLinkPolicyNormalizationAndRejection(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "on_broken_links: ERROR\non_broken_markdown_links: Ignore\n"))
	require.NoError(t, err)
	assert.Equal(t, LinkPolicyThrow, cfg.OnBrokenLinks)
	assert.Equal(t, LinkPolicyIgnore, cfg.OnBrokenMarkdownLinks)

	_, err = Parse([]byte(minimalYAML + "on_broken_links: explode\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "on_broken_links")
}

func TestColorModeNormalized(t *testing.T) {
	cfg, err := Parse([]byte(minimalYAML + "color_mode:\n  default_mode: DARK\n"))
	require.NoError(t, err)
	assert.Equal(t, colormode.Dark, cfg.ColorMode.DefaultMode)

	_, err = Parse([]byte(minimalYAML + "color_mode:\n  default_mode: sepia\n"))
	require.Error(t, err)
}

func TestCommentsBindingValidated(t *testing.T) {
	_, err := Parse([]byte(minimalYAML + `
comments:
  repo: owner/repo
  repo_id: wrong
  category: General
  category_id: DIC_x
  mapping: pathname
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RepoID")

	cfg, err := Parse([]byte(minimalYAML + `
comments:
  repo: owner/repo
  repo_id: R_abc
  category: General
  category_id: DIC_x
  mapping: PathName
`))
	require.NoError(t, err)
	assert.Equal(t, embed.MappingPathname, cfg.Comments.Mapping)
}

func TestDefaultMatchesCompiledSite(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "Chen yuan", cfg.Title)
	assert.Equal(t, []string{"zh-Hans", "en"}, cfg.I18n.Locales)
	assert.Equal(t, "dracula", cfg.Prism.Theme)
	assert.Equal(t, "github", cfg.Prism.DarkTheme)
	assert.True(t, cfg.ColorMode.RespectPrefersColorScheme)
	require.NotNil(t, cfg.Algolia)
	assert.Equal(t, "chen-yuan-vercel", cfg.Algolia.IndexName)
	require.NotNil(t, cfg.Comments)
	assert.Equal(t, embed.DefaultBinding(), *cfg.Comments)

	kinds := make([]NavbarKind, 0, len(cfg.Navbar.Items))
	for _, it := range cfg.Navbar.Items {
		kinds = append(kinds, it.Kind())
		assert.Equal(t, PositionRight, it.Position)
	}
	assert.Equal(t, []NavbarKind{NavbarSearch, NavbarDoc, NavbarBlog, NavbarDropdown, NavbarLink}, kinds)
}

func TestInitWritesLoadableConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogsite.yaml")
	require.NoError(t, Init(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Snapshot(), cfg.Snapshot())

	err = Init(path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
	require.NoError(t, Init(path, true))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Default()
	c := orig.Clone()
	c.I18n.Locales[0] = "fr"
	c.Navbar.Items[0].Label = "changed"
	c.Algolia.APIKey = "x"
	c.Comments.Term = "x"

	assert.Equal(t, "zh-Hans", orig.I18n.Locales[0])
	assert.Empty(t, orig.Navbar.Items[0].Label)
	assert.Equal(t, "e6cfcacca2f69ee4177b2c74f1fa7376", orig.Algolia.APIKey)
	assert.Equal(t, embed.DefaultBinding().Term, orig.Comments.Term)
}

func TestSnapshot(t *testing.T) {
	a := Default()
	b := Default()
	assert.Equal(t, a.Snapshot(), b.Snapshot())

	b.Logging.Level = LogLevelDebug
	b.Output.Directory = "elsewhere"
	assert.Equal(t, a.Snapshot(), b.Snapshot(), "runtime-only fields must not change the snapshot")

	b.Tagline = "changed"
	assert.NotEqual(t, a.Snapshot(), b.Snapshot())

	c := Default()
	c.I18n.Locales = []string{"en", "zh-Hans"}
	assert.NotEqual(t, a.Snapshot(), c.Snapshot(), "locale order selects the default")
}
