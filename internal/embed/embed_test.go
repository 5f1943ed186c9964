package embed

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v63/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
	ferrors "git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

func TestDefaultBindingIsValid(t *testing.T) {
	require.NoError(t, DefaultBinding().Validate())
}

func TestBindingValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Binding)
		want   string
	}{
		{"bad repo", func(b *Binding) { b.Repo = "no-slash" }, "Repo"},
		{"bad repo id", func(b *Binding) { b.RepoID = "kgDOIl9CDQ" }, "RepoID"},
		{"bad category id", func(b *Binding) { b.CategoryID = "abc" }, "CategoryID"},
		{"unknown mapping", func(b *Binding) { b.Mapping = "hash" }, "Mapping"},
		{"specific without term", func(b *Binding) { b.Mapping = MappingSpecific; b.Term = "" }, "term is required"},
		{"number not numeric", func(b *Binding) { b.Mapping = MappingNumber; b.Term = "abc" }, "positive discussion number"},
		{"bad input position", func(b *Binding) { b.InputPosition = "middle" }, "InputPosition"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := DefaultBinding()
			tt.mutate(&b)
			err := b.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
		})
	}
}

func TestPropsThemeEqualsColorMode(t *testing.T) {
	for _, mode := range colormode.All {
		p := NewProps(DefaultBinding(), mode, "zh-Hans")
		assert.Equal(t, mode, p.Theme)
	}
}

func TestPropsFollowModeSwitchBetweenRenders(t *testing.T) {
	b := DefaultBinding()
	first := NewProps(b, colormode.Dark, "en")
	second := NewProps(b, colormode.Light, "en")
	assert.Equal(t, colormode.Dark, first.Theme)
	assert.Equal(t, colormode.Light, second.Theme)

	html1, err := Render(first)
	require.NoError(t, err)
	html2, err := Render(second)
	require.NoError(t, err)
	assert.Contains(t, string(html1), `data-theme="dark"`)
	assert.Contains(t, string(html2), `data-theme="light"`)
}

func TestWidgetLang(t *testing.T) {
	assert.Equal(t, "zh-CN", WidgetLang("zh-Hans"))
	assert.Equal(t, "en", WidgetLang("en-US"))
	assert.Equal(t, "en", WidgetLang("not a tag!"))

	b := DefaultBinding()
	b.Lang = ""
	assert.Equal(t, "zh-CN", NewProps(b, colormode.Light, "zh-Hans").Lang)
	assert.Equal(t, "en", NewProps(DefaultBinding(), colormode.Light, "zh-Hans").Lang)
}

func TestResolveTerm(t *testing.T) {
	page := Page{Title: "Hooks | Chen yuan", OGTitle: "Hooks", URL: "https://example.com/docs/react/hooks#x", Path: "/docs/react/hooks.html"}
	b := DefaultBinding()

	tests := []struct {
		mapping Mapping
		page    Page
		want    string
	}{
		{MappingPathname, page, "docs/react/hooks"},
		{MappingPathname, Page{Path: "/"}, "index"},
		{MappingURL, page, "https://example.com/docs/react/hooks"},
		{MappingTitle, page, "Hooks | Chen yuan"},
		{MappingOGTitle, page, "Hooks"},
		{MappingOGTitle, Page{Title: "Only title"}, "Only title"},
		{MappingOGTitle, Page{}, b.Term},
		{MappingSpecific, page, b.Term},
	}
	for _, tt := range tests {
		b.Mapping = tt.mapping
		assert.Equal(t, tt.want, ResolveTerm(b, tt.page), "mapping %s", tt.mapping)
	}
}

func TestWidgetURLCarriesContractParams(t *testing.T) {
	p := NewProps(DefaultBinding(), colormode.Dark, "en")
	raw := WidgetURL(p, Page{OGTitle: "Hooks", URL: "https://example.com/docs/hooks"})

	require.True(t, strings.HasPrefix(raw, "https://giscus.app/en/widget?"))
	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "chenyuan-new/blogByDocusaurus", q.Get("repo"))
	assert.Equal(t, "R_kgDOIl9CDQ", q.Get("repoId"))
	assert.Equal(t, "Announcements", q.Get("category"))
	assert.Equal(t, "DIC_kwDOIl9CDc4CdbwV", q.Get("categoryId"))
	assert.Equal(t, "og:title", q.Get("mapping"))
	assert.Equal(t, "Hooks", q.Get("term"))
	assert.Equal(t, "dark", q.Get("theme"))
	assert.Equal(t, "en", q.Get("lang"))
	assert.Equal(t, "1", q.Get("reactionsEnabled"))
	assert.Equal(t, "0", q.Get("strict"))
}

func TestWidgetURLWithoutLang(t *testing.T) {
	p := Props{Binding: DefaultBinding(), Theme: colormode.Light}
	raw := WidgetURL(p, Page{Title: "Intro"})
	require.True(t, strings.HasPrefix(raw, "https://giscus.app/en/widget?"), raw)
	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "en", u.Query().Get("lang"))
}

func TestBindingYAMLReactionsDefault(t *testing.T) {
	const doc = `
repo: owner/site
repo_id: R_1
category: General
category_id: DIC_1
mapping: pathname
`
	var b Binding
	require.NoError(t, yaml.Unmarshal([]byte(doc), &b))
	assert.True(t, b.ReactionsEnabled)
	assert.Equal(t, "owner/site", b.Repo)
	assert.Equal(t, MappingPathname, b.Mapping)

	require.NoError(t, yaml.Unmarshal([]byte(doc+"reactions_enabled: false\n"), &b))
	assert.False(t, b.ReactionsEnabled)
}

func TestWidgetURLNumberMapping(t *testing.T) {
	b := DefaultBinding()
	b.Mapping = MappingNumber
	b.Term = "42"
	u, err := url.Parse(WidgetURL(NewProps(b, colormode.Light, "en"), Page{}))
	require.NoError(t, err)
	assert.Equal(t, "42", u.Query().Get("number"))
	assert.Empty(t, u.Query().Get("term"))
}

func TestRenderIsDeterministicAndEscaped(t *testing.T) {
	b := DefaultBinding()
	b.Term = `"><script>alert(1)</script>`
	p := NewProps(b, colormode.Light, "en")

	a, err := Render(p)
	require.NoError(t, err)
	c, err := Render(p)
	require.NoError(t, err)
	assert.Equal(t, a, c)
	assert.NotContains(t, string(a), "<script>alert(1)")
	assert.Contains(t, string(a), `src="https://giscus.app/client.js"`)
	assert.Contains(t, string(a), `data-input-position="bottom"`)
	assert.Contains(t, string(a), "giscus-frame")
}

type fakeRepos struct {
	repo *github.Repository
	resp *github.Response
	err  error
}

func (f fakeRepos) Get(_ context.Context, _, _ string) (*github.Repository, *github.Response, error) {
	return f.repo, f.resp, f.err
}

func TestVerify(t *testing.T) {
	b := DefaultBinding()

	t.Run("match", func(t *testing.T) {
		v := NewVerifierWith(fakeRepos{repo: &github.Repository{NodeID: github.String("R_kgDOIl9CDQ"), HasDiscussions: github.Bool(true)}})
		r, err := v.Verify(context.Background(), b)
		require.NoError(t, err)
		assert.True(t, r.OK())
	})

	t.Run("id mismatch", func(t *testing.T) {
		v := NewVerifierWith(fakeRepos{repo: &github.Repository{NodeID: github.String("R_other"), HasDiscussions: github.Bool(true)}})
		r, err := v.Verify(context.Background(), b)
		require.NoError(t, err)
		assert.False(t, r.OK())
		assert.Contains(t, r.Problems[0], "does not match")
	})

	t.Run("discussions disabled", func(t *testing.T) {
		v := NewVerifierWith(fakeRepos{repo: &github.Repository{NodeID: github.String("R_kgDOIl9CDQ")}})
		r, err := v.Verify(context.Background(), b)
		require.NoError(t, err)
		assert.Equal(t, []string{"discussions are disabled on the repository"}, r.Problems)
	})

	t.Run("not found", func(t *testing.T) {
		resp := &github.Response{Response: &http.Response{StatusCode: http.StatusNotFound}}
		v := NewVerifierWith(fakeRepos{resp: resp, err: errors.New("404")})
		_, err := v.Verify(context.Background(), b)
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryEmbed))
	})

	t.Run("network", func(t *testing.T) {
		v := NewVerifierWith(fakeRepos{err: errors.New("dial tcp")})
		_, err := v.Verify(context.Background(), b)
		require.Error(t, err)
		assert.True(t, ferrors.HasCategory(err, ferrors.CategoryNetwork))
	})
}
