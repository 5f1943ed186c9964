package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractLinks(t *testing.T) {
	src := []byte(`---
title: Intro
---

# Intro

See [setup](./setup.md#install) and ![logo](../img/logo.png).

Visit <https://example.com> or [ref][r].

[r]: other.md
`)
	links := ExtractLinks(src)
	require.Len(t, links, 5)

	assert.Equal(t, Link{Kind: LinkKindInline, Destination: "./setup.md#install", Line: 7}, links[0])
	assert.Equal(t, LinkKindImage, links[1].Kind)
	assert.Equal(t, "../img/logo.png", links[1].Destination)
	assert.Equal(t, Link{Kind: LinkKindAuto, Destination: "https://example.com", Line: 9}, links[2])
	assert.Equal(t, "other.md", links[3].Destination)
	assert.Equal(t, LinkKindReferenceDefinition, links[4].Kind)
}

func TestStripFrontMatter(t *testing.T) {
	body, n := StripFrontMatter([]byte("---\na: 1\n---\nbody\n"))
	assert.Equal(t, "body\n", string(body))
	assert.Equal(t, 3, n)

	body, n = StripFrontMatter([]byte("no front matter\n"))
	assert.Equal(t, "no front matter\n", string(body))
	assert.Zero(t, n)

	body, n = StripFrontMatter([]byte("+++\ntitle = \"x\"\n+++\nbody\n"))
	assert.Equal(t, "body\n", string(body))
	assert.Equal(t, 3, n)

	body, n = StripFrontMatter([]byte("---\n: [broken\n---\nbody\n"))
	assert.Equal(t, "---\n: [broken\n---\nbody\n", string(body))
	assert.Zero(t, n)
}

func TestIsRelativeFile(t *testing.T) {
	tests := map[string]bool{
		"setup.md":            true,
		"../guide/a.md#x":     true,
		"./img.png":           true,
		"frontend/intro":      false,
		"../guide/":           false,
		"./basics?x=1":        false,
		"a.mdx?x=1":           true,
		"#anchor":             false,
		"/docs/intro":         false,
		"https://example.com": false,
		"mailto:a@b.c":        false,
		"":                    false,
	}
	for dest, want := range tests {
		assert.Equal(t, want, Link{Destination: dest}.IsRelativeFile(), dest)
	}
}
