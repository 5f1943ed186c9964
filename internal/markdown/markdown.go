// Package markdown scans Markdown sources for link destinations. Rendering is
// left to Hugo; this is analysis only.
package markdown

import (
	"bytes"
	"sort"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// StripFrontMatter returns body without its leading front matter block (YAML
// "---", TOML "+++" or JSON) and the number of lines removed. Documents with
// malformed front matter are returned unchanged.
func StripFrontMatter(doc []byte) ([]byte, int) {
	var meta map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(doc), &meta)
	if err != nil || len(body) > len(doc) {
		return doc, 0
	}
	consumed := doc[:len(doc)-len(body)]
	return body, bytes.Count(consumed, []byte("\n"))
}

// ExtractLinks parses a Markdown document and returns its link destinations in
// source order, reference definitions last.
func ExtractLinks(doc []byte) []Link {
	body, offset := StripFrontMatter(doc)

	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		line := offset + lineOf(n, body)
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body)), Line: line})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Line: line})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Line: line})
		}
		return gmast.WalkContinue, nil
	})

	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}
	return links
}

// lineOf finds the line of the nearest block ancestor. Inline nodes carry no
// position of their own.
func lineOf(n gmast.Node, source []byte) int {
	for p := n; p != nil; p = p.Parent() {
		if p.Type() != gmast.TypeBlock {
			continue
		}
		lines := p.Lines()
		if lines == nil || lines.Len() == 0 {
			continue
		}
		return bytes.Count(source[:lines.At(0).Start], []byte("\n")) + 1
	}
	return 0
}
