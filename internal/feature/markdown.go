package feature

import (
	"bytes"
	"html/template"
	"net/url"
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// externalLinks marks links leaving the site so they open in a new tab.
type externalLinks struct{}

func (externalLinks) Transform(doc *gmast.Document, reader text.Reader, _ parser.Context) {
	source := reader.Source()
	_ = gmast.Walk(doc, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		var dest []byte
		switch node := n.(type) {
		case *gmast.Link:
			dest = node.Destination
		case *gmast.AutoLink:
			if node.AutoLinkType != gmast.AutoLinkURL {
				return gmast.WalkContinue, nil
			}
			dest = node.URL(source)
		default:
			return gmast.WalkContinue, nil
		}
		if isExternal(string(dest)) {
			n.SetAttributeString("target", []byte("_blank"))
			n.SetAttributeString("rel", []byte("noopener noreferrer"))
		}
		return gmast.WalkContinue, nil
	})
}

func isExternal(dest string) bool {
	u, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

var inlineMarkdown = goldmark.New(
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(externalLinks{}, 100)),
	),
)

// Inline renders a one-paragraph Markdown fragment without the enclosing
// paragraph element. Raw HTML in the source is not passed through.
func Inline(src string) template.HTML {
	var buf bytes.Buffer
	if err := inlineMarkdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src)) // #nosec G203 -- escaped
	}
	out := strings.TrimSpace(buf.String())
	if strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") && strings.Count(out, "<p>") == 1 {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return template.HTML(out) // #nosec G203 -- goldmark output with unsafe HTML disabled
}
