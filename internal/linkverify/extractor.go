package linkverify

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// pageLink is an internal reference found in a rendered page.
type pageLink struct {
	Ref string
	Tag string
}

// refAttr is the attribute that carries a reference, per element.
var refAttr = map[atom.Atom]string{
	atom.A:      "href",
	atom.Link:   "href",
	atom.Img:    "src",
	atom.Script: "src",
	atom.Source: "src",
	atom.Video:  "src",
	atom.Audio:  "src",
}

// pageLinks returns the internal references of the page at p worth checking
// on disk.
func pageLinks(p string, site *url.URL) ([]pageLink, error) {
	f, err := os.Open(filepath.Clean(p))
	if err != nil {
		return nil, errors.FileSystemError("open rendered page").WithCause(err).WithContext("path", p).Build()
	}
	defer func() { _ = f.Close() }()
	return scanPage(f, site)
}

// scanPage tokenizes HTML and collects references that stay on site.
func scanPage(r io.Reader, site *url.URL) ([]pageLink, error) {
	var links []pageLink
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if err := z.Err(); err != io.EOF {
				return nil, errors.LinkError("read rendered page").WithCause(err).Build()
			}
			return links, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			want, ok := refAttr[tok.DataAtom]
			if !ok {
				continue
			}
			for _, a := range tok.Attr {
				if a.Key == want && checkable(a.Val, site) {
					links = append(links, pageLink{Ref: a.Val, Tag: tok.Data})
				}
			}
		}
	}
}

// checkable is true for same-site references to pages or assets Hugo always
// writes. Feeds, sitemaps and search indexes depend on theme features and are
// left alone.
func checkable(ref string, site *url.URL) bool {
	ref = strings.TrimSpace(ref)
	if ref == "" || strings.HasPrefix(ref, "#") {
		return false
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "", "http", "https":
	default: // mailto:, tel:, javascript:, data:
		return false
	}
	if u.Host != "" && (site == nil || u.Host != site.Host) {
		return false
	}
	switch path.Ext(u.Path) {
	case ".xml", ".json", ".txt":
		return false
	}
	return !strings.Contains(u.Path, "sitemap")
}
