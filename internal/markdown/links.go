package markdown

import (
	"path"
	"strings"
)

// LinkKind is the Markdown construct a link came from.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"
)

// Link is a link destination found in a Markdown source file.
type Link struct {
	Kind        LinkKind
	Destination string
	Line        int // 1-based; 0 when unknown
}

// IsRelativeFile reports whether the destination names another source file
// relative to the current one, e.g. "../guide/intro.md#setup" or
// "./img/a.png". Extensionless destinations such as "guide/intro" are
// route links resolved by the site, not files.
func (l Link) IsRelativeFile() bool {
	d := l.Destination
	if d == "" || d[0] == '#' || d[0] == '/' {
		return false
	}
	if i := strings.IndexAny(d, "#?"); i >= 0 {
		d = d[:i]
	}
	if strings.Contains(d, ":") {
		return false // scheme such as https: or mailto:
	}
	return path.Ext(d) != ""
}
