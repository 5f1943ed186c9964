package embed

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"golang.org/x/text/language"

	"git.home.luguber.info/chenyuan/blogsite/internal/colormode"
)

// Endpoint is the discussion service origin.
const Endpoint = "https://giscus.app"

// Props is what the widget receives on a render.
type Props struct {
	Binding
	Theme colormode.Mode
	Lang  string
}

// NewProps combines the binding with the current color mode. Theme always equals
// mode; Lang is the binding's override or, when empty, the widget language closest
// to locale.
func NewProps(b Binding, mode colormode.Mode, locale string) Props {
	lang := b.Lang
	if lang == "" {
		lang = WidgetLang(locale)
	}
	return Props{Binding: b, Theme: mode, Lang: lang}
}

// widgetLangs are the interface languages the widget ships.
var widgetLangs = []string{
	"en", "ar", "be", "bg", "ca", "cs", "da", "de", "eo", "es", "fa", "fr", "he", "hu",
	"id", "it", "ja", "ko", "nl", "pl", "pt", "ro", "ru", "th", "tr", "uk", "uz", "vi",
	"zh-CN", "zh-HK", "zh-TW",
}

var widgetMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(widgetLangs))
	for i, l := range widgetLangs {
		tags[i] = language.MustParse(l)
	}
	return language.NewMatcher(tags)
}()

// WidgetLang maps a site locale onto a language the widget supports, defaulting to "en".
func WidgetLang(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return "en"
	}
	_, idx, conf := widgetMatcher.Match(tag)
	if conf == language.No {
		return "en"
	}
	return widgetLangs[idx]
}

// Page is the subset of page metadata the mapping strategies read.
type Page struct {
	Title   string
	OGTitle string
	URL     string
	Path    string
}

var extPattern = regexp.MustCompile(`\.\w+$`)

// ResolveTerm returns the discussion search term for page under the binding's
// mapping. An empty page attribute falls back to the binding's Term.
func ResolveTerm(b Binding, p Page) string {
	var term string
	switch b.Mapping {
	case MappingPathname:
		term = pathnameTerm(p.Path)
	case MappingURL:
		term = urlTerm(p.URL)
	case MappingTitle:
		term = p.Title
	case MappingOGTitle:
		term = p.OGTitle
		if term == "" {
			term = p.Title
		}
	case MappingSpecific, MappingNumber:
		term = b.Term
	}
	if term == "" {
		return b.Term
	}
	return term
}

func pathnameTerm(p string) string {
	if p == "" {
		return ""
	}
	clean := path.Clean("/" + p)
	if len(clean) < 2 {
		return "index"
	}
	return extPattern.ReplaceAllString(clean[1:], "")
}

func urlTerm(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	u.Fragment = ""
	return u.String()
}

// WidgetURL builds the frame URL the widget requests for page.
func WidgetURL(p Props, page Page) string {
	lang := strings.TrimSpace(p.Lang)
	if lang == "" {
		lang = WidgetLang("")
	}
	q := url.Values{}
	q.Set("origin", page.URL)
	q.Set("session", "")
	q.Set("theme", string(p.Theme))
	q.Set("lang", lang)
	q.Set("repo", p.Repo)
	q.Set("repoId", p.RepoID)
	q.Set("category", p.Category)
	q.Set("categoryId", p.CategoryID)
	q.Set("mapping", string(p.Mapping))
	q.Set("strict", boolFlag(p.Strict))
	q.Set("reactionsEnabled", boolFlag(p.ReactionsEnabled))
	q.Set("emitMetadata", boolFlag(p.EmitMetadata))
	q.Set("inputPosition", inputPosition(p.InputPosition))
	q.Set("backLink", page.URL)
	if p.Mapping == MappingNumber {
		q.Set("number", p.Term)
	} else {
		q.Set("term", ResolveTerm(p.Binding, page))
	}
	return Endpoint + "/" + lang + "/widget?" + q.Encode()
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func inputPosition(s string) string {
	if s == "" {
		return "bottom"
	}
	return s
}
