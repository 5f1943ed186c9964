package feature

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// ColumnSpan is the grid width of every card out of twelve columns.
const ColumnSpan = 4

// Card is the rendered form of one feature.
type Card struct {
	Title       string
	Description template.HTML
	ColumnSpan  int
}

// Render maps items to cards one-to-one in input order. It has no side effects
// and an empty input yields no cards.
func Render(items []Item) []Card {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, Card{
			Title:       it.Title,
			Description: Inline(it.Description),
			ColumnSpan:  ColumnSpan,
		})
	}
	return cards
}

var sectionTemplate = template.Must(template.New("features").Parse(`<section class="features">
  <div class="container">
    <div class="row">
{{- range . }}
      <div class="col col--{{ .ColumnSpan }}">
        <div class="text--center padding-horiz--md">
          <h3>{{ .Title }}</h3>
          <p>{{ .Description }}</p>
        </div>
      </div>
{{- end }}
    </div>
  </div>
</section>
`))

// RenderHTML renders items as the homepage features section.
func RenderHTML(items []Item) (template.HTML, error) {
	var buf bytes.Buffer
	if err := sectionTemplate.Execute(&buf, Render(items)); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "render features section").Build()
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- produced by html/template
}
