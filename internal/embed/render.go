package embed

import (
	"bytes"
	"html/template"

	"git.home.luguber.info/chenyuan/blogsite/internal/foundation/errors"
)

// ClientScript is the loader the widget is mounted with.
const ClientScript = Endpoint + "/client.js"

var widgetTemplate = template.Must(template.New("giscus").Parse(`<div class="giscus-container">
<script src="{{ .Src }}"
  data-repo="{{ .P.Repo }}"
  data-repo-id="{{ .P.RepoID }}"
  data-category="{{ .P.Category }}"
  data-category-id="{{ .P.CategoryID }}"
  data-mapping="{{ .P.Mapping }}"
{{- if .P.Term }}
  data-term="{{ .P.Term }}"
{{- end }}
  data-strict="{{ .Strict }}"
  data-reactions-enabled="{{ .Reactions }}"
  data-emit-metadata="{{ .Metadata }}"
  data-input-position="{{ .Input }}"
  data-theme="{{ .P.Theme }}"
  data-lang="{{ .P.Lang }}"
{{- if .P.Loading }}
  data-loading="{{ .P.Loading }}"
{{- end }}
  crossorigin="anonymous"
  async></script>
</div>
<script>{{ .Sync }}</script>
`))

// themeSyncJS forwards theme toggles to the mounted frame. The page root carries
// class "dark" while dark mode is active.
const themeSyncJS = `(function () {
  var root = document.documentElement;
  function mode() { return root.classList.contains("dark") ? "dark" : "light"; }
  function push() {
    var frame = document.querySelector("iframe.giscus-frame");
    if (!frame) return;
    frame.contentWindow.postMessage({ giscus: { setConfig: { theme: mode() } } }, "https://giscus.app");
  }
  new MutationObserver(push).observe(root, { attributes: true, attributeFilter: ["class"] });
  window.addEventListener("message", function (e) {
    if (e.origin === "https://giscus.app") push();
  }, { once: true });
})();`

// Render produces the widget markup for props. The same props always yield the
// same markup.
func Render(p Props) (template.HTML, error) {
	var buf bytes.Buffer
	data := struct {
		Src       string
		P         Props
		Strict    string
		Reactions string
		Metadata  string
		Input     string
		Sync      template.JS
	}{
		Src:       ClientScript,
		P:         p,
		Strict:    boolFlag(p.Strict),
		Reactions: boolFlag(p.ReactionsEnabled),
		Metadata:  boolFlag(p.EmitMetadata),
		Input:     inputPosition(p.InputPosition),
		Sync:      template.JS(themeSyncJS), // #nosec G203 -- constant script
	}
	if err := widgetTemplate.Execute(&buf, data); err != nil {
		return "", errors.WrapError(err, errors.CategoryRender, "render comment widget").Build()
	}
	return template.HTML(buf.String()), nil // #nosec G203 -- produced by html/template
}
