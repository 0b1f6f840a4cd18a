package render

import (
	"html/template"
	"strings"
)

// reloadScript subscribes to the server's event stream and reloads the page
// whenever a document changes on disk.
const reloadScript = `<script>new EventSource("/events").addEventListener("reload", () => location.reload());</script>`

// pageTemplate wraps a rendered body in the article chrome: title, inline
// styling, and a nav link back to the index.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}}</title>
    <style>
        body {
            max-width: 800px;
            margin: 0 auto;
            padding: 2rem;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
            line-height: 1.6;
            color: #333;
            background: #fafafa;
        }
        h1, h2, h3, h4, h5, h6 { color: #111; margin-top: 1.5em; }
        a { color: #0066cc; }
        code { background: #f0f0f0; padding: 0.2em 0.4em; border-radius: 3px; font-size: 0.9em; }
        img { max-width: 100%; height: auto; }
        blockquote { border-left: 4px solid #ddd; margin-left: 0; padding-left: 1rem; color: #666; }
        ul, ol { padding-left: 2rem; }
        li { margin: 0.5em 0; }
        .nav { margin-bottom: 2rem; padding-bottom: 1rem; border-bottom: 1px solid #ddd; }
        .nav a { margin-right: 1rem; }
    </style>
</head>
<body>
    <nav class="nav"><a href="/">← Home</a></nav>
    {{.Body}}
{{- if .Reload}}
    {{.Reload}}
{{- end}}
</body>
</html>`))

type pageData struct {
	Title  string
	Body   template.HTML
	Reload template.HTML
}

// page fills the article chrome. The body is pre-built HTML from the
// substitution pipeline and is injected verbatim; the title is escaped by the
// template engine.
func (r *Renderer) page(title, body string) string {
	var sb strings.Builder
	_ = pageTemplate.Execute(&sb, pageData{
		Title:  title,
		Body:   template.HTML(body),
		Reload: r.reload(),
	})
	return sb.String()
}

func (r *Renderer) reload() template.HTML {
	if !r.liveReload {
		return ""
	}
	return reloadScript
}
