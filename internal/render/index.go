package render

import (
	"html/template"
	"strings"
)

// IndexEntry is one row on the index page.
type IndexEntry struct {
	Name    string // display name, the document's filename stem
	DocHref string // root-relative link to the rendered document
	PDFHref string // root-relative link to the companion PDF, empty when absent
}

// noFilesPlaceholder is shown when the scan finds no documents at all.
const noFilesPlaceholder = "No files found. Run ./html2md.sh first."

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>Articles</title>
<style>
    body { max-width: 800px; margin: 2rem auto; padding: 0 2rem; font-family: -apple-system, sans-serif; }
    h1 { color: #333; }
    ul { list-style: none; padding: 0; }
    li { margin: 1rem 0; display: flex; gap: 1rem; align-items: center; }
    a { color: #0066cc; text-decoration: none; font-size: 1.1rem; }
    a:hover { text-decoration: underline; }
    .pdf { font-size: 0.9rem; background: #f0f0f0; padding: 4px 8px; border-radius: 4px; }
</style>
</head><body>
<h1>Articles</h1>
<ul>
{{- if .Entries}}
{{- range .Entries}}
<li><a href="/{{.DocHref}}">{{.Name}}</a>{{if .PDFHref}} <a href="/{{.PDFHref}}" class="pdf">📄 PDF</a>{{end}}</li>
{{- end}}
{{- else}}
<li>{{.Placeholder}}</li>
{{- end}}
</ul>
{{- if .Reload}}
{{.Reload}}
{{- end}}
</body></html>`))

type indexData struct {
	Entries     []IndexEntry
	Placeholder string
	Reload      template.HTML
}

// RenderIndex builds the root listing page. Entries appear in the order
// given. An empty set produces a placeholder line pointing the user at the
// generation step instead of an empty list.
func (r *Renderer) RenderIndex(entries []IndexEntry) string {
	var sb strings.Builder
	_ = indexTemplate.Execute(&sb, indexData{
		Entries:     entries,
		Placeholder: noFilesPlaceholder,
		Reload:      r.reload(),
	})
	return sb.String()
}
