// Package render converts Markdown article text to styled HTML pages.
//
// The conversion is a fixed sequence of text substitutions, not a block-level
// parser. Every stage operates on the output of the previous one, so stage
// order is load-bearing: escaping runs first, images run before links (the
// image syntax contains the link syntax as a substring), and the list cleanup
// runs last. Constructs outside this set (tables, blockquotes, nested lists,
// fenced code blocks) pass through with only HTML escaping applied.
package render

import (
	"regexp"
	"strings"
)

var (
	boldItalicRe     = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe           = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe         = regexp.MustCompile(`\*(.+?)\*`)
	imageRe          = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
	linkRe           = regexp.MustCompile(`\[([^\]]+)\]\(([^)]+)\)`)
	orderedItemRe    = regexp.MustCompile(`^\d+\.\s+(.+)$`)
	codeRe           = regexp.MustCompile("`([^`]+)`")
	paragraphGapRe   = regexp.MustCompile(`\n\n+`)
	emptyParagraphRe = regexp.MustCompile(`<p>\s*</p>`)
)

// Renderer converts Markdown text into complete HTML pages.
type Renderer struct {
	liveReload bool
}

// New creates a Renderer. When liveReload is true, generated pages include a
// script that reloads the browser on server-sent reload events.
func New(liveReload bool) *Renderer {
	return &Renderer{liveReload: liveReload}
}

// Render converts text into a standalone HTML page with the given title.
// It never fails and never touches any state: the same arguments always
// produce the same page.
func (r *Renderer) Render(text, title string) string {
	return r.page(title, Body(text))
}

// Body converts Markdown text to an HTML body fragment, applying the
// substitution stages in their fixed order.
func Body(text string) string {
	html := escape(text)
	html = headings(html)
	html = emphasis(html)
	html = imageRe.ReplaceAllString(html, `<img src="$2" alt="$1" style="max-width:100%">`)
	html = linkRe.ReplaceAllString(html, `<a href="$2">$1</a>`)
	html = listItems(html)
	html = codeRe.ReplaceAllString(html, "<code>$1</code>")
	html = paragraphs(html)
	return cleanupLists(html)
}

// escape replaces the three HTML metacharacters. Ampersand goes first so the
// entities introduced for < and > are not escaped a second time.
func escape(text string) string {
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	return text
}

// headingPrefixes is checked longest first so a ###### line is not misread
// as a level-one heading.
var headingPrefixes = []struct {
	marker string
	tag    string
}{
	{"###### ", "h6"},
	{"##### ", "h5"},
	{"#### ", "h4"},
	{"### ", "h3"},
	{"## ", "h2"},
	{"# ", "h1"},
}

// headings rewrites heading lines. The marker must sit at the start of a
// line and the heading text must be non-empty; anything else is left alone,
// so a seven-hash line never becomes a heading.
func headings(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, p := range headingPrefixes {
			if rest, ok := strings.CutPrefix(line, p.marker); ok && rest != "" {
				lines[i] = "<" + p.tag + ">" + rest + "</" + p.tag + ">"
				break
			}
		}
	}
	return strings.Join(lines, "\n")
}

// emphasis rewrites asterisk spans, longest delimiter first. Spans are
// matched non-greedily and never cross a line boundary.
func emphasis(text string) string {
	text = boldItalicRe.ReplaceAllString(text, "<strong><em>$1</em></strong>")
	text = boldRe.ReplaceAllString(text, "<strong>$1</strong>")
	text = italicRe.ReplaceAllString(text, "<em>$1</em>")
	return text
}

// listItems rewrites unordered ("- item") and ordered ("1. item") lines to
// list-item elements. Both kinds degrade to the same element; ordered
// numbering is discarded. Matches are anchored to the start of a line.
func listItems(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if rest, ok := strings.CutPrefix(line, "- "); ok && rest != "" {
			lines[i] = "<li>" + rest + "</li>"
			continue
		}
		if m := orderedItemRe.FindStringSubmatch(line); m != nil {
			lines[i] = "<li>" + m[1] + "</li>"
		}
	}
	return strings.Join(lines, "\n")
}

// paragraphs turns every run of two or more newlines into a paragraph
// boundary and wraps the whole body in one enclosing paragraph.
func paragraphs(text string) string {
	return "<p>" + paragraphGapRe.ReplaceAllString(text, "</p><p>") + "</p>"
}

// cleanupLists is the list-grouping patch pass standing in for a real block
// parser. It removes whitespace-only paragraphs, then turns a paragraph
// opening directly onto a list item into a list opening, and a list item
// closing a paragraph into a list closing.
//
// Known quirks, kept on purpose: ordered and unordered runs share a single
// <ul>; lists separated by a blank line come out as separate containers; and
// a list starting mid-paragraph (for example directly under a heading with
// no blank line in between) gets a closing </ul> without a matching opener.
func cleanupLists(html string) string {
	html = emptyParagraphRe.ReplaceAllString(html, "")
	html = strings.ReplaceAll(html, "<p><li>", "<ul><li>")
	html = strings.ReplaceAll(html, "</li></p>", "</li></ul>")
	return html
}
