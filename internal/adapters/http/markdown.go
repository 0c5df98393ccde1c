package web

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// notesMarkdown renders meeting notes. Raw HTML in the source is escaped;
// notes come from the admin but end up inside the app's pages.
var notesMarkdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// renderNotes converts markdown meeting notes to HTML.
// POST: returns empty HTML on conversion failure, never an error page
func renderNotes(notes string) template.HTML {
	if notes == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := notesMarkdown.Convert([]byte(notes), &buf); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}
