package main

import (
	"bytes"
	"html/template"
	"log"

	"github.com/yuin/goldmark"
)

var md = goldmark.New()

// renderMarkdown converts a write-up to HTML for the templates. On failure
// the source is shown as escaped text.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		log.Printf("Error rendering markdown: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}
