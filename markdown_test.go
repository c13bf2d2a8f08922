package main

import (
	"strings"
	"testing"
)

func TestRenderMarkdown(t *testing.T) {
	got := string(renderMarkdown("It helps:\n\n- Focus on **suitable** roles.\n"))
	for _, want := range []string{"<ul>", "<li>", "<strong>suitable</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("rendered %q, missing %q", got, want)
		}
	}
}

func TestRenderMarkdown_EscapesRawHTML(t *testing.T) {
	got := string(renderMarkdown("<script>alert(1)</script>"))
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}
