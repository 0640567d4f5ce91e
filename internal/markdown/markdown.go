// Package markdown renders model answers written in markdown as HTML.
package markdown

import (
	"strings"

	md "github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// ToHTML renders markdown to HTML. Raw HTML in the input is passed through,
// since answers are asked to use <h3>, <b> and <i> tags directly.
func ToHTML(input string) string {
	if strings.TrimSpace(input) == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(input))

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.HrefTargetBlank,
	})

	return strings.TrimSpace(string(md.Render(doc, renderer)))
}
