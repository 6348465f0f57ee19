package markdown

import (
	"bytes"

	mathjax "github.com/litao91/goldmark-mathjax"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/telmet/parchment"
)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM, mathjax.MathJax),
	goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
	goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
)

// sanitizer runs over the final HTML, after markdown conversion and any raw
// HTML passthrough, so nothing the converter emits can smuggle script past it.
var sanitizer = newSanitizer()

func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "p", "li", "a")
	p.AllowAttrs("data-start").OnElements("p")
	p.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	return p
}

// render converts a markdown fragment to sanitized HTML.
func render(source string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(source), &buf); err != nil {
		return "", parchment.Errorf(parchment.EINTERNAL, "markdown conversion failed: %v", err)
	}
	return sanitizer.Sanitize(buf.String()), nil
}
