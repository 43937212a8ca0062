package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(
			extension.Linkify,
			extension.Strikethrough,
			extension.Typographer,
		),
	)
	policy = sanitizer()
)

// Markdown convierte el contenido de una historia en HTML sanitizado.
func Markdown(content string) (template.HTML, error) {
	output := &bytes.Buffer{}
	if err := markdown.Convert([]byte(content), output); err != nil {
		return "", fmt.Errorf("failed to convert markdown to HTML: %w", err)
	}
	return template.HTML(policy.SanitizeBytes(output.Bytes())), nil //nolint:gosec
}

// sanitizer parte de UGCPolicy, sin imagenes y con links noreferrer.
func sanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.SkipElementsContent("script", "style")
	return p
}
