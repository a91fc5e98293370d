// Package markdown renders course and chapter descriptions to HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts markdown text to HTML. Raw HTML in the source is escaped.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a renderer with GitHub flavoured markdown enabled
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

// Render returns the HTML for src, or an empty string for blank input
func (r *Renderer) Render(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// MustRender renders src and returns "" on failure
func (r *Renderer) MustRender(src string) string {
	out, err := r.Render(src)
	if err != nil {
		return ""
	}
	return out
}
