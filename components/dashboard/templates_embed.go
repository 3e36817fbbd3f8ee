package dashboard

import (
	"embed"
	"fmt"
	"io/fs"

	template "github.com/goliatone/go-template"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// NewTemplateRenderer creates a go-template renderer backed by the embedded page templates.
func NewTemplateRenderer() (Renderer, error) {
	templates, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, fmt.Errorf("dashboard: embedded templates: %w", err)
	}
	return template.NewRenderer(
		template.WithFS(templates),
		template.WithExtension(".html"),
	)
}

// NewEmbeddedPageRenderer wires the embedded templates into a PageRenderer.
func NewEmbeddedPageRenderer(charts *ChartRenderer, opts ...PageRendererOption) (*PageRenderer, error) {
	renderer, err := NewTemplateRenderer()
	if err != nil {
		return nil, err
	}
	return NewPageRenderer(renderer, charts, opts...), nil
}
