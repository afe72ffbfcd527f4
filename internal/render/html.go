package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"portfolio/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

type HTMLRenderer struct {
	tmpl *template.Template
}

func NewHTMLRenderer() (*HTMLRenderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &HTMLRenderer{tmpl: tmpl}, nil
}

func (r *HTMLRenderer) Render(w io.Writer, page *view.Page) error {
	if err := r.tmpl.ExecuteTemplate(w, "index.html", page); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
