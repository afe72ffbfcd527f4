// Package render draws a projected page for a particular surface.
package render

import (
	"io"

	"portfolio/internal/view"
)

// Renderer writes page to w
type Renderer interface {
	Render(w io.Writer, page *view.Page) error
}
