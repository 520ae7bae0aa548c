package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour, wrapped at width.
// When glamour cannot be set up, or fails on a document, the markdown is returned as is.
func NewRenderer(width int) func(string) string {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	return func(markdown string) string {
		if err != nil {
			return markdown
		}
		out, rerr := r.Render(markdown)
		if rerr != nil {
			return markdown
		}
		return strings.Trim(out, "\n")
	}
}
