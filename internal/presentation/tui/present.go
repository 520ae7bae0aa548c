package tui

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/slides"
)

// Run presents entries full screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, entries []deck.Entry, opts ...Option) error {
	m := NewModel(entries, opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("presenter: %w", err)
	}
	return nil
}

// Dump writes every slide as plain text, for terminals that cannot host the presenter.
func Dump(w io.Writer, entries []deck.Entry, cols, rows int) error {
	for i, e := range entries {
		slide := e.Factory(deck.Mount{Clock: sequencer.StillClock(), Notify: func() {}})
		var view slides.View
		if v, ok := slide.(slides.Viewer); ok {
			view = v.View()
		}
		slide.Close()

		header := fmt.Sprintf("%02d/%02d  %s", i+1, len(entries), e.Title)
		if _, err := fmt.Fprintf(w, "%s\n%s\n\n", header, strings.Repeat("=", len(header))); err != nil {
			return err
		}
		if view.Body != "" {
			if _, err := fmt.Fprintf(w, "%s\n\n", strings.TrimSpace(view.Body)); err != nil {
				return err
			}
		}
		if view.Diagram != nil {
			canvas := diagram.RenderText(diagram.Layout(*view.Diagram, view.Highlight), cols, rows)
			if _, err := fmt.Fprintf(w, "%s\n\n", canvas.String()); err != nil {
				return err
			}
		}
	}
	return nil
}
