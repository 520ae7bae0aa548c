package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/slides"
)

type styles struct {
	counter    lipgloss.Style
	title      lipgloss.Style
	badge      lipgloss.Style
	muted      lipgloss.Style
	button     lipgloss.Style
	annotation lipgloss.Style
	narration  lipgloss.Style
	heading    lipgloss.Style
	panel      lipgloss.Style
	gate       lipgloss.Style
	errorLine  lipgloss.Style
	nav        lipgloss.Style
	navCurrent lipgloss.Style
	notes      lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		counter:    lipgloss.NewStyle().Foreground(lipgloss.Color(diagram.EdgeColor)).Bold(true),
		title:      lipgloss.NewStyle().Bold(true),
		badge:      lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#7e57c2")).Padding(0, 1),
		muted:      lipgloss.NewStyle().Foreground(lipgloss.Color("#78909c")),
		button:     lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#43a047")).Padding(0, 1).Bold(true),
		annotation: lipgloss.NewStyle().Foreground(lipgloss.Color(diagram.BubbleText)).Background(lipgloss.Color(diagram.BubbleBackground)).Padding(0, 1),
		narration:  lipgloss.NewStyle().Italic(true),
		heading:    lipgloss.NewStyle().Bold(true).Underline(true),
		panel:      lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color(diagram.InactiveBorder)).Padding(0, 1),
		gate:       lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#fb8c00")).Padding(0, 1),
		errorLine:  lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935")),
		nav:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		navCurrent: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#43a047")),
		notes:      lipgloss.NewStyle().Border(lipgloss.NormalBorder(), true, false, false, false).BorderForeground(lipgloss.Color(diagram.InactiveBorder)),
	}
}

// cellStyle colors a diagram cell the way the SVG renderer colors the same element.
func cellStyle(c diagram.Cell) lipgloss.Style {
	s := lipgloss.NewStyle()
	p := diagram.PaletteFor(c.Category)
	switch c.Kind {
	case diagram.CellZone:
		return s.Foreground(lipgloss.Color(diagram.ZoneText))
	case diagram.CellEdge:
		return s.Foreground(lipgloss.Color(diagram.InactiveBorder))
	case diagram.CellEdgeActive:
		return s.Foreground(lipgloss.Color(diagram.EdgeColor)).Bold(true)
	case diagram.CellLabel:
		return s.Foreground(lipgloss.Color("#78909c"))
	case diagram.CellNode:
		return s.Foreground(lipgloss.Color("#9e9e9e"))
	case diagram.CellNodeActive:
		return s.Foreground(lipgloss.Color(p.Border))
	case diagram.CellNodeCurrent:
		return s.Foreground(lipgloss.Color(p.Text)).Background(lipgloss.Color(p.Fill)).Bold(true)
	case diagram.CellBubble:
		return s.Foreground(lipgloss.Color(diagram.BubbleText)).Background(lipgloss.Color(diagram.BubbleBackground))
	}
	return s
}

func toneStyle(t slides.Tone) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch t {
	case slides.ToneDanger:
		return s.Foreground(lipgloss.Color("#e53935"))
	case slides.ToneWarning:
		return s.Foreground(lipgloss.Color("#fb8c00"))
	case slides.ToneSuccess:
		return s.Foreground(lipgloss.Color("#43a047"))
	}
	return s.Foreground(lipgloss.Color("#78909c"))
}

func cardStyle(state slides.CardState) lipgloss.Style {
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(18)
	switch state {
	case slides.CardCurrent:
		return s.BorderForeground(lipgloss.Color("#43a047")).Bold(true)
	case slides.CardActive:
		return s.BorderForeground(lipgloss.Color("#26a69a"))
	case slides.CardPulse:
		return s.BorderForeground(lipgloss.Color("#00acc1"))
	}
	return s.BorderForeground(lipgloss.Color(diagram.InactiveBorder)).Foreground(lipgloss.Color("#9e9e9e"))
}
