package diagram

import "github.com/aretw0/showcase/pkg/domain"

// Palette is the set of colors used for one node category.
type Palette struct {
	Bg     string `json:"bg"`
	Border string `json:"border"`
	Text   string `json:"text"`
	Fill   string `json:"fill"`
}

// Colors shared by every diagram.
const (
	EdgeColor          = "#37474f"
	InactiveBorder     = "#d0d0d0"
	InactiveBackground = "#fafafa"
	ZoneStroke         = "#a5d6a7"
	ZoneFill           = "#f0fdf4"
	ZoneText           = "#2e7d32"
	BubbleBackground   = "#263238"
	BubbleText         = "#e0e0e0"
)

var palettes = map[domain.Category]Palette{
	domain.CategoryReasoning: {Bg: "#e8f5e9", Border: "#43a047", Text: "#2e7d32", Fill: "#c8e6c9"},
	domain.CategoryTool:      {Bg: "#ede7f6", Border: "#7e57c2", Text: "#4527a0", Fill: "#d1c4e9"},
	domain.CategoryMemory:    {Bg: "#e0f2f1", Border: "#26a69a", Text: "#00796b", Fill: "#b2dfdb"},
	domain.CategoryIO:        {Bg: "#f5f5f5", Border: "#78909c", Text: "#37474f", Fill: "#eceff1"},
	domain.CategoryDecision:  {Bg: "#e0f7fa", Border: "#00acc1", Text: "#006064", Fill: "#b2ebf2"},
	domain.CategoryData:      {Bg: "#fff3e0", Border: "#fb8c00", Text: "#e65100", Fill: "#ffe0b2"},
}

// PaletteFor returns the palette of a category. Unknown or empty categories use io.
func PaletteFor(c domain.Category) Palette {
	if p, ok := palettes[c]; ok {
		return p
	}
	return palettes[domain.CategoryIO]
}

// NodeColors resolves the border and background of a node for its highlight state.
// The current node uses the fill color, active nodes the category background and
// everything else the neutral inactive colors.
func NodeColors(p Palette, active, current bool) (border, bg string) {
	switch {
	case current:
		return p.Border, p.Fill
	case active:
		return p.Border, p.Bg
	default:
		return InactiveBorder, InactiveBackground
	}
}
