package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
)

// GenerateMermaid produces a Mermaid flowchart from a laid out scene.
// Shapes follow the node outline:
// - rect: [Rectangle]
// - diamond: {Rhombus}
// - circle: ((Circle))
// - pill: ([Stadium])
// Nodes whose center lies inside a zone are grouped in a subgraph. Active and
// current nodes get overlay classes on top of their category class.
func GenerateMermaid(s *diagram.Scene) string {
	var sb strings.Builder
	sb.WriteString("flowchart LR\n")

	zoned := make(map[string]bool)
	for i, z := range s.Zones {
		var members []diagram.PlacedNode
		for _, n := range s.Nodes {
			if !zoned[n.ID] && inside(z, n.Center) {
				members = append(members, n)
				zoned[n.ID] = true
			}
		}
		if len(members) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "    subgraph zone%d[\"%s\"]\n", i, escape(z.Label))
		for _, n := range members {
			sb.WriteString("    " + nodeLine(n))
		}
		sb.WriteString("    end\n")
	}
	for _, n := range s.Nodes {
		if !zoned[n.ID] {
			sb.WriteString(nodeLine(n))
		}
	}

	for _, e := range s.Edges {
		from, to := sanitizeMermaidID(e.From), sanitizeMermaidID(e.To)
		arrow := "-->"
		if e.Dashed {
			arrow = "-.->"
		}
		if e.Label != "" {
			arrow = fmt.Sprintf("-- \"%s\" -->", escape(e.Label))
			if e.Dashed {
				arrow = fmt.Sprintf("-. \"%s\" .->", escape(e.Label))
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	sb.WriteString("\n    %% Categories\n")
	used := make(map[domain.Category]bool)
	for _, n := range s.Nodes {
		used[category(n)] = true
	}
	for _, c := range domain.Categories {
		if !used[c] {
			continue
		}
		p := diagram.PaletteFor(c)
		fmt.Fprintf(&sb, "    classDef %s fill:%s,stroke:%s,color:%s;\n", c, p.Bg, p.Border, p.Text)
	}
	for _, n := range s.Nodes {
		fmt.Fprintf(&sb, "    class %s %s;\n", sanitizeMermaidID(n.ID), category(n))
	}

	if s.Current == "" && !anyActive(s) {
		return sb.String()
	}
	sb.WriteString("\n    %% Overlay Styles\n")
	sb.WriteString("    classDef active stroke-width:3px;\n")
	sb.WriteString("    classDef current stroke-width:4px,stroke-dasharray:0;\n")
	for _, n := range s.Nodes {
		switch {
		case n.Current:
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(n.ID))
		case n.Active:
			fmt.Fprintf(&sb, "    class %s active;\n", sanitizeMermaidID(n.ID))
		}
	}
	return sb.String()
}

func nodeLine(n diagram.PlacedNode) string {
	opener, closer := "[", "]"
	switch n.Shape {
	case domain.ShapeDiamond:
		opener, closer = "{", "}"
	case domain.ShapeCircle:
		opener, closer = "((", "))"
	case domain.ShapePill:
		opener, closer = "([", "])"
	}
	label := escape(n.Label)
	if n.Sub != "" {
		label += "<br/>" + escape(n.Sub)
	}
	return fmt.Sprintf("    %s%s\"%s\"%s\n", sanitizeMermaidID(n.ID), opener, label, closer)
}

func category(n diagram.PlacedNode) domain.Category {
	if n.Category == "" {
		return domain.CategoryIO
	}
	return n.Category
}

func anyActive(s *diagram.Scene) bool {
	for _, n := range s.Nodes {
		if n.Active {
			return true
		}
	}
	return false
}

func inside(z diagram.PlacedZone, p diagram.Point) bool {
	return p.X >= z.X && p.X <= z.X+z.W && p.Y >= z.Y && p.Y <= z.Y+z.H
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	if strings.EqualFold(s, "end") {
		// "end" closes a subgraph in Mermaid.
		s = "end_"
	}
	return s
}
