package diagram

import (
	"bufio"
	"fmt"
	"html"
	"io"

	"github.com/aretw0/showcase/pkg/domain"
)

// Node box sizes in canvas units.
const (
	nodeWidth    = 92.0
	nodeHeight   = 44.0
	circleRadius = 26.0
	diamondHalf  = 30.0
)

// WriteSVG writes s as a standalone SVG document.
func WriteSVG(w io.Writer, s *Scene) error {
	bw := bufio.NewWriter(w)
	p := func(format string, args ...any) {
		fmt.Fprintf(bw, format, args...)
	}

	p(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" font-family="sans-serif">`+"\n", num(Width), num(Height))
	p(`<defs>`)
	p(`<marker id="arr" markerWidth="7" markerHeight="5" refX="6" refY="2.5" orient="auto"><polygon points="0 0, 7 2.5, 0 5" fill="%s" opacity="0.3"/></marker>`, EdgeColor)
	p(`<marker id="arr-active" markerWidth="7" markerHeight="5" refX="6" refY="2.5" orient="auto"><polygon points="0 0, 7 2.5, 0 5" fill="%s" opacity="0.9"/></marker>`, EdgeColor)
	p("</defs>\n")

	for _, z := range s.Zones {
		p(`<g class="zone"><rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="%s" fill-opacity="0.06" stroke="%s" stroke-opacity="0.3" stroke-width="2" stroke-dasharray="7 4"/>`,
			num(z.X), num(z.Y), num(z.W), num(z.H), z.Fill, z.Stroke)
		p(`<text x="%s" y="%s" font-size="9" font-weight="600" fill="%s" opacity="0.45">%s</text></g>`+"\n",
			num(z.X+10), num(z.Y+14), z.Text, esc(z.Label))
	}

	for _, e := range s.Edges {
		opacity, width, marker := "0.16", 2, "arr"
		if e.Active {
			opacity, width, marker = "0.75", 3, "arr-active"
		}
		dash := ""
		if e.Dashed {
			dash = ` stroke-dasharray="5 3"`
		}
		p(`<g class="edge" data-from="%s" data-to="%s"><path d="%s" fill="none" stroke="%s" stroke-opacity="%s" stroke-width="%d"%s stroke-linejoin="round" marker-end="url(#%s)"/>`,
			esc(e.From), esc(e.To), e.Path.D(), EdgeColor, opacity, width, dash, marker)
		if e.Label != "" {
			labelOpacity := "0.3"
			if e.Active {
				labelOpacity = "0.8"
			}
			p(`<text x="%s" y="%s" text-anchor="middle" font-size="8" font-weight="500" fill="%s" opacity="%s">%s</text>`,
				num(e.Path.Label.X), num(e.Path.Label.Y), EdgeColor, labelOpacity, esc(e.Label))
		}
		p("</g>\n")
	}

	for _, n := range s.Nodes {
		writeNode(p, n)
	}

	for _, n := range s.Nodes {
		if n.Current && n.SampleOutput != "" {
			writeBubble(p, n)
		}
	}

	if len(s.Legend) > 0 {
		writeLegend(p, s.Legend)
	}

	p("</svg>\n")
	return bw.Flush()
}

func writeNode(p func(string, ...any), n PlacedNode) {
	border, bg := NodeColors(n.Palette, n.Active, n.Current)
	cls := "node"
	if n.Active {
		cls += " active"
	}
	if n.Current {
		cls += " current"
	}
	cx, cy := n.Center.X, n.Center.Y
	p(`<g class="%s" data-id="%s">`, cls, esc(n.ID))

	switch n.Shape {
	case domain.ShapeCircle:
		p(`<circle cx="%s" cy="%s" r="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(cx), num(cy), num(circleRadius), bg, border)
	case domain.ShapeDiamond:
		p(`<polygon points="%s,%s %s,%s %s,%s %s,%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(cx), num(cy-diamondHalf), num(cx+diamondHalf), num(cy),
			num(cx), num(cy+diamondHalf), num(cx-diamondHalf), num(cy), bg, border)
	case domain.ShapePill:
		p(`<rect x="%s" y="%s" width="%s" height="%s" rx="%s" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(cx-nodeWidth/2), num(cy-nodeHeight/3), num(nodeWidth), num(nodeHeight*2/3), num(nodeHeight/3), bg, border)
	default:
		p(`<rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="%s" stroke="%s" stroke-width="2"/>`,
			num(cx-nodeWidth/2), num(cy-nodeHeight/2), num(nodeWidth), num(nodeHeight), bg, border)
	}

	labelY := cy + 3
	if n.Sub != "" {
		labelY = cy - 2
	}
	p(`<text x="%s" y="%s" text-anchor="middle" font-size="10" font-weight="700" fill="%s">%s</text>`,
		num(cx), num(labelY), n.Palette.Text, esc(n.Label))
	if n.Sub != "" {
		p(`<text x="%s" y="%s" text-anchor="middle" font-size="7" fill="%s" fill-opacity="0.55">%s</text>`,
			num(cx), num(cy+10), n.Palette.Text, esc(n.Sub))
	}
	p("</g>\n")
}

func writeBubble(p func(string, ...any), n PlacedNode) {
	w := float64(len(n.SampleOutput))*5.2 + 16
	x := n.Center.X - w/2
	y := n.Center.Y + nodeHeight/2 + 8
	p(`<g class="bubble" data-id="%s"><rect x="%s" y="%s" width="%s" height="16" rx="3" fill="%s"/>`,
		esc(n.ID), num(x), num(y), num(w), BubbleBackground)
	p(`<text x="%s" y="%s" text-anchor="middle" font-size="8" font-family="monospace" fill="%s">%s</text></g>`+"\n",
		num(n.Center.X), num(y+11), BubbleText, esc(n.SampleOutput))
}

func writeLegend(p func(string, ...any), legend []domain.LegendEntry) {
	x := 12.0
	y := Height - 14
	p(`<g class="legend">`)
	for _, l := range legend {
		pal := PaletteFor(l.Category)
		p(`<rect x="%s" y="%s" width="10" height="10" rx="2" fill="%s" stroke="%s"/>`, num(x), num(y-9), pal.Bg, pal.Border)
		p(`<text x="%s" y="%s" font-size="9" fill="%s">%s</text>`, num(x+14), num(y), pal.Text, esc(l.Label))
		x += 24 + float64(len(l.Label))*5.5
	}
	p("</g>\n")
}

func esc(s string) string {
	return html.EscapeString(s)
}
