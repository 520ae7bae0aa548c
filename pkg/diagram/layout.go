package diagram

import (
	"math"

	"github.com/aretw0/showcase/pkg/domain"
)

// Highlight is the walkthrough state a diagram is rendered against.
type Highlight struct {
	Active  map[string]bool
	Current string
}

// NewHighlight builds a highlight from an active id list and the current id.
func NewHighlight(active []string, current string) Highlight {
	set := make(map[string]bool, len(active))
	for _, id := range active {
		set[id] = true
	}
	return Highlight{Active: set, Current: current}
}

// IsActive reports whether id is part of the active set.
func (h Highlight) IsActive(id string) bool {
	return h.Active[id]
}

// PlacedNode is a node resolved onto the canvas.
type PlacedNode struct {
	domain.Node
	Center  Point        `json:"center"`
	Shape   domain.Shape `json:"shape"`
	Palette Palette      `json:"palette"`
	Active  bool         `json:"active"`
	Current bool         `json:"current"`
}

// PlacedEdge is an edge with both endpoints resolved.
type PlacedEdge struct {
	domain.Edge
	Path   Path `json:"path"`
	Active bool `json:"active"`
}

// PlacedZone is a zone in canvas units.
type PlacedZone struct {
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Stroke string  `json:"stroke"`
	Fill   string  `json:"fill"`
	Text   string  `json:"text"`
}

// Scene is the fully resolved, render-ready diagram.
type Scene struct {
	Nodes   []PlacedNode         `json:"nodes"`
	Edges   []PlacedEdge         `json:"edges"`
	Zones   []PlacedZone         `json:"zones,omitempty"`
	Legend  []domain.LegendEntry `json:"legend,omitempty"`
	Current string               `json:"current,omitempty"`

	// Dropped counts edges skipped because an endpoint did not resolve.
	Dropped int `json:"dropped,omitempty"`
}

// Layout resolves d against h.
// Layout never fails: unresolved edges are dropped and counted.
func Layout(d domain.Diagram, h Highlight) *Scene {
	scene := &Scene{
		Nodes:   make([]PlacedNode, 0, len(d.Nodes)),
		Edges:   make([]PlacedEdge, 0, len(d.Edges)),
		Legend:  d.Legend,
		Current: h.Current,
	}

	index := make(map[string]Point, len(d.Nodes))
	for _, n := range d.Nodes {
		c := Center(n)
		index[n.ID] = c
		scene.Nodes = append(scene.Nodes, PlacedNode{
			Node:    n,
			Center:  c,
			Shape:   n.ShapeOrDefault(),
			Palette: PaletteFor(n.Category),
			Active:  h.IsActive(n.ID),
			Current: h.Current != "" && h.Current == n.ID,
		})
	}

	for _, e := range d.Edges {
		from, okFrom := index[e.From]
		to, okTo := index[e.To]
		if !okFrom || !okTo {
			scene.Dropped++
			continue
		}
		scene.Edges = append(scene.Edges, PlacedEdge{
			Edge:   e,
			Path:   Route(from, to, e.Route),
			Active: h.IsActive(e.From) && h.IsActive(e.To),
		})
	}

	for _, z := range d.Zones {
		pz := PlacedZone{
			Label:  z.Label,
			X:      z.X / 100 * Width,
			Y:      z.Y / 100 * Height,
			W:      z.W / 100 * Width,
			H:      z.H / 100 * Height,
			Stroke: ZoneStroke,
			Fill:   ZoneFill,
			Text:   ZoneText,
		}
		if z.Color != "" {
			pz.Stroke, pz.Fill, pz.Text = z.Color, z.Color, z.Color
		}
		scene.Zones = append(scene.Zones, pz)
	}

	return scene
}

// ActiveEdges returns the edges highlighted in the scene.
func (s *Scene) ActiveEdges() []PlacedEdge {
	var out []PlacedEdge
	for _, e := range s.Edges {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// HitRadius is the distance, in canvas units, within which a point selects a node.
const HitRadius = 36.0

// HitTest returns the id of the node closest to p within HitRadius.
func (s *Scene) HitTest(p Point) (string, bool) {
	best, bestDist := "", math.MaxFloat64
	for _, n := range s.Nodes {
		d := math.Hypot(n.Center.X-p.X, n.Center.Y-p.Y)
		if d <= HitRadius && d < bestDist {
			best, bestDist = n.ID, d
		}
	}
	return best, best != ""
}

// ClickHandler receives the id of a clicked node.
type ClickHandler func(id string)

// Click resolves p to a node and forwards it to fn. It reports whether a node was hit.
func (s *Scene) Click(p Point, fn ClickHandler) bool {
	id, ok := s.HitTest(p)
	if ok && fn != nil {
		fn(id)
	}
	return ok
}
