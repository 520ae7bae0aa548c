package diagram

import (
	"strings"
	"testing"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderText_LinearChain(t *testing.T) {
	d := domain.Diagram{
		Nodes: []domain.Node{
			{ID: "a", Label: "A", X: 10, Y: 50},
			{ID: "b", Label: "B", X: 90, Y: 50, Shape: domain.ShapeCircle},
		},
		Edges: []domain.Edge{{From: "a", To: "b"}},
	}
	canvas := RenderText(Layout(d, NewHighlight([]string{"a", "b"}, "b")), 41, 11)
	lines := canvas.Lines()
	require.Len(t, lines, 11)

	mid := lines[5]
	assert.Contains(t, mid, "[A]")
	assert.Contains(t, mid, "(B)")
	assert.Contains(t, mid, "─")
	assert.Contains(t, mid, "▶")
	assert.Less(t, strings.Index(mid, "[A]"), strings.Index(mid, "▶"))
	assert.Less(t, strings.Index(mid, "▶"), strings.Index(mid, "(B)"))

	id, ok := canvas.NodeAt(strings.Index(mid, "[A]")+1, 5)
	assert.True(t, ok)
	assert.Equal(t, "a", id)

	_, ok = canvas.NodeAt(-1, 5)
	assert.False(t, ok)
}

func TestRenderText_CellKinds(t *testing.T) {
	d := domain.Diagram{
		Nodes: []domain.Node{
			{ID: "a", Label: "A", X: 10, Y: 20},
			{ID: "b", Label: "B", X: 90, Y: 80, SampleOutput: "ok"},
		},
		Edges: []domain.Edge{{From: "a", To: "b", Route: domain.RouteHFirst}},
	}
	canvas := RenderText(Layout(d, NewHighlight([]string{"a", "b"}, "b")), 41, 11)

	kinds := map[CellKind]int{}
	for _, row := range canvas.Cells {
		for _, c := range row {
			kinds[c.Kind]++
		}
	}
	assert.Positive(t, kinds[CellNodeActive])
	assert.Positive(t, kinds[CellNodeCurrent])
	assert.Positive(t, kinds[CellEdgeActive])
	assert.Positive(t, kinds[CellBubble])
	assert.Contains(t, canvas.String(), "┐")
}

func TestRenderText_DashedAndZone(t *testing.T) {
	d := domain.Diagram{
		Nodes: []domain.Node{
			{ID: "a", Label: "A", X: 20, Y: 50},
			{ID: "b", Label: "B", X: 80, Y: 50},
		},
		Edges: []domain.Edge{{From: "a", To: "b", Dashed: true}},
		Zones: []domain.Zone{{Label: "Loop", X: 5, Y: 10, W: 90, H: 80}},
	}
	out := RenderText(Layout(d, Highlight{}), 60, 12).String()
	assert.Contains(t, out, "╌")
	assert.Contains(t, out, "Loop")
	assert.Contains(t, out, "╭")
}

func TestNodeText(t *testing.T) {
	assert.Equal(t, "[A]", NodeText("A", domain.ShapeRect))
	assert.Equal(t, "(A)", NodeText("A", domain.ShapeCircle))
	assert.Equal(t, "<A>", NodeText("A", domain.ShapeDiamond))
	assert.Equal(t, "{A}", NodeText("A", domain.ShapePill))
}
