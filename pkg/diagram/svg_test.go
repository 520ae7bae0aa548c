package diagram

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSVG(t *testing.T) {
	d := sampleDiagram()
	d.Legend = []domain.LegendEntry{{Label: "Reasoning", Category: domain.CategoryReasoning}}
	scene := Layout(d, NewHighlight([]string{"input", "planner"}, "planner"))

	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, scene))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 1000 560"`))
	assert.Contains(t, out, `marker-end="url(#arr-active)"`)
	assert.Contains(t, out, `stroke-dasharray="5 3"`)
	assert.Contains(t, out, `stroke-dasharray="7 4"`)
	assert.Contains(t, out, `class="node active current" data-id="planner"`)
	assert.Contains(t, out, "plan: 3 steps")
	assert.Contains(t, out, `class="legend"`)
	assert.NotContains(t, out, "ghost")
	assert.Equal(t, 3, strings.Count(out, `class="edge"`))
}

func TestWriteSVG_EscapesText(t *testing.T) {
	d := domain.Diagram{Nodes: []domain.Node{{ID: "a", Label: "R&D <lab>"}}}
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Layout(d, Highlight{})))
	assert.Contains(t, buf.String(), "R&amp;D &lt;lab&gt;")
}

func TestWriteSVG_NoBubbleWhenNotCurrent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSVG(&buf, Layout(sampleDiagram(), NewHighlight([]string{"planner"}, ""))))
	assert.NotContains(t, buf.String(), `class="bubble"`)
}
