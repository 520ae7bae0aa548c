package export_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/aretw0/showcase/pkg/content"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/export"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newExporter(t *testing.T, opts ...export.Option) *export.Exporter {
	t.Helper()
	d, err := content.Default()
	require.NoError(t, err)
	entries, err := content.Build(d)
	require.NoError(t, err)
	return export.New(entries, opts...)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want export.Format
	}{
		{"svg", export.FormatSVG},
		{".SVG", export.FormatSVG},
		{"mermaid", export.FormatMermaid},
		{"mmd", export.FormatMermaid},
		{"ascii", export.FormatASCII},
		{"txt", export.FormatASCII},
	}
	for _, tt := range tests {
		got, err := export.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := export.ParseFormat("png")
	assert.ErrorIs(t, err, domain.ErrUnknownFormat)

	assert.Equal(t, "mmd", export.FormatMermaid.Ext())
	assert.Equal(t, "image/svg+xml", export.FormatSVG.ContentType())
}

func TestFrame(t *testing.T) {
	e := newExporter(t)

	t.Run("step", func(t *testing.T) {
		f, err := e.Frame(export.Request{Slide: "architecture", Step: 2})
		require.NoError(t, err)
		assert.Equal(t, "memory", f.Current)
		assert.Equal(t, []string{"input", "planner", "memory"}, f.Active)
		assert.Equal(t, "memory", f.Scene.Current)
	})

	t.Run("idle", func(t *testing.T) {
		f, err := e.Frame(export.Request{Slide: "architecture", Step: -1})
		require.NoError(t, err)
		assert.Equal(t, -1, f.Step)
		assert.Empty(t, f.Scene.Current)
		assert.Empty(t, f.Scene.ActiveEdges())
	})

	t.Run("mode", func(t *testing.T) {
		f, err := e.Frame(export.Request{Slide: "patterns", Mode: "planning", Step: 0})
		require.NoError(t, err)
		assert.Equal(t, "planning", f.Mode)
		assert.Equal(t, "input", f.Current)
		assert.Equal(t, 10, f.Length)
	})

	t.Run("focus wins over step", func(t *testing.T) {
		f, err := e.Frame(export.Request{Slide: "architecture", Step: 3, Focus: "memory"})
		require.NoError(t, err)
		assert.Equal(t, -1, f.Step)
		assert.Equal(t, "memory", f.Current)
	})

	t.Run("workflow scenario", func(t *testing.T) {
		f, err := e.Frame(export.Request{Slide: "workflow", Scenario: "cnc", Step: 4})
		require.NoError(t, err)
		assert.Equal(t, "quality", f.Current)
		assert.Len(t, f.Scene.Nodes, 5)
	})
}

func TestFrame_Errors(t *testing.T) {
	e := newExporter(t)
	tests := []struct {
		name string
		req  export.Request
		want error
	}{
		{"unknown slide", export.Request{Slide: "nope"}, domain.ErrSlideNotFound},
		{"static slide", export.Request{Slide: "cover"}, domain.ErrNoDiagram},
		{"unknown mode", export.Request{Slide: "patterns", Mode: "hybrid"}, domain.ErrModeNotFound},
		{"unknown scenario", export.Request{Slide: "workflow", Scenario: "bakery"}, domain.ErrModeNotFound},
		{"step out of range", export.Request{Slide: "architecture", Step: 99}, domain.ErrNodeNotFound},
		{"unknown focus", export.Request{Slide: "architecture", Focus: "ghost"}, domain.ErrNodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Frame(tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestWalk(t *testing.T) {
	e := newExporter(t)

	frames, err := e.Walk(export.Request{Slide: "workflow"})
	require.NoError(t, err)
	require.Len(t, frames, 6)
	assert.Equal(t, -1, frames[0].Step)
	assert.Equal(t, "monitor", frames[1].Current)
	assert.Equal(t, "quality", frames[5].Current)
	assert.Len(t, frames[5].Active, 5)

	frames, err = e.Walk(export.Request{Slide: "governance", Mode: "system"})
	require.NoError(t, err)
	assert.Len(t, frames, 6)
	assert.Equal(t, "system", frames[0].Mode)
}

func TestRender(t *testing.T) {
	e := newExporter(t, export.WithTextSize(80, 20))
	req := export.Request{Slide: "orchestration", Step: 1}

	var svg bytes.Buffer
	require.NoError(t, e.Render(&svg, req, export.FormatSVG))
	assert.True(t, strings.HasPrefix(svg.String(), "<svg"))

	var mmd bytes.Buffer
	require.NoError(t, e.Render(&mmd, req, export.FormatMermaid))
	assert.Contains(t, mmd.String(), "flowchart LR")
	assert.Contains(t, mmd.String(), "class sup current;")

	var txt bytes.Buffer
	require.NoError(t, e.Render(&txt, req, export.FormatASCII))
	assert.Equal(t, 19, strings.Count(txt.String(), "\n"))
	assert.NotEmpty(t, strings.TrimSpace(txt.String()))

	assert.ErrorIs(t, e.Render(&txt, req, export.Format("png")), domain.ErrUnknownFormat)
}

func TestDiagrams(t *testing.T) {
	ids := newExporter(t).Diagrams()
	assert.Contains(t, ids, "workflow")
	assert.Contains(t, ids, "architecture")
	assert.NotContains(t, ids, "cover")
	assert.NotContains(t, ids, "research")
}
