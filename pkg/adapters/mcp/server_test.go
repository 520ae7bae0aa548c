package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/pkg/export"
	"github.com/aretw0/showcase/pkg/observability"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	p, err := showcase.Load("")
	require.NoError(t, err)
	return NewServer(p.Deck, p.Entries, opts...)
}

func buildRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: args,
		},
	}
}

func extractText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	return mcp.GetTextFromContent(result.Content[0])
}

func initialize(t *testing.T, srv *Server) {
	t.Helper()
	initMsg, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0", "id": 0, "method": "initialize",
		"params": map[string]any{
			"protocolVersion": "2025-03-26",
			"capabilities":    map[string]any{},
			"clientInfo":      map[string]any{"name": "test", "version": "1.0.0"},
		},
	})
	require.NotNil(t, srv.MCPServer().HandleMessage(context.Background(), initMsg))
}

func TestServer_ListsTools(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	initialize(t, srv)

	listMsg, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0", "id": 1, "method": "tools/list",
		"params": map[string]any{},
	})
	resp := srv.MCPServer().HandleMessage(ctx, listMsg)
	require.NotNil(t, resp)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	var rpc struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &rpc))

	var names []string
	for _, tool := range rpc.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"list_slides", "render_diagram", "walk_chain"}, names)
}

func TestListSlides(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleListSlides(context.Background(), buildRequest("list_slides", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	var slides []SlideSummary
	require.NoError(t, json.Unmarshal([]byte(extractText(t, result)), &slides))
	require.Len(t, slides, 9)
	assert.Equal(t, "cover", slides[0].ID)
	assert.Equal(t, "patterns", slides[2].ID)
	assert.Contains(t, slides[2].Modes, "planning")
	assert.Equal(t, []string{"battery", "cnc", "paint"}, slides[6].Scenarios)
	assert.Empty(t, slides[8].Modes)
}

func TestRenderDiagram(t *testing.T) {
	metrics := observability.NewMetrics()
	srv := newTestServer(t, WithMetrics(metrics))
	ctx := context.Background()

	t.Run("mermaid by default", func(t *testing.T) {
		result, err := srv.handleRenderDiagram(ctx, buildRequest("render_diagram", map[string]any{
			"slide": "architecture",
			"step":  float64(1),
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, extractText(t, result))
		text := extractText(t, result)
		assert.True(t, strings.HasPrefix(text, "flowchart LR"))
		assert.Contains(t, text, "class planner current;")
	})

	t.Run("svg with focus", func(t *testing.T) {
		result, err := srv.handleRenderDiagram(ctx, buildRequest("render_diagram", map[string]any{
			"slide":  "governance",
			"mode":   "system",
			"format": "svg",
			"focus":  "cap-audit",
		}))
		require.NoError(t, err)
		require.False(t, result.IsError, extractText(t, result))
		assert.Contains(t, extractText(t, result), "<svg")
	})

	t.Run("step as string", func(t *testing.T) {
		result, err := srv.handleRenderDiagram(ctx, buildRequest("render_diagram", map[string]any{
			"slide":  "workflow",
			"format": "ascii",
			"step":   "2",
		}))
		require.NoError(t, err)
		assert.False(t, result.IsError, extractText(t, result))
	})

	errorCases := []struct {
		name string
		args map[string]any
		want string
	}{
		{"missing slide", map[string]any{"format": "svg"}, "slide is required"},
		{"unknown slide", map[string]any{"slide": "nope"}, "slide not found"},
		{"static slide", map[string]any{"slide": "cover"}, "no diagram"},
		{"unknown format", map[string]any{"slide": "architecture", "format": "gif"}, "unknown format"},
		{"unknown argument", map[string]any{"slide": "architecture", "zoom": 2}, "invalid arguments"},
		{"step past the chain", map[string]any{"slide": "architecture", "step": 99}, "node not found"},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := srv.handleRenderDiagram(ctx, buildRequest("render_diagram", tc.args))
			require.NoError(t, err)
			assert.True(t, result.IsError)
			assert.Contains(t, extractText(t, result), tc.want)
		})
	}

	assert.Equal(t, 1.0, metricRenders(t, metrics, "mermaid"))
}

func metricRenders(t *testing.T, m *observability.Metrics, format string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != "showcase_diagram_renders_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "format" && label.GetValue() == format {
					return metric.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestWalkChain(t *testing.T) {
	srv := newTestServer(t)
	result, err := srv.handleWalkChain(context.Background(), buildRequest("walk_chain", map[string]any{
		"slide":    "workflow",
		"scenario": "paint",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError, extractText(t, result))

	var frames []export.Frame
	require.NoError(t, json.Unmarshal([]byte(extractText(t, result)), &frames))
	require.Len(t, frames, 6)
	assert.Equal(t, -1, frames[0].Step)
	assert.Equal(t, "monitor", frames[1].Current)
	assert.Equal(t, "quality", frames[5].Current)
}

func TestDeckResource(t *testing.T) {
	srv := newTestServer(t)
	ctx := context.Background()
	initialize(t, srv)

	msg, _ := json.Marshal(map[string]any{
		"jsonrpc": "2.0", "id": 1, "method": "resources/read",
		"params": map[string]any{"uri": DeckURI},
	})
	resp := srv.MCPServer().HandleMessage(ctx, msg)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var rpc struct {
		Result struct {
			Contents []struct {
				URI  string `json:"uri"`
				Text string `json:"text"`
			} `json:"contents"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &rpc))
	require.Len(t, rpc.Result.Contents, 1)
	assert.Equal(t, DeckURI, rpc.Result.Contents[0].URI)
	assert.Contains(t, rpc.Result.Contents[0].Text, `"id":"workflow"`)
}
