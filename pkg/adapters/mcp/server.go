package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/export"
	"github.com/aretw0/showcase/pkg/observability"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"
)

// DeckURI is the resource holding the authored deck.
const DeckURI = "showcase://deck"

// SlideSummary is one entry of list_slides.
type SlideSummary struct {
	Index       int              `json:"index"`
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Kind        domain.SlideKind `json:"kind"`
	Modes       []string         `json:"modes,omitempty"`
	Scenarios   []string         `json:"scenarios,omitempty"`
}

// Server exposes the deck's diagrams as MCP tools.
type Server struct {
	deck      domain.Deck
	exporter  *export.Exporter
	metrics   *observability.Metrics
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics counts rendered diagrams.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(d domain.Deck, entries []deck.Entry, opts ...Option) *Server {
	s := &Server{
		deck:     d,
		exporter: export.New(entries),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	s.mcpServer = server.NewMCPServer("showcase-mcp", strings.TrimSpace(showcase.Version),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithRecovery(),
		server.WithInstructions("Showcase renders the diagrams of the agentic AI deck. Use list_slides to discover slides and their modes, render_diagram to draw one state and walk_chain to step through a whole chain."),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server for tests and custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is cancelled.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		server.ServerTool{Tool: listSlidesTool(), Handler: s.handleListSlides},
		server.ServerTool{Tool: renderDiagramTool(), Handler: s.handleRenderDiagram},
		server.ServerTool{Tool: walkChainTool(), Handler: s.handleWalkChain},
	)
}

func listSlidesTool() mcp.Tool {
	return mcp.NewTool("list_slides",
		mcp.WithDescription("List the slides of the deck with their modes and scenarios."),
	)
}

func renderDiagramTool() mcp.Tool {
	return mcp.NewTool("render_diagram",
		mcp.WithDescription("Render the diagram of a slide at a given step or focused node."),
		mcp.WithString("slide", mcp.Required(), mcp.Description("Slide id, e.g. architecture")),
		mcp.WithString("format", mcp.Enum("mermaid", "svg", "ascii"), mcp.Description("Output format (default: mermaid)")),
		mcp.WithString("mode", mcp.Description("Mode of a multi-mode slide")),
		mcp.WithString("scenario", mcp.Description("Scenario key of the workflow slide")),
		mcp.WithNumber("step", mcp.Description("Chain step to highlight; -1 or omitted renders the idle diagram")),
		mcp.WithString("focus", mcp.Description("Node to focus; takes precedence over step")),
	)
}

func walkChainTool() mcp.Tool {
	return mcp.NewTool("walk_chain",
		mcp.WithDescription("Step through the whole chain of a slide and report each step's node and annotation."),
		mcp.WithString("slide", mcp.Required(), mcp.Description("Slide id")),
		mcp.WithString("mode", mcp.Description("Mode of a multi-mode slide")),
		mcp.WithString("scenario", mcp.Description("Scenario key of the workflow slide")),
	)
}

func (s *Server) handleListSlides(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out := make([]SlideSummary, len(s.deck.Slides))
	for i, def := range s.deck.Slides {
		out[i] = SlideSummary{
			Index:       i,
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Kind:        def.Kind,
		}
		if def.Walkthrough != nil {
			for _, m := range def.Walkthrough.Modes {
				out[i].Modes = append(out[i].Modes, m.Name)
			}
		}
		if def.Workflow != nil {
			for _, sc := range def.Workflow.Scenarios {
				out[i].Scenarios = append(out[i].Scenarios, sc.Key)
			}
		}
	}
	return jsonResult(out)
}

func (s *Server) handleRenderDiagram(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	format := export.FormatMermaid
	if raw, ok := args["format"].(string); ok && raw != "" {
		f, err := export.ParseFormat(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		format = f
	}

	req, err := decodeRequest(args, "format")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var buf strings.Builder
	if err := s.exporter.Render(&buf, req, format); err != nil {
		return s.toolError(err), nil
	}
	s.metrics.ObserveRender(string(format))
	return mcp.NewToolResultText(buf.String()), nil
}

func (s *Server) handleWalkChain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	req, err := decodeRequest(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	frames, err := s.exporter.Walk(req)
	if err != nil {
		return s.toolError(err), nil
	}
	return jsonResult(frames)
}

// decodeRequest maps tool arguments onto an export request, ignoring the named keys.
func decodeRequest(args map[string]any, ignore ...string) (export.Request, error) {
	req := export.Request{Step: -1}
	fields := make(map[string]any, len(args))
	for k, v := range args {
		fields[k] = v
	}
	for _, k := range ignore {
		delete(fields, k)
	}

	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &req,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return req, err
	}
	if err := dec.Decode(fields); err != nil {
		return req, fmt.Errorf("invalid arguments: %w", err)
	}
	if req.Slide == "" {
		return req, errors.New("invalid arguments: slide is required")
	}
	return req, nil
}

// toolError reports domain failures to the client and logs anything unexpected.
func (s *Server) toolError(err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, domain.ErrSlideNotFound),
		errors.Is(err, domain.ErrNoDiagram),
		errors.Is(err, domain.ErrModeNotFound),
		errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrUnknownFormat):
	default:
		s.logger.Error("MCP tool failed", "err", err)
	}
	return mcp.NewToolResultError(err.Error())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return mcp.NewToolResultText(string(raw)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DeckURI, "Deck Definition",
		mcp.WithResourceDescription("The authored slides, diagrams and chains"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		raw, err := json.Marshal(s.deck)
		if err != nil {
			return nil, fmt.Errorf("failed to encode deck: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DeckURI,
				MIMEType: "application/json",
				Text:     string(raw),
			},
		}, nil
	})
}
