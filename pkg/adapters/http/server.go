package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/adapters/memory"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/export"
	"github.com/aretw0/showcase/pkg/observability"
	"github.com/aretw0/showcase/pkg/ports"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/session"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mitchellh/mapstructure"
)

// Server serves the deck, its diagrams and remote presenter sessions.
type Server struct {
	deck     domain.Deck
	entries  []deck.Entry
	sessions *session.Manager
	exporter *export.Exporter
	notes    ports.NoteSource
	metrics  *observability.Metrics
	streams  *StreamManager
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithSessions replaces the default in-memory session manager.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// WithNotes serves speaker notes from src.
func WithNotes(src ports.NoteSource) Option {
	return func(s *Server) {
		s.notes = src
	}
}

// WithMetrics records requests on m and serves it at /metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger configures the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server for d, whose slides are entries.
func NewServer(d domain.Deck, entries []deck.Entry, opts ...Option) *Server {
	s := &Server{
		deck:     d,
		entries:  entries,
		exporter: export.New(entries),
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = observability.NewMetrics()
	}
	if s.sessions == nil {
		s.sessions = session.NewManager(memory.NewStore(), entries,
			session.WithLogger(s.logger),
			session.WithLifecycleHooks(s.metrics.Hooks(domain.LifecycleHooks{})),
		)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams exposes the SSE fan-out.
func (s *Server) Streams() *StreamManager {
	return s.streams
}

// Handler builds the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.getHealth)
	r.Get("/info", s.getInfo)
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/swagger", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(swaggerHTML))
	})
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	r.Get("/events", s.subscribeNotes)

	r.Route("/slides", func(r chi.Router) {
		r.Get("/", s.listSlides)
		r.Get("/{id}", s.getSlide)
		r.Get("/{id}/notes", s.getNotes)
		r.Get("/{id}/walk", s.walkChain)
		r.Get("/{id}/diagram.{ext}", s.renderDiagram)
	})

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.listSessions)
		r.Post("/", s.createSession)
		r.Get("/{id}", s.getSession)
		r.Delete("/{id}", s.deleteSession)
		r.Post("/{id}/commands", s.sendCommand)
		r.Get("/{id}/events", s.subscribeSession)
	})
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SlideSummary is one entry of GET /slides.
type SlideSummary struct {
	Index       int              `json:"index"`
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Kind        domain.SlideKind `json:"kind"`
	HasDiagram  bool             `json:"has_diagram"`
}

func (s *Server) summary(i int) SlideSummary {
	def := s.deck.Slides[i]
	return SlideSummary{
		Index:       i,
		ID:          def.ID,
		Title:       def.Title,
		Description: def.Description,
		Kind:        def.Kind,
		HasDiagram:  def.Kind != domain.KindStatic,
	}
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := Spec(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":         "showcase-http",
		"version":     strings.TrimSpace(showcase.Version),
		"api_version": apiVersion,
		"deck":        s.deck.Title,
	})
}

func (s *Server) listSlides(w http.ResponseWriter, r *http.Request) {
	out := make([]SlideSummary, len(s.deck.Slides))
	for i := range s.deck.Slides {
		out[i] = s.summary(i)
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) getSlide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	_, i, ok := s.deck.SlideByID(id)
	if !ok || i >= len(s.entries) {
		s.writeError(w, fmt.Errorf("%w: %s", domain.ErrSlideNotFound, id))
		return
	}
	slide := s.entries[i].Factory(deck.Mount{Clock: sequencer.StillClock(), Notify: func() {}})
	defer slide.Close()

	resp := map[string]any{"slide": s.summary(i)}
	if v, ok := slide.(slides.Viewer); ok {
		resp["view"] = v.View()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if s.notes == nil {
		s.writeError(w, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, id))
		return
	}
	note, err := s.notes.Note(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, note)
}

func (s *Server) walkChain(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	frames, err := s.exporter.Walk(export.Request{
		Slide:    chi.URLParam(r, "id"),
		Mode:     q.Get("mode"),
		Scenario: q.Get("scenario"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, frames)
}

func (s *Server) renderDiagram(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(chi.URLParam(r, "ext"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	q := r.URL.Query()
	req := export.Request{
		Slide:    chi.URLParam(r, "id"),
		Mode:     q.Get("mode"),
		Scenario: q.Get("scenario"),
		Focus:    q.Get("focus"),
		Step:     -1,
	}
	if raw := q.Get("step"); raw != "" {
		if req.Step, err = strconv.Atoi(raw); err != nil {
			s.writeError(w, fmt.Errorf("%w: step %q", errBadRequest, raw))
			return
		}
	}

	frame, err := s.exporter.Frame(req)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	if err := s.exporter.Write(w, frame, format); err != nil {
		s.logger.Error("diagram write failed", "slide", req.Slide, "err", err)
		return
	}
	s.metrics.ObserveRender(string(format))
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, ids)
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	snap, err := s.sessions.Create(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SessionCreated()
	w.Header().Set("Location", "/sessions/"+snap.SessionID)
	s.writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	view, snap, err := s.sessions.View(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"snapshot": snap, "view": view})
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SessionDeleted()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sendCommand(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	cmd, err := decodeCommand(body)
	if err != nil {
		s.writeError(w, err)
		return
	}

	before, snap, err := s.sessions.Transition(r.Context(), id, cmd)
	s.metrics.ObserveCommand(cmd.Name, err)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if diff := domain.Diff(before, snap); diff != nil {
		if bytes, err := json.Marshal(diff); err == nil {
			s.streams.Broadcast(id, string(bytes))
		}
	}
	s.writeJSON(w, http.StatusOK, snap)
}

// decodeCommand accepts numbers given as strings, as sent by simple remotes.
func decodeCommand(body map[string]any) (session.Command, error) {
	var cmd session.Command
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cmd,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return cmd, err
	}
	if err := dec.Decode(body); err != nil {
		return cmd, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if cmd.Name == "" {
		return cmd, fmt.Errorf("%w: missing command", errBadRequest)
	}
	return cmd, nil
}

func (s *Server) subscribeSession(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Load(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ch, cancel := s.streams.Subscribe(id)
	defer cancel()

	setStreamHeaders(w)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	if bytes, err := json.Marshal(domain.Diff(nil, snap)); err == nil {
		fmt.Fprintf(w, "data: %s\n\n", bytes)
	}
	flusher.Flush()
	s.logger.Info("SSE: subscribed to session", "session_id", id)

	for {
		select {
		case <-r.Context().Done():
			s.logger.Info("SSE: client disconnected", "session_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

// subscribeNotes streams speaker notes reloads when the note source can be watched.
func (s *Server) subscribeNotes(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}
	watchable, ok := s.notes.(ports.Watchable)
	if !ok {
		s.writeError(w, fmt.Errorf("%w: notes are not watched", errNotFound))
		return
	}
	events, err := watchable.Watch(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	setStreamHeaders(w)
	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

func setStreamHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
}

var (
	errBadRequest = errors.New("bad request")
	errNotFound   = errors.New("not found")
)

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrSlideNotFound),
		errors.Is(err, domain.ErrNoteNotFound), errors.Is(err, domain.ErrNoDiagram),
		errors.Is(err, errNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnknownCommand), errors.Is(err, domain.ErrNodeNotFound),
		errors.Is(err, domain.ErrModeNotFound), errors.Is(err, domain.ErrUnknownFormat),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrGateClosed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLockFailed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}
