package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/showcase/internal/logging"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/ports"
	"github.com/aretw0/showcase/pkg/slides"
)

// Default canvas used before the terminal reports its size.
const (
	defaultWidth  = 100
	defaultHeight = 40
	minDiagramRow = 12
)

type changedMsg struct{}

type noteMsg struct {
	slideID string
	body    string
	err     error
}

// Model is the bubbletea presenter of a deck.
type Model struct {
	ctrl     *deck.Controller
	changes  chan struct{}
	notes    ports.NoteSource
	markdown func(string) string
	logger   *slog.Logger

	keys   KeyMap
	help   help.Model
	styles styles

	width, height int
	showNotes     bool
	note          noteMsg
}

// Option configures the Model.
type Option func(*config)

type config struct {
	deckOpts []deck.Option
	notes    ports.NoteSource
	markdown func(string) string
	logger   *slog.Logger
}

// WithDeckOptions passes options to the underlying deck controller.
func WithDeckOptions(opts ...deck.Option) Option {
	return func(c *config) {
		c.deckOpts = append(c.deckOpts, opts...)
	}
}

// WithNotes shows speaker notes from src in the notes pane.
func WithNotes(src ports.NoteSource) Option {
	return func(c *config) {
		c.notes = src
	}
}

// WithMarkdown replaces the glamour renderer.
func WithMarkdown(render func(string) string) Option {
	return func(c *config) {
		c.markdown = render
	}
}

// WithLogger sets the presenter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// NewModel mounts entries and returns the presenter. Close releases the deck.
func NewModel(entries []deck.Entry, opts ...Option) *Model {
	cfg := config{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.markdown == nil {
		cfg.markdown = NewRenderer(defaultWidth - 4)
	}

	m := &Model{
		changes:  make(chan struct{}, 1),
		notes:    cfg.notes,
		markdown: cfg.markdown,
		logger:   cfg.logger,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		styles:   defaultStyles(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	deckOpts := append([]deck.Option{deck.WithLogger(cfg.logger)}, cfg.deckOpts...)
	deckOpts = append(deckOpts, deck.WithOnChange(func(deck.State) { m.signal() }))
	m.ctrl = deck.New(entries, deckOpts...)
	return m
}

// Controller exposes the deck being presented.
func (m *Model) Controller() *deck.Controller {
	return m.ctrl
}

// Close unmounts the current slide.
func (m *Model) Close() {
	m.ctrl.Close()
}

// signal coalesces deck changes; the program only needs to know something changed.
func (m *Model) signal() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	return func() tea.Msg {
		<-m.changes
		return changedMsg{}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		return m, tea.Batch(m.waitForChange(), m.loadNote())
	case noteMsg:
		m.note = msg
		return m, nil
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	state := m.ctrl.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Close()
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Notes):
		m.showNotes = !m.showNotes
		return m.loadNote()
	case key.Matches(msg, m.keys.Nav):
		m.ctrl.ToggleNav()
	case state.NavOpen && key.Matches(msg, m.keys.Select):
		n, _ := strconv.Atoi(msg.String())
		m.ctrl.GoTo(n - 1)
	case key.Matches(msg, m.keys.Next):
		m.ctrl.Next()
	case key.Matches(msg, m.keys.Previous):
		m.ctrl.Previous()
	case key.Matches(msg, m.keys.First):
		m.ctrl.First()
	case key.Matches(msg, m.keys.Last):
		m.ctrl.Last()
	default:
		if !m.ctrl.HandleKey(msg.String()) {
			m.logger.Debug("key ignored", "key", msg.String(), "slide", state.SlideID)
		}
	}
	return nil
}

// loadNote fetches the notes of the current slide when the pane is open and stale.
func (m *Model) loadNote() tea.Cmd {
	if !m.showNotes || m.notes == nil {
		return nil
	}
	id := m.ctrl.State().SlideID
	if m.note.slideID == id && m.note.err == nil {
		return nil
	}
	src := m.notes
	return func() tea.Msg {
		note, err := src.Note(context.Background(), id)
		return noteMsg{slideID: id, body: note.Body, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	state := m.ctrl.State()
	slide := m.ctrl.Current()
	var view slides.View
	if v, ok := slide.(slides.Viewer); ok {
		view = v.View()
	} else if slide != nil {
		view = slides.View{SlideID: slide.ID(), Title: slide.Title()}
	}

	var b strings.Builder
	b.WriteString(m.header(state, view))
	b.WriteString("\n\n")
	if state.NavOpen {
		b.WriteString(m.navList(state))
		b.WriteString("\n\n")
	}

	if view.Body != "" {
		b.WriteString(m.markdown(view.Body))
		b.WriteString("\n\n")
	}
	if view.Diagram != nil {
		b.WriteString(m.diagramBlock(view))
		b.WriteString("\n")
		b.WriteString(m.statusLine(view))
		b.WriteString("\n")
	}
	if len(view.Cards) > 0 {
		b.WriteString(m.cardsRow(view.Cards))
		b.WriteString("\n")
	}
	if len(view.KPIs) > 0 {
		b.WriteString(m.kpiRow(view.KPIs))
		b.WriteString("\n")
	}
	if side := m.sidePanel(view); side != "" {
		b.WriteString(side)
		b.WriteString("\n")
	}
	if m.showNotes {
		b.WriteString(m.notesPane(state))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) header(state deck.State, view slides.View) string {
	parts := []string{
		m.styles.counter.Render(state.Counter()),
		m.styles.title.Render(view.Title),
	}
	if len(view.Modes) > 1 {
		parts = append(parts, m.styles.badge.Render(view.Mode))
	}
	if view.Scenario != "" {
		parts = append(parts, m.styles.badge.Render(view.Scenario))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) navList(state deck.State) string {
	lines := make([]string, 0, len(m.ctrl.Entries()))
	for i, e := range m.ctrl.Entries() {
		line := fmt.Sprintf("%d. %s", i+1, e.Title)
		if i == state.Index {
			line = m.styles.navCurrent.Render("> " + line)
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return m.styles.nav.Render(strings.Join(lines, "\n"))
}

func (m *Model) diagramBlock(view slides.View) string {
	rows := m.height / 2
	if rows < minDiagramRow {
		rows = minDiagramRow
	}
	scene := diagram.Layout(*view.Diagram, view.Highlight)
	canvas := diagram.RenderText(scene, m.width, rows)
	return renderCanvas(canvas)
}

// renderCanvas styles runs of cells that share a kind and category.
func renderCanvas(c *diagram.TextCanvas) string {
	lines := make([]string, 0, c.Rows)
	for _, row := range c.Cells {
		var line strings.Builder
		start := 0
		for i := 1; i <= len(row); i++ {
			if i < len(row) && row[i].Kind == row[start].Kind && row[i].Category == row[start].Category {
				continue
			}
			var run strings.Builder
			for _, cell := range row[start:i] {
				run.WriteRune(cell.Rune)
			}
			if row[start].Kind == diagram.CellEmpty {
				line.WriteString(run.String())
			} else {
				line.WriteString(cellStyle(row[start]).Render(run.String()))
			}
			start = i
		}
		lines = append(lines, strings.TrimRight(line.String(), " "))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) statusLine(view slides.View) string {
	var parts []string
	if view.Button != "" {
		parts = append(parts, m.styles.button.Render(view.Button))
	}
	if view.Narration != "" {
		parts = append(parts, m.styles.narration.Render(view.Narration))
	}
	if view.Annotation != "" {
		parts = append(parts, m.styles.annotation.Render(view.Annotation))
	}
	if view.Sequence.AutoPlaying {
		parts = append(parts, m.styles.muted.Render("auto"))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) cardsRow(cards []slides.Card) string {
	boxes := make([]string, 0, len(cards))
	for _, c := range cards {
		if c.State == slides.CardHidden {
			continue
		}
		body := c.Label
		if c.Sub != "" {
			body += "\n" + m.styles.muted.Render(c.Sub)
		}
		if c.Output != "" {
			body += "\n" + c.Output
		}
		boxes = append(boxes, cardStyle(c.State).Render(body))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func (m *Model) kpiRow(kpis []slides.KPI) string {
	parts := make([]string, len(kpis))
	for i, k := range kpis {
		parts[i] = m.styles.muted.Render(k.Label+": ") + toneStyle(k.Tone).Render(k.Value)
	}
	return strings.Join(parts, "   ")
}

func (m *Model) sidePanel(view slides.View) string {
	var blocks []string
	if view.Gate != nil {
		gate := "Decision required: " + strings.Join(view.Gate.Options, " / ")
		if view.Gate.AutoResolve {
			gate += m.styles.muted.Render(fmt.Sprintf(" (auto in %s)", view.Gate.Timeout))
		}
		blocks = append(blocks, m.styles.gate.Render(gate))
	}
	if view.Detail != nil {
		body := m.styles.heading.Render(view.Detail.Title) + "\n" + strings.Join(view.Detail.Lines, "\n")
		blocks = append(blocks, m.styles.panel.Render(body))
	}
	for _, s := range view.Sections {
		if len(s.Items) == 0 {
			continue
		}
		body := m.styles.heading.Render(s.Heading) + "\n" + strings.Join(s.Items, "\n")
		blocks = append(blocks, m.styles.panel.Render(body))
	}
	if len(blocks) == 0 {
		return ""
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func (m *Model) notesPane(state deck.State) string {
	var body string
	switch {
	case m.notes == nil:
		body = m.styles.muted.Render("No notes source. Start with --notes DIR.")
	case m.note.slideID != state.SlideID:
		body = m.styles.muted.Render("Loading notes...")
	case errors.Is(m.note.err, domain.ErrNoteNotFound):
		body = m.styles.muted.Render("No notes for this slide.")
	case m.note.err != nil:
		body = m.styles.errorLine.Render(m.note.err.Error())
	default:
		body = m.markdown(m.note.body)
	}
	return m.styles.notes.Render(body)
}
