package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/aretw0/showcase/internal/presentation/graph"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/diagram"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/sequencer"
	"github.com/aretw0/showcase/pkg/slides"
)

// Default text canvas size.
const (
	DefaultCols = 100
	DefaultRows = 28
)

// Request selects a diagram state. Step -1 is the idle diagram; Focus wins over Step.
type Request struct {
	Slide    string `json:"slide" mapstructure:"slide"`
	Mode     string `json:"mode,omitempty" mapstructure:"mode"`
	Scenario string `json:"scenario,omitempty" mapstructure:"scenario"`
	Step     int    `json:"step" mapstructure:"step"`
	Focus    string `json:"focus,omitempty" mapstructure:"focus"`
}

// Frame is a resolved diagram state.
type Frame struct {
	Slide      string         `json:"slide"`
	Mode       string         `json:"mode,omitempty"`
	Step       int            `json:"step"`
	Length     int            `json:"length"`
	Current    string         `json:"current,omitempty"`
	Active     []string       `json:"active,omitempty"`
	Annotation string         `json:"annotation,omitempty"`
	Scene      *diagram.Scene `json:"-"`
}

// Exporter renders diagrams of a deck.
type Exporter struct {
	entries    []deck.Entry
	cols, rows int
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithTextSize sets the canvas of the ascii format.
func WithTextSize(cols, rows int) Option {
	return func(e *Exporter) {
		if cols > 0 {
			e.cols = cols
		}
		if rows > 0 {
			e.rows = rows
		}
	}
}

// New creates an exporter over entries.
func New(entries []deck.Entry, opts ...Option) *Exporter {
	e := &Exporter{entries: entries, cols: DefaultCols, rows: DefaultRows}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Diagrams lists the ids of the slides that have a diagram.
func (e *Exporter) Diagrams() []string {
	var ids []string
	for _, entry := range e.entries {
		slide := mount(entry)
		if v, ok := slide.(slides.Viewer); ok && v.View().Diagram != nil {
			ids = append(ids, entry.ID)
		}
		slide.Close()
	}
	return ids
}

// Frame resolves req.
func (e *Exporter) Frame(req Request) (*Frame, error) {
	var frame *Frame
	err := e.with(req, func(slide deck.Slide, seq *sequencer.Sequencer) error {
		switch {
		case req.Focus != "":
			seq.SelectNode(req.Focus)
		case req.Step >= 0:
			if !seq.Seek(req.Step) {
				return fmt.Errorf("%w: step %d of %d", domain.ErrNodeNotFound, req.Step, seq.Snapshot().Length)
			}
		}
		frame = capture(slide)
		return nil
	})
	return frame, err
}

// Walk resolves the idle diagram followed by every step of the chain.
func (e *Exporter) Walk(req Request) ([]Frame, error) {
	var frames []Frame
	err := e.with(req, func(slide deck.Slide, seq *sequencer.Sequencer) error {
		frames = append(frames, *capture(slide))
		for i := range seq.Snapshot().Length {
			seq.Seek(i)
			frames = append(frames, *capture(slide))
		}
		return nil
	})
	return frames, err
}

// Render resolves req and writes it in format.
func (e *Exporter) Render(w io.Writer, req Request, format Format) error {
	frame, err := e.Frame(req)
	if err != nil {
		return err
	}
	return e.Write(w, frame, format)
}

// Write encodes a resolved frame.
func (e *Exporter) Write(w io.Writer, f *Frame, format Format) error {
	switch format {
	case FormatSVG:
		return diagram.WriteSVG(w, f.Scene)
	case FormatMermaid:
		_, err := io.WriteString(w, graph.GenerateMermaid(f.Scene))
		return err
	case FormatASCII:
		_, err := io.WriteString(w, diagram.RenderText(f.Scene, e.cols, e.rows).String())
		return err
	}
	return fmt.Errorf("%w: %q", domain.ErrUnknownFormat, format)
}

// with mounts the requested slide in the requested mode and scenario.
func (e *Exporter) with(req Request, fn func(deck.Slide, *sequencer.Sequencer) error) error {
	i := slices.IndexFunc(e.entries, func(entry deck.Entry) bool { return entry.ID == req.Slide })
	if i < 0 {
		return fmt.Errorf("%w: %s", domain.ErrSlideNotFound, req.Slide)
	}
	slide := mount(e.entries[i])
	defer slide.Close()

	v, isViewer := slide.(slides.Viewer)
	s, isSequenced := slide.(slides.Sequenced)
	if !isViewer || !isSequenced {
		return fmt.Errorf("%w: %s", domain.ErrNoDiagram, req.Slide)
	}
	view := v.View()
	if view.Diagram == nil {
		return fmt.Errorf("%w: %s", domain.ErrNoDiagram, req.Slide)
	}
	if req.Mode != "" && req.Mode != view.Mode {
		ms, ok := slide.(slides.ModeSwitcher)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrModeNotFound, req.Mode)
		}
		if err := ms.SwitchMode(req.Mode); err != nil {
			return err
		}
	}
	if req.Scenario != "" && req.Scenario != view.ScenarioKey {
		ss, ok := slide.(slides.ScenarioSwitcher)
		if !ok {
			return fmt.Errorf("%w: %s", domain.ErrModeNotFound, req.Scenario)
		}
		if err := ss.SwitchScenario(req.Scenario); err != nil {
			return err
		}
	}
	if req.Focus != "" {
		if _, ok := v.View().Diagram.NodeByID(req.Focus); !ok {
			return fmt.Errorf("%w: %s", domain.ErrNodeNotFound, req.Focus)
		}
	}
	return fn(slide, s.Sequencer())
}

func mount(entry deck.Entry) deck.Slide {
	return entry.Factory(deck.Mount{Clock: sequencer.StillClock(), Notify: func() {}})
}

func capture(slide deck.Slide) *Frame {
	view := slide.(slides.Viewer).View()
	return &Frame{
		Slide:      view.SlideID,
		Mode:       view.Mode,
		Step:       view.Sequence.Index,
		Length:     view.Sequence.Length,
		Current:    view.Sequence.Current,
		Active:     view.Sequence.Active,
		Annotation: view.Annotation,
		Scene:      diagram.Layout(*view.Diagram, view.Highlight),
	}
}
