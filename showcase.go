package showcase

import (
	"fmt"
	"log/slog"

	"github.com/aretw0/showcase/pkg/content"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/slides"
)

// Presentation is a loaded deck ready to be mounted.
type Presentation struct {
	Deck    domain.Deck
	Entries []deck.Entry
	// Issues are lint findings. They never prevent loading.
	Issues []content.Issue
}

// Load reads the deck at path, or the embedded deck when path is empty.
func Load(path string, opts ...slides.Option) (*Presentation, error) {
	var (
		d   domain.Deck
		err error
	)
	if path == "" {
		d, err = content.Default()
	} else {
		d, err = content.Load(path)
	}
	if err != nil {
		return nil, err
	}
	return New(d, opts...)
}

// New builds a presentation from an already decoded deck.
func New(d domain.Deck, opts ...slides.Option) (*Presentation, error) {
	entries, err := content.Build(d, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build deck: %w", err)
	}
	return &Presentation{Deck: d, Entries: entries, Issues: content.Lint(d)}, nil
}

// NewController mounts the first slide (or the one chosen with deck.WithStartIndex).
func (p *Presentation) NewController(opts ...deck.Option) *deck.Controller {
	return deck.New(p.Entries, opts...)
}

// LogIssues reports lint findings as warnings.
func (p *Presentation) LogIssues(logger *slog.Logger) {
	for _, issue := range p.Issues {
		logger.Warn("deck lint", "issue", issue.String())
	}
}
