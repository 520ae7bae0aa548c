package content

import (
	"fmt"

	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/slides"
)

// Build turns slide definitions into deck entries.
// Each factory call mounts a fresh slide, so timers never outlive a visit.
func Build(d domain.Deck, opts ...slides.Option) ([]deck.Entry, error) {
	entries := make([]deck.Entry, 0, len(d.Slides))
	for _, def := range d.Slides {
		f, err := factory(def, opts)
		if err != nil {
			return nil, err
		}
		entries = append(entries, deck.Entry{
			ID:          def.ID,
			Title:       def.Title,
			Description: def.Description,
			Factory:     f,
		})
	}
	return entries, nil
}

func factory(def domain.SlideDef, opts []slides.Option) (deck.Factory, error) {
	switch def.Kind {
	case domain.KindStatic:
		return func(m deck.Mount) deck.Slide { return slides.NewStatic(def, m) }, nil
	case domain.KindWalkthrough:
		if def.Walkthrough == nil || len(def.Walkthrough.Modes) == 0 {
			return nil, fmt.Errorf("%w: slide %s has no walkthrough modes", domain.ErrInvalidContent, def.ID)
		}
		return func(m deck.Mount) deck.Slide { return slides.NewWalkthrough(def, m, opts...) }, nil
	case domain.KindWorkflow:
		if def.Workflow == nil || len(def.Workflow.Agents) == 0 {
			return nil, fmt.Errorf("%w: slide %s has no workflow agents", domain.ErrInvalidContent, def.ID)
		}
		return func(m deck.Mount) deck.Slide { return slides.NewWorkflow(def, m, opts...) }, nil
	default:
		return nil, fmt.Errorf("%w: slide %s has unknown kind %q", domain.ErrInvalidContent, def.ID, def.Kind)
	}
}
