package slides

import (
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
)

// Static is a slide with a markdown body and no behavior.
type Static struct {
	def domain.SlideDef
}

// NewStatic mounts a static slide.
func NewStatic(def domain.SlideDef, _ deck.Mount) *Static {
	return &Static{def: def}
}

func (s *Static) ID() string    { return s.def.ID }
func (s *Static) Title() string { return s.def.Title }
func (s *Static) Close()        {}

// View implements Viewer.
func (s *Static) View() View {
	return View{SlideID: s.def.ID, Title: s.def.Title, Kind: domain.KindStatic, Body: s.def.Body}
}
