package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/aretw0/showcase/pkg/domain"
)

// Notes implements ports.NoteSource using an in-memory map.
type Notes struct {
	notes map[string]domain.Note
}

// NewNotes creates a note source from slide IDs to markdown bodies.
func NewNotes(bodies map[string]string) *Notes {
	notes := make(map[string]domain.Note, len(bodies))
	for id, body := range bodies {
		notes[id] = domain.Note{SlideID: id, Body: body}
	}
	return &Notes{notes: notes}
}

// NewFromNotes creates a note source from domain notes.
func NewFromNotes(notes ...domain.Note) (*Notes, error) {
	data := make(map[string]domain.Note, len(notes))
	for _, n := range notes {
		if n.SlideID == "" {
			return nil, fmt.Errorf("note missing slide ID")
		}
		data[n.SlideID] = n
	}
	return &Notes{notes: data}, nil
}

// Note returns the notes of a slide.
func (n *Notes) Note(_ context.Context, slideID string) (domain.Note, error) {
	note, ok := n.notes[slideID]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, slideID)
	}
	return note, nil
}

// ListNotes returns all slide IDs with notes.
func (n *Notes) ListNotes(_ context.Context) ([]string, error) {
	keys := make([]string, 0, len(n.notes))
	for k := range n.notes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
