package ports

import (
	"context"

	"github.com/aretw0/showcase/pkg/domain"
)

// NoteSource provides speaker notes keyed by slide ID.
type NoteSource interface {
	// Note returns the notes of a slide, or domain.ErrNoteNotFound.
	Note(ctx context.Context, slideID string) (domain.Note, error)

	// ListNotes returns the slide IDs that have notes, sorted.
	ListNotes(ctx context.Context) ([]string, error)
}

// Watchable is implemented by sources that can report backend changes.
type Watchable interface {
	// Watch emits the ID of each changed document until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
