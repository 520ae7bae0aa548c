package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/ports"
)

// NoteSourceContractTest verifies that an adapter complies with ports.NoteSource.
// want maps slide IDs to the expected note bodies.
func NoteSourceContractTest(t *testing.T, src ports.NoteSource, want map[string]string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Note_Success", func(t *testing.T) {
		for id, body := range want {
			note, err := src.Note(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting note %s: %v", id, err)
			}
			if note.SlideID != id {
				t.Errorf("slide id mismatch: got %q, want %q", note.SlideID, id)
			}
			if note.Body != body {
				t.Errorf("body mismatch for %s. got %q, want %q", id, note.Body, body)
			}
		}
	})

	t.Run("Note_NotFound", func(t *testing.T) {
		_, err := src.Note(ctx, "non-existent-slide")
		if !errors.Is(err, domain.ErrNoteNotFound) {
			t.Errorf("expected ErrNoteNotFound, got %v", err)
		}
	})

	t.Run("ListNotes", func(t *testing.T) {
		ids, err := src.ListNotes(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing notes: %v", err)
		}
		if len(ids) != len(want) {
			t.Errorf("expected %d notes, got %d", len(want), len(ids))
		}
		for i := 1; i < len(ids); i++ {
			if ids[i-1] > ids[i] {
				t.Errorf("ids not sorted: %v", ids)
				break
			}
		}
		lookup := make(map[string]bool)
		for _, id := range ids {
			lookup[id] = true
		}
		for id := range want {
			if !lookup[id] {
				t.Errorf("note %s missing from list", id)
			}
		}
	})
}
