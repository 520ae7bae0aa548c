package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/showcase/pkg/domain"
)

// NoteMetadata is the frontmatter of a speaker notes document.
// Slide defaults to the file name without extension.
type NoteMetadata struct {
	Slide string `json:"slide" mapstructure:"slide"`
	Title string `json:"title" mapstructure:"title"`
}

// Notes implements ports.NoteSource over a Loam repository of markdown files.
type Notes struct {
	Repo *loam.TypedRepository[NoteMetadata]
}

// New creates a note source over an existing repository.
func New(repo *loam.TypedRepository[NoteMetadata]) *Notes {
	return &Notes{Repo: repo}
}

// Open initializes a read-only Loam repository at dir.
func Open(dir string) (*Notes, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid notes path: %w", err)
	}
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}
	return New(loam.NewTypedRepository[NoteMetadata](repo)), nil
}

// Note returns the notes of a slide.
func (n *Notes) Note(ctx context.Context, slideID string) (domain.Note, error) {
	notes, err := n.all(ctx)
	if err != nil {
		return domain.Note{}, err
	}
	note, ok := notes[slideID]
	if !ok {
		return domain.Note{}, fmt.Errorf("%w: %s", domain.ErrNoteNotFound, slideID)
	}
	return note, nil
}

// ListNotes returns the slide IDs that have notes.
func (n *Notes) ListNotes(ctx context.Context) ([]string, error) {
	notes, err := n.all(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(notes))
	for id := range notes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// all loads every document, failing when two of them claim the same slide.
// List only carries cached metadata, so each document is read again for its body.
func (n *Notes) all(ctx context.Context) (map[string]domain.Note, error) {
	listed, err := n.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	notes := make(map[string]domain.Note, len(listed))
	paths := make(map[string]string, len(listed))
	for _, entry := range listed {
		doc, err := n.Repo.Get(ctx, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", entry.ID, err)
		}
		id := doc.Data.Slide
		if id == "" {
			id = filepath.Base(trimExtension(entry.ID))
		}
		if existing, ok := paths[id]; ok {
			return nil, fmt.Errorf("collision detected: slide '%s' has notes in both '%s' and '%s'", id, existing, entry.ID)
		}
		paths[id] = entry.ID
		notes[id] = domain.Note{
			SlideID: id,
			Title:   doc.Data.Title,
			Body:    strings.TrimSpace(doc.Content),
		}
	}
	return notes, nil
}

func trimExtension(id string) string {
	return filepath.ToSlash(strings.TrimSuffix(id, filepath.Ext(id)))
}

// Watch implements ports.Watchable, emitting the ID of every changed markdown file.
func (n *Notes) Watch(ctx context.Context) (<-chan string, error) {
	events, err := n.Repo.Watch(ctx, "**/*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)
	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- evt.ID:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}
