package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/showcase/pkg/adapters/memory"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/slides"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func staticEntries(ids ...string) []deck.Entry {
	entries := make([]deck.Entry, len(ids))
	for i, id := range ids {
		def := domain.SlideDef{ID: id, Title: id, Kind: domain.KindStatic}
		entries[i] = deck.Entry{ID: id, Title: id, Factory: func(m deck.Mount) deck.Slide {
			return slides.NewStatic(def, m)
		}}
	}
	return entries
}

func TestManager_LocksAreReleased(t *testing.T) {
	mgr := NewManager(memory.NewStore(), staticEntries("cover", "end"))
	ctx := context.Background()

	for range 500 {
		snap, err := mgr.Create(ctx)
		require.NoError(t, err)
		_, err = mgr.Apply(ctx, snap.SessionID, Command{Name: CmdNext})
		require.NoError(t, err)
		require.NoError(t, mgr.Delete(ctx, snap.SessionID))
	}
	for i := range 500 {
		_, _ = mgr.Load(ctx, fmt.Sprintf("missing-%d", i))
	}

	assert.Empty(t, mgr.locks, "lock entries must not outlive their sessions")
}
