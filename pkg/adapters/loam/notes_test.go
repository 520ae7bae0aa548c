package loam_test

import (
	"context"
	"testing"

	"github.com/aretw0/loam"
	"github.com/aretw0/showcase/internal/testutils"
	loamNotes "github.com/aretw0/showcase/pkg/adapters/loam"
	"github.com/aretw0/showcase/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_Contract(t *testing.T) {
	_, repo := testutils.SetupNotesRepo(t, map[string]string{
		"cover.md": `---
title: Opening
---
Ask who has shipped an agent to production.`,
		"components.md": `---
slide: architecture
---
Click Memory first. It is the most underinvested component.`,
		"talk/workflow.md": `---
slide: workflow
title: Live demo
---
Let the decision gate time out once, then approve manually.`,
	})

	notes := loamNotes.New(loam.NewTypedRepository[loamNotes.NoteMetadata](repo))
	tests.NoteSourceContractTest(t, notes, map[string]string{
		"cover":        "Ask who has shipped an agent to production.",
		"architecture": "Click Memory first. It is the most underinvested component.",
		"workflow":     "Let the decision gate time out once, then approve manually.",
	})

	note, err := notes.Note(context.Background(), "workflow")
	require.NoError(t, err)
	assert.Equal(t, "Live demo", note.Title)
}

func TestNotes_DetectsCollisions(t *testing.T) {
	_, repo := testutils.SetupNotesRepo(t, map[string]string{
		"cover.md": `---
title: One
---
first`,
		"intro.md": `---
slide: cover
---
second`,
	})

	notes := loamNotes.New(loam.NewTypedRepository[loamNotes.NoteMetadata](repo))
	_, err := notes.ListNotes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collision detected")
}

func TestOpen(t *testing.T) {
	dir, _ := testutils.SetupNotesRepo(t, map[string]string{
		"research.md": `---
title: Wrap-up
---
End on the four takeaways.`,
	})

	notes, err := loamNotes.Open(dir)
	require.NoError(t, err)

	ids, err := notes.ListNotes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"research"}, ids)

	note, err := notes.Note(context.Background(), "research")
	require.NoError(t, err)
	assert.Equal(t, "Wrap-up", note.Title)
	assert.Equal(t, "End on the four takeaways.", note.Body)
}

func TestNotes_BodyIsRead(t *testing.T) {
	_, repo := testutils.SetupNotesRepo(t, map[string]string{
		"cover.md": "---\ntitle: Cover\n---\nhello body",
	})

	notes := loamNotes.New(loam.NewTypedRepository[loamNotes.NoteMetadata](repo))
	note, err := notes.Note(context.Background(), "cover")
	require.NoError(t, err)
	assert.Equal(t, "hello body", note.Body)
}
