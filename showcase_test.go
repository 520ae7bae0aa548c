package showcase_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/showcase"
	"github.com/aretw0/showcase/internal/testutils"
	"github.com/aretw0/showcase/pkg/content"
	"github.com/aretw0/showcase/pkg/deck"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	p, err := showcase.Load("")
	require.NoError(t, err)
	assert.Empty(t, p.Issues)
	require.Len(t, p.Entries, len(p.Deck.Slides))

	ctrl := p.NewController(deck.WithClock(testutils.NewFakeClock()))
	defer ctrl.Close()
	assert.Equal(t, "01/09", ctrl.State().Counter())
	assert.True(t, ctrl.Next())
	assert.Equal(t, "architecture", ctrl.State().SlideID)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deck.yaml")
	raw := strings.Join([]string{
		"title: Tiny",
		"slides:",
		"  - id: only",
		"    title: Only",
		"    kind: walkthrough",
		"    walkthrough:",
		"      modes:",
		"        - name: default",
		"          diagram:",
		"            nodes: [{ id: a, label: A, x: 10, y: 10 }]",
		"            edges: [{ from: a, to: ghost }]",
		"          chain: [a]",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	p, err := showcase.Load(path)
	require.NoError(t, err)
	require.Len(t, p.Issues, 1)
	assert.Contains(t, p.Issues[0].Msg, "ghost")

	_, err = showcase.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNew_Rejects(t *testing.T) {
	_, err := showcase.New(domain.Deck{Slides: []domain.SlideDef{{ID: "x", Kind: "hologram"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidContent)

	_, err = content.Parse([]byte("title: x\nslides: []\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidContent)
}
