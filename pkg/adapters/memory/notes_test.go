package memory_test

import (
	"testing"

	"github.com/aretw0/showcase/pkg/adapters/memory"
	"github.com/aretw0/showcase/pkg/domain"
	"github.com/aretw0/showcase/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotes_Contract(t *testing.T) {
	want := map[string]string{
		"cover":        "Open with the notebook vs production gap.",
		"architecture": "Click each component before running the flow.",
	}
	tests.NoteSourceContractTest(t, memory.NewNotes(want), want)
}

func TestNewFromNotes(t *testing.T) {
	src, err := memory.NewFromNotes(domain.Note{SlideID: "workflow", Title: "Live demo", Body: "Let the gate time out once."})
	require.NoError(t, err)
	tests.NoteSourceContractTest(t, src, map[string]string{"workflow": "Let the gate time out once."})

	_, err = memory.NewFromNotes(domain.Note{Body: "orphan"})
	assert.Error(t, err)
}
