package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ListsMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "fever, then FEVER again")

	out, err := execute(t, "search", id, "fever")
	require.NoError(t, err)
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, `"FEVER"`)
}

func TestSearch_NoMatches(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "nothing relevant")

	out, err := execute(t, "search", id, "fever")
	require.NoError(t, err)
	assert.Contains(t, out, "No matches")
}

func TestSearch_AnnotateAll(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "fever and fever")

	out, err := execute(t, "search", id, "fever", "--label", "Symptom", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "Annotated 2 match(es) as Symptom")

	anns, err := workspaceService.Annotations(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, anns, 2)
}

func TestSearch_AnnotateFirstOnly(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "fever and fever")

	_, err := execute(t, "search", id, "fever", "--label", "Symptom")
	require.NoError(t, err)

	anns, err := workspaceService.Annotations(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, anns, 1)
	assert.Equal(t, 0, anns[0].Start)
}
