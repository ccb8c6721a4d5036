package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRulesApply_Gazetteer(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "baby aspirin daily for fever")
	config.CaseInsensitive = true

	path := filepath.Join(t.TempDir(), "gaz.csv")
	require.NoError(t, os.WriteFile(path,
		[]byte("label,term\nMedication,aspirin\nSymptom,fever\n"), 0600))

	out, err := execute(t, "rules", "apply", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 annotation(s)")

	anns, err := workspaceService.Annotations(context.Background(), id)
	require.NoError(t, err)
	assert.Len(t, anns, 2)
}

func TestRulesApply_MissingFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "rules", "apply", "/nonexistent/gaz.csv")
	assert.Error(t, err)
}

func TestRulesPHI_SingleDocument(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	target := addTestDocument(t, "Call (555) 123-4567")
	other := addTestDocument(t, "Email x@example.com")

	out, err := execute(t, "rules", "phi", "--doc", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 1 annotation(s)")

	anns, err := workspaceService.Annotations(context.Background(), other)
	require.NoError(t, err)
	assert.Empty(t, anns, "--doc scopes the run to one document")
}
