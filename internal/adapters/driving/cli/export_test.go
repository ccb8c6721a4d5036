package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportCSV_HeaderOnStdout(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute(t, "export", "csv")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "doc_id,start,end,text,label,attrs"))
}

func TestExportJSONL_ToFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	id := addTestDocument(t, "Patient has fever.")
	_, err := execute(t, "annotation", "add", id, "12", "17", "Symptom")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := execute(t, "export", "jsonl", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"text":"fever"`)
	assert.Contains(t, string(data), `"label":"Symptom"`)
}
