package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/memory"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func newExportFixture(t *testing.T) (*ExportService, *WorkspaceService) {
	t.Helper()
	ws := NewWorkspaceService(memory.NewStore(), nil)
	return NewExportService(ws), ws
}

func TestWriteJSONL(t *testing.T) {
	svc, ws := newExportFixture(t)
	ctx := context.Background()

	id, err := ws.AddDocument(ctx, "", "aspirin for fever")
	require.NoError(t, err)
	_, err = ws.AddAnnotation(ctx, id, 0, 7, "Medication", nil)
	require.NoError(t, err)
	_, err = ws.AddAnnotation(ctx, id, 12, 17, "Symptom", map[string]string{domain.AttrSource: domain.SourcePHI})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteJSONL(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, id, first["doc_id"])
	assert.Equal(t, float64(0), first["start"])
	assert.Equal(t, "aspirin", first["text"])
	assert.Equal(t, "Medication", first["label"])
	assert.Equal(t, map[string]any{}, first["attrs"], "manual annotations export empty attrs")
	assert.NotContains(t, first, "id", "annotation IDs stay internal")

	var second map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.Equal(t, map[string]any{"source": "phi"}, second["attrs"])
}

func TestWriteJSONLEmptyWorkspace(t *testing.T) {
	svc, _ := newExportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteJSONL(context.Background(), &buf))
	assert.Empty(t, buf.String())
}

func TestWriteCSV(t *testing.T) {
	svc, ws := newExportFixture(t)
	ctx := context.Background()

	id, err := ws.AddDocument(ctx, "", "aspirin, with \"quotes\" and\nnewlines")
	require.NoError(t, err)
	_, err = ws.AddAnnotation(ctx, id, 9, 35, "Other", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(ctx, &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, exportColumns, rows[0])
	assert.Equal(t, id, rows[1][0])
	assert.Equal(t, "9", rows[1][1])
	assert.Equal(t, "with \"quotes\" and\nnewlines", rows[1][3], "CSV quoting survives embedded quotes and newlines")
	assert.Equal(t, "{}", rows[1][5])
}

func TestWriteCSVHeaderAlwaysPresent(t *testing.T) {
	svc, _ := newExportFixture(t)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteCSV(context.Background(), &buf))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, exportColumns, rows[0])
}

func TestExportOrdersDocumentsByID(t *testing.T) {
	svc, ws := newExportFixture(t)
	ctx := context.Background()

	// Insert out of ID order.
	require.NoError(t, errOnly(ws.AddDocument(ctx, "doc_b", "bbb")))
	require.NoError(t, errOnly(ws.AddDocument(ctx, "doc_a", "aaa")))
	_, err := ws.AddAnnotation(ctx, "doc_b", 0, 3, "Other", nil)
	require.NoError(t, err)
	_, err = ws.AddAnnotation(ctx, "doc_a", 0, 3, "Other", nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, svc.WriteJSONL(ctx, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"doc_id":"doc_a"`)
	assert.Contains(t, lines[1], `"doc_id":"doc_b"`)
}

func errOnly(_ string, err error) error {
	return err
}
