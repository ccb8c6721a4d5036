package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/memory"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/loaders"
	"github.com/raghuraavi99/annotation-app/internal/loaders/csvfile"
	"github.com/raghuraavi99/annotation-app/internal/loaders/plaintext"
)

func newIngestFixture(t *testing.T) (*IngestService, *WorkspaceService) {
	t.Helper()
	ws := NewWorkspaceService(memory.NewStore(), nil)
	registry := loaders.NewRegistry(plaintext.New(), csvfile.New())
	return NewIngestService(ws, registry), ws
}

func TestIngestTextSplitsOnBlankLines(t *testing.T) {
	svc, ws := newIngestFixture(t)
	ctx := context.Background()

	n, err := svc.IngestText(ctx, "first note\nstill first\n\nsecond note\n\n\nthird")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	docs, err := ws.Documents(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, "first note\nstill first", docs[0].Text)
	assert.Equal(t, "second note", docs[1].Text)
	assert.Equal(t, "third", docs[2].Text)
}

func TestIngestFileRoutesOnExtension(t *testing.T) {
	svc, ws := newIngestFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("only note"), 0600))

	n, err := svc.IngestFile(ctx, txt)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	csvPath := filepath.Join(dir, "notes.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte("id,text\nn1,from csv\n"), 0600))

	n, err = svc.IngestFile(ctx, csvPath)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	doc, err := ws.Document(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "from csv", doc.Text)
}

func TestIngestFileUnknownExtension(t *testing.T) {
	svc, _ := newIngestFixture(t)

	_, err := svc.IngestFile(context.Background(), "report.docx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestIngestDirSkipsBadFiles(t *testing.T) {
	svc, ws := newIngestFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("good note"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"), []byte("wrong,columns\n1,2\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("another note"), 0600))

	n, err := svc.IngestDir(ctx, dir, false)
	require.NoError(t, err, "one bad file never aborts the batch")
	assert.Equal(t, 2, n)

	docs, err := ws.Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestIngestDirRecursive(t *testing.T) {
	svc, _ := newIngestFixture(t)
	ctx := context.Background()
	dir := t.TempDir()

	sub := filepath.Join(dir, "nested", "deep")
	require.NoError(t, os.MkdirAll(sub, 0700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "top.txt"), []byte("top"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "leaf.txt"), []byte("leaf"), 0600))

	n, err := svc.IngestDir(ctx, dir, false)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "flat walk ignores subdirectories")

	svc2, _ := newIngestFixture(t)
	n, err = svc2.IngestDir(ctx, dir, true)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestIngestDirRejectsNonDirectory(t *testing.T) {
	svc, _ := newIngestFixture(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "f.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	_, err := svc.IngestDir(context.Background(), file, false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.IngestDir(context.Background(), filepath.Join(dir, "missing"), false)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWatchLoadsExistingFiles(t *testing.T) {
	svc, ws := newIngestFixture(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("Pre-existing note."), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.docx"), []byte("x"), 0o644))

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := svc.Watch(ctx, dir)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	docs, err := ws.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Pre-existing note.", docs[0].Text)
}

func TestWatchRejectsMissingDirectory(t *testing.T) {
	svc, _ := newIngestFixture(t)

	err := svc.Watch(context.Background(), filepath.Join(t.TempDir(), "gone"))
	assert.Error(t, err)
}
