package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func TestNextDocIDSequence(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	id, err := s.NextDocID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc_0001", id)

	id, err = s.NextDocID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc_0002", id)
}

func TestDocumentLifecycle(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "a", Text: "first"}))
	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "b", Text: "second"}))

	docs, err := s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a", docs[0].ID, "insertion order preserved")

	doc, err := s.GetDocument(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "first", doc.Text)

	_, err = s.GetDocument(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.RemoveDocument(ctx, "a"))
	require.NoError(t, s.RemoveDocument(ctx, "a"), "removing an absent ID is a no-op")

	docs, err = s.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b", docs[0].ID)
}

func TestRemoveDocumentCascades(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "a", Text: "some text"}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann1", DocID: "a", Start: 0, End: 4}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann2", DocID: "a", Start: 5, End: 9}))
	require.NoError(t, s.AppendRelation(ctx, domain.Relation{ID: "rel1", DocID: "a", HeadID: "ann1", TailID: "ann2"}))

	require.NoError(t, s.RemoveDocument(ctx, "a"))

	anns, err := s.Annotations(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, anns)

	rels, err := s.Relations(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, rels)
}

func TestRemoveAnnotationCascadesRelations(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "a", Text: "some text"}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann1", DocID: "a"}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann2", DocID: "a"}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann3", DocID: "a"}))
	require.NoError(t, s.AppendRelation(ctx, domain.Relation{ID: "rel1", DocID: "a", HeadID: "ann1", TailID: "ann2"}))
	require.NoError(t, s.AppendRelation(ctx, domain.Relation{ID: "rel2", DocID: "a", HeadID: "ann2", TailID: "ann3"}))

	require.NoError(t, s.RemoveAnnotation(ctx, "a", "ann1"))

	rels, err := s.Relations(ctx, "a")
	require.NoError(t, err)
	require.Len(t, rels, 1)
	assert.Equal(t, "rel2", rels[0].ID)

	err = s.RemoveAnnotation(ctx, "a", "ann1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAppendToUnknownDocument(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	err := s.AppendAnnotation(ctx, domain.Annotation{ID: "x", DocID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = s.AppendRelation(ctx, domain.Relation{ID: "x", DocID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveRelation(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "a"}))
	require.NoError(t, s.AppendRelation(ctx, domain.Relation{ID: "rel1", DocID: "a"}))

	require.NoError(t, s.RemoveRelation(ctx, "a", "rel1"))
	err := s.RemoveRelation(ctx, "a", "rel1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshotReplaceRoundTrip(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "doc_0005", Text: "text"}))
	require.NoError(t, s.AppendAnnotation(ctx, domain.Annotation{ID: "ann1", DocID: "doc_0005", Start: 0, End: 4, Text: "text"}))
	require.NoError(t, s.SetLabels(ctx, []string{"One", "Two"}))

	ws, err := s.Snapshot(ctx)
	require.NoError(t, err)

	other := NewStore()
	require.NoError(t, other.Replace(ctx, ws))

	docs, err := other.ListDocuments(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	anns, err := other.Annotations(ctx, "doc_0005")
	require.NoError(t, err)
	require.Len(t, anns, 1)

	labels, err := other.Labels(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two"}, labels)

	// Sequence counter is bumped past restored doc_%04d IDs.
	next, err := other.NextDocID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "doc_0006", next)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.AddDocument(ctx, domain.Document{ID: "a", Text: "text"}))

	ws, err := s.Snapshot(ctx)
	require.NoError(t, err)
	ws.Documents[0].Text = "mutated"

	doc, err := s.GetDocument(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "text", doc.Text)
}
