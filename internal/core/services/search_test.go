package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raghuraavi99/annotation-app/internal/adapters/driven/storage/memory"
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func newSearchFixture(t *testing.T, text string) (*SearchService, string) {
	t.Helper()
	ws := NewWorkspaceService(memory.NewStore(), nil)
	id, err := ws.AddDocument(context.Background(), "", text)
	require.NoError(t, err)
	return NewSearchService(ws), id
}

func TestFindCollectsMatchesAndResetsCursor(t *testing.T) {
	svc, id := newSearchFixture(t, "fever, then fever again, then FEVER")
	ctx := context.Background()

	n, err := svc.Find(ctx, id, "fever")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	st := svc.State(id)
	require.NotNil(t, st)
	assert.Equal(t, "fever", st.Term)
	assert.Equal(t, 0, st.Cursor)
	assert.Len(t, st.Positions, 3)

	// A new search replaces the old state entirely.
	svc.Next(id)
	n, err = svc.Find(ctx, id, "again")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, svc.State(id).Cursor)
}

func TestNextPrevWrap(t *testing.T) {
	svc, id := newSearchFixture(t, "ab ab ab")

	n, err := svc.Find(context.Background(), id, "ab")
	require.NoError(t, err)
	require.Equal(t, 3, n)

	first, ok := svc.Current(id)
	require.True(t, ok)
	assert.Equal(t, domain.Span{Start: 0, End: 2}, first)

	second, ok := svc.Next(id)
	require.True(t, ok)
	assert.Equal(t, domain.Span{Start: 3, End: 5}, second)

	svc.Next(id)
	wrapped, ok := svc.Next(id)
	require.True(t, ok)
	assert.Equal(t, first, wrapped, "next past the last match wraps to the first")

	back, ok := svc.Prev(id)
	require.True(t, ok)
	assert.Equal(t, domain.Span{Start: 6, End: 8}, back, "prev from the first match wraps to the last")
}

func TestNavigationWithoutMatches(t *testing.T) {
	svc, id := newSearchFixture(t, "nothing to find")

	_, ok := svc.Current(id)
	assert.False(t, ok, "no search ran yet")

	n, err := svc.Find(context.Background(), id, "absent")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, ok = svc.Next(id)
	assert.False(t, ok)
	_, ok = svc.Prev(id)
	assert.False(t, ok)
}

func TestMatchIndexMap(t *testing.T) {
	svc, id := newSearchFixture(t, "ab ab")

	_, err := svc.Find(context.Background(), id, "ab")
	require.NoError(t, err)

	idx := svc.MatchIndexMap(id)
	assert.Equal(t, map[domain.Span]int{
		{Start: 0, End: 2}: 1,
		{Start: 3, End: 5}: 2,
	}, idx)

	svc.Clear(id)
	assert.Nil(t, svc.MatchIndexMap(id))
	assert.Nil(t, svc.State(id))
}

func TestAnnotateCurrent(t *testing.T) {
	ws := NewWorkspaceService(memory.NewStore(), nil)
	svc := NewSearchService(ws)
	ctx := context.Background()

	id, err := ws.AddDocument(ctx, "", "fever and fever")
	require.NoError(t, err)

	_, err = svc.Find(ctx, id, "fever")
	require.NoError(t, err)
	svc.Next(id)

	ann, err := svc.AnnotateCurrent(ctx, id, "Symptom")
	require.NoError(t, err)
	assert.Equal(t, 10, ann.Start)
	assert.Equal(t, "fever", ann.Text)
	assert.Nil(t, ann.Attrs, "single-match annotations carry no provenance")
}

func TestAnnotateCurrentWithoutSearch(t *testing.T) {
	svc, id := newSearchFixture(t, "text")

	_, err := svc.AnnotateCurrent(context.Background(), id, "Symptom")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnnotateAll(t *testing.T) {
	ws := NewWorkspaceService(memory.NewStore(), nil)
	svc := NewSearchService(ws)
	ctx := context.Background()

	id, err := ws.AddDocument(ctx, "", "fever, fever, fever")
	require.NoError(t, err)

	_, err = svc.Find(ctx, id, "fever")
	require.NoError(t, err)

	added, err := svc.AnnotateAll(ctx, id, "Symptom")
	require.NoError(t, err)
	assert.Equal(t, 3, added)

	anns, err := ws.Annotations(ctx, id)
	require.NoError(t, err)
	require.Len(t, anns, 3)
	for _, a := range anns {
		assert.Equal(t, "Symptom", a.Label)
		assert.Equal(t, domain.SourceBatchSearch, a.Attrs[domain.AttrSource])
	}
}

func TestRemoveDocumentDropsMatchState(t *testing.T) {
	ws := NewWorkspaceService(memory.NewStore(), nil)
	svc := NewSearchService(ws)
	ctx := context.Background()

	id, err := ws.AddDocument(ctx, "", "fever and fever")
	require.NoError(t, err)

	n, err := svc.Find(ctx, id, "fever")
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.NotNil(t, svc.State(id))

	require.NoError(t, ws.RemoveDocument(ctx, id))
	assert.Nil(t, svc.State(id))

	_, ok := svc.Next(id)
	assert.False(t, ok)
}
