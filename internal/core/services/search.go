package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// Ensure SearchService implements the interface.
var _ driving.SearchService = (*SearchService)(nil)

// SearchService wraps FindAll with the transient per-document match
// state: the collected positions and a wrapping cursor. State lives in
// memory only and is dropped when the document is removed or a new
// search runs.
type SearchService struct {
	workspace driving.WorkspaceService

	mu     sync.Mutex
	states map[string]*domain.MatchState
}

// NewSearchService creates a new search service. Match state is
// dropped together with its document when the workspace supports
// removal hooks.
func NewSearchService(workspace driving.WorkspaceService) *SearchService {
	s := &SearchService{
		workspace: workspace,
		states:    make(map[string]*domain.MatchState),
	}
	if ws, ok := workspace.(*WorkspaceService); ok {
		ws.OnDocumentRemoved(s.Clear)
	}
	return s
}

// Find collects all matches of term in the document and resets the
// cursor to the first one.
func (s *SearchService) Find(ctx context.Context, docID, term string) (int, error) {
	doc, err := s.workspace.Document(ctx, docID)
	if err != nil {
		return 0, err
	}

	positions := FindAll(doc.Text, term)
	logger.Debug("search %q in %s: %d match(es)", term, docID, len(positions))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[docID] = &domain.MatchState{
		Term:      term,
		Positions: positions,
		Cursor:    0,
	}
	return len(positions), nil
}

// State returns a copy of the document's match state, or nil.
func (s *SearchService) State(docID string) *domain.MatchState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[docID]
	if !ok {
		return nil
	}
	out := *st
	out.Positions = append([]domain.Span(nil), st.Positions...)
	return &out
}

// Next advances the cursor, wrapping past the last match.
func (s *SearchService) Next(docID string) (domain.Span, bool) {
	return s.move(docID, 1)
}

// Prev moves the cursor back, wrapping past the first match.
func (s *SearchService) Prev(docID string) (domain.Span, bool) {
	return s.move(docID, -1)
}

// Current returns the match under the cursor.
func (s *SearchService) Current(docID string) (domain.Span, bool) {
	return s.move(docID, 0)
}

func (s *SearchService) move(docID string, delta int) (domain.Span, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[docID]
	if !ok || len(st.Positions) == 0 {
		return domain.Span{}, false
	}
	n := len(st.Positions)
	st.Cursor = ((st.Cursor+delta)%n + n) % n
	return st.Positions[st.Cursor], true
}

// MatchIndexMap returns the 1-based numbering of the collected matches
// keyed by span, for badge rendering.
func (s *SearchService) MatchIndexMap(docID string) map[domain.Span]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[docID]
	if !ok || len(st.Positions) == 0 {
		return nil
	}
	out := make(map[domain.Span]int, len(st.Positions))
	for i, p := range st.Positions {
		out[p] = i + 1
	}
	return out
}

// Clear drops the document's match state.
func (s *SearchService) Clear(docID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, docID)
}

// AnnotateCurrent annotates the match under the cursor with label.
func (s *SearchService) AnnotateCurrent(ctx context.Context, docID, label string) (domain.Annotation, error) {
	span, ok := s.Current(docID)
	if !ok {
		return domain.Annotation{}, fmt.Errorf("%w: no current match for %s", domain.ErrNotFound, docID)
	}
	return s.workspace.AddAnnotation(ctx, docID, span.Start, span.End, label, nil)
}

// AnnotateAll annotates every collected match with label, tagged with
// source=batch-search provenance.
func (s *SearchService) AnnotateAll(ctx context.Context, docID, label string) (int, error) {
	st := s.State(docID)
	if st == nil || len(st.Positions) == 0 {
		return 0, nil
	}
	attrs := map[string]string{domain.AttrSource: domain.SourceBatchSearch}
	added := 0
	for _, span := range st.Positions {
		if _, err := s.workspace.AddAnnotation(ctx, docID, span.Start, span.End, label, attrs); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}
