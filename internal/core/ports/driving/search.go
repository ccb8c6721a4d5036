package driving

import (
	"context"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// SearchService finds term matches within a document and keeps the
// transient per-document match state (positions plus a cursor) that the
// prev/next navigation and badge numbering are built on.
type SearchService interface {
	// Find collects all matches of term in the document and resets the
	// cursor. Returns the number of matches.
	Find(ctx context.Context, docID, term string) (int, error)

	// State returns the current match state, or nil when no search ran
	// for the document.
	State(docID string) *domain.MatchState

	// Next advances the cursor, wrapping around. Returns the new
	// current match, or false when there are no matches.
	Next(docID string) (domain.Span, bool)

	// Prev moves the cursor back, wrapping around.
	Prev(docID string) (domain.Span, bool)

	// Current returns the match under the cursor.
	Current(docID string) (domain.Span, bool)

	// MatchIndexMap returns the 1-based badge numbering keyed by span.
	MatchIndexMap(docID string) map[domain.Span]int

	// Clear drops the document's match state.
	Clear(docID string)

	// AnnotateCurrent annotates the match under the cursor.
	AnnotateCurrent(ctx context.Context, docID, label string) (domain.Annotation, error)

	// AnnotateAll annotates every collected match, tagging provenance
	// with source=batch-search. Returns the number added.
	AnnotateAll(ctx context.Context, docID, label string) (int, error)
}
