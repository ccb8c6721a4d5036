package driving

import (
	"context"
	"io"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// WorkspaceService is the span store's public contract: document,
// annotation, relation and label operations, plus save/load through
// the workspace codec.
type WorkspaceService interface {
	// AddDocument stores a document. An empty id allocates the next
	// sequence ID. Returns the document's ID.
	AddDocument(ctx context.Context, id, text string) (string, error)

	// Document retrieves a document by ID.
	Document(ctx context.Context, id string) (*domain.Document, error)

	// Documents lists all documents in insertion order.
	Documents(ctx context.Context) ([]domain.Document, error)

	// RemoveDocument deletes a document, cascading to its annotations
	// and relations. Absent IDs are ignored.
	RemoveDocument(ctx context.Context, id string) error

	// AddAnnotation validates [start, end) against the document text
	// and appends a new annotation. Fails with domain.ErrInvalidSpan
	// on bad bounds.
	AddAnnotation(ctx context.Context, docID string, start, end int, label string, attrs map[string]string) (domain.Annotation, error)

	// Annotations lists the document's annotations in insertion order.
	Annotations(ctx context.Context, docID string) ([]domain.Annotation, error)

	// RemoveAnnotation deletes an annotation and every relation that
	// references it.
	RemoveAnnotation(ctx context.Context, docID, annID string) error

	// AddRelation links two annotations of the same document. Fails
	// with domain.ErrInvalidRelation when head equals tail or either
	// endpoint is unknown.
	AddRelation(ctx context.Context, docID, headID, tailID, label string) (domain.Relation, error)

	// Relations lists the document's relations in insertion order.
	Relations(ctx context.Context, docID string) ([]domain.Relation, error)

	// RemoveRelation deletes a single relation.
	RemoveRelation(ctx context.Context, docID, relID string) error

	// Labels returns the ordered label set.
	Labels(ctx context.Context) ([]string, error)

	// AddLabel appends a label unless already present.
	AddLabel(ctx context.Context, label string) error

	// ResetLabels restores the default label set.
	ResetLabels(ctx context.Context) error

	// Save writes the whole workspace through the codec.
	Save(ctx context.Context, w io.Writer) error

	// Load replaces the whole workspace from the codec. On failure the
	// current state is untouched.
	Load(ctx context.Context, r io.Reader) error
}
