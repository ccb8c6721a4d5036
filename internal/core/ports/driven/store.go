package driven

import (
	"context"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// WorkspaceStore persists documents, annotations, relations and the
// label set. Backed by memory for tests and by SQLite for the CLI.
//
// The store only holds state; invariants (span bounds, relation
// endpoints) are enforced by the workspace service before anything
// reaches the store.
type WorkspaceStore interface {
	// NextDocID allocates the next doc_%04d sequence identifier.
	NextDocID(ctx context.Context) (string, error)

	// AddDocument stores a document under its ID.
	AddDocument(ctx context.Context, doc domain.Document) error

	// GetDocument retrieves a document by ID.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// ListDocuments returns all documents in insertion order.
	ListDocuments(ctx context.Context) ([]domain.Document, error)

	// RemoveDocument deletes a document with its annotations and
	// relations. Removing an absent ID is a no-op.
	RemoveDocument(ctx context.Context, id string) error

	// AppendAnnotation appends to the document's annotation list.
	AppendAnnotation(ctx context.Context, ann domain.Annotation) error

	// Annotations returns the document's annotations in insertion order.
	Annotations(ctx context.Context, docID string) ([]domain.Annotation, error)

	// RemoveAnnotation deletes an annotation by ID and every relation
	// referencing it.
	RemoveAnnotation(ctx context.Context, docID, annID string) error

	// AppendRelation appends to the document's relation list.
	AppendRelation(ctx context.Context, rel domain.Relation) error

	// Relations returns the document's relations in insertion order.
	Relations(ctx context.Context, docID string) ([]domain.Relation, error)

	// RemoveRelation deletes a relation by ID.
	RemoveRelation(ctx context.Context, docID, relID string) error

	// Labels returns the ordered label set.
	Labels(ctx context.Context) ([]string, error)

	// SetLabels replaces the label set.
	SetLabels(ctx context.Context, labels []string) error

	// Snapshot returns a copy of the full store state.
	Snapshot(ctx context.Context) (*domain.Workspace, error)

	// Replace swaps in a full store state atomically.
	Replace(ctx context.Context, ws *domain.Workspace) error
}
