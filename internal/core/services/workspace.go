package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
)

// Ensure WorkspaceService implements the interface.
var _ driving.WorkspaceService = (*WorkspaceService)(nil)

// WorkspaceService enforces the span store's invariants in front of a
// WorkspaceStore. All validation happens here; adapters only persist.
type WorkspaceService struct {
	store driven.WorkspaceStore
	codec driven.WorkspaceCodec

	// defaultLabels is what ResetLabels restores. Empty means the
	// built-in set.
	defaultLabels []string

	// removalHooks run after a document is removed, so transient
	// per-document state held elsewhere can be dropped with it.
	removalHooks []func(docID string)
}

// NewWorkspaceService creates a new workspace service.
// The codec is optional; without it Save and Load fail.
func NewWorkspaceService(store driven.WorkspaceStore, codec driven.WorkspaceCodec) *WorkspaceService {
	return &WorkspaceService{
		store: store,
		codec: codec,
	}
}

// WithDefaultLabels sets the label set ResetLabels restores. Blank
// entries are dropped; an empty set keeps the built-in defaults.
func (s *WorkspaceService) WithDefaultLabels(labels []string) *WorkspaceService {
	s.defaultLabels = nil
	for _, l := range labels {
		if l = strings.TrimSpace(l); l != "" {
			s.defaultLabels = append(s.defaultLabels, l)
		}
	}
	return s
}

// OnDocumentRemoved registers a hook called after RemoveDocument.
func (s *WorkspaceService) OnDocumentRemoved(fn func(docID string)) {
	s.removalHooks = append(s.removalHooks, fn)
}

// AddDocument stores a document, allocating a sequence ID when id is
// empty.
func (s *WorkspaceService) AddDocument(ctx context.Context, id, text string) (string, error) {
	if id == "" {
		next, err := s.store.NextDocID(ctx)
		if err != nil {
			return "", fmt.Errorf("allocating document id: %w", err)
		}
		id = next
	}
	doc := domain.Document{ID: id, Text: text}
	if err := s.store.AddDocument(ctx, doc); err != nil {
		return "", fmt.Errorf("adding document: %w", err)
	}
	return id, nil
}

// Document retrieves a document by ID.
func (s *WorkspaceService) Document(ctx context.Context, id string) (*domain.Document, error) {
	return s.store.GetDocument(ctx, id)
}

// Documents lists all documents in insertion order.
func (s *WorkspaceService) Documents(ctx context.Context) ([]domain.Document, error) {
	return s.store.ListDocuments(ctx)
}

// RemoveDocument deletes a document with everything attached to it,
// including any transient state registered through OnDocumentRemoved.
func (s *WorkspaceService) RemoveDocument(ctx context.Context, id string) error {
	if err := s.store.RemoveDocument(ctx, id); err != nil {
		return err
	}
	for _, fn := range s.removalHooks {
		fn(id)
	}
	return nil
}

// AddAnnotation validates the span and appends a new annotation.
// The annotation's Text is captured from the document at creation time.
// Start == End is accepted; the compositor skips such spans.
func (s *WorkspaceService) AddAnnotation(ctx context.Context, docID string, start, end int, label string, attrs map[string]string) (domain.Annotation, error) {
	doc, err := s.store.GetDocument(ctx, docID)
	if err != nil {
		return domain.Annotation{}, err
	}
	if start < 0 || end > len(doc.Text) || start > end {
		return domain.Annotation{}, fmt.Errorf("%w: [%d,%d) over %d bytes", domain.ErrInvalidSpan, start, end, len(doc.Text))
	}

	ann := domain.Annotation{
		ID:    uuid.New().String(),
		DocID: docID,
		Start: start,
		End:   end,
		Text:  doc.Text[start:end],
		Label: label,
		Attrs: copyAttrs(attrs),
	}
	if err := s.store.AppendAnnotation(ctx, ann); err != nil {
		return domain.Annotation{}, fmt.Errorf("appending annotation: %w", err)
	}
	return ann, nil
}

// Annotations lists the document's annotations in insertion order.
func (s *WorkspaceService) Annotations(ctx context.Context, docID string) ([]domain.Annotation, error) {
	if _, err := s.store.GetDocument(ctx, docID); err != nil {
		return nil, err
	}
	return s.store.Annotations(ctx, docID)
}

// RemoveAnnotation deletes an annotation; relations referencing it are
// deleted with it.
func (s *WorkspaceService) RemoveAnnotation(ctx context.Context, docID, annID string) error {
	return s.store.RemoveAnnotation(ctx, docID, annID)
}

// AddRelation links two existing annotations of the document.
func (s *WorkspaceService) AddRelation(ctx context.Context, docID, headID, tailID, label string) (domain.Relation, error) {
	if headID == tailID {
		return domain.Relation{}, fmt.Errorf("%w: head and tail are the same annotation", domain.ErrInvalidRelation)
	}
	anns, err := s.Annotations(ctx, docID)
	if err != nil {
		return domain.Relation{}, err
	}
	if !containsAnnotation(anns, headID) {
		return domain.Relation{}, fmt.Errorf("%w: unknown head %s", domain.ErrInvalidRelation, headID)
	}
	if !containsAnnotation(anns, tailID) {
		return domain.Relation{}, fmt.Errorf("%w: unknown tail %s", domain.ErrInvalidRelation, tailID)
	}

	rel := domain.Relation{
		ID:     uuid.New().String(),
		DocID:  docID,
		HeadID: headID,
		TailID: tailID,
		Label:  label,
	}
	if err := s.store.AppendRelation(ctx, rel); err != nil {
		return domain.Relation{}, fmt.Errorf("appending relation: %w", err)
	}
	return rel, nil
}

// Relations lists the document's relations in insertion order.
func (s *WorkspaceService) Relations(ctx context.Context, docID string) ([]domain.Relation, error) {
	if _, err := s.store.GetDocument(ctx, docID); err != nil {
		return nil, err
	}
	return s.store.Relations(ctx, docID)
}

// RemoveRelation deletes a single relation.
func (s *WorkspaceService) RemoveRelation(ctx context.Context, docID, relID string) error {
	return s.store.RemoveRelation(ctx, docID, relID)
}

// Labels returns the ordered label set.
func (s *WorkspaceService) Labels(ctx context.Context) ([]string, error) {
	return s.store.Labels(ctx)
}

// AddLabel appends a label unless blank or already present.
func (s *WorkspaceService) AddLabel(ctx context.Context, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return fmt.Errorf("%w: blank label", domain.ErrInvalidInput)
	}
	labels, err := s.store.Labels(ctx)
	if err != nil {
		return err
	}
	for _, l := range labels {
		if l == label {
			return nil
		}
	}
	return s.store.SetLabels(ctx, append(labels, label))
}

// ResetLabels restores the default label set, the configured one when
// present.
func (s *WorkspaceService) ResetLabels(ctx context.Context) error {
	defaults := s.defaultLabels
	if len(defaults) == 0 {
		defaults = domain.DefaultLabels
	}
	return s.store.SetLabels(ctx, append([]string(nil), defaults...))
}

// Save writes the whole workspace through the codec.
func (s *WorkspaceService) Save(ctx context.Context, w io.Writer) error {
	if s.codec == nil {
		return fmt.Errorf("%w: no workspace codec configured", domain.ErrInvalidInput)
	}
	ws, err := s.store.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("snapshotting workspace: %w", err)
	}
	return s.codec.Encode(w, ws)
}

// Load replaces the whole workspace from the codec. The store is only
// touched after the document decoded cleanly.
func (s *WorkspaceService) Load(ctx context.Context, r io.Reader) error {
	if s.codec == nil {
		return fmt.Errorf("%w: no workspace codec configured", domain.ErrInvalidInput)
	}
	ws, err := s.codec.Decode(r)
	if err != nil {
		return err
	}
	return s.store.Replace(ctx, ws)
}

func containsAnnotation(anns []domain.Annotation, id string) bool {
	for _, a := range anns {
		if a.ID == id {
			return true
		}
	}
	return false
}

func copyAttrs(attrs map[string]string) map[string]string {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]string, len(attrs))
	for k, v := range attrs {
		out[k] = v
	}
	return out
}
