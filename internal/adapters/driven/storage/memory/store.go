// Package memory provides an in-memory workspace store, used by tests
// and as the reference implementation for the SQLite adapter.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.WorkspaceStore = (*Store)(nil)

// Store is an in-memory implementation of driven.WorkspaceStore.
type Store struct {
	mu       sync.RWMutex
	docs     map[string]domain.Document
	docOrder []string
	anns     map[string][]domain.Annotation
	rels     map[string][]domain.Relation
	labels   []string
	nextSeq  int
}

// NewStore creates an empty in-memory workspace store with the default
// label set.
func NewStore() *Store {
	return &Store{
		docs:    make(map[string]domain.Document),
		anns:    make(map[string][]domain.Annotation),
		rels:    make(map[string][]domain.Relation),
		labels:  append([]string(nil), domain.DefaultLabels...),
		nextSeq: 1,
	}
}

// NextDocID allocates the next doc_%04d sequence identifier.
func (s *Store) NextDocID(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := fmt.Sprintf("doc_%04d", s.nextSeq)
	s.nextSeq++
	return id, nil
}

// AddDocument stores a document. Re-adding an ID replaces its text but
// keeps existing annotations, matching id-bearing CSV reload semantics.
func (s *Store) AddDocument(_ context.Context, doc domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[doc.ID]; !ok {
		s.docOrder = append(s.docOrder, doc.ID)
	}
	s.docs[doc.ID] = doc
	return nil
}

// GetDocument retrieves a document by ID.
func (s *Store) GetDocument(_ context.Context, id string) (*domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// ListDocuments returns all documents in insertion order.
func (s *Store) ListDocuments(_ context.Context) ([]domain.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.Document, 0, len(s.docOrder))
	for _, id := range s.docOrder {
		docs = append(docs, s.docs[id])
	}
	return docs, nil
}

// RemoveDocument deletes a document with its annotations and
// relations. Absent IDs are ignored.
func (s *Store) RemoveDocument(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return nil
	}
	delete(s.docs, id)
	delete(s.anns, id)
	delete(s.rels, id)
	for i, d := range s.docOrder {
		if d == id {
			s.docOrder = append(s.docOrder[:i], s.docOrder[i+1:]...)
			break
		}
	}
	return nil
}

// AppendAnnotation appends to the document's annotation list.
func (s *Store) AppendAnnotation(_ context.Context, ann domain.Annotation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[ann.DocID]; !ok {
		return domain.ErrNotFound
	}
	s.anns[ann.DocID] = append(s.anns[ann.DocID], ann)
	return nil
}

// Annotations returns the document's annotations in insertion order.
func (s *Store) Annotations(_ context.Context, docID string) ([]domain.Annotation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Annotation(nil), s.anns[docID]...), nil
}

// RemoveAnnotation deletes an annotation and every relation that
// references it.
func (s *Store) RemoveAnnotation(_ context.Context, docID, annID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	anns := s.anns[docID]
	found := false
	for i, a := range anns {
		if a.ID == annID {
			s.anns[docID] = append(anns[:i], anns[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return domain.ErrNotFound
	}

	kept := s.rels[docID][:0]
	for _, r := range s.rels[docID] {
		if r.HeadID != annID && r.TailID != annID {
			kept = append(kept, r)
		}
	}
	s.rels[docID] = kept
	return nil
}

// AppendRelation appends to the document's relation list.
func (s *Store) AppendRelation(_ context.Context, rel domain.Relation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[rel.DocID]; !ok {
		return domain.ErrNotFound
	}
	s.rels[rel.DocID] = append(s.rels[rel.DocID], rel)
	return nil
}

// Relations returns the document's relations in insertion order.
func (s *Store) Relations(_ context.Context, docID string) ([]domain.Relation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.Relation(nil), s.rels[docID]...), nil
}

// RemoveRelation deletes a relation by ID.
func (s *Store) RemoveRelation(_ context.Context, docID, relID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rels := s.rels[docID]
	for i, r := range rels {
		if r.ID == relID {
			s.rels[docID] = append(rels[:i], rels[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// Labels returns the ordered label set.
func (s *Store) Labels(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.labels...), nil
}

// SetLabels replaces the label set.
func (s *Store) SetLabels(_ context.Context, labels []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels = domain.NormaliseLabels(labels)
	return nil
}

// Snapshot returns a copy of the full store state.
func (s *Store) Snapshot(_ context.Context) (*domain.Workspace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ws := domain.NewWorkspace()
	ws.Labels = append([]string(nil), s.labels...)
	ws.NextSeq = s.nextSeq
	for _, id := range s.docOrder {
		ws.Documents = append(ws.Documents, s.docs[id])
		if anns := s.anns[id]; len(anns) > 0 {
			ws.Annotations[id] = append([]domain.Annotation(nil), anns...)
		}
		if rels := s.rels[id]; len(rels) > 0 {
			ws.Relations[id] = append([]domain.Relation(nil), rels...)
		}
	}
	return ws, nil
}

// Replace swaps in a full store state atomically.
func (s *Store) Replace(_ context.Context, ws *domain.Workspace) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.docs = make(map[string]domain.Document, len(ws.Documents))
	s.docOrder = s.docOrder[:0]
	s.anns = make(map[string][]domain.Annotation)
	s.rels = make(map[string][]domain.Relation)

	for _, doc := range ws.Documents {
		s.docs[doc.ID] = doc
		s.docOrder = append(s.docOrder, doc.ID)
		if anns := ws.Annotations[doc.ID]; len(anns) > 0 {
			s.anns[doc.ID] = append([]domain.Annotation(nil), anns...)
		}
		if rels := ws.Relations[doc.ID]; len(rels) > 0 {
			s.rels[doc.ID] = append([]domain.Relation(nil), rels...)
		}
	}

	s.labels = domain.NormaliseLabels(ws.Labels)
	s.nextSeq = nextSeqAfter(ws)
	return nil
}

// nextSeqAfter keeps the sequence counter ahead of every doc_%04d ID
// already present, so re-loaded workspaces never collide.
func nextSeqAfter(ws *domain.Workspace) int {
	next := ws.NextSeq
	if next < 1 {
		next = 1
	}
	for _, doc := range ws.Documents {
		var n int
		if _, err := fmt.Sscanf(doc.ID, "doc_%d", &n); err == nil && n >= next {
			next = n + 1
		}
	}
	return next
}
