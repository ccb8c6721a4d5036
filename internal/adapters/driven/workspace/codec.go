// Package workspace implements the versioned JSON workspace document:
// the save/load format carrying documents, annotations, labels and
// relations.
package workspace

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/google/uuid"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// FormatVersion is the current workspace document version.
// Version 2 added relations.
const FormatVersion = 2

// Ensure JSONCodec implements the interface.
var _ driven.WorkspaceCodec = (*JSONCodec)(nil)

// JSONCodec reads and writes workspace JSON documents.
type JSONCodec struct{}

// NewJSONCodec creates a new workspace JSON codec.
func NewJSONCodec() *JSONCodec {
	return &JSONCodec{}
}

// fileDoc is the on-disk shape of a workspace.
type fileDoc struct {
	Version   int                         `json:"version"`
	Docs      map[string]string           `json:"docs"`
	Anns      map[string][]fileAnnotation `json:"anns"`
	Labels    []string                    `json:"labels"`
	Relations map[string][]fileRelation   `json:"relations"`
}

// fileAnnotation carries the annotation record. The id field is this
// implementation's addition; files written by older tools omit it and
// get fresh IDs on load.
type fileAnnotation struct {
	ID    string            `json:"id,omitempty"`
	DocID string            `json:"doc_id"`
	Start int               `json:"start"`
	End   int               `json:"end"`
	Text  string            `json:"text"`
	Label string            `json:"label"`
	Attrs map[string]string `json:"attrs"`
}

// fileRelation keeps the established wire shape: endpoints are
// positions in the document's annotation list. They are mapped to and
// from annotation IDs at this boundary.
type fileRelation struct {
	DocID   string `json:"doc_id"`
	HeadIdx int    `json:"head_idx"`
	TailIdx int    `json:"tail_idx"`
	Label   string `json:"label"`
}

// Encode writes the snapshot as a workspace JSON document.
func (c *JSONCodec) Encode(w io.Writer, ws *domain.Workspace) error {
	doc := fileDoc{
		Version:   FormatVersion,
		Docs:      make(map[string]string, len(ws.Documents)),
		Anns:      make(map[string][]fileAnnotation, len(ws.Documents)),
		Labels:    ws.Labels,
		Relations: make(map[string][]fileRelation, len(ws.Documents)),
	}

	for _, d := range ws.Documents {
		doc.Docs[d.ID] = d.Text

		anns := ws.Annotations[d.ID]
		fileAnns := make([]fileAnnotation, 0, len(anns))
		idxByID := make(map[string]int, len(anns))
		for i, a := range anns {
			idxByID[a.ID] = i
			fileAnns = append(fileAnns, fileAnnotation{
				ID:    a.ID,
				DocID: a.DocID,
				Start: a.Start,
				End:   a.End,
				Text:  a.Text,
				Label: a.Label,
				Attrs: a.Attrs,
			})
		}
		doc.Anns[d.ID] = fileAnns

		rels := ws.Relations[d.ID]
		fileRels := make([]fileRelation, 0, len(rels))
		for _, r := range rels {
			head, headOK := idxByID[r.HeadID]
			tail, tailOK := idxByID[r.TailID]
			if !headOK || !tailOK {
				// A relation without both endpoints cannot be expressed
				// in the index-keyed wire shape.
				logger.Warn("dropping relation %s: endpoint not in annotation list", r.ID)
				continue
			}
			fileRels = append(fileRels, fileRelation{
				DocID:   r.DocID,
				HeadIdx: head,
				TailIdx: tail,
				Label:   r.Label,
			})
		}
		doc.Relations[d.ID] = fileRels
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding workspace: %w", err)
	}
	return nil
}

// Decode reads a workspace JSON document into a snapshot. Relations
// with out-of-range endpoints are skipped with a warning; corrupt JSON
// fails with domain.ErrBadFormat and no snapshot.
func (c *JSONCodec) Decode(r io.Reader) (*domain.Workspace, error) {
	var doc fileDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decoding workspace: %v", domain.ErrBadFormat, err)
	}

	ws := domain.NewWorkspace()
	if len(doc.Labels) > 0 {
		ws.Labels = domain.NormaliseLabels(doc.Labels)
	}

	// JSON objects carry no order; document order is reconstructed by ID.
	ids := make([]string, 0, len(doc.Docs))
	for id := range doc.Docs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		ws.Documents = append(ws.Documents, domain.Document{ID: id, Text: doc.Docs[id]})

		anns := make([]domain.Annotation, 0, len(doc.Anns[id]))
		for _, fa := range doc.Anns[id] {
			annID := fa.ID
			if annID == "" {
				annID = uuid.New().String()
			}
			anns = append(anns, domain.Annotation{
				ID:    annID,
				DocID: id,
				Start: fa.Start,
				End:   fa.End,
				Text:  fa.Text,
				Label: fa.Label,
				Attrs: fa.Attrs,
			})
		}
		if len(anns) > 0 {
			ws.Annotations[id] = anns
		}

		for _, fr := range doc.Relations[id] {
			if fr.HeadIdx < 0 || fr.HeadIdx >= len(anns) ||
				fr.TailIdx < 0 || fr.TailIdx >= len(anns) {
				logger.Warn("skipping relation in %s: index out of range", id)
				continue
			}
			ws.Relations[id] = append(ws.Relations[id], domain.Relation{
				ID:     uuid.New().String(),
				DocID:  id,
				HeadID: anns[fr.HeadIdx].ID,
				TailID: anns[fr.TailIdx].ID,
				Label:  fr.Label,
			})
		}
	}

	return ws, nil
}
