package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// exportColumns is the fixed column order of the tabular export.
var exportColumns = []string{"doc_id", "start", "end", "text", "label", "attrs"}

// exportRecord is one annotation in export form. Annotation IDs are an
// internal concern and stay out of exports.
type exportRecord struct {
	DocID string            `json:"doc_id"`
	Start int               `json:"start"`
	End   int               `json:"end"`
	Text  string            `json:"text"`
	Label string            `json:"label"`
	Attrs map[string]string `json:"attrs"`
}

// ExportService writes one-way annotation exports from the workspace.
type ExportService struct {
	workspace driving.WorkspaceService
}

// NewExportService creates a new export service.
func NewExportService(workspace driving.WorkspaceService) *ExportService {
	return &ExportService{workspace: workspace}
}

// WriteJSONL writes one JSON record per annotation, documents in ID
// order, annotations in insertion order.
func (s *ExportService) WriteJSONL(ctx context.Context, w io.Writer) error {
	enc := json.NewEncoder(w)
	return s.forEachAnnotation(ctx, func(a domain.Annotation) error {
		return enc.Encode(exportRecord{
			DocID: a.DocID,
			Start: a.Start,
			End:   a.End,
			Text:  a.Text,
			Label: a.Label,
			Attrs: nonNilAttrs(a.Attrs),
		})
	})
}

// WriteCSV writes the tabular export. The header row is always
// present; attrs cells hold the JSON encoding of the attribute map.
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	err := s.forEachAnnotation(ctx, func(a domain.Annotation) error {
		attrs, err := json.Marshal(nonNilAttrs(a.Attrs))
		if err != nil {
			return fmt.Errorf("encoding attrs: %w", err)
		}
		return cw.Write([]string{
			a.DocID,
			strconv.Itoa(a.Start),
			strconv.Itoa(a.End),
			a.Text,
			a.Label,
			string(attrs),
		})
	})
	if err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// forEachAnnotation visits every annotation, documents sorted by ID,
// annotations in insertion order.
func (s *ExportService) forEachAnnotation(ctx context.Context, fn func(domain.Annotation) error) error {
	docs, err := s.workspace.Documents(ctx)
	if err != nil {
		return err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })

	for _, doc := range docs {
		anns, err := s.workspace.Annotations(ctx, doc.ID)
		if err != nil {
			return err
		}
		for _, a := range anns {
			if err := fn(a); err != nil {
				return err
			}
		}
	}
	return nil
}

func nonNilAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return map[string]string{}
	}
	return attrs
}
