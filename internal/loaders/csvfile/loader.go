// Package csvfile loads .csv files carrying their own document IDs.
// The file must have id and text columns; other columns are ignored.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles id,text CSV input.
type Loader struct{}

// New creates a new CSV loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".csv"}
}

// Load reads one document per row. A missing id or text column fails
// with domain.ErrBadFormat.
func (l *Loader) Load(_ context.Context, name string, data []byte) ([]domain.LoadedDoc, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: reading header: %v", domain.ErrBadFormat, name, err)
	}

	idCol, textCol := -1, -1
	for i, col := range header {
		switch col {
		case "id":
			idCol = i
		case "text":
			textCol = i
		}
	}
	if idCol < 0 || textCol < 0 {
		return nil, fmt.Errorf("%w: %s: needs columns id,text", domain.ErrBadFormat, name)
	}

	var docs []domain.LoadedDoc
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrBadFormat, name, err)
		}
		if idCol >= len(row) || textCol >= len(row) {
			return nil, fmt.Errorf("%w: %s: short row", domain.ErrBadFormat, name)
		}
		docs = append(docs, domain.LoadedDoc{ID: row[idCol], Text: row[textCol]})
	}
	return docs, nil
}
