package driving

import (
	"context"
	"io"
)

// ExportService writes one-way annotation exports.
type ExportService interface {
	// WriteJSONL writes one JSON record per annotation, documents in
	// ID order, annotations in insertion order.
	WriteJSONL(ctx context.Context, w io.Writer) error

	// WriteCSV writes the tabular export with the fixed column order
	// doc_id,start,end,text,label,attrs. The header row is always
	// present, even with no annotations.
	WriteCSV(ctx context.Context, w io.Writer) error
}
