package driving

import "context"

// IngestService feeds documents from external sources into the
// workspace. Per-item failures inside a batch are logged and skipped;
// a single bad file never aborts the batch.
type IngestService interface {
	// IngestText splits pasted text on blank lines and adds each part
	// as a document. Returns the number added.
	IngestText(ctx context.Context, raw string) (int, error)

	// IngestFile loads one file (.txt, .csv, .pdf or .zip) by
	// extension. Returns the number of documents added.
	IngestFile(ctx context.Context, path string) (int, error)

	// IngestDir walks a directory for loadable files. Returns the
	// number of documents added.
	IngestDir(ctx context.Context, dir string, recursive bool) (int, error)

	// Watch ingests files as they appear in dir until ctx is done.
	Watch(ctx context.Context, dir string) error
}
