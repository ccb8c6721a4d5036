package domain

// Document is a single unit of annotatable text.
// Its text is immutable once loaded; corrections happen by deleting and
// re-adding the document, which cascades to its annotations and relations.
type Document struct {
	// ID is the unique identifier, stable once assigned.
	// Generated IDs follow the doc_%04d sequence; loaders that carry
	// their own IDs (CSV) keep them.
	ID string

	// Text is the full document text.
	Text string
}

// LoadedDoc is a loader's output before it enters the store.
// An empty ID asks the store to allocate the next sequence ID.
type LoadedDoc struct {
	// ID is the caller-supplied identifier, or empty.
	ID string

	// Text is the extracted document text.
	Text string
}
