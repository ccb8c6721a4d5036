package domain

// Workspace is a full snapshot of the span store: every document with
// its annotations and relations, the label set, and the document ID
// sequence counter. The codec serializes it; loading replaces the
// entire store state atomically.
type Workspace struct {
	// Documents in insertion order.
	Documents []Document

	// Annotations per document ID, each list in insertion order.
	Annotations map[string][]Annotation

	// Relations per document ID, each list in insertion order.
	Relations map[string][]Relation

	// Labels is the ordered label set.
	Labels []string

	// NextSeq is the next doc_%04d sequence number.
	NextSeq int
}

// NewWorkspace returns an empty workspace with the default labels.
func NewWorkspace() *Workspace {
	return &Workspace{
		Annotations: make(map[string][]Annotation),
		Relations:   make(map[string][]Relation),
		Labels:      append([]string(nil), DefaultLabels...),
		NextSeq:     1,
	}
}
