package domain

// Relation is a labelled directed link between two annotations of the
// same document. Head and tail are referenced by annotation ID; a
// relation never outlives either endpoint.
type Relation struct {
	// ID is a generated opaque identifier.
	ID string `json:"id"`

	// DocID is the owning document.
	DocID string `json:"doc_id"`

	// HeadID is the annotation ID of the head span.
	HeadID string `json:"head_id"`

	// TailID is the annotation ID of the tail span.
	TailID string `json:"tail_id"`

	// Label is a free-form relation type, e.g. "relates_to".
	Label string `json:"label"`
}
