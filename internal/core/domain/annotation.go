package domain

// Provenance attribute values recorded in Annotation.Attrs under the
// "source" key. Annotations without attrs were created manually.
const (
	// AttrSource is the attrs key that tags how an annotation was created.
	AttrSource = "source"

	// SourceGazetteer marks annotations produced by gazetteer rules.
	SourceGazetteer = "gazetteer"

	// SourceBatchSearch marks annotations added for all matches of a search.
	SourceBatchSearch = "batch-search"

	// SourcePHI marks annotations produced by the built-in PHI rules.
	SourcePHI = "phi"
)

// Annotation is a labelled character span [Start, End) over a document's
// text. Annotations are immutable after creation; a correction is a
// delete followed by a re-add.
type Annotation struct {
	// ID is a generated opaque identifier, stable for the annotation's
	// lifetime. Relations reference annotations by this ID rather than
	// by list position, so deleting an annotation cannot silently
	// re-target a relation.
	ID string `json:"id"`

	// DocID is the owning document.
	DocID string `json:"doc_id"`

	// Start is the inclusive start offset.
	Start int `json:"start"`

	// End is the exclusive end offset. Start == End is permitted; such
	// zero-length spans are kept in the store but never rendered.
	End int `json:"end"`

	// Text is the document text covered by [Start, End) at creation time.
	Text string `json:"text"`

	// Label is a free-form tag. It is not a foreign key into the label
	// set: removing a label leaves existing annotations untouched.
	Label string `json:"label"`

	// Attrs carries open string metadata, mainly provenance.
	// Nil for manual annotations.
	Attrs map[string]string `json:"attrs,omitempty"`
}

// Span is a half-open [Start, End) offset pair.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Span returns the annotation's offsets.
func (a Annotation) Span() Span {
	return Span{Start: a.Start, End: a.End}
}

// MatchState is the transient search state for a single document.
// It is owned by the search service, scoped to the displayed document,
// and never persisted.
type MatchState struct {
	// Term is the query the positions were collected for.
	Term string

	// Positions are the matches in left-to-right order.
	Positions []Span

	// Cursor is the index of the current match within Positions.
	Cursor int
}
