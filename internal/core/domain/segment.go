package domain

// SegmentKind distinguishes rendered output units.
type SegmentKind int

const (
	// SegmentPlain is an unannotated run of document text.
	SegmentPlain SegmentKind = iota

	// SegmentHighlight is an annotated span, optionally badged.
	SegmentHighlight
)

// Segment is one unit of the compositor's output. The full rendered
// view is the segment sequence in order; concatenating the Content of
// all segments reproduces the document text when spans are disjoint.
type Segment struct {
	// Kind is plain text or a highlighted span.
	Kind SegmentKind

	// Content is the document text covered by the segment.
	Content string

	// Label is the annotation label, highlights only.
	Label string

	// Badge is the "n/total" search-match marker, or empty.
	// Badge text is decoration: it is displayed inside the highlight
	// but is not part of the document text.
	Badge string
}

// TextNode is one text leaf of the rendered view, in display order.
// The selection resolver maps (node, offset) pairs back to document
// offsets by walking nodes and accumulating non-decorative lengths.
type TextNode struct {
	// Content is the node's text.
	Content string

	// Decoration marks nodes (match badges) whose text is not part of
	// the document. They occupy no document offsets and cannot host a
	// selection boundary.
	Decoration bool
}

// TextNodes flattens a segment sequence into its rendered text leaves:
// one node per plain segment, one per highlight content, plus one
// decorative node per non-empty badge.
func TextNodes(segments []Segment) []TextNode {
	nodes := make([]TextNode, 0, len(segments))
	for _, seg := range segments {
		nodes = append(nodes, TextNode{Content: seg.Content})
		if seg.Kind == SegmentHighlight && seg.Badge != "" {
			nodes = append(nodes, TextNode{Content: seg.Badge, Decoration: true})
		}
	}
	return nodes
}
