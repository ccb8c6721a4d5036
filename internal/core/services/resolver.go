package services

import (
	"fmt"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// NodePoint addresses one selection boundary in rendered-output
// coordinates: the index of a text node in the flattened render tree
// and a byte offset within that node.
type NodePoint struct {
	// Node indexes into domain.TextNodes(segments).
	Node int

	// Offset is the byte offset within the node's content.
	Offset int
}

// ResolveSelection maps a selection made on the rendered view back to
// absolute [start, end) offsets in the document text. It walks the
// segment sequence in order, accumulating the document length that
// precedes each node, and adds each boundary's within-node offset.
//
// Reversed selections are normalised so start <= end. Collapsed
// selections fail with domain.ErrEmptySelection. A boundary that does
// not land in a known document text node (unknown index, offset past
// the node, or a decorative badge node) fails with domain.ErrNotFound;
// callers ignore the selection rather than crash.
func ResolveSelection(segments []domain.Segment, anchor, focus NodePoint) (domain.Span, error) {
	nodes := domain.TextNodes(segments)

	start, err := absoluteOffset(nodes, anchor)
	if err != nil {
		return domain.Span{}, err
	}
	end, err := absoluteOffset(nodes, focus)
	if err != nil {
		return domain.Span{}, err
	}

	if start > end {
		start, end = end, start
	}
	if start == end {
		return domain.Span{}, domain.ErrEmptySelection
	}
	return domain.Span{Start: start, End: end}, nil
}

// absoluteOffset locates the node and returns the running document
// length before it plus the within-node offset. Decorative nodes
// contribute no document length and cannot host a boundary.
func absoluteOffset(nodes []domain.TextNode, p NodePoint) (int, error) {
	if p.Node < 0 || p.Node >= len(nodes) {
		return 0, fmt.Errorf("%w: node %d outside render tree", domain.ErrNotFound, p.Node)
	}

	running := 0
	for i, n := range nodes {
		if i == p.Node {
			if n.Decoration {
				return 0, fmt.Errorf("%w: selection boundary in badge text", domain.ErrNotFound)
			}
			if p.Offset < 0 || p.Offset > len(n.Content) {
				return 0, fmt.Errorf("%w: offset %d outside node of %d bytes", domain.ErrNotFound, p.Offset, len(n.Content))
			}
			return running + p.Offset, nil
		}
		if !n.Decoration {
			running += len(n.Content)
		}
	}
	return 0, fmt.Errorf("%w: node %d outside render tree", domain.ErrNotFound, p.Node)
}
