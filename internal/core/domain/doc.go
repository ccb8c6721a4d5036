// Package domain defines the core business entities for the annotation
// engine.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: an immutable text identified by a stable ID
//   - Annotation: a labelled character span over a document
//   - Relation: a labelled directed link between two annotations
//   - Segment: a unit of rendered output produced by the compositor
//   - Workspace: a full snapshot of the store, exchanged with the codec
//
// All offsets are byte offsets into the document's UTF-8 text and follow
// half-open [start, end) semantics.
package domain
