// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewDocuments is the document list view.
	ViewDocuments ViewType = iota
	// ViewAnnotate is the annotated document view.
	ViewAnnotate
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewDocuments:
		return "documents"
	case ViewAnnotate:
		return "annotate"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// DocumentsLoaded carries the document list from the workspace.
type DocumentsLoaded struct {
	Documents []domain.Document
	Err       error
}

// DocumentSelected signals a document was chosen from the list.
type DocumentSelected struct {
	Document domain.Document
}

// AnnotationsLoaded carries a document's annotations.
type AnnotationsLoaded struct {
	DocID       string
	Annotations []domain.Annotation
	Err         error
}

// SearchCompleted carries the match count for an in-document search.
type SearchCompleted struct {
	DocID   string
	Term    string
	Matches int
	Err     error
}

// AnnotationAdded signals one annotation was created.
type AnnotationAdded struct {
	Annotation domain.Annotation
	Err        error
}

// AnnotationsAdded signals a batch of annotations was created.
type AnnotationsAdded struct {
	DocID string
	Count int
	Err   error
}

// RulesApplied signals a rule run finished.
type RulesApplied struct {
	DocID   string
	Added   int
	Skipped int
	Err     error
}

// LabelsLoaded carries the ordered label set.
type LabelsLoaded struct {
	Labels []string
	Err    error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}
