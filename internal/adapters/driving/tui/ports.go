// Package tui provides the interactive annotation terminal interface.
// It is a driving adapter over the core services.
package tui

import (
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces the TUI needs.
type Ports struct {
	// Workspace provides document, annotation, relation and label
	// operations.
	Workspace driving.WorkspaceService

	// Search provides in-document term matching and navigation.
	Search driving.SearchService

	// Rules runs gazetteer and PHI pre-annotation.
	Rules driving.RuleService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Workspace == nil {
		return ErrMissingWorkspaceService
	}
	if p.Search == nil {
		return ErrMissingSearchService
	}
	if p.Rules == nil {
		return ErrMissingRuleService
	}
	return nil
}
