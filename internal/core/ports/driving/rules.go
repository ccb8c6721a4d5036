package driving

import (
	"context"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// RuleOptions control how a rule set is applied.
type RuleOptions struct {
	// CaseInsensitive matches terms and patterns case-insensitively.
	CaseInsensitive bool

	// Source is the provenance tag written to Attrs["source"].
	// Defaults to domain.SourceGazetteer.
	Source string
}

// RuleReport summarises one rule application.
type RuleReport struct {
	// Added is the number of annotations created.
	Added int

	// Skipped is the number of rules dropped for unparsable patterns.
	Skipped int
}

// RuleService applies (label, term) rule lists against documents,
// producing provenance-tagged annotations. Used by gazetteer
// pre-annotation and the built-in PHI finder.
type RuleService interface {
	// Apply runs the rules against one document in list order. An
	// unparsable pattern skips that rule; the rest continue.
	Apply(ctx context.Context, docID string, rules []domain.Rule, opts RuleOptions) (RuleReport, error)

	// ApplyAll runs the rules against every document.
	ApplyAll(ctx context.Context, rules []domain.Rule, opts RuleOptions) (RuleReport, error)

	// ApplyPHI runs the built-in PHI rule set against one document.
	ApplyPHI(ctx context.Context, docID string) (RuleReport, error)

	// ApplyPHIAll runs the built-in PHI rule set against every document.
	ApplyPHIAll(ctx context.Context) (RuleReport, error)
}
