package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// Ensure RuleService implements the interface.
var _ driving.RuleService = (*RuleService)(nil)

// metacharacters that promote a term from whole-word literal to pattern.
const patternMeta = `.*+?[](){}|\`

// RuleService applies (label, term) rule lists against documents.
type RuleService struct {
	workspace driving.WorkspaceService
}

// NewRuleService creates a new rule service.
func NewRuleService(workspace driving.WorkspaceService) *RuleService {
	return &RuleService{workspace: workspace}
}

// Apply runs the rules against one document in list order. All matches
// of a rule are added before the next rule starts. A rule whose pattern
// does not compile is skipped with a warning; the rest continue.
func (s *RuleService) Apply(ctx context.Context, docID string, rules []domain.Rule, opts driving.RuleOptions) (driving.RuleReport, error) {
	var report driving.RuleReport

	doc, err := s.workspace.Document(ctx, docID)
	if err != nil {
		return report, err
	}

	source := opts.Source
	if source == "" {
		source = domain.SourceGazetteer
	}
	attrs := map[string]string{domain.AttrSource: source}

	for _, rule := range rules {
		spans, err := matchRule(doc.Text, rule.Term, opts.CaseInsensitive)
		if err != nil {
			logger.Warn("rule %q skipped: %v", rule.Term, err)
			report.Skipped++
			continue
		}
		for _, span := range spans {
			if _, err := s.workspace.AddAnnotation(ctx, docID, span.Start, span.End, rule.Label, attrs); err != nil {
				return report, fmt.Errorf("annotating %s match: %w", rule.Label, err)
			}
			report.Added++
		}
	}
	return report, nil
}

// ApplyAll runs the rules against every document.
func (s *RuleService) ApplyAll(ctx context.Context, rules []domain.Rule, opts driving.RuleOptions) (driving.RuleReport, error) {
	var total driving.RuleReport
	docs, err := s.workspace.Documents(ctx)
	if err != nil {
		return total, err
	}
	for _, doc := range docs {
		report, err := s.Apply(ctx, doc.ID, rules, opts)
		total.Added += report.Added
		total.Skipped += report.Skipped
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ApplyPHI runs the built-in PHI rule set against one document.
func (s *RuleService) ApplyPHI(ctx context.Context, docID string) (driving.RuleReport, error) {
	return s.Apply(ctx, docID, PHIRules, driving.RuleOptions{
		CaseInsensitive: true,
		Source:          domain.SourcePHI,
	})
}

// ApplyPHIAll runs the built-in PHI rule set against every document.
func (s *RuleService) ApplyPHIAll(ctx context.Context) (driving.RuleReport, error) {
	return s.ApplyAll(ctx, PHIRules, driving.RuleOptions{
		CaseInsensitive: true,
		Source:          domain.SourcePHI,
	})
}

// matchRule returns the spans term matches in text. Plain terms match
// as whole words; terms carrying a metacharacter compile as patterns
// verbatim. Compile errors are reported as domain.ErrBadFormat.
func matchRule(text, term string, caseInsensitive bool) ([]domain.Span, error) {
	plain := !strings.ContainsAny(term, patternMeta)

	pattern := term
	if plain {
		pattern = regexp.QuoteMeta(term)
	}
	if caseInsensitive {
		pattern = "(?i)" + pattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrBadFormat, err)
	}

	var spans []domain.Span
	for _, m := range re.FindAllStringIndex(text, -1) {
		span := domain.Span{Start: m[0], End: m[1]}
		if plain && !wholeWord(text, span) {
			continue
		}
		spans = append(spans, span)
	}
	return spans, nil
}

// wholeWord reports whether the span is not immediately adjacent to a
// word character on either side. Deliberately not regexp's \b, which
// misfires for terms that start or end with punctuation.
func wholeWord(text string, span domain.Span) bool {
	if span.Start > 0 && isWordByte(text[span.Start-1]) {
		return false
	}
	if span.End < len(text) && isWordByte(text[span.End]) {
		return false
	}
	return true
}

func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
