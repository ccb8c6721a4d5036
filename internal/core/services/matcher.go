package services

import (
	"regexp"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// FindAll returns every match of needle in haystack as [start, end)
// byte spans, in left-to-right order. Matching is case-insensitive and
// literal: the needle is escaped before compiling, so regex
// metacharacters in a query match themselves. An empty or whitespace
// needle yields no matches.
func FindAll(haystack, needle string) []domain.Span {
	if strings.TrimSpace(needle) == "" {
		return nil
	}

	// QuoteMeta output always compiles.
	re := regexp.MustCompile("(?i)" + regexp.QuoteMeta(needle))

	idx := re.FindAllStringIndex(haystack, -1)
	spans := make([]domain.Span, 0, len(idx))
	for _, m := range idx {
		spans = append(spans, domain.Span{Start: m[0], End: m[1]})
	}
	return spans
}
