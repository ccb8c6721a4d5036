package services

import (
	"fmt"
	"sort"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// Render composites a document's text with its annotations into an
// ordered segment sequence: plain runs for unannotated text and
// highlights for spans, badged "n/total" when the span appears in
// matchIndex (the 1-based numbering from the search service).
//
// The sweep assumes disjoint or end-touching spans. Overlapping spans
// are not merged or nested: a span starting inside the previous one
// re-emits its full text, as the upstream renderer did. Stale bounds
// are clamped to [0, len(text)].
//
// Render is pure: identical inputs produce identical output, so it is
// safe to call on every interaction.
func Render(text string, anns []domain.Annotation, matchIndex map[domain.Span]int) []domain.Segment {
	ordered := append([]domain.Annotation(nil), anns...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Start < ordered[j].Start
	})

	total := len(matchIndex)
	var segments []domain.Segment
	cursor := 0

	for _, a := range ordered {
		s := clamp(a.Start, len(text))
		e := clamp(a.End, len(text))
		if s == e {
			// Zero-length spans have nothing to display.
			continue
		}
		if s > cursor {
			segments = append(segments, domain.Segment{
				Kind:    domain.SegmentPlain,
				Content: text[cursor:s],
			})
		}
		seg := domain.Segment{
			Kind:    domain.SegmentHighlight,
			Content: text[s:e],
			Label:   a.Label,
		}
		if n, ok := matchIndex[domain.Span{Start: s, End: e}]; ok && total > 0 {
			seg.Badge = fmt.Sprintf("%d/%d", n, total)
		}
		segments = append(segments, seg)
		cursor = e
	}

	if cursor < len(text) {
		segments = append(segments, domain.Segment{
			Kind:    domain.SegmentPlain,
			Content: text[cursor:],
		})
	}
	return segments
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
