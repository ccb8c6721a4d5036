package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

func TestFindAll(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     []domain.Span
	}{
		{
			name:     "case insensitive",
			haystack: "Fever, fever, FEVER",
			needle:   "fever",
			want:     []domain.Span{{Start: 0, End: 5}, {Start: 7, End: 12}, {Start: 14, End: 19}},
		},
		{
			name:     "substring matches inside words",
			haystack: "acetylaspirin and aspirin",
			needle:   "aspirin",
			want:     []domain.Span{{Start: 6, End: 13}, {Start: 18, End: 25}},
		},
		{
			name:     "metacharacters are literal",
			haystack: "dose 1.5 mg, then 105 mg",
			needle:   "1.5",
			want:     []domain.Span{{Start: 5, End: 8}},
		},
		{
			name:     "no match",
			haystack: "nothing here",
			needle:   "fever",
			want:     nil,
		},
		{
			name:     "empty needle",
			haystack: "anything",
			needle:   "",
			want:     nil,
		},
		{
			name:     "whitespace needle",
			haystack: "anything",
			needle:   "   ",
			want:     nil,
		},
		{
			name:     "overlapping occurrences are non-overlapping matches",
			haystack: "aaaa",
			needle:   "aa",
			want:     []domain.Span{{Start: 0, End: 2}, {Start: 2, End: 4}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindAll(tt.haystack, tt.needle)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAllSpansCoverNeedle(t *testing.T) {
	haystack := "The Patient reported a patient history of patience."

	spans := FindAll(haystack, "patient")
	assert.Len(t, spans, 3)
	for _, span := range spans {
		assert.Equal(t, 7, span.Len())
		assert.Equal(t, "patient", strings.ToLower(haystack[span.Start:span.End]))
	}
}
