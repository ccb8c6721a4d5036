// Package plaintext loads .txt files and pasted text. A blank line
// separates documents; input without one is a single document.
package plaintext

import (
	"context"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader handles plain text input.
type Loader struct{}

// New creates a new plain text loader.
func New() *Loader {
	return &Loader{}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".txt"}
}

// Load splits the input into documents on blank-line boundaries.
func (l *Loader) Load(_ context.Context, _ string, data []byte) ([]domain.LoadedDoc, error) {
	parts := Split(string(data))
	docs := make([]domain.LoadedDoc, 0, len(parts))
	for _, p := range parts {
		docs = append(docs, domain.LoadedDoc{Text: p})
	}
	return docs, nil
}

// Split normalises line endings and splits raw text on the blank-line
// delimiter. Without a delimiter the whole trimmed input is one
// document; blank input yields none.
func Split(raw string) []string {
	raw = strings.TrimSpace(strings.ReplaceAll(raw, "\r\n", "\n"))
	if raw == "" {
		return nil
	}
	if !strings.Contains(raw, "\n\n") {
		return []string{raw}
	}

	var parts []string
	for _, p := range strings.Split(raw, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
