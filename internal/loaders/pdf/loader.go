// Package pdf loads .pdf files by shelling out to pdftotext. The
// command runs through a CommandRunner so tests can substitute a mock.
package pdf

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Ensure ExecRunner implements the interface.
var _ driven.CommandRunner = (*ExecRunner)(nil)

// ExecRunner runs commands via os/exec.
type ExecRunner struct{}

// Run executes the command and returns its stdout.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Loader extracts PDF text with pdftotext.
type Loader struct {
	runner driven.CommandRunner
}

// New creates a PDF loader using the real pdftotext binary.
func New() *Loader {
	return NewWithRunner(ExecRunner{})
}

// NewWithRunner creates a PDF loader with a custom command runner.
func NewWithRunner(runner driven.CommandRunner) *Loader {
	return &Loader{runner: runner}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".pdf"}
}

// Load extracts the PDF's text as a single document: per-page text
// joined with blank lines. PDFs with no extractable text yield no
// documents rather than an empty one.
func (l *Loader) Load(ctx context.Context, name string, data []byte) ([]domain.LoadedDoc, error) {
	tmp, err := os.CreateTemp("", "annotate-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("staging %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("staging %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("staging %s: %w", name, err)
	}

	// "-" sends the extracted text to stdout; \f separates pages.
	out, err := l.runner.Run(ctx, "pdftotext", tmp.Name(), "-")
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", name, err)
	}

	text := joinPages(string(out))
	if text == "" {
		return nil, nil
	}
	return []domain.LoadedDoc{{Text: text}}, nil
}

// joinPages trims each form-feed-separated page and joins the
// non-empty ones with blank lines.
func joinPages(raw string) string {
	var pages []string
	for _, page := range strings.Split(raw, "\f") {
		page = strings.TrimSpace(page)
		if page != "" {
			pages = append(pages, page)
		}
	}
	return strings.Join(pages, "\n\n")
}
