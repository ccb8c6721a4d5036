package driven

import (
	"context"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// Loader extracts documents from one file format.
// Loaders receive raw bytes so the same implementation serves plain
// files, zip entries and watched files alike.
type Loader interface {
	// Extensions returns the lower-case file extensions this loader
	// handles, including the dot (".txt").
	Extensions() []string

	// Load extracts zero or more documents from the raw bytes.
	// name is the originating file name, used for diagnostics only.
	Load(ctx context.Context, name string, data []byte) ([]domain.LoadedDoc, error)
}

// CommandRunner executes an external command and returns its stdout.
// It exists so extraction tools (pdftotext) can be mocked in tests.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
