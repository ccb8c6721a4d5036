// Package ziparchive loads .zip files by walking their entries and
// dispatching each to the loader registered for its extension.
// Unreadable entries are skipped with a warning; the rest of the
// archive continues.
package ziparchive

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
	"github.com/raghuraavi99/annotation-app/internal/loaders"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.Loader = (*Loader)(nil)

// Loader walks zip archives.
type Loader struct {
	registry *loaders.Registry
}

// New creates a zip loader dispatching entries through registry.
// The loader must not be registered into the same registry it
// dispatches through zip-in-zip entries; it only handles entries whose
// extension resolves to a different loader.
func New(registry *loaders.Registry) *Loader {
	return &Loader{registry: registry}
}

// Extensions returns the file extensions this loader handles.
func (l *Loader) Extensions() []string {
	return []string{".zip"}
}

// Load walks the archive and loads every entry a registered loader
// understands. A corrupt archive fails with domain.ErrBadFormat; a
// failing entry only skips that entry.
func (l *Loader) Load(ctx context.Context, name string, data []byte) ([]domain.LoadedDoc, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrBadFormat, name, err)
	}

	var docs []domain.LoadedDoc
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name), ".zip") {
			// No nested archives.
			continue
		}
		loader, ok := l.registry.For(entry.Name)
		if !ok {
			continue
		}

		entryDocs, err := loadEntry(ctx, loader, entry)
		if err != nil {
			logger.Warn("skipping %s in %s: %v", entry.Name, name, err)
			continue
		}
		docs = append(docs, entryDocs...)
	}
	return docs, nil
}

func loadEntry(ctx context.Context, loader driven.Loader, entry *zip.File) ([]domain.LoadedDoc, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	return loader.Load(ctx, entry.Name, data)
}
