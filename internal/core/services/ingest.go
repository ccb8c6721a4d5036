package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
	"github.com/raghuraavi99/annotation-app/internal/core/ports/driving"
	"github.com/raghuraavi99/annotation-app/internal/loaders"
	"github.com/raghuraavi99/annotation-app/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// dirExtensions are the file types picked up by directory ingest and
// watch. Archives are only loaded when named explicitly.
var dirExtensions = []string{".txt", ".pdf", ".csv"}

// IngestService feeds loader output into the workspace.
type IngestService struct {
	workspace driving.WorkspaceService
	registry  *loaders.Registry
}

// NewIngestService creates a new ingest service.
func NewIngestService(workspace driving.WorkspaceService, registry *loaders.Registry) *IngestService {
	return &IngestService{
		workspace: workspace,
		registry:  registry,
	}
}

// IngestText adds pasted text, split on blank lines.
func (s *IngestService) IngestText(ctx context.Context, raw string) (int, error) {
	return s.ingestBytes(ctx, "pasted.txt", []byte(raw))
}

// IngestFile loads a single file by extension.
func (s *IngestService) IngestFile(ctx context.Context, path string) (int, error) {
	if _, ok := s.registry.For(path); !ok {
		return 0, fmt.Errorf("%w: no loader for %s", domain.ErrInvalidInput, filepath.Ext(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return s.ingestBytes(ctx, filepath.Base(path), data)
}

// IngestDir walks dir for .txt/.pdf/.csv files and loads each one.
// Unreadable or malformed files are skipped with a warning; the batch
// reports how many documents it added.
func (s *IngestService) IngestDir(ctx context.Context, dir string, recursive bool) (int, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("%w: not a directory: %s", domain.ErrInvalidInput, dir)
	}

	paths, err := dirPaths(dir, recursive)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, p := range paths {
		n, err := s.IngestFile(ctx, p)
		if err != nil {
			logger.Warn("skipping %s: %v", p, err)
			continue
		}
		added += n
	}
	logger.Info("ingested %d document(s) from %s", added, dir)
	return added, nil
}

// Watch ingests the loadable files already in dir, then keeps running
// and ingests new ones as they are created or written, until ctx is
// done. Each path is ingested at most once per Watch run.
func (s *IngestService) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s", dir)

	seen := make(map[string]struct{})

	// Initial pass over whatever the directory already holds, before
	// waiting for events.
	existing, err := dirPaths(dir, false)
	if err != nil {
		return err
	}
	for _, p := range existing {
		n, err := s.IngestFile(ctx, p)
		if err != nil {
			logger.Warn("skipping %s: %v", p, err)
			continue
		}
		seen[p] = struct{}{}
		logger.Info("ingested %d document(s) from %s", n, p)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !watchable(event.Name) {
				continue
			}
			if _, dup := seen[event.Name]; dup {
				continue
			}
			n, err := s.IngestFile(ctx, event.Name)
			if err != nil {
				logger.Warn("skipping %s: %v", event.Name, err)
				continue
			}
			seen[event.Name] = struct{}{}
			logger.Info("ingested %d document(s) from %s", n, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error: %v", err)
		}
	}
}

// ingestBytes loads the bytes and adds every resulting document.
func (s *IngestService) ingestBytes(ctx context.Context, name string, data []byte) (int, error) {
	loader, ok := s.registry.For(name)
	if !ok {
		return 0, fmt.Errorf("%w: no loader for %s", domain.ErrInvalidInput, name)
	}

	docs, err := loader.Load(ctx, name, data)
	if err != nil {
		return 0, err
	}

	added := 0
	for _, d := range docs {
		if _, err := s.workspace.AddDocument(ctx, d.ID, d.Text); err != nil {
			return added, err
		}
		added++
	}
	return added, nil
}

// dirPaths collects the loadable files under dir, one glob per known
// extension.
func dirPaths(dir string, recursive bool) ([]string, error) {
	var paths []string
	for _, ext := range dirExtensions {
		pattern := "*" + ext
		if recursive {
			pattern = "**/*" + ext
		}
		matches, err := doublestar.Glob(os.DirFS(dir), pattern)
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", pattern, err)
		}
		for _, m := range matches {
			paths = append(paths, filepath.Join(dir, m))
		}
	}
	return paths, nil
}

func watchable(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range dirExtensions {
		if ext == e {
			return true
		}
	}
	return false
}
