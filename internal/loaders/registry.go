// Package loaders wires file-format loaders into a registry keyed by
// file extension. Each format lives in its own subpackage, mirroring
// one loader per input type.
package loaders

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/raghuraavi99/annotation-app/internal/core/ports/driven"
)

// Registry resolves a loader for a file path by extension.
type Registry struct {
	byExt map[string]driven.Loader
}

// NewRegistry creates a registry over the given loaders.
func NewRegistry(ls ...driven.Loader) *Registry {
	r := &Registry{byExt: make(map[string]driven.Loader)}
	for _, l := range ls {
		r.Register(l)
	}
	return r
}

// Register adds a loader for all of its extensions, replacing any
// previous loader for the same extension.
func (r *Registry) Register(l driven.Loader) {
	for _, ext := range l.Extensions() {
		r.byExt[strings.ToLower(ext)] = l
	}
}

// For returns the loader responsible for the path's extension.
func (r *Registry) For(path string) (driven.Loader, bool) {
	l, ok := r.byExt[strings.ToLower(filepath.Ext(path))]
	return l, ok
}

// Extensions returns all registered extensions, sorted.
func (r *Registry) Extensions() []string {
	exts := make([]string, 0, len(r.byExt))
	for ext := range r.byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
