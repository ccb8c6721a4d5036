package driven

import (
	"io"

	"github.com/raghuraavi99/annotation-app/internal/core/domain"
)

// WorkspaceCodec serializes workspace snapshots to and from the
// versioned workspace document format. A failed Decode leaves the
// caller's state untouched; there is no partial or merging load.
type WorkspaceCodec interface {
	// Encode writes the snapshot.
	Encode(w io.Writer, ws *domain.Workspace) error

	// Decode reads a snapshot. Corrupt input fails with
	// domain.ErrBadFormat.
	Decode(r io.Reader) (*domain.Workspace, error)
}
