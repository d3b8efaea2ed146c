package driving

import (
	"context"
	"io"
	"time"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// PersistenceService saves and restores the CV document.
type PersistenceService interface {
	// Save writes the document, keeping the previous record as backup.
	// Failures are reported as false, never as an error.
	Save(ctx context.Context, doc domain.Document) bool

	// Load reads the stored document. The boolean is false when nothing
	// usable is stored.
	Load(ctx context.Context) (*domain.Document, bool)

	// Export writes an exported snapshot to w.
	Export(ctx context.Context, w io.Writer, doc domain.Document) error

	// ExportFilename returns the suggested name for an export written now.
	ExportFilename() string

	// Import reads and validates a snapshot from r.
	Import(ctx context.Context, r io.Reader) (domain.Document, error)

	// LastSaved returns the write time of the stored record.
	LastSaved(ctx context.Context) (time.Time, bool)

	// Clear removes the stored document and its backup.
	Clear(ctx context.Context) bool
}
