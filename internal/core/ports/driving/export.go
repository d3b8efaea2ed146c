package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// ExportService renders the CV to PDF.
type ExportService interface {
	// ExportPDF renders doc to w. A call made while another export is
	// running returns domain.ErrExportInProgress.
	ExportPDF(ctx context.Context, w io.Writer, doc domain.Document) error

	// Generating reports whether an export is running.
	Generating() bool
}
