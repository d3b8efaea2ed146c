package driven

import (
	"context"
	"image"
	"io"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// ImageLoader fetches an image referenced by a section (URL or file path).
type ImageLoader interface {
	// Load fetches and decodes the image at src.
	Load(ctx context.Context, src string) (image.Image, error)
}

// Rasterizer draws a document onto a bitmap.
// Missing entries in images are drawn as placeholders.
type Rasterizer interface {
	Rasterize(ctx context.Context, doc domain.Document, images map[string]image.Image) (image.Image, error)
}

// PDFWriter assembles a bitmap into a paginated PDF document.
type PDFWriter interface {
	// Write lays img out on pages of the given size, writing the PDF to w.
	Write(ctx context.Context, w io.Writer, img image.Image, page domain.PageSize) error
}
