package services

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
	"github.com/custodia-labs/cvboard/internal/core/ports/driving"
	"github.com/custodia-labs/cvboard/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// maxImageFetches bounds concurrent image loads during an export.
const maxImageFetches = 4

// ExportService renders the CV to a paginated PDF. Only one export runs
// at a time; a second request fails fast instead of queueing.
type ExportService struct {
	images     driven.ImageLoader
	rasterizer driven.Rasterizer
	writer     driven.PDFWriter
	page       domain.PageSize

	generating atomic.Bool
}

// NewExportService creates an export service. images may be nil, in which
// case every image is drawn as a placeholder.
func NewExportService(
	images driven.ImageLoader,
	rasterizer driven.Rasterizer,
	writer driven.PDFWriter,
	page domain.PageSize,
) *ExportService {
	return &ExportService{
		images:     images,
		rasterizer: rasterizer,
		writer:     writer,
		page:       page,
	}
}

// Generating reports whether an export is running.
func (s *ExportService) Generating() bool {
	return s.generating.Load()
}

// ExportPDF waits for every embedded image to settle, rasterises doc and
// writes the paginated PDF to w. Images that fail to load do not fail the
// export.
func (s *ExportService) ExportPDF(ctx context.Context, w io.Writer, doc domain.Document) error {
	if s.rasterizer == nil || s.writer == nil {
		return domain.ErrExportUnavailable
	}
	if !s.generating.CompareAndSwap(false, true) {
		return domain.ErrExportInProgress
	}
	defer s.generating.Store(false)

	images := s.loadImages(ctx, doc)
	if err := ctx.Err(); err != nil {
		return err
	}

	img, err := s.rasterizer.Rasterize(ctx, doc, images)
	if err != nil {
		return fmt.Errorf("rasterizing document: %w", err)
	}
	if err := s.writer.Write(ctx, w, img, s.page); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}

	logger.Debug("exported %q (%dx%d px, %d images)", doc.Title, img.Bounds().Dx(), img.Bounds().Dy(), len(images))
	return nil
}

// loadImages fetches every image source in doc. It returns once all
// fetches have settled; failures are logged and left out of the map.
func (s *ExportService) loadImages(ctx context.Context, doc domain.Document) map[string]image.Image {
	sources := domain.ImageSources(doc)
	out := make(map[string]image.Image, len(sources))
	if s.images == nil || len(sources) == 0 {
		return out
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(maxImageFetches)
	for _, src := range sources {
		g.Go(func() error {
			img, err := s.images.Load(ctx, src)
			if err != nil {
				logger.Warn("image %s: %v", src, err)
				return nil
			}
			mu.Lock()
			out[src] = img
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()
	return out
}
