package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

type fakeLoader struct {
	mu    sync.Mutex
	calls []string
	fail  map[string]bool
	delay time.Duration
}

func (l *fakeLoader) Load(_ context.Context, src string) (image.Image, error) {
	time.Sleep(l.delay)
	l.mu.Lock()
	l.calls = append(l.calls, src)
	l.mu.Unlock()
	if l.fail[src] {
		return nil, errors.New("404")
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

type fakeRasterizer struct {
	got     map[string]image.Image
	release chan struct{}
	err     error
}

func (r *fakeRasterizer) Rasterize(_ context.Context, _ domain.Document, images map[string]image.Image) (image.Image, error) {
	if r.release != nil {
		<-r.release
	}
	r.got = images
	if r.err != nil {
		return nil, r.err
	}
	return image.NewRGBA(image.Rect(0, 0, 100, 300)), nil
}

type fakeWriter struct {
	page domain.PageSize
}

func (w *fakeWriter) Write(_ context.Context, out io.Writer, _ image.Image, page domain.PageSize) error {
	w.page = page
	_, err := out.Write([]byte("%PDF-1.3"))
	return err
}

func docWithImages() domain.Document {
	return domain.Document{
		Title: "With images",
		Sections: []domain.Section{
			{ID: "p", Type: domain.SectionProfile, Content: domain.ProfileContent{ProfileImage: "https://img/me.png"}},
			{ID: "e", Type: domain.SectionExperience, Order: 1, Content: domain.ExperienceContent{Jobs: []domain.JobItem{
				{Company: "A", Logo: "https://img/a.png"},
				{Company: "B", Logo: "https://img/broken.png"},
			}}},
		},
	}
}

func TestExportService_ExportPDF(t *testing.T) {
	loader := &fakeLoader{fail: map[string]bool{"https://img/broken.png": true}}
	raster := &fakeRasterizer{}
	writer := &fakeWriter{}
	svc := NewExportService(loader, raster, writer, domain.A4)
	var buf bytes.Buffer

	require.NoError(t, svc.ExportPDF(context.Background(), &buf, docWithImages()))

	assert.Equal(t, "%PDF-1.3", buf.String())
	assert.Len(t, loader.calls, 3)
	assert.Len(t, raster.got, 2)
	assert.Contains(t, raster.got, "https://img/me.png")
	assert.NotContains(t, raster.got, "https://img/broken.png")
	assert.Equal(t, domain.A4, writer.page)
	assert.False(t, svc.Generating())
}

func TestExportService_WaitsForSlowImages(t *testing.T) {
	loader := &fakeLoader{delay: 30 * time.Millisecond}
	raster := &fakeRasterizer{}
	svc := NewExportService(loader, raster, &fakeWriter{}, domain.A4)

	require.NoError(t, svc.ExportPDF(context.Background(), io.Discard, docWithImages()))

	assert.Len(t, raster.got, 3)
}

func TestExportService_SingleFlight(t *testing.T) {
	raster := &fakeRasterizer{release: make(chan struct{})}
	svc := NewExportService(nil, raster, &fakeWriter{}, domain.A4)

	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.ExportPDF(context.Background(), io.Discard, docWithImages())
	}()
	require.Eventually(t, svc.Generating, time.Second, time.Millisecond)

	err := svc.ExportPDF(context.Background(), io.Discard, docWithImages())
	assert.ErrorIs(t, err, domain.ErrExportInProgress)

	close(raster.release)
	require.NoError(t, <-errCh)
	assert.False(t, svc.Generating())
	assert.Empty(t, raster.got)
}

func TestExportService_ReleasesGuardOnFailure(t *testing.T) {
	raster := &fakeRasterizer{err: errors.New("boom")}
	svc := NewExportService(nil, raster, &fakeWriter{}, domain.A4)

	err := svc.ExportPDF(context.Background(), io.Discard, docWithImages())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rasterizing document")
	assert.False(t, svc.Generating())
}

func TestExportService_Unavailable(t *testing.T) {
	svc := NewExportService(nil, nil, nil, domain.A4)

	err := svc.ExportPDF(context.Background(), io.Discard, docWithImages())

	assert.ErrorIs(t, err, domain.ErrExportUnavailable)
}

func TestExportService_CancelledContext(t *testing.T) {
	svc := NewExportService(&fakeLoader{}, &fakeRasterizer{}, &fakeWriter{}, domain.A4)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := svc.ExportPDF(ctx, io.Discard, docWithImages())

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, svc.Generating())
}
