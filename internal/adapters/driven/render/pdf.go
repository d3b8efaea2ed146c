package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
)

// Ensure PDFWriter implements the interface.
var _ driven.PDFWriter = (*PDFWriter)(nil)

// ErrEmptyImage indicates a bitmap with no pixels.
var ErrEmptyImage = errors.New("empty image")

// pageEpsilon stops rounding error from producing a blank trailing page.
const pageEpsilon = 0.01

// PDFWriter lays a bitmap out on fixed-size pages.
type PDFWriter struct {
	creator string
}

// NewPDFWriter creates a PDF writer.
func NewPDFWriter() *PDFWriter {
	return &PDFWriter{creator: domain.DefaultExportedBy}
}

// Write scales img to the page width and writes it to w, one page per
// page-height slice.
func (p *PDFWriter) Write(ctx context.Context, w io.Writer, img image.Image, page domain.PageSize) error {
	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return ErrEmptyImage
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encoding page image: %w", err)
	}

	orientation := "P"
	if page.Orientation(bounds.Dx(), bounds.Dy()) == "landscape" {
		orientation = "L"
	}
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: orientation,
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	doc.SetCreator(p.creator, true)
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	doc.RegisterImageOptionsReader("cv", opts, &buf)

	pageW, pageH := doc.GetPageSize()
	imgH := float64(bounds.Dy()) * pageW / float64(bounds.Dx())

	for offset := 0.0; offset < imgH-pageEpsilon; offset += pageH {
		if err := ctx.Err(); err != nil {
			return err
		}
		doc.AddPage()
		doc.ImageOptions("cv", 0, -offset, pageW, imgH, false, opts, 0, "")
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

// PageCount returns how many pages Write produces for an image of the
// given pixel size.
func PageCount(page domain.PageSize, pixelWidth, pixelHeight int) int {
	if pixelWidth <= 0 || pixelHeight <= 0 {
		return 0
	}
	pageW, pageH := page.Width, page.Height
	if page.Orientation(pixelWidth, pixelHeight) == "landscape" {
		pageW, pageH = pageH, pageW
	}
	imgH := float64(pixelHeight) * pageW / float64(pixelWidth)
	n := 0
	for offset := 0.0; offset < imgH-pageEpsilon; offset += pageH {
		n++
	}
	return n
}
