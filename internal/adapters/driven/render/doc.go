// Package render turns a CV document into pixels and pixels into a PDF.
//
// The Rasterizer lays sections out top to bottom in display order on a
// sheet coloured by the document theme and draws text with the fixed
// 7x13 bitmap face from golang.org/x/image. The PDFWriter places that
// bitmap on A4 pages with go-pdf/fpdf, continuing onto further pages when
// the content is taller than one page.
package render
