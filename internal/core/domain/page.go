package domain

import "unicode"

// PageSize is a paper format in millimetres.
type PageSize struct {
	Name   string
	Width  float64
	Height float64
}

// A4 is the page format used for PDF export.
var A4 = PageSize{Name: "A4", Width: 210, Height: 297}

// Orientation picks portrait or landscape for content of the given pixel
// size: portrait when the content, scaled to the page width, is taller than
// it is wide.
func (p PageSize) Orientation(pixelWidth, pixelHeight int) string {
	if pixelWidth <= 0 {
		return "portrait"
	}
	scaledHeight := float64(pixelHeight) * p.Width / float64(pixelWidth)
	if scaledHeight > p.Width {
		return "portrait"
	}
	return "landscape"
}

// PDFFilename derives the export file name from a CV title: lower case,
// runs of whitespace replaced by a dash.
func PDFFilename(title string) string {
	var out []rune
	space := false
	for _, r := range title {
		if unicode.IsSpace(r) {
			if !space {
				out = append(out, '-')
			}
			space = true
			continue
		}
		space = false
		out = append(out, unicode.ToLower(r))
	}
	if len(out) == 0 {
		return "cv-export.pdf"
	}
	return string(out) + ".pdf"
}
