package render

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/custodia-labs/cvboard/internal/core/domain"
	"github.com/custodia-labs/cvboard/internal/core/ports/driven"
)

// Ensure Rasterizer implements the interface.
var _ driven.Rasterizer = (*Rasterizer)(nil)

// Layout metrics at scale 1, in pixels. SheetWidth matches A4 at 96 dpi.
const (
	SheetWidth = 794
	margin     = 32
	padding    = 12
	gap        = 12
	lineHeight = 16
	glyphWidth = 7
	thumbSize  = 48
)

// Rasterizer draws a document onto an RGBA bitmap.
type Rasterizer struct {
	scale int
	face  font.Face
}

// NewRasterizer creates a rasterizer. Scale multiplies the output
// resolution; values below 1 mean 1.
func NewRasterizer(cfg domain.ExportSettings) *Rasterizer {
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &Rasterizer{
		scale: scale,
		face:  basicfont.Face7x13,
	}
}

// block is one laid-out section.
type block struct {
	section domain.Section
	lines   []string
	thumbs  []string
	rect    image.Rectangle
}

// Rasterize draws doc. Sources missing from images are drawn as grey
// placeholders.
func (r *Rasterizer) Rasterize(ctx context.Context, doc domain.Document, images map[string]image.Image) (image.Image, error) {
	blocks, height := r.layout(doc)

	palette := doc.Theme.Palette()
	bg := parseHex(palette.Background, inkDark)
	sheet := parseHex(palette.Content, inkLight)

	canvas := image.NewRGBA(image.Rect(0, 0, SheetWidth, height))
	draw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	y := margin + lineHeight
	headerInk := parseHex(palette.Text, inkLight)
	r.text(canvas, margin, y, doc.Title, headerInk)
	y += lineHeight
	r.text(canvas, margin, y, doc.Subtitle, headerInk)

	sheetRect := image.Rect(margin/2, y+gap, SheetWidth-margin/2, height-margin/2)
	draw.Draw(canvas, sheetRect, &image.Uniform{C: sheet}, image.Point{}, draw.Src)
	ink := inkFor(sheet)

	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.drawBlock(canvas, b, ink, images)
	}

	if r.scale == 1 {
		return canvas, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, SheetWidth*r.scale, height*r.scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
	return out, nil
}

// layout positions every section and returns the total canvas height.
func (r *Rasterizer) layout(doc domain.Document) ([]block, int) {
	inner := SheetWidth - 2*margin
	y := margin + 2*lineHeight + 2*gap

	var blocks []block
	for _, s := range doc.Ordered() {
		width := inner
		if s.HasSize() && int(s.Width) < inner {
			width = int(s.Width)
		}
		b := block{
			section: s,
			lines:   wrap(domain.SummaryLines(s.Content), (width-2*padding)/glyphWidth),
			thumbs:  sectionImages(s),
		}

		h := 2*padding + lineHeight*(1+len(b.lines))
		if len(b.thumbs) > 0 {
			h += thumbSize + gap
		}
		if s.HasSize() && int(s.Height) > h {
			h = int(s.Height)
		}

		b.rect = image.Rect(margin, y, margin+width, y+h)
		blocks = append(blocks, b)
		y += h + gap
	}
	return blocks, y + margin
}

func (r *Rasterizer) drawBlock(dst *image.RGBA, b block, ink color.RGBA, images map[string]image.Image) {
	outline(dst, b.rect, border)

	x := b.rect.Min.X + padding
	y := b.rect.Min.Y + padding + lineHeight - 3
	r.text(dst, x, y, strings.ToUpper(b.section.Title), ink)

	if len(b.thumbs) > 0 {
		tx := x
		ty := y + gap
		for _, src := range b.thumbs {
			if tx+thumbSize > b.rect.Max.X-padding {
				break
			}
			cell := image.Rect(tx, ty, tx+thumbSize, ty+thumbSize)
			if img, ok := images[src]; ok && img != nil {
				xdraw.ApproxBiLinear.Scale(dst, cell, img, img.Bounds(), xdraw.Over, nil)
			} else {
				placeholder(dst, cell)
			}
			tx += thumbSize + gap
		}
		y = ty + thumbSize
	}

	for _, line := range b.lines {
		y += lineHeight
		if y > b.rect.Max.Y-padding/2 {
			break
		}
		r.text(dst, x, y, line, ink)
	}
}

// text draws s with its baseline at y.
func (r *Rasterizer) text(dst draw.Image, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func outline(dst *image.RGBA, rect image.Rectangle, c color.Color) {
	u := &image.Uniform{C: c}
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Max.Y-1, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+1, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(rect.Max.X-1, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}

func placeholder(dst *image.RGBA, cell image.Rectangle) {
	draw.Draw(dst, cell, &image.Uniform{C: filler}, image.Point{}, draw.Src)
	outline(dst, cell, border)
}

// sectionImages lists the image references a section displays.
func sectionImages(s domain.Section) []string {
	var out []string
	switch c := s.Content.(type) {
	case domain.ProfileContent:
		if c.ProfileImage != "" {
			out = append(out, c.ProfileImage)
		}
	case domain.ExperienceContent:
		for _, j := range c.Jobs {
			if j.Logo != "" {
				out = append(out, j.Logo)
			}
		}
	case domain.EducationContent:
		for _, e := range c.Schools {
			if e.Logo != "" {
				out = append(out, e.Logo)
			}
		}
	}
	return out
}

// wrap breaks lines longer than width runes at spaces, hard-splitting
// words that do not fit on their own.
func wrap(lines []string, width int) []string {
	if width < 1 {
		width = 1
	}
	var out []string
	for _, line := range lines {
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		cur := indent
		for _, word := range strings.Fields(line) {
			for len([]rune(word)) > width-len(indent) && width-len(indent) > 0 {
				if strings.TrimSpace(cur) != "" {
					out = append(out, cur)
				}
				rs := []rune(word)
				n := width - len(indent)
				out = append(out, indent+string(rs[:n]))
				word = string(rs[n:])
				cur = indent
			}
			switch {
			case strings.TrimSpace(cur) == "":
				cur = indent + word
			case len([]rune(cur))+1+len([]rune(word)) <= width:
				cur += " " + word
			default:
				out = append(out, cur)
				cur = indent + word
			}
		}
		if strings.TrimSpace(cur) != "" {
			out = append(out, cur)
		}
	}
	return out
}
