package board

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cvboard/internal/core/domain"
)

// Terminal cells are mapped to section pixels at a fixed ratio, so a
// resize done here shows up at the same size in the exported page.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

const minBoxCols = 12

// box is where a section was drawn, in content rows and columns.
type box struct {
	id     string
	top    int
	left   int
	width  int
	height int
}

func (b box) contains(col, row int) bool {
	return col >= b.left && col < b.left+b.width &&
		row >= b.top && row < b.top+b.height
}

// handleAt returns the resize handle under (col, row): corners first, then
// edges. The interior has no handle.
func (b box) handleAt(col, row int) (domain.ResizeHandle, bool) {
	top := row == b.top
	bottom := row == b.top+b.height-1
	left := col == b.left
	right := col == b.left+b.width-1

	switch {
	case top && left:
		return domain.HandleTopLeft, true
	case top && right:
		return domain.HandleTopRight, true
	case bottom && left:
		return domain.HandleBottomLeft, true
	case bottom && right:
		return domain.HandleBottomRight, true
	case top:
		return domain.HandleTop, true
	case bottom:
		return domain.HandleBottom, true
	case left:
		return domain.HandleLeft, true
	case right:
		return domain.HandleRight, true
	}
	return "", false
}

// measured returns the on-screen size of the box in pixels.
func (b box) measured() (float64, float64) {
	return float64(b.width) * CellWidth, float64(b.height) * CellHeight
}

// boxCols converts a section's explicit width to columns, filling the
// board when no width is set.
func boxCols(s domain.Section, avail int) int {
	cols := avail
	if s.Width > 0 {
		cols = int(math.Round(s.Width / CellWidth))
	}
	if cols > avail {
		cols = avail
	}
	if cols < minBoxCols {
		cols = minBoxCols
	}
	return cols
}

// boxRows converts a section's explicit height to rows. Zero means the
// box grows with its content.
func boxRows(s domain.Section) int {
	if s.Height <= 0 {
		return 0
	}
	return int(math.Round(s.Height / CellHeight))
}

// sectionBody is the read view of a section: its heading and the summary
// of its payload, as plain text.
func sectionBody(s domain.Section) []string {
	lines := []string{strings.ToUpper(s.Title)}
	return append(lines, domain.SummaryLines(s.Content)...)
}

// truncate shortens s to at most w terminal cells.
func truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= w {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// fitRows pads or truncates lines to exactly n rows. n <= 0 leaves the
// lines as they are.
func fitRows(lines []string, n int) []string {
	if n <= 0 {
		return lines
	}
	if len(lines) > n {
		return lines[:n]
	}
	for len(lines) < n {
		lines = append(lines, "")
	}
	return lines
}
