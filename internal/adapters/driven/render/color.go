package render

import (
	"image/color"
	"strconv"
	"strings"
)

var (
	inkDark  = color.RGBA{R: 0x18, G: 0x18, B: 0x1b, A: 0xff}
	inkLight = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	border   = color.RGBA{R: 0xe4, G: 0xe4, B: 0xe7, A: 0xff}
	filler   = color.RGBA{R: 0xd4, G: 0xd4, B: 0xd8, A: 0xff}
)

// parseHex converts "#rgb" or "#rrggbb" to a colour. Anything else
// returns fallback.
func parseHex(s string, fallback color.RGBA) color.RGBA {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return fallback
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fallback
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// inkFor picks dark or light text for legibility on bg.
func inkFor(bg color.RGBA) color.RGBA {
	// Rec. 601 luma
	luma := 299*int(bg.R) + 587*int(bg.G) + 114*int(bg.B)
	if luma > 128*1000 {
		return inkDark
	}
	return inkLight
}
