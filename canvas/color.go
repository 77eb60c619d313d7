// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"fmt"
	"image/color"
)

// MaxIndex is the largest marker index a hit-map color can carry.
const MaxIndex = 1<<24 - 1

// Hex creates a color from a hex string.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA", with or without a
// leading '#'. Unparseable input yields opaque black.
func Hex(hex string) color.NRGBA {
	if hex != "" && hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint32
	a = 255

	switch len(hex) {
	case 3: // RGB
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		r, g, b = r*17, g*17, b*17
	case 4: // RGBA
		parseHex(hex[0:1], &r)
		parseHex(hex[1:2], &g)
		parseHex(hex[2:3], &b)
		parseHex(hex[3:4], &a)
		r, g, b, a = r*17, g*17, b*17, a*17
	case 6: // RRGGBB
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
	case 8: // RRGGBBAA
		parseHex(hex[0:2], &r)
		parseHex(hex[2:4], &g)
		parseHex(hex[4:6], &b)
		parseHex(hex[6:8], &a)
	default:
		return color.NRGBA{A: 255}
	}

	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: uint8(a)}
}

// parseHex is a helper for hex parsing
func parseHex(s string, val *uint32) {
	*val = 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		*val *= 16
		switch {
		case '0' <= c && c <= '9':
			*val += uint32(c - '0')
		case 'a' <= c && c <= 'f':
			*val += uint32(c - 'a' + 10)
		case 'A' <= c && c <= 'F':
			*val += uint32(c - 'A' + 10)
		default:
			return
		}
	}
}

// EncodeIndex formats a marker index as an opaque "#RRGGBBff" hit-map color.
// The index is written as six zero-padded hex digits.
func EncodeIndex(index int) string {
	return fmt.Sprintf("#%06xff", index&MaxIndex)
}

// IndexColor returns the hit-map color for a marker index. Indices outside
// [1, MaxIndex] cannot be told apart from the background and map to
// transparent.
func IndexColor(index int) color.NRGBA {
	if index <= 0 || index > MaxIndex {
		return color.NRGBA{}
	}
	return Hex(EncodeIndex(index))
}

// DecodeIndex is the inverse of IndexColor: the RGB channels are read as a
// big-endian 24-bit index. A transparent or zero pixel means no marker.
func DecodeIndex(c color.NRGBA) (int, bool) {
	if c.A == 0 {
		return 0, false
	}
	index := int(c.R)<<16 | int(c.G)<<8 | int(c.B)
	if index == 0 {
		return 0, false
	}
	return index, true
}

// toNRGBA converts any color to non-premultiplied 8-bit RGBA.
func toNRGBA(c color.Color) color.NRGBA {
	if c == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
