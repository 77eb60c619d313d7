// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import "image"

// bayerPattern names which channel each site of a 2x2 cell samples,
// in the order top-left, top-right, bottom-left, bottom-right.
type bayerPattern [4]byte

var bayerPatterns = map[string]bayerPattern{
	"bayer_rggb8": {'r', 'g', 'g', 'b'},
	"bayer_bggr8": {'b', 'g', 'g', 'r'},
	"bayer_gbrg8": {'g', 'b', 'r', 'g'},
	"bayer_grbg8": {'g', 'r', 'b', 'g'},
}

// decode demosaics by 2x2 superpixel: all four pixels of a cell share the
// cell's red and blue samples, and each row takes the green sample from
// its own row. Cells cut by an odd edge reuse the last row or column.
func (p bayerPattern) decode(dst *image.RGBA, f *Frame, _ Options) error {
	stride := f.Stride(1)
	at := func(x, y int) byte {
		x = min(x, f.Width-1)
		y = min(y, f.Height-1)
		return f.Data[y*stride+x]
	}

	for cy := 0; cy < f.Height; cy += 2 {
		for cx := 0; cx < f.Width; cx += 2 {
			site := [4]byte{at(cx, cy), at(cx+1, cy), at(cx, cy+1), at(cx+1, cy+1)}
			var r, b byte
			var green [2]byte // per row
			for i, ch := range p {
				switch ch {
				case 'r':
					r = site[i]
				case 'b':
					b = site[i]
				case 'g':
					green[i/2] = site[i]
				}
			}
			for dy := 0; dy < 2 && cy+dy < f.Height; dy++ {
				for dx := 0; dx < 2 && cx+dx < f.Width; dx++ {
					o := dst.PixOffset(cx+dx, cy+dy)
					dst.Pix[o], dst.Pix[o+1], dst.Pix[o+2], dst.Pix[o+3] = r, green[dy], b, 0xff
				}
			}
		}
	}
	return nil
}
