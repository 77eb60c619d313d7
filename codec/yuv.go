// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import "image"

// yuvToRGB converts one full-range YUV sample with chroma centered on 128.
func yuvToRGB(y, u, v uint8) (r, g, b uint8) {
	fy := float64(y)
	fu := float64(u) - 128
	fv := float64(v) - 128
	return clamp8(fy + 1.402*fv),
		clamp8(fy - 0.34414*fu - 0.71414*fv),
		clamp8(fy + 1.772*fu)
}

// decodeUYVY decodes 4:2:2 frames packed as U Y0 V Y1.
func decodeUYVY(dst *image.RGBA, f *Frame, _ Options) error {
	decode422(dst, f, 1, 0, 3, 2)
	return nil
}

// decodeYUYV decodes 4:2:2 frames packed as Y0 U Y1 V.
func decodeYUYV(dst *image.RGBA, f *Frame, _ Options) error {
	decode422(dst, f, 0, 1, 2, 3)
	return nil
}

// decode422 walks 4-byte macropixels holding two luma samples that share
// one chroma pair. The arguments give the offsets of Y0, U, Y1 and V.
func decode422(dst *image.RGBA, f *Frame, y0, u, y1, v int) {
	rows(dst, f, 2, func(src, out []byte) {
		for x := 0; x < f.Width; x += 2 {
			m := src[x*2:]
			cv := uint8(128)
			if v < len(m) {
				cv = m[v]
			}
			r, g, b := yuvToRGB(m[y0], m[u], cv)
			o := out[x*4:]
			o[0], o[1], o[2], o[3] = r, g, b, 0xff
			if x+1 < f.Width {
				r, g, b = yuvToRGB(m[y1], m[u], cv)
				o[4], o[5], o[6], o[7] = r, g, b, 0xff
			}
		}
	})
}
