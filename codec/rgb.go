// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import "image"

func decodeRGB8(dst *image.RGBA, f *Frame, _ Options) error {
	rows(dst, f, 3, func(src, out []byte) {
		for x := 0; x < f.Width; x++ {
			s := src[x*3 : x*3+3 : x*3+3]
			o := out[x*4 : x*4+4 : x*4+4]
			o[0], o[1], o[2], o[3] = s[0], s[1], s[2], 0xff
		}
	})
	return nil
}

func decodeBGR8(dst *image.RGBA, f *Frame, _ Options) error {
	rows(dst, f, 3, func(src, out []byte) {
		for x := 0; x < f.Width; x++ {
			s := src[x*3 : x*3+3 : x*3+3]
			o := out[x*4 : x*4+4 : x*4+4]
			o[0], o[1], o[2], o[3] = s[2], s[1], s[0], 0xff
		}
	})
	return nil
}
