// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/binary"
	"image"
	"math"
)

// decodeFloat32 renders 32-bit float depth as gray, 1.0 and above white.
func decodeFloat32(dst *image.RGBA, f *Frame, _ Options) error {
	var order binary.ByteOrder = binary.LittleEndian
	if f.IsBigEndian {
		order = binary.BigEndian
	}
	rows(dst, f, 4, func(src, out []byte) {
		for x := 0; x < f.Width; x++ {
			v := math.Float32frombits(order.Uint32(src[x*4:]))
			g := clamp8(float64(v) * 255)
			o := out[x*4 : x*4+4 : x*4+4]
			o[0], o[1], o[2], o[3] = g, g, g, 0xff
		}
	})
	return nil
}
