// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package codec

import (
	"encoding/binary"
	"image"
	"math"
)

func decodeMono8(dst *image.RGBA, f *Frame, _ Options) error {
	rows(dst, f, 1, func(src, out []byte) {
		for x, v := range src {
			o := out[x*4 : x*4+4 : x*4+4]
			o[0], o[1], o[2], o[3] = v, v, v, 0xff
		}
	})
	return nil
}

// window returns the 16-bit input range mapped onto [0, 255].
func window(opts Options) (lo, hi float64) {
	lo, hi = 0, math.MaxUint16
	if opts.MinValue != nil {
		lo = *opts.MinValue
	}
	if opts.MaxValue != nil {
		hi = *opts.MaxValue
	}
	if hi == lo {
		hi = lo + 1
	}
	return lo, hi
}

func decodeMono16(dst *image.RGBA, f *Frame, opts Options) error {
	var order binary.ByteOrder = binary.LittleEndian
	if f.IsBigEndian {
		order = binary.BigEndian
	}
	lo, hi := window(opts)
	span := hi - lo

	rows(dst, f, 2, func(src, out []byte) {
		for x := 0; x < f.Width; x++ {
			v := float64(order.Uint16(src[x*2:]))
			g := clamp8((v - lo) / span * 255)
			o := out[x*4 : x*4+4 : x*4+4]
			o[0], o[1], o[2], o[3] = g, g, g, 0xff
		}
	})
	return nil
}
