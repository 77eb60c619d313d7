// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package marker

import (
	"image/color"
	"math"
)

// Color is an RGBA color with channels in [0, 1], as in std_msgs/ColorRGBA.
// It implements color.Color.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Visible reports whether the color has any opacity.
func (c Color) Visible() bool { return c.A > 0 }

// NRGBA converts to 8-bit non-premultiplied channels, clamping out of range
// values.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}
}

// RGBA implements color.Color.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

func unit8(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
