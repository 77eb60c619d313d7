// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/marker"
)

// PixelColor is a non-premultiplied 8-bit RGBA color.
type PixelColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
	A uint8 `json:"a"`
}

// Position is an integer pixel coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PixelSample is the result of a MouseMove query.
type PixelSample struct {
	Color    PixelColor `json:"color"`
	Position Position   `json:"position"`

	// MarkerIndex is the render index found in the hit-map, nil when no
	// marker covers the pixel.
	MarkerIndex *int `json:"markerIndex,omitempty"`

	// Marker is the marker painted with MarkerIndex in the latest render.
	Marker *marker.Marker `json:"marker,omitempty"`
}

// sample reads one pixel from both surfaces of v. It returns nil when the
// coordinate is outside the viewport.
func (v *viewport) sample(x, y int) *PixelSample {
	c, ok := v.canvas.Pixel(x, y)
	if !ok {
		return nil
	}
	s := &PixelSample{
		Color:    PixelColor{R: c.R, G: c.G, B: c.B, A: c.A},
		Position: Position{X: x, Y: y},
	}
	hit, ok := v.hitmap.Pixel(x, y)
	if !ok {
		return s
	}
	n, ok := canvas.DecodeIndex(hit)
	if !ok {
		return s
	}
	s.MarkerIndex = &n
	if r := v.record(n); r != nil {
		s.Marker = r.Marker
	}
	return s
}
