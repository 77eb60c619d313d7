// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster builds coverage masks for 2D polygons.
//
// Coverage is computed with golang.org/x/image/vector. A Mask can be snapped
// to hard edges with Threshold, which is what hit-test surfaces need: every
// pixel is either inside a shape or untouched, so a sampled color is always
// exactly one of the colors that was painted.
package raster

import (
	"image"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a device-space point.
type Point struct {
	X, Y float64
}

// Polygon is an implicitly closed sequence of device-space points.
type Polygon []Point

// Mask is an 8-bit coverage mask placed at Rect in device space.
// Alpha has its origin at (0, 0) and the size of Rect.
type Mask struct {
	Rect  image.Rectangle
	Alpha *image.Alpha
}

// NewMask returns an empty mask covering r.
func NewMask(r image.Rectangle) *Mask {
	return &Mask{
		Rect:  r,
		Alpha: image.NewAlpha(image.Rect(0, 0, r.Dx(), r.Dy())),
	}
}

// Bounds returns the integer bounding box of polys grown by pad pixels.
// It returns the empty rectangle when polys hold no point.
func Bounds(polys []Polygon, pad float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, poly := range polys {
		for _, p := range poly {
			minX = math.Min(minX, p.X)
			minY = math.Min(minY, p.Y)
			maxX = math.Max(maxX, p.X)
			maxY = math.Max(maxY, p.Y)
		}
	}
	if math.IsInf(minX, 1) || math.IsNaN(minX+minY+maxX+maxY) {
		return image.Rectangle{}
	}
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad)), int(math.Ceil(maxY+pad)),
	)
}

// Fill rasterizes all polygons as one shape. Overlaps with the same winding
// stay covered and opposite windings cancel, matching non-zero filling of a
// path whose holes run the other way. Returns nil when nothing inside clip
// can be covered.
func Fill(clip image.Rectangle, polys []Polygon) *Mask {
	r := clip.Intersect(Bounds(polys, 1))
	if r.Empty() {
		return nil
	}
	m := NewMask(r)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	z.DrawOp = draw.Over
	for _, poly := range polys {
		addPolygon(z, poly, r.Min)
	}
	z.Draw(m.Alpha, m.Alpha.Bounds(), image.Opaque, image.Point{})
	return m
}

// Union rasterizes every polygon on its own and composites the coverage,
// so overlapping pieces never cancel. Strokes are assembled this way.
func Union(clip image.Rectangle, polys []Polygon) *Mask {
	r := clip.Intersect(Bounds(polys, 1))
	if r.Empty() {
		return nil
	}
	m := NewMask(r)
	z := vector.NewRasterizer(r.Dx(), r.Dy())
	for _, poly := range polys {
		if len(poly) < 3 {
			continue
		}
		z.Reset(r.Dx(), r.Dy())
		z.DrawOp = draw.Over
		addPolygon(z, poly, r.Min)
		z.Draw(m.Alpha, m.Alpha.Bounds(), image.Opaque, image.Point{})
	}
	return m
}

func addPolygon(z *vector.Rasterizer, poly Polygon, origin image.Point) {
	if len(poly) < 3 {
		return
	}
	ox, oy := float64(origin.X), float64(origin.Y)
	z.MoveTo(float32(poly[0].X-ox), float32(poly[0].Y-oy))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X-ox), float32(p.Y-oy))
	}
	z.ClosePath()
}

// Threshold snaps coverage to fully opaque when it is at least level and to
// zero otherwise.
func (m *Mask) Threshold(level uint8) {
	for i, a := range m.Alpha.Pix {
		if a >= level {
			m.Alpha.Pix[i] = 0xff
		} else {
			m.Alpha.Pix[i] = 0
		}
	}
}

// Empty reports whether the mask covers no pixel.
func (m *Mask) Empty() bool {
	if m == nil {
		return true
	}
	for _, a := range m.Alpha.Pix {
		if a != 0 {
			return false
		}
	}
	return true
}

// Paint composites src through the mask onto dst with op.
func (m *Mask) Paint(dst draw.Image, src image.Image, op draw.Op) {
	if m == nil {
		return
	}
	draw.DrawMask(dst, m.Rect, src, m.Rect.Min, m.Alpha, image.Point{}, op)
}

// Erase scales the pixels of dst under the mask toward transparent by the
// mask coverage, leaving uncovered pixels untouched.
func (m *Mask) Erase(dst *image.RGBA) {
	if m == nil {
		return
	}
	r := m.Rect.Intersect(dst.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			a := uint32(m.Alpha.AlphaAt(x-m.Rect.Min.X, y-m.Rect.Min.Y).A)
			if a == 0 {
				continue
			}
			keep := 0xff - a
			i := dst.PixOffset(x, y)
			for c := i; c < i+4; c++ {
				dst.Pix[c] = uint8((uint32(dst.Pix[c])*keep + 0x7f) / 0xff)
			}
		}
	}
}
