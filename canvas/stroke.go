// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"

	"github.com/gogpu/imageview/internal/raster"
)

// miterLimit matches the 2D canvas default.
const miterLimit = 10

// strokePolygons expands the subpaths of p into polygons covering a stroke
// of half-width hw. Segments get butt caps; interior vertices (and every
// vertex of a closed subpath) get a miter join, or a bevel when the miter
// would exceed miterLimit. The pieces overlap and must be combined with
// raster.Union.
func strokePolygons(p *path, hw float64) []raster.Polygon {
	if hw <= 0 {
		return nil
	}

	var polys []raster.Polygon
	for _, sp := range p.subs {
		pts := dedupe(sp.pts)
		closed := sp.closed && len(pts) > 2
		if closed && pts[0] == pts[len(pts)-1] {
			pts = pts[:len(pts)-1]
		}
		if len(pts) < 2 {
			continue
		}

		segs := len(pts) - 1
		if closed {
			segs = len(pts)
		}
		dirs := make([]Point, segs)
		for i := range segs {
			a, b := pts[i], pts[(i+1)%len(pts)]
			dirs[i] = unit(Pt(b.X-a.X, b.Y-a.Y))

			n := Pt(-dirs[i].Y*hw, dirs[i].X*hw)
			polys = append(polys, raster.Polygon{
				{X: a.X + n.X, Y: a.Y + n.Y},
				{X: b.X + n.X, Y: b.Y + n.Y},
				{X: b.X - n.X, Y: b.Y - n.Y},
				{X: a.X - n.X, Y: a.Y - n.Y},
			})
		}

		for i := 1; i < segs; i++ {
			if j := join(pts[i], dirs[i-1], dirs[i], hw); j != nil {
				polys = append(polys, j)
			}
		}
		if closed {
			if j := join(pts[0], dirs[segs-1], dirs[0], hw); j != nil {
				polys = append(polys, j)
			}
		}
	}
	return polys
}

// join returns the wedge filling the gap on the outer side of the turn from
// direction in to direction out at vertex p.
func join(p, in, out Point, hw float64) raster.Polygon {
	cross := in.X*out.Y - in.Y*out.X
	dot := in.X*out.X + in.Y*out.Y
	if math.Abs(cross) < 1e-9 && dot > 0 {
		return nil
	}

	s := 1.0
	if cross > 0 {
		s = -1
	}
	n1 := Pt(-in.Y, in.X)
	n2 := Pt(-out.Y, out.X)
	e1 := Pt(p.X+s*n1.X*hw, p.Y+s*n1.Y*hw)
	e2 := Pt(p.X+s*n2.X*hw, p.Y+s*n2.Y*hw)

	b := Pt(n1.X+n2.X, n1.Y+n2.Y)
	bb := b.X*b.X + b.Y*b.Y
	// 1/cos(theta/2) = 2/|b|
	if bb > 1e-12 && 4/bb <= miterLimit*miterLimit {
		k := s * 2 * hw / bb
		tip := Pt(p.X+b.X*k, p.Y+b.Y*k)
		return raster.Polygon{p, e1, tip, e2}
	}
	return raster.Polygon{p, e1, e2}
}

func dedupe(pts []Point) []Point {
	out := make([]Point, 0, len(pts))
	for _, pt := range pts {
		if len(out) > 0 && out[len(out)-1] == pt {
			continue
		}
		out = append(out, pt)
	}
	return out
}

func unit(v Point) Point {
	l := math.Hypot(v.X, v.Y)
	if l == 0 {
		return Point{}
	}
	return Pt(v.X/l, v.Y/l)
}
