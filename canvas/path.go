// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"math"

	"github.com/gogpu/imageview/internal/raster"
)

// flatness is the maximum distance in device pixels between an arc and the
// chords that approximate it.
const flatness = 0.1

// subpath is a polyline in device space.
type subpath struct {
	pts    []Point
	closed bool
}

// path accumulates subpaths already mapped through the transform that was
// current when each point was added, so later transform changes do not
// affect geometry that has been built.
type path struct {
	subs []subpath
}

func (p *path) reset() {
	p.subs = p.subs[:0]
}

func (p *path) current() *subpath {
	if len(p.subs) == 0 {
		return nil
	}
	return &p.subs[len(p.subs)-1]
}

func (p *path) moveTo(pt Point) {
	p.subs = append(p.subs, subpath{pts: []Point{pt}})
}

// lineTo adds a point to the current subpath, starting one if there is none.
func (p *path) lineTo(pt Point) {
	sp := p.current()
	if sp == nil {
		p.moveTo(pt)
		return
	}
	sp.pts = append(sp.pts, pt)
}

// close marks the current subpath closed and opens a new one at its start.
func (p *path) close() {
	sp := p.current()
	if sp == nil || len(sp.pts) == 0 {
		return
	}
	sp.closed = true
	p.moveTo(sp.pts[0])
}

// polygons returns the subpaths as implicitly closed polygons for filling.
func (p *path) polygons() []raster.Polygon {
	polys := make([]raster.Polygon, 0, len(p.subs))
	for _, sp := range p.subs {
		if len(sp.pts) < 3 {
			continue
		}
		polys = append(polys, raster.Polygon(sp.pts))
	}
	return polys
}

// arcPoints samples a circular arc in user space and maps every sample
// through m. The sweep follows the 2D canvas rules: clockwise sweeps run from
// a0 to a1 increasing, anticlockwise decreasing, capped at one full turn.
func arcPoints(m Matrix, x, y, r, a0, a1 float64, anticlockwise bool) []Point {
	const twoPi = 2 * math.Pi

	sweep := a1 - a0
	if anticlockwise {
		sweep = -sweep
	}
	if sweep >= twoPi {
		sweep = twoPi
	} else {
		sweep = math.Mod(sweep, twoPi)
		if sweep < 0 {
			sweep += twoPi
		}
	}
	if anticlockwise {
		sweep = -sweep
	}

	n := 1
	if devR := r * m.ScaleFactor(); devR > flatness && sweep != 0 {
		step := 2 * math.Acos(1-flatness/devR)
		n = int(math.Ceil(math.Abs(sweep) / step))
	}
	n = max(n, 1)
	n = min(n, 1024)

	pts := make([]Point, 0, n+1)
	for i := 0; i <= n; i++ {
		theta := a0 + sweep*float64(i)/float64(n)
		pts = append(pts, m.TransformPoint(Pt(x+r*math.Cos(theta), y+r*math.Sin(theta))))
	}
	return pts
}
