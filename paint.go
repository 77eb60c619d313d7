// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"

	"github.com/gogpu/imageview/camera"
	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/marker"
)

// painter draws flattened markers through a render context. Marker
// problems are reported and collected; they never stop the loop.
type painter struct {
	ctx    *canvas.RenderContext
	cam    *camera.Model
	log    *slog.Logger
	report func(Notification)
	errs   []error
}

// paintAll paints every record in order. Each record is isolated by
// Save/Restore, so style and transform changes do not leak to the next.
func (p *painter) paintAll(records []marker.Record) {
	for _, r := range records {
		p.paintRecord(r)
	}
}

func (p *painter) paintRecord(r marker.Record) {
	p.ctx.Save()
	defer p.ctx.Restore()
	defer func() {
		if v := recover(); v != nil {
			err := fmt.Errorf("imageview: painting marker %d: %v", r.Index, v)
			p.errs = append(p.errs, err)
			p.log.Warn("imageview: unable to paint marker",
				slog.Int("index", r.Index),
				slog.Any("panic", v))
		}
	}()

	// The hit-map index must advance even for markers that paint nothing.
	p.ctx.StartMarker()
	if r.Marker == nil {
		return
	}
	p.paintMarker(r.Marker)
}

func (p *painter) paintMarker(m *marker.Marker) {
	if !m.Type.Known() {
		p.fail(m, ErrUnrecognizedMarkerType,
			"Unrecognized ImageMarker type "+strconv.Itoa(int(m.Type)),
			"Marker %q has an unrecognized type %d", m.Label(), int(m.Type))
		return
	}

	switch m.Type {
	case marker.Circle:
		var fill *marker.Color
		if m.Filled {
			fill = &m.FillColor
		}
		p.circle(m.Position, m.Scale, 1, &m.OutlineColor, fill)

	case marker.LineList:
		p.lineList(m)

	case marker.LineStrip, marker.Polygon:
		p.polyline(m)

	case marker.Points:
		for i, pt := range m.Points {
			// Points are filled, yet their per-point colors arrive in
			// outline_colors. fill_color is the last resort.
			var c marker.Color
			switch {
			case len(m.OutlineColors) > i:
				c = m.OutlineColors[i]
			case m.OutlineColor.Visible():
				c = m.OutlineColor
			default:
				c = m.FillColor
			}
			p.circle(pt, m.Scale, m.Scale, nil, &c)
		}

	case marker.Text:
		p.text(m)
	}
}

func (p *painter) lineList(m *marker.Marker) {
	n := len(m.Points)
	if n%2 != 0 {
		plural := "s"
		if n == 1 {
			plural = ""
		}
		p.fail(m, ErrMalformedMarker,
			"ImageMarker LINE_LIST has an odd number of points",
			"LINE_LIST marker %q has %d point%s, expected an even number", m.Label(), n, plural)
		return
	}

	// One color per segment when outline_colors has exactly n/2 entries,
	// otherwise the color of the segment's first point.
	exact := len(m.OutlineColors) == n/2
	for i := 0; i < n; i += 2 {
		var c marker.Color
		switch {
		case exact:
			c = m.OutlineColors[i/2]
		case len(m.OutlineColors) > i:
			c = m.OutlineColors[i]
		default:
			c = m.OutlineColor
		}
		p.line(m.Points[i], m.Points[i+1], m.Scale, c)
	}
}

func (p *painter) polyline(m *marker.Marker) {
	if len(m.Points) == 0 {
		return
	}
	p.ctx.BeginPath()
	for i, pt := range m.Points {
		u := p.unrectify(pt)
		if i == 0 {
			p.ctx.MoveTo(u.X, u.Y)
		} else {
			p.ctx.LineTo(u.X, u.Y)
		}
	}
	if m.Type == marker.Polygon {
		p.ctx.ClosePath()
		if bool(m.Filled) && m.FillColor.Visible() {
			p.ctx.SetFillStyle(m.FillColor)
			p.ctx.Fill()
		}
	}
	if m.OutlineColor.Visible() && m.Scale > 0 {
		p.ctx.SetStrokeStyle(m.OutlineColor)
		p.ctx.SetLineWidth(m.Scale)
		p.ctx.Stroke()
	}
}

func (p *painter) text(m *marker.Marker) {
	pos := p.unrectify(m.Position)
	s := m.TextData()
	if s == "" {
		return
	}

	fontSize := m.Scale * 12
	padding := 4 * m.Scale
	p.ctx.SetFont(strconv.FormatFloat(fontSize, 'f', -1, 64) + "px sans-serif")
	p.ctx.SetTextBaseline(canvas.BaselineBottom)
	if m.Filled {
		metrics := p.ctx.MeasureText(s)
		h := metrics.Height()
		if !(h > 0) {
			h = fontSize * 1.2
		}
		p.ctx.SetFillStyle(m.FillColor)
		p.ctx.FillRect(pos.X, pos.Y-h, math.Ceil(metrics.Width+2*padding), math.Ceil(h))
	}
	p.ctx.SetFillStyle(m.OutlineColor)
	p.ctx.FillText(s, pos.X+padding, pos.Y)
}

func (p *painter) line(a, b marker.Point, thickness float64, c marker.Color) {
	if thickness <= 0 || !c.Visible() {
		return
	}
	ua, ub := p.unrectify(a), p.unrectify(b)
	p.ctx.BeginPath()
	p.ctx.MoveTo(ua.X, ua.Y)
	p.ctx.LineTo(ub.X, ub.Y)
	p.ctx.SetLineWidth(thickness)
	p.ctx.SetStrokeStyle(c)
	p.ctx.Stroke()
}

// circle paints a disc of the given radius. A nil or transparent color
// skips that part; a non-positive radius paints nothing.
func (p *painter) circle(center marker.Point, radius, thickness float64, outline, fill *marker.Color) {
	hasFill := fill != nil && fill.Visible()
	hasStroke := outline != nil && outline.Visible() && thickness > 0
	if radius <= 0 || (!hasFill && !hasStroke) {
		return
	}

	u := p.unrectify(center)
	p.ctx.BeginPath()
	p.ctx.Arc(u.X, u.Y, radius, 0, 2*math.Pi, false)
	if hasFill {
		p.ctx.SetFillStyle(*fill)
		p.ctx.Fill()
	}
	if hasStroke {
		p.ctx.SetLineWidth(thickness)
		p.ctx.SetStrokeStyle(*outline)
		p.ctx.Stroke()
	}
}

func (p *painter) unrectify(pt marker.Point) camera.Point {
	return p.cam.UnrectifyPoint(camera.Point{X: pt.X, Y: pt.Y})
}

func (p *painter) fail(m *marker.Marker, sentinel error, title, format string, args ...any) {
	err := newMarkerError(m, sentinel, format, args...)
	p.errs = append(p.errs, err)
	if p.report != nil {
		p.report(Notification{
			Severity: SeverityError,
			Message:  title,
			Details:  err.Detail,
			Err:      err,
		})
	}
}
