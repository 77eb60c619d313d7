// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"image"
	"image/color"
)

// RenderContext draws onto a visible context and mirrors all geometry onto
// a hit-map context, where each marker is painted in a flat color that
// encodes its index.
//
// Path, transform, line width, font and baseline calls go to both contexts
// in the same order. Fill and stroke colors reach only the visible context;
// the hit-map colors are set by StartMarker. Bitmaps drawn with DrawImage
// never reach the hit-map.
type RenderContext struct {
	visible Context
	hitmap  Context
	index   int
}

var _ Context = (*RenderContext)(nil)

// NewRenderContext returns a render context over the two targets.
// hitmap may be nil, in which case only the visible context is drawn.
func NewRenderContext(visible, hitmap Context) *RenderContext {
	return &RenderContext{visible: visible, hitmap: hitmap}
}

// StartMarker advances the marker counter and switches the hit-map fill
// and stroke colors to the new index. The first marker is 1.
func (c *RenderContext) StartMarker() int {
	c.index++
	if c.hitmap != nil {
		col := IndexColor(c.index)
		c.hitmap.SetFillStyle(col)
		c.hitmap.SetStrokeStyle(col)
	}
	return c.index
}

// MarkerIndex returns the index of the marker being drawn, 0 before the
// first StartMarker.
func (c *RenderContext) MarkerIndex() int { return c.index }

func (c *RenderContext) each(fn func(Context)) {
	fn(c.visible)
	if c.hitmap != nil {
		fn(c.hitmap)
	}
}

func (c *RenderContext) BeginPath()          { c.each(func(t Context) { t.BeginPath() }) }
func (c *RenderContext) MoveTo(x, y float64) { c.each(func(t Context) { t.MoveTo(x, y) }) }
func (c *RenderContext) LineTo(x, y float64) { c.each(func(t Context) { t.LineTo(x, y) }) }
func (c *RenderContext) ClosePath()          { c.each(func(t Context) { t.ClosePath() }) }
func (c *RenderContext) Fill()               { c.each(func(t Context) { t.Fill() }) }
func (c *RenderContext) Stroke()             { c.each(func(t Context) { t.Stroke() }) }

func (c *RenderContext) Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool) {
	c.each(func(t Context) { t.Arc(x, y, r, startAngle, endAngle, anticlockwise) })
}

func (c *RenderContext) FillRect(x, y, w, h float64) {
	c.each(func(t Context) { t.FillRect(x, y, w, h) })
}

func (c *RenderContext) ClearRect(x, y, w, h float64) {
	c.each(func(t Context) { t.ClearRect(x, y, w, h) })
}

func (c *RenderContext) FillText(text string, x, y float64) {
	c.each(func(t Context) { t.FillText(text, x, y) })
}

// MeasureText measures with the visible context.
func (c *RenderContext) MeasureText(text string) TextMetrics {
	return c.visible.MeasureText(text)
}

func (c *RenderContext) SetLineWidth(w float64) { c.each(func(t Context) { t.SetLineWidth(w) }) }
func (c *RenderContext) SetFont(css string)     { c.each(func(t Context) { t.SetFont(css) }) }

func (c *RenderContext) SetTextBaseline(b Baseline) {
	c.each(func(t Context) { t.SetTextBaseline(b) })
}

// SetFillStyle sets the visible fill color.
func (c *RenderContext) SetFillStyle(col color.Color) { c.visible.SetFillStyle(col) }

// SetStrokeStyle sets the visible stroke color.
func (c *RenderContext) SetStrokeStyle(col color.Color) { c.visible.SetStrokeStyle(col) }

func (c *RenderContext) Translate(x, y float64) { c.each(func(t Context) { t.Translate(x, y) }) }
func (c *RenderContext) Scale(x, y float64)     { c.each(func(t Context) { t.Scale(x, y) }) }
func (c *RenderContext) Save()                  { c.each(func(t Context) { t.Save() }) }
func (c *RenderContext) Restore()               { c.each(func(t Context) { t.Restore() }) }

// DrawImage draws onto the visible context only.
func (c *RenderContext) DrawImage(img image.Image, x, y float64) {
	c.visible.DrawImage(img, x, y)
}
