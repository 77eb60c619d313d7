// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas provides a raster 2D drawing surface modeled on the HTML
// canvas API, and a render context that mirrors drawing onto a visible
// surface and an index-colored hit-map surface.
//
// Basic usage:
//
//	visible := canvas.New(640, 480)
//	hitmap := canvas.New(640, 480, canvas.WithAntialias(false))
//	ctx := canvas.NewRenderContext(visible, hitmap)
//
//	ctx.StartMarker() // marker 1
//	ctx.SetFillStyle(canvas.Hex("#ff0000"))
//	ctx.BeginPath()
//	ctx.Arc(100, 100, 20, 0, 2*math.Pi, false)
//	ctx.Fill()
//
//	c, _ := hitmap.Pixel(100, 100)
//	index, ok := canvas.DecodeIndex(c) // 1, true
package canvas

import (
	"image"
	"image/color"
)

// Context is the drawing API shared by Surface and RenderContext.
type Context interface {
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool)
	ClosePath()
	Fill()
	Stroke()
	FillRect(x, y, w, h float64)
	ClearRect(x, y, w, h float64)
	FillText(text string, x, y float64)
	MeasureText(text string) TextMetrics

	SetLineWidth(w float64)
	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetFont(css string)
	SetTextBaseline(b Baseline)

	Translate(x, y float64)
	Scale(x, y float64)
	Save()
	Restore()

	DrawImage(img image.Image, x, y float64)
}

var _ Context = (*Surface)(nil)
