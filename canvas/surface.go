// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/imageview/internal/raster"
)

// state is the part of a surface saved and restored by Save and Restore.
type state struct {
	matrix    Matrix
	lineWidth float64
	fill      color.NRGBA
	stroke    color.NRGBA
	font      Font
	baseline  Baseline
}

func defaultState() state {
	f, _ := ParseFont(DefaultFont)
	return state{
		matrix:    Identity(),
		lineWidth: 1,
		fill:      color.NRGBA{A: 255},
		stroke:    color.NRGBA{A: 255},
		font:      f,
		baseline:  BaselineAlphabetic,
	}
}

// Surface is a raster 2D drawing surface backed by an *image.RGBA.
//
// Geometry is built in user space and mapped to device pixels through the
// current transform at the moment each point is added, the way an HTML
// canvas does it. A Surface is not safe for concurrent use.
type Surface struct {
	img   *image.RGBA
	opts  surfaceOptions
	st    state
	stack []state
	path  path
	faces faceCache
}

// New creates a transparent surface of the given size.
// Negative dimensions are treated as zero.
func New(width, height int, opts ...SurfaceOption) *Surface {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Surface{
		img:  image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		opts: o,
		st:   defaultState(),
	}
}

// Width returns the width of the surface in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the height of the surface in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the pixel bounds of the surface.
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Resize reallocates the pixels and resets all drawing state, leaving a
// transparent surface of the new size.
func (s *Surface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	s.reset()
}

// Reset clears the pixels and restores the default drawing state.
func (s *Surface) Reset() {
	s.Clear()
	s.reset()
}

func (s *Surface) reset() {
	s.st = defaultState()
	s.stack = s.stack[:0]
	s.path.reset()
}

// Clear makes every pixel transparent. Drawing state is kept.
func (s *Surface) Clear() {
	clear(s.img.Pix)
}

// SetImageSmoothing toggles bilinear sampling for DrawImage.
func (s *Surface) SetImageSmoothing(enabled bool) {
	s.opts.smoothing = enabled
}

// ImageSmoothing reports whether DrawImage samples bilinearly.
func (s *Surface) ImageSmoothing() bool { return s.opts.smoothing }

// Image returns the backing image. It aliases the surface pixels and is
// invalidated by Resize.
func (s *Surface) Image() *image.RGBA { return s.img }

// Snapshot returns a copy of the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Pixel returns the non-premultiplied color at (x, y).
// ok is false when the coordinate lies outside the surface.
func (s *Surface) Pixel(x, y int) (c color.NRGBA, ok bool) {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return color.NRGBA{}, false
	}
	return toNRGBA(s.img.RGBAAt(x, y)), true
}

// Matrix returns the current transform.
func (s *Surface) Matrix() Matrix { return s.st.matrix }

// Save pushes the transform and style state.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.st)
}

// Restore pops the state saved by the matching Save. Without a saved state
// it does nothing.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.st = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate applies a translation.
func (s *Surface) Translate(x, y float64) {
	s.st.matrix = s.st.matrix.Multiply(Translate(x, y))
}

// Scale applies a scaling transformation.
func (s *Surface) Scale(x, y float64) {
	s.st.matrix = s.st.matrix.Multiply(Scale(x, y))
}

// SetLineWidth sets the stroke width in user units. Non-positive and
// non-finite widths are ignored.
func (s *Surface) SetLineWidth(w float64) {
	if w <= 0 || math.IsInf(w, 0) || math.IsNaN(w) {
		return
	}
	s.st.lineWidth = w
}

// LineWidth returns the stroke width in user units.
func (s *Surface) LineWidth() float64 { return s.st.lineWidth }

// SetFillStyle sets the color used by Fill, FillRect and FillText.
func (s *Surface) SetFillStyle(c color.Color) { s.st.fill = toNRGBA(c) }

// SetStrokeStyle sets the color used by Stroke.
func (s *Surface) SetStrokeStyle(c color.Color) { s.st.stroke = toNRGBA(c) }

// FillStyle returns the current fill color.
func (s *Surface) FillStyle() color.NRGBA { return s.st.fill }

// StrokeStyle returns the current stroke color.
func (s *Surface) StrokeStyle() color.NRGBA { return s.st.stroke }

// SetFont sets the font from a CSS shorthand. Strings that do not parse are
// ignored.
func (s *Surface) SetFont(css string) {
	if f, err := ParseFont(css); err == nil {
		s.st.font = f
	}
}

// Font returns the current font.
func (s *Surface) Font() Font { return s.st.font }

// SetTextBaseline sets the anchor used by FillText.
func (s *Surface) SetTextBaseline(b Baseline) { s.st.baseline = b }

// TextBaseline returns the current text baseline.
func (s *Surface) TextBaseline() Baseline { return s.st.baseline }

// BeginPath discards the current path.
func (s *Surface) BeginPath() { s.path.reset() }

// MoveTo starts a new subpath at (x, y).
func (s *Surface) MoveTo(x, y float64) {
	s.path.moveTo(s.st.matrix.TransformPoint(Pt(x, y)))
}

// LineTo adds a straight segment to (x, y).
func (s *Surface) LineTo(x, y float64) {
	s.path.lineTo(s.st.matrix.TransformPoint(Pt(x, y)))
}

// ClosePath closes the current subpath.
func (s *Surface) ClosePath() { s.path.close() }

// Arc adds a circular arc centered on (x, y). When a subpath is open, a
// straight segment joins its last point to the start of the arc.
// A negative radius adds nothing.
func (s *Surface) Arc(x, y, r, startAngle, endAngle float64, anticlockwise bool) {
	if r < 0 || math.IsNaN(r) {
		return
	}
	pts := arcPoints(s.st.matrix, x, y, r, startAngle, endAngle, anticlockwise)
	for _, pt := range pts {
		s.path.lineTo(pt)
	}
}

// Fill fills the current path with the fill color using the non-zero rule.
func (s *Surface) Fill() {
	s.paint(raster.Fill(s.img.Rect, s.path.polygons()), s.st.fill)
}

// Stroke outlines the current path with the stroke color and line width.
func (s *Surface) Stroke() {
	hw := s.st.lineWidth * s.st.matrix.ScaleFactor() / 2
	s.paint(raster.Union(s.img.Rect, strokePolygons(&s.path, hw)), s.st.stroke)
}

// FillRect fills a rectangle without touching the current path.
func (s *Surface) FillRect(x, y, w, h float64) {
	s.paint(raster.Fill(s.img.Rect, []raster.Polygon{s.rect(x, y, w, h)}), s.st.fill)
}

// ClearRect makes the pixels inside a rectangle transparent.
func (s *Surface) ClearRect(x, y, w, h float64) {
	m := raster.Fill(s.img.Rect, []raster.Polygon{s.rect(x, y, w, h)})
	if m.Empty() {
		return
	}
	if !s.opts.antialias {
		m.Threshold(0x80)
	}
	m.Erase(s.img)
}

func (s *Surface) rect(x, y, w, h float64) raster.Polygon {
	m := s.st.matrix
	return raster.Polygon{
		m.TransformPoint(Pt(x, y)),
		m.TransformPoint(Pt(x+w, y)),
		m.TransformPoint(Pt(x+w, y+h)),
		m.TransformPoint(Pt(x, y+h)),
	}
}

func (s *Surface) paint(m *raster.Mask, c color.NRGBA) {
	if m.Empty() || c.A == 0 {
		return
	}
	if !s.opts.antialias {
		m.Threshold(0x80)
	}
	m.Paint(s.img, image.NewUniform(c), draw.Over)
}

// MeasureText returns the metrics of text in the current font, in user
// units.
func (s *Surface) MeasureText(text string) TextMetrics {
	return measure(text, s.st.font, &s.faces)
}

// FillText draws text with the fill color, anchored at (x, y) according to
// the text baseline. Glyphs follow the translation and scale of the
// current transform; rotation and skew are not applied to glyph shapes.
func (s *Surface) FillText(text string, x, y float64) {
	if text == "" || s.st.fill.A == 0 {
		return
	}
	scale := s.st.matrix.ScaleFactor()
	size := s.st.font.Size * scale
	if size <= 0 {
		return
	}
	face, err := s.faces.face(lookupTypeface(s.st.font), size)
	if err != nil {
		return
	}

	origin := s.st.matrix.TransformPoint(Pt(x, y))
	origin.Y += s.st.baseline.offset(face.Metrics())
	dot := fixed.Point26_6{X: floatToFixed(origin.X), Y: floatToFixed(origin.Y)}

	bounds, _ := font.BoundString(face, text)
	r := image.Rect(
		bounds.Min.X.Floor(), bounds.Min.Y.Floor(),
		bounds.Max.X.Ceil(), bounds.Max.Y.Ceil(),
	).Add(image.Pt(dot.X.Floor(), dot.Y.Floor())).Inset(-1).Intersect(s.img.Rect)
	if r.Empty() {
		return
	}

	m := raster.NewMask(r)
	d := font.Drawer{
		Dst:  m.Alpha,
		Src:  image.Opaque,
		Face: face,
		Dot:  dot.Sub(fixed.P(r.Min.X, r.Min.Y)),
	}
	d.DrawString(text)
	s.paint(m, s.st.fill)
}

// DrawImage draws img with its top-left corner at (x, y) under the current
// transform.
func (s *Surface) DrawImage(img image.Image, x, y float64) {
	if img == nil || img.Bounds().Empty() {
		return
	}
	m := s.st.matrix.Multiply(Translate(x, y))
	sr := img.Bounds()

	if m.IsTranslation() && m.C == math.Trunc(m.C) && m.F == math.Trunc(m.F) {
		dp := image.Pt(int(m.C), int(m.F))
		xdraw.Draw(s.img, sr.Sub(sr.Min).Add(dp), img, sr.Min, xdraw.Over)
		return
	}

	// Transform works in absolute source coordinates.
	m = m.Multiply(Translate(float64(-sr.Min.X), float64(-sr.Min.Y)))
	interp := xdraw.NearestNeighbor
	if s.opts.smoothing {
		interp = xdraw.BiLinear
	}
	interp.Transform(s.img, m.Aff3(), img, sr, xdraw.Over, nil)
}
