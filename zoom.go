// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import "math"

// ZoomMode selects how a bitmap is scaled into the viewport.
type ZoomMode string

const (
	// ZoomFit scales the bitmap down, never up, until it fits inside the
	// viewport.
	ZoomFit ZoomMode = "fit"

	// ZoomFill scales the bitmap until it covers the viewport.
	ZoomFill ZoomMode = "fill"

	// ZoomOther leaves the bitmap at its native size.
	ZoomOther ZoomMode = "other"
)

// PanZoom is the user's pan offset in viewport pixels and zoom factor.
type PanZoom struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Scale float64 `json:"scale"`
}

// scale returns the zoom factor, treating unset or invalid values as 1.
func (p PanZoom) scale() float64 {
	if !(p.Scale > 0) || math.IsInf(p.Scale, 0) {
		return 1
	}
	return p.Scale
}

// Dimensions is a width and height in pixels.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Empty reports whether either side is not positive.
func (d Dimensions) Empty() bool { return d.Width <= 0 || d.Height <= 0 }

// ZoomScale returns the factor that maps a bitmap into a viewport for mode.
// Both aspect ratios are preserved: fit takes the smaller axis ratio capped
// at 1, fill the larger one, any other mode returns 1.
func ZoomScale(bitmap, viewport Dimensions, mode ZoomMode) float64 {
	if bitmap.Empty() || viewport.Empty() {
		return 1
	}
	sx := float64(viewport.Width) / float64(bitmap.Width)
	sy := float64(viewport.Height) / float64(bitmap.Height)
	switch mode {
	case ZoomFit:
		return math.Min(math.Min(sx, sy), 1)
	case ZoomFill:
		return math.Max(sx, sy)
	default:
		return 1
	}
}
