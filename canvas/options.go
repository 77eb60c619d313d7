// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

// SurfaceOption configures a Surface during creation.
//
// Example:
//
//	// Visible surface with bilinear image sampling
//	s := canvas.New(640, 480, canvas.WithImageSmoothing(true))
//
//	// Hit-map surface: hard edges so every pixel carries an exact color
//	hit := canvas.New(640, 480, canvas.WithAntialias(false))
type SurfaceOption func(*surfaceOptions)

type surfaceOptions struct {
	antialias bool
	smoothing bool
}

func defaultOptions() surfaceOptions {
	return surfaceOptions{
		antialias: true,
		smoothing: false,
	}
}

// WithAntialias controls edge anti-aliasing for paths, rectangles and text.
// With antialiasing off, a pixel is painted when at least half of it is
// covered and left untouched otherwise, so no blended colors are produced.
func WithAntialias(enabled bool) SurfaceOption {
	return func(o *surfaceOptions) {
		o.antialias = enabled
	}
}

// WithImageSmoothing selects bilinear instead of nearest-neighbour sampling
// when DrawImage scales or transforms a bitmap.
func WithImageSmoothing(enabled bool) SurfaceOption {
	return func(o *surfaceOptions) {
		o.smoothing = enabled
	}
}
