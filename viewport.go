// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/marker"
)

// viewport is the render state of one caller-identified view. It is owned
// by the worker goroutine.
type viewport struct {
	id      string
	canvas  *canvas.Surface
	hitmap  *canvas.Surface
	markers []marker.Record
}

// newViewport pairs visible with a hit-map of the same size. The hit-map
// is drawn with hard edges so every covered pixel carries an exact index.
func newViewport(id string, visible *canvas.Surface) *viewport {
	return &viewport{
		id:     id,
		canvas: visible,
		hitmap: canvas.New(visible.Width(), visible.Height(), canvas.WithAntialias(false)),
	}
}

// resize sets both surfaces to size. Non-positive sizes are ignored. It
// reports whether anything changed.
func (v *viewport) resize(size Dimensions) bool {
	if size.Empty() {
		return false
	}
	changed := false
	if v.canvas.Width() != size.Width || v.canvas.Height() != size.Height {
		v.canvas.Resize(size.Width, size.Height)
		changed = true
	}
	if v.hitmap.Width() != v.canvas.Width() || v.hitmap.Height() != v.canvas.Height() {
		v.hitmap.Resize(v.canvas.Width(), v.canvas.Height())
		changed = true
	}
	return changed
}

// record returns the marker painted with index n, or nil.
func (v *viewport) record(n int) *marker.Record {
	if n < 1 || n > len(v.markers) {
		return nil
	}
	r := &v.markers[n-1]
	if r.Index != n {
		return nil
	}
	return r
}
