// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"errors"
	"fmt"

	"github.com/gogpu/imageview/marker"
)

// Render errors.
var (
	// ErrDecodeFailure wraps every frame decode error returned by a render.
	// The codec error stays reachable through errors.Is and errors.As.
	ErrDecodeFailure = errors.New("imageview: decode failure")

	// ErrMalformedMarker is reported for markers whose geometry is
	// inconsistent, such as a line list with an odd number of points.
	ErrMalformedMarker = errors.New("imageview: malformed marker")

	// ErrUnrecognizedMarkerType is reported for markers of an unknown kind.
	ErrUnrecognizedMarkerType = errors.New("imageview: unrecognized marker type")

	// ErrWorkerClosed is returned by calls made after Close.
	ErrWorkerClosed = errors.New("imageview: worker closed")

	// ErrNilSurface is returned by Initialize without a surface.
	ErrNilSurface = errors.New("imageview: nil surface")
)

// MarkerError describes a marker that could not be painted.
type MarkerError struct {
	Namespace string
	ID        int
	Kind      marker.Kind
	Detail    string
	Err       error
}

func newMarkerError(m *marker.Marker, err error, format string, args ...any) *MarkerError {
	return &MarkerError{
		Namespace: m.Namespace,
		ID:        m.ID,
		Kind:      m.Type,
		Detail:    fmt.Sprintf(format, args...),
		Err:       err,
	}
}

func (e *MarkerError) Error() string {
	label := fmt.Sprint(e.ID)
	if e.Namespace != "" {
		label = e.Namespace + ":" + label
	}
	return fmt.Sprintf("%v: marker %q: %s", e.Err, label, e.Detail)
}

// Unwrap returns the underlying sentinel error.
func (e *MarkerError) Unwrap() error { return e.Err }
