// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"github.com/gogpu/imageview/camera"
	"github.com/gogpu/imageview/codec"
	"github.com/gogpu/imageview/marker"
)

// RenderRequest asks a worker to paint one frame with its markers.
// The JSON form matches the renderImage message of the web viewer.
type RenderRequest struct {
	ZoomMode ZoomMode      `json:"zoomMode"`
	PanZoom  PanZoom       `json:"panZoom"`
	Viewport Dimensions    `json:"viewport"`
	Image    *codec.Frame  `json:"imageMessage,omitempty"`
	Datatype string        `json:"imageMessageDatatype,omitempty"`
	Markers  RawMarkerData `json:"rawMarkerData"`
	Options  RenderOptions `json:"options"`
}

// RawMarkerData carries the markers of one request and the calibration
// used to place them.
type RawMarkerData struct {
	Markers marker.Messages `json:"markers,omitempty"`

	// TransformMarkers un-distorts marker coordinates through the camera
	// model built from CameraInfo.
	TransformMarkers bool `json:"transformMarkers,omitempty"`

	// CameraInfo also gives the resolution marker coordinates refer to,
	// when it differs from the transported bitmap.
	CameraInfo *camera.Info `json:"cameraInfo,omitempty"`
}

// RenderOptions tunes one render.
type RenderOptions struct {
	ImageSmoothing bool     `json:"imageSmoothing,omitempty"`
	ResizeCanvas   bool     `json:"resizeCanvas,omitempty"`
	MinValue       *float64 `json:"minValue,omitempty"`
	MaxValue       *float64 `json:"maxValue,omitempty"`
}

func (o RenderOptions) codecOptions() codec.Options {
	return codec.Options{MinValue: o.MinValue, MaxValue: o.MaxValue}
}
