// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package imageview decodes camera frames, paints them with overlay markers
// and answers "which marker is under this pixel" queries, all on a
// background worker goroutine.
//
// # Overview
//
// A Worker owns a set of viewports. Each viewport is a pair of raster
// surfaces of identical size: the visible surface shows the frame and its
// markers, and the hit-map surface records, for every pixel a marker
// covers, the marker's 1-based render index encoded as an opaque color.
//
//	w := imageview.NewWorker()
//	defer w.Close()
//
//	err := w.Initialize(ctx, "front", canvas.New(640, 480))
//	dims, err := w.RenderImage(ctx, "front", &imageview.RenderRequest{
//		ZoomMode: imageview.ZoomFit,
//		PanZoom:  imageview.PanZoom{Scale: 1},
//		Viewport: imageview.Dimensions{Width: 640, Height: 480},
//		Image:    frame,
//		Datatype: "sensor_msgs/Image",
//		Markers:  imageview.RawMarkerData{Markers: msgs},
//	})
//	sample, err := w.MouseMove(ctx, "front", 320, 240)
//	if sample != nil && sample.Marker != nil {
//		fmt.Println("hovering", sample.Marker.Label())
//	}
//
// # Rendering
//
// Render requests are decoded by package codec, markers are flattened by
// package marker, optionally un-distorted through package camera, and
// painted through a canvas.RenderContext so the visible and hit-map
// surfaces receive the same geometry under the same transforms.
//
// # Errors
//
// Frame decode failures abort the render and clear the surfaces.
// Per-marker problems and camera calibration failures never abort a
// render; they are reported through a Notifier, deduplicated per worker.
//
// # Logging
//
// By default the package is silent. Use SetLogger or WithLogger to enable
// structured logging via log/slog.
package imageview
