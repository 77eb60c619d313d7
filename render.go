// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gogpu/imageview/camera"
	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/codec"
	"github.com/gogpu/imageview/marker"
)

// cameraModelKey deduplicates camera calibration failures so they are
// reported once per worker session.
const cameraModelKey = "camera-model"

// Renderer paints decoded frames and their markers onto a visible surface
// and a hit-map surface. A Renderer is not safe for concurrent use; Worker
// serializes access to it.
type Renderer struct {
	opts    options
	notes   *notifications
	metrics *metrics
}

// NewRenderer returns a Renderer configured by opts. WithQueueSize has no
// effect on a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := buildOptions(opts)
	return newRenderer(o, mustMetrics(&o))
}

func newRenderer(o options, mt *metrics) *Renderer {
	return &Renderer{
		opts:    o,
		notes:   newNotifications(o.notifier, o.log),
		metrics: mt,
	}
}

// ResetNotifications forgets which notifications were already delivered,
// so the next occurrence of each is reported again.
func (r *Renderer) ResetNotifications() { r.notes.reset() }

// Render draws req onto visible and hitmap and returns the native size of
// the decoded bitmap. hitmap may be nil.
//
// A request without a frame or datatype clears both surfaces and returns
// nil, nil. A frame that cannot be decoded clears both surfaces and
// returns an error wrapping ErrDecodeFailure. Marker problems are reported
// through the notifier and never fail the render.
//
// records are painted in order; their indices must be 1..n as produced by
// marker.Flatten, since the hit-map encodes the paint order.
func (r *Renderer) Render(visible, hitmap *canvas.Surface, req *RenderRequest, records []marker.Record) (*Dimensions, error) {
	if visible == nil {
		return nil, nil
	}
	if req == nil || req.Image == nil || req.Datatype == "" {
		clearSurfaces(visible, hitmap)
		return nil, nil
	}

	start := time.Now()
	defer r.metrics.renderDone(start)
	log := r.opts.log()

	cam := r.cameraModel(&req.Markers)

	bitmap, err := codec.Decode(req.Datatype, req.Image, req.Options.codecOptions())
	if err != nil {
		clearSurfaces(visible, hitmap)
		r.metrics.renderError(decodeErrorKind(err))
		log.Debug("imageview: decode failed",
			slog.String("datatype", req.Datatype),
			slog.Any("error", err))
		return nil, fmt.Errorf("%w: %w", ErrDecodeFailure, err)
	}
	bw, bh := bitmap.Rect.Dx(), bitmap.Rect.Dy()
	log.Debug("imageview: decoded frame",
		slog.Int("width", bw),
		slog.Int("height", bh),
		slog.Duration("elapsed", time.Since(start)))

	if req.Options.ResizeCanvas && (visible.Width() != bw || visible.Height() != bh) {
		visible.Resize(bw, bh)
		if hitmap != nil {
			hitmap.Resize(bw, bh)
		}
	}

	viewport := Dimensions{Width: visible.Width(), Height: visible.Height()}
	zoom := ZoomScale(Dimensions{Width: bw, Height: bh}, viewport, req.ZoomMode)
	pan := req.PanZoom.scale()

	visible.SetImageSmoothing(req.Options.ImageSmoothing)
	ctx := canvas.NewRenderContext(visible, hitContext(hitmap))
	ctx.ClearRect(0, 0, float64(viewport.Width), float64(viewport.Height))

	ctx.Save()
	defer ctx.Restore()

	ctx.Translate(float64(viewport.Width)/2, float64(viewport.Height)/2)
	ctx.Translate(req.PanZoom.X, req.PanZoom.Y)
	ctx.Scale(pan, pan)
	ctx.Scale(zoom, zoom)
	// The bitmap's top-left corner becomes the origin for the markers.
	ctx.Translate(-float64(bw)/2, -float64(bh)/2)
	ctx.DrawImage(bitmap, 0, 0)

	ow, oh := markerResolution(&req.Markers, bw, bh)
	ctx.Scale(float64(bw)/float64(ow), float64(bh)/float64(oh))

	p := &painter{ctx: ctx, cam: cam, log: log, report: r.report}
	p.paintAll(records)
	for _, err := range p.errs {
		r.metrics.renderError(markerErrorKind(err))
	}

	return &Dimensions{Width: bw, Height: bh}, nil
}

func (r *Renderer) report(n Notification) { r.notes.report(n) }

// cameraModel builds the un-distortion model when markers ask for it. A
// calibration that cannot be used is reported and rendering continues
// without un-distortion.
func (r *Renderer) cameraModel(data *RawMarkerData) *camera.Model {
	if !data.TransformMarkers || data.CameraInfo == nil {
		return nil
	}
	m, err := camera.New(data.CameraInfo)
	if err != nil {
		r.metrics.renderError("camera")
		r.report(Notification{
			Severity: SeverityWarn,
			Message:  "Failed to initialize camera model",
			Details:  err.Error(),
			Err:      err,
			Key:      cameraModelKey,
		})
		return nil
	}
	return m
}

// markerResolution is the image size marker coordinates refer to. It
// differs from the bitmap when the frame was downscaled for transport.
func markerResolution(data *RawMarkerData, bw, bh int) (w, h int) {
	w, h = bw, bh
	if info := data.CameraInfo; info != nil {
		if info.Width > 0 {
			w = info.Width
		}
		if info.Height > 0 {
			h = info.Height
		}
	}
	return w, h
}

// hitContext avoids handing a typed nil surface to the render context.
func hitContext(hitmap *canvas.Surface) canvas.Context {
	if hitmap == nil {
		return nil
	}
	return hitmap
}

func clearSurfaces(visible, hitmap *canvas.Surface) {
	visible.Clear()
	if hitmap != nil {
		hitmap.Clear()
	}
}

func decodeErrorKind(err error) string {
	switch {
	case errors.Is(err, codec.ErrMalformedFrame):
		return "malformed_frame"
	case errors.Is(err, codec.ErrUnsupportedEncoding):
		return "unsupported_encoding"
	case errors.Is(err, codec.ErrUnsupportedDatatype):
		return "unsupported_datatype"
	case errors.Is(err, codec.ErrUnsupportedFormat):
		return "unsupported_format"
	default:
		return "decode"
	}
}

func markerErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrMalformedMarker):
		return "malformed_marker"
	case errors.Is(err, ErrUnrecognizedMarkerType):
		return "unrecognized_marker_type"
	default:
		return "marker_panic"
	}
}
