// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/imageview/canvas"
	"github.com/gogpu/imageview/marker"
)

// Worker runs decoding, painting and hit-testing on one goroutine. Every
// call is queued and executed to completion before the next one starts,
// so viewport state needs no locking.
//
// The context of each method bounds only the caller's wait. Work that was
// already queued still runs after the caller gives up.
//
// Calls for different viewports may be interleaved freely. Callers must
// serialize RenderImage calls for the same viewport themselves.
type Worker struct {
	opts     options
	renderer *Renderer
	metrics  *metrics

	jobs      chan func()
	done      chan struct{}
	exited    chan struct{}
	closeOnce sync.Once

	viewports map[string]*viewport
}

// NewWorker starts a worker goroutine. Call Close to stop it.
func NewWorker(opts ...Option) *Worker {
	o := buildOptions(opts)
	mt := mustMetrics(&o)
	w := &Worker{
		opts:      o,
		renderer:  newRenderer(o, mt),
		metrics:   mt,
		jobs:      make(chan func(), o.queueSize),
		done:      make(chan struct{}),
		exited:    make(chan struct{}),
		viewports: make(map[string]*viewport),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.exited)
	for {
		select {
		case <-w.done:
			return
		case job := <-w.jobs:
			job()
		}
	}
}

// do queues fn and waits for it to finish. A panic in fn is returned as an
// error and does not stop the worker.
func (w *Worker) do(ctx context.Context, method string, fn func() error) error {
	w.metrics.request(method)

	var err error
	finished := make(chan struct{})
	job := func() {
		defer close(finished)
		defer func() {
			if v := recover(); v != nil {
				err = fmt.Errorf("imageview: %s panicked: %v", method, v)
				w.opts.log().Error("imageview: worker job panicked",
					slog.String("method", method),
					slog.Any("panic", v))
			}
		}()
		err = fn()
	}

	select {
	case <-w.done:
		return ErrWorkerClosed
	default:
	}
	select {
	case w.jobs <- job:
	case <-w.done:
		return ErrWorkerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-finished:
		return err
	case <-w.exited:
		select {
		case <-finished:
			return err
		default:
			return ErrWorkerClosed
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Initialize registers surface as the visible surface of viewport id and
// allocates a hit-map of the same size. Initializing an existing id
// replaces its state.
func (w *Worker) Initialize(ctx context.Context, id string, surface *canvas.Surface) error {
	if surface == nil {
		return ErrNilSurface
	}
	return w.do(ctx, "initialize", func() error {
		if _, ok := w.viewports[id]; !ok {
			w.metrics.open.Add(1)
		}
		w.viewports[id] = newViewport(id, surface)
		w.opts.log().Debug("imageview: viewport initialized",
			slog.String("viewport", id),
			slog.Int("width", surface.Width()),
			slog.Int("height", surface.Height()))
		return nil
	})
}

// RenderImage resizes viewport id to req.Viewport, flattens the request's
// markers and paints the frame. It returns the native size of the
// decoded frame.
//
// RenderImage returns nil, nil for an unknown viewport and for a request
// without a frame, which clears the viewport.
func (w *Worker) RenderImage(ctx context.Context, id string, req *RenderRequest) (*Dimensions, error) {
	var dims *Dimensions
	err := w.do(ctx, "renderImage", func() error {
		v, ok := w.viewports[id]
		if !ok {
			return nil
		}
		if req == nil {
			req = &RenderRequest{}
		}
		if v.resize(req.Viewport) {
			w.opts.log().Debug("imageview: viewport resized",
				slog.String("viewport", id),
				slog.Int("width", req.Viewport.Width),
				slog.Int("height", req.Viewport.Height))
		}
		v.markers = marker.Flatten(req.Markers.Markers)

		var err error
		dims, err = w.renderer.Render(v.canvas, v.hitmap, req, v.markers)
		return err
	})
	if err != nil {
		return nil, err
	}
	return dims, nil
}

// MouseMove samples the pixel at (x, y) of viewport id and resolves the
// marker under it. It returns nil, nil for an unknown viewport or a
// coordinate outside it.
func (w *Worker) MouseMove(ctx context.Context, id string, x, y int) (*PixelSample, error) {
	var s *PixelSample
	err := w.do(ctx, "mouseMove", func() error {
		if v, ok := w.viewports[id]; ok {
			s = v.sample(x, y)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Destroy drops viewport id and its markers. Unknown ids are ignored.
func (w *Worker) Destroy(ctx context.Context, id string) error {
	return w.do(ctx, "destroy", func() error {
		if _, ok := w.viewports[id]; ok {
			delete(w.viewports, id)
			w.metrics.open.Add(-1)
		}
		return nil
	})
}

// Snapshot returns a copy of the visible pixels of viewport id, or nil for
// an unknown viewport.
func (w *Worker) Snapshot(ctx context.Context, id string) (*image.RGBA, error) {
	var img *image.RGBA
	err := w.do(ctx, "snapshot", func() error {
		if v, ok := w.viewports[id]; ok {
			img = v.canvas.Snapshot()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// HitmapSnapshot returns a copy of the hit-map pixels of viewport id, or
// nil for an unknown viewport.
func (w *Worker) HitmapSnapshot(ctx context.Context, id string) (*image.RGBA, error) {
	var img *image.RGBA
	err := w.do(ctx, "hitmapSnapshot", func() error {
		if v, ok := w.viewports[id]; ok {
			img = v.hitmap.Snapshot()
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return img, nil
}

// ResetNotifications lets every notification be delivered again, starting
// a new session for deduplication.
func (w *Worker) ResetNotifications(ctx context.Context) error {
	return w.do(ctx, "resetNotifications", func() error {
		w.renderer.ResetNotifications()
		return nil
	})
}

// Close stops the worker goroutine after the job in progress. Queued jobs
// are dropped and their callers receive ErrWorkerClosed. Close is
// idempotent.
func (w *Worker) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		<-w.exited
		w.metrics.close()
	})
	return nil
}
