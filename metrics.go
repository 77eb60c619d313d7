// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const instrumentationName = "github.com/gogpu/imageview"

func meter(mp metric.MeterProvider) metric.Meter {
	if mp == nil {
		return otel.Meter(instrumentationName)
	}
	return mp.Meter(instrumentationName)
}

// metrics holds the instruments of one Renderer or Worker.
type metrics struct {
	requests  metric.Int64Counter
	duration  metric.Float64Histogram
	errors    metric.Int64Counter
	viewports metric.Int64ObservableGauge

	open atomic.Int64
	reg  metric.Registration
}

func newMetrics(mp metric.MeterProvider) (*metrics, error) {
	m := meter(mp)
	mt := &metrics{}

	var err error
	mt.requests, err = m.Int64Counter(
		"imageview.requests",
		metric.WithDescription("Worker requests by method"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating requests counter: %w", err)
	}

	mt.duration, err = m.Float64Histogram(
		"imageview.render.duration",
		metric.WithDescription("Time spent decoding and painting one frame"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating render duration histogram: %w", err)
	}

	mt.errors, err = m.Int64Counter(
		"imageview.render.errors",
		metric.WithDescription("Render problems by kind"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating render errors counter: %w", err)
	}

	mt.viewports, err = m.Int64ObservableGauge(
		"imageview.viewports",
		metric.WithDescription("Viewports currently initialized"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating viewports gauge: %w", err)
	}

	mt.reg, err = m.RegisterCallback(
		func(ctx context.Context, o metric.Observer) error {
			o.ObserveInt64(mt.viewports, mt.open.Load())
			return nil
		},
		mt.viewports,
	)
	if err != nil {
		return nil, fmt.Errorf("registering viewports callback: %w", err)
	}

	return mt, nil
}

// mustMetrics falls back to no-op instruments when the provider rejects
// an instrument.
func mustMetrics(o *options) *metrics {
	mt, err := newMetrics(o.meter)
	if err == nil {
		return mt
	}
	o.log().Warn("imageview: metrics disabled", "error", err)
	mt, _ = newMetrics(noop.NewMeterProvider())
	return mt
}

func (mt *metrics) request(method string) {
	mt.requests.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("method", method)))
}

func (mt *metrics) renderDone(start time.Time) {
	ms := float64(time.Since(start).Microseconds()) / 1000
	mt.duration.Record(context.Background(), ms)
}

func (mt *metrics) renderError(kind string) {
	mt.errors.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("kind", kind)))
}

func (mt *metrics) close() {
	if mt.reg != nil {
		_ = mt.reg.Unregister()
	}
}
