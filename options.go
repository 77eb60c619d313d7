// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Worker or a Renderer during creation.
//
// Example:
//
//	// Silent worker with default settings
//	w := imageview.NewWorker()
//
//	// Worker that logs and forwards marker problems to the UI
//	w := imageview.NewWorker(
//		imageview.WithLogger(logger),
//		imageview.WithNotifier(imageview.NotifierFunc(showToast)),
//	)
type Option func(*options)

type options struct {
	logger    *slog.Logger
	notifier  Notifier
	meter     metric.MeterProvider
	queueSize int
}

func defaultOptions() options {
	return options{
		logger:    nil, // package Logger() at use time
		notifier:  nil, // notifications are only logged
		meter:     nil, // global OTel provider
		queueSize: 16,
	}
}

func buildOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) log() *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return Logger()
}

// WithLogger sets the logger for one worker, overriding SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNotifier receives user-facing notifications about recoverable
// problems such as malformed markers. Identical notifications are
// delivered once per worker until ResetNotifications.
func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

// WithMeterProvider records metrics with mp instead of the global
// OpenTelemetry provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *options) {
		o.meter = mp
	}
}

// WithQueueSize sets how many requests may wait for the worker goroutine
// before callers block. Values below 1 are ignored.
func WithQueueSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.queueSize = n
		}
	}
}
