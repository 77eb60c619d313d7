// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package imageview

import (
	"bytes"
	"log/slog"
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestDefaultOptions(t *testing.T) {
	o := buildOptions(nil)
	if o.queueSize != 16 {
		t.Errorf("queueSize = %d, want 16", o.queueSize)
	}
	if o.log() != Logger() {
		t.Error("log() should fall back to the package logger")
	}
	if o.notifier != nil || o.meter != nil {
		t.Errorf("unexpected defaults: %+v", o)
	}
}

func TestOptions(t *testing.T) {
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	n := NotifierFunc(func(Notification) {})
	mp := noop.NewMeterProvider()

	o := buildOptions([]Option{
		WithLogger(l),
		WithNotifier(n),
		WithMeterProvider(mp),
		WithQueueSize(4),
		WithQueueSize(0),
	})
	if o.log() != l {
		t.Error("WithLogger not applied")
	}
	if o.notifier == nil {
		t.Error("WithNotifier not applied")
	}
	if o.meter != mp {
		t.Error("WithMeterProvider not applied")
	}
	if o.queueSize != 4 {
		t.Errorf("queueSize = %d, want 4 (non-positive sizes ignored)", o.queueSize)
	}
}
